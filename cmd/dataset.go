package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/KaramelBytes/bikedash/internal/chart"
	cfgpkg "github.com/KaramelBytes/bikedash/internal/config"
	"github.com/KaramelBytes/bikedash/internal/dashboard"
	"github.com/KaramelBytes/bikedash/internal/dataset"
	"github.com/KaramelBytes/bikedash/internal/utils"
)

func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Defaults()
	}
	return cfg
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s", s)
	}
}

func loadOptions() (dataset.Options, error) {
	c := currentConfig()
	opt := dataset.DefaultOptions()
	d, err := parseDelimiter(c.Delimiter)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	opt.SheetName = c.SheetName
	if c.MaxRejectWarnings > 0 {
		opt.MaxRejectWarnings = c.MaxRejectWarnings
	}
	return opt, nil
}

// loadDataset loads args[0] when given, otherwise the configured dataset.
// Rejected rows are reported as warnings on stderr.
func loadDataset(args []string) (*dataset.Dataset, error) {
	path := currentConfig().DatasetPath
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}
	if !utils.FileExists(path) {
		return nil, fmt.Errorf("dataset not found: %s", path)
	}
	opt, err := loadOptions()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	if ds.Rejected > 0 {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %d of %d rows rejected while loading %s\n", ds.Rejected, ds.Rows, path)
		if debug {
			for _, w := range ds.Warnings {
				fmt.Fprintf(os.Stderr, "  - %s\n", w)
			}
		}
	}
	if ds.Empty() {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s contains no usable records\n", path)
	}
	return ds, nil
}

func palette() chart.Palette {
	c := currentConfig()
	p := chart.DefaultPalette()
	if c.HighlightColor != "" {
		p.Highlight = c.HighlightColor
	}
	if c.MutedColor != "" {
		p.Muted = c.MutedColor
	}
	if c.AccentColor != "" {
		p.Accent = c.AccentColor
	}
	return p
}

func dashboardOptions(maxRows int) dashboard.Options {
	opt := dashboard.DefaultOptions()
	opt.Palette = palette()
	if maxRows >= 0 {
		opt.MaxRowsShown = maxRows
	}
	return opt
}

// parseRange parses optional YYYY-MM-DD flags; empty values stay zero.
func parseRange(start, end string) (time.Time, time.Time, error) {
	var s, e time.Time
	var err error
	if start != "" {
		if s, err = dataset.ParseDate(start); err != nil {
			return s, e, fmt.Errorf("--start: %w", err)
		}
	}
	if end != "" {
		if e, err = dataset.ParseDate(end); err != nil {
			return s, e, fmt.Errorf("--end: %w", err)
		}
	}
	return s, e, nil
}
