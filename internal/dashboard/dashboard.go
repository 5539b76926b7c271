// Package dashboard runs one render cycle: resolve the date range, filter the
// loaded dataset, derive every table and attach the chart requests.
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/KaramelBytes/bikedash/internal/chart"
	"github.com/KaramelBytes/bikedash/internal/dataset"
	"github.com/KaramelBytes/bikedash/internal/pipeline"
	"github.com/google/uuid"
)

var (
	// ErrInvalidRange is returned when the start date falls after the end date.
	ErrInvalidRange = errors.New("start date is after end date")
	// ErrOutOfBounds is returned when a date lies outside the dataset's min/max dates.
	ErrOutOfBounds = errors.New("date outside dataset range")
)

// Options controls dashboard assembly and rendering.
type Options struct {
	Palette chart.Palette
	// MaxRowsShown limits per-table rows in Markdown output; 0 means unlimited.
	MaxRowsShown int
}

// DefaultOptions returns reasonable defaults for a render.
func DefaultOptions() Options {
	return Options{Palette: chart.DefaultPalette(), MaxRowsShown: 31}
}

// Dashboard is the output of a single render cycle. It is not cached.
type Dashboard struct {
	RenderID     string                       `json:"render_id"`
	GeneratedAt  time.Time                    `json:"generated_at"`
	Source       string                       `json:"source"`
	Start        time.Time                    `json:"start"`
	End          time.Time                    `json:"end"`
	NoData       bool                         `json:"no_data"`
	Records      int                          `json:"records"`
	TotalRentals int                          `json:"total_rentals"`
	Daily        []pipeline.DailyRental       `json:"daily_rentals"`
	Seasons      []pipeline.CategoryCount     `json:"season_summary"`
	Weather      []pipeline.CategoryCount     `json:"weather_summary"`
	Factors      []pipeline.WeatherFactor     `json:"weather_factors"`
	UserTypes    []pipeline.CategoryCount     `json:"user_type_summary"`
	Correlations []pipeline.FactorCorrelation `json:"correlations"`
	Charts       []chart.Request              `json:"charts"`
	Rejected     int                          `json:"rejected_rows"`
	Warnings     []string                     `json:"warnings,omitempty"`

	maxRows int
}

// Resolve fills zero dates with the dataset bounds and validates the range.
func Resolve(ds *dataset.Dataset, start, end time.Time) (time.Time, time.Time, error) {
	lo, hi := ds.Bounds()
	if start.IsZero() {
		start = lo
	}
	if end.IsZero() {
		end = hi
	}
	start, end = dataset.Day(start), dataset.Day(end)
	if start.After(end) {
		return start, end, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if ds.Empty() {
		return start, end, nil
	}
	if start.Before(lo) || end.After(hi) {
		return start, end, fmt.Errorf("%w: %s..%s not within %s..%s", ErrOutOfBounds,
			start.Format("2006-01-02"), end.Format("2006-01-02"), lo.Format("2006-01-02"), hi.Format("2006-01-02"))
	}
	return start, end, nil
}

// Build assembles a dashboard for [start, end]. Zero dates default to the dataset bounds.
// A range without records yields a NoData dashboard with empty tables.
func Build(ds *dataset.Dataset, start, end time.Time, opts Options) (*Dashboard, error) {
	if ds == nil {
		return nil, errors.New("no dataset loaded")
	}
	start, end, err := Resolve(ds, start, end)
	if err != nil {
		return nil, err
	}
	subset, err := pipeline.FilterByRange(ds.Records, start, end)
	var empty *pipeline.EmptyRangeError
	if err != nil && !errors.As(err, &empty) {
		return nil, fmt.Errorf("filter: %w", err)
	}
	if opts.Palette == (chart.Palette{}) {
		opts.Palette = chart.DefaultPalette()
	}

	d := &Dashboard{
		RenderID:     uuid.NewString(),
		GeneratedAt:  time.Now(),
		Source:       ds.Path,
		Start:        start,
		End:          end,
		NoData:       empty != nil,
		Records:      len(subset),
		TotalRentals: pipeline.TotalRentals(subset),
		Daily:        pipeline.DailyRentals(subset),
		Seasons:      pipeline.SeasonSummary(subset),
		Weather:      pipeline.WeatherSummary(subset),
		Factors:      pipeline.WeatherFactorSeries(subset),
		UserTypes:    pipeline.UserTypeSummary(subset),
		Correlations: pipeline.FactorCorrelations(subset),
		Rejected:     ds.Rejected,
		Warnings:     append([]string(nil), ds.Warnings...),
		maxRows:      opts.MaxRowsShown,
	}
	d.Charts = []chart.Request{
		chart.DailyRentals(opts.Palette),
		chart.Seasons(d.Seasons, opts.Palette),
		chart.Weather(d.Weather, opts.Palette),
	}
	for _, f := range chart.Factors {
		req, err := chart.FactorOverlay(f, opts.Palette)
		if err != nil {
			return nil, err
		}
		d.Charts = append(d.Charts, req)
	}
	d.Charts = append(d.Charts, chart.UserTypes(d.UserTypes, opts.Palette))
	return d, nil
}
