package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Required lists the columns every dataset must provide.
var Required = []string{"dteday", "cnt", "casual", "registered", "season", "weathersit", "temp", "hum", "windspeed"}

// Options controls dataset loading.
type Options struct {
	// Delimiter for delimited text. If 0, chosen from the file extension.
	Delimiter rune
	// SheetName selects the XLSX sheet; the first sheet when empty.
	SheetName string
	// MaxRejectWarnings caps the per-row warnings kept on the Dataset.
	MaxRejectWarnings int
}

// DefaultOptions returns reasonable defaults for loading.
func DefaultOptions() Options {
	return Options{MaxRejectWarnings: 20}
}

// Dataset is the full record set, loaded once and shared read-only by every render.
type Dataset struct {
	Path     string
	Records  []Record
	Rows     int // data rows read, accepted or not
	Rejected int
	Warnings []string
	MinDate  time.Time
	MaxDate  time.Time
	LoadedAt time.Time
}

// Empty reports whether no record survived loading.
func (d *Dataset) Empty() bool { return d == nil || len(d.Records) == 0 }

// Bounds returns the first and last calendar day present in the dataset.
func (d *Dataset) Bounds() (time.Time, time.Time) {
	if d == nil {
		return time.Time{}, time.Time{}
	}
	return d.MinDate, d.MaxDate
}

// Load reads the dataset at path, validates the header and converts every row into a Record.
// Rows with a malformed date or numeric cell are skipped and counted in Rejected.
func Load(path string, opts Options) (*Dataset, error) {
	src, err := sourceFor(path)
	if err != nil {
		return nil, err
	}
	rows, err := src.Rows(path, opts)
	if err != nil {
		return nil, err
	}
	return fromRows(path, rows, opts)
}

func fromRows(path string, rows [][]string, opts Options) (*Dataset, error) {
	ds := &Dataset{Path: path, LoadedAt: time.Now()}
	if len(rows) == 0 {
		return nil, &MissingColumnError{Path: path, Column: Required[0]}
	}
	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	present := make(map[string]int, len(header))
	for _, h := range header {
		present[h]++
	}
	known := append(append([]string(nil), Required...), "hr")
	for _, col := range known {
		switch n := present[col]; {
		case n == 0 && col != "hr":
			return nil, &MissingColumnError{Path: path, Column: col}
		case n > 1:
			return nil, &DuplicateColumnError{Path: path, Column: col, Count: n}
		}
	}
	if len(rows) == 1 {
		return ds, nil
	}
	normalizeWidths(rows)

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{"", "NA", "NaN", "<nil>"}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load dataframe: %w", df.Err)
	}

	hasHour := present["hr"] > 0
	names := Required
	if hasHour {
		names = known
	}
	cols := make(map[string]series.Series, len(names))
	for _, name := range names {
		col := df.Col(name)
		if col.Err != nil {
			return nil, fmt.Errorf("column %s: %w", name, col.Err)
		}
		cols[name] = col
	}

	maxWarn := opts.MaxRejectWarnings
	if maxWarn <= 0 {
		maxWarn = DefaultOptions().MaxRejectWarnings
	}
	reject := func(row int, format string, args ...any) {
		ds.Rejected++
		if len(ds.Warnings) < maxWarn {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("row %d: ", row)+fmt.Sprintf(format, args...))
		}
	}

	n := df.Nrow()
	ds.Rows = n
	ds.Records = make([]Record, 0, n)
	for i := 0; i < n; i++ {
		line := i + 2 // 1-based, after header
		raw := cols["dteday"].Elem(i)
		if raw.IsNA() {
			reject(line, "missing dteday")
			continue
		}
		date, ok := parseDate(raw.String())
		if !ok {
			reject(line, "malformed dteday %q", raw.String())
			continue
		}
		rec := Record{Date: Day(date), Hour: -1}
		var bad string
		ints := []struct {
			col string
			dst *int
		}{
			{"cnt", &rec.Count},
			{"casual", &rec.Casual},
			{"registered", &rec.Registered},
		}
		for _, f := range ints {
			v, ok := intCell(cols[f.col].Elem(i))
			if !ok {
				bad = f.col
				break
			}
			*f.dst = v
		}
		if bad == "" {
			if v, ok := intCell(cols["season"].Elem(i)); ok {
				rec.Season = Season(v)
			} else {
				bad = "season"
			}
		}
		if bad == "" {
			if v, ok := intCell(cols["weathersit"].Elem(i)); ok {
				rec.Weather = Weather(v)
			} else {
				bad = "weathersit"
			}
		}
		if bad == "" {
			floats := []struct {
				col string
				dst *float64
			}{
				{"temp", &rec.Temp},
				{"hum", &rec.Humidity},
				{"windspeed", &rec.Windspeed},
			}
			for _, f := range floats {
				v, ok := floatCell(cols[f.col].Elem(i))
				if !ok {
					bad = f.col
					break
				}
				*f.dst = v
			}
		}
		if bad != "" {
			if cell := cols[bad].Elem(i); cell.IsNA() {
				reject(line, "missing %s", bad)
			} else {
				reject(line, "invalid %s %q", bad, cell.String())
			}
			continue
		}
		if hasHour {
			if h, ok := intCell(cols["hr"].Elem(i)); ok {
				rec.Hour = h
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	if ds.Rejected > len(ds.Warnings) {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("%d more rejected rows not listed", ds.Rejected-len(ds.Warnings)))
	}

	sort.SliceStable(ds.Records, func(i, j int) bool {
		return ds.Records[i].Date.Before(ds.Records[j].Date)
	})
	if len(ds.Records) > 0 {
		ds.MinDate = ds.Records[0].Date
		ds.MaxDate = ds.Records[len(ds.Records)-1].Date
	}
	return ds, nil
}

// normalizeWidths pads short rows and truncates long ones to the header width,
// so a ragged row is rejected on its missing cells instead of failing the load.
func normalizeWidths(rows [][]string) {
	width := len(rows[0])
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		} else if len(row) > width {
			rows[i] = row[:width]
		}
	}
}

var dateLayouts = []string{
	"2006-01-02", "2006/01/02", time.RFC3339,
	"2006-01-02 15:04", "2006-01-02 15:04:05",
	"1/2/2006", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

// ParseDate parses a dteday value using the layouts accepted by Load.
func ParseDate(s string) (time.Time, error) {
	if t, ok := parseDate(s); ok {
		return Day(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func intCell(e series.Element) (int, bool) {
	if e.IsNA() {
		return 0, false
	}
	s := strings.TrimSpace(e.String())
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	// spreadsheets sometimes store integral counts as "12.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func floatCell(e series.Element) (float64, bool) {
	if e.IsNA() {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(e.String()), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
