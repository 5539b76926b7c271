package dashboard

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/bikedash/internal/chart"
	"github.com/KaramelBytes/bikedash/internal/dataset"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func fixture() *dataset.Dataset {
	recs := []dataset.Record{
		{Date: day("2023-01-01"), Hour: -1, Count: 1000, Casual: 300, Registered: 700, Season: 1, Weather: 1, Temp: 0.5, Humidity: 0.6, Windspeed: 0.2},
		{Date: day("2023-01-02"), Hour: -1, Count: 2000, Casual: 500, Registered: 1500, Season: 1, Weather: 2, Temp: 0.4, Humidity: 0.5, Windspeed: 0.3},
		{Date: day("2023-01-05"), Hour: -1, Count: 1500, Casual: 400, Registered: 1100, Season: 1, Weather: 1, Temp: 0.3, Humidity: 0.7, Windspeed: 0.1},
	}
	return &dataset.Dataset{
		Path:     "bike.csv",
		Records:  recs,
		Rows:     4,
		Rejected: 1,
		Warnings: []string{"row 5: malformed dteday \"x\""},
		MinDate:  recs[0].Date,
		MaxDate:  recs[2].Date,
	}
}

func TestBuild_DefaultsToFullRange(t *testing.T) {
	d, err := Build(fixture(), time.Time{}, time.Time{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !d.Start.Equal(day("2023-01-01")) || !d.End.Equal(day("2023-01-05")) {
		t.Fatalf("unexpected range %v..%v", d.Start, d.End)
	}
	if d.NoData || d.TotalRentals != 4500 || d.Records != 3 {
		t.Fatalf("unexpected totals: %+v", d)
	}
	if len(d.Daily) != 3 || len(d.Factors) != 3 || len(d.Weather) != 2 || len(d.Seasons) != 1 {
		t.Fatalf("unexpected table sizes")
	}
	if d.UserTypes[0].Label != "registered" || d.UserTypes[0].RentalsCount != 3300 {
		t.Fatalf("unexpected user types %+v", d.UserTypes)
	}
	if d.RenderID == "" || len(d.Charts) != 7 {
		t.Fatalf("expected render id and 7 charts, got %q and %d", d.RenderID, len(d.Charts))
	}
	if d.Charts[1].Table != chart.TableSeasons || d.Charts[1].Highlight != "springer" {
		t.Fatalf("unexpected season chart %+v", d.Charts[1])
	}
	other, _ := Build(fixture(), time.Time{}, time.Time{}, DefaultOptions())
	if other.RenderID == d.RenderID {
		t.Fatalf("render ids should differ per cycle")
	}
}

func TestBuild_EmptyDayIsNoData(t *testing.T) {
	d, err := Build(fixture(), day("2023-01-03"), day("2023-01-03"), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !d.NoData || d.TotalRentals != 0 {
		t.Fatalf("expected no-data dashboard, got %+v", d)
	}
	if len(d.Daily) != 0 || len(d.Seasons) != 0 || len(d.Weather) != 0 || len(d.Factors) != 0 {
		t.Fatalf("expected empty tables")
	}
	if len(d.UserTypes) != 2 || d.UserTypes[0].RentalsCount != 0 {
		t.Fatalf("expected two zero user rows, got %+v", d.UserTypes)
	}
	if !strings.Contains(d.Markdown(), "No data for the selected range.") {
		t.Fatalf("markdown should mention no data")
	}
}

func TestBuild_InvalidRanges(t *testing.T) {
	_, err := Build(fixture(), day("2023-01-05"), day("2023-01-01"), DefaultOptions())
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	_, err = Build(fixture(), day("2022-12-01"), day("2023-01-02"), DefaultOptions())
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := Build(nil, time.Time{}, time.Time{}, DefaultOptions()); err == nil {
		t.Fatalf("expected error for nil dataset")
	}
}

func TestBuild_EmptyDataset(t *testing.T) {
	d, err := Build(&dataset.Dataset{Path: "empty.csv"}, time.Time{}, time.Time{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !d.NoData {
		t.Fatalf("expected NoData on empty dataset")
	}
}

func TestMarkdown(t *testing.T) {
	opt := DefaultOptions()
	opt.MaxRowsShown = 2
	d, err := Build(fixture(), time.Time{}, time.Time{}, opt)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	md := d.Markdown()
	for _, want := range []string{
		"[DASHBOARD]", "Total rentals: 4,500", "[DAILY RENTALS]", "| 2023-01-01 | 1000 |",
		"… 1 more rows", "[SEASONS]", "| springer | 4,500 |", "[WEATHER]", "| Clear | 2,500 |",
		"[WEATHER FACTORS]", "| 2023-01-01 | 20.5 | 60.0 | 13.4 |", "[CORRELATIONS]",
		"[USER TYPES]", "| registered | 3,300 |", "[NOTES]", "1 rows rejected at load",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
