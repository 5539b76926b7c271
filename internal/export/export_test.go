package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/KaramelBytes/bikedash/internal/dashboard"
	"github.com/KaramelBytes/bikedash/internal/dataset"
	"github.com/xuri/excelize/v2"
)

func TestWriteFile(t *testing.T) {
	d0 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	ds := &dataset.Dataset{
		Path: "bike.csv",
		Records: []dataset.Record{
			{Date: d0, Hour: -1, Count: 10, Casual: 3, Registered: 7, Season: 1, Weather: 1, Temp: 0.5, Humidity: 0.6, Windspeed: 0.2},
			{Date: d0.AddDate(0, 0, 1), Hour: -1, Count: 20, Casual: 5, Registered: 15, Season: 1, Weather: 2, Temp: 0.4, Humidity: 0.5, Windspeed: 0.3},
		},
		MinDate: d0,
		MaxDate: d0.AddDate(0, 0, 1),
	}
	d, err := dashboard.Build(ds, time.Time{}, time.Time{}, dashboard.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out := filepath.Join(t.TempDir(), "dash.xlsx")
	if err := WriteFile(d, out); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	want := []string{SheetDaily, SheetSeasons, SheetWeather, SheetFactors, SheetUserTypes, SheetCorrelations, SheetInfo}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sheets = %v, want %v", got, want)
		}
	}

	rows, err := f.GetRows(SheetDaily)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 || rows[1][0] != "2023-01-01" || rows[2][1] != "20" {
		t.Fatalf("unexpected daily rows: %v", rows)
	}
	users, _ := f.GetRows(SheetUserTypes)
	if len(users) != 3 || users[1][0] != "registered" || users[1][1] != "22" {
		t.Fatalf("unexpected user rows: %v", users)
	}
	info, _ := f.GetRows(SheetInfo)
	if info[1][0] != "render_id" || info[1][1] != d.RenderID {
		t.Fatalf("unexpected info rows: %v", info)
	}
}
