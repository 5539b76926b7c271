package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

const header = "instant,dteday,season,yr,mnth,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt"

func writeFixture(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestLoadCSV_SortsAndParses(t *testing.T) {
	path := writeFixture(t, "bike.csv",
		header,
		"2,2011-01-02,1,0,1,0,0,0,2,0.363478,0.353739,0.696087,0.248539,131,670,801",
		"1,2011-01-01,1,0,1,0,6,0,2,0.344167,0.363625,0.805833,0.160446,331,654,985",
		"3,2011-01-02,1,0,1,0,1,1,1,0.196364,0.189405,0.437273,0.248309,120,1229,1349",
	)
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Records) != 3 || ds.Rows != 3 || ds.Rejected != 0 {
		t.Fatalf("unexpected counts: records=%d rows=%d rejected=%d", len(ds.Records), ds.Rows, ds.Rejected)
	}
	first := ds.Records[0]
	if !first.Date.Equal(day("2011-01-01")) || first.Count != 985 || first.Casual != 331 || first.Registered != 654 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Season != 1 || first.Weather != 2 || first.Temp != 0.344167 || first.Humidity != 0.805833 || first.Windspeed != 0.160446 {
		t.Fatalf("unexpected first record factors: %+v", first)
	}
	if first.Hour != -1 {
		t.Fatalf("expected no hour on daily data, got %d", first.Hour)
	}
	// same-day rows keep file order
	if ds.Records[1].Count != 801 || ds.Records[2].Count != 1349 {
		t.Fatalf("stable order lost: %d, %d", ds.Records[1].Count, ds.Records[2].Count)
	}
	lo, hi := ds.Bounds()
	if !lo.Equal(day("2011-01-01")) || !hi.Equal(day("2011-01-02")) {
		t.Fatalf("unexpected bounds %v..%v", lo, hi)
	}
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	path := writeFixture(t, "bike.csv",
		"dteday,season,weathersit,temp,hum,casual,registered,cnt",
		"2011-01-01,1,2,0.3,0.8,331,654,985",
	)
	_, err := Load(path, DefaultOptions())
	var mc *MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if mc.Column != "windspeed" {
		t.Fatalf("expected windspeed to be reported, got %q", mc.Column)
	}
}

func TestLoadCSV_RejectsBadRows(t *testing.T) {
	path := writeFixture(t, "bike.csv",
		header,
		"1,2011-01-01,1,0,1,0,6,0,2,0.34,0.36,0.80,0.16,331,654,985",
		"2,not-a-date,1,0,1,0,0,0,2,0.36,0.35,0.69,0.24,131,670,801",
		"3,2011-01-03,1,0,1,0,1,1,1,0.19,0.18,0.43,0.24,120,1229,",
		"4,2011/01/04,1,0,1,0,2,1,1,0.20,0.21,0.59,0.16,108,1454,1562",
	)
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rows != 4 || ds.Rejected != 2 || len(ds.Records) != 2 {
		t.Fatalf("unexpected counts: rows=%d rejected=%d records=%d", ds.Rows, ds.Rejected, len(ds.Records))
	}
	if len(ds.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", ds.Warnings)
	}
	if !strings.Contains(ds.Warnings[0], "row 3") || !strings.Contains(ds.Warnings[0], "dteday") {
		t.Fatalf("unexpected warning: %s", ds.Warnings[0])
	}
	if !strings.Contains(ds.Warnings[1], "cnt") {
		t.Fatalf("unexpected warning: %s", ds.Warnings[1])
	}
	if !ds.Records[1].Date.Equal(day("2011-01-04")) {
		t.Fatalf("slash date not parsed: %v", ds.Records[1].Date)
	}
}

func TestLoadCSV_WarningCap(t *testing.T) {
	lines := []string{header}
	for i := 0; i < 5; i++ {
		lines = append(lines, "1,bad,1,0,1,0,6,0,2,0.34,0.36,0.80,0.16,331,654,985")
	}
	path := writeFixture(t, "bike.csv", lines...)
	opt := DefaultOptions()
	opt.MaxRejectWarnings = 2
	ds, err := Load(path, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rejected != 5 {
		t.Fatalf("expected 5 rejected, got %d", ds.Rejected)
	}
	if len(ds.Warnings) != 3 || !strings.Contains(ds.Warnings[2], "3 more") {
		t.Fatalf("unexpected warnings: %v", ds.Warnings)
	}
	if !ds.Empty() {
		t.Fatalf("expected empty dataset")
	}
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	path := writeFixture(t, "bike.csv", header)
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ds.Empty() || !ds.MinDate.IsZero() {
		t.Fatalf("expected empty dataset, got %+v", ds)
	}
}

func TestLoadTSV_HourlyColumn(t *testing.T) {
	path := writeFixture(t, "hour.tsv",
		"dteday\thr\tseason\tweathersit\ttemp\thum\twindspeed\tcasual\tregistered\tcnt",
		"2011-01-01\t0\t1\t1\t0.24\t0.81\t0\t3\t13\t16",
		"2011-01-01\t1\t1\t1\t0.22\t0.8\t0\t8\t32\t40",
	)
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Records) != 2 || ds.Records[1].Hour != 1 || ds.Records[1].Count != 40 {
		t.Fatalf("unexpected records: %+v", ds.Records)
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bike.xlsx")
	f := excelize.NewFile()
	rows := [][]any{
		{"dteday", "season", "weathersit", "temp", "hum", "windspeed", "casual", "registered", "cnt"},
		{"2023-01-02", 1, 2, 0.4, 0.5, 0.3, 5, 15, 20},
		{"2023-01-01", 1, 1, 0.5, 0.6, 0.2, 3, 7, 10},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	_ = f.Close()

	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("expected 2 records, got %d (%v)", len(ds.Records), ds.Warnings)
	}
	r := ds.Records[0]
	if !r.Date.Equal(day("2023-01-01")) || r.Count != 10 || r.Weather != 1 || r.Temp != 0.5 {
		t.Fatalf("unexpected record: %+v", r)
	}

	opt := DefaultOptions()
	opt.SheetName = "Missing"
	if _, err := Load(path, opt); err == nil || !strings.Contains(err.Error(), "Available sheets: Sheet1") {
		t.Fatalf("expected sheet-not-found error, got %v", err)
	}
}

func TestLoad_Unsupported(t *testing.T) {
	path := writeFixture(t, "bike.json", "{}")
	if _, err := Load(path, DefaultOptions()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2023-01-05", "2023-01-05", true},
		{"2023/01/05", "2023-01-05", true},
		{"2023-01-05 13:45:00", "2023-01-05", true},
		{"1/5/2023", "2023-01-05", true},
		{"05.01.2023", "", false},
	}
	for _, c := range cases {
		got, err := ParseDate(c.in)
		if (err == nil) != c.ok {
			t.Fatalf("%s: unexpected err %v", c.in, err)
		}
		if c.ok && got.Format("2006-01-02") != c.want {
			t.Fatalf("%s: got %s want %s", c.in, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestLoadCSV_DuplicateRequiredColumn(t *testing.T) {
	path := writeFixture(t, "bike.csv",
		"dteday,season,weathersit,temp,hum,windspeed,casual,registered,cnt,cnt",
		"2023-01-01,1,1,0.5,0.6,0.2,3,7,10,10",
	)
	_, err := Load(path, DefaultOptions())
	var dc *DuplicateColumnError
	if !errors.As(err, &dc) {
		t.Fatalf("expected DuplicateColumnError, got %v", err)
	}
	if dc.Column != "cnt" || dc.Count != 2 {
		t.Fatalf("unexpected duplicate report: %+v", dc)
	}
}

func TestLoadCSV_DuplicateOptionalColumnIgnored(t *testing.T) {
	path := writeFixture(t, "bike.csv",
		"instant,dteday,season,weathersit,temp,hum,windspeed,casual,registered,cnt,instant",
		"1,2023-01-01,1,1,0.5,0.6,0.2,3,7,10,1",
	)
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Records) != 1 || ds.Records[0].Count != 10 {
		t.Fatalf("unexpected records: %+v", ds.Records)
	}
}

func TestLoadCSV_RaggedRowsRejectedNotFatal(t *testing.T) {
	path := writeFixture(t, "bike.csv",
		"dteday,season,weathersit,temp,hum,windspeed,casual,registered,cnt",
		"2023-01-01,1,1,0.5,0.6,0.2,3,7,10",
		"2023-01-02,1,2,0.4,0.5",
		"2023-01-03,1,1,0.3,0.7,0.1,4,6,10,extra",
		"2023-01-04,1,1,0.3,0.7,0.1,5,5,10",
	)
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rows != 4 || ds.Rejected != 1 || len(ds.Records) != 3 {
		t.Fatalf("unexpected counts: rows=%d rejected=%d records=%d", ds.Rows, ds.Rejected, len(ds.Records))
	}
	if !strings.Contains(ds.Warnings[0], "row 3") || !strings.Contains(ds.Warnings[0], "missing cnt") {
		t.Fatalf("unexpected warning: %v", ds.Warnings)
	}
	if !ds.Records[1].Date.Equal(day("2023-01-03")) || ds.Records[1].Count != 10 {
		t.Fatalf("long row should keep its leading cells: %+v", ds.Records[1])
	}
}
