// Package export writes a rendered dashboard to an XLSX workbook, one sheet per table.
package export

import (
	"fmt"

	"github.com/KaramelBytes/bikedash/internal/dashboard"
	"github.com/KaramelBytes/bikedash/internal/pipeline"
	"github.com/KaramelBytes/bikedash/internal/utils"
	"github.com/xuri/excelize/v2"
)

// Sheet names in workbook order.
const (
	SheetDaily        = "Daily Rentals"
	SheetSeasons      = "Seasons"
	SheetWeather      = "Weather"
	SheetFactors      = "Weather Factors"
	SheetUserTypes    = "User Types"
	SheetCorrelations = "Correlations"
	SheetInfo         = "Info"
)

// Workbook builds the workbook for d. The caller owns and must close it.
func Workbook(d *dashboard.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()
	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetDaily, dailyRows(d)},
		{SheetSeasons, categoryRows("season", d.Seasons)},
		{SheetWeather, categoryRows("weathersit", d.Weather)},
		{SheetFactors, factorRows(d)},
		{SheetUserTypes, categoryRows("user_type", d.UserTypes)},
		{SheetCorrelations, correlationRows(d)},
		{SheetInfo, infoRows(d)},
	}
	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		for i := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				_ = f.Close()
				return nil, err
			}
			if err := f.SetSheetRow(s.name, cell, &s.rows[i]); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("write %s row %d: %w", s.name, i+1, err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetDaily); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// WriteFile renders d as an XLSX workbook at path, replacing any existing file atomically.
func WriteFile(d *dashboard.Dashboard, path string) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("encode xlsx: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func dailyRows(d *dashboard.Dashboard) [][]any {
	rows := [][]any{{"date", "rentals_count"}}
	for _, r := range d.Daily {
		rows = append(rows, []any{r.Date.Format("2006-01-02"), r.RentalsCount})
	}
	return rows
}

func categoryRows(key string, cats []pipeline.CategoryCount) [][]any {
	rows := [][]any{{key, "rentals_count"}}
	for _, c := range cats {
		rows = append(rows, []any{c.Label, c.RentalsCount})
	}
	return rows
}

func factorRows(d *dashboard.Dashboard) [][]any {
	rows := [][]any{{"date", "temp", "hum", "windspeed"}}
	for _, f := range d.Factors {
		rows = append(rows, []any{f.Date.Format("2006-01-02"), f.TempC, f.HumidityPct, f.WindspeedKmh})
	}
	return rows
}

func correlationRows(d *dashboard.Dashboard) [][]any {
	rows := [][]any{{"factor", "unit", "r", "n"}}
	for _, c := range d.Correlations {
		rows = append(rows, []any{c.Factor, c.Unit, c.R, c.N})
	}
	return rows
}

func infoRows(d *dashboard.Dashboard) [][]any {
	return [][]any{
		{"key", "value"},
		{"render_id", d.RenderID},
		{"source", d.Source},
		{"start", d.Start.Format("2006-01-02")},
		{"end", d.End.Format("2006-01-02")},
		{"records", d.Records},
		{"total_rentals", d.TotalRentals},
		{"no_data", d.NoData},
		{"rejected_rows", d.Rejected},
	}
}
