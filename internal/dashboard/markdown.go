package dashboard

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/bikedash/internal/pipeline"
	"github.com/dustin/go-humanize"
)

// TotalLabel formats the headline metric.
func (d *Dashboard) TotalLabel() string {
	return humanize.Comma(int64(d.TotalRentals))
}

// Markdown renders a compact report of the dashboard for terminals or docs.
func (d *Dashboard) Markdown() string {
	var b strings.Builder
	b.WriteString("[DASHBOARD]\n")
	if d.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", d.Source))
	}
	b.WriteString(fmt.Sprintf("Range: %s to %s\n", d.Start.Format("2006-01-02"), d.End.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Records: %d\n", d.Records))
	b.WriteString(fmt.Sprintf("Total rentals: %s\n", d.TotalLabel()))
	b.WriteString(fmt.Sprintf("Render: %s\n", d.RenderID))
	if d.NoData {
		b.WriteString("\nNo data for the selected range.\n")
	}

	b.WriteString("\n[DAILY RENTALS]\n")
	b.WriteString("| date | rentals_count |\n| --- | --- |\n")
	shown := d.limit(len(d.Daily))
	for _, r := range d.Daily[:shown] {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", r.Date.Format("2006-01-02"), r.RentalsCount))
	}
	writeMore(&b, len(d.Daily)-shown)

	writeCategories(&b, "SEASONS", "season", d.Seasons)
	writeCategories(&b, "WEATHER", "weathersit", d.Weather)

	b.WriteString("\n[WEATHER FACTORS]\n")
	b.WriteString("| date | temp (°C) | hum (%) | windspeed (km/h) |\n| --- | --- | --- | --- |\n")
	shown = d.limit(len(d.Factors))
	for _, f := range d.Factors[:shown] {
		b.WriteString(fmt.Sprintf("| %s | %.1f | %.1f | %.1f |\n", f.Date.Format("2006-01-02"), f.TempC, f.HumidityPct, f.WindspeedKmh))
	}
	writeMore(&b, len(d.Factors)-shown)

	if !d.NoData {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, c := range d.Correlations {
			b.WriteString(fmt.Sprintf("- %s [%s] ~ cnt: r=%.3f (n=%d)\n", c.Factor, c.Unit, c.R, c.N))
		}
	}

	writeCategories(&b, "USER TYPES", "user_type", d.UserTypes)

	if d.Rejected > 0 || len(d.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		if d.Rejected > 0 {
			b.WriteString(fmt.Sprintf("- %d rows rejected at load\n", d.Rejected))
		}
		for _, w := range d.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (d *Dashboard) limit(n int) int {
	if d.maxRows > 0 && n > d.maxRows {
		return d.maxRows
	}
	return n
}

func writeCategories(b *strings.Builder, section, key string, rows []pipeline.CategoryCount) {
	b.WriteString("\n[" + section + "]\n")
	b.WriteString(fmt.Sprintf("| %s | rentals_count |\n| --- | --- |\n", key))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("| %s | %s |\n", r.Label, humanize.Comma(int64(r.RentalsCount))))
	}
}

func writeMore(b *strings.Builder, n int) {
	if n > 0 {
		b.WriteString(fmt.Sprintf("… %d more rows\n", n))
	}
}
