// Package chart builds the declarative chart requests handed to a presentation host
// alongside each dashboard table. Requests carry no data; XField and YField name
// columns of the table they accompany.
package chart

import (
	"fmt"

	"github.com/KaramelBytes/bikedash/internal/pipeline"
)

// Kind is the chart type a host should draw.
type Kind string

const (
	Line     Kind = "line"
	Bar      Kind = "bar"
	DualLine Kind = "dual_line"
)

// Table names as exposed by the dashboard.
const (
	TableDaily     = "daily_rentals"
	TableSeasons   = "season_summary"
	TableWeather   = "weather_summary"
	TableFactors   = "weather_factors"
	TableUserTypes = "user_type_summary"
)

// Palette holds the three colors a dashboard uses.
type Palette struct {
	Highlight string `json:"highlight"`
	Muted     string `json:"muted"`
	Accent    string `json:"accent"`
}

// DefaultPalette returns the stock dashboard colors.
func DefaultPalette() Palette {
	return Palette{Highlight: "#90CAF9", Muted: "#D3D3D3", Accent: "#FF5733"}
}

// Axis describes a secondary y axis drawn over the primary series.
type Axis struct {
	Table string `json:"table"`
	Field string `json:"field"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Request is a declarative chart description.
type Request struct {
	ID        string            `json:"id"`
	Table     string            `json:"table"`
	Kind      Kind              `json:"kind"`
	Title     string            `json:"title"`
	XField    string            `json:"x_field"`
	YField    string            `json:"y_field"`
	XLabel    string            `json:"x_label"`
	YLabel    string            `json:"y_label"`
	Labels    map[string]string `json:"labels,omitempty"`
	Highlight string            `json:"highlight,omitempty"`
	Colors    []string          `json:"colors,omitempty"`
	Secondary *Axis             `json:"secondary,omitempty"`
}

// DailyRentals is the line chart over the daily rentals table.
func DailyRentals(p Palette) Request {
	return Request{
		ID:     "daily_rentals",
		Table:  TableDaily,
		Kind:   Line,
		Title:  "Daily Rentals",
		XField: "date",
		YField: "rentals_count",
		XLabel: "Date",
		YLabel: "Rentals Count",
		Labels: map[string]string{"rentals_count": "Rentals Count", "date": "Date"},
		Colors: []string{p.Highlight},
	}
}

// Seasons is the bar chart over the season summary.
func Seasons(rows []pipeline.CategoryCount, p Palette) Request {
	return categoryBar("seasons", TableSeasons, "Number of Rentals by Season", "Season", rows, p)
}

// Weather is the bar chart over the weather summary.
func Weather(rows []pipeline.CategoryCount, p Palette) Request {
	return categoryBar("weather", TableWeather, "Number of Rentals by Weathersit", "Weathersit", rows, p)
}

// UserTypes is the bar chart over the user-type summary.
func UserTypes(rows []pipeline.CategoryCount, p Palette) Request {
	return categoryBar("user_types", TableUserTypes, "Number of Rentals by User Type", "User Type", rows, p)
}

// categoryBar highlights the first row and mutes every other category.
func categoryBar(id, table, title, xLabel string, rows []pipeline.CategoryCount, p Palette) Request {
	req := Request{
		ID:     id,
		Table:  table,
		Kind:   Bar,
		Title:  title,
		XField: "label",
		YField: "rentals_count",
		XLabel: xLabel,
		YLabel: "Rentals Count",
		Labels: map[string]string{"label": xLabel, "rentals_count": "Rentals Count"},
	}
	req.Colors = make([]string, len(rows))
	for i := range rows {
		if i == 0 {
			req.Colors[i] = p.Highlight
			req.Highlight = rows[i].Label
			continue
		}
		req.Colors[i] = p.Muted
	}
	return req
}

var factorAxes = map[string]struct{ name, label string }{
	pipeline.FactorTemp:      {"Temperature", "Temperature (°C)"},
	pipeline.FactorHumidity:  {"Humidity", "Humidity (%)"},
	pipeline.FactorWindspeed: {"Windspeed", "Windspeed (km/h)"},
}

// Factors lists the weather factors FactorOverlay accepts, in display order.
var Factors = []string{pipeline.FactorTemp, pipeline.FactorHumidity, pipeline.FactorWindspeed}

// FactorOverlay pairs daily rentals with one weather factor on a secondary axis.
func FactorOverlay(factor string, p Palette) (Request, error) {
	ax, ok := factorAxes[factor]
	if !ok {
		return Request{}, fmt.Errorf("unknown weather factor: %s", factor)
	}
	return Request{
		ID:     factor + "_overlay",
		Table:  TableDaily,
		Kind:   DualLine,
		Title:  ax.name + " and Rentals",
		XField: "date",
		YField: "rentals_count",
		XLabel: "Date",
		YLabel: "Rentals Count",
		Colors: []string{p.Highlight},
		Secondary: &Axis{
			Table: TableFactors,
			Field: factor,
			Label: ax.label,
			Color: p.Accent,
		},
	}, nil
}
