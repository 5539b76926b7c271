package dataset

import (
	"strconv"
	"time"
)

// Season is the categorical season code used by the source dataset (1-4).
type Season int

// Weather is the categorical weathersit code used by the source dataset (1-4).
type Weather int

var seasonLabels = map[Season]string{
	1: "springer",
	2: "summer",
	3: "fall",
	4: "winter",
}

var weatherLabels = map[Weather]string{
	1: "Clear",
	2: "Misty",
	3: "Light Precipitation",
	4: "Heavy Precipitation",
}

// Label returns the display label for the season. Unknown codes render as the code itself.
func (s Season) Label() string {
	if l, ok := seasonLabels[s]; ok {
		return l
	}
	return strconv.Itoa(int(s))
}

// Label returns the display label for the weather situation.
func (w Weather) Label() string {
	if l, ok := weatherLabels[w]; ok {
		return l
	}
	return strconv.Itoa(int(w))
}

// Record is one row of rental data at its native granularity (daily or hourly).
// Temp, Humidity and Windspeed are normalized into [0,1] by the source dataset.
type Record struct {
	Date       time.Time
	Hour       int // -1 when the dataset has no hr column
	Count      int
	Casual     int
	Registered int
	Season     Season
	Weather    Weather
	Temp       float64
	Humidity   float64
	Windspeed  float64
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
