package pipeline

import (
	"sort"
	"time"

	"github.com/KaramelBytes/bikedash/internal/dataset"
)

// DailyRental is one row of the daily rentals table.
type DailyRental struct {
	Date         time.Time `json:"date"`
	RentalsCount int       `json:"rentals_count"`
}

// CategoryCount is one labelled row of a season, weather or user-type table.
type CategoryCount struct {
	Label        string `json:"label"`
	RentalsCount int    `json:"rentals_count"`
}

// WeatherFactor is one rescaled weather observation.
type WeatherFactor struct {
	Date         time.Time `json:"date"`
	TempC        float64   `json:"temp"`
	HumidityPct  float64   `json:"hum"`
	WindspeedKmh float64   `json:"windspeed"`
}

// Physical-unit conversions that invert the dataset's [0,1] normalization.
const (
	TempScale      = 41.0
	HumidityScale  = 100.0
	WindspeedScale = 67.0
)

// Labels of the two user-type rows.
const (
	Casual     = "casual"
	Registered = "registered"
)

// TotalRentals sums cnt across the subset.
func TotalRentals(subset []dataset.Record) int {
	total := 0
	for _, r := range subset {
		total += r.Count
	}
	return total
}

// DailyRentals sums cnt per calendar day, ascending by date.
// Days without records are not synthesized.
func DailyRentals(subset []dataset.Record) []DailyRental {
	sums := map[time.Time]int{}
	var days []time.Time
	for _, r := range subset {
		d := dataset.Day(r.Date)
		if _, ok := sums[d]; !ok {
			days = append(days, d)
		}
		sums[d] += r.Count
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	out := make([]DailyRental, 0, len(days))
	for _, d := range days {
		out = append(out, DailyRental{Date: d, RentalsCount: sums[d]})
	}
	return out
}

// SeasonSummary sums cnt per season, sorted descending by count.
// Ties keep ascending season code order.
func SeasonSummary(subset []dataset.Record) []CategoryCount {
	sums := map[dataset.Season]int{}
	for _, r := range subset {
		sums[r.Season] += r.Count
	}
	codes := make([]dataset.Season, 0, len(sums))
	for c := range sums {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	out := make([]CategoryCount, 0, len(codes))
	for _, c := range codes {
		out = append(out, CategoryCount{Label: c.Label(), RentalsCount: sums[c]})
	}
	sortDesc(out)
	return out
}

// WeatherSummary sums cnt per weather situation in ascending code order.
func WeatherSummary(subset []dataset.Record) []CategoryCount {
	sums := map[dataset.Weather]int{}
	for _, r := range subset {
		sums[r.Weather] += r.Count
	}
	codes := make([]dataset.Weather, 0, len(sums))
	for c := range sums {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	out := make([]CategoryCount, 0, len(codes))
	for _, c := range codes {
		out = append(out, CategoryCount{Label: c.Label(), RentalsCount: sums[c]})
	}
	return out
}

// WeatherFactorSeries rescales temp, hum and windspeed for every record, in record order.
// Rows are not aggregated per day.
func WeatherFactorSeries(subset []dataset.Record) []WeatherFactor {
	out := make([]WeatherFactor, 0, len(subset))
	for _, r := range subset {
		out = append(out, WeatherFactor{
			Date:         r.Date,
			TempC:        r.Temp * TempScale,
			HumidityPct:  r.Humidity * HumidityScale,
			WindspeedKmh: r.Windspeed * WindspeedScale,
		})
	}
	return out
}

// UserTypeSummary returns the casual and registered totals, sorted descending.
// An empty subset yields two zero rows.
func UserTypeSummary(subset []dataset.Record) []CategoryCount {
	var casual, registered int
	for _, r := range subset {
		casual += r.Casual
		registered += r.Registered
	}
	out := []CategoryCount{
		{Label: Casual, RentalsCount: casual},
		{Label: Registered, RentalsCount: registered},
	}
	sortDesc(out)
	return out
}

func sortDesc(rows []CategoryCount) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].RentalsCount > rows[j].RentalsCount })
}
