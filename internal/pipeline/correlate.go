package pipeline

import (
	"math"

	"github.com/KaramelBytes/bikedash/internal/dataset"
)

// FactorCorrelation is the Pearson correlation between one weather factor and cnt.
type FactorCorrelation struct {
	Factor string  `json:"factor"`
	Unit   string  `json:"unit"`
	R      float64 `json:"r"`
	N      int     `json:"n"`
}

// Factor names, in the order FactorCorrelations reports them.
const (
	FactorTemp      = "temp"
	FactorHumidity  = "hum"
	FactorWindspeed = "windspeed"
)

type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (pa *pairAcc) add(x, y float64) {
	pa.n++
	pa.sumX += x
	pa.sumY += y
	pa.sumXX += x * x
	pa.sumYY += y * y
	pa.sumXY += x * y
}

// r returns the clamped Pearson coefficient; degenerate inputs yield 0.
func (pa *pairAcc) r() float64 {
	if pa.n < 2 {
		return 0
	}
	denom := math.Sqrt((pa.n*pa.sumXX - pa.sumX*pa.sumX) * (pa.n*pa.sumYY - pa.sumY*pa.sumY))
	var r float64
	if denom != 0 {
		r = (pa.n*pa.sumXY - pa.sumX*pa.sumY) / denom
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		r = 0
	}
	return r
}

// FactorCorrelations correlates each rescaled weather factor with per-record cnt.
func FactorCorrelations(subset []dataset.Record) []FactorCorrelation {
	var temp, hum, wind pairAcc
	for _, f := range subset {
		y := float64(f.Count)
		temp.add(f.Temp*TempScale, y)
		hum.add(f.Humidity*HumidityScale, y)
		wind.add(f.Windspeed*WindspeedScale, y)
	}
	n := len(subset)
	return []FactorCorrelation{
		{Factor: FactorTemp, Unit: "°C", R: temp.r(), N: n},
		{Factor: FactorHumidity, Unit: "%", R: hum.r(), N: n},
		{Factor: FactorWindspeed, Unit: "km/h", R: wind.r(), N: n},
	}
}
