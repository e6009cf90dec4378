package forecast

import (
	"fmt"
	"math"
)

// Coordinates identifies the location a forecast is requested for
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lon)
}

// key rounds to two decimals (roughly 1 km) so nearby clicks share a forecast
func (c Coordinates) key() string {
	return fmt.Sprintf("%.2f,%.2f", round2(c.Lat), round2(c.Lon))
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// avoid "-0.00"
		return 0
	}
	return r
}

// WaveHeight is a wave height range in metres
type WaveHeight struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DailyForecast holds the conditions for one day
type DailyForecast struct {
	Day           string     `json:"day"`
	WaveHeight    WaveHeight `json:"waveHeight"`
	SwellPeriod   float64    `json:"swellPeriod"`   // seconds
	WindSpeed     float64    `json:"windSpeed"`     // knots
	WindDirection string     `json:"windDirection"` // compass point, e.g. NW or ESE
	Summary       string     `json:"summary"`
}

// SurfForecast is a multi-day forecast for a named coastal location
type SurfForecast struct {
	LocationName string          `json:"locationName"`
	Forecast     []DailyForecast `json:"forecast"`
}

// Days returns the number of forecast days
func (f *SurfForecast) Days() int {
	if f == nil {
		return 0
	}
	return len(f.Forecast)
}

// clone returns a deep copy so cached forecasts cannot be mutated by callers
func (f *SurfForecast) clone() *SurfForecast {
	if f == nil {
		return nil
	}
	out := &SurfForecast{LocationName: f.LocationName}
	out.Forecast = append([]DailyForecast(nil), f.Forecast...)
	return out
}
