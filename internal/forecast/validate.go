package forecast

import (
	"fmt"
	"math"
	"strings"
)

// ValidateCoordinates checks that c lies on the globe
func ValidateCoordinates(c Coordinates) error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return &ValidationError{Field: "lat", Message: "must be between -90 and 90"}
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return &ValidationError{Field: "lon", Message: "must be between -180 and 180"}
	}
	return nil
}

// Validate checks a forecast returned by a provider before it is shown
func Validate(f *SurfForecast) error {
	if f == nil {
		return &ValidationError{Field: "forecast", Message: "missing"}
	}
	if strings.TrimSpace(f.LocationName) == "" {
		return &ValidationError{Field: "locationName", Message: "must not be empty"}
	}
	if len(f.Forecast) == 0 {
		return &ValidationError{Field: "forecast", Message: "must contain at least one day"}
	}

	for i, d := range f.Forecast {
		field := func(name string) string {
			return fmt.Sprintf("forecast[%d].%s", i, name)
		}

		if strings.TrimSpace(d.Day) == "" {
			return &ValidationError{Field: field("day"), Message: "must not be empty"}
		}
		if d.WaveHeight.Min < 0 || d.WaveHeight.Max < 0 {
			return &ValidationError{Field: field("waveHeight"), Message: "must not be negative"}
		}
		if d.WaveHeight.Min > d.WaveHeight.Max {
			return &ValidationError{Field: field("waveHeight"), Message: "min must not exceed max"}
		}
		if d.SwellPeriod < 0 {
			return &ValidationError{Field: field("swellPeriod"), Message: "must not be negative"}
		}
		if d.WindSpeed < 0 {
			return &ValidationError{Field: field("windSpeed"), Message: "must not be negative"}
		}
	}

	return nil
}
