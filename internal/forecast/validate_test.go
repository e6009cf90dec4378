package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		coords Coordinates
		field  string
	}{
		{Coordinates{Lat: 0, Lon: 0}, ""},
		{Coordinates{Lat: 90, Lon: 180}, ""},
		{Coordinates{Lat: -90, Lon: -180}, ""},
		{Coordinates{Lat: 90.01, Lon: 0}, "lat"},
		{Coordinates{Lat: math.NaN(), Lon: 0}, "lat"},
		{Coordinates{Lat: 0, Lon: -180.5}, "lon"},
	}

	for _, tt := range tests {
		err := ValidateCoordinates(tt.coords)
		if tt.field == "" {
			assert.NoError(t, err, "%v", tt.coords)
			continue
		}
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "%v", tt.coords)
		assert.Equal(t, tt.field, verr.Field)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *SurfForecast {
		return MockForecast(Coordinates{Lat: 1, Lon: 2})
	}

	tests := []struct {
		name   string
		mutate func(f *SurfForecast)
		field  string
	}{
		{"valid", func(f *SurfForecast) {}, ""},
		{"blank name", func(f *SurfForecast) { f.LocationName = "  " }, "locationName"},
		{"no days", func(f *SurfForecast) { f.Forecast = nil }, "forecast"},
		{"blank day", func(f *SurfForecast) { f.Forecast[1].Day = "" }, "forecast[1].day"},
		{"min above max", func(f *SurfForecast) { f.Forecast[0].WaveHeight = WaveHeight{Min: 2, Max: 1} }, "forecast[0].waveHeight"},
		{"negative wave", func(f *SurfForecast) { f.Forecast[0].WaveHeight.Min = -1 }, "forecast[0].waveHeight"},
		{"negative period", func(f *SurfForecast) { f.Forecast[3].SwellPeriod = -1 }, "forecast[3].swellPeriod"},
		{"negative wind", func(f *SurfForecast) { f.Forecast[4].WindSpeed = -3 }, "forecast[4].windSpeed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(f)

			err := Validate(f)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.Error(t, Validate(nil))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "API error 503: overloaded", (&APIError{StatusCode: 503, Message: "overloaded"}).Error())
	assert.Equal(t, "validation error for field 'lat': bad", (&ValidationError{Field: "lat", Message: "bad"}).Error())

	cause := errors.New("boom")
	nerr := &NetworkError{Operation: "dial", Err: cause}
	assert.Equal(t, "network error during dial: boom", nerr.Error())
	assert.ErrorIs(t, nerr, cause)
}

func TestCoordinatesKey(t *testing.T) {
	assert.Equal(t, "38.96,-9.42", Coordinates{Lat: 38.9631, Lon: -9.4154}.key())
	assert.Equal(t, "0.00,0.00", Coordinates{Lat: -0.001, Lon: 0.004}.key())
	assert.Equal(t, Coordinates{Lat: 1.001, Lon: 2.002}.key(), Coordinates{Lat: 1.004, Lon: 1.998}.key())
}
