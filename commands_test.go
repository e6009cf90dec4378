package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"surfglobe/internal/forecast"
)

func TestPrintForecast(t *testing.T) {
	coords := forecast.Coordinates{Lat: 21.67, Lon: -158.06}
	var buf bytes.Buffer

	printForecast(&buf, coords, forecast.MockForecast(coords))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Surf Forecast: Coastal Area near (21.67, -158.06)\n"))
	assert.Contains(t, out, "Nearest known spot: ")
	assert.Contains(t, out, "Mon   1.2-1.8m    12s swell    10kt NW")
	assert.Contains(t, out, "Smaller but clean conditions, good for longboarding.")
	assert.Equal(t, 5, strings.Count(out, "s swell"))
}
