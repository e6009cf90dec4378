package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// MockProvider serves a fixed five-day forecast after a short delay.
// It stands in for Gemini when no API key is configured.
type MockProvider struct {
	delay time.Duration
	clock clockwork.Clock
}

// NewMockProvider creates a mocked provider. A zero delay uses DefaultMockDelay;
// a negative delay answers immediately.
func NewMockProvider(delay time.Duration, clock clockwork.Clock) *MockProvider {
	if delay == 0 {
		delay = DefaultMockDelay
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MockProvider{delay: delay, clock: clock}
}

// Forecast waits for the configured delay and returns the canned forecast
func (m *MockProvider) Forecast(ctx context.Context, c Coordinates) (*SurfForecast, error) {
	if err := ValidateCoordinates(c); err != nil {
		return nil, err
	}

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.clock.After(m.delay):
		}
	}

	return MockForecast(c), nil
}

// MockForecast builds the canned forecast for c
func MockForecast(c Coordinates) *SurfForecast {
	return &SurfForecast{
		LocationName: fmt.Sprintf("Coastal Area near (%.2f, %.2f)", c.Lat, c.Lon),
		Forecast: []DailyForecast{
			{Day: "Mon", WaveHeight: WaveHeight{Min: 1.2, Max: 1.8}, SwellPeriod: 12, WindSpeed: 10, WindDirection: "NW", Summary: "Clean morning waves, onshore winds in the afternoon."},
			{Day: "Tue", WaveHeight: WaveHeight{Min: 1.5, Max: 2.2}, SwellPeriod: 14, WindSpeed: 8, WindDirection: "W", Summary: "Building swell, good conditions all day."},
			{Day: "Wed", WaveHeight: WaveHeight{Min: 1.8, Max: 2.5}, SwellPeriod: 14, WindSpeed: 12, WindDirection: "SW", Summary: "Peak of the swell, strong offshore winds."},
			{Day: "Thu", WaveHeight: WaveHeight{Min: 1.4, Max: 2.0}, SwellPeriod: 13, WindSpeed: 15, WindDirection: "S", Summary: "Swell easing, becoming windy and choppy."},
			{Day: "Fri", WaveHeight: WaveHeight{Min: 1.0, Max: 1.5}, SwellPeriod: 11, WindSpeed: 10, WindDirection: "SE", Summary: "Smaller but clean conditions, good for longboarding."},
		},
	}
}
