package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"surfglobe/internal/forecast"
)

func TestState_Lifecycle(t *testing.T) {
	s := NewState()
	assert.Equal(t, PhaseIntro, s.Phase())
	assert.True(t, s.ShowIntro())

	coords := forecast.Coordinates{Lat: 21.66, Lon: -158.05}
	s.Select(coords, 1)
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.False(t, s.ShowIntro())
	got, ok := s.Coords()
	assert.True(t, ok)
	assert.Equal(t, coords, got)

	f := forecast.MockForecast(coords)
	assert.True(t, s.Resolve(forecast.Result{Seq: 1, Coords: coords, Forecast: f}))
	assert.Equal(t, PhaseForecast, s.Phase())
	assert.Same(t, f, s.Forecast())

	s.Close()
	assert.Equal(t, PhaseIntro, s.Phase())
	assert.True(t, s.ShowIntro())
	assert.Nil(t, s.Forecast())
}

func TestState_SelectClearsPreviousOutcome(t *testing.T) {
	s := NewState()
	s.Select(forecast.Coordinates{Lat: 1, Lon: 1}, 1)
	s.Resolve(forecast.Result{Seq: 1, Err: forecast.ErrForecastUnavailable})
	assert.Equal(t, PhaseError, s.Phase())
	assert.Equal(t, forecast.ErrForecastUnavailable.Error(), s.Error())

	s.Select(forecast.Coordinates{Lat: 2, Lon: 2}, 2)
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Empty(t, s.Error())
	assert.Nil(t, s.Forecast())
}

func TestState_IgnoresStaleResults(t *testing.T) {
	s := NewState()
	s.Select(forecast.Coordinates{Lat: 1, Lon: 1}, 1)
	s.Select(forecast.Coordinates{Lat: 2, Lon: 2}, 2)

	assert.False(t, s.Resolve(forecast.Result{Seq: 1, Err: errors.New("late")}))
	assert.Equal(t, PhaseLoading, s.Phase())

	assert.True(t, s.Resolve(forecast.Result{Seq: 2, Forecast: forecast.MockForecast(forecast.Coordinates{})}))
	assert.False(t, s.Resolve(forecast.Result{Seq: 2}), "already resolved")
}

func TestState_EmptyErrorMessage(t *testing.T) {
	s := NewState()
	s.Select(forecast.Coordinates{Lat: 1, Lon: 1}, 7)
	s.Resolve(forecast.Result{Seq: 7, Err: errors.New("")})
	assert.Equal(t, "An unexpected error occurred.", s.Error())
}

func TestState_Cancel(t *testing.T) {
	s := NewState()
	s.Cancel()
	assert.Equal(t, PhaseIntro, s.Phase())

	s.Select(forecast.Coordinates{Lat: 1, Lon: 1}, 3)
	s.Cancel()
	assert.Equal(t, PhaseIntro, s.Phase())
	assert.True(t, s.ShowIntro())
	assert.False(t, s.Resolve(forecast.Result{Seq: 3}))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
