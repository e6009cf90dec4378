package ui

import (
	"surfglobe/internal/forecast"
)

// Phase is what the bottom of the screen is showing
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseLoading
	PhaseError
	PhaseForecast
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseForecast:
		return "forecast"
	default:
		return "unknown"
	}
}

// State tracks the forecast request lifecycle: the intro prompt, a pending
// request, and its forecast or error
type State struct {
	showIntro bool
	loading   bool
	forecast  *forecast.SurfForecast
	err       string
	coords    *forecast.Coordinates
	seq       uint64
}

// NewState starts on the intro prompt
func NewState() *State {
	return &State{showIntro: true}
}

// Select records a new request. It hides the intro and clears the previous
// forecast and error.
func (s *State) Select(c forecast.Coordinates, seq uint64) {
	s.showIntro = false
	s.loading = true
	s.forecast = nil
	s.err = ""
	s.coords = &c
	s.seq = seq
}

// Resolve applies a result if it belongs to the latest request
func (s *State) Resolve(r forecast.Result) bool {
	if !s.loading || r.Seq != s.seq {
		return false
	}

	s.loading = false
	if r.Err != nil {
		s.err = r.Err.Error()
		if s.err == "" {
			s.err = "An unexpected error occurred."
		}
		return true
	}
	s.forecast = r.Forecast
	return true
}

// Close dismisses the forecast or error and brings back the intro prompt
func (s *State) Close() {
	s.forecast = nil
	s.err = ""
	s.showIntro = true
}

// Cancel abandons a pending request and returns to the intro prompt
func (s *State) Cancel() {
	if !s.loading {
		return
	}
	s.loading = false
	s.showIntro = true
}

// Phase returns what should be shown, in priority order
func (s *State) Phase() Phase {
	switch {
	case s.loading:
		return PhaseLoading
	case s.err != "":
		return PhaseError
	case s.forecast != nil:
		return PhaseForecast
	default:
		return PhaseIntro
	}
}

// Loading reports whether a request is pending
func (s *State) Loading() bool {
	return s.loading
}

// ShowIntro reports whether the intro prompt is visible
func (s *State) ShowIntro() bool {
	return s.showIntro && !s.loading && s.err == ""
}

// Forecast returns the current forecast, if any
func (s *State) Forecast() *forecast.SurfForecast {
	return s.forecast
}

// Error returns the current error message, if any
func (s *State) Error() string {
	return s.err
}

// Coords returns the last selected coordinate
func (s *State) Coords() (forecast.Coordinates, bool) {
	if s.coords == nil {
		return forecast.Coordinates{}, false
	}
	return *s.coords, true
}
