package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"surfglobe/internal/render"
)

const (
	appTitle    = "AI Surf Forecaster"
	hintText    = "Click to get a forecast. Drag to rotate. Scroll or +/- to zoom. q to quit."
	introText   = "Click the globe to begin..."
	loadingText = "Fetching surf forecast..."
)

var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// StatusBar draws the header line and the footer line below the globe
type StatusBar struct {
	width  int
	height int
	frame  int
	mock   bool
}

// NewStatusBar creates a status bar for a screen of width x height cells
func NewStatusBar(width, height int, mock bool) *StatusBar {
	return &StatusBar{width: width, height: height, mock: mock}
}

// Tick advances the loading spinner
func (s *StatusBar) Tick() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// Draw renders the header and the footer for the current phase
func (s *StatusBar) Draw(screen tcell.Screen, state *State, zoom float64) {
	if s.width <= 0 || s.height <= 0 {
		return
	}

	s.fill(screen, 0, render.StyleHeader)
	n := drawText(screen, 1, 0, render.Truncate(appTitle, s.width-2), render.StyleHeader.Bold(true))

	right := fmt.Sprintf("zoom %.1fx", zoom)
	if s.mock {
		right = "mock data · " + right
	}
	rightX := s.width - render.TextWidth(right) - 1
	if rightX > n+2 {
		drawText(screen, rightX, 0, right, render.StyleHeader)
	}

	if s.height < 2 {
		return
	}
	footer := s.height - 1
	s.fill(screen, footer, tcell.StyleDefault)

	switch state.Phase() {
	case PhaseLoading:
		text := string(spinnerFrames[s.frame]) + " " + loadingText
		if c, ok := state.Coords(); ok {
			text += " (" + c.String() + ")"
		}
		drawText(screen, 1, footer, render.Truncate(text, s.width-2), render.StyleLoading)
	case PhaseError:
		text := state.Error() + "  Esc to dismiss"
		drawText(screen, 1, footer, render.Truncate(text, s.width-2), render.StyleError)
	case PhaseForecast:
		drawText(screen, 1, footer, render.Truncate(hintText, s.width-2), render.StyleHint)
	default:
		text := hintText
		if state.ShowIntro() {
			text = introText
		}
		drawText(screen, 1, footer, render.Truncate(text, s.width-2), render.StyleHint)
	}
}

func (s *StatusBar) fill(screen tcell.Screen, row int, style tcell.Style) {
	for x := 0; x < s.width; x++ {
		screen.SetContent(x, row, ' ', nil, style)
	}
}

// UpdateDimensions updates the bar when the screen is resized
func (s *StatusBar) UpdateDimensions(width, height int) {
	s.width = width
	s.height = height
}
