package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"surfglobe/internal/debug"
	"surfglobe/internal/forecast"
	"surfglobe/internal/geo"
	"surfglobe/internal/globe"
	"surfglobe/internal/render"
)

const (
	frameInterval = 50 * time.Millisecond  // 20 FPS
	pulseHalf     = 750 * time.Millisecond // marker pulse is 1.5s per cycle
	arrowCells    = 4                      // cells of drag per arrow key press
	panelWidth    = 56
)

// AppOptions configures an App
type AppOptions struct {
	Provider     forecast.Provider
	Features     map[geo.FeatureType][]*geo.Feature
	POIs         []geo.POI
	Land         *geo.LandIndex
	AspectRatio  float64
	Rotation     *globe.Rotation
	Sensitivity  float64
	ZoomStep     float64
	ZoomDuration time.Duration
	Timeout      time.Duration // per forecast request, 0 for none
	Clock        clockwork.Clock
}

// App is the main application controller
type App struct {
	screen    tcell.Screen
	globe     *globe.Globe
	globeView *GlobeView
	panel     *ForecastPanel
	status    *StatusBar
	state     *State
	fetcher   *forecast.Fetcher
	provider  forecast.Provider
	clock     clockwork.Clock
	started   time.Time

	buttons  tcell.ButtonMask
	events   chan tcell.Event
	pollDone chan struct{}
	quit     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewApp creates a new application. A nil screen creates the terminal screen.
func NewApp(screen tcell.Screen, opts AppOptions) (*App, error) {
	if opts.Provider == nil {
		return nil, errors.New("forecast provider is required")
	}

	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create screen: %w", err)
		}
		screen = s
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.Clear()

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	var features []*geo.Feature
	features = append(features, opts.Features[geo.FeatureCountry]...)
	features = append(features, opts.Features[geo.FeatureCoastline]...)

	g := globe.New(globe.Options{
		Rotation:     opts.Rotation,
		Sensitivity:  opts.Sensitivity,
		ZoomStep:     opts.ZoomStep,
		ZoomDuration: opts.ZoomDuration,
		POIs:         opts.POIs,
		Features:     features,
		Clock:        clock,
	})

	width, height := screen.Size()

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		screen:    screen,
		globe:     g,
		globeView: NewGlobeView(g, opts.Land, 1, width, globeRows(height), opts.AspectRatio),
		panel:     NewForecastPanel(0, 0, 0, 0),
		status:    NewStatusBar(width, height, forecast.IsMock(opts.Provider)),
		state:     NewState(),
		fetcher:   forecast.NewFetcher(opts.Provider, opts.Timeout),
		provider:  opts.Provider,
		clock:     clock,
		started:   clock.Now(),
		events:    make(chan tcell.Event),
		pollDone:  make(chan struct{}),
		quit:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
	app.layoutPanel()

	return app, nil
}

// globeRows is the height left for the globe between the header and footer
func globeRows(height int) int {
	return max(height-2, 0)
}

// Run starts the application main loop
func (a *App) Run() error {
	defer a.cleanup()

	if c, ok := a.provider.(*forecast.Cache); ok {
		c.StartPruning(a.ctx, 0)
	}

	go a.pollEvents()

	ticker := a.clock.NewTicker(frameInterval)
	defer ticker.Stop()

	a.render()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-a.events:
			if !a.handleEvent(ev) {
				return nil // Quit requested
			}
			a.render()

		case r, ok := <-a.fetcher.Results():
			if ok {
				a.handleResult(r)
				a.render()
			}

		case <-ticker.Chan():
			a.update()
			a.render()
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized
func (a *App) pollEvents() {
	defer close(a.pollDone)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.ctx.Done():
			return
		}
	}
}

// update advances animations
func (a *App) update() {
	a.globe.Tick()
	if a.state.Loading() {
		a.status.Tick()
	}
}

// pulse reports which half of the marker pulse cycle we are in
func (a *App) pulse() bool {
	return (a.clock.Since(a.started)/pulseHalf)%2 == 1
}

// render renders the current view to the screen
func (a *App) render() {
	a.screen.Clear()

	a.globeView.Draw(a.screen, a.pulse())

	if a.state.Phase() == PhaseForecast {
		a.panel.Draw(a.screen)
	}

	a.status.Draw(a.screen, a.state, a.globe.ZoomFactor())

	a.screen.Show()
}

// handleEvent processes keyboard, mouse and resize events
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	dx, dy := a.globeView.DragStep()

	switch ev.Key() {
	case tcell.KeyCtrlC:
		close(a.quit)
		return false

	case tcell.KeyEscape:
		switch a.state.Phase() {
		case PhaseForecast, PhaseError:
			a.closeForecast()
		case PhaseLoading:
			a.cancelForecast()
		default:
			close(a.quit)
			return false
		}

	case tcell.KeyEnter:
		if ll, ok := a.globe.Click(a.globeView.Center()); ok {
			a.selectLocation(ll)
		}

	case tcell.KeyUp:
		if a.state.Phase() == PhaseForecast {
			a.panel.SelectPrev()
		} else {
			a.globe.Drag(0, -arrowCells*dy)
		}

	case tcell.KeyDown:
		if a.state.Phase() == PhaseForecast {
			a.panel.SelectNext()
		} else {
			a.globe.Drag(0, arrowCells*dy)
		}

	case tcell.KeyLeft:
		a.globe.Drag(-arrowCells*dx, 0)

	case tcell.KeyRight:
		a.globe.Drag(arrowCells*dx, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			close(a.quit)
			return false

		case 'r', 'R':
			a.globeView.Invalidate()

		case 'c', 'C':
			if ll, ok := a.globe.Marker(); ok {
				a.globe.CenterOn(ll)
			}

		case '+', '=':
			a.globe.ZoomIn()

		case '-', '_':
			a.globe.ZoomOut()
		}
	}

	return true
}

// handleMouse turns button transitions into pointer gestures. A press and
// release without movement selects a location.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.globe.ZoomIn()
		return
	case buttons&tcell.WheelDown != 0:
		a.globe.ZoomOut()
		return
	}

	prev := a.buttons
	a.buttons = buttons & tcell.ButtonPrimary

	p, inside := a.globeView.PointAt(x, y)
	pressed := buttons&tcell.ButtonPrimary != 0
	wasPressed := prev&tcell.ButtonPrimary != 0

	switch {
	case pressed && !wasPressed:
		if a.overPanel(x, y) {
			return
		}
		switch a.globeView.ControlAt(x, y) {
		case render.ZoomInButton:
			a.globe.ZoomIn()
		case render.ZoomOutButton:
			a.globe.ZoomOut()
		default:
			if inside {
				a.globe.PointerDown(p)
			}
		}
	case pressed && wasPressed:
		if inside {
			a.globe.PointerMove(p)
		}
	case !pressed && wasPressed:
		if ll, ok := a.globe.PointerUp(); ok {
			a.selectLocation(ll)
		}
	}
}

// overPanel reports whether a cell is covered by the forecast panel
func (a *App) overPanel(x, y int) bool {
	if a.state.Phase() != PhaseForecast {
		return false
	}
	p := a.panel
	return x >= p.x && x < p.x+p.width && y >= p.y && y < p.y+p.height
}

// selectLocation starts a forecast request for ll
func (a *App) selectLocation(ll geo.LatLon) {
	coords := forecast.Coordinates{Lat: ll.Lat, Lon: ll.Lon}
	seq := a.fetcher.Request(coords)
	a.state.Select(coords, seq)
	a.globe.SetLoading(true)
	a.panel.SetForecast(nil)
	debug.Log("requested forecast #%d for %s", seq, coords)
}

// handleResult applies a finished request
func (a *App) handleResult(r forecast.Result) {
	if !a.state.Resolve(r) {
		debug.Log("ignoring forecast result #%d", r.Seq)
		return
	}
	a.globe.SetLoading(false)

	if r.Err != nil {
		debug.Log("forecast #%d failed: %v", r.Seq, r.Err)
		return
	}
	a.panel.SetForecast(r.Forecast)
	a.layoutPanel()
}

// closeForecast dismisses the forecast or error
func (a *App) closeForecast() {
	a.state.Close()
	a.panel.SetForecast(nil)
}

// cancelForecast abandons the pending request and removes its marker
func (a *App) cancelForecast() {
	a.fetcher.Cancel()
	a.state.Cancel()
	a.globe.SetLoading(false)
	a.globe.ClearMarker()
	debug.Log("forecast request cancelled")
}

// layoutPanel places the forecast panel in the lower-left corner above the footer
func (a *App) layoutPanel() {
	width, height := a.screen.Size()

	panelHeight := min(PreferredHeight(a.panel.Forecast()), globeRows(height))
	a.panel.UpdateDimensions(0, height-1-panelHeight, min(panelWidth, width), panelHeight)
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.globeView.UpdateDimensions(1, width, globeRows(height))
	a.status.UpdateDimensions(width, height)
	a.layoutPanel()
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	if a.cancel != nil {
		a.cancel()
	}

	if a.fetcher != nil {
		a.fetcher.Close()
	}

	if a.screen != nil {
		a.screen.Fini()
		<-a.pollDone
	}

	debug.Sync()
}
