package globe

import (
	"time"

	"github.com/jonboulle/clockwork"

	"surfglobe/internal/debug"
	"surfglobe/internal/geo"
)

// Options configures a Globe
type Options struct {
	Width        float64         // pixel width of the drawing area
	Height       float64         // pixel height of the drawing area
	Rotation     *Rotation       // initial rotation, nil for DefaultRotation
	Sensitivity  float64         // drag sensitivity, 0 for DefaultSensitivity
	ZoomDuration time.Duration   // zoom transition, 0 for the default, <0 for none
	ZoomStep     float64         // factor per zoom step, 0 for ZoomStep
	POIs         []geo.POI       // labelled points of interest
	Features     []*geo.Feature  // countries and coastlines to outline
	Clock        clockwork.Clock // time source for transitions, nil for real time
}

// Globe is the interactive globe state: projection, zoom, the selected marker
// and the loading flag that freezes interaction while a forecast is pending
type Globe struct {
	proj        *Projection
	zoom        *Zoom
	drag        Drag
	baseScale   float64
	sensitivity float64
	zoomStep    float64
	width       float64
	height      float64

	marker  *geo.LatLon
	loading bool

	pois      []geo.POI
	features  []*geo.Feature
	graticule *geo.Feature

	clock   clockwork.Clock
	version uint64
}

// New creates a globe from opts
func New(opts Options) *Globe {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	sensitivity := opts.Sensitivity
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}

	step := opts.ZoomStep
	if step <= 1 {
		step = ZoomStep
	}

	duration := opts.ZoomDuration
	if duration == 0 {
		duration = DefaultZoomDuration
	}

	g := &Globe{
		proj:        NewProjection(opts.Width, opts.Height),
		zoom:        NewZoom(duration),
		sensitivity: sensitivity,
		zoomStep:    step,
		pois:        opts.POIs,
		features:    opts.Features,
		graticule:   geo.Graticule(10, 2.5),
		clock:       clock,
	}
	if opts.Rotation != nil {
		g.proj.SetRotation(*opts.Rotation)
	}
	g.Resize(opts.Width, opts.Height)

	return g
}

// Projection returns the live projection
func (g *Globe) Projection() *Projection {
	return g.proj
}

// Version increases every time the projection, marker or loading state changes
func (g *Globe) Version() uint64 {
	return g.version
}

func (g *Globe) changed() {
	g.version++
}

// Resize recomputes the base scale for a new drawing area, keeping the zoom factor
func (g *Globe) Resize(width, height float64) {
	g.width = width
	g.height = height
	g.baseScale = BaseScale(width, height)
	g.proj.Resize(width, height)
	g.proj.SetScale(g.baseScale * g.zoom.K())
	g.changed()
}

// Size returns the drawing area in pixels
func (g *Globe) Size() (width, height float64) {
	return g.width, g.height
}

// BaseScale returns the unzoomed globe radius
func (g *Globe) BaseScale() float64 {
	return g.baseScale
}

// ZoomFactor returns the current zoom factor k
func (g *Globe) ZoomFactor() float64 {
	return g.zoom.K()
}

// SetLoading freezes or unfreezes interaction
func (g *Globe) SetLoading(loading bool) {
	if g.loading == loading {
		return
	}
	g.loading = loading
	if loading {
		g.drag.Cancel()
	}
	g.changed()
}

// Loading reports whether interaction is frozen
func (g *Globe) Loading() bool {
	return g.loading
}

// Drag rotates the globe by a pointer delta in pixels
// The rotation per pixel shrinks as the globe grows so a drag follows the pointer
func (g *Globe) Drag(dx, dy float64) bool {
	if g.loading || (dx == 0 && dy == 0) {
		return false
	}

	k := g.sensitivity / g.proj.Scale()
	g.proj.Rotate(dx*k, -dy*k)
	g.changed()
	return true
}

// PointerDown starts a pointer gesture
func (g *Globe) PointerDown(p Point) {
	g.drag.Begin(p)
}

// PointerMove continues a gesture and rotates the globe when dragging
func (g *Globe) PointerMove(p Point) bool {
	dx, dy, ok := g.drag.Move(p)
	if !ok {
		return false
	}
	return g.Drag(dx, dy)
}

// PointerUp finishes a gesture; a gesture without movement is a click and
// may select a coordinate
func (g *Globe) PointerUp() (geo.LatLon, bool) {
	origin, click := g.drag.End()
	if !click {
		return geo.LatLon{}, false
	}
	return g.Click(origin)
}

// Dragging reports whether a pointer gesture is in progress
func (g *Globe) Dragging() bool {
	return g.drag.Active()
}

// ZoomBy starts a zoom transition by factor, bounded to [MinZoom, MaxZoom]
func (g *Globe) ZoomBy(factor float64) bool {
	if g.loading {
		return false
	}
	oldK := g.zoom.K()
	wasAnimating := g.zoom.Animating()

	g.zoom.ScaleBy(factor, g.clock.Now())
	if g.zoom.Animating() {
		return true
	}

	// instant zoom, or already at the bound
	if g.zoom.K() == oldK && !wasAnimating {
		return false
	}
	g.applyZoom()
	return true
}

// ZoomIn zooms in by one step
func (g *Globe) ZoomIn() bool {
	return g.ZoomBy(g.zoomStep)
}

// ZoomOut zooms out by one step
func (g *Globe) ZoomOut() bool {
	return g.ZoomBy(1 / g.zoomStep)
}

// Animating reports whether a zoom transition still needs ticks
func (g *Globe) Animating() bool {
	return g.zoom.Animating()
}

// Tick advances a zoom transition to the current time
func (g *Globe) Tick() bool {
	if !g.zoom.Step(g.clock.Now()) {
		return false
	}
	g.applyZoom()
	return true
}

func (g *Globe) applyZoom() {
	g.proj.SetScale(g.baseScale * g.zoom.K())
	g.changed()
}

// Click selects the coordinate under a pixel position
// Clicks outside the disc, on the far side of the globe or while loading are
// ignored, as are points landing exactly on the equator or prime meridian
func (g *Globe) Click(p Point) (geo.LatLon, bool) {
	if g.loading {
		return geo.LatLon{}, false
	}

	ll, ok := g.proj.Invert(p)
	if !ok || ll.Lat == 0 || ll.Lon == 0 {
		return geo.LatLon{}, false
	}
	if !g.proj.Visible(ll) {
		return geo.LatLon{}, false
	}

	g.SetMarker(ll)
	debug.Log("selected %s", ll)
	return ll, true
}

// SetMarker places the selection marker
func (g *Globe) SetMarker(ll geo.LatLon) {
	g.marker = &ll
	g.changed()
}

// ClearMarker removes the selection marker
func (g *Globe) ClearMarker() {
	if g.marker == nil {
		return
	}
	g.marker = nil
	g.changed()
}

// Marker returns the selected coordinate
func (g *Globe) Marker() (geo.LatLon, bool) {
	if g.marker == nil {
		return geo.LatLon{}, false
	}
	return *g.marker, true
}

// CenterOn rotates the globe so ll faces the viewer
func (g *Globe) CenterOn(ll geo.LatLon) {
	if g.loading {
		return
	}
	r := g.proj.Rotation()
	r.Lambda = -ll.Lon
	r.Phi = -ll.Lat
	g.proj.SetRotation(r)
	g.changed()
}

// Visible reports whether ll is on the hemisphere facing the viewer
func (g *Globe) Visible(ll geo.LatLon) bool {
	return g.proj.Visible(ll)
}

// POIs returns the points of interest shown on the globe
func (g *Globe) POIs() []geo.POI {
	return g.pois
}
