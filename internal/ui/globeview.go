package ui

import (
	"github.com/gdamore/tcell/v2"

	"surfglobe/internal/debug"
	"surfglobe/internal/geo"
	"surfglobe/internal/globe"
	"surfglobe/internal/render"
)

// GlobeView displays the globe in a band of rows starting at top
type GlobeView struct {
	globe    *globe.Globe
	viewport globe.Viewport
	canvas   *render.Canvas
	renderer *render.GlobeRenderer
	top      int
	width    int
	height   int

	lastVersion uint64
	lastPulse   bool
	drawn       bool
}

// NewGlobeView creates a globe view of width x height cells drawn from row top
func NewGlobeView(g *globe.Globe, land *geo.LandIndex, top, width, height int, aspectRatio float64) *GlobeView {
	viewport := globe.NewViewport(width, height, aspectRatio)
	canvas := render.NewCanvas(width, height)

	v := &GlobeView{
		globe:    g,
		viewport: viewport,
		canvas:   canvas,
		renderer: render.NewGlobeRenderer(canvas, viewport, land),
		top:      top,
		width:    width,
		height:   height,
	}
	v.resizeGlobe()
	return v
}

// Draw renders the globe to the screen. The scene is only rebuilt when the
// globe or the marker pulse changed since the last draw.
func (v *GlobeView) Draw(screen tcell.Screen, pulse bool) {
	if !v.drawn || v.globe.Version() != v.lastVersion || pulse != v.lastPulse {
		v.renderer.Render(v.globe.Scene(), pulse)
		v.lastVersion = v.globe.Version()
		v.lastPulse = pulse
		v.drawn = true
	}
	v.canvas.Blit(screen, 0, v.top)
}

// Invalidate forces the next Draw to rebuild the scene
func (v *GlobeView) Invalidate() {
	v.drawn = false
}

// PointAt converts a screen cell to a pixel position in globe space
func (v *GlobeView) PointAt(x, y int) (globe.Point, bool) {
	if !v.viewport.Contains(x, y-v.top) {
		return globe.Point{}, false
	}
	return v.viewport.CellCenter(x, y-v.top), true
}

// ControlAt returns the zoom button under a screen cell
func (v *GlobeView) ControlAt(x, y int) render.ZoomControl {
	return v.renderer.ZoomControlAt(x, y-v.top)
}

// Center returns the pixel position of the globe centre
func (v *GlobeView) Center() globe.Point {
	return v.globe.Projection().Translate()
}

// DragStep returns the pixel delta matching one cell of horizontal movement
// and one row of vertical movement
func (v *GlobeView) DragStep() (dx, dy float64) {
	return 1, v.viewport.AspectRatio()
}

// Globe returns the globe being displayed
func (v *GlobeView) Globe() *globe.Globe {
	return v.globe
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (v *GlobeView) UpdateDimensions(top, width, height int) {
	v.top = top
	v.width = width
	v.height = height

	v.viewport.Resize(width, height)
	v.canvas = render.NewCanvas(width, height)
	v.renderer.UpdateCanvas(v.canvas)
	v.renderer.UpdateViewport(v.viewport)
	v.resizeGlobe()
	v.drawn = false

	debug.Log("globe view resized to %dx%d cells", width, height)
}

func (v *GlobeView) resizeGlobe() {
	w, h := v.viewport.PixelSize()
	v.globe.Resize(w, h)
}
