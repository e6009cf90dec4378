package render

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"surfglobe/internal/debug"
	"surfglobe/internal/geo"
	"surfglobe/internal/globe"
)

// Marker glyphs alternated to make the selection pulse
const (
	markerGlyph      = '◉'
	markerPulseGlyph = '○'
)

// GlobeRenderer draws a globe scene onto a canvas
type GlobeRenderer struct {
	canvas   *Canvas
	viewport globe.Viewport
	land     *geo.LandIndex
}

// NewGlobeRenderer creates a renderer drawing into canvas through viewport
// land may be nil, in which case the whole disc is ocean
func NewGlobeRenderer(canvas *Canvas, viewport globe.Viewport, land *geo.LandIndex) *GlobeRenderer {
	return &GlobeRenderer{
		canvas:   canvas,
		viewport: viewport,
		land:     land,
	}
}

// RenderStats counts what the last render drew
type RenderStats struct {
	LandCells     int
	Labels        int
	LabelsSkipped int
	Marker        bool
}

// Render draws every layer of the scene: the shaded disc, graticule,
// country outlines, coastlines, rim, labels and the marker. pulse selects
// the alternate marker glyph.
func (r *GlobeRenderer) Render(scene *globe.Scene, pulse bool) RenderStats {
	var stats RenderStats

	r.canvas.Clear()
	stats.LandCells = r.renderDisc(scene)

	r.renderLines(scene.Graticule, GetCharForFeature(geo.FeatureGraticule), StyleGraticule)
	r.renderLines(scene.Countries, GetCharForFeature(geo.FeatureCountry), StyleCountry)
	r.renderLines(scene.Coastlines, GetCharForFeature(geo.FeatureCoastline), StyleCoastline)
	r.renderRim(scene)

	stats.Labels, stats.LabelsSkipped = r.renderLabels(scene.Labels)

	if scene.Marker != nil {
		glyph := markerGlyph
		if pulse {
			glyph = markerPulseGlyph
		}
		x, y := r.viewport.Cell(*scene.Marker)
		r.canvas.Overlay(x, y, glyph, StyleMarker)
		stats.Marker = true
	}

	r.renderControls(scene.Loading)

	if debug.Enabled() {
		debug.Log("rendered scene v%d: %d land cells, %d labels (%d skipped), marker=%v",
			scene.Version, stats.LandCells, stats.Labels, stats.LabelsSkipped, stats.Marker)
	}

	return stats
}

// renderDisc shades every cell whose centre falls on the globe. Land is found
// by inverting the cell centre and testing the land index.
func (r *GlobeRenderer) renderDisc(scene *globe.Scene) int {
	if scene.Radius <= 0 {
		return 0
	}

	land := 0
	w, h := r.viewport.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := r.viewport.CellCenter(x, y)
			d := math.Hypot(p.X-scene.Center.X, p.Y-scene.Center.Y) / scene.Radius
			if d > 1 {
				continue
			}
			depth := math.Sqrt(1 - d*d)

			style := OceanStyle(depth)
			if r.land != nil {
				if ll, ok := scene.Invert(p); ok && r.land.IsLand(ll) {
					style = LandStyle(depth)
					land++
				}
			}
			r.canvas.Set(x, y, ' ', style)
		}
	}
	return land
}

func (r *GlobeRenderer) renderLines(runs [][]globe.Point, char rune, style tcell.Style) {
	for _, run := range runs {
		for i := 0; i < len(run)-1; i++ {
			x0, y0 := r.viewport.Cell(run[i])
			x1, y1 := r.viewport.Cell(run[i+1])
			r.DrawLine(x0, y0, x1, y1, char, style)
		}
	}
}

// renderRim outlines the disc, sampling the circle finely enough to hit
// every cell it passes through
func (r *GlobeRenderer) renderRim(scene *globe.Scene) {
	if scene.Radius <= 0 {
		return
	}

	steps := int(math.Ceil(2 * math.Pi * scene.Radius / 0.5))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := globe.Point{
			X: scene.Center.X + scene.Radius*math.Cos(a),
			Y: scene.Center.Y + scene.Radius*math.Sin(a),
		}
		x, y := r.viewport.Cell(p)
		if r.viewport.Contains(x, y) && r.canvas.Get(x, y).Char == ' ' {
			r.canvas.Overlay(x, y, '·', StyleRim)
		}
	}
}

// renderLabels draws POI symbols and names. Surf spots take priority over
// cities; a label that would overlap one already drawn is skipped.
func (r *GlobeRenderer) renderLabels(labels []globe.Label) (drawn, skipped int) {
	ordered := make([]globe.Label, len(labels))
	copy(ordered, labels)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].POI.IsSurfSpot() && !ordered[j].POI.IsSurfSpot()
	})

	w, h := r.viewport.Size()
	occupied := make([][]bool, h)
	for i := range occupied {
		occupied[i] = make([]bool, w)
	}

	free := func(x0, x1, y int) bool {
		if y < 0 || y >= h {
			return false
		}
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= w || occupied[y][x] {
				return false
			}
		}
		return true
	}
	claim := func(x0, x1, y int) {
		for x := x0; x <= x1; x++ {
			occupied[y][x] = true
		}
	}

	for _, l := range ordered {
		x, y := r.viewport.Cell(l.At)
		if !r.viewport.Contains(x, y) {
			skipped++
			continue
		}

		width := TextWidth(l.POI.Name)
		style := GetStyleForFeature(l.POI.Kind)

		// name to the right of the symbol, or to the left near the edge
		textX := x + 2
		x0, x1 := x, x+1+width
		if x1 >= w {
			textX = x - 1 - width
			x0, x1 = textX, x
		}

		if !free(x0, x1, y) {
			skipped++
			continue
		}

		r.canvas.Overlay(x, y, GetCharForFeature(l.POI.Kind), style)
		r.canvas.OverlayText(textX, y, l.POI.Name, style)
		claim(x0, x1, y)
		drawn++
	}

	return drawn, skipped
}

// ZoomControl identifies one of the on-globe zoom buttons
type ZoomControl int

const (
	ZoomNone ZoomControl = iota
	ZoomInButton
	ZoomOutButton
)

// zoom buttons are 3x3 boxes stacked in the top-right corner
const (
	controlSize   = 3
	controlMargin = 1
)

// controlOrigin returns the top-left cell of a button, ok is false when the
// canvas is too small to hold both buttons
func (r *GlobeRenderer) controlOrigin(c ZoomControl) (x, y int, ok bool) {
	w, h := r.canvas.Width(), r.canvas.Height()
	if w < 4*controlSize || h < 3*controlSize {
		return 0, 0, false
	}
	x = w - controlSize - controlMargin
	y = controlMargin
	if c == ZoomOutButton {
		y += controlSize
	}
	return x, y, true
}

// renderControls draws the zoom buttons, dimmed while loading
func (r *GlobeRenderer) renderControls(disabled bool) {
	style := StyleControl
	if disabled {
		style = StyleControlOff
	}

	for _, c := range []ZoomControl{ZoomInButton, ZoomOutButton} {
		x, y, ok := r.controlOrigin(c)
		if !ok {
			return
		}
		r.canvas.FillRect(x, y, controlSize, controlSize, ' ', style)
		r.canvas.DrawBox(x, y, controlSize, controlSize, style)

		glyph := '+'
		if c == ZoomOutButton {
			glyph = '−'
		}
		r.canvas.Set(x+1, y+1, glyph, style)
	}
}

// ZoomControlAt returns the zoom button covering a canvas cell
func (r *GlobeRenderer) ZoomControlAt(x, y int) ZoomControl {
	for _, c := range []ZoomControl{ZoomInButton, ZoomOutButton} {
		cx, cy, ok := r.controlOrigin(c)
		if ok && x >= cx && x < cx+controlSize && y >= cy && y < cy+controlSize {
			return c
		}
	}
	return ZoomNone
}

// DrawLine implements Bresenham's line algorithm for drawing lines on the canvas
func (r *GlobeRenderer) DrawLine(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		r.canvas.Overlay(x0, y0, char, style)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// UpdateViewport updates the renderer's viewport after a resize
func (r *GlobeRenderer) UpdateViewport(viewport globe.Viewport) {
	r.viewport = viewport
}

// UpdateCanvas updates the renderer's canvas
func (r *GlobeRenderer) UpdateCanvas(canvas *Canvas) {
	r.canvas = canvas
}

// Canvas returns the canvas being drawn into
func (r *GlobeRenderer) Canvas() *Canvas {
	return r.canvas
}
