package globe

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"

	"surfglobe/internal/geo"
)

// maxSegmentDeg is the longest great-circle step drawn as one straight line
const maxSegmentDeg = 2.5

// horizonSteps is the bisection depth used to find where a line meets the horizon
const horizonSteps = 16

// Scene is one redraw of the globe in pixel space
type Scene struct {
	Projection Projection // snapshot used for inverse lookups while drawing
	Center     Point      // ocean disc centre
	Radius     float64    // ocean disc radius

	Graticule  [][]Point
	Countries  [][]Point
	Coastlines [][]Point

	Labels []Label

	Marker       *Point
	MarkerCoords *geo.LatLon

	Loading bool
	Version uint64
}

// Label is a visible point of interest and where to draw it
type Label struct {
	POI geo.POI
	At  Point
}

// Invert converts a pixel position in the scene back to a coordinate
func (s *Scene) Invert(p Point) (geo.LatLon, bool) {
	return s.Projection.Invert(p)
}

// Scene rebuilds every layer from the current projection state
// Lines are clipped at the horizon; labels and the marker only appear when
// their coordinate is visible
func (g *Globe) Scene() *Scene {
	s := &Scene{
		Projection: *g.proj,
		Center:     g.proj.Translate(),
		Radius:     g.proj.Scale(),
		Loading:    g.loading,
		Version:    g.version,
	}

	s.Graticule = g.projectLines(g.graticule.Lines)

	for _, f := range g.features {
		switch f.Type {
		case geo.FeatureCountry:
			s.Countries = append(s.Countries, g.projectLines(f.Lines)...)
		case geo.FeatureCoastline:
			s.Coastlines = append(s.Coastlines, g.projectLines(f.Lines)...)
		}
	}

	for _, poi := range g.pois {
		if !g.proj.Visible(poi.Coords) {
			continue
		}
		at, _ := g.proj.Project(poi.Coords)
		s.Labels = append(s.Labels, Label{POI: poi, At: at})
	}

	if g.marker != nil && g.proj.Visible(*g.marker) {
		at, _ := g.proj.Project(*g.marker)
		coords := *g.marker
		s.Marker = &at
		s.MarkerCoords = &coords
	}

	return s
}

func (g *Globe) projectLines(lines []orb.LineString) [][]Point {
	var out [][]Point
	for _, ls := range lines {
		out = append(out, g.projectLine(ls)...)
	}
	return out
}

// projectLine resamples a line along great circles, drops the parts on the far
// hemisphere and ends each visible run on the horizon
func (g *Globe) projectLine(ls orb.LineString) [][]Point {
	if len(ls) < 2 {
		return nil
	}

	var (
		runs [][]Point
		run  []Point
	)

	flush := func() {
		if len(run) > 1 {
			runs = append(runs, run)
		}
		run = nil
	}

	prev := s2.PointFromLatLng(geo.FromPoint(ls[0]).LatLng())
	prevDepth := g.proj.depth(toLatLon(prev))
	if prevDepth >= 0 {
		run = append(run, g.project(prev))
	}

	for _, p := range ls[1:] {
		next := s2.PointFromLatLng(geo.FromPoint(p).LatLng())

		steps := int(math.Ceil(prev.Distance(next).Degrees() / maxSegmentDeg))
		if steps < 1 {
			steps = 1
		}

		start := prev
		for i := 1; i <= steps; i++ {
			cur := next
			if i < steps {
				cur = s2.Interpolate(float64(i)/float64(steps), start, next)
			}
			curDepth := g.proj.depth(toLatLon(cur))

			switch {
			case prevDepth >= 0 && curDepth >= 0:
				run = append(run, g.project(cur))
			case prevDepth >= 0:
				run = append(run, g.project(g.horizon(prev, cur)))
				flush()
			case curDepth >= 0:
				run = append(run, g.project(g.horizon(cur, prev)), g.project(cur))
			}

			prev, prevDepth = cur, curDepth
		}
	}
	flush()

	return runs
}

// horizon finds the point between a visible point and a hidden one where
// the line crosses the horizon
func (g *Globe) horizon(visible, hidden s2.Point) s2.Point {
	lo, hi := 0.0, 1.0
	for i := 0; i < horizonSteps; i++ {
		mid := (lo + hi) / 2
		if g.proj.depth(toLatLon(s2.Interpolate(mid, visible, hidden))) >= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return s2.Interpolate(lo, visible, hidden)
}

func (g *Globe) project(p s2.Point) Point {
	pt, _ := g.proj.Project(toLatLon(p))
	return pt
}

func toLatLon(p s2.Point) geo.LatLon {
	ll := s2.LatLngFromPoint(p)
	return geo.LatLon{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}
