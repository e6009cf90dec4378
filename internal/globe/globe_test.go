package globe

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surfglobe/internal/geo"
)

var (
	lisbon = geo.LatLon{Lat: 38.7223, Lon: -9.1393}
	sydney = geo.LatLon{Lat: -33.8688, Lon: 151.2093}
)

func newTestGlobe(t *testing.T, opts Options) (*Globe, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	if opts.Width == 0 {
		opts.Width, opts.Height = 600, 600
	}
	opts.Clock = clock
	return New(opts), clock
}

func TestGlobe_DragRotatesBySensitivityOverScale(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})
	v := g.Version()

	require.True(t, g.Drag(10, 0))
	r := g.Projection().Rotation()
	assert.InDelta(t, 13.0, r.Lambda, eps) // 10 + 10*75/250
	assert.InDelta(t, -20.0, r.Phi, eps)

	require.True(t, g.Drag(0, 10))
	r = g.Projection().Rotation()
	assert.InDelta(t, 13.0, r.Lambda, eps)
	assert.InDelta(t, -23.0, r.Phi, eps)
	assert.Equal(t, 0.0, r.Gamma)

	assert.Greater(t, g.Version(), v)
}

func TestGlobe_DragSlowsWhenZoomedIn(t *testing.T) {
	g, _ := newTestGlobe(t, Options{ZoomDuration: -1})
	require.True(t, g.ZoomBy(2))
	assert.Equal(t, 500.0, g.Projection().Scale())

	g.Drag(10, 0)
	assert.InDelta(t, 11.5, g.Projection().Rotation().Lambda, eps)
}

func TestGlobe_DragIgnoredWhileLoading(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})
	g.SetLoading(true)

	assert.False(t, g.Drag(10, 10))
	assert.Equal(t, DefaultRotation, g.Projection().Rotation())
}

func TestGlobe_ZoomTransition(t *testing.T) {
	g, clock := newTestGlobe(t, Options{})

	require.True(t, g.ZoomIn())
	assert.True(t, g.Animating())
	assert.Equal(t, 250.0, g.Projection().Scale(), "scale only moves on tick")

	clock.Advance(125 * time.Millisecond)
	require.True(t, g.Tick())
	mid := g.ZoomFactor()
	assert.Greater(t, mid, 1.0)
	assert.Less(t, mid, ZoomStep)

	clock.Advance(125 * time.Millisecond)
	require.True(t, g.Tick())
	assert.False(t, g.Animating())
	assert.InDelta(t, ZoomStep, g.ZoomFactor(), eps)
	assert.InDelta(t, 250*ZoomStep, g.Projection().Scale(), eps)

	assert.False(t, g.Tick(), "idle tick changes nothing")
}

func TestGlobe_ZoomClampedToRange(t *testing.T) {
	g, _ := newTestGlobe(t, Options{ZoomDuration: -1})

	assert.False(t, g.ZoomOut(), "already at minimum")
	assert.Equal(t, MinZoom, g.ZoomFactor())

	for i := 0; i < 20; i++ {
		g.ZoomIn()
	}
	assert.Equal(t, MaxZoom, g.ZoomFactor())
	assert.Equal(t, 250*MaxZoom, g.Projection().Scale())
	assert.False(t, g.ZoomIn(), "already at maximum")
}

func TestGlobe_ZoomIgnoredWhileLoading(t *testing.T) {
	g, _ := newTestGlobe(t, Options{ZoomDuration: -1})
	g.SetLoading(true)

	assert.False(t, g.ZoomIn())
	assert.Equal(t, 1.0, g.ZoomFactor())
}

func TestGlobe_ResizeKeepsZoom(t *testing.T) {
	g, _ := newTestGlobe(t, Options{ZoomDuration: -1})
	g.ZoomBy(2)

	g.Resize(1200, 300)
	assert.Equal(t, 125.0, g.BaseScale())
	assert.Equal(t, 250.0, g.Projection().Scale())
	assert.Equal(t, Point{X: 600, Y: 150}, g.Projection().Translate())
}

func TestGlobe_ClickSelectsVisibleCoordinate(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})

	ll, ok := g.Click(Point{X: 300, Y: 300})
	require.True(t, ok)
	assert.InDelta(t, 20.0, ll.Lat, eps)
	assert.InDelta(t, -10.0, ll.Lon, eps)

	marker, ok := g.Marker()
	require.True(t, ok)
	assert.Equal(t, ll, marker)
}

func TestGlobe_ClickOutsideDiscIgnored(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})

	_, ok := g.Click(Point{X: 5, Y: 5})
	assert.False(t, ok)
	_, has := g.Marker()
	assert.False(t, has)
}

func TestGlobe_ClickWhileLoadingIgnored(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})
	g.SetLoading(true)

	_, ok := g.Click(Point{X: 300, Y: 300})
	assert.False(t, ok)
}

func TestGlobe_ClickOnZeroCoordinateIgnored(t *testing.T) {
	g, _ := newTestGlobe(t, Options{Rotation: &Rotation{}})

	_, ok := g.Click(Point{X: 300, Y: 300})
	assert.False(t, ok, "lat/lon of exactly zero is not a selection")
}

func TestGlobe_PointerClickVersusDrag(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})

	g.PointerDown(Point{X: 300, Y: 300})
	_, ok := g.PointerUp()
	assert.True(t, ok, "press and release in place is a click")

	g.ClearMarker()
	g.PointerDown(Point{X: 300, Y: 300})
	assert.True(t, g.Dragging())
	assert.True(t, g.PointerMove(Point{X: 320, Y: 300}))
	_, ok = g.PointerUp()
	assert.False(t, ok, "a drag does not select")
	assert.False(t, g.Dragging())

	_, has := g.Marker()
	assert.False(t, has)
	assert.InDelta(t, 16.0, g.Projection().Rotation().Lambda, eps)
}

func TestGlobe_CenterOn(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})
	g.CenterOn(sydney)

	c := g.Projection().Center()
	assert.InDelta(t, sydney.Lat, c.Lat, eps)
	assert.InDelta(t, sydney.Lon, c.Lon, eps)
	assert.True(t, g.Visible(sydney))
}

func TestScene_LabelsOnlyWhenVisible(t *testing.T) {
	pois := []geo.POI{
		{Name: "Lisbon", Coords: lisbon, Kind: geo.FeatureCity},
		{Name: "Sydney", Coords: sydney, Kind: geo.FeatureCity},
	}
	g, _ := newTestGlobe(t, Options{POIs: pois})

	s := g.Scene()
	require.Len(t, s.Labels, 1)
	assert.Equal(t, "Lisbon", s.Labels[0].POI.Name)

	want, _ := g.Projection().Project(lisbon)
	assert.Equal(t, want, s.Labels[0].At)

	g.CenterOn(sydney)
	s = g.Scene()
	require.Len(t, s.Labels, 1)
	assert.Equal(t, "Sydney", s.Labels[0].POI.Name)
}

func TestScene_MarkerFollowsVisibility(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})
	g.SetMarker(sydney)

	assert.Nil(t, g.Scene().Marker)

	g.CenterOn(sydney)
	s := g.Scene()
	require.NotNil(t, s.Marker)
	assert.InDelta(t, 300.0, s.Marker.X, 1e-6)
	assert.InDelta(t, 300.0, s.Marker.Y, 1e-6)
	require.NotNil(t, s.MarkerCoords)
	assert.Equal(t, sydney, *s.MarkerCoords)
}

func TestScene_LinesStayOnDisc(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})
	s := g.Scene()

	require.NotEmpty(t, s.Graticule)
	assert.Equal(t, 250.0, s.Radius)

	for _, run := range s.Graticule {
		require.GreaterOrEqual(t, len(run), 2)
		for _, p := range run {
			d := math.Hypot(p.X-s.Center.X, p.Y-s.Center.Y)
			assert.LessOrEqual(t, d, s.Radius+1e-6)
		}
	}
}

func TestScene_LineClippedAtHorizon(t *testing.T) {
	// the equator seen from above 0,0 is cut at ±90° longitude
	equator := geo.NewLineFeature(geo.FeatureCoastline, orb.LineString{{-120, 0}, {0, 0}, {120, 0}})
	g, _ := newTestGlobe(t, Options{
		Rotation: &Rotation{},
		Features: []*geo.Feature{equator},
	})

	s := g.Scene()
	require.Len(t, s.Coastlines, 1)

	run := s.Coastlines[0]
	first, last := run[0], run[len(run)-1]
	assert.InDelta(t, 50.0, first.X, 1e-3, "enters on the western rim")
	assert.InDelta(t, 550.0, last.X, 1e-3, "leaves on the eastern rim")
	for _, p := range run {
		assert.InDelta(t, 300.0, p.Y, 1e-6)
	}
}

func TestScene_SnapshotIsolatedFromLaterRotation(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})
	s := g.Scene()

	g.Drag(100, 0)

	ll, ok := s.Invert(Point{X: 300, Y: 300})
	require.True(t, ok)
	assert.InDelta(t, -10.0, ll.Lon, eps)
	assert.Less(t, s.Version, g.Version())
}

func TestGlobe_ClickAfterManyTurns(t *testing.T) {
	g, _ := newTestGlobe(t, Options{})
	for i := 0; i < 100; i++ {
		require.True(t, g.Drag(30, 0))
	}
	require.InDelta(t, 910.0, g.Projection().Rotation().Lambda, 1e-6)

	ll, ok := g.Click(Point{X: 330, Y: 280})
	require.True(t, ok)
	assert.GreaterOrEqual(t, ll.Lon, -180.0)
	assert.LessOrEqual(t, ll.Lon, 180.0)

	c := g.Projection().Center()
	assert.InDelta(t, 170.0, c.Lon, 1e-6)
	assert.Less(t, geo.Distance(ll, c).Degrees(), 10.0)

	near := geo.LatLon{Lat: 25, Lon: 165}
	pt, ok := g.Projection().Project(near)
	require.True(t, ok)
	back, ok := g.Projection().Invert(pt)
	require.True(t, ok)
	assert.InDelta(t, near.Lat, back.Lat, 1e-6)
	assert.InDelta(t, near.Lon, back.Lon, 1e-6)
}

func TestScene_LabelsMatchProjectionUnderFlip(t *testing.T) {
	var pois []geo.POI
	for i, ll := range testGrid() {
		pois = append(pois, geo.POI{Name: fmt.Sprintf("p%d", i), Coords: ll, Kind: geo.FeatureCity})
	}

	for _, r := range wideRotations {
		t.Run(fmt.Sprintf("lambda=%g,phi=%g", r.Lambda, r.Phi), func(t *testing.T) {
			g, _ := newTestGlobe(t, Options{Rotation: &r, POIs: pois})

			want := map[string]bool{}
			for _, poi := range pois {
				if _, ok := g.Projection().Project(poi.Coords); ok {
					want[poi.Name] = true
				}
			}

			got := map[string]bool{}
			for _, l := range g.Scene().Labels {
				got[l.POI.Name] = true
			}
			assert.Equal(t, want, got)
			assert.NotEmpty(t, got)
		})
	}
}
