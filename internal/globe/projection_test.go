package globe

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surfglobe/internal/geo"
)

const eps = 1e-9

func TestNewProjection_Defaults(t *testing.T) {
	p := NewProjection(600, 600)

	assert.Equal(t, 250.0, p.Scale())
	assert.Equal(t, Point{X: 300, Y: 300}, p.Translate())
	assert.Equal(t, DefaultRotation, p.Rotation())

	c := p.Center()
	assert.InDelta(t, 20.0, c.Lat, eps)
	assert.InDelta(t, -10.0, c.Lon, eps)
}

func TestBaseScale_UsesSmallerSide(t *testing.T) {
	assert.Equal(t, 250.0, BaseScale(1200, 600))
	assert.Equal(t, 125.0, BaseScale(300, 900))
}

func TestProject_CenterMapsToTranslate(t *testing.T) {
	p := NewProjection(600, 600)

	pt, ok := p.Project(p.Center())
	require.True(t, ok)
	assert.InDelta(t, 300.0, pt.X, eps)
	assert.InDelta(t, 300.0, pt.Y, eps)
}

func TestProject_NorthIsUp(t *testing.T) {
	p := NewProjection(600, 600)
	p.SetRotation(Rotation{})

	north, ok := p.Project(geo.LatLon{Lat: 30, Lon: 0})
	require.True(t, ok)
	east, ok := p.Project(geo.LatLon{Lat: 0, Lon: 30})
	require.True(t, ok)

	assert.InDelta(t, 300.0, north.X, eps)
	assert.InDelta(t, 300-250*math.Sin(30*radians), north.Y, eps)
	assert.InDelta(t, 300+250*math.Sin(30*radians), east.X, eps)
	assert.InDelta(t, 300.0, east.Y, eps)
}

func TestProject_FarSideNotOK(t *testing.T) {
	p := NewProjection(600, 600)

	_, ok := p.Project(geo.LatLon{Lat: -20, Lon: 170})
	assert.False(t, ok)
}

func TestInvert_RoundTrip(t *testing.T) {
	p := NewProjection(600, 600)
	p.SetRotation(Rotation{Lambda: 40, Phi: -35, Gamma: 0})

	points := []geo.LatLon{
		{Lat: 35, Lon: -40},
		{Lat: 51.5074, Lon: -0.1278},
		{Lat: 38.7223, Lon: -9.1393},
		{Lat: 10, Lon: -60},
		{Lat: 70, Lon: -20},
	}

	for _, ll := range points {
		require.True(t, p.Visible(ll), "%v should face the viewer", ll)

		pt, ok := p.Project(ll)
		require.True(t, ok)

		back, ok := p.Invert(pt)
		require.True(t, ok)
		assert.InDelta(t, ll.Lat, back.Lat, 1e-6, "lat of %v", ll)
		assert.InDelta(t, ll.Lon, back.Lon, 1e-6, "lon of %v", ll)
	}
}

func TestInvert_WithGammaRoundTrip(t *testing.T) {
	p := NewProjection(600, 600)
	p.SetRotation(Rotation{Lambda: -120, Phi: 15, Gamma: 30})

	ll := geo.LatLon{Lat: -10, Lon: 125}
	pt, ok := p.Project(ll)
	require.True(t, ok)

	back, ok := p.Invert(pt)
	require.True(t, ok)
	assert.InDelta(t, ll.Lat, back.Lat, 1e-6)
	assert.InDelta(t, ll.Lon, back.Lon, 1e-6)
}

func TestInvert_CenterPixel(t *testing.T) {
	p := NewProjection(600, 600)

	ll, ok := p.Invert(Point{X: 300, Y: 300})
	require.True(t, ok)
	assert.InDelta(t, 20.0, ll.Lat, eps)
	assert.InDelta(t, -10.0, ll.Lon, eps)
}

func TestInvert_OutsideDisc(t *testing.T) {
	p := NewProjection(600, 600)

	tests := []Point{
		{X: 0, Y: 0},
		{X: 599, Y: 599},
		{X: 300, Y: 300 - 251},
		{X: 300 + 260, Y: 300},
	}
	for _, pt := range tests {
		_, ok := p.Invert(pt)
		assert.False(t, ok, "%v is outside the globe", pt)
		assert.False(t, p.OnDisc(pt))
	}
}

func TestVisible_Hemisphere(t *testing.T) {
	p := NewProjection(600, 600)

	assert.True(t, p.Visible(p.Center()))
	assert.True(t, p.Visible(geo.LatLon{Lat: 38.7223, Lon: -9.1393}))  // Lisbon
	assert.False(t, p.Visible(geo.LatLon{Lat: -33.8688, Lon: 151.2093})) // Sydney
	assert.False(t, p.Visible(geo.LatLon{Lat: -20, Lon: 170}))          // antipode of the centre
}

func TestVisible_FollowsRotation(t *testing.T) {
	p := NewProjection(600, 600)
	sydney := geo.LatLon{Lat: -33.8688, Lon: 151.2093}

	p.SetRotation(Rotation{Lambda: -151.2093, Phi: 33.8688})
	assert.True(t, p.Visible(sydney))

	pt, ok := p.Project(sydney)
	require.True(t, ok)
	assert.InDelta(t, 300.0, pt.X, 1e-6)
	assert.InDelta(t, 300.0, pt.Y, 1e-6)
}

func TestRotate_LeavesGamma(t *testing.T) {
	p := NewProjection(600, 600)
	p.SetRotation(Rotation{Lambda: 1, Phi: 2, Gamma: 3})

	p.Rotate(10, -5)
	assert.Equal(t, Rotation{Lambda: 11, Phi: -3, Gamma: 3}, p.Rotation())
}

func TestWrapPi(t *testing.T) {
	assert.InDelta(t, -math.Pi+0.1, wrapPi(math.Pi+0.1), eps)
	assert.InDelta(t, math.Pi-0.1, wrapPi(-math.Pi-0.1), eps)
	assert.InDelta(t, 1.0, wrapPi(1.0), eps)
}

func TestNewRotator_ReducesLambdaToOneTurn(t *testing.T) {
	assert.InDelta(t, 190*radians, newRotator(Rotation{Lambda: 910}).dLambda, eps)
	assert.InDelta(t, -5*radians, newRotator(Rotation{Lambda: -725}).dLambda, eps)
	assert.Less(t, math.Abs(newRotator(Rotation{Lambda: 1e6}).dLambda), 2*math.Pi)
}

// testGrid avoids the poles, the antimeridian and exact horizon crossings
func testGrid() []geo.LatLon {
	var grid []geo.LatLon
	for lat := -75.0; lat <= 85; lat += 20 {
		for lon := -172.0; lon < 180; lon += 25 {
			grid = append(grid, geo.LatLon{Lat: lat, Lon: lon})
		}
	}
	return grid
}

var wideRotations = []Rotation{
	{Lambda: 910, Phi: -20},
	{Lambda: -725, Phi: 35},
	{Lambda: 1440.5, Phi: 10, Gamma: 15},
	{Lambda: -3610, Phi: -45},
	{Lambda: 40, Phi: 100},
	{Lambda: -60, Phi: -100},
	{Lambda: 200, Phi: 170},
	{Lambda: -545, Phi: -170},
}

func TestInvert_RoundTripUnderWideRotations(t *testing.T) {
	for _, r := range wideRotations {
		t.Run(fmt.Sprintf("lambda=%g,phi=%g", r.Lambda, r.Phi), func(t *testing.T) {
			p := NewProjection(600, 600)
			p.SetRotation(r)

			for _, ll := range testGrid() {
				pt, ok := p.Project(ll)
				assert.Equal(t, ok, p.Visible(ll), "visibility of %v", ll)
				if !ok {
					continue
				}

				back, ok := p.Invert(pt)
				require.True(t, ok, "%v projects onto the disc", ll)
				assert.InDelta(t, ll.Lat, back.Lat, 1e-6, "lat of %v", ll)
				assert.InDelta(t, 0, geo.NormalizeLon(back.Lon-ll.Lon), 1e-6, "lon of %v", ll)
				assert.GreaterOrEqual(t, back.Lon, -180.0)
				assert.LessOrEqual(t, back.Lon, 180.0)
			}
		})
	}
}

func TestInvert_LongitudeInRangeAfterManyTurns(t *testing.T) {
	p := NewProjection(600, 600)

	for _, lambda := range []float64{540.5, 721, 910, -900, 10000, -10000} {
		p.SetRotation(Rotation{Lambda: lambda, Phi: -20})
		for _, pt := range []Point{{X: 300, Y: 300}, {X: 330, Y: 280}, {X: 120, Y: 310}, {X: 480, Y: 250}} {
			ll, ok := p.Invert(pt)
			require.True(t, ok)
			assert.GreaterOrEqual(t, ll.Lon, -180.0, "lambda %g at %v", lambda, pt)
			assert.LessOrEqual(t, ll.Lon, 180.0, "lambda %g at %v", lambda, pt)
		}
	}
}
