package globe

import (
	"math"

	"github.com/golang/geo/s1"

	"surfglobe/internal/geo"
)

// Point is a position in pixel space, (0, 0) at top-left, y growing downward
type Point struct {
	X float64
	Y float64
}

// Reference frame for the base scale: a 600px square holds a 250px radius
const (
	referenceSize  = 600.0
	referenceScale = 250.0
)

// DefaultRotation faces the globe towards western Europe and the Atlantic
var DefaultRotation = Rotation{Lambda: 10, Phi: -20, Gamma: 0}

// hemisphere is the visibility limit: strictly less than a right angle
const hemisphere = s1.Angle(math.Pi / 2)

// Projection is an orthographic projection with rotation, scale and translate
type Projection struct {
	rotation   Rotation
	rot        rotator
	scale      float64
	translateX float64
	translateY float64
}

// NewProjection creates a projection centred in a width x height pixel area
// with the default rotation and a radius proportional to the smaller side
func NewProjection(width, height float64) *Projection {
	p := &Projection{}
	p.SetRotation(DefaultRotation)
	p.Resize(width, height)
	p.scale = BaseScale(width, height)
	return p
}

// BaseScale returns the unzoomed globe radius for a pixel area
func BaseScale(width, height float64) float64 {
	return math.Min(width, height) * referenceScale / referenceSize
}

// Resize moves the projection centre to the middle of the new area
func (p *Projection) Resize(width, height float64) {
	p.translateX = width / 2
	p.translateY = height / 2
}

// Rotation returns the current rotation
func (p *Projection) Rotation() Rotation {
	return p.rotation
}

// SetRotation replaces the rotation
func (p *Projection) SetRotation(r Rotation) {
	p.rotation = r
	p.rot = newRotator(r)
}

// Rotate adds to lambda and phi, gamma is left untouched
func (p *Projection) Rotate(dLambda, dPhi float64) {
	r := p.rotation
	r.Lambda += dLambda
	r.Phi += dPhi
	p.SetRotation(r)
}

// Scale returns the globe radius in pixels
func (p *Projection) Scale() float64 {
	return p.scale
}

// SetScale sets the globe radius in pixels
func (p *Projection) SetScale(scale float64) {
	p.scale = scale
}

// Translate returns the pixel position of the globe centre
func (p *Projection) Translate() Point {
	return Point{X: p.translateX, Y: p.translateY}
}

// Center returns the coordinate facing the viewer
func (p *Projection) Center() geo.LatLon {
	return geo.LatLon{Lat: -p.rotation.Phi, Lon: geo.NormalizeLon(-p.rotation.Lambda)}
}

// Project converts a coordinate to pixel space
// ok is false when the point lies on the far hemisphere; the returned point is
// still the orthographic position so callers can clip against it
func (p *Projection) Project(ll geo.LatLon) (Point, bool) {
	lambda, phi := p.rot.forward(ll.Lon*radians, ll.Lat*radians)

	cosPhi := math.Cos(phi)
	x := cosPhi * math.Sin(lambda)
	y := math.Sin(phi)
	depth := cosPhi * math.Cos(lambda)

	return Point{
		X: p.translateX + x*p.scale,
		Y: p.translateY - y*p.scale,
	}, depth >= 0
}

// Invert converts a pixel position back to a coordinate
// ok is false outside the globe disc
func (p *Projection) Invert(pt Point) (geo.LatLon, bool) {
	if p.scale <= 0 {
		return geo.LatLon{}, false
	}

	x := (pt.X - p.translateX) / p.scale
	y := (p.translateY - pt.Y) / p.scale

	z := math.Hypot(x, y)
	if z > 1 {
		return geo.LatLon{}, false
	}

	c := math.Asin(z)
	sc := math.Sin(c)
	cc := math.Cos(c)

	lambda := math.Atan2(x*sc, z*cc)
	phi := 0.0
	if z != 0 {
		phi = asin(y * sc / z)
	}

	lambda, phi = p.rot.invert(lambda, phi)
	return geo.LatLon{Lat: phi / radians, Lon: lambda / radians}, true
}

// Visible reports whether ll lies on the hemisphere facing the viewer, that is
// whether its great-circle distance from the view centre is under 90°
func (p *Projection) Visible(ll geo.LatLon) bool {
	center := geo.LatLon{Lat: -p.rotation.Phi, Lon: -p.rotation.Lambda}
	return geo.Distance(ll, center) < hemisphere
}

// depth is the cosine of the angle between ll and the view axis; it is
// positive on the near hemisphere and zero on the horizon
func (p *Projection) depth(ll geo.LatLon) float64 {
	lambda, phi := p.rot.forward(ll.Lon*radians, ll.Lat*radians)
	return math.Cos(phi) * math.Cos(lambda)
}

// OnDisc reports whether a pixel position lies inside the globe disc
func (p *Projection) OnDisc(pt Point) bool {
	return math.Hypot(pt.X-p.translateX, pt.Y-p.translateY) <= p.scale
}
