package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// LandIndex answers point-in-country queries against loaded country polygons
type LandIndex struct {
	entries []landEntry
}

type landEntry struct {
	name  string
	bound orb.Bound
	shape orb.MultiPolygon
}

// NewLandIndex indexes every area feature in features
func NewLandIndex(features []*Feature) *LandIndex {
	idx := &LandIndex{}
	for _, f := range features {
		if !f.IsArea() {
			continue
		}
		idx.entries = append(idx.entries, landEntry{
			name:  f.Name,
			bound: f.Polygon.Bound(),
			shape: f.Polygon,
		})
	}
	return idx
}

// Len returns the number of indexed polygons
func (l *LandIndex) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// CountryAt returns the name of the country containing ll
func (l *LandIndex) CountryAt(ll LatLon) (string, bool) {
	if l == nil {
		return "", false
	}

	pt := ll.Point()
	for _, e := range l.entries {
		if !e.bound.Contains(pt) {
			continue
		}
		if planar.MultiPolygonContains(e.shape, pt) {
			return e.name, true
		}
	}
	return "", false
}

// IsLand reports whether ll falls inside any indexed polygon
func (l *LandIndex) IsLand(ll LatLon) bool {
	_, ok := l.CountryAt(ll)
	return ok
}
