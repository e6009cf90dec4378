package geo

import (
	"fmt"

	"github.com/paulmach/orb"
)

// FeatureType represents the type of geographic feature
type FeatureType int

const (
	FeatureCountry FeatureType = iota
	FeatureCoastline
	FeatureGraticule
	FeatureCity
	FeatureSurfSpot
)

// String returns a string representation of the feature type
func (f FeatureType) String() string {
	switch f {
	case FeatureCountry:
		return "Country"
	case FeatureCoastline:
		return "Coastline"
	case FeatureGraticule:
		return "Graticule"
	case FeatureCity:
		return "City"
	case FeatureSurfSpot:
		return "SurfSpot"
	default:
		return "Unknown"
	}
}

// LatLon represents a geographic coordinate in degrees
type LatLon struct {
	Lat float64
	Lon float64
}

// Point converts the coordinate to an orb point (lon, lat order)
func (ll LatLon) Point() orb.Point {
	return orb.Point{ll.Lon, ll.Lat}
}

// FromPoint converts an orb point back to a coordinate
func FromPoint(p orb.Point) LatLon {
	return LatLon{Lat: p.Lat(), Lon: p.Lon()}
}

// String formats the coordinate as "21.6641°N, 158.0538°W"
func (ll LatLon) String() string {
	lat, lon := ll.Lat, ll.Lon

	latDir := "N"
	if lat < 0 {
		latDir = "S"
		lat = -lat
	}

	lonDir := "E"
	if lon < 0 {
		lonDir = "W"
		lon = -lon
	}

	return fmt.Sprintf("%.4f°%s, %.4f°%s", lat, latDir, lon, lonDir)
}

// Feature represents a geographic feature (lines, polygons or a point)
type Feature struct {
	Type       FeatureType            // Type of feature
	Lines      []orb.LineString       // Polylines to draw (polygon rings for countries)
	Polygon    orb.MultiPolygon       // Filled area, only set for countries
	Point      *LatLon                // Single point (cities, surf spots)
	Name       string                 // Label
	Properties map[string]interface{} // Additional properties from shapefile
}

// NewLineFeature creates a new line/polyline feature
func NewLineFeature(ftype FeatureType, lines ...orb.LineString) *Feature {
	return &Feature{
		Type:       ftype,
		Lines:      lines,
		Properties: make(map[string]interface{}),
	}
}

// NewPolygonFeature creates an area feature, its rings double as outlines
func NewPolygonFeature(ftype FeatureType, name string, mp orb.MultiPolygon) *Feature {
	f := &Feature{
		Type:       ftype,
		Polygon:    mp,
		Name:       name,
		Properties: make(map[string]interface{}),
	}
	for _, poly := range mp {
		for _, ring := range poly {
			f.Lines = append(f.Lines, orb.LineString(ring))
		}
	}
	return f
}

// NewPointFeature creates a new point feature (city, surf spot)
func NewPointFeature(ftype FeatureType, point LatLon, name string) *Feature {
	return &Feature{
		Type:       ftype,
		Point:      &point,
		Name:       name,
		Properties: make(map[string]interface{}),
	}
}

// IsPoint returns true if this is a point feature
func (f *Feature) IsPoint() bool {
	return f.Point != nil
}

// IsLine returns true if this feature has polylines to draw
func (f *Feature) IsLine() bool {
	return len(f.Lines) > 0
}

// IsArea returns true if this feature covers an area
func (f *Feature) IsArea() bool {
	return len(f.Polygon) > 0
}
