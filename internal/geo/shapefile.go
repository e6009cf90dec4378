package geo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"surfglobe/internal/debug"
)

// Natural Earth base names the loader reads from the data directory
const (
	CountriesBase = "ne_110m_admin_0_countries"
	CoastlineBase = "ne_110m_coastline"
)

// ShapefileLoader loads and parses ESRI shapefiles
type ShapefileLoader struct {
	dataDir string
}

// NewShapefileLoader creates a new shapefile loader
func NewShapefileLoader(dataDir string) *ShapefileLoader {
	return &ShapefileLoader{
		dataDir: dataDir,
	}
}

// LoadAll loads the country and coastline shapefiles organized by feature type
// Missing files are skipped with a warning - the globe still works with just
// the ocean, graticule and labels
func (s *ShapefileLoader) LoadAll() (map[FeatureType][]*Feature, error) {
	features := make(map[FeatureType][]*Feature)

	countries, err := s.LoadCountries(filepath.Join(s.dataDir, CountriesBase+".shp"))
	if err != nil {
		debug.Log("failed to load countries: %v", err)
		fmt.Printf("Warning: failed to load countries: %v\n", err)
		features[FeatureCountry] = []*Feature{}
	} else {
		features[FeatureCountry] = countries
	}

	coasts, err := s.LoadLines(filepath.Join(s.dataDir, CoastlineBase+".shp"), FeatureCoastline)
	if err != nil {
		debug.Log("failed to load coastlines: %v", err)
		fmt.Printf("Warning: failed to load coastlines: %v\n", err)
		features[FeatureCoastline] = []*Feature{}
	} else {
		features[FeatureCoastline] = coasts
	}

	fmt.Printf("Loaded features: %d countries, %d coastlines\n",
		len(features[FeatureCountry]),
		len(features[FeatureCoastline]))
	return features, nil
}

// LoadLines loads a polyline shapefile, one feature per shape with one line per part
func (s *ShapefileLoader) LoadLines(path string, ftype FeatureType) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer shape.Close()

	features := make([]*Feature, 0)

	for shape.Next() {
		_, p := shape.Shape()

		geom, ok := p.(*shp.PolyLine)
		if !ok {
			continue
		}

		var lines []orb.LineString
		for _, part := range splitParts(geom.Parts, geom.Points) {
			if len(part) > 1 {
				lines = append(lines, orb.LineString(part))
			}
		}
		if len(lines) > 0 {
			features = append(features, NewLineFeature(ftype, lines...))
		}
	}

	return features, nil
}

// LoadCountries loads country polygons with their names
// Shapefile rings are clockwise for outer boundaries and counter-clockwise for holes
func (s *ShapefileLoader) LoadCountries(path string) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer shape.Close()

	nameIdx := -1
	for i, field := range shape.Fields() {
		// Field names in shapefiles are byte arrays, trim nulls
		fieldName := strings.TrimRight(string(field.Name[:]), "\x00 ")
		if fieldName == "NAME" || fieldName == "ADMIN" || fieldName == "NAME_EN" {
			nameIdx = i
			break
		}
	}

	features := make([]*Feature, 0)

	for shape.Next() {
		n, p := shape.Shape()

		geom, ok := p.(*shp.Polygon)
		if !ok {
			continue
		}

		name := ""
		if nameIdx >= 0 {
			name = strings.TrimSpace(shape.ReadAttribute(n, nameIdx))
		}

		mp := ringsToMultiPolygon(splitParts(geom.Parts, geom.Points))
		if len(mp) == 0 {
			continue
		}
		features = append(features, NewPolygonFeature(FeatureCountry, name, mp))
	}

	return features, nil
}

// splitParts cuts a flat shapefile point array into its parts
func splitParts(parts []int32, points []shp.Point) [][]orb.Point {
	if len(parts) == 0 {
		parts = []int32{0}
	}

	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start >= end || int(end) > len(points) {
			continue
		}

		part := make([]orb.Point, 0, end-start)
		for _, pt := range points[start:end] {
			part = append(part, orb.Point{pt.X, pt.Y})
		}
		out = append(out, part)
	}
	return out
}

// ringsToMultiPolygon groups rings into polygons: every clockwise ring starts
// a new polygon and counter-clockwise rings become holes of the current one
func ringsToMultiPolygon(rings [][]orb.Point) orb.MultiPolygon {
	var mp orb.MultiPolygon

	for _, pts := range rings {
		if len(pts) < 4 {
			continue
		}
		ring := orb.Ring(pts)
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}

		if ring.Orientation() == orb.CCW && len(mp) > 0 {
			last := len(mp) - 1
			mp[last] = append(mp[last], ring)
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}

	return mp
}
