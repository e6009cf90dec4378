package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	graticuleMinorExtent = 80.0
	graticuleMajorStep   = 90.0
	graticuleEpsilon     = 1e-6
)

// Graticule builds the meridian and parallel grid as a single line feature
// Meridians on multiples of 90° run pole to pole, the others stop at ±80°
// like parallels do; every line is sampled every precision degrees
func Graticule(step, precision float64) *Feature {
	if step <= 0 {
		step = 10
	}
	if precision <= 0 {
		precision = 2.5
	}

	var lines []orb.LineString

	for lon := -180.0; lon < 180-graticuleEpsilon; lon += step {
		extent := graticuleMinorExtent
		if math.Abs(math.Mod(lon, graticuleMajorStep)) < graticuleEpsilon {
			extent = 90 - graticuleEpsilon
		}
		lines = append(lines, meridian(lon, -extent, extent, precision))
	}

	for lat := -graticuleMinorExtent; lat <= graticuleMinorExtent+graticuleEpsilon; lat += step {
		lines = append(lines, parallel(lat, precision))
	}

	return NewLineFeature(FeatureGraticule, lines...)
}

func meridian(lon, lat0, lat1, precision float64) orb.LineString {
	ls := orb.LineString{}
	for lat := lat0; lat < lat1; lat += precision {
		ls = append(ls, orb.Point{lon, lat})
	}
	return append(ls, orb.Point{lon, lat1})
}

func parallel(lat, precision float64) orb.LineString {
	ls := orb.LineString{}
	for lon := -180.0; lon < 180; lon += precision {
		ls = append(ls, orb.Point{lon, lat})
	}
	return append(ls, orb.Point{180, lat})
}
