package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used to turn angles into distances
const EarthRadiusKm = 6371.0

// LatLng converts the coordinate to an s2 LatLng
func (ll LatLon) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(ll.Lat, ll.Lon)
}

// Distance returns the great-circle angle between two coordinates
func Distance(a, b LatLon) s1.Angle {
	return a.LatLng().Distance(b.LatLng())
}

// DistanceKm returns the great-circle distance in kilometres
func DistanceKm(a, b LatLon) float64 {
	return Distance(a, b).Radians() * EarthRadiusKm
}

// Nearest returns the POI of the given kind closest to ll
// Pass a negative kind to consider every POI; ok is false when none match
func Nearest(ll LatLon, pois []POI, kind FeatureType) (POI, s1.Angle, bool) {
	best := -1
	bestDist := s1.Angle(math.Inf(1))

	for i, p := range pois {
		if kind >= 0 && p.Kind != kind {
			continue
		}
		if d := Distance(ll, p.Coords); d < bestDist {
			best = i
			bestDist = d
		}
	}

	if best < 0 {
		return POI{}, 0, false
	}
	return pois[best], bestDist, true
}

// NormalizeLon wraps a longitude into [-180, 180)
func NormalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
