package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// POI is a labelled city or surf spot drawn on the globe
type POI struct {
	Name   string
	Coords LatLon
	Kind   FeatureType // FeatureCity or FeatureSurfSpot
}

// IsSurfSpot reports whether the POI is a surf spot rather than a city
func (p POI) IsSurfSpot() bool {
	return p.Kind == FeatureSurfSpot
}

// Feature converts the POI to a point feature
func (p POI) Feature() *Feature {
	return NewPointFeature(p.Kind, p.Coords, p.Name)
}

var builtinPOIs = []POI{
	// Cities
	{Name: "Tokyo", Coords: LatLon{Lat: 35.6895, Lon: 139.6917}, Kind: FeatureCity},
	{Name: "Shanghai", Coords: LatLon{Lat: 31.2304, Lon: 121.4737}, Kind: FeatureCity},
	{Name: "Mumbai", Coords: LatLon{Lat: 19.0760, Lon: 72.8777}, Kind: FeatureCity},
	{Name: "Karachi", Coords: LatLon{Lat: 24.8615, Lon: 67.0099}, Kind: FeatureCity},
	{Name: "Istanbul", Coords: LatLon{Lat: 41.0082, Lon: 28.9784}, Kind: FeatureCity},
	{Name: "Manila", Coords: LatLon{Lat: 14.5995, Lon: 120.9842}, Kind: FeatureCity},
	{Name: "Shenzhen", Coords: LatLon{Lat: 22.5431, Lon: 114.0579}, Kind: FeatureCity},
	{Name: "Jakarta", Coords: LatLon{Lat: -6.1751, Lon: 106.8650}, Kind: FeatureCity},
	{Name: "Ho Chi Minh City", Coords: LatLon{Lat: 10.8231, Lon: 106.6297}, Kind: FeatureCity},
	{Name: "Bangkok", Coords: LatLon{Lat: 13.7563, Lon: 100.5018}, Kind: FeatureCity},
	{Name: "Hong Kong", Coords: LatLon{Lat: 22.3193, Lon: 114.1694}, Kind: FeatureCity},
	{Name: "Singapore", Coords: LatLon{Lat: 1.3521, Lon: 103.8198}, Kind: FeatureCity},
	{Name: "Dubai", Coords: LatLon{Lat: 25.2048, Lon: 55.2708}, Kind: FeatureCity},
	{Name: "Osaka", Coords: LatLon{Lat: 34.6937, Lon: 135.5023}, Kind: FeatureCity},
	{Name: "London", Coords: LatLon{Lat: 51.5074, Lon: -0.1278}, Kind: FeatureCity},
	{Name: "Barcelona", Coords: LatLon{Lat: 41.3874, Lon: 2.1686}, Kind: FeatureCity},
	{Name: "Lisbon", Coords: LatLon{Lat: 38.7223, Lon: -9.1393}, Kind: FeatureCity},
	{Name: "Athens", Coords: LatLon{Lat: 37.9838, Lon: 23.7275}, Kind: FeatureCity},
	{Name: "Rome", Coords: LatLon{Lat: 41.9028, Lon: 12.4964}, Kind: FeatureCity},
	{Name: "Copenhagen", Coords: LatLon{Lat: 55.6761, Lon: 12.5683}, Kind: FeatureCity},
	{Name: "Dublin", Coords: LatLon{Lat: 53.3498, Lon: -6.2603}, Kind: FeatureCity},
	{Name: "New York", Coords: LatLon{Lat: 40.7128, Lon: -74.0060}, Kind: FeatureCity},
	{Name: "Los Angeles", Coords: LatLon{Lat: 34.0522, Lon: -118.2437}, Kind: FeatureCity},
	{Name: "Miami", Coords: LatLon{Lat: 25.7617, Lon: -80.1918}, Kind: FeatureCity},
	{Name: "Vancouver", Coords: LatLon{Lat: 49.2827, Lon: -123.1207}, Kind: FeatureCity},
	{Name: "Seattle", Coords: LatLon{Lat: 47.6062, Lon: -122.3321}, Kind: FeatureCity},
	{Name: "Houston", Coords: LatLon{Lat: 29.7604, Lon: -95.3698}, Kind: FeatureCity},
	{Name: "New Orleans", Coords: LatLon{Lat: 29.9511, Lon: -90.0715}, Kind: FeatureCity},
	{Name: "Boston", Coords: LatLon{Lat: 42.3601, Lon: -71.0589}, Kind: FeatureCity},
	{Name: "Havana", Coords: LatLon{Lat: 23.1136, Lon: -82.3666}, Kind: FeatureCity},
	{Name: "Buenos Aires", Coords: LatLon{Lat: -34.6037, Lon: -58.3816}, Kind: FeatureCity},
	{Name: "Rio de Janeiro", Coords: LatLon{Lat: -22.9068, Lon: -43.1729}, Kind: FeatureCity},
	{Name: "Lima", Coords: LatLon{Lat: -12.0464, Lon: -77.0428}, Kind: FeatureCity},
	{Name: "Cartagena", Coords: LatLon{Lat: 10.3932, Lon: -75.4794}, Kind: FeatureCity},
	{Name: "Lagos", Coords: LatLon{Lat: 6.5244, Lon: 3.3792}, Kind: FeatureCity},
	{Name: "Alexandria", Coords: LatLon{Lat: 31.2058, Lon: 29.9245}, Kind: FeatureCity},
	{Name: "Cape Town", Coords: LatLon{Lat: -33.9249, Lon: 18.4241}, Kind: FeatureCity},
	{Name: "Casablanca", Coords: LatLon{Lat: 33.5731, Lon: -7.5898}, Kind: FeatureCity},
	{Name: "Dakar", Coords: LatLon{Lat: 14.7167, Lon: -17.4677}, Kind: FeatureCity},
	{Name: "Sydney", Coords: LatLon{Lat: -33.8688, Lon: 151.2093}, Kind: FeatureCity},
	{Name: "Melbourne", Coords: LatLon{Lat: -37.8136, Lon: 144.9631}, Kind: FeatureCity},
	{Name: "Auckland", Coords: LatLon{Lat: -36.8485, Lon: 174.7633}, Kind: FeatureCity},
	{Name: "Perth", Coords: LatLon{Lat: -31.9505, Lon: 115.8605}, Kind: FeatureCity},

	// Surf spots
	{Name: "Pipeline", Coords: LatLon{Lat: 21.6641, Lon: -158.0538}, Kind: FeatureSurfSpot},
	{Name: "Teahupo'o", Coords: LatLon{Lat: -17.8500, Lon: -149.2667}, Kind: FeatureSurfSpot},
	{Name: "Jeffreys Bay", Coords: LatLon{Lat: -34.0487, Lon: 24.9216}, Kind: FeatureSurfSpot},
	{Name: "Uluwatu", Coords: LatLon{Lat: -8.8143, Lon: 115.0883}, Kind: FeatureSurfSpot},
	{Name: "Bells Beach", Coords: LatLon{Lat: -38.3667, Lon: 144.2833}, Kind: FeatureSurfSpot},
	{Name: "Trestles", Coords: LatLon{Lat: 33.3853, Lon: -117.5936}, Kind: FeatureSurfSpot},
	{Name: "Hossegor", Coords: LatLon{Lat: 43.6667, Lon: -1.4333}, Kind: FeatureSurfSpot},
	{Name: "Cloudbreak", Coords: LatLon{Lat: -17.8444, Lon: 177.2064}, Kind: FeatureSurfSpot},
	{Name: "Mavericks", Coords: LatLon{Lat: 37.4947, Lon: -122.5000}, Kind: FeatureSurfSpot},
	{Name: "Snapper Rocks", Coords: LatLon{Lat: -28.1633, Lon: 153.5489}, Kind: FeatureSurfSpot},
	{Name: "Margaret River", Coords: LatLon{Lat: -33.9550, Lon: 115.0750}, Kind: FeatureSurfSpot},
	{Name: "Puerto Escondido", Coords: LatLon{Lat: 15.8600, Lon: -97.0667}, Kind: FeatureSurfSpot},
	{Name: "Raglan", Coords: LatLon{Lat: -37.8000, Lon: 174.8333}, Kind: FeatureSurfSpot},
	{Name: "Nazaré", Coords: LatLon{Lat: 39.6028, Lon: -9.0711}, Kind: FeatureSurfSpot},
	{Name: "Mundaka", Coords: LatLon{Lat: 43.4056, Lon: -2.7000}, Kind: FeatureSurfSpot},
	{Name: "Chicama", Coords: LatLon{Lat: -7.7000, Lon: -79.4500}, Kind: FeatureSurfSpot},
	{Name: "Rincon", Coords: LatLon{Lat: 18.3333, Lon: -67.2500}, Kind: FeatureSurfSpot},
	{Name: "Santa Cruz", Coords: LatLon{Lat: 36.9741, Lon: -122.0308}, Kind: FeatureSurfSpot},
	{Name: "Tofino", Coords: LatLon{Lat: 49.1528, Lon: -125.9083}, Kind: FeatureSurfSpot},
	{Name: "Bundoran", Coords: LatLon{Lat: 54.4789, Lon: -8.2798}, Kind: FeatureSurfSpot},
	{Name: "Thurso East", Coords: LatLon{Lat: 58.5956, Lon: -3.5222}, Kind: FeatureSurfSpot},
	{Name: "Mentawai Islands", Coords: LatLon{Lat: -2.1583, Lon: 99.5667}, Kind: FeatureSurfSpot},
	{Name: "G-Land", Coords: LatLon{Lat: -8.7167, Lon: 114.3333}, Kind: FeatureSurfSpot},
	{Name: "Byron Bay", Coords: LatLon{Lat: -28.6431, Lon: 153.6125}, Kind: FeatureSurfSpot},
	{Name: "Noosa Heads", Coords: LatLon{Lat: -26.3889, Lon: 153.0889}, Kind: FeatureSurfSpot},
	{Name: "Punta de Lobos", Coords: LatLon{Lat: -34.4000, Lon: -72.0167}, Kind: FeatureSurfSpot},
	{Name: "Florianopolis", Coords: LatLon{Lat: -27.5954, Lon: -48.5480}, Kind: FeatureSurfSpot},
	{Name: "Taghazout", Coords: LatLon{Lat: 30.5447, Lon: -9.7111}, Kind: FeatureSurfSpot},
	{Name: "Arugam Bay", Coords: LatLon{Lat: 6.8481, Lon: 81.8319}, Kind: FeatureSurfSpot},
	{Name: "Malibu", Coords: LatLon{Lat: 34.0259, Lon: -118.7798}, Kind: FeatureSurfSpot},
	{Name: "Huntington Beach", Coords: LatLon{Lat: 33.6601, Lon: -117.9992}, Kind: FeatureSurfSpot},
	{Name: "Cocoa Beach", Coords: LatLon{Lat: 28.3200, Lon: -80.6076}, Kind: FeatureSurfSpot},
	{Name: "Kill Devil Hills", Coords: LatLon{Lat: 36.0299, Lon: -75.6696}, Kind: FeatureSurfSpot},
	{Name: "Montauk", Coords: LatLon{Lat: 41.0359, Lon: -71.9545}, Kind: FeatureSurfSpot},
	{Name: "La Jolla", Coords: LatLon{Lat: 32.8427, Lon: -117.2713}, Kind: FeatureSurfSpot},
	{Name: "Hanalei Bay", Coords: LatLon{Lat: 22.2186, Lon: -159.5050}, Kind: FeatureSurfSpot},
	{Name: "Honolua Bay", Coords: LatLon{Lat: 21.0142, Lon: -156.6389}, Kind: FeatureSurfSpot},
	{Name: "Jaws (Peahi)", Coords: LatLon{Lat: 20.9333, Lon: -156.2833}, Kind: FeatureSurfSpot},
	{Name: "Salina Cruz", Coords: LatLon{Lat: 16.1667, Lon: -95.2000}, Kind: FeatureSurfSpot},
	{Name: "Pavones", Coords: LatLon{Lat: 8.3833, Lon: -83.1333}, Kind: FeatureSurfSpot},
	{Name: "Witch's Rock", Coords: LatLon{Lat: 10.8167, Lon: -85.6333}, Kind: FeatureSurfSpot},
	{Name: "La Libertad", Coords: LatLon{Lat: 13.4833, Lon: -89.3167}, Kind: FeatureSurfSpot},
	{Name: "Coxos", Coords: LatLon{Lat: 39.0000, Lon: -9.4167}, Kind: FeatureSurfSpot},
	{Name: "The Bubble", Coords: LatLon{Lat: 28.7167, Lon: -13.8167}, Kind: FeatureSurfSpot},
	{Name: "Skeleton Bay", Coords: LatLon{Lat: -25.8667, Lon: 14.8833}, Kind: FeatureSurfSpot},
	{Name: "Newquay", Coords: LatLon{Lat: 50.4137, Lon: -5.0833}, Kind: FeatureSurfSpot},
	{Name: "Muizenberg", Coords: LatLon{Lat: -34.1083, Lon: 18.4667}, Kind: FeatureSurfSpot},
	{Name: "Okinawa", Coords: LatLon{Lat: 26.2124, Lon: 127.6792}, Kind: FeatureSurfSpot},
	{Name: "Siargao", Coords: LatLon{Lat: 9.7833, Lon: 126.1500}, Kind: FeatureSurfSpot},}

// PointsOfInterest returns the built-in cities and surf spots
// The returned slice is a copy and may be modified by the caller
func PointsOfInterest() []POI {
	pois := make([]POI, len(builtinPOIs))
	copy(pois, builtinPOIs)
	return pois
}

// SpotLoader loads additional points of interest from a CSV file
// The file needs a header with at least name, latitude and longitude columns;
// an optional kind column takes "city" or "surf_spot" (default surf_spot)
type SpotLoader struct {
	csvPath string
}

// NewSpotLoader creates a new spot loader
func NewSpotLoader(csvPath string) *SpotLoader {
	return &SpotLoader{
		csvPath: csvPath,
	}
}

// Load reads the CSV file, skipping rows with unparseable coordinates
func (s *SpotLoader) Load() ([]POI, error) {
	file, err := os.Open(s.csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open spots CSV: %w", err)
	}
	defer file.Close()

	return ParseSpots(file)
}

// ParseSpots parses spot rows from r
func ParseSpots(r io.Reader) ([]POI, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndices := make(map[string]int)
	for i, col := range header {
		colIndices[strings.ToLower(strings.TrimSpace(col))] = i
	}

	required := []string{"name", "latitude", "longitude"}
	for _, col := range required {
		if _, ok := colIndices[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}
	kindIdx, hasKind := colIndices["kind"]

	var spots []POI

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		lat, err := strconv.ParseFloat(record[colIndices["latitude"]], 64)
		if err != nil || lat < -90 || lat > 90 {
			continue
		}

		lon, err := strconv.ParseFloat(record[colIndices["longitude"]], 64)
		if err != nil || lon < -180 || lon > 180 {
			continue
		}

		name := strings.TrimSpace(record[colIndices["name"]])
		if name == "" {
			continue
		}

		kind := FeatureSurfSpot
		if hasKind && kindIdx < len(record) && strings.EqualFold(strings.TrimSpace(record[kindIdx]), "city") {
			kind = FeatureCity
		}

		spots = append(spots, POI{Name: name, Coords: LatLon{Lat: lat, Lon: lon}, Kind: kind})
	}

	return spots, nil
}
