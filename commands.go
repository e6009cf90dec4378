package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"surfglobe/internal/cache"
	"surfglobe/internal/forecast"
	"surfglobe/internal/geo"
	"surfglobe/internal/ui"
)

var (
	forecastLat  float64
	forecastLon  float64
	forecastJSON bool
)

// forecastCmd prints one forecast without starting the globe
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the surf forecast for a coordinate",
	Example: `  surfglobe forecast --lat 21.66 --lon -158.05
  surfglobe forecast --lat -33.89 --lon 151.27 --json`,
	RunE: runForecast,
}

// fetchCmd downloads the map data only
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the Natural Earth map data into the cache",
	RunE:  runFetch,
}

func init() {
	f := forecastCmd.Flags()
	f.Float64Var(&forecastLat, "lat", 0, "Latitude in degrees (-90 to 90)")
	f.Float64Var(&forecastLon, "lon", 0, "Longitude in degrees (-180 to 180)")
	f.BoolVar(&forecastJSON, "json", false, "Print the forecast as JSON")
	_ = forecastCmd.MarkFlagRequired("lat")
	_ = forecastCmd.MarkFlagRequired("lon")
}

func runForecast(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	coords := forecast.Coordinates{Lat: forecastLat, Lon: forecastLon}
	if err := forecast.ValidateCoordinates(coords); err != nil {
		return err
	}

	provider, err := forecast.New(ctx, cfg.ForecastProvider())
	if err != nil {
		return fmt.Errorf("failed to create forecast provider: %w", err)
	}

	if cfg.Forecast.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Forecast.Timeout)
		defer cancel()
	}

	f, err := provider.Forecast(ctx, coords)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if forecastJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	}
	printForecast(out, coords, f)
	return nil
}

// printForecast writes the same table the forecast panel shows
func printForecast(w io.Writer, coords forecast.Coordinates, f *forecast.SurfForecast) {
	fmt.Fprintf(w, "Surf Forecast: %s\n", f.LocationName)
	if spot, dist, ok := geo.Nearest(geo.LatLon{Lat: coords.Lat, Lon: coords.Lon}, geo.PointsOfInterest(), geo.FeatureSurfSpot); ok {
		fmt.Fprintf(w, "Nearest known spot: %s (%.0f km)\n", spot.Name, dist.Radians()*geo.EarthRadiusKm)
	}
	fmt.Fprintln(w)
	for _, day := range f.Forecast {
		fmt.Fprintf(w, "%s\n     %s\n", ui.FormatDay(day), day.Summary)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	m, err := cache.NewManager(cfg.Data.CacheDir, cache.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	if err := m.EnsureData(ctx); err != nil {
		return fmt.Errorf("failed to download map data: %w", err)
	}

	for _, file := range cache.NaturalEarthFiles {
		status := "missing"
		if m.Has(file.Base) {
			status = "ok"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", file.Name, status)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Map data cached in %s\n", m.GetCacheDir())
	return nil
}
