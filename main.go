package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"surfglobe/internal/cache"
	"surfglobe/internal/config"
	"surfglobe/internal/debug"
	"surfglobe/internal/forecast"
	"surfglobe/internal/geo"
	"surfglobe/internal/ui"
)

var (
	configPath  string
	cacheDir    string
	debugLog    string
	aspectRatio float64
	sensitivity float64
	zoomStep    float64
	model       string

	cfg     *config.Config
	logFile *os.File
)

// rootCmd runs the interactive globe
var rootCmd = &cobra.Command{
	Use:   "surfglobe",
	Short: "Terminal globe with AI surf forecasts",
	Long: `surfglobe draws a rotatable globe in the terminal.

Click a coastline to get a 5-day surf forecast. Drag to rotate, scroll or
press +/- to zoom. Forecasts come from Gemini when GEMINI_API_KEY (or API_KEY)
is set, and from canned data otherwise.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		debug.Sync()
		if logFile != nil {
			logFile.Close()
		}
	},
	RunE: runGlobe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML config file")
	pf.StringVar(&cacheDir, "cache", "", "Cache directory for map data (default: ~/.surfglobe/data)")
	pf.StringVarP(&debugLog, "debug", "d", "", "Debug log file (e.g., debug.log)")
	pf.StringVar(&model, "model", "", "Gemini model used for forecasts")

	f := rootCmd.Flags()
	f.Float64VarP(&aspectRatio, "aspect", "a", 2.0, "Character aspect ratio - adjust for font width (1.0-4.0)")
	f.Float64VarP(&sensitivity, "sensitivity", "s", 75.0, "Drag sensitivity in degrees per pixel at scale 1")
	f.Float64Var(&zoomStep, "zoom-step", 1.3, "Zoom factor per key press or wheel notch")

	rootCmd.AddCommand(forecastCmd, fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers .env, the config file, the environment and flags, then
// opens the debug log
func loadConfig(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("cache") {
		c.Data.CacheDir = cacheDir
	}
	if flags.Changed("debug") {
		c.DebugLog = debugLog
	}
	if flags.Changed("model") {
		c.Forecast.Model = model
	}
	if flags.Changed("aspect") {
		c.Display.AspectRatio = aspectRatio
	}
	if flags.Changed("sensitivity") {
		c.Display.Sensitivity = sensitivity
	}
	if flags.Changed("zoom-step") {
		c.Display.ZoomStep = zoomStep
	}

	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	if cfg.DebugLog != "" {
		f, err := os.Create(cfg.DebugLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			logFile = f
			debug.SetOutput(f)
			debug.Log("surfglobe debug log started")
			fmt.Printf("Debug logging enabled: %s\n", cfg.DebugLog)
		}
	}
	return nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// runGlobe prepares map data and runs the terminal UI
func runGlobe(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	fmt.Println("Initializing map data cache...")
	cacheManager, err := cache.NewManager(cfg.Data.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	fmt.Println("Checking Natural Earth data...")
	if err := cacheManager.EnsureData(ctx); err != nil {
		return fmt.Errorf("failed to download map data: %w", err)
	}

	fmt.Println("Loading geographic features...")
	features, err := geo.NewShapefileLoader(cacheManager.GetCacheDir()).LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load shapefiles: %w", err)
	}
	land := geo.NewLandIndex(features[geo.FeatureCountry])

	pois, err := cacheManager.LoadPOIs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", cache.SpotsFile, err)
	}
	fmt.Printf("Loaded %d points of interest\n", len(pois))

	provider, err := forecast.New(ctx, cfg.ForecastProvider())
	if err != nil {
		return fmt.Errorf("failed to create forecast provider: %w", err)
	}
	if cfg.UsingMock() {
		fmt.Println("API_KEY environment variable not set. Using mocked data.")
	}

	rotation := cfg.Rotation()
	fmt.Printf("Starting surfglobe (aspect: %.1f, model: %s)...\n", cfg.Display.AspectRatio, cfg.Forecast.Model)
	app, err := ui.NewApp(nil, ui.AppOptions{
		Provider:     provider,
		Features:     features,
		POIs:         pois,
		Land:         land,
		AspectRatio:  cfg.Display.AspectRatio,
		Rotation:     &rotation,
		Sensitivity:  cfg.Display.Sensitivity,
		ZoomStep:     cfg.Display.ZoomStep,
		ZoomDuration: cfg.Display.ZoomDuration,
		Timeout:      cfg.Forecast.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
	return nil
}
