package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"surfglobe/internal/forecast"
	"surfglobe/internal/globe"
)

// Config holds every setting, layered as defaults, TOML file, .env,
// environment, then command-line flags.
type Config struct {
	Forecast ForecastConfig `toml:"forecast"`
	Display  DisplayConfig  `toml:"display"`
	Data     DataConfig     `toml:"data"`
	DebugLog string         `toml:"debug_log"`
}

// ForecastConfig selects the forecast backend
type ForecastConfig struct {
	APIKey    string        `toml:"api_key"`
	Model     string        `toml:"model"`
	MockDelay time.Duration `toml:"mock_delay"`
	TTL       time.Duration `toml:"ttl"`
	Timeout   time.Duration `toml:"timeout"`
}

// DisplayConfig tunes the globe view
type DisplayConfig struct {
	AspectRatio  float64       `toml:"aspect_ratio"`
	Sensitivity  float64       `toml:"sensitivity"`
	ZoomStep     float64       `toml:"zoom_step"`
	ZoomDuration time.Duration `toml:"zoom_duration"`
	Rotation     [3]float64    `toml:"rotation"`
}

// DataConfig locates cached map data
type DataConfig struct {
	CacheDir string `toml:"cache_dir"`
}

// Environment variables read by Load
const (
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvAPIKey      = "API_KEY"
	EnvModel       = "SURFGLOBE_MODEL"
	EnvCacheDir    = "SURFGLOBE_CACHE_DIR"
	EnvForecastTTL = "SURFGLOBE_FORECAST_TTL"
)

// Default returns the built-in settings
func Default() *Config {
	r := globe.DefaultRotation
	return &Config{
		Forecast: ForecastConfig{
			Model:     forecast.DefaultModel,
			MockDelay: forecast.DefaultMockDelay,
			TTL:       forecast.DefaultCacheTTL,
			Timeout:   30 * time.Second,
		},
		Display: DisplayConfig{
			AspectRatio:  2.0,
			Sensitivity:  globe.DefaultSensitivity,
			ZoomStep:     globe.ZoomStep,
			ZoomDuration: globe.DefaultZoomDuration,
			Rotation:     [3]float64{r.Lambda, r.Phi, r.Gamma},
		},
	}
}

// Load builds a Config from the defaults, the optional TOML file at path and
// the environment. Unknown keys in the file are an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from .env files that exist; existing
// environment variables win
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvGeminiKey); v != "" {
		c.Forecast.APIKey = v
	} else if v := os.Getenv(EnvAPIKey); v != "" {
		c.Forecast.APIKey = v
	}

	if v := os.Getenv(EnvModel); v != "" {
		c.Forecast.Model = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Data.CacheDir = v
	}
	if v := os.Getenv(EnvForecastTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			return fmt.Errorf("invalid %s: %q", EnvForecastTTL, v)
		}
		c.Forecast.TTL = ttl
	}
	return nil
}

// Validate reports every out-of-range setting
func (c *Config) Validate() error {
	var errs []error

	if c.Display.AspectRatio < 1.0 || c.Display.AspectRatio > 4.0 {
		errs = append(errs, fmt.Errorf("aspect ratio must be between 1.0 and 4.0, got %.2f", c.Display.AspectRatio))
	}
	if c.Display.Sensitivity <= 0 {
		errs = append(errs, errors.New("sensitivity must be positive"))
	}
	if c.Display.ZoomStep <= 1 {
		errs = append(errs, errors.New("zoom step must be greater than 1"))
	}
	if c.Display.ZoomDuration < 0 {
		errs = append(errs, errors.New("zoom duration must not be negative"))
	}
	if strings.TrimSpace(c.Forecast.Model) == "" {
		errs = append(errs, errors.New("forecast model is required"))
	}
	if c.Forecast.TTL < 0 {
		errs = append(errs, errors.New("forecast ttl must not be negative"))
	}
	if c.Forecast.Timeout < 0 {
		errs = append(errs, errors.New("forecast timeout must not be negative"))
	}

	return errors.Join(errs...)
}

// Rotation returns the initial globe rotation
func (c *Config) Rotation() globe.Rotation {
	r := c.Display.Rotation
	return globe.Rotation{Lambda: r[0], Phi: r[1], Gamma: r[2]}
}

// ForecastProvider returns the settings for forecast.New
func (c *Config) ForecastProvider() forecast.Config {
	return forecast.Config{
		APIKey:    c.Forecast.APIKey,
		Model:     c.Forecast.Model,
		MockDelay: c.Forecast.MockDelay,
		CacheTTL:  c.Forecast.TTL,
	}
}

// UsingMock reports whether forecasts will be served from canned data
func (c *Config) UsingMock() bool {
	return c.Forecast.APIKey == ""
}
