package forecast

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"surfglobe/internal/debug"
)

// DefaultModel is the Gemini model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// DefaultMockDelay is how long the mocked provider pretends to think
const DefaultMockDelay = 1500 * time.Millisecond

// Provider returns a surf forecast for a coordinate
type Provider interface {
	Forecast(ctx context.Context, c Coordinates) (*SurfForecast, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(ctx context.Context, c Coordinates) (*SurfForecast, error)

func (f ProviderFunc) Forecast(ctx context.Context, c Coordinates) (*SurfForecast, error) {
	return f(ctx, c)
}

// Config selects and tunes the forecast provider
type Config struct {
	APIKey    string
	Model     string
	MockDelay time.Duration
	CacheTTL  time.Duration // 0 disables caching
	Clock     clockwork.Clock
}

// New returns the Gemini provider when an API key is configured and the mocked
// provider otherwise. A positive CacheTTL wraps the result in a Cache.
func New(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	var p Provider
	if cfg.APIKey == "" {
		debug.Warn("API_KEY environment variable not set. Using mocked data.")
		p = NewMockProvider(cfg.MockDelay, cfg.Clock)
	} else {
		g, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		debug.L().Info("using gemini forecasts", zap.String("model", g.Model()))
		p = g
	}

	if cfg.CacheTTL > 0 {
		p = NewCache(p, cfg.CacheTTL, cfg.Clock)
	}
	return p, nil
}

// IsMock reports whether p serves canned data, looking through a cache
func IsMock(p Provider) bool {
	if c, ok := p.(*Cache); ok {
		p = c.inner
	}
	_, ok := p.(*MockProvider)
	return ok
}
