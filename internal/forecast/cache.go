package forecast

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"surfglobe/internal/debug"
)

// DefaultCacheTTL is how long a forecast stays fresh when no TTL is given
const DefaultCacheTTL = 30 * time.Minute

// Cache wraps a Provider with an in-memory TTL cache keyed on coordinates
// rounded to two decimals. Concurrent requests for one key share a call.
type Cache struct {
	inner   Provider
	entries map[string]*cacheEntry
	mu      sync.RWMutex
	ttl     time.Duration
	clock   clockwork.Clock
	group   singleflight.Group
}

type cacheEntry struct {
	forecast  *SurfForecast
	fetchedAt time.Time
}

// NewCache creates a cache decorator around a provider
// ttl specifies how long before an entry is considered stale (default: 30m)
func NewCache(inner Provider, ttl time.Duration, clock clockwork.Clock) *Cache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Cache{
		inner:   inner,
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Forecast returns a fresh cached forecast or asks the wrapped provider.
// Errors are never cached so a failed location can be retried.
func (c *Cache) Forecast(ctx context.Context, coords Coordinates) (*SurfForecast, error) {
	if err := ValidateCoordinates(coords); err != nil {
		return nil, err
	}

	key := coords.key()
	if f, ok := c.Get(coords); ok {
		debug.Log("forecast cache hit for %s", key)
		return f, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// the call is shared, so one waiter going away must not cancel it
		callCtx, cancel := detach(ctx)
		defer cancel()

		f, err := c.inner.Forecast(callCtx, coords)
		if err != nil {
			return nil, err
		}
		c.put(key, f)
		return f, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*SurfForecast).clone(), nil
	}
}

// detach strips cancellation from ctx but keeps its deadline and values
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	shared := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(shared, deadline)
	}
	return shared, func() {}
}

// Get retrieves a fresh forecast for coords without calling the provider
func (c *Cache) Get(coords Coordinates) (*SurfForecast, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[coords.key()]
	if !exists || c.stale(e) {
		return nil, false
	}
	return e.forecast.clone(), true
}

func (c *Cache) put(key string, f *SurfForecast) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{forecast: f.clone(), fetchedAt: c.clock.Now()}
}

func (c *Cache) stale(e *cacheEntry) bool {
	return c.clock.Since(e.fetchedAt) >= c.ttl
}

// Len returns the number of cached entries, stale or not
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// PruneStale removes entries older than the TTL
// Returns the number of entries removed
func (c *Cache) PruneStale() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if c.stale(e) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// StartPruning starts a background goroutine that periodically prunes stale entries
// The goroutine runs until the context is cancelled
// pruneInterval specifies how often to check (default: 1m)
func (c *Cache) StartPruning(ctx context.Context, pruneInterval time.Duration) {
	if pruneInterval == 0 {
		pruneInterval = time.Minute
	}

	go func() {
		ticker := c.clock.NewTicker(pruneInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				if n := c.PruneStale(); n > 0 {
					debug.Log("pruned %d stale forecasts", n)
				}
			}
		}
	}()
}
