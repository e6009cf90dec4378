package forecast

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls atomic.Int32
	err   error
}

func (p *countingProvider) Forecast(ctx context.Context, c Coordinates) (*SurfForecast, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return MockForecast(c), nil
}

func TestCache_HitWithinTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &countingProvider{}
	c := NewCache(inner, time.Minute, clock)
	ctx := context.Background()

	first, err := c.Forecast(ctx, Coordinates{Lat: 38.9631, Lon: -9.4154})
	require.NoError(t, err)

	second, err := c.Forecast(ctx, Coordinates{Lat: 38.9612, Lon: -9.4178})
	require.NoError(t, err)

	assert.Equal(t, int32(1), inner.calls.Load(), "nearby coordinates share an entry")
	assert.Equal(t, first, second)

	clock.Advance(time.Minute)
	_, err = c.Forecast(ctx, Coordinates{Lat: 38.9631, Lon: -9.4154})
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load(), "stale entry refetched")
}

func TestCache_ReturnsCopies(t *testing.T) {
	c := NewCache(&countingProvider{}, time.Minute, clockwork.NewFakeClock())
	coords := Coordinates{Lat: 1, Lon: 1}

	f, err := c.Forecast(context.Background(), coords)
	require.NoError(t, err)
	f.Forecast[0].Day = "changed"

	cached, ok := c.Get(coords)
	require.True(t, ok)
	assert.Equal(t, "Mon", cached.Forecast[0].Day)
}

func TestCache_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("backend down")}
	c := NewCache(inner, time.Minute, clockwork.NewFakeClock())
	coords := Coordinates{Lat: 5, Lon: 5}

	_, err := c.Forecast(context.Background(), coords)
	require.Error(t, err)
	_, err = c.Forecast(context.Background(), coords)
	require.Error(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentRequestsShareOneCall(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	inner := ProviderFunc(func(ctx context.Context, c Coordinates) (*SurfForecast, error) {
		calls.Add(1)
		<-release
		return MockForecast(c), nil
	})
	c := NewCache(inner, time.Minute, clockwork.NewFakeClock())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Forecast(context.Background(), Coordinates{Lat: 10, Lon: 20})
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_RejectsBadCoordinates(t *testing.T) {
	inner := &countingProvider{}
	c := NewCache(inner, time.Minute, nil)

	_, err := c.Forecast(context.Background(), Coordinates{Lat: 100})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, inner.calls.Load())
}

func TestCache_PruneStale(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCache(&countingProvider{}, time.Minute, clock)
	ctx := context.Background()

	_, _ = c.Forecast(ctx, Coordinates{Lat: 1, Lon: 1})
	clock.Advance(30 * time.Second)
	_, _ = c.Forecast(ctx, Coordinates{Lat: 2, Lon: 2})
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, c.PruneStale())
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get(Coordinates{Lat: 2, Lon: 2})
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_StartPruning(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCache(&countingProvider{}, time.Minute, clock)

	_, err := c.Forecast(context.Background(), Coordinates{Lat: 1, Lon: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.StartPruning(ctx, 10*time.Second)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))

	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, time.Millisecond)
}

func TestCache_SharedCallSurvivesFirstCallerCancel(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	inner := ProviderFunc(func(ctx context.Context, c Coordinates) (*SurfForecast, error) {
		calls.Add(1)
		select {
		case <-release:
			return MockForecast(c), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	c := NewCache(inner, time.Minute, clockwork.NewFakeClock())
	coords := Coordinates{Lat: 10, Lon: 20}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Forecast(firstCtx, coords)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		f   *SurfForecast
		err error
	}
	second := make(chan result, 1)
	go func() {
		f, err := c.Forecast(context.Background(), coords)
		second <- result{f, err}
	}()

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, "Mon", res.f.Forecast[0].Day)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_SharedCallKeepsDeadline(t *testing.T) {
	inner := ProviderFunc(func(ctx context.Context, c Coordinates) (*SurfForecast, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c := NewCache(inner, time.Minute, clockwork.NewFakeClock())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Forecast(ctx, Coordinates{Lat: 3, Lon: 4})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
