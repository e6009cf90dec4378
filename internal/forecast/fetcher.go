package forecast

import (
	"context"
	"errors"
	"sync"
	"time"

	"surfglobe/internal/debug"
)

// Result is the outcome of one background forecast request
type Result struct {
	Seq      uint64
	Coords   Coordinates
	Forecast *SurfForecast
	Err      error
}

// Fetcher runs forecast requests in the background, one at a time.
// A new request cancels the one in flight; only the latest request's result
// is delivered.
type Fetcher struct {
	provider Provider
	timeout  time.Duration

	results   chan Result
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewFetcher creates a fetcher around p. A positive timeout bounds each request.
func NewFetcher(p Provider, timeout time.Duration) *Fetcher {
	return &Fetcher{
		provider: p,
		timeout:  timeout,
		results:  make(chan Result, 1),
		done:     make(chan struct{}),
	}
}

// Results returns the channel results are delivered on
// It is closed by Close
func (f *Fetcher) Results() <-chan Result {
	return f.results
}

// Request starts fetching a forecast for c and returns its sequence number
func (f *Fetcher) Request(c Coordinates) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	select {
	case <-f.done:
		return f.seq
	default:
	}

	if f.cancel != nil {
		f.cancel()
	}

	f.seq++
	seq := f.seq

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if f.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), f.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	f.cancel = cancel

	debug.Log("forecast request #%d for %s", seq, c)

	f.wg.Add(1)
	go f.run(ctx, cancel, seq, c)

	return seq
}

// Cancel abandons the request in flight, if any
func (f *Fetcher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.seq++
}

// Pending returns the sequence number of the latest request
func (f *Fetcher) Pending() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

// Close cancels outstanding work and closes the results channel
func (f *Fetcher) Close() error {
	f.closeOnce.Do(func() {
		f.mu.Lock()
		close(f.done)
		if f.cancel != nil {
			f.cancel()
		}
		f.mu.Unlock()

		// wait for run goroutines before closing the channel they send on
		f.wg.Wait()
		close(f.results)
	})
	return nil
}

func (f *Fetcher) run(ctx context.Context, cancel context.CancelFunc, seq uint64, c Coordinates) {
	defer f.wg.Done()
	defer cancel()

	forecast, err := f.provider.Forecast(ctx, c)
	if err == nil {
		err = Validate(forecast)
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			debug.Log("forecast request #%d cancelled", seq)
			return
		}
		if !errors.Is(err, ErrForecastUnavailable) {
			err = wrapUnavailable(err)
		}
		forecast = nil
	}

	if !f.current(seq) {
		debug.Log("dropping stale forecast result #%d", seq)
		return
	}

	select {
	case f.results <- Result{Seq: seq, Coords: c, Forecast: forecast, Err: err}:
	case <-f.done:
	}
}

func (f *Fetcher) current(seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return seq == f.seq
}
