package globe

import (
	"math"
	"time"
)

// Zoom bounds and the step used by the zoom buttons
const (
	MinZoom = 1.0
	MaxZoom = 8.0

	ZoomStep = 1.3

	DefaultZoomDuration = 250 * time.Millisecond
)

// Zoom holds the zoom factor k and an optional transition towards a target
// The factor is always clamped to [MinZoom, MaxZoom]
type Zoom struct {
	k        float64
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	running  bool
}

// NewZoom creates a zoom at factor 1 with the given transition duration
func NewZoom(duration time.Duration) *Zoom {
	return &Zoom{
		k:        MinZoom,
		duration: duration,
	}
}

// K returns the current zoom factor
func (z *Zoom) K() float64 {
	return z.k
}

// Target returns the factor the zoom is heading to (K when idle)
func (z *Zoom) Target() float64 {
	if z.running {
		return z.to
	}
	return z.k
}

// Animating reports whether a transition is in progress
func (z *Zoom) Animating() bool {
	return z.running
}

// ScaleBy starts a transition from the current factor to factor times it
// A transition already in progress is interrupted where it stands
func (z *Zoom) ScaleBy(factor float64, now time.Time) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	z.ScaleTo(z.k*factor, now)
}

// ScaleTo starts a transition to an absolute factor
func (z *Zoom) ScaleTo(k float64, now time.Time) {
	target := clampZoom(k)
	if target == z.k {
		z.running = false
		return
	}
	if z.duration <= 0 {
		z.k = target
		z.running = false
		return
	}

	z.from = z.k
	z.to = target
	z.start = now
	z.running = true
}

// Set jumps to a factor without a transition
func (z *Zoom) Set(k float64) {
	z.k = clampZoom(k)
	z.running = false
}

// Step advances a running transition to now and reports whether k changed
// Scale is interpolated geometrically with cubic in-out easing
func (z *Zoom) Step(now time.Time) bool {
	if !z.running {
		return false
	}

	t := 1.0
	if elapsed := now.Sub(z.start); elapsed < z.duration {
		t = float64(elapsed) / float64(z.duration)
		if t < 0 {
			t = 0
		}
	}

	prev := z.k
	if t >= 1 {
		z.k = z.to
		z.running = false
	} else {
		z.k = clampZoom(z.from * math.Pow(z.to/z.from, easeCubicInOut(t)))
	}
	return z.k != prev
}

func clampZoom(k float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, k))
}

func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
