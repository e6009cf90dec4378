package globe

// DefaultSensitivity is the rotation in degrees per pixel of drag at scale 1
const DefaultSensitivity = 75.0

// Drag tracks one pointer gesture from press to release
// A gesture with no movement at all counts as a click
type Drag struct {
	active bool
	moved  bool
	last   Point
	origin Point
}

// Begin starts a gesture at p
func (d *Drag) Begin(p Point) {
	d.active = true
	d.moved = false
	d.last = p
	d.origin = p
}

// Active reports whether a gesture is in progress
func (d *Drag) Active() bool {
	return d.active
}

// Move reports the delta since the previous pointer position
// ok is false when no gesture is active or the pointer did not move
func (d *Drag) Move(p Point) (dx, dy float64, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	dx = p.X - d.last.X
	dy = p.Y - d.last.Y
	if dx == 0 && dy == 0 {
		return 0, 0, false
	}
	d.last = p
	d.moved = true
	return dx, dy, true
}

// End finishes the gesture; click is true when the pointer never moved,
// origin is where the gesture started
func (d *Drag) End() (origin Point, click bool) {
	if !d.active {
		return Point{}, false
	}
	d.active = false
	return d.origin, !d.moved
}

// Cancel drops the gesture without producing a click
func (d *Drag) Cancel() {
	d.active = false
	d.moved = false
}
