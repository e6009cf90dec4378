package globe

import "math"

// Viewport maps terminal cells to the square-pixel space the projection uses
// aspectRatio compensates for character dimensions (typically 2.0 for
// characters twice as tall as wide)
type Viewport struct {
	width       int
	height      int
	aspectRatio float64
}

// NewViewport creates a viewport of width x height cells
func NewViewport(width, height int, aspectRatio float64) Viewport {
	if aspectRatio <= 0 {
		aspectRatio = 2.0
	}
	return Viewport{
		width:       width,
		height:      height,
		aspectRatio: aspectRatio,
	}
}

// Size returns the viewport size in cells
func (v Viewport) Size() (width, height int) {
	return v.width, v.height
}

// AspectRatio returns the cell height to width ratio
func (v Viewport) AspectRatio() float64 {
	return v.aspectRatio
}

// PixelSize returns the viewport size in pixel space
// One cell is one pixel wide and aspectRatio pixels tall
func (v Viewport) PixelSize() (width, height float64) {
	return float64(v.width), float64(v.height) * v.aspectRatio
}

// CellCenter returns the pixel position at the centre of a cell
func (v Viewport) CellCenter(x, y int) Point {
	return Point{
		X: float64(x) + 0.5,
		Y: (float64(y) + 0.5) * v.aspectRatio,
	}
}

// Cell returns the cell containing a pixel position
func (v Viewport) Cell(p Point) (x, y int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y / v.aspectRatio))
}

// Contains checks if a cell lies inside the viewport
func (v Viewport) Contains(x, y int) bool {
	return x >= 0 && x < v.width && y >= 0 && y < v.height
}

// Resize changes the viewport dimensions
func (v *Viewport) Resize(width, height int) {
	v.width = width
	v.height = height
}
