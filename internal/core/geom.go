// Package core provides the engine's fundamental types: the indexed-colour
// framebuffer, button input state and the geometry they share.
// It does no I/O, keeping game logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector with real components.
type Vec2 struct {
	X, Y float64
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns v scaled to unit length.
// A vector whose component magnitudes sum to zero is returned unchanged,
// so the result is never NaN.
func Normalize(v Vec2) Vec2 {
	if math.Abs(v.X)+math.Abs(v.Y) == 0 {
		return Vec2{}
	}
	return v.Scale(1 / v.Len())
}

// Offset is an integer unit offset contributed by one direction button.
type Offset struct {
	X, Y int
}

// Vec returns the offset as a Vec2.
func (o Offset) Vec() Vec2 {
	return Vec2{X: float64(o.X), Y: float64(o.Y)}
}

// Canonical offsets for a four-way cluster. Y grows downwards, as on screen.
var (
	OffsetUp    = Offset{X: 0, Y: -1}
	OffsetDown  = Offset{X: 0, Y: 1}
	OffsetLeft  = Offset{X: -1, Y: 0}
	OffsetRight = Offset{X: 1, Y: 0}
)

// Rect represents an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// floorInt floors f to an int. ok is false for NaN and infinities.
func floorInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Floor(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
