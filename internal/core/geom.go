// Package core provides fundamental types and utilities shared by the
// simulation and the platform layer. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// InteractionTolerance is the margin used for proximity checks
// (pickups, prompts) as opposed to physical contact.
const InteractionTolerance = 10

// Vec is a point or velocity in world units.
type Vec struct {
	X, Y float64
}

// Rect represents an axis-aligned bounding box in world units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports whether a and b overlap once b is grown by tol on every side.
// The test is strict, so touching edges do not overlap at tolerance 0.
func Overlaps(a, b Rect, tol float64) bool {
	return a.X < b.X+b.W+tol &&
		a.X+a.W > b.X-tol &&
		a.Y < b.Y+b.H+tol &&
		a.Y+a.H > b.Y-tol
}

// Collides is Overlaps with zero tolerance (physical contact).
func Collides(a, b Rect) bool {
	return Overlaps(a, b, 0)
}

// HorizontallyAligned reports whether the x-extents of a and b overlap.
func HorizontallyAligned(a, b Rect) bool {
	return a.X+a.W > b.X && a.X < b.X+b.W
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
