// Package core provides fundamental types and utilities shared by the simulation
// and the front-ends. It has no external dependencies so game logic stays pure
// and testable.
package core

import "math"

// Vec is a 2D vector in world space (pixels, +y down).
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{v.X * k, v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// WithLen rescales v to the given length. A zero vector stays zero.
func (v Vec) WithLen(l float64) Vec {
	cur := v.Len()
	if cur == 0 {
		return v
	}
	return v.Scale(l / cur)
}

// ClampLen limits the length of v to [minLen, maxLen].
// A zero vector is returned unchanged since it has no direction.
func (v Vec) ClampLen(minLen, maxLen float64) Vec {
	l := v.Len()
	switch {
	case l == 0:
		return v
	case l > maxLen:
		return v.WithLen(maxLen)
	case l < minLen:
		return v.WithLen(minLen)
	}
	return v
}

// FromAngle builds a vector of the given length pointing at deg degrees,
// measured from +x with -90 pointing straight up.
func FromAngle(deg, length float64) Vec {
	rad := deg * math.Pi / 180
	return Vec{math.Cos(rad) * length, math.Sin(rad) * length}
}

// Box is an axis-aligned bounding box in world space, stored by center.
type Box struct {
	C    Vec     // Center
	W, H float64 // Full width and height
}

// NewBox creates a box centered on (x, y).
func NewBox(x, y, w, h float64) Box {
	return Box{C: V(x, y), W: w, H: h}
}

// Left returns the x of the left edge.
func (b Box) Left() float64 { return b.C.X - b.W/2 }

// Right returns the x of the right edge.
func (b Box) Right() float64 { return b.C.X + b.W/2 }

// Top returns the y of the top edge.
func (b Box) Top() float64 { return b.C.Y - b.H/2 }

// Bottom returns the y of the bottom edge.
func (b Box) Bottom() float64 { return b.C.Y + b.H/2 }

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (b Box) Overlaps(o Box) bool {
	if b.Left() >= o.Right() || o.Left() >= b.Right() {
		return false
	}
	if b.Top() >= o.Bottom() || o.Top() >= b.Bottom() {
		return false
	}
	return true
}

// Circle is a circle in world space.
type Circle struct {
	C Vec
	R float64
}

// Overlaps reports whether two circles intersect.
func (c Circle) Overlaps(o Circle) bool {
	return c.C.Dist(o.C) < c.R+o.R
}

// OverlapsBox reports whether the circle intersects an axis-aligned box,
// using the closest point on the box to the circle center.
func (c Circle) OverlapsBox(b Box) bool {
	nx := ClampF(c.C.X, b.Left(), b.Right())
	ny := ClampF(c.C.Y, b.Top(), b.Bottom())
	dx := c.C.X - nx
	dy := c.C.Y - ny
	return dx*dx+dy*dy < c.R*c.R
}

// Rect is an integer cell rectangle used for screen drawing.
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

// Intersects returns true if this rectangle overlaps with another.
// Adjacent rectangles (sharing only an edge) do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Contains returns true if the point (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
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

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
