// Package core provides fundamental types and utilities for the snake engine.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "strings"

// Coord is a grid cell position. (0,0) is the top-left cell of the playable
// area; x grows to the right and y grows downward.
type Coord struct {
	X, Y int
}

// C is shorthand for constructing a Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Direction is one of the four cardinal headings.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every heading in a stable order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Increment returns the cell one step away from c in direction d.
// No bounds checking is done; off-grid results are legal intermediate values.
// Up decreases y and Down increases y, matching the renderer's top-down rows.
func Increment(c Coord, d Direction) Coord {
	switch d {
	case DirUp:
		return Coord{X: c.X, Y: c.Y - 1}
	case DirDown:
		return Coord{X: c.X, Y: c.Y + 1}
	case DirLeft:
		return Coord{X: c.X - 1, Y: c.Y}
	case DirRight:
		return Coord{X: c.X + 1, Y: c.Y}
	default:
		return c
	}
}

// IsOpposite reports whether a and b point in exactly opposite directions.
// A direction is never opposite to itself.
func IsOpposite(a, b Direction) bool {
	return (a == DirUp && b == DirDown) ||
		(a == DirDown && b == DirUp) ||
		(a == DirLeft && b == DirRight) ||
		(a == DirRight && b == DirLeft)
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a direction token to a Direction.
// Accepted tokens are the full names, WASD and vim keys.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseDirection(token string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "up", "w", "k":
		return DirUp, true
	case "down", "s", "j":
		return DirDown, true
	case "left", "a", "h":
		return DirLeft, true
	case "right", "d", "l":
		return DirRight, true
	}
	return DirUp, false
}

// Rect represents an axis-aligned box used for overlays and bounds checks.
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

// Contains returns true if the point c is inside this rectangle.
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.X && c.X < r.Right() && c.Y >= r.Y && c.Y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
