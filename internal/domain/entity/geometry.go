// Package entity defines domain entities for the panel layout coordinator.
package entity

import (
	"errors"
	"math"
)

// ErrGeometryUnavailable is returned when a panel cannot report its geometry yet
// (for example before the windowing layer rendered it).
var ErrGeometryUnavailable = errors.New("panel geometry unavailable")

// Point is a position in screen pixels.
type Point struct {
	X, Y float64
}

// Rect represents a panel's screen position and size in pixels.
type Rect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewRect is a shorthand constructor used heavily by tests and scenarios.
func NewRect(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// MoveTo returns a copy of r with its top-left corner at (left, top).
func (r Rect) MoveTo(left, top float64) Rect {
	r.Left = left
	r.Top = top
	return r
}

// Translate returns a copy of r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// HasArea reports whether both dimensions are finite and strictly positive.
func (r Rect) HasArea() bool {
	return isFinite(r.Width) && isFinite(r.Height) && r.Width > 0 && r.Height > 0
}

// IsFinite reports whether all four components are finite numbers.
func (r Rect) IsFinite() bool {
	return isFinite(r.Left) && isFinite(r.Top) && isFinite(r.Width) && isFinite(r.Height)
}

// ManhattanDistance returns |dx|+|dy| between the top-left corners of r and o.
func (r Rect) ManhattanDistance(o Rect) float64 {
	return math.Abs(r.Left-o.Left) + math.Abs(r.Top-o.Top)
}

// ApproxEqual reports whether every component of r and o differs by at most eps.
func (r Rect) ApproxEqual(o Rect, eps float64) bool {
	return math.Abs(r.Left-o.Left) <= eps &&
		math.Abs(r.Top-o.Top) <= eps &&
		math.Abs(r.Width-o.Width) <= eps &&
		math.Abs(r.Height-o.Height) <= eps
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
