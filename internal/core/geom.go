// Package core provides fundamental types and utilities for the lander.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a point or vector in world space. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Polygon is a closed loop of points. The last point connects back to the first.
type Polygon []Vec2

// Transform applies a rigid transform: rotate by angle, then translate by pos.
func (p Polygon) Transform(pos Vec2, angle float64) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = pt.Rotate(angle).Add(pos)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the polygon.
// An empty polygon yields the zero Bounds.
func (p Polygon) Bounds() Bounds {
	if len(p) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: p[0].X, MaxX: p[0].X, MinY: p[0].Y, MaxY: p[0].Y}
	for _, pt := range p[1:] {
		b.MinX = math.Min(b.MinX, pt.X)
		b.MaxX = math.Max(b.MaxX, pt.X)
		b.MinY = math.Min(b.MinY, pt.Y)
		b.MaxY = math.Max(b.MaxY, pt.Y)
	}
	return b
}

// Contains reports whether pt lies inside the polygon (even-odd rule).
// Used by renderers; collision goes through the rasterized map instead.
func (p Polygon) Contains(pt Vec2) bool {
	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds is an axis-aligned rectangle in world space.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Valid reports whether the rectangle has positive area on both axes.
func (b Bounds) Valid() bool {
	return b.MinX < b.MaxX && b.MinY < b.MaxY
}

// Contains is a half-open test: min <= p < max on both axes.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X < b.MaxX && p.Y >= b.MinY && p.Y < b.MaxY
}

// Center returns the center point of the rectangle.
func (b Bounds) Center() Vec2 {
	return Vec2{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// Extents is the world rectangle covered by a collision map.
// Bottom is the lowest world y; the rectangle spans upward by Height.
type Extents struct {
	Left   float64 `yaml:"left"`
	Bottom float64 `yaml:"bottom"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Bounds converts the extents to a Bounds rectangle.
func (e Extents) Bounds() Bounds {
	return Bounds{MinX: e.Left, MaxX: e.Left + e.Width, MinY: e.Bottom, MaxY: e.Bottom + e.Height}
}

// WrapAngle wraps an angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// Rect represents an axis-aligned box in screen cells.
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
