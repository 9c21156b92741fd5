// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Point represents a 2D point or vector in logical pixels.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// PointFromVec2 converts an f32.Vec2 to a Point.
func PointFromVec2(v f32.Vec2) Point {
	return Point{X: v[0], Y: v[1]}
}

// Vec2 returns the point as an f32.Vec2.
func (p Point) Vec2() f32.Vec2 {
	return f32.Vec2{p.X, p.Y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsFinite reports whether both components are finite numbers.
func (p Point) IsFinite() bool {
	return IsFinite(p.X) && IsFinite(p.Y)
}

// ApproxEqual reports whether both components differ by at most eps.
func (p Point) ApproxEqual(q Point, eps float32) bool {
	return Abs(p.X-q.X) <= eps && Abs(p.Y-q.Y) <= eps
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Abs returns the absolute value of v.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float32) float32 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
