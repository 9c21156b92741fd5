// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

// Size is a width/height pair in logical pixels.
type Size struct {
	Width, Height float32
}

// Sz is a convenience function to create a Size.
func Sz(w, h float32) Size {
	return Size{Width: w, Height: h}
}

// Max returns the componentwise maximum of s and o.
func (s Size) Max(o Size) Size {
	return Size{Width: max(s.Width, o.Width), Height: max(s.Height, o.Height)}
}

// Covers reports whether s is at least as large as o on both axes.
func (s Size) Covers(o Size) bool {
	return s.Width >= o.Width && s.Height >= o.Height
}

// Exceeds reports whether s is larger than o on either axis.
func (s Size) Exceeds(o Size) bool {
	return s.Width > o.Width || s.Height > o.Height
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is an axis-aligned rectangle: origin plus size.
type Rect struct {
	Origin Point
	Size   Size
}

// R creates a Rect from x, y, width and height.
func R(x, y, w, h float32) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// MinX returns the left edge.
func (r Rect) MinX() float32 { return r.Origin.X }

// MinY returns the top edge.
func (r Rect) MinY() float32 { return r.Origin.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float32 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float32 { return r.Origin.Y + r.Size.Height }

// Contains reports whether p lies inside r. The right and bottom edges are
// inclusive so that hit testing a 1px thumb always succeeds.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() &&
		p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Intersect returns the overlapping area of r and o. The result has zero
// size if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.MinX(), o.MinX())
	y0 := max(r.MinY(), o.MinY())
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{Origin: Point{X: x0, Y: y0}}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Origin: r.Origin.Add(d), Size: r.Size}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}
