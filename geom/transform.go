// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "golang.org/x/image/math/f32"

// Transform is a 4x4 transformation matrix in row-major order, the layout
// compositors expect for property bindings:
//
//	| m0  m1  m2  m3  |
//	| m4  m5  m6  m7  |
//	| m8  m9  m10 m11 |
//	| m12 m13 m14 m15 |
//
// Points are treated as column vectors, so translation lives in m3, m7, m11.
type Transform f32.Mat4

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation transform.
func Translation(x, y, z float32) Transform {
	return Transform{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scaling creates a scaling transform.
func Scaling(x, y, z float32) Transform {
	return Transform{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Mat4 returns the transform as an f32.Mat4.
func (t Transform) Mat4() f32.Mat4 {
	return f32.Mat4(t)
}

// Multiply returns t * o (o is applied first).
func (t Transform) Multiply(o Transform) Transform {
	var r Transform
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += t[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// TransformPoint applies t to p (z = 0, w = 1) with perspective divide.
func (t Transform) TransformPoint(p Point) Point {
	x := t[0]*p.X + t[1]*p.Y + t[3]
	y := t[4]*p.X + t[5]*p.Y + t[7]
	w := t[12]*p.X + t[13]*p.Y + t[15]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return Point{X: x, Y: y}
}

// Invert returns the inverse of a 2D affine transform embedded in t
// (translation, scale, rotation and skew in the XY plane). ok is false if
// the matrix is singular.
func (t Transform) Invert() (inv Transform, ok bool) {
	a, b, c := t[0], t[1], t[3]
	d, e, f := t[4], t[5], t[7]
	det := a*e - b*d
	if det == 0 {
		return Transform{}, false
	}
	id := 1 / det
	inv = Identity()
	inv[0] = e * id
	inv[1] = -b * id
	inv[3] = (b*f - e*c) * id
	inv[4] = -d * id
	inv[5] = a * id
	inv[7] = (d*c - a*f) * id
	return inv, true
}

// IsIdentity reports whether t equals the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// ApproxEqual reports whether every component differs by at most eps.
func (t Transform) ApproxEqual(o Transform, eps float32) bool {
	for i := range t {
		if Abs(t[i]-o[i]) > eps {
			return false
		}
	}
	return true
}
