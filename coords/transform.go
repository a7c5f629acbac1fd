// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coords

import "math"

// Transform is a 3x3 homogeneous 2D transform in row-major order:
//
//	[ XX XY X0 ]
//	[ YX YY Y0 ]
//	[  0  0  1 ]
//
// mapping (x, y) to (XX*x + XY*y + X0, YX*x + YY*y + Y0). It is the
// float64 counterpart of the float32 matrices used for on-screen
// geometry: coordinate mappings between data indexes and plot space
// need full double precision to stay pixel-accurate on large rasters.
type Transform struct {
	XX, XY, X0 float64
	YX, YY, Y0 float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{XX: 1, YY: 1}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Transform {
	return Transform{XX: 1, YY: 1, X0: tx, Y0: ty}
}

// Scale returns an anisotropic scale by (sx, sy).
func Scale(sx, sy float64) Transform {
	return Transform{XX: sx, YY: sy}
}

// Rotate returns a rotation by alpha radians (counterclockwise in a
// Y-up frame).
func Rotate(alpha float64) Transform {
	sin, cos := math.Sincos(alpha)
	return Transform{XX: cos, XY: -sin, YX: sin, YY: cos}
}

// Mul returns t * o (o applied first).
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		XX: t.XX*o.XX + t.XY*o.YX,
		XY: t.XX*o.XY + t.XY*o.YY,
		X0: t.XX*o.X0 + t.XY*o.Y0 + t.X0,
		YX: t.YX*o.XX + t.YY*o.YX,
		YY: t.YX*o.XY + t.YY*o.YY,
		Y0: t.YX*o.X0 + t.YY*o.Y0 + t.Y0,
	}
}

// Apply maps the point (x, y) through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.XX*x + t.XY*y + t.X0, t.YX*x + t.YY*y + t.Y0
}

// Det returns the determinant of the linear part.
func (t Transform) Det() float64 {
	return t.XX*t.YY - t.XY*t.YX
}

// Invert returns the inverse transform. The second result is false if
// the transform is singular, in which case the identity is returned.
func (t Transform) Invert() (Transform, bool) {
	det := t.Det()
	if det == 0 {
		return Identity(), false
	}
	inv := Transform{
		XX: t.YY / det,
		XY: -t.XY / det,
		YX: -t.YX / det,
		YY: t.XX / det,
	}
	inv.X0 = -(inv.XX*t.X0 + inv.XY*t.Y0)
	inv.Y0 = -(inv.YX*t.X0 + inv.YY*t.Y0)
	return inv, true
}
