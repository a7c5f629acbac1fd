// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coords provides the coordinate plumbing shared by image items
// and the scaler: continuous rectangles, 3x3 homogeneous transforms, the
// linear device / plot view maps handed in by the windowing layer, and
// the pixel rounding policy used to snap plot coordinates to indexes.
package coords

import "math"

// Rect is an axis-aligned rectangle in continuous (sub-pixel)
// coordinates. It is used both for source regions in data index space
// and for regions in plot space.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// NewRect returns the rectangle spanning the two given corners.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// IsEmpty reports whether the rectangle has zero (or negative) area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Canon returns the rectangle with corners reordered so that
// X0 <= X1 and Y0 <= Y1.
func (r Rect) Canon() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Intersects reports whether r and o overlap (after canonicalization).
func (r Rect) Intersects(o Rect) bool {
	r, o = r.Canon(), o.Canon()
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Intersect returns the overlap of r and o; empty if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	r, o = r.Canon(), o.Canon()
	return Rect{
		X0: math.Max(r.X0, o.X0),
		Y0: math.Max(r.Y0, o.Y0),
		X1: math.Min(r.X1, o.X1),
		Y1: math.Min(r.Y1, o.Y1),
	}
}

// Contains reports whether the point (x, y) lies within r.
func (r Rect) Contains(x, y float64) bool {
	r = r.Canon()
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (x, y float64) {
	return 0.5 * (r.X0 + r.X1), 0.5 * (r.Y0 + r.Y1)
}

// Corner identifies which corner of a pixel a continuous coordinate
// should snap to in [PixelRound].
type Corner int32

const (
	// CenterPixel rounds down to the pixel containing the coordinate.
	CenterPixel Corner = iota

	// TopLeft rounds down, for the top-left corner of an index rectangle.
	TopLeft

	// BottomRight rounds up, for the bottom-right corner of an index
	// rectangle.
	BottomRight
)

// PixelRound converts a continuous pixel coordinate into a pixel index.
func PixelRound(x float64, corner Corner) int {
	if corner == BottomRight {
		return int(math.Ceil(x))
	}
	return int(math.Floor(x))
}

// ViewMap is a linear map between plot coordinates [S0, S1] and device
// (canvas pixel) coordinates [P0, P1], as supplied by the windowing
// layer on each redraw. P0 may be greater than P1 (reversed axis).
type ViewMap struct {
	S0, S1 float64
	P0, P1 float64
}

// NewViewMap returns a view map from the given plot and device intervals.
func NewViewMap(s0, s1, p0, p1 float64) ViewMap {
	return ViewMap{S0: s0, S1: s1, P0: p0, P1: p1}
}

// Transform converts a plot coordinate to a device coordinate.
func (m ViewMap) Transform(s float64) float64 {
	if m.S1 == m.S0 {
		return m.P0
	}
	return m.P0 + (s-m.S0)*(m.P1-m.P0)/(m.S1-m.S0)
}

// InvTransform converts a device coordinate to a plot coordinate.
func (m ViewMap) InvTransform(p float64) float64 {
	if m.P1 == m.P0 {
		return m.S0
	}
	return m.S0 + (p-m.P0)*(m.S1-m.S0)/(m.P1-m.P0)
}
