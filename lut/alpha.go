// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lut

import "math"

// AlphaFunc shapes the alpha channel of the colormap table as a
// function of normalized LUT position x in [0, 1].
type AlphaFunc int32

const (
	// AlphaNone leaves the table fully opaque.
	AlphaNone AlphaFunc = iota

	// AlphaConstant applies the same alpha everywhere.
	AlphaConstant

	// AlphaLinear ramps alpha linearly from 0 to the configured value.
	AlphaLinear

	// AlphaSigmoid ramps alpha along a logistic curve.
	AlphaSigmoid

	// AlphaTanh ramps alpha along a hyperbolic tangent curve.
	AlphaTanh

	// AlphaStep makes the lowest table entry fully transparent and the
	// rest uniformly translucent, useful for overlaying segmentation
	// maps where zero means no data.
	AlphaStep
)

func (f AlphaFunc) String() string {
	switch f {
	case AlphaNone:
		return "none"
	case AlphaConstant:
		return "constant"
	case AlphaLinear:
		return "linear"
	case AlphaSigmoid:
		return "sigmoid"
	case AlphaTanh:
		return "tanh"
	case AlphaStep:
		return "step"
	}
	return "invalid"
}

// Value returns the alpha in [0, 1] at normalized position x for the
// configured maximum alpha.
func (f AlphaFunc) Value(x, alpha float64) float64 {
	var a float64
	switch f {
	case AlphaNone:
		a = 1
	case AlphaConstant:
		a = alpha
	case AlphaLinear:
		a = alpha * x
	case AlphaSigmoid:
		a = alpha / (1 + math.Exp(-10*x))
	case AlphaTanh:
		a = alpha * math.Tanh(5*x)
	case AlphaStep:
		if x > 0 {
			a = alpha
		}
	}
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
