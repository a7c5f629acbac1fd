// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import "math"

// DType identifies the element type of a [Grid].
type DType int32

const (
	Uint8 DType = iota
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Float32
	Float64
)

func (dt DType) String() string {
	switch dt {
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "invalid"
}

// IsFloat returns whether the element type is a floating point type,
// i.e. whether its values can carry NaNs.
func (dt DType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// RangeMax returns the full representable range of the element type.
// This is the hard ceiling for manually-entered level ranges, as opposed
// to the actual data range returned by [Range].
func (dt DType) RangeMax() (min, max float64) {
	switch dt {
	case Uint8:
		return 0, math.MaxUint8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Uint16:
		return 0, math.MaxUint16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Uint32:
		return 0, math.MaxUint32
	case Int64:
		return math.MinInt64, math.MaxInt64
	case Float32:
		return -math.MaxFloat32, math.MaxFloat32
	default:
		return -math.MaxFloat64, math.MaxFloat64
	}
}
