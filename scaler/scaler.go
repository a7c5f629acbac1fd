// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaler rasterizes regions of 2D numeric buffers into device
// pixels or export buffers, applying level scaling (an affine transform
// into lookup-table index space) and an optional colormap table per
// output pixel. It is the engine behind every image item redraw and
// behind ROI export and cross-section extraction.
//
// Four source geometries are supported: axis-aligned rectangular grids
// ([ScaleRect]), non-uniform XY bin grids ([ScaleXY]), arbitrary
// quadrilateral grids ([ScaleQuads]) and arbitrary affine transforms
// ([ScaleTr]). All of them share the same sampling kernels (nearest,
// bilinear, anti-aliased box) and the same level/colormap application.
package scaler

import (
	"errors"
	"image"
	"math"

	"github.com/pixplot/pixplot/raster"
)

// ErrDegenerateRegion is returned when a zero-area source or destination
// rectangle is passed to a scale operation. Draw loops are expected to
// skip the frame rather than propagate it to the user.
var ErrDegenerateRegion = errors.New("scaler: degenerate source or destination region")

// ErrNoColormap is returned when a device (pixmap) scale operation is
// invoked with levels that carry no colormap table.
var ErrNoColormap = errors.New("scaler: device target requires a colormap table")

// ErrEdgeCount is returned by the XY and quad operations when the
// coordinate arrays do not match the data shape.
var ErrEdgeCount = errors.New("scaler: coordinate arrays do not match data shape")

// Interp selects the resampling kernel.
type Interp int32

const (
	// Nearest samples the single closest source cell. Fastest; also the
	// mode used for export, masks and filters where sample values must
	// pass through unblended.
	Nearest Interp = iota

	// Linear blends the four neighboring source cells bilinearly.
	Linear

	// AntiAlias averages an NxN box of source samples around the target
	// position, for heavily zoomed-out views where nearest and linear
	// alias badly. The box size is [InterpSpec.Size].
	AntiAlias
)

func (in Interp) String() string {
	switch in {
	case Nearest:
		return "nearest"
	case Linear:
		return "linear"
	case AntiAlias:
		return "antialiasing"
	}
	return "invalid"
}

// InterpSpec is a resampling mode plus its parameters.
type InterpSpec struct {
	Mode Interp

	// Size is the box size for [AntiAlias]; ignored otherwise.
	Size int
}

// NearestSpec and LinearSpec are the parameterless interpolation specs.
var (
	NearestSpec = InterpSpec{Mode: Nearest}
	LinearSpec  = InterpSpec{Mode: Linear}
)

// AASpec returns an anti-aliasing spec with the given box size.
func AASpec(size int) InterpSpec {
	if size < 2 {
		size = 2
	}
	return InterpSpec{Mode: AntiAlias, Size: size}
}

// Levels carries the per-pixel value transform applied by a scale
// operation: v' = A*v + B, optionally clipped to the LUT index range and
// looked up in a packed ARGB colormap table.
type Levels struct {
	A float64
	B float64

	// Clip clips A*v+B to [0, len(Table)-1] (or [0, 1023] when no table
	// is attached). Set when levels represent a LUT mapping; unset for
	// raw value export.
	Clip bool

	// Table is the packed ARGB colormap table indexed by the clipped
	// transform result. Nil for numeric export targets.
	Table []uint32

	// Background, when HasBackground is set, is the packed ARGB pixel
	// written for samples outside the source or masked out. Without a
	// background such device pixels are left untouched.
	Background    uint32
	HasBackground bool

	// Fill is the value written to numeric export targets for samples
	// outside the source or masked out, when HasBackground is set.
	// Without a background such cells are left untouched, so staged
	// exports from several sources compose. Oblique cross sections
	// prefill their destination with NaN instead.
	Fill float64
}

// NoLevels returns pass-through levels (A=1, B=0) for raw data export.
// Cells with no source sample are left untouched.
func NoLevels() Levels {
	return Levels{A: 1, Fill: math.NaN()}
}

// NaNLevels returns pass-through levels that write NaN for cells with
// no source sample.
func NaNLevels() Levels {
	return Levels{A: 1, Fill: math.NaN(), HasBackground: true}
}

// target receives output pixels from the scaling loops.
type target interface {
	// bounds returns the writable region in device coordinates.
	bounds() image.Rectangle

	// set writes the sample v at (x, y); ok is false for samples outside
	// the source or masked out.
	set(x, y int, v float64, ok bool)
}

// pixTarget writes colormapped device pixels.
type pixTarget struct {
	pm  *Pixmap
	lev Levels
}

func (t *pixTarget) bounds() image.Rectangle { return image.Rect(0, 0, t.pm.W, t.pm.H) }

func (t *pixTarget) set(x, y int, v float64, ok bool) {
	if !ok || v != v { // NaN source sample
		if t.lev.HasBackground {
			t.pm.Pix[y*t.pm.W+x] = t.lev.Background
		}
		return
	}
	idx := t.lev.A*v + t.lev.B
	max := float64(len(t.lev.Table) - 1)
	if idx < 0 {
		idx = 0
	} else if idx > max {
		idx = max
	}
	t.pm.Pix[y*t.pm.W+x] = t.lev.Table[int(idx)]
}

// numTarget writes raw (level-transformed) values into a float64 grid.
type numTarget struct {
	dst *raster.Float64Grid
	lev Levels
}

func (t *numTarget) bounds() image.Rectangle {
	return image.Rect(0, 0, t.dst.NumCols(), t.dst.NumRows())
}

func (t *numTarget) set(x, y int, v float64, ok bool) {
	if !ok {
		if t.lev.HasBackground {
			t.dst.Set(y, x, t.lev.Fill)
		}
		return
	}
	out := t.lev.A*v + t.lev.B
	if t.lev.Clip {
		if out < 0 {
			out = 0
		} else if out > 1023 {
			out = 1023
		}
	}
	t.dst.Set(y, x, out)
}
