// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"cogentcore.org/core/math32/minmax"

	"github.com/pixplot/pixplot/lut"
	"github.com/pixplot/pixplot/scaler"
)

// Param is the display state shared by every image item. It is plain
// data: it serializes as-is and applies to an item with [BaseImage.SetParam].
type Param struct {
	// Title is the item label shown in panels and legends.
	Title string

	// ColormapName selects the colormap from the catalog.
	ColormapName string

	// AlphaFunc and Alpha shape the transparency of the colormap table.
	AlphaFunc lut.AlphaFunc
	Alpha     float64

	// Interp selects the resampling kernel for rendering.
	Interp scaler.InterpSpec

	// Background, when non-empty, is the hex color painted outside the
	// data. Empty leaves outside pixels untouched.
	Background string

	// LutRange is the data interval mapped onto the colormap. A zero
	// interval means full data range.
	LutRange minmax.F64

	// ZLog renders log10 of the data instead of the data itself.
	ZLog bool

	// LockPosition prevents interactive moves.
	LockPosition bool
}

// DefaultParam returns the parameters of a freshly built item.
func DefaultParam(title string) Param {
	return Param{
		Title:        title,
		ColormapName: "Viridis",
		AlphaFunc:    lut.AlphaNone,
		Alpha:        1,
		Interp:       scaler.LinearSpec,
	}
}

// RectParam extends [Param] with the plot-coordinate extents of an
// axis-aligned image. A zero rectangle means pixel coordinates, one
// plot unit per pixel anchored at the origin.
type RectParam struct {
	Param
	XMin, XMax float64
	YMin, YMax float64
}

// TrParam extends [Param] with the pose of a transformable image. The
// pose is applied to an image centered at the origin with the given
// pixel sizes.
type TrParam struct {
	Param

	// Pos is the translation of the image center.
	PosX, PosY float64

	// Angle is the rotation in radians.
	Angle float64

	// DX, DY are the pixel sizes in plot units. Zero means 1.
	DX, DY float64

	// HFlip and VFlip mirror the image around its center.
	HFlip, VFlip bool
}

// Hist2DParam extends [Param] with 2D histogram binning.
type Hist2DParam struct {
	Param

	// NXBins, NYBins are the bin counts along each axis.
	NXBins, NYBins int

	// Mode is the per-bin accumulation.
	Mode Hist2DMode

	// AutoLut rescales the LUT to the computed bin range on every
	// recomputation.
	AutoLut bool

	// Background is the value of empty bins; NaN leaves them invalid.
	BinBackground float64
}
