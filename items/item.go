// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package items implements the image item family: axis-aligned images,
// images on non-uniform XY grids, affine-transformed images,
// curvilinear quad grids, RGB images, masked images and 2D histograms.
// Items render themselves into pixmaps through the scaler package and
// expose the geometry operations cross-section and statistics tools
// are built on.
package items

import (
	"image"

	"cogentcore.org/core/math32/minmax"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

// Item is an image plot item. Concrete types embed [BaseImage] and add
// their geometry.
type Item interface {
	// Title returns the item label.
	Title() string

	// Z returns the stacking order; higher values draw on top.
	Z() float64
	SetZ(z float64)

	// Visible reports whether the item participates in rendering and
	// assembly.
	Visible() bool
	SetVisible(vis bool)

	// Capabilities returns the capability bitmask.
	Capabilities() Capability

	// BoundingRect returns the plot-coordinate extent of the item.
	BoundingRect() coords.Rect

	// Data returns the underlying value buffer.
	Data() raster.Raster

	// Render draws the item into pm. The view maps relate plot
	// coordinates to device pixels of pm along each axis.
	Render(pm *scaler.Pixmap, xmap, ymap coords.ViewMap) error
}

// ROIExporter is implemented by items with the [CanExportROI]
// capability: their pixels can be resampled into an axis-aligned
// region of interest.
type ROIExporter interface {
	Item

	// ExportROI resamples the item region srcRect (plot coordinates)
	// into the dstRect pixels of dst. With applyLut the values are
	// transformed into LUT index space and clipped; otherwise raw data
	// values pass through. Pixels with no source data are left
	// untouched, so staged exports from several items compose.
	ExportROI(dst *raster.Float64Grid, srcRect coords.Rect, dstRect image.Rectangle, applyLut, applyInterp bool) error
}

// SectionSource is implemented by items cross-section panels can read.
type SectionSource interface {
	Item

	// PlotToIndexes returns the fractional pixel indexes of a plot
	// point, unclamped: callers needing in-range indexes clamp via
	// [BaseImage.ClosestIndexes].
	PlotToIndexes(x, y float64) (fi, fj float64)

	// IndexesToPlot returns the plot coordinates of a pixel center.
	IndexesToPlot(i, j int) (x, y float64)

	// ClosestIndexRect returns the ordered, clamped pixel index
	// rectangle covering a plot rectangle, always at least one pixel.
	ClosestIndexRect(x0, y0, x1, y1 float64) (ix0, iy0, ix1, iy1 int)

	// LutRange returns the current display range, which section curves
	// reuse for their vertical axis.
	LutRange() minmax.F64
}
