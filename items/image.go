// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"image"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

// Image is an axis-aligned image: pixel (i, j) covers an equal-sized
// cell of the plot-coordinate extent. With a zero-rectangle parameter
// the extent is one plot unit per pixel anchored at the origin.
type Image struct {
	BaseImage
}

// NewImage builds an axis-aligned image item over data.
func NewImage(data raster.Raster, param RectParam) *Image {
	im := &Image{BaseImage: newBaseImage(param.Param, data,
		CanSelect|CanMove|CanResize|CanColormap|CanExtractSection|CanExportROI)}
	if param.XMax > param.XMin && param.YMax > param.YMin {
		im.SetRect(coords.NewRect(param.XMin, param.YMin, param.XMax, param.YMax))
	}
	return im
}

// Render draws the visible part of the image into pm.
func (im *Image) Render(pm *scaler.Pixmap, xmap, ymap coords.ViewMap) error {
	dstRect, srcRect := im.deviceRect(xmap, ymap)
	_, err := scaler.ScaleRect(im.renderData(), srcRect, pm, dstRect, im.lut.Levels(), im.interpSpec())
	return err
}

// ExportROI resamples the plot region srcRect into the dstRect pixels
// of dst.
func (im *Image) ExportROI(dst *raster.Float64Grid, srcRect coords.Rect, dstRect image.Rectangle, applyLut, applyInterp bool) error {
	fi0, fj0 := im.PlotToIndexes(srcRect.X0, srcRect.Y0)
	fi1, fj1 := im.PlotToIndexes(srcRect.X1, srcRect.Y1)
	lev := scaler.NoLevels()
	src := im.Data()
	if applyLut {
		// LUT coefficients live in render space, which differs from the
		// raw data under log scaling.
		lev = im.lut.Levels()
		lev.Table = nil
		lev.HasBackground = false
		src = im.renderData()
	}
	in := scaler.NearestSpec
	if applyInterp {
		in = im.interpSpec()
	}
	_, err := scaler.ExportRect(src, coords.NewRect(fi0, fj0, fi1, fj1), dst, dstRect, lev, in)
	return err
}

// deviceRect projects the item extent into device pixels and returns
// the matching full-data source window.
func (im *Image) deviceRect(xmap, ymap coords.ViewMap) (image.Rectangle, coords.Rect) {
	r := im.BoundingRect()
	xd0 := coords.PixelRound(xmap.Transform(r.X0), coords.TopLeft)
	yd0 := coords.PixelRound(ymap.Transform(r.Y0), coords.TopLeft)
	xd1 := coords.PixelRound(xmap.Transform(r.X1), coords.BottomRight)
	yd1 := coords.PixelRound(ymap.Transform(r.Y1), coords.BottomRight)
	dstRect := image.Rect(int(xd0), int(yd0), int(xd1), int(yd1))
	srcRect := coords.NewRect(0, 0, float64(im.Data().NumCols()), float64(im.Data().NumRows()))
	return dstRect, srcRect
}
