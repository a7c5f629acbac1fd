// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaler

import (
	"image"
	"math"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
)

// ScaleRect renders the source index-space window srcRect of src into
// the device rectangle dstRect of pm, colormapping each sample through
// lev. srcRect is in continuous index coordinates (cell (i, j) covers
// [i, i+1) x [j, j+1)); the mapping to dstRect is axis-aligned linear.
// Pixels whose sample falls outside src are painted with the levels
// background, or left untouched without one.
//
// The returned rectangle is the region of pm actually written, the
// intersection of dstRect with the pixmap bounds.
func ScaleRect(src raster.Raster, srcRect coords.Rect, pm *Pixmap, dstRect image.Rectangle, lev Levels, in InterpSpec) (image.Rectangle, error) {
	if len(lev.Table) == 0 {
		return image.Rectangle{}, ErrNoColormap
	}
	return scaleRect(src, srcRect, &pixTarget{pm: pm, lev: lev}, dstRect, in)
}

// ExportRect is the numeric counterpart of [ScaleRect]: it writes
// level-transformed sample values into dst instead of colormapped
// pixels. Out-of-source pixels receive lev.Fill when the levels carry a
// background, and are left untouched otherwise. With [NoLevels] this
// resamples raw data, the path used by ROI export.
func ExportRect(src raster.Raster, srcRect coords.Rect, dst *raster.Float64Grid, dstRect image.Rectangle, lev Levels, in InterpSpec) (image.Rectangle, error) {
	return scaleRect(src, srcRect, &numTarget{dst: dst, lev: lev}, dstRect, in)
}

func scaleRect(src raster.Raster, srcRect coords.Rect, tgt target, dstRect image.Rectangle, in InterpSpec) (image.Rectangle, error) {
	if src == nil || src.Len() == 0 {
		return image.Rectangle{}, raster.ErrEmptyData
	}
	if srcRect.Width() <= 0 || srcRect.Height() <= 0 || dstRect.Dx() <= 0 || dstRect.Dy() <= 0 {
		return image.Rectangle{}, ErrDegenerateRegion
	}
	dr := dstRect.Intersect(tgt.bounds())
	if dr.Empty() {
		return image.Rectangle{}, nil
	}
	dx := srcRect.Width() / float64(dstRect.Dx())
	dy := srcRect.Height() / float64(dstRect.Dy())
	in = autoBox(in, dx, dy)
	for yd := dr.Min.Y; yd < dr.Max.Y; yd++ {
		sy := srcRect.Y0 + (float64(yd-dstRect.Min.Y)+0.5)*dy
		for xd := dr.Min.X; xd < dr.Max.X; xd++ {
			sx := srcRect.X0 + (float64(xd-dstRect.Min.X)+0.5)*dx
			v, ok := sampleAt(src, sx, sy, in)
			tgt.set(xd, yd, v, ok)
		}
	}
	return dr, nil
}

// autoBox derives the anti-aliasing box size from the zoom-out factor
// when the caller did not fix one.
func autoBox(in InterpSpec, dx, dy float64) InterpSpec {
	if in.Mode != AntiAlias || in.Size > 0 {
		return in
	}
	n := int(math.Ceil(math.Max(dx, dy)))
	if n < 2 {
		n = 2
	}
	in.Size = n
	return in
}
