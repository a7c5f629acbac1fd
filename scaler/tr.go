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

// ScaleTr renders src into the device rectangle dstRect of pm under an
// arbitrary affine mapping: mat takes device pixel centers to source
// index coordinates. This is the general path behind transformable
// images and oblique cross-section extraction; [ScaleRect] is the
// axis-aligned special case.
func ScaleTr(src raster.Raster, mat coords.Transform, pm *Pixmap, dstRect image.Rectangle, lev Levels, in InterpSpec) (image.Rectangle, error) {
	if len(lev.Table) == 0 {
		return image.Rectangle{}, ErrNoColormap
	}
	return scaleTr(src, mat, &pixTarget{pm: pm, lev: lev}, dstRect, in)
}

// ExportTr is the numeric counterpart of [ScaleTr]. Out-of-source
// pixels receive lev.Fill; oblique cross sections rely on the NaN fill
// of [NoLevels] to exclude them from averaging.
func ExportTr(src raster.Raster, mat coords.Transform, dst *raster.Float64Grid, dstRect image.Rectangle, lev Levels, in InterpSpec) (image.Rectangle, error) {
	return scaleTr(src, mat, &numTarget{dst: dst, lev: lev}, dstRect, in)
}

func scaleTr(src raster.Raster, mat coords.Transform, tgt target, dstRect image.Rectangle, in InterpSpec) (image.Rectangle, error) {
	if src == nil || src.Len() == 0 {
		return image.Rectangle{}, raster.ErrEmptyData
	}
	if dstRect.Dx() <= 0 || dstRect.Dy() <= 0 {
		return image.Rectangle{}, ErrDegenerateRegion
	}
	if mat.Det() == 0 {
		return image.Rectangle{}, ErrDegenerateRegion
	}
	dr := dstRect.Intersect(tgt.bounds())
	if dr.Empty() {
		return image.Rectangle{}, nil
	}
	if in.Mode == AntiAlias && in.Size == 0 {
		// det is the area scale factor of the device-to-source map.
		d := math.Sqrt(math.Abs(mat.Det()))
		in = autoBox(in, d, d)
	}
	for yd := dr.Min.Y; yd < dr.Max.Y; yd++ {
		for xd := dr.Min.X; xd < dr.Max.X; xd++ {
			sx, sy := mat.Apply(float64(xd)+0.5, float64(yd)+0.5)
			v, ok := sampleAt(src, sx, sy, in)
			tgt.set(xd, yd, v, ok)
		}
	}
	return dr, nil
}
