// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaler

import (
	"image"
	"sort"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
)

// ScaleXY renders a grid whose columns and rows have non-uniform
// extents given by bin edges. xEdges must hold NumCols+1 increasing
// values and yEdges NumRows+1; cell (i, j) covers
// [xEdges[i], xEdges[i+1]) x [yEdges[j], yEdges[j+1]) in plot
// coordinates. srcRect is the plot-coordinate window mapped onto
// dstRect. Values exactly on the last edge belong to the last cell.
func ScaleXY(src raster.Raster, xEdges, yEdges []float64, srcRect coords.Rect, pm *Pixmap, dstRect image.Rectangle, lev Levels, in InterpSpec) (image.Rectangle, error) {
	if len(lev.Table) == 0 {
		return image.Rectangle{}, ErrNoColormap
	}
	return scaleXY(src, xEdges, yEdges, srcRect, &pixTarget{pm: pm, lev: lev}, dstRect, in)
}

// ExportXY is the numeric counterpart of [ScaleXY].
func ExportXY(src raster.Raster, xEdges, yEdges []float64, srcRect coords.Rect, dst *raster.Float64Grid, dstRect image.Rectangle, lev Levels, in InterpSpec) (image.Rectangle, error) {
	return scaleXY(src, xEdges, yEdges, srcRect, &numTarget{dst: dst, lev: lev}, dstRect, in)
}

func scaleXY(src raster.Raster, xEdges, yEdges []float64, srcRect coords.Rect, tgt target, dstRect image.Rectangle, in InterpSpec) (image.Rectangle, error) {
	if src == nil || src.Len() == 0 {
		return image.Rectangle{}, raster.ErrEmptyData
	}
	if len(xEdges) != src.NumCols()+1 || len(yEdges) != src.NumRows()+1 {
		return image.Rectangle{}, ErrEdgeCount
	}
	if srcRect.Width() <= 0 || srcRect.Height() <= 0 || dstRect.Dx() <= 0 || dstRect.Dy() <= 0 {
		return image.Rectangle{}, ErrDegenerateRegion
	}
	dr := dstRect.Intersect(tgt.bounds())
	if dr.Empty() {
		return image.Rectangle{}, nil
	}

	// Precompute the device-to-index lookup per column and per row; the
	// inner loop then only combines them.
	xlut := axisLUT(xEdges, srcRect.X0, srcRect.X1, dstRect.Min.X, dstRect.Max.X, dr.Min.X, dr.Max.X)
	ylut := axisLUT(yEdges, srcRect.Y0, srcRect.Y1, dstRect.Min.Y, dstRect.Max.Y, dr.Min.Y, dr.Max.Y)

	for yd := dr.Min.Y; yd < dr.Max.Y; yd++ {
		ly := ylut[yd-dr.Min.Y]
		for xd := dr.Min.X; xd < dr.Max.X; xd++ {
			lx := xlut[xd-dr.Min.X]
			if lx.cell < 0 || ly.cell < 0 {
				tgt.set(xd, yd, 0, false)
				continue
			}
			var v float64
			var ok bool
			switch in.Mode {
			case Linear:
				v, ok = sampleLinear(src, lx.u+0.5, ly.u+0.5)
			case AntiAlias:
				v, ok = sampleBox(src, float64(lx.cell)+0.5, float64(ly.cell)+0.5, in.Size)
			default:
				if src.IsValid(ly.cell, lx.cell) {
					v, ok = src.Float(ly.cell, lx.cell), true
				}
			}
			tgt.set(xd, yd, v, ok)
		}
	}
	return dr, nil
}

// axisPos is the source position of one device row or column: the
// containing cell (or -1 outside the edge span) and the continuous
// cell-center coordinate u, where u = i at the center of cell i.
type axisPos struct {
	cell int
	u    float64
}

func axisLUT(edges []float64, p0, p1 float64, d0, d1, lo, hi int) []axisPos {
	ncells := len(edges) - 1
	out := make([]axisPos, hi-lo)
	step := (p1 - p0) / float64(d1-d0)
	for k := lo; k < hi; k++ {
		p := p0 + (float64(k-d0)+0.5)*step
		pos := axisPos{cell: -1}
		if p >= edges[0] && p <= edges[ncells] {
			i := sort.Search(len(edges), func(m int) bool { return edges[m] > p }) - 1
			if i >= ncells {
				i = ncells - 1
			}
			pos.cell = i
			pos.u = centerCoord(edges, i, p)
		}
		out[k-lo] = pos
	}
	return out
}

// centerCoord maps plot position p inside cell i to the continuous
// cell-center coordinate used for linear blending between neighboring
// cells. At the outermost half-cells the coordinate clamps so linear
// sampling never extrapolates.
func centerCoord(edges []float64, i int, p float64) float64 {
	ci := 0.5 * (edges[i] + edges[i+1])
	if p < ci {
		if i == 0 {
			return 0
		}
		cp := 0.5 * (edges[i-1] + edges[i])
		return float64(i) - (ci-p)/(ci-cp)
	}
	if i == len(edges)-2 {
		return float64(i)
	}
	cn := 0.5 * (edges[i+1] + edges[i+2])
	return float64(i) + (p-ci)/(cn-ci)
}
