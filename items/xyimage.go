// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/lut"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

// XYImage is an image on a rectilinear but non-uniform grid: each
// column and row has its own extent, given either as per-pixel centers
// or as bin edges. Construction normalizes unsorted axes by reordering
// the data, so downstream lookups can always binary-search.
type XYImage struct {
	BaseImage

	xEdges []float64
	yEdges []float64
}

// NewXYImage builds an XY image over data. x has either NumCols
// entries (pixel centers, converted to bins) or NumCols+1 entries (bin
// edges); same for y with rows. Axes given in descending or shuffled
// order are sorted, with the data reordered to match.
func NewXYImage(data raster.Raster, x, y []float64, param Param) (*XYImage, error) {
	nr, nc := data.NumRows(), data.NumCols()
	x, data, err := normalizeAxis(x, data, nc, false)
	if err != nil {
		return nil, fmt.Errorf("items: x axis: %w", err)
	}
	y, data, err = normalizeAxis(y, data, nr, true)
	if err != nil {
		return nil, fmt.Errorf("items: y axis: %w", err)
	}
	xe, err := axisEdges(x, nc)
	if err != nil {
		return nil, fmt.Errorf("items: x axis: %w", err)
	}
	ye, err := axisEdges(y, nr)
	if err != nil {
		return nil, fmt.Errorf("items: y axis: %w", err)
	}
	im := &XYImage{
		BaseImage: newBaseImage(param, data,
			CanSelect|CanMove|CanColormap|CanExtractSection),
		xEdges: xe,
		yEdges: ye,
	}
	im.SetRect(coords.NewRect(xe[0], ye[0], xe[len(xe)-1], ye[len(ye)-1]))
	return im, nil
}

// SetData replaces the data buffer. The new buffer must match the
// existing bin-edge shape; on mismatch the item keeps its previous
// buffer and an error is returned.
func (im *XYImage) SetData(data raster.Raster) error {
	if data.NumCols() != len(im.xEdges)-1 || data.NumRows() != len(im.yEdges)-1 {
		return fmt.Errorf("items: data shape %dx%d does not match %dx%d bins",
			data.NumRows(), data.NumCols(), len(im.yEdges)-1, len(im.xEdges)-1)
	}
	im.BaseImage.SetData(data)
	return nil
}

// XEdges returns the column bin edges.
func (im *XYImage) XEdges() []float64 { return im.xEdges }

// YEdges returns the row bin edges.
func (im *XYImage) YEdges() []float64 { return im.yEdges }

// Render draws the visible part of the image into pm.
func (im *XYImage) Render(pm *scaler.Pixmap, xmap, ymap coords.ViewMap) error {
	r := im.BoundingRect()
	xd0 := coords.PixelRound(xmap.Transform(r.X0), coords.TopLeft)
	yd0 := coords.PixelRound(ymap.Transform(r.Y0), coords.TopLeft)
	xd1 := coords.PixelRound(xmap.Transform(r.X1), coords.BottomRight)
	yd1 := coords.PixelRound(ymap.Transform(r.Y1), coords.BottomRight)
	dstRect := image.Rect(int(xd0), int(yd0), int(xd1), int(yd1))
	_, err := scaler.ScaleXY(im.renderData(), im.xEdges, im.yEdges, r, pm, dstRect, im.lut.Levels(), im.interpSpec())
	return err
}

// PlotToIndexes returns the fractional pixel indexes of a plot point by
// binary search over the bin edges, unclamped: outside the edges the
// index extrapolates with the outermost bin width.
func (im *XYImage) PlotToIndexes(x, y float64) (fi, fj float64) {
	return edgeIndex(im.xEdges, x), edgeIndex(im.yEdges, y)
}

// IndexesToPlot returns the plot coordinates of the center of pixel
// (i, j).
func (im *XYImage) IndexesToPlot(i, j int) (x, y float64) {
	i = clampInt(i, 0, len(im.xEdges)-2)
	j = clampInt(j, 0, len(im.yEdges)-2)
	return 0.5 * (im.xEdges[i] + im.xEdges[i+1]), 0.5 * (im.yEdges[j] + im.yEdges[j+1])
}

// ClosestIndexes returns the pixel containing the plot point, clamped
// into the data bounds.
func (im *XYImage) ClosestIndexes(x, y float64) (i, j int) {
	fi, fj := im.PlotToIndexes(x, y)
	i = clampInt(int(math.Floor(fi)), 0, im.Data().NumCols()-1)
	j = clampInt(int(math.Floor(fj)), 0, im.Data().NumRows()-1)
	return i, j
}

// ClosestPixelIndexes is the unclamped variant of ClosestIndexes.
func (im *XYImage) ClosestPixelIndexes(x, y float64) (i, j int) {
	fi, fj := im.PlotToIndexes(x, y)
	return int(math.Floor(fi)), int(math.Floor(fj))
}

// ClosestIndexRect returns the ordered, clamped pixel index rectangle
// covering the plot rectangle, always at least one pixel.
func (im *XYImage) ClosestIndexRect(x0, y0, x1, y1 float64) (ix0, iy0, ix1, iy1 int) {
	fi0 := edgeIndex(im.xEdges, math.Min(x0, x1))
	fj0 := edgeIndex(im.yEdges, math.Min(y0, y1))
	fi1 := edgeIndex(im.xEdges, math.Max(x0, x1))
	fj1 := edgeIndex(im.yEdges, math.Max(y0, y1))
	nc, nr := im.Data().NumCols(), im.Data().NumRows()
	ix0 = clampInt(int(coords.PixelRound(fi0, coords.TopLeft)), 0, nc)
	iy0 = clampInt(int(coords.PixelRound(fj0, coords.TopLeft)), 0, nr)
	ix1 = clampInt(int(coords.PixelRound(fi1, coords.BottomRight)), 0, nc)
	iy1 = clampInt(int(coords.PixelRound(fj1, coords.BottomRight)), 0, nr)
	if ix0 == ix1 {
		if ix1 < nc {
			ix1++
		} else {
			ix0--
		}
	}
	if iy0 == iy1 {
		if iy1 < nr {
			iy1++
		} else {
			iy0--
		}
	}
	return ix0, iy0, ix1, iy1
}

// edgeIndex maps plot position p to a fractional bin index: integer
// values at edges, linear within each bin.
func edgeIndex(edges []float64, p float64) float64 {
	n := len(edges) - 1
	if p < edges[0] {
		w := edges[1] - edges[0]
		return (p - edges[0]) / w
	}
	if p >= edges[n] {
		w := edges[n] - edges[n-1]
		return float64(n) + (p-edges[n])/w
	}
	i := sort.Search(len(edges), func(k int) bool { return edges[k] > p }) - 1
	if i > n-1 {
		i = n - 1
	}
	return float64(i) + (p-edges[i])/(edges[i+1]-edges[i])
}

// axisEdges accepts either n centers or n+1 edges and returns edges.
func axisEdges(v []float64, n int) ([]float64, error) {
	switch len(v) {
	case n:
		return lut.ToBins(v), nil
	case n + 1:
		return v, nil
	}
	return nil, fmt.Errorf("got %d values for %d pixels, want %d or %d", len(v), n, n, n+1)
}

// normalizeAxis sorts axis positions and reorders the data to match.
// Only the center form (n entries) can be reordered; edges must come
// sorted.
func normalizeAxis(v []float64, data raster.Raster, n int, rows bool) ([]float64, raster.Raster, error) {
	if sort.Float64sAreSorted(v) {
		return v, data, nil
	}
	if len(v) != n {
		return nil, nil, fmt.Errorf("bin edges must be sorted")
	}
	idx := make([]int, n)
	for k := range idx {
		idx[k] = k
	}
	sort.Slice(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })
	sorted := make([]float64, n)
	for k, src := range idx {
		sorted[k] = v[src]
	}
	nr, nc := data.NumRows(), data.NumCols()
	out := raster.NewGrid[float64](nr, nc)
	for j := 0; j < nr; j++ {
		for i := 0; i < nc; i++ {
			sj, si := j, i
			if rows {
				sj = idx[j]
			} else {
				si = idx[i]
			}
			if !data.IsValid(sj, si) {
				out.Set(j, i, math.NaN())
				continue
			}
			out.Set(j, i, data.Float(sj, si))
		}
	}
	return sorted, out, nil
}
