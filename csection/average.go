// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csection

import (
	"math"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/items"
	"github.com/pixplot/pixplot/raster"
)

// AverageXSection extracts the horizontal profile of it over the plot
// rectangle r: one point per covered column, each the mean of the
// valid cells of that column inside the rectangle. A rectangle one
// pixel high reduces to [XSection] through that row.
func AverageXSection(it items.Item, r coords.Rect) (Curve, error) {
	ss, ok := sectionable(it)
	if !ok {
		return Curve{}, ErrNoSection
	}
	ix0, iy0, ix1, iy1 := ss.ClosestIndexRect(r.X0, r.Y0, r.X1, r.Y1)
	data := it.Data()
	c := Curve{Pos: make([]float64, ix1-ix0), Val: make([]float64, ix1-ix0)}
	for i := ix0; i < ix1; i++ {
		x, _ := ss.IndexesToPlot(i, iy0)
		c.Pos[i-ix0] = x
		c.Val[i-ix0] = meanColumn(data, i, iy0, iy1)
	}
	return c, nil
}

// AverageYSection extracts the vertical profile of it over the plot
// rectangle r, averaging along rows.
func AverageYSection(it items.Item, r coords.Rect) (Curve, error) {
	ss, ok := sectionable(it)
	if !ok {
		return Curve{}, ErrNoSection
	}
	ix0, iy0, ix1, iy1 := ss.ClosestIndexRect(r.X0, r.Y0, r.X1, r.Y1)
	data := it.Data()
	c := Curve{Pos: make([]float64, iy1-iy0), Val: make([]float64, iy1-iy0)}
	for j := iy0; j < iy1; j++ {
		_, y := ss.IndexesToPlot(ix0, j)
		c.Pos[j-iy0] = y
		c.Val[j-iy0] = meanRow(data, j, ix0, ix1)
	}
	return c, nil
}

// LineSection samples the profile along the plot segment from
// (x0, y0) to (x1, y1): one sample per crossed pixel, positioned by
// distance from the segment start.
func LineSection(it items.Item, x0, y0, x1, y1 float64) (Curve, error) {
	ss, ok := sectionable(it)
	if !ok {
		return Curve{}, ErrNoSection
	}
	data := it.Data()
	fi0, fj0 := ss.PlotToIndexes(x0, y0)
	fi1, fj1 := ss.PlotToIndexes(x1, y1)
	n := int(math.Max(math.Abs(fi1-fi0), math.Abs(fj1-fj0))) + 1
	length := math.Hypot(x1-x0, y1-y0)
	c := Curve{Pos: make([]float64, n), Val: make([]float64, n)}
	for k := 0; k < n; k++ {
		t := 0.0
		if n > 1 {
			t = float64(k) / float64(n-1)
		}
		c.Pos[k] = t * length
		i := int(math.Floor(fi0 + t*(fi1-fi0)))
		j := int(math.Floor(fj0 + t*(fj1-fj0)))
		if i < 0 || i >= data.NumCols() || j < 0 || j >= data.NumRows() || !data.IsValid(j, i) {
			c.Val[k] = math.NaN()
			continue
		}
		c.Val[k] = data.Float(j, i)
	}
	return c, nil
}

func meanColumn(data raster.Raster, i, j0, j1 int) float64 {
	var sum float64
	var n int
	for j := j0; j < j1; j++ {
		if !data.IsValid(j, i) {
			continue
		}
		sum += data.Float(j, i)
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func meanRow(data raster.Raster, j, i0, i1 int) float64 {
	var sum float64
	var n int
	for i := i0; i < i1; i++ {
		if !data.IsValid(j, i) {
			continue
		}
		sum += data.Float(j, i)
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
