// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csection extracts cross-section curves from image items:
// single row and column profiles, profiles averaged over a rectangle,
// arbitrary line profiles and oblique (rotated rectangle) averages.
package csection

import (
	"errors"
	"math"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/items"
	"github.com/pixplot/pixplot/raster"
)

// ErrNoSection is returned when an item cannot provide the requested
// section, for lack of capability or because the position falls
// outside the data.
var ErrNoSection = errors.New("csection: no section available")

// Curve is a cross-section profile: Pos holds plot coordinates along
// the section axis and Val the data values. Positions where the data
// is invalid carry NaN values, so curves keep a uniform x sampling.
type Curve struct {
	Pos []float64
	Val []float64
}

// sectionable returns the item as a section source if it has the
// capability.
func sectionable(it items.Item) (items.SectionSource, bool) {
	ss, ok := it.(items.SectionSource)
	if !ok || !it.Capabilities().Has(items.CanExtractSection) {
		return nil, false
	}
	return ss, true
}

// XSection extracts the horizontal profile of it through plot
// coordinate y: one point per data column, positioned at the column
// centers.
func XSection(it items.Item, y float64) (Curve, error) {
	ss, ok := sectionable(it)
	if !ok {
		return Curve{}, ErrNoSection
	}
	return rowCurve(ss, it.Data(), y)
}

// YSection extracts the vertical profile of it through plot
// coordinate x: one point per data row, positioned at the row centers.
func YSection(it items.Item, x float64) (Curve, error) {
	ss, ok := sectionable(it)
	if !ok {
		return Curve{}, ErrNoSection
	}
	return colCurve(ss, it.Data(), x)
}

func rowCurve(ss items.SectionSource, data raster.Raster, y float64) (Curve, error) {
	cx := ss.BoundingRect().X0
	_, fj := ss.PlotToIndexes(cx, y)
	j := int(math.Floor(fj))
	if j < 0 || j >= data.NumRows() {
		return Curve{}, ErrNoSection
	}
	nc := data.NumCols()
	c := Curve{Pos: make([]float64, nc), Val: make([]float64, nc)}
	for i := 0; i < nc; i++ {
		x, _ := ss.IndexesToPlot(i, j)
		c.Pos[i] = x
		if data.IsValid(j, i) {
			c.Val[i] = data.Float(j, i)
		} else {
			c.Val[i] = math.NaN()
		}
	}
	return c, nil
}

func colCurve(ss items.SectionSource, data raster.Raster, x float64) (Curve, error) {
	cy := ss.BoundingRect().Y0
	fi, _ := ss.PlotToIndexes(x, cy)
	i := int(math.Floor(fi))
	if i < 0 || i >= data.NumCols() {
		return Curve{}, ErrNoSection
	}
	nr := data.NumRows()
	c := Curve{Pos: make([]float64, nr), Val: make([]float64, nr)}
	for j := 0; j < nr; j++ {
		_, y := ss.IndexesToPlot(i, j)
		c.Pos[j] = y
		if data.IsValid(j, i) {
			c.Val[j] = data.Float(j, i)
		} else {
			c.Val[j] = math.NaN()
		}
	}
	return c, nil
}

// CombinedXSection composes every capable visible item of list over
// rect, summing values where items overlap, and returns the horizontal
// profile averaged over the rows of the composite. Cells a masked area
// removes contribute zero to the sum; columns no item covers come out
// NaN.
func CombinedXSection(list []items.Item, rect coords.Rect) (Curve, error) {
	w, h := combinedSize(list, rect)
	if w == 0 || h == 0 {
		return Curve{}, ErrNoSection
	}
	g, err := items.Assemble(list, rect, w, h, true, false, false)
	if err != nil {
		return Curve{}, err
	}
	c := Curve{Pos: make([]float64, w), Val: make([]float64, w)}
	dx := rect.Width() / float64(w)
	for i := 0; i < w; i++ {
		c.Pos[i] = rect.X0 + (float64(i)+0.5)*dx
		sum, n := 0.0, 0
		for j := 0; j < h; j++ {
			if v := g.Values[j*w+i]; !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n == 0 {
			c.Val[i] = math.NaN()
		} else {
			c.Val[i] = sum / float64(n)
		}
	}
	return c, nil
}

// CombinedYSection is the vertical counterpart of [CombinedXSection]:
// the composite's columns are averaged into one profile along y.
func CombinedYSection(list []items.Item, rect coords.Rect) (Curve, error) {
	w, h := combinedSize(list, rect)
	if w == 0 || h == 0 {
		return Curve{}, ErrNoSection
	}
	g, err := items.Assemble(list, rect, w, h, true, false, false)
	if err != nil {
		return Curve{}, err
	}
	c := Curve{Pos: make([]float64, h), Val: make([]float64, h)}
	dy := rect.Height() / float64(h)
	for j := 0; j < h; j++ {
		c.Pos[j] = rect.Y0 + (float64(j)+0.5)*dy
		sum, n := 0.0, 0
		for i := 0; i < w; i++ {
			if v := g.Values[j*w+i]; !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n == 0 {
			c.Val[j] = math.NaN()
		} else {
			c.Val[j] = sum / float64(n)
		}
	}
	return c, nil
}

// combinedSize picks the assembly resolution for rect: the finest cell
// pitch among the contributing items, so no item loses detail.
func combinedSize(list []items.Item, rect coords.Rect) (w, h int) {
	if rect.IsEmpty() {
		return 0, 0
	}
	for _, it := range list {
		if !it.Visible() || !it.Capabilities().Has(items.CanExportROI) {
			continue
		}
		data := it.Data()
		b := it.BoundingRect()
		if data == nil || b.Width() <= 0 || b.Height() <= 0 {
			continue
		}
		cw := int(math.Ceil(rect.Width() / b.Width() * float64(data.NumCols())))
		ch := int(math.Ceil(rect.Height() / b.Height() * float64(data.NumRows())))
		if cw > w {
			w = cw
		}
		if ch > h {
			h = ch
		}
	}
	return w, h
}

// Sections extracts the same section from every capable visible item.
func Sections(list []items.Item, section func(items.Item) (Curve, error)) []Curve {
	var out []Curve
	for _, it := range list {
		if !it.Visible() {
			continue
		}
		c, err := section(it)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}
