// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats computes statistics over rectangular regions of image
// items: moments, quantiles, surface and integral, plus the outlier
// range used by contrast adjustment. Reports format with per-axis unit
// annotations parsed from printf-style format strings.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/items"
	"github.com/pixplot/pixplot/lut"
	"github.com/pixplot/pixplot/raster"
)

// Region holds the statistics of a rectangular region of an item.
type Region struct {
	// Rect is the plot rectangle the statistics cover.
	Rect coords.Rect

	// Count is the number of valid cells; masked and NaN cells are
	// excluded from every figure.
	Count int

	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Std    float64
	Sum    float64

	// Surface is the plot-coordinate area of the region.
	Surface float64

	// Integral is the raw sum of the valid cells, identical to Sum.
	Integral float64

	// Density is Integral divided by Surface; valid only when
	// HasDensity is set, i.e. the surface is not zero.
	Density    float64
	HasDensity bool
}

// Compute returns the statistics of item data inside the plot
// rectangle r.
func Compute(it items.Item, r coords.Rect) (Region, error) {
	ss, ok := it.(items.SectionSource)
	if !ok {
		return Region{}, fmt.Errorf("stats: item %q has no pixel geometry", it.Title())
	}
	ix0, iy0, ix1, iy1 := ss.ClosestIndexRect(r.X0, r.Y0, r.X1, r.Y1)
	data := it.Data()
	vals := make([]float64, 0, (ix1-ix0)*(iy1-iy0))
	for j := iy0; j < iy1; j++ {
		for i := ix0; i < ix1; i++ {
			if !data.IsValid(j, i) {
				continue
			}
			vals = append(vals, data.Float(j, i))
		}
	}
	if len(vals) == 0 {
		return Region{Rect: r}, raster.ErrEmptyData
	}
	sort.Float64s(vals)

	reg := Region{
		Rect:    r,
		Count:   len(vals),
		Min:     vals[0],
		Max:     vals[len(vals)-1],
		Mean:    stat.Mean(vals, nil),
		Median:  stat.Quantile(0.5, stat.Empirical, vals, nil),
		Surface: r.Width() * r.Height(),
	}
	if len(vals) > 1 {
		reg.Std = stat.StdDev(vals, nil)
	}
	for _, v := range vals {
		reg.Sum += v
	}
	reg.Integral = reg.Sum
	if reg.Surface != 0 {
		reg.Density = reg.Integral / reg.Surface
		reg.HasDensity = true
	}
	return reg, nil
}

// OutlierRange returns the data interval of r that remains after
// eliminating percent of the histogram mass, half from each tail.
func OutlierRange(r raster.Raster, nbins int, percent float64) (lo, hi float64) {
	counts, edges := lut.Histogram(r, nbins)
	return lut.RangeThreshold(counts, edges, percent, !r.DType().IsFloat())
}

// Report renders the region as a multiline text block. xformat,
// yformat and zformat are printf-style formats optionally followed by
// a unit, e.g. "%.1f µm"; the unit annotates the matching figures.
func (r Region) Report(xformat, yformat, zformat string) string {
	xf, xu := splitUnit(xformat)
	yf, yu := splitUnit(yformat)
	zf, zu := splitUnit(zformat)
	num := func(f, unit string, v float64) string {
		s := fmt.Sprintf(f, v)
		if unit != "" {
			s += " " + unit
		}
		return s
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s <= x <= %s\n", num(xf, xu, r.Rect.X0), num(xf, xu, r.Rect.X1))
	fmt.Fprintf(&b, "%s <= y <= %s\n", num(yf, yu, r.Rect.Y0), num(yf, yu, r.Rect.Y1))
	fmt.Fprintf(&b, "%s <= z <= %s\n", num(zf, zu, r.Min), num(zf, zu, r.Max))
	fmt.Fprintf(&b, "<z> = %s\n", num(zf, zu, r.Mean))
	fmt.Fprintf(&b, "median(z) = %s\n", num(zf, zu, r.Median))
	fmt.Fprintf(&b, "sigma(z) = %s\n", num(zf, zu, r.Std))
	fmt.Fprintf(&b, "sum(z) = %s\n", num(zf, zu, r.Sum))
	surfUnit := ""
	if yu != "" {
		surfUnit = yu + "2"
	}
	fmt.Fprintf(&b, "surface = %s\n", num(yf, surfUnit, r.Surface))
	fmt.Fprintf(&b, "integral = %s\n", fmt.Sprintf(zf, r.Integral))
	if r.HasDensity {
		fmt.Fprintf(&b, "density = %s", fmt.Sprintf(zf, r.Density))
	} else {
		b.WriteString("density not computed (null surface)")
	}
	return b.String()
}

// splitUnit separates a printf format from a trailing unit label.
func splitUnit(format string) (verb, unit string) {
	if format == "" {
		return "%g", ""
	}
	if i := strings.IndexByte(format, ' '); i >= 0 {
		return format[:i], format[i+1:]
	}
	return format, ""
}
