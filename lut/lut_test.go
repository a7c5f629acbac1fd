// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lut

import (
	"math"
	"testing"

	"cogentcore.org/core/colors/colormap"
	"github.com/stretchr/testify/assert"

	"github.com/pixplot/pixplot/raster"
)

func testMap() *colormap.Map {
	return colormap.AvailableMaps["ColdHot"]
}

func TestSetRange(t *testing.T) {
	l := New(testMap())
	l.SetRange(10, 20)
	// The affine transform pins the range ends on the table ends.
	assert.Equal(t, 0, l.Index(10))
	assert.Equal(t, Max, l.Index(20))
	assert.Equal(t, Max/2, l.Index(15))

	// Out-of-range values clip.
	assert.Equal(t, 0, l.Index(-1e9))
	assert.Equal(t, Max, l.Index(1e9))
}

func TestSetRangeDegenerate(t *testing.T) {
	l := New(testMap())
	l.SetRange(7, 7)
	assert.Equal(t, float64(Max), l.A)
	assert.Equal(t, 7.0, l.B)
	// Still renders without dividing by zero.
	assert.GreaterOrEqual(t, l.Index(7), 0)
	assert.LessOrEqual(t, l.Index(7), Max)
}

func TestSetColormapMemoized(t *testing.T) {
	l := New(testMap())
	before := l.Table
	l.SetColormap(testMap(), AlphaNone, 1)
	assert.Equal(t, before, l.Table)

	l.SetColormap(testMap(), AlphaConstant, 0.5)
	// Half alpha premultiplies the channels.
	a := l.Table[Max] >> 24
	assert.InDelta(t, 128, float64(a), 1)
}

func TestAlphaFuncs(t *testing.T) {
	assert.Equal(t, 1.0, AlphaNone.Value(0.3, 0.5))
	assert.Equal(t, 0.5, AlphaConstant.Value(0.3, 0.5))
	assert.InDelta(t, 0.15, AlphaLinear.Value(0.3, 0.5), 1e-12)
	assert.InDelta(t, 0.5/(1+math.Exp(-3)), AlphaSigmoid.Value(0.3, 0.5), 1e-12)
	assert.InDelta(t, 0.5*math.Tanh(1.5), AlphaTanh.Value(0.3, 0.5), 1e-12)
	assert.Equal(t, 0.0, AlphaStep.Value(0, 0.5))
	assert.Equal(t, 0.5, AlphaStep.Value(0.001, 0.5))
}

func TestHistogramMass(t *testing.T) {
	g, _ := raster.NewGridValues(4, 4, []float64{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
		12, 13, 14, 15,
	})
	counts, edges := Histogram(g, 8)
	total := 0
	for _, c := range counts {
		total += c
	}
	// Every valid cell lands in exactly one bin, top edge included.
	assert.Equal(t, 16, total)
	assert.Equal(t, len(edges), len(counts)+1)

	// Masked cells drop out of the mass.
	mask := make([]bool, 16)
	mask[0], mask[5] = true, true
	g.SetMask(mask)
	counts, _ = Histogram(g, 8)
	total = 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 14, total)
}

func TestHistogramInteger(t *testing.T) {
	g, _ := raster.NewGridValues(1, 6, []int32{0, 0, 1, 2, 3, 3})
	counts, edges := Histogram(g, 10)
	// Unit-spaced integer bins: one per value.
	assert.Equal(t, []int{2, 1, 1, 2}, counts)
	assert.Equal(t, 0.0, edges[0])
	assert.InDelta(t, 1, edges[1]-edges[0], 1e-12)
}

func TestHistogramEmpty(t *testing.T) {
	g := raster.NewGrid[float64](2, 2)
	g.Fill(math.NaN())
	counts, edges := Histogram(g, 8)
	assert.Equal(t, []int{0}, counts)
	assert.Equal(t, []float64{0, 1}, edges)
}

func TestHistCache(t *testing.T) {
	g, _ := raster.NewGridValues(1, 4, []float64{1, 2, 3, 4})
	var c HistCache
	counts1, _, _ := c.Get(g, 4)
	counts2, _, _ := c.Get(g, 4)
	// Same generation and bin count reuse the same slice.
	assert.Same(t, &counts1[0], &counts2[0])

	// Mutating the data invalidates the cache through the generation.
	g.Set(0, 0, 4)
	counts3, _, _ := c.Get(g, 4)
	assert.NotEqual(t, counts1, counts3)
}

func TestRangeThresholdFull(t *testing.T) {
	counts := []int{5, 5, 5, 5}
	edges := []float64{0, 1, 2, 3, 4}
	lo, hi := RangeThreshold(counts, edges, 0, false)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 4.0, hi)
}

func TestRangeThresholdSymmetry(t *testing.T) {
	counts := []int{10, 80, 10}
	edges := []float64{0, 1, 2, 3}
	lo, hi := RangeThreshold(counts, edges, 20, false)
	// 10% trimmed from each tail removes exactly the outer bins.
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)
}

func TestRangeThresholdHundredPercent(t *testing.T) {
	counts := []int{10, 80, 10}
	edges := []float64{0, 1, 2, 3}
	lo, hi := RangeThreshold(counts, edges, 100, false)
	// A collapsed or inverted interval is acceptable; no panic.
	assert.LessOrEqual(t, lo, hi)
}

func TestRangeThresholdOutliers(t *testing.T) {
	// 90 zeros and 10 outliers at 100: trimming 20% must exclude the
	// outlier bucket from the top.
	vals := make([]float64, 100)
	for i := 90; i < 100; i++ {
		vals[i] = 100
	}
	g, _ := raster.NewGridValues(10, 10, vals)
	counts, edges := Histogram(g, 10)
	_, hi := RangeThreshold(counts, edges, 20, false)
	assert.Less(t, hi, 100.0)
}

func TestToBins(t *testing.T) {
	edges := ToBins([]float64{1, 2, 4})
	assert.Equal(t, []float64{0.5, 1.5, 3, 5}, edges)
	assert.Equal(t, []float64{2.5, 3.5}, ToBins([]float64{3}))
	assert.Nil(t, ToBins(nil))
}
