// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/items"
	"github.com/pixplot/pixplot/raster"
)

// testImage builds a 4x4 image with value j*4+i at row j, column i,
// one plot unit per pixel.
func testImage() *items.Image {
	g := raster.NewGrid[float64](4, 4)
	for k := range g.Values {
		g.Values[k] = float64(k)
	}
	return items.NewImage(g, items.RectParam{Param: items.DefaultParam("img")})
}

func TestXSection(t *testing.T) {
	c, err := XSection(testImage(), 1.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, c.Pos)
	assert.Equal(t, []float64{4, 5, 6, 7}, c.Val)
}

func TestYSection(t *testing.T) {
	c, err := YSection(testImage(), 2.2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, c.Pos)
	assert.Equal(t, []float64{2, 6, 10, 14}, c.Val)
}

func TestXSectionOutOfRange(t *testing.T) {
	_, err := XSection(testImage(), -1)
	assert.ErrorIs(t, err, ErrNoSection)
	_, err = XSection(testImage(), 4.5)
	assert.ErrorIs(t, err, ErrNoSection)
}

func TestXSectionInvalidCell(t *testing.T) {
	im := testImage()
	im.Data().SetFloat(1, 1, math.NaN())
	c, err := XSection(im, 1.5)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(c.Val[1]))
	assert.Equal(t, 6.0, c.Val[2])
}

func TestAverageXSectionSingleRow(t *testing.T) {
	im := testImage()
	got, err := AverageXSection(im, coords.NewRect(0, 1, 4, 2))
	require.NoError(t, err)
	want, err := XSection(im, 1.5)
	require.NoError(t, err)
	assert.Equal(t, want.Pos, got.Pos)
	assert.Equal(t, want.Val, got.Val)
}

func TestAverageYSection(t *testing.T) {
	c, err := AverageYSection(testImage(), coords.NewRect(1, 0, 3, 4))
	require.NoError(t, err)
	require.Len(t, c.Val, 4)
	for j := 0; j < 4; j++ {
		assert.Equal(t, float64(4*j)+1.5, c.Val[j])
		assert.Equal(t, float64(j)+0.5, c.Pos[j])
	}
}

func TestObliqueSectionZeroAngle(t *testing.T) {
	im := testImage()
	r := coords.NewRect(1, 0, 3, 4)
	got, err := ObliqueSection(im, r, 0)
	require.NoError(t, err)
	want, err := AverageYSection(im, r)
	require.NoError(t, err)
	require.Len(t, got.Val, len(want.Val))
	for j := range want.Val {
		assert.InDelta(t, want.Pos[j], got.Pos[j], 1e-12)
		assert.InDelta(t, want.Val[j], got.Val[j], 1e-12)
	}
}

func TestObliqueSectionQuarterTurn(t *testing.T) {
	// Rotating the rectangle by 90 degrees swaps the averaging axis:
	// the profile follows columns instead of rows.
	im := testImage()
	got, err := ObliqueSection(im, coords.NewRect(0, 0, 4, 4), math.Pi/2)
	require.NoError(t, err)
	require.Len(t, got.Val, 4)
	for j := range got.Val {
		assert.InDelta(t, float64(j)+6, got.Val[j], 1e-12)
	}
}

func TestLineSection(t *testing.T) {
	c, err := LineSection(testImage(), 0.5, 1.5, 3.5, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, c.Pos)
	assert.Equal(t, []float64{4, 5, 6, 7}, c.Val)
}

func TestLineSectionLeavesImage(t *testing.T) {
	c, err := LineSection(testImage(), 2.5, 2.5, 2.5, 6.5)
	require.NoError(t, err)
	assert.Equal(t, 10.0, c.Val[0])
	assert.True(t, math.IsNaN(c.Val[len(c.Val)-1]))
}

func TestSectionsSkipsHiddenAndUncapable(t *testing.T) {
	im := testImage()
	hidden := testImage()
	hidden.SetVisible(false)
	curves := Sections([]items.Item{im, hidden}, func(it items.Item) (Curve, error) {
		return XSection(it, 0.5)
	})
	assert.Len(t, curves, 1)
}

func TestObliqueSectionNeedsUniformGrid(t *testing.T) {
	xy, err := items.NewXYImage(raster.NewGrid[float64](2, 2),
		[]float64{0, 1, 2}, []float64{0, 1, 2}, items.DefaultParam("xy"))
	require.NoError(t, err)
	_, err = ObliqueSection(xy, coords.NewRect(0, 0, 2, 2), 0.1)
	assert.ErrorIs(t, err, ErrNoSection)
}

func TestCombinedXSection(t *testing.T) {
	g1 := raster.NewGrid[float64](2, 2)
	g1.Fill(1)
	a := items.NewImage(g1, items.RectParam{Param: items.DefaultParam("a"), XMax: 2, YMax: 2})

	g2 := raster.NewGrid[float64](2, 2)
	g2.Fill(2)
	b := items.NewImage(g2, items.RectParam{Param: items.DefaultParam("b"), XMax: 1, YMax: 2})
	b.SetZ(1)

	// b covers only the left half, at twice the cell pitch of a.
	c, err := CombinedXSection([]items.Item{a, b}, coords.NewRect(0, 0, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.75, 1.25, 1.75}, c.Pos)
	assert.Equal(t, []float64{3, 3, 1, 1}, c.Val)
}

func TestCombinedXSectionMaskedAddsZero(t *testing.T) {
	g := raster.NewGrid[float64](2, 2)
	g.Fill(4)
	a := items.NewImage(g, items.RectParam{Param: items.DefaultParam("a")})

	gm := raster.NewGrid[float64](2, 2)
	gm.Fill(9)
	m := items.NewMaskedImage(gm, items.RectParam{Param: items.DefaultParam("m")})
	m.Masking.AddArea(items.MaskedArea{Geometry: items.AreaRect, X0: 0, Y0: 0, X1: 2, Y1: 2, Inside: true})
	m.SetZ(1)

	c, err := CombinedXSection([]items.Item{a, m}, coords.NewRect(0, 0, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 4}, c.Val)
}

func TestCombinedXSectionUncoveredNaN(t *testing.T) {
	g := raster.NewGrid[float64](2, 2)
	g.Fill(2)
	b := items.NewImage(g, items.RectParam{Param: items.DefaultParam("b"), XMax: 1, YMax: 2})
	c, err := CombinedXSection([]items.Item{b}, coords.NewRect(0, 0, 2, 2))
	require.NoError(t, err)
	require.Len(t, c.Val, 4)
	assert.Equal(t, 2.0, c.Val[0])
	assert.True(t, math.IsNaN(c.Val[3]))
}

func TestCombinedYSection(t *testing.T) {
	c, err := CombinedYSection([]items.Item{testImage()}, coords.NewRect(0, 0, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, c.Pos)
	assert.Equal(t, []float64{1.5, 5.5, 9.5, 13.5}, c.Val)
}

func TestCombinedSectionNoCapableItems(t *testing.T) {
	_, err := CombinedXSection(nil, coords.NewRect(0, 0, 2, 2))
	assert.ErrorIs(t, err, ErrNoSection)
}
