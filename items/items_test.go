// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"bytes"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

func seqGrid(rows, cols int) *raster.Float64Grid {
	g := raster.NewGrid[float64](rows, cols)
	for k := range g.Values {
		g.Values[k] = float64(k)
	}
	return g
}

func TestImageDefaultRect(t *testing.T) {
	im := NewImage(seqGrid(3, 5), RectParam{Param: DefaultParam("img")})
	assert.Equal(t, coords.NewRect(0, 0, 5, 3), im.BoundingRect())
	assert.True(t, im.Capabilities().Has(CanExportROI|CanColormap))
}

func TestImageIndexRoundTrip(t *testing.T) {
	im := NewImage(seqGrid(4, 4), RectParam{
		Param: DefaultParam("img"),
		XMin:  10, XMax: 18, YMin: -2, YMax: 2,
	})
	// Pixel center maps back to the same pixel.
	for _, idx := range [][2]int{{0, 0}, {3, 0}, {1, 2}, {3, 3}} {
		x, y := im.IndexesToPlot(idx[0], idx[1])
		i, j := im.ClosestIndexes(x, y)
		assert.Equal(t, idx[0], i)
		assert.Equal(t, idx[1], j)
	}
	// Unclamped lookup extrapolates outside the extent.
	fi, _ := im.PlotToIndexes(8, 0)
	assert.Less(t, fi, 0.0)
}

func TestXYImageIndexRoundTrip(t *testing.T) {
	im, err := NewXYImage(seqGrid(3, 3),
		[]float64{0, 1, 3, 9}, []float64{0, 2, 4, 6}, DefaultParam("xy"))
	require.NoError(t, err)
	for _, idx := range [][2]int{{0, 0}, {2, 0}, {1, 2}} {
		x, y := im.IndexesToPlot(idx[0], idx[1])
		i, j := im.ClosestIndexes(x, y)
		assert.Equal(t, idx[0], i)
		assert.Equal(t, idx[1], j)
	}
}

func TestXYImageNormalizesDescendingAxis(t *testing.T) {
	g, _ := raster.NewGridValues(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	im, err := NewXYImage(g, []float64{30, 20, 10}, []float64{0, 1}, DefaultParam("xy"))
	require.NoError(t, err)
	// Columns reorder with the axis: the column at x=10 holds 3 and 6.
	i, j := im.ClosestIndexes(10, 0.2)
	assert.Equal(t, 0, j)
	assert.Equal(t, 3.0, im.Data().Float(0, i))
}

func TestTrImageIndexRoundTrip(t *testing.T) {
	im := NewTrImage(seqGrid(4, 6), TrParam{
		Param: DefaultParam("tr"),
		PosX:  5, PosY: -3,
		Angle: 0.3,
		DX:    2, DY: 0.5,
	})
	for _, idx := range [][2]int{{0, 0}, {5, 3}, {2, 1}} {
		x, y := im.IndexesToPlot(idx[0], idx[1])
		i, j := im.ClosestIndexes(x, y)
		assert.Equal(t, idx[0], i)
		assert.Equal(t, idx[1], j)
	}
}

func TestClosestIndexRect(t *testing.T) {
	im := NewImage(seqGrid(8, 8), RectParam{Param: DefaultParam("img")})
	ix0, iy0, ix1, iy1 := im.ClosestIndexRect(1.2, 2.6, 5.9, 4.1)
	assert.Equal(t, 1, ix0)
	assert.Equal(t, 2, iy0)
	assert.Equal(t, 6, ix1)
	assert.Equal(t, 5, iy1)

	// Re-applying the snapped rectangle is stable.
	ax0 := float64(ix0)
	ay0 := float64(iy0)
	ax1 := float64(ix1)
	ay1 := float64(iy1)
	jx0, jy0, jx1, jy1 := im.ClosestIndexRect(ax0, ay0, ax1, ay1)
	assert.Equal(t, [4]int{ix0, iy0, ix1, iy1}, [4]int{jx0, jy0, jx1, jy1})
}

func TestClosestIndexRectMinimumSize(t *testing.T) {
	im := NewImage(seqGrid(4, 4), RectParam{Param: DefaultParam("img")})
	// A degenerate selection still covers one pixel.
	ix0, iy0, ix1, iy1 := im.ClosestIndexRect(2.0, 2.0, 2.0, 2.0)
	assert.Equal(t, 1, ix1-ix0)
	assert.Equal(t, 1, iy1-iy0)

	// Same at the far corner, where growing must go inward.
	ix0, _, ix1, _ = im.ClosestIndexRect(4.0, 4.0, 4.0, 4.0)
	assert.Equal(t, 1, ix1-ix0)
	assert.LessOrEqual(t, ix1, 4)
}

func TestClosestIndexRectOrdering(t *testing.T) {
	im := NewImage(seqGrid(4, 4), RectParam{Param: DefaultParam("img")})
	// Reversed corners come back ordered.
	ix0, iy0, ix1, iy1 := im.ClosestIndexRect(3, 3, 1, 1)
	assert.Less(t, ix0, ix1)
	assert.Less(t, iy0, iy1)
}

func TestImageExportROI(t *testing.T) {
	im := NewImage(seqGrid(4, 4), RectParam{Param: DefaultParam("img")})
	dst := raster.NewGrid[float64](2, 2)
	err := im.ExportROI(dst, coords.NewRect(0, 0, 2, 2), image.Rect(0, 0, 2, 2), false, false)
	assert.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 4, 5}, dst.Values)
}

func TestAssembleReplace(t *testing.T) {
	a := NewImage(seqGrid(2, 2), RectParam{Param: DefaultParam("a")})
	b := NewImage(seqGrid(2, 2), RectParam{Param: DefaultParam("b")})
	b.Data().(*raster.Float64Grid).Fill(7)
	b.SetZ(1)
	out, err := Assemble([]Item{a, b}, coords.NewRect(0, 0, 2, 2), 2, 2, false, false, false)
	assert.NoError(t, err)
	// b stacks above a and replaces it everywhere they overlap.
	assert.Equal(t, []float64{7, 7, 7, 7}, out.Values)
}

func TestAssembleAdd(t *testing.T) {
	a := NewImage(seqGrid(2, 2), RectParam{Param: DefaultParam("a")})
	a.Data().(*raster.Float64Grid).Fill(2)
	b := NewImage(seqGrid(2, 2), RectParam{
		Param: DefaultParam("b"),
		XMin:  1, XMax: 3, YMin: 0, YMax: 2,
	})
	b.Data().(*raster.Float64Grid).Fill(5)
	out, err := Assemble([]Item{a, b}, coords.NewRect(0, 0, 3, 2), 3, 2, true, false, false)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, out.Float(0, 0))
	assert.Equal(t, 7.0, out.Float(0, 1))
	assert.Equal(t, 5.0, out.Float(0, 2))
}

func TestAssembleAddMaskedContributesZero(t *testing.T) {
	a := NewImage(seqGrid(2, 2), RectParam{Param: DefaultParam("a")})
	a.Data().(*raster.Float64Grid).Fill(2)
	m := NewMaskedImage(seqGrid(2, 2), RectParam{Param: DefaultParam("m")})
	m.Data().(*raster.Float64Grid).Fill(5)
	m.Masking.AddArea(MaskedArea{Geometry: AreaRect, X0: 0, Y0: 0, X1: 2, Y1: 2, Inside: true})
	m.SetZ(1)
	out, err := Assemble([]Item{a, m}, coords.NewRect(0, 0, 2, 2), 2, 2, true, false, false)
	assert.NoError(t, err)
	// The fully masked item adds nothing, but its coverage counts.
	assert.Equal(t, []float64{2, 2, 2, 2}, out.Values)
}

func TestAssembleSkipsUncapableItems(t *testing.T) {
	xy, err := NewXYImage(seqGrid(2, 2), []float64{0, 1, 2}, []float64{0, 1, 2}, DefaultParam("xy"))
	require.NoError(t, err)
	out, err := Assemble([]Item{xy}, coords.NewRect(0, 0, 2, 2), 2, 2, false, false, false)
	assert.NoError(t, err)
	for _, v := range out.Values {
		assert.True(t, math.IsNaN(v))
	}
}

func TestAssembleDegenerate(t *testing.T) {
	_, err := Assemble(nil, coords.NewRect(0, 0, 0, 2), 2, 2, false, false, false)
	assert.ErrorIs(t, err, scaler.ErrDegenerateRegion)
}

func TestMaskingReplay(t *testing.T) {
	m := NewMaskedImage(seqGrid(4, 4), RectParam{Param: DefaultParam("m")})
	m.Masking.AddArea(MaskedArea{Geometry: AreaRect, X0: 0, Y0: 0, X1: 2, Y1: 2, Inside: true})
	assert.False(t, m.Data().IsValid(0, 0))
	assert.True(t, m.Data().IsValid(3, 3))

	areas := m.Masking.Areas()
	m.Masking.ClearAreas()
	assert.True(t, m.Data().IsValid(0, 0))

	m.Masking.SetAreas(areas)
	assert.False(t, m.Data().IsValid(1, 1))
	assert.True(t, m.Data().IsValid(2, 2))
}

func TestClosestPixelIndexesUnclamped(t *testing.T) {
	im := NewImage(seqGrid(4, 4), RectParam{Param: DefaultParam("img")})
	i, j := im.ClosestPixelIndexes(-1.5, 5.5)
	assert.Equal(t, -2, i)
	assert.Equal(t, 5, j)
	i, j = im.ClosestPixelIndexes(2.5, 2.5)
	assert.Equal(t, 2, i)
	assert.Equal(t, 2, j)
}

func TestMaskedXYImage(t *testing.T) {
	m, err := NewMaskedXYImage(seqGrid(2, 2),
		[]float64{0, 1, 3}, []float64{0, 1, 3}, DefaultParam("mxy"))
	require.NoError(t, err)
	assert.True(t, m.Capabilities().Has(CanMask))
	m.Masking.AddArea(MaskedArea{Geometry: AreaRect, X0: 0, Y0: 0, X1: 1, Y1: 1, Inside: true})
	assert.False(t, m.Data().IsValid(0, 0))
	assert.True(t, m.Data().IsValid(0, 1))
	assert.True(t, m.Data().IsValid(1, 1))
}

func TestMaskingOutside(t *testing.T) {
	m := NewMaskedImage(seqGrid(4, 4), RectParam{Param: DefaultParam("m")})
	m.Masking.AddArea(MaskedArea{Geometry: AreaRect, X0: 1, Y0: 1, X1: 3, Y1: 3, Inside: false})
	assert.False(t, m.Data().IsValid(0, 0))
	assert.True(t, m.Data().IsValid(1, 1))
	assert.True(t, m.Data().IsValid(2, 2))
	assert.False(t, m.Data().IsValid(3, 3))
}

func TestHistogram2DCount(t *testing.T) {
	x := []float64{0.5, 0.5, 1.5, 0.5}
	y := []float64{0.5, 0.5, 1.5, 1.5}
	h, err := NewHistogram2D(x, y, nil, Hist2DParam{
		Param:  DefaultParam("h"),
		NXBins: 2, NYBins: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, h.Data().Float(0, 0))
	assert.Equal(t, 1.0, h.Data().Float(1, 1))
	assert.Equal(t, 1.0, h.Data().Float(1, 0))
	assert.Equal(t, 0.0, h.Data().Float(0, 1))
}

func TestHistogram2DSkipsNonFinitePoints(t *testing.T) {
	x := []float64{0.5, math.NaN(), 1.5, math.Inf(1), 0.5}
	y := []float64{0.5, 0.5, 1.5, 1.5, math.NaN()}
	h, err := NewHistogram2D(x, y, nil, Hist2DParam{
		Param:  DefaultParam("h"),
		NXBins: 2, NYBins: 2,
	})
	require.NoError(t, err)
	// Only the two finite points land; the extent ignores the rest too.
	assert.Equal(t, coords.NewRect(0.5, 0.5, 1.5, 1.5), h.BoundingRect())
	assert.Equal(t, 1.0, h.Data().Float(0, 0))
	assert.Equal(t, 1.0, h.Data().Float(1, 1))
	assert.Equal(t, 0.0, h.Data().Float(0, 1))
	assert.Equal(t, 0.0, h.Data().Float(1, 0))
}

func TestHistogram2DMax(t *testing.T) {
	x := []float64{0.1, 0.2, 1.8}
	y := []float64{0.1, 0.2, 1.8}
	z := []float64{3, 9, 4}
	h, err := NewHistogram2D(x, y, z, Hist2DParam{
		Param:  DefaultParam("h"),
		NXBins: 2, NYBins: 2,
		Mode:          Hist2DMax,
		BinBackground: math.NaN(),
	})
	require.NoError(t, err)
	assert.Equal(t, 9.0, h.Data().Float(0, 0))
	assert.Equal(t, 4.0, h.Data().Float(1, 1))
	assert.False(t, h.Data().IsValid(0, 1))
}

func TestNamer(t *testing.T) {
	n := NewNamer()
	assert.Equal(t, "Image #1", n.Name("Image"))
	assert.Equal(t, "Image #2", n.Name("Image"))
	assert.Equal(t, "Histogram #1", n.Name("Histogram"))
}

func TestDTORoundTrip(t *testing.T) {
	im := NewImage(seqGrid(2, 3), RectParam{
		Param: DefaultParam("img"),
		XMin:  -1, XMax: 2, YMin: 0, YMax: 4,
	})
	im.SetZ(3)
	mi := NewMaskedImage(seqGrid(2, 2), RectParam{Param: DefaultParam("m")})
	mi.Masking.AddArea(MaskedArea{Geometry: AreaCircle, X0: 0, Y0: 0, X1: 2, Y1: 2, Inside: true})
	tr := NewTrImage(seqGrid(2, 2), TrParam{Param: DefaultParam("tr"), PosX: 1, Angle: 0.5})

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, []Item{im, mi, tr}))

	back, err := Open(&buf)
	require.NoError(t, err)
	require.Len(t, back, 3)

	b0 := back[0].(*Image)
	assert.Equal(t, im.BoundingRect(), b0.BoundingRect())
	assert.Equal(t, 3.0, b0.Z())
	assert.Equal(t, im.Data().Float(1, 2), b0.Data().Float(1, 2))

	b1 := back[1].(*MaskedImage)
	assert.Equal(t, mi.Masking.Areas(), b1.Masking.Areas())
	assert.Equal(t, mi.Data().Mask(), b1.Data().Mask())

	b2 := back[2].(*TrImage)
	assert.Equal(t, tr.Pose().PosX, b2.Pose().PosX)
	assert.Equal(t, tr.Pose().Angle, b2.Pose().Angle)
}

func TestDTORoundTripMaskedXY(t *testing.T) {
	m, err := NewMaskedXYImage(seqGrid(2, 2),
		[]float64{0, 1, 3}, []float64{0, 1, 3}, DefaultParam("mxy"))
	require.NoError(t, err)
	m.Masking.AddArea(MaskedArea{Geometry: AreaRect, X0: 0, Y0: 0, X1: 1, Y1: 1, Inside: true})

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, []Item{m}))
	back, err := Open(&buf)
	require.NoError(t, err)
	require.Len(t, back, 1)
	b := back[0].(*MaskedXYImage)
	assert.Equal(t, m.XEdges(), b.XEdges())
	assert.Equal(t, m.Masking.Areas(), b.Masking.Areas())
	assert.False(t, b.Data().IsValid(0, 0))
}

func TestGeometryWithoutData(t *testing.T) {
	im := NewImage(nil, RectParam{Param: DefaultParam("empty")})
	fi, fj := im.PlotToIndexes(1, 1)
	assert.Equal(t, -1.0, fi)
	assert.Equal(t, -1.0, fj)

	i, j := im.ClosestIndexes(1, 1)
	assert.Equal(t, -1, i)
	assert.Equal(t, -1, j)

	ix0, iy0, ix1, iy1 := im.ClosestIndexRect(0, 0, 1, 1)
	assert.Equal(t, [4]int{0, 0, 0, 0}, [4]int{ix0, iy0, ix1, iy1})

	x, y := im.IndexesToPlot(0, 0)
	assert.True(t, math.IsNaN(x))
	assert.True(t, math.IsNaN(y))

	_, ok := im.ValueAt(1, 1)
	assert.False(t, ok)

	r := coords.NewRect(0, 0, 1, 1)
	assert.Equal(t, r, im.AlignRect(r))
}

func TestXYImageSetDataShapeCheck(t *testing.T) {
	im, err := NewXYImage(seqGrid(3, 3),
		[]float64{0, 1, 3, 9}, []float64{0, 2, 4, 6}, DefaultParam("xy"))
	require.NoError(t, err)

	assert.Error(t, im.SetData(seqGrid(2, 3)))
	assert.Equal(t, 0.0, im.Data().Float(0, 0))

	require.NoError(t, im.SetData(seqGrid(3, 3)))
}

func TestQuadGridSetDataShapeCheck(t *testing.T) {
	qg, err := NewQuadGrid(seqGrid(2, 2), seqGrid(2, 2), seqGrid(2, 2), DefaultParam("qg"))
	require.NoError(t, err)

	err = qg.SetData(seqGrid(3, 2))
	assert.ErrorIs(t, err, scaler.ErrEdgeCount)
	assert.Equal(t, 2, qg.Data().NumRows())

	require.NoError(t, qg.SetData(seqGrid(2, 2)))
}
