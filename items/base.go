// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"math"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32/minmax"

	"github.com/pixplot/pixplot/colormaps"
	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/lut"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

// BaseImage is the state and geometry shared by every image item: the
// data buffer, the LUT, display parameters, stacking order and the
// plot-coordinate extent. Concrete items embed it and provide their own
// rendering.
type BaseImage struct {
	param   Param
	data    raster.Raster
	lut     *lut.Lut
	z       float64
	visible bool
	caps    Capability

	// rect is the plot-coordinate extent covered by the data.
	rect coords.Rect

	// logData caches the log10 view of the data when ZLog is on.
	logData *raster.Float64Grid
	logGen  int64
}

func newBaseImage(param Param, data raster.Raster, caps Capability) BaseImage {
	b := BaseImage{
		param:   param,
		lut:     lut.New(colormaps.Default()),
		visible: true,
		caps:    caps,
	}
	b.SetData(data)
	b.applyParam()
	return b
}

// Title returns the item label.
func (b *BaseImage) Title() string { return b.param.Title }

// Z returns the stacking order.
func (b *BaseImage) Z() float64 { return b.z }

// SetZ sets the stacking order; higher values draw on top.
func (b *BaseImage) SetZ(z float64) { b.z = z }

// Visible reports whether the item renders and assembles.
func (b *BaseImage) Visible() bool { return b.visible }

// SetVisible shows or hides the item.
func (b *BaseImage) SetVisible(vis bool) { b.visible = vis }

// Capabilities returns the capability bitmask.
func (b *BaseImage) Capabilities() Capability { return b.caps }

// BoundingRect returns the plot-coordinate extent of the item.
func (b *BaseImage) BoundingRect() coords.Rect { return b.rect }

// Data returns the underlying value buffer.
func (b *BaseImage) Data() raster.Raster { return b.data }

// Lut returns the item lookup table.
func (b *BaseImage) Lut() *lut.Lut { return b.lut }

// Param returns a copy of the display parameters.
func (b *BaseImage) Param() Param { return b.param }

// SetData replaces the data buffer. The LUT range resets to the full
// data range unless the parameters pin one.
func (b *BaseImage) SetData(data raster.Raster) {
	b.data = data
	b.logData = nil
	if b.rect.IsEmpty() && data != nil {
		b.rect = coords.NewRect(0, 0, float64(data.NumCols()), float64(data.NumRows()))
	}
	if b.param.LutRange.Range() != 0 {
		b.lut.SetRange(b.param.LutRange.Min, b.param.LutRange.Max)
	} else if data != nil && data.Len() > 0 {
		errors.Log(b.lut.SetRangeFull(b.renderData()))
	}
}

// SetParam applies new display parameters: colormap, alpha shaping,
// background and LUT range.
func (b *BaseImage) SetParam(param Param) {
	b.param = param
	b.logData = nil
	b.applyParam()
}

func (b *BaseImage) applyParam() {
	cm, err := colormaps.Get(b.param.ColormapName)
	if err != nil {
		errors.Log(err)
		cm = colormaps.Default()
	}
	b.lut.SetColormap(cm, b.param.AlphaFunc, b.param.Alpha)
	if b.param.Background != "" {
		c, err := colors.FromHex(b.param.Background)
		if err != nil {
			errors.Log(err)
		} else {
			b.lut.SetBackground(scaler.PackARGB(c.A, c.R, c.G, c.B))
		}
	} else {
		b.lut.ClearBackground()
	}
	if b.param.LutRange.Range() != 0 {
		b.lut.SetRange(b.param.LutRange.Min, b.param.LutRange.Max)
	}
}

// SetLutRange sets the display range and records it in the parameters.
func (b *BaseImage) SetLutRange(min, max float64) {
	b.lut.SetRange(min, max)
	b.param.LutRange.Set(min, max)
}

// SetLutRangeFull sets the display range to the full data span.
func (b *BaseImage) SetLutRangeFull() error {
	if err := b.lut.SetRangeFull(b.renderData()); err != nil {
		return err
	}
	b.param.LutRange = b.lut.Range
	return nil
}

// SetLutThreshold sets the display range by eliminating percent of the
// histogram mass, half from each tail.
func (b *BaseImage) SetLutThreshold(percent float64) error {
	if err := b.lut.SetRangeThreshold(b.renderData(), 256, percent); err != nil {
		return err
	}
	b.param.LutRange = b.lut.Range
	return nil
}

// LutRange returns the current display range.
func (b *BaseImage) LutRange() minmax.F64 { return b.lut.Range }

// Histogram returns the cached histogram of the rendered data.
func (b *BaseImage) Histogram(nbins int) (counts []int, edges []float64, err error) {
	return b.lut.Histogram(b.renderData(), nbins)
}

// renderData returns the buffer rendering and statistics operate on:
// the raw data, or its cached log10 view when ZLog is set.
func (b *BaseImage) renderData() raster.Raster {
	if !b.param.ZLog || b.data == nil {
		return b.data
	}
	if b.logData != nil && b.logGen == b.data.Generation() {
		return b.logData
	}
	nr, nc := b.data.NumRows(), b.data.NumCols()
	ld := raster.NewGrid[float64](nr, nc)
	for j := 0; j < nr; j++ {
		for i := 0; i < nc; i++ {
			if !b.data.IsValid(j, i) {
				ld.Set(j, i, math.NaN())
				continue
			}
			v := b.data.Float(j, i)
			if v <= 0 {
				ld.Set(j, i, math.NaN())
				continue
			}
			ld.Set(j, i, math.Log10(v))
		}
	}
	b.logData = ld
	b.logGen = b.data.Generation()
	return ld
}

// SetRect sets the plot-coordinate extent covered by the data.
func (b *BaseImage) SetRect(r coords.Rect) { b.rect = r }

// PlotToIndexes returns the fractional pixel indexes of a plot point,
// unclamped: points outside the item yield out-of-range indexes the
// caller can detect. With no data set both indexes are -1.
func (b *BaseImage) PlotToIndexes(x, y float64) (fi, fj float64) {
	if b.data == nil {
		return -1, -1
	}
	fi = (x - b.rect.X0) / b.rect.Width() * float64(b.data.NumCols())
	fj = (y - b.rect.Y0) / b.rect.Height() * float64(b.data.NumRows())
	return fi, fj
}

// IndexesToPlot returns the plot coordinates of the center of pixel
// (i, j), or NaN when no data is set.
func (b *BaseImage) IndexesToPlot(i, j int) (x, y float64) {
	if b.data == nil {
		return math.NaN(), math.NaN()
	}
	x = b.rect.X0 + (float64(i)+0.5)*b.rect.Width()/float64(b.data.NumCols())
	y = b.rect.Y0 + (float64(j)+0.5)*b.rect.Height()/float64(b.data.NumRows())
	return x, y
}

// ClosestPixelIndexes returns the pixel containing the plot point
// without clamping, so points outside the item come back as
// out-of-range indexes.
func (b *BaseImage) ClosestPixelIndexes(x, y float64) (i, j int) {
	fi, fj := b.PlotToIndexes(x, y)
	return int(math.Floor(fi)), int(math.Floor(fj))
}

// ClosestIndexes returns the pixel containing the plot point, clamped
// into the data bounds.
func (b *BaseImage) ClosestIndexes(x, y float64) (i, j int) {
	if b.data == nil {
		return -1, -1
	}
	fi, fj := b.PlotToIndexes(x, y)
	i = clampInt(int(math.Floor(fi)), 0, b.data.NumCols()-1)
	j = clampInt(int(math.Floor(fj)), 0, b.data.NumRows()-1)
	return i, j
}

// ClosestIndexRect returns the pixel index rectangle covering the plot
// rectangle (x0, y0, x1, y1), ordered and clamped, and always covering
// at least one pixel. Applying it to its own plot coordinates returns
// the same rectangle, so pixel-snapping tools are stable.
func (b *BaseImage) ClosestIndexRect(x0, y0, x1, y1 float64) (ix0, iy0, ix1, iy1 int) {
	if b.data == nil {
		return 0, 0, 0, 0
	}
	fi0, fj0 := b.PlotToIndexes(math.Min(x0, x1), math.Min(y0, y1))
	fi1, fj1 := b.PlotToIndexes(math.Max(x0, x1), math.Max(y0, y1))
	ix0 = clampInt(int(coords.PixelRound(fi0, coords.TopLeft)), 0, b.data.NumCols())
	iy0 = clampInt(int(coords.PixelRound(fj0, coords.TopLeft)), 0, b.data.NumRows())
	ix1 = clampInt(int(coords.PixelRound(fi1, coords.BottomRight)), 0, b.data.NumCols())
	iy1 = clampInt(int(coords.PixelRound(fj1, coords.BottomRight)), 0, b.data.NumRows())
	if ix0 == ix1 {
		if ix1 < b.data.NumCols() {
			ix1++
		} else {
			ix0--
		}
	}
	if iy0 == iy1 {
		if iy1 < b.data.NumRows() {
			iy1++
		} else {
			iy0--
		}
	}
	return ix0, iy0, ix1, iy1
}

// AlignRect snaps a plot rectangle to pixel boundaries. With no data
// set the rectangle comes back unchanged.
func (b *BaseImage) AlignRect(r coords.Rect) coords.Rect {
	if b.data == nil {
		return r
	}
	ix0, iy0, ix1, iy1 := b.ClosestIndexRect(r.X0, r.Y0, r.X1, r.Y1)
	w := b.rect.Width() / float64(b.data.NumCols())
	h := b.rect.Height() / float64(b.data.NumRows())
	return coords.NewRect(
		b.rect.X0+float64(ix0)*w,
		b.rect.Y0+float64(iy0)*h,
		b.rect.X0+float64(ix1)*w,
		b.rect.Y0+float64(iy1)*h,
	)
}

// ValueAt returns the data value under the plot point.
func (b *BaseImage) ValueAt(x, y float64) (float64, bool) {
	if b.data == nil {
		return 0, false
	}
	fi, fj := b.PlotToIndexes(x, y)
	i, j := int(math.Floor(fi)), int(math.Floor(fj))
	if i < 0 || i >= b.data.NumCols() || j < 0 || j >= b.data.NumRows() {
		return 0, false
	}
	if !b.data.IsValid(j, i) {
		return 0, false
	}
	return b.data.Float(j, i), true
}

// HitTest reports whether the plot point falls inside the item extent.
func (b *BaseImage) HitTest(x, y float64) bool {
	return b.rect.Contains(x, y)
}

// interpSpec returns the rendering interpolation from the parameters.
func (b *BaseImage) interpSpec() scaler.InterpSpec { return b.param.Interp }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
