// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lut maintains the lookup-table state of an image item: the
// affine mapping from data values into a fixed-size table index space,
// the colormap resampled into that table, histogram computation with
// modification-tracking cache, and the outlier threshold used by
// contrast adjustment.
package lut

import (
	"image/color"

	"cogentcore.org/core/colors/colormap"
	"cogentcore.org/core/math32/minmax"

	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

const (
	// Size is the number of entries in a colormap table.
	Size = 1024

	// Max is the highest table index.
	Max = Size - 1
)

// Lut maps data values to packed ARGB pixels: v is transformed to
// index A*v + B, clipped to [0, Max], and looked up in Table. The zero
// value is unusable; call [New].
type Lut struct {
	// Range is the data interval mapped onto the full table.
	Range minmax.F64

	// A and B define the value-to-index transform derived from Range.
	A float64
	B float64

	// Table is the resampled colormap, premultiplied ARGB.
	Table [Size]uint32

	// Background, when HasBackground is set, is the pixel painted for
	// samples outside the source data.
	Background    uint32
	HasBackground bool

	cmap    *colormap.Map
	alphaFn AlphaFunc
	alpha   float64
	built   bool

	hist HistCache
}

// New returns a Lut over [0, 1] with the given colormap fully opaque.
func New(cm *colormap.Map) *Lut {
	l := &Lut{}
	l.SetColormap(cm, AlphaNone, 1)
	l.SetRange(0, 1)
	return l
}

// SetRange sets the data interval mapped onto the table and updates
// the affine coefficients. A degenerate interval (max == min) pins the
// transform at A = Max, B = min so that rendering stays well defined
// instead of dividing by zero.
func (l *Lut) SetRange(min, max float64) {
	l.Range.Set(min, max)
	if max == min {
		l.A = Max
		l.B = min
		return
	}
	l.A = Max / (max - min)
	l.B = -min * l.A
}

// SetRangeFull sets the range to the full span of valid data in r.
func (l *Lut) SetRangeFull(r raster.Raster) error {
	min, max, err := raster.Range(r)
	if err != nil {
		return err
	}
	l.SetRange(min, max)
	return nil
}

// SetRangeThreshold sets the range to the data span that remains after
// eliminating percent of the histogram mass, half from each tail.
// Integer-typed rasters skip the first histogram bin, which is commonly
// a large spike of background zeros.
func (l *Lut) SetRangeThreshold(r raster.Raster, nbins int, percent float64) error {
	counts, edges, err := l.Histogram(r, nbins)
	if err != nil {
		return err
	}
	lo, hi := RangeThreshold(counts, edges, percent, !r.DType().IsFloat())
	l.SetRange(lo, hi)
	return nil
}

// Index returns the table index for data value v under the current
// transform, clipped to [0, Max].
func (l *Lut) Index(v float64) int {
	idx := l.A*v + l.B
	if idx < 0 {
		return 0
	}
	if idx > Max {
		return Max
	}
	return int(idx)
}

// SetColormap resamples cm into the table with the given alpha shaping.
// The rebuild is skipped when the map and alpha parameters are
// unchanged; callers can invoke it unconditionally on every redraw.
func (l *Lut) SetColormap(cm *colormap.Map, fn AlphaFunc, alpha float64) {
	if l.built && cm == l.cmap && fn == l.alphaFn && alpha == l.alpha {
		return
	}
	l.cmap = cm
	l.alphaFn = fn
	l.alpha = alpha
	for i := 0; i < Size; i++ {
		x := float64(i) / Max
		var c color.RGBA
		if cm != nil {
			c = cm.Map(float32(x))
		}
		a := fn.Value(x, alpha)
		l.Table[i] = scaler.PackARGB(
			uint8(a*255+0.5),
			uint8(a*float64(c.R)+0.5),
			uint8(a*float64(c.G)+0.5),
			uint8(a*float64(c.B)+0.5),
		)
	}
	l.built = true
}

// Colormap returns the map last passed to [Lut.SetColormap].
func (l *Lut) Colormap() *colormap.Map { return l.cmap }

// Alpha returns the alpha shaping last passed to [Lut.SetColormap].
func (l *Lut) Alpha() (AlphaFunc, float64) { return l.alphaFn, l.alpha }

// SetBackground sets the packed ARGB pixel painted outside the data.
func (l *Lut) SetBackground(argb uint32) {
	l.Background = argb
	l.HasBackground = true
}

// ClearBackground leaves pixels outside the data untouched.
func (l *Lut) ClearBackground() {
	l.Background = 0
	l.HasBackground = false
}

// Levels returns the scaling levels rendering this Lut to device
// pixels. The table is shared, not copied.
func (l *Lut) Levels() scaler.Levels {
	return scaler.Levels{
		A:             l.A,
		B:             l.B,
		Clip:          true,
		Table:         l.Table[:],
		Background:    l.Background,
		HasBackground: l.HasBackground,
	}
}

// Histogram returns the cached histogram of r with nbins bins,
// recomputing when the raster generation or bin count changed.
func (l *Lut) Histogram(r raster.Raster, nbins int) (counts []int, edges []float64, err error) {
	return l.hist.Get(r, nbins)
}
