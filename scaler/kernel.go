// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaler

import (
	"math"

	"github.com/pixplot/pixplot/raster"
)

// sampleAt evaluates src at continuous index coordinates (sx, sy).
// Integer coordinates address cell edges: cell (i, j) covers
// [i, i+1) x [j, j+1), so its center is at (i+0.5, j+0.5). Samples
// falling outside the buffer or on invalid cells report ok=false.
func sampleAt(src raster.Raster, sx, sy float64, in InterpSpec) (v float64, ok bool) {
	switch in.Mode {
	case Linear:
		return sampleLinear(src, sx, sy)
	case AntiAlias:
		return sampleBox(src, sx, sy, in.Size)
	}
	return sampleNearest(src, sx, sy)
}

func sampleNearest(src raster.Raster, sx, sy float64) (float64, bool) {
	i := int(math.Floor(sx))
	j := int(math.Floor(sy))
	if i < 0 || i >= src.NumCols() || j < 0 || j >= src.NumRows() {
		return 0, false
	}
	if !src.IsValid(j, i) {
		return 0, false
	}
	return src.Float(j, i), true
}

// sampleLinear blends the four cells whose centers surround (sx, sy).
// Invalid neighbors drop out and the remaining weights renormalize, so
// edges and masked regions do not bleed sentinel values into the blend.
func sampleLinear(src raster.Raster, sx, sy float64) (float64, bool) {
	u := sx - 0.5
	w := sy - 0.5
	i0 := int(math.Floor(u))
	j0 := int(math.Floor(w))
	fx := u - float64(i0)
	fy := w - float64(j0)
	if i0 < -1 || i0 >= src.NumCols() || j0 < -1 || j0 >= src.NumRows() {
		return 0, false
	}
	var sum, wsum float64
	acc := func(j, i int, wt float64) {
		if wt == 0 || i < 0 || i >= src.NumCols() || j < 0 || j >= src.NumRows() {
			return
		}
		if !src.IsValid(j, i) {
			return
		}
		sum += wt * src.Float(j, i)
		wsum += wt
	}
	acc(j0, i0, (1-fx)*(1-fy))
	acc(j0, i0+1, fx*(1-fy))
	acc(j0+1, i0, (1-fx)*fy)
	acc(j0+1, i0+1, fx*fy)
	if wsum == 0 {
		return 0, false
	}
	return sum / wsum, true
}

// sampleBox averages an n x n box of cells around (sx, sy), skipping
// invalid cells. Used for anti-aliased rendering at strong zoom-out.
func sampleBox(src raster.Raster, sx, sy float64, n int) (float64, bool) {
	if n < 2 {
		n = 2
	}
	i0 := int(math.Floor(sx)) - n/2
	j0 := int(math.Floor(sy)) - n/2
	var sum float64
	var cnt int
	for j := j0; j < j0+n; j++ {
		if j < 0 || j >= src.NumRows() {
			continue
		}
		for i := i0; i < i0+n; i++ {
			if i < 0 || i >= src.NumCols() {
				continue
			}
			if !src.IsValid(j, i) {
				continue
			}
			sum += src.Float(j, i)
			cnt++
		}
	}
	if cnt == 0 {
		return 0, false
	}
	return sum / float64(cnt), true
}
