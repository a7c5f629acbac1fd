// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"fmt"
	"math"

	"cogentcore.org/core/base/errors"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
)

// Hist2DMode is the per-bin accumulation of a 2D histogram.
type Hist2DMode int32

const (
	// Hist2DCount counts the points in each bin.
	Hist2DCount Hist2DMode = iota

	// Hist2DMax keeps the largest z value per bin.
	Hist2DMax

	// Hist2DMin keeps the smallest z value per bin.
	Hist2DMin

	// Hist2DSum sums z per bin.
	Hist2DSum

	// Hist2DProd multiplies z per bin.
	Hist2DProd

	// Hist2DAvg averages z per bin.
	Hist2DAvg

	// Hist2DArgMin keeps the index of the point with the smallest z.
	Hist2DArgMin

	// Hist2DArgMax keeps the index of the point with the largest z.
	Hist2DArgMax
)

func (m Hist2DMode) String() string {
	switch m {
	case Hist2DCount:
		return "count"
	case Hist2DMax:
		return "max"
	case Hist2DMin:
		return "min"
	case Hist2DSum:
		return "sum"
	case Hist2DProd:
		return "prod"
	case Hist2DAvg:
		return "avg"
	case Hist2DArgMin:
		return "argmin"
	case Hist2DArgMax:
		return "argmax"
	}
	return "invalid"
}

// needsZ reports whether the mode consumes z values.
func (m Hist2DMode) needsZ() bool { return m != Hist2DCount }

// Histogram2D bins a point cloud into a regular 2D grid and renders the
// per-bin accumulation as an axis-aligned image.
type Histogram2D struct {
	Image

	hparam  Hist2DMode
	nx, ny  int
	autoLut bool
	bg      float64
	x, y, z []float64
}

// NewHistogram2D builds a 2D histogram item from points (x, y), with z
// feeding the value modes. z may be nil for [Hist2DCount].
func NewHistogram2D(x, y, z []float64, param Hist2DParam) (*Histogram2D, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("items: histogram2d: %d x values vs %d y values", len(x), len(y))
	}
	if param.Mode.needsZ() && len(z) != len(x) {
		return nil, fmt.Errorf("items: histogram2d: mode %v needs one z per point", param.Mode)
	}
	if param.NXBins < 1 {
		param.NXBins = 100
	}
	if param.NYBins < 1 {
		param.NYBins = 100
	}
	h := &Histogram2D{
		Image:   *NewImage(raster.NewGrid[float64](param.NYBins, param.NXBins), RectParam{Param: param.Param}),
		hparam:  param.Mode,
		nx:      param.NXBins,
		ny:      param.NYBins,
		autoLut: param.AutoLut,
		bg:      param.BinBackground,
	}
	h.SetPoints(x, y, z)
	return h, nil
}

// SetPoints replaces the point cloud and recomputes the histogram.
func (h *Histogram2D) SetPoints(x, y, z []float64) {
	h.x, h.y, h.z = x, y, z
	h.recompute()
}

func (h *Histogram2D) recompute() {
	xmin, xmax := span(h.x)
	ymin, ymax := span(h.y)
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}
	grid := raster.NewGrid[float64](h.ny, h.nx)
	count := make([]int, h.nx*h.ny)
	vals := grid.Values
	for k := range vals {
		vals[k] = math.NaN()
	}
	for p := range h.x {
		if !isFinite(h.x[p]) || !isFinite(h.y[p]) {
			continue
		}
		i := binOf(h.x[p], xmin, xmax, h.nx)
		j := binOf(h.y[p], ymin, ymax, h.ny)
		k := j*h.nx + i
		var z float64
		if h.hparam.needsZ() {
			z = h.z[p]
		}
		first := count[k] == 0
		count[k]++
		switch h.hparam {
		case Hist2DCount:
			if first {
				vals[k] = 1
			} else {
				vals[k]++
			}
		case Hist2DMax:
			if first || z > vals[k] {
				vals[k] = z
			}
		case Hist2DMin:
			if first || z < vals[k] {
				vals[k] = z
			}
		case Hist2DSum, Hist2DAvg:
			if first {
				vals[k] = z
			} else {
				vals[k] += z
			}
		case Hist2DProd:
			if first {
				vals[k] = z
			} else {
				vals[k] *= z
			}
		case Hist2DArgMin:
			if first || z < h.z[int(vals[k])] {
				vals[k] = float64(p)
			}
		case Hist2DArgMax:
			if first || z > h.z[int(vals[k])] {
				vals[k] = float64(p)
			}
		}
	}
	if h.hparam == Hist2DAvg {
		for k := range vals {
			if count[k] > 0 {
				vals[k] /= float64(count[k])
			}
		}
	}
	// Empty bins fill with the background value; a NaN background
	// leaves them invalid, rendered as holes.
	if !math.IsNaN(h.bg) {
		for k := range vals {
			if count[k] == 0 {
				vals[k] = h.bg
			}
		}
	}
	grid.Modified()
	h.SetData(grid)
	h.SetRect(coords.NewRect(xmin, ymin, xmax, ymax))
	if h.autoLut {
		errors.Log(h.SetLutRangeFull())
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// binOf maps v in [min, max] to a bin, with the top edge inclusive.
func binOf(v, min, max float64, n int) int {
	i := int((v - min) / (max - min) * float64(n))
	return clampInt(i, 0, n-1)
}

func span(v []float64) (min, max float64) {
	first := true
	for _, x := range v {
		if !isFinite(x) {
			continue
		}
		if first {
			min, max = x, x
			first = false
			continue
		}
		min = math.Min(min, x)
		max = math.Max(max, x)
	}
	return min, max
}
