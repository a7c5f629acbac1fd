// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"image"
	"math"
	"sort"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

// Assemble resamples every visible ROI-exporting item of list into one
// destW x destH grid covering the plot region srcRect. Items compose
// back to front in stacking order. With add set, overlapping items sum
// instead of replacing, and cells an item covers but masks out
// contribute zero. Cells no item covers come out NaN.
//
// Items without the [CanExportROI] capability are skipped; an empty
// region is an error.
func Assemble(list []Item, srcRect coords.Rect, destW, destH int, add, applyLut, applyInterp bool) (*raster.Float64Grid, error) {
	if srcRect.IsEmpty() || destW <= 0 || destH <= 0 {
		return nil, scaler.ErrDegenerateRegion
	}
	out := raster.NewGrid[float64](destH, destW)
	for k := range out.Values {
		out.Values[k] = math.NaN()
	}

	ordered := make([]ROIExporter, 0, len(list))
	for _, it := range list {
		ex, ok := it.(ROIExporter)
		if !ok || !it.Visible() || !it.Capabilities().Has(CanExportROI) {
			continue
		}
		ordered = append(ordered, ex)
	}
	sort.SliceStable(ordered, func(a, b int) bool { return ordered[a].Z() < ordered[b].Z() })

	for _, ex := range ordered {
		inter := srcRect.Intersect(ex.BoundingRect())
		if inter.IsEmpty() {
			continue
		}
		dstSub := destSubRect(srcRect, inter, destW, destH)
		if dstSub.Empty() {
			continue
		}
		if !add {
			if err := ex.ExportROI(out, inter, dstSub, applyLut, applyInterp); err != nil {
				return nil, err
			}
			continue
		}
		tmp := raster.NewGrid[float64](destH, destW)
		for k := range tmp.Values {
			tmp.Values[k] = math.NaN()
		}
		if err := ex.ExportROI(tmp, inter, dstSub, applyLut, applyInterp); err != nil {
			return nil, err
		}
		for yd := dstSub.Min.Y; yd < dstSub.Max.Y; yd++ {
			for xd := dstSub.Min.X; xd < dstSub.Max.X; xd++ {
				k := yd*destW + xd
				if math.IsNaN(out.Values[k]) {
					out.Values[k] = 0
				}
				if !math.IsNaN(tmp.Values[k]) {
					out.Values[k] += tmp.Values[k]
				}
			}
		}
	}
	out.Modified()
	return out, nil
}

// destSubRect maps the plot sub-region inter of srcRect onto the
// destination pixel grid.
func destSubRect(srcRect, inter coords.Rect, destW, destH int) image.Rectangle {
	kx := float64(destW) / srcRect.Width()
	ky := float64(destH) / srcRect.Height()
	x0 := int(math.Floor((inter.X0-srcRect.X0)*kx + 0.5))
	y0 := int(math.Floor((inter.Y0-srcRect.Y0)*ky + 0.5))
	x1 := int(math.Floor((inter.X1-srcRect.X0)*kx + 0.5))
	y1 := int(math.Floor((inter.Y1-srcRect.Y0)*ky + 0.5))
	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, destW, destH))
}
