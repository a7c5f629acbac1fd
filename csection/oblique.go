// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csection

import (
	"image"
	"math"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/items"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

// ObliqueSection extracts the vertical profile of a rotated rectangle:
// r gives the rectangle before rotation and angle its rotation (in
// radians) around the rectangle center. The rectangle region is
// resampled into an axis-aligned buffer through the affine scaler with
// linear interpolation and NaN outside the data, then averaged along
// rows; samples outside the image drop out of the averages. Positions
// run along the rotated vertical axis of the rectangle. With a zero
// angle and a pixel-aligned rectangle this reduces to [AverageYSection].
//
// Oblique sections need a uniform pixel grid, so only items with the
// ROI-export capability qualify.
func ObliqueSection(it items.Item, r coords.Rect, angle float64) (Curve, error) {
	ss, ok := sectionable(it)
	if !ok || !it.Capabilities().Has(items.CanExportROI) {
		return Curve{}, ErrNoSection
	}
	data := it.Data()
	fi0, fj0 := ss.PlotToIndexes(r.X0, r.Y0)
	fi1, fj1 := ss.PlotToIndexes(r.X1, r.Y1)
	destw := int(math.Abs(fi1-fi0) + 0.5)
	desth := int(math.Abs(fj1-fj0) + 0.5)
	if destw < 1 {
		destw = 1
	}
	if desth < 1 {
		desth = 1
	}
	ixr := 0.5 * (fi0 + fi1)
	iyr := 0.5 * (fj0 + fj1)

	// Destination pixels map into source indexes by rotating the
	// rectangle frame around its center.
	mat := coords.Translate(ixr, iyr).
		Mul(coords.Rotate(-angle)).
		Mul(coords.Translate(-float64(destw)/2, -float64(desth)/2))

	dst := raster.NewGrid[float64](desth, destw)
	_, err := scaler.ExportTr(data, mat, dst, image.Rect(0, 0, destw, desth),
		scaler.NaNLevels(), scaler.LinearSpec)
	if err != nil {
		return Curve{}, err
	}

	c := Curve{Pos: make([]float64, desth), Val: make([]float64, desth)}
	for j := 0; j < desth; j++ {
		c.Pos[j] = r.Y0 + (float64(j)+0.5)*r.Height()/float64(desth)
		c.Val[j] = meanRow(dst, j, 0, destw)
	}
	return c, nil
}
