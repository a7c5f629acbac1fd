// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaler

import (
	"image"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
)

// Resize resamples the whole of src to a rows x cols grid. Samples with
// no valid source (possible only on fully masked inputs) come out NaN.
func Resize(src raster.Raster, rows, cols int, in InterpSpec) (*raster.Float64Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrDegenerateRegion
	}
	dst := raster.NewGrid[float64](rows, cols)
	srcRect := coords.NewRect(0, 0, float64(src.NumCols()), float64(src.NumRows()))
	_, err := ExportRect(src, srcRect, dst, image.Rect(0, 0, cols, rows), NaNLevels(), in)
	if err != nil {
		return nil, err
	}
	return dst, nil
}
