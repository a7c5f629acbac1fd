// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import "errors"

// ErrEmptyData is returned by queries that need at least one valid
// (non-masked, non-NaN) sample to be meaningful.
var ErrEmptyData = errors.New("raster: no available data")

// Range returns the (min, max) over valid cells, excluding NaNs and
// masked-out cells. It returns [ErrEmptyData] if the buffer is nil, has
// zero elements, or every cell is invalid.
func Range(r Raster) (min, max float64, err error) {
	if r == nil || r.Len() == 0 {
		return 0, 0, ErrEmptyData
	}
	found := false
	nr, nc := r.NumRows(), r.NumCols()
	for j := 0; j < nr; j++ {
		for i := 0; i < nc; i++ {
			if !r.IsValid(j, i) {
				continue
			}
			v := r.Float(j, i)
			if !found {
				min, max = v, v
				found = true
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if !found {
		return 0, 0, ErrEmptyData
	}
	return min, max, nil
}

// CountValid returns the number of valid (non-masked, non-NaN) cells.
func CountValid(r Raster) int {
	if r == nil {
		return 0
	}
	n := 0
	for j := 0; j < r.NumRows(); j++ {
		for i := 0; i < r.NumCols(); i++ {
			if r.IsValid(j, i) {
				n++
			}
		}
	}
	return n
}
