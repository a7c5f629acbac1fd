// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster provides the 2D numeric data buffers underlying image
// plot items: row-major grids of any standard numeric element type, with
// an optional validity mask and a generation counter that downstream
// caches (histograms, level ranges) key on for invalidation.
package raster

import (
	"fmt"
	"math"

	"cogentcore.org/core/base/num"
)

// Raster is the read/write interface to a 2D numeric buffer, implemented
// by [Grid] for each concrete element type. Indexing is (row j, column i)
// throughout, matching image conventions (row 0 is the top row).
type Raster interface {
	// NumRows returns the number of rows (the Y dimension).
	NumRows() int

	// NumCols returns the number of columns (the X dimension).
	NumCols() int

	// Len returns NumRows * NumCols.
	Len() int

	// DType returns the element type descriptor.
	DType() DType

	// Float returns the element at row j, column i as a float64.
	// Indexes must be in range.
	Float(j, i int) float64

	// SetFloat sets the element at row j, column i, converting from
	// float64, and advances the generation counter.
	SetFloat(j, i int, v float64)

	// IsValid reports whether the cell at row j, column i carries a
	// usable sample: not masked out, and not NaN for float types.
	IsValid(j, i int) bool

	// Masked reports whether a validity mask is attached.
	Masked() bool

	// Mask returns the validity mask (true = masked out, excluded from
	// statistics and rendering), or nil if none is attached. The slice
	// is row-major, parallel to the data.
	Mask() []bool

	// SetMask attaches (or, with nil, removes) a validity mask and
	// advances the generation counter. The mask length must equal Len.
	SetMask(mask []bool)

	// Generation returns the mutation generation counter. It advances on
	// every data or mask mutation; caches computed from this buffer
	// record the generation and are stale once it has moved on.
	Generation() int64

	// Modified advances the generation counter, for callers that mutate
	// the underlying storage directly.
	Modified()
}

// Grid is a row-major 2D buffer of numeric values.
type Grid[T num.Number] struct {
	// Values is the row-major element storage, of length rows*cols.
	Values []T

	mask []bool
	rows int
	cols int
	gen  int64
}

// Float64Grid is an alias for Grid[float64], the usual working type for
// computed images and export buffers.
type Float64Grid = Grid[float64]

// NewGrid returns a new zero-filled grid with the given shape.
func NewGrid[T num.Number](rows, cols int) *Grid[T] {
	return &Grid[T]{Values: make([]T, rows*cols), rows: rows, cols: cols}
}

// NewGridValues returns a grid wrapping the given row-major values.
// It returns an error if the value count does not match the shape.
func NewGridValues[T num.Number](rows, cols int, values []T) (*Grid[T], error) {
	if len(values) != rows*cols {
		return nil, fmt.Errorf("raster: have %d values for %dx%d grid", len(values), rows, cols)
	}
	return &Grid[T]{Values: values, rows: rows, cols: cols}, nil
}

func (g *Grid[T]) NumRows() int { return g.rows }
func (g *Grid[T]) NumCols() int { return g.cols }
func (g *Grid[T]) Len() int     { return g.rows * g.cols }

func (g *Grid[T]) DType() DType {
	var v T
	switch any(v).(type) {
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	}
	return Float64 // int, uint etc map to the widest range
}

// At returns the element at row j, column i.
func (g *Grid[T]) At(j, i int) T { return g.Values[j*g.cols+i] }

// Set sets the element at row j, column i and advances the generation.
func (g *Grid[T]) Set(j, i int, v T) {
	g.Values[j*g.cols+i] = v
	g.gen++
}

func (g *Grid[T]) Float(j, i int) float64 { return float64(g.Values[j*g.cols+i]) }

func (g *Grid[T]) SetFloat(j, i int, v float64) {
	g.Values[j*g.cols+i] = T(v)
	g.gen++
}

func (g *Grid[T]) IsValid(j, i int) bool {
	idx := j*g.cols + i
	if g.mask != nil && g.mask[idx] {
		return false
	}
	return !math.IsNaN(float64(g.Values[idx]))
}

func (g *Grid[T]) Masked() bool { return g.mask != nil }
func (g *Grid[T]) Mask() []bool { return g.mask }

func (g *Grid[T]) SetMask(mask []bool) {
	if mask != nil && len(mask) != g.Len() {
		mask = nil
	}
	g.mask = mask
	g.gen++
}

func (g *Grid[T]) Generation() int64 { return g.gen }
func (g *Grid[T]) Modified()         { g.gen++ }

// Clone returns a deep copy of the grid, including any mask.
// The clone starts at generation 0.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{Values: make([]T, len(g.Values)), rows: g.rows, cols: g.cols}
	copy(c.Values, g.Values)
	if g.mask != nil {
		c.mask = make([]bool, len(g.mask))
		copy(c.mask, g.mask)
	}
	return c
}

// Fill sets every element to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.Values {
		g.Values[i] = v
	}
	g.gen++
}
