// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lut

import (
	"math"
	"sort"

	"github.com/pixplot/pixplot/raster"
)

// Histogram computes the histogram of the valid cells of r. Every valid
// value lands in exactly one bin: edges span the data range and values
// on the last edge count into the last bin. Integer-typed rasters get
// integer-aligned bin edges so that distinct integer values never share
// a bin unless the range forces it. A raster without valid data returns
// the sentinel single empty bin over [0, 1].
func Histogram(r raster.Raster, nbins int) (counts []int, edges []float64) {
	if nbins < 1 {
		nbins = 1
	}
	min, max, err := raster.Range(r)
	if err != nil {
		return []int{0}, []float64{0, 1}
	}
	edges = binEdges(min, max, nbins, !r.DType().IsFloat())
	counts = make([]int, len(edges)-1)
	nr, nc := r.NumRows(), r.NumCols()
	for j := 0; j < nr; j++ {
		for i := 0; i < nc; i++ {
			if !r.IsValid(j, i) {
				continue
			}
			counts[binIndex(edges, r.Float(j, i))]++
		}
	}
	return counts, edges
}

func binEdges(min, max float64, nbins int, integer bool) []float64 {
	if integer {
		// Unit-aligned edges, widened to an integer step when the span
		// exceeds the requested bin count.
		lo := math.Floor(min)
		hi := math.Floor(max)
		step := math.Max(math.Floor((hi-lo)/float64(nbins)), 1)
		edges := []float64{}
		for e := lo; e <= hi; e += step {
			edges = append(edges, e)
		}
		return append(edges, edges[len(edges)-1]+step)
	}
	if min == max {
		return []float64{min, max}
	}
	edges := make([]float64, 0, nbins+1)
	for k := 0; k <= nbins; k++ {
		e := min + (max-min)*float64(k)/float64(nbins)
		// Tiny ranges can collapse consecutive edges to the same float.
		if len(edges) > 0 && e <= edges[len(edges)-1] {
			continue
		}
		edges = append(edges, e)
	}
	if len(edges) < 2 {
		edges = append(edges, edges[0]+1)
	}
	return edges
}

// binIndex returns the bin containing v, with the last edge inclusive.
func binIndex(edges []float64, v float64) int {
	i := sort.Search(len(edges), func(k int) bool { return edges[k] > v }) - 1
	if i < 0 {
		i = 0
	}
	if i > len(edges)-2 {
		i = len(edges) - 2
	}
	return i
}

// HistCache memoizes one histogram per raster, keyed on the raster
// generation and the bin count. Contrast panels recompute histograms on
// every slider move; the cache makes that free until the data changes.
type HistCache struct {
	gen    int64
	nbins  int
	valid  bool
	counts []int
	edges  []float64
}

// Get returns the histogram of r, reusing the cached result when the
// raster generation and bin count are unchanged.
func (c *HistCache) Get(r raster.Raster, nbins int) (counts []int, edges []float64, err error) {
	if c.valid && c.gen == r.Generation() && c.nbins == nbins {
		return c.counts, c.edges, nil
	}
	c.counts, c.edges = Histogram(r, nbins)
	c.gen = r.Generation()
	c.nbins = nbins
	c.valid = true
	return c.counts, c.edges, nil
}

// Invalidate drops the cached histogram.
func (c *HistCache) Invalidate() { c.valid = false }

// RangeThreshold returns the data interval that remains after trimming
// percent of the histogram mass, half from each tail. Trimming removes
// whole bins from each end as long as the cumulative removed mass does
// not exceed half of percent. skipFirst excludes the first bin from the
// mass entirely, the policy for integer images whose zero bin is a
// background spike. percent <= 0 returns the full edge span; a large
// percent may return a collapsed or inverted interval, which callers
// feed to the degenerate range policy rather than treating as an error.
func RangeThreshold(counts []int, edges []float64, percent float64, skipFirst bool) (lo, hi float64) {
	lo, hi = edges[0], edges[len(edges)-1]
	h := counts
	off := 0
	if skipFirst && len(counts) > 1 {
		h = counts[1:]
		off = 1
	}
	total := 0
	for _, c := range h {
		total += c
	}
	if total == 0 || percent <= 0 {
		return lo, hi
	}
	thr := 0.5 * percent / 100 * float64(total)
	cum := 0.0
	for k := range h {
		cum += float64(h[k])
		if cum > thr {
			lo = edges[k+off]
			break
		}
	}
	cum = 0
	for k := len(h) - 1; k >= 0; k-- {
		cum += float64(h[k])
		if cum > thr {
			hi = edges[k+off+1]
			break
		}
	}
	return lo, hi
}

// ToBins converts sorted sample positions (bin centers) to bin edges:
// interior edges fall halfway between neighboring centers and the outer
// edges extend half the adjacent spacing outward. A single center gets
// a unit-width bin around it.
func ToBins(centers []float64) []float64 {
	n := len(centers)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []float64{centers[0] - 0.5, centers[0] + 0.5}
	}
	edges := make([]float64, n+1)
	edges[0] = centers[0] - 0.5*(centers[1]-centers[0])
	for k := 1; k < n; k++ {
		edges[k] = 0.5 * (centers[k-1] + centers[k])
	}
	edges[n] = centers[n-1] + 0.5*(centers[n-1]-centers[n-2])
	return edges
}
