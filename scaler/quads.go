// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaler

import (
	"image"
	"math"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
)

// ScaleQuads renders a structured quadrilateral grid: xs, ys and zs are
// same-shape node arrays, and the quad (i, j) spans the four nodes
// (j, i), (j, i+1), (j+1, i), (j+1, i+1). srcRect is the plot-coordinate
// window mapped onto dstRect.
//
// With [Nearest] each quad is filled flat with its top-left node value;
// [Linear] and [AntiAlias] blend the four node values bilinearly across
// the quad. Quads touching an invalid node are skipped, as are device
// pixels covered by no quad. When grid is set the quad boundaries are
// stroked with the packed ARGB color gridColor after filling.
func ScaleQuads(xs, ys, zs raster.Raster, srcRect coords.Rect, pm *Pixmap, dstRect image.Rectangle, lev Levels, in InterpSpec, grid bool, gridColor uint32) (image.Rectangle, error) {
	if len(lev.Table) == 0 {
		return image.Rectangle{}, ErrNoColormap
	}
	if zs == nil || zs.Len() == 0 {
		return image.Rectangle{}, raster.ErrEmptyData
	}
	nr, nc := zs.NumRows(), zs.NumCols()
	if xs.NumRows() != nr || xs.NumCols() != nc || ys.NumRows() != nr || ys.NumCols() != nc {
		return image.Rectangle{}, ErrEdgeCount
	}
	if nr < 2 || nc < 2 {
		return image.Rectangle{}, ErrDegenerateRegion
	}
	if srcRect.Width() <= 0 || srcRect.Height() <= 0 || dstRect.Dx() <= 0 || dstRect.Dy() <= 0 {
		return image.Rectangle{}, ErrDegenerateRegion
	}
	tgt := &pixTarget{pm: pm, lev: lev}
	dr := dstRect.Intersect(tgt.bounds())
	if dr.Empty() {
		return image.Rectangle{}, nil
	}

	xmap := coords.ViewMap{S0: srcRect.X0, S1: srcRect.X1, P0: float64(dstRect.Min.X), P1: float64(dstRect.Max.X)}
	ymap := coords.ViewMap{S0: srcRect.Y0, S1: srcRect.Y1, P0: float64(dstRect.Min.Y), P1: float64(dstRect.Max.Y)}

	for j := 0; j < nr-1; j++ {
		for i := 0; i < nc-1; i++ {
			if !xs.IsValid(j, i) || !xs.IsValid(j, i+1) || !xs.IsValid(j+1, i) || !xs.IsValid(j+1, i+1) {
				continue
			}
			if !ys.IsValid(j, i) || !ys.IsValid(j, i+1) || !ys.IsValid(j+1, i) || !ys.IsValid(j+1, i+1) {
				continue
			}
			if !zs.IsValid(j, i) || !zs.IsValid(j, i+1) || !zs.IsValid(j+1, i) || !zs.IsValid(j+1, i+1) {
				continue
			}
			q := quad{
				x00: xmap.Transform(xs.Float(j, i)), y00: ymap.Transform(ys.Float(j, i)),
				x10: xmap.Transform(xs.Float(j, i+1)), y10: ymap.Transform(ys.Float(j, i+1)),
				x01: xmap.Transform(xs.Float(j+1, i)), y01: ymap.Transform(ys.Float(j+1, i)),
				x11: xmap.Transform(xs.Float(j+1, i+1)), y11: ymap.Transform(ys.Float(j+1, i+1)),
			}
			fillQuad(tgt, dr, q, in,
				zs.Float(j, i), zs.Float(j, i+1), zs.Float(j+1, i), zs.Float(j+1, i+1))
			if grid {
				strokeQuad(pm, dr, q, gridColor)
			}
		}
	}
	return dr, nil
}

// quad holds the device coordinates of the four corners; the uv
// parameterization is u along the first index axis (00 to 10) and v
// along the second (00 to 01).
type quad struct {
	x00, y00, x10, y10, x01, y01, x11, y11 float64
}

func fillQuad(tgt target, dr image.Rectangle, q quad, in InterpSpec, z00, z10, z01, z11 float64) {
	x0 := int(math.Floor(min4(q.x00, q.x10, q.x01, q.x11)))
	x1 := int(math.Ceil(max4(q.x00, q.x10, q.x01, q.x11)))
	y0 := int(math.Floor(min4(q.y00, q.y10, q.y01, q.y11)))
	y1 := int(math.Ceil(max4(q.y00, q.y10, q.y01, q.y11)))
	if x0 < dr.Min.X {
		x0 = dr.Min.X
	}
	if x1 > dr.Max.X {
		x1 = dr.Max.X
	}
	if y0 < dr.Min.Y {
		y0 = dr.Min.Y
	}
	if y1 > dr.Max.Y {
		y1 = dr.Max.Y
	}
	for yd := y0; yd < y1; yd++ {
		for xd := x0; xd < x1; xd++ {
			u, v, ok := q.invBilinear(float64(xd)+0.5, float64(yd)+0.5)
			if !ok {
				continue
			}
			z := z00
			if in.Mode != Nearest {
				z = (1-u)*(1-v)*z00 + u*(1-v)*z10 + (1-u)*v*z01 + u*v*z11
			}
			tgt.set(xd, yd, z, true)
		}
	}
}

const quadEps = 1e-3

// invBilinear inverts the bilinear corner parameterization at device
// point (px, py) by Newton iteration. ok reports whether the point lies
// inside the quad (within a small tolerance to avoid seams between
// adjacent quads).
func (q quad) invBilinear(px, py float64) (u, v float64, ok bool) {
	ax, ay := q.x00, q.y00
	bx, by := q.x10-q.x00, q.y10-q.y00
	cx, cy := q.x01-q.x00, q.y01-q.y00
	dx, dy := q.x11-q.x10-q.x01+q.x00, q.y11-q.y10-q.y01+q.y00
	u, v = 0.5, 0.5
	for it := 0; it < 8; it++ {
		fx := ax + bx*u + cx*v + dx*u*v - px
		fy := ay + by*u + cy*v + dy*u*v - py
		j00 := bx + dx*v
		j01 := cx + dx*u
		j10 := by + dy*v
		j11 := cy + dy*u
		det := j00*j11 - j01*j10
		if det == 0 {
			return 0, 0, false
		}
		du := (fx*j11 - fy*j01) / det
		dv := (fy*j00 - fx*j10) / det
		u -= du
		v -= dv
		if math.Abs(du) < 1e-9 && math.Abs(dv) < 1e-9 {
			break
		}
	}
	if u < -quadEps || u > 1+quadEps || v < -quadEps || v > 1+quadEps {
		return 0, 0, false
	}
	return clamp01(u), clamp01(v), true
}

func strokeQuad(pm *Pixmap, dr image.Rectangle, q quad, argb uint32) {
	strokeLine(pm, dr, q.x00, q.y00, q.x10, q.y10, argb)
	strokeLine(pm, dr, q.x10, q.y10, q.x11, q.y11, argb)
	strokeLine(pm, dr, q.x11, q.y11, q.x01, q.y01, argb)
	strokeLine(pm, dr, q.x01, q.y01, q.x00, q.y00, argb)
}

// strokeLine draws a one-pixel line clipped to dr.
func strokeLine(pm *Pixmap, dr image.Rectangle, xa, ya, xb, yb float64, argb uint32) {
	steps := int(math.Ceil(math.Max(math.Abs(xb-xa), math.Abs(yb-ya))))
	if steps < 1 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := int(math.Floor(xa + t*(xb-xa)))
		y := int(math.Floor(ya + t*(yb-ya)))
		if x < dr.Min.X || x >= dr.Max.X || y < dr.Min.Y || y >= dr.Max.Y {
			continue
		}
		pm.Pix[y*pm.W+x] = argb
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min4(a, b, c, d float64) float64 { return math.Min(math.Min(a, b), math.Min(c, d)) }
func max4(a, b, c, d float64) float64 { return math.Max(math.Max(a, b), math.Max(c, d)) }
