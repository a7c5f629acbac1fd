// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"image"
	"math"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

// TrImage is an image under an arbitrary affine pose: translation,
// rotation, per-axis pixel size and flips, applied to the image
// centered at the origin. Rendering and export go through the affine
// scaling path.
type TrImage struct {
	BaseImage

	pose TrParam

	// tr maps source index coordinates to plot coordinates; inv is its
	// inverse.
	tr  coords.Transform
	inv coords.Transform
}

// NewTrImage builds a transformable image over data with the given
// pose.
func NewTrImage(data raster.Raster, param TrParam) *TrImage {
	im := &TrImage{BaseImage: newBaseImage(param.Param, data,
		CanSelect|CanMove|CanResize|CanRotate|CanColormap|CanExtractSection|CanExportROI)}
	im.SetPose(param)
	return im
}

// Pose returns the current pose parameters.
func (im *TrImage) Pose() TrParam { return im.pose }

// SetPose replaces the pose and recomputes the transform and extent.
func (im *TrImage) SetPose(pose TrParam) {
	im.pose = pose
	dx, dy := pose.DX, pose.DY
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	if pose.HFlip {
		dx = -dx
	}
	if pose.VFlip {
		dy = -dy
	}
	w := float64(im.Data().NumCols())
	h := float64(im.Data().NumRows())
	im.tr = coords.Translate(pose.PosX, pose.PosY).
		Mul(coords.Rotate(pose.Angle)).
		Mul(coords.Scale(dx, dy)).
		Mul(coords.Translate(-w/2, -h/2))
	im.inv, _ = im.tr.Invert()
	im.SetRect(im.projectedRect())
}

// Move translates the pose by (dx, dy) plot units.
func (im *TrImage) Move(dx, dy float64) {
	p := im.pose
	p.PosX += dx
	p.PosY += dy
	im.SetPose(p)
}

// Rotate sets the pose angle in radians.
func (im *TrImage) Rotate(angle float64) {
	p := im.pose
	p.Angle = angle
	im.SetPose(p)
}

// projectedRect is the axis-aligned plot bounding box of the four
// transformed image corners.
func (im *TrImage) projectedRect() coords.Rect {
	w := float64(im.Data().NumCols())
	h := float64(im.Data().NumRows())
	x0, y0 := im.tr.Apply(0, 0)
	r := coords.NewRect(x0, y0, x0, y0)
	for _, c := range [][2]float64{{w, 0}, {0, h}, {w, h}} {
		x, y := im.tr.Apply(c[0], c[1])
		r.X0 = math.Min(r.X0, x)
		r.Y0 = math.Min(r.Y0, y)
		r.X1 = math.Max(r.X1, x)
		r.Y1 = math.Max(r.Y1, y)
	}
	return r
}

// PlotToIndexes returns the fractional pixel indexes of a plot point
// through the inverse pose, unclamped.
func (im *TrImage) PlotToIndexes(x, y float64) (fi, fj float64) {
	return im.inv.Apply(x, y)
}

// IndexesToPlot returns the plot coordinates of the center of pixel
// (i, j).
func (im *TrImage) IndexesToPlot(i, j int) (x, y float64) {
	return im.tr.Apply(float64(i)+0.5, float64(j)+0.5)
}

// ClosestIndexes returns the pixel containing the plot point, clamped
// into the data bounds.
func (im *TrImage) ClosestIndexes(x, y float64) (i, j int) {
	fi, fj := im.PlotToIndexes(x, y)
	i = clampInt(int(math.Floor(fi)), 0, im.Data().NumCols()-1)
	j = clampInt(int(math.Floor(fj)), 0, im.Data().NumRows()-1)
	return i, j
}

// ClosestPixelIndexes is the unclamped variant of ClosestIndexes.
func (im *TrImage) ClosestPixelIndexes(x, y float64) (i, j int) {
	fi, fj := im.PlotToIndexes(x, y)
	return int(math.Floor(fi)), int(math.Floor(fj))
}

// ClosestIndexRect returns the pixel index bounding box of the plot
// rectangle under the inverse pose, clamped and at least one pixel.
func (im *TrImage) ClosestIndexRect(x0, y0, x1, y1 float64) (ix0, iy0, ix1, iy1 int) {
	fi := make([]float64, 0, 4)
	fj := make([]float64, 0, 4)
	for _, c := range [][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		i, j := im.inv.Apply(c[0], c[1])
		fi = append(fi, i)
		fj = append(fj, j)
	}
	nc, nr := im.Data().NumCols(), im.Data().NumRows()
	ix0 = clampInt(int(coords.PixelRound(min4f(fi), coords.TopLeft)), 0, nc)
	iy0 = clampInt(int(coords.PixelRound(min4f(fj), coords.TopLeft)), 0, nr)
	ix1 = clampInt(int(coords.PixelRound(max4f(fi), coords.BottomRight)), 0, nc)
	iy1 = clampInt(int(coords.PixelRound(max4f(fj), coords.BottomRight)), 0, nr)
	if ix0 == ix1 {
		if ix1 < nc {
			ix1++
		} else {
			ix0--
		}
	}
	if iy0 == iy1 {
		if iy1 < nr {
			iy1++
		} else {
			iy0--
		}
	}
	return ix0, iy0, ix1, iy1
}

// Render draws the visible part of the image into pm.
func (im *TrImage) Render(pm *scaler.Pixmap, xmap, ymap coords.ViewMap) error {
	r := im.BoundingRect()
	xd0 := coords.PixelRound(xmap.Transform(r.X0), coords.TopLeft)
	yd0 := coords.PixelRound(ymap.Transform(r.Y0), coords.TopLeft)
	xd1 := coords.PixelRound(xmap.Transform(r.X1), coords.BottomRight)
	yd1 := coords.PixelRound(ymap.Transform(r.Y1), coords.BottomRight)
	dstRect := image.Rect(int(xd0), int(yd0), int(xd1), int(yd1))
	mat := im.inv.Mul(deviceToPlot(xmap, ymap))
	_, err := scaler.ScaleTr(im.renderData(), mat, pm, dstRect, im.lut.Levels(), im.interpSpec())
	return err
}

// ExportROI resamples the plot region srcRect into the dstRect pixels
// of dst through the inverse pose.
func (im *TrImage) ExportROI(dst *raster.Float64Grid, srcRect coords.Rect, dstRect image.Rectangle, applyLut, applyInterp bool) error {
	if dstRect.Dx() <= 0 || dstRect.Dy() <= 0 {
		return scaler.ErrDegenerateRegion
	}
	kx := srcRect.Width() / float64(dstRect.Dx())
	ky := srcRect.Height() / float64(dstRect.Dy())
	devToPlot := coords.Transform{
		XX: kx, X0: srcRect.X0 - float64(dstRect.Min.X)*kx,
		YY: ky, Y0: srcRect.Y0 - float64(dstRect.Min.Y)*ky,
	}
	mat := im.inv.Mul(devToPlot)
	lev := scaler.NoLevels()
	src := im.Data()
	if applyLut {
		lev = im.lut.Levels()
		lev.Table = nil
		lev.HasBackground = false
		src = im.renderData()
	}
	in := scaler.NearestSpec
	if applyInterp {
		in = im.interpSpec()
	}
	_, err := scaler.ExportTr(src, mat, dst, dstRect, lev, in)
	return err
}

// deviceToPlot builds the affine map from device pixel centers to plot
// coordinates out of the per-axis view maps.
func deviceToPlot(xmap, ymap coords.ViewMap) coords.Transform {
	kx := (xmap.S1 - xmap.S0) / (xmap.P1 - xmap.P0)
	ky := (ymap.S1 - ymap.S0) / (ymap.P1 - ymap.P0)
	return coords.Transform{
		XX: kx, X0: xmap.S0 - xmap.P0*kx,
		YY: ky, Y0: ymap.S0 - ymap.P0*ky,
	}
}

func min4f(v []float64) float64 { return math.Min(math.Min(v[0], v[1]), math.Min(v[2], v[3])) }
func max4f(v []float64) float64 { return math.Max(math.Max(v[0], v[1]), math.Max(v[2], v[3])) }
