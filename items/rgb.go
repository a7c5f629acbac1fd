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

// RGBImage is an axis-aligned true-color image. It renders its pixels
// directly without a LUT; the Data buffer seen by sections and
// statistics is the luminance.
type RGBImage struct {
	BaseImage

	argb []uint32
	w, h int
}

// NewRGBImage builds an RGB image item from a standard library image.
func NewRGBImage(src image.Image, param RectParam) *RGBImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	argb := make([]uint32, w*h)
	lum := raster.NewGrid[float64](h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			argb[y*w+x] = scaler.PackARGB(uint8(a>>8), uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			// ITU-R BT.601 luma of the 8-bit channels.
			lum.Set(y, x, 0.299*float64(r>>8)+0.587*float64(g>>8)+0.114*float64(bl>>8))
		}
	}
	im := &RGBImage{
		BaseImage: newBaseImage(param.Param, lum, CanSelect|CanMove|CanResize|CanExtractSection),
		argb:      argb,
		w:         w,
		h:         h,
	}
	if param.XMax > param.XMin && param.YMax > param.YMin {
		im.SetRect(coords.NewRect(param.XMin, param.YMin, param.XMax, param.YMax))
	}
	return im
}

// Render draws the visible part of the image into pm with nearest
// sampling.
func (im *RGBImage) Render(pm *scaler.Pixmap, xmap, ymap coords.ViewMap) error {
	if im.w == 0 || im.h == 0 {
		return raster.ErrEmptyData
	}
	r := im.BoundingRect()
	xd0 := int(coords.PixelRound(xmap.Transform(r.X0), coords.TopLeft))
	yd0 := int(coords.PixelRound(ymap.Transform(r.Y0), coords.TopLeft))
	xd1 := int(coords.PixelRound(xmap.Transform(r.X1), coords.BottomRight))
	yd1 := int(coords.PixelRound(ymap.Transform(r.Y1), coords.BottomRight))
	dstRect := image.Rect(xd0, yd0, xd1, yd1)
	dr := dstRect.Intersect(pm.Bounds())
	if dr.Empty() || dstRect.Dx() <= 0 || dstRect.Dy() <= 0 {
		return nil
	}
	dx := float64(im.w) / float64(dstRect.Dx())
	dy := float64(im.h) / float64(dstRect.Dy())
	for yd := dr.Min.Y; yd < dr.Max.Y; yd++ {
		sj := int(math.Floor((float64(yd-dstRect.Min.Y) + 0.5) * dy))
		if sj < 0 || sj >= im.h {
			continue
		}
		for xd := dr.Min.X; xd < dr.Max.X; xd++ {
			si := int(math.Floor((float64(xd-dstRect.Min.X) + 0.5) * dx))
			if si < 0 || si >= im.w {
				continue
			}
			pm.Pix[yd*pm.W+xd] = im.argb[sj*im.w+si]
		}
	}
	return nil
}
