// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaler

import "image"

// Pixmap is a dense W x H buffer of packed ARGB pixels, the device-side
// destination of the scaling operations. Pixel (x, y) lives at
// Pix[y*W+x] with the alpha byte in the top 8 bits.
type Pixmap struct {
	Pix []uint32
	W   int
	H   int
}

// NewPixmap returns a cleared w x h pixmap.
func NewPixmap(w, h int) *Pixmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Pixmap{Pix: make([]uint32, w*h), W: w, H: h}
}

// Bounds returns the pixmap extent as an image rectangle.
func (pm *Pixmap) Bounds() image.Rectangle { return image.Rect(0, 0, pm.W, pm.H) }

// Clear resets every pixel to transparent black.
func (pm *Pixmap) Clear() {
	for i := range pm.Pix {
		pm.Pix[i] = 0
	}
}

// Fill sets every pixel to the packed ARGB value argb.
func (pm *Pixmap) Fill(argb uint32) {
	for i := range pm.Pix {
		pm.Pix[i] = argb
	}
}

// At returns the packed pixel at (x, y). Out-of-bounds coordinates
// return 0.
func (pm *Pixmap) At(x, y int) uint32 {
	if x < 0 || x >= pm.W || y < 0 || y >= pm.H {
		return 0
	}
	return pm.Pix[y*pm.W+x]
}

// ToRGBA copies the pixmap into a standard library RGBA image.
func (pm *Pixmap) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pm.W, pm.H))
	for i, p := range pm.Pix {
		img.Pix[4*i+0] = uint8(p >> 16)
		img.Pix[4*i+1] = uint8(p >> 8)
		img.Pix[4*i+2] = uint8(p)
		img.Pix[4*i+3] = uint8(p >> 24)
	}
	return img
}

// PackARGB packs 8-bit channels into the pixmap pixel format.
func PackARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
