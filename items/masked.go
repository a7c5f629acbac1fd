// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

// AreaGeometry is the shape of a masked area.
type AreaGeometry int32

const (
	// AreaRect masks an axis-aligned rectangle.
	AreaRect AreaGeometry = iota

	// AreaCircle masks the ellipse inscribed in the rectangle.
	AreaCircle
)

// MaskedArea is one masking record: a shape in plot coordinates and
// whether the cells inside or outside it are masked. Areas replay in
// the order they were added, so a later area can re-mask cells an
// earlier outside-area left unmasked.
type MaskedArea struct {
	Geometry AreaGeometry `json:"geometry"`
	X0       float64      `json:"x0"`
	Y0       float64      `json:"y0"`
	X1       float64      `json:"x1"`
	Y1       float64      `json:"y1"`
	Inside   bool         `json:"inside"`
}

// maskHost is the geometry an item must expose for masking.
type maskHost interface {
	Data() raster.Raster
	ClosestIndexRect(x0, y0, x1, y1 float64) (ix0, iy0, ix1, iy1 int)
	IndexesToPlot(i, j int) (x, y float64)
}

// MaskingBehavior maintains the mask of an item data buffer from an
// ordered list of area records. Items gain masking by embedding it
// next to their geometry, no dedicated item subclass required.
type MaskingBehavior struct {
	host  maskHost
	areas []MaskedArea

	// ShowMask paints masked cells with the item background instead of
	// leaving them untouched.
	ShowMask bool
}

// NewMaskingBehavior attaches masking to a host item.
func NewMaskingBehavior(host maskHost) *MaskingBehavior {
	return &MaskingBehavior{host: host}
}

// Areas returns the replayable area records.
func (mb *MaskingBehavior) Areas() []MaskedArea { return mb.areas }

// SetAreas replaces the records and rebuilds the mask.
func (mb *MaskingBehavior) SetAreas(areas []MaskedArea) {
	mb.areas = areas
	mb.Replay()
}

// AddArea appends an area record and applies it.
func (mb *MaskingBehavior) AddArea(a MaskedArea) {
	mb.areas = append(mb.areas, a)
	mb.apply(a)
}

// ClearAreas removes every record and unmasks the data.
func (mb *MaskingBehavior) ClearAreas() {
	mb.areas = nil
	mb.host.Data().SetMask(nil)
}

// Replay rebuilds the mask from scratch by applying every record in
// order.
func (mb *MaskingBehavior) Replay() {
	mb.host.Data().SetMask(nil)
	for _, a := range mb.areas {
		mb.apply(a)
	}
}

func (mb *MaskingBehavior) apply(a MaskedArea) {
	data := mb.host.Data()
	nr, nc := data.NumRows(), data.NumCols()
	ix0, iy0, ix1, iy1 := mb.host.ClosestIndexRect(a.X0, a.Y0, a.X1, a.Y1)
	inShape := func(i, j int) bool {
		if i < ix0 || i >= ix1 || j < iy0 || j >= iy1 {
			return false
		}
		if a.Geometry == AreaRect {
			return true
		}
		// Ellipse inscribed in the area rectangle, tested on cell
		// centers in plot coordinates.
		x, y := mb.host.IndexesToPlot(i, j)
		cx := 0.5 * (a.X0 + a.X1)
		cy := 0.5 * (a.Y0 + a.Y1)
		rx := 0.5 * (a.X1 - a.X0)
		ry := 0.5 * (a.Y1 - a.Y0)
		if rx == 0 || ry == 0 {
			return false
		}
		dx := (x - cx) / rx
		dy := (y - cy) / ry
		return dx*dx+dy*dy <= 1
	}
	m := data.Mask()
	if m == nil {
		m = make([]bool, data.Len())
	}
	if a.Inside {
		for j := iy0; j < iy1; j++ {
			for i := ix0; i < ix1; i++ {
				if inShape(i, j) {
					m[j*nc+i] = true
				}
			}
		}
	} else {
		for j := 0; j < nr; j++ {
			for i := 0; i < nc; i++ {
				if !inShape(i, j) {
					m[j*nc+i] = true
				}
			}
		}
	}
	data.SetMask(m)
}

// MaskedImage is an axis-aligned image with masked areas.
type MaskedImage struct {
	Image
	Masking *MaskingBehavior
}

// NewMaskedImage builds a masked image item.
func NewMaskedImage(data raster.Raster, param RectParam) *MaskedImage {
	mi := &MaskedImage{Image: *NewImage(data, param)}
	mi.caps |= CanMask
	mi.Masking = NewMaskingBehavior(mi)
	return mi
}

// Render draws the image; with ShowMask and no explicit background,
// masked cells paint translucent gray so they stay visible.
func (mi *MaskedImage) Render(pm *scaler.Pixmap, xmap, ymap coords.ViewMap) error {
	if mi.Masking.ShowMask && !mi.lut.HasBackground {
		mi.lut.SetBackground(scaler.PackARGB(128, 64, 64, 64))
		defer mi.lut.ClearBackground()
	}
	return mi.Image.Render(pm, xmap, ymap)
}

// MaskedXYImage is a non-uniform image with masked areas. Area records
// resolve to cells through the bin-edge geometry.
type MaskedXYImage struct {
	XYImage
	Masking *MaskingBehavior
}

// NewMaskedXYImage builds a masked non-uniform image item. x and y
// follow the [NewXYImage] axis conventions.
func NewMaskedXYImage(data raster.Raster, x, y []float64, param Param) (*MaskedXYImage, error) {
	xy, err := NewXYImage(data, x, y, param)
	if err != nil {
		return nil, err
	}
	mi := &MaskedXYImage{XYImage: *xy}
	mi.caps |= CanMask
	mi.Masking = NewMaskingBehavior(mi)
	return mi, nil
}

func (mi *MaskedXYImage) Render(pm *scaler.Pixmap, xmap, ymap coords.ViewMap) error {
	if mi.Masking.ShowMask && !mi.lut.HasBackground {
		mi.lut.SetBackground(scaler.PackARGB(128, 64, 64, 64))
		defer mi.lut.ClearBackground()
	}
	return mi.XYImage.Render(pm, xmap, ymap)
}
