// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"fmt"
	"io"

	"cogentcore.org/core/base/iox/jsonx"

	"github.com/pixplot/pixplot/raster"
)

// Item kinds used in serialized documents.
const (
	KindImage         = "image"
	KindXYImage       = "xyimage"
	KindTrImage       = "trimage"
	KindMaskedImage   = "maskedimage"
	KindMaskedXYImage = "maskedxyimage"
	KindQuadGrid      = "quadgrid"
	KindHistogram2D   = "histogram2d"
)

// GridDTO is the serialized form of a data buffer. Values are always
// carried as float64 regardless of the runtime cell type, so documents
// do not depend on in-memory representation.
type GridDTO struct {
	Rows   int       `json:"rows"`
	Cols   int       `json:"cols"`
	Values []float64 `json:"values"`
	Mask   []bool    `json:"mask,omitempty"`
}

func gridToDTO(r raster.Raster) GridDTO {
	nr, nc := r.NumRows(), r.NumCols()
	d := GridDTO{Rows: nr, Cols: nc, Values: make([]float64, nr*nc)}
	for j := 0; j < nr; j++ {
		for i := 0; i < nc; i++ {
			d.Values[j*nc+i] = r.Float(j, i)
		}
	}
	if m := r.Mask(); m != nil {
		d.Mask = append([]bool(nil), m...)
	}
	return d
}

func (d GridDTO) grid() (*raster.Float64Grid, error) {
	g, err := raster.NewGridValues(d.Rows, d.Cols, d.Values)
	if err != nil {
		return nil, err
	}
	if d.Mask != nil {
		g.SetMask(append([]bool(nil), d.Mask...))
	}
	return g, nil
}

// ItemDTO is the serialized form of an image item. Exactly the fields
// matching Kind are set.
type ItemDTO struct {
	Kind    string  `json:"kind"`
	Z       float64 `json:"z"`
	Visible bool    `json:"visible"`
	Param   Param   `json:"param"`

	Data GridDTO `json:"data"`

	// Extents of axis-aligned kinds.
	XMin float64 `json:"xmin,omitempty"`
	XMax float64 `json:"xmax,omitempty"`
	YMin float64 `json:"ymin,omitempty"`
	YMax float64 `json:"ymax,omitempty"`

	// Pose of the transformable kind.
	Pose *TrParam `json:"pose,omitempty"`

	// Bin edges of the XY kind.
	XEdges []float64 `json:"xedges,omitempty"`
	YEdges []float64 `json:"yedges,omitempty"`

	// Node positions of the quad grid kind.
	Xs *GridDTO `json:"xs,omitempty"`
	Ys *GridDTO `json:"ys,omitempty"`

	// Masked area records of the masked kind.
	Areas []MaskedArea `json:"areas,omitempty"`

	// Point cloud and binning of the 2D histogram kind.
	PX    []float64    `json:"px,omitempty"`
	PY    []float64    `json:"py,omitempty"`
	PZ    []float64    `json:"pz,omitempty"`
	Hist  *Hist2DParam `json:"hist,omitempty"`
}

// ToDTO captures an item as plain serializable data.
func ToDTO(it Item) (*ItemDTO, error) {
	d := &ItemDTO{Z: it.Z(), Visible: it.Visible()}
	switch im := it.(type) {
	case *MaskedImage:
		d.Kind = KindMaskedImage
		d.Param = im.Param()
		d.Data = gridToDTO(im.Data())
		d.rectExtents(im)
		d.Areas = append([]MaskedArea(nil), im.Masking.Areas()...)
	case *Histogram2D:
		d.Kind = KindHistogram2D
		d.Param = im.Param()
		d.PX = im.x
		d.PY = im.y
		d.PZ = im.z
		d.Hist = &Hist2DParam{
			Param:         im.Param(),
			NXBins:        im.nx,
			NYBins:        im.ny,
			Mode:          im.hparam,
			AutoLut:       im.autoLut,
			BinBackground: im.bg,
		}
	case *MaskedXYImage:
		d.Kind = KindMaskedXYImage
		d.Param = im.Param()
		d.Data = gridToDTO(im.Data())
		d.XEdges = im.XEdges()
		d.YEdges = im.YEdges()
		d.Areas = append([]MaskedArea(nil), im.Masking.Areas()...)
	case *Image:
		d.Kind = KindImage
		d.Param = im.Param()
		d.Data = gridToDTO(im.Data())
		d.rectExtents(im)
	case *XYImage:
		d.Kind = KindXYImage
		d.Param = im.Param()
		d.Data = gridToDTO(im.Data())
		d.XEdges = im.XEdges()
		d.YEdges = im.YEdges()
	case *TrImage:
		d.Kind = KindTrImage
		d.Param = im.Param()
		d.Data = gridToDTO(im.Data())
		pose := im.Pose()
		d.Pose = &pose
	case *QuadGrid:
		d.Kind = KindQuadGrid
		d.Param = im.Param()
		d.Data = gridToDTO(im.Data())
		xs, ys := im.Nodes()
		xd := gridToDTO(xs)
		yd := gridToDTO(ys)
		d.Xs = &xd
		d.Ys = &yd
	default:
		return nil, fmt.Errorf("items: cannot serialize %T", it)
	}
	return d, nil
}

func (d *ItemDTO) rectExtents(it Item) {
	r := it.BoundingRect()
	d.XMin, d.YMin, d.XMax, d.YMax = r.X0, r.Y0, r.X1, r.Y1
}

// FromDTO rebuilds a live item from its serialized form.
func FromDTO(d *ItemDTO) (Item, error) {
	var it Item
	switch d.Kind {
	case KindImage, KindMaskedImage:
		data, err := d.Data.grid()
		if err != nil {
			return nil, err
		}
		rp := RectParam{Param: d.Param, XMin: d.XMin, XMax: d.XMax, YMin: d.YMin, YMax: d.YMax}
		if d.Kind == KindMaskedImage {
			mi := NewMaskedImage(data, rp)
			mi.Masking.SetAreas(append([]MaskedArea(nil), d.Areas...))
			it = mi
		} else {
			it = NewImage(data, rp)
		}
	case KindXYImage, KindMaskedXYImage:
		data, err := d.Data.grid()
		if err != nil {
			return nil, err
		}
		if d.Kind == KindMaskedXYImage {
			mi, err := NewMaskedXYImage(data, d.XEdges, d.YEdges, d.Param)
			if err != nil {
				return nil, err
			}
			mi.Masking.SetAreas(append([]MaskedArea(nil), d.Areas...))
			it = mi
		} else {
			im, err := NewXYImage(data, d.XEdges, d.YEdges, d.Param)
			if err != nil {
				return nil, err
			}
			it = im
		}
	case KindTrImage:
		data, err := d.Data.grid()
		if err != nil {
			return nil, err
		}
		pose := TrParam{Param: d.Param}
		if d.Pose != nil {
			pose = *d.Pose
			pose.Param = d.Param
		}
		it = NewTrImage(data, pose)
	case KindQuadGrid:
		if d.Xs == nil || d.Ys == nil {
			return nil, fmt.Errorf("items: quad grid document without node arrays")
		}
		data, err := d.Data.grid()
		if err != nil {
			return nil, err
		}
		xs, err := d.Xs.grid()
		if err != nil {
			return nil, err
		}
		ys, err := d.Ys.grid()
		if err != nil {
			return nil, err
		}
		qg, err := NewQuadGrid(xs, ys, data, d.Param)
		if err != nil {
			return nil, err
		}
		it = qg
	case KindHistogram2D:
		hp := Hist2DParam{Param: d.Param}
		if d.Hist != nil {
			hp = *d.Hist
			hp.Param = d.Param
		}
		h, err := NewHistogram2D(d.PX, d.PY, d.PZ, hp)
		if err != nil {
			return nil, err
		}
		it = h
	default:
		return nil, fmt.Errorf("items: unknown item kind %q", d.Kind)
	}
	it.SetZ(d.Z)
	it.SetVisible(d.Visible)
	return it, nil
}

// Document is a serializable list of items.
type Document struct {
	Items []*ItemDTO `json:"items"`
}

// Save writes the items of list to w as JSON.
func Save(w io.Writer, list []Item) error {
	doc := Document{}
	for _, it := range list {
		d, err := ToDTO(it)
		if err != nil {
			return err
		}
		doc.Items = append(doc.Items, d)
	}
	return jsonx.Write(&doc, w)
}

// Open reads a JSON document from r and rebuilds its items.
func Open(r io.Reader) ([]Item, error) {
	var doc Document
	if err := jsonx.Read(&doc, r); err != nil {
		return nil, err
	}
	list := make([]Item, 0, len(doc.Items))
	for _, d := range doc.Items {
		it, err := FromDTO(d)
		if err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, nil
}
