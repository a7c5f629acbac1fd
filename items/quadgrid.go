// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import (
	"image"

	"github.com/pixplot/pixplot/coords"
	"github.com/pixplot/pixplot/raster"
	"github.com/pixplot/pixplot/scaler"
)

// QuadGrid is an image on a curvilinear grid: same-shape node arrays
// give the plot position and the value of every node, and the cells
// between adjacent nodes render as filled quadrilaterals. The grid has
// no rectangular pixel structure, so it supports neither ROI export nor
// cross sections.
type QuadGrid struct {
	BaseImage

	xs, ys raster.Raster

	// ShowGrid strokes the cell boundaries.
	ShowGrid bool

	// GridColor is the packed ARGB boundary color; zero means opaque
	// black.
	GridColor uint32
}

// NewQuadGrid builds a quad grid item. xs, ys and zs must have the
// same shape with at least 2x2 nodes.
func NewQuadGrid(xs, ys, zs raster.Raster, param Param) (*QuadGrid, error) {
	nr, nc := zs.NumRows(), zs.NumCols()
	if xs.NumRows() != nr || xs.NumCols() != nc || ys.NumRows() != nr || ys.NumCols() != nc {
		return nil, scaler.ErrEdgeCount
	}
	if nr < 2 || nc < 2 {
		return nil, scaler.ErrDegenerateRegion
	}
	qg := &QuadGrid{
		BaseImage: newBaseImage(param, zs, CanSelect|CanColormap),
		xs:        xs,
		ys:        ys,
	}
	xmin, xmax, err := raster.Range(xs)
	if err != nil {
		return nil, err
	}
	ymin, ymax, err := raster.Range(ys)
	if err != nil {
		return nil, err
	}
	qg.SetRect(coords.NewRect(xmin, ymin, xmax, ymax))
	return qg, nil
}

// Nodes returns the node position arrays.
func (qg *QuadGrid) Nodes() (xs, ys raster.Raster) { return qg.xs, qg.ys }

// SetData replaces the value buffer. The new buffer must match the
// node-array shape; on mismatch the item keeps its previous buffer
// and an error is returned.
func (qg *QuadGrid) SetData(data raster.Raster) error {
	if data.NumRows() != qg.xs.NumRows() || data.NumCols() != qg.xs.NumCols() {
		return scaler.ErrEdgeCount
	}
	qg.BaseImage.SetData(data)
	return nil
}

// Render draws the visible part of the grid into pm.
func (qg *QuadGrid) Render(pm *scaler.Pixmap, xmap, ymap coords.ViewMap) error {
	r := qg.BoundingRect()
	xd0 := int(coords.PixelRound(xmap.Transform(r.X0), coords.TopLeft))
	yd0 := int(coords.PixelRound(ymap.Transform(r.Y0), coords.TopLeft))
	xd1 := int(coords.PixelRound(xmap.Transform(r.X1), coords.BottomRight))
	yd1 := int(coords.PixelRound(ymap.Transform(r.Y1), coords.BottomRight))
	dstRect := image.Rect(xd0, yd0, xd1, yd1)
	gc := qg.GridColor
	if gc == 0 {
		gc = scaler.PackARGB(255, 0, 0, 0)
	}
	_, err := scaler.ScaleQuads(qg.xs, qg.ys, qg.renderData(), r, pm, dstRect,
		qg.lut.Levels(), qg.interpSpec(), qg.ShowGrid, gc)
	return err
}
