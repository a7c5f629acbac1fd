// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package items

import "strings"

// Capability is a bitmask describing what an image item supports.
// Tools test capabilities instead of concrete types, so new item kinds
// compose from existing behaviors without being added to type lists.
type Capability uint32

const (
	// CanSelect marks items that participate in selection.
	CanSelect Capability = 1 << iota

	// CanMove marks items whose position can be dragged.
	CanMove

	// CanResize marks items with adjustable extents.
	CanResize

	// CanRotate marks items supporting rotation.
	CanRotate

	// CanColormap marks items rendered through a LUT whose colormap and
	// range can be adjusted by contrast tools.
	CanColormap

	// CanExtractSection marks items cross-section panels can read.
	CanExtractSection

	// CanExportROI marks items whose pixels can be resampled into a
	// rectangular region of interest for export and assembly. Items on
	// non-uniform or curvilinear grids do not set it.
	CanExportROI

	// CanMask marks items supporting masked areas.
	CanMask
)

var capNames = []struct {
	c    Capability
	name string
}{
	{CanSelect, "select"},
	{CanMove, "move"},
	{CanResize, "resize"},
	{CanRotate, "rotate"},
	{CanColormap, "colormap"},
	{CanExtractSection, "section"},
	{CanExportROI, "exportroi"},
	{CanMask, "mask"},
}

func (c Capability) String() string {
	var names []string
	for _, cn := range capNames {
		if c&cn.c != 0 {
			names = append(names, cn.name)
		}
	}
	return strings.Join(names, "|")
}

// Has reports whether all bits of q are set.
func (c Capability) Has(q Capability) bool { return c&q == q }
