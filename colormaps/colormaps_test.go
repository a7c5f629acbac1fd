// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colormaps

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/colors/colormap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Freeze is global and irreversible, so the registration life cycle
// runs as one ordered test.
func TestCatalog(t *testing.T) {
	cm, err := Get("ColdHot")
	require.NoError(t, err)
	assert.Equal(t, "ColdHot", cm.Name)

	_, err = Get("no-such-map")
	assert.Error(t, err)

	assert.NotNil(t, Default())
	assert.Contains(t, Names(), "ColdHot")

	own := &colormap.Map{Name: "testramp", Colors: []color.RGBA{
		{0, 0, 0, 255}, {255, 255, 255, 255},
	}}
	require.NoError(t, Register(own))
	got, err := Get("testramp")
	require.NoError(t, err)
	assert.Same(t, own, got)
	assert.Contains(t, Names(), "testramp")

	// Duplicate and shadowing registrations fail.
	assert.Error(t, Register(&colormap.Map{Name: "testramp"}))
	assert.Error(t, Register(&colormap.Map{Name: "ColdHot"}))

	// Custom file loading.
	path := filepath.Join(t.TempDir(), "maps.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[maps]]
name = "graybow"
colors = ["#000000", "#ff0000", "#ffffff"]
`), 0o666))
	require.NoError(t, OpenFile(path))
	gb, err := Get("graybow")
	require.NoError(t, err)
	require.Len(t, gb.Colors, 3)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, gb.Colors[1])

	// Bad color strings are rejected.
	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte(`
[[maps]]
name = "broken"
colors = ["#000000", "not-a-color"]
`), 0o666))
	assert.Error(t, OpenFile(bad))

	Freeze()
	err = Register(&colormap.Map{Name: "late"})
	assert.ErrorIs(t, err, ErrFrozen)
}
