// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colormaps is the colormap catalog: the standard maps plus any
// custom maps loaded from TOML files. The catalog can be frozen once
// configuration is done, after which lookup is lock-free for readers
// and registration fails.
package colormaps

import (
	"fmt"
	"image/color"
	"sort"
	"sync"

	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/colors/colormap"
)

var (
	mu     sync.RWMutex
	custom = map[string]*colormap.Map{}
	frozen bool
)

// ErrFrozen is returned when registering into a frozen catalog.
var ErrFrozen = fmt.Errorf("colormaps: catalog is frozen")

// Get returns the named colormap, looking up custom maps first and the
// standard catalog second.
func Get(name string) (*colormap.Map, error) {
	mu.RLock()
	cm, ok := custom[name]
	mu.RUnlock()
	if ok {
		return cm, nil
	}
	if cm, ok := colormap.AvailableMaps[name]; ok {
		return cm, nil
	}
	return nil, fmt.Errorf("colormaps: no colormap named %q", name)
}

// Default returns the colormap used by freshly created image items.
func Default() *colormap.Map {
	for _, name := range []string{"Viridis", "ColdHot"} {
		if cm, ok := colormap.AvailableMaps[name]; ok {
			return cm
		}
	}
	names := Names()
	cm, _ := Get(names[0])
	return cm
}

// Names returns the sorted names of every available colormap.
func Names() []string {
	mu.RLock()
	names := make([]string, 0, len(custom)+len(colormap.AvailableMaps))
	for name := range custom {
		names = append(names, name)
	}
	mu.RUnlock()
	for name := range colormap.AvailableMaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a custom colormap to the catalog. Registering after
// [Freeze] or shadowing an existing name is an error.
func Register(cm *colormap.Map) error {
	mu.Lock()
	defer mu.Unlock()
	if frozen {
		return ErrFrozen
	}
	if _, ok := custom[cm.Name]; ok {
		return fmt.Errorf("colormaps: colormap %q already registered", cm.Name)
	}
	if _, ok := colormap.AvailableMaps[cm.Name]; ok {
		return fmt.Errorf("colormaps: colormap %q shadows a standard map", cm.Name)
	}
	custom[cm.Name] = cm
	return nil
}

// Freeze makes the catalog immutable. Typically called once application
// configuration has been loaded.
func Freeze() {
	mu.Lock()
	frozen = true
	mu.Unlock()
}

// customFile is the TOML schema of a custom colormap file.
type customFile struct {
	Maps []customMap `toml:"maps"`
}

type customMap struct {
	Name   string   `toml:"name"`
	Colors []string `toml:"colors"`
}

// OpenFile loads custom colormaps from a TOML file of the form
//
//	[[maps]]
//	name = "graybow"
//	colors = ["#000000", "#ff0000", "#ffffff"]
//
// and registers each one. Colors are evenly spaced gradient stops given
// as hex strings.
func OpenFile(filename string) error {
	var cf customFile
	if err := tomlx.Open(&cf, filename); err != nil {
		return err
	}
	for _, m := range cf.Maps {
		cm, err := build(m)
		if err != nil {
			return err
		}
		if err := Register(cm); err != nil {
			return err
		}
	}
	return nil
}

func build(m customMap) (*colormap.Map, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("colormaps: custom colormap without a name")
	}
	if len(m.Colors) < 2 {
		return nil, fmt.Errorf("colormaps: colormap %q needs at least 2 colors", m.Name)
	}
	cs := make([]color.RGBA, len(m.Colors))
	for i, hex := range m.Colors {
		c, err := colors.FromHex(hex)
		if err != nil {
			return nil, fmt.Errorf("colormaps: colormap %q color %d: %w", m.Name, i, err)
		}
		cs[i] = c
	}
	return &colormap.Map{Name: m.Name, Colors: cs}, nil
}
