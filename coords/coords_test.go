// Copyright (c) 2026, The Pixplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coords

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect(t *testing.T) {
	r := NewRect(1, 2, 5, 4)
	assert.Equal(t, 4.0, r.Width())
	assert.Equal(t, 2.0, r.Height())
	assert.False(t, r.IsEmpty())
	assert.True(t, NewRect(1, 1, 1, 5).IsEmpty())

	c := NewRect(5, 4, 1, 2).Canon()
	assert.Equal(t, r, c)

	assert.True(t, r.Contains(3, 3))
	assert.False(t, r.Contains(0, 3))
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 4, 4)
	b := NewRect(2, 2, 6, 6)
	assert.True(t, a.Intersects(b))
	assert.Equal(t, NewRect(2, 2, 4, 4), a.Intersect(b))
	assert.True(t, a.Intersect(NewRect(5, 5, 6, 6)).IsEmpty())
}

func TestPixelRound(t *testing.T) {
	assert.Equal(t, 2, PixelRound(2.7, CenterPixel))
	assert.Equal(t, 2, PixelRound(2.7, TopLeft))
	assert.Equal(t, 3, PixelRound(2.3, BottomRight))
	assert.Equal(t, 3, PixelRound(3.0, BottomRight))
	assert.Equal(t, -3, PixelRound(-2.3, TopLeft))
}

func TestViewMap(t *testing.T) {
	m := NewViewMap(0, 10, 100, 200)
	assert.InDelta(t, 100, m.Transform(0), 1e-12)
	assert.InDelta(t, 150, m.Transform(5), 1e-12)
	assert.InDelta(t, 5, m.InvTransform(150), 1e-12)
}

func TestTransformApply(t *testing.T) {
	tr := Translate(10, 20)
	x, y := tr.Apply(1, 2)
	assert.InDelta(t, 11, x, 1e-12)
	assert.InDelta(t, 22, y, 1e-12)

	x, y = Scale(2, 3).Apply(1, 1)
	assert.InDelta(t, 2, x, 1e-12)
	assert.InDelta(t, 3, y, 1e-12)

	x, y = Rotate(math.Pi / 2).Apply(1, 0)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 1, y, 1e-12)
}

func TestTransformMulOrder(t *testing.T) {
	// Mul applies the right operand first.
	tr := Translate(5, 0).Mul(Scale(2, 2))
	x, y := tr.Apply(1, 1)
	assert.InDelta(t, 7, x, 1e-12)
	assert.InDelta(t, 2, y, 1e-12)
}

func TestTransformInvert(t *testing.T) {
	tr := Translate(3, -1).Mul(Rotate(0.7)).Mul(Scale(2, 0.5))
	inv, ok := tr.Invert()
	assert.True(t, ok)
	x, y := tr.Apply(1.5, -2.5)
	bx, by := inv.Apply(x, y)
	assert.InDelta(t, 1.5, bx, 1e-9)
	assert.InDelta(t, -2.5, by, 1e-9)

	_, ok = Scale(0, 1).Invert()
	assert.False(t, ok)
}
