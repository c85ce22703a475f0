// seehuhn.de/go/pen - interactive vector path editing
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package vpath

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// transformKey holds every input of the composed transform.
type transformKey struct {
	position vec.Vec2
	rotation float64
	scale    vec.Vec2
	bounds   rect.Rect
}

// transformCache stores the composed transform together with its inverse.
type transformCache struct {
	valid bool
	key   transformKey
	m     matrix.Matrix
	inv   matrix.Matrix
	ok    bool // inv is valid, i.e. m is non-singular

	builds int // number of rebuilds, for tests
}

// Transform returns the matrix which maps path-local coordinates to parent
// coordinates: scale first, then rotate about the centre of the (scaled)
// bounds, then translate by Position.
//
// A zero Scale is treated as (1, 1), so that the zero Path is usable.
//
// The matrix is cached.  It is rebuilt exactly when one of Position,
// Rotation, Scale or the bounds of the path has changed since the last call.
func (p *Path) Transform() matrix.Matrix {
	key := transformKey{
		position: p.Position,
		rotation: p.Rotation,
		scale:    p.Scale,
		bounds:   p.Bounds(),
	}
	if p.xf.valid && p.xf.key == key {
		return p.xf.m
	}

	scale := key.scale
	if isZero(scale) {
		scale = vec.Vec2{X: 1, Y: 1}
	}
	cx := (key.bounds.LLx + key.bounds.URx) / 2 * scale.X
	cy := (key.bounds.LLy + key.bounds.URy) / 2 * scale.Y
	m := matrix.Scale(scale.X, scale.Y).
		Translate(-cx, -cy).
		RotateDeg(key.rotation).
		Translate(cx+key.position.X, cy+key.position.Y)

	p.xf.valid = true
	p.xf.key = key
	p.xf.m = m
	// Inv panics on singular matrices.
	p.xf.ok = m[0]*m[3]-m[1]*m[2] != 0
	p.xf.inv = matrix.Matrix{}
	if p.xf.ok {
		p.xf.inv = m.Inv()
	}
	p.xf.builds++
	return m
}

// ToParentPoint maps a path-local point to parent coordinates.
func (p *Path) ToParentPoint(v vec.Vec2) vec.Vec2 {
	return p.Transform().Apply(v)
}

// ToLocalPoint maps a parent point to path-local coordinates.
// If the transform is singular, v is returned unchanged.
func (p *Path) ToLocalPoint(v vec.Vec2) vec.Vec2 {
	p.Transform()
	if !p.xf.ok {
		return v
	}
	return p.xf.inv.Apply(v)
}

// ToLocalVector maps a displacement in parent coordinates to path-local
// coordinates.  Only the linear part of the transform is used.
func (p *Path) ToLocalVector(v vec.Vec2) vec.Vec2 {
	p.Transform()
	if !p.xf.ok {
		return v
	}
	m := p.xf.inv
	m[4], m[5] = 0, 0
	return m.Apply(v)
}
