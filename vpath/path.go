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

// Package vpath implements the vector path model edited by the pen tool:
// anchors with coupled Bézier handles, ordered into open or closed paths,
// together with hit-testing and coordinate transforms.
package vpath

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pen/bezier"
	"seehuhn.de/go/pen/raster"
)

// Path is an ordered sequence of anchors.  If Closed is set, an implicit
// segment connects the last anchor back to the first one.  A path with
// fewer than two anchors has no visible geometry.
//
// Anchor coordinates are path-local.  Position, Rotation and Scale place the
// path inside its parent; see [Path.Transform].
//
// A Path is not safe for concurrent use.
type Path struct {
	Anchors []*Anchor
	Closed  bool

	// Position is the translation of the path in parent coordinates.
	Position vec.Vec2

	// Rotation is the rotation in degrees, about the centre of the bounds.
	Rotation float64

	// Scale is the scale factor along each axis.
	Scale vec.Vec2

	xf    transformCache
	probe *raster.Rasteriser
}

// New returns an empty, open path with the identity transform.
func New(anchors ...*Anchor) *Path {
	return &Path{
		Anchors: anchors,
		Scale:   vec.Vec2{X: 1, Y: 1},
	}
}

// Len returns the number of anchors.
func (p *Path) Len() int {
	return len(p.Anchors)
}

// At returns the anchor at index i, or nil if i is out of range.
func (p *Path) At(i int) *Anchor {
	if i < 0 || i >= len(p.Anchors) {
		return nil
	}
	return p.Anchors[i]
}

// IndexOf returns the index of a in the path, or -1.
func (p *Path) IndexOf(a *Anchor) int {
	for i, b := range p.Anchors {
		if a == b {
			return i
		}
	}
	return -1
}

// AddAnchor appends an anchor at the end of the path.
func (p *Path) AddAnchor(a *Anchor) {
	if a == nil {
		return
	}
	p.Anchors = append(p.Anchors, a)
}

// AddAnchorAt inserts an anchor before index i.  Index 0 prepends, which is
// how a path grows backward from its start.  Out-of-range indices are
// ignored.
func (p *Path) AddAnchorAt(i int, a *Anchor) {
	if a == nil || i < 0 || i > len(p.Anchors) {
		return
	}
	p.Anchors = slices.Insert(p.Anchors, i, a)
}

// RemoveAnchorAt removes n anchors starting at index i and returns them.
// The range is clipped to the existing anchors.
func (p *Path) RemoveAnchorAt(i, n int) []*Anchor {
	if i < 0 || i >= len(p.Anchors) || n <= 0 {
		return nil
	}
	end := min(i+n, len(p.Anchors))
	removed := make([]*Anchor, end-i)
	copy(removed, p.Anchors[i:end])
	p.Anchors = slices.Delete(p.Anchors, i, end)
	return removed
}

// NumSegments returns the number of Bézier segments, including the closing
// segment of a closed path.
func (p *Path) NumSegments() int {
	n := len(p.Anchors)
	switch {
	case n < 2:
		return 0
	case p.Closed:
		return n
	default:
		return n - 1
	}
}

// Segment returns the Bézier segment starting at anchor i.  The segment
// with index len(Anchors)-1 of a closed path ends at the first anchor.
func (p *Path) Segment(i int) (bezier.Cubic, bool) {
	if i < 0 || i >= p.NumSegments() {
		return bezier.Cubic{}, false
	}
	a := p.Anchors[i]
	b := p.Anchors[(i+1)%len(p.Anchors)]
	return segmentBetween(a, b), true
}

// segmentBetween builds the cubic from a to b.  An absent handle places
// the control point on the anchor itself.
func segmentBetween(a, b *Anchor) bezier.Cubic {
	c1, _ := a.AbsOut()
	c2, _ := b.AbsIn()
	return bezier.Cubic{P0: a.Position, P1: c1, P2: c2, P3: b.Position}
}

// Bounds returns the bounding box of the control polygon, in path-local
// coordinates.  The control polygon contains the curve.
func (p *Path) Bounds() rect.Rect {
	if len(p.Anchors) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	extend := func(v vec.Vec2) {
		b.LLx = min(b.LLx, v.X)
		b.LLy = min(b.LLy, v.Y)
		b.URx = max(b.URx, v.X)
		b.URy = max(b.URy, v.Y)
	}
	for _, a := range p.Anchors {
		extend(a.Position)
		if h, ok := a.AbsIn(); ok {
			extend(h)
		}
		if h, ok := a.AbsOut(); ok {
			extend(h)
		}
	}
	return b
}

// Data converts the path into a [path.Data] in path-local coordinates.
// Segments without handles become straight lines.
func (p *Path) Data() *path.Data {
	d := &path.Data{}
	if len(p.Anchors) == 0 {
		return d
	}
	d.MoveTo(p.Anchors[0].Position)
	for i := range p.NumSegments() {
		a := p.Anchors[i]
		b := p.Anchors[(i+1)%len(p.Anchors)]
		_, hasOut := a.Out()
		_, hasIn := b.In()
		if !hasOut && !hasIn {
			d.LineTo(b.Position)
			continue
		}
		seg := segmentBetween(a, b)
		d.CubeTo(seg.P1, seg.P2, seg.P3)
	}
	if p.Closed && len(p.Anchors) > 1 {
		d.Close()
	}
	return d
}

// Clone returns a deep copy of the path.  The anchors of the copy are
// independent of the original.
func (p *Path) Clone() *Path {
	c := &Path{
		Anchors:  make([]*Anchor, len(p.Anchors)),
		Closed:   p.Closed,
		Position: p.Position,
		Rotation: p.Rotation,
		Scale:    p.Scale,
	}
	for i, a := range p.Anchors {
		c.Anchors[i] = a.Clone()
	}
	return c
}
