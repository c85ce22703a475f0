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

// InsertAnchor inserts the detached anchor of a stroke hit into the path,
// without changing the shape of the curve.
//
// The segment is split at the hit parameter t: the new anchor receives the
// two tangent points of the split as its handles, and the adjoining handles
// of the neighbouring anchors are scaled by t and 1-t respectively.
// Neighbours in Mirror mode are demoted to Align, since their handle
// lengths no longer agree.
//
// The function returns the inserted anchor and its index.  If the hit does
// not describe an interior point of a current segment of p, the path is left
// unchanged and the last return value is false.
func (p *Path) InsertAnchor(hit HitResult) (*Anchor, int, bool) {
	if hit.Kind != HitStroke || hit.Point == nil {
		return nil, -1, false
	}
	seg, ok := p.Segment(hit.CurveIndex)
	if !ok {
		return nil, -1, false
	}
	t := hit.T
	if t <= 0 || t >= 1 {
		return nil, -1, false
	}
	i := hit.CurveIndex
	prev := p.Anchors[i]
	next := p.Anchors[(i+1)%len(p.Anchors)]
	if hit.Ends[0] != prev || hit.Ends[1] != next {
		// the path has changed since the hit test
		return nil, -1, false
	}

	pos := seg.At(t)
	before, after := seg.Tangents(t)

	a := hit.Point
	a.Position = pos
	a.setHandles(before.Sub(pos), after.Sub(pos))
	_, hasIn := a.In()
	_, hasOut := a.Out()
	switch {
	case hasIn && hasOut:
		a.HandlerType = Align
	case hasIn || hasOut:
		a.HandlerType = Free
	default:
		a.HandlerType = None
	}

	if out, ok := prev.Out(); ok {
		prev.out = out.Mul(t)
		if prev.HandlerType == Mirror {
			prev.HandlerType = Align
		}
	}
	if in, ok := next.In(); ok {
		next.in = in.Mul(1 - t)
		if next.HandlerType == Mirror {
			next.HandlerType = Align
		}
	}

	p.AddAnchorAt(i+1, a)
	return a, i + 1, true
}
