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
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pen/raster"
)

// HitKind identifies the part of a path found by a hit test.
type HitKind int

const (
	HitAnchor HitKind = iota + 1
	HitInHandler
	HitOutHandler
	HitStroke
	HitFill
)

func (k HitKind) String() string {
	switch k {
	case HitAnchor:
		return "anchor"
	case HitInHandler:
		return "in-handler"
	case HitOutHandler:
		return "out-handler"
	case HitStroke:
		return "stroke"
	case HitFill:
		return "fill"
	default:
		return fmt.Sprintf("HitKind(%d)", int(k))
	}
}

// HitResult describes what a pointer position hits on a path.
//
// For HitAnchor, HitInHandler and HitOutHandler, Point is the existing
// anchor, AnchorIndex its index and Ends its previous and next neighbours.
// For open paths the end anchors have only one neighbour, which is then
// repeated in Ends.
//
// For HitStroke, Point is a new anchor which is not part of the path,
// positioned exactly on the curve at parameter T of segment CurveIndex.
// Ends holds the two anchors bounding the segment.
//
// For HitFill only Location is set.
type HitResult struct {
	Kind        HitKind
	Point       *Anchor
	Ends        [2]*Anchor
	AnchorIndex int
	T           float64
	CurveIndex  int

	// Location is the queried point, in path-local coordinates.
	Location vec.Vec2
}

// IsHandle reports whether the hit refers to one of the handles of an
// anchor.
func (h HitResult) IsHandle() bool {
	return h.Kind == HitInHandler || h.Kind == HitOutHandler
}

// ends returns the neighbours of anchor i.
func (p *Path) ends(i int) [2]*Anchor {
	n := len(p.Anchors)
	switch {
	case n == 1:
		return [2]*Anchor{p.Anchors[0], p.Anchors[0]}
	case p.Closed:
		return [2]*Anchor{p.Anchors[(i+n-1)%n], p.Anchors[(i+1)%n]}
	case i == 0:
		return [2]*Anchor{p.Anchors[1], p.Anchors[1]}
	case i == n-1:
		return [2]*Anchor{p.Anchors[n-2], p.Anchors[n-2]}
	default:
		return [2]*Anchor{p.Anchors[i-1], p.Anchors[i+1]}
	}
}

// AnchorHit returns the result of an anchor hit on anchor i.
func (p *Path) AnchorHit(i int) (HitResult, bool) {
	a := p.At(i)
	if a == nil {
		return HitResult{}, false
	}
	return HitResult{
		Kind:        HitAnchor,
		Point:       a,
		Ends:        p.ends(i),
		AnchorIndex: i,
		CurveIndex:  -1,
		Location:    a.Position,
	}, true
}

// HitAnchorTest finds the first anchor, in path order, within tol of the
// path-local point pt.  There is no ranking by distance: when several
// anchors are close enough, the one with the lowest index wins.
func (p *Path) HitAnchorTest(pt vec.Vec2, tol float64) (HitResult, bool) {
	for i, a := range p.Anchors {
		if a.NearPoint(pt, tol) {
			h, _ := p.AnchorHit(i)
			h.Location = pt
			return h, true
		}
	}
	return HitResult{}, false
}

// HitHandlerTest finds the first handle, in path order, within tol of the
// path-local point pt.  For each anchor the incoming handle is tested
// before the outgoing one.
func (p *Path) HitHandlerTest(pt vec.Vec2, tol float64) (HitResult, bool) {
	for i, a := range p.Anchors {
		var kind HitKind
		switch {
		case a.NearIn(pt, tol):
			kind = HitInHandler
		case a.NearOut(pt, tol):
			kind = HitOutHandler
		default:
			continue
		}
		return HitResult{
			Kind:        kind,
			Point:       a,
			Ends:        p.ends(i),
			AnchorIndex: i,
			CurveIndex:  -1,
			Location:    pt,
		}, true
	}
	return HitResult{}, false
}

// HitPathTest finds the point on the stroke of the path nearest to the
// path-local point pt.  If its distance is at most tol, the result holds a
// new, detached anchor at that curve point, which can be used to insert an
// anchor there.
func (p *Path) HitPathTest(pt vec.Vec2, tol float64) (HitResult, bool) {
	bestDist := math.Inf(1)
	var best HitResult
	for i := range p.NumSegments() {
		seg, _ := p.Segment(i)
		t, onCurve, dist := seg.Closest(pt)
		if dist > tol || dist >= bestDist {
			continue
		}
		bestDist = dist
		best = HitResult{
			Kind:        HitStroke,
			Point:       NewAnchor(onCurve),
			Ends:        [2]*Anchor{p.Anchors[i], p.Anchors[(i+1)%len(p.Anchors)]},
			AnchorIndex: -1,
			T:           t,
			CurveIndex:  i,
			Location:    pt,
		}
	}
	return best, best.Kind == HitStroke
}

// HitFillTest reports whether the path-local point pt lies in the interior
// of the path.  Only closed paths have an interior.  The test uses the
// even-odd rule and the same rasteriser as the preview renderer, so that
// it agrees with what is drawn.
func (p *Path) HitFillTest(pt vec.Vec2) (HitResult, bool) {
	if !p.Closed || len(p.Anchors) < 2 {
		return HitResult{}, false
	}
	b := p.Bounds()
	if pt.X < b.LLx || pt.X > b.URx || pt.Y < b.LLy || pt.Y > b.URy {
		return HitResult{}, false
	}
	if p.probe == nil {
		p.probe = raster.NewRasteriser(rect.Rect{})
	}
	if !p.probe.Contains(p.Data(), pt, raster.EvenOdd) {
		return HitResult{}, false
	}
	return HitResult{
		Kind:        HitFill,
		AnchorIndex: -1,
		CurveIndex:  -1,
		Location:    pt,
	}, true
}

// HitAreaTest reports whether pt lies in the area covered by a closed
// path, counting both the interior and a band of width tol around the
// stroke.
func (p *Path) HitAreaTest(pt vec.Vec2, tol float64) bool {
	if !p.Closed {
		return false
	}
	if _, ok := p.HitFillTest(pt); ok {
		return true
	}
	_, ok := p.HitPathTest(pt, tol)
	return ok
}

// AnchorsIn returns the indices of all anchors whose position, mapped to
// parent coordinates, lies inside r.  The corners of r may be given in any
// order.
func (p *Path) AnchorsIn(r rect.Rect) []int {
	llx, urx := min(r.LLx, r.URx), max(r.LLx, r.URx)
	lly, ury := min(r.LLy, r.URy), max(r.LLy, r.URy)
	var res []int
	for i, a := range p.Anchors {
		pos := p.ToParentPoint(a.Position)
		if pos.X >= llx && pos.X <= urx && pos.Y >= lly && pos.Y <= ury {
			res = append(res, i)
		}
	}
	return res
}

// HitTest combines all hit tests for a point given in parent coordinates.
// The result is the highest-priority hit: handles first, then anchors,
// then the stroke and finally the fill.
//
// tol is in path-local units.  Interactive callers should pass a fixed
// screen-pixel tolerance divided by the viewport scale.
func (p *Path) HitTest(parent vec.Vec2, tol float64) (HitResult, bool) {
	pt := p.ToLocalPoint(parent)
	if h, ok := p.HitHandlerTest(pt, tol); ok {
		return h, true
	}
	if h, ok := p.HitAnchorTest(pt, tol); ok {
		return h, true
	}
	if h, ok := p.HitPathTest(pt, tol); ok {
		return h, true
	}
	return p.HitFillTest(pt)
}

// Transformable is implemented by objects placed in a parent coordinate
// system.
type Transformable interface {
	Transform() matrix.Matrix
	ToLocalPoint(vec.Vec2) vec.Vec2
	ToParentPoint(vec.Vec2) vec.Vec2
}

// AreaBounded is implemented by objects with a bounding box.
type AreaBounded interface {
	Bounds() rect.Rect
}

// Geometry is implemented by objects which can be rendered as a path.
type Geometry interface {
	Data() *path.Data
}

var (
	_ Transformable = (*Path)(nil)
	_ AreaBounded   = (*Path)(nil)
	_ Geometry      = (*Path)(nil)
)
