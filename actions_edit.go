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


package pen

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pen/bezier"
	"seehuhn.de/go/pen/vpath"
)

// press records the target of a press and updates the selection.  Handles
// are always selected on their own.
func (m *Machine) press(ev event) {
	c := m.c
	h := ev.Hit
	c.press, c.hasPress = h, true
	c.DragBase = ev.Pos
	c.pressWasSelected = isSelected(c, h)

	switch {
	case h.IsHandle():
		c.Selected = []vpath.HitResult{h}
	case c.pressWasSelected:
		// keep the selection, so that it can be dragged as a whole
	case multiSelect(c):
		c.Selected = slices.DeleteFunc(c.Selected, vpath.HitResult.IsHandle)
		c.Selected = append(c.Selected, h)
	default:
		c.Selected = []vpath.HitResult{h}
	}
}

// insertAnchor splits the segment under the pointer and selects the new
// anchor.
func (m *Machine) insertAnchor(ev event) {
	c := m.c
	a, idx, ok := c.Path.InsertAnchor(ev.Hit)
	if !ok {
		drop(effInsertAnchor, "stale stroke hit")
		c.hasPress = false
		return
	}

	n := c.Path.Len()
	prev, next := (idx+n-1)%n, (idx+1)%n
	m.repl.Insert(idx, a.Record())
	m.repl.Update(prev, c.Path.At(prev).Record())
	if next != prev {
		m.repl.Update(next, c.Path.At(next).Record())
	}

	c.reindex()
	h, _ := c.Path.AnchorHit(idx)
	c.press, c.hasPress = h, true
	c.pressWasSelected = false
	c.DragBase = ev.Pos
	if multiSelect(c) {
		c.Selected = slices.DeleteFunc(c.Selected, vpath.HitResult.IsHandle)
		c.Selected = append(c.Selected, h)
	} else {
		c.Selected = []vpath.HitResult{h}
	}
}

// selectAll selects every anchor.  Used for presses on the fill.
func (m *Machine) selectAll(ev event) {
	c := m.c
	c.Selected = nil
	for i := range c.Path.Len() {
		h, _ := c.Path.AnchorHit(i)
		c.Selected = append(c.Selected, h)
	}
	c.press, c.hasPress = ev.Hit, true
	c.pressWasSelected = false
	c.DragBase = ev.Pos
}

func (m *Machine) deselect() {
	c := m.c
	if k := c.indexOfSelected(c.press); k >= 0 {
		c.Selected = slices.Delete(c.Selected, k, k+1)
	}
}

// toggleHandler switches the pressed anchor between a corner without
// handles and a smooth anchor with mirrored handles.  The new handles
// follow the direction from the previous to the next anchor.
func (m *Machine) toggleHandler() {
	c := m.c
	a := c.press.Point
	i := c.Path.IndexOf(a)
	if i < 0 {
		drop(effToggleHandler, "anchor gone")
		return
	}

	if a.HasHandles() {
		a.ClearIn()
		a.ClearOut()
	} else {
		h, _ := c.Path.AnchorHit(i)
		prev, next := h.Ends[0], h.Ends[1]
		if prev == a {
			drop(effToggleHandler, "no neighbours")
			return
		}
		a.HandlerType = vpath.Mirror
		switch {
		case prev != next:
			a.SetOut(bezier.Div(next.Position.Sub(prev.Position), 4))
		case i == 0:
			a.SetOut(bezier.Div(next.Position.Sub(a.Position), 3))
		default:
			a.SetIn(bezier.Div(prev.Position.Sub(a.Position), 3))
		}
	}
	m.repl.Update(i, a.Record())
	c.reindex()
}

// beginAdjust remembers the selected anchors, so that the drag can be
// applied relative to the original positions and can be reverted.
func (m *Machine) beginAdjust() {
	c := m.c
	c.before = make(map[*vpath.Anchor]vpath.AnchorRecord)
	for _, h := range c.Selected {
		if h.Point != nil && c.Path.IndexOf(h.Point) >= 0 {
			c.before[h.Point] = h.Point.Record()
		}
	}
	c.saved = slices.Clone(c.Selected)
	c.pulling = false
}

// adjust applies a drag step to the selection.
//
// With the pull-handle modifier held, a single corner anchor is not moved
// while the pointer is still at its original position.  Instead a new
// handle is pulled out of it.
func (m *Machine) adjust(ev event) {
	c := m.c
	if h, ok := c.selectedHandle(); ok {
		m.adjustHandle(h, ev)
		return
	}
	drag := ev.In.Dragging
	if drag == nil {
		drop(effAdjust, "not dragging")
		return
	}

	anchors := c.selectedAnchors()
	if len(anchors) == 1 && c.held(c.cfg.Bindings.PullHandle) {
		a := anchors[0]
		orig, ok := c.before[a]
		corner := orig.In == vec.Vec2{} && orig.Out == vec.Vec2{}
		if ok && corner &&
			bezier.Distance(ev.Pos, c.Path.ToParentPoint(orig.Position)) <= c.tolerance() {
			m.pullHandle(a, orig, ev)
			return
		}
	}

	off := c.Path.ToLocalVector(drag.Offset)
	for _, a := range anchors {
		if orig, ok := c.before[a]; ok {
			a.Position = orig.Position.Add(off)
		}
	}
}

// pullHandle turns the drag of corner anchor a into the drag of a new
// handle.
func (m *Machine) pullHandle(a *vpath.Anchor, orig vpath.AnchorRecord, ev event) {
	c := m.c
	a.Position = orig.Position
	i := c.Path.IndexOf(a)
	h, _ := c.Path.AnchorHit(i)
	h.Kind = vpath.HitOutHandler
	if n := c.Path.Len(); !c.Path.Closed && n > 1 && i == n-1 {
		h.Kind = vpath.HitInHandler
	}
	a.HandlerType = c.cfg.Defaults.HandlerType
	c.Selected = []vpath.HitResult{h}
	c.pulling = true
	m.adjustHandle(h, ev)
}

// adjustHandle moves the handle h to the pointer.  With the free-handle
// modifier held, the handle is decoupled from its opposite.
func (m *Machine) adjustHandle(h vpath.HitResult, ev event) {
	c := m.c
	a := h.Point
	if a == nil {
		return
	}
	if !c.pulling && c.held(c.cfg.Bindings.FreeHandle) {
		a.HandlerType = vpath.Free
	}
	d := ev.Local.Sub(a.Position)
	if h.Kind == vpath.HitInHandler {
		a.SetIn(d)
	} else {
		a.SetOut(d)
	}
}

// commitAdjust replicates every anchor changed by the drag.
func (m *Machine) commitAdjust() {
	c := m.c
	for i, a := range c.Path.Anchors {
		orig, ok := c.before[a]
		if ok && a.Record() != orig {
			m.repl.Update(i, a.Record())
		}
	}
	c.before = nil
	c.saved = nil
	c.pulling = false
	c.reindex()
}

func (m *Machine) revertAdjust() {
	c := m.c
	for a, orig := range c.before {
		a.SetRecord(orig)
	}
	c.Selected = c.saved
	c.before = nil
	c.saved = nil
	c.pulling = false
	c.reindex()
}

// beginMarquee starts a selection rectangle.
//
// The selection during the drag is the base selection XOR the anchors
// inside the rectangle.  With the multi-select modifier the base is the
// previous selection (handles excluded).  Without it the base is empty, so
// a plain marquee selects exactly the anchors inside and the previous
// selection is dropped.
func (m *Machine) beginMarquee(ev event) {
	c := m.c
	c.saved = slices.Clone(c.Selected)
	c.marqueeBase = nil
	if multiSelect(c) {
		c.marqueeBase = slices.DeleteFunc(slices.Clone(c.Selected), vpath.HitResult.IsHandle)
	}
	c.DragBase = ev.Pos
	c.hasPress = false
	c.HasHover = false
	c.Marquee = rect.Rect{LLx: ev.Pos.X, LLy: ev.Pos.Y, URx: ev.Pos.X, URy: ev.Pos.Y}
	c.MarqueeActive = true
	c.Selected = slices.Clone(c.marqueeBase)
}

// updateMarquee sets the selection to the symmetric difference of the
// base selection and the anchors inside the rectangle.
func (m *Machine) updateMarquee(ev event) {
	c := m.c
	if !c.MarqueeActive {
		return
	}
	c.Marquee = rect.Rect{
		LLx: math.Min(c.DragBase.X, ev.Pos.X),
		LLy: math.Min(c.DragBase.Y, ev.Pos.Y),
		URx: math.Max(c.DragBase.X, ev.Pos.X),
		URy: math.Max(c.DragBase.Y, ev.Pos.Y),
	}

	sel := slices.Clone(c.marqueeBase)
	for _, i := range c.Path.AnchorsIn(c.Marquee) {
		h, _ := c.Path.AnchorHit(i)
		k := slices.IndexFunc(sel, func(s vpath.HitResult) bool {
			return sameTarget(s, h)
		})
		if k >= 0 {
			sel = slices.Delete(sel, k, k+1)
		} else {
			sel = append(sel, h)
		}
	}
	c.Selected = sel
}

func (m *Machine) endMarquee() {
	c := m.c
	c.MarqueeActive = false
	c.marqueeBase = nil
	c.saved = nil
}

func (m *Machine) cancelMarquee() {
	c := m.c
	c.Selected = c.saved
	c.MarqueeActive = false
	c.marqueeBase = nil
	c.saved = nil
	c.reindex()
}

// deleteSelection removes the selected anchors.  If a single handle is
// selected, only that handle is removed.
func (m *Machine) deleteSelection() {
	c := m.c
	p := c.Path

	if h, ok := c.selectedHandle(); ok {
		a := h.Point
		i := p.IndexOf(a)
		if i < 0 {
			c.Selected = nil
			drop(effDeleteSelection, "anchor gone")
			return
		}
		if h.Kind == vpath.HitInHandler {
			a.ClearIn()
		} else {
			a.ClearOut()
		}
		m.repl.Update(i, a.Record())
		hit, _ := p.AnchorHit(i)
		c.Selected = []vpath.HitResult{hit}
		return
	}

	var idx []int
	for _, a := range c.selectedAnchors() {
		if i := p.IndexOf(a); i >= 0 && !slices.Contains(idx, i) {
			idx = append(idx, i)
		}
	}
	slices.Sort(idx)
	slices.Reverse(idx)
	for _, i := range idx {
		p.RemoveAnchorAt(i, 1)
		m.repl.Remove(i, 1)
	}
	if p.Closed && p.Len() < 2 {
		p.Closed = false
		m.repl.SetClosed(false)
	}
	c.Selected = nil
	c.HasHover = false
	c.hasPress = false
}
