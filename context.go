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
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pen/config"
	"seehuhn.de/go/pen/input"
	"seehuhn.de/go/pen/vpath"
)

// Direction says at which end of an open path new anchors are added.
type Direction int

// These are the possible growth directions of a path.
const (
	End Direction = iota
	Start
)

func (d Direction) String() string {
	if d == Start {
		return "start"
	}
	return "end"
}

// StateContext holds the data shared by all states of the editing machine.
//
// The exported fields may be read by hosts, for example from a [Renderer].
// They must only be modified through the [Machine].
type StateContext struct {
	// Path is the path being edited.
	Path *vpath.Path

	// Selected lists the selected targets.  The entries are either anchor
	// hits, or a single handle hit.
	Selected []vpath.HitResult

	// DragBase is the pointer position, in parent coordinates, where the
	// current press started.
	DragBase vec.Vec2

	// Direction is the end of the path where new anchors are added.
	Direction Direction

	// Indicator is the anchor which will be added next while creating.
	// It is not part of Path.  Nil outside the Creating phase.
	Indicator *vpath.Anchor

	// Hover is the target under the pointer, valid if HasHover is set.
	Hover    vpath.HitResult
	HasHover bool

	// Marquee is the selection rectangle in parent coordinates, valid
	// while MarqueeActive is set.
	Marquee       rect.Rect
	MarqueeActive bool

	// Modifiers are the modifier keys held during the last event.
	Modifiers input.Modifiers

	cfg   *config.Config
	scale float64

	// press is the target of the current press.
	press    vpath.HitResult
	hasPress bool

	// pressWasSelected records whether the press target was selected
	// before the press.
	pressWasSelected bool

	// before holds the state of the anchors touched by the current drag,
	// for reverting it.
	before map[*vpath.Anchor]vpath.AnchorRecord

	// pulling is set while a handle is pulled out of a corner anchor.
	pulling bool

	// marqueeBase is the selection the marquee is combined with.
	marqueeBase []vpath.HitResult

	// saved is the selection before the current drag or marquee, restored
	// when it is cancelled.
	saved []vpath.HitResult
}

func newStateContext(p *vpath.Path, cfg *config.Config) *StateContext {
	return &StateContext{
		Path:  p,
		cfg:   cfg,
		scale: 1,
	}
}

// tolerance returns the hit tolerance in parent units.
func (c *StateContext) tolerance() float64 {
	return c.cfg.Hit.Tolerance / c.scale
}

// held reports whether all modifiers in m are held.  An empty binding is
// never held.
func (c *StateContext) held(m input.Modifiers) bool {
	return m != 0 && c.Modifiers.Has(m)
}

// selectedAnchors returns the anchors of all anchor entries in the
// selection, in selection order.
func (c *StateContext) selectedAnchors() []*vpath.Anchor {
	var res []*vpath.Anchor
	for _, h := range c.Selected {
		if h.Kind == vpath.HitAnchor && h.Point != nil {
			res = append(res, h.Point)
		}
	}
	return res
}

// selectedHandle returns the selected handle, if the selection consists of
// a single handle.
func (c *StateContext) selectedHandle() (vpath.HitResult, bool) {
	if len(c.Selected) == 1 && c.Selected[0].IsHandle() {
		return c.Selected[0], true
	}
	return vpath.HitResult{}, false
}

// sameTarget reports whether a and b refer to the same selectable target.
func sameTarget(a, b vpath.HitResult) bool {
	return a.Kind == b.Kind && a.Point == b.Point
}

func (c *StateContext) indexOfSelected(h vpath.HitResult) int {
	return slices.IndexFunc(c.Selected, func(s vpath.HitResult) bool {
		return sameTarget(s, h)
	})
}

// activeEnd returns the anchor at the growing end of the path.
func (c *StateContext) activeEnd() *vpath.Anchor {
	n := c.Path.Len()
	if n == 0 {
		return nil
	}
	if c.Direction == Start {
		return c.Path.At(0)
	}
	return c.Path.At(n - 1)
}

// reindex refreshes the anchor indices and neighbours of all selection
// entries after the path changed, dropping entries whose anchor is gone.
func (c *StateContext) reindex() {
	c.Selected = slices.DeleteFunc(c.Selected, func(h vpath.HitResult) bool {
		return c.Path.IndexOf(h.Point) < 0
	})
	for k, h := range c.Selected {
		fresh, _ := c.Path.AnchorHit(c.Path.IndexOf(h.Point))
		fresh.Kind = h.Kind
		c.Selected[k] = fresh
	}
	if c.HasHover && c.Hover.Kind != vpath.HitFill && c.Path.IndexOf(c.Hover.Point) < 0 {
		c.HasHover = false
	}
}
