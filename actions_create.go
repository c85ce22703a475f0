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
	"seehuhn.de/go/pen/vpath"
)

// updateIndicator moves the indicator to the pointer.  The indicator has
// no handles until the user drags them out.
func (m *Machine) updateIndicator(ev event) {
	c := m.c
	if c.Indicator == nil {
		c.Indicator = vpath.NewAnchor(ev.Local)
		return
	}
	c.Indicator.Position = ev.Local
	c.Indicator.ClearIn()
	c.Indicator.ClearOut()
}

// beginAnchor fixes the position of the next anchor at the press.
func (m *Machine) beginAnchor(ev event) {
	c := m.c
	c.Indicator = vpath.NewAnchor(ev.Local)
	c.DragBase = ev.Pos
	c.HasHover = false
}

// dragHandle sets the handles of the new anchor from the pointer.  The
// handle on the side where the path continues follows the pointer.
func (m *Machine) dragHandle(ev event) {
	c := m.c
	a := c.Indicator
	if a == nil {
		drop(effDragHandle, "no indicator")
		return
	}

	ht := c.cfg.Defaults.HandlerType
	if c.held(c.cfg.Bindings.FreeHandle) {
		ht = vpath.Free
	}
	a.HandlerType = ht

	d := ev.Local.Sub(a.Position)
	if c.Direction == Start {
		a.SetIn(d)
	} else {
		a.SetOut(d)
	}
}

// commitAnchor adds the new anchor to the growing end of the path.
func (m *Machine) commitAnchor() {
	c := m.c
	a := c.Indicator
	if a == nil {
		drop(effCommitAnchor, "no indicator")
		return
	}
	idx := c.Path.Len()
	if c.Direction == Start {
		idx = 0
	}
	c.Path.AddAnchorAt(idx, a)
	m.repl.Insert(idx, a.Record())
	c.Indicator = vpath.NewAnchor(a.Position)
}

func (m *Machine) closePath() {
	c := m.c
	c.Path.Closed = true
	m.repl.SetClosed(true)
	c.Indicator = nil
	c.Selected = nil
	c.HasHover = false
	c.hasPress = false
}

// resume continues creating from the open endpoint h.  The path grows at
// the end where h sits.
func (m *Machine) resume(h vpath.HitResult) {
	c := m.c
	idx := c.Path.IndexOf(h.Point)
	if idx < 0 || c.Path.Closed {
		drop(effResume, "not an open endpoint")
		return
	}
	c.Direction = End
	if idx == 0 && c.Path.Len() > 1 {
		c.Direction = Start
	}
	c.Indicator = vpath.NewAnchor(h.Point.Position)
	c.Selected = nil
	c.HasHover = false
	c.hasPress = false
}

// finalize removes all transient state before the machine stops.
func (m *Machine) finalize() {
	c := m.c
	c.Indicator = nil
	c.Selected = nil
	c.HasHover = false
	c.MarqueeActive = false
	c.hasPress = false
	c.before = nil
	c.saved = nil
	c.marqueeBase = nil
}
