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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pen/input"
	"seehuhn.de/go/pen/vpath"
)

// EventKind is the type of a classified input event.
type EventKind int

// These are the event kinds seen by the state chart.
const (
	EvInit EventKind = iota
	EvMove
	EvDown
	EvDoubleClick
	EvDrag
	EvUp
	EvEscape
	EvDelete
	EvEnter
	EvTimeout
)

func (k EventKind) String() string {
	switch k {
	case EvInit:
		return "init"
	case EvMove:
		return "move"
	case EvDown:
		return "down"
	case EvDoubleClick:
		return "double-click"
	case EvDrag:
		return "drag"
	case EvUp:
		return "up"
	case EvEscape:
		return "escape"
	case EvDelete:
		return "delete"
	case EvEnter:
		return "enter"
	case EvTimeout:
		return "timeout"
	default:
		return "event?"
	}
}

// event is an input event after classification.
type event struct {
	Kind EventKind
	In   input.Event

	// Pos is the pointer position in parent coordinates, Local the same
	// point in path-local coordinates.
	Pos   vec.Vec2
	Local vec.Vec2

	// Hit is the hit-test result at Pos, valid if HasHit is set.  Drag
	// events are not hit-tested.
	Hit    vpath.HitResult
	HasHit bool
}

// classify turns a normalized input event into an event for the state
// chart.  Events the chart has no use for, like key releases, wheel events
// and secondary buttons, are rejected.
func classify(ie input.Event, c *StateContext) (event, bool) {
	ev := event{In: ie}
	c.Modifiers = ie.Modifiers

	switch {
	case ie.Key != nil:
		if ie.Key.Type != input.KeyDown {
			return ev, false
		}
		switch ie.Key.Trigger {
		case input.KeyEscape:
			ev.Kind = EvEscape
		case input.KeyDelete, input.KeyBackspace:
			ev.Kind = EvDelete
		case input.KeyEnter:
			ev.Kind = EvEnter
		default:
			return ev, false
		}
		return ev, true

	case ie.Mouse != nil:
		m := ie.Mouse
		if m.Trigger != input.NoButton && m.Trigger != input.ButtonLeft {
			return ev, false
		}
		ev.Pos = m.Pos()
		ev.Local = c.Path.ToLocalPoint(ev.Pos)

		switch m.Type {
		case input.MouseMove:
			if ie.Dragging != nil && ie.ButtonHeld() {
				ev.Kind = EvDrag
				return ev, true
			}
			ev.Kind = EvMove
		case input.MouseDown:
			ev.Kind = EvDown
			if ie.IsDoubleClick {
				ev.Kind = EvDoubleClick
			}
		case input.MouseUp:
			ev.Kind = EvUp
		default:
			return ev, false
		}
		ev.Hit, ev.HasHit = c.Path.HitTest(ev.Pos, c.tolerance())
		return ev, true
	}
	return ev, false
}
