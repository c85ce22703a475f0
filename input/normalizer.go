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

package input

import (
	"math"
	"slices"
	"time"

	"seehuhn.de/go/geom/vec"
)

// RawKind is the kind of a raw device event.
type RawKind int

const (
	RawMove RawKind = iota
	RawDown
	RawUp
	RawWheel
	RawKeyDown
	RawKeyUp
)

// Raw is an unprocessed device event, as delivered by a windowing system.
type Raw struct {
	Kind      RawKind
	X, Y      float64
	Button    Button
	Key       string
	Modifiers Modifiers
	Time      time.Time
}

// Normalizer turns raw device events into normalized events.  It tracks the
// held buttons and keys, classifies pointer motion with a held button as a
// drag once it leaves the dead zone, and marks double clicks.
//
// A Normalizer is not safe for concurrent use.
type Normalizer struct {
	// DeadZone is the distance the pointer must travel, with a button
	// held, before the motion counts as a drag.
	DeadZone float64

	// DoubleClickInterval is the maximum time between the two presses of
	// a double click.
	DoubleClickInterval time.Duration

	// DoubleClickDistance is the maximum distance between the two presses
	// of a double click.
	DoubleClickDistance float64

	buttons []Button
	keys    []string

	start    vec.Vec2 // press position
	last     vec.Vec2 // previous pointer position
	dragging bool

	lastPress    time.Time
	lastPressPos vec.Vec2
	lastDouble   bool // the previous press completed a double click
}

// NewNormalizer returns a Normalizer with the given thresholds.
func NewNormalizer(deadZone float64, interval time.Duration, distance float64) *Normalizer {
	return &Normalizer{
		DeadZone:            deadZone,
		DoubleClickInterval: interval,
		DoubleClickDistance: distance,
	}
}

// Normalize converts a raw event.  The second return value is false if the
// raw event carries no information, for example a repeated release.
func (n *Normalizer) Normalize(r Raw) (Event, bool) {
	pos := vec.Vec2{X: r.X, Y: r.Y}
	ev := Event{
		Modifiers: r.Modifiers,
		Time:      r.Time,
	}

	switch r.Kind {
	case RawKeyDown, RawKeyUp:
		kt := KeyDown
		if r.Kind == RawKeyDown {
			if !slices.Contains(n.keys, r.Key) {
				n.keys = append(n.keys, r.Key)
			}
		} else {
			kt = KeyUp
			n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == r.Key })
		}
		ev.Key = &Key{Type: kt, Trigger: r.Key}

	case RawDown:
		if slices.Contains(n.buttons, r.Button) {
			return Event{}, false
		}
		first := len(n.buttons) == 0
		n.buttons = append(n.buttons, r.Button)
		if first {
			n.start = pos
			n.last = pos
			n.dragging = false
			ev.IsDoubleClick = n.isDoubleClick(r.Time, pos)
		}
		ev.Mouse = &Mouse{X: r.X, Y: r.Y, Type: MouseDown, Trigger: r.Button}

	case RawUp:
		if !slices.Contains(n.buttons, r.Button) {
			return Event{}, false
		}
		n.buttons = slices.DeleteFunc(n.buttons, func(b Button) bool { return b == r.Button })
		if n.dragging {
			ev.Dragging = n.drag(pos)
		}
		if len(n.buttons) == 0 {
			n.dragging = false
		}
		n.last = pos
		ev.Mouse = &Mouse{X: r.X, Y: r.Y, Type: MouseUp, Trigger: r.Button}

	case RawMove:
		if len(n.buttons) > 0 {
			if !n.dragging {
				d := pos.Sub(n.start)
				if math.Hypot(d.X, d.Y) > n.DeadZone {
					n.dragging = true
				}
			}
			if n.dragging {
				ev.Dragging = n.drag(pos)
			}
		}
		n.last = pos
		ev.Mouse = &Mouse{X: r.X, Y: r.Y, Type: MouseMove, Trigger: NoButton}
		if len(n.buttons) > 0 {
			ev.Mouse.Trigger = n.buttons[0]
		}

	case RawWheel:
		ev.Mouse = &Mouse{X: r.X, Y: r.Y, Type: MouseWheel, Trigger: r.Button}

	default:
		return Event{}, false
	}

	ev.DownKeys = slices.Clone(n.keys)
	ev.DownMouse = slices.Clone(n.buttons)
	return ev, true
}

func (n *Normalizer) drag(pos vec.Vec2) *Dragging {
	return &Dragging{
		Begin:  n.start,
		Offset: pos.Sub(n.start),
		Delta:  pos.Sub(n.last),
	}
}

// isDoubleClick records a press and reports whether it completes a double
// click.  A third press in quick succession starts a new sequence.
func (n *Normalizer) isDoubleClick(t time.Time, pos vec.Vec2) bool {
	double := false
	if !t.IsZero() && !n.lastPress.IsZero() && !n.lastDouble {
		dt := t.Sub(n.lastPress)
		d := pos.Sub(n.lastPressPos)
		double = dt >= 0 && dt <= n.DoubleClickInterval &&
			math.Hypot(d.X, d.Y) <= n.DoubleClickDistance
	}
	n.lastPress = t
	n.lastPressPos = pos
	n.lastDouble = double
	return double
}

// Held reports whether a mouse button is currently held.
func (n *Normalizer) Held() bool {
	return len(n.buttons) > 0
}
