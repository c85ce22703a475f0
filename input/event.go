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

// Package input defines the normalized pointer and keyboard events consumed
// by the pen tool, together with a reference normalizer for raw device
// events and a synchronous subscription stream.
package input

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"seehuhn.de/go/geom/vec"
)

// MouseType is the kind of a pointer event.
type MouseType int

const (
	MouseDown MouseType = iota
	MouseMove
	MouseUp
	MouseWheel
)

func (t MouseType) String() string {
	switch t {
	case MouseDown:
		return "down"
	case MouseMove:
		return "move"
	case MouseUp:
		return "up"
	case MouseWheel:
		return "wheel"
	default:
		return fmt.Sprintf("MouseType(%d)", int(t))
	}
}

// Button identifies a mouse button.
type Button int

const (
	NoButton Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case NoButton:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// KeyType is the kind of a keyboard event.
type KeyType int

const (
	KeyDown KeyType = iota
	KeyUp
)

// Names of the keys the editor reacts to.
const (
	KeyEscape    = "Escape"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeyEnter     = "Enter"
)

// Modifiers is a set of modifier keys.
type Modifiers uint8

const (
	Shift Modifiers = 1 << iota
	Alt
	Ctrl
	Meta
)

var modifierNames = []struct {
	m    Modifiers
	name string
}{
	{Shift, "shift"},
	{Alt, "alt"},
	{Ctrl, "ctrl"},
	{Meta, "meta"},
}

// Has reports whether all modifiers in x are held.  The empty set is held
// trivially.
func (m Modifiers) Has(x Modifiers) bool {
	return m&x == x
}

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, n := range modifierNames {
		if m&n.m != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// MarshalText implements [encoding.TextMarshaler].
func (m Modifiers) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The text is a "+"-separated list such as "shift+alt".
func (m *Modifiers) UnmarshalText(text []byte) error {
	var res Modifiers
	for _, part := range strings.Split(string(text), "+") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "shift":
			res |= Shift
		case "alt", "option":
			res |= Alt
		case "ctrl", "control":
			res |= Ctrl
		case "meta", "cmd", "super":
			res |= Meta
		case "none", "":
		default:
			return fmt.Errorf("unknown modifier %q", part)
		}
	}
	*m = res
	return nil
}

// Mouse describes a pointer event.  Coordinates are in the viewport
// coordinate system.
type Mouse struct {
	X, Y    float64
	Type    MouseType
	Trigger Button
}

// Pos returns the pointer position as a vector.
func (m *Mouse) Pos() vec.Vec2 {
	return vec.Vec2{X: m.X, Y: m.Y}
}

// Key describes a keyboard event.
type Key struct {
	Type    KeyType
	Trigger string
}

// Dragging is attached to pointer events while a button is held and the
// pointer has left the dead zone around the press position.
type Dragging struct {
	// Begin is the pointer position at button press.
	Begin vec.Vec2

	// Offset is the total displacement since Begin.
	Offset vec.Vec2

	// Delta is the displacement since the previous event.
	Delta vec.Vec2
}

// Event is a normalized input event.  Exactly one of Mouse and Key is set.
type Event struct {
	Mouse    *Mouse
	Key      *Key
	Dragging *Dragging

	// Modifiers holds the modifier keys down at the time of the event.
	Modifiers Modifiers

	// DownKeys lists the non-modifier keys which are held.
	DownKeys []string

	// DownMouse lists the mouse buttons which are held.
	DownMouse []Button

	// IsDoubleClick is set on the second MouseDown of a double click.
	IsDoubleClick bool

	Time time.Time
}

// IsMouse reports whether e is a pointer event of one of the given types.
// Without arguments, every pointer event matches.
func (e *Event) IsMouse(types ...MouseType) bool {
	if e.Mouse == nil {
		return false
	}
	return len(types) == 0 || slices.Contains(types, e.Mouse.Type)
}

// IsKeyDown reports whether e is a key press of one of the named keys.
func (e *Event) IsKeyDown(names ...string) bool {
	if e.Key == nil || e.Key.Type != KeyDown {
		return false
	}
	return len(names) == 0 || slices.Contains(names, e.Key.Trigger)
}

// ButtonHeld reports whether any mouse button is held.
func (e *Event) ButtonHeld() bool {
	return len(e.DownMouse) > 0
}

func (e Event) String() string {
	var b strings.Builder
	switch {
	case e.Mouse != nil:
		fmt.Fprintf(&b, "mouse %s %s (%g,%g)", e.Mouse.Type, e.Mouse.Trigger, e.Mouse.X, e.Mouse.Y)
	case e.Key != nil:
		t := "down"
		if e.Key.Type == KeyUp {
			t = "up"
		}
		fmt.Fprintf(&b, "key %s %s", t, e.Key.Trigger)
	default:
		b.WriteString("empty")
	}
	if e.Dragging != nil {
		fmt.Fprintf(&b, " drag(%g,%g)", e.Dragging.Offset.X, e.Dragging.Offset.Y)
	}
	if e.IsDoubleClick {
		b.WriteString(" double")
	}
	if e.Modifiers != 0 {
		b.WriteString(" [" + e.Modifiers.String() + "]")
	}
	return b.String()
}
