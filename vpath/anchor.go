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
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pen/bezier"
)

// HandlerType describes how the two handles of an anchor are coupled.
type HandlerType int

const (
	// None is used for anchors without handles.
	None HandlerType = iota

	// Free handles move independently.
	Free

	// Mirror forces the opposite handle to the exact negation of the handle
	// being set.
	Mirror

	// Align mirrors the direction of the handle being set, but keeps the
	// length of the opposite handle.
	Align
)

func (h HandlerType) String() string {
	switch h {
	case None:
		return "none"
	case Free:
		return "free"
	case Mirror:
		return "mirror"
	case Align:
		return "align"
	default:
		return fmt.Sprintf("HandlerType(%d)", int(h))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (h HandlerType) MarshalText() ([]byte, error) {
	if h < None || h > Align {
		return nil, fmt.Errorf("invalid handler type %d", int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (h *HandlerType) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "none", "":
		*h = None
	case "free":
		*h = Free
	case "mirror":
		*h = Mirror
	case "align":
		*h = Align
	default:
		return fmt.Errorf("unknown handler type %q", text)
	}
	return nil
}

// Anchor is a point on a vector path, with optional incoming and outgoing
// handles.
//
// Handles are stored as offsets relative to Position, so that moving the
// anchor moves its handles along.  The zero offset is the sentinel for an
// absent handle: a handle which is set to exactly (0, 0) does not exist.
type Anchor struct {
	// Position is the on-curve point, in path-local coordinates.
	Position vec.Vec2

	// HandlerType governs how SetIn and SetOut update the opposite handle.
	HandlerType HandlerType

	// Radius is the corner radius associated with the anchor.
	Radius float64

	in, out vec.Vec2
}

// NewAnchor returns a handle-less anchor at the given position.
func NewAnchor(pos vec.Vec2) *Anchor {
	return &Anchor{Position: pos}
}

// In returns the incoming handle offset.  The second return value is false
// if the anchor has no incoming handle.
func (a *Anchor) In() (vec.Vec2, bool) {
	return a.in, !isZero(a.in)
}

// Out returns the outgoing handle offset.  The second return value is false
// if the anchor has no outgoing handle.
func (a *Anchor) Out() (vec.Vec2, bool) {
	return a.out, !isZero(a.out)
}

// HasHandles reports whether at least one handle is present.
func (a *Anchor) HasHandles() bool {
	return !isZero(a.in) || !isZero(a.out)
}

// AbsIn returns the absolute position of the incoming handle.
func (a *Anchor) AbsIn() (vec.Vec2, bool) {
	if isZero(a.in) {
		return a.Position, false
	}
	return a.Position.Add(a.in), true
}

// AbsOut returns the absolute position of the outgoing handle.
func (a *Anchor) AbsOut() (vec.Vec2, bool) {
	if isZero(a.out) {
		return a.Position, false
	}
	return a.Position.Add(a.out), true
}

// SetIn sets the incoming handle offset and updates the outgoing handle
// according to the anchor's HandlerType.  Setting the zero vector is
// equivalent to ClearIn.
func (a *Anchor) SetIn(v vec.Vec2) {
	if isZero(v) {
		a.ClearIn()
		return
	}
	a.in = v
	a.out = a.couple(v, a.out)
}

// SetOut sets the outgoing handle offset and updates the incoming handle
// according to the anchor's HandlerType.  Setting the zero vector is
// equivalent to ClearOut.
func (a *Anchor) SetOut(v vec.Vec2) {
	if isZero(v) {
		a.ClearOut()
		return
	}
	a.out = v
	a.in = a.couple(v, a.in)
}

// couple returns the new value of the handle opposite to v.
func (a *Anchor) couple(v, opposite vec.Vec2) vec.Vec2 {
	switch a.HandlerType {
	case None:
		a.HandlerType = Free
	case Mirror:
		return bezier.Mirror(v)
	case Align:
		length := v.Length()
		if !isZero(opposite) {
			length = opposite.Length()
		}
		return bezier.MirrorAngle(v, length)
	}
	return opposite
}

// ClearIn removes the incoming handle.  The HandlerType is demoted to Free
// if the outgoing handle remains, and to None otherwise.
func (a *Anchor) ClearIn() {
	a.in = vec.Vec2{}
	a.demote(a.out)
}

// ClearOut removes the outgoing handle.  The HandlerType is demoted to Free
// if the incoming handle remains, and to None otherwise.
func (a *Anchor) ClearOut() {
	a.out = vec.Vec2{}
	a.demote(a.in)
}

func (a *Anchor) demote(remaining vec.Vec2) {
	if isZero(remaining) {
		a.HandlerType = None
	} else {
		a.HandlerType = Free
	}
}

// setHandles stores both offsets without applying any coupling.
func (a *Anchor) setHandles(in, out vec.Vec2) {
	a.in = in
	a.out = out
}

// Clone returns a deep copy of a which shares no state with the original.
func (a *Anchor) Clone() *Anchor {
	c := *a
	return &c
}

// NearPoint reports whether p lies within tol of the anchor position.
//
// Callers which work with a fixed tolerance in screen pixels must divide it
// by the current viewport scale, so that the hit area does not depend on the
// zoom level.
func (a *Anchor) NearPoint(p vec.Vec2, tol float64) bool {
	return bezier.Distance(a.Position, p) <= tol
}

// NearIn reports whether p lies within tol of the incoming handle.
// It is always false if the anchor has no incoming handle.
func (a *Anchor) NearIn(p vec.Vec2, tol float64) bool {
	h, ok := a.AbsIn()
	return ok && bezier.Distance(h, p) <= tol
}

// NearOut reports whether p lies within tol of the outgoing handle.
// It is always false if the anchor has no outgoing handle.
func (a *Anchor) NearOut(p vec.Vec2, tol float64) bool {
	h, ok := a.AbsOut()
	return ok && bezier.Distance(h, p) <= tol
}

// AnchorRecord is the serialized form of an [Anchor].
// Absent handles are stored as zero vectors.
type AnchorRecord struct {
	Position    vec.Vec2    `json:"position" yaml:"position"`
	In          vec.Vec2    `json:"in" yaml:"in"`
	Out         vec.Vec2    `json:"out" yaml:"out"`
	HandlerType HandlerType `json:"handlerType" yaml:"handlerType"`
	Radius      float64     `json:"radius,omitempty" yaml:"radius,omitempty"`
}

// Record returns the serialized form of the anchor.
func (a *Anchor) Record() AnchorRecord {
	return AnchorRecord{
		Position:    a.Position,
		In:          a.in,
		Out:         a.out,
		HandlerType: a.HandlerType,
		Radius:      a.Radius,
	}
}

// FromRecord creates an anchor from its serialized form.
// The handles are restored verbatim, without coupling.
func FromRecord(r AnchorRecord) *Anchor {
	a := &Anchor{Position: r.Position, HandlerType: r.HandlerType, Radius: r.Radius}
	a.setHandles(r.In, r.Out)
	return a
}

// SetRecord overwrites a with the contents of r, keeping the pointer
// identity.  The handles are restored verbatim, without coupling.
func (a *Anchor) SetRecord(r AnchorRecord) {
	a.Position = r.Position
	a.HandlerType = r.HandlerType
	a.Radius = r.Radius
	a.setHandles(r.In, r.Out)
}

func isZero(v vec.Vec2) bool {
	return v == vec.Vec2{}
}
