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
	"encoding/json"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

const eps = 1e-9

func near(a, b vec.Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestMirrorCoupling(t *testing.T) {
	a := NewAnchor(vec.Vec2{X: 10, Y: 10})
	a.HandlerType = Mirror

	sets := []struct {
		in bool
		v  vec.Vec2
	}{
		{false, vec.Vec2{X: 5, Y: 0}},
		{true, vec.Vec2{X: -3, Y: 7}},
		{false, vec.Vec2{X: 0.5, Y: -12}},
		{true, vec.Vec2{X: 100, Y: 1e-3}},
	}
	for i, s := range sets {
		if s.in {
			a.SetIn(s.v)
		} else {
			a.SetOut(s.v)
		}
		in, _ := a.In()
		out, _ := a.Out()
		if !near(out, in.Mul(-1), eps) {
			t.Errorf("step %d: out=%v is not -in=%v", i, out, in)
		}
		if a.HandlerType != Mirror {
			t.Errorf("step %d: handler type changed to %s", i, a.HandlerType)
		}
	}
}

func TestAlignCoupling(t *testing.T) {
	a := NewAnchor(vec.Vec2{})
	a.HandlerType = Align

	// the opposite handle is absent: its length is seeded from v
	a.SetOut(vec.Vec2{X: 3, Y: 4})
	in, ok := a.In()
	if !ok || !near(in, vec.Vec2{X: -3, Y: -4}, eps) {
		t.Fatalf("seeded in handle: got %v, %t", in, ok)
	}

	// now the in handle keeps its length 5, only the direction changes
	a.SetOut(vec.Vec2{X: 0, Y: 20})
	in, _ = a.In()
	if !near(in, vec.Vec2{X: 0, Y: -5}, eps) {
		t.Errorf("in handle: expected (0,-5), got %v", in)
	}

	a.SetIn(vec.Vec2{X: 1, Y: 0})
	out, _ := a.Out()
	if math.Abs(out.Length()-20) > eps || !near(out, vec.Vec2{X: -20}, eps) {
		t.Errorf("out handle: expected (-20,0), got %v", out)
	}
}

func TestFreeAndNone(t *testing.T) {
	a := NewAnchor(vec.Vec2{})
	if a.HasHandles() {
		t.Fatal("new anchor has handles")
	}

	a.SetIn(vec.Vec2{X: -1, Y: 2})
	if a.HandlerType != Free {
		t.Errorf("setting a handle on a None anchor: got %s, expected free", a.HandlerType)
	}
	if _, ok := a.Out(); ok {
		t.Error("free anchor: out handle was created")
	}

	a.SetOut(vec.Vec2{X: 7, Y: 7})
	in, _ := a.In()
	if in != (vec.Vec2{X: -1, Y: 2}) {
		t.Errorf("free anchor: in handle changed to %v", in)
	}
}

func TestClearHandles(t *testing.T) {
	a := NewAnchor(vec.Vec2{X: 1, Y: 1})
	a.HandlerType = Mirror
	a.SetOut(vec.Vec2{X: 2, Y: 0})

	a.ClearIn()
	if a.HandlerType != Free {
		t.Errorf("clearing one of two handles: got %s, expected free", a.HandlerType)
	}
	if _, ok := a.In(); ok {
		t.Error("in handle still present")
	}

	a.SetOut(vec.Vec2{})
	if a.HandlerType != None {
		t.Errorf("clearing the last handle: got %s, expected none", a.HandlerType)
	}
	if a.HasHandles() {
		t.Error("anchor still has handles")
	}
}

func TestMirrorAngleDegenerate(t *testing.T) {
	a := NewAnchor(vec.Vec2{})
	a.HandlerType = Align
	a.SetOut(vec.Vec2{X: 1e-320})
	in, _ := a.In()
	if math.IsNaN(in.X) || math.IsNaN(in.Y) || math.IsInf(in.X, 0) {
		t.Errorf("degenerate handle produced %v", in)
	}
}

func TestCloneIsolation(t *testing.T) {
	a := NewAnchor(vec.Vec2{X: 3, Y: 4})
	a.HandlerType = Mirror
	a.Radius = 2
	a.SetOut(vec.Vec2{X: 1, Y: 1})
	orig := a.Record()

	c := a.Clone()
	if c.Record() != orig {
		t.Fatalf("clone differs: %+v != %+v", c.Record(), orig)
	}

	c.Position = vec.Vec2{X: -1}
	c.SetIn(vec.Vec2{X: 9, Y: 9})
	c.HandlerType = Free
	c.Radius = 0
	c.ClearOut()

	if a.Record() != orig {
		t.Errorf("mutating the clone changed the original: %+v", a.Record())
	}
}

func TestNearPredicates(t *testing.T) {
	a := NewAnchor(vec.Vec2{X: 10, Y: 10})
	a.SetOut(vec.Vec2{X: 10})

	if !a.NearPoint(vec.Vec2{X: 13, Y: 14}, 5) {
		t.Error("point at distance 5 not near with tolerance 5")
	}
	if a.NearPoint(vec.Vec2{X: 13, Y: 14}, 4.99) {
		t.Error("point at distance 5 near with tolerance 4.99")
	}
	if !a.NearOut(vec.Vec2{X: 21, Y: 10}, 1) {
		t.Error("out handle not hit")
	}
	if a.NearIn(a.Position, 100) {
		t.Error("absent in handle was hit")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	a := NewAnchor(vec.Vec2{X: 1.5, Y: -2})
	a.HandlerType = Align
	a.SetIn(vec.Vec2{X: -3, Y: 0})
	a.ClearOut()
	a.HandlerType = Align

	data, err := json.Marshal(a.Record())
	if err != nil {
		t.Fatal(err)
	}
	var r AnchorRecord
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatal(err)
	}
	b := FromRecord(r)
	if b.Record() != a.Record() {
		t.Errorf("round trip: %+v != %+v", b.Record(), a.Record())
	}
	if _, ok := b.Out(); ok {
		t.Error("absent handle came back")
	}
}

func TestHandlerTypeText(t *testing.T) {
	for _, h := range []HandlerType{None, Free, Mirror, Align} {
		text, err := h.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var h2 HandlerType
		if err := h2.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if h2 != h {
			t.Errorf("%s: round trip gave %s", h, h2)
		}
	}

	var h HandlerType
	if err := h.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("unknown handler type accepted")
	}
}
