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

package bezier

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func near(a, b vec.Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func TestDivByZero(t *testing.T) {
	v := vec.Vec2{X: 3, Y: -4}
	if got := Div(v, 0); got != v {
		t.Errorf("Div(v, 0) = %v, want %v", got, v)
	}
	if got := Div(v, 2); got != (vec.Vec2{X: 1.5, Y: -2}) {
		t.Errorf("Div(v, 2) = %v", got)
	}
}

func TestMirrorAngle(t *testing.T) {
	cases := []struct {
		v      vec.Vec2
		length float64
		want   vec.Vec2
	}{
		{vec.Vec2{X: 3, Y: 4}, 10, vec.Vec2{X: -6, Y: -8}},
		{vec.Vec2{X: 0, Y: 2}, 1, vec.Vec2{X: 0, Y: -1}},
		{vec.Vec2{X: -1, Y: 0}, 0, vec.Vec2{X: 0, Y: 0}},
		{vec.Vec2{}, 5, vec.Vec2{}}, // no direction, unchanged
	}
	for _, c := range cases {
		got := MirrorAngle(c.v, c.length)
		if !near(got, c.want, 1e-12) {
			t.Errorf("MirrorAngle(%v, %g) = %v, want %v", c.v, c.length, got, c.want)
		}
		if math.IsNaN(got.X) || math.IsNaN(got.Y) {
			t.Errorf("MirrorAngle(%v, %g) produced NaN", c.v, c.length)
		}
	}
	if got := Mirror(vec.Vec2{X: 1, Y: -2}); got != (vec.Vec2{X: -1, Y: 2}) {
		t.Errorf("Mirror = %v", got)
	}
}

func TestAtEndpoints(t *testing.T) {
	c := Cubic{
		P0: vec.Vec2{X: 0, Y: 0},
		P1: vec.Vec2{X: 10, Y: 30},
		P2: vec.Vec2{X: 40, Y: 30},
		P3: vec.Vec2{X: 50, Y: 0},
	}
	if got := c.At(0); got != c.P0 {
		t.Errorf("At(0) = %v", got)
	}
	if got := c.At(1); got != c.P3 {
		t.Errorf("At(1) = %v", got)
	}
	// symmetric curve: the midpoint lies on the axis of symmetry
	if got := c.At(0.5); !near(got, vec.Vec2{X: 25, Y: 22.5}, 1e-12) {
		t.Errorf("At(0.5) = %v", got)
	}
}

func TestArcLengthStraight(t *testing.T) {
	c := Cubic{
		P0: vec.Vec2{X: 0, Y: 0},
		P1: vec.Vec2{X: 0, Y: 0},
		P2: vec.Vec2{X: 30, Y: 40},
		P3: vec.Vec2{X: 30, Y: 40},
	}
	if got := c.ArcLength(); math.Abs(got-50) > 1e-9 {
		t.Errorf("ArcLength = %g, want 50", got)
	}
}

func TestArcLengthCircle(t *testing.T) {
	// quarter circle of radius 100
	const kappa = 0.5522847498307936
	c := Cubic{
		P0: vec.Vec2{X: 100, Y: 0},
		P1: vec.Vec2{X: 100, Y: 100 * kappa},
		P2: vec.Vec2{X: 100 * kappa, Y: 100},
		P3: vec.Vec2{X: 0, Y: 100},
	}
	want := math.Pi * 50
	if got := c.ArcLength(); math.Abs(got-want)/want > 1e-2 {
		t.Errorf("ArcLength = %g, want approximately %g", got, want)
	}
}

func TestSplitPreservesCurve(t *testing.T) {
	c := Cubic{
		P0: vec.Vec2{X: 0, Y: 0},
		P1: vec.Vec2{X: 20, Y: 80},
		P2: vec.Vec2{X: 90, Y: -40},
		P3: vec.Vec2{X: 100, Y: 10},
	}
	for _, split := range []float64{0.1, 0.25, 0.5, 0.9} {
		left, right := c.Split(split)
		for i := 0; i <= 20; i++ {
			u := float64(i) / 20
			want := c.At(u)
			var got vec.Vec2
			if u <= split {
				got = left.At(u / split)
			} else {
				got = right.At((u - split) / (1 - split))
			}
			if !near(got, want, 1e-9) {
				t.Errorf("split %g, u=%g: got %v, want %v", split, u, got, want)
			}
		}

		before, after := c.Tangents(split)
		if before != left.P2 || after != right.P1 {
			t.Errorf("Tangents(%g) inconsistent with Split", split)
		}
	}
}

func TestClosest(t *testing.T) {
	line := Cubic{
		P0: vec.Vec2{X: 0, Y: 0},
		P1: vec.Vec2{X: 0, Y: 0},
		P2: vec.Vec2{X: 100, Y: 0},
		P3: vec.Vec2{X: 100, Y: 0},
	}
	tt, pt, d := line.Closest(vec.Vec2{X: 50, Y: 3})
	if math.Abs(pt.X-50) > 1e-3 || math.Abs(pt.Y) > 1e-9 {
		t.Errorf("closest point = %v, want (50, 0)", pt)
	}
	if math.Abs(d-3) > 1e-3 {
		t.Errorf("distance = %g, want 3", d)
	}
	if got := line.At(tt); !near(got, pt, 1e-12) {
		t.Errorf("At(t) = %v does not match returned point %v", got, pt)
	}

	// beyond the end point the nearest parameter is clamped
	tt, _, _ = line.Closest(vec.Vec2{X: 150, Y: 0})
	if tt != 1 {
		t.Errorf("t = %g, want 1", tt)
	}
}
