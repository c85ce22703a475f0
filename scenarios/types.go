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


package scenarios

import (
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pen"
	"seehuhn.de/go/pen/input"
	"seehuhn.de/go/pen/vpath"
)

// Scenario is a scripted editing session.
type Scenario struct {
	Name   string               // lowercase a-z and _ only
	Start  []vpath.AnchorRecord // anchors of the initial path (nil for an empty path)
	Closed bool                 // whether the initial path is closed
	Steps  []Step               // the input, in order
	Width  int                  // canvas width in pixels
	Height int                  // canvas height in pixels
	Want   Want                 // expected outcome
}

// Step is a single raw input event, or a pause.
type Step struct {
	Raw  input.Raw
	Wait time.Duration // if non-zero, Raw is ignored
}

// Want describes the expected outcome of a scenario.
type Want struct {
	State    pen.State
	Anchors  int
	Closed   bool
	Selected int
}

// pause separates clicks which must not form a double click, and lets
// pending done-confirm timeouts expire.
const pause = 500 * time.Millisecond

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// corners returns records of handle-less anchors at the given points.
func corners(pts ...vec.Vec2) []vpath.AnchorRecord {
	res := make([]vpath.AnchorRecord, len(pts))
	for i, p := range pts {
		res[i] = vpath.AnchorRecord{Position: p}
	}
	return res
}

// square is the closed test square used by the editing scenarios.
var square = corners(pt(20, 20), pt(100, 20), pt(100, 100), pt(20, 100))

func steps(groups ...[]Step) []Step {
	var res []Step
	for _, g := range groups {
		res = append(res, g...)
	}
	return res
}

func wait(d time.Duration) []Step {
	return []Step{{Wait: d}}
}

func move(x, y float64, mods input.Modifiers) []Step {
	return []Step{{Raw: input.Raw{Kind: input.RawMove, X: x, Y: y, Modifiers: mods}}}
}

func click(x, y float64, mods input.Modifiers) []Step {
	return []Step{
		{Raw: input.Raw{Kind: input.RawDown, X: x, Y: y, Button: input.ButtonLeft, Modifiers: mods}},
		{Raw: input.Raw{Kind: input.RawUp, X: x, Y: y, Button: input.ButtonLeft, Modifiers: mods}},
	}
}

// drag presses at (x0, y0), moves to (x1, y1) in n steps and releases.
func drag(x0, y0, x1, y1 float64, n int, mods input.Modifiers) []Step {
	res := []Step{{Raw: input.Raw{Kind: input.RawDown, X: x0, Y: y0, Button: input.ButtonLeft, Modifiers: mods}}}
	for k := 1; k <= n; k++ {
		s := float64(k) / float64(n)
		res = append(res, move(x0+s*(x1-x0), y0+s*(y1-y0), mods)...)
	}
	return append(res, Step{Raw: input.Raw{Kind: input.RawUp, X: x1, Y: y1, Button: input.ButtonLeft, Modifiers: mods}})
}

func key(name string) []Step {
	return []Step{
		{Raw: input.Raw{Kind: input.RawKeyDown, Key: name}},
		{Raw: input.Raw{Kind: input.RawKeyUp, Key: name}},
	}
}
