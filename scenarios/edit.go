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
	"seehuhn.de/go/pen"
	"seehuhn.de/go/pen/input"
)

var editScenarios = []Scenario{
	{
		Name:   "drag_anchor",
		Start:  square,
		Closed: true,
		Steps:  drag(20, 20, 30, 30, 4, 0),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 4, Closed: true, Selected: 1},
	},
	{
		Name:   "insert",
		Start:  square,
		Closed: true,
		Steps:  click(60, 20, 0),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 5, Closed: true, Selected: 1},
	},
	{
		Name:   "insert_drag",
		Start:  square,
		Closed: true,
		Steps:  drag(60, 20, 60, 5, 3, 0),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 5, Closed: true, Selected: 1},
	},
	{
		Name:   "delete",
		Start:  square,
		Closed: true,
		Steps:  steps(click(100, 20, 0), key(input.KeyDelete)),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 3, Closed: true},
	},
	{
		Name:   "delete_all",
		Start:  square,
		Closed: true,
		Steps:  steps(click(60, 60, 0), key(input.KeyBackspace)),
		Width:  120,
		Height: 120,
		Want:   Want{State: indicating, Anchors: 0},
	},
	{
		Name:   "toggle",
		Start:  square,
		Closed: true,
		Steps:  click(100, 20, input.Ctrl),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 4, Closed: true, Selected: 1},
	},
	{
		Name:   "pull_handle",
		Start:  square,
		Closed: true,
		Steps:  drag(20, 20, 20, 40, 4, input.Alt),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 4, Closed: true, Selected: 1},
	},
	{
		Name:   "escape_drag",
		Start:  square,
		Closed: true,
		Steps: steps(
			[]Step{{Raw: input.Raw{Kind: input.RawDown, X: 100, Y: 100, Button: input.ButtonLeft}}},
			move(105, 100, 0), move(110, 110, 0),
			key(input.KeyEscape),
			[]Step{{Raw: input.Raw{Kind: input.RawUp, X: 110, Y: 110, Button: input.ButtonLeft}}},
		),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 4, Closed: true, Selected: 1},
	},
	{
		Name:   "finish",
		Start:  square,
		Closed: true,
		Steps:  steps(click(100, 100, 0), key(input.KeyEscape)),
		Width:  120,
		Height: 120,
		Want:   Want{State: pen.State{Phase: pen.PhaseDone}, Anchors: 4, Closed: true},
	},
}
