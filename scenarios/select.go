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

var selectScenarios = []Scenario{
	{
		Name:   "marquee",
		Start:  square,
		Closed: true,
		Steps:  steps(drag(10, 10, 110, 60, 4, 0), wait(pause)),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 4, Closed: true, Selected: 2},
	},
	{
		Name:   "marquee_toggle",
		Start:  square,
		Closed: true,
		Steps: steps(
			click(20, 20, 0), wait(pause),
			drag(10, 10, 110, 60, 4, input.Shift), wait(pause),
		),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 4, Closed: true, Selected: 1},
	},
	{
		Name:   "marquee_pending",
		Start:  square,
		Closed: true,
		Steps:  drag(10, 10, 110, 110, 2, 0),
		Width:  120,
		Height: 120,
		Want: Want{
			State:    pen.State{Phase: pen.PhaseEditing, Editing: pen.EditDoneConfirm},
			Anchors:  4,
			Closed:   true,
			Selected: 4,
		},
	},
	{
		Name:   "marquee_escape",
		Start:  square,
		Closed: true,
		Steps: steps(
			click(20, 20, 0),
			[]Step{{Raw: input.Raw{Kind: input.RawDown, X: 10, Y: 10, Button: input.ButtonLeft}}},
			move(60, 60, 0), move(110, 110, 0),
			key(input.KeyEscape),
		),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 4, Closed: true, Selected: 1},
	},
	{
		Name:   "fill",
		Start:  square,
		Closed: true,
		Steps:  click(60, 60, 0),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 4, Closed: true, Selected: 4},
	},
	{
		Name:   "shift_click",
		Start:  square,
		Closed: true,
		Steps: steps(
			click(20, 20, 0), wait(pause),
			click(100, 20, input.Shift), wait(pause),
			click(100, 100, input.Shift), wait(pause),
			click(20, 20, input.Shift),
		),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 4, Closed: true, Selected: 2},
	},
}
