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

var (
	indicating = pen.State{Phase: pen.PhaseCreating, Creating: pen.Indicating}
	selecting  = pen.State{Phase: pen.PhaseEditing, Editing: pen.Selecting}
	done       = pen.State{Phase: pen.PhaseDone}
)

// threeClicks places three corner anchors.
var threeClicks = steps(
	click(20, 20, 0), wait(pause),
	click(100, 20, 0), wait(pause),
	click(100, 100, 0), wait(pause),
)

var createScenarios = []Scenario{
	{
		Name:   "clicks",
		Steps:  threeClicks,
		Width:  120,
		Height: 120,
		Want:   Want{State: indicating, Anchors: 3},
	},
	{
		Name:   "close",
		Steps:  steps(threeClicks, click(21, 22, 0)),
		Width:  120,
		Height: 120,
		Want:   Want{State: selecting, Anchors: 3, Closed: true},
	},
	{
		Name: "curve",
		Steps: steps(
			drag(20, 60, 40, 20, 4, 0), wait(pause),
			drag(100, 60, 100, 100, 4, 0), wait(pause),
			key(input.KeyEscape),
		),
		Width:  120,
		Height: 120,
		Want:   Want{State: done, Anchors: 2},
	},
	{
		Name: "free_handle",
		Steps: steps(
			drag(20, 60, 40, 20, 4, input.Alt), wait(pause),
			click(100, 60, 0), wait(pause),
		),
		Width:  120,
		Height: 120,
		Want:   Want{State: indicating, Anchors: 2},
	},
	{
		Name: "double_click",
		Steps: steps(
			click(20, 20, 0), wait(pause),
			click(100, 100, 0), wait(pause/5),
			click(101, 100, 0),
		),
		Width:  120,
		Height: 120,
		Want:   Want{State: done, Anchors: 2},
	},
	{
		Name:  "resume",
		Start: corners(pt(20, 60), pt(60, 60)),
		Steps: steps(
			click(60, 60, 0), wait(pause),
			click(100, 60, 0), wait(pause),
			key(input.KeyEnter),
		),
		Width:  120,
		Height: 120,
		Want:   Want{State: done, Anchors: 3},
	},
	{
		Name:  "resume_start",
		Start: corners(pt(60, 60), pt(100, 60)),
		Steps: steps(
			click(60, 60, 0), wait(pause),
			click(20, 60, 0), wait(pause),
		),
		Width:  120,
		Height: 120,
		Want:   Want{State: indicating, Anchors: 3},
	},
}
