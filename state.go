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

// Phase is the top level state of the editing machine.
type Phase int

// These are the phases of the editing machine.
const (
	PhaseInitial Phase = iota
	PhaseCreating
	PhaseEditing
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseCreating:
		return "creating"
	case PhaseEditing:
		return "editing"
	case PhaseDone:
		return "done"
	default:
		return "phase?"
	}
}

// CreatingState is the sub-state of [PhaseCreating].
type CreatingState int

// These are the sub-states of [PhaseCreating].
const (
	// Indicating shows where the next anchor would go.
	Indicating CreatingState = iota

	// AdjustConfirm waits to see whether a press becomes a drag.
	AdjustConfirm

	// CreateAdjusting drags out the handles of the new anchor.
	CreateAdjusting

	// CreateDoneConfirm follows an anchor commit.  A second click in this
	// state finishes the path.
	CreateDoneConfirm
)

func (s CreatingState) String() string {
	switch s {
	case Indicating:
		return "indicating"
	case AdjustConfirm:
		return "adjust-confirm"
	case CreateAdjusting:
		return "adjusting"
	case CreateDoneConfirm:
		return "done-confirm"
	default:
		return "creating?"
	}
}

// EditingState is the sub-state of [PhaseEditing].
type EditingState int

// These are the sub-states of [PhaseEditing].
const (
	// Selecting is the idle state of the editing phase.
	Selecting EditingState = iota

	// SelectConfirm waits to see whether a press on a target becomes a
	// drag.
	SelectConfirm

	// EditAdjusting moves the selected anchors, or the selected handle.
	EditAdjusting

	// Marqueeing drags a selection rectangle.
	Marqueeing

	// EditDoneConfirm follows a marquee.  A second click in this state
	// finishes editing.
	EditDoneConfirm
)

func (s EditingState) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case SelectConfirm:
		return "select-confirm"
	case EditAdjusting:
		return "adjusting"
	case Marqueeing:
		return "marqueeing"
	case EditDoneConfirm:
		return "done-confirm"
	default:
		return "editing?"
	}
}

// State is the complete state of the editing machine.  Only the sub-state
// belonging to Phase is meaningful, the other one is kept at its zero
// value.
type State struct {
	Phase    Phase
	Creating CreatingState
	Editing  EditingState
}

var (
	stateInitial = State{Phase: PhaseInitial}
	stateDone    = State{Phase: PhaseDone}
)

func creating(s CreatingState) State {
	return State{Phase: PhaseCreating, Creating: s}
}

func editing(s EditingState) State {
	return State{Phase: PhaseEditing, Editing: s}
}

func (s State) String() string {
	switch s.Phase {
	case PhaseCreating:
		return "creating." + s.Creating.String()
	case PhaseEditing:
		return "editing." + s.Editing.String()
	default:
		return s.Phase.String()
	}
}

// isDoneConfirm reports whether s is one of the debounce states which are
// left automatically after a delay.
func (s State) isDoneConfirm() bool {
	return s == creating(CreateDoneConfirm) || s == editing(EditDoneConfirm)
}
