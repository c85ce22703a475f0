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

import "seehuhn.de/go/pen/vpath"

// effect is an action carried out by the machine when a transition fires.
// Effects run in order, before the old state is left.
type effect int

const (
	effHover effect = iota
	effUpdateIndicator
	effBeginAnchor
	effDragHandle
	effCommitAnchor
	effClosePath
	effLeaveCreating
	effFinalize
	effPress
	effInsertAnchor
	effSelectAll
	effDeselect
	effToggleHandler
	effResume
	effResumeSelected
	effBeginAdjust
	effAdjust
	effCommitAdjust
	effRevertAdjust
	effBeginMarquee
	effUpdateMarquee
	effEndMarquee
	effCancelMarquee
	effDeleteSelection
	effRestartCreating
)

var effectNames = [...]string{
	effHover:           "hover",
	effUpdateIndicator: "update-indicator",
	effBeginAnchor:     "begin-anchor",
	effDragHandle:      "drag-handle",
	effCommitAnchor:    "commit-anchor",
	effClosePath:       "close-path",
	effLeaveCreating:   "leave-creating",
	effFinalize:        "finalize",
	effPress:           "press",
	effInsertAnchor:    "insert-anchor",
	effSelectAll:       "select-all",
	effDeselect:        "deselect",
	effToggleHandler:   "toggle-handler",
	effResume:          "resume",
	effResumeSelected:  "resume-selected",
	effBeginAdjust:     "begin-adjust",
	effAdjust:          "adjust",
	effCommitAdjust:    "commit-adjust",
	effRevertAdjust:    "revert-adjust",
	effBeginMarquee:    "begin-marquee",
	effUpdateMarquee:   "update-marquee",
	effEndMarquee:      "end-marquee",
	effCancelMarquee:   "cancel-marquee",
	effDeleteSelection: "delete-selection",
	effRestartCreating: "restart-creating",
}

func (e effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return "effect?"
}

// transition computes the successor of s for event ev, together with the
// effects to apply.  It only reads the context.  If ev is not handled in
// s, the state is returned unchanged with no effects.
func transition(s State, ev event, c *StateContext) (State, []effect) {
	switch s.Phase {
	case PhaseInitial:
		if ev.Kind != EvInit {
			return s, nil
		}
		if hasAnchors(c) {
			return editing(Selecting), nil
		}
		return creating(Indicating), nil
	case PhaseCreating:
		return transitionCreating(s, ev, c)
	case PhaseEditing:
		return transitionEditing(s, ev, c)
	}
	return s, nil
}

func transitionCreating(s State, ev event, c *StateContext) (State, []effect) {
	switch s.Creating {
	case Indicating:
		switch ev.Kind {
		case EvMove:
			return s, []effect{effUpdateIndicator, effHover}
		case EvDown, EvDoubleClick:
			switch {
			case isClosingTarget(c, ev):
				return editing(Selecting), []effect{effClosePath}
			case hitsAnchorOrHandle(ev):
				return editing(SelectConfirm), []effect{effLeaveCreating, effPress}
			case hitsKind(ev, vpath.HitStroke):
				return editing(SelectConfirm), []effect{effLeaveCreating, effInsertAnchor}
			}
			return creating(AdjustConfirm), []effect{effBeginAnchor}
		case EvEscape, EvEnter:
			return stateDone, []effect{effFinalize}
		}

	case AdjustConfirm, CreateAdjusting:
		switch ev.Kind {
		case EvDrag:
			return creating(CreateAdjusting), []effect{effDragHandle}
		case EvUp:
			if s.Creating == CreateAdjusting {
				return creating(CreateDoneConfirm), []effect{effDragHandle, effCommitAnchor}
			}
			return creating(CreateDoneConfirm), []effect{effCommitAnchor}
		case EvEscape:
			return stateDone, []effect{effFinalize}
		}

	case CreateDoneConfirm:
		switch ev.Kind {
		case EvTimeout:
			return creating(Indicating), nil
		case EvMove:
			return creating(Indicating), []effect{effUpdateIndicator, effHover}
		case EvDoubleClick, EvEscape, EvEnter:
			return stateDone, []effect{effFinalize}
		case EvDown:
			return transitionCreating(creating(Indicating), ev, c)
		}
	}
	return s, nil
}

func transitionEditing(s State, ev event, c *StateContext) (State, []effect) {
	switch s.Editing {
	case Selecting:
		switch ev.Kind {
		case EvMove:
			return s, []effect{effHover}
		case EvDown, EvDoubleClick:
			switch {
			case ev.Kind == EvDoubleClick && ev.HasHit && openEndpoint(c, ev.Hit):
				return creating(Indicating), []effect{effPress, effResume}
			case hitsAnchorOrHandle(ev):
				return editing(SelectConfirm), []effect{effPress}
			case hitsKind(ev, vpath.HitStroke):
				return editing(SelectConfirm), []effect{effInsertAnchor}
			case hitsKind(ev, vpath.HitFill):
				return editing(SelectConfirm), []effect{effSelectAll}
			}
			return editing(Marqueeing), []effect{effBeginMarquee}
		case EvEscape:
			return stateDone, []effect{effFinalize}
		case EvDelete:
			if deletesAll(c) {
				return creating(Indicating), []effect{effDeleteSelection, effRestartCreating}
			}
			if len(c.Selected) > 0 {
				return s, []effect{effDeleteSelection}
			}
		case EvEnter:
			if singleSelectedEndpoint(c) {
				return creating(Indicating), []effect{effResumeSelected}
			}
			return stateDone, []effect{effFinalize}
		}

	case SelectConfirm:
		switch ev.Kind {
		case EvDrag:
			return editing(EditAdjusting), []effect{effBeginAdjust, effAdjust}
		case EvUp:
			switch {
			case !c.hasPress:
				return editing(Selecting), nil
			case c.pressWasSelected && multiSelect(c):
				return editing(Selecting), []effect{effDeselect}
			case openEndpoint(c, c.press) && !multiSelect(c):
				return creating(Indicating), []effect{effResume}
			case toggleHandler(c) && c.press.Kind == vpath.HitAnchor:
				return editing(Selecting), []effect{effToggleHandler}
			}
			return editing(Selecting), nil
		case EvEscape:
			return editing(Selecting), nil
		}

	case EditAdjusting:
		switch ev.Kind {
		case EvDrag:
			return s, []effect{effAdjust}
		case EvUp:
			return editing(Selecting), []effect{effAdjust, effCommitAdjust}
		case EvEscape:
			return editing(Selecting), []effect{effRevertAdjust}
		}

	case Marqueeing:
		switch ev.Kind {
		case EvDrag:
			return s, []effect{effUpdateMarquee}
		case EvUp:
			return editing(EditDoneConfirm), []effect{effUpdateMarquee, effEndMarquee}
		case EvEscape:
			return editing(Selecting), []effect{effCancelMarquee}
		}

	case EditDoneConfirm:
		switch ev.Kind {
		case EvTimeout:
			return editing(Selecting), nil
		case EvMove:
			return editing(Selecting), []effect{effHover}
		case EvDoubleClick:
			return stateDone, []effect{effFinalize}
		default:
			return transitionEditing(editing(Selecting), ev, c)
		}
	}
	return s, nil
}
