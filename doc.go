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


// Package pen implements the editing logic of an interactive vector path
// tool.
//
// A [Machine] consumes normalized input events (see package
// seehuhn.de/go/pen/input) and turns them into edits of a
// [vpath.Path]: placing anchors and dragging out handles while creating a
// path, and selecting, moving, inserting and deleting anchors while
// editing it.  The machine never draws anything itself.  After every
// processed event it hands a [Frame] to a [Renderer], containing the path
// and a queue of style hints for the visual nodes which should be
// highlighted.
//
// The machine is a two-level state chart.  The top level distinguishes
// the [Phase]s Initial, Creating, Editing and Done; Creating and Editing
// have sub-states of their own.  Each state subscribes to a filtered view
// of the input stream when it is entered and drops the subscription when
// it is left, so that no state ever sees an event meant for its
// predecessor.
//
// Double-clicks are recognised by short "done-confirm" states, which are
// left again after a debounce delay.  The delay is measured by a
// [Scheduler] on a clock.Clock; with a mock clock, hosts with their own
// event loop, and tests, drive time explicitly.
package pen
