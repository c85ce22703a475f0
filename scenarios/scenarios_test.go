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
	"maps"
	"slices"
	"testing"
)

func TestScenarios(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, sc := range All[category] {
			name := category + "_" + sc.Name
			t.Run(name, func(t *testing.T) {
				res := Run(sc, nil)
				m := res.Machine

				if got := m.State(); got != sc.Want.State {
					t.Errorf("state: got %s, expected %s", got, sc.Want.State)
				}
				if got := res.Path.Len(); got != sc.Want.Anchors {
					t.Errorf("anchors: got %d, expected %d", got, sc.Want.Anchors)
				}
				if res.Path.Closed != sc.Want.Closed {
					t.Errorf("closed: got %t", res.Path.Closed)
				}
				if got := len(m.Selected()); got != sc.Want.Selected {
					t.Errorf("selected: got %d, expected %d", got, sc.Want.Selected)
				}

				// replaying the replicated edits reproduces the path
				replica := sc.Initial()
				if n := replica.ApplyDelta(res.Deltas...); n != len(res.Deltas) {
					t.Errorf("only %d of %d deltas applied", n, len(res.Deltas))
				}
				if replica.Len() != res.Path.Len() || replica.Closed != res.Path.Closed {
					t.Fatalf("replica has %d anchors (closed=%t)", replica.Len(), replica.Closed)
				}
				for i := range replica.Len() {
					if replica.At(i).Record() != res.Path.At(i).Record() {
						t.Errorf("anchor %d: replica %+v, expected %+v",
							i, replica.At(i).Record(), res.Path.At(i).Record())
					}
				}

				if res.Canvas.Frames() == 0 {
					t.Error("nothing rendered")
				}
			})
		}
	}
}

func TestNames(t *testing.T) {
	seen := make(map[string]bool)
	for category, list := range All {
		for _, sc := range list {
			for _, c := range sc.Name {
				if (c < 'a' || c > 'z') && c != '_' {
					t.Errorf("%s: invalid name %q", category, sc.Name)
					break
				}
			}
			name := category + "_" + sc.Name
			if seen[name] {
				t.Errorf("duplicate scenario %s", name)
			}
			seen[name] = true
		}
	}
}
