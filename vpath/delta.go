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

// DeltaOp is the kind of a structural edit received from the replication
// layer.
type DeltaOp int

const (
	// DeltaInsert inserts Records before Index.
	DeltaInsert DeltaOp = iota

	// DeltaRemove removes Count anchors starting at Index.
	DeltaRemove

	// DeltaUpdate overwrites the anchors starting at Index with Records.
	DeltaUpdate

	// DeltaClose sets the Closed flag of the path.
	DeltaClose
)

// Delta is a structural edit of the anchor list, as echoed by the
// replication layer.
type Delta struct {
	Op      DeltaOp
	Index   int
	Count   int
	Records []AnchorRecord
	Closed  bool
}

// ApplyDelta reconciles the anchor list with edits received from the
// replication layer, index for index.  Updates modify anchors in place, so
// that pointers to anchors stay valid.  Deltas which do not fit the current
// anchor list are skipped.  The number of applied deltas is returned.
func (p *Path) ApplyDelta(ds ...Delta) int {
	applied := 0
	for _, d := range ds {
		switch d.Op {
		case DeltaInsert:
			if d.Index < 0 || d.Index > len(p.Anchors) || len(d.Records) == 0 {
				continue
			}
			for k, r := range d.Records {
				p.AddAnchorAt(d.Index+k, FromRecord(r))
			}
		case DeltaRemove:
			if p.RemoveAnchorAt(d.Index, d.Count) == nil {
				continue
			}
		case DeltaUpdate:
			if d.Index < 0 || d.Index+len(d.Records) > len(p.Anchors) {
				continue
			}
			for k, r := range d.Records {
				p.Anchors[d.Index+k].SetRecord(r)
			}
		case DeltaClose:
			p.Closed = d.Closed
		default:
			continue
		}
		applied++
	}
	return applied
}
