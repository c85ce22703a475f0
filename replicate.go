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

// A Replicator receives every committed edit of the path, for example to
// mirror the path to collaborators.  Indices refer to the path as it is
// after all earlier calls have been applied.
type Replicator interface {
	Insert(index int, r vpath.AnchorRecord)
	Remove(index, count int)
	Update(index int, r vpath.AnchorRecord)
	SetClosed(closed bool)
}

// DeltaLog is a [Replicator] which records the edits as deltas.  The
// deltas can be applied to a replica of the path using
// [vpath.Path.ApplyDelta], or to another machine using
// [Machine.ApplyRemote].
type DeltaLog struct {
	Deltas []vpath.Delta
}

// Insert implements the [Replicator] interface.
func (l *DeltaLog) Insert(index int, r vpath.AnchorRecord) {
	l.Deltas = append(l.Deltas, vpath.Delta{
		Op:      vpath.DeltaInsert,
		Index:   index,
		Records: []vpath.AnchorRecord{r},
	})
}

// Remove implements the [Replicator] interface.
func (l *DeltaLog) Remove(index, count int) {
	l.Deltas = append(l.Deltas, vpath.Delta{
		Op:    vpath.DeltaRemove,
		Index: index,
		Count: count,
	})
}

// Update implements the [Replicator] interface.
func (l *DeltaLog) Update(index int, r vpath.AnchorRecord) {
	l.Deltas = append(l.Deltas, vpath.Delta{
		Op:      vpath.DeltaUpdate,
		Index:   index,
		Records: []vpath.AnchorRecord{r},
	})
}

// SetClosed implements the [Replicator] interface.
func (l *DeltaLog) SetClosed(closed bool) {
	l.Deltas = append(l.Deltas, vpath.Delta{
		Op:     vpath.DeltaClose,
		Closed: closed,
	})
}

// Take returns the recorded deltas and clears the log.
func (l *DeltaLog) Take() []vpath.Delta {
	ds := l.Deltas
	l.Deltas = nil
	return ds
}

type nopReplicator struct{}

func (nopReplicator) Insert(int, vpath.AnchorRecord) {}
func (nopReplicator) Remove(int, int)                {}
func (nopReplicator) Update(int, vpath.AnchorRecord) {}
func (nopReplicator) SetClosed(bool)                 {}
