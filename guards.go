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

// The guards in this file inspect the state context without modifying it.

func hasAnchors(c *StateContext) bool {
	return c.Path.Len() > 0
}

// isClosingTarget reports whether a press on hit closes the path: the hit
// is the anchor at the far end of an open path with at least two anchors.
func isClosingTarget(c *StateContext, ev event) bool {
	p := c.Path
	if !ev.HasHit || ev.Hit.Kind != vpath.HitAnchor || p.Closed || p.Len() < 2 {
		return false
	}
	target := 0
	if c.Direction == Start {
		target = p.Len() - 1
	}
	return ev.Hit.Point == p.At(target)
}

// openEndpoint reports whether h is an anchor at either end of an open
// path.
func openEndpoint(c *StateContext, h vpath.HitResult) bool {
	p := c.Path
	if h.Kind != vpath.HitAnchor || p.Closed || p.Len() == 0 {
		return false
	}
	return h.Point == p.At(0) || h.Point == p.At(p.Len()-1)
}

// singleSelectedEndpoint reports whether the selection is exactly one open
// endpoint.
func singleSelectedEndpoint(c *StateContext) bool {
	return len(c.Selected) == 1 && openEndpoint(c, c.Selected[0])
}

func isSelected(c *StateContext, h vpath.HitResult) bool {
	return c.indexOfSelected(h) >= 0
}

func multiSelect(c *StateContext) bool {
	return c.held(c.cfg.Bindings.MultiSelect)
}

func toggleHandler(c *StateContext) bool {
	return c.held(c.cfg.Bindings.ToggleHandler)
}

// hitsAnchorOrHandle reports whether the event hit an existing anchor or
// one of its handles.
func hitsAnchorOrHandle(ev event) bool {
	if !ev.HasHit {
		return false
	}
	switch ev.Hit.Kind {
	case vpath.HitAnchor, vpath.HitInHandler, vpath.HitOutHandler:
		return true
	}
	return false
}

func hitsKind(ev event, k vpath.HitKind) bool {
	return ev.HasHit && ev.Hit.Kind == k
}

// deletesAll reports whether deleting the selection removes every anchor
// of the path.
func deletesAll(c *StateContext) bool {
	if _, ok := c.selectedHandle(); ok {
		return false
	}
	n := c.Path.Len()
	if n == 0 {
		return false
	}
	seen := make(map[*vpath.Anchor]bool)
	for _, a := range c.selectedAnchors() {
		if c.Path.IndexOf(a) >= 0 {
			seen[a] = true
		}
	}
	return len(seen) == n
}
