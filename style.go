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

import (
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pen/bezier"
	"seehuhn.de/go/pen/vpath"
)

// Part identifies the kind of visual node a style hint applies to.
type Part int

// These are the visual parts of an edited path.
const (
	PartAnchor Part = iota
	PartInHandle
	PartOutHandle
	PartSegment
	PartFill
	PartIndicator
	PartIndicatorSegment
	PartMarquee
)

func (p Part) String() string {
	switch p {
	case PartAnchor:
		return "anchor"
	case PartInHandle:
		return "in-handle"
	case PartOutHandle:
		return "out-handle"
	case PartSegment:
		return "segment"
	case PartFill:
		return "fill"
	case PartIndicator:
		return "indicator"
	case PartIndicatorSegment:
		return "indicator-segment"
	case PartMarquee:
		return "marquee"
	default:
		return "part?"
	}
}

// NodeKey identifies a visual node.  Hosts keep their own mapping from
// anchors to visual nodes; the anchor pointer is stable for as long as the
// anchor is part of the path.
type NodeKey struct {
	Part Part

	// Anchor is set for anchors, handles and the indicator.
	Anchor *vpath.Anchor

	// Segment is the segment index for PartSegment.
	Segment int
}

// Role says how a node should be highlighted.
type Role int

// These are the highlight roles.
const (
	RoleHover Role = iota + 1
	RoleSelected
	RoleIndicative
	RoleMarquee
)

func (r Role) String() string {
	switch r {
	case RoleHover:
		return "hover"
	case RoleSelected:
		return "selected"
	case RoleIndicative:
		return "indicative"
	case RoleMarquee:
		return "marquee"
	default:
		return "role?"
	}
}

// Style is a highlight applied to a visual node.
//
// Transient nodes, which do not correspond to any part of the path, carry
// their geometry: the indicative segment in path-local coordinates, and
// the marquee rectangle in parent coordinates.
type Style struct {
	Role    Role
	Segment *bezier.Cubic
	Rect    *rect.Rect
}

// StyleChange is an entry of the style queue.  A change with a nil Style
// removes all highlighting, including the transient nodes.
type StyleChange struct {
	Key   NodeKey
	Style *Style
}

// Frame is passed to the [Renderer] after every processed event.
type Frame struct {
	Path  *vpath.Path
	State State

	// Styles must be applied in order.
	Styles []StyleChange
}

// A Renderer draws the edited path.  Render is called with the machine
// locked, so it must not call back into the machine.
type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a function to the [Renderer] interface.
type RendererFunc func(f Frame)

// Render calls f(fr).
func (f RendererFunc) Render(fr Frame) {
	f(fr)
}

func partOf(k vpath.HitKind) Part {
	switch k {
	case vpath.HitInHandler:
		return PartInHandle
	case vpath.HitOutHandler:
		return PartOutHandle
	case vpath.HitStroke:
		return PartSegment
	case vpath.HitFill:
		return PartFill
	default:
		return PartAnchor
	}
}

func hitKey(h vpath.HitResult) NodeKey {
	key := NodeKey{Part: partOf(h.Kind), Segment: -1}
	switch h.Kind {
	case vpath.HitStroke:
		key.Segment = h.CurveIndex
	case vpath.HitFill:
	default:
		key.Anchor = h.Point
	}
	return key
}

// styles returns the style queue which redraws all highlighting from
// scratch: a reset, followed by the hover, the selection and the
// transient nodes.
func (c *StateContext) styles() []StyleChange {
	q := []StyleChange{{}}
	if c.HasHover {
		q = append(q, StyleChange{
			Key:   hitKey(c.Hover),
			Style: &Style{Role: RoleHover},
		})
	}
	for _, h := range c.Selected {
		q = append(q, StyleChange{
			Key:   hitKey(h),
			Style: &Style{Role: RoleSelected},
		})
	}
	if ind := c.Indicator; ind != nil {
		q = append(q, StyleChange{
			Key:   NodeKey{Part: PartIndicator, Anchor: ind, Segment: -1},
			Style: &Style{Role: RoleIndicative},
		})
		if seg, ok := c.indicatorSegment(); ok {
			q = append(q, StyleChange{
				Key:   NodeKey{Part: PartIndicatorSegment, Anchor: ind, Segment: -1},
				Style: &Style{Role: RoleIndicative, Segment: &seg},
			})
		}
	}
	if c.MarqueeActive {
		r := c.Marquee
		q = append(q, StyleChange{
			Key:   NodeKey{Part: PartMarquee, Segment: -1},
			Style: &Style{Role: RoleMarquee, Rect: &r},
		})
	}
	return q
}

// indicatorSegment returns the segment which would connect the indicator
// to the growing end of the path.
func (c *StateContext) indicatorSegment() (bezier.Cubic, bool) {
	end := c.activeEnd()
	ind := c.Indicator
	if end == nil || ind == nil {
		return bezier.Cubic{}, false
	}
	if c.Direction == Start {
		return cubicBetween(ind, end), true
	}
	return cubicBetween(end, ind), true
}

func cubicBetween(a, b *vpath.Anchor) bezier.Cubic {
	p1, _ := a.AbsOut()
	p2, _ := b.AbsIn()
	return bezier.Cubic{P0: a.Position, P1: p1, P2: p2, P3: b.Position}
}
