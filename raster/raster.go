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

// Package raster converts path outlines into per-pixel coverage values.
//
// The rasteriser is shared by the fill hit-test of the path model, which
// must agree with what is drawn on screen, and by the preview renderer.
// Curves are flattened using Wang's formula, filled outlines use exact
// area coverage with either the nonzero or the even-odd rule, and strokes
// are built from per-segment quadrilaterals with round joins.
package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// FillRule selects how overlapping parts of an outline are combined.
type FillRule int

const (
	// NonZero fills every point with a nonzero winding number.
	NonZero FillRule = iota

	// EvenOdd fills every point with an odd winding number.
	EvenOdd
)

func (f FillRule) String() string {
	switch f {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "FillRule(?)"
	}
}

// Rasteriser converts paths to pixel coverage values, the fraction of each
// pixel covered by the shape.  Create one instance and reuse it: internal
// buffers grow as needed but are never released.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds the output, in device coordinates.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness is the curve approximation tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the style used at the ends of open stroked subpaths.
	// Joins are always round.
	Cap graphics.LineCapStyle

	// Dash holds alternating on/off lengths in user-space units.
	// Nil means a solid line.
	Dash []float64

	// DashPhase is the offset into the dash pattern.
	DashPhase float64

	edges     []edge
	active    []int
	cover     []float32
	area      []float32
	crossings []float64

	// flattened subpaths: pts[runs[i].start:runs[i].end]
	pts  []vec.Vec2
	runs []run

	// stroke outline polygons: poly[polys[i]:polys[i+1]]
	poly  []vec.Vec2
	polys []int

	dashPts  []vec.Vec2
	dashRuns []run
}

// edge is a line segment in device space, oriented so that y0 < y1.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
	dir    float32 // +1 if the original segment pointed down, -1 otherwise
}

func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// run is a flattened subpath.
type run struct {
	start, end int
	closed     bool
	tangent    vec.Vec2 // direction at the start, for zero-length dashes
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, with the
// identity CTM and PDF default values for all other parameters.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle,
// keeping the capacity of all internal buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Dash = nil
	r.DashPhase = 0

	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.pts = r.pts[:0]
	r.runs = r.runs[:0]
	r.poly = r.poly[:0]
	r.polys = r.polys[:0]
	r.dashPts = r.dashPts[:0]
	r.dashRuns = r.dashRuns[:0]
}

// FillNonZero fills p using the nonzero winding rule.
// The coverage slice passed to emit is only valid during the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.Fill(p, NonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
// The coverage slice passed to emit is only valid during the call.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.Fill(p, EvenOdd, emit)
}

// Fill rasterises the interior of p.  Open subpaths are closed implicitly.
// Coverage is delivered row by row; rows without coverage are skipped.
func (r *Rasteriser) Fill(p *path.Data, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	r.flatten(p)
	r.edges = r.edges[:0]
	for _, sp := range r.runs {
		r.addPolygon(r.pts[sp.start:sp.end])
	}
	r.scan(rule, emit)
}

// Contains reports whether pt lies inside the fill of p under the given
// rule.  Both p and pt are in the same coordinate system; the CTM and clip
// of r are ignored and left unchanged.
//
// The test samples a single pixel of a highly magnified rendering centred
// on pt, so points closer to the outline than about 1/256 unit may be
// classified either way.
func (r *Rasteriser) Contains(p *path.Data, pt vec.Vec2, rule FillRule) bool {
	saveCTM, saveClip, saveFlat := r.CTM, r.Clip, r.Flatness
	defer func() {
		r.CTM, r.Clip, r.Flatness = saveCTM, saveClip, saveFlat
	}()

	const k = probeScale
	r.CTM = matrix.Matrix{k, 0, 0, k, 0.5 - k*pt.X, 0.5 - k*pt.Y}
	r.Clip = rect.Rect{URx: 1, URy: 1}
	r.Flatness = probeFlatness * k

	inside := false
	r.Fill(p, rule, func(y, xMin int, coverage []float32) {
		if y == 0 && xMin == 0 && coverage[0] >= 0.5 {
			inside = true
		}
	})
	return inside
}

// flatten converts p into polylines in user space, one run per subpath.
func (r *Rasteriser) flatten(p *path.Data) {
	r.pts = r.pts[:0]
	r.runs = r.runs[:0]

	var current, first vec.Vec2
	open := false
	begin := func(at vec.Vec2) {
		r.runs = append(r.runs, run{start: len(r.pts)})
		r.pts = append(r.pts, at)
		open = true
	}
	finish := func(closed bool) {
		if !open {
			return
		}
		sp := &r.runs[len(r.runs)-1]
		sp.end = len(r.pts)
		sp.closed = closed
		open = false
	}
	lineTo := func(_, to vec.Vec2) {
		r.pts = append(r.pts, to)
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			current = p.Coords[k]
			first = current
			begin(current)
			k++
			continue
		case path.CmdClose:
			finish(true)
			current = first
			continue
		}

		if !open {
			// drawing after ClosePath continues from the subpath start
			first = current
			begin(current)
		}
		switch cmd {
		case path.CmdLineTo:
			lineTo(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], lineTo)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], lineTo)
			current = p.Coords[k+2]
			k += 3
		}
	}
	finish(false)
}

// linear applies the linear part of the CTM to v.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic emits line segments approximating a quadratic Bézier
// curve, choosing the segment count from the device-space deviation.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if e > r.Flatness {
		n = int(math.Ceil(math.Sqrt(e / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic emits line segments approximating a cubic Bézier curve.
// The segment count follows Wang's formula in device space.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(min(nf, maxCurveSegments)))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// addPolygon adds the edges of the closed polygon pts (user space).
func (r *Rasteriser) addPolygon(pts []vec.Vec2) {
	if len(pts) < 2 {
		return
	}
	for i := 1; i < len(pts); i++ {
		r.addEdge(pts[i-1], pts[i])
	}
	if pts[0] != pts[len(pts)-1] {
		r.addEdge(pts[len(pts)-1], pts[0])
	}
}

func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	var dir float32 = 1
	if dy < 0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		dir = -1
	}
	r.edges = append(r.edges, edge{
		x0: x0, y0: y0,
		x1: x1, y1: y1,
		dxdy: (x1 - x0) / (y1 - y0),
		dir:  dir,
	})
}

// scan accumulates the current edge list row by row, using an active edge
// list, and emits the resulting coverage.
func (r *Rasteriser) scan(rule FillRule, emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}

	yLo, yHi := math.Inf(1), math.Inf(-1)
	xLo, xHi := math.Inf(1), math.Inf(-1)
	for i := range r.edges {
		e := &r.edges[i]
		yLo = min(yLo, e.y0)
		yHi = max(yHi, e.y1)
		xLo = min(xLo, e.x0, e.x1)
		xHi = max(xHi, e.x0, e.x1)
	}
	xMin := max(int(math.Floor(xLo)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(xHi))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(yLo)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(yHi))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		// Everything could still be left of the clip rectangle, where
		// edges contribute to the leftmost pixel.
		if xMin < xMax || yMin >= yMax {
			return
		}
		xMin = int(r.Clip.LLx)
		xMax = int(r.Clip.URx)
		if xMin >= xMax {
			return
		}
	}

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		switch {
		case a.y0 < b.y0:
			return -1
		case a.y0 > b.y0:
			return 1
		}
		return 0
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)

		for next < len(r.edges) && r.edges[next].y0 < bot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.y1 <= top {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			r.accumulate(e, max(top, e.y0), min(bot, e.y1), xMin)
			i++
		}

		integrate(r.cover, r.area, rule)
		if cov, off := trimZeros(r.cover); cov != nil {
			emit(y, xMin+off, cov)
		}
	}
}

// accumulate adds the contribution of the part of e between y0 and y1 to
// the cover and area buffers of the current row, splitting it at pixel
// column boundaries.
func (r *Rasteriser) accumulate(e *edge, y0, y1 float64, xMin int) {
	if y1 <= y0 {
		return
	}
	xa, xb := e.xAt(y0), e.xAt(y1)
	ca, cb := int(math.Floor(xa)), int(math.Floor(xb))
	if ca == cb {
		r.deposit(ca, xMin, e.dir*float32(y1-y0), (xa+xb)/2)
		return
	}

	// y values where the edge crosses column boundaries, in increasing order
	r.crossings = append(r.crossings[:0], y0)
	dydx := 1 / e.dxdy
	if ca < cb {
		for x := ca + 1; x <= cb; x++ {
			r.crossings = append(r.crossings, e.y0+dydx*(float64(x)-e.x0))
		}
	} else {
		for x := ca; x > cb; x-- {
			r.crossings = append(r.crossings, e.y0+dydx*(float64(x)-e.x0))
		}
	}
	r.crossings = append(r.crossings, y1)

	for i := 1; i < len(r.crossings); i++ {
		lo := max(r.crossings[i-1], y0)
		hi := min(r.crossings[i], y1)
		if hi <= lo {
			continue
		}
		r.deposit(-1, xMin, e.dir*float32(hi-lo), e.xAt((lo+hi)/2))
	}
}

// deposit records a piece of edge with signed height c whose mean x
// position is xMid.  If col is negative it is derived from xMid.
func (r *Rasteriser) deposit(col, xMin int, c float32, xMid float64) {
	if col < 0 {
		col = int(math.Floor(xMid))
	}
	switch {
	case col < xMin:
		r.cover[0] += c
		r.area[0] += c
	case col-xMin < len(r.cover):
		i := col - xMin
		r.cover[i] += c
		r.area[i] += c * float32(1-(xMid-float64(col)))
	}
}

// integrate turns the accumulated cover and area values of a row into
// coverage, in place.
func integrate(cover, area []float32, rule FillRule) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		if rule == EvenOdd {
			v -= 2 * float32(int(v/2))
			if v > 1 {
				v = 2 - v
			}
		} else if v > 1 {
			v = 1
		}
		cover[i] = v
	}
}

// trimZeros returns the part of coverage between the first and last
// nonzero entries, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the default flattening tolerance in device pixels.
	defaultFlatness = 0.25

	// probeScale is the magnification used by Contains.
	probeScale = 256

	// probeFlatness is the flattening tolerance of Contains, in user units.
	probeFlatness = 0.01

	// maxCurveSegments bounds the work spent on a single curve.
	maxCurveSegments = 1024

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
)
