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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders the outline of p using Width, Cap, Dash and DashPhase.
// Corners are joined with round joins.  The emit callback receives
// coverage row by row; its slice argument is valid only during the call.
func (r *Rasteriser) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.flatten(p)
	r.poly = r.poly[:0]
	r.polys = r.polys[:0]

	if len(r.Dash) > 0 && r.applyDash() {
		for _, sp := range r.dashRuns {
			r.strokeRun(r.dashPts[sp.start:sp.end], false, sp.tangent)
		}
	} else {
		for _, sp := range r.runs {
			r.strokeRun(r.pts[sp.start:sp.end], sp.closed, vec.Vec2{})
		}
	}

	r.edges = r.edges[:0]
	for i, start := range r.polys {
		end := len(r.poly)
		if i+1 < len(r.polys) {
			end = r.polys[i+1]
		}
		r.addPolygon(r.poly[start:end])
	}
	r.scan(NonZero, emit)
}

// strokeRun adds the outline polygons for one polyline.  All polygons are
// emitted with the same orientation, so that overlaps add up under the
// nonzero rule.  The tangent is used for square caps on degenerate runs.
func (r *Rasteriser) strokeRun(pts []vec.Vec2, closed bool, tangent vec.Vec2) {
	if len(pts) == 0 {
		return
	}
	d := r.Width / 2

	var firstA, lastB, firstT, prevT vec.Vec2
	count := 0
	segment := func(a, b vec.Vec2) {
		l := b.Sub(a).Length()
		if l < zeroLengthThreshold {
			return
		}
		t := b.Sub(a).Mul(1 / l)
		if count == 0 {
			firstA, firstT = a, t
		} else if prevT.Dot(t) < 1-collinearityThreshold {
			r.addDisc(a, d)
		}
		r.addQuad(a, b, t, d)
		prevT, lastB = t, b
		count++
	}
	for i := 1; i < len(pts); i++ {
		segment(pts[i-1], pts[i])
	}
	if closed {
		segment(pts[len(pts)-1], pts[0])
	}

	if count == 0 {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisc(pts[0], d)
		case graphics.LineCapSquare:
			if tangent != (vec.Vec2{}) {
				a := pts[0].Sub(tangent.Mul(d))
				r.addQuad(a, pts[0].Add(tangent.Mul(d)), tangent, d)
			}
		}
		return
	}

	if closed {
		if prevT.Dot(firstT) < 1-collinearityThreshold {
			r.addDisc(firstA, d)
		}
		return
	}
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(firstA, d)
		r.addDisc(lastB, d)
	case graphics.LineCapSquare:
		r.addQuad(firstA.Sub(firstT.Mul(d)), firstA, firstT, d)
		r.addQuad(lastB, lastB.Add(prevT.Mul(d)), prevT, d)
	}
}

// addQuad adds the rectangle of half-width d around the segment from a to
// b, where t is the unit direction of the segment.
func (r *Rasteriser) addQuad(a, b, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y * d, Y: t.X * d}
	r.polys = append(r.polys, len(r.poly))
	r.poly = append(r.poly, a.Sub(n), b.Sub(n), b.Add(n), a.Add(n))
}

// addDisc adds a polygon approximating the disc of the given radius,
// traversed counter-clockwise like the rectangles from addQuad.
func (r *Rasteriser) addDisc(center vec.Vec2, radius float64) {
	if radius <= 0 {
		return
	}
	devR := max(r.linear(vec.Vec2{X: radius}).Length(), r.linear(vec.Vec2{Y: radius}).Length())
	n := minDiscSegments
	if devR > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devR)
		if step > 0 {
			n = int(math.Ceil(2 * math.Pi / step))
		}
	}
	n = max(min(n, maxDiscSegments), minDiscSegments)

	r.polys = append(r.polys, len(r.poly))
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.poly = append(r.poly, vec.Vec2{
			X: center.X + radius*math.Cos(phi),
			Y: center.Y + radius*math.Sin(phi),
		})
	}
}

// applyDash splits the flattened subpaths into dashes, stored as open runs
// in dashPts/dashRuns.  The pattern restarts at the beginning of every
// subpath.  If the pattern is unusable, applyDash returns false and the
// path is stroked solid.
func (r *Rasteriser) applyDash() bool {
	pattern := r.Dash
	total := 0.0
	for _, v := range pattern {
		if v < 0 {
			return false
		}
		total += v
	}
	if len(pattern)%2 == 1 {
		total *= 2
	}
	if total <= 0 {
		return false
	}

	r.dashPts = r.dashPts[:0]
	r.dashRuns = r.dashRuns[:0]
	begin := func(at, t vec.Vec2) {
		r.dashRuns = append(r.dashRuns, run{start: len(r.dashPts), tangent: t})
		r.dashPts = append(r.dashPts, at)
	}
	end := func() {
		r.dashRuns[len(r.dashRuns)-1].end = len(r.dashPts)
	}

	for _, sp := range r.runs {
		pts := r.pts[sp.start:sp.end]
		if len(pts) == 0 {
			continue
		}

		idx, on, left := 0, true, pattern[0]
		phase := math.Mod(r.DashPhase, total)
		if phase < 0 {
			phase += total
		}
		for phase > 0 {
			if phase < left {
				left -= phase
				break
			}
			phase -= left
			idx = (idx + 1) % len(pattern)
			on = !on
			left = pattern[idx]
		}

		nSeg := len(pts) - 1
		if sp.closed {
			nSeg++
		}
		open := false
		for i := range nSeg {
			a, b := pts[i], pts[(i+1)%len(pts)]
			l := b.Sub(a).Length()
			if l < zeroLengthThreshold {
				continue
			}
			t := b.Sub(a).Mul(1 / l)
			if on && !open {
				begin(a, t)
				open = true
			}

			pos := 0.0
			for l-pos > left {
				pos += left
				pt := a.Add(t.Mul(pos))
				if on {
					r.dashPts = append(r.dashPts, pt)
					end()
				} else {
					begin(pt, t)
				}
				open = !on
				on = !on
				idx = (idx + 1) % len(pattern)
				left = pattern[idx]
			}
			left -= l - pos
			if on {
				r.dashPts = append(r.dashPts, b)
			}
		}
		if open {
			end()
		}
	}
	return true
}

const (
	collinearityThreshold = 1e-6
	minDiscSegments       = 8
	maxDiscSegments       = 256
)
