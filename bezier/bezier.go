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

// Package bezier implements the vector and cubic Bézier arithmetic used by
// the path editor.
//
// Points and vectors are [vec.Vec2] values.  All functions avoid producing
// NaN or infinite results: degenerate inputs (division by zero, zero-length
// vectors) are returned unchanged.
package bezier

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// ArcSubdivisions is the number of chords used by [Cubic.ArcLength].
// The value is fixed so that the cost of arc length queries, which run on
// every pointer move, stays bounded.
const ArcSubdivisions = 10

// Div divides v by d.  If d is zero, v is returned unchanged.
func Div(v vec.Vec2, d float64) vec.Vec2 {
	if d == 0 {
		return v
	}
	return vec.Vec2{X: v.X / d, Y: v.Y / d}
}

// Mirror returns -v.
func Mirror(v vec.Vec2) vec.Vec2 {
	return v.Neg()
}

// MirrorAngle returns a vector pointing in the opposite direction of v,
// with the given length.  A zero vector v is returned unchanged, since it
// has no direction.
func MirrorAngle(v vec.Vec2, length float64) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(-length / l)
}

// Lerp interpolates linearly between a (t=0) and b (t=1).
func Lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b vec.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Cubic is a cubic Bézier segment given by absolute control points.
// P0 and P3 are the end points, P1 and P2 the off-curve control points.
type Cubic struct {
	P0, P1, P2, P3 vec.Vec2
}

// At evaluates the curve at parameter t.
func (c Cubic) At(t float64) vec.Vec2 {
	// B(t) = (1-t)³P0 + 3(1-t)²tP1 + 3(1-t)t²P2 + t³P3
	omt := 1 - t
	b0 := omt * omt * omt
	b1 := 3 * omt * omt * t
	b2 := 3 * omt * t * t
	b3 := t * t * t
	return vec.Vec2{
		X: b0*c.P0.X + b1*c.P1.X + b2*c.P2.X + b3*c.P3.X,
		Y: b0*c.P0.Y + b1*c.P1.Y + b2*c.P2.Y + b3*c.P3.Y,
	}
}

// ArcLength approximates the length of the curve by the length of an
// inscribed polyline with [ArcSubdivisions] chords.
func (c Cubic) ArcLength() float64 {
	total := 0.0
	prev := c.P0
	for i := 1; i <= ArcSubdivisions; i++ {
		pt := c.At(float64(i) / ArcSubdivisions)
		total += Distance(prev, pt)
		prev = pt
	}
	return total
}

// Split divides the curve at parameter t using de Casteljau's algorithm.
// The two halves together trace exactly the same curve as c.
func (c Cubic) Split(t float64) (left, right Cubic) {
	p01 := Lerp(c.P0, c.P1, t)
	p12 := Lerp(c.P1, c.P2, t)
	p23 := Lerp(c.P2, c.P3, t)
	p012 := Lerp(p01, p12, t)
	p123 := Lerp(p12, p23, t)
	mid := Lerp(p012, p123, t)

	left = Cubic{P0: c.P0, P1: p01, P2: p012, P3: mid}
	right = Cubic{P0: mid, P1: p123, P2: p23, P3: c.P3}
	return left, right
}

// Tangents returns the two second-level de Casteljau points at parameter t.
// These are the control points adjacent to the on-curve point c.At(t) after
// splitting, i.e. the tangent points of the quadratic Bézier curves which
// blend into the cubic.
func (c Cubic) Tangents(t float64) (before, after vec.Vec2) {
	p01 := Lerp(c.P0, c.P1, t)
	p12 := Lerp(c.P1, c.P2, t)
	p23 := Lerp(c.P2, c.P3, t)
	return Lerp(p01, p12, t), Lerp(p12, p23, t)
}

// Parameters for [Cubic.Closest].  The search cost is fixed: a coarse scan
// followed by a fixed number of bisection-style refinement steps.
const (
	closestSamples = 24
	closestRefine  = 16
)

// Closest finds the point on the curve nearest to p.  It returns the curve
// parameter, the curve point and its distance from p.
func (c Cubic) Closest(p vec.Vec2) (t float64, pt vec.Vec2, dist float64) {
	bestT := 0.0
	bestD := math.Inf(1)
	for i := 0; i <= closestSamples; i++ {
		ti := float64(i) / closestSamples
		if d := Distance(c.At(ti), p); d < bestD {
			bestT, bestD = ti, d
		}
	}

	step := 1.0 / closestSamples
	for range closestRefine {
		step /= 2
		for _, ti := range [2]float64{bestT - step, bestT + step} {
			ti = max(0, min(1, ti))
			if d := Distance(c.At(ti), p); d < bestD {
				bestT, bestD = ti, d
			}
		}
	}

	return bestT, c.At(bestT), bestD
}
