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


// Package preview is a reference render collaborator for the pen editing
// machine.  It draws the edited path, the anchors and handles, and all
// highlighting from the style queue into a grayscale image.
package preview

import (
	"image"
	"image/png"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/pen"
	"seehuhn.de/go/pen/raster"
	"seehuhn.de/go/pen/vpath"
)

// Gray levels used for the different parts of the drawing.
const (
	LevelFill      uint8 = 48
	LevelHandle    uint8 = 96
	LevelAnchor    uint8 = 128
	LevelStroke    uint8 = 160
	LevelIndicator uint8 = 200
	LevelHover     uint8 = 220
	LevelSelected  uint8 = 255
)

// Canvas implements [pen.Renderer] by drawing every frame into Img.
type Canvas struct {
	Img *image.Gray

	// View maps parent coordinates to pixel coordinates.
	View matrix.Matrix

	// AnchorSize is half the side length of the anchor squares, in
	// pixels.
	AnchorSize float64

	r      *raster.Rasteriser
	styles map[pen.NodeKey]*pen.Style
	frames int
}

// New allocates a canvas of the given size.
func New(width, height int) *Canvas {
	return &Canvas{
		Img:        image.NewGray(image.Rect(0, 0, width, height)),
		View:       matrix.Identity,
		AnchorSize: 3,
		r:          raster.NewRasteriser(rect.Rect{URx: float64(width), URy: float64(height)}),
		styles:     make(map[pen.NodeKey]*pen.Style),
	}
}

// Render applies the style queue of f and redraws the image.
func (c *Canvas) Render(f pen.Frame) {
	for _, sc := range f.Styles {
		if sc.Style == nil {
			clear(c.styles)
			continue
		}
		c.styles[sc.Key] = sc.Style
	}
	c.frames++
	c.Draw(f.Path)
}

// Frames returns the number of frames rendered so far.
func (c *Canvas) Frames() int {
	return c.frames
}

// WritePNG encodes the current image as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Img)
}

// Draw redraws the image for path p, using the current styles.
func (c *Canvas) Draw(p *vpath.Path) {
	clear(c.Img.Pix)
	if p == nil {
		return
	}
	xf := then(p.Transform(), c.View)
	toPixel := xf.Apply

	d := mapData(p.Data(), xf)
	if p.Closed {
		c.fill(d, raster.EvenOdd, c.level(pen.NodeKey{Part: pen.PartFill, Segment: -1}, LevelFill))
	}
	c.stroke(d, 1, nil, LevelStroke)

	for i := range p.NumSegments() {
		key := pen.NodeKey{Part: pen.PartSegment, Segment: i}
		if _, ok := c.styles[key]; !ok {
			continue
		}
		seg, _ := p.Segment(i)
		sd := (&path.Data{}).
			MoveTo(toPixel(seg.P0)).
			CubeTo(toPixel(seg.P1), toPixel(seg.P2), toPixel(seg.P3))
		c.stroke(sd, 2, nil, c.level(key, LevelStroke))
	}

	// transient nodes are drawn below the anchors
	for key, st := range c.styles {
		switch key.Part {
		case pen.PartIndicator:
			if key.Anchor != nil {
				c.dot(toPixel(key.Anchor.Position), 2*c.AnchorSize, LevelIndicator)
			}
		case pen.PartIndicatorSegment:
			if seg := st.Segment; seg != nil {
				sd := (&path.Data{}).
					MoveTo(toPixel(seg.P0)).
					CubeTo(toPixel(seg.P1), toPixel(seg.P2), toPixel(seg.P3))
				c.stroke(sd, 1, []float64{4, 4}, LevelIndicator)
			}
		case pen.PartMarquee:
			if r := st.Rect; r != nil {
				ll := c.View.Apply(vec.Vec2{X: r.LLx, Y: r.LLy})
				ur := c.View.Apply(vec.Vec2{X: r.URx, Y: r.URy})
				md := (&path.Data{}).
					MoveTo(ll).
					LineTo(vec.Vec2{X: ur.X, Y: ll.Y}).
					LineTo(ur).
					LineTo(vec.Vec2{X: ll.X, Y: ur.Y}).
					Close()
				c.stroke(md, 1, []float64{3, 3}, LevelSelected)
			}
		}
	}

	for _, a := range p.Anchors {
		pos := toPixel(a.Position)
		if in, ok := a.AbsIn(); ok {
			c.handle(pos, toPixel(in), c.level(anchorKey(pen.PartInHandle, a), LevelHandle))
		}
		if out, ok := a.AbsOut(); ok {
			c.handle(pos, toPixel(out), c.level(anchorKey(pen.PartOutHandle, a), LevelHandle))
		}
		c.square(pos, c.level(anchorKey(pen.PartAnchor, a), LevelAnchor))
	}
}

func anchorKey(part pen.Part, a *vpath.Anchor) pen.NodeKey {
	return pen.NodeKey{Part: part, Anchor: a, Segment: -1}
}

// level returns the gray level for the node key, taking highlighting into
// account.
func (c *Canvas) level(key pen.NodeKey, base uint8) uint8 {
	st, ok := c.styles[key]
	if !ok {
		return base
	}
	switch st.Role {
	case pen.RoleHover:
		return LevelHover
	case pen.RoleSelected:
		return LevelSelected
	}
	return base
}

func (c *Canvas) handle(from, to vec.Vec2, level uint8) {
	d := (&path.Data{}).MoveTo(from).LineTo(to)
	c.stroke(d, 1, nil, LevelHandle)
	c.dot(to, c.AnchorSize*4/3, level)
}

func (c *Canvas) square(center vec.Vec2, level uint8) {
	s := c.AnchorSize
	d := (&path.Data{}).
		MoveTo(vec.Vec2{X: center.X - s, Y: center.Y - s}).
		LineTo(vec.Vec2{X: center.X + s, Y: center.Y - s}).
		LineTo(vec.Vec2{X: center.X + s, Y: center.Y + s}).
		LineTo(vec.Vec2{X: center.X - s, Y: center.Y + s}).
		Close()
	c.fill(d, raster.NonZero, level)
}

// dot draws a filled disc of the given diameter.
func (c *Canvas) dot(center vec.Vec2, diameter float64, level uint8) {
	c.r.Width = diameter
	c.r.Cap = graphics.LineCapRound
	c.r.Dash = nil
	c.r.Stroke((&path.Data{}).MoveTo(center).LineTo(center), c.emit(level))
}

func (c *Canvas) fill(d *path.Data, rule raster.FillRule, level uint8) {
	c.r.Fill(d, rule, c.emit(level))
}

func (c *Canvas) stroke(d *path.Data, width float64, dash []float64, level uint8) {
	c.r.Width = width
	c.r.Cap = graphics.LineCapButt
	c.r.Dash = dash
	c.r.DashPhase = 0
	c.r.Stroke(d, c.emit(level))
}

// emit returns a coverage callback which paints with the given gray level
// over the existing image.
func (c *Canvas) emit(level uint8) func(y, xMin int, coverage []float32) {
	img := c.Img
	b := img.Bounds()
	return func(y, xMin int, coverage []float32) {
		if y < b.Min.Y || y >= b.Max.Y {
			return
		}
		for i, a := range coverage {
			x := xMin + i
			if x < b.Min.X || x >= b.Max.X || a <= 0 {
				continue
			}
			a = min(a, 1)
			k := img.PixOffset(x, y)
			v := float32(img.Pix[k])*(1-a) + float32(level)*a
			img.Pix[k] = uint8(v + 0.5)
		}
	}
}

// mapData returns a copy of d with all points mapped by m.
func mapData(d *path.Data, m matrix.Matrix) *path.Data {
	res := &path.Data{
		Cmds:   d.Cmds,
		Coords: make([]vec.Vec2, len(d.Coords)),
	}
	for i, v := range d.Coords {
		res.Coords[i] = m.Apply(v)
	}
	return res
}

// then returns the matrix which applies a first and b second.
func then(a, b matrix.Matrix) matrix.Matrix {
	return matrix.Matrix{
		a[0]*b[0] + a[1]*b[2], a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2], a[2]*b[1] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[2] + b[4], a[4]*b[1] + a[5]*b[3] + b[5],
	}
}
