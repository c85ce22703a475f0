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


// Command genref writes reference drawings for the editing scenarios.
// For every scenario it creates a PDF of the final path and a PNG of the
// last frame drawn by the preview renderer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/pen"
	"seehuhn.de/go/pen/scenarios"
	"seehuhn.de/go/pen/vpath"
)

func main() {
	refDir := flag.String("out", "testdata/reference", "output directory")
	verbose := flag.Bool("v", false, "log state transitions")
	flag.Parse()

	if *verbose {
		pen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := os.MkdirAll(*refDir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, "genref:", err)
		os.Exit(1)
	}

	for _, category := range slices.Sorted(maps.Keys(scenarios.All)) {
		for _, sc := range scenarios.All[category] {
			name := category + "_" + sc.Name
			if err := generate(sc, filepath.Join(*refDir, name)); err != nil {
				fmt.Fprintf(os.Stderr, "genref: %s: %v\n", name, err)
				os.Exit(1)
			}
		}
	}
}

func generate(sc scenarios.Scenario, base string) error {
	res := scenarios.Run(sc, nil)

	if err := writePDF(res.Path, sc.Width, sc.Height, base+".pdf"); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}

	f, err := os.Create(base + ".png")
	if err != nil {
		return err
	}
	if err := res.Canvas.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("writing PNG: %w", err)
	}
	return f.Close()
}

// writePDF draws the path on a single page: the even-odd fill of closed
// paths, the outline, and a small square for every anchor.
func writePDF(p *vpath.Path, width, height int, fname string) error {
	paper := &pdf.Rectangle{
		URx: float64(width),
		URy: float64(height),
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; the editor uses top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(height)})
	page.Transform(p.Transform())

	d := p.Data()
	drawData := func() {
		for cmd, pts := range d.Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
	}
	if p.Closed && p.Len() > 1 {
		page.SetFillColor(color.DeviceGray(0.85))
		drawData()
		page.FillEvenOdd()
	}

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(1)
	page.SetLineCap(graphics.LineCapButt)
	page.SetLineJoin(graphics.LineJoinRound)
	drawData()
	page.Stroke()

	page.SetLineWidth(0.5)
	page.SetStrokeColor(color.DeviceGray(0.4))
	for _, a := range p.Anchors {
		for _, h := range []func() (vec.Vec2, bool){a.AbsIn, a.AbsOut} {
			if pos, ok := h(); ok {
				page.MoveTo(a.Position.X, a.Position.Y)
				page.LineTo(pos.X, pos.Y)
				page.Stroke()
			}
		}
	}

	page.SetFillColor(color.DeviceGray(0))
	for _, a := range p.Anchors {
		page.Rectangle(a.Position.X-2, a.Position.Y-2, 4, 4)
	}
	page.Fill()

	return page.Close()
}
