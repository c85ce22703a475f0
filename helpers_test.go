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
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pen/config"
	"seehuhn.de/go/pen/input"
	"seehuhn.de/go/pen/vpath"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// square returns the closed square with corners (0,0), (100,0), (100,100)
// and (0,100), in this order.
func square() *vpath.Path {
	p := vpath.New(
		vpath.NewAnchor(pt(0, 0)),
		vpath.NewAnchor(pt(100, 0)),
		vpath.NewAnchor(pt(100, 100)),
		vpath.NewAnchor(pt(0, 100)),
	)
	p.Closed = true
	return p
}

// driver feeds raw input through a normalizer into a machine, with time
// under test control.
type driver struct {
	t      *testing.T
	m      *Machine
	n      *input.Normalizer
	clock  *clock.Mock
	sched  *Scheduler
	log    *DeltaLog
	frames []Frame
	done   int

	// mods are sent with every raw event
	mods input.Modifiers
}

func newDriver(t *testing.T, p *vpath.Path, opts ...Option) *driver {
	t.Helper()
	cfg := config.Default()
	d := &driver{
		t:     t,
		n:     cfg.Normalizer(),
		clock: clock.NewMock(),
		log:   &DeltaLog{},
	}
	d.clock.Set(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	d.sched = NewScheduler(d.clock)
	all := []Option{
		WithConfig(cfg),
		WithScheduler(d.sched),
		WithReplicator(d.log),
		WithRenderer(RendererFunc(func(f Frame) { d.frames = append(d.frames, f) })),
		WithOnDone(func() { d.done++ }),
	}
	d.m = NewMachine(p, append(all, opts...)...)
	d.m.Start()
	t.Cleanup(d.m.Close)
	return d
}

func (d *driver) raw(r input.Raw) bool {
	r.Time = d.clock.Now()
	r.Modifiers = d.mods
	ev, ok := d.n.Normalize(r)
	if !ok {
		return false
	}
	return d.m.Handle(ev)
}

func (d *driver) move(x, y float64) bool {
	return d.raw(input.Raw{Kind: input.RawMove, X: x, Y: y})
}

func (d *driver) down(x, y float64) bool {
	return d.raw(input.Raw{Kind: input.RawDown, X: x, Y: y, Button: input.ButtonLeft})
}

func (d *driver) up(x, y float64) bool {
	return d.raw(input.Raw{Kind: input.RawUp, X: x, Y: y, Button: input.ButtonLeft})
}

func (d *driver) click(x, y float64) {
	d.down(x, y)
	d.up(x, y)
}

// drag presses at (x0, y0), moves to (x1, y1) in four steps and releases.
func (d *driver) drag(x0, y0, x1, y1 float64) {
	d.down(x0, y0)
	for k := 1; k <= 4; k++ {
		s := float64(k) / 4
		d.move(x0+s*(x1-x0), y0+s*(y1-y0))
	}
	d.up(x1, y1)
}

func (d *driver) key(name string) bool {
	ok := d.raw(input.Raw{Kind: input.RawKeyDown, Key: name})
	d.raw(input.Raw{Kind: input.RawKeyUp, Key: name})
	return ok
}

// wait advances the clock and lets every timeout which fell due run.
func (d *driver) wait(dt time.Duration) {
	d.clock.Add(dt)
	d.sched.Settle()
}

func (d *driver) state() State {
	return d.m.State()
}

func (d *driver) lastFrame() Frame {
	d.t.Helper()
	if len(d.frames) == 0 {
		d.t.Fatal("no frame rendered")
	}
	return d.frames[len(d.frames)-1]
}
