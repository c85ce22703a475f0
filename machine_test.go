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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/pen/config"
	"seehuhn.de/go/pen/input"
	"seehuhn.de/go/pen/vpath"
)

const pause = 500 * time.Millisecond

func TestStartPhase(t *testing.T) {
	d := newDriver(t, vpath.New())
	assert.Equal(t, creating(Indicating), d.state())

	d = newDriver(t, square())
	assert.Equal(t, editing(Selecting), d.state())
}

// Scenario A: three separate clicks create an open path of three corner
// anchors.
func TestCreateByClicks(t *testing.T) {
	d := newDriver(t, vpath.New())
	for _, q := range [][2]float64{{0, 0}, {100, 0}, {100, 100}} {
		d.click(q[0], q[1])
		assert.Equal(t, creating(CreateDoneConfirm), d.state())
		d.wait(pause)
		assert.Equal(t, creating(Indicating), d.state())
	}

	p := d.m.Path()
	require.Equal(t, 3, p.Len())
	assert.False(t, p.Closed)
	for i, want := range []float64{0, 100, 100} {
		a := p.At(i)
		assert.Equal(t, want, a.Position.X)
		assert.False(t, a.HasHandles())
		assert.Equal(t, vpath.None, a.HandlerType)
	}

	ds := d.log.Take()
	require.Len(t, ds, 3)
	for i, delta := range ds {
		assert.Equal(t, vpath.DeltaInsert, delta.Op)
		assert.Equal(t, i, delta.Index)
	}

	assert.True(t, d.key(input.KeyEscape))
	assert.Equal(t, stateDone, d.state())
	assert.Equal(t, 1, d.done)
	assert.Equal(t, 3, p.Len())
}

// Scenario B: clicking the first anchor closes the path.
func TestCloseByClickingFirst(t *testing.T) {
	d := newDriver(t, vpath.New())
	for _, q := range [][2]float64{{0, 0}, {100, 0}, {100, 100}} {
		d.click(q[0], q[1])
		d.wait(pause)
	}
	d.log.Take()

	d.click(1, 2)
	p := d.m.Path()
	assert.True(t, p.Closed)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, editing(Selecting), d.state())
	assert.Nil(t, d.m.Context().Indicator)
	assert.Equal(t, []vpath.Delta{{Op: vpath.DeltaClose, Closed: true}}, d.log.Take())
}

// Scenario C: dragging an anchor moves it by exactly the drag offset.
func TestDragAnchor(t *testing.T) {
	d := newDriver(t, square())
	d.drag(0, 0, 10, 10)

	p := d.m.Path()
	assert.Equal(t, pt(10, 10), p.At(0).Position)
	assert.Equal(t, pt(100, 0), p.At(1).Position)
	assert.Equal(t, editing(Selecting), d.state())

	sel := d.m.Selected()
	require.Len(t, sel, 1)
	assert.Same(t, p.At(0), sel[0].Point)

	ds := d.log.Take()
	require.Len(t, ds, 1)
	assert.Equal(t, vpath.DeltaUpdate, ds[0].Op)
	assert.Equal(t, 0, ds[0].Index)
	assert.Equal(t, pt(10, 10), ds[0].Records[0].Position)
}

func TestReleaseAppliesOffset(t *testing.T) {
	d := newDriver(t, square())
	d.down(100, 0)
	d.move(110, 0)
	d.up(122, 0)

	p := d.m.Path()
	assert.Equal(t, pt(122, 0), p.At(1).Position)
	ds := d.log.Take()
	require.Len(t, ds, 1)
	assert.Equal(t, pt(122, 0), ds[0].Records[0].Position)

	// the same holds for a handle dragged out of a new anchor
	d = newDriver(t, vpath.New())
	d.down(0, 0)
	d.move(10, 0)
	d.up(25, 0)
	out, ok := d.m.Path().At(0).Out()
	require.True(t, ok)
	assert.Equal(t, pt(25, 0), out)
}

func TestDragSelection(t *testing.T) {
	d := newDriver(t, square())
	d.click(0, 0)
	d.mods = input.Shift
	d.click(100, 0)
	d.mods = 0
	require.Len(t, d.m.Selected(), 2)

	// dragging a selected anchor moves the whole selection
	d.drag(100, 0, 100, 20)
	p := d.m.Path()
	assert.Equal(t, pt(0, 20), p.At(0).Position)
	assert.Equal(t, pt(100, 20), p.At(1).Position)
	assert.Equal(t, pt(100, 100), p.At(2).Position)
}

// Scenario D: clicking a straight segment inserts an anchor on it.
func TestInsertOnStroke(t *testing.T) {
	d := newDriver(t, square())
	d.click(50, 0)

	p := d.m.Path()
	require.Equal(t, 5, p.Len())
	a := p.At(1)
	assert.InDelta(t, 50, a.Position.X, 1e-6)
	assert.InDelta(t, 0, a.Position.Y, 1e-9)
	if out, ok := a.AbsOut(); ok {
		assert.InDelta(t, 0, out.Y, 1e-9)
	}
	assert.Equal(t, editing(Selecting), d.state())

	sel := d.m.Selected()
	require.Len(t, sel, 1)
	assert.Same(t, a, sel[0].Point)
	assert.Equal(t, 1, sel[0].AnchorIndex)

	ds := d.log.Take()
	require.Len(t, ds, 3)
	assert.Equal(t, vpath.DeltaInsert, ds[0].Op)
	assert.Equal(t, 1, ds[0].Index)
	assert.Equal(t, 0, ds[1].Index)
	assert.Equal(t, 2, ds[2].Index)
}

func TestCreateWithHandles(t *testing.T) {
	d := newDriver(t, vpath.New())
	d.drag(0, 0, 20, 0)
	assert.Equal(t, creating(CreateDoneConfirm), d.state())

	a := d.m.Path().At(0)
	require.NotNil(t, a)
	assert.Equal(t, vpath.Mirror, a.HandlerType)
	out, _ := a.Out()
	in, _ := a.In()
	assert.Equal(t, pt(20, 0), out)
	assert.Equal(t, pt(-20, 0), in)

	// with the free-handle modifier only the dragged handle is set
	d.wait(pause)
	d.mods = input.Alt
	d.drag(100, 0, 100, 30)
	b := d.m.Path().At(1)
	assert.Equal(t, vpath.Free, b.HandlerType)
	out, _ = b.Out()
	assert.Equal(t, pt(0, 30), out)
	_, ok := b.In()
	assert.False(t, ok)
}

func TestDoubleClickFinishes(t *testing.T) {
	d := newDriver(t, vpath.New())
	d.click(0, 0)
	d.wait(pause)
	d.click(50, 0)
	d.wait(100 * time.Millisecond)
	d.click(51, 0)

	assert.Equal(t, stateDone, d.state())
	assert.Equal(t, 2, d.m.Path().Len())
	assert.Equal(t, 1, d.done)
	assert.Zero(t, d.sched.Pending())

	// the machine ignores all input once done
	assert.False(t, d.move(10, 10))
	assert.False(t, d.down(10, 10))
}

func TestSlowDoubleClickFinishes(t *testing.T) {
	d := newDriver(t, vpath.New())
	d.click(0, 0)
	d.wait(pause)
	d.click(50, 0)
	d.wait(290 * time.Millisecond)
	require.Equal(t, creating(CreateDoneConfirm), d.state())
	d.click(50, 0)

	assert.Equal(t, stateDone, d.state())
	assert.Equal(t, 2, d.m.Path().Len())
	assert.Equal(t, 1, d.done)
}

func TestDebounceCancelled(t *testing.T) {
	d := newDriver(t, vpath.New())
	d.click(0, 0)
	assert.Equal(t, creating(CreateDoneConfirm), d.state())
	assert.Equal(t, 1, d.sched.Pending())

	// leaving the state early stops the timer
	d.move(40, 40)
	assert.Equal(t, creating(Indicating), d.state())
	assert.Zero(t, d.sched.Pending())
	d.wait(time.Second)
	assert.Equal(t, creating(Indicating), d.state())

	// an undisturbed debounce times out
	d.click(40, 40)
	require.Equal(t, creating(CreateDoneConfirm), d.state())
	d.wait(time.Second)
	assert.Equal(t, creating(Indicating), d.state())
	assert.Zero(t, d.sched.Pending())
}

func TestWallClockTimeout(t *testing.T) {
	cfg := *config.Default()
	cfg.Timing.DoneConfirm = 5 * time.Millisecond
	m := NewMachine(vpath.New(), WithConfig(&cfg))
	m.Start()
	defer m.Close()

	n := cfg.Normalizer()
	for _, r := range []input.Raw{
		{Kind: input.RawDown, X: 1, Y: 1, Button: input.ButtonLeft},
		{Kind: input.RawUp, X: 1, Y: 1, Button: input.ButtonLeft},
	} {
		ev, ok := n.Normalize(r)
		require.True(t, ok)
		m.Handle(ev)
	}
	assert.Eventually(t, func() bool {
		return m.State() == creating(Indicating)
	}, time.Second, time.Millisecond)
}

func TestIndicator(t *testing.T) {
	d := newDriver(t, vpath.New())
	d.click(0, 0)
	d.move(30, 40)

	c := d.m.Context()
	require.NotNil(t, c.Indicator)
	assert.Equal(t, pt(30, 40), c.Indicator.Position)
	assert.Equal(t, 1, d.m.Path().Len())

	f := d.lastFrame()
	require.NotEmpty(t, f.Styles)
	assert.Nil(t, f.Styles[0].Style)
	var seg *Style
	for _, sc := range f.Styles {
		if sc.Key.Part == PartIndicatorSegment {
			seg = sc.Style
		}
	}
	require.NotNil(t, seg)
	require.NotNil(t, seg.Segment)
	assert.Equal(t, pt(0, 0), seg.Segment.P0)
	assert.Equal(t, pt(30, 40), seg.Segment.P3)

	d.key(input.KeyEnter)
	assert.Equal(t, stateDone, d.state())
	assert.Equal(t, []StyleChange{{}}, d.lastFrame().Styles)
}

func TestMarquee(t *testing.T) {
	d := newDriver(t, square())

	// plain marquee replaces the selection
	d.click(100, 100)
	d.drag(-10, -10, 110, 50)
	assert.Equal(t, editing(EditDoneConfirm), d.state())
	assert.ElementsMatch(t, []*vpath.Anchor{d.m.Path().At(0), d.m.Path().At(1)}, selectedPoints(d))
	assert.False(t, d.m.Context().MarqueeActive)
	d.wait(pause)
	assert.Equal(t, editing(Selecting), d.state())

	// with the multi-select modifier the marquee toggles
	d.click(300, 300)
	d.wait(pause)
	d.click(0, 0)
	require.Len(t, d.m.Selected(), 1)
	d.mods = input.Shift
	d.drag(-10, -10, 110, 50)
	assert.Equal(t, []*vpath.Anchor{d.m.Path().At(1)}, selectedPoints(d))
}

func TestMarqueeCancel(t *testing.T) {
	d := newDriver(t, square())
	d.click(0, 0)
	d.down(-10, -10)
	d.move(50, 50)
	d.move(110, 110)
	assert.Equal(t, editing(Marqueeing), d.state())
	assert.Len(t, d.m.Selected(), 4)
	assert.True(t, d.m.Context().MarqueeActive)

	d.key(input.KeyEscape)
	assert.Equal(t, editing(Selecting), d.state())
	assert.Equal(t, []*vpath.Anchor{d.m.Path().At(0)}, selectedPoints(d))
	assert.False(t, d.m.Context().MarqueeActive)
	assert.False(t, d.up(110, 110))
}

func TestClickEmptyDeselects(t *testing.T) {
	d := newDriver(t, square())
	d.click(0, 0)
	require.Len(t, d.m.Selected(), 1)
	d.click(200, 200)
	assert.Empty(t, d.m.Selected())
	assert.Equal(t, editing(EditDoneConfirm), d.state())

	// a double click outside the path finishes editing
	d.wait(100 * time.Millisecond)
	d.click(200, 200)
	assert.Equal(t, stateDone, d.state())
}

func TestShiftClickDeselects(t *testing.T) {
	d := newDriver(t, square())
	d.click(0, 0)
	d.mods = input.Shift
	d.click(100, 0)
	require.Len(t, d.m.Selected(), 2)
	d.click(0, 0)
	assert.Equal(t, []*vpath.Anchor{d.m.Path().At(1)}, selectedPoints(d))
}

func TestFillSelectsAll(t *testing.T) {
	d := newDriver(t, square())
	d.drag(50, 50, 60, 50)
	p := d.m.Path()
	assert.Len(t, d.m.Selected(), 4)
	assert.Equal(t, pt(10, 0), p.At(0).Position)
	assert.Equal(t, pt(110, 100), p.At(2).Position)
	assert.Len(t, d.log.Take(), 4)
}

func TestEscapeRevertsDrag(t *testing.T) {
	d := newDriver(t, square())
	d.down(0, 0)
	d.move(20, 0)
	d.move(40, 0)
	assert.Equal(t, editing(EditAdjusting), d.state())
	assert.Equal(t, pt(40, 0), d.m.Path().At(0).Position)

	d.key(input.KeyEscape)
	assert.Equal(t, editing(Selecting), d.state())
	assert.Equal(t, pt(0, 0), d.m.Path().At(0).Position)
	assert.False(t, d.up(40, 0))
	assert.Empty(t, d.log.Take())
}

func TestDelete(t *testing.T) {
	d := newDriver(t, square())
	d.click(100, 0)
	assert.True(t, d.key(input.KeyDelete))

	p := d.m.Path()
	assert.Equal(t, 3, p.Len())
	assert.True(t, p.Closed)
	assert.Empty(t, d.m.Selected())
	assert.Equal(t, editing(Selecting), d.state())
	assert.Equal(t, []vpath.Delta{{Op: vpath.DeltaRemove, Index: 1, Count: 1}}, d.log.Take())

	// nothing selected: nothing happens
	d.key(input.KeyBackspace)
	assert.Equal(t, 3, p.Len())
	assert.Empty(t, d.log.Take())
}

func TestDeleteAll(t *testing.T) {
	d := newDriver(t, square())
	d.click(50, 50)
	require.Len(t, d.m.Selected(), 4)
	d.key(input.KeyBackspace)

	p := d.m.Path()
	assert.Zero(t, p.Len())
	assert.False(t, p.Closed)
	assert.Equal(t, creating(Indicating), d.state())

	// and the next click starts a new path
	d.click(5, 5)
	assert.Equal(t, 1, p.Len())
}

func TestDeleteHandle(t *testing.T) {
	p := square()
	p.At(1).HandlerType = vpath.Mirror
	p.At(1).SetOut(pt(0, 30))
	d := newDriver(t, p)

	d.click(100, 30)
	sel := d.m.Selected()
	require.Len(t, sel, 1)
	assert.Equal(t, vpath.HitOutHandler, sel[0].Kind)

	d.key(input.KeyDelete)
	a := p.At(1)
	assert.Equal(t, 4, p.Len())
	_, ok := a.Out()
	assert.False(t, ok)
	in, ok := a.In()
	assert.True(t, ok)
	assert.Equal(t, pt(0, -30), in)
	assert.Equal(t, vpath.Free, a.HandlerType)
	assert.Equal(t, vpath.HitAnchor, d.m.Selected()[0].Kind)
}

func TestDragHandle(t *testing.T) {
	p := square()
	a := p.At(1)
	a.HandlerType = vpath.Mirror
	a.SetOut(pt(0, 30))
	d := newDriver(t, p)

	d.drag(100, 30, 130, 30)
	out, _ := a.Out()
	in, _ := a.In()
	assert.Equal(t, pt(30, 30), out)
	assert.Equal(t, pt(-30, -30), in)
	assert.Equal(t, pt(100, 0), a.Position)

	// the free-handle modifier breaks the coupling mid-drag
	d.mods = input.Alt
	d.drag(130, 30, 130, 60)
	out, _ = a.Out()
	in, _ = a.In()
	assert.Equal(t, vpath.Free, a.HandlerType)
	assert.Equal(t, pt(30, 60), out)
	assert.Equal(t, pt(-30, -30), in)
}

func TestPullHandle(t *testing.T) {
	d := newDriver(t, square())
	d.mods = input.Alt
	d.drag(0, 0, 0, 20)

	a := d.m.Path().At(0)
	assert.Equal(t, pt(0, 0), a.Position)
	assert.Equal(t, vpath.Mirror, a.HandlerType)
	out, _ := a.Out()
	in, _ := a.In()
	assert.Equal(t, pt(0, 20), out)
	assert.Equal(t, pt(0, -20), in)

	sel := d.m.Selected()
	require.Len(t, sel, 1)
	assert.Equal(t, vpath.HitOutHandler, sel[0].Kind)
}

func TestToggleHandler(t *testing.T) {
	d := newDriver(t, square())
	d.mods = input.Ctrl
	d.click(100, 0)

	a := d.m.Path().At(1)
	assert.Equal(t, vpath.Mirror, a.HandlerType)
	out, _ := a.Out()
	in, _ := a.In()
	assert.Equal(t, pt(25, 25), out)
	assert.Equal(t, pt(-25, -25), in)

	d.click(100, 0)
	assert.False(t, a.HasHandles())
	assert.Equal(t, vpath.None, a.HandlerType)
}

func TestToggleModifierOnEndpoint(t *testing.T) {
	p := vpath.New(vpath.NewAnchor(pt(0, 0)), vpath.NewAnchor(pt(100, 0)), vpath.NewAnchor(pt(100, 100)))
	d := newDriver(t, p)
	d.mods = input.Ctrl
	d.click(100, 100)

	assert.Equal(t, creating(Indicating), d.state())
	assert.Equal(t, End, d.m.Context().Direction)
	assert.False(t, p.At(2).HasHandles())
}

func TestResume(t *testing.T) {
	p := vpath.New(vpath.NewAnchor(pt(0, 0)), vpath.NewAnchor(pt(100, 0)))
	d := newDriver(t, p)
	require.Equal(t, editing(Selecting), d.state())

	// clicking the last anchor continues the path at its end
	d.click(100, 0)
	assert.Equal(t, creating(Indicating), d.state())
	assert.Equal(t, End, d.m.Context().Direction)
	d.click(200, 0)
	require.Equal(t, 3, p.Len())
	assert.Equal(t, pt(200, 0), p.At(2).Position)
	d.key(input.KeyEscape)

	// clicking the first anchor continues the path at its start
	d = newDriver(t, p)
	d.click(0, 0)
	assert.Equal(t, Start, d.m.Context().Direction)
	d.click(-100, 0)
	require.Equal(t, 4, p.Len())
	assert.Equal(t, pt(-100, 0), p.At(0).Position)

	// closing now targets the anchor at the far end
	d.wait(pause)
	d.click(200, 0)
	assert.True(t, p.Closed)
	assert.Equal(t, editing(Selecting), d.state())
}

func TestEnterResumesSelectedEndpoint(t *testing.T) {
	p := vpath.New(vpath.NewAnchor(pt(0, 0)), vpath.NewAnchor(pt(100, 0)))
	d := newDriver(t, p)
	d.mods = input.Shift
	d.click(100, 0) // multi-select keeps editing
	d.mods = 0
	require.Equal(t, editing(Selecting), d.state())
	require.Len(t, d.m.Selected(), 1)

	d.key(input.KeyEnter)
	assert.Equal(t, creating(Indicating), d.state())
	assert.Equal(t, End, d.m.Context().Direction)
}

func TestViewportScale(t *testing.T) {
	d := newDriver(t, square())
	d.click(0, 5)
	assert.Equal(t, 4, d.m.Path().Len())
	assert.Same(t, d.m.Path().At(0), d.m.Selected()[0].Point)

	// zoomed in, the same screen tolerance covers less of the path
	d = newDriver(t, square())
	d.m.SetViewportScale(4)
	d.click(0, 5)
	assert.Equal(t, 5, d.m.Path().Len())
}

func TestApplyRemote(t *testing.T) {
	// edits made on one machine are replayed on a replica
	d := newDriver(t, vpath.New())
	for _, q := range [][2]float64{{0, 0}, {100, 0}, {100, 100}} {
		d.click(q[0], q[1])
		d.wait(pause)
	}
	d.click(0, 0)
	d.drag(100, 0, 120, 0)

	replica := vpath.New()
	r := newDriver(t, replica)
	assert.Equal(t, len(d.log.Deltas), r.m.ApplyRemote(d.log.Deltas...))
	require.Equal(t, 3, replica.Len())
	assert.True(t, replica.Closed)
	for i := range 3 {
		assert.Equal(t, d.m.Path().At(i).Record(), replica.At(i).Record())
	}

	// removing a selected anchor remotely drops it from the selection
	e := newDriver(t, square())
	e.click(100, 100)
	require.Len(t, e.m.Selected(), 1)
	frames := len(e.frames)
	e.m.ApplyRemote(vpath.Delta{Op: vpath.DeltaRemove, Index: 2, Count: 1})
	assert.Empty(t, e.m.Selected())
	assert.Equal(t, frames+1, len(e.frames))

	// remaining selection entries are re-indexed
	e.click(0, 100)
	require.Equal(t, 2, e.m.Selected()[0].AnchorIndex)
	e.m.ApplyRemote(vpath.Delta{Op: vpath.DeltaRemove, Index: 0, Count: 1})
	assert.Equal(t, 1, e.m.Selected()[0].AnchorIndex)
}

func TestInputBeforeStart(t *testing.T) {
	m := NewMachine(nil)
	ev := input.Event{Mouse: &input.Mouse{X: 1, Y: 1, Type: input.MouseDown, Trigger: input.ButtonLeft}}
	assert.False(t, m.Handle(ev))
	assert.Equal(t, stateInitial, m.State())
}

func selectedPoints(d *driver) []*vpath.Anchor {
	var res []*vpath.Anchor
	for _, h := range d.m.Selected() {
		res = append(res, h.Point)
	}
	return res
}
