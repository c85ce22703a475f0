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
	"context"
	"slices"
	"sync"

	"seehuhn.de/go/pen/config"
	"seehuhn.de/go/pen/input"
	"seehuhn.de/go/pen/vpath"
)

// Machine is the editing state machine for a single path.
//
// All methods are safe for concurrent use.  The [Renderer] and the
// [Replicator] are called with the machine locked; the callback set by
// [WithOnDone] is called after the lock has been released.
type Machine struct {
	mu sync.Mutex

	c     *StateContext
	cfg   *config.Config
	state State

	stream   input.Stream
	sched    *Scheduler
	renderer Renderer
	repl     Replicator
	onDone   func()

	started  bool
	consumed bool
	finished bool

	// cancel ends the subscription of the current state, timer is the
	// pending timeout of a done-confirm state.
	cancel context.CancelFunc
	timer  Timer
}

// An Option configures a [Machine].
type Option func(*Machine)

// WithConfig sets the configuration.  The default is [config.Default].
func WithConfig(cfg *config.Config) Option {
	return func(m *Machine) {
		if cfg != nil {
			m.cfg = cfg
		}
	}
}

// WithScheduler sets the scheduler for the done-confirm timeouts.  The
// default runs on the wall clock.
func WithScheduler(s *Scheduler) Option {
	return func(m *Machine) {
		if s != nil {
			m.sched = s
		}
	}
}

// WithRenderer sets the render collaborator.
func WithRenderer(r Renderer) Option {
	return func(m *Machine) {
		m.renderer = r
	}
}

// WithReplicator sets the receiver of committed edits.
func WithReplicator(r Replicator) Option {
	return func(m *Machine) {
		if r != nil {
			m.repl = r
		}
	}
}

// WithOnDone sets a function which is called once the machine reaches
// [PhaseDone].
func WithOnDone(f func()) Option {
	return func(m *Machine) {
		m.onDone = f
	}
}

// NewMachine creates an editing machine for p.  The machine does not react
// to input until [Machine.Start] is called.
func NewMachine(p *vpath.Path, opts ...Option) *Machine {
	if p == nil {
		p = vpath.New()
	}
	m := &Machine{
		cfg:   config.Default(),
		sched: NewScheduler(nil),
		repl:  nopReplicator{},
		state: stateInitial,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.c = newStateContext(p, m.cfg)
	return m
}

// Start enters the initial state.  Paths without anchors start in
// [PhaseCreating], all others in [PhaseEditing].
func (m *Machine) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.step(event{Kind: EvInit})
	m.flush()
	done := m.takeDone()
	m.mu.Unlock()

	done()
}

// Handle processes a normalized input event.  It reports whether the
// current state accepted the event.
func (m *Machine) Handle(ie input.Event) bool {
	m.mu.Lock()
	m.consumed = false
	m.stream.Publish(ie)
	consumed := m.consumed
	if consumed {
		m.flush()
	}
	done := m.takeDone()
	m.mu.Unlock()

	done()
	return consumed
}

// ApplyRemote applies edits received from collaborators and returns the
// number of deltas which could be applied.  Selection entries referring
// to removed anchors are dropped.
func (m *Machine) ApplyRemote(ds ...vpath.Delta) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.c.Path.ApplyDelta(ds...)
	c := m.c
	c.reindex()
	if c.hasPress && c.press.Kind != vpath.HitFill && c.Path.IndexOf(c.press.Point) < 0 {
		c.hasPress = false
	}
	for a := range c.before {
		if c.Path.IndexOf(a) < 0 {
			delete(c.before, a)
		}
	}
	m.flush()
	return n
}

// SetViewportScale sets the zoom factor of the view.  Hit tolerances are
// given in screen units and are divided by the scale.  Non-positive values
// are ignored.
func (m *Machine) SetViewportScale(s float64) {
	if s <= 0 {
		return
	}
	m.mu.Lock()
	m.c.scale = s
	m.mu.Unlock()
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Selected returns a copy of the current selection.
func (m *Machine) Selected() []vpath.HitResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.c.Selected)
}

// Path returns the edited path.  The path must not be modified while the
// machine is in use.
func (m *Machine) Path() *vpath.Path {
	return m.c.Path
}

// Context returns the state context.  It must only be read from within a
// [Renderer], or while no other goroutine uses the machine.
func (m *Machine) Context() *StateContext {
	return m.c
}

// Close cancels the subscription and the pending timeout of the current
// state.  The machine ignores all input afterwards.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exit()
	m.stream.Close()
}

// step runs a single transition.
func (m *Machine) step(ev event) {
	next, effs := transition(m.state, ev, m.c)
	for _, e := range effs {
		m.apply(e, ev)
	}
	if next == m.state {
		return
	}
	Logger().Debug("pen: transition",
		"from", m.state, "to", next, "event", ev.Kind)
	m.exit()
	m.state = next
	m.enter()
}

// enter subscribes the current state to its view of the input stream, and
// arms the timeout of the done-confirm states.
func (m *Machine) enter() {
	if m.state.Phase == PhaseDone {
		m.finished = true
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	if f := filterFor(m.state); f != nil {
		m.stream.Subscribe(ctx, f, func(ie input.Event) {
			m.consumed = true
			m.dispatch(ie)
		})
	}
	if m.state.isDoneConfirm() {
		m.timer = m.sched.AfterFunc(m.cfg.Timing.DoneConfirm, func() {
			m.timeout(ctx)
		})
	}
}

// exit cancels everything the current state set up on entry.
func (m *Machine) exit() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// dispatch is called by the stream, with the machine locked.
func (m *Machine) dispatch(ie input.Event) {
	ev, ok := classify(ie, m.c)
	if !ok {
		return
	}
	m.step(ev)
}

func (m *Machine) timeout(ctx context.Context) {
	m.mu.Lock()
	if ctx.Err() != nil {
		// The state was left before the timer fired.
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.step(event{Kind: EvTimeout})
	m.flush()
	done := m.takeDone()
	m.mu.Unlock()

	done()
}

func (m *Machine) flush() {
	if m.renderer == nil {
		return
	}
	m.renderer.Render(Frame{
		Path:   m.c.Path,
		State:  m.state,
		Styles: m.c.styles(),
	})
}

// takeDone returns the function to call after the lock is released.
func (m *Machine) takeDone() func() {
	if !m.finished || m.onDone == nil {
		return func() {}
	}
	m.finished = false
	return m.onDone
}

// filterFor returns the view of the input stream seen by state s.
func filterFor(s State) input.Filter {
	switch s.Phase {
	case PhaseCreating, PhaseEditing:
	default:
		return nil
	}

	idle := s == creating(Indicating) || s == editing(Selecting) || s.isDoneConfirm()
	if idle {
		return input.AnyOf(
			input.Mice(input.MouseMove, input.MouseDown),
			input.KeysDown(input.KeyEscape, input.KeyEnter, input.KeyDelete, input.KeyBackspace),
		)
	}
	return input.AnyOf(
		input.Mice(input.MouseMove, input.MouseUp),
		input.KeysDown(input.KeyEscape),
	)
}

func (m *Machine) apply(e effect, ev event) {
	switch e {
	case effHover:
		m.c.Hover, m.c.HasHover = ev.Hit, ev.HasHit
	case effUpdateIndicator:
		m.updateIndicator(ev)
	case effBeginAnchor:
		m.beginAnchor(ev)
	case effDragHandle:
		m.dragHandle(ev)
	case effCommitAnchor:
		m.commitAnchor()
	case effClosePath:
		m.closePath()
	case effLeaveCreating:
		m.c.Indicator = nil
	case effFinalize:
		m.finalize()
	case effPress:
		m.press(ev)
	case effInsertAnchor:
		m.insertAnchor(ev)
	case effSelectAll:
		m.selectAll(ev)
	case effDeselect:
		m.deselect()
	case effToggleHandler:
		m.toggleHandler()
	case effResume:
		m.resume(m.c.press)
	case effResumeSelected:
		m.resume(m.c.Selected[0])
	case effBeginAdjust:
		m.beginAdjust()
	case effAdjust:
		m.adjust(ev)
	case effCommitAdjust:
		m.commitAdjust()
	case effRevertAdjust:
		m.revertAdjust()
	case effBeginMarquee:
		m.beginMarquee(ev)
	case effUpdateMarquee:
		m.updateMarquee(ev)
	case effEndMarquee:
		m.endMarquee()
	case effCancelMarquee:
		m.cancelMarquee()
	case effDeleteSelection:
		m.deleteSelection()
	case effRestartCreating:
		m.c.Direction = End
		m.c.Indicator = nil
	}
}

// drop logs an effect which could not be carried out.
func drop(e effect, reason string) {
	Logger().Debug("pen: dropped", "effect", e, "reason", reason)
}
