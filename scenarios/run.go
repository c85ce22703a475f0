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


package scenarios

import (
	"time"

	"github.com/benbjohnson/clock"

	"seehuhn.de/go/pen"
	"seehuhn.de/go/pen/config"
	"seehuhn.de/go/pen/preview"
	"seehuhn.de/go/pen/vpath"
)

// eventInterval is the time which passes with every input event.
const eventInterval = 10 * time.Millisecond

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Result is the outcome of running a scenario.
type Result struct {
	Machine *pen.Machine
	Path    *vpath.Path
	Canvas  *preview.Canvas

	// Deltas are the edits reported to the replicator, in order.
	Deltas []vpath.Delta
}

// Initial returns the path a scenario starts from.
func (sc Scenario) Initial() *vpath.Path {
	p := vpath.New()
	for _, r := range sc.Start {
		p.AddAnchor(vpath.FromRecord(r))
	}
	p.Closed = sc.Closed
	return p
}

// Run replays the scenario on a fresh machine.  Time is simulated on a
// mock clock, which stamps the input events and drives the scheduler:
// every input event takes eventInterval, and pauses advance the clock by
// their duration.  If cfg is nil, the default configuration is used.
func Run(sc Scenario, cfg *config.Config) *Result {
	if cfg == nil {
		cfg = config.Default()
	}

	p := sc.Initial()
	mock := clock.NewMock()
	mock.Set(epoch)
	sched := pen.NewScheduler(mock)
	log := &pen.DeltaLog{}
	canvas := preview.New(sc.Width, sc.Height)
	m := pen.NewMachine(p,
		pen.WithConfig(cfg),
		pen.WithScheduler(sched),
		pen.WithReplicator(log),
		pen.WithRenderer(canvas),
	)
	m.Start()
	defer m.Close()

	n := cfg.Normalizer()
	for _, st := range sc.Steps {
		if st.Wait > 0 {
			mock.Add(st.Wait)
			sched.Settle()
			continue
		}
		r := st.Raw
		r.Time = mock.Now()
		if ev, ok := n.Normalize(r); ok {
			m.Handle(ev)
		}
		mock.Add(eventInterval)
		sched.Settle()
	}

	return &Result{
		Machine: m,
		Path:    p,
		Canvas:  canvas,
		Deltas:  log.Deltas,
	}
}
