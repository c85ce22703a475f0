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
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// A Timer is a pending call scheduled by a [Scheduler].
type Timer interface {
	// Stop prevents the call from happening.  It reports whether the call
	// was still pending.
	Stop() bool
}

// A Scheduler runs the done-confirm timeouts of a [Machine] on a
// [clock.Clock].
//
// With the wall clock from [clock.New], calls run in their own goroutine
// once their delay has passed.  Hosts with their own event loop, and tests,
// use a [clock.Mock] instead: time then only moves when the host calls
// Add on the mock, and [Scheduler.Settle] waits for the calls which fell
// due.
type Scheduler struct {
	clock clock.Clock

	mu      sync.Mutex
	settled *sync.Cond
	timers  map[*timer]time.Time
}

type timer struct {
	s *Scheduler
	t *clock.Timer
}

// NewScheduler returns a scheduler which measures delays on c.
// If c is nil, the wall clock is used.
func NewScheduler(c clock.Clock) *Scheduler {
	if c == nil {
		c = clock.New()
	}
	s := &Scheduler{
		clock:  c,
		timers: make(map[*timer]time.Time),
	}
	s.settled = sync.NewCond(&s.mu)
	return s
}

// Clock returns the clock the scheduler measures delays on.
func (s *Scheduler) Clock() clock.Clock {
	return s.clock
}

// AfterFunc calls f once the duration d has passed on the scheduler's
// clock.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &timer{s: s}
	due := s.clock.Now().Add(max(d, 0))
	s.mu.Lock()
	s.timers[t] = due
	s.mu.Unlock()

	t.t = s.clock.AfterFunc(d, func() {
		defer s.release(t)
		f()
	})
	return t
}

func (t *timer) Stop() bool {
	if !t.t.Stop() {
		return false
	}
	t.s.release(t)
	return true
}

func (s *Scheduler) release(t *timer) {
	s.mu.Lock()
	delete(s.timers, t)
	s.mu.Unlock()
	s.settled.Broadcast()
}

// Settle blocks until every call which is due at the clock's current time
// has returned.  It must not be called from inside a scheduled call.
func (s *Scheduler) Settle() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.dueLocked(now) > 0 {
		s.settled.Wait()
	}
}

func (s *Scheduler) dueLocked(now time.Time) int {
	n := 0
	for _, due := range s.timers {
		if !due.After(now) {
			n++
		}
	}
	return n
}

// Pending returns the number of scheduled calls which have neither
// returned nor been stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
