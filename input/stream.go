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

package input

import (
	"context"
	"slices"
	"sync"
)

// Filter selects the events delivered to a subscriber.
type Filter func(*Event) bool

// Stream fans out normalized events to subscribers, synchronously and in
// subscription order.
//
// Every subscription is bound to a context.  Once the context is cancelled
// the subscriber receives no further events, even if the cancellation
// happens in the middle of a delivery.  Subscriptions made while an event
// is being delivered only see later events.
type Stream struct {
	mu     sync.Mutex
	subs   []*subscription
	nextID uint64
}

type subscription struct {
	id     uint64
	ctx    context.Context
	filter Filter
	fn     func(Event)
	stop   func() bool
}

// Subscribe registers fn for all events accepted by filter, until ctx is
// done.  A nil filter accepts every event.
func (s *Stream) Subscribe(ctx context.Context, filter Filter, fn func(Event)) {
	if ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	sub := &subscription{
		id:     s.nextID,
		ctx:    ctx,
		filter: filter,
		fn:     fn,
	}
	id := sub.id
	sub.stop = context.AfterFunc(ctx, func() { s.remove(id) })
	s.subs = append(s.subs, sub)
}

func (s *Stream) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = slices.DeleteFunc(s.subs, func(sub *subscription) bool {
		return sub.id == id
	})
}

// Publish delivers ev to every live subscriber whose filter accepts it and
// returns the number of deliveries.
func (s *Stream) Publish(ev Event) int {
	s.mu.Lock()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	n := 0
	for _, sub := range subs {
		if sub.ctx.Err() != nil {
			continue
		}
		if sub.filter != nil && !sub.filter(&ev) {
			continue
		}
		sub.fn(ev)
		n++
	}
	return n
}

// Len returns the number of registered subscriptions.  Subscriptions whose
// context was cancelled are removed asynchronously and may still be counted
// for a short time.
func (s *Stream) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sub := range s.subs {
		if sub.ctx.Err() == nil {
			n++
		}
	}
	return n
}

// Close removes all subscriptions.
func (s *Stream) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()
	for _, sub := range subs {
		sub.stop()
	}
}

// Mice accepts pointer events of the given types, or all pointer events if
// no type is given.
func Mice(types ...MouseType) Filter {
	return func(e *Event) bool {
		return e.IsMouse(types...)
	}
}

// KeysDown accepts presses of the named keys.
func KeysDown(names ...string) Filter {
	return func(e *Event) bool {
		return e.IsKeyDown(names...)
	}
}

// AnyOf accepts events which are accepted by at least one of the filters.
func AnyOf(filters ...Filter) Filter {
	return func(e *Event) bool {
		for _, f := range filters {
			if f(e) {
				return true
			}
		}
		return false
	}
}
