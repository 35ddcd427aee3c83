// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interleave

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventKind identifies what a Sequencer did.
type EventKind int

const (
	// EventWaiting is reported when a caller has to wait for its turn.
	// Callers whose turn has already come skip it.
	EventWaiting EventKind = iota
	// EventAcquired is reported when a caller starts its critical section.
	EventAcquired
	// EventReleased is reported when a critical section ends.
	EventReleased
)

func (k EventKind) String() string {
	switch k {
	case EventWaiting:
		return "waiting"
	case EventAcquired:
		return "acquired"
	case EventReleased:
		return "released"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event describes a single transition of a step.
type Event struct {
	// Sequencer identifies the Sequencer that produced the event.
	Sequencer uuid.UUID
	Kind      EventKind
	Step      uint64
	Time      time.Time
	// Waited is how long the caller waited for its turn; set for
	// EventAcquired.
	Waited time.Duration
	// Held is how long the critical section lasted; set for
	// EventReleased.
	Held time.Duration
}

func (e Event) String() string {
	switch e.Kind {
	case EventAcquired:
		return fmt.Sprintf("step %d %v after %v", e.Step, e.Kind, e.Waited)
	case EventReleased:
		return fmt.Sprintf("step %d %v after %v", e.Step, e.Kind, e.Held)
	}
	return fmt.Sprintf("step %d %v", e.Step, e.Kind)
}

// Observer is notified of the events of an enabled Sequencer. Observe is
// called with the Sequencer's lock held, so events arrive in the order they
// happened; implementations must be quick and must not call back into the
// Sequencer.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// Recorder is an Observer that keeps every event it sees.
type Recorder struct {
	mu     sync.Mutex
	events []Event // GUARDED_BY(mu)
}

// Observe implements Observer.
func (r *Recorder) Observe(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events in the order they occurred.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Acquired returns the step numbers in the order their critical sections
// started.
func (r *Recorder) Acquired() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var steps []uint64
	for _, e := range r.events {
		if e.Kind == EventAcquired {
			steps = append(steps, e.Step)
		}
	}
	return steps
}

// Count returns the number of recorded events of the given kind.
func (r *Recorder) Count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
