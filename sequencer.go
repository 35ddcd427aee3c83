// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interleave

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"v.io/v23/logging"
	"v.io/x/ref/internal/logger"
)

// Sequencer orders critical sections by step number. The zero value is not
// usable, use New.
type Sequencer struct {
	id        uuid.UUID
	log       logging.Logger
	observers []Observer

	enabled atomic.Bool

	mu      sync.Mutex
	cond    *sync.Cond
	current uint64              // GUARDED_BY(mu)
	claimed map[uint64]struct{} // GUARDED_BY(mu)
}

// Option configures a Sequencer created by New.
type Option func(*Sequencer)

// WithObserver registers an Observer that is notified of every wait,
// acquisition and release performed while the Sequencer is enabled.
func WithObserver(o Observer) Option {
	return func(s *Sequencer) {
		s.observers = append(s.observers, o)
	}
}

// WithLogger sets the logger used for tracing and for reporting misuse.
// The global logger is used by default.
func WithLogger(l logging.Logger) Option {
	return func(s *Sequencer) {
		s.log = l
	}
}

// WithEnabled sets the initial state of the enabled flag.
func WithEnabled(enabled bool) Option {
	return func(s *Sequencer) {
		s.enabled.Store(enabled)
	}
}

// New returns a disabled Sequencer whose counter is at step 1.
func New(opts ...Option) *Sequencer {
	s := &Sequencer{
		id:      uuid.New(),
		log:     logger.Global(),
		current: 1,
		claimed: make(map[uint64]struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the identifier this Sequencer uses in log lines and events.
func (s *Sequencer) ID() uuid.UUID {
	return s.id
}

// Enable turns the Sequencer on; subsequent Step calls block until their
// turn. It does not touch the counter.
func (s *Sequencer) Enable() {
	s.enabled.Store(true)
	s.log.VI(1).Infof("interleave %v: enabled", s.id)
}

// Disable turns the Sequencer off; subsequent Step calls return inert
// tokens. Tokens that are already held are unaffected.
func (s *Sequencer) Disable() {
	s.enabled.Store(false)
	s.log.VI(1).Infof("interleave %v: disabled", s.id)
}

// IsEnabled reports whether the Sequencer is enabled.
func (s *Sequencer) IsEnabled() bool {
	return s.enabled.Load()
}

// Step blocks until the counter reaches n and returns a Token that holds the
// exclusive right to run step n. If the Sequencer is disabled it returns an
// inert Token immediately.
//
// Step panics with ErrZeroStep if n is 0. While enabled it also panics with
// ErrStepPassed if step n has already been released, and with
// ErrDuplicateStep if another goroutine is waiting for or holding step n.
func (s *Sequencer) Step(n uint64) Token {
	if n == 0 {
		s.fatal(ErrZeroStep.Errorf(nil, "steps start from 1"))
	}
	if !s.IsEnabled() {
		return inertToken{s: s, n: n}
	}
	return s.acquire(n)
}

// Do runs fn as step n and releases the step however fn returns.
func (s *Sequencer) Do(n uint64, fn func()) {
	tok := s.Step(n)
	defer tok.Release()
	fn()
}

// Current returns the number of the step that may run next. It blocks while
// a critical section is in progress.
func (s *Sequencer) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reset moves the counter back to step 1. It must not be called while any
// goroutine is waiting for or holding a step.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = 1
	s.claimed = make(map[uint64]struct{})
	s.log.VI(1).Infof("interleave %v: reset", s.id)
}

func (s *Sequencer) acquire(n uint64) Token {
	s.mu.Lock()
	if n < s.current {
		current := s.current
		s.mu.Unlock()
		s.fatal(ErrStepPassed.Errorf(nil, "step %d has already run, the sequence is at step %d", n, current))
	}
	if _, ok := s.claimed[n]; ok {
		s.mu.Unlock()
		s.fatal(ErrDuplicateStep.Errorf(nil, "step %d is already claimed by another caller", n))
	}
	s.claimed[n] = struct{}{}

	start := time.Now()
	if s.current != n {
		s.log.VI(2).Infof("interleave %v: step %d waiting, sequence is at step %d", s.id, n, s.current)
		s.notify(Event{Kind: EventWaiting, Step: n, Time: start})
	}
	// Wakeups are broadcast to every waiter, so the predicate has to be
	// re-checked each time.
	for s.current != n {
		s.cond.Wait()
	}
	now := time.Now()
	s.log.VI(2).Infof("interleave %v: step %d acquired", s.id, n)
	s.notify(Event{Kind: EventAcquired, Step: n, Time: now, Waited: now.Sub(start)})
	return &activeToken{s: s, n: n, acquired: now}
}

// release is called by the active token for step n with mu held.
func (s *Sequencer) release(n uint64, acquired time.Time) {
	delete(s.claimed, n)
	s.current++
	now := time.Now()
	s.log.VI(2).Infof("interleave %v: step %d released", s.id, n)
	s.notify(Event{Kind: EventReleased, Step: n, Time: now, Held: now.Sub(acquired)})
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *Sequencer) notify(e Event) {
	if len(s.observers) == 0 {
		return
	}
	e.Sequencer = s.id
	for _, o := range s.observers {
		o.Observe(e)
	}
}

func (s *Sequencer) fatal(err error) {
	s.log.Errorf("interleave %v: %v", s.id, err)
	panic(err)
}
