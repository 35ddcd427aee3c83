// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interleave

import (
	"sync/atomic"
	"time"
)

// Token is the right to run a single step, obtained from Step. An active
// Token holds the Sequencer's lock until it is released; an inert Token,
// handed out while the Sequencer is disabled, holds nothing.
type Token interface {
	// Release ends the step. For an active Token it advances the sequence
	// by one and wakes all waiters; for an inert Token it does nothing.
	// Only the first call has any effect.
	Release()
	// Then releases the Token and acquires step n from the same Sequencer.
	Then(n uint64) Token
	// Step returns the step number the Token was requested for.
	Step() uint64
	// Active reports whether the Token holds the Sequencer's lock.
	Active() bool
}

type activeToken struct {
	s        *Sequencer
	n        uint64
	acquired time.Time
	released atomic.Bool
}

func (t *activeToken) Release() {
	if !t.released.CompareAndSwap(false, true) {
		return
	}
	t.s.release(t.n, t.acquired)
}

func (t *activeToken) Then(n uint64) Token {
	t.Release()
	return t.s.Step(n)
}

func (t *activeToken) Step() uint64 { return t.n }
func (t *activeToken) Active() bool { return true }

// inertToken is returned while the Sequencer is disabled. Its release has no
// effect even if the Sequencer has been enabled in the meantime.
type inertToken struct {
	s *Sequencer
	n uint64
}

func (inertToken) Release() {}

func (t inertToken) Then(n uint64) Token {
	return t.s.Step(n)
}

func (t inertToken) Step() uint64 { return t.n }
func (inertToken) Active() bool   { return false }
