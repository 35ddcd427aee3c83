// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interleave forces concurrent goroutines to run marked regions of
// code in an order chosen by the programmer, so that a suspected race can be
// turned into a deterministic, replayable schedule.
//
// Code under test is annotated with numbered steps:
//
//	tok := interleave.Step(1)
//	v.push("a")
//	tok.Release()
//
// A Sequencer keeps a counter that starts at 1. Step(n) blocks until the
// counter equals n and returns a Token; releasing the Token increments the
// counter and wakes every waiting goroutine, which then re-checks whether its
// own turn has come. While a Token is held no other Step call, for any
// number, can make progress, so the region between Step and Release is a
// critical section with respect to every other step.
//
// Steps are inert until Enable is called: with the Sequencer disabled, Step
// returns immediately with a Token whose Release does nothing, which lets
// instrumentation stay compiled into code that runs at full speed.
//
// Release must run on every exit path of the critical section, including a
// panic, otherwise later steps wait forever. Use defer or Do:
//
//	interleave.Do(3, func() {
//		v.push("c")
//	})
//
// The mechanism has no timeouts and does no deadlock detection. If the
// goroutine owning step n never gets there, every goroutine waiting for a
// later step hangs. Step numbers must form the sequence 1, 2, 3, ... with
// no gaps and no repeats; Step(0), a step that has already run and a step
// claimed twice are programming errors and panic with ErrZeroStep,
// ErrStepPassed and ErrDuplicateStep respectively.
//
// A stalled critical section starves every later step, including ones that
// are unrelated to it. This is acceptable for a debugging tool, but it means
// that long-running work should not be done while a Token is held unless
// that work is itself what is being ordered.
package interleave
