// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package explore

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"v.io/v23/logging"
	"v.io/x/ref/internal/logger"
	"v.io/x/ref/lib/interleave"
)

// Option configures a Tester.
type Option func(*Tester)

// WithObserver attaches an observer to the Sequencer of every execution.
func WithObserver(o interleave.Observer) Option {
	return func(t *Tester) {
		t.seqOpts = append(t.seqOpts, interleave.WithObserver(o))
	}
}

// OnSchedule registers a function that is called after every execution
// that completes without error, before cleanup.
func OnSchedule(fn func(Schedule)) Option {
	return func(t *Tester) {
		t.onSchedule = fn
	}
}

// WithLogger sets the logger used to report progress.
func WithLogger(l logging.Logger) Option {
	return func(t *Tester) {
		t.log = l
		t.seqOpts = append(t.seqOpts, interleave.WithLogger(l))
	}
}

// Tester represents an instance of the systematic test.
type Tester struct {
	// id identifies the tester in log lines.
	id uuid.UUID
	// threads are the threads whose sections are interleaved.
	threads []Thread
	// seeds records the states of the exploration still to be expanded.
	seeds *seeds
	// setup is a function that is executed before an instance of the
	// test is started. It is assumed to always produce the same initial
	// state.
	setup func()
	// cleanup is a function that is executed after an instance of a
	// test instance terminates.
	cleanup func()

	onSchedule func(Schedule)
	seqOpts    []interleave.Option
	log        logging.Logger
}

// New sets up a new instance of the tester. Either of setup and cleanup may
// be nil.
func New(setup func(), threads []Thread, cleanup func(), opts ...Option) *Tester {
	t := &Tester{
		id:      uuid.New(),
		threads: threads,
		setup:   setup,
		cleanup: cleanup,
		log:     logger.Global(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.seeds = &seeds{}
	t.seeds.Push(newState(t.counts()))
	return t
}

// Explore explores the space of possible schedules until it is fully
// exhausted.
func (t *Tester) Explore() (int, error) {
	return t.explore(0, 0)
}

// ExploreFor explores the space of possible schedules until it is fully
// exhausted or the given duration elapses, whichever occurs first.
func (t *Tester) ExploreFor(d time.Duration) (int, error) {
	return t.explore(0, d)
}

// ExploreN explores the space of possible schedules until it is fully
// exhausted or the given number of schedules is explored, whichever occurs
// first.
func (t *Tester) ExploreN(n int) (int, error) {
	return t.explore(n, 0)
}

// Done reports whether every schedule has been explored. A Tester resumes
// where the previous call to one of the Explore methods stopped.
func (t *Tester) Done() bool {
	return t.seeds.Empty()
}

// Count returns the total number of schedules: the multinomial coefficient
// (s1+...+sk)! / (s1!...sk!) for threads with s1...sk sections.
func (t *Tester) Count() *big.Int {
	total := big.NewInt(1)
	placed := int64(0)
	for _, n := range t.counts() {
		placed += int64(n)
		total.Mul(total, new(big.Int).Binomial(placed, int64(n)))
	}
	return total
}

// Run executes the test once, under the given schedule, including setup and
// cleanup.
func (t *Tester) Run(s Schedule) error {
	if err := t.validate(s); err != nil {
		return err
	}
	return t.run(s)
}

// Describe renders a schedule using thread names.
func (t *Tester) Describe(s Schedule) string {
	parts := make([]string, len(s))
	for i, tid := range s {
		if int(tid) >= 0 && int(tid) < len(t.threads) {
			parts[i] = t.threads[tid].name(tid)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ",")
}

func (t *Tester) counts() []int {
	counts := make([]int, len(t.threads))
	for i, th := range t.threads {
		counts[i] = len(th.Sections)
	}
	return counts
}

func (t *Tester) validate(s Schedule) error {
	remaining := t.counts()
	for k, tid := range s {
		if int(tid) < 0 || int(tid) >= len(remaining) {
			return ErrInvalidSchedule.Errorf(nil, "schedule %v: step %d names unknown thread %d", s, k+1, tid)
		}
		if remaining[tid] == 0 {
			return ErrInvalidSchedule.Errorf(nil, "schedule %v: step %d exceeds the %d sections of %s", s, k+1, len(t.threads[tid].Sections), t.threads[tid].name(tid))
		}
		remaining[tid]--
	}
	for tid, n := range remaining {
		if n != 0 {
			return ErrInvalidSchedule.Errorf(nil, "schedule %v: %d sections of %s are not scheduled", s, n, t.threads[tid].name(TID(tid)))
		}
	}
	return nil
}

func (t *Tester) run(s Schedule) error {
	if t.setup != nil {
		t.setup()
	}
	if t.cleanup != nil {
		defer t.cleanup()
	}
	e := newExecution(s, len(t.threads), t.seqOpts)
	t.log.VI(2).Infof("explore %v: running schedule %s", t.id, t.Describe(s))
	if err := e.Run(t.threads); err != nil {
		return fmt.Errorf("schedule %s: %w", t.Describe(s), err)
	}
	if t.onSchedule != nil {
		t.onSchedule(s)
	}
	return nil
}

func (t *Tester) explore(n int, d time.Duration) (int, error) {
	niterations := 0
	start := time.Now()
	for (n == 0 || niterations < n) &&
		(d == 0 || time.Since(start) < d) {
		leaf, ok := t.seeds.NextLeaf()
		if !ok {
			break
		}
		if err := t.run(leaf.prefix); err != nil {
			return niterations, err
		}
		niterations++
	}
	t.log.VI(1).Infof("explore %v: explored %d schedules in %v", t.id, niterations, time.Since(start))
	return niterations, nil
}
