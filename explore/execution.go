// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package explore

import (
	"golang.org/x/sync/errgroup"

	"v.io/x/ref/lib/interleave"
)

// execution represents an execution of the test under one schedule.
type execution struct {
	// schedule describes the order in which sections run.
	schedule Schedule
	// steps records the step number of each section of each thread.
	steps [][]uint64
	// seq enforces the schedule.
	seq *interleave.Sequencer
}

// newExecution is the execution factory.
func newExecution(schedule Schedule, nthreads int, opts []interleave.Option) *execution {
	opts = append([]interleave.Option{interleave.WithEnabled(true)}, opts...)
	return &execution{
		schedule: schedule,
		steps:    schedule.steps(nthreads),
		seq:      interleave.New(opts...),
	}
}

// Run starts one goroutine per thread and waits for all of them. It returns
// the first error reported by a section.
func (e *execution) Run(threads []Thread) error {
	var g errgroup.Group
	for i := range threads {
		tid := TID(i)
		g.Go(func() error {
			return e.runThread(tid, threads[tid])
		})
	}
	return g.Wait()
}

func (e *execution) runThread(tid TID, t Thread) error {
	var failure error
	for i, section := range t.Sections {
		n := e.steps[tid][i]
		if failure != nil {
			// Keep taking turns so that the other threads are not left
			// waiting for steps this thread owns.
			e.seq.Do(n, func() {})
			continue
		}
		failure = e.runSection(n, tid, t, section)
	}
	return failure
}

func (e *execution) runSection(n uint64, tid TID, t Thread, section Section) (err error) {
	tok := e.seq.Step(n)
	defer tok.Release()
	defer func() {
		if r := recover(); r != nil {
			err = ErrSectionFailed.Errorf(nil, "step %d: section %q of %s panicked: %v", n, section.Name, t.name(tid), r)
		}
	}()
	if section.Fn == nil {
		return nil
	}
	if ferr := section.Fn(); ferr != nil {
		return ErrSectionFailed.Errorf(nil, "step %d: section %q of %s: %v", n, section.Name, t.name(tid), ferr)
	}
	return nil
}
