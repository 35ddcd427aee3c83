// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import (
	"math/big"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"v.io/v23/logging"
	"v.io/x/ref/internal/logger"
	"v.io/x/ref/lib/interleave"
	"v.io/x/ref/lib/interleave/explore"
)

// RunOptions control a single run of a scenario.
type RunOptions struct {
	// Disabled runs the sections with the Sequencer disabled, so they are
	// only ordered within each thread.
	Disabled bool
	// Observers are attached to the Sequencer.
	Observers []interleave.Observer
	// Logger defaults to the global logger.
	Logger logging.Logger
}

func (o RunOptions) logger() logging.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger.Global()
}

// output is the concurrency-safe list of emitted lines.
type output struct {
	mu    sync.Mutex
	lines []string // GUARDED_BY(mu)
}

func (o *output) emit(line string) {
	if line == "" {
		return
	}
	o.mu.Lock()
	o.lines = append(o.lines, line)
	o.mu.Unlock()
}

func (o *output) take() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	lines := o.lines
	o.lines = nil
	return lines
}

func (s Section) run(out *output) {
	if s.Sleep > 0 {
		time.Sleep(s.Sleep)
	}
	out.emit(s.Emit)
}

// Run executes the scenario once, one goroutine per thread, each section as
// its declared step, and returns the emitted lines in the order they were
// emitted. The scenario must be valid.
func Run(sc *Scenario, opts RunOptions) ([]string, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	seqOpts := []interleave.Option{
		interleave.WithEnabled(!opts.Disabled),
		interleave.WithLogger(opts.logger()),
	}
	for _, o := range opts.Observers {
		seqOpts = append(seqOpts, interleave.WithObserver(o))
	}
	seq := interleave.New(seqOpts...)
	opts.logger().VI(1).Infof("scenario %q: running %d steps on sequencer %v (enabled: %v)", sc.Name, sc.Steps(), seq.ID(), seq.IsEnabled())

	out := &output{}
	var g errgroup.Group
	for _, t := range sc.Threads {
		t := t
		g.Go(func() error {
			for _, s := range t.Sections {
				s := s
				seq.Do(s.Step, func() { s.run(out) })
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out.take(), nil
}

// Outcome is one distinct output produced while exploring a scenario.
type Outcome struct {
	Output []string
	// Count is the number of schedules that produced Output.
	Count int
	// Schedule is the first schedule that produced Output, as thread names.
	Schedule string
}

// Exploration summarizes the schedules explored by Explore.
type Exploration struct {
	// Outcomes are listed in the order they were first produced.
	Outcomes []Outcome
	// Explored is the number of schedules that were run.
	Explored int
	// Total is the number of schedules of the scenario.
	Total *big.Int
}

// Complete reports whether every schedule was run.
func (e *Exploration) Complete() bool {
	return e.Total.Cmp(big.NewInt(int64(e.Explored))) == 0
}

// Explore runs the sections of the scenario under every interleaving that
// preserves the order of each thread, ignoring the declared steps, and
// collects the distinct outputs. If limit is positive at most limit schedules
// are run.
func Explore(sc *Scenario, limit int, opts ...explore.Option) (*Exploration, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	out := &output{}
	threads := make([]explore.Thread, len(sc.Threads))
	for i, t := range sc.Threads {
		threads[i].Name = sc.ThreadName(i)
		for _, s := range t.Sections {
			s := s
			threads[i].Sections = append(threads[i].Sections, explore.Section{
				Name: s.Emit,
				Fn: func() error {
					s.run(out)
					return nil
				},
			})
		}
	}

	result := &Exploration{}
	index := map[string]int{}
	var (
		tester *explore.Tester
		last   explore.Schedule
	)
	record := func() {
		lines := out.take()
		key := strings.Join(lines, "\x00")
		if i, ok := index[key]; ok {
			result.Outcomes[i].Count++
			return
		}
		index[key] = len(result.Outcomes)
		result.Outcomes = append(result.Outcomes, Outcome{Output: lines, Count: 1, Schedule: tester.Describe(last)})
	}
	opts = append(opts, explore.OnSchedule(func(s explore.Schedule) { last = s }))
	tester = explore.New(func() { out.take() }, threads, record, opts...)
	result.Total = tester.Count()

	var err error
	if limit > 0 {
		result.Explored, err = tester.ExploreN(limit)
	} else {
		result.Explored, err = tester.Explore()
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
