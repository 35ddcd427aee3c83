// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is a program made of threads whose sections run in a declared
// order.
type Scenario struct {
	Name    string   `yaml:"name"`
	Threads []Thread `yaml:"threads"`
	// Expect, if set, is the output the scenario must produce.
	Expect []string `yaml:"expect,omitempty"`
}

// Thread is an ordered list of sections run by one goroutine.
type Thread struct {
	Name     string    `yaml:"name"`
	Sections []Section `yaml:"sections"`
}

// Section is a critical section of a thread.
type Section struct {
	// Step is the position of the section in the global order, from 1.
	Step uint64 `yaml:"step"`
	// Emit is appended to the output when the section runs; an empty Emit
	// appends nothing.
	Emit string `yaml:"emit,omitempty"`
	// Sleep is spent inside the section before emitting.
	Sleep time.Duration `yaml:"sleep,omitempty"`
}

// ThreadName returns the name of thread i, or a generated one if it has
// none.
func (sc *Scenario) ThreadName(i int) string {
	if name := sc.Threads[i].Name; name != "" {
		return name
	}
	return "thread" + strconv.Itoa(i)
}

// Steps returns the number of sections in the scenario.
func (sc *Scenario) Steps() int {
	n := 0
	for _, t := range sc.Threads {
		n += len(t.Sections)
	}
	return n
}

// Load decodes and validates a scenario. Unknown fields are rejected.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if err == io.EOF {
			return nil, ErrInvalidScenario.Errorf(nil, "empty scenario")
		}
		return nil, ErrInvalidScenario.Errorf(nil, "decode: %v", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadFile reads the scenario stored in path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Validate checks that running the scenario cannot block forever: every
// thread has sections, the steps of each thread increase and the steps of
// all threads together are exactly 1 to N.
func (sc *Scenario) Validate() error {
	if len(sc.Threads) == 0 {
		return ErrInvalidScenario.Errorf(nil, "scenario %q has no threads", sc.Name)
	}
	owner := map[uint64]int{}
	var steps []uint64
	for i, t := range sc.Threads {
		if len(t.Sections) == 0 {
			return ErrInvalidScenario.Errorf(nil, "%s has no sections", sc.ThreadName(i))
		}
		var prev uint64
		for _, s := range t.Sections {
			switch {
			case s.Step == 0:
				return ErrInvalidScenario.Errorf(nil, "%s: steps start from 1", sc.ThreadName(i))
			case s.Step <= prev:
				return ErrInvalidScenario.Errorf(nil, "%s: step %d follows step %d", sc.ThreadName(i), s.Step, prev)
			case s.Sleep < 0:
				return ErrInvalidScenario.Errorf(nil, "%s: step %d has a negative sleep", sc.ThreadName(i), s.Step)
			}
			if j, ok := owner[s.Step]; ok {
				return ErrInvalidScenario.Errorf(nil, "step %d is claimed by both %s and %s", s.Step, sc.ThreadName(j), sc.ThreadName(i))
			}
			owner[s.Step] = i
			steps = append(steps, s.Step)
			prev = s.Step
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i] < steps[j] })
	for i, n := range steps {
		if want := uint64(i + 1); n != want {
			return ErrInvalidScenario.Errorf(nil, "no thread runs step %d", want)
		}
	}
	return nil
}
