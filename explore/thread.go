// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package explore

import (
	"strconv"
	"strings"
)

// TID is the thread identifier type: the index of a thread in the slice
// passed to New.
type TID int

// Section is a piece of a thread that runs as a single step.
type Section struct {
	// Name is used in error messages.
	Name string
	// Fn is the body of the section; a nil Fn is an empty section.
	Fn func() error
}

// Thread is an ordered list of sections executed by one goroutine.
type Thread struct {
	Name     string
	Sections []Section
}

func (t Thread) name(tid TID) string {
	if t.Name != "" {
		return t.Name
	}
	return "thread" + strconv.Itoa(int(tid))
}

// Schedule records, for each step in turn, which thread runs its next
// section: the section at index k runs as step k+1.
type Schedule []TID

// String renders the schedule as a comma separated list of thread
// identifiers.
func (s Schedule) String() string {
	parts := make([]string, len(s))
	for i, tid := range s {
		parts[i] = strconv.Itoa(int(tid))
	}
	return strings.Join(parts, ",")
}

// steps assigns step numbers to the sections of each thread according to
// the schedule.
func (s Schedule) steps(nthreads int) [][]uint64 {
	steps := make([][]uint64, nthreads)
	for k, tid := range s {
		steps[tid] = append(steps[tid], uint64(k+1))
	}
	return steps
}
