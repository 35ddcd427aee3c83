// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package explore

// state is a node in the tree of all schedules: the scheduling decisions
// made so far and the number of sections each thread has left.
type state struct {
	// depth is the number of decisions made, the length of prefix.
	depth int
	// prefix is the sequence of decisions leading to this state.
	prefix Schedule
	// remaining records the number of sections each thread still has to
	// run.
	remaining []int
}

// newState is the state factory. It returns the root of the tree for
// threads with the given section counts.
func newState(counts []int) *state {
	return &state{remaining: append([]int(nil), counts...)}
}

// leaf checks if every section has been scheduled.
func (s *state) leaf() bool {
	for _, n := range s.remaining {
		if n != 0 {
			return false
		}
	}
	return true
}

// children returns the states reachable by scheduling one more section,
// in increasing order of thread identifier.
func (s *state) children() []*state {
	var children []*state
	for tid, n := range s.remaining {
		if n == 0 {
			continue
		}
		remaining := append([]int(nil), s.remaining...)
		remaining[tid]--
		prefix := make(Schedule, s.depth, s.depth+1)
		copy(prefix, s.prefix)
		children = append(children, &state{
			depth:     s.depth + 1,
			prefix:    append(prefix, TID(tid)),
			remaining: remaining,
		})
	}
	return children
}
