// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package explore

// seeds is the stack of states still to be expanded. Keeping the frontier
// on a stack gives a depth-first walk that needs O(d*t) space, where d is
// the length of a schedule and t the number of threads.
type seeds struct {
	contents []*state
}

// Empty checks if there is nothing left to explore.
func (s *seeds) Empty() bool {
	return len(s.contents) == 0
}

// Push adds states so that the first of them is popped first.
func (s *seeds) Push(states ...*state) {
	for i := len(states) - 1; i >= 0; i-- {
		s.contents = append(s.contents, states[i])
	}
}

// Pop removes and returns the top state, or false if the stack is empty.
func (s *seeds) Pop() (*state, bool) {
	l := len(s.contents)
	if l == 0 {
		return nil, false
	}
	x := s.contents[l-1]
	s.contents[l-1] = nil
	s.contents = s.contents[:l-1]
	return x, true
}

// NextLeaf expands states until it finds one that is a complete schedule.
func (s *seeds) NextLeaf() (*state, bool) {
	for {
		st, ok := s.Pop()
		if !ok {
			return nil, false
		}
		if st.leaf() {
			return st, true
		}
		s.Push(st.children()...)
	}
}
