// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

// Vector returns the scenario in which two threads push 1 to 4 onto a
// shared vector: the first pushes the odd numbers, the second the even
// ones. With the sequencer enabled the vector always ends up in order.
func Vector() *Scenario {
	return &Scenario{
		Name: "vector",
		Threads: []Thread{
			{Name: "odd", Sections: []Section{{Step: 1, Emit: "1"}, {Step: 3, Emit: "3"}}},
			{Name: "even", Sections: []Section{{Step: 2, Emit: "2"}, {Step: 4, Emit: "4"}}},
		},
		Expect: []string{"1", "2", "3", "4"},
	}
}
