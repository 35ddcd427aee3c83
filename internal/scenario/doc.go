// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenario describes multi-threaded programs in YAML so that they
// can be run under an interleave.Sequencer from the command line.
//
// A scenario lists threads, each an ordered list of sections. Every section
// names the step it runs as and the line it emits when it runs:
//
//	name: vector
//	threads:
//	  - name: pusher
//	    sections:
//	      - {step: 1, emit: "push 1"}
//	      - {step: 3, emit: "push 3"}
//	  - name: other
//	    sections:
//	      - {step: 2, emit: "push 2"}
//	      - {step: 4, emit: "push 4"}
//	expect: ["push 1", "push 2", "push 3", "push 4"]
//
// Run executes the scenario with the declared steps and returns the emitted
// lines in order. Explore ignores the declared steps and runs every
// interleaving of the sections, reporting each distinct output.
package scenario
