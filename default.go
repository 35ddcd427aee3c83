// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interleave

var global = New()

// Default returns the process-wide Sequencer used by the package-level
// functions. It starts out disabled with its counter at step 1.
func Default() *Sequencer {
	return global
}

// Enable enables the default Sequencer. Call it once the program has been
// set up and the steps it contains should start being enforced.
func Enable() {
	global.Enable()
}

// Disable disables the default Sequencer.
func Disable() {
	global.Disable()
}

// IsEnabled reports whether the default Sequencer is enabled.
func IsEnabled() bool {
	return global.IsEnabled()
}

// Step acquires step n of the default Sequencer; see Sequencer.Step.
func Step(n uint64) Token {
	return global.Step(n)
}

// Do runs fn as step n of the default Sequencer; see Sequencer.Do.
func Do(n uint64, fn func()) {
	global.Do(n, fn)
}
