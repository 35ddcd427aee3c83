// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interleave

import "v.io/v23/verror"

// The following errors are never returned; they are the values Step panics
// with when it is misused, and may be matched with errors.Is after recover.
var (
	ErrZeroStep      = verror.NewID("ZeroStep")
	ErrStepPassed    = verror.NewID("StepPassed")
	ErrDuplicateStep = verror.NewID("DuplicateStep")
)
