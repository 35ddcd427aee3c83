// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import "v.io/v23/verror"

var (
	ErrInvalidScenario  = verror.NewID("InvalidScenario")
	ErrUnexpectedOutput = verror.NewID("UnexpectedOutput")
)
