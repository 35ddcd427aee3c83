// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package explore

import "v.io/v23/verror"

var (
	ErrSectionFailed   = verror.NewID("SectionFailed")
	ErrInvalidSchedule = verror.NewID("InvalidSchedule")
)
