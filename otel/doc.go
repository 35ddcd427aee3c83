// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package otel exports the events of an interleave.Sequencer to
// OpenTelemetry. A TracingObserver turns every critical section into a span
// and a MetricsObserver records step counts and wait and hold times. Both
// are attached with interleave.WithObserver.
package otel
