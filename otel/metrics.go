// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package otel

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"v.io/x/ref/lib/interleave"
)

// MetricsObserver translates Sequencer events into metrics: the number of
// critical sections, how long callers waited for their turn and how long
// they held it.
type MetricsObserver struct {
	steps metric.Int64Counter
	wait  metric.Float64Histogram
	hold  metric.Float64Histogram
}

// NewMetricsObserver creates the instruments of a MetricsObserver with the
// given meter.
func NewMetricsObserver(meter metric.Meter) (*MetricsObserver, error) {
	steps, err := meter.Int64Counter("interleave.steps",
		metric.WithDescription("Number of critical sections run in sequence"),
	)
	if err != nil {
		return nil, err
	}
	wait, err := meter.Float64Histogram("interleave.step.wait",
		metric.WithDescription("Time spent waiting for a step's turn in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	hold, err := meter.Float64Histogram("interleave.step.hold",
		metric.WithDescription("Duration of a critical section in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &MetricsObserver{steps: steps, wait: wait, hold: hold}, nil
}

// Observe implements interleave.Observer.
func (o *MetricsObserver) Observe(e interleave.Event) {
	ctx := context.Background()
	switch e.Kind {
	case interleave.EventAcquired:
		o.wait.Record(ctx, e.Waited.Seconds(), metric.WithAttributes(attrSequencer.String(e.Sequencer.String())))
	case interleave.EventReleased:
		attrs := metric.WithAttributes(attrSequencer.String(e.Sequencer.String()))
		o.steps.Add(ctx, 1, attrs)
		o.hold.Record(ctx, e.Held.Seconds(), attrs)
	}
}
