// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package otel

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"v.io/x/ref/lib/interleave"
)

const (
	attrStep      = attribute.Key("interleave.step")
	attrSequencer = attribute.Key("interleave.sequencer")
	attrWait      = attribute.Key("interleave.wait_seconds")
)

type stepKey struct {
	seq  uuid.UUID
	step uint64
}

// TracingObserver translates Sequencer events into spans. A span named
// interleave.step.<n> starts when step n is acquired and ends when it is
// released. If the caller had to wait, the time it started waiting is
// recorded on the span as an interleave.waited event.
type TracingObserver struct {
	tracer trace.Tracer

	mu      sync.Mutex
	waiting map[stepKey]time.Time  // GUARDED_BY(mu)
	spans   map[stepKey]trace.Span // GUARDED_BY(mu)
}

// NewTracingObserver returns a TracingObserver that creates spans with the
// given tracer.
func NewTracingObserver(tracer trace.Tracer) *TracingObserver {
	return &TracingObserver{
		tracer:  tracer,
		waiting: make(map[stepKey]time.Time),
		spans:   make(map[stepKey]trace.Span),
	}
}

// Observe implements interleave.Observer.
func (o *TracingObserver) Observe(e interleave.Event) {
	key := stepKey{e.Sequencer, e.Step}
	o.mu.Lock()
	defer o.mu.Unlock()
	switch e.Kind {
	case interleave.EventWaiting:
		o.waiting[key] = e.Time
	case interleave.EventAcquired:
		_, span := o.tracer.Start(context.Background(), "interleave.step."+strconv.FormatUint(e.Step, 10),
			trace.WithAttributes(
				attrStep.Int64(int64(e.Step)),
				attrSequencer.String(e.Sequencer.String()),
				attrWait.Float64(e.Waited.Seconds()),
			),
			trace.WithTimestamp(e.Time),
		)
		if since, ok := o.waiting[key]; ok {
			delete(o.waiting, key)
			span.AddEvent("interleave.waited",
				trace.WithTimestamp(since),
				trace.WithAttributes(attrWait.Float64(e.Waited.Seconds())),
			)
		}
		o.spans[key] = span
	case interleave.EventReleased:
		span, ok := o.spans[key]
		if !ok {
			return
		}
		delete(o.spans, key)
		span.SetStatus(codes.Ok, "")
		span.End(trace.WithTimestamp(e.Time))
	}
}

// Pending returns the number of spans that have been started but not ended.
func (o *TracingObserver) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.spans)
}
