// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"v.io/x/ref/lib/interleave"
	"v.io/x/ref/lib/interleave/internal/config"
	iotel "v.io/x/ref/lib/interleave/otel"
)

const instrumentation = "v.io/x/ref/lib/interleave"

// tracing returns an observer that exports a span per critical section to
// the configured collector, and a function that flushes them. Without an
// endpoint it returns a nil observer.
func tracing(ctx context.Context, cfg config.Config) (interleave.Observer, func() error, error) {
	noop := func() error { return nil }
	if cfg.OTLPEndpoint == "" {
		return nil, noop, nil
	}
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, noop, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, noop, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	shutdown := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return iotel.NewTracingObserver(tp.Tracer(instrumentation)), shutdown, nil
}

// stats collects the metrics of a run in memory so they can be printed.
type stats struct {
	reader   *sdkmetric.ManualReader
	observer *iotel.MetricsObserver
}

func newStats() (*stats, error) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	o, err := iotel.NewMetricsObserver(mp.Meter(instrumentation))
	if err != nil {
		return nil, err
	}
	return &stats{reader: reader, observer: o}, nil
}

// print writes the step count and the total and mean wait and hold times.
func (s *stats) print(w io.Writer) error {
	var rm metricdata.ResourceMetrics
	if err := s.reader.Collect(context.Background(), &rm); err != nil {
		return err
	}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				var total int64
				for _, dp := range data.DataPoints {
					total += dp.Value
				}
				fmt.Fprintf(w, "%s: %d\n", m.Name, total)
			case metricdata.Histogram[float64]:
				var (
					count uint64
					sum   float64
				)
				for _, dp := range data.DataPoints {
					count += dp.Count
					sum += dp.Sum
				}
				mean := 0.0
				if count > 0 {
					mean = sum / float64(count)
				}
				fmt.Fprintf(w, "%s: total %v, mean %v\n", m.Name, seconds(sum), seconds(mean))
			}
		}
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Microsecond)
}
