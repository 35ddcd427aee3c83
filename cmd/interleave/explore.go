// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"v.io/x/lib/cmdline"
	"v.io/x/ref/internal/logger"
	"v.io/x/ref/lib/interleave/explore"
	"v.io/x/ref/lib/interleave/internal/scenario"
)

var cmdExplore = &cmdline.Command{
	Runner: cmdline.RunnerFunc(runExplore),
	Name:   "explore",
	Short:  "Run a scenario under every interleaving of its sections",
	Long: `
Explore ignores the steps declared by a scenario and runs its sections under
every order that keeps the sections of each thread in sequence. It prints
each distinct output once, with the number of schedules that produced it and
the first of them, written as the names of the threads in the order their
sections ran. If the scenario lists the expected output, each outcome is
marked as expected or unexpected.
`,
	ArgsName: "<scenario.yaml>",
	ArgsLong: "<scenario.yaml> is the file that describes the scenario.",
}

func runExplore(env *cmdline.Env, args []string) error {
	path, err := scenarioArg(env, args)
	if err != nil {
		return err
	}
	cfg, err := settings()
	if err != nil {
		return err
	}
	sc, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	p := newPrinter(env.Stdout, cfg)
	if flagDump {
		p.dump(sc)
	}

	opts := []explore.Option{explore.WithLogger(logger.Global())}
	trace, flush, err := tracing(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := flush(); err != nil {
			logger.Global().Errorf("interleave: flushing spans: %v", err)
		}
	}()
	if trace != nil {
		opts = append(opts, explore.WithObserver(trace))
	}

	result, err := scenario.Explore(sc, cfg.MaxSchedules, opts...)
	if err != nil {
		return err
	}
	if flagDump {
		p.dump(result)
	}
	p.outcomes(sc, result)
	return nil
}
