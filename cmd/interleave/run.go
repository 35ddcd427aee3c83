// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"v.io/x/lib/cmdline"
	"v.io/x/ref/internal/logger"
	"v.io/x/ref/lib/interleave"
	"v.io/x/ref/lib/interleave/internal/config"
	"v.io/x/ref/lib/interleave/internal/scenario"
)

var cmdRun = &cmdline.Command{
	Runner: cmdline.RunnerFunc(runRun),
	Name:   "run",
	Short:  "Run a scenario once",
	Long: `
Run runs every thread of a scenario in its own goroutine, each section as its
declared step, and prints the lines the sections emit in the order they were
emitted. If the scenario lists the expected output, the output is compared
with it and a difference is reported as an error.
`,
	ArgsName: "<scenario.yaml>",
	ArgsLong: "<scenario.yaml> is the file that describes the scenario.",
}

var cmdDemo = &cmdline.Command{
	Runner: cmdline.RunnerFunc(runDemo),
	Name:   "demo",
	Short:  "Run the built-in vector scenario",
	Long: `
Demo runs a built-in scenario in which two threads push the numbers 1 to 4
onto a vector, the first the odd ones and the second the even ones. With the
sequencer enabled the vector is always 1, 2, 3, 4; with -disable the threads
race.
`,
}

func runRun(env *cmdline.Env, args []string) error {
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
	return runScenario(env, cfg, sc)
}

func runDemo(env *cmdline.Env, args []string) error {
	if len(args) != 0 {
		return env.UsageErrorf("demo takes no arguments")
	}
	cfg, err := settings()
	if err != nil {
		return err
	}
	sc := scenario.Vector()
	if cfg.Disabled {
		// A race has no expected outcome.
		sc.Expect = nil
	}
	return runScenario(env, cfg, sc)
}

func runScenario(env *cmdline.Env, cfg config.Config, sc *scenario.Scenario) error {
	p := newPrinter(env.Stdout, cfg)
	if flagDump {
		p.dump(sc)
	}
	opts := scenario.RunOptions{Disabled: cfg.Disabled, Logger: logger.Global()}

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
		opts.Observers = append(opts.Observers, trace)
	}
	var st *stats
	if flagStats {
		if st, err = newStats(); err != nil {
			return err
		}
		opts.Observers = append(opts.Observers, st.observer)
	}
	rec := &interleave.Recorder{}
	if flagDump {
		opts.Observers = append(opts.Observers, rec)
	}

	mode := "enabled"
	if cfg.Disabled {
		mode = "disabled"
	}
	p.heading("%s: %d threads, %d steps, sequencer %s", sc.Name, len(sc.Threads), sc.Steps(), mode)
	got, err := scenario.Run(sc, opts)
	if err != nil {
		return err
	}
	p.output(got)
	if flagDump {
		p.dump(rec.Events())
	}
	if st != nil {
		if err := st.print(env.Stdout); err != nil {
			return err
		}
	}
	return p.check(sc.Expect, got)
}
