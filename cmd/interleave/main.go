// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The following enables go generate to generate the doc.go file.
//go:generate go run v.io/x/lib/cmdline/gendoc .

package main

import (
	"flag"

	"v.io/x/lib/cmdline"
	"v.io/x/ref/internal/logger"
	"v.io/x/ref/lib/interleave/internal/config"
)

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(cmdInterleave)
}

var cmdInterleave = &cmdline.Command{
	Name:  "interleave",
	Short: "runs multi-threaded scenarios in a chosen order",
	Long: `
Command interleave runs scenarios whose threads are split into numbered
critical sections. The sections run one at a time in step order, so the
output of a scenario is the same on every run.

A scenario is a YAML file:

  name: vector
  threads:
    - name: odd
      sections:
        - {step: 1, emit: "1"}
        - {step: 3, emit: "3", sleep: 5ms}
    - name: even
      sections:
        - {step: 2, emit: "2"}
        - {step: 4, emit: "4"}
  expect: ["1", "2", "3", "4"]

The environment variables INTERLEAVE_COLOR, INTERLEAVE_DISABLED,
INTERLEAVE_MAX_SCHEDULES, INTERLEAVE_OTLP_ENDPOINT and
INTERLEAVE_SERVICE_NAME provide defaults for the corresponding flags.
`,
	Children: []*cmdline.Command{cmdRun, cmdExplore, cmdDemo},
}

var (
	flagColor        string
	flagOTLPEndpoint string
	flagDump         bool
	flagStats        bool
	flagDisable      bool
	flagMax          int
)

// commands is set in init, as referring to the commands from settings
// directly would be an initialization cycle.
var commands []*cmdline.Command

func init() {
	commands = []*cmdline.Command{cmdInterleave, cmdRun, cmdExplore, cmdDemo}
	registerFlags()
}

func registerFlags() {
	cmdInterleave.Flags.StringVar(&flagColor, "color", config.ColorAuto,
		"Whether to color the output, one of auto, always or never.")
	cmdInterleave.Flags.StringVar(&flagOTLPEndpoint, "otlp-endpoint", "",
		"The host:port of an OTLP/HTTP collector to export a span per critical section to.")
	cmdInterleave.Flags.BoolVar(&flagDump, "dump", false,
		"If true, the decoded scenario and the results are dumped in full.")
	cmdRun.Flags.BoolVar(&flagStats, "stats", false,
		"If true, print the number of steps and the time spent waiting for and holding them.")
	cmdDemo.Flags.BoolVar(&flagStats, "stats", false,
		"If true, print the number of steps and the time spent waiting for and holding them.")
	cmdRun.Flags.BoolVar(&flagDisable, "disable", false,
		"If true, run with the sequencer disabled so the threads race.")
	cmdDemo.Flags.BoolVar(&flagDisable, "disable", false,
		"If true, run with the sequencer disabled so the threads race.")
	cmdExplore.Flags.IntVar(&flagMax, "max", 0,
		"The maximum number of schedules to run, 0 runs all of them.")
}

// settings loads the configuration from the environment and overrides it
// with the flags set on the command line.
func settings() (config.Config, error) {
	if err := logger.ManagedLogger(logger.Global()).ConfigureFromFlags(); err != nil && !logger.IsAlreadyConfiguredError(err) {
		return config.Config{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	override := func(f *flag.Flag) {
		switch f.Name {
		case "color":
			cfg.Color = flagColor
		case "otlp-endpoint":
			cfg.OTLPEndpoint = flagOTLPEndpoint
		case "disable":
			cfg.Disabled = flagDisable
		case "max":
			cfg.MaxSchedules = flagMax
		}
	}
	for _, cmd := range commands {
		cmd.Flags.Visit(override)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func scenarioArg(env *cmdline.Env, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", env.UsageErrorf("no scenario file specified")
	case 1:
		return args[0], nil
	}
	return "", env.UsageErrorf("too many arguments: %v", args[1:])
}
