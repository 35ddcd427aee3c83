// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file was auto-generated via go generate.
// DO NOT UPDATE MANUALLY

/*
Command interleave runs scenarios whose threads are split into numbered
critical sections. The sections run one at a time in step order, so the output
of a scenario is the same on every run.

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
INTERLEAVE_MAX_SCHEDULES, INTERLEAVE_OTLP_ENDPOINT and INTERLEAVE_SERVICE_NAME
provide defaults for the corresponding flags.

Usage:

	interleave [flags] <command>

The interleave commands are:

	run         Run a scenario once
	explore     Run a scenario under every interleaving of its sections
	demo        Run the built-in vector scenario
	help        Display help for commands or topics

The interleave flags are:

	-color=auto
	  Whether to color the output, one of auto, always or never.
	-dump=false
	  If true, the decoded scenario and the results are dumped in full.
	-otlp-endpoint=
	  The host:port of an OTLP/HTTP collector to export a span per critical
	  section to.

# Interleave run - Run a scenario once

Run runs every thread of a scenario in its own goroutine, each section as its
declared step, and prints the lines the sections emit in the order they were
emitted. If the scenario lists the expected output, the output is compared with
it and a difference is reported as an error.

Usage:

	interleave run [flags] <scenario.yaml>

<scenario.yaml> is the file that describes the scenario.

The interleave run flags are:

	-disable=false
	  If true, run with the sequencer disabled so the threads race.
	-stats=false
	  If true, print the number of steps and the time spent waiting for and
	  holding them.

# Interleave explore - Run a scenario under every interleaving of its sections

Explore ignores the steps declared by a scenario and runs its sections under
every order that keeps the sections of each thread in sequence. It prints each
distinct output once, with the number of schedules that produced it and the
first of them, written as the names of the threads in the order their sections
ran. If the scenario lists the expected output, each outcome is marked as
expected or unexpected.

Usage:

	interleave explore [flags] <scenario.yaml>

<scenario.yaml> is the file that describes the scenario.

The interleave explore flags are:

	-max=0
	  The maximum number of schedules to run, 0 runs all of them.

# Interleave demo - Run the built-in vector scenario

Demo runs a built-in scenario in which two threads push the numbers 1 to 4 onto
a vector, the first the odd ones and the second the even ones. With the
sequencer enabled the vector is always 1, 2, 3, 4; with -disable the threads
race.

Usage:

	interleave demo [flags]

The interleave demo flags are:

	-disable=false
	  If true, run with the sequencer disabled so the threads race.
	-stats=false
	  If true, print the number of steps and the time spent waiting for and
	  holding them.

# Interleave help - Display help for commands or topics

Help with no args displays the usage of the parent command.

Help with args displays the usage of the specified sub-command or help topic.

"help ..." recursively displays help for all commands and topics.

Usage:

	interleave help [flags] [command/topic ...]

[command/topic ...] optionally identifies a specific sub-command or help topic.
*/
package main
