// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"

	"v.io/x/ref/lib/interleave/internal/config"
	"v.io/x/ref/lib/interleave/internal/scenario"
)

// printer writes the results of a command, colored if the configuration
// and the output allow it.
type printer struct {
	w                      io.Writer
	title, ok, bad, dimmed *color.Color
}

func newPrinter(w io.Writer, cfg config.Config) *printer {
	p := &printer{
		w:      w,
		title:  color.New(color.Bold),
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
		dimmed: color.New(color.Faint),
	}
	enable := cfg.Color == config.ColorAlways
	if f, ok := w.(*os.File); ok {
		enable = cfg.UseColor(f)
	}
	for _, c := range []*color.Color{p.title, p.ok, p.bad, p.dimmed} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) heading(format string, args ...interface{}) {
	p.title.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) output(lines []string) {
	for i, line := range lines {
		fmt.Fprintf(p.w, "%s %s\n", p.dimmed.Sprintf("%3d", i+1), line)
	}
}

// check reports whether got matches expect, printing a diff if it does not.
func (p *printer) check(expect, got []string) error {
	err := scenario.Check(expect, got)
	switch {
	case expect == nil:
		return nil
	case err == nil:
		p.ok.Fprintln(p.w, "output matches the expectation")
		return nil
	}
	p.bad.Fprintln(p.w, "output differs from the expectation (-want +got):")
	for _, l := range scenario.Diff(expect, got) {
		switch l.Op {
		case scenario.OpDelete:
			p.bad.Fprintln(p.w, l.String())
		case scenario.OpInsert:
			p.ok.Fprintln(p.w, l.String())
		default:
			fmt.Fprintln(p.w, l.String())
		}
	}
	return err
}

func (p *printer) outcomes(sc *scenario.Scenario, result *scenario.Exploration) {
	for i, o := range result.Outcomes {
		mark := ""
		if sc.Expect != nil {
			if scenario.Check(sc.Expect, o.Output) == nil {
				mark = p.ok.Sprint(" (expected)")
			} else {
				mark = p.bad.Sprint(" (unexpected)")
			}
		}
		p.heading("outcome %d: %d of %d schedules, first %s%s", i+1, o.Count, result.Explored, o.Schedule, mark)
		p.output(o.Output)
	}
	summary := fmt.Sprintf("%d distinct outcomes from %d of %v schedules", len(result.Outcomes), result.Explored, result.Total)
	if result.Complete() {
		p.ok.Fprintln(p.w, summary)
	} else {
		p.bad.Fprintln(p.w, summary)
	}
}

func (p *printer) dump(v interface{}) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	cfg.Fdump(p.w, v)
}
