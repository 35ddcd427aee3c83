// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import (
	"slices"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a line in a diff.
type Op int

const (
	OpEqual Op = iota
	OpDelete
	OpInsert
)

// DiffLine is one line of a line-oriented diff.
type DiffLine struct {
	Op   Op
	Text string
}

func (l DiffLine) String() string {
	switch l.Op {
	case OpDelete:
		return "-" + l.Text
	case OpInsert:
		return "+" + l.Text
	}
	return " " + l.Text
}

// Diff compares two outputs line by line. Lines only in want are deletions
// and lines only in got are insertions.
func Diff(want, got []string) []DiffLine {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(want), joinLines(got))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var result []DiffLine
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffpatch.DiffDelete:
			op = OpDelete
		case diffpatch.DiffInsert:
			op = OpInsert
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			result = append(result, DiffLine{Op: op, Text: strings.TrimSuffix(text, "\n")})
		}
	}
	return result
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Check compares an output with the expected one. A nil expect accepts any
// output.
func Check(expect, got []string) error {
	if expect == nil || slices.Equal(expect, got) {
		return nil
	}
	var b strings.Builder
	for _, l := range Diff(expect, got) {
		b.WriteString("\n")
		b.WriteString(l.String())
	}
	return ErrUnexpectedOutput.Errorf(nil, "output differs from the expected one (-want +got):%s", b.String())
}
