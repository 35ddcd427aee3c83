// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"v.io/x/ref/lib/interleave"
	"v.io/x/ref/lib/interleave/internal/scenario"
)

func load(t *testing.T, name string) *scenario.Scenario {
	t.Helper()
	sc, err := scenario.LoadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("LoadFile(%q): %v", name, err)
	}
	return sc
}

func TestLoadFile(t *testing.T) {
	sc := load(t, "vector.yaml")
	want := &scenario.Scenario{
		Name: "vector",
		Threads: []scenario.Thread{
			{Name: "odd", Sections: []scenario.Section{
				{Step: 1, Emit: "1"},
				{Step: 3, Emit: "3", Sleep: 5 * time.Millisecond},
			}},
			{Name: "even", Sections: []scenario.Section{
				{Step: 2, Emit: "2", Sleep: 10 * time.Millisecond},
				{Step: 4, Emit: "4"},
			}},
		},
		Expect: []string{"1", "2", "3", "4"},
	}
	if !reflect.DeepEqual(sc, want) {
		t.Errorf("got %+v, want %+v", sc, want)
	}
	if got, want := sc.Steps(), 4; got != want {
		t.Errorf("got %d steps, want %d", got, want)
	}
}

func TestLoadInvalid(t *testing.T) {
	for _, name := range []string{"gap.yaml", "duplicate.yaml", "backwards.yaml", "unknown.yaml"} {
		_, err := scenario.LoadFile(filepath.Join("testdata", name))
		if !errors.Is(err, scenario.ErrInvalidScenario) {
			t.Errorf("%s: got %v, want %v", name, err, scenario.ErrInvalidScenario)
			continue
		}
		if !strings.Contains(err.Error(), name) {
			t.Errorf("%s: error %q does not name the file", name, err)
		}
	}
	for _, tc := range []struct {
		yaml, contains string
	}{
		{"", "empty"},
		{"name: x", "no threads"},
		{"threads: [{name: a, sections: []}]", "no sections"},
		{"threads: [{name: a, sections: [{step: 0}]}]", "start from 1"},
		{"threads: [{sections: [{step: 1, sleep: -1ms}]}]", "negative sleep"},
		{"threads: [{name: a, sections: [{step: 2}]}]", "no thread runs step 1"},
		{"threads: [{name: a, sections: [{step: 1}]}, {name: b, sections: [{step: 1}]}]", "claimed by both a and b"},
		{"threads: [{name: a, sections: [{step: 2}, {step: 2}]}]", "step 2 follows step 2"},
		{"threads: nope", "decode"},
	} {
		_, err := scenario.Load(strings.NewReader(tc.yaml))
		if !errors.Is(err, scenario.ErrInvalidScenario) {
			t.Errorf("%q: got %v, want %v", tc.yaml, err, scenario.ErrInvalidScenario)
			continue
		}
		if !strings.Contains(err.Error(), tc.contains) {
			t.Errorf("%q: error %q does not contain %q", tc.yaml, err, tc.contains)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := scenario.LoadFile(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Errorf("expected an error")
	}
}

func TestRun(t *testing.T) {
	for _, name := range []string{"vector.yaml", "handoff.yaml"} {
		sc := load(t, name)
		for i := 0; i < 10; i++ {
			got, err := scenario.Run(sc, scenario.RunOptions{})
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if err := scenario.Check(sc.Expect, got); err != nil {
				t.Fatalf("%s: iteration %d: %v", name, i, err)
			}
		}
	}
}

func TestRunVector(t *testing.T) {
	sc := scenario.Vector()
	got, err := scenario.Run(sc, scenario.RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"1", "2", "3", "4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRunDisabled(t *testing.T) {
	sc := load(t, "vector.yaml")
	rec := &interleave.Recorder{}
	got, err := scenario.Run(sc, scenario.RunOptions{Disabled: true, Observers: []interleave.Observer{rec}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("got %v, want four lines", got)
	}
	// Each thread still runs its own sections in order.
	pos := map[string]int{}
	for i, line := range got {
		pos[line] = i
	}
	if pos["1"] > pos["3"] || pos["2"] > pos["4"] {
		t.Errorf("got %v, which breaks the order within a thread", got)
	}
	if n := len(rec.Events()); n != 0 {
		t.Errorf("a disabled sequencer reported %d events", n)
	}
}

func TestRunObservers(t *testing.T) {
	rec := &interleave.Recorder{}
	if _, err := scenario.Run(load(t, "handoff.yaml"), scenario.RunOptions{Observers: []interleave.Observer{rec}}); err != nil {
		t.Fatal(err)
	}
	if got, want := rec.Acquired(), []uint64{1, 2, 3, 4, 5, 6, 7}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExplore(t *testing.T) {
	sc := load(t, "vector.yaml")
	result, err := scenario.Explore(sc, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := result.Explored, 6; got != want {
		t.Errorf("got %d schedules, want %d", got, want)
	}
	if !result.Complete() {
		t.Errorf("exploration of %v schedules is not complete", result.Total)
	}
	// The two threads never share a line, so every schedule produces a
	// distinct output.
	if got, want := len(result.Outcomes), 6; got != want {
		t.Fatalf("got %d outcomes, want %d", got, want)
	}
	first := result.Outcomes[0]
	if got, want := first.Output, []string{"1", "3", "2", "4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := first.Schedule, "odd,odd,even,even"; got != want {
		t.Errorf("got schedule %q, want %q", got, want)
	}
	expected := 0
	for _, o := range result.Outcomes {
		if o.Count != 1 {
			t.Errorf("%v: got count %d, want 1", o.Output, o.Count)
		}
		if scenario.Check(sc.Expect, o.Output) == nil {
			expected++
		}
	}
	if expected != 1 {
		t.Errorf("got %d outcomes matching the expected output, want 1", expected)
	}
}

func TestExploreCountsDuplicates(t *testing.T) {
	sc, err := scenario.Load(strings.NewReader(`
name: quiet
threads:
  - name: a
    sections: [{step: 1, emit: x}, {step: 2}]
  - name: b
    sections: [{step: 3}]
`))
	if err != nil {
		t.Fatal(err)
	}
	result, err := scenario.Explore(sc, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []scenario.Outcome{{Output: []string{"x"}, Count: 3, Schedule: "a,a,b"}}
	if !reflect.DeepEqual(result.Outcomes, want) {
		t.Errorf("got %+v, want %+v", result.Outcomes, want)
	}
}

func TestExploreLimit(t *testing.T) {
	result, err := scenario.Explore(load(t, "handoff.yaml"), 5)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := result.Explored, 5; got != want {
		t.Errorf("got %d schedules, want %d", got, want)
	}
	if result.Complete() {
		t.Errorf("exploration of 5 out of %v schedules is complete", result.Total)
	}
	if got, want := result.Total.Int64(), int64(140); got != want {
		t.Errorf("got %d schedules in total, want %d", got, want)
	}
}

func TestCheck(t *testing.T) {
	if err := scenario.Check(nil, []string{"a"}); err != nil {
		t.Errorf("nil expectation: %v", err)
	}
	if err := scenario.Check([]string{"a", "b"}, []string{"a", "b"}); err != nil {
		t.Errorf("equal outputs: %v", err)
	}
	err := scenario.Check([]string{"a", "b"}, []string{"a", "c"})
	if !errors.Is(err, scenario.ErrUnexpectedOutput) {
		t.Fatalf("got %v, want %v", err, scenario.ErrUnexpectedOutput)
	}
	for _, line := range []string{"\n a", "\n-b", "\n+c"} {
		if !strings.Contains(err.Error(), line) {
			t.Errorf("error %q does not contain %q", err, line)
		}
	}
}

func TestDiff(t *testing.T) {
	for _, tc := range []struct {
		want, got []string
		diff      []scenario.DiffLine
	}{
		{
			[]string{"a", "b"}, []string{"a", "c"},
			[]scenario.DiffLine{{scenario.OpEqual, "a"}, {scenario.OpDelete, "b"}, {scenario.OpInsert, "c"}},
		},
		{
			nil, []string{"a"},
			[]scenario.DiffLine{{scenario.OpInsert, "a"}},
		},
		{
			[]string{"a", "b"}, []string{"a", "b"},
			[]scenario.DiffLine{{scenario.OpEqual, "a"}, {scenario.OpEqual, "b"}},
		},
	} {
		if got := scenario.Diff(tc.want, tc.got); !reflect.DeepEqual(got, tc.diff) {
			t.Errorf("Diff(%v, %v): got %v, want %v", tc.want, tc.got, got, tc.diff)
		}
	}
}
