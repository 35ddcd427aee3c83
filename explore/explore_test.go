// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package explore_test

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"v.io/x/ref/lib/interleave"
	"v.io/x/ref/lib/interleave/explore"
)

// output collects the names of the sections in the order they ran.
type output struct {
	mu  sync.Mutex
	buf []string
}

func (o *output) write(s string) {
	o.mu.Lock()
	o.buf = append(o.buf, s)
	o.mu.Unlock()
}

func (o *output) reset() {
	o.mu.Lock()
	o.buf = nil
	o.mu.Unlock()
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.buf, " ")
}

// writers returns threads whose sections write "<thread>:<section>" to out.
func writers(out *output, counts ...int) []explore.Thread {
	threads := make([]explore.Thread, len(counts))
	for i, n := range counts {
		name := fmt.Sprintf("t%d", i+1)
		threads[i].Name = name
		for j := 0; j < n; j++ {
			label := fmt.Sprintf("%s:%d", name, j+1)
			threads[i].Sections = append(threads[i].Sections, explore.Section{
				Name: label,
				Fn: func() error {
					out.write(label)
					return nil
				},
			})
		}
	}
	return threads
}

// generateOutputs generates all legal outputs of interleaving the sections
// of threads with the given section counts.
func generateOutputs(counts []int, next []int) []string {
	done := true
	var result []string
	for i := range counts {
		if next[i] == counts[i] {
			continue
		}
		done = false
		label := fmt.Sprintf("t%d:%d", i+1, next[i]+1)
		next[i]++
		for _, rest := range generateOutputs(counts, next) {
			result = append(result, strings.TrimSpace(label+" "+rest))
		}
		next[i]--
	}
	if done {
		return []string{""}
	}
	return result
}

func TestExplore(t *testing.T) {
	for _, counts := range [][]int{
		{1},
		{1, 1},
		{2, 2},
		{2, 1, 1},
		{3, 2},
		{1, 1, 1, 1},
	} {
		out := &output{}
		var outputs []string
		tester := explore.New(out.reset, writers(out, counts...), func() {
			outputs = append(outputs, out.String())
		})
		niterations, err := tester.Explore()
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", counts, err)
		}
		if got, want := int64(niterations), tester.Count().Int64(); got != want {
			t.Errorf("%v: got %d iterations, want %d", counts, got, want)
		}
		if !tester.Done() {
			t.Errorf("%v: exploration not done", counts)
		}
		expected := generateOutputs(counts, make([]int, len(counts)))
		sort.Strings(expected)
		got := append([]string(nil), outputs...)
		sort.Strings(got)
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("%v: got outputs\n%v\nwant\n%v", counts, strings.Join(got, "\n"), strings.Join(expected, "\n"))
		}
	}
}

func TestCount(t *testing.T) {
	for _, tc := range []struct {
		counts []int
		want   int64
	}{
		{nil, 1},
		{[]int{5}, 1},
		{[]int{2, 2}, 6},
		{[]int{2, 1, 1}, 12},
		{[]int{3, 3, 3}, 1680},
	} {
		tester := explore.New(nil, writers(&output{}, tc.counts...), nil)
		if got := tester.Count().Int64(); got != tc.want {
			t.Errorf("%v: got %d, want %d", tc.counts, got, tc.want)
		}
	}
}

func TestExploreN(t *testing.T) {
	var schedules []string
	tester := explore.New(nil, writers(&output{}, 2, 2), nil, explore.OnSchedule(func(s explore.Schedule) {
		schedules = append(schedules, s.String())
	}))
	n, err := tester.ExploreN(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := n, 4; got != want {
		t.Fatalf("got %d iterations, want %d", got, want)
	}
	if tester.Done() {
		t.Fatalf("exploration finished early")
	}
	// The tester resumes where it stopped.
	n, err = tester.ExploreN(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := n, 2; got != want {
		t.Errorf("got %d iterations, want %d", got, want)
	}
	want := []string{"0,0,1,1", "0,1,0,1", "0,1,1,0", "1,0,0,1", "1,0,1,0", "1,1,0,0"}
	if !reflect.DeepEqual(schedules, want) {
		t.Errorf("got schedules %v, want %v", schedules, want)
	}
}

func TestExploreFor(t *testing.T) {
	tester := explore.New(nil, writers(&output{}, 3, 3, 3), nil)
	start := time.Now()
	deadline := 10 * time.Millisecond
	n, err := tester.ExploreFor(deadline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n > int(tester.Count().Int64()) {
		t.Errorf("got %d iterations, more than the %v schedules", n, tester.Count())
	}
	if !tester.Done() && time.Since(start) < deadline {
		t.Errorf("stopped after %v without exhausting the schedules", time.Since(start))
	}
}

func TestRun(t *testing.T) {
	out := &output{}
	rec := &interleave.Recorder{}
	tester := explore.New(out.reset, writers(out, 2, 2), nil, explore.WithObserver(rec))
	if err := tester.Run(explore.Schedule{1, 0, 0, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "t2:1 t1:1 t1:2 t2:2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := rec.Acquired(), []uint64{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := tester.Describe(explore.Schedule{1, 0, 0, 1}), "t2,t1,t1,t2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunInvalidSchedule(t *testing.T) {
	tester := explore.New(nil, writers(&output{}, 2, 1), nil)
	for _, s := range []explore.Schedule{
		{0, 1},
		{0, 0, 0},
		{0, 2, 1},
		{0, 1, 1},
		{-1, 0, 0},
	} {
		if err := tester.Run(s); !errors.Is(err, explore.ErrInvalidSchedule) {
			t.Errorf("%v: got %v, want %v", s, err, explore.ErrInvalidSchedule)
		}
	}
}

func TestSectionFailure(t *testing.T) {
	boom := errors.New("boom")
	for _, fail := range []func() error{
		func() error { return boom },
		func() error { panic(boom) },
	} {
		out := &output{}
		threads := writers(out, 3, 3)
		threads[0].Sections[1].Fn = fail
		tester := explore.New(out.reset, threads, nil)
		done := make(chan error, 1)
		go func() {
			done <- tester.Run(explore.Schedule{0, 0, 1, 0, 1, 1})
		}()
		var err error
		select {
		case err = <-done:
		case <-time.After(10 * time.Second):
			t.Fatalf("a failed section left the other thread hanging")
		}
		if !errors.Is(err, explore.ErrSectionFailed) {
			t.Errorf("got %v, want a section failure", err)
		}
		if msg := err.Error(); !strings.Contains(msg, "t1:2") || !strings.Contains(msg, "t1,t1,t2,t1,t2,t2") {
			t.Errorf("error %q does not name the failed section and schedule", err)
		}
		// The failed thread skips its remaining section, the other one
		// runs to completion.
		if got, want := out.String(), "t1:1 t2:1 t2:2 t2:3"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

// TestLostUpdate splits an unsynchronized increment into a read and a write
// section and checks that exploration finds the schedules that lose an
// update.
func TestLostUpdate(t *testing.T) {
	var counter int
	increment := func(name string) explore.Thread {
		var local int
		return explore.Thread{
			Name: name,
			Sections: []explore.Section{
				{Name: "read", Fn: func() error { local = counter; return nil }},
				{Name: "write", Fn: func() error { counter = local + 1; return nil }},
			},
		}
	}
	results := map[int]int{}
	tester := explore.New(
		func() { counter = 0 },
		[]explore.Thread{increment("a"), increment("b")},
		func() { results[counter]++ },
	)
	if _, err := tester.Explore(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Of the six schedules, only the two serial ones produce 2.
	if got, want := results, map[int]int{1: 4, 2: 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
