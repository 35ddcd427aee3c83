// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package explore implements systematic testing of concurrent code on top of
// the interleave package. Instead of asking the programmer to pick step
// numbers, a test describes each thread as an ordered list of sections and
// the explorer enumerates every way of interleaving those sections that
// respects each thread's program order.
//
// For every interleaving (a Schedule) the explorer assigns consecutive step
// numbers to the sections in schedule order, runs all threads concurrently
// on a fresh enabled Sequencer and waits for them to finish. Sections of
// different threads therefore never overlap, and the order in which they run
// is exactly the one described by the schedule.
//
// The explorer is initialized through New(setup, threads, cleanup), which
// specifies the test setup, the threads and the cleanup respectively. To
// start a systematic exploration, one invokes one of Explore(), ExploreN(n)
// or ExploreFor(d). These functions repeatedly execute the test, each time
// with the next schedule in depth-first order, until the schedules are
// exhausted or the given limit is reached. A single schedule can be replayed
// with Run.
//
// See explore_test.go for an example that finds the lost update in an
// unsynchronized read-modify-write.
package explore
