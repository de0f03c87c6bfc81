// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"sync/atomic"
	"testing"

	"github.com/bureau-foundation/bytestream/lib/testutil"
)

func TestGoroutinesRunsTask(t *testing.T) {
	done := make(chan struct{})
	Goroutines.Execute(func() { close(done) })
	testutil.RequireClosed(t, done, testTimeout, "task ran")
}

func TestExecutorFuncAdapter(t *testing.T) {
	var received func()
	exec := ExecutorFunc(func(task func()) { received = task })

	ran := false
	exec.Execute(func() { ran = true })

	if received == nil {
		t.Fatal("adapter did not forward the task")
	}
	received()
	if !ran {
		t.Error("forwarded task was not the submitted one")
	}
}

func TestPoolCapsConcurrency(t *testing.T) {
	const tasks = 5
	pool := NewPool(2)

	var running, peak atomic.Int32
	started := make(chan struct{}, tasks)
	release := make(chan struct{})
	done := make(chan struct{}, tasks)

	// Execute blocks while the pool is saturated, so submission runs
	// off the test goroutine.
	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		for i := 0; i < tasks; i++ {
			pool.Execute(func() {
				if n := running.Add(1); n > peak.Load() {
					peak.Store(n)
				}
				started <- struct{}{}
				<-release
				running.Add(-1)
				done <- struct{}{}
			})
		}
	}()

	testutil.RequireReceive(t, started, testTimeout, "first task started")
	testutil.RequireReceive(t, started, testTimeout, "second task started")

	// Both slots are held by gated tasks, so a third start is
	// impossible until the gate opens.
	select {
	case <-started:
		t.Fatal("third task started while the pool was saturated")
	default:
	}

	close(release)
	for i := 0; i < tasks; i++ {
		testutil.RequireReceive(t, done, testTimeout, "task %d finished", i)
	}
	testutil.RequireClosed(t, submitted, testTimeout, "all submissions accepted")

	if got := peak.Load(); got > 2 {
		t.Errorf("observed %d concurrent tasks, want at most 2", got)
	}
}
