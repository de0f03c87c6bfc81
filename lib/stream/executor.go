// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Executor runs producer tasks for [Bridge]. Execute must hand the
// task to another goroutine rather than running it inline: a producer
// runs until its pipe fills, so an inline execution would deadlock
// against the reader that has not been returned yet.
type Executor interface {
	Execute(task func())
}

// ExecutorFunc adapts a function to [Executor].
type ExecutorFunc func(task func())

func (f ExecutorFunc) Execute(task func()) { f(task) }

// Goroutines is the canonical executor: each task runs on its own
// goroutine.
var Goroutines Executor = ExecutorFunc(func(task func()) { go task() })

// Pool is an [Executor] that caps the number of concurrently running
// tasks. Execute blocks the submitter while the pool is saturated,
// which in turn delays bridge construction until a slot frees up.
type Pool struct {
	slots *semaphore.Weighted
}

var _ Executor = (*Pool)(nil)

// NewPool returns a pool running at most maxConcurrent tasks at once.
// maxConcurrent must be at least 1.
func NewPool(maxConcurrent int64) *Pool {
	return &Pool{slots: semaphore.NewWeighted(maxConcurrent)}
}

// Execute runs task on its own goroutine once a slot is free.
func (p *Pool) Execute(task func()) {
	// Acquire with a background context cannot return an error.
	_ = p.slots.Acquire(context.Background(), 1)
	go func() {
		defer p.slots.Release(1)
		task()
	}()
}
