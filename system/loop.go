// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"context"
	"log/slog"
	"runtime/debug"
)

// Loop is the UI thread task loop. Any goroutine can [Loop.Post] tasks
// to it, and they are run in order by the one goroutine that runs
// the loop, which is thereby the UI thread.
type Loop struct {

	// tasks are the pending tasks.
	tasks Queue[func()]

	// wake receives a signal when a task is posted.
	wake chan struct{}
}

// NewLoop returns a new [Loop].
func NewLoop() *Loop {
	lp := &Loop{wake: make(chan struct{}, 1)}
	lp.tasks.Init()
	return lp
}

// Post adds the given task to the loop. It never blocks.
func (lp *Loop) Post(f func()) {
	if f == nil {
		return
	}
	lp.tasks.Send(f)
	select {
	case lp.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of pending tasks.
func (lp *Loop) Len() int {
	return lp.tasks.Len()
}

// RunPending runs all of the tasks that are pending, including any
// that are posted by them, and returns how many were run.
// It must only be called from the UI thread.
func (lp *Loop) RunPending() int {
	n := 0
	for {
		f, ok := lp.tasks.Next()
		if !ok {
			return n
		}
		lp.run(f)
		n++
	}
}

// Run runs tasks as they are posted until the context is done,
// turning the calling goroutine into the UI thread.
func (lp *Loop) Run(ctx context.Context) error {
	for {
		lp.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-lp.wake:
		}
	}
}

// run runs the given task, recovering and logging any panic so that
// one failing task does not stop the UI thread.
func (lp *Loop) run(f func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("system.Loop: panic in UI task", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	f()
}
