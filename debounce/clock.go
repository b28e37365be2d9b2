// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package debounce

import (
	"slices"
	"sync"
	"time"
)

// Clock is a source of the current time.
type Clock interface {
	Now() time.Time
}

// Task is a scheduled task.
type Task interface {

	// Cancel cancels the task, returning false if it
	// has already run or been canceled.
	Cancel() bool
}

// Scheduler runs tasks after a delay, on a goroutine of its choosing.
// Schedule must not run the task before it returns.
type Scheduler interface {
	Schedule(delay time.Duration, f func()) Task
}

// SystemClock is the [Clock] and [Scheduler] based on the time package.
var SystemClock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Schedule(delay time.Duration, f func()) Task {
	return timerTask{time.AfterFunc(delay, f)}
}

type timerTask struct {
	t *time.Timer
}

func (tt timerTask) Cancel() bool {
	return tt.t.Stop()
}

// Manual is a [Clock] and [Scheduler] whose time only moves when
// [Manual.Advance] is called, which then runs the tasks that have
// become due, on the calling goroutine. It is used for deterministic
// timing in tests.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*manualTask
	seq   int
}

type manualTask struct {
	m        *Manual
	due      time.Time
	seq      int
	f        func()
	done     bool
	canceled bool
}

// NewManual returns a new [Manual] clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Schedule(delay time.Duration, f func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, due: m.now.Add(max(delay, 0)), seq: m.seq, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

func (t *manualTask) Cancel() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.done || t.canceled {
		return false
	}
	t.canceled = true
	return true
}

// Pending returns the number of tasks that have not run or been canceled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.done && !t.canceled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running each task that becomes
// due at its due time, in order of due time and then of scheduling.
// Tasks scheduled by running tasks are run too if they are due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	end := m.now.Add(d)
	m.mu.Unlock()
	for {
		m.mu.Lock()
		next := m.nextDue(end)
		if next == nil {
			m.now = end
			m.mu.Unlock()
			return
		}
		if next.due.After(m.now) {
			m.now = next.due
		}
		next.done = true
		m.mu.Unlock()
		next.f()
	}
}

// nextDue returns the next task that is due by end. Must be called with mu held.
func (m *Manual) nextDue(end time.Time) *manualTask {
	m.tasks = slices.DeleteFunc(m.tasks, func(t *manualTask) bool {
		return t.done || t.canceled
	})
	var next *manualTask
	for _, t := range m.tasks {
		if t.due.After(end) {
			continue
		}
		if next == nil || t.due.Before(next.due) || (t.due.Equal(next.due) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}
