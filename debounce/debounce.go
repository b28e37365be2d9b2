// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package debounce coalesces bursts of resize requests into a single
// deferred resize, while still forwarding a resize that arrives after
// a period of silence immediately.
package debounce

import (
	"image"
	"log/slog"
	"sync"
	"time"
)

// DefaultWindow is the default debounce window.
const DefaultWindow = 100 * time.Millisecond

// Debouncer forwards resize requests to a function, coalescing those
// that arrive within a window of each other. It has two states:
//
//   - Idle: nothing is pending and the last request is at least one
//     window old. A request is forwarded immediately.
//   - Pending: a deferred call is scheduled for the start of the burst
//     plus one window. Every further request replaces its size, so that
//     only the most recent size is ever forwarded.
//
// The time of [New] counts as a request, so a request that follows it
// within one window is deferred.
//
// Request and Close are normally called from the UI thread, while the
// deferred call runs on the goroutine of the [Scheduler], or is handed
// to Post when it is set.
type Debouncer struct {
	mu sync.Mutex

	window time.Duration

	apply func(size image.Point)

	clock Clock

	sched Scheduler

	// post, if set, runs the deferred call on the UI thread.
	post func(f func())

	// last is the time of the last request.
	last time.Time

	// burstStart is the time of the first deferred request of the
	// current burst, which the deadline is anchored to.
	burstStart time.Time

	// pending is the scheduled deferred call, if any.
	pending Task

	// size is the most recently requested size.
	size image.Point

	// gen is incremented by every request, so that stale deferred
	// calls can recognize themselves.
	gen uint64

	closed bool
}

// Option configures a [Debouncer].
type Option func(d *Debouncer)

// WithClock sets the clock and scheduler used by the [Debouncer],
// which default to the system clock and [time.AfterFunc].
func WithClock(c Clock, s Scheduler) Option {
	return func(d *Debouncer) {
		d.clock = c
		d.sched = s
	}
}

// WithPost sets the function used to run the deferred call on the
// thread that apply must be called on.
func WithPost(post func(f func())) Option {
	return func(d *Debouncer) {
		d.post = post
	}
}

// New returns a new [Debouncer] with the given window (the
// [DefaultWindow] if it is <= 0), calling apply with each forwarded size.
func New(window time.Duration, apply func(size image.Point), opts ...Option) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	d := &Debouncer{window: window, apply: apply, clock: SystemClock, sched: SystemClock}
	for _, o := range opts {
		o(d)
	}
	d.last = d.clock.Now()
	return d
}

// Window returns the debounce window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Request requests a resize to the given size, either forwarding it
// immediately or deferring it.
func (d *Debouncer) Request(size image.Point) {
	now := d.clock.Now()
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.gen++
	d.size = size
	idle := d.pending == nil && now.Sub(d.last) >= d.window
	d.last = now
	if idle {
		d.mu.Unlock()
		d.apply(size)
		return
	}
	if d.pending != nil {
		d.pending.Cancel()
	} else {
		d.burstStart = now
	}
	delay := max(d.burstStart.Add(d.window).Sub(now), 0)
	gen := d.gen
	d.pending = d.sched.Schedule(delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// fire runs the deferred call of the given generation.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	size := d.size
	post := d.post
	d.mu.Unlock()
	if post == nil {
		d.apply(size)
		return
	}
	post(func() {
		d.mu.Lock()
		stale := d.closed || gen != d.gen
		d.mu.Unlock()
		if stale {
			slog.Debug("debounce: dropping stale resize", "size", size)
			return
		}
		d.apply(size)
	})
}

// Pending returns whether a deferred call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Close drops any pending deferred call, and makes all future requests
// do nothing.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
}
