// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"sync/atomic"
)

// Queue is a lock-free FIFO queue that any number of goroutines can
// send to and receive from. It must be initialized using [Queue.Init] before use.
// It is based on https://github.com/fyne-io/fyne/blob/master/internal/async/queue_canvasobject.go
type Queue[T any] struct {
	head atomic.Pointer[queueItem[T]]
	tail atomic.Pointer[queueItem[T]]
	len  atomic.Int64
}

type queueItem[T any] struct {
	next atomic.Pointer[queueItem[T]]
	v    T
}

// Init initializes the queue.
func (q *Queue[T]) Init() {
	head := &queueItem[T]{}
	q.head.Store(head)
	q.tail.Store(head)
}

// Next removes and returns the next item in the queue.
// ok is false if the queue is empty.
func (q *Queue[T]) Next() (v T, ok bool) {
	var first, last, firstnext *queueItem[T]
	for {
		first = q.head.Load()
		last = q.tail.Load()
		firstnext = first.next.Load()
		if first == q.head.Load() {
			if first == last {
				if firstnext == nil {
					return v, false
				}
				q.tail.CompareAndSwap(last, firstnext)
			} else {
				v = firstnext.v
				if q.head.CompareAndSwap(first, firstnext) {
					q.len.Add(-1)
					return v, true
				}
			}
		}
	}
}

// Send adds an item to the end of the queue.
func (q *Queue[T]) Send(v T) {
	i := &queueItem[T]{v: v}
	var last, lastnext *queueItem[T]
	for {
		last = q.tail.Load()
		lastnext = last.next.Load()
		if q.tail.Load() == last {
			if lastnext == nil {
				if last.next.CompareAndSwap(lastnext, i) {
					q.tail.CompareAndSwap(last, i)
					q.len.Add(1)
					return
				}
			} else {
				q.tail.CompareAndSwap(last, lastnext)
			}
		}
	}
}

// Len returns the length of the queue.
func (q *Queue[T]) Len() int {
	return int(q.len.Load())
}
