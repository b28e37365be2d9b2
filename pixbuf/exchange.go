// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixbuf

import (
	"image"
	"sync"
	"sync/atomic"
)

const (
	// slotMask selects the index of the middle slot in Exchange.state.
	slotMask = 0b011

	// freshBit is set in Exchange.state when the middle slot holds a
	// frame that the reader has not acquired yet.
	freshBit = 0b100

	// maxDamage is the number of pending rectangles a slot collects
	// before it falls back to a full copy.
	maxDamage = 32
)

// damage is the region of a slot that is out of date with respect to
// the working buffer.
type damage struct {
	rects []image.Rectangle
	full  bool
}

func (d *damage) add(r image.Rectangle) {
	switch {
	case d.full:
	case len(d.rects) >= maxDamage:
		d.full = true
		d.rects = d.rects[:0]
	default:
		d.rects = append(d.rects, r)
	}
}

func (d *damage) reset() {
	d.rects = d.rects[:0]
	d.full = false
}

// Exchange publishes frames from a single writer goroutine (the renderer
// callback) to a single reader goroutine (the UI thread) without ever
// blocking the reader. It is a triple buffer: at any time each of its
// three slots is owned by exactly one of the writer (back), the exchange
// (middle) or the reader (front), and ownership only moves through one
// atomic swap of the state word, so pixel data is never shared between
// the two goroutines.
//
// The writer additionally keeps a working buffer that always holds the
// complete current frame, which dirty rectangles are applied to before it
// is published. Each slot remembers the rectangles that changed since it
// was last published into, so publishing only copies those; a slot falls
// back to a full copy after a resize or once too many rectangles pile up.
type Exchange struct {

	// writeMu serializes writers. The reader never takes it.
	writeMu sync.Mutex

	// working is the complete current frame, owned by the writer.
	working *Buffer

	// slots are the three published buffers, indexed by back, front and
	// the middle index in state.
	slots [3]*Buffer

	// stale is the pending damage of each slot, owned by the writer.
	stale [3]damage

	// back is the index of the writer-owned slot.
	back int

	// front is the index of the reader-owned slot.
	front int

	// state holds the middle slot index and the fresh bit.
	state atomic.Uint32
}

// NewExchange returns a new empty [Exchange].
func NewExchange() *Exchange {
	ex := &Exchange{back: 0, front: 2}
	ex.state.Store(1)
	return ex
}

// Update applies the dirty rectangles of the given raw frame to the
// working buffer, first replacing it if the frame size has changed, and
// then publishes the result. It returns the [BlitResult] of the copy and
// whether the buffer was replaced.
func (ex *Exchange) Update(src []byte, rects []image.Rectangle, width, height int) (res BlitResult, resized bool) {
	ex.writeMu.Lock()
	defer ex.writeMu.Unlock()
	nb := Ensure(ex.working, width, height)
	resized = nb != ex.working
	ex.working = nb
	res = nb.Blit(src, rects)
	for i := range ex.stale {
		if resized {
			ex.stale[i].full = true
			continue
		}
		for _, r := range rects {
			if r = r.Intersect(nb.Bounds()); !r.Empty() {
				ex.stale[i].add(r)
			}
		}
	}
	ex.publish()
	return
}

// publish brings the back slot up to date with the working buffer and
// swaps it into the middle. Must be called with writeMu held.
func (ex *Exchange) publish() {
	d := &ex.stale[ex.back]
	b := Ensure(ex.slots[ex.back], ex.working.Width(), ex.working.Height())
	if d.full || b != ex.slots[ex.back] {
		b.CopyFrom(ex.working)
	} else {
		for _, r := range d.rects {
			b.CopyRect(ex.working, r)
		}
	}
	d.reset()
	ex.slots[ex.back] = b
	old := ex.state.Swap(uint32(ex.back) | freshBit)
	ex.back = int(old & slotMask)
}

// Acquire returns the most recently published frame, or nil if nothing
// has been published yet. It must only be called from the reader
// goroutine, and the returned buffer stays valid and unchanged until
// the next call to Acquire.
func (ex *Exchange) Acquire() *Buffer {
	if ex.state.Load()&freshBit != 0 {
		old := ex.state.Swap(uint32(ex.front))
		ex.front = int(old & slotMask)
	}
	return ex.slots[ex.front]
}

// Pending returns whether a frame has been published since the last
// call to [Exchange.Acquire]. It is safe to call from any goroutine.
func (ex *Exchange) Pending() bool {
	return ex.state.Load()&freshBit != 0
}
