// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"cogentcore.org/osr/events"
)

// The input handlers forward events in host coordinates to the renderer
// in logical coordinates. They never modify the given events, and return
// whether the event was forwarded.

// inputOpen returns whether input can be forwarded.
func (h *Host) inputOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.removed
}

// hostScale returns the divisor for host distances, as a float32.
func (h *Host) hostScale() float32 {
	return float32(h.Scale().HostScale())
}

// HandlePointer forwards a mouse button, move or crossing event.
// A mouse down gives the surface the focus.
func (h *Host) HandlePointer(ev *events.Mouse) bool {
	if ev == nil || !h.inputOpen() {
		return false
	}
	if ev.Type() == events.MouseDown {
		h.Focus(true)
	}
	h.renderer.SendPointerEvent(ev.WithPos(h.Scale().PointToLogical(ev.Pos())))
	return true
}

// HandleWheel forwards a mouse wheel event, unless the mouse
// wheel is disabled or the event does not scroll at all.
func (h *Host) HandleWheel(ev *events.MouseScroll) bool {
	if ev == nil || !h.inputOpen() {
		return false
	}
	h.mu.Lock()
	enabled := h.opts.MouseWheelEnabled
	h.mu.Unlock()
	if !enabled || ev.IsZero() {
		return false
	}
	nev := *ev
	nev.Where = h.Scale().PointToLogical(ev.Pos())
	nev.Delta = ev.Delta.DivScalar(h.hostScale())
	h.renderer.SendWheelEvent(&nev)
	return true
}

// HandleKey forwards a key event.
func (h *Host) HandleKey(ev *events.Key) bool {
	if ev == nil || !h.inputOpen() {
		return false
	}
	h.renderer.SendKeyEvent(ev)
	return true
}

// HandleTouch forwards a touch event, including its radius.
func (h *Host) HandleTouch(ev *events.Touch) bool {
	if ev == nil || !h.inputOpen() {
		return false
	}
	nev := *ev
	nev.Where = h.Scale().PointToLogical(ev.Pos())
	nev.Radius = ev.Radius.DivScalar(h.hostScale())
	h.renderer.SendTouchEvent(&nev)
	return true
}
