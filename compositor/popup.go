// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compositor

import (
	"image"
	"sync"

	"cogentcore.org/osr/pixbuf"
	"cogentcore.org/osr/scale"
	"golang.org/x/image/draw"
)

// PopupState is a consistent copy of the state of a popup overlay.
type PopupState struct {

	// Buffer is the popup frame, which is nil until the first popup paint.
	Buffer *pixbuf.Buffer

	// Bounds is the placement of the popup in logical view coordinates.
	Bounds image.Rectangle

	// Visible is whether the popup is shown.
	Visible bool
}

// popupOverlay is a secondary frame composited on top of the main one,
// such as a dropdown list. Its buffer, bounds and visibility are only
// ever read and written together under mu, by the renderer goroutine
// (writer) and the UI thread (reader).
type popupOverlay struct {
	mu      sync.Mutex
	buffer  *pixbuf.Buffer
	bounds  image.Rectangle
	visible bool
}

// Show sets the visibility of the popup, returning whether it changed.
func (po *popupOverlay) Show(show bool) bool {
	po.mu.Lock()
	defer po.mu.Unlock()
	changed := po.visible != show
	po.visible = show
	return changed
}

// SetBounds sets the placement of the popup.
func (po *popupOverlay) SetBounds(bounds image.Rectangle) {
	po.mu.Lock()
	po.bounds = bounds
	po.mu.Unlock()
}

// Paint applies the dirty rectangles of the given raw popup frame,
// replacing the buffer first if the frame size has changed.
func (po *popupOverlay) Paint(rects []image.Rectangle, src []byte, width, height int) pixbuf.BlitResult {
	po.mu.Lock()
	defer po.mu.Unlock()
	po.buffer = pixbuf.Ensure(po.buffer, width, height)
	return po.buffer.Blit(src, rects)
}

// Set replaces the whole state of the popup at once.
func (po *popupOverlay) Set(st PopupState) {
	po.mu.Lock()
	po.buffer = st.Buffer
	po.bounds = st.Bounds
	po.visible = st.Visible
	po.mu.Unlock()
}

// Snapshot returns a consistent copy of the state of the popup,
// with its own copy of the pixels.
func (po *popupOverlay) Snapshot() PopupState {
	po.mu.Lock()
	defer po.mu.Unlock()
	st := PopupState{Bounds: po.bounds, Visible: po.visible}
	if po.buffer != nil {
		st.Buffer = po.buffer.Clone()
	}
	return st
}

// drawTo composites the popup over dst if it is visible, placing it at
// its bounds converted to device pixels. It returns the region drawn.
func (po *popupOverlay) drawTo(dst draw.Image, sc scale.State) image.Rectangle {
	po.mu.Lock()
	defer po.mu.Unlock()
	if !po.visible || po.buffer == nil || po.bounds.Empty() {
		return image.Rectangle{}
	}
	pos := sc.LogicalToDevice(po.bounds).Min
	r := image.Rectangle{Min: pos, Max: pos.Add(po.buffer.Size())}.Intersect(dst.Bounds())
	if r.Empty() {
		return r
	}
	draw.Draw(dst, r, po.buffer.Image(), r.Min.Sub(pos), draw.Over)
	return r
}
