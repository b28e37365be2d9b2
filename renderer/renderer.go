// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderer defines the contract between an out-of-process
// rendering engine and the compositor and surface host that embed it.
//
// Calls into a [Renderer] are one-way notifications: nothing waits for
// the renderer to acknowledge them. Calls into a [Handler] are made by
// the renderer from its own callback goroutine, concurrently with the
// UI thread.
package renderer

import (
	"image"

	"cogentcore.org/osr/events"
)

// Renderer is the rendering engine, as seen from the surface host.
// All sizes and positions are in logical (DIP) coordinates.
type Renderer interface {

	// IsCreated returns whether the native peer of the renderer exists.
	IsCreated() bool

	// CreateImmediately creates the native peer synchronously.
	// It is the only blocking call made on the UI thread.
	CreateImmediately()

	// WasResized notifies the renderer that the view has the given size.
	WasResized(width, height int)

	// WasHidden notifies the renderer that the view was hidden or shown.
	WasHidden(hidden bool)

	// NotifyScreenInfoChanged notifies the renderer that the scale or
	// screen of the view has changed, so it queries them again.
	NotifyScreenInfoChanged()

	// SetFocus tells the renderer whether the view has the logical focus.
	SetFocus(focused bool)

	// SendPointerEvent sends a mouse event.
	SendPointerEvent(ev *events.Mouse)

	// SendWheelEvent sends a mouse wheel event.
	SendWheelEvent(ev *events.MouseScroll)

	// SendKeyEvent sends a key event.
	SendKeyEvent(ev *events.Key)

	// SendTouchEvent sends a touch event.
	SendTouchEvent(ev *events.Touch)

	// ImeSetComposition sets the current composition text, replacing the
	// given range of existing text, with the caret at the selection range.
	ImeSetComposition(text string, underlines []events.Underline, replacement, selection events.Range)

	// ImeCommitText commits the given text, replacing the given range,
	// and moves the caret by relativeCursorPos from the end of the text.
	ImeCommitText(text string, replacement events.Range, relativeCursorPos int)

	// ImeFinishComposingText commits the current composition text.
	ImeFinishComposingText(keepSelection bool)

	// ImeCancelComposition cancels the current composition.
	ImeCancelComposition()
}

// ScreenInfo is the screen information that the renderer queries.
type ScreenInfo struct {

	// Scale is the device scale factor.
	Scale float64

	// Bounds is the rectangle of the screen that contains the view, in
	// physical screen coordinates. It is the zero rectangle when no screen
	// can be determined, which means unknown and not a zero-area screen.
	Bounds image.Rectangle
}

// Handler receives the calls that the renderer makes into the
// compositor and surface host. Its methods may be called from any goroutine.
type Handler interface {

	// ViewRect returns the rectangle of the view in logical coordinates.
	ViewRect() image.Rectangle

	// ScreenInfo returns the screen information for the view.
	ScreenInfo() ScreenInfo

	// ScreenPoint converts the given view point to screen coordinates.
	ScreenPoint(viewPoint image.Point) image.Point

	// OnPaint delivers a frame of the given size, where only the dirty
	// rectangles have changed. The buffer is only valid during the call.
	OnPaint(isPopup bool, dirtyRects []image.Rectangle, buffer []byte, width, height int)

	// OnPopupShow shows or hides the popup.
	OnPopupShow(show bool)

	// OnPopupSize sets the bounds of the popup in logical view coordinates.
	OnPopupSize(bounds image.Rectangle)

	// OnTextSelectionChanged reports the selected text and its range.
	OnTextSelectionChanged(selectedText string, selection events.Range)

	// OnImeCompositionRangeChanged reports the range of the composition
	// text and the bounds of each of its characters, in view coordinates.
	OnImeCompositionRangeChanged(selection events.Range, characterBounds []image.Rectangle)
}
