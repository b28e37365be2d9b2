// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"image"
	"slices"

	"cogentcore.org/osr/events"
)

// imeState is the text input state reported by the renderer,
// guarded by the mutex of the [Host].
type imeState struct {
	selectedText string

	selection events.Range

	composition events.Range

	// bounds are the bounds of each character of the composition,
	// in logical view coordinates.
	bounds []image.Rectangle
}

func (st *imeState) reset() {
	*st = imeState{selection: events.InvalidRange, composition: events.InvalidRange}
}

// OnTextSelectionChanged records the selected text and its range.
// It may be called from any goroutine.
func (h *Host) OnTextSelectionChanged(selectedText string, selection events.Range) {
	h.mu.Lock()
	h.ime.selectedText = selectedText
	h.ime.selection = selection
	h.mu.Unlock()
}

// OnImeCompositionRangeChanged records the range of the composition
// and the bounds of its characters. It may be called from any goroutine.
func (h *Host) OnImeCompositionRangeChanged(selection events.Range, characterBounds []image.Rectangle) {
	h.mu.Lock()
	h.ime.composition = selection
	h.ime.bounds = slices.Clone(characterBounds)
	h.mu.Unlock()
}

// SelectedText returns the text that is selected in the renderer.
func (h *Host) SelectedText() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ime.selectedText
}

// SelectionRange returns the range of the selection, which is
// [events.InvalidRange] if nothing has been reported.
func (h *Host) SelectionRange() events.Range {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ime.selection
}

// CompositionRange returns the range of the current composition.
func (h *Host) CompositionRange() events.Range {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ime.composition
}

// CompositionBBoxes returns the bounds of each character of the current
// composition in host coordinates, for placing the candidate window of
// the input method.
func (h *Host) CompositionBBoxes() []image.Rectangle {
	sc := h.Scale()
	h.mu.Lock()
	defer h.mu.Unlock()
	bbs := make([]image.Rectangle, len(h.ime.bounds))
	for i, b := range h.ime.bounds {
		bbs[i] = sc.LogicalToHost(b)
	}
	return bbs
}

// CommitText commits the given text at the caret.
func (h *Host) CommitText(text string) {
	if !h.inputOpen() {
		return
	}
	h.renderer.ImeCommitText(text, events.InvalidRange, 0)
	h.clearComposition()
}

// SetComposition sets the text being composed, with the caret
// at the given selection within it.
func (h *Host) SetComposition(text string, underlines []events.Underline, selection events.Range) {
	if !h.inputOpen() {
		return
	}
	h.renderer.ImeSetComposition(text, underlines, events.InvalidRange, selection)
}

// CancelComposition cancels the text being composed.
func (h *Host) CancelComposition() {
	if !h.inputOpen() {
		return
	}
	h.renderer.ImeCancelComposition()
	h.clearComposition()
}

// FinishComposition commits the text being composed.
func (h *Host) FinishComposition(keepSelection bool) {
	if !h.inputOpen() {
		return
	}
	h.renderer.ImeFinishComposingText(keepSelection)
	h.clearComposition()
}

func (h *Host) clearComposition() {
	h.mu.Lock()
	h.ime.composition = events.InvalidRange
	h.ime.bounds = nil
	h.mu.Unlock()
}
