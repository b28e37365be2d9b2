// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"fmt"
	"image"
	"sync"

	"cogentcore.org/osr/events"
)

// Call is one call made to a [Recorder].
type Call struct {

	// Method is the name of the [Renderer] method that was called.
	Method string

	// Size is the size passed to WasResized.
	Size image.Point

	// Flag is the bool argument of WasHidden, SetFocus and
	// ImeFinishComposingText.
	Flag bool

	// Event is the event passed to one of the Send methods.
	Event events.Event

	// Text is the text passed to the IME methods.
	Text string

	// Replacement and Selection are the ranges passed to the IME methods.
	Replacement, Selection events.Range

	// Cursor is the relative cursor position passed to ImeCommitText.
	Cursor int
}

func (c Call) String() string {
	switch c.Method {
	case "WasResized":
		return fmt.Sprintf("WasResized(%d, %d)", c.Size.X, c.Size.Y)
	case "WasHidden", "SetFocus", "ImeFinishComposingText":
		return fmt.Sprintf("%s(%v)", c.Method, c.Flag)
	case "ImeSetComposition", "ImeCommitText":
		return fmt.Sprintf("%s(%q, %v)", c.Method, c.Text, c.Replacement)
	}
	if c.Event != nil {
		return fmt.Sprintf("%s(%v)", c.Method, c.Event)
	}
	return c.Method + "()"
}

// Recorder is a [Renderer] that records all of the calls made to it,
// for tests and for running without a real engine. It is safe to use
// from multiple goroutines.
type Recorder struct {
	mu sync.Mutex

	created bool

	calls []Call

	// OnCall, if set, is called after each call is recorded,
	// without holding the lock.
	OnCall func(c Call)
}

var _ Renderer = (*Recorder)(nil)

// NewRecorder returns a new [Recorder] whose native peer is not created yet.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	fn := r.OnCall
	r.mu.Unlock()
	if fn != nil {
		fn(c)
	}
}

// Calls returns a copy of all of the calls recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CallsTo returns the recorded calls to the given method.
func (r *Recorder) CallsTo(method string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cs []Call
	for _, c := range r.calls {
		if c.Method == method {
			cs = append(cs, c)
		}
	}
	return cs
}

// Count returns the number of recorded calls to the given method.
func (r *Recorder) Count(method string) int {
	return len(r.CallsTo(method))
}

// Last returns the last recorded call to the given method,
// and false if there is none.
func (r *Recorder) Last(method string) (Call, bool) {
	cs := r.CallsTo(method)
	if len(cs) == 0 {
		return Call{}, false
	}
	return cs[len(cs)-1], true
}

// Reset forgets all of the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *Recorder) IsCreated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

func (r *Recorder) CreateImmediately() {
	r.mu.Lock()
	r.created = true
	r.mu.Unlock()
	r.record(Call{Method: "CreateImmediately"})
}

func (r *Recorder) WasResized(width, height int) {
	r.record(Call{Method: "WasResized", Size: image.Pt(width, height)})
}

func (r *Recorder) WasHidden(hidden bool) {
	r.record(Call{Method: "WasHidden", Flag: hidden})
}

func (r *Recorder) NotifyScreenInfoChanged() {
	r.record(Call{Method: "NotifyScreenInfoChanged"})
}

func (r *Recorder) SetFocus(focused bool) {
	r.record(Call{Method: "SetFocus", Flag: focused})
}

func (r *Recorder) SendPointerEvent(ev *events.Mouse) {
	r.record(Call{Method: "SendPointerEvent", Event: ev})
}

func (r *Recorder) SendWheelEvent(ev *events.MouseScroll) {
	r.record(Call{Method: "SendWheelEvent", Event: ev})
}

func (r *Recorder) SendKeyEvent(ev *events.Key) {
	r.record(Call{Method: "SendKeyEvent", Event: ev})
}

func (r *Recorder) SendTouchEvent(ev *events.Touch) {
	r.record(Call{Method: "SendTouchEvent", Event: ev})
}

func (r *Recorder) ImeSetComposition(text string, underlines []events.Underline, replacement, selection events.Range) {
	r.record(Call{Method: "ImeSetComposition", Text: text, Replacement: replacement, Selection: selection})
}

func (r *Recorder) ImeCommitText(text string, replacement events.Range, relativeCursorPos int) {
	r.record(Call{Method: "ImeCommitText", Text: text, Replacement: replacement, Cursor: relativeCursorPos})
}

func (r *Recorder) ImeFinishComposingText(keepSelection bool) {
	r.record(Call{Method: "ImeFinishComposingText", Flag: keepSelection})
}

func (r *Recorder) ImeCancelComposition() {
	r.record(Call{Method: "ImeCancelComposition"})
}
