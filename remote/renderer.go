// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remote

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"cogentcore.org/osr/base/websocket"
	"cogentcore.org/osr/events"
	"cogentcore.org/osr/logx"
	"cogentcore.org/osr/renderer"
)

func logSendError(typ Types, err error) {
	logx.Once("remote.send."+string(typ), "remote: sending message failed", "type", typ, "err", err)
}

// Renderer is the host side of a remote engine: a [renderer.Renderer]
// that sends the calls of the host over a WebSocket.
type Renderer struct {
	conn

	created atomic.Bool

	// mu guards handler.
	mu sync.Mutex

	handler renderer.Handler
}

var _ renderer.Renderer = (*Renderer)(nil)

// Dial connects to the engine at the given WebSocket URL.
func Dial(ctx context.Context, url string) (*Renderer, error) {
	ws, err := websocket.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewRenderer(ws), nil
}

// NewRenderer returns a new [Renderer] on the given connection.
// It does not read any message until [Renderer.Attach] is called.
func NewRenderer(ws *websocket.Client) *Renderer {
	return &Renderer{conn: conn{ws: ws}}
}

// Attach starts delivering the messages of the engine to the given
// handler, on the reading goroutine. It must be called once, after the
// surface host has been made with this renderer.
func (r *Renderer) Attach(h renderer.Handler) {
	r.mu.Lock()
	r.handler = h
	r.mu.Unlock()
	r.ws.OnMessage(r.receive)
}

// Done returns a channel that is closed once the connection is closed.
func (r *Renderer) Done() <-chan struct{} {
	return r.ws.Done()
}

// Close closes the connection to the engine.
func (r *Renderer) Close() error {
	return r.ws.Close()
}

func (r *Renderer) getHandler() renderer.Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handler
}

// withGeometry adds the view and screen info of the handler to m.
func (r *Renderer) withGeometry(m *Message) *Message {
	if h := r.getHandler(); h != nil {
		si := h.ScreenInfo()
		m.View = h.ViewRect()
		m.Screen = &si
	}
	return m
}

func (r *Renderer) receive(typ websocket.MessageTypes, b []byte) {
	m, err := Decode(typ, b)
	if err != nil {
		slog.Error("remote: dropping message from engine", "err", err)
		return
	}
	h := r.getHandler()
	switch m.Type {
	case Paint:
		h.OnPaint(m.Flag, m.Rects, m.Pixels, m.Size.X, m.Size.Y)
	case PopupShow:
		h.OnPopupShow(m.Flag)
	case PopupSize:
		h.OnPopupSize(m.Rect)
	case Selection:
		h.OnTextSelectionChanged(m.Text, m.Range)
	case Composition:
		h.OnImeCompositionRangeChanged(m.Range, m.Rects)
	case ScreenPoint:
		r.send(&Message{Type: ScreenPoint, ID: m.ID, Point: h.ScreenPoint(m.Point)})
	default:
		logx.Once("remote.unknown."+string(m.Type), "remote: unknown message from engine", "type", m.Type)
	}
}

func (r *Renderer) IsCreated() bool {
	return r.created.Load()
}

func (r *Renderer) CreateImmediately() {
	if r.created.Swap(true) {
		return
	}
	r.send(r.withGeometry(&Message{Type: Create}))
}

func (r *Renderer) WasResized(width, height int) {
	r.send(r.withGeometry(&Message{Type: Resize, Size: image.Pt(width, height)}))
}

func (r *Renderer) WasHidden(hidden bool) {
	r.send(&Message{Type: Hidden, Flag: hidden})
}

func (r *Renderer) NotifyScreenInfoChanged() {
	r.send(r.withGeometry(&Message{Type: ScreenInfoChanged}))
}

func (r *Renderer) SetFocus(focused bool) {
	r.send(&Message{Type: Focus, Flag: focused})
}

func (r *Renderer) SendPointerEvent(ev *events.Mouse) {
	r.send(&Message{Type: Pointer, Mouse: ev})
}

func (r *Renderer) SendWheelEvent(ev *events.MouseScroll) {
	r.send(&Message{Type: Wheel, Scroll: ev})
}

func (r *Renderer) SendKeyEvent(ev *events.Key) {
	r.send(&Message{Type: Key, Key: ev})
}

func (r *Renderer) SendTouchEvent(ev *events.Touch) {
	r.send(&Message{Type: Touch, Touch: ev})
}

func (r *Renderer) ImeSetComposition(text string, underlines []events.Underline, replacement, selection events.Range) {
	r.send(&Message{Type: ImeComposition, Text: text, Underlines: underlines, Replacement: replacement, Range: selection})
}

func (r *Renderer) ImeCommitText(text string, replacement events.Range, relativeCursorPos int) {
	r.send(&Message{Type: ImeCommit, Text: text, Replacement: replacement, Cursor: relativeCursorPos})
}

func (r *Renderer) ImeFinishComposingText(keepSelection bool) {
	r.send(&Message{Type: ImeFinish, Flag: keepSelection})
}

func (r *Renderer) ImeCancelComposition() {
	r.send(&Message{Type: ImeCancel})
}
