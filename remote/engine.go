// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remote

import (
	"image"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cogentcore.org/osr/base/websocket"
	"cogentcore.org/osr/events"
	"cogentcore.org/osr/logx"
	"cogentcore.org/osr/renderer"
)

// DefaultTimeout is the default time that [Engine.ScreenPoint]
// waits for the reply of the host.
const DefaultTimeout = time.Second

// Engine is the engine side of a remote surface host: a
// [renderer.Handler] that sends the frames and notifications of the
// engine over a WebSocket, and calls the engine's [renderer.Renderer]
// with the calls of the host, on the reading goroutine.
type Engine struct {
	conn

	target renderer.Renderer

	// Timeout is the time that ScreenPoint waits for the host.
	Timeout time.Duration

	// mu guards the fields below it.
	mu sync.Mutex

	view image.Rectangle

	screen renderer.ScreenInfo

	nextID int64

	// pending are the ScreenPoint requests waiting for a reply.
	pending map[int64]chan image.Point
}

var _ renderer.Handler = (*Engine)(nil)

// NewEngine returns a new [Engine] on the given connection that
// calls target with the calls of the host, and starts reading.
func NewEngine(ws *websocket.Client, target renderer.Renderer) *Engine {
	e := &Engine{conn: conn{ws: ws}, target: target, Timeout: DefaultTimeout, pending: map[int64]chan image.Point{}}
	ws.OnMessage(e.receive)
	return e
}

// Handler returns an HTTP handler that accepts the connections of
// hosts, calling serve with a new [Engine] for each one. Each connection
// stays open after serve returns, until the host closes it.
func Handler(target func() renderer.Renderer, serve func(e *Engine)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := websocket.Accept(w, r)
		if err != nil {
			slog.Error("remote: accepting host", "err", err)
			return
		}
		serve(NewEngine(ws, target()))
	})
}

// Done returns a channel that is closed once the connection is closed.
func (e *Engine) Done() <-chan struct{} {
	return e.ws.Done()
}

// Close closes the connection to the host.
func (e *Engine) Close() error {
	return e.ws.Close()
}

func (e *Engine) setGeometry(m *Message) {
	e.mu.Lock()
	e.view = m.View
	if m.Screen != nil {
		e.screen = *m.Screen
	}
	e.mu.Unlock()
}

func (e *Engine) receive(typ websocket.MessageTypes, b []byte) {
	m, err := Decode(typ, b)
	if err != nil {
		slog.Error("remote: dropping message from host", "err", err)
		return
	}
	t := e.target
	switch m.Type {
	case Create:
		e.setGeometry(m)
		t.CreateImmediately()
	case Resize:
		e.setGeometry(m)
		t.WasResized(m.Size.X, m.Size.Y)
	case Hidden:
		t.WasHidden(m.Flag)
	case ScreenInfoChanged:
		e.setGeometry(m)
		t.NotifyScreenInfoChanged()
	case Focus:
		t.SetFocus(m.Flag)
	case Pointer:
		if m.Mouse != nil {
			t.SendPointerEvent(m.Mouse)
		}
	case Wheel:
		if m.Scroll != nil {
			t.SendWheelEvent(m.Scroll)
		}
	case Key:
		if m.Key != nil {
			t.SendKeyEvent(m.Key)
		}
	case Touch:
		if m.Touch != nil {
			t.SendTouchEvent(m.Touch)
		}
	case ImeComposition:
		t.ImeSetComposition(m.Text, m.Underlines, m.Replacement, m.Range)
	case ImeCommit:
		t.ImeCommitText(m.Text, m.Replacement, m.Cursor)
	case ImeFinish:
		t.ImeFinishComposingText(m.Flag)
	case ImeCancel:
		t.ImeCancelComposition()
	case ScreenPoint:
		e.mu.Lock()
		ch := e.pending[m.ID]
		delete(e.pending, m.ID)
		e.mu.Unlock()
		if ch != nil {
			ch <- m.Point
		}
	default:
		logx.Once("remote.unknown."+string(m.Type), "remote: unknown message from host", "type", m.Type)
	}
}

// ViewRect returns the view rectangle last sent by the host.
func (e *Engine) ViewRect() image.Rectangle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

// ScreenInfo returns the screen info last sent by the host.
func (e *Engine) ScreenInfo() renderer.ScreenInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.screen
}

// ScreenPoint asks the host to convert the given view point, waiting up
// to Timeout for the reply. On failure it returns the view point itself.
// It must not be called from within a call of the host, since replies
// are read on the same goroutine.
func (e *Engine) ScreenPoint(viewPoint image.Point) image.Point {
	ch := make(chan image.Point, 1)
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.pending[id] = ch
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		delete(e.pending, id)
		e.mu.Unlock()
	}()
	if err := e.send(&Message{Type: ScreenPoint, ID: id, Point: viewPoint}); err != nil {
		return viewPoint
	}
	select {
	case p := <-ch:
		return p
	case <-e.ws.Done():
	case <-time.After(e.Timeout):
		logx.Once("remote.screen-point-timeout", "remote: host did not reply to a screen point request", "timeout", e.Timeout)
	}
	return viewPoint
}

func (e *Engine) OnPaint(isPopup bool, dirtyRects []image.Rectangle, buffer []byte, width, height int) {
	e.send(&Message{Type: Paint, Flag: isPopup, Rects: dirtyRects, Pixels: buffer, Size: image.Pt(width, height)})
}

func (e *Engine) OnPopupShow(show bool) {
	e.send(&Message{Type: PopupShow, Flag: show})
}

func (e *Engine) OnPopupSize(bounds image.Rectangle) {
	e.send(&Message{Type: PopupSize, Rect: bounds})
}

func (e *Engine) OnTextSelectionChanged(selectedText string, selection events.Range) {
	e.send(&Message{Type: Selection, Text: selectedText, Range: selection})
}

func (e *Engine) OnImeCompositionRangeChanged(selection events.Range, characterBounds []image.Rectangle) {
	e.send(&Message{Type: Composition, Range: selection, Rects: characterBounds})
}
