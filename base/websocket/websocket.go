// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package websocket provides a simple WebSocket connection
// with callbacks for messages and closing, usable on both ends.
package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageTypes are the types of WebSocket messages.
type MessageTypes int

const (
	// TextMessage is a UTF-8 text message.
	TextMessage MessageTypes = websocket.TextMessage

	// BinaryMessage is a binary data message.
	BinaryMessage MessageTypes = websocket.BinaryMessage
)

func (mt MessageTypes) String() string {
	switch mt {
	case TextMessage:
		return "text"
	case BinaryMessage:
		return "binary"
	}
	return "MessageTypes(" + strconv.Itoa(int(mt)) + ")"
}

// Client represents a WebSocket connection, from either end.
// You can use [Connect] or [Accept] to create a new Client.
type Client struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// writeMu serializes writes, as the connection supports
	// only one concurrent writer.
	writeMu sync.Mutex

	// done is a channel that is closed when the connection is closed.
	done chan struct{}

	// err is the error that ended reading, set before done is closed.
	err error
}

// ReadLimit is the largest message in bytes that a [Client] reads.
// A larger message closes the connection. It applies to clients
// created after it is set.
var ReadLimit int64 = 1<<28 + 1<<20

func newClient(conn *websocket.Conn) *Client {
	conn.SetReadLimit(ReadLimit)
	return &Client{conn: conn, done: make(chan struct{})}
}

// Connect connects to a WebSocket server and returns a [Client].
func Connect(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return newClient(conn), nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 1 << 16,
}

// Accept upgrades the given HTTP request to a WebSocket connection
// and returns a [Client] for it. On failure the upgrader has already
// replied to the request.
func Accept(w http.ResponseWriter, r *http.Request) (*Client, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return newClient(conn), nil
}

// OnMessage sets a callback function to be called when a message is
// received, on the reading goroutine. A panic in f is logged and the
// message dropped. This function can only be called once.
func (c *Client) OnMessage(f func(typ MessageTypes, msg []byte)) {
	go func() {
		defer close(c.done)
		for {
			typ, msg, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					slog.Error("websocket: read", "err", err)
					c.err = err
				}
				c.conn.Close()
				return
			}
			c.handle(f, MessageTypes(typ), msg)
		}
	}()
}

func (c *Client) handle(f func(typ MessageTypes, msg []byte), typ MessageTypes, msg []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("websocket: panic in message handler", "type", typ, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	f(typ, msg)
}

// Send sends a message with the given type and message.
// It may be called from any goroutine.
func (c *Client) Send(typ MessageTypes, msg []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(int(typ), msg)
}

// Close cleanly closes the WebSocket connection.
// It does not directly trigger [Client.OnClose], but once the connection
// is closed, [Client.OnMessage] will trigger it.
func (c *Client) Close() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	err := c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if errors.Is(err, websocket.ErrCloseSent) {
		return nil
	}
	return err
}

// OnClose sets a callback function to be called when the connection is closed.
// This function can only be called once.
func (c *Client) OnClose(f func()) {
	go func() {
		<-c.done
		f()
	}()
}

// Done returns a channel that is closed once the connection is closed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns the error that closed the connection, which is nil after
// a clean close. It is only valid once [Client.Done] is closed.
func (c *Client) Err() error {
	return c.err
}
