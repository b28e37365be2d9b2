// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package remote connects a surface host to a rendering engine in another
// process over a WebSocket. The host side is a [Renderer], which sends
// the calls of the host to the engine and delivers the frames and
// notifications of the engine to a [renderer.Handler] on its reading
// goroutine. The engine side is an [Engine], which does the reverse.
//
// Messages are JSON text messages, except for paints, which are binary
// messages made of a big-endian uint32 header length, the JSON header,
// and then the raw pixels.
package remote

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"

	"cogentcore.org/osr/base/websocket"
	"cogentcore.org/osr/events"
	"cogentcore.org/osr/renderer"
)

// Types are the types of messages.
type Types string

// Messages from the host to the engine.
const (
	Create            Types = "create"
	Resize            Types = "resize"
	Hidden            Types = "hidden"
	ScreenInfoChanged Types = "screen-info-changed"
	Focus             Types = "focus"
	Pointer           Types = "pointer"
	Wheel             Types = "wheel"
	Key               Types = "key"
	Touch             Types = "touch"
	ImeComposition    Types = "ime-set-composition"
	ImeCommit         Types = "ime-commit"
	ImeFinish         Types = "ime-finish"
	ImeCancel         Types = "ime-cancel"
)

// Messages from the engine to the host.
const (
	Paint       Types = "paint"
	PopupShow   Types = "popup-show"
	PopupSize   Types = "popup-size"
	Selection   Types = "selection"
	Composition Types = "composition"
)

// ScreenPoint is a request from the engine to convert a view point,
// and the reply of the host with the same ID.
const ScreenPoint Types = "screen-point"

// Message is one message in either direction. Which fields
// are used depends on the type.
type Message struct {
	Type Types `json:"type"`

	// ID matches a ScreenPoint reply to its request.
	ID int64 `json:"id,omitempty"`

	// View and Screen are the view rectangle and screen info of
	// the host, sent along with Create, Resize and ScreenInfoChanged.
	View   image.Rectangle      `json:"view"`
	Screen *renderer.ScreenInfo `json:"screen,omitempty"`

	Flag bool `json:"flag,omitempty"`

	// Size is the size of Resize and the frame size of Paint.
	Size image.Point `json:"size"`

	Rects []image.Rectangle `json:"rects,omitempty"`

	// Pixels are the pixels of Paint, which are not part of the JSON.
	Pixels []byte `json:"-"`

	// Rect is the popup bounds of PopupSize.
	Rect image.Rectangle `json:"rect"`

	Point image.Point `json:"point"`

	Text string `json:"text,omitempty"`

	Range       events.Range `json:"range"`
	Replacement events.Range `json:"replacement"`

	Cursor int `json:"cursor,omitempty"`

	Underlines []events.Underline `json:"underlines,omitempty"`

	Mouse  *events.Mouse       `json:"mouse,omitempty"`
	Scroll *events.MouseScroll `json:"scroll,omitempty"`
	Key    *events.Key         `json:"key,omitempty"`
	Touch  *events.Touch       `json:"touch,omitempty"`
}

// maxHeader is the largest paint header accepted.
const maxHeader = 1 << 20

// Encode returns the WebSocket message type and data of the message.
func Encode(m *Message) (websocket.MessageTypes, []byte, error) {
	hdr, err := json.Marshal(m)
	if err != nil {
		return websocket.TextMessage, nil, fmt.Errorf("remote: encoding %s: %w", m.Type, err)
	}
	if m.Type != Paint {
		return websocket.TextMessage, hdr, nil
	}
	b := make([]byte, 4, 4+len(hdr)+len(m.Pixels))
	binary.BigEndian.PutUint32(b, uint32(len(hdr)))
	b = append(b, hdr...)
	b = append(b, m.Pixels...)
	return websocket.BinaryMessage, b, nil
}

// Decode decodes a message of the given WebSocket message type. The
// pixels of a paint alias b.
func Decode(typ websocket.MessageTypes, b []byte) (*Message, error) {
	m := &Message{}
	if typ != websocket.BinaryMessage {
		if err := json.Unmarshal(b, m); err != nil {
			return nil, fmt.Errorf("remote: decoding message: %w", err)
		}
		return m, nil
	}
	if len(b) < 4 {
		return nil, fmt.Errorf("remote: binary message of %d bytes has no header", len(b))
	}
	n := binary.BigEndian.Uint32(b)
	if n > maxHeader || int(n) > len(b)-4 {
		return nil, fmt.Errorf("remote: invalid header length %d in binary message of %d bytes", n, len(b))
	}
	if err := json.Unmarshal(b[4:4+n], m); err != nil {
		return nil, fmt.Errorf("remote: decoding paint header: %w", err)
	}
	m.Pixels = b[4+n:]
	return m, nil
}

// conn is the sending half shared by both sides.
type conn struct {
	ws *websocket.Client
}

// send encodes and sends the message, logging a failure once per
// class of message, as the calls that send have no error result.
func (c *conn) send(m *Message) error {
	typ, b, err := Encode(m)
	if err == nil {
		err = c.ws.Send(typ, b)
	}
	if err != nil {
		logSendError(m.Type, err)
	}
	return err
}
