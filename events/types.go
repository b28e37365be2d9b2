// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "fmt"

// Types determines the type of input event forwarded to the renderer.
// The type includes both the source of the event and its action
// (for example MouseDown and MouseUp are separate types).
// The standard [JavaScript Event](https://developer.mozilla.org/en-US/docs/Web/Events)
// provide the basis for most of the event type names.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// MouseDown happens when a mouse button is pressed down. See Button for which.
	MouseDown

	// MouseUp happens when a mouse button is released. See Button for which.
	MouseUp

	// MouseMove is sent when the mouse is moving with no button down.
	MouseMove

	// MouseDrag is sent when the mouse is moving with a button down.
	MouseDrag

	// MouseEnter is sent when the mouse enters the surface.
	MouseEnter

	// MouseLeave is sent when the mouse leaves the surface.
	MouseLeave

	// Scroll is for scroll wheel or other scrolling events (gestures).
	Scroll

	// KeyDown is when a key is pressed down.
	KeyDown

	// KeyUp is when a key is released.
	KeyUp

	// KeyChar is the character produced by a key press,
	// sent after the KeyDown for keys that produce text.
	KeyChar

	// TouchStart is when a touch point starts.
	TouchStart

	// TouchEnd is when a touch point ends.
	TouchEnd

	// TouchMove is when a touch point moves.
	TouchMove

	// TouchCancel is when a touch sequence is cancelled by the platform.
	TouchCancel
)

var typeNames = [...]string{
	"UnknownType", "MouseDown", "MouseUp", "MouseMove", "MouseDrag", "MouseEnter", "MouseLeave",
	"Scroll", "KeyDown", "KeyUp", "KeyChar", "TouchStart", "TouchEnd", "TouchMove", "TouchCancel",
}

func (tp Types) String() string {
	if tp < 0 || int(tp) >= len(typeNames) {
		return fmt.Sprintf("Types(%d)", int32(tp))
	}
	return typeNames[tp]
}

// IsMouse returns whether the type is a mouse (pointer) type, excluding Scroll.
func (tp Types) IsMouse() bool {
	return tp >= MouseDown && tp <= MouseLeave
}

// IsKey returns whether the type is a key type.
func (tp Types) IsKey() bool {
	return tp >= KeyDown && tp <= KeyChar
}

// IsTouch returns whether the type is a touch type.
func (tp Types) IsTouch() bool {
	return tp >= TouchStart && tp <= TouchCancel
}
