// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"image"

	"cogentcore.org/osr/events/key"
	"github.com/chewxy/math32"
)

var (
	// ScrollWheelSpeed controls how fast the scroll wheel moves (typically
	// interpreted as pixels per wheel step).
	ScrollWheelSpeed = float32(1)
)

// Buttons is a mouse button.
type Buttons int32

const (
	NoButton Buttons = iota
	Left
	Middle
	Right
)

func (b Buttons) String() string {
	switch b {
	case NoButton:
		return "NoButton"
	case Left:
		return "Left"
	case Middle:
		return "Middle"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Buttons(%d)", int32(b))
}

// Mouse is a basic mouse event for all mouse events except Scroll.
type Mouse struct {
	Base

	// Button is the button that changed state for MouseDown and MouseUp,
	// and the button held down for MouseDrag.
	Button Buttons

	// ClickCount is the number of consecutive clicks, for MouseDown and MouseUp.
	ClickCount int
}

func NewMouse(typ Types, but Buttons, where image.Point, mods key.Modifiers) *Mouse {
	ev := &Mouse{}
	ev.Init(typ)
	ev.Button = but
	ev.Where = where
	ev.Mods = mods
	if typ == MouseDown || typ == MouseUp {
		ev.ClickCount = 1
	}
	return ev
}

func (ev *Mouse) String() string {
	return fmt.Sprintf("%v{Button: %v, Pos: %v, Mods: %v, Time: %v}", ev.Type(), ev.Button, ev.Where, ev.Mods.ModifiersString(), ev.Time().Format("04:05"))
}

func (ev *Mouse) HasPos() bool {
	return true
}

// WithPos returns a copy of the event at the given position.
func (ev *Mouse) WithPos(where image.Point) *Mouse {
	nev := *ev
	nev.Where = where
	return &nev
}

// MouseScroll is for mouse scrolling, recording the delta of the scroll.
type MouseScroll struct {
	Mouse

	// Delta is the amount of scrolling in each axis, which is always in pixel/dot
	// units of the coordinate space of the event.
	Delta Vector2
}

func (ev *MouseScroll) String() string {
	return fmt.Sprintf("%v{Delta: %v, Pos: %v, Mods: %v, Time: %v}", ev.Type(), ev.Delta, ev.Where, ev.Mods.ModifiersString(), ev.Time().Format("04:05"))
}

func NewScroll(where image.Point, delta Vector2, mods key.Modifiers) *MouseScroll {
	ev := &MouseScroll{}
	ev.Init(Scroll)
	ev.Where = where
	ev.Delta = delta.MulScalar(ScrollWheelSpeed)
	ev.Mods = mods
	return ev
}

// IsZero returns whether the scroll has no effective delta.
func (ev *MouseScroll) IsZero() bool {
	return math32.Abs(ev.Delta.X) < 1e-6 && math32.Abs(ev.Delta.Y) < 1e-6
}
