// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"image"

	"cogentcore.org/osr/events/key"
)

// Sequence identifies a sequence of touch events for one touch point.
type Sequence int64

// Touch is a touch event for a single touch point.
type Touch struct {
	Base

	// Sequence is the sequence of the touch point, which is the same for
	// the TouchStart, TouchMove and TouchEnd events of one finger.
	Sequence Sequence

	// Radius is the radius of the touch ellipse in each axis,
	// in the same units as the position.
	Radius Vector2

	// Pressure is the normalized pressure of the touch, in [0, 1].
	Pressure float32
}

func NewTouch(typ Types, seq Sequence, where image.Point, mods key.Modifiers) *Touch {
	ev := &Touch{}
	ev.Init(typ)
	ev.Sequence = seq
	ev.Where = where
	ev.Mods = mods
	return ev
}

func (ev *Touch) String() string {
	return fmt.Sprintf("%v{Sequence: %v, Pos: %v, Radius: %v, Time: %v}", ev.Type(), ev.Sequence, ev.Where, ev.Radius, ev.Time().Format("04:05"))
}

func (ev *Touch) HasPos() bool {
	return true
}
