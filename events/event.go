// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the input events that a surface host receives
// from the UI toolkit and forwards to the renderer. Positions are in host
// coordinates when received and in logical coordinates once translated.
package events

import (
	"image"
	"time"

	"cogentcore.org/osr/events/key"
)

// Event is the interface for all input events.
type Event interface {

	// Type returns the type of the event.
	Type() Types

	// Time returns the time at which the event was generated.
	Time() time.Time

	// HasPos returns whether the event has a position.
	HasPos() bool

	// Pos returns the position of the event, if it has one.
	Pos() image.Point

	// Modifiers returns the modifier keys held down during the event.
	Modifiers() key.Modifiers

	String() string
}

// Base is the base type for all events.
type Base struct {

	// Typ is the type of the event.
	Typ Types

	// GenTime is the time at which the event was generated.
	GenTime time.Time

	// Where is the position of the event, for events that have one.
	Where image.Point

	// Mods are the modifier keys held down during the event.
	Mods key.Modifiers
}

// Init sets the type and generation time of the event.
func (ev *Base) Init(typ Types) {
	ev.Typ = typ
	ev.GenTime = time.Now()
}

func (ev *Base) Type() Types {
	return ev.Typ
}

func (ev *Base) Time() time.Time {
	return ev.GenTime
}

func (ev *Base) HasPos() bool {
	return false
}

func (ev *Base) Pos() image.Point {
	return ev.Where
}

func (ev *Base) Modifiers() key.Modifiers {
	return ev.Mods
}
