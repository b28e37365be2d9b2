// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"

	"cogentcore.org/osr/events/key"
)

// Key is a low-level key event: KeyDown, KeyUp or KeyChar.
// Key events have no position and are forwarded to the
// renderer unchanged.
type Key struct {
	Base

	// Rune is the meaning of the key event as determined by the
	// operating system, or -1 if the key does not produce a character.
	Rune rune

	// Code is the identity of the physical key.
	Code key.Codes

	// NativeCode is the platform-specific key code, which some renderers
	// need to reproduce the exact key.
	NativeCode int32
}

func NewKey(typ Types, rn rune, code key.Codes, mods key.Modifiers) *Key {
	ev := &Key{}
	ev.Init(typ)
	ev.Rune = rn
	ev.Code = code
	ev.Mods = mods
	return ev
}

func (ev *Key) String() string {
	if ev.Rune >= 0 {
		return fmt.Sprintf("%v{Rune: %q, Code: %v, Mods: %v, Time: %v}", ev.Type(), ev.Rune, ev.Code, ev.Mods.ModifiersString(), ev.Time().Format("04:05"))
	}
	return fmt.Sprintf("%v{Code: %v, Mods: %v, Time: %v}", ev.Type(), ev.Code, ev.Mods.ModifiersString(), ev.Time().Format("04:05"))
}
