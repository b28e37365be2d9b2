// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package key contains the key codes and modifiers of key events.
package key

import (
	"fmt"
	"strings"
)

// Modifiers are the modifier keys held down during an event, as bit flags.
type Modifiers int32

const (
	// Shift is the shift key.
	Shift Modifiers = 1 << iota

	// Control is the control key.
	Control

	// Alt is the alt or option key.
	Alt

	// Meta is the command key on macOS and the windows key elsewhere.
	Meta

	// CapsLock is set when caps lock is on.
	CapsLock

	// NumLock is set when num lock is on.
	NumLock
)

var modifierNames = []string{"Shift", "Control", "Alt", "Meta", "CapsLock", "NumLock"}

// HasAnyModifier returns whether any of the given modifiers are set in mods.
func HasAnyModifier(mods Modifiers, check ...Modifiers) bool {
	for _, c := range check {
		if mods&c != 0 {
			return true
		}
	}
	return false
}

// ModifiersString returns the modifiers joined by "+", such as "Control+Shift".
func (mods Modifiers) ModifiersString() string {
	var names []string
	for i, nm := range modifierNames {
		if mods&(1<<i) != 0 {
			names = append(names, nm)
		}
	}
	return strings.Join(names, "+")
}

func (mods Modifiers) String() string {
	return mods.ModifiersString()
}

// Codes are the physical keys of key events, independent of layout.
// Only the keys that need special handling are named; every other key
// is identified by the rune it produces.
type Codes int32

const (
	CodeUnknown Codes = iota
	CodeReturnEnter
	CodeEscape
	CodeBackspace
	CodeTab
	CodeSpacebar
	CodeDeleteForward
	CodeLeftArrow
	CodeRightArrow
	CodeUpArrow
	CodeDownArrow
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeLeftShift
	CodeRightShift
	CodeLeftControl
	CodeRightControl
	CodeLeftAlt
	CodeRightAlt
	CodeLeftMeta
	CodeRightMeta
)

var codeNames = [...]string{
	"Unknown", "ReturnEnter", "Escape", "Backspace", "Tab", "Spacebar", "DeleteForward",
	"LeftArrow", "RightArrow", "UpArrow", "DownArrow", "Home", "End", "PageUp", "PageDown",
	"LeftShift", "RightShift", "LeftControl", "RightControl", "LeftAlt", "RightAlt", "LeftMeta", "RightMeta",
}

func (c Codes) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("Codes(%d)", int32(c))
	}
	return codeNames[c]
}

// IsModifier returns whether the code is one of the modifier keys.
func (c Codes) IsModifier() bool {
	return c >= CodeLeftShift && c <= CodeRightMeta
}
