// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"image/color"
)

// Range is a range of character offsets in text, from Start
// inclusive to End exclusive. The invalid range is {-1, -1}.
type Range struct {
	Start, End int
}

// InvalidRange is the range used when there is no range,
// such as no selection or no replacement.
var InvalidRange = Range{-1, -1}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// IsValid returns whether the range is a valid range.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.End >= r.Start
}

// Len returns the number of characters in the range, which is 0 if invalid.
func (r Range) Len() int {
	if !r.IsValid() {
		return 0
	}
	return r.End - r.Start
}

// Underline is an underline of a range of composition text
// shown by the renderer during IME composition.
type Underline struct {

	// Range is the range of the composition text that is underlined.
	Range Range

	// Color is the color of the underline.
	Color color.RGBA

	// BackgroundColor is the background color of the range.
	BackgroundColor color.RGBA

	// Thick is whether the underline is thick, which is typically used
	// for the target clause of the composition.
	Thick bool
}
