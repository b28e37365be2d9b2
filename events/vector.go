// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vector2 is a 2D vector of float32 values, used for sub-pixel
// quantities such as scroll deltas and touch radii.
type Vector2 struct {
	X, Y float32
}

// Vec2 returns a new [Vector2] from the given values.
func Vec2(x, y float32) Vector2 {
	return Vector2{x, y}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// MulScalar returns the vector multiplied by the given scalar.
func (v Vector2) MulScalar(s float32) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// DivScalar returns the vector divided by the given scalar,
// or the vector itself if the scalar is zero.
func (v Vector2) DivScalar(s float32) Vector2 {
	if s == 0 {
		return v
	}
	return Vector2{v.X / s, v.Y / s}
}

// Length returns the length of the vector.
func (v Vector2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Floor returns the vector with each component rounded down.
func (v Vector2) Floor() Vector2 {
	return Vector2{math32.Floor(v.X), math32.Floor(v.Y)}
}
