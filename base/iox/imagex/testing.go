// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/color"
)

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Errorf(format string, args ...any)
}

// CompareColors returns whether every channel of the two colors is
// within tol of the other.
func CompareColors(a, b color.RGBA, tol int) bool {
	near := func(x, y uint8) bool {
		return int(x)-int(y) <= tol && int(y)-int(x) <= tol
	}
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

// AssertRegion asserts that every pixel of the given region of the image
// is within tol of the given color, reporting the first one that is not.
// It returns whether the assertion held.
func AssertRegion(t TestingT, img image.Image, r image.Rectangle, want color.RGBA, tol int) bool {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if !CompareColors(c, want, tol) {
				t.Errorf("AssertRegion: expected color %v in %v, but got %v at (%d, %d)", want, r, c, x, y)
				return false
			}
		}
	}
	return true
}

// AssertUniform asserts that the whole image is the given color.
func AssertUniform(t TestingT, img image.Image, want color.RGBA) bool {
	return AssertRegion(t, img, img.Bounds(), want, 0)
}

// CountColor returns the number of pixels of the image that are
// exactly the given color.
func CountColor(img image.Image, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) == c {
				n++
			}
		}
	}
	return n
}
