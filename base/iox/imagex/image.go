// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
)

// CloneAsRGBA returns an RGBA copy of the supplied image.
func CloneAsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	return clone.AsRGBA(src)
}

// AsRGBA returns the image as an RGBA: if it already is one, then
// it returns that image directly. Otherwise it returns a clone.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	return CloneAsRGBA(src)
}

// Uniform returns a new RGBA image of the given size filled with the
// given color.
func Uniform(size image.Point, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// Thumbnail returns a copy of the image resized to fit within the
// given maximum size, keeping its aspect ratio. Images that already
// fit are returned as an RGBA copy.
func Thumbnail(src image.Image, maxSize image.Point) *image.RGBA {
	sz := src.Bounds().Size()
	if sz.X <= maxSize.X && sz.Y <= maxSize.Y || sz.X == 0 || sz.Y == 0 {
		return CloneAsRGBA(src)
	}
	f := min(float64(maxSize.X)/float64(sz.X), float64(maxSize.Y)/float64(sz.Y))
	w := max(int(float64(sz.X)*f), 1)
	h := max(int(float64(sz.Y)*f), 1)
	return transform.Resize(src, w, h, transform.Linear)
}
