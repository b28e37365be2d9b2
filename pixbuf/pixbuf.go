// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pixbuf provides owned 32-bit RGBA pixel buffers that are updated
// from raw renderer frames through dirty rectangles, and an [Exchange]
// for publishing them from a renderer goroutine to the UI goroutine.
package pixbuf

import (
	"fmt"
	"image"
)

// BytesPerPixel is the number of bytes in each pixel of a [Buffer]
// and of the raw source frames blitted into it.
const BytesPerPixel = 4

const (
	// MaxDimension is the largest width or height of a frame.
	MaxDimension = 16384

	// MaxPixels is the largest number of pixels in a frame.
	MaxPixels = 1 << 26
)

// CheckSize returns an error if a frame of the given size cannot be
// held in a [Buffer]: either dimension is not positive, larger than
// [MaxDimension], or the frame has more than [MaxPixels] pixels.
func CheckSize(width, height int) error {
	switch {
	case width <= 0 || height <= 0:
		return fmt.Errorf("pixbuf: empty frame size %dx%d", width, height)
	case width > MaxDimension || height > MaxDimension:
		return fmt.Errorf("pixbuf: frame size %dx%d exceeds %d pixels in a dimension", width, height, MaxDimension)
	case width*height > MaxPixels:
		return fmt.Errorf("pixbuf: frame size %dx%d exceeds %d pixels", width, height, MaxPixels)
	}
	return nil
}

// Buffer is an owned RGBA image of a fixed size. The length of its
// pixel data is always Width * Height * [BytesPerPixel]: a buffer is
// never resized in place, and a new Buffer is made for a new size.
type Buffer struct {
	img *image.RGBA
}

// New returns a new zero-filled [Buffer] of the given size.
// Negative sizes are treated as zero.
func New(width, height int) *Buffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Buffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the width of the buffer in pixels.
func (b *Buffer) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the height of the buffer in pixels.
func (b *Buffer) Height() int {
	return b.img.Rect.Dy()
}

// Size returns the size of the buffer in pixels.
func (b *Buffer) Size() image.Point {
	return b.img.Rect.Size()
}

// Bounds returns the bounds of the buffer, which always start at 0,0.
func (b *Buffer) Bounds() image.Rectangle {
	return b.img.Rect
}

// Pix returns the raw pixel data of the buffer.
func (b *Buffer) Pix() []byte {
	return b.img.Pix
}

// Image returns the buffer as an [image.RGBA] sharing the pixel data.
func (b *Buffer) Image() *image.RGBA {
	return b.img
}

// HasSize returns whether the buffer has the given size.
func (b *Buffer) HasSize(width, height int) bool {
	return b != nil && b.Width() == width && b.Height() == height
}

func (b *Buffer) String() string {
	return fmt.Sprintf("pixbuf.Buffer{%dx%d}", b.Width(), b.Height())
}

// CopyFrom copies all of the pixels of src, which must be the same size.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.img.Pix, src.img.Pix)
}

// Clone returns a new buffer with a copy of the pixels of b.
func (b *Buffer) Clone() *Buffer {
	nb := New(b.Width(), b.Height())
	nb.CopyFrom(b)
	return nb
}

// Ensure returns b if it has the given size, and otherwise a new
// zero-filled buffer of that size. The old content is discarded: a new
// size always comes with a full repaint from the renderer.
func Ensure(b *Buffer, width, height int) *Buffer {
	if b.HasSize(width, height) {
		return b
	}
	return New(width, height)
}
