// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixbuf

import (
	"image"
)

// BlitResult reports what happened during a [Buffer.Blit].
type BlitResult struct {

	// Rects is the number of rectangles that had pixels to copy after clipping.
	Rects int

	// Bytes is the number of bytes copied.
	Bytes int

	// Clamped is set when the source was shorter than its declared size
	// implies, so that some of the requested pixels could not be copied.
	Clamped bool
}

// Blit copies the given dirty rectangles from src into the buffer at the
// same offsets. src is a raw frame with the same size as the buffer and
// a stride of Width * [BytesPerPixel]. Each rectangle is clipped to the
// buffer bounds first, and copying stops at the end of src if it is
// shorter than the declared size, so Blit never reads or writes out of
// bounds regardless of its input.
func (b *Buffer) Blit(src []byte, rects []image.Rectangle) BlitResult {
	var res BlitResult
	bounds := b.Bounds()
	stride := b.img.Stride
	dst := b.img.Pix
	for _, r := range rects {
		r = r.Intersect(bounds)
		if r.Empty() {
			continue
		}
		res.Rects++
		if r.Dx() == bounds.Dx() {
			// full rows are contiguous in both buffers
			st := r.Min.Y * stride
			ed := r.Max.Y * stride
			if ed > len(src) {
				res.Clamped = true
				ed = len(src)
			}
			if st < ed {
				res.Bytes += copy(dst[st:ed], src[st:ed])
			}
			continue
		}
		n := r.Dx() * BytesPerPixel
		for y := r.Min.Y; y < r.Max.Y; y++ {
			st := y*stride + r.Min.X*BytesPerPixel
			ed := st + n
			if ed > len(src) {
				res.Clamped = true
				ed = len(src)
			}
			if st >= ed {
				break
			}
			res.Bytes += copy(dst[st:ed], src[st:ed])
		}
	}
	return res
}

// Rect returns the dirty rectangle with the given origin and size,
// as reported by renderers. A negative size results in an empty rectangle.
func Rect(x, y, width, height int) image.Rectangle {
	if width <= 0 || height <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(x, y, x+width, y+height)
}

// FrameSize returns the number of bytes in a raw frame of the given size.
func FrameSize(width, height int) int {
	return max(width, 0) * max(height, 0) * BytesPerPixel
}

// CopyRect copies the pixels of r from src, which must have the same
// size as the buffer. r is clipped to the buffer bounds.
func (b *Buffer) CopyRect(src *Buffer, r image.Rectangle) {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return
	}
	stride := b.img.Stride
	n := r.Dx() * BytesPerPixel
	for y := r.Min.Y; y < r.Max.Y; y++ {
		st := y*stride + r.Min.X*BytesPerPixel
		copy(b.img.Pix[st:st+n], src.img.Pix[st:st+n])
	}
}
