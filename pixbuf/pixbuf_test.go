// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixbuf

import (
	"bytes"
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// frame returns a raw frame of the given size where every pixel encodes
// its own position and the given tag, so misplaced copies are detectable.
func frame(width, height int, tag byte) []byte {
	src := make([]byte, FrameSize(width, height))
	for y := range height {
		for x := range width {
			i := (y*width + x) * BytesPerPixel
			src[i] = byte(x)
			src[i+1] = byte(y)
			src[i+2] = tag
			src[i+3] = 255
		}
	}
	return src
}

func pixelAt(b *Buffer, x, y int) []byte {
	i := y*b.Image().Stride + x*BytesPerPixel
	return b.Pix()[i : i+BytesPerPixel]
}

func TestNew(t *testing.T) {
	b := New(8, 4)
	assert.Equal(t, 8, b.Width())
	assert.Equal(t, 4, b.Height())
	assert.Len(t, b.Pix(), 8*4*4)
	assert.Equal(t, image.Pt(8, 4), b.Size())
	assert.True(t, b.HasSize(8, 4))
	assert.False(t, b.HasSize(4, 8))

	e := New(-3, 5)
	assert.Equal(t, 0, e.Width())
	assert.Empty(t, e.Pix())
	assert.Equal(t, BlitResult{}, e.Blit(frame(2, 2, 1), []image.Rectangle{image.Rect(0, 0, 2, 2)}))
}

func TestBlitFullFrame(t *testing.T) {
	b := New(16, 8)
	src := frame(16, 8, 7)
	res := b.Blit(src, []image.Rectangle{b.Bounds()})
	assert.Equal(t, 1, res.Rects)
	assert.Equal(t, len(src), res.Bytes)
	assert.False(t, res.Clamped)
	assert.Equal(t, src, b.Pix())
}

func TestBlitSubRect(t *testing.T) {
	b := New(16, 8)
	src := frame(16, 8, 3)
	res := b.Blit(src, []image.Rectangle{Rect(2, 3, 4, 2)})
	assert.Equal(t, 4*2*BytesPerPixel, res.Bytes)
	for y := range 8 {
		for x := range 16 {
			in := x >= 2 && x < 6 && y >= 3 && y < 5
			if in {
				assert.Equal(t, []byte{byte(x), byte(y), 3, 255}, pixelAt(b, x, y))
			} else {
				assert.Equal(t, []byte{0, 0, 0, 0}, pixelAt(b, x, y), "(%d, %d)", x, y)
			}
		}
	}
}

func TestBlitClipping(t *testing.T) {
	b := New(10, 10)
	src := frame(10, 10, 9)
	rects := []image.Rectangle{
		image.Rect(-5, -5, 3, 3),
		image.Rect(8, 8, 20, 20),
		image.Rect(4, 4, 4, 9), // zero area
		image.Rect(20, 20, 30, 30),
		Rect(0, 0, -4, 3),
	}
	res := b.Blit(src, rects)
	assert.Equal(t, 2, res.Rects)
	assert.Equal(t, (3*3+2*2)*BytesPerPixel, res.Bytes)
	assert.Equal(t, []byte{2, 2, 9, 255}, pixelAt(b, 2, 2))
	assert.Equal(t, []byte{0, 0, 0, 0}, pixelAt(b, 3, 3))
	assert.Equal(t, []byte{9, 9, 9, 255}, pixelAt(b, 9, 9))
	assert.Equal(t, []byte{0, 0, 0, 0}, pixelAt(b, 4, 5))
}

func TestBlitFuzz(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for range 500 {
		w, h := rnd.Intn(40), rnd.Intn(40)
		b := New(w, h)
		src := frame(w, h, 1)
		// randomly truncate the source as a malformed notification would
		if rnd.Intn(3) == 0 && len(src) > 0 {
			src = src[:rnd.Intn(len(src))]
		}
		var rects []image.Rectangle
		for range rnd.Intn(6) {
			x, y := rnd.Intn(100)-50, rnd.Intn(100)-50
			rects = append(rects, image.Rect(x, y, x+rnd.Intn(100)-20, y+rnd.Intn(100)-20))
		}
		require.NotPanics(t, func() { b.Blit(src, rects) })
		assert.Len(t, b.Pix(), FrameSize(w, h))
		for y := range h {
			for x := range w {
				p := pixelAt(b, x, y)
				if p[3] == 0 {
					continue
				}
				assert.Equal(t, []byte{byte(x), byte(y), 1, 255}, p)
			}
		}
	}
}

func TestBlitClamped(t *testing.T) {
	b := New(10, 10)
	src := frame(10, 10, 5)[:FrameSize(10, 4)+8]

	res := b.Blit(src, []image.Rectangle{b.Bounds()})
	assert.True(t, res.Clamped)
	assert.Equal(t, len(src), res.Bytes)
	assert.Equal(t, []byte{1, 4, 5, 255}, pixelAt(b, 1, 4))
	assert.Equal(t, []byte{0, 0, 0, 0}, pixelAt(b, 2, 4))

	b = New(10, 10)
	res = b.Blit(src, []image.Rectangle{image.Rect(0, 2, 5, 8)})
	assert.True(t, res.Clamped)
	assert.Equal(t, []byte{4, 3, 5, 255}, pixelAt(b, 4, 3))
	assert.Equal(t, []byte{1, 4, 5, 255}, pixelAt(b, 1, 4))
	assert.Equal(t, []byte{0, 0, 0, 0}, pixelAt(b, 0, 5))

	res = New(10, 10).Blit(nil, []image.Rectangle{image.Rect(0, 0, 3, 3)})
	assert.True(t, res.Clamped)
	assert.Equal(t, 0, res.Bytes)
}

func TestBlitReplayIdempotent(t *testing.T) {
	type step struct {
		src   []byte
		rects []image.Rectangle
	}
	steps := []step{
		{frame(32, 16, 1), []image.Rectangle{image.Rect(0, 0, 32, 16)}},
		{frame(32, 16, 2), []image.Rectangle{Rect(3, 3, 10, 5), Rect(20, 0, 12, 16)}},
		{frame(32, 16, 3), []image.Rectangle{image.Rect(-4, 10, 40, 12)}},
	}
	replay := func() *Buffer {
		b := New(32, 16)
		for _, s := range steps {
			b.Blit(s.src, s.rects)
		}
		return b
	}
	assert.True(t, bytes.Equal(replay().Pix(), replay().Pix()))
}

func TestEnsure(t *testing.T) {
	b := New(4, 4)
	b.Blit(frame(4, 4, 1), []image.Rectangle{b.Bounds()})
	assert.Same(t, b, Ensure(b, 4, 4))

	nb := Ensure(b, 6, 3)
	assert.NotSame(t, b, nb)
	assert.Equal(t, make([]byte, FrameSize(6, 3)), nb.Pix())
	assert.NotNil(t, Ensure(nil, 1, 1))

	c := b.Clone()
	assert.Equal(t, b.Pix(), c.Pix())
	assert.NotSame(t, b, c)
}

func TestExchange(t *testing.T) {
	ex := NewExchange()
	assert.Nil(t, ex.Acquire())
	assert.False(t, ex.Pending())

	_, resized := ex.Update(frame(8, 8, 1), []image.Rectangle{image.Rect(0, 0, 8, 8)}, 8, 8)
	assert.True(t, resized)
	assert.True(t, ex.Pending())
	b := ex.Acquire()
	require.NotNil(t, b)
	assert.False(t, ex.Pending())
	assert.Equal(t, []byte{3, 4, 1, 255}, pixelAt(b, 3, 4))

	// a partial update keeps the rest of the frame
	_, resized = ex.Update(frame(8, 8, 2), []image.Rectangle{Rect(0, 0, 2, 2)}, 8, 8)
	assert.False(t, resized)
	b = ex.Acquire()
	assert.Equal(t, []byte{1, 1, 2, 255}, pixelAt(b, 1, 1))
	assert.Equal(t, []byte{3, 4, 1, 255}, pixelAt(b, 3, 4))

	// no new frame: the same buffer is returned
	assert.Same(t, b, ex.Acquire())
}

func TestExchangeResizeDiscards(t *testing.T) {
	ex := NewExchange()
	ex.Update(frame(8, 8, 1), []image.Rectangle{image.Rect(0, 0, 8, 8)}, 8, 8)
	ex.Acquire()

	_, resized := ex.Update(frame(12, 10, 2), []image.Rectangle{Rect(0, 0, 2, 2)}, 12, 10)
	assert.True(t, resized)
	b := ex.Acquire()
	require.Equal(t, image.Pt(12, 10), b.Size())
	for y := range 10 {
		for x := range 12 {
			if x < 2 && y < 2 {
				continue
			}
			assert.Equal(t, []byte{0, 0, 0, 0}, pixelAt(b, x, y), "(%d, %d)", x, y)
		}
	}
}

func TestExchangeConcurrent(t *testing.T) {
	const n = 300
	ex := NewExchange()
	frames := make([][]byte, 4)
	for i := range frames {
		frames[i] = frame(16, 16, byte(i+1))
	}
	var g errgroup.Group
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		for i := range n {
			ex.Update(frames[i%len(frames)], []image.Rectangle{image.Rect(0, 0, 16, 16)}, 16, 16)
		}
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-done:
				return nil
			default:
			}
			b := ex.Acquire()
			if b == nil {
				continue
			}
			// every acquired frame is complete: all pixels carry the same tag
			tag := pixelAt(b, 0, 0)[2]
			for y := range 16 {
				for x := range 16 {
					if pixelAt(b, x, y)[2] != tag {
						t.Errorf("torn frame at (%d, %d)", x, y)
						return nil
					}
				}
			}
		}
	})
	require.NoError(t, g.Wait())
	b := ex.Acquire()
	assert.Equal(t, byte((n-1)%len(frames)+1), pixelAt(b, 5, 5)[2])
}

func TestExchangePartialPublish(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	ex := NewExchange()
	ref := New(16, 16)
	full := []image.Rectangle{image.Rect(0, 0, 16, 16)}
	ex.Update(frame(16, 16, 1), full, 16, 16)
	ref.Blit(frame(16, 16, 1), full)

	for i := range 500 {
		n := 1 + rnd.Intn(3)
		if i%50 == 0 {
			n = maxDamage + 5
		}
		rects := make([]image.Rectangle, n)
		for j := range rects {
			x, y := rnd.Intn(19)-2, rnd.Intn(19)-2
			rects[j] = image.Rect(x, y, x+rnd.Intn(10), y+rnd.Intn(10))
		}
		src := frame(16, 16, byte(2+rnd.Intn(250)))
		ex.Update(src, rects, 16, 16)
		ref.Blit(src, rects)
		// acquire only some of the time so slots fall several frames behind
		if rnd.Intn(3) == 0 {
			b := ex.Acquire()
			require.NotNil(t, b)
			require.True(t, bytes.Equal(ref.Pix(), b.Pix()), "frame %d", i)
		}
	}
	assert.Equal(t, ref.Pix(), ex.Acquire().Pix())
}

func TestCopyRect(t *testing.T) {
	src := New(8, 8)
	src.Blit(frame(8, 8, 9), []image.Rectangle{image.Rect(0, 0, 8, 8)})
	b := New(8, 8)
	b.CopyRect(src, image.Rect(6, 6, 20, 20))
	assert.Equal(t, []byte{7, 7, 9, 255}, pixelAt(b, 7, 7))
	assert.Equal(t, []byte{6, 6, 9, 255}, pixelAt(b, 6, 6))
	assert.Equal(t, []byte{0, 0, 0, 0}, pixelAt(b, 5, 7))
	b.CopyRect(src, image.Rect(-4, -4, -1, -1))
	assert.Equal(t, []byte{0, 0, 0, 0}, pixelAt(b, 0, 0))
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, CheckSize(1, 1))
	assert.NoError(t, CheckSize(3840, 2160))
	assert.NoError(t, CheckSize(MaxDimension, MaxPixels/MaxDimension))
	assert.Error(t, CheckSize(0, 10))
	assert.Error(t, CheckSize(10, -1))
	assert.Error(t, CheckSize(MaxDimension+1, 1))
	assert.Error(t, CheckSize(1<<24, 1<<24))
	assert.Error(t, CheckSize(MaxDimension, MaxDimension))
}
