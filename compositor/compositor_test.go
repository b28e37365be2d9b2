// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compositor

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"cogentcore.org/osr/base/iox/imagex"
	"cogentcore.org/osr/composer"
	"cogentcore.org/osr/logx"
	"cogentcore.org/osr/pixbuf"
	"cogentcore.org/osr/scale"
	"cogentcore.org/osr/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

type geometry struct {
	mu    sync.Mutex
	size  image.Point
	loc   image.Point
	shown bool
}

func (g *geometry) HostSize() image.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.size
}

func (g *geometry) HostLocation() (image.Point, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loc, g.shown
}

func (g *geometry) set(size, loc image.Point, shown bool) {
	g.mu.Lock()
	g.size, g.loc, g.shown = size, loc, shown
	g.mu.Unlock()
}

// frame returns a raw frame of the given size filled with c.
func frame(w, h int, c color.RGBA) []byte {
	return imagex.Uniform(image.Pt(w, h), c).Pix
}

func newTest(size image.Point, sc scale.State) (*Compositor, *system.OffscreenPlatform, *geometry) {
	op := system.NewOffscreen(nil)
	g := &geometry{size: size}
	return New(op, g, sc), op, g
}

func TestExampleScenario(t *testing.T) {
	c, op, _ := newTest(image.Pt(800, 600), scale.Default())
	c.Background = black
	target := composer.NewImageTarget(image.Pt(800, 600))

	require.True(t, c.Paint(target))
	imagex.AssertUniform(t, target.Snapshot(), black)

	c.OnPaint(false, []image.Rectangle{pixbuf.Rect(0, 0, 800, 600)}, frame(800, 600, white), 800, 600)
	n, last := op.Repaints()
	assert.Equal(t, 1, n)
	assert.Equal(t, image.Rect(0, 0, 800, 600), last)
	require.True(t, c.Paint(target))
	imagex.AssertUniform(t, target.Snapshot(), white)

	c.OnPopupShow(true)
	c.OnPopupSize(pixbuf.Rect(100, 100, 50, 50))
	c.OnPaint(true, []image.Rectangle{pixbuf.Rect(0, 0, 50, 50)}, frame(50, 50, red), 50, 50)
	require.True(t, c.Paint(target))
	img := target.Snapshot()
	imagex.AssertRegion(t, img, image.Rect(100, 100, 150, 150), red, 0)
	assert.Equal(t, 50*50, imagex.CountColor(img, red))
	assert.Equal(t, 800*600-50*50, imagex.CountColor(img, white))

	c.OnPopupShow(false)
	require.True(t, c.Paint(target))
	imagex.AssertUniform(t, target.Snapshot(), white)
	assert.Len(t, op.Surfaces(), 1)
}

func TestOutdated(t *testing.T) {
	c, op, _ := newTest(image.Pt(20, 10), scale.Default())
	target := composer.NewImageTarget(image.Pt(20, 10))
	assert.False(t, c.Outdated())
	c.OnPaint(false, []image.Rectangle{pixbuf.Rect(0, 0, 20, 10)}, frame(20, 10, white), 20, 10)
	assert.True(t, c.Outdated())
	require.True(t, c.Paint(target))
	assert.False(t, c.Outdated())

	// the double buffer is the cache: painting without changes
	// presents it as it is
	op.LastSurface().RGBA().SetRGBA(0, 0, blue)
	require.True(t, c.Paint(target))
	assert.Equal(t, blue, target.Snapshot().RGBAAt(0, 0))

	c.OnPopupShow(false)
	assert.False(t, c.Outdated())
	c.OnPopupShow(true)
	assert.True(t, c.Outdated())
	c.Paint(target)
	c.UpdateScale(scale.New(2, 1, scale.ToolkitManaged))
	assert.True(t, c.Outdated())
	assert.Equal(t, 3, target.Presents())
}

func TestSurfaceLoss(t *testing.T) {
	c, op, _ := newTest(image.Pt(16, 16), scale.Default())
	target := composer.NewImageTarget(image.Pt(16, 16))
	c.OnPaint(false, []image.Rectangle{pixbuf.Rect(0, 0, 16, 16)}, frame(16, 16, red), 16, 16)
	require.True(t, c.Paint(target))
	s := op.LastSurface()

	// restored by the platform after losing its contents
	s.Invalidate()
	require.True(t, c.Paint(target))
	imagex.AssertUniform(t, s.RGBA(), red)
	imagex.AssertUniform(t, target.Snapshot(), red)

	// contents lost while drawing: drawn again
	s.LoseNextDraws(2)
	require.True(t, c.Paint(target))
	imagex.AssertUniform(t, target.Snapshot(), red)
	assert.Len(t, op.Surfaces(), 1)

	// lost every time: the frame is skipped, and the next paint retries
	presents := target.Presents()
	s.LoseNextDraws(MaxPaintAttempts)
	assert.False(t, c.Paint(target))
	assert.Equal(t, presents, target.Presents())
	assert.True(t, c.Outdated())
	require.True(t, c.Paint(target))
	imagex.AssertUniform(t, target.Snapshot(), red)
}

func TestIncompatibleSurface(t *testing.T) {
	c, op, g := newTest(image.Pt(16, 16), scale.Default())
	target := composer.NewImageTarget(image.Pt(16, 16))
	c.OnPaint(false, []image.Rectangle{pixbuf.Rect(0, 0, 16, 16)}, frame(16, 16, blue), 16, 16)
	require.True(t, c.Paint(target))
	first := op.LastSurface()
	first.MarkIncompatible()

	require.True(t, c.Paint(target))
	require.Len(t, op.Surfaces(), 2)
	assert.True(t, first.Released())
	imagex.AssertUniform(t, op.LastSurface().RGBA(), blue)

	// a host resize recreates the double buffer at the new size
	g.set(image.Pt(32, 8), image.Point{}, false)
	require.True(t, c.Paint(target))
	require.Len(t, op.Surfaces(), 3)
	assert.Equal(t, image.Pt(32, 8), op.LastSurface().Size())

	// nothing to paint on
	g.set(image.Point{}, image.Point{}, false)
	assert.False(t, c.Paint(target))
	assert.False(t, c.Paint(nil))
}

func TestHiDPI(t *testing.T) {
	c, op, _ := newTest(image.Pt(100, 50), scale.New(2, 1, scale.ToolkitManaged))
	assert.Equal(t, image.Rect(0, 0, 100, 50), c.ViewRect())
	target := composer.NewImageTarget(image.Pt(200, 100))
	c.OnPaint(false, []image.Rectangle{pixbuf.Rect(0, 0, 200, 100)}, frame(200, 100, white), 200, 100)
	c.OnPopupShow(true)
	c.OnPopupSize(image.Rect(10, 10, 20, 20))
	c.OnPaint(true, []image.Rectangle{pixbuf.Rect(0, 0, 20, 20)}, frame(20, 20, red), 20, 20)
	require.True(t, c.Paint(target))
	assert.Equal(t, image.Pt(200, 100), op.LastSurface().Size())
	img := target.Snapshot()
	imagex.AssertRegion(t, img, image.Rect(20, 20, 40, 40), red, 0)
	assert.Equal(t, 20*20, imagex.CountColor(img, red))
}

func TestGeometry(t *testing.T) {
	c, op, g := newTest(image.Pt(1500, 1000), scale.New(2, 1.5, scale.ToolkitManaged))
	assert.Equal(t, image.Rect(0, 0, 1000, 667), c.ViewRect())
	c.UpdateScale(scale.New(2, 1.5, scale.HostManaged))
	assert.Equal(t, image.Rect(0, 0, 500, 334), c.ViewRect())
	assert.Equal(t, 3.0, c.Scale().DeviceScale())

	// not shown: unknown screen
	si := c.ScreenInfo()
	assert.Equal(t, 3.0, si.Scale)
	assert.Equal(t, image.Rectangle{}, si.Bounds)

	g.set(image.Pt(400, 300), image.Pt(100, 200), true)
	si = c.ScreenInfo()
	assert.Equal(t, image.Rect(0, 0, 1920, 1080), si.Bounds)

	// no screens at all: unknown too
	op.SetScreens()
	assert.Equal(t, image.Rectangle{}, c.ScreenInfo().Bounds)

	assert.Equal(t, image.Pt(120, 220), c.ScreenPoint(image.Pt(10, 10)))
	op.SetPlatform(system.MacOS)
	assert.Equal(t, image.Pt(110, 210), c.ScreenPoint(image.Pt(10, 10)))

	g.set(image.Pt(400, 300), image.Point{}, false)
	assert.Equal(t, image.Pt(10, 10), c.ScreenPoint(image.Pt(10, 10)))
	assert.Contains(t, c.String(), "Compositor")
}

func TestShortBuffer(t *testing.T) {
	logx.ResetOnce()
	c, _, _ := newTest(image.Pt(10, 10), scale.Default())
	target := composer.NewImageTarget(image.Pt(10, 10))
	short := frame(10, 5, white)
	c.OnPaint(false, []image.Rectangle{pixbuf.Rect(0, 0, 10, 10)}, short, 10, 10)
	c.OnPaint(true, []image.Rectangle{pixbuf.Rect(0, 0, 10, 10)}, short[:7], 10, 10)
	assert.Equal(t, 2, logx.OnceCount("compositor.short-buffer"))
	require.True(t, c.Paint(target))
	img := target.Snapshot()
	imagex.AssertRegion(t, img, image.Rect(0, 0, 10, 5), white, 0)
	assert.Equal(t, 50, imagex.CountColor(img, white))
}

func TestInvalidFrameSize(t *testing.T) {
	logx.ResetOnce()
	c, op, _ := newTest(image.Pt(10, 10), scale.Default())
	target := composer.NewImageTarget(image.Pt(10, 10))
	all := []image.Rectangle{pixbuf.Rect(0, 0, 10, 10)}
	assert.NotPanics(t, func() {
		c.OnPaint(false, all, make([]byte, 64), 1<<24, 1<<24)
		c.OnPaint(false, all, nil, 0, 0)
		c.OnPaint(false, all, nil, 10, -3)
		c.OnPaint(true, all, make([]byte, 64), 1<<40, 2)
	})
	assert.Equal(t, 4, logx.OnceCount("compositor.bad-size"))
	assert.False(t, c.Outdated())
	n, _ := op.Repaints()
	assert.Equal(t, 0, n)

	c.OnPaint(false, all, frame(10, 10, white), 10, 10)
	require.True(t, c.Paint(target))
	imagex.AssertUniform(t, target.Snapshot(), white)
}

func TestClose(t *testing.T) {
	c, op, _ := newTest(image.Pt(10, 10), scale.Default())
	target := composer.NewImageTarget(image.Pt(10, 10))
	require.True(t, c.Paint(target))
	c.Close()
	assert.True(t, op.LastSurface().Released())
	c.OnPaint(false, []image.Rectangle{pixbuf.Rect(0, 0, 10, 10)}, frame(10, 10, white), 10, 10)
	c.OnPopupShow(true)
	c.OnPopupSize(image.Rect(0, 0, 5, 5))
	n, _ := op.Repaints()
	assert.Equal(t, 0, n)
	assert.False(t, c.Paint(target))
	assert.False(t, c.Popup().Visible)
}

// popupState returns a self-consistent popup state for the given id:
// its buffer is filled with a color and placed at a position that are
// both derived from the id.
func popupState(id int) PopupState {
	buf := pixbuf.New(8, 8)
	c := color.RGBA{uint8(id), uint8(id >> 8), 0, 255}
	buf.Blit(frame(8, 8, c), []image.Rectangle{buf.Bounds()})
	return PopupState{Buffer: buf, Bounds: image.Rect(id%32, id%32, id%32+8, id%32+8), Visible: id%2 == 0}
}

func checkPopupState(t *testing.T, st PopupState) bool {
	if st.Buffer == nil {
		return true
	}
	px := st.Buffer.Image().RGBAAt(0, 0)
	id := int(px.R) | int(px.G)<<8
	want := popupState(id)
	return assert.Equal(t, want.Bounds, st.Bounds) && assert.Equal(t, want.Visible, st.Visible) &&
		assert.Equal(t, want.Buffer.Pix(), st.Buffer.Pix())
}

func TestPopupAtomicity(t *testing.T) {
	c, _, _ := newTest(image.Pt(64, 64), scale.Default())
	target := composer.NewImageTarget(image.Pt(64, 64))
	const updates = 2000

	var g errgroup.Group
	g.Go(func() error {
		for i := range updates {
			c.SetPopup(popupState(i))
		}
		return nil
	})
	g.Go(func() error {
		for range updates {
			if !checkPopupState(t, c.Popup()) {
				break
			}
		}
		return nil
	})
	// the UI thread keeps painting meanwhile
	for range 200 {
		c.Paint(target)
	}
	require.NoError(t, g.Wait())
	checkPopupState(t, c.Popup())
}

func TestPopupRendererWrites(t *testing.T) {
	c, _, _ := newTest(image.Pt(32, 32), scale.Default())
	target := composer.NewImageTarget(image.Pt(32, 32))
	c.OnPaint(false, []image.Rectangle{pixbuf.Rect(0, 0, 32, 32)}, frame(32, 32, blue), 32, 32)
	const updates = 3000

	// each popup frame is a square whose color encodes its side length
	side := func(i int) int { return 4 + i%8 }
	frames := make([][]byte, 8)
	for i := range frames {
		s := side(i)
		frames[i] = frame(s, s, color.RGBA{uint8(s), 0, 0, 255})
	}

	var g errgroup.Group
	g.Go(func() error {
		for i := range updates {
			s := side(i)
			c.OnPopupSize(pixbuf.Rect(i%16, i%16, s, s))
			c.OnPopupShow(i%3 != 0)
			c.OnPaint(true, []image.Rectangle{pixbuf.Rect(0, 0, s, s)}, frames[i%8], s, s)
		}
		return nil
	})
	for range 300 {
		st := c.Popup()
		if st.Buffer != nil {
			s := st.Buffer.Width()
			want := color.RGBA{uint8(s), 0, 0, 255}
			if !assert.Equal(t, s*s, imagex.CountColor(st.Buffer.Image(), want), "torn popup buffer") {
				break
			}
			assert.Equal(t, st.Bounds.Min.X, st.Bounds.Min.Y)
			assert.Equal(t, st.Bounds.Dx(), st.Bounds.Dy())
		}
		if !c.Paint(target) {
			continue
		}
		// the popup is drawn from a single frame over the main one
		img := target.Snapshot()
		blues := imagex.CountColor(img, blue)
		if blues == 32*32 {
			continue
		}
		var popup color.RGBA
		for y := 0; y < 32 && popup.A == 0; y++ {
			for x := 0; x < 32; x++ {
				if px := img.RGBAAt(x, y); px != blue {
					popup = px
					break
				}
			}
		}
		if !assert.Equal(t, 32*32, blues+imagex.CountColor(img, popup), "mixed popup frames") {
			break
		}
	}
	require.NoError(t, g.Wait())
}

func TestConcurrentFrames(t *testing.T) {
	c, _, _ := newTest(image.Pt(48, 32), scale.Default())
	target := composer.NewImageTarget(image.Pt(48, 32))
	colors := []color.RGBA{white, red, blue}
	frames := make([][]byte, len(colors))
	for i, cl := range colors {
		frames[i] = frame(48, 32, cl)
	}

	var g errgroup.Group
	g.Go(func() error {
		for i := range 3000 {
			c.OnPaint(false, []image.Rectangle{pixbuf.Rect(0, 0, 48, 32)}, frames[i%3], 48, 32)
		}
		return nil
	})
	for range 300 {
		if !c.Paint(target) {
			continue
		}
		img := target.Snapshot()
		first := img.RGBAAt(0, 0)
		if first.A == 0 {
			continue // no frame yet
		}
		if !assert.Equal(t, 48*32, imagex.CountColor(img, first), "torn frame") {
			break
		}
	}
	require.NoError(t, g.Wait())
}
