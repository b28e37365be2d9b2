// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compositor reconstructs the frames of an off-screen renderer
// from the partial, asynchronous updates it delivers, and composites
// them together with its popup onto a double-buffered display surface.
//
// The renderer calls the On methods of a [Compositor] from its own
// goroutine, concurrently with the UI thread, which calls [Compositor.Paint].
// The main frame is handed over through a [pixbuf.Exchange], so the UI
// thread never waits for the renderer; the popup is guarded by a mutex
// because its buffer, bounds and visibility change together.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"runtime/debug"
	"sync/atomic"

	"cogentcore.org/osr/composer"
	"cogentcore.org/osr/logx"
	"cogentcore.org/osr/pixbuf"
	"cogentcore.org/osr/renderer"
	"cogentcore.org/osr/scale"
	"cogentcore.org/osr/system"
	"golang.org/x/image/draw"
)

// MaxPaintAttempts is the number of times that [Compositor.Paint] tries
// to draw a frame whose contents keep getting lost before it skips it.
var MaxPaintAttempts = 5

// HostGeometry is the geometry of the host surface that a [Compositor]
// paints for. Its methods may be called from any goroutine.
type HostGeometry interface {

	// HostSize returns the size of the host surface in host coordinates.
	HostSize() image.Point

	// HostLocation returns the position of the host surface on the screen
	// in host coordinates, and false if it is not known because the
	// surface is not shown.
	HostLocation() (image.Point, bool)
}

// Compositor is the frame compositor for one host surface.
// It must be made with [New].
type Compositor struct {
	platform system.Platform

	geom HostGeometry

	// scale is the current scale state, replaced wholesale on update.
	scale atomic.Pointer[scale.State]

	// main hands frames over from the renderer to the UI thread.
	main *pixbuf.Exchange

	popup popupOverlay

	// outdated is set whenever anything that is composited changes.
	outdated atomic.Bool

	closed atomic.Bool

	// Background is the color that areas not covered by the main frame
	// are filled with. It must only be set before the first paint.
	Background color.Color

	// The following are only used on the UI thread.

	// surface is the double buffer.
	surface composer.Surface

	// frame is the last main frame acquired from the exchange.
	frame *pixbuf.Buffer

	comp composer.Composer
}

// New returns a new [Compositor] for the host surface with the given
// geometry, on the given platform, with the given initial scale.
func New(platform system.Platform, geom HostGeometry, sc scale.State) *Compositor {
	c := &Compositor{platform: platform, geom: geom, main: pixbuf.NewExchange(), Background: color.Transparent}
	c.scale.Store(&sc)
	return c
}

// Scale returns the current scale state.
func (c *Compositor) Scale() scale.State {
	return *c.scale.Load()
}

// UpdateScale replaces the scale state. It does not resize any buffer,
// as the renderer sends frames of the new size once it is notified.
func (c *Compositor) UpdateScale(sc scale.State) {
	c.scale.Store(&sc)
	c.outdated.Store(true)
}

// Outdated returns whether the composited frame is out of date.
func (c *Compositor) Outdated() bool {
	return c.outdated.Load()
}

// ViewRect returns the rectangle of the view in logical coordinates,
// which is the host size divided by the host scale, rounded up.
func (c *Compositor) ViewRect() image.Rectangle {
	return image.Rectangle{Max: c.Scale().SizeToLogical(c.geom.HostSize())}
}

// hostScreenRect returns the rectangle of the host surface on the screen,
// and false if its location is not known.
func (c *Compositor) hostScreenRect() (image.Rectangle, bool) {
	loc, ok := c.geom.HostLocation()
	if !ok {
		return image.Rectangle{}, false
	}
	return image.Rectangle{Min: loc, Max: loc.Add(c.geom.HostSize())}, true
}

// ScreenInfo returns the device scale and the bounds of the screen that
// contains the host surface. The bounds are the zero rectangle if no
// screen can be determined, such as when headless or not shown yet.
func (c *Compositor) ScreenInfo() renderer.ScreenInfo {
	si := renderer.ScreenInfo{Scale: c.Scale().DeviceScale()}
	r, ok := c.hostScreenRect()
	if !ok {
		return si
	}
	if sc := system.ScreenContaining(c.platform, r); sc != nil {
		si.Bounds = sc.Geometry
	}
	return si
}

// ScreenPoint converts the given logical view point into screen
// coordinates. On platforms whose screen coordinates are already in
// DIPs, the point is only offset by the host location. Otherwise it is
// first scaled by the pixel density. An unknown host location counts
// as the screen origin.
func (c *Compositor) ScreenPoint(viewPoint image.Point) image.Point {
	loc, _ := c.geom.HostLocation()
	if c.platform.Capabilities().ScreenPointsInDIP {
		return viewPoint.Add(loc)
	}
	pd := c.Scale().PixelDensity
	sp := image.Pt(int(math.Round(float64(viewPoint.X)*pd)), int(math.Round(float64(viewPoint.Y)*pd)))
	return sp.Add(loc)
}

// OnPaint applies a frame delivered by the renderer, of which only the
// given dirty rectangles have changed, to the main or popup buffer. A
// buffer of a new size replaces the old one, without its content. A raw
// buffer that is too short for the frame size is copied as far as it
// goes. A frame whose size is empty or too large is dropped, see
// [pixbuf.CheckSize]. It may be called from any goroutine.
func (c *Compositor) OnPaint(isPopup bool, dirtyRects []image.Rectangle, buffer []byte, width, height int) {
	if c.closed.Load() {
		return
	}
	if err := pixbuf.CheckSize(width, height); err != nil {
		logx.Once("compositor.bad-size", "compositor: dropping renderer frame with an invalid size",
			"popup", isPopup, "err", err)
		return
	}
	var res pixbuf.BlitResult
	if isPopup {
		res = c.popup.Paint(dirtyRects, buffer, width, height)
	} else {
		var resized bool
		res, resized = c.main.Update(buffer, dirtyRects, width, height)
		if resized {
			slog.Debug("compositor: main buffer resized", "width", width, "height", height)
		}
	}
	if res.Clamped {
		logx.Once("compositor.short-buffer", "compositor: renderer buffer is shorter than its frame size; copy clamped",
			"popup", isPopup, "len", len(buffer), "want", pixbuf.FrameSize(width, height))
	}
	c.outdated.Store(true)
	c.requestRepaint()
}

// requestRepaint asks the platform to repaint the whole host surface,
// as the popup may overlap areas outside of the dirty rectangles.
func (c *Compositor) requestRepaint() {
	c.platform.RequestRepaint(image.Rectangle{Max: c.geom.HostSize()})
}

// OnPopupShow shows or hides the popup.
func (c *Compositor) OnPopupShow(show bool) {
	if c.closed.Load() {
		return
	}
	if c.popup.Show(show) {
		c.outdated.Store(true)
	}
}

// OnPopupSize sets the bounds of the popup in logical view coordinates.
func (c *Compositor) OnPopupSize(bounds image.Rectangle) {
	if c.closed.Load() {
		return
	}
	c.popup.SetBounds(bounds)
	c.outdated.Store(true)
}

// SetPopup replaces the whole state of the popup at once.
func (c *Compositor) SetPopup(st PopupState) {
	c.popup.Set(st)
	c.outdated.Store(true)
}

// Popup returns a consistent copy of the state of the popup.
func (c *Compositor) Popup() PopupState {
	return c.popup.Snapshot()
}

// Paint composites the current frames onto the double buffer when they
// have changed, and presents the double buffer on the given target. The
// double buffer is recreated when it is missing or no longer fits, and
// redrawn when the platform restored it or lost its contents while
// drawing. A frame that cannot be drawn after [MaxPaintAttempts] is
// skipped. It returns whether a frame was presented. It must only be
// called from the UI thread, and it never panics.
func (c *Compositor) Paint(target composer.Target) (presented bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("compositor: panic while painting; frame skipped", "panic", r, "stack", string(debug.Stack()))
			c.outdated.Store(true)
			presented = false
		}
	}()
	if c.closed.Load() || target == nil {
		return false
	}
	sc := c.Scale()
	size := sc.HostToDevice(c.geom.HostSize())
	if size.X <= 0 || size.Y <= 0 {
		return false
	}
	redraw := false
	for range MaxPaintAttempts {
		if c.surface == nil || c.surface.Size() != size {
			c.releaseSurface()
			c.surface = c.platform.NewSurface(size)
			redraw = true
		}
		switch v := c.surface.Validate(); v {
		case composer.Incompatible:
			slog.Debug("compositor: double buffer incompatible; recreating")
			c.releaseSurface()
			continue
		case composer.Restored:
			redraw = true
		}
		if c.outdated.Swap(false) || redraw {
			c.composite(c.surface.Image(), sc)
		}
		if c.surface.ContentsLost() {
			redraw = true
			continue
		}
		target.Present(c.surface)
		return true
	}
	c.outdated.Store(true)
	logx.Once("compositor.paint-skipped", "compositor: could not draw the double buffer; frame skipped",
		"attempts", MaxPaintAttempts)
	return false
}

// composite draws the main frame and then the popup onto dst.
func (c *Compositor) composite(dst draw.Image, sc scale.State) {
	if fr := c.main.Acquire(); fr != nil {
		c.frame = fr
	}
	c.comp.Start()
	c.comp.Add(&composer.FillSource{Fill: image.NewUniform(c.Background)})
	if c.frame != nil {
		c.comp.Add(&composer.ImageSource{Image: c.frame.Image(), Op: draw.Src})
	}
	c.comp.Compose(dst)
	c.popup.drawTo(dst, sc)
}

func (c *Compositor) releaseSurface() {
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
}

// Close releases the double buffer and makes the compositor ignore
// all further renderer updates. It must be called from the UI thread.
func (c *Compositor) Close() {
	c.closed.Store(true)
	c.releaseSurface()
	c.frame = nil
}

func (c *Compositor) String() string {
	return fmt.Sprintf("compositor.Compositor{View: %v, Scale: %v}", c.ViewRect(), c.Scale())
}
