// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host provides the UI surface that embeds an off-screen renderer:
// it owns the frame compositor, forwards input to the renderer in logical
// coordinates, tracks IME state, and drives debounced resizes.
package host

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/osr/composer"
	"cogentcore.org/osr/compositor"
	"cogentcore.org/osr/debounce"
	"cogentcore.org/osr/renderer"
	"cogentcore.org/osr/scale"
	"cogentcore.org/osr/system"
)

// Options are the options of a [Host].
type Options struct {

	// MouseWheelEnabled is whether mouse wheel events are
	// forwarded to the renderer.
	MouseWheelEnabled bool

	// ResizeDelay is the debounce window for resizes;
	// [debounce.DefaultWindow] if it is zero.
	ResizeDelay time.Duration

	// Scale is the initial scale state.
	Scale scale.State

	// Debounce are extra options for the resize debouncer.
	Debounce []debounce.Option
}

// DefaultOptions returns the default [Options].
func DefaultOptions() Options {
	return Options{MouseWheelEnabled: true, ResizeDelay: debounce.DefaultWindow, Scale: scale.Default()}
}

// Host is the UI surface for one renderer. Its methods other than those
// of [renderer.Handler] and [compositor.HostGeometry] must be called
// from the UI thread.
type Host struct {
	renderer renderer.Renderer

	platform system.Platform

	comp *compositor.Compositor

	resize *debounce.Debouncer

	// mu guards the fields below it, which the renderer
	// goroutine reads through the compositor.
	mu sync.Mutex

	opts Options

	// size is the size of the surface in host coordinates.
	size image.Point

	// loc is the location of the surface on the screen.
	loc image.Point

	located bool

	// screen is the number of the screen that contains the surface, or -1.
	screen int

	// logicalSize is the last logical size requested from the renderer.
	logicalSize image.Point

	shown bool

	focused bool

	removed bool

	ime imeState
}

var (
	_ renderer.Handler        = (*Host)(nil)
	_ compositor.HostGeometry = (*Host)(nil)
)

// New returns a new [Host] for the given renderer on the given platform.
func New(r renderer.Renderer, platform system.Platform, opts Options) *Host {
	h := &Host{renderer: r, platform: platform, opts: opts, screen: -1}
	h.ime.reset()
	h.comp = compositor.New(platform, h, opts.Scale)
	dopts := append([]debounce.Option{debounce.WithPost(platform.Post)}, opts.Debounce...)
	h.resize = debounce.New(opts.ResizeDelay, h.wasResized, dopts...)
	return h
}

// Compositor returns the frame compositor of the host.
func (h *Host) Compositor() *compositor.Compositor {
	return h.comp
}

// Scale returns the current scale state.
func (h *Host) Scale() scale.State {
	return h.comp.Scale()
}

func (h *Host) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fmt.Sprintf("host.Host{Size: %v, Shown: %v, Focused: %v}", h.size, h.shown, h.focused)
}

// HostSize returns the size of the surface in host coordinates.
func (h *Host) HostSize() image.Point {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// HostLocation returns the location of the surface on the screen,
// and false if it is not known because it is not shown.
func (h *Host) HostLocation() (image.Point, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loc, h.located && h.shown
}

// ensureCreated creates the native peer of the renderer if it does
// not exist yet, which is an expected state before the first paint.
func (h *Host) ensureCreated() {
	if !h.renderer.IsCreated() {
		slog.Debug("host: creating renderer")
		h.renderer.CreateImmediately()
	}
}

// Show makes the surface visible, creating the renderer first if needed.
func (h *Host) Show() {
	h.mu.Lock()
	if h.removed || h.shown {
		h.mu.Unlock()
		return
	}
	h.shown = true
	h.mu.Unlock()
	h.ensureCreated()
	h.renderer.WasHidden(false)
	h.requestResize()
}

// Hide hides the surface.
func (h *Host) Hide() {
	h.mu.Lock()
	if h.removed || !h.shown {
		h.mu.Unlock()
		return
	}
	h.shown = false
	h.mu.Unlock()
	h.renderer.WasHidden(true)
}

// Shown returns whether the surface is shown.
func (h *Host) Shown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shown
}

// Remove removes the surface from the UI for good: any pending resize
// is dropped, and the compositor is closed.
func (h *Host) Remove() {
	h.mu.Lock()
	if h.removed {
		h.mu.Unlock()
		return
	}
	h.removed = true
	h.shown = false
	h.mu.Unlock()
	h.resize.Close()
	h.comp.Close()
}

// SetSize sets the size of the surface in host coordinates, which
// resizes the renderer through the debouncer.
func (h *Host) SetSize(size image.Point) {
	h.mu.Lock()
	h.size = size
	h.mu.Unlock()
	h.requestResize()
	h.updateScreen()
}

// requestResize requests a resize of the renderer to the current
// logical size, if it has changed.
func (h *Host) requestResize() {
	ls := h.Scale().SizeToLogical(h.HostSize())
	h.mu.Lock()
	if h.removed || ls == h.logicalSize {
		h.mu.Unlock()
		return
	}
	h.logicalSize = ls
	h.mu.Unlock()
	h.resize.Request(ls)
}

// wasResized is the debounced resize.
func (h *Host) wasResized(size image.Point) {
	h.renderer.WasResized(size.X, size.Y)
}

// SetLocation sets the location of the surface on the screen in host
// coordinates. If that moves it to a screen with a different pixel
// density, the scale is updated accordingly.
func (h *Host) SetLocation(loc image.Point) {
	h.mu.Lock()
	h.loc = loc
	h.located = true
	h.mu.Unlock()
	h.updateScreen()
}

// updateScreen updates the screen that contains the surface, and the
// scale when the pixel density of the screen differs.
func (h *Host) updateScreen() {
	loc, ok := h.HostLocation()
	if !ok {
		return
	}
	sc := system.ScreenContaining(h.platform, image.Rectangle{Min: loc, Max: loc.Add(h.HostSize())})
	if sc == nil {
		return
	}
	h.mu.Lock()
	changed := sc.ScreenNumber != h.screen
	h.screen = sc.ScreenNumber
	h.mu.Unlock()
	cur := h.Scale()
	if sc.DevicePixelRatio > 0 && sc.DevicePixelRatio != cur.PixelDensity {
		h.SetScale(scale.New(sc.DevicePixelRatio, cur.ScaleFactor, cur.Mode))
		return
	}
	if changed {
		h.renderer.NotifyScreenInfoChanged()
	}
}

// SetScale sets the scale state, notifying the renderer and resizing
// it if that changes the logical size.
func (h *Host) SetScale(sc scale.State) {
	if sc == h.Scale() {
		return
	}
	h.comp.UpdateScale(sc)
	h.renderer.NotifyScreenInfoChanged()
	h.requestResize()
}

// ApplyOptions applies the mouse wheel and scale options, such as
// after the settings have changed.
func (h *Host) ApplyOptions(opts Options) {
	h.mu.Lock()
	h.opts.MouseWheelEnabled = opts.MouseWheelEnabled
	h.mu.Unlock()
	h.SetScale(opts.Scale)
}

// Focus sets whether the surface has the logical focus.
func (h *Host) Focus(focused bool) {
	h.mu.Lock()
	if h.removed || h.focused == focused {
		h.mu.Unlock()
		return
	}
	h.focused = focused
	h.mu.Unlock()
	h.renderer.SetFocus(focused)
}

// Focused returns whether the surface has the logical focus.
func (h *Host) Focused() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.focused
}

// Paint presents the current frame on the given target, creating the
// renderer first if needed. It returns whether a frame was presented.
func (h *Host) Paint(target composer.Target) bool {
	h.mu.Lock()
	removed := h.removed
	h.mu.Unlock()
	if removed {
		return false
	}
	h.ensureCreated()
	return h.comp.Paint(target)
}

// The following implement [renderer.Handler].

func (h *Host) ViewRect() image.Rectangle {
	return h.comp.ViewRect()
}

func (h *Host) ScreenInfo() renderer.ScreenInfo {
	return h.comp.ScreenInfo()
}

func (h *Host) ScreenPoint(viewPoint image.Point) image.Point {
	return h.comp.ScreenPoint(viewPoint)
}

func (h *Host) OnPaint(isPopup bool, dirtyRects []image.Rectangle, buffer []byte, width, height int) {
	h.comp.OnPaint(isPopup, dirtyRects, buffer, width, height)
}

func (h *Host) OnPopupShow(show bool) {
	h.comp.OnPopupShow(show)
}

func (h *Host) OnPopupSize(bounds image.Rectangle) {
	h.comp.OnPopupSize(bounds)
}
