// Copyright 2023 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"image"
	"sync"

	"cogentcore.org/osr/composer"
)

// OffscreenPlatform is the [Platform] implementation for headless use,
// such as testing and capturing frames. Its surfaces are in-memory
// [composer.ImageSurface]s and its UI thread is a [Loop].
type OffscreenPlatform struct {

	// Loop is the UI thread loop that tasks are posted to.
	Loop *Loop

	// OnRepaint, if set, is run on the UI thread for each repaint request.
	OnRepaint func(r image.Rectangle)

	mu sync.Mutex

	platform Platforms

	capabilities Capabilities

	screens []*Screen

	// surfaces are all the surfaces made, in order.
	surfaces []*composer.ImageSurface

	// repaints is the number of repaint requests.
	repaints int

	// lastRepaint is the region of the last repaint request.
	lastRepaint image.Rectangle
}

var _ Platform = (*OffscreenPlatform)(nil)

// NewOffscreen returns a new [OffscreenPlatform] with one default screen,
// running tasks on the given loop (a new one if it is nil).
func NewOffscreen(loop *Loop) *OffscreenPlatform {
	if loop == nil {
		loop = NewLoop()
	}
	op := &OffscreenPlatform{Loop: loop, platform: Offscreen}
	op.capabilities = DefaultCapabilities(Offscreen)
	op.getScreens()
	return op
}

func (op *OffscreenPlatform) getScreens() {
	sz := image.Point{1920, 1080}
	sc := &Screen{Name: "offscreen", DevicePixelRatio: 1, RefreshRate: 60}
	sc.Geometry.Max = sz
	dpi := float32(160)
	sc.PhysicalDPI = dpi
	sc.LogicalDPI = dpi
	sc.UpdatePhysicalSize()
	op.screens = []*Screen{sc}
}

// SetScreens sets the screens of the platform, numbering them in order.
// No screens simulates a platform where no display can be determined.
func (op *OffscreenPlatform) SetScreens(screens ...*Screen) {
	op.mu.Lock()
	defer op.mu.Unlock()
	for i, sc := range screens {
		sc.ScreenNumber = i
	}
	op.screens = screens
}

// SetPlatform sets the platform type that is reported, along with its
// default capabilities.
func (op *OffscreenPlatform) SetPlatform(p Platforms) {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.platform = p
	op.capabilities = DefaultCapabilities(p)
}

// SetCapabilities sets the capability flags of the platform.
func (op *OffscreenPlatform) SetCapabilities(c Capabilities) {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.capabilities = c
}

func (op *OffscreenPlatform) Platform() Platforms {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.platform
}

func (op *OffscreenPlatform) Capabilities() Capabilities {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.capabilities
}

func (op *OffscreenPlatform) NScreens() int {
	op.mu.Lock()
	defer op.mu.Unlock()
	return len(op.screens)
}

func (op *OffscreenPlatform) Screen(n int) *Screen {
	op.mu.Lock()
	defer op.mu.Unlock()
	if n < 0 || n >= len(op.screens) {
		return nil
	}
	return op.screens[n]
}

func (op *OffscreenPlatform) NewSurface(size image.Point) composer.Surface {
	s := composer.NewImageSurface(size)
	op.mu.Lock()
	op.surfaces = append(op.surfaces, s)
	op.mu.Unlock()
	return s
}

// Surfaces returns all of the surfaces made by the platform, in order.
func (op *OffscreenPlatform) Surfaces() []*composer.ImageSurface {
	op.mu.Lock()
	defer op.mu.Unlock()
	return append([]*composer.ImageSurface(nil), op.surfaces...)
}

// LastSurface returns the most recently made surface, or nil.
func (op *OffscreenPlatform) LastSurface() *composer.ImageSurface {
	op.mu.Lock()
	defer op.mu.Unlock()
	if len(op.surfaces) == 0 {
		return nil
	}
	return op.surfaces[len(op.surfaces)-1]
}

func (op *OffscreenPlatform) RequestRepaint(r image.Rectangle) {
	op.mu.Lock()
	op.repaints++
	op.lastRepaint = r
	fn := op.OnRepaint
	op.mu.Unlock()
	if fn != nil {
		op.Loop.Post(func() { fn(r) })
	}
}

// Repaints returns the number of repaint requests and the region
// of the last one.
func (op *OffscreenPlatform) Repaints() (int, image.Rectangle) {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.repaints, op.lastRepaint
}

func (op *OffscreenPlatform) Post(f func()) {
	op.Loop.Post(f)
}
