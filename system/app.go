// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system provides the interface to the platform that off-screen
// surfaces are embedded in: its screens, its capabilities, the surfaces
// used as double buffers, and the UI thread loop that all painting and
// input dispatch happens on.
package system

import (
	"fmt"
	"image"

	"cogentcore.org/osr/composer"
)

// Platforms are all the supported platforms.
type Platforms int32

const (
	// Offscreen is a headless platform with no real display.
	Offscreen Platforms = iota

	// MacOS is a macOS desktop.
	MacOS

	// Windows is a Windows desktop.
	Windows

	// Linux is a Linux desktop.
	Linux
)

var platformNames = [...]string{"Offscreen", "MacOS", "Windows", "Linux"}

func (p Platforms) String() string {
	if p < 0 || int(p) >= len(platformNames) {
		return fmt.Sprintf("Platforms(%d)", int32(p))
	}
	return platformNames[p]
}

// Capabilities are the capability flags of a platform that
// determine how coordinates are mapped onto it.
type Capabilities struct {

	// ScreenPointsInDIP is set when screen coordinates are already in
	// device independent pixels (as on macOS), so that mapping a view point
	// to the screen only needs the host offset. Otherwise view points are
	// scaled by the pixel density before the offset is applied.
	ScreenPointsInDIP bool
}

// DefaultCapabilities returns the capabilities of the given platform.
func DefaultCapabilities(p Platforms) Capabilities {
	return Capabilities{ScreenPointsInDIP: p == MacOS}
}

// Platform is the platform that a surface is embedded in.
// All of its methods are safe to call from any goroutine.
type Platform interface {

	// Platform returns the platform type.
	Platform() Platforms

	// Capabilities returns the capability flags of the platform.
	Capabilities() Capabilities

	// NScreens returns the number of screens.
	NScreens() int

	// Screen returns the screen with the given number,
	// or nil if it is not a valid screen number.
	Screen(n int) *Screen

	// NewSurface returns a new off-screen surface of the given
	// size in device pixels, for use as a double buffer.
	NewSurface(size image.Point) composer.Surface

	// RequestRepaint requests that the given region of the host be
	// repainted on the UI thread. It does not wait for the repaint.
	RequestRepaint(r image.Rectangle)

	// Post runs the given function on the UI thread.
	Post(f func())
}

// ScreenContaining returns the screen of the platform that contains
// the largest part of the given rectangle in screen coordinates, or nil
// if no screen contains any of it or the rectangle is empty.
func ScreenContaining(p Platform, r image.Rectangle) *Screen {
	if r.Empty() {
		return nil
	}
	var best *Screen
	area := 0
	for i := range p.NScreens() {
		sc := p.Screen(i)
		if sc == nil {
			continue
		}
		is := sc.Geometry.Intersect(r)
		if a := is.Dx() * is.Dy(); a > area {
			best = sc
			area = a
		}
	}
	return best
}
