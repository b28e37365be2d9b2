// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"fmt"
	"image"
)

// Screen contains data about each physical and / or logical screen.
type Screen struct {

	// ScreenNumber is the index of this screen in the list of screens
	// maintained by the platform.
	ScreenNumber int

	// Name is the name of the screen.
	Name string

	// Geometry contains the geometry of the screen in the screen
	// coordinates of the platform.
	Geometry image.Rectangle

	// DevicePixelRatio is a multiplier factor that scales the screen's
	// "natural" pixel coordinates into actual device pixels.
	// On macOS it is backingScaleFactor, which is 2.0 on "retina" displays.
	DevicePixelRatio float64

	// LogicalDPI is the logical dots per inch of the screen.
	LogicalDPI float32

	// PhysicalDPI is the physical dots per inch of the screen.
	PhysicalDPI float32

	// PhysicalSize is the actual physical size of the screen, in mm.
	PhysicalSize image.Point

	// RefreshRate is the refresh rate of the screen, in Hz.
	RefreshRate float32
}

func (sc *Screen) String() string {
	return fmt.Sprintf("Screen{%d %q Geometry: %v DevicePixelRatio: %g}", sc.ScreenNumber, sc.Name, sc.Geometry, sc.DevicePixelRatio)
}

// UpdatePhysicalSize sets the PhysicalSize from the Geometry and PhysicalDPI.
func (sc *Screen) UpdatePhysicalSize() {
	if sc.PhysicalDPI <= 0 {
		return
	}
	sz := sc.Geometry.Size()
	physX := 25.4 * float32(sz.X) / sc.PhysicalDPI
	physY := 25.4 * float32(sz.Y) / sc.PhysicalDPI
	sc.PhysicalSize = image.Pt(int(physX), int(physY))
}
