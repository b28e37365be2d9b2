// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale provides the scale state of a surface, which determines
// how coordinates are converted between the host surface, the logical
// (DIP) space used by the renderer, and the device pixels of frame buffers.
//
// There are three coordinate spaces:
//
//   - host: coordinates as reported by the embedding UI toolkit
//   - logical: device-independent pixels, which is what the renderer uses
//   - device: actual pixels in the frame buffers produced by the renderer
//
// The relationship between host and the other two depends on the [Modes]
// in effect, which is always consulted here rather than at call sites.
package scale

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/math/f64"
)

// Modes are the HiDPI conventions that a host can use.
type Modes int32

const (
	// HostManaged means that the host reports coordinates in device pixels,
	// so host coordinates are divided by the full device scale
	// (PixelDensity * ScaleFactor) to get logical coordinates.
	HostManaged Modes = iota

	// ToolkitManaged means that the UI toolkit has already removed the
	// pixel density from its coordinates, so only the ScaleFactor remains
	// between host and logical coordinates.
	ToolkitManaged
)

var modeNames = [...]string{HostManaged: "HostManaged", ToolkitManaged: "ToolkitManaged"}

func (m Modes) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Modes(%d)", int32(m))
	}
	return modeNames[m]
}

// ParseMode returns the mode for the given name, which is matched
// case-insensitively, and also accepts the short forms "host" and "toolkit".
func ParseMode(s string) (Modes, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "host", "hostmanaged", "host-managed":
		return HostManaged, nil
	case "toolkit", "toolkitmanaged", "toolkit-managed", "":
		return ToolkitManaged, nil
	}
	return ToolkitManaged, fmt.Errorf("scale: unknown HiDPI mode %q", s)
}

// epsilon absorbs floating point noise before rounding up,
// so that for example 1500 / 1.5 is 1000 and not 1001.
const epsilon = 1e-9

// State is the scale state of a surface. It is an immutable value:
// a change of display or UI scale produces a new State.
type State struct {

	// PixelDensity is the device pixel ratio of the display
	// reported by the host operating system (2 on typical "retina" displays).
	PixelDensity float64

	// ScaleFactor is the UI scale applied by the toolkit itself,
	// on top of the PixelDensity.
	ScaleFactor float64

	// Mode is the HiDPI convention in effect for host coordinates.
	Mode Modes
}

// New returns a new [State], normalizing any non-positive or
// non-finite factor to 1.
func New(pixelDensity, scaleFactor float64, mode Modes) State {
	return State{PixelDensity: normalize(pixelDensity), ScaleFactor: normalize(scaleFactor), Mode: mode}
}

// Default returns the unscaled [ToolkitManaged] state.
func Default() State {
	return State{PixelDensity: 1, ScaleFactor: 1, Mode: ToolkitManaged}
}

func normalize(f float64) float64 {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	return f
}

func (s State) String() string {
	return fmt.Sprintf("scale.State{PixelDensity: %g, ScaleFactor: %g, Mode: %v}", s.PixelDensity, s.ScaleFactor, s.Mode)
}

// DeviceScale returns the device scale factor exposed to the renderer,
// which is always PixelDensity * ScaleFactor, in every mode.
func (s State) DeviceScale() float64 {
	return normalize(s.PixelDensity) * normalize(s.ScaleFactor)
}

// HostScale returns the divisor that converts host coordinates
// into logical coordinates.
func (s State) HostScale() float64 {
	if s.Mode == HostManaged {
		return s.DeviceScale()
	}
	return normalize(s.ScaleFactor)
}

// HostDensity returns the number of device pixels per host unit.
// HostDensity * HostScale == DeviceScale for both modes.
func (s State) HostDensity() float64 {
	if s.Mode == HostManaged {
		return 1
	}
	return normalize(s.PixelDensity)
}

// ToLogical converts the given host point into logical coordinates.
func (s State) ToLogical(p f64.Vec2) f64.Vec2 {
	hs := s.HostScale()
	return f64.Vec2{p[0] / hs, p[1] / hs}
}

// ToHost converts the given logical point into host coordinates.
// It is the inverse of [State.ToLogical].
func (s State) ToHost(p f64.Vec2) f64.Vec2 {
	hs := s.HostScale()
	return f64.Vec2{p[0] * hs, p[1] * hs}
}

// PointToLogical converts the given integer host point into
// logical coordinates, rounding toward negative infinity.
func (s State) PointToLogical(p image.Point) image.Point {
	lp := s.ToLogical(f64.Vec2{float64(p.X), float64(p.Y)})
	return image.Pt(floor(lp[0]), floor(lp[1]))
}

// PointToHost converts the given integer logical point into host coordinates.
func (s State) PointToHost(p image.Point) image.Point {
	hp := s.ToHost(f64.Vec2{float64(p.X), float64(p.Y)})
	return image.Pt(floor(hp[0]), floor(hp[1]))
}

// SizeToLogical converts the given host size into a logical size,
// rounding up so that the logical area always covers the host area.
func (s State) SizeToLogical(sz image.Point) image.Point {
	hs := s.HostScale()
	return image.Pt(ceil(float64(sz.X)/hs), ceil(float64(sz.Y)/hs))
}

// HostToDevice converts the given host size into a device pixel size.
func (s State) HostToDevice(sz image.Point) image.Point {
	hd := s.HostDensity()
	return image.Pt(ceil(float64(sz.X)*hd), ceil(float64(sz.Y)*hd))
}

// LogicalToDevice converts the given logical rectangle into device pixels,
// expanding outward to whole pixels.
func (s State) LogicalToDevice(r image.Rectangle) image.Rectangle {
	return scaleRect(r, s.DeviceScale())
}

// LogicalToHost converts the given logical rectangle into host coordinates,
// expanding outward to whole units.
func (s State) LogicalToHost(r image.Rectangle) image.Rectangle {
	return scaleRect(r, s.HostScale())
}

func scaleRect(r image.Rectangle, f float64) image.Rectangle {
	if f == 1 {
		return r
	}
	return image.Rect(floor(float64(r.Min.X)*f), floor(float64(r.Min.Y)*f), ceil(float64(r.Max.X)*f), ceil(float64(r.Max.Y)*f))
}

func floor(v float64) int {
	return int(math.Floor(v + epsilon))
}

func ceil(v float64) int {
	return int(math.Ceil(v - epsilon))
}
