// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package composer composes frame content onto off-screen surfaces,
// and defines the surface and presentation target abstractions that
// platforms provide.
package composer

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Validity is the state of a [Surface] as reported by [Surface.Validate].
type Validity int32

const (
	// Valid means that the surface still has its previous contents.
	Valid Validity = iota

	// Restored means that the surface is usable, but its contents were
	// lost (for example after a display reconfiguration) and must be redrawn.
	Restored

	// Incompatible means that the surface can no longer be used
	// and must be recreated.
	Incompatible
)

var validityNames = [...]string{Valid: "Valid", Restored: "Restored", Incompatible: "Incompatible"}

func (v Validity) String() string {
	if v < 0 || int(v) >= len(validityNames) {
		return fmt.Sprintf("Validity(%d)", int32(v))
	}
	return validityNames[v]
}

// Surface is an off-screen drawing surface provided by the platform,
// used as the double buffer of a compositor. The platform may discard
// its contents at any time, so it must be validated before every use.
type Surface interface {

	// Size returns the size of the surface in device pixels.
	Size() image.Point

	// Validate checks the surface before drawing on or presenting it.
	Validate() Validity

	// Image returns the image to draw on.
	Image() draw.Image

	// ContentsLost returns whether the contents were lost since the last
	// call to Validate, in which case the last draw must be redone.
	ContentsLost() bool

	// Release releases the resources of the surface.
	Release()
}

// Target is the final presentation target that a double buffer [Surface]
// is blitted onto, such as a window.
type Target interface {

	// Present draws the contents of the given surface onto the target.
	Present(s Surface)
}

// Source is a source of content to compose.
type Source interface {

	// Draw draws the source onto the given destination.
	Draw(dst draw.Image)
}

// Composer composes a list of [Source]s, in order, onto a destination.
type Composer struct {

	// Sources are the sources to compose, bottom first.
	Sources []Source
}

// Start starts a new composition, removing all sources.
func (cp *Composer) Start() {
	cp.Sources = cp.Sources[:0]
}

// Add adds the given source on top of the current ones. Nil sources are ignored.
func (cp *Composer) Add(s Source) {
	if s == nil {
		return
	}
	cp.Sources = append(cp.Sources, s)
}

// Compose draws all of the sources onto the given destination.
func (cp *Composer) Compose(dst draw.Image) {
	for _, s := range cp.Sources {
		s.Draw(dst)
	}
}

// ImageSource is a [Source] that draws an image at a position.
type ImageSource struct {

	// Image is the image to draw.
	Image image.Image

	// Pos is the position on the destination to draw at.
	Pos image.Point

	// Op is the draw operation: [draw.Src] to copy the image,
	// [draw.Over] to alpha blend it.
	Op draw.Op
}

func (is *ImageSource) Draw(dst draw.Image) {
	if is.Image == nil {
		return
	}
	b := is.Image.Bounds()
	r := image.Rectangle{Min: is.Pos, Max: is.Pos.Add(b.Size())}
	draw.Draw(dst, r, is.Image, b.Min, is.Op)
}

// FillSource is a [Source] that fills a region with an image,
// typically an [image.Uniform] color.
type FillSource struct {

	// Fill is the image to fill with.
	Fill image.Image

	// Rect is the region to fill. If it is empty, the
	// whole destination is filled.
	Rect image.Rectangle
}

func (fs *FillSource) Draw(dst draw.Image) {
	r := fs.Rect
	if r.Empty() {
		r = dst.Bounds()
	}
	draw.Draw(dst, r, fs.Fill, image.Point{}, draw.Src)
}
