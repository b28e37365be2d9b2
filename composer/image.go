// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package composer

import (
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// ImageSurface is an in-memory [Surface] backed by an [image.RGBA].
// It never loses its contents by itself, but content loss and
// incompatibility can be triggered to exercise recovery, as a
// real platform surface would after a display reconfiguration.
type ImageSurface struct {
	mu sync.Mutex

	img *image.RGBA

	// lost is set when the contents have been discarded;
	// it is cleared by the next Validate, which reports Restored.
	lost bool

	// incompatible is set when the surface cannot be used anymore.
	incompatible bool

	// loseDraws is the number of upcoming draws whose contents
	// are reported lost by ContentsLost.
	loseDraws int

	// released is set by Release.
	released bool
}

// NewImageSurface returns a new [ImageSurface] of the given size.
func NewImageSurface(size image.Point) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rectangle{Max: size})}
}

func (s *ImageSurface) Size() image.Point {
	return s.img.Rect.Size()
}

func (s *ImageSurface) Image() draw.Image {
	return s.img
}

// RGBA returns the backing image of the surface.
func (s *ImageSurface) RGBA() *image.RGBA {
	return s.img
}

func (s *ImageSurface) Validate() Validity {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.released || s.incompatible:
		return Incompatible
	case s.lost:
		s.lost = false
		return Restored
	}
	return Valid
}

func (s *ImageSurface) ContentsLost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loseDraws > 0 {
		s.loseDraws--
		clear(s.img.Pix)
		return true
	}
	return s.lost
}

func (s *ImageSurface) Release() {
	s.mu.Lock()
	s.released = true
	s.mu.Unlock()
}

// Released returns whether [ImageSurface.Release] has been called.
func (s *ImageSurface) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// Invalidate discards the contents of the surface, as the platform does
// when it reclaims them. The next Validate reports [Restored].
func (s *ImageSurface) Invalidate() {
	s.mu.Lock()
	s.lost = true
	clear(s.img.Pix)
	s.mu.Unlock()
}

// MarkIncompatible makes the surface unusable; Validate
// reports [Incompatible] from then on.
func (s *ImageSurface) MarkIncompatible() {
	s.mu.Lock()
	s.incompatible = true
	s.mu.Unlock()
}

// LoseNextDraws makes the next n draws report their contents lost
// through ContentsLost, so they have to be redone.
func (s *ImageSurface) LoseNextDraws(n int) {
	s.mu.Lock()
	s.loseDraws = n
	s.mu.Unlock()
}

// ImageTarget is an in-memory presentation [Target].
type ImageTarget struct {
	mu sync.Mutex

	img *image.RGBA

	// presents is the number of times Present has been called.
	presents int
}

// NewImageTarget returns a new [ImageTarget] of the given size.
func NewImageTarget(size image.Point) *ImageTarget {
	return &ImageTarget{img: image.NewRGBA(image.Rectangle{Max: size})}
}

// Present copies the surface onto the target. If the sizes differ,
// the surface is scaled to fill the target.
func (t *ImageTarget) Present(s Surface) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.presents++
	src := s.Image()
	if src.Bounds().Size() == t.img.Rect.Size() {
		draw.Draw(t.img, t.img.Rect, src, src.Bounds().Min, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(t.img, t.img.Rect, src, src.Bounds(), draw.Src, nil)
}

// Resize changes the size of the target, discarding its contents.
func (t *ImageTarget) Resize(size image.Point) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.img.Rect.Size() != size {
		t.img = image.NewRGBA(image.Rectangle{Max: size})
	}
}

// Snapshot returns a copy of the current contents of the target.
func (t *ImageTarget) Snapshot() *image.RGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	img := image.NewRGBA(t.img.Rect)
	copy(img.Pix, t.img.Pix)
	return img
}

// Presents returns the number of times the target has been presented to.
func (t *ImageTarget) Presents() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.presents
}
