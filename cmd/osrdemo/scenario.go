// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"cogentcore.org/osr/base/iox/imagex"
	"cogentcore.org/osr/composer"
	"cogentcore.org/osr/config"
	"cogentcore.org/osr/host"
	"cogentcore.org/osr/renderer"
	"cogentcore.org/osr/system"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

// popupRect is the placement of the scenario popup in logical coordinates.
var popupRect = image.Rect(100, 100, 150, 150)

func newScenarioCmd(a *App) *cobra.Command {
	var out string
	var thumb int
	var width, height int
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Composite a white frame with a red popup and save the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := runScenario(cmd.Context(), a.Settings, image.Pt(width, height))
			if err != nil {
				return err
			}
			if err := imagex.Save(img, out); err != nil {
				return err
			}
			if thumb > 0 {
				ext := filepath.Ext(out)
				tfn := strings.TrimSuffix(out, ext) + "-thumb" + ext
				if err := imagex.Save(imagex.Thumbnail(img, image.Pt(thumb, thumb)), tfn); err != nil {
					return err
				}
			}
			o := termenv.NewOutput(cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %v frame saved to %s (%d popup pixels)\n",
				o.String("ok").Foreground(termenv.ANSIGreen).Bold(), img.Bounds().Size(), out, imagex.CountColor(img, red))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "scenario.png", "image file to save the frame to")
	f.IntVar(&thumb, "thumbnail", 0, "also save a thumbnail of at most this size")
	f.IntVar(&width, "width", 800, "width of the surface in host coordinates")
	f.IntVar(&height, "height", 600, "height of the surface in host coordinates")
	return cmd
}

// runScenario runs a surface of the given size on the offscreen platform:
// the engine paints an all-white frame on its own goroutine, then shows
// a red popup over it, and the UI thread presents the result.
func runScenario(ctx context.Context, s config.Settings, size image.Point) (*image.RGBA, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("invalid surface size %v", size)
	}
	op := system.NewOffscreen(nil)
	if err := s.ConfigurePlatform(op); err != nil {
		return nil, err
	}
	opts, err := s.HostOptions()
	if err != nil {
		return nil, err
	}
	h := host.New(renderer.NewRecorder(), op, opts)
	defer h.Remove()
	h.Compositor().Background = black
	h.SetSize(size)
	h.Show()

	dev := h.Scale().HostToDevice(size)
	target := composer.NewImageTarget(dev)
	if !h.Paint(target) {
		return nil, errors.New("the first frame was skipped")
	}

	ds := h.Scale().DeviceScale()
	pw := int(math.Ceil(float64(popupRect.Dx()) * ds))
	ph := int(math.Ceil(float64(popupRect.Dy()) * ds))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.OnPaint(false, []image.Rectangle{{Max: dev}}, imagex.Uniform(dev, white).Pix, dev.X, dev.Y)
		if err := gctx.Err(); err != nil {
			return err
		}
		h.OnPopupShow(true)
		h.OnPopupSize(popupRect)
		h.OnPaint(true, []image.Rectangle{image.Rect(0, 0, pw, ph)}, imagex.Uniform(image.Pt(pw, ph), red).Pix, pw, ph)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	op.Loop.RunPending()
	if !h.Paint(target) {
		return nil, errors.New("the scenario frame was skipped")
	}
	return target.Snapshot(), nil
}
