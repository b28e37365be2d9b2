// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"os"
	"os/signal"

	"cogentcore.org/osr/base/iox/imagex"
	"cogentcore.org/osr/composer"
	"cogentcore.org/osr/config"
	"cogentcore.org/osr/host"
	"cogentcore.org/osr/remote"
	"cogentcore.org/osr/system"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newConnectCmd(a *App) *cobra.Command {
	var out string
	var width, height int
	cmd := &cobra.Command{
		Use:   "connect <url>",
		Short: "Attach a surface to the engine at the given WebSocket URL",
		Long: "Attach a surface to the engine at the given WebSocket URL, presenting " +
			"its frames until interrupted or disconnected, and then save the last frame.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			img, err := a.connect(ctx, args[0], image.Pt(width, height))
			if img != nil {
				if serr := imagex.Save(img, out); serr != nil {
					return errors.Join(err, serr)
				}
				slog.Info("osrdemo: last frame saved", "file", out)
			}
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "frame.png", "image file to save the last frame to")
	f.IntVar(&width, "width", 800, "width of the surface in host coordinates")
	f.IntVar(&height, "height", 600, "height of the surface in host coordinates")
	return cmd
}

// connect runs a surface attached to a remote engine until the context
// is done or the engine disconnects, presenting a frame on every repaint
// request, and returns the last frame presented.
func (a *App) connect(ctx context.Context, url string, size image.Point) (*image.RGBA, error) {
	r, err := remote.Dial(ctx, url)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	op := system.NewOffscreen(nil)
	if err := a.Settings.ConfigurePlatform(op); err != nil {
		return nil, err
	}
	opts, err := a.Settings.HostOptions()
	if err != nil {
		return nil, err
	}
	h := host.New(r, op, opts)
	r.Attach(h)
	defer h.Remove()

	var target *composer.ImageTarget
	op.OnRepaint = func(image.Rectangle) {
		dev := h.Scale().HostToDevice(h.HostSize())
		if target == nil {
			target = composer.NewImageTarget(dev)
		} else {
			target.Resize(dev)
		}
		h.Paint(target)
	}
	op.Post(func() {
		h.SetSize(size)
		h.Show()
		h.Focus(true)
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return op.Loop.Run(gctx)
	})
	g.Go(func() error {
		select {
		case <-r.Done():
			return errEngineClosed
		case <-gctx.Done():
			return nil
		}
	})
	if a.SettingsPath != "" {
		g.Go(func() error {
			return config.Watch(gctx, a.SettingsPath, func(s config.Settings, err error) {
				if err != nil {
					slog.Error("osrdemo: settings not applied", "err", err)
					return
				}
				op.Post(func() { a.applySettings(h, s) })
			})
		})
	}
	err = g.Wait()
	// repaints requested just before the loop stopped
	op.Loop.RunPending()
	if errors.Is(err, context.Canceled) || errors.Is(err, errEngineClosed) {
		err = nil
	}
	if target == nil {
		return nil, err
	}
	return target.Snapshot(), err
}

var errEngineClosed = errors.New("engine closed the connection")

// applySettings applies changed settings to the running host.
func (a *App) applySettings(h *host.Host, s config.Settings) {
	opts, err := s.HostOptions()
	if err != nil {
		slog.Error("osrdemo: settings not applied", "err", err)
		return
	}
	if err := s.ApplyLogging(); err != nil {
		slog.Error("osrdemo: log level not applied", "err", err)
	}
	a.Settings = s
	h.ApplyOptions(opts)
	slog.Info("osrdemo: settings applied", "scale", opts.Scale)
}
