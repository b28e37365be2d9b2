// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watch calls fn with the settings opened from the given file every time
// the file is written or created, until the context is done. The
// directory of the file is watched, so that editors that replace the
// file on save are handled. An error opening the settings is passed to
// fn together with whatever settings [Open] returned.
func Watch(ctx context.Context, filename string, fn func(Settings, error)) error {
	fnm, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	fnm, err = filepath.Abs(fnm)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(fnm)); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fnm {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				s, err := Open(fnm)
				fn(s, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: settings watcher error", "err", err)
		}
	}
}
