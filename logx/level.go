// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the logging setup used throughout the compositor:
// a user-selected verbosity level, a colored terminal handler for
// [log/slog], and warnings that are only logged once per class of problem.
package logx

import (
	"fmt"
	"log/slog"
	"strings"
)

// UserLevel is the verbosity level that the user has selected for
// which logging messages should be shown. Messages at levels at or
// above this level are shown.
var UserLevel = defaultUserLevel

// LevelFromFlags returns the [slog.Level] corresponding to the given
// user flag options. The flags correspond to the following values:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so, for example, if both
// vv and q are specified, it will still return [slog.LevelDebug].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseLevel returns the level with the given name, which is one of
// debug, info, warn and error, ignoring case. An empty name is the
// default user level.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return defaultUserLevel, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return defaultUserLevel, fmt.Errorf("logx: invalid level %q: %w", s, err)
	}
	return l, nil
}

// SetLevel sets [UserLevel] from the given level name.
func SetLevel(s string) error {
	l, err := ParseLevel(s)
	if err != nil {
		return err
	}
	UserLevel = l
	return nil
}
