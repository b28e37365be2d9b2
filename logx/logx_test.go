// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
	l, err = ParseLevel("Error")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, l)
	l, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, defaultUserLevel, l)
	_, err = ParseLevel("loud")
	assert.Error(t, err)

	old := UserLevel
	defer func() { UserLevel = old }()
	require.NoError(t, SetLevel("info"))
	assert.Equal(t, slog.LevelInfo, UserLevel)
	assert.Error(t, SetLevel("nope"))
	assert.Equal(t, slog.LevelInfo, UserLevel)
}

func TestHandler(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()
	UserLevel = slog.LevelInfo

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf, termenv.WithProfile(termenv.Ascii)))
	lg.Debug("hidden")
	lg.Info("shown", "width", 800)
	lg.With("host", 1).WithGroup("paint").Error("failed", "rect", "0,0")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INFO")
	assert.Contains(t, lines[0], "shown")
	assert.Contains(t, lines[0], "width=800")
	assert.Contains(t, lines[1], "ERROR")
	assert.Contains(t, lines[1], "host=1")
	assert.Contains(t, lines[1], "paint.rect=0,0")
}

func TestOnce(t *testing.T) {
	ResetOnce()
	var buf bytes.Buffer
	old := slog.Default()
	defer slog.SetDefault(old)
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.True(t, Once("short-buffer", "buffer too short", "len", 10))
	assert.False(t, Once("short-buffer", "buffer too short", "len", 12))
	assert.True(t, Once("other", "other problem"))
	assert.Equal(t, 2, OnceCount("short-buffer"))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	ResetOnce()
	assert.Equal(t, 0, OnceCount("short-buffer"))
	assert.True(t, Once("short-buffer", "buffer too short"))
}
