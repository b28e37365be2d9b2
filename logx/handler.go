// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/muesli/termenv"
)

// Handler is a [slog.Handler] that writes one line per record, with the
// level colored according to the color profile of the terminal it
// writes to. Records below [UserLevel] are dropped.
type Handler struct {
	mu *sync.Mutex

	w io.Writer

	out *termenv.Output

	// attrs are the preformatted attributes added by WithAttrs.
	attrs []byte

	group string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler returns a new [Handler] that writes to the given writer,
// detecting its color profile.
func NewHandler(w io.Writer, opts ...termenv.OutputOption) *Handler {
	return &Handler{mu: &sync.Mutex{}, w: w, out: termenv.NewOutput(w, opts...)}
}

// SetDefaultLogger sets the default [slog] logger to one that
// writes to [os.Stderr] through a [Handler].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

func (h *Handler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= UserLevel
}

// levelColor returns the color used for the given level.
func (h *Handler) levelColor(l slog.Level) termenv.Color {
	switch {
	case l >= slog.LevelError:
		return termenv.ANSIRed
	case l >= slog.LevelWarn:
		return termenv.ANSIYellow
	case l >= slog.LevelInfo:
		return termenv.ANSICyan
	}
	return termenv.ANSIBrightBlack
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var buf bytes.Buffer
	lv := h.out.String(fmt.Sprintf("%-5s", r.Level.String())).Foreground(h.levelColor(r.Level))
	if r.Level >= slog.LevelError {
		lv = lv.Bold()
	}
	buf.WriteString(lv.String())
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, a)
		return true
	})
	buf.WriteByte('\n')
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *Handler) appendAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := *h
		sub.group = key
		for _, ga := range a.Value.Group() {
			sub.appendAttr(buf, ga)
		}
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(h.out.String(key + "=").Faint().String())
	fmt.Fprintf(buf, "%v", a.Value.Any())
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))
	for _, a := range attrs {
		nh.appendAttr(buf, a)
	}
	nh.attrs = buf.Bytes()
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if nh.group != "" {
		name = nh.group + "." + name
	}
	nh.group = name
	return &nh
}
