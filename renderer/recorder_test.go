// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"image"
	"testing"

	"cogentcore.org/osr/events"
	"cogentcore.org/osr/events/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	assert.False(t, r.IsCreated())
	r.CreateImmediately()
	assert.True(t, r.IsCreated())

	var seen []string
	r.OnCall = func(c Call) { seen = append(seen, c.Method) }
	r.WasResized(800, 600)
	r.SetFocus(true)
	r.SendPointerEvent(events.NewMouse(events.MouseDown, events.Left, image.Pt(3, 4), key.Shift))
	r.ImeCommitText("abc", events.InvalidRange, 1)
	r.ImeCancelComposition()

	assert.Len(t, r.Calls(), 6)
	assert.Equal(t, []string{"WasResized", "SetFocus", "SendPointerEvent", "ImeCommitText", "ImeCancelComposition"}, seen)

	c, ok := r.Last("WasResized")
	require.True(t, ok)
	assert.Equal(t, image.Pt(800, 600), c.Size)
	assert.Equal(t, "WasResized(800, 600)", c.String())

	c, ok = r.Last("SendPointerEvent")
	require.True(t, ok)
	assert.Equal(t, image.Pt(3, 4), c.Event.Pos())
	assert.Equal(t, "ImeCancelComposition()", Call{Method: "ImeCancelComposition"}.String())

	_, ok = r.Last("SendKeyEvent")
	assert.False(t, ok)

	r.Reset()
	assert.Empty(t, r.Calls())
	assert.True(t, r.IsCreated())
}

func TestRecorderConcurrent(t *testing.T) {
	r := NewRecorder()
	var g errgroup.Group
	for i := range 8 {
		g.Go(func() error {
			for j := range 100 {
				r.WasResized(i, j)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 800, r.Count("WasResized"))
}
