// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := Accept(w, r)
		if err != nil {
			return
		}
		c.OnMessage(func(typ MessageTypes, msg []byte) {
			c.Send(typ, append([]byte("echo "), msg...))
		})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Connect(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)

	got := make(chan string, 2)
	c.OnMessage(func(typ MessageTypes, msg []byte) {
		got <- typ.String() + " " + string(msg)
	})
	closed := make(chan struct{})
	c.OnClose(func() { close(closed) })

	require.NoError(t, c.Send(TextMessage, []byte("hi")))
	require.NoError(t, c.Send(BinaryMessage, []byte{'x'}))
	assert.Equal(t, "text echo hi", <-got)
	assert.Equal(t, "binary echo x", <-got)

	require.NoError(t, c.Close())
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("not closed")
	}
	assert.NoError(t, c.Err())
}

// server accepts one connection and sends what it receives on got.
func server(t *testing.T, got chan<- []byte) (url string, accepted <-chan *Client) {
	t.Helper()
	clients := make(chan *Client, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := Accept(w, r)
		if err != nil {
			return
		}
		c.OnMessage(func(typ MessageTypes, msg []byte) {
			if string(msg) == "panic" {
				panic("bad message")
			}
			got <- msg
		})
		clients <- c
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http"), clients
}

func TestReadLimit(t *testing.T) {
	old := ReadLimit
	ReadLimit = 16
	t.Cleanup(func() { ReadLimit = old })

	got := make(chan []byte, 2)
	url, accepted := server(t, got)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Connect(ctx, url)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Send(BinaryMessage, []byte("small")))
	assert.Equal(t, "small", string(<-got))
	require.NoError(t, c.Send(BinaryMessage, make([]byte, 100)))

	sc := <-accepted
	select {
	case <-sc.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("oversized message did not close the connection")
	}
	assert.Error(t, sc.Err())
	assert.Empty(t, got)
}

func TestHandlerPanic(t *testing.T) {
	got := make(chan []byte, 2)
	url, _ := server(t, got)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Connect(ctx, url)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Send(TextMessage, []byte("panic")))
	require.NoError(t, c.Send(TextMessage, []byte("after")))
	select {
	case msg := <-got:
		assert.Equal(t, "after", string(msg))
	case <-time.After(5 * time.Second):
		t.Fatal("reading stopped after a panic")
	}
}
