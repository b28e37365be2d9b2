// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"log/slog"
	"sync"
)

var (
	onceMu sync.Mutex

	// onceCounts is the number of times each class has occurred.
	onceCounts = map[string]int{}
)

// Once logs the given warning the first time that a problem of the given
// class occurs, and only counts later occurrences, so that a problem that
// happens on every frame does not flood the log. It returns whether the
// warning was logged. It is safe to call from any goroutine.
func Once(class, msg string, args ...any) bool {
	onceMu.Lock()
	onceCounts[class]++
	first := onceCounts[class] == 1
	onceMu.Unlock()
	if first {
		slog.Warn(msg, append([]any{"class", class}, args...)...)
	}
	return first
}

// OnceCount returns the number of times a problem of the given
// class has been reported to [Once].
func OnceCount(class string) int {
	onceMu.Lock()
	defer onceMu.Unlock()
	return onceCounts[class]
}

// ResetOnce forgets all of the classes reported to [Once], so that
// they are logged again.
func ResetOnce() {
	onceMu.Lock()
	clear(onceCounts)
	onceMu.Unlock()
}
