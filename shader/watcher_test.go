// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "a.vert")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(vert, []byte("void main() {}\n"), 0o644))

	w, err := NewWatcher(vert)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, []string{vert}, w.Files())
	assert.Empty(t, w.Changed())

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(vert, []byte("// edit\nvoid main() {}\n"), 0o644))

	var seen []string
	assert.Eventually(t, func() bool {
		for _, f := range w.Changed() {
			if !slices.Contains(seen, f) {
				seen = append(seen, f)
			}
		}
		return slices.Contains(seen, vert)
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotContains(t, seen, other)
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nodir", "a.vert"))
	assert.Error(t, err)
}

func TestWatcherChangedSortedOnClose(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.frag")
	b := filepath.Join(dir, "b.vert")
	events := make(chan fsnotify.Event, 3)
	events <- fsnotify.Event{Name: b, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: a, Op: fsnotify.Create}
	events <- fsnotify.Event{Name: b, Op: fsnotify.Write}
	close(events)

	w := &Watcher{
		fw:    &fsnotify.Watcher{Events: events, Errors: make(chan error)},
		dirs:  map[string]bool{dir: true},
		files: map[string]bool{a: true, b: true},
	}
	assert.Equal(t, []string{a, b}, w.Changed())
	assert.Empty(t, w.Changed())
}
