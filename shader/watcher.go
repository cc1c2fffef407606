// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to shader source files. It watches the
// directories containing the files, since editors commonly replace a
// file instead of writing it in place.
//
// Events are buffered by fsnotify and collected by [Watcher.Changed],
// which never blocks, so a Watcher can be polled once per frame from
// the thread that owns the GL context.
type Watcher struct {

	// Logger receives watch errors; slog.Default() if nil.
	Logger *slog.Logger

	fw    *fsnotify.Watcher
	dirs  map[string]bool
	files map[string]bool
}

// NewWatcher returns a new Watcher for the given files.
func NewWatcher(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader.NewWatcher: %w", err)
	}
	w := &Watcher{fw: fw, dirs: map[string]bool{}, files: map[string]bool{}}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// Add starts watching the file at path.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("shader.Watcher Add %q: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fw.Add(dir); err != nil {
			return fmt.Errorf("shader.Watcher Add %q: %w", path, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	return nil
}

// Files returns the sorted absolute paths being watched.
func (w *Watcher) Files() []string {
	fs := make([]string, 0, len(w.files))
	for f := range w.files {
		fs = append(fs, f)
	}
	slices.Sort(fs)
	return fs
}

// Changed returns the sorted absolute paths of the watched files that
// were written or created since the last call, or nil if none were.
func (w *Watcher) Changed() []string {
	var changed []string
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				slices.Sort(changed)
				return changed
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[name] || slices.Contains(changed, name) {
				continue
			}
			changed = append(changed, name)
		case err, ok := <-w.fw.Errors:
			if !ok {
				slices.Sort(changed)
				return changed
			}
			w.logger().Warn("shader.Watcher", "err", err)
		default:
			slices.Sort(changed)
			return changed
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
