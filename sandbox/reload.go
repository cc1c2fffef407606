// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sandbox

import (
	"log/slog"

	"cogentcore.org/glsandbox/glctx"
	"cogentcore.org/glsandbox/shader"
)

// Reloader recompiles shader stages when their source files change and
// swaps a newly linked program into a [Sandbox]. A stage that fails to
// compile, or a program that fails to link, is logged and the current
// program keeps rendering.
type Reloader struct {

	// Logger receives the reloader's log records; slog.Default() if nil.
	Logger *slog.Logger

	ctx     glctx.Context
	sandbox *Sandbox
	mgr     *shader.Manager
	watcher *shader.Watcher
	stages  []string
}

// NewReloader returns a new Reloader rebuilding the program of sb from
// the named stages of mgr when w reports a change.
func NewReloader(ctx glctx.Context, sb *Sandbox, mgr *shader.Manager, w *shader.Watcher, stages ...string) *Reloader {
	return &Reloader{ctx: ctx, sandbox: sb, mgr: mgr, watcher: w, stages: stages}
}

func (rl *Reloader) logger() *slog.Logger {
	if rl.Logger != nil {
		return rl.Logger
	}
	return slog.Default()
}

// Poll reloads the files changed since the last call, without blocking.
// It returns whether a new program was swapped in; call once per frame.
func (rl *Reloader) Poll() bool {
	changed := rl.watcher.Changed()
	if len(changed) == 0 {
		return false
	}
	return rl.Reload(changed...)
}

// Reload recompiles the stages loaded from the given files and, if all
// compile, links a new program and makes it current.
func (rl *Reloader) Reload(paths ...string) bool {
	n := 0
	for _, p := range paths {
		for _, nm := range rl.mgr.NamesForPath(p) {
			if err := rl.mgr.Reload(nm); err != nil {
				rl.logger().Error("sandbox.Reloader: keeping previous program", "shader", nm, "err", err)
				return false
			}
			n++
		}
	}
	if n == 0 {
		return false
	}
	pr, err := BuildProgram(rl.ctx, rl.mgr, rl.logger(), rl.stages...)
	if err != nil {
		rl.logger().Error("sandbox.Reloader: keeping previous program", "err", err)
		return false
	}
	if err := rl.sandbox.SetProgram(pr); err != nil {
		pr.Release()
		rl.logger().Error("sandbox.Reloader: keeping previous program", "err", err)
		return false
	}
	rl.logger().Info("sandbox.Reloader: reloaded", "files", paths)
	return true
}
