// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shader compiles GLSL shader stages, links them into programs,
// reflects the active uniforms of linked programs and uploads typed
// uniform values.
//
// A [Manager] is the single owner of the stages it compiles. A [Program]
// borrows stages from a Manager by name and never deletes them.
package shader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"cogentcore.org/glsandbox/glctx"
)

// Stage describes one compiled shader stage held by a [Manager].
type Stage struct {
	Name string

	// Path is the source file, empty for stages loaded with LoadSource.
	Path string

	Type   Types
	Handle glctx.Shader
}

// Manager compiles and holds named shader stages.
type Manager struct {

	// Logger receives the manager's log records; slog.Default() if nil.
	Logger *slog.Logger

	ctx    glctx.Context
	stages map[string]*Stage
}

// NewManager returns a new empty Manager issuing calls on ctx.
func NewManager(ctx glctx.Context) *Manager {
	return &Manager{ctx: ctx, stages: map[string]*Stage{}}
}

func (mg *Manager) logger() *slog.Logger {
	if mg.Logger != nil {
		return mg.Logger
	}
	return slog.Default()
}

// Load reads the source in the file at path and compiles it as a stage
// of the given type, registered under name. A read failure returns the
// wrapped *fs.PathError. Any stage previously registered under name is
// released once the new one has compiled; on failure it stays in place.
func (mg *Manager) Load(name, path string, typ Types) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("shader.Manager Load %q: %w", name, err)
	}
	return mg.compile(name, path, string(src), typ)
}

// LoadSource compiles src as a stage of the given type, registered under
// name, with the same replacement rules as [Manager.Load].
func (mg *Manager) LoadSource(name, src string, typ Types) error {
	return mg.compile(name, "", src, typ)
}

func (mg *Manager) compile(name, path, src string, typ Types) error {
	handle, err := mg.ctx.CreateShader(typ.GLType())
	if err != nil {
		return fmt.Errorf("shader.Manager Load %q: %w", name, err)
	}
	mg.ctx.ShaderSource(handle, src)
	mg.ctx.CompileShader(handle)
	if !mg.ctx.ShaderCompileStatus(handle) {
		err := &CompileError{Name: name, Path: path, Type: typ, InfoLog: mg.ctx.ShaderInfoLog(handle)}
		mg.ctx.DeleteShader(handle)
		mg.logger().Error("shader.Manager Load: compile failed", "name", name, "type", typ, "path", path, "log", err.InfoLog)
		return err
	}
	if old, has := mg.stages[name]; has {
		mg.ctx.DeleteShader(old.Handle)
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	mg.stages[name] = &Stage{Name: name, Path: path, Type: typ, Handle: handle}
	mg.logger().Debug("shader.Manager Load", "name", name, "type", typ, "path", path)
	return nil
}

// Has returns whether a stage is registered under name.
func (mg *Manager) Has(name string) bool {
	_, has := mg.stages[name]
	return has
}

// Get returns the handle of the stage registered under name.
func (mg *Manager) Get(name string) (glctx.Shader, bool) {
	st, has := mg.stages[name]
	if !has {
		return 0, false
	}
	return st.Handle, true
}

// Stage returns a copy of the description of the named stage.
func (mg *Manager) Stage(name string) (Stage, bool) {
	st, has := mg.stages[name]
	if !has {
		return Stage{}, false
	}
	return *st, true
}

// Names returns the sorted names of all registered stages.
func (mg *Manager) Names() []string {
	names := make([]string, 0, len(mg.stages))
	for nm := range mg.stages {
		names = append(names, nm)
	}
	slices.Sort(names)
	return names
}

// NamesForPath returns the sorted names of the stages loaded from path.
func (mg *Manager) NamesForPath(path string) []string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	var names []string
	for nm, st := range mg.stages {
		if st.Path == path {
			names = append(names, nm)
		}
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered stages.
func (mg *Manager) Len() int {
	return len(mg.stages)
}

// Reload compiles the named stage again from its source file.
func (mg *Manager) Reload(name string) error {
	st, has := mg.stages[name]
	if !has {
		return fmt.Errorf("shader.Manager Reload %q: %w", name, ErrUnknownShader)
	}
	if st.Path == "" {
		return fmt.Errorf("shader.Manager Reload %q: stage has no source file", name)
	}
	return mg.Load(name, st.Path, st.Type)
}

// Unload releases and removes the named stage; it does nothing if
// there is no such stage.
func (mg *Manager) Unload(name string) {
	st, has := mg.stages[name]
	if !has {
		return
	}
	mg.ctx.DeleteShader(st.Handle)
	delete(mg.stages, name)
}

// Release releases every registered stage. The manager is empty
// afterwards and may be reused.
func (mg *Manager) Release() {
	for _, nm := range mg.Names() {
		mg.Unload(nm)
	}
}
