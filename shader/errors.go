// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"fmt"

	"cogentcore.org/core/base/errors"
)

var (
	// ErrNotLinked is returned by Program.Use before a successful Link.
	ErrNotLinked = errors.New("shader: program has not been linked")

	// ErrUnknownShader is returned by Program.Attach for a name
	// that is not loaded in the Manager.
	ErrUnknownShader = errors.New("shader: unknown shader")
)

// CompileError is returned when a shader stage fails to compile.
// InfoLog is the driver diagnostic text, verbatim.
type CompileError struct {
	Name    string
	Path    string
	Type    Types
	InfoLog string
}

func (e *CompileError) Error() string {
	src := e.Path
	if src == "" {
		src = "<source>"
	}
	return fmt.Sprintf("shader %q (%s, %s) failed to compile:\n%s", e.Name, e.Type, src, e.InfoLog)
}

// LinkError is returned when a program fails to link.
// InfoLog is the driver diagnostic text, verbatim.
type LinkError struct {
	Program string
	InfoLog string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program %q failed to link:\n%s", e.Program, e.InfoLog)
}
