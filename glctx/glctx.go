// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glctx defines the handle to the active OpenGL context that every
// GPU resource owner in the sandbox receives explicitly, together with the
// opaque object handles and the GL enum values used by those owners.
//
// The interface stays close to the GL calls themselves: the
// components that use it (meshes, shader managers, programs) own the
// semantics, the context only issues the calls. Package native provides the
// go-gl implementation and package glfake an in-memory one for tests.
package glctx

import (
	"cogentcore.org/core/base/errors"
)

// Enum is a GL enumeration value (GLenum).
type Enum uint32

// Buffer is an opaque GPU buffer object handle.
type Buffer uint32

// VertexArray is an opaque vertex array object handle.
type VertexArray uint32

// Shader is an opaque compiled shader stage handle.
type Shader uint32

// Program is an opaque shader program handle.
type Program uint32

// UniformLocation is the location of a uniform within a linked program.
// NoLocation is the absent-location sentinel: GL ignores uploads to it.
type UniformLocation int32

// NoLocation is the location of a uniform that has been optimized out
// or that does not exist.
const NoLocation UniformLocation = -1

// Valid returns whether the location refers to an actual uniform slot.
func (l UniformLocation) Valid() bool {
	return l >= 0
}

// ErrGPUResource is returned when the driver fails to create an object.
var ErrGPUResource = errors.New("glctx: GPU object creation failed")

// ActiveInfo describes one active attribute or uniform of a linked program.
type ActiveInfo struct {
	// Name as reported by the driver (arrays are reported as name[0]).
	Name string

	// Type is the declared GLSL type as a GL type constant (FLOAT_VEC3 etc).
	Type Enum

	// Size is the array length, 1 for non-array variables.
	Size int
}

// DebugMessage is one message delivered by the driver debug output.
type DebugMessage struct {
	Source   Enum
	Type     Enum
	ID       uint32
	Severity Enum
	Text     string
}

// Context is the set of GL operations used by the sandbox. All calls must be
// made from the thread on which the context is current.
type Context interface {
	// buffers

	CreateBuffer() (Buffer, error)
	DeleteBuffer(b Buffer)
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, data []byte, usage Enum)

	// vertex arrays

	CreateVertexArray() (VertexArray, error)
	DeleteVertexArray(va VertexArray)
	BindVertexArray(va VertexArray)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DrawElements(mode Enum, count int32, typ Enum, offset int)

	// shaders

	CreateShader(typ Enum) (Shader, error)
	ShaderSource(sh Shader, src string)
	CompileShader(sh Shader)
	ShaderCompileStatus(sh Shader) bool
	ShaderInfoLog(sh Shader) string
	DeleteShader(sh Shader)

	// programs

	CreateProgram() (Program, error)
	AttachShader(p Program, sh Shader)
	DetachShader(p Program, sh Shader)
	LinkProgram(p Program)
	ProgramLinkStatus(p Program) bool
	ProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)
	BindAttribLocation(p Program, index uint32, name string)
	BindFragDataLocation(p Program, color uint32, name string)

	// reflection

	ActiveAttributeCount(p Program) int
	ActiveAttribute(p Program, index int) (ActiveInfo, bool)
	ActiveUniformCount(p Program) int
	ActiveUniform(p Program, index int) (ActiveInfo, bool)
	UniformLocation(p Program, name string) UniformLocation

	// uniform upload, applies to the program in use

	Uniform1f(loc UniformLocation, v float32)
	Uniform2f(loc UniformLocation, x, y float32)
	Uniform3f(loc UniformLocation, x, y, z float32)
	Uniform4f(loc UniformLocation, x, y, z, w float32)
	Uniform1d(loc UniformLocation, v float64)
	Uniform1i(loc UniformLocation, v int32)
	Uniform1ui(loc UniformLocation, v uint32)
	UniformMatrix2fv(loc UniformLocation, transpose bool, m []float32)
	UniformMatrix3fv(loc UniformLocation, transpose bool, m []float32)
	UniformMatrix4fv(loc UniformLocation, transpose bool, m []float32)

	// state and queries

	GetString(name Enum) string
	GetStringi(name Enum, index uint32) string
	GetInteger(name Enum) int32
	Enable(capability Enum)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)

	// DebugMessageCallback installs fn as the receiver of driver debug output
	// and enables every message category.
	DebugMessageCallback(fn func(DebugMessage))
}

// HasExtension returns whether ctx reports the named extension
// in its indexed extension list.
func HasExtension(ctx Context, name string) bool {
	n := ctx.GetInteger(NumExtensions)
	for i := range n {
		if ctx.GetStringi(Extensions, uint32(i)) == name {
			return true
		}
	}
	return false
}
