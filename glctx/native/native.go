// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package native implements [glctx.Context] on top of the go-gl
// OpenGL 4.3 core profile bindings.
package native

import (
	"fmt"
	"strings"
	"unsafe"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/glsandbox/glctx"
	"github.com/go-gl/gl/v4.3-core/gl"
)

// Context is the go-gl implementation of [glctx.Context].
// The OpenGL context must be current on the calling thread.
type Context struct {

	// debug is the installed debug callback, kept reachable for the driver
	debug gl.DebugProc
}

// New loads the GL function pointers for the current context.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Log(fmt.Errorf("native.New: could not initialize OpenGL: %w", err))
	}
	return &Context{}, nil
}

var _ glctx.Context = (*Context)(nil)

// cstr returns a null terminated copy of s for passing to gl.Str.
func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func (c *Context) CreateBuffer() (glctx.Buffer, error) {
	var b uint32
	gl.GenBuffers(1, &b)
	if b == 0 {
		return 0, fmt.Errorf("glGenBuffers: %w", glctx.ErrGPUResource)
	}
	return glctx.Buffer(b), nil
}

func (c *Context) DeleteBuffer(b glctx.Buffer) {
	h := uint32(b)
	gl.DeleteBuffers(1, &h)
}

func (c *Context) BindBuffer(target glctx.Enum, b glctx.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b))
}

func (c *Context) BufferData(target glctx.Enum, data []byte, usage glctx.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(data), uint32(usage))
}

func (c *Context) CreateVertexArray() (glctx.VertexArray, error) {
	var va uint32
	gl.GenVertexArrays(1, &va)
	if va == 0 {
		return 0, fmt.Errorf("glGenVertexArrays: %w", glctx.ErrGPUResource)
	}
	return glctx.VertexArray(va), nil
}

func (c *Context) DeleteVertexArray(va glctx.VertexArray) {
	h := uint32(va)
	gl.DeleteVertexArrays(1, &h)
}

func (c *Context) BindVertexArray(va glctx.VertexArray) {
	gl.BindVertexArray(uint32(va))
}

func (c *Context) VertexAttribPointer(index uint32, size int32, typ glctx.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, uint32(typ), normalized, stride, gl.PtrOffset(offset))
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (c *Context) DrawElements(mode glctx.Enum, count int32, typ glctx.Enum, offset int) {
	gl.DrawElements(uint32(mode), count, uint32(typ), gl.PtrOffset(offset))
}

func (c *Context) CreateShader(typ glctx.Enum) (glctx.Shader, error) {
	h := gl.CreateShader(uint32(typ))
	if h == 0 {
		return 0, fmt.Errorf("glCreateShader(0x%X): %w", uint32(typ), glctx.ErrGPUResource)
	}
	return glctx.Shader(h), nil
}

func (c *Context) ShaderSource(sh glctx.Shader, src string) {
	csources, free := gl.Strs(cstr(src))
	gl.ShaderSource(uint32(sh), 1, csources, nil)
	free()
}

func (c *Context) CompileShader(sh glctx.Shader) {
	gl.CompileShader(uint32(sh))
}

func (c *Context) ShaderCompileStatus(sh glctx.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(sh), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ShaderInfoLog(sh glctx.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(sh), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(sh), logLength, nil, gl.Str(msg))
	return gl.GoStr(gl.Str(msg))
}

func (c *Context) DeleteShader(sh glctx.Shader) {
	gl.DeleteShader(uint32(sh))
}

func (c *Context) CreateProgram() (glctx.Program, error) {
	h := gl.CreateProgram()
	if h == 0 {
		return 0, fmt.Errorf("glCreateProgram: %w", glctx.ErrGPUResource)
	}
	return glctx.Program(h), nil
}

func (c *Context) AttachShader(p glctx.Program, sh glctx.Shader) {
	gl.AttachShader(uint32(p), uint32(sh))
}

func (c *Context) DetachShader(p glctx.Program, sh glctx.Shader) {
	gl.DetachShader(uint32(p), uint32(sh))
}

func (c *Context) LinkProgram(p glctx.Program) {
	gl.LinkProgram(uint32(p))
}

func (c *Context) ProgramLinkStatus(p glctx.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ProgramInfoLog(p glctx.Program) string {
	var lgLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &lgLength)
	if lgLength == 0 {
		return ""
	}
	lg := strings.Repeat("\x00", int(lgLength+1))
	gl.GetProgramInfoLog(uint32(p), lgLength, nil, gl.Str(lg))
	return gl.GoStr(gl.Str(lg))
}

func (c *Context) UseProgram(p glctx.Program) {
	gl.UseProgram(uint32(p))
}

func (c *Context) DeleteProgram(p glctx.Program) {
	gl.DeleteProgram(uint32(p))
}

func (c *Context) BindAttribLocation(p glctx.Program, index uint32, name string) {
	gl.BindAttribLocation(uint32(p), index, gl.Str(cstr(name)))
}

func (c *Context) BindFragDataLocation(p glctx.Program, color uint32, name string) {
	gl.BindFragDataLocation(uint32(p), color, gl.Str(cstr(name)))
}

func (c *Context) ActiveAttributeCount(p glctx.Program) int {
	var n int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_ATTRIBUTES, &n)
	return int(n)
}

func (c *Context) ActiveAttribute(p glctx.Program, index int) (glctx.ActiveInfo, bool) {
	var maxLen int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)
	return activeInfo(maxLen, func(bufSize int32, length, size *int32, typ *uint32, name *uint8) {
		gl.GetActiveAttrib(uint32(p), uint32(index), bufSize, length, size, typ, name)
	})
}

func (c *Context) ActiveUniformCount(p glctx.Program) int {
	var n int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_UNIFORMS, &n)
	return int(n)
}

func (c *Context) ActiveUniform(p glctx.Program, index int) (glctx.ActiveInfo, bool) {
	var maxLen int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	return activeInfo(maxLen, func(bufSize int32, length, size *int32, typ *uint32, name *uint8) {
		gl.GetActiveUniform(uint32(p), uint32(index), bufSize, length, size, typ, name)
	})
}

// activeInfo runs one glGetActiveAttrib / glGetActiveUniform query.
func activeInfo(maxLen int32, query func(bufSize int32, length, size *int32, typ *uint32, name *uint8)) (glctx.ActiveInfo, bool) {
	if maxLen <= 0 {
		return glctx.ActiveInfo{}, false
	}
	buf := make([]uint8, maxLen+1)
	var length, size int32
	var typ uint32
	query(maxLen, &length, &size, &typ, &buf[0])
	if length <= 0 {
		return glctx.ActiveInfo{}, false
	}
	return glctx.ActiveInfo{Name: string(buf[:length]), Type: glctx.Enum(typ), Size: int(size)}, true
}

func (c *Context) UniformLocation(p glctx.Program, name string) glctx.UniformLocation {
	return glctx.UniformLocation(gl.GetUniformLocation(uint32(p), gl.Str(cstr(name))))
}

func (c *Context) Uniform1f(loc glctx.UniformLocation, v float32) {
	gl.Uniform1f(int32(loc), v)
}

func (c *Context) Uniform2f(loc glctx.UniformLocation, x, y float32) {
	gl.Uniform2f(int32(loc), x, y)
}

func (c *Context) Uniform3f(loc glctx.UniformLocation, x, y, z float32) {
	gl.Uniform3f(int32(loc), x, y, z)
}

func (c *Context) Uniform4f(loc glctx.UniformLocation, x, y, z, w float32) {
	gl.Uniform4f(int32(loc), x, y, z, w)
}

func (c *Context) Uniform1d(loc glctx.UniformLocation, v float64) {
	gl.Uniform1d(int32(loc), v)
}

func (c *Context) Uniform1i(loc glctx.UniformLocation, v int32) {
	gl.Uniform1i(int32(loc), v)
}

func (c *Context) Uniform1ui(loc glctx.UniformLocation, v uint32) {
	gl.Uniform1ui(int32(loc), v)
}

func (c *Context) UniformMatrix2fv(loc glctx.UniformLocation, transpose bool, m []float32) {
	gl.UniformMatrix2fv(int32(loc), int32(len(m)/4), transpose, &m[0])
}

func (c *Context) UniformMatrix3fv(loc glctx.UniformLocation, transpose bool, m []float32) {
	gl.UniformMatrix3fv(int32(loc), int32(len(m)/9), transpose, &m[0])
}

func (c *Context) UniformMatrix4fv(loc glctx.UniformLocation, transpose bool, m []float32) {
	gl.UniformMatrix4fv(int32(loc), int32(len(m)/16), transpose, &m[0])
}

func (c *Context) GetString(name glctx.Enum) string {
	s := gl.GetString(uint32(name))
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (c *Context) GetStringi(name glctx.Enum, index uint32) string {
	s := gl.GetStringi(uint32(name), index)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (c *Context) GetInteger(name glctx.Enum) int32 {
	var v int32
	gl.GetIntegerv(uint32(name), &v)
	return v
}

func (c *Context) Enable(capability glctx.Enum) {
	gl.Enable(uint32(capability))
}

func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *Context) Clear(mask glctx.Enum) {
	gl.Clear(uint32(mask))
}

func (c *Context) DebugMessageCallback(fn func(glctx.DebugMessage)) {
	c.debug = func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		fn(glctx.DebugMessage{
			Source:   glctx.Enum(source),
			Type:     glctx.Enum(gltype),
			ID:       id,
			Severity: glctx.Enum(severity),
			Text:     message,
		})
	}
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(c.debug, nil)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)
}
