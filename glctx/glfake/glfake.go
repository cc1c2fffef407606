// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glfake provides an in-memory [glctx.Context] that records every
// call, tracks object lifetimes and emulates just enough of the GLSL
// front end (uniform and attribute declarations) to exercise shader
// reflection without a GPU.
package glfake

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/glsandbox/glctx"
)

// Upload is one recorded uniform upload.
type Upload struct {
	// Func is the GL entry point name without the gl prefix, e.g. "Uniform3f".
	Func string

	Program  glctx.Program
	Location glctx.UniformLocation
	Values   []float64
}

// Draw is one recorded DrawElements call.
type Draw struct {
	VertexArray glctx.VertexArray
	Program     glctx.Program
	Count       int32
}

// Attrib is the recorded state of one vertex attribute slot
// of a vertex array.
type Attrib struct {
	Buffer  glctx.Buffer
	Size    int32
	Enabled bool
}

type shader struct {
	typ      glctx.Enum
	src      string
	compiled bool
	infoLog  string
}

type program struct {
	attached []glctx.Shader
	linked   bool
	infoLog  string
	uniforms []glctx.ActiveInfo
	attribs  []glctx.ActiveInfo
	locs     map[string]glctx.UniformLocation
	bound    map[string]uint32
}

type vertexArray struct {
	elements glctx.Buffer
	attribs  map[uint32]*Attrib
}

// Context is a recording [glctx.Context]. The zero value is not usable,
// use [New].
type Context struct {

	// Strings answers GetString queries.
	Strings map[glctx.Enum]string

	// Extensions answers the indexed EXTENSIONS query.
	Extensions []string

	// Major, Minor are the reported context version.
	Major, Minor int32

	// FailBufferAt makes the n-th CreateBuffer call (1 based) fail; 0 disables.
	FailBufferAt int

	// FailVertexArray makes CreateVertexArray fail.
	FailVertexArray bool

	// FailShader makes CreateShader fail.
	FailShader bool

	// FailProgram makes CreateProgram fail.
	FailProgram bool

	// LinkError, if non-empty, makes LinkProgram fail with this info log.
	LinkError string

	// OptimizedOut lists uniform names whose location is reported as
	// [glctx.NoLocation] despite being active.
	OptimizedOut []string

	// Calls is the ordered log of mutating calls, e.g. "DetachShader 1 2".
	Calls []string

	// Uploads records every uniform upload call.
	Uploads []Upload

	// Draws records every DrawElements call.
	Draws []Draw

	// BufferBytes holds the data last uploaded to each buffer.
	BufferBytes map[glctx.Buffer][]byte

	// Deleted counts deletions per object kind and handle, for
	// double-free detection.
	Deleted map[string]map[uint32]int

	// CurrentProgram is the program in use.
	CurrentProgram glctx.Program

	// ClearMask is the mask of the last Clear call.
	ClearMask glctx.Enum

	// ViewportSize is the last viewport width and height.
	ViewportSize [2]int32

	// DebugFunc is the installed debug callback.
	DebugFunc func(glctx.DebugMessage)

	next          uint32
	bufferCalls   int
	buffers       map[glctx.Buffer]bool
	vertexArrays  map[glctx.VertexArray]*vertexArray
	shaders       map[glctx.Shader]*shader
	programs      map[glctx.Program]*program
	enabled       map[glctx.Enum]bool
	boundArray    glctx.Buffer
	boundElements glctx.Buffer
	boundVA       glctx.VertexArray
}

var _ glctx.Context = (*Context)(nil)

// New returns a fake OpenGL 4.6 context.
func New() *Context {
	return &Context{
		Strings: map[glctx.Enum]string{
			glctx.Vendor:                 "Fake Vendor",
			glctx.Renderer:               "glfake",
			glctx.Version:                "4.6.0 glfake",
			glctx.ShadingLanguageVersion: "4.60",
		},
		Extensions:   []string{"GL_ARB_gpu_shader_fp64", "GL_KHR_debug"},
		Major:        4,
		Minor:        6,
		BufferBytes:  map[glctx.Buffer][]byte{},
		Deleted:      map[string]map[uint32]int{},
		buffers:      map[glctx.Buffer]bool{},
		vertexArrays: map[glctx.VertexArray]*vertexArray{},
		shaders:      map[glctx.Shader]*shader{},
		programs:     map[glctx.Program]*program{},
		enabled:      map[glctx.Enum]bool{},
	}
}

func (c *Context) handle() uint32 {
	c.next++
	return c.next
}

func (c *Context) call(format string, args ...any) {
	c.Calls = append(c.Calls, fmt.Sprintf(format, args...))
}

func (c *Context) deleted(kind string, h uint32) {
	m := c.Deleted[kind]
	if m == nil {
		m = map[uint32]int{}
		c.Deleted[kind] = m
	}
	m[h]++
}

// DeleteCount returns how many times the object of given kind
// ("buffer", "vertexArray", "shader", "program") and handle was deleted.
func (c *Context) DeleteCount(kind string, h uint32) int {
	return c.Deleted[kind][h]
}

// LiveBuffers returns the number of buffers not yet deleted.
func (c *Context) LiveBuffers() int { return len(c.buffers) }

// LiveVertexArrays returns the number of vertex arrays not yet deleted.
func (c *Context) LiveVertexArrays() int { return len(c.vertexArrays) }

// LiveShaders returns the number of shaders not yet deleted.
func (c *Context) LiveShaders() int { return len(c.shaders) }

// LivePrograms returns the number of programs not yet deleted.
func (c *Context) LivePrograms() int { return len(c.programs) }

// IsShader reports whether sh is a live shader.
func (c *Context) IsShader(sh glctx.Shader) bool {
	_, ok := c.shaders[sh]
	return ok
}

// Attached returns the shaders attached to p, in attach order.
func (c *Context) Attached(p glctx.Program) []glctx.Shader {
	if pr := c.programs[p]; pr != nil {
		return slices.Clone(pr.attached)
	}
	return nil
}

// VertexAttrib returns the recorded state of slot index in va.
func (c *Context) VertexAttrib(va glctx.VertexArray, index uint32) (Attrib, bool) {
	v := c.vertexArrays[va]
	if v == nil || v.attribs[index] == nil {
		return Attrib{}, false
	}
	return *v.attribs[index], true
}

// ElementBuffer returns the index buffer bound to va.
func (c *Context) ElementBuffer(va glctx.VertexArray) glctx.Buffer {
	if v := c.vertexArrays[va]; v != nil {
		return v.elements
	}
	return 0
}

// IsEnabled reports whether capability was enabled.
func (c *Context) IsEnabled(capability glctx.Enum) bool {
	return c.enabled[capability]
}

// Emit delivers a debug message to the installed callback, if any.
func (c *Context) Emit(msg glctx.DebugMessage) {
	if c.DebugFunc != nil {
		c.DebugFunc(msg)
	}
}

// ResetRecords clears the recorded calls, uploads and draws.
func (c *Context) ResetRecords() {
	c.Calls = nil
	c.Uploads = nil
	c.Draws = nil
}

////////  buffers

func (c *Context) CreateBuffer() (glctx.Buffer, error) {
	c.bufferCalls++
	if c.FailBufferAt > 0 && c.bufferCalls == c.FailBufferAt {
		return 0, fmt.Errorf("glfake: buffer %d: %w", c.bufferCalls, glctx.ErrGPUResource)
	}
	b := glctx.Buffer(c.handle())
	c.buffers[b] = true
	c.call("CreateBuffer %d", b)
	return b, nil
}

func (c *Context) DeleteBuffer(b glctx.Buffer) {
	c.deleted("buffer", uint32(b))
	delete(c.buffers, b)
	c.call("DeleteBuffer %d", b)
}

func (c *Context) BindBuffer(target glctx.Enum, b glctx.Buffer) {
	switch target {
	case glctx.ArrayBuffer:
		c.boundArray = b
	case glctx.ElementArrayBuffer:
		if va := c.vertexArrays[c.boundVA]; va != nil {
			va.elements = b
		}
		c.boundElements = b
	}
	c.call("BindBuffer 0x%X %d", uint32(target), b)
}

func (c *Context) BufferData(target glctx.Enum, data []byte, usage glctx.Enum) {
	b := c.boundArray
	if target == glctx.ElementArrayBuffer {
		b = c.boundElements
	}
	c.BufferBytes[b] = slices.Clone(data)
	c.call("BufferData 0x%X %d %d", uint32(target), b, len(data))
}

////////  vertex arrays

func (c *Context) CreateVertexArray() (glctx.VertexArray, error) {
	if c.FailVertexArray {
		return 0, fmt.Errorf("glfake: vertex array: %w", glctx.ErrGPUResource)
	}
	va := glctx.VertexArray(c.handle())
	c.vertexArrays[va] = &vertexArray{attribs: map[uint32]*Attrib{}}
	c.call("CreateVertexArray %d", va)
	return va, nil
}

func (c *Context) DeleteVertexArray(va glctx.VertexArray) {
	c.deleted("vertexArray", uint32(va))
	delete(c.vertexArrays, va)
	c.call("DeleteVertexArray %d", va)
}

func (c *Context) BindVertexArray(va glctx.VertexArray) {
	c.boundVA = va
	c.call("BindVertexArray %d", va)
}

func (c *Context) attrib(index uint32) *Attrib {
	va := c.vertexArrays[c.boundVA]
	if va == nil {
		return &Attrib{}
	}
	a := va.attribs[index]
	if a == nil {
		a = &Attrib{}
		va.attribs[index] = a
	}
	return a
}

func (c *Context) VertexAttribPointer(index uint32, size int32, typ glctx.Enum, normalized bool, stride int32, offset int) {
	a := c.attrib(index)
	a.Buffer = c.boundArray
	a.Size = size
	c.call("VertexAttribPointer %d %d", index, size)
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.attrib(index).Enabled = true
	c.call("EnableVertexAttribArray %d", index)
}

func (c *Context) DrawElements(mode glctx.Enum, count int32, typ glctx.Enum, offset int) {
	c.Draws = append(c.Draws, Draw{VertexArray: c.boundVA, Program: c.CurrentProgram, Count: count})
	c.call("DrawElements 0x%X %d", uint32(mode), count)
}

////////  shaders

func (c *Context) CreateShader(typ glctx.Enum) (glctx.Shader, error) {
	if c.FailShader {
		return 0, fmt.Errorf("glfake: shader: %w", glctx.ErrGPUResource)
	}
	sh := glctx.Shader(c.handle())
	c.shaders[sh] = &shader{typ: typ}
	c.call("CreateShader %d", sh)
	return sh, nil
}

func (c *Context) ShaderSource(sh glctx.Shader, src string) {
	if s := c.shaders[sh]; s != nil {
		s.src = src
	}
}

// CompileShader fails for any source containing an #error directive;
// the info log reports the directive's message.
func (c *Context) CompileShader(sh glctx.Shader) {
	s := c.shaders[sh]
	if s == nil {
		return
	}
	s.compiled = true
	s.infoLog = ""
	for i, ln := range strings.Split(s.src, "\n") {
		ln = strings.TrimSpace(ln)
		if msg, ok := strings.CutPrefix(ln, "#error"); ok {
			s.compiled = false
			s.infoLog = fmt.Sprintf("0:%d(1): error: %s", i+1, strings.TrimSpace(msg))
			break
		}
	}
	c.call("CompileShader %d", sh)
}

func (c *Context) ShaderCompileStatus(sh glctx.Shader) bool {
	s := c.shaders[sh]
	return s != nil && s.compiled
}

func (c *Context) ShaderInfoLog(sh glctx.Shader) string {
	if s := c.shaders[sh]; s != nil {
		return s.infoLog
	}
	return ""
}

func (c *Context) DeleteShader(sh glctx.Shader) {
	c.deleted("shader", uint32(sh))
	delete(c.shaders, sh)
	c.call("DeleteShader %d", sh)
}

// ShaderSourceOf returns the source given to sh.
func (c *Context) ShaderSourceOf(sh glctx.Shader) string {
	if s := c.shaders[sh]; s != nil {
		return s.src
	}
	return ""
}

////////  programs

func (c *Context) CreateProgram() (glctx.Program, error) {
	if c.FailProgram {
		return 0, fmt.Errorf("glfake: program: %w", glctx.ErrGPUResource)
	}
	p := glctx.Program(c.handle())
	c.programs[p] = &program{bound: map[string]uint32{}}
	c.call("CreateProgram %d", p)
	return p, nil
}

func (c *Context) AttachShader(p glctx.Program, sh glctx.Shader) {
	if pr := c.programs[p]; pr != nil {
		pr.attached = append(pr.attached, sh)
	}
	c.call("AttachShader %d %d", p, sh)
}

func (c *Context) DetachShader(p glctx.Program, sh glctx.Shader) {
	if pr := c.programs[p]; pr != nil {
		if i := slices.Index(pr.attached, sh); i >= 0 {
			pr.attached = slices.Delete(pr.attached, i, i+1)
		}
	}
	c.call("DetachShader %d %d", p, sh)
}

var (
	uniformDecl = regexp.MustCompile(`^\s*uniform\s+(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	inputDecl   = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?in\s+(\w+)\s+(\w+)\s*;`)
)

// LinkProgram links the attached shaders. Linking fails when
// [Context.LinkError] is set, when nothing is attached, or when an
// attached shader is not compiled. On success the active uniforms and
// vertex stage inputs are collected from the declarations in the
// attached sources.
func (c *Context) LinkProgram(p glctx.Program) {
	c.call("LinkProgram %d", p)
	pr := c.programs[p]
	if pr == nil {
		return
	}
	pr.linked = false
	pr.uniforms = nil
	pr.attribs = nil
	pr.locs = map[string]glctx.UniformLocation{}
	switch {
	case c.LinkError != "":
		pr.infoLog = c.LinkError
		return
	case len(pr.attached) == 0:
		pr.infoLog = "error: no shaders attached"
		return
	}
	seen := map[string]bool{}
	loc := glctx.UniformLocation(0)
	for _, h := range pr.attached {
		sh := c.shaders[h]
		if sh == nil || !sh.compiled {
			pr.infoLog = fmt.Sprintf("error: shader %d not compiled", h)
			return
		}
		for _, ln := range strings.Split(sh.src, "\n") {
			if m := uniformDecl.FindStringSubmatch(ln); m != nil {
				name, size := m[2], 1
				if m[3] != "" {
					size, _ = strconv.Atoi(m[3])
					name += "[0]"
				}
				if seen[name] {
					continue
				}
				seen[name] = true
				pr.uniforms = append(pr.uniforms, glctx.ActiveInfo{Name: name, Type: typeOf(m[1]), Size: size})
				if slices.Contains(c.OptimizedOut, m[2]) {
					pr.locs[name] = glctx.NoLocation
					continue
				}
				pr.locs[name] = loc
				if size > 1 {
					pr.locs[m[2]] = loc
				}
				loc += glctx.UniformLocation(size)
				continue
			}
			if sh.typ != glctx.VertexShader {
				continue
			}
			if m := inputDecl.FindStringSubmatch(ln); m != nil {
				pr.attribs = append(pr.attribs, glctx.ActiveInfo{Name: m[2], Type: typeOf(m[1]), Size: 1})
			}
		}
	}
	pr.linked = true
	pr.infoLog = ""
}

var glslTypes = map[string]glctx.Enum{
	"float":       glctx.Float,
	"double":      glctx.Double,
	"int":         glctx.Int,
	"uint":        glctx.UnsignedInt,
	"bool":        glctx.Bool,
	"vec2":        glctx.FloatVec2,
	"vec3":        glctx.FloatVec3,
	"vec4":        glctx.FloatVec4,
	"ivec2":       glctx.IntVec2,
	"ivec3":       glctx.IntVec3,
	"ivec4":       glctx.IntVec4,
	"mat2":        glctx.FloatMat2,
	"mat3":        glctx.FloatMat3,
	"mat4":        glctx.FloatMat4,
	"dvec2":       glctx.DoubleVec2,
	"dvec3":       glctx.DoubleVec3,
	"dvec4":       glctx.DoubleVec4,
	"sampler2D":   glctx.Sampler2D,
	"samplerCube": glctx.SamplerCube,
}

func typeOf(keyword string) glctx.Enum {
	return glslTypes[keyword]
}

func (c *Context) ProgramLinkStatus(p glctx.Program) bool {
	pr := c.programs[p]
	return pr != nil && pr.linked
}

func (c *Context) ProgramInfoLog(p glctx.Program) string {
	if pr := c.programs[p]; pr != nil {
		return pr.infoLog
	}
	return ""
}

func (c *Context) UseProgram(p glctx.Program) {
	c.CurrentProgram = p
	c.call("UseProgram %d", p)
}

func (c *Context) DeleteProgram(p glctx.Program) {
	c.deleted("program", uint32(p))
	delete(c.programs, p)
	if c.CurrentProgram == p {
		c.CurrentProgram = 0
	}
	c.call("DeleteProgram %d", p)
}

func (c *Context) BindAttribLocation(p glctx.Program, index uint32, name string) {
	if pr := c.programs[p]; pr != nil {
		pr.bound[name] = index
	}
	c.call("BindAttribLocation %d %d %s", p, index, name)
}

func (c *Context) BindFragDataLocation(p glctx.Program, color uint32, name string) {
	c.call("BindFragDataLocation %d %d %s", p, color, name)
}

////////  reflection

func (c *Context) ActiveAttributeCount(p glctx.Program) int {
	if pr := c.programs[p]; pr != nil {
		return len(pr.attribs)
	}
	return 0
}

func (c *Context) ActiveAttribute(p glctx.Program, index int) (glctx.ActiveInfo, bool) {
	pr := c.programs[p]
	if pr == nil || index < 0 || index >= len(pr.attribs) {
		return glctx.ActiveInfo{}, false
	}
	return pr.attribs[index], true
}

func (c *Context) ActiveUniformCount(p glctx.Program) int {
	if pr := c.programs[p]; pr != nil {
		return len(pr.uniforms)
	}
	return 0
}

func (c *Context) ActiveUniform(p glctx.Program, index int) (glctx.ActiveInfo, bool) {
	pr := c.programs[p]
	if pr == nil || index < 0 || index >= len(pr.uniforms) {
		return glctx.ActiveInfo{}, false
	}
	return pr.uniforms[index], true
}

func (c *Context) UniformLocation(p glctx.Program, name string) glctx.UniformLocation {
	pr := c.programs[p]
	if pr == nil || !pr.linked {
		return glctx.NoLocation
	}
	if loc, ok := pr.locs[name]; ok {
		return loc
	}
	return glctx.NoLocation
}

////////  uniforms

func (c *Context) upload(fn string, loc glctx.UniformLocation, vals ...float64) {
	c.Uploads = append(c.Uploads, Upload{Func: fn, Program: c.CurrentProgram, Location: loc, Values: vals})
}

func f64s(vs []float32) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}

func (c *Context) Uniform1f(loc glctx.UniformLocation, v float32) {
	c.upload("Uniform1f", loc, float64(v))
}

func (c *Context) Uniform2f(loc glctx.UniformLocation, x, y float32) {
	c.upload("Uniform2f", loc, float64(x), float64(y))
}

func (c *Context) Uniform3f(loc glctx.UniformLocation, x, y, z float32) {
	c.upload("Uniform3f", loc, float64(x), float64(y), float64(z))
}

func (c *Context) Uniform4f(loc glctx.UniformLocation, x, y, z, w float32) {
	c.upload("Uniform4f", loc, float64(x), float64(y), float64(z), float64(w))
}

func (c *Context) Uniform1d(loc glctx.UniformLocation, v float64) {
	c.upload("Uniform1d", loc, v)
}

func (c *Context) Uniform1i(loc glctx.UniformLocation, v int32) {
	c.upload("Uniform1i", loc, float64(v))
}

func (c *Context) Uniform1ui(loc glctx.UniformLocation, v uint32) {
	c.upload("Uniform1ui", loc, float64(v))
}

func (c *Context) UniformMatrix2fv(loc glctx.UniformLocation, transpose bool, m []float32) {
	c.upload("UniformMatrix2fv", loc, f64s(m)...)
}

func (c *Context) UniformMatrix3fv(loc glctx.UniformLocation, transpose bool, m []float32) {
	c.upload("UniformMatrix3fv", loc, f64s(m)...)
}

func (c *Context) UniformMatrix4fv(loc glctx.UniformLocation, transpose bool, m []float32) {
	c.upload("UniformMatrix4fv", loc, f64s(m)...)
}

////////  state

func (c *Context) GetString(name glctx.Enum) string {
	return c.Strings[name]
}

func (c *Context) GetStringi(name glctx.Enum, index uint32) string {
	if name != glctx.Extensions || int(index) >= len(c.Extensions) {
		return ""
	}
	return c.Extensions[index]
}

func (c *Context) GetInteger(name glctx.Enum) int32 {
	switch name {
	case glctx.MajorVersion:
		return c.Major
	case glctx.MinorVersion:
		return c.Minor
	case glctx.NumExtensions:
		return int32(len(c.Extensions))
	}
	return 0
}

func (c *Context) Enable(capability glctx.Enum) {
	c.enabled[capability] = true
	c.call("Enable 0x%X", uint32(capability))
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.ViewportSize = [2]int32{width, height}
	c.call("Viewport %d %d %d %d", x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.call("ClearColor %g %g %g %g", r, g, b, a)
}

func (c *Context) Clear(mask glctx.Enum) {
	c.ClearMask = mask
	c.call("Clear 0x%X", uint32(mask))
}

func (c *Context) DebugMessageCallback(fn func(glctx.DebugMessage)) {
	c.DebugFunc = fn
	c.enabled[glctx.DebugOutput] = true
	c.call("DebugMessageCallback")
}
