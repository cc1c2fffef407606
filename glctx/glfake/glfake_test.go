// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glfake

import (
	"testing"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/glsandbox/glctx"
	"github.com/stretchr/testify/assert"
)

func TestCompile(t *testing.T) {
	c := New()
	sh, err := c.CreateShader(glctx.FragmentShader)
	assert.NoError(t, err)
	c.ShaderSource(sh, "void main() {}\n  #error bad token\n")
	c.CompileShader(sh)
	assert.False(t, c.ShaderCompileStatus(sh))
	assert.Equal(t, "0:2(1): error: bad token", c.ShaderInfoLog(sh))

	c.ShaderSource(sh, "void main() {}")
	c.CompileShader(sh)
	assert.True(t, c.ShaderCompileStatus(sh))
	assert.Empty(t, c.ShaderInfoLog(sh))
}

func TestLinkReflection(t *testing.T) {
	c := New()
	c.OptimizedOut = []string{"unused"}
	vs, _ := c.CreateShader(glctx.VertexShader)
	c.ShaderSource(vs, `layout(location = 0) in vec3 pos;
in vec2 uv;
uniform mat4 mvp;
uniform float unused;
uniform vec4 colors[3];
uniform float after;
void main() {}`)
	c.CompileShader(vs)
	p, _ := c.CreateProgram()

	c.LinkProgram(p)
	assert.False(t, c.ProgramLinkStatus(p))
	assert.Equal(t, "error: no shaders attached", c.ProgramInfoLog(p))

	c.AttachShader(p, vs)
	c.LinkProgram(p)
	assert.True(t, c.ProgramLinkStatus(p))

	assert.Equal(t, 2, c.ActiveAttributeCount(p))
	a, ok := c.ActiveAttribute(p, 1)
	assert.True(t, ok)
	assert.Equal(t, glctx.ActiveInfo{Name: "uv", Type: glctx.FloatVec2, Size: 1}, a)

	assert.Equal(t, 4, c.ActiveUniformCount(p))
	u, _ := c.ActiveUniform(p, 2)
	assert.Equal(t, glctx.ActiveInfo{Name: "colors[0]", Type: glctx.FloatVec4, Size: 3}, u)
	_, ok = c.ActiveUniform(p, 4)
	assert.False(t, ok)

	assert.Equal(t, glctx.UniformLocation(0), c.UniformLocation(p, "mvp"))
	assert.Equal(t, glctx.NoLocation, c.UniformLocation(p, "unused"))
	assert.Equal(t, glctx.UniformLocation(1), c.UniformLocation(p, "colors[0]"))
	assert.Equal(t, glctx.UniformLocation(4), c.UniformLocation(p, "after"))
	assert.Equal(t, glctx.NoLocation, c.UniformLocation(p, "missing"))
}

func TestFailures(t *testing.T) {
	c := New()
	c.FailBufferAt = 2
	_, err := c.CreateBuffer()
	assert.NoError(t, err)
	_, err = c.CreateBuffer()
	assert.True(t, errors.Is(err, glctx.ErrGPUResource))
	assert.Equal(t, 1, c.LiveBuffers())

	c.FailVertexArray = true
	_, err = c.CreateVertexArray()
	assert.Error(t, err)
}

func TestDeleteCount(t *testing.T) {
	c := New()
	b, _ := c.CreateBuffer()
	c.DeleteBuffer(b)
	c.DeleteBuffer(b)
	assert.Equal(t, 2, c.DeleteCount("buffer", uint32(b)))
	assert.Equal(t, 0, c.LiveBuffers())
}

func TestHasExtension(t *testing.T) {
	c := New()
	assert.True(t, glctx.HasExtension(c, "GL_KHR_debug"))
	assert.False(t, glctx.HasExtension(c, "GL_ARB_bindless_texture"))
	c.Extensions = nil
	assert.False(t, glctx.HasExtension(c, "GL_KHR_debug"))
}
