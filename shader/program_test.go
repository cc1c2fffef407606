// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/glsandbox/glctx"
	"cogentcore.org/glsandbox/glctx/glfake"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger returns a logger writing text records at all levels to buf.
func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// lightProgram returns a linked program built from the testdata light shaders.
func lightProgram(t *testing.T, ctx *glfake.Context, buf *bytes.Buffer) (*Manager, *Program) {
	mg := NewManager(ctx)
	require.NoError(t, mg.Load("light.vert", "testdata/light.vert", Vertex))
	require.NoError(t, mg.Load("light.frag", "testdata/light.frag", Fragment))
	pr, err := NewProgram(ctx, mg)
	require.NoError(t, err)
	pr.Name = "light"
	pr.Logger = testLogger(buf)
	require.NoError(t, pr.Attach("light.vert"))
	require.NoError(t, pr.Attach("light.frag"))
	require.NoError(t, pr.Link())
	require.NoError(t, pr.Use())
	return mg, pr
}

// sourceProgram returns a linked program from a single vertex stage source.
func sourceProgram(t *testing.T, ctx *glfake.Context, buf *bytes.Buffer, src string) *Program {
	mg := NewManager(ctx)
	require.NoError(t, mg.LoadSource("v", src, Vertex))
	pr, err := NewProgram(ctx, mg)
	require.NoError(t, err)
	pr.Logger = testLogger(buf)
	require.NoError(t, pr.Attach("v"))
	require.NoError(t, pr.Link())
	require.NoError(t, pr.Use())
	return pr
}

func countCalls(ctx *glfake.Context, prefix string) int {
	n := 0
	for _, c := range ctx.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func TestProgramLink(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	_, pr := lightProgram(t, ctx, &buf)

	assert.True(t, pr.IsLinked())
	assert.Equal(t, []string{"kd", "ld", "light_position", "model_view_matrix", "mvp", "normal_matrix"}, pr.Uniforms())
	u, ok := pr.Uniform("mvp")
	require.True(t, ok)
	assert.Equal(t, glctx.FloatMat4, u.Type)
	assert.Equal(t, glctx.UniformLocation(2), u.Location)
	assert.Equal(t, 1, u.Size)

	// linking again is a no-op
	assert.NoError(t, pr.Link())
	assert.Equal(t, 1, countCalls(ctx, "LinkProgram"))
	assert.Equal(t, pr.Handle(), ctx.CurrentProgram)
}

func TestProgramLinkError(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	mg := NewManager(ctx)
	require.NoError(t, mg.LoadSource("v", "void main() {}", Vertex))
	pr, err := NewProgram(ctx, mg)
	require.NoError(t, err)
	pr.Name = "p"
	pr.Logger = testLogger(&buf)

	assert.True(t, errors.Is(pr.Use(), ErrNotLinked))

	require.NoError(t, pr.Attach("v"))
	ctx.LinkError = "error: vertex output 'x' not read by fragment shader"
	err = pr.Link()
	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ctx.LinkError, le.InfoLog)
	assert.False(t, pr.IsLinked())
	assert.True(t, errors.Is(pr.Use(), ErrNotLinked))
	assert.Contains(t, buf.String(), "link failed")

	ctx.LinkError = ""
	assert.NoError(t, pr.Link())
	assert.True(t, pr.IsLinked())
	assert.NoError(t, pr.Use())
}

func TestProgramAttachUnknown(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	pr, err := NewProgram(ctx, NewManager(ctx))
	require.NoError(t, err)
	pr.Logger = testLogger(&buf)

	err = pr.Attach("missing")
	assert.True(t, errors.Is(err, ErrUnknownShader))
	assert.Empty(t, ctx.Attached(pr.Handle()))
	assert.Empty(t, pr.Attached())
	assert.Contains(t, buf.String(), "shader=missing")
}

func TestProgramCreateFailure(t *testing.T) {
	ctx := glfake.New()
	ctx.FailProgram = true
	_, err := NewProgram(ctx, NewManager(ctx))
	assert.True(t, errors.Is(err, glctx.ErrGPUResource))
}

func TestSetUniform(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	_, pr := lightProgram(t, ctx, &buf)
	ctx.ResetRecords()

	mv := mgl32.LookAtV(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	pr.SetUniform("model_view_matrix", Mat4(mv))
	pr.SetUniform("normal_matrix", Mat3(mv.Mat3()))
	pr.SetUniform("light_position", Vec4{5, 5, 2, 1})
	pr.SetUniform("kd", Vec3{0.9, 0.5, 0.3})

	require.Len(t, ctx.Uploads, 4)
	up := ctx.Uploads[0]
	assert.Equal(t, "UniformMatrix4fv", up.Func)
	assert.Equal(t, glctx.UniformLocation(0), up.Location)
	assert.Equal(t, pr.Handle(), up.Program)
	require.Len(t, up.Values, 16)
	assert.Equal(t, float64(mv[14]), up.Values[14])

	assert.Equal(t, "UniformMatrix3fv", ctx.Uploads[1].Func)
	assert.Len(t, ctx.Uploads[1].Values, 9)
	assert.Equal(t, glfake.Upload{Func: "Uniform4f", Program: pr.Handle(), Location: 3, Values: []float64{5, 5, 2, 1}}, ctx.Uploads[2])
	assert.Equal(t, "Uniform3f", ctx.Uploads[3].Func)
	assert.InDelta(t, 0.9, ctx.Uploads[3].Values[0], 1e-6)
	assert.Empty(t, buf.String())
}

func TestSetUniformUnknown(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	_, pr := lightProgram(t, ctx, &buf)
	ctx.ResetRecords()

	pr.SetUniform("does_not_exist", Float32(1))
	assert.Empty(t, ctx.Uploads)
	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"))
	assert.Contains(t, buf.String(), "uniform=does_not_exist")
}

func TestSetUniformOptimizedOut(t *testing.T) {
	ctx := glfake.New()
	ctx.OptimizedOut = []string{"ld"}
	var buf bytes.Buffer
	_, pr := lightProgram(t, ctx, &buf)
	ctx.ResetRecords()

	pr.SetUniform("ld", Vec3{1, 1, 1})
	require.Len(t, ctx.Uploads, 1)
	assert.Equal(t, glctx.NoLocation, ctx.Uploads[0].Location)
	assert.Empty(t, buf.String())
}

func TestSetUniformTypeMismatch(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	_, pr := lightProgram(t, ctx, &buf)
	ctx.ResetRecords()

	pr.SetUniform("kd", Float32(0.5))
	assert.Empty(t, ctx.Uploads)
	assert.Contains(t, buf.String(), "type mismatch")
	assert.Contains(t, buf.String(), "declared=vec3")
}

func TestSetUniformNil(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	_, pr := lightProgram(t, ctx, &buf)
	ctx.ResetRecords()

	assert.NotPanics(t, func() { pr.SetUniform("kd", nil) })
	assert.Empty(t, ctx.Uploads)
	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"))
	assert.Contains(t, buf.String(), "nil value")
}

func TestSetUniformBeforeLink(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	mg := NewManager(ctx)
	require.NoError(t, mg.LoadSource("v", "uniform float t;\nvoid main() {}", Vertex))
	pr, err := NewProgram(ctx, mg)
	require.NoError(t, err)
	pr.Logger = testLogger(&buf)
	require.NoError(t, pr.Attach("v"))

	pr.SetUniform("t", Float32(1))
	assert.Empty(t, ctx.Uploads)
	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"))
}

func TestSetUniformScalars(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	pr := sourceProgram(t, ctx, &buf, `
uniform float time;
uniform int count;
uniform uint mask;
uniform bool enabled;
uniform sampler2D tex;
uniform mat2 rot;
uniform vec2 offset;
void main() {}
`)
	ctx.ResetRecords()

	pr.SetUniform("time", Float32(1.5))
	pr.SetUniform("count", Int32(-3))
	pr.SetUniform("mask", Uint32(7))
	pr.SetUniform("enabled", Bool(true))
	pr.SetUniform("tex", Int32(2))
	pr.SetUniform("rot", Mat2(mgl32.Ident2()))
	pr.SetUniform("offset", Vec2{1, 2})

	var got []string
	for _, up := range ctx.Uploads {
		got = append(got, fmt.Sprintf("%s %d %v", up.Func, up.Location, up.Values))
	}
	assert.Equal(t, []string{
		"Uniform1f 0 [1.5]",
		"Uniform1i 1 [-3]",
		"Uniform1ui 2 [7]",
		"Uniform1i 3 [1]",
		"Uniform1i 4 [2]",
		"UniformMatrix2fv 5 [1 0 0 1]",
		"Uniform2f 6 [1 2]",
	}, got)
	assert.Empty(t, buf.String())
}

func TestSetUniformArray(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	pr := sourceProgram(t, ctx, &buf, "uniform vec3 lights[4];\nuniform float gain;\nvoid main() {}")

	u, ok := pr.Uniform("lights")
	require.True(t, ok)
	assert.Equal(t, 4, u.Size)
	assert.Equal(t, glctx.UniformLocation(0), u.Location)
	_, ok = pr.Uniform("lights[0]")
	assert.True(t, ok)
	g, _ := pr.Uniform("gain")
	assert.Equal(t, glctx.UniformLocation(4), g.Location)
}

func TestSetUniformFloat64(t *testing.T) {
	const src = "uniform double scale;\nvoid main() {}"

	ctx := glfake.New()
	var buf bytes.Buffer
	pr := sourceProgram(t, ctx, &buf, src)
	ctx.ResetRecords()
	pr.SetUniform("scale", Float64(0.25))
	assert.Equal(t, []glfake.Upload{{Func: "Uniform1d", Program: pr.Handle(), Location: 0, Values: []float64{0.25}}}, ctx.Uploads)

	// 3.3 without the extension
	ctx = glfake.New()
	ctx.Major, ctx.Minor = 3, 3
	ctx.Extensions = nil
	buf.Reset()
	pr = sourceProgram(t, ctx, &buf, src)
	ctx.ResetRecords()
	pr.SetUniform("scale", Float64(0.25))
	pr.SetUniform("scale", Float64(0.5))
	assert.Empty(t, ctx.Uploads)
	assert.Equal(t, 2, strings.Count(buf.String(), "does not support f64 uniforms"))

	// 3.3 with the extension
	ctx = glfake.New()
	ctx.Major, ctx.Minor = 3, 3
	ctx.Extensions = []string{"GL_ARB_gpu_shader_fp64"}
	pr = sourceProgram(t, ctx, &buf, src)
	ctx.ResetRecords()
	pr.SetUniform("scale", Float64(1))
	assert.Len(t, ctx.Uploads, 1)
}

func TestSetUniforms(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	_, pr := lightProgram(t, ctx, &buf)
	ctx.ResetRecords()

	pr.SetUniforms(map[string]Value{"ld": Vec3{1, 1, 1}, "kd": Vec3{0.5, 0.5, 0.5}})
	require.Len(t, ctx.Uploads, 2)
	assert.Equal(t, glctx.UniformLocation(4), ctx.Uploads[0].Location)
	assert.Equal(t, glctx.UniformLocation(5), ctx.Uploads[1].Location)
}

func TestActive(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	_, pr := lightProgram(t, ctx, &buf)

	assert.Equal(t, []Active{{0, "vec3", "vertex_position"}, {1, "vec3", "vertex_normal"}}, pr.ActiveAttributes())
	unis := pr.ActiveUniforms()
	require.Len(t, unis, 6)
	assert.Equal(t, Active{2, "mat4", "mvp"}, unis[2])

	pr.LogActive()
	out := buf.String()
	assert.Contains(t, out, "[ATTRIB] #0 vec3 vertex_position")
	assert.Contains(t, out, "[ATTRIB] #1 vec3 vertex_normal")
	assert.Contains(t, out, "[UNIFORM] #1 mat3 normal_matrix")
	assert.Contains(t, out, "[UNIFORM] #5 vec3 ld")
}

func TestProgramRelease(t *testing.T) {
	ctx := glfake.New()
	var buf bytes.Buffer
	mg, pr := lightProgram(t, ctx, &buf)
	vs, _ := mg.Get("light.vert")
	fs, _ := mg.Get("light.frag")
	p := pr.Handle()
	ctx.ResetRecords()

	pr.Release()
	assert.Equal(t, []string{
		fmt.Sprintf("DetachShader %d %d", p, vs),
		fmt.Sprintf("DetachShader %d %d", p, fs),
		fmt.Sprintf("DeleteProgram %d", p),
	}, ctx.Calls)
	assert.Equal(t, 2, ctx.LiveShaders())
	assert.Equal(t, 0, ctx.LivePrograms())
	assert.True(t, errors.Is(pr.Use(), ErrNotLinked))

	pr.Release()
	assert.Equal(t, 1, ctx.DeleteCount("program", uint32(p)))

	ctx.ResetRecords()
	assert.True(t, errors.Is(pr.Link(), ErrNotLinked))
	assert.Zero(t, countCalls(ctx, "LinkProgram"))
	assert.False(t, pr.IsLinked())
	mg.Release()
	assert.Equal(t, 0, ctx.LiveShaders())
}

func TestCompatible(t *testing.T) {
	assert.True(t, Compatible(glctx.FloatVec3, Vec3{}))
	assert.False(t, Compatible(glctx.FloatVec3, Vec4{}))
	assert.True(t, Compatible(glctx.SamplerCube, Int32(0)))
	assert.False(t, Compatible(glctx.Sampler2D, Uint32(0)))
	assert.True(t, Compatible(0, Mat4{}))
	assert.Equal(t, "?", TypeKeyword(0x1234))
}
