// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/glsandbox/glctx"
	"cogentcore.org/glsandbox/glctx/glfake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLoad(t *testing.T) {
	ctx := glfake.New()
	mg := NewManager(ctx)
	require.NoError(t, mg.Load("light.vert", "testdata/light.vert", Vertex))
	require.NoError(t, mg.Load("light.frag", "testdata/light.frag", Fragment))

	assert.True(t, mg.Has("light.vert"))
	assert.Equal(t, 2, mg.Len())
	assert.Equal(t, []string{"light.frag", "light.vert"}, mg.Names())

	st, ok := mg.Stage("light.vert")
	require.True(t, ok)
	abs, _ := filepath.Abs("testdata/light.vert")
	assert.Equal(t, abs, st.Path)
	assert.Equal(t, Vertex, st.Type)
	assert.True(t, ctx.IsShader(st.Handle))
	assert.Contains(t, ctx.ShaderSourceOf(st.Handle), "uniform mat4 mvp;")
	assert.Equal(t, []string{"light.vert"}, mg.NamesForPath("testdata/light.vert"))
}

func TestManagerMissingFile(t *testing.T) {
	ctx := glfake.New()
	mg := NewManager(ctx)
	err := mg.Load("nope", "testdata/does-not-exist.vert", Vertex)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, mg.Has("nope"))
	assert.Empty(t, ctx.Calls)
}

func TestManagerCompileError(t *testing.T) {
	ctx := glfake.New()
	mg := NewManager(ctx)
	err := mg.Load("broken", "testdata/broken.frag", Fragment)
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "broken", ce.Name)
	assert.Equal(t, Fragment, ce.Type)
	assert.Equal(t, "0:3(1): error: missing semicolon", ce.InfoLog)
	assert.Contains(t, err.Error(), ce.InfoLog)
	assert.False(t, mg.Has("broken"))
	assert.Equal(t, 0, ctx.LiveShaders())
}

func TestManagerReplace(t *testing.T) {
	ctx := glfake.New()
	mg := NewManager(ctx)
	require.NoError(t, mg.LoadSource("v", "void main() {}", Vertex))
	old, _ := mg.Get("v")

	require.NoError(t, mg.LoadSource("v", "void main() { }", Vertex))
	cur, _ := mg.Get("v")
	assert.NotEqual(t, old, cur)
	assert.Equal(t, 1, ctx.DeleteCount("shader", uint32(old)))
	assert.Equal(t, 1, mg.Len())
	assert.Equal(t, 1, ctx.LiveShaders())

	// a failed replacement keeps the current stage
	err := mg.LoadSource("v", "#error nope", Vertex)
	assert.Error(t, err)
	still, _ := mg.Get("v")
	assert.Equal(t, cur, still)
	assert.True(t, ctx.IsShader(cur))
}

func TestManagerReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.frag")
	require.NoError(t, os.WriteFile(path, []byte("void main() {}\n"), 0o644))

	ctx := glfake.New()
	mg := NewManager(ctx)
	require.NoError(t, mg.Load("a", path, Fragment))

	require.NoError(t, os.WriteFile(path, []byte("// edited\nvoid main() {}\n"), 0o644))
	require.NoError(t, mg.Reload("a"))
	h, _ := mg.Get("a")
	assert.Equal(t, "// edited\nvoid main() {}\n", ctx.ShaderSourceOf(h))

	assert.True(t, errors.Is(mg.Reload("b"), ErrUnknownShader))
	require.NoError(t, mg.LoadSource("src", "void main() {}", Vertex))
	assert.Error(t, mg.Reload("src"))
}

func TestManagerRelease(t *testing.T) {
	ctx := glfake.New()
	mg := NewManager(ctx)
	require.NoError(t, mg.LoadSource("v", "void main() {}", Vertex))
	require.NoError(t, mg.LoadSource("f", "void main() {}", Fragment))
	mg.Unload("missing")
	mg.Release()
	assert.Equal(t, 0, mg.Len())
	assert.Equal(t, 0, ctx.LiveShaders())
	mg.Release()
}

func TestManagerLoadAfterUnload(t *testing.T) {
	ctx := glfake.New()
	mg := NewManager(ctx)
	require.NoError(t, mg.LoadSource("v", "void main() {}", Vertex))
	old, _ := mg.Get("v")

	mg.Unload("v")
	assert.False(t, mg.Has("v"))
	assert.Equal(t, 1, ctx.DeleteCount("shader", uint32(old)))
	assert.Equal(t, 0, ctx.LiveShaders())

	require.NoError(t, mg.LoadSource("v", "void main() {}", Vertex))
	cur, ok := mg.Get("v")
	require.True(t, ok)
	assert.NotEqual(t, old, cur)
	assert.True(t, ctx.IsShader(cur))
	assert.Equal(t, 1, mg.Len())
	assert.Equal(t, 1, ctx.LiveShaders())
	assert.Equal(t, 1, ctx.DeleteCount("shader", uint32(old)))
}

func TestManagerCreateFailure(t *testing.T) {
	ctx := glfake.New()
	ctx.FailShader = true
	mg := NewManager(ctx)
	err := mg.LoadSource("v", "void main() {}", Vertex)
	assert.True(t, errors.Is(err, glctx.ErrGPUResource))
	assert.False(t, mg.Has("v"))
}

func TestParseTypes(t *testing.T) {
	for s, want := range map[string]Types{
		"vertex": Vertex, "FRAG": Fragment, "gs": Geometry,
		"tess-control": TessControl, "tese": TessEvaluation, "comp": Compute,
	} {
		got, err := ParseTypes(s)
		assert.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	_, err := ParseTypes("pixel")
	assert.Error(t, err)

	var ty Types
	require.NoError(t, ty.UnmarshalText([]byte("fragment")))
	assert.Equal(t, Fragment, ty)
	assert.Equal(t, "Types(9)", Types(9).String())
}
