// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"cogentcore.org/glsandbox/glctx"
	"cogentcore.org/glsandbox/glctx/glfake"
	"cogentcore.org/glsandbox/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() Geometry {
	return Geometry{
		Indices:   []uint32{0, 1, 2},
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
	}
}

func TestNewTriangle(t *testing.T) {
	ctx := glfake.New()
	ms, err := New(ctx, triangle())
	require.NoError(t, err)

	assert.Equal(t, 3, ms.Count())
	bufs := ms.Buffers()
	require.Len(t, bufs, 3)
	assert.Equal(t, 3, ctx.LiveBuffers())
	assert.Equal(t, 1, ctx.LiveVertexArrays())

	va := ms.VertexArray()
	assert.Equal(t, bufs[0], ctx.ElementBuffer(va))
	pos, ok := ctx.VertexAttrib(va, PositionSlot)
	require.True(t, ok)
	assert.Equal(t, bufs[1], pos.Buffer)
	assert.Equal(t, int32(3), pos.Size)
	assert.True(t, pos.Enabled)
	nrm, ok := ctx.VertexAttrib(va, NormalSlot)
	require.True(t, ok)
	assert.Equal(t, bufs[2], nrm.Buffer)
	_, ok = ctx.VertexAttrib(va, TexCoordSlot)
	assert.False(t, ok)
	_, ok = ctx.VertexAttrib(va, TangentSlot)
	assert.False(t, ok)

	idx := ctx.BufferBytes[bufs[0]]
	require.Len(t, idx, 12)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(idx[8:]))
	p := ctx.BufferBytes[bufs[1]]
	require.Len(t, p, 36)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(p[12:])))
}

func TestOptionalAttributes(t *testing.T) {
	ctx := glfake.New()
	g := triangle()
	g.TexCoords = []float32{0, 0, 1, 0, 0, 1}
	g.Tangents = make([]float32, 12)
	ms, err := New(ctx, g)
	require.NoError(t, err)
	bufs := ms.Buffers()
	require.Len(t, bufs, 5)

	tc, ok := ctx.VertexAttrib(ms.VertexArray(), TexCoordSlot)
	require.True(t, ok)
	assert.Equal(t, bufs[3], tc.Buffer)
	assert.Equal(t, int32(2), tc.Size)
	tg, ok := ctx.VertexAttrib(ms.VertexArray(), TangentSlot)
	require.True(t, ok)
	assert.Equal(t, bufs[4], tg.Buffer)
	assert.Equal(t, int32(4), tg.Size)
}

func TestInvalidGeometry(t *testing.T) {
	bad := []func(g *Geometry){
		func(g *Geometry) { g.Indices = nil },
		func(g *Geometry) { g.Positions = g.Positions[:8] },
		func(g *Geometry) { g.Normals = g.Normals[:6] },
		func(g *Geometry) { g.TexCoords = []float32{0, 0} },
		func(g *Geometry) { g.Tangents = []float32{0, 0, 0} },
		func(g *Geometry) { g.Indices = []uint32{0, 1, 3} },
	}
	for i, fn := range bad {
		ctx := glfake.New()
		g := triangle()
		fn(&g)
		_, err := New(ctx, g)
		assert.ErrorIs(t, err, ErrInvalidGeometry, "case %d", i)
		assert.Zero(t, ctx.LiveBuffers())
		assert.Empty(t, ctx.Calls)
	}
}

func TestBufferFailureReleasesPartial(t *testing.T) {
	for at := 1; at <= 4; at++ {
		ctx := glfake.New()
		ctx.FailBufferAt = at
		g := triangle()
		g.TexCoords = []float32{0, 0, 1, 0, 0, 1}
		ms, err := New(ctx, g)
		assert.Nil(t, ms)
		assert.ErrorIs(t, err, glctx.ErrGPUResource)
		assert.Zero(t, ctx.LiveBuffers(), "failing buffer %d", at)
		for _, m := range ctx.Deleted {
			for h, n := range m {
				assert.Equal(t, 1, n, "handle %d deleted %d times", h, n)
			}
		}
	}
}

func TestVertexArrayFailureReleasesBuffers(t *testing.T) {
	ctx := glfake.New()
	ctx.FailVertexArray = true
	_, err := New(ctx, triangle())
	assert.ErrorIs(t, err, glctx.ErrGPUResource)
	assert.Zero(t, ctx.LiveBuffers())
	assert.Zero(t, ctx.LiveVertexArrays())
}

func TestRender(t *testing.T) {
	ctx := glfake.New()
	ms, err := NewFromShape(ctx, shape.NewTorus(0.7, 0.3, 4, 4))
	require.NoError(t, err)
	ctx.UseProgram(7)
	ms.Render()
	require.Len(t, ctx.Draws, 1)
	assert.Equal(t, glfake.Draw{VertexArray: ms.VertexArray(), Program: 7, Count: 96}, ctx.Draws[0])
	// meshes never bind programs themselves
	assert.Equal(t, glctx.Program(7), ctx.CurrentProgram)
}

func TestNewAfterRenderKeepsElements(t *testing.T) {
	ctx := glfake.New()
	a, err := New(ctx, triangle())
	require.NoError(t, err)
	want := ctx.ElementBuffer(a.VertexArray())
	a.Render()

	b, err := NewFromShape(ctx, shape.NewTorus(0.7, 0.3, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, want, ctx.ElementBuffer(a.VertexArray()))
	assert.Equal(t, b.Buffers()[0], ctx.ElementBuffer(b.VertexArray()))
	assert.NotEqual(t, want, b.Buffers()[0])
}

func TestReleaseIdempotent(t *testing.T) {
	ctx := glfake.New()
	ms, err := New(ctx, triangle())
	require.NoError(t, err)
	bufs := append([]glctx.Buffer(nil), ms.Buffers()...)
	va := ms.VertexArray()

	ms.Release()
	ms.Release()
	assert.Zero(t, ctx.LiveBuffers())
	assert.Zero(t, ctx.LiveVertexArrays())
	for _, b := range bufs {
		assert.Equal(t, 1, ctx.DeleteCount("buffer", uint32(b)))
	}
	assert.Equal(t, 1, ctx.DeleteCount("vertexArray", uint32(va)))

	ms.Render()
	assert.Empty(t, ctx.Draws)
}

func TestNewFromShapeInvalid(t *testing.T) {
	ctx := glfake.New()
	_, err := NewFromShape(ctx, shape.NewTorus(0.7, 0.3, 1, 4))
	assert.ErrorIs(t, err, shape.ErrInvalidShape)
	assert.Zero(t, ctx.LiveBuffers())
}
