// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh owns the GPU side of a fixed indexed triangle mesh:
// one buffer per vertex attribute plus the index buffer, and a vertex
// array wiring them to the standard attribute slots.
package mesh

import (
	"fmt"
	"log/slog"
	"unsafe"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/glsandbox/glctx"
	"cogentcore.org/glsandbox/shape"
)

// Attribute slots used by every mesh. Vertex shaders declare their
// inputs with these locations.
const (
	PositionSlot uint32 = 0
	NormalSlot   uint32 = 1
	TexCoordSlot uint32 = 2
	TangentSlot  uint32 = 3
)

// ErrInvalidGeometry is returned when mesh arrays are inconsistent.
var ErrInvalidGeometry = errors.New("mesh: invalid geometry")

// Drawable is anything that can issue its own draw calls with
// the currently bound program.
type Drawable interface {
	Render()
}

// Geometry is the input of [New]: flat arrays with a fixed stride per
// vertex. TexCoords and Tangents are optional (nil when absent).
type Geometry struct {
	Indices []uint32

	// 3 floats per vertex
	Positions []float32

	// 3 floats per vertex
	Normals []float32

	// 2 floats per vertex, optional
	TexCoords []float32

	// 4 floats per vertex, optional
	Tangents []float32
}

// VertexCount returns the number of vertices described by Positions.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Validate returns an error wrapping [ErrInvalidGeometry] if the arrays
// do not describe the same set of vertices, or if an index is out of range.
func (g *Geometry) Validate() error {
	nv := g.VertexCount()
	switch {
	case len(g.Indices) == 0:
		return fmt.Errorf("no indices: %w", ErrInvalidGeometry)
	case len(g.Positions)%3 != 0:
		return fmt.Errorf("%d position floats is not a multiple of 3: %w", len(g.Positions), ErrInvalidGeometry)
	case len(g.Normals) != 3*nv:
		return fmt.Errorf("%d normal floats for %d vertices: %w", len(g.Normals), nv, ErrInvalidGeometry)
	case len(g.TexCoords) != 0 && len(g.TexCoords) != 2*nv:
		return fmt.Errorf("%d texcoord floats for %d vertices: %w", len(g.TexCoords), nv, ErrInvalidGeometry)
	case len(g.Tangents) != 0 && len(g.Tangents) != 4*nv:
		return fmt.Errorf("%d tangent floats for %d vertices: %w", len(g.Tangents), nv, ErrInvalidGeometry)
	}
	for i, ix := range g.Indices {
		if int(ix) >= nv {
			return fmt.Errorf("index %d at %d is out of range for %d vertices: %w", ix, i, nv, ErrInvalidGeometry)
		}
	}
	return nil
}

// Mesh is an uploaded triangle mesh. It exclusively owns its buffers
// and vertex array and releases them together in [Mesh.Release].
type Mesh struct {
	ctx         glctx.Context
	count       int32
	vertexArray glctx.VertexArray
	buffers     []glctx.Buffer
	released    bool
}

var _ Drawable = (*Mesh)(nil)

// New validates g and uploads it: buffers are created in the order
// index, position, normal, texcoord, tangent, followed by the vertex
// array. If any creation fails, everything created so far is released
// and the error wraps [glctx.ErrGPUResource].
func New(ctx glctx.Context, g Geometry) (*Mesh, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	ms := &Mesh{ctx: ctx, count: int32(len(g.Indices))}

	// the element array binding is vertex array state
	ctx.BindVertexArray(0)
	index, err := ms.newBuffer(glctx.ElementArrayBuffer, bytesOf(g.Indices))
	if err != nil {
		return nil, err
	}
	type attrib struct {
		slot uint32
		size int32
		data []float32
		buf  glctx.Buffer
	}
	attribs := []*attrib{
		{slot: PositionSlot, size: 3, data: g.Positions},
		{slot: NormalSlot, size: 3, data: g.Normals},
		{slot: TexCoordSlot, size: 2, data: g.TexCoords},
		{slot: TangentSlot, size: 4, data: g.Tangents},
	}
	for _, a := range attribs {
		if len(a.data) == 0 {
			continue
		}
		if a.buf, err = ms.newBuffer(glctx.ArrayBuffer, bytesOf(a.data)); err != nil {
			return nil, err
		}
	}

	va, err := ctx.CreateVertexArray()
	if err != nil {
		ms.Release()
		return nil, fmt.Errorf("mesh.New: vertex array: %w", err)
	}
	ms.vertexArray = va
	ctx.BindVertexArray(va)
	ctx.BindBuffer(glctx.ElementArrayBuffer, index)
	for _, a := range attribs {
		if a.buf == 0 {
			continue
		}
		ctx.BindBuffer(glctx.ArrayBuffer, a.buf)
		ctx.VertexAttribPointer(a.slot, a.size, glctx.Float, false, 0, 0)
		ctx.EnableVertexAttribArray(a.slot)
	}
	ctx.BindVertexArray(0)
	return ms, nil
}

// NewFromShape generates the geometry of sh and uploads it with [New].
func NewFromShape(ctx glctx.Context, sh shape.Shape) (*Mesh, error) {
	a, err := shape.NewArrays(sh)
	if err != nil {
		return nil, err
	}
	return New(ctx, Geometry{Indices: a.Index, Positions: a.Vertex, Normals: a.Normal, TexCoords: a.TexCoord})
}

// newBuffer creates, binds and fills one buffer. On failure it releases
// the whole mesh built so far.
func (ms *Mesh) newBuffer(target glctx.Enum, data []byte) (glctx.Buffer, error) {
	b, err := ms.ctx.CreateBuffer()
	if err != nil {
		ms.Release()
		return 0, fmt.Errorf("mesh.New: buffer %d: %w", len(ms.buffers), err)
	}
	ms.buffers = append(ms.buffers, b)
	ms.ctx.BindBuffer(target, b)
	ms.ctx.BufferData(target, data, glctx.StaticDraw)
	return b, nil
}

// bytesOf returns the bytes of a slice of 4 byte values, without copying.
func bytesOf[T float32 | uint32](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}

// Count returns the number of indices drawn by Render.
func (ms *Mesh) Count() int {
	return int(ms.count)
}

// VertexArray returns the vertex array handle (0 after Release).
func (ms *Mesh) VertexArray() glctx.VertexArray {
	return ms.vertexArray
}

// Buffers returns the owned buffer handles, index buffer first.
func (ms *Mesh) Buffers() []glctx.Buffer {
	return ms.buffers
}

// Render binds the vertex array and draws all indices as triangles.
// The caller must have bound the program to use.
func (ms *Mesh) Render() {
	if ms.released {
		slog.Debug("mesh.Render: mesh has been released")
		return
	}
	ms.ctx.BindVertexArray(ms.vertexArray)
	ms.ctx.DrawElements(glctx.Triangles, ms.count, glctx.UnsignedInt, 0)
}

// Release deletes the GPU resources owned by the mesh. Calling it
// again has no effect.
func (ms *Mesh) Release() {
	if ms.released {
		return
	}
	ms.released = true
	for _, b := range ms.buffers {
		ms.ctx.DeleteBuffer(b)
	}
	ms.buffers = nil
	if ms.vertexArray != 0 {
		ms.ctx.DeleteVertexArray(ms.vertexArray)
		ms.vertexArray = 0
	}
}
