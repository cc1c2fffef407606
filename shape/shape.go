// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape generates vertex, normal, texture coordinate and index data
// for parametric shapes. Generation is split in two steps: N reports the
// array sizes, and Set fills caller-allocated arrays, so several shapes can
// share one set of arrays at different offsets.
package shape

import (
	"cogentcore.org/core/base/errors"
)

// ErrInvalidShape is returned by Validate for unusable shape parameters.
var ErrInvalidShape = errors.New("shape: invalid parameters")

// Shape is a generator of indexed triangle geometry.
type Shape interface {
	// N returns number of vertex, index points in this shape element
	N() (numVertex, numIndex int)

	// Offsets returns starting offset for vertices, indexes in full
	// shape arrays, in terms of points, not floats.
	Offsets() (vertexOffset, indexOffset int)

	// SetOffsets sets starting offsets for vertices, indexes in full
	// shape arrays, in terms of points, not floats.
	SetOffsets(vertexOffset, indexOffset int)

	// Set sets points in given allocated arrays: 3 floats per vertex
	// for positions and normals, 2 per vertex for texture coordinates.
	Set(vertex, normal, texcoord []float32, index []uint32)

	// Validate returns an error wrapping [ErrInvalidShape] if the
	// parameters cannot produce a well formed mesh.
	Validate() error
}

// ShapeBase is the base shape element
type ShapeBase struct {

	// vertex offset, in points
	VertexOffset int

	// index offset, in points
	IndexOffset int
}

// Offsets returns starting offset for vertices, indexes in full shape array,
// in terms of points, not floats
func (sb *ShapeBase) Offsets() (vertexOffset, indexOffset int) {
	return sb.VertexOffset, sb.IndexOffset
}

// SetOffsets sets starting offsets for vertices, indexes in full shape array
func (sb *ShapeBase) SetOffsets(vertexOffset, indexOffset int) {
	sb.VertexOffset, sb.IndexOffset = vertexOffset, indexOffset
}

// Arrays holds freshly allocated geometry for one shape.
type Arrays struct {
	Vertex   []float32
	Normal   []float32
	TexCoord []float32
	Index    []uint32
}

// NewArrays validates sh, allocates arrays of the sizes reported by N
// and fills them with Set. Offsets are reset to zero.
func NewArrays(sh Shape) (*Arrays, error) {
	if err := sh.Validate(); err != nil {
		return nil, err
	}
	sh.SetOffsets(0, 0)
	nv, ni := sh.N()
	a := &Arrays{
		Vertex:   make([]float32, 3*nv),
		Normal:   make([]float32, 3*nv),
		TexCoord: make([]float32, 2*nv),
		Index:    make([]uint32, ni),
	}
	sh.Set(a.Vertex, a.Normal, a.TexCoord, a.Index)
	return a, nil
}
