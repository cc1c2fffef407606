// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/base/errors"

// Group is a group of shapes that are generated into one set of arrays,
// so they can be uploaded and drawn as a single mesh.
type Group struct {
	ShapeBase

	// list of shapes in group
	Shapes []Shape
}

// N returns number of vertex, index points in this shape element.
func (gp *Group) N() (numVertex, numIndex int) {
	for _, sh := range gp.Shapes {
		nv, ni := sh.N()
		numVertex += nv
		numIndex += ni
	}
	return
}

// Validate validates every shape in the group.
func (gp *Group) Validate() error {
	if len(gp.Shapes) == 0 {
		return errors.Join(errors.New("empty shape group"), ErrInvalidShape)
	}
	var errs []error
	for _, sh := range gp.Shapes {
		errs = append(errs, sh.Validate())
	}
	return errors.Join(errs...)
}

// Set sets points in given allocated arrays, also updates offsets
func (gp *Group) Set(vertex, normal, texcoord []float32, index []uint32) {
	vo := gp.VertexOffset
	io := gp.IndexOffset
	for _, sh := range gp.Shapes {
		sh.SetOffsets(vo, io)
		sh.Set(vertex, normal, texcoord, index)
		nv, ni := sh.N()
		vo += nv
		io += ni
	}
}
