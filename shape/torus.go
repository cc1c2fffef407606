// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Torus is a torus mesh, defined by the radius of the ring (from the
// center of the torus to the center of the tube) and the radius of
// the tube itself.
type Torus struct {
	ShapeBase

	// radius of the torus ring
	OuterRadius float32

	// radius of the solid tube
	InnerRadius float32

	// number of segments around the tube cross section
	Sides int

	// number of segments around the ring
	Rings int
}

// NewTorus returns a Torus mesh with the specified ring radius,
// tube radius, and number of sides and rings (resolution).
func NewTorus(outerRadius, innerRadius float32, sides, rings int) *Torus {
	return &Torus{OuterRadius: outerRadius, InnerRadius: innerRadius, Sides: sides, Rings: rings}
}

func (tr *Torus) N() (numVertex, numIndex int) {
	return TorusN(tr.Sides, tr.Rings)
}

func (tr *Torus) Validate() error {
	switch {
	case tr.Sides < 3 || tr.Rings < 3:
		return fmt.Errorf("torus needs at least 3 sides and rings, got %d sides and %d rings: %w", tr.Sides, tr.Rings, ErrInvalidShape)
	case tr.OuterRadius <= 0 || tr.InnerRadius <= 0:
		return fmt.Errorf("torus radii must be positive, got %g and %g: %w", tr.OuterRadius, tr.InnerRadius, ErrInvalidShape)
	case tr.InnerRadius >= tr.OuterRadius:
		return fmt.Errorf("torus tube radius %g must be smaller than ring radius %g: %w", tr.InnerRadius, tr.OuterRadius, ErrInvalidShape)
	}
	return nil
}

// Set sets points for torus in given allocated arrays
func (tr *Torus) Set(vertex, normal, texcoord []float32, index []uint32) {
	SetTorus(vertex, normal, texcoord, index, tr.VertexOffset, tr.IndexOffset, tr.OuterRadius, tr.InnerRadius, tr.Sides, tr.Rings)
}

// TorusN returns N's for a torus geometry with given number of
// sides and rings. The first ring is duplicated at the end so that
// the texture coordinate seam can wrap to 1.
func TorusN(sides, rings int) (numVertex, numIndex int) {
	numVertex = sides * (rings + 1)
	numIndex = 6 * sides * rings
	return
}

// SetTorus sets torus vertex, norm, tex, index data at given starting
// *vertex* index (i.e., multiply this *3 to get actual float offset in
// vertex array), and starting index index. Vertices are laid out ring
// by ring; each ring holds sides vertices. Normals are computed from the
// radial gradient and then normalized. Texture coordinates are the ring
// and side angles divided by 2π, so the duplicated ring has u == 1.
func SetTorus(vertex, normal, texcoord []float32, index []uint32, vtxOff, idxOff int, outerRadius, innerRadius float32, sides, rings int) {
	ringFactor := 2 * math32.Pi / float32(rings)
	sideFactor := 2 * math32.Pi / float32(sides)

	vidx := vtxOff * 3
	tidx := vtxOff * 2
	for ring := 0; ring <= rings; ring++ {
		// the duplicated last ring reuses the angle of ring 0 so that
		// positions and normals match exactly across the seam
		u := ringFactor * float32(ring%rings)
		cu, su := math32.Cos(u), math32.Sin(u)
		for side := 0; side < sides; side++ {
			v := sideFactor * float32(side)
			cv, sv := math32.Cos(v), math32.Sin(v)
			r := outerRadius + innerRadius*cv

			vertex[vidx] = r * cu
			vertex[vidx+1] = r * su
			vertex[vidx+2] = innerRadius * sv

			nx, ny, nz := cv*cu*r, cv*su*r, sv*r
			ln := math32.Sqrt(nx*nx + ny*ny + nz*nz)
			normal[vidx] = nx / ln
			normal[vidx+1] = ny / ln
			normal[vidx+2] = nz / ln

			texcoord[tidx] = float32(ring) / float32(rings)
			texcoord[tidx+1] = float32(side) / float32(sides)

			vidx += 3
			tidx += 2
		}
	}

	vOff := uint32(vtxOff)
	ii := idxOff
	for ring := 0; ring < rings; ring++ {
		ringStart := uint32(ring * sides)
		nextRingStart := uint32((ring + 1) * sides)
		for side := 0; side < sides; side++ {
			s := uint32(side)
			ns := uint32((side + 1) % sides)
			index[ii] = vOff + ringStart + s
			index[ii+1] = vOff + nextRingStart + s
			index[ii+2] = vOff + nextRingStart + ns
			index[ii+3] = vOff + ringStart + s
			index[ii+4] = vOff + nextRingStart + ns
			index[ii+5] = vOff + ringStart + ns
			ii += 6
		}
	}
}
