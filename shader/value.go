// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"cogentcore.org/glsandbox/glctx"
	"github.com/go-gl/mathgl/mgl32"
)

// Value is one typed uniform value. The set of implementations is
// closed: Float32, Float64, Int32, Uint32, Bool, Vec2, Vec3, Vec4,
// Mat2, Mat3 and Mat4. Matrices are column major, as in mgl32.
type Value interface {
	// GLType returns the GL type constant of the GLSL type this
	// value is uploaded as.
	GLType() glctx.Enum

	isValue()
}

type (
	// Float32 is a GLSL float.
	Float32 float32

	// Float64 is a GLSL double.
	Float64 float64

	// Int32 is a GLSL int.
	Int32 int32

	// Uint32 is a GLSL uint.
	Uint32 uint32

	// Bool is a GLSL bool.
	Bool bool

	// Vec2 is a GLSL vec2.
	Vec2 mgl32.Vec2

	// Vec3 is a GLSL vec3.
	Vec3 mgl32.Vec3

	// Vec4 is a GLSL vec4.
	Vec4 mgl32.Vec4

	// Mat2 is a GLSL mat2.
	Mat2 mgl32.Mat2

	// Mat3 is a GLSL mat3.
	Mat3 mgl32.Mat3

	// Mat4 is a GLSL mat4.
	Mat4 mgl32.Mat4
)

func (Float32) GLType() glctx.Enum { return glctx.Float }
func (Float64) GLType() glctx.Enum { return glctx.Double }
func (Int32) GLType() glctx.Enum   { return glctx.Int }
func (Uint32) GLType() glctx.Enum  { return glctx.UnsignedInt }
func (Bool) GLType() glctx.Enum    { return glctx.Bool }
func (Vec2) GLType() glctx.Enum    { return glctx.FloatVec2 }
func (Vec3) GLType() glctx.Enum    { return glctx.FloatVec3 }
func (Vec4) GLType() glctx.Enum    { return glctx.FloatVec4 }
func (Mat2) GLType() glctx.Enum    { return glctx.FloatMat2 }
func (Mat3) GLType() glctx.Enum    { return glctx.FloatMat3 }
func (Mat4) GLType() glctx.Enum    { return glctx.FloatMat4 }

func (Float32) isValue() {}
func (Float64) isValue() {}
func (Int32) isValue()   {}
func (Uint32) isValue()  {}
func (Bool) isValue()    {}
func (Vec2) isValue()    {}
func (Vec3) isValue()    {}
func (Vec4) isValue()    {}
func (Mat2) isValue()    {}
func (Mat3) isValue()    {}
func (Mat4) isValue()    {}

// Compatible reports whether v may be uploaded to a uniform declared
// with the given GL type. No conversion between value types is done;
// the only extra case is an Int32 texture unit for a sampler.
// A declared type of 0 (unknown) accepts any value.
func Compatible(declared glctx.Enum, v Value) bool {
	if declared == 0 || declared == v.GLType() {
		return true
	}
	switch declared {
	case glctx.Sampler2D, glctx.SamplerCube:
		_, ok := v.(Int32)
		return ok
	}
	return false
}
