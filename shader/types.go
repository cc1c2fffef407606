// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"fmt"
	"strings"

	"cogentcore.org/glsandbox/glctx"
)

// Types is the type of a shader stage.
type Types int32

const (
	Vertex Types = iota
	Fragment
	Geometry
	TessControl
	TessEvaluation
	Compute

	TypesN
)

var typesNames = [TypesN]string{"vertex", "fragment", "geometry", "tess-control", "tess-evaluation", "compute"}

var glShaders = [TypesN]glctx.Enum{
	Vertex:         glctx.VertexShader,
	Fragment:       glctx.FragmentShader,
	Geometry:       glctx.GeometryShader,
	TessControl:    glctx.TessControlShader,
	TessEvaluation: glctx.TessEvaluationShader,
	Compute:        glctx.ComputeShader,
}

// String returns the lower-case, hyphenated name of the stage type.
func (t Types) String() string {
	if t < 0 || t >= TypesN {
		return fmt.Sprintf("Types(%d)", int32(t))
	}
	return typesNames[t]
}

// GLType returns the GL shader type constant of the stage type.
func (t Types) GLType() glctx.Enum {
	if t < 0 || t >= TypesN {
		return 0
	}
	return glShaders[t]
}

// ParseTypes returns the stage type for the given name, as returned by
// [Types.String]; matching is case insensitive and also accepts the
// usual file suffixes (vert, frag, geom, tesc, tese, comp).
func ParseTypes(s string) (Types, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, nm := range typesNames {
		if s == nm {
			return Types(i), nil
		}
	}
	switch s {
	case "vert", "vs":
		return Vertex, nil
	case "frag", "fs":
		return Fragment, nil
	case "geom", "gs":
		return Geometry, nil
	case "tesc":
		return TessControl, nil
	case "tese":
		return TessEvaluation, nil
	case "comp", "cs":
		return Compute, nil
	}
	return 0, fmt.Errorf("shader: unknown stage type %q", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (t Types) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *Types) UnmarshalText(text []byte) error {
	v, err := ParseTypes(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

var keywords = map[glctx.Enum]string{
	glctx.Float:        "float",
	glctx.FloatVec2:    "vec2",
	glctx.FloatVec3:    "vec3",
	glctx.FloatVec4:    "vec4",
	glctx.Double:       "double",
	glctx.DoubleVec2:   "dvec2",
	glctx.DoubleVec3:   "dvec3",
	glctx.DoubleVec4:   "dvec4",
	glctx.Int:          "int",
	glctx.IntVec2:      "ivec2",
	glctx.IntVec3:      "ivec3",
	glctx.IntVec4:      "ivec4",
	glctx.UnsignedInt:  "uint",
	glctx.UnsignedVec2: "uvec2",
	glctx.UnsignedVec3: "uvec3",
	glctx.UnsignedVec4: "uvec4",
	glctx.Bool:         "bool",
	glctx.BoolVec2:     "bvec2",
	glctx.BoolVec3:     "bvec3",
	glctx.BoolVec4:     "bvec4",
	glctx.FloatMat2:    "mat2",
	glctx.FloatMat3:    "mat3",
	glctx.FloatMat4:    "mat4",
	glctx.DoubleMat2:   "dmat2",
	glctx.DoubleMat3:   "dmat3",
	glctx.DoubleMat4:   "dmat4",
	glctx.Sampler2D:    "sampler2D",
	glctx.SamplerCube:  "samplerCube",
}

// TypeKeyword returns the GLSL keyword for a GL data type constant,
// for logging and code generation. Unknown types return "?".
func TypeKeyword(typ glctx.Enum) string {
	if kw, ok := keywords[typ]; ok {
		return kw
	}
	return "?"
}
