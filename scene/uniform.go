// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"math"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/glsandbox/shader"
)

// ErrBadUniform is returned for a uniform whose type is unknown or whose
// value does not fit its type.
var ErrBadUniform = errors.New("scene: bad uniform value")

// Uniform is a uniform value as written in a scene file: a GLSL type
// keyword and a number, boolean or flat array of numbers.
// Matrices are given in column major order.
type Uniform struct {
	Type string `toml:"type"`
	Raw  any    `toml:"value"`
}

// Value returns the typed value of u.
func (u Uniform) Value() (shader.Value, error) {
	switch u.Type {
	case "float":
		f, err := u.scalar()
		if err != nil {
			return nil, err
		}
		return shader.Float32(f), nil
	case "double":
		f, err := u.scalar()
		if err != nil {
			return nil, err
		}
		return shader.Float64(f), nil
	case "int":
		f, err := u.scalar()
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %v is not an int", ErrBadUniform, f)
		}
		return shader.Int32(f), nil
	case "uint":
		f, err := u.scalar()
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) || f < 0 || f > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %v is not a uint", ErrBadUniform, f)
		}
		return shader.Uint32(f), nil
	case "bool":
		b, ok := u.Raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: bool value %v", ErrBadUniform, u.Raw)
		}
		return shader.Bool(b), nil
	}
	if n, ok := vectorSizes[u.Type]; ok {
		fs, err := u.floats(n)
		if err != nil {
			return nil, err
		}
		switch n {
		case 2:
			return shader.Vec2(fs), nil
		case 3:
			return shader.Vec3(fs), nil
		}
		return shader.Vec4(fs), nil
	}
	if n, ok := matrixSizes[u.Type]; ok {
		fs, err := u.floats(n * n)
		if err != nil {
			return nil, err
		}
		switch n {
		case 2:
			return shader.Mat2(fs), nil
		case 3:
			return shader.Mat3(fs), nil
		}
		return shader.Mat4(fs), nil
	}
	return nil, fmt.Errorf("%w: unknown type %q", ErrBadUniform, u.Type)
}

var (
	vectorSizes = map[string]int{"vec2": 2, "vec3": 3, "vec4": 4}
	matrixSizes = map[string]int{"mat2": 2, "mat3": 3, "mat4": 4}
)

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

func (u Uniform) scalar() (float64, error) {
	f, ok := number(u.Raw)
	if !ok {
		return 0, fmt.Errorf("%w: %s value %v is not a number", ErrBadUniform, u.Type, u.Raw)
	}
	return f, nil
}

// floats returns the n elements of an array value.
func (u Uniform) floats(n int) ([]float32, error) {
	arr, ok := u.Raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s value %v is not an array", ErrBadUniform, u.Type, u.Raw)
	}
	if len(arr) != n {
		return nil, fmt.Errorf("%w: %s needs %d elements, got %d", ErrBadUniform, u.Type, n, len(arr))
	}
	fs := make([]float32, n)
	for i, e := range arr {
		f, ok := number(e)
		if !ok {
			return nil, fmt.Errorf("%w: %s element %d (%v) is not a number", ErrBadUniform, u.Type, i, e)
		}
		fs[i] = float32(f)
	}
	return fs, nil
}
