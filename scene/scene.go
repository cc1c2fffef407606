// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene reads the TOML description of what the sandbox draws:
// the torus parameters, the shader stages and the static uniform values.
package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/glsandbox/shader"
	"cogentcore.org/glsandbox/shape"
	"github.com/pelletier/go-toml/v2"
)

// Scene is a parsed scene file.
type Scene struct {

	// Torus is the generated mesh.
	Torus Torus `toml:"torus"`

	// Shaders are the stages attached to the program, in order.
	Shaders []Shader `toml:"shaders"`

	// Uniforms are uploaded once after the program is linked,
	// and again after every reload.
	Uniforms map[string]Uniform `toml:"uniforms"`

	// ClearColor is the RGBA background color.
	ClearColor [4]float32 `toml:"clear_color"`

	// Dir is the directory relative shader paths are resolved against.
	Dir string `toml:"-"`
}

// Torus holds the torus generator parameters.
type Torus struct {
	OuterRadius float32 `toml:"outer_radius"`
	InnerRadius float32 `toml:"inner_radius"`
	Sides       int     `toml:"sides"`
	Rings       int     `toml:"rings"`
}

// Shape returns the torus shape for these parameters.
func (t Torus) Shape() *shape.Torus {
	return shape.NewTorus(t.OuterRadius, t.InnerRadius, t.Sides, t.Rings)
}

// Shader is one stage to load into the shader Manager.
type Shader struct {
	Name  string       `toml:"name"`
	Path  string       `toml:"path"`
	Stage shader.Types `toml:"stage"`
}

// Default returns the scene drawn when no scene file is given:
// a lit torus with the light shaders.
func Default() *Scene {
	return &Scene{
		Torus: Torus{OuterRadius: 0.7, InnerRadius: 0.3, Sides: 60, Rings: 60},
		Shaders: []Shader{
			{Name: "vertex", Path: "shaders/light/vertex.glsl", Stage: shader.Vertex},
			{Name: "fragment", Path: "shaders/light/fragment.glsl", Stage: shader.Fragment},
		},
		Uniforms: map[string]Uniform{
			"kd":             {Type: "vec3", Raw: []any{0.9, 0.5, 0.3}},
			"ld":             {Type: "vec3", Raw: []any{1.0, 1.0, 1.0}},
			"light_position": {Type: "vec4", Raw: []any{5.0, 5.0, 2.0, 1.0}},
		},
		ClearColor: [4]float32{0, 0, 0, 1},
		Dir:        ".",
	}
}

// Load reads and parses the scene file at path. Relative shader paths
// in the file are relative to its directory.
func Load(path string) (*Scene, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene.Load: %w", err)
	}
	sc, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("scene.Load %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	sc.Dir = dir
	return sc, nil
}

// Parse parses a scene. Torus parameters and the clear color that are
// not given take the values of [Default]; shaders are required.
func Parse(b []byte) (*Scene, error) {
	sc := &Scene{}
	if err := toml.Unmarshal(b, sc); err != nil {
		return nil, err
	}
	def := Default()
	if sc.Torus == (Torus{}) {
		sc.Torus = def.Torus
	}
	if sc.ClearColor == [4]float32{} {
		sc.ClearColor = def.ClearColor
	}
	sc.Dir = "."
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks the torus parameters, the shader list and the
// uniform values.
func (sc *Scene) Validate() error {
	var errs []error
	if err := sc.Torus.Shape().Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(sc.Shaders) == 0 {
		errs = append(errs, errors.New("scene: no shaders"))
	}
	var names []string
	for i, sh := range sc.Shaders {
		switch {
		case sh.Name == "":
			errs = append(errs, fmt.Errorf("scene: shader %d has no name", i))
		case sh.Path == "":
			errs = append(errs, fmt.Errorf("scene: shader %q has no path", sh.Name))
		case slices.Contains(names, sh.Name):
			errs = append(errs, fmt.Errorf("scene: duplicate shader name %q", sh.Name))
		}
		names = append(names, sh.Name)
	}
	if _, err := sc.Values(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ShaderPath returns the path of sh resolved against the scene directory.
func (sc *Scene) ShaderPath(sh Shader) string {
	if filepath.IsAbs(sh.Path) || sc.Dir == "" {
		return sh.Path
	}
	return filepath.Join(sc.Dir, sh.Path)
}

// ShaderPaths returns the resolved paths of all shaders.
func (sc *Scene) ShaderPaths() []string {
	paths := make([]string, len(sc.Shaders))
	for i, sh := range sc.Shaders {
		paths[i] = sc.ShaderPath(sh)
	}
	return paths
}

// Values converts all uniforms to typed values.
func (sc *Scene) Values() (map[string]shader.Value, error) {
	vals := make(map[string]shader.Value, len(sc.Uniforms))
	var errs []error
	for nm, u := range sc.Uniforms {
		v, err := u.Value()
		if err != nil {
			errs = append(errs, fmt.Errorf("uniform %q: %w", nm, err))
			continue
		}
		vals[nm] = v
	}
	return vals, errors.Join(errs...)
}
