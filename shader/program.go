// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"cogentcore.org/glsandbox/glctx"
)

// Uniform is one entry of a linked program's uniform table.
type Uniform struct {
	Name string

	// Location is [glctx.NoLocation] for uniforms optimized out.
	Location glctx.UniformLocation

	// Type is the declared GL type.
	Type glctx.Enum

	// Size is the array length, 1 for non-array uniforms.
	Size int
}

// Active describes one active attribute or uniform, for diagnostics.
type Active struct {
	Index int
	Type  string
	Name  string
}

// Program links stages borrowed from a [Manager] into an executable
// program and uploads uniform values to it. A Program starts Unlinked;
// the first successful [Program.Link] makes it Linked for the rest of
// its life.
type Program struct {

	// Name is used in log records and errors.
	Name string

	// Logger receives the program's warnings; slog.Default() if nil.
	// Uniform lookups that fail are reported here and never returned.
	Logger *slog.Logger

	ctx      glctx.Context
	mgr      *Manager
	handle   glctx.Program
	linked   bool
	released bool
	attached []glctx.Shader
	uniforms map[string]Uniform

	// fp64 caches double precision uniform support: 0 unknown, 1 yes, -1 no
	fp64 int8
}

// NewProgram creates a new program whose stages are looked up in mgr.
func NewProgram(ctx glctx.Context, mgr *Manager) (*Program, error) {
	handle, err := ctx.CreateProgram()
	if err != nil {
		return nil, fmt.Errorf("shader.NewProgram: %w", err)
	}
	return &Program{ctx: ctx, mgr: mgr, handle: handle, uniforms: map[string]Uniform{}}, nil
}

func (pr *Program) logger() *slog.Logger {
	if pr.Logger != nil {
		return pr.Logger
	}
	return slog.Default()
}

// Handle returns the GL program handle.
func (pr *Program) Handle() glctx.Program {
	return pr.handle
}

// IsLinked returns whether Link has succeeded.
func (pr *Program) IsLinked() bool {
	return pr.linked
}

// Attached returns the attached stage handles, in attach order.
func (pr *Program) Attached() []glctx.Shader {
	return slices.Clone(pr.attached)
}

// Attach attaches the stage registered under name in the Manager.
// An unknown name is reported as a warning and returned as an error
// wrapping [ErrUnknownShader]; the program is unchanged.
func (pr *Program) Attach(name string) error {
	sh, ok := pr.mgr.Get(name)
	if !ok {
		pr.logger().Warn("shader.Program Attach: shader not loaded", "program", pr.Name, "shader", name)
		return fmt.Errorf("shader.Program Attach %q: %w", name, ErrUnknownShader)
	}
	pr.ctx.AttachShader(pr.handle, sh)
	pr.attached = append(pr.attached, sh)
	return nil
}

// BindAttribLocation binds a vertex attribute name to a slot.
// It takes effect at the next link.
func (pr *Program) BindAttribLocation(index uint32, name string) {
	pr.ctx.BindAttribLocation(pr.handle, index, name)
}

// BindFragDataLocation binds a fragment output name to a color number.
// It takes effect at the next link.
func (pr *Program) BindFragDataLocation(color uint32, name string) {
	pr.ctx.BindFragDataLocation(pr.handle, color, name)
}

// Link links the attached stages and builds the uniform table.
// Once linked, further calls return nil without relinking.
// On failure the program stays Unlinked and the returned *LinkError
// carries the driver log; attachments can be fixed and Link retried.
// A released program can not be linked again.
func (pr *Program) Link() error {
	if pr.released {
		return fmt.Errorf("shader.Program Link %q: program has been released: %w", pr.Name, ErrNotLinked)
	}
	if pr.linked {
		return nil
	}
	pr.ctx.LinkProgram(pr.handle)
	if !pr.ctx.ProgramLinkStatus(pr.handle) {
		err := &LinkError{Program: pr.Name, InfoLog: pr.ctx.ProgramInfoLog(pr.handle)}
		pr.logger().Error("shader.Program Link: link failed", "program", pr.Name, "log", err.InfoLog)
		return err
	}

	pr.uniforms = map[string]Uniform{}
	n := pr.ctx.ActiveUniformCount(pr.handle)
	for i := range n {
		info, ok := pr.ctx.ActiveUniform(pr.handle, i)
		if !ok {
			continue
		}
		u := Uniform{Name: info.Name, Location: pr.ctx.UniformLocation(pr.handle, info.Name), Type: info.Type, Size: info.Size}
		pr.uniforms[info.Name] = u
		if base, isArray := strings.CutSuffix(info.Name, "[0]"); isArray {
			u.Name = base
			pr.uniforms[base] = u
		}
	}
	pr.linked = true
	return nil
}

// Use makes the program current. It returns [ErrNotLinked] if the
// program has not been linked.
func (pr *Program) Use() error {
	if !pr.linked || pr.released {
		return fmt.Errorf("shader.Program Use %q: %w", pr.Name, ErrNotLinked)
	}
	pr.ctx.UseProgram(pr.handle)
	return nil
}

// Uniform returns the uniform table entry for name.
func (pr *Program) Uniform(name string) (Uniform, bool) {
	u, ok := pr.uniforms[name]
	return u, ok
}

// Uniforms returns the sorted names in the uniform table.
func (pr *Program) Uniforms() []string {
	names := make([]string, 0, len(pr.uniforms))
	for nm := range pr.uniforms {
		names = append(names, nm)
	}
	slices.Sort(names)
	return names
}

// SetUniform uploads v to the named uniform of the program, which must
// be the one in use. A name that is not in the uniform table, or a
// value whose type does not match the declared type, is reported as a
// warning and ignored, so that shader edits never stop the draw loop.
func (pr *Program) SetUniform(name string, v Value) {
	if v == nil {
		pr.logger().Warn("shader.Program SetUniform: nil value", "program", pr.Name, "uniform", name)
		return
	}
	u, ok := pr.uniforms[name]
	if !ok {
		pr.logger().Warn("shader.Program SetUniform: no uniform with that name", "program", pr.Name, "uniform", name)
		return
	}
	if !Compatible(u.Type, v) {
		pr.logger().Warn("shader.Program SetUniform: type mismatch", "program", pr.Name, "uniform", name, "declared", TypeKeyword(u.Type), "value", TypeKeyword(v.GLType()))
		return
	}
	pr.upload(u.Location, v)
}

// SetUniforms calls SetUniform for every entry of vals, in name order.
func (pr *Program) SetUniforms(vals map[string]Value) {
	names := make([]string, 0, len(vals))
	for nm := range vals {
		names = append(names, nm)
	}
	slices.Sort(names)
	for _, nm := range names {
		pr.SetUniform(nm, vals[nm])
	}
}

// upload is the one place that maps a value type to its upload call.
func (pr *Program) upload(loc glctx.UniformLocation, v Value) {
	switch v := v.(type) {
	case Float32:
		pr.ctx.Uniform1f(loc, float32(v))
	case Float64:
		if !pr.supportsFloat64() {
			pr.logger().Warn("shader.Program SetUniform: your OpenGL version does not support f64 uniforms", "program", pr.Name, "value", float64(v))
			return
		}
		pr.ctx.Uniform1d(loc, float64(v))
	case Int32:
		pr.ctx.Uniform1i(loc, int32(v))
	case Uint32:
		pr.ctx.Uniform1ui(loc, uint32(v))
	case Bool:
		b := int32(0)
		if v {
			b = 1
		}
		pr.ctx.Uniform1i(loc, b)
	case Vec2:
		pr.ctx.Uniform2f(loc, v[0], v[1])
	case Vec3:
		pr.ctx.Uniform3f(loc, v[0], v[1], v[2])
	case Vec4:
		pr.ctx.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case Mat2:
		pr.ctx.UniformMatrix2fv(loc, false, v[:])
	case Mat3:
		pr.ctx.UniformMatrix3fv(loc, false, v[:])
	case Mat4:
		pr.ctx.UniformMatrix4fv(loc, false, v[:])
	default:
		panic(fmt.Sprintf("shader: unhandled uniform value type %T", v))
	}
}

// supportsFloat64 returns whether the context can upload double uniforms:
// core since OpenGL 4.0, or through GL_ARB_gpu_shader_fp64.
func (pr *Program) supportsFloat64() bool {
	if pr.fp64 == 0 {
		pr.fp64 = -1
		if pr.ctx.GetInteger(glctx.MajorVersion) >= 4 || glctx.HasExtension(pr.ctx, "GL_ARB_gpu_shader_fp64") {
			pr.fp64 = 1
		}
	}
	return pr.fp64 > 0
}

// ActiveAttributes returns the active vertex attributes of the program.
func (pr *Program) ActiveAttributes() []Active {
	n := pr.ctx.ActiveAttributeCount(pr.handle)
	act := make([]Active, 0, n)
	for i := range n {
		if info, ok := pr.ctx.ActiveAttribute(pr.handle, i); ok {
			act = append(act, Active{Index: i, Type: TypeKeyword(info.Type), Name: info.Name})
		}
	}
	return act
}

// ActiveUniforms returns the active uniforms of the program.
func (pr *Program) ActiveUniforms() []Active {
	n := pr.ctx.ActiveUniformCount(pr.handle)
	act := make([]Active, 0, n)
	for i := range n {
		if info, ok := pr.ctx.ActiveUniform(pr.handle, i); ok {
			act = append(act, Active{Index: i, Type: TypeKeyword(info.Type), Name: info.Name})
		}
	}
	return act
}

// LogActive writes the active attributes and uniforms at debug level.
func (pr *Program) LogActive() {
	lg := pr.logger()
	for _, a := range pr.ActiveAttributes() {
		lg.Debug(fmt.Sprintf("[ATTRIB] #%d %s %s", a.Index, a.Type, a.Name), "program", pr.Name)
	}
	for _, u := range pr.ActiveUniforms() {
		lg.Debug(fmt.Sprintf("[UNIFORM] #%d %s %s", u.Index, u.Type, u.Name), "program", pr.Name)
	}
}

// Release detaches every attached stage, without deleting it since the
// stages belong to the Manager, and then deletes the program.
// Calling it again has no effect.
func (pr *Program) Release() {
	if pr.released {
		return
	}
	pr.released = true
	for _, sh := range pr.attached {
		pr.ctx.DetachShader(pr.handle, sh)
	}
	pr.attached = nil
	pr.ctx.DeleteProgram(pr.handle)
	pr.linked = false
	pr.uniforms = map[string]Uniform{}
}
