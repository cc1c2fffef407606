// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sandbox holds the per-frame state of the sandbox: the camera,
// the model rotation, the current program and the drawables it renders.
package sandbox

import (
	"log/slog"
	"maps"

	"cogentcore.org/glsandbox/glctx"
	"cogentcore.org/glsandbox/mesh"
	"cogentcore.org/glsandbox/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera defaults.
var (
	Eye    = mgl32.Vec3{0, 0, 2}
	Center = mgl32.Vec3{0, 0, 0}
	Up     = mgl32.Vec3{0, 1, 0}

	FieldOfView float32 = 70 // degrees
	Near        float32 = 0.3
	Far         float32 = 100
)

// Names of the uniforms uploaded every frame.
const (
	ModelViewUniform = "model_view_matrix"
	NormalUniform    = "normal_matrix"
	MVPUniform       = "mvp"
)

// Sandbox renders its drawables with one program, one pass per frame.
type Sandbox struct {

	// Logger receives the sandbox's log records; slog.Default() if nil.
	Logger *slog.Logger

	// View is the camera view matrix.
	View mgl32.Mat4

	// Projection is the perspective projection matrix, updated by Resize.
	Projection mgl32.Mat4

	// AngleX and AngleY are the model rotation about the X and Y axes,
	// in degrees.
	AngleX, AngleY float32

	// ClearColor is the RGBA background color.
	ClearColor [4]float32

	ctx       glctx.Context
	program   *shader.Program
	drawables []mesh.Drawable
	uniforms  map[string]shader.Value
	width     int
	height    int
}

// New returns a new Sandbox drawing the given drawables with prog,
// for a 1024x768 viewport.
func New(ctx glctx.Context, prog *shader.Program, drawables ...mesh.Drawable) *Sandbox {
	sb := &Sandbox{
		ctx:        ctx,
		program:    prog,
		drawables:  drawables,
		uniforms:   map[string]shader.Value{},
		View:       mgl32.LookAtV(Eye, Center, Up),
		ClearColor: [4]float32{0, 0, 0, 1},
	}
	sb.setProjection(1024, 768)
	return sb
}

func (sb *Sandbox) logger() *slog.Logger {
	if sb.Logger != nil {
		return sb.Logger
	}
	return slog.Default()
}

// Init sets the GL state used by every frame: depth testing and
// the clear color.
func (sb *Sandbox) Init() {
	sb.ctx.Enable(glctx.DepthTest)
	c := sb.ClearColor
	sb.ctx.ClearColor(c[0], c[1], c[2], c[3])
}

// Program returns the current program.
func (sb *Sandbox) Program() *shader.Program {
	return sb.program
}

// SetProgram makes prog the current program and uploads the static
// uniforms to it. The previous program, if any, is released.
func (sb *Sandbox) SetProgram(prog *shader.Program) error {
	if err := prog.Use(); err != nil {
		return err
	}
	old := sb.program
	sb.program = prog
	prog.SetUniforms(sb.uniforms)
	if old != nil && old != prog {
		old.Release()
	}
	return nil
}

// ApplyUniforms uploads vals to the current program and keeps them, so
// that they are uploaded again to any later program.
func (sb *Sandbox) ApplyUniforms(vals map[string]shader.Value) {
	maps.Copy(sb.uniforms, vals)
	if sb.program == nil {
		return
	}
	if err := sb.program.Use(); err != nil {
		sb.logger().Warn("sandbox.ApplyUniforms", "err", err)
		return
	}
	sb.program.SetUniforms(vals)
}

// RotateX rotates the model about the X axis by deg degrees.
func (sb *Sandbox) RotateX(deg float32) {
	sb.AngleX += deg
}

// RotateY rotates the model about the Y axis by deg degrees.
func (sb *Sandbox) RotateY(deg float32) {
	sb.AngleY += deg
}

// Size returns the viewport size.
func (sb *Sandbox) Size() (width, height int) {
	return sb.width, sb.height
}

// Resize sets the viewport and the projection aspect ratio.
// A zero size, as for a minimized window, is ignored.
func (sb *Sandbox) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	sb.ctx.Viewport(0, 0, int32(width), int32(height))
	sb.setProjection(width, height)
}

func (sb *Sandbox) setProjection(width, height int) {
	sb.width, sb.height = width, height
	sb.Projection = mgl32.Perspective(mgl32.DegToRad(FieldOfView), float32(width)/float32(height), Near, Far)
}

// Model returns the model matrix for the current rotation.
func (sb *Sandbox) Model() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(sb.AngleX)).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(sb.AngleY)))
}

// Frame draws one frame: it clears the color and depth buffers, uploads
// the transform uniforms and renders every drawable once.
func (sb *Sandbox) Frame() {
	sb.ctx.Clear(glctx.ColorBufferBit | glctx.DepthBufferBit)
	if sb.program == nil {
		return
	}
	if err := sb.program.Use(); err != nil {
		sb.logger().Warn("sandbox.Frame", "err", err)
		return
	}
	mv := sb.View.Mul4(sb.Model())
	sb.program.SetUniform(ModelViewUniform, shader.Mat4(mv))
	sb.program.SetUniform(NormalUniform, shader.Mat3(mv.Mat3()))
	sb.program.SetUniform(MVPUniform, shader.Mat4(sb.Projection.Mul4(mv)))
	for _, d := range sb.drawables {
		d.Render()
	}
}

// Release releases the current program. Drawables are owned by the caller.
func (sb *Sandbox) Release() {
	if sb.program != nil {
		sb.program.Release()
		sb.program = nil
	}
}
