// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

// Command glsandbox opens a window and draws a lit torus with hot
// reloadable GLSL shaders.
package main

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/cli"
	"cogentcore.org/glsandbox/gldebug"
	"cogentcore.org/glsandbox/glctx/native"
	"cogentcore.org/glsandbox/glinfo"
	"cogentcore.org/glsandbox/logx"
	"cogentcore.org/glsandbox/mesh"
	"cogentcore.org/glsandbox/sandbox"
	"cogentcore.org/glsandbox/scene"
	"cogentcore.org/glsandbox/shader"
	"cogentcore.org/glsandbox/window"
)

// Config is the configuration information for the glsandbox cli.
type Config struct {

	// Scene is the TOML scene file to draw.
	// The built in lit torus scene is used if it is empty.
	Scene string `posarg:"0" required:"-"`

	// Width is the initial window width.
	Width int `default:"1024"`

	// Height is the initial window height.
	Height int `default:"768"`

	// Title is the window title.
	Title string `default:"OpenGL Learning Sandbox"`

	// VSync synchronizes frames with the display refresh.
	VSync bool `default:"true"`

	// Debug requests a debug context and logs its debug output messages.
	Debug bool `default:"true"`

	// Watch reloads the shaders when their source files change.
	Watch bool `flag:"w,watch"`

	// Step is the rotation in degrees for each arrow key press.
	Step float32 `default:"1"`

	// LogLevel is the minimum level of the log messages shown:
	// debug, info, warn or error.
	LogLevel string `flag:"log-level" default:"info"`
}

func main() {
	opts := cli.DefaultOptions("glsandbox", "An OpenGL learning sandbox that draws a lit torus.")
	cli.Run(opts, &Config{}, &cli.Cmd[*Config]{Func: Run, Name: "run", Doc: "Run opens the window and draws the scene.", Root: true})
}

// Run opens the window and draws the scene until the window is closed.
func Run(c *Config) error {
	level, err := logx.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logx.Init(level)

	sc := scene.Default()
	if c.Scene != "" {
		sc, err = scene.Load(c.Scene)
		if err != nil {
			return err
		}
	}

	win, err := window.New(window.Options{Width: c.Width, Height: c.Height, Title: c.Title, VSync: c.VSync, Debug: c.Debug})
	if err != nil {
		return err
	}
	defer win.Terminate()

	ctx, err := native.New()
	if err != nil {
		return err
	}
	info := glinfo.Query(ctx)
	info.AssertMinimumVersion(glinfo.MinVersion)
	fmt.Println(info)
	if c.Debug {
		gldebug.Install(ctx, slog.Default())
	}

	torus, err := mesh.NewFromShape(ctx, sc.Torus.Shape())
	if err != nil {
		return err
	}
	defer torus.Release()

	mgr := shader.NewManager(ctx)
	defer mgr.Release()
	names := make([]string, len(sc.Shaders))
	for i, sh := range sc.Shaders {
		if err := mgr.Load(sh.Name, sc.ShaderPath(sh), sh.Stage); err != nil {
			return err
		}
		names[i] = sh.Name
	}
	prog, err := sandbox.BuildProgram(ctx, mgr, nil, names...)
	if err != nil {
		return err
	}
	prog.LogActive()

	sb := sandbox.New(ctx, prog, torus)
	defer sb.Release()
	sb.ClearColor = sc.ClearColor
	sb.Init()
	sb.Resize(win.FramebufferSize())
	vals, err := sc.Values()
	if err != nil {
		return err
	}
	sb.ApplyUniforms(vals)

	var rl *sandbox.Reloader
	if c.Watch {
		w, err := shader.NewWatcher(sc.ShaderPaths()...)
		if err != nil {
			return err
		}
		defer w.Close()
		rl = sandbox.NewReloader(ctx, sb, mgr, w, names...)
	}

	win.OnKey(func(k window.Key) {
		switch k {
		case window.KeyUp:
			sb.RotateX(-c.Step)
		case window.KeyDown:
			sb.RotateX(c.Step)
		case window.KeyLeft:
			sb.RotateY(-c.Step)
		case window.KeyRight:
			sb.RotateY(c.Step)
		}
	})
	win.OnResize(sb.Resize)
	win.Run(func() {
		if rl != nil {
			rl.Poll()
		}
		sb.Frame()
	})
	return nil
}
