// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

// Package window opens a glfw window with an OpenGL 4.3 core context
// and runs the event and draw loop on the main thread.
package window

import (
	"fmt"
	"log/slog"
	"runtime"

	"cogentcore.org/core/base/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw and the GL context must stay on the main thread
	runtime.LockOSThread()
}

// Options configures a new Window.
type Options struct {
	Width, Height int
	Title         string

	// VSync synchronizes buffer swaps with the display refresh.
	VSync bool

	// Debug requests a debug context, so that debug output messages
	// are delivered.
	Debug bool
}

// Key is a key relevant to the sandbox.
type Key int32

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

var keys = map[glfw.Key]Key{
	glfw.KeyUp:     KeyUp,
	glfw.KeyDown:   KeyDown,
	glfw.KeyLeft:   KeyLeft,
	glfw.KeyRight:  KeyRight,
	glfw.KeyEscape: KeyEscape,
}

// Window is a glfw window whose GL context is current on the main thread.
type Window struct {
	win      *glfw.Window
	onKey    func(Key)
	onResize func(width, height int)
}

// New initializes glfw and opens a window. It must be called on the
// main thread, and the window must be closed with [Window.Terminate].
func New(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Log(fmt.Errorf("window.New: glfw init: %w", err))
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if opts.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Log(fmt.Errorf("window.New: %w", err))
	}
	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{win: win}
	win.SetKeyCallback(func(gw *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		k := keys[key]
		if k == KeyEscape {
			gw.SetShouldClose(true)
		}
		if w.onKey != nil {
			w.onKey(k)
		}
	})
	win.SetFramebufferSizeCallback(func(gw *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	slog.Debug("window.New", "width", opts.Width, "height", opts.Height, "title", opts.Title)
	return w, nil
}

// OnKey sets the function called for every key press and repeat.
// Escape also closes the window.
func (w *Window) OnKey(fun func(Key)) {
	w.onKey = fun
}

// OnResize sets the function called with the new framebuffer size.
func (w *Window) OnResize(fun func(width, height int)) {
	w.onResize = fun
}

// FramebufferSize returns the size of the framebuffer in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

// Run calls frame once per iteration until the window is closed,
// polling events before each frame and swapping buffers after it.
func (w *Window) Run(frame func()) {
	for !w.win.ShouldClose() {
		glfw.PollEvents()
		frame()
		w.win.SwapBuffers()
	}
}

// Close requests the window to close at the end of the current frame.
func (w *Window) Close() {
	w.win.SetShouldClose(true)
}

// Terminate destroys the window and shuts down glfw.
func (w *Window) Terminate() {
	w.win.Destroy()
	glfw.Terminate()
}
