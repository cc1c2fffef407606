// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glinfo reads the identification and capability metadata of an
// OpenGL context and checks it against a minimum version.
package glinfo

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/glsandbox/glctx"
	"github.com/Masterminds/semver/v3"
)

// MinVersion is the lowest OpenGL version the sandbox runs on:
// debug output and explicit uniform locations are core in 4.3.
var MinVersion = semver.MustParse("4.3.0")

// ErrVersionTooLow is returned by [Info.Check].
var ErrVersionTooLow = errors.New("glinfo: OpenGL version too low")

var (
	osExit = os.Exit

	// exit is called by AssertMinimumVersion; replaced in tests.
	exit = osExit
)

// Info is the metadata of a context, read once at startup.
type Info struct {
	Vendor   string
	Renderer string

	// VersionString is the full driver version string.
	VersionString string

	// GLSLVersion is the shading language version string.
	GLSLVersion string

	Major, Minor int

	// Version is Major.Minor.0.
	Version *semver.Version

	// Extensions is the sorted set of extension names.
	Extensions []string
}

// Query reads the metadata of ctx. Extensions are read by indexed
// enumeration, as required by core profiles.
func Query(ctx glctx.Context) *Info {
	in := &Info{
		Vendor:        ctx.GetString(glctx.Vendor),
		Renderer:      ctx.GetString(glctx.Renderer),
		VersionString: ctx.GetString(glctx.Version),
		GLSLVersion:   ctx.GetString(glctx.ShadingLanguageVersion),
		Major:         int(ctx.GetInteger(glctx.MajorVersion)),
		Minor:         int(ctx.GetInteger(glctx.MinorVersion)),
	}
	in.Version = semver.New(uint64(max(in.Major, 0)), uint64(max(in.Minor, 0)), 0, "", "")
	n := ctx.GetInteger(glctx.NumExtensions)
	for i := range n {
		if ext := ctx.GetStringi(glctx.Extensions, uint32(i)); ext != "" {
			in.Extensions = append(in.Extensions, ext)
		}
	}
	slices.Sort(in.Extensions)
	in.Extensions = slices.Compact(in.Extensions)
	return in
}

// HasExtension returns whether the named extension is supported.
func (in *Info) HasExtension(name string) bool {
	_, found := slices.BinarySearch(in.Extensions, name)
	return found
}

// String returns the summary printed at startup.
func (in *Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[OpenGL] Version: %s\n", in.VersionString)
	fmt.Fprintf(&b, "[OpenGL] Vendor: %s\n", in.Vendor)
	fmt.Fprintf(&b, "[OpenGL] Renderer: %s\n", in.Renderer)
	fmt.Fprintf(&b, "[OpenGL] GLSL Version: %s\n", in.GLSLVersion)
	fmt.Fprintf(&b, "[OpenGL] %d extension(s) supported", len(in.Extensions))
	return b.String()
}

// Check returns an error wrapping [ErrVersionTooLow] if the context
// version is below required.
func (in *Info) Check(required *semver.Version) error {
	if in.Version.LessThan(required) {
		return fmt.Errorf("%w: application requires at least OpenGL v%s, have v%s", ErrVersionTooLow, required, in.Version)
	}
	return nil
}

// AssertMinimumVersion terminates the process with status 1 if the
// context version is below required.
func (in *Info) AssertMinimumVersion(required *semver.Version) {
	if err := in.Check(required); err != nil {
		slog.Error("glinfo", "err", err, "renderer", in.Renderer, "version", in.VersionString)
		exit(1)
	}
}
