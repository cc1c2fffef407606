// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sandbox

import (
	"log/slog"

	"cogentcore.org/glsandbox/glctx"
	"cogentcore.org/glsandbox/shader"
)

// BuildProgram returns a new linked program with the named stages of mgr
// attached in order. On failure nothing is left allocated.
func BuildProgram(ctx glctx.Context, mgr *shader.Manager, logger *slog.Logger, stages ...string) (*shader.Program, error) {
	pr, err := shader.NewProgram(ctx, mgr)
	if err != nil {
		return nil, err
	}
	pr.Name = "scene"
	pr.Logger = logger
	for _, nm := range stages {
		if err := pr.Attach(nm); err != nil {
			pr.Release()
			return nil, err
		}
	}
	if err := pr.Link(); err != nil {
		pr.Release()
		return nil, err
	}
	return pr, nil
}
