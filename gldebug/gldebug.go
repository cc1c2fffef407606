// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gldebug routes OpenGL debug output messages to slog.
package gldebug

import (
	"context"
	"fmt"
	"log/slog"

	"cogentcore.org/glsandbox/glctx"
)

const unknown = "[UNKNOWN]"

var sources = map[glctx.Enum]string{
	glctx.DebugSourceAPI:            "[GL_DEBUG_SOURCE_API]",
	glctx.DebugSourceWindowSystem:   "[GL_DEBUG_SOURCE_WINDOW_SYSTEM]",
	glctx.DebugSourceShaderCompiler: "[GL_DEBUG_SOURCE_SHADER_COMPILER]",
	glctx.DebugSourceThirdParty:     "[GL_DEBUG_SOURCE_THIRD_PARTY]",
	glctx.DebugSourceApplication:    "[GL_DEBUG_SOURCE_APPLICATION]",
	glctx.DebugSourceOther:          "[GL_DEBUG_SOURCE_OTHER]",
}

var types = map[glctx.Enum]string{
	glctx.DebugTypeError:              "[GL_DEBUG_TYPE_ERROR]",
	glctx.DebugTypeDeprecatedBehavior: "[GL_DEBUG_TYPE_DEPRECATED_BEHAVIOR]",
	glctx.DebugTypeUndefinedBehavior:  "[GL_DEBUG_TYPE_UNDEFINED_BEHAVIOR]",
	glctx.DebugTypePortability:        "[GL_DEBUG_TYPE_PORTABILITY]",
	glctx.DebugTypePerformance:        "[GL_DEBUG_TYPE_PERFORMANCE]",
	glctx.DebugTypeMarker:             "[GL_DEBUG_TYPE_MARKER]",
	glctx.DebugTypePushGroup:          "[GL_DEBUG_TYPE_PUSH_GROUP]",
	glctx.DebugTypePopGroup:           "[GL_DEBUG_TYPE_POP_GROUP]",
	glctx.DebugTypeOther:              "[GL_DEBUG_TYPE_OTHER]",
}

// SourceLabel returns the bracketed label for a debug message source.
func SourceLabel(source glctx.Enum) string {
	if s, ok := sources[source]; ok {
		return s
	}
	return unknown
}

// TypeLabel returns the bracketed label for a debug message type.
func TypeLabel(typ glctx.Enum) string {
	if s, ok := types[typ]; ok {
		return s
	}
	return unknown
}

// Level returns the log level for a debug message severity.
func Level(severity glctx.Enum) slog.Level {
	switch severity {
	case glctx.DebugSeverityHigh:
		return slog.LevelError
	case glctx.DebugSeverityMedium:
		return slog.LevelWarn
	case glctx.DebugSeverityLow:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// Format returns the log line for msg: "#<id> <source> <type> <text>".
func Format(msg glctx.DebugMessage) string {
	return fmt.Sprintf("#%d %s %s %s", msg.ID, SourceLabel(msg.Source), TypeLabel(msg.Type), msg.Text)
}

// Handle logs msg to logger, or slog.Default() if nil.
func Handle(logger *slog.Logger, msg glctx.DebugMessage) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), Level(msg.Severity), Format(msg))
}

// Install enables debug output on ctx and sends every message to logger.
func Install(ctx glctx.Context, logger *slog.Logger) {
	ctx.DebugMessageCallback(func(msg glctx.DebugMessage) {
		Handle(logger, msg)
	})
}
