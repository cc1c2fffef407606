// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up structured logging for the sandbox: the user
// verbosity level and a text handler with colored level labels.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity level that the user has selected for
// what logging messages should be shown. Messages at levels at or
// above this level will be shown. It defaults to [slog.LevelInfo],
// [slog.LevelDebug] in debug builds and [slog.LevelWarn] in release builds.
var UserLevel = defaultUserLevel

// LevelFromFlags returns the level corresponding to the given user
// flag options:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [UserLevel])
//
// The flags are evaluated in that order.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return UserLevel
	}
}

// ParseLevel returns the level for a name such as "debug" or "WARN";
// the empty string is [UserLevel].
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return UserLevel, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return UserLevel, fmt.Errorf("logx: %w", err)
	}
	return l, nil
}

// NewHandler returns a text handler writing to w at the given level.
// Level labels are colored when w is a terminal that supports it, and
// the time attribute is omitted.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(LevelString(out, l))
				}
			}
			return a
		},
	})
}

// LevelString returns the label of l styled for out.
func LevelString(out *termenv.Output, l slog.Level) string {
	st := out.String(l.String())
	switch {
	case l >= slog.LevelError:
		st = st.Foreground(out.Color("1")).Bold()
	case l >= slog.LevelWarn:
		st = st.Foreground(out.Color("3"))
	case l >= slog.LevelInfo:
		st = st.Foreground(out.Color("4"))
	default:
		st = st.Foreground(out.Color("8"))
	}
	return st.String()
}

// Init sets [UserLevel] to level and installs a [NewHandler] on
// standard error as the default slog logger.
func Init(level slog.Level) {
	UserLevel = level
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level)))
}
