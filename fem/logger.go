// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	goio "io"
	"log/slog"
)

// NewLogger returns a logger writing to w
//  level  -- debug, info, warn or error; anything else => info
//  format -- json or text; anything else => text
func NewLogger(level, format string, w goio.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// discard returns a logger that drops all records
func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(goio.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
