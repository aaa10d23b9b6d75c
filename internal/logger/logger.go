// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the sync server and the device client.
// The server logs JSON to stdout; the client keeps stdout for command
// output and logs into a rotated file. Request and round scoped loggers
// travel in the context.
package logger

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	zerolog.Logger
}

// NewLogger returns the server logger: JSON on stdout with the role,
// a timestamp and the calling function on every entry. An empty or unknown
// level means debug.
func NewLogger(role, level string) *Logger {
	setGlobals(level)
	return newLogger(zerolog.New(os.Stdout), role)
}

// FileConfig describes the rotated log file of the client.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewClientLogger returns the device logger writing into a lumberjack file.
// An empty Path means "logs/client.log" next to the executable.
func NewClientLogger(role, level string, file FileConfig) *Logger {
	setGlobals(level)

	path := file.Path
	if path == "" {
		execPath, _ := os.Executable()
		path = filepath.Join(filepath.Dir(execPath), "logs", "client.log")
	}

	return newLogger(zerolog.New(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    file.MaxSizeMB,
		MaxBackups: file.MaxBackups,
		MaxAge:     file.MaxAgeDays,
		Compress:   true,
	}), role)
}

func newLogger(base zerolog.Logger, role string) *Logger {
	return &Logger{base.With().Str("role", role).Timestamp().Caller().Logger()}
}

func setGlobals(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// Nop discards everything. Tests use it.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger copies l so fields can be added without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger bound to the request by the trace id
// middleware, or a disabled one.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx, or a disabled one.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}
