// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/matt-FFFFFF/pushd/internal/color"
)

// LogLevelEnvVar is the environment variable read at start up to set LevelVar.
// It accepts DEBUG, INFO, WARN or ERROR; anything else means WARN.
const LogLevelEnvVar = "PUSHD_LOG_LEVEL"

type loggerKey struct{}

// LevelVar is the level shared by DefaultLogger and any logger created with NewLogger.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is a pretty console logger writing to stderr. It is used when the context
// does not carry a logger.
var DefaultLogger = NewLogger(os.Stderr)

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// NewLogger creates a pretty console logger writing to w at LevelVar.
// Colour is used when the color package says stdout can display it.
func NewLogger(w io.Writer) *slog.Logger {
	opts := []Option{WithDestinationWriter(w)}
	if color.Enabled() {
		opts = append(opts, WithColour())
	}

	return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar}, opts...))
}

// New returns a copy of ctx that carries logger.
// If logger is nil, the default logger is used.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return DefaultLogger
	}

	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).InfoContext(ctx, msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).DebugContext(ctx, msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).WarnContext(ctx, msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).ErrorContext(ctx, msg, args...)
}

func logLevelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(LogLevelEnvVar)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
