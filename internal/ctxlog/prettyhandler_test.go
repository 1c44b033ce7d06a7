// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/pushd/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		options *slog.HandlerOptions
		want    bool
	}{
		{
			name:    "debug level with debug handler",
			level:   slog.LevelDebug,
			options: &slog.HandlerOptions{Level: slog.LevelDebug},
			want:    true,
		},
		{
			name:    "debug level with info handler",
			level:   slog.LevelDebug,
			options: &slog.HandlerOptions{Level: slog.LevelInfo},
			want:    false,
		},
		{
			name:    "error level with warn handler",
			level:   slog.LevelError,
			options: &slog.HandlerOptions{Level: slog.LevelWarn},
			want:    true,
		},
		{
			name:    "nil options default to info",
			level:   slog.LevelInfo,
			options: nil,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPrettyHandler(tt.options)
			assert.Equal(t, tt.want, handler.Enabled(context.Background(), tt.level))
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name           string
		level          slog.Level
		message        string
		attrs          []any
		options        []Option
		expectInOutput []string
		notInOutput    []string
	}{
		{
			name:           "basic info message",
			level:          slog.LevelInfo,
			message:        "test message",
			expectInOutput: []string{"INFO:", "test message"},
			notInOutput:    []string{"{"},
		},
		{
			name:    "warn message with path attributes",
			level:   slog.LevelWarn,
			message: "could not return to previous working directory",
			attrs:   []any{"path", "/home/user", "error", "no such file or directory"},
			expectInOutput: []string{
				"WARN:",
				"could not return to previous working directory",
				`"path": "/home/user"`,
				`"error": "no such file or directory"`,
			},
		},
		{
			name:           "number attribute",
			level:          slog.LevelDebug,
			message:        "depth",
			attrs:          []any{"depth", 3},
			expectInOutput: []string{"DEBUG:", `"depth": 3`},
		},
		{
			name:           "empty attrs output enabled",
			level:          slog.LevelInfo,
			message:        "test message",
			options:        []Option{WithOutputEmptyAttrs()},
			expectInOutput: []string{"INFO:", "test message", "{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			opts := append([]Option{WithDestinationWriter(&buf)}, tt.options...)
			handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, opts...)

			record := slog.NewRecord(time.Now(), tt.level, tt.message, 0)
			record.Add(tt.attrs...)

			require.NoError(t, handler.Handle(context.Background(), record))

			output := buf.String()
			for _, expected := range tt.expectInOutput {
				assert.Contains(t, output, expected)
			}

			for _, unexpected := range tt.notInOutput {
				assert.NotContains(t, output, unexpected)
			}

			assert.True(t, strings.HasSuffix(output, "\n"), "output should end with newline")
			assert.Equal(t, 1, strings.Count(output, "\n"), "output should be a single line")
		})
	}
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&slog.HandlerOptions{}, WithDestinationWriter(&buf))
	logger := slog.New(handler).With("command", "exec").WithGroup("guard")

	logger.Info("changed", "to", "/etc")

	output := buf.String()
	assert.Contains(t, output, `"command": "exec"`)
	assert.Contains(t, output, `"guard"`)
	assert.Contains(t, output, `"to": "/etc"`)

	withAttrs, ok := handler.WithAttrs([]slog.Attr{slog.String("k", "v")}).(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, handler.b, withAttrs.b, "WithAttrs should share the buffer")
	assert.Same(t, handler.m, withAttrs.m, "WithAttrs should share the mutex")
}

func TestPrettyHandler_Handle_WithReplaceAttr(t *testing.T) {
	var buf bytes.Buffer

	replaceAttr := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}

		return a
	}

	handler := NewPrettyHandler(&slog.HandlerOptions{ReplaceAttr: replaceAttr}, WithDestinationWriter(&buf))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "no time", 0)
	require.NoError(t, handler.Handle(context.Background(), record))

	assert.True(t, strings.HasPrefix(buf.String(), "INFO:"), "time should be removed, got %q", buf.String())
}

func TestPrettyHandler_Colour(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&slog.HandlerOptions{}, WithDestinationWriter(&buf), WithColour())

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "coloured", 0)
	require.NoError(t, handler.Handle(context.Background(), record))

	assert.Contains(t, buf.String(), color.Wrap("WARN:", color.FgYellow))
}

func TestLevelColour(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  color.Code
	}{
		{slog.LevelDebug, color.FgWhite},
		{slog.LevelInfo, color.FgCyan},
		{slog.LevelInfo + 2, color.FgBlue},
		{slog.LevelWarn, color.FgYellow},
		{slog.LevelError, color.FgRed},
		{slog.LevelError + 2, color.FgHiMagenta},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, levelColour(tt.level))
		})
	}
}

func TestSuppressDefaults(t *testing.T) {
	f := suppressDefaults(nil)

	for _, key := range []string{slog.TimeKey, slog.LevelKey, slog.MessageKey} {
		assert.True(t, f(nil, slog.String(key, "x")).Equal(slog.Attr{}), "%s should be suppressed", key)
	}

	assert.Equal(t, "v", f(nil, slog.String("k", "v")).Value.String())
	assert.Equal(t, "x", f([]string{"group"}, slog.String(slog.MessageKey, "x")).Value.String(),
		"grouped keys are not the record defaults")

	upper := func(_ []string, a slog.Attr) slog.Attr {
		return slog.String(a.Key, strings.ToUpper(a.Value.String()))
	}

	assert.Equal(t, "V", suppressDefaults(upper)(nil, slog.String("k", "v")).Value.String())
}

type failingWriter struct{}

func (w *failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestPrettyHandler_Handle_WriteError(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{}, WithDestinationWriter(&failingWriter{}))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)
	err := handler.Handle(context.Background(), record)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}
