// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package runner

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/pushd"
	"github.com/matt-FFFFFF/pushd/internal/config"
	"github.com/matt-FFFFFF/pushd/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalSymlinks(t *testing.T, path string) string {
	t.Helper()

	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)

	return resolved
}

func TestRunner_ExecInStepDirectory(t *testing.T) {
	start := t.TempDir()
	t.Chdir(start)

	sub := filepath.Join(start, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	var stdout, stderr bytes.Buffer

	plan := &config.Plan{
		Name: "exec",
		Steps: []config.Step{
			{
				Dir:     "sub",
				Command: []string{"sh", "-c", `pwd -P; echo "$PUSHD_TEST_VAR"`},
				Env:     map[string]string{"PUSHD_TEST_VAR": "from-env"},
			},
		},
	}

	r := New(WithOutput(&stdout, &stderr), WithStack(pushd.NewStack(pushd.WithDirer(pushd.OSDirer{}))))
	require.NoError(t, r.Run(context.Background(), plan))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, evalSymlinks(t, sub), lines[0])
	assert.Equal(t, "from-env", lines[1])

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, evalSymlinks(t, start), evalSymlinks(t, cwd))
}

func TestExecCommand_FailureLogsLastLine(t *testing.T) {
	var logs bytes.Buffer

	ctx := ctxlog.New(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	var stdout bytes.Buffer

	step := &config.Step{Command: []string{"sh", "-c", "echo first; echo boom; exit 3"}}

	err := ExecCommand(ctx, step, &stdout, nil)
	require.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, err.Error(), "exit status 3")
	assert.Equal(t, "first\nboom\n", stdout.String())
	assert.Contains(t, logs.String(), "lastLine=boom")
}

func TestExecCommand_StartFailure(t *testing.T) {
	step := &config.Step{Command: []string{filepath.Join(t.TempDir(), "does-not-exist")}}

	err := ExecCommand(context.Background(), step, nil, nil)
	require.ErrorIs(t, err, ErrCommandStart)
}

func TestExecCommand_NoCommand(t *testing.T) {
	require.NoError(t, ExecCommand(context.Background(), &config.Step{}, nil, nil))
}
