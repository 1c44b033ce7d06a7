// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/pushd/internal/config"
	"github.com/matt-FFFFFF/pushd/internal/ctxlog"
	"github.com/matt-FFFFFF/pushd/internal/teereader"
)

// lastLineMax is the longest output line included in a failure log record.
const lastLineMax = 200

var (
	// ErrCommandStart is returned when a command cannot be started.
	ErrCommandStart = errors.New("failed to start command")
	// ErrCommandFailed is returned when a command exits unsuccessfully.
	ErrCommandFailed = errors.New("command failed")
	// ErrCommandOutput is returned when command output cannot be copied.
	ErrCommandOutput = errors.New("failed to copy command output")
)

// ExecFunc runs the command of a step in the current working directory.
type ExecFunc func(ctx context.Context, step *config.Step, stdout, stderr io.Writer) error

var _ ExecFunc = ExecCommand

// ExecCommand runs step.Command with os/exec. The child inherits the process working
// directory and environment, with step.Env added. Stdout is copied to stdout and its last
// line is logged if the command fails. The command is killed when ctx is done.
func ExecCommand(ctx context.Context, step *config.Step, stdout, stderr io.Writer) error {
	if len(step.Command) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, step.Command[0], step.Command[1:]...) //nolint:gosec
	cmd.Env = append(os.Environ(), envList(step.Env)...)
	cmd.Stderr = stderr

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Join(ErrCommandStart, err)
	}

	tr := teereader.NewLastLineTeeReader(pipe, stdout)

	ctxlog.Info(ctx, "executing command", "command", strings.Join(step.Command, " "))

	if err := cmd.Start(); err != nil {
		return errors.Join(ErrCommandStart, err)
	}

	_, copyErr := io.Copy(io.Discard, tr)
	if copyErr != nil {
		// keep the child from blocking on a full pipe
		_, _ = io.Copy(io.Discard, pipe)
	}

	if err := cmd.Wait(); err != nil {
		ctxlog.Error(ctx, "command failed",
			"command", strings.Join(step.Command, " "),
			"lastLine", tr.LastLine(lastLineMax),
			"error", err.Error())

		return errors.Join(ErrCommandFailed, err)
	}

	if copyErr != nil {
		return errors.Join(ErrCommandOutput, copyErr)
	}

	return nil
}

func envList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		list = append(list, k+"="+env[k])
	}

	return list
}
