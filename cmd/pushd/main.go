// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the pushd command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/pushd"
	"github.com/matt-FFFFFF/pushd/cmd/pushd/exec"
	"github.com/matt-FFFFFF/pushd/cmd/pushd/run"
	"github.com/matt-FFFFFF/pushd/internal/ctxlog"
	"github.com/matt-FFFFFF/pushd/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		exec.ExecCmd,
		run.RunCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "pushd",
	Description: `pushd runs commands inside nested working directories and always changes back
to the directory it started in, even when a command fails or the run is interrupted.

Set PUSHD_LOG_LEVEL to DEBUG to see every directory change.`,
	Usage:     "pushd exec --dir ./module -- go test ./...",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", pushd.Version, pushd.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	signalbroker.Stop(sigCh)

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		cancel()
		os.Exit(1)
	}

	cancel()

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Info(ctx, "command completed successfully")
}
