// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package exec implements the exec command, which runs a single command inside nested
// working directories.
package exec

import (
	"context"

	"github.com/matt-FFFFFF/pushd/internal/config"
	"github.com/matt-FFFFFF/pushd/internal/ctxlog"
	"github.com/matt-FFFFFF/pushd/internal/runner"
	"github.com/urfave/cli/v3"
)

const (
	dirFlag    = "dir"
	cliExitStr = ""
)

// ExecCmd runs a command after changing into each --dir in turn.
var ExecCmd = &cli.Command{
	Name:      "exec",
	Usage:     "Run a command inside one or more nested directories",
	ArgsUsage: "-- COMMAND [ARGS...]",
	Description: `Change into each --dir in the order given, run the command, then change back
through every directory to the one pushd was started in.

Each --dir is relative to the one before it.`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    dirFlag,
			Aliases: []string{"d"},
			Usage:   "Directory to change into. Specify multiple times to nest.",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	args := cmd.Args().Slice()
	if len(args) == 0 {
		logger.Error("Please specify the command to run after --.")
		return cli.Exit(cliExitStr, 1)
	}

	plan := BuildPlan(cmd.StringSlice(dirFlag), args)

	r := runner.New(runner.WithOutput(cmd.Root().Writer, cmd.Root().ErrWriter))
	if err := r.Run(ctx, plan); err != nil {
		logger.Error("command failed", "error", err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// BuildPlan nests one step per directory, innermost last, with the command in the innermost step.
func BuildPlan(dirs []string, command []string) *config.Plan {
	step := config.Step{Command: command}

	if len(dirs) > 0 {
		step.Dir = dirs[len(dirs)-1]

		for i := len(dirs) - 2; i >= 0; i-- {
			step = config.Step{
				Dir:   dirs[i],
				Steps: []config.Step{step},
			}
		}
	}

	return &config.Plan{
		Name:  "exec",
		Steps: []config.Step{step},
	}
}
