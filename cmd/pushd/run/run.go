// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run command, which fetches and runs YAML plans.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/pushd"
	"github.com/matt-FFFFFF/pushd/internal/config"
	"github.com/matt-FFFFFF/pushd/internal/ctxlog"
	"github.com/matt-FFFFFF/pushd/internal/runner"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag                   = "file"
	fetchTimeoutFlag           = "fetch-timeout"
	fetchTimeoutSecondsDefault = 30
	cliExitStr                 = ""
)

var (
	// ErrGetPlanFile is returned when the plan file cannot be fetched or read.
	ErrGetPlanFile = errors.New("failed to get plan file")
)

// RunCmd is the command that runs the plans defined in YAML files.
var RunCmd = &cli.Command{
	Name:  "run",
	Usage: "Run the steps defined in one or more YAML plan files",
	Description: `Run the steps defined in the specified YAML plan files, in order.

Each step may name a directory to change into before its command and child steps run.
The previous directory is restored when the step finishes, whether or not it succeeded.

Plan file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.
`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    fileFlag,
			Aliases: []string{"f"},
			Usage: "Specify the URL of the YAML plan file to run. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
				"Specify multiple times to run multiple files.",
		},
		&cli.IntFlag{
			Name:    fetchTimeoutFlag,
			Aliases: []string{"timeout"},
			Usage:   "Set the maximum time in seconds to wait for each plan file to be fetched.",
			Value:   fetchTimeoutSecondsDefault,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running run command")

	urls := cmd.StringSlice(fileFlag)
	if len(urls) == 0 {
		logger.Error("Please specify at least one URL for the plan file using the --file or -f flag.")
		return cli.Exit(cliExitStr, 1)
	}

	timeout := time.Duration(cmd.Int(fetchTimeoutFlag)) * time.Second
	plans := make([]*config.Plan, 0, len(urls))

	for i, u := range urls {
		if u == "" {
			logger.Error(fmt.Sprintf("The URL at index %d is empty. Please provide a valid URL.", i))
			return cli.Exit(cliExitStr, 1)
		}

		fetchCtx, fetchCancel := context.WithTimeout(ctx, timeout)
		data, err := getURL(fetchCtx, u)

		fetchCancel()

		if err != nil {
			logger.Error(fmt.Sprintf("Failed to get plan file %s", u), "error", err.Error())
			return cli.Exit(cliExitStr, 1)
		}

		plan, err := config.Parse(data)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to parse plan file %s", u), "error", err.Error())
			return cli.Exit(cliExitStr, 1)
		}

		plans = append(plans, plan)
	}

	r := runner.New(runner.WithOutput(cmd.Root().Writer, cmd.Root().ErrWriter))

	failed := false

	for _, plan := range plans {
		if err := r.Run(ctx, plan); err != nil {
			logger.Error(fmt.Sprintf("Plan %q failed", plan.Name), "error", err.Error())

			failed = true
		}

		if ctx.Err() != nil {
			break
		}
	}

	if failed {
		logger.Error("Some steps failed. See above for details.")
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// getURL retrieves the content from the specified URL using Hashicorp's go-getter.
// The download is made into a temporary directory that is removed before returning.
func getURL(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrGetPlanFile
	}

	tmpDir, err := os.MkdirTemp("", "pushd-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := pushd.DefaultDirer.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, pushd.ErrQueryDirectory, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string
	// Remote sources are fetched as a directory and the file read from it.
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrGetPlanFile, err)
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)
		if newURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrGetPlanFile, url)
		}

		req.Src = newURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	return data, nil
}

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host, and path
)

// splitFileNameFromGetterURL returns the getter URL of the directory holding the file,
// keeping any query string, and the file name.
// Both are empty if url has no subdirectory part or names a directory.
func splitFileNameFromGetterURL(url string) (string, string) {
	var query string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, ok := strings.Cut(last, goGetterRefSeparator); ok {
		last, query = before, after
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)

	if dir := filepath.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if query != "" {
		newURL += goGetterRefSeparator + query
	}

	return newURL, fileName
}
