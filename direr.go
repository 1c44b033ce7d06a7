// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pushd

import "os"

var _ Direr = OSDirer{}

// Direr queries and changes a working directory.
// The process working directory is reached through OSDirer; tests can use MemDirer.
type Direr interface {
	// Getwd returns the absolute path of the working directory.
	Getwd() (string, error)
	// Chdir changes the working directory to dir, which may be relative.
	Chdir(dir string) error
}

// DefaultDirer is used by New, Do and NewStack when no WithDirer option is given.
var DefaultDirer Direr = OSDirer{}

// OSDirer changes the working directory of the process.
type OSDirer struct{}

// Getwd implements Direr using os.Getwd.
func (OSDirer) Getwd() (string, error) {
	return os.Getwd() //nolint:wrapcheck
}

// Chdir implements Direr using os.Chdir.
func (OSDirer) Chdir(dir string) error {
	return os.Chdir(dir) //nolint:wrapcheck
}
