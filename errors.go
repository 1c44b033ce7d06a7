// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pushd

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryDirectory is returned when the current working directory cannot be determined,
	// for example because it was removed. No directory change is attempted.
	ErrQueryDirectory = errors.New("failed to query current working directory")
	// ErrChangeDirectoryFailed is matched by every *ErrChangeDirectory using errors.Is.
	ErrChangeDirectoryFailed = errors.New("failed to change working directory")
	// ErrRestoreDirectory is returned by Pop when the previous directory cannot be restored.
	ErrRestoreDirectory = errors.New("failed to restore previous working directory")
	// ErrOutOfOrder is returned by Pop when a guard that belongs to a Stack is not the most
	// recent one. The guard is left active and the working directory is not changed.
	ErrOutOfOrder = errors.New("directory guard released out of order")
)

// ErrChangeDirectory is returned when the operating system refuses to change to Path.
// It wraps the underlying error so that errors.Is(err, fs.ErrNotExist) and friends work.
type ErrChangeDirectory struct {
	Path string
	Err  error
}

// Error implements the error interface for ErrChangeDirectory.
func (e *ErrChangeDirectory) Error() string {
	return fmt.Sprintf("failed to change working directory to %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying operating system error.
func (e *ErrChangeDirectory) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrChangeDirectoryFailed.
func (e *ErrChangeDirectory) Is(target error) bool {
	return target == ErrChangeDirectoryFailed
}

// NewErrChangeDirectory creates a new ErrChangeDirectory for the given path and cause.
func NewErrChangeDirectory(path string, err error) error {
	return &ErrChangeDirectory{Path: path, Err: err}
}
