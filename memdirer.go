// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pushd

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/afero"
)

var _ Direr = (*MemDirer)(nil)

// ownerExec is the permission bit required to enter a directory.
const ownerExec = 0o100

// MemDirer is a Direr that keeps its working directory in memory and checks paths against
// an afero.Fs. It never touches the process working directory.
//
// Removing the working directory from the filesystem makes Getwd fail, and removing the
// owner execute bit from a directory makes Chdir into it fail with fs.ErrPermission.
// It is safe for concurrent use.
type MemDirer struct {
	mu  sync.Mutex
	fs  afero.Fs
	cwd string
}

// NewMemDirer creates a MemDirer over fsys whose working directory is cwd.
// cwd should be absolute; it is not checked until Getwd is called.
func NewMemDirer(fsys afero.Fs, cwd string) *MemDirer {
	return &MemDirer{
		fs:  fsys,
		cwd: filepath.Clean(cwd),
	}
}

// Getwd implements Direr.
func (m *MemDirer) Getwd() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ok, err := afero.DirExists(m.fs, m.cwd)
	if err != nil {
		return "", &fs.PathError{Op: "getwd", Path: m.cwd, Err: err}
	}

	if !ok {
		return "", &fs.PathError{Op: "getwd", Path: m.cwd, Err: syscall.ENOENT}
	}

	return m.cwd, nil
}

// Chdir implements Direr. Relative paths are resolved against the current directory.
func (m *MemDirer) Chdir(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dir == "" {
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
	}

	path := dir
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.cwd, path)
	}

	path = filepath.Clean(path)

	info, err := m.fs.Stat(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
	case err != nil:
		return &fs.PathError{Op: "chdir", Path: dir, Err: err}
	case !info.IsDir():
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	case info.Mode().Perm()&ownerExec == 0:
		return &fs.PathError{Op: "chdir", Path: dir, Err: fs.ErrPermission}
	}

	m.cwd = path

	return nil
}
