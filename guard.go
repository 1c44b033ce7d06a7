// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pushd

import (
	"context"
	"errors"
	"sync"

	"github.com/matt-FFFFFF/pushd/internal/ctxlog"
)

// Guard records the working directory it replaced and restores it once when released.
// A Guard only exists if the directory change succeeded.
type Guard struct {
	mu       sync.Mutex
	direr    Direr
	locker   sync.Locker
	stack    *Stack
	previous string
	target   string
	released bool
}

// New records the current working directory and changes to target.
//
// If the current directory cannot be determined the error matches ErrQueryDirectory and no
// change is attempted. If the change fails the error is an *ErrChangeDirectory and the
// working directory is left as it was.
func New(ctx context.Context, target string, opts ...Option) (*Guard, error) {
	o := newOptions(opts)

	if o.locker != nil {
		o.locker.Lock()
	}

	g, err := change(ctx, o.direr, target)
	if err != nil {
		if o.locker != nil {
			o.locker.Unlock()
		}

		return nil, err
	}

	g.locker = o.locker

	return g, nil
}

func change(ctx context.Context, d Direr, target string) (*Guard, error) {
	previous, err := d.Getwd()
	if err != nil {
		return nil, errors.Join(ErrQueryDirectory, err)
	}

	if err := d.Chdir(target); err != nil {
		return nil, NewErrChangeDirectory(target, err)
	}

	ctxlog.Debug(ctx, "changed working directory", "from", previous, "to", target)

	return &Guard{
		direr:    d,
		previous: previous,
		target:   target,
	}, nil
}

// Previous returns the working directory recorded when the guard was created.
func (g *Guard) Previous() string {
	return g.previous
}

// Target returns the directory passed to New.
func (g *Guard) Target() string {
	return g.target
}

// Active reports whether the guard has yet to restore the previous directory.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return !g.released
}

// Pop changes back to the previous directory the first time it is called and returns the
// result. Later calls do nothing and return nil. The guard is released after the first
// attempt whether or not it succeeded.
//
// A guard created by a Stack that is not at the top of the stack is not released;
// Pop returns an error matching ErrOutOfOrder instead.
func (g *Guard) Pop(ctx context.Context) error {
	if g == nil {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.released {
		return nil
	}

	if g.stack != nil {
		return g.stack.pop(ctx, g)
	}

	return g.restore(ctx)
}

// Release is Pop for deferred use. Failures are logged as warnings instead of returned.
func (g *Guard) Release(ctx context.Context) {
	err := g.Pop(ctx)
	if err == nil {
		return
	}

	if errors.Is(err, ErrOutOfOrder) {
		ctxlog.Warn(ctx, "directory guard released out of order, working directory not restored",
			"path", g.previous,
			"target", g.target,
			"error", err.Error())

		return
	}

	cause := err

	var cde *ErrChangeDirectory
	if errors.As(err, &cde) {
		cause = cde.Err
	}

	ctxlog.Warn(ctx, "could not return to previous working directory",
		"path", g.previous,
		"error", cause.Error())
}

// restore must be called with g.mu held.
func (g *Guard) restore(ctx context.Context) error {
	g.released = true
	err := g.direr.Chdir(g.previous)

	if g.locker != nil {
		g.locker.Unlock()
	}

	if err != nil {
		return errors.Join(ErrRestoreDirectory, NewErrChangeDirectory(g.previous, err))
	}

	ctxlog.Debug(ctx, "restored working directory", "from", g.target, "to", g.previous)

	return nil
}
