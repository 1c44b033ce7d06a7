// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pushd

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Stack creates nested guards and only lets the most recent one be released.
//
// If the stack was created with WithLock or WithProcessLock the lock is taken by the first
// Push and given back when the last guard has been released, so nested pushes on the same
// stack do not deadlock.
type Stack struct {
	mu     sync.Mutex
	opts   options
	guards []*Guard
}

// NewStack creates an empty Stack.
func NewStack(opts ...Option) *Stack {
	return &Stack{
		opts: newOptions(opts),
	}
}

// Push creates a guard for target on top of the stack. Errors are those of New.
func (s *Stack) Push(ctx context.Context, target string) (*Guard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	first := len(s.guards) == 0
	if first && s.opts.locker != nil {
		s.opts.locker.Lock()
	}

	g, err := change(ctx, s.opts.direr, target)
	if err != nil {
		if first && s.opts.locker != nil {
			s.opts.locker.Unlock()
		}

		return nil, err
	}

	g.stack = s
	s.guards = append(s.guards, g)

	return g, nil
}

// Depth returns the number of active guards on the stack.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.guards)
}

// Unwind releases every active guard, most recent first, and returns the restoration
// failures combined.
func (s *Stack) Unwind(ctx context.Context) error {
	var result *multierror.Error

	for {
		s.mu.Lock()
		n := len(s.guards)

		if n == 0 {
			s.mu.Unlock()
			break
		}

		top := s.guards[n-1]
		s.mu.Unlock()

		if err := top.Pop(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// pop must be called with g.mu held.
func (s *Stack) pop(ctx context.Context, g *Guard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.guards)
	if n == 0 || s.guards[n-1] != g {
		return fmt.Errorf("%w: %s is not the most recent directory change", ErrOutOfOrder, g.target)
	}

	s.guards[n-1] = nil
	s.guards = s.guards[:n-1]

	err := g.restore(ctx)

	if len(s.guards) == 0 && s.opts.locker != nil {
		s.opts.locker.Unlock()
	}

	return err
}
