// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pushd

import "sync"

// processMu is shared by everything in the process that uses WithProcessLock.
var processMu sync.Mutex

// Option implements a functional options pattern for New, Do and NewStack.
type Option func(o *options)

type options struct {
	direr  Direr
	locker sync.Locker
}

// WithDirer sets the Direr used to query and change the working directory.
// The default is DefaultDirer.
func WithDirer(d Direr) Option {
	return func(o *options) {
		o.direr = d
	}
}

// WithLock makes the guard hold l from before the current directory is recorded until
// after it has been restored. A failed construction releases the lock before returning.
//
// A plain guard must not be nested inside another guard holding the same lock, that
// deadlocks. Nest on a Stack instead, which holds the lock until it is empty.
func WithLock(l sync.Locker) Option {
	return func(o *options) {
		o.locker = l
	}
}

// WithProcessLock is WithLock with a mutex shared by every user of this package.
func WithProcessLock() Option {
	return WithLock(&processMu)
}

func newOptions(opts []Option) options {
	o := options{}

	for _, opt := range opts {
		opt(&o)
	}

	if o.direr == nil {
		o.direr = DefaultDirer
	}

	return o
}
