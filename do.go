// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pushd

import "context"

// Do runs fn with the working directory changed to target and changes back afterwards,
// including when fn panics.
//
// When fn returns nil the restoration error, if any, is returned. When fn fails or panics
// a restoration failure is only logged and fn's error or panic wins.
func Do(ctx context.Context, target string, fn func(ctx context.Context) error, opts ...Option) error {
	g, err := New(ctx, target, opts...)
	if err != nil {
		return err
	}

	defer g.Release(ctx)

	if err := fn(ctx); err != nil {
		return err
	}

	return g.Pop(ctx)
}
