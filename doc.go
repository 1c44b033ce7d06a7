// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pushd temporarily changes the process working directory and changes it back
// when the scope that made the change ends.
//
// A Guard is created with New, which records the current directory and switches to the
// target. Releasing the guard switches back. Release is meant to be deferred:
//
//	g, err := pushd.New(ctx, "testdata")
//	if err != nil {
//		return err
//	}
//	defer g.Release(ctx)
//
// Release never panics and never returns an error; a failed restoration is logged at warn
// level using the logger found in the context. Use Pop when the caller wants the error.
//
// The working directory is shared by every goroutine in the process. Guards do not lock
// anything unless WithLock or WithProcessLock is given, so callers must make sure that no
// other code changes directory while a guard is active. Guards must be released in the
// reverse order of their creation. A Stack enforces that order.
package pushd
