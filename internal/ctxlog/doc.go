// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger uses PrettyHandler, which prints a timestamp, the level, the message
// and the attributes as a single line of JSON. The level is taken from the
// PUSHD_LOG_LEVEL environment variable.
package ctxlog
