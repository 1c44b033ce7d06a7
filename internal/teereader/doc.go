// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader provides a reader that copies what it reads to a writer and
// remembers the last line, so that a failed command can be summarised in a log record
// without buffering all of its output.
package teereader
