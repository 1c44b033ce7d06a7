// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner executes step plans. Every step with a directory is run under a guard
// pushed on a pushd.Stack, so commands see the step's directory as their working
// directory and the previous directory is restored when the step ends.
package runner
