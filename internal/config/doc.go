// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config decodes step plans.
//
// A plan is a YAML document with a name and a tree of steps. Each step may change into a
// directory, run a command there and run child steps relative to that directory:
//
//	name: build
//	steps:
//	  - name: module a
//	    dir: ./a
//	    command: ["go", "build", "./..."]
//	    steps:
//	      - dir: sub
//	        command: ["ls"]
package config
