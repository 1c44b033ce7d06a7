// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
)

var (
	// ErrYamlUnmarshal is returned when a plan cannot be decoded.
	ErrYamlUnmarshal = errors.New(
		"failed to decode YAML plan, please check the syntax and structure of your YAML file",
	)
	// ErrNoSteps is returned when a plan has no steps.
	ErrNoSteps = errors.New("plan has no steps")
	// ErrEmptyStep is returned when a step has neither a command nor child steps.
	ErrEmptyStep = errors.New("step has neither a command nor child steps")
)

// Plan is the root of a plan document.
type Plan struct {
	// Name is the descriptive name of the plan.
	Name string `yaml:"name"`
	// Steps are run in order.
	Steps []Step `yaml:"steps"`
}

// Step changes into Dir, if set, runs Command and then Steps, and changes back.
type Step struct {
	// Name is the descriptive name of the step.
	Name string `yaml:"name,omitempty"`
	// Dir is the directory to change into, relative to the enclosing step's directory.
	Dir string `yaml:"dir,omitempty"`
	// Command is the program and its arguments.
	Command []string `yaml:"command,omitempty"`
	// Env is added to the process environment for Command.
	Env map[string]string `yaml:"env,omitempty"`
	// ContinueOnError lets the following steps run when this one fails.
	ContinueOnError bool `yaml:"continue_on_error,omitempty"`
	// Steps run inside Dir after Command.
	Steps []Step `yaml:"steps,omitempty"`
}

// Label returns the step name, or a description built from its directory and command.
func (s *Step) Label() string {
	if s.Name != "" {
		return s.Name
	}

	if len(s.Command) > 0 {
		return strings.Join(s.Command, " ")
	}

	if s.Dir != "" {
		return "cd " + s.Dir
	}

	return "step"
}

// Parse decodes and validates a plan. Unknown fields are rejected.
func Parse(data []byte) (*Plan, error) {
	plan := new(Plan)
	if err := yaml.UnmarshalWithOptions(data, plan, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.Join(ErrYamlUnmarshal, err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// Validate checks that the plan has steps and that every step does something.
// All invalid steps are reported.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return ErrNoSteps
	}

	var result *multierror.Error

	validateSteps(p.Steps, "steps", &result)

	return result.ErrorOrNil()
}

func validateSteps(steps []Step, path string, result **multierror.Error) {
	for i := range steps {
		s := &steps[i]
		p := path + "[" + strconv.Itoa(i) + "]"

		if len(s.Command) == 0 && len(s.Steps) == 0 {
			*result = multierror.Append(*result, fmt.Errorf("%w: %s (%s)", ErrEmptyStep, p, s.Label()))
		}

		validateSteps(s.Steps, p+".steps", result)
	}
}
