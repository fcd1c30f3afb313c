// SPDX-License-Identifier: EPL-2.0

package cmdmodel

import (
	"context"

	"github.com/argonaut-cli/argonaut/pkg/validate"
)

// ParamKind distinguishes named options from positional arguments.
type ParamKind int

const (
	// Option parameters are bound by name (--name, -n).
	Option ParamKind = iota
	// Argument parameters are bound by position, in declaration order.
	Argument
)

// ActionFunc is the handler invoked for a resolved action. Returning nil
// completes with exit code 0; returning ExitStatus(n) completes normally
// with code n; any other error enters the error-hook path.
type ActionFunc func(ctx context.Context, inv *Invocation) error

type (
	// Command is one node of the command tree. Name and Aliases are matched
	// case-insensitively against argument tokens.
	Command struct {
		Name        string
		Aliases     []string
		Description string
		// Hidden nodes stay matchable but are excluded from listings and
		// from "did you mean" suggestions.
		Hidden    bool
		Children  []*Command
		Actions   []*Action
		Hooks     []Hook
		ExitCodes []ExitCodeMapping

		// Globals is the distinguished shared parameter set, honored on the
		// root node only. Global options are extracted from the argument
		// vector before path resolution and resolved once per dispatch.
		Globals []*Param
	}

	// Action is an invocable leaf of a Command.
	Action struct {
		Name        string
		Aliases     []string
		Description string
		Hidden      bool
		// Primary marks the action invoked when no action token follows the
		// command path. At most one per Command.
		Primary   bool
		Params    []*Param
		Hooks     []Hook
		ExitCodes []ExitCodeMapping
		Run       ActionFunc
	}

	// Param describes one option or positional argument of an action.
	Param struct {
		Kind        ParamKind
		Name        string
		// Short is a single-character alias for an Option.
		Short       string
		Description string
		Required    bool
		// Default is the raw default value, converted like any other
		// binding source. Empty means no default.
		Default string
		// EnvVar names an environment variable consulted when the command
		// line supplies no value.
		EnvVar string
		// Prompt, when non-empty, is the label for an interactive prompt
		// used when neither the command line nor the environment supplies a
		// value and the process is attached to a terminal.
		Prompt string
		// Secure suppresses echo while reading the prompted value.
		Secure bool
		Type   TypeDescriptor
		// ExclusiveGroup names a mutual-exclusion group; at most one member
		// of a group may carry a non-default value.
		ExclusiveGroup string
		Rules          []validate.Rule
	}
)

// DisplayName returns the parameter as users spell it: "--name" for options,
// "<name>" for positional arguments.
func (p *Param) DisplayName() string {
	if p.Kind == Option {
		return "--" + p.Name
	}
	return "<" + p.Name + ">"
}

// PrimaryAction returns the action marked Primary, or nil.
func (c *Command) PrimaryAction() *Action {
	for _, a := range c.Actions {
		if a.Primary {
			return a
		}
	}
	return nil
}
