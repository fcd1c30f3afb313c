// SPDX-License-Identifier: EPL-2.0

package cmdmodel

import (
	"fmt"
	"time"
)

type (
	// Values maps parameter names to converted, validated values. Absent
	// optional parameters have no entry.
	Values map[string]any

	// Invocation is the transient result of resolving and binding one
	// argument vector. It is owned exclusively by a single in-flight
	// dispatch call and discarded when the call returns.
	Invocation struct {
		// Path is the sequence of command names consumed from the front of
		// the argument vector (canonical names, not the aliases used).
		Path []string
		// Command is the resolved command context.
		Command *Command
		// Action is the matched action.
		Action *Action
		// Values holds the action's bound parameters.
		Values Values
		// Globals holds the root command's shared parameter set, resolved
		// once per dispatch.
		Globals Values
	}
)

// ExitStatus is returned by an action to complete normally with an explicit
// exit code. It is not a failure: after-hooks run, error-hooks do not.
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// ExitCodeMapping resolves an action error to a process exit code when an
// error-hook claims it. Target matches any error in the chain per errors.Is;
// the mapping whose target sits nearest the original error wins, with
// action-level mappings shadowing command-level ones and commands shadowing
// their ancestors.
type ExitCodeMapping struct {
	Target error
	Code   int
}

// Has reports whether a value was bound for name.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the string value bound for name, or "".
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Bool returns the boolean value bound for name, or false.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Int returns the integer value bound for name, or 0.
func (v Values) Int(name string) int64 {
	n, _ := v[name].(int64)
	return n
}

// Float returns the float value bound for name, or 0.
func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

// Duration returns the duration bound for name, or 0.
func (v Values) Duration(name string) time.Duration {
	d, _ := v[name].(time.Duration)
	return d
}

// Strings returns the string slice bound for name, or nil.
func (v Values) Strings(name string) []string {
	ss, _ := v[name].([]string)
	return ss
}
