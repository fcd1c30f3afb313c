// SPDX-License-Identifier: EPL-2.0

package dispatch

import (
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// Prompter supplies interactive values for parameters that declare a prompt.
// Implementations decide whether the process is attached to a terminal.
type Prompter interface {
	// Interactive reports whether prompting is possible at all.
	Interactive() bool
	// Ask reads one value under the given label. Secure suppresses echo.
	Ask(label string, secure bool) (string, error)
}

// Options configures a Dispatcher. The zero value is usable: diagnostics go
// to os.Stderr, environment lookups use the process environment, and
// prompting is enabled when stdin is a terminal.
type Options struct {
	// Stderr receives diagnostics and cancellation messages.
	Stderr io.Writer

	// Logger emits debug traces of resolution, binding, and hook phases.
	// Nil disables tracing.
	Logger *log.Logger

	// LookupEnv resolves environment-variable binding sources. A variable
	// that is set but empty counts as supplied.
	LookupEnv func(string) (string, bool)

	// Prompter overrides the terminal prompter. Ignored when NoPrompt is set.
	Prompter Prompter

	// NoPrompt disables the interactive prompt source entirely; parameters
	// fall through to their defaults.
	NoPrompt bool

	// Converters holds named custom converters referenced by
	// TypeDescriptor.Custom in the command model.
	Converters map[string]func(raw string) (any, error)

	// Explain appends catalogued remediation text to usage diagnostics.
	Explain bool

	// NoColor strips styling from reported diagnostics.
	NoColor bool
}

// EnvOptions carries the dispatcher settings that honor environment
// conventions. Parse them with OptionsFromEnv and fold them in with Apply.
type EnvOptions struct {
	NoColor  bool `env:"NO_COLOR"`
	NoPrompt bool `env:"ARGONAUT_NO_PROMPT"`
	Debug    bool `env:"ARGONAUT_DEBUG"`
	Explain  bool `env:"ARGONAUT_EXPLAIN"`
}

// OptionsFromEnv reads EnvOptions from the process environment.
func OptionsFromEnv() (EnvOptions, error) {
	var eo EnvOptions
	if err := env.Parse(&eo); err != nil {
		return EnvOptions{}, fmt.Errorf("parse env options: %w", err)
	}
	return eo, nil
}

// Apply folds the environment settings into opts. Environment booleans only
// ever turn behavior on; explicit Options fields are never cleared. Debug
// raises the logger level when a logger is configured.
func (eo EnvOptions) Apply(opts Options) Options {
	opts.NoColor = opts.NoColor || eo.NoColor
	opts.NoPrompt = opts.NoPrompt || eo.NoPrompt
	opts.Explain = opts.Explain || eo.Explain
	if eo.Debug && opts.Logger != nil {
		opts.Logger.SetLevel(log.DebugLevel)
	}
	return opts
}
