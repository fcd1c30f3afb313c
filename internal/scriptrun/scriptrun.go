// SPDX-License-Identifier: MPL-2.0

// Package scriptrun executes inline model-file scripts in an embedded POSIX
// shell (mvdan.cc/sh). Bound parameter values are exported to the script as
// environment variables and positional arguments, so declarative models can
// carry behavior without compiled handlers.
package scriptrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/argonaut-cli/argonaut/internal/convert"
	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

// Env variable prefixes for exported bindings. Option values surface as
// ARG_FLAG_<NAME>, positional values as ARG_ARG_<NAME>, globals as
// ARG_GLOBAL_<NAME>; names are uppercased with dashes folded to underscores.
const (
	flagPrefix   = "ARG_FLAG_"
	argPrefix    = "ARG_ARG_"
	globalPrefix = "ARG_GLOBAL_"
)

// Runtime executes scripts. The zero value runs in the current directory
// against the process's standard streams.
type Runtime struct {
	// Stdin, Stdout, Stderr default to the process streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Logger may be nil.
	Logger *log.Logger
}

// Action wraps a script as an action handler. The script's exit code is
// surfaced as a cmdmodel.ExitStatus, so a model-declared exit code travels
// the same path as one returned by a compiled handler.
func (r *Runtime) Action(script string) cmdmodel.ActionFunc {
	return func(ctx context.Context, inv *cmdmodel.Invocation) error {
		prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
		if err != nil {
			return fmt.Errorf("script syntax error: %w", err)
		}

		env, err := bindingEnv(inv)
		if err != nil {
			return err
		}
		opts := []interp.RunnerOption{
			interp.Dir(r.Dir),
			interp.Env(expand.ListEnviron(append(os.Environ(), env...)...)),
			interp.StdIO(r.Stdin, r.stdout(), r.stderr()),
		}
		// "--" keeps option-looking positional values out of the shell's
		// own option parsing.
		if args := positionals(inv); len(args) > 0 {
			opts = append(opts, interp.Params(append([]string{"--"}, args...)...))
		}

		runner, err := interp.New(opts...)
		if err != nil {
			return fmt.Errorf("create interpreter: %w", err)
		}

		r.debug("running script", "action", inv.Action.Name)
		if err := runner.Run(ctx, prog); err != nil {
			var status interp.ExitStatus
			if errors.As(err, &status) {
				return cmdmodel.ExitStatus(int(status))
			}
			return fmt.Errorf("script execution failed: %w", err)
		}
		return nil
	}
}

// bindingEnv renders the invocation's bound values as NAME=value pairs.
func bindingEnv(inv *cmdmodel.Invocation) ([]string, error) {
	var env []string
	for _, p := range inv.Action.Params {
		v, ok := inv.Values[p.Name]
		if !ok {
			continue
		}
		token, err := formatValue(p.Type, v)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", p.DisplayName(), err)
		}
		prefix := flagPrefix
		if p.Kind == cmdmodel.Argument {
			prefix = argPrefix
		}
		env = append(env, prefix+envName(p.Name)+"="+token)
	}
	for name, v := range inv.Globals {
		env = append(env, globalPrefix+envName(name)+"="+fmt.Sprint(v))
	}
	return env, nil
}

// positionals renders the declared positional values, in declaration order,
// as the script's $1..$n. A trailing collection expands element-wise.
func positionals(inv *cmdmodel.Invocation) []string {
	var args []string
	for _, p := range inv.Action.Params {
		if p.Kind != cmdmodel.Argument {
			continue
		}
		v, ok := inv.Values[p.Name]
		if !ok {
			continue
		}
		if p.Type.IsList() {
			args = append(args, elementTokens(p.Type, v)...)
			continue
		}
		if token, err := formatValue(p.Type, v); err == nil {
			args = append(args, token)
		}
	}
	return args
}

func elementTokens(t cmdmodel.TypeDescriptor, v any) []string {
	joined, err := convert.FormatList(t, v)
	if err != nil || joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

func formatValue(t cmdmodel.TypeDescriptor, v any) (string, error) {
	if t.IsList() {
		return convert.FormatList(t, v)
	}
	if t.Kind == cmdmodel.KindCustom {
		// Custom converters have no inverse; export the printed form.
		return fmt.Sprint(v), nil
	}
	return convert.Format(t, v)
}

func envName(param string) string {
	return strings.ToUpper(strings.ReplaceAll(param, "-", "_"))
}

func (r *Runtime) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runtime) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

func (r *Runtime) debug(msg string, kv ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, kv...)
	}
}
