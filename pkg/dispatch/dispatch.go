// SPDX-License-Identifier: EPL-2.0

package dispatch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/argonaut-cli/argonaut/internal/binder"
	"github.com/argonaut-cli/argonaut/internal/convert"
	"github.com/argonaut-cli/argonaut/internal/hooks"
	"github.com/argonaut-cli/argonaut/internal/issue"
	"github.com/argonaut-cli/argonaut/internal/prompt"
	"github.com/argonaut-cli/argonaut/internal/resolve"
	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

// Process exit codes produced by a dispatch.
const (
	// ExitOK is a successful completion.
	ExitOK = 0
	// ExitFailure is an unhandled or generically handled failure.
	ExitFailure = 1
	// ExitUsage covers every resolution and binding diagnostic.
	ExitUsage = 2
	// ExitCancelled means a before-hook cancelled the invocation.
	ExitCancelled = 3
)

// Dispatcher executes argument vectors against one command tree.
type Dispatcher struct {
	root   *cmdmodel.Command
	opts   Options
	binder *binder.Binder
	orch   *hooks.Orchestrator
	styles styles
}

// New validates the command tree and builds a Dispatcher over it. The tree
// must not be mutated afterwards; the Dispatcher itself never mutates it.
func New(root *cmdmodel.Command, opts Options) (*Dispatcher, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root command", cmdmodel.ErrInvalidModel)
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}

	registry := convert.NewRegistry()
	for name, fn := range opts.Converters {
		if err := registry.Register(name, convert.Func(fn)); err != nil {
			return nil, err
		}
	}

	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	var prompter prompt.Prompter
	switch {
	case opts.NoPrompt:
		// nil disables the prompt source in the binder.
	case opts.Prompter != nil:
		prompter = opts.Prompter
	default:
		prompter = prompt.New(false)
	}

	return &Dispatcher{
		root: root,
		opts: opts,
		binder: &binder.Binder{
			Registry:  registry,
			LookupEnv: opts.LookupEnv,
			Prompter:  prompter,
			Logger:    opts.Logger,
		},
		orch:   &hooks.Orchestrator{Logger: opts.Logger},
		styles: newStyles(opts.NoColor),
	}, nil
}

// DispatchE resolves, binds, and executes one argument vector.
//
// Usage diagnostics (unknown names, missing or invalid values, exclusion
// conflicts) are reported to the configured writer and yield (ExitUsage, nil);
// they never reach hooks or the action. Cancellation yields (ExitCancelled,
// nil). A non-nil error is returned only for a genuine fault: an action or
// before-hook error that no error-hook handled.
func (d *Dispatcher) DispatchE(ctx context.Context, argv []string) (int, error) {
	globalTokens, rest := binder.SplitGlobals(d.root.Globals, argv)

	globals, err := d.binder.Bind(d.root.Globals, globalTokens)
	if err != nil {
		return d.fail(err)
	}

	res, err := resolve.Resolve(d.root, rest)
	if err != nil {
		return d.fail(err)
	}
	d.debug("resolved", "path", strings.Join(res.Path, " "), "action", res.Action.Name)

	values, err := d.binder.Bind(res.Action.Params, res.Rest)
	if err != nil {
		return d.fail(err)
	}

	inv := &cmdmodel.Invocation{
		Path:    res.Path,
		Command: res.Command(),
		Action:  res.Action,
		Values:  values,
		Globals: globals,
	}

	out, err := d.orch.Run(ctx, res.Chain, inv)
	if err != nil {
		return ExitFailure, err
	}
	if out.Cancelled {
		d.reportCancellation(d.opts.Stderr, out.CancelMessage)
		return ExitCancelled, nil
	}
	d.debug("dispatch complete", "code", out.ExitCode)
	return out.ExitCode, nil
}

// Dispatch is the process-exit convenience wrapper: faults that DispatchE
// would return are reported like diagnostics and folded into the code.
func (d *Dispatcher) Dispatch(ctx context.Context, argv []string) int {
	code, err := d.DispatchE(ctx, argv)
	if err != nil {
		d.reportFailure(d.opts.Stderr, err)
		return ExitFailure
	}
	return code
}

// fail routes an error from the resolution or binding phase: structured
// usage diagnostics are reported and absorbed, anything else (a failing
// prompt read, a custom converter panic surfaced as error) propagates.
func (d *Dispatcher) fail(err error) (int, error) {
	if diag, ok := issue.As(err); ok && diag.Kind.Usage() {
		d.reportDiagnostic(d.opts.Stderr, diag)
		return ExitUsage, nil
	}
	return ExitFailure, err
}

func (d *Dispatcher) debug(msg string, kv ...any) {
	if d.opts.Logger != nil {
		d.opts.Logger.Debug(msg, kv...)
	}
}
