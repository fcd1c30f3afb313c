// SPDX-License-Identifier: MPL-2.0

// Package hooks runs the lifecycle of one resolved invocation: before-hooks,
// the action, then after- or error-hooks, in a fixed state machine with
// strictly sequential steps. No step begins before its predecessor's
// effects, including any cancellation flag, are fully observed.
package hooks

import (
	"context"
	"errors"
	"reflect"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

// State is one phase of the orchestration state machine:
// Idle → BeforeHooks → (Cancelled | Action) → (AfterHooks | ErrorHooks) → Done.
type State int

const (
	StateIdle State = iota
	StateBeforeHooks
	StateCancelled
	StateAction
	StateAfterHooks
	StateErrorHooks
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBeforeHooks:
		return "before-hooks"
	case StateCancelled:
		return "cancelled"
	case StateAction:
		return "action"
	case StateAfterHooks:
		return "after-hooks"
	case StateErrorHooks:
		return "error-hooks"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one orchestration.
type Outcome struct {
	// Cancelled reports that a before-hook cancelled the invocation; the
	// action never ran and CancelMessage holds the termination reason.
	Cancelled     bool
	CancelMessage string

	// ExitCode is the resolved code: the action's explicit status, 0 for
	// plain completion, or the mapped code when an error-hook handled the
	// action's error.
	ExitCode int

	// Handled reports that an error-hook claimed the action's error.
	Handled bool

	// States records the traversed machine states, Idle first, Done last.
	States []State
}

// Orchestrator runs hooks and the action for resolved invocations. It is
// stateless; a single Orchestrator may serve concurrent dispatches.
type Orchestrator struct {
	// Logger may be nil.
	Logger *log.Logger
}

// Run executes the lifecycle for one invocation. chain is the resolved
// command path, root first. The returned error is non-nil only when the
// action (or a before-hook) failed and no error-hook handled it; that error
// propagates out of the dispatch as a genuine fault.
func (o *Orchestrator) Run(ctx context.Context, chain []*cmdmodel.Command, inv *cmdmodel.Invocation) (*Outcome, error) {
	out := &Outcome{States: []State{StateIdle}}
	hc := &cmdmodel.HookContext{Invocation: inv}

	out.enter(o, StateBeforeHooks)
	for _, h := range collect(chain, inv.Action, cmdmodel.PhaseBefore) {
		// Remaining before-hooks still run after a cancellation so that
		// several hooks may append diagnostics.
		if err := h.Before(ctx, hc); err != nil {
			return nil, err
		}
	}
	if hc.Cancelled() {
		out.enter(o, StateCancelled)
		out.Cancelled = true
		out.CancelMessage = hc.CancelMessage()
		out.enter(o, StateDone)
		return out, nil
	}

	out.enter(o, StateAction)
	err := inv.Action.Run(ctx, inv)

	var status cmdmodel.ExitStatus
	switch {
	case err == nil:
		out.enter(o, StateAfterHooks)
		o.runAfter(ctx, chain, hc, nil)
	case errors.As(err, &status):
		// An explicit exit status is a normal completion, not a failure.
		out.ExitCode = int(status)
		hc.Result = status
		out.enter(o, StateAfterHooks)
		o.runAfter(ctx, chain, hc, status)
	default:
		out.enter(o, StateErrorHooks)
		hc.Err = err
		handled := false
		for _, h := range collect(chain, inv.Action, cmdmodel.PhaseOnError) {
			claimed, herr := h.OnError(ctx, hc)
			if herr != nil {
				// A failing error-hook declines by definition.
				o.debug("error-hook failed", "error", herr)
				continue
			}
			if claimed {
				handled = true
			}
		}
		if !handled {
			return nil, err
		}
		out.Handled = true
		out.ExitCode = mapExitCode(chain, inv.Action, err)
	}

	out.enter(o, StateDone)
	return out, nil
}

func (o *Orchestrator) runAfter(ctx context.Context, chain []*cmdmodel.Command, hc *cmdmodel.HookContext, result any) {
	hc.Result = result
	for _, h := range collect(chain, hc.Invocation.Action, cmdmodel.PhaseAfter) {
		// After-hooks observe the result; their errors cannot alter it.
		if err := h.After(ctx, hc); err != nil {
			o.debug("after-hook failed", "error", err)
		}
	}
}

func (out *Outcome) enter(o *Orchestrator, s State) {
	out.States = append(out.States, s)
	o.debug("orchestrator state", "state", s.String())
}

// collect gathers the hooks of one phase in execution order: command-level
// hooks from the root down, then action-level hooks, each block sorted by
// ascending Order with declaration order breaking ties.
func collect(chain []*cmdmodel.Command, action *cmdmodel.Action, phase cmdmodel.HookPhase) []cmdmodel.Hook {
	var out []cmdmodel.Hook
	for _, c := range chain {
		out = append(out, phaseHooks(c.Hooks, phase)...)
	}
	return append(out, phaseHooks(action.Hooks, phase)...)
}

func phaseHooks(hooks []cmdmodel.Hook, phase cmdmodel.HookPhase) []cmdmodel.Hook {
	var out []cmdmodel.Hook
	for _, h := range hooks {
		if h.Phase == phase {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// mapExitCode resolves a handled error to its mapped exit code. Mappings are
// consulted nearest first: the action's, then each command from the leaf up
// to the root. Within that, an error wrapped closer to the original failure
// beats one wrapped further out. Unmatched errors map to 1.
func mapExitCode(chain []*cmdmodel.Command, action *cmdmodel.Action, err error) int {
	scopes := [][]cmdmodel.ExitCodeMapping{action.ExitCodes}
	for i := len(chain) - 1; i >= 0; i-- {
		scopes = append(scopes, chain[i].ExitCodes)
	}

	for _, link := range unwrapChain(err) {
		for _, scope := range scopes {
			for _, m := range scope {
				if m.Target != nil && shallowIs(link, m.Target) {
					return m.Code
				}
			}
		}
	}
	return 1
}

// shallowIs matches one link of a wrap chain against a target without
// unwrapping further, so that depth in the chain stays significant.
func shallowIs(e, target error) bool {
	if reflect.TypeOf(target).Comparable() && e == target {
		return true
	}
	x, ok := e.(interface{ Is(error) bool })
	return ok && x.Is(target)
}

// unwrapChain flattens an error's wrap chain, outermost wrapper first.
func unwrapChain(err error) []error {
	var chain []error
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		chain = append(chain, e)
		switch x := e.(type) {
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		case interface{ Unwrap() []error }:
			for _, u := range x.Unwrap() {
				walk(u)
			}
		}
	}
	walk(err)
	return chain
}

func (o *Orchestrator) debug(msg string, kv ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, kv...)
	}
}
