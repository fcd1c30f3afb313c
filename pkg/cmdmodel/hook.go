// SPDX-License-Identifier: EPL-2.0

package cmdmodel

import (
	"context"
	"strings"
)

// HookPhase identifies when a hook runs relative to the action.
type HookPhase int

const (
	// PhaseBefore hooks run before the action and may cancel it.
	PhaseBefore HookPhase = iota
	// PhaseAfter hooks run on normal completion and observe the result.
	PhaseAfter
	// PhaseOnError hooks run when the action fails and may claim the error.
	PhaseOnError
)

func (p HookPhase) String() string {
	switch p {
	case PhaseBefore:
		return "before"
	case PhaseAfter:
		return "after"
	case PhaseOnError:
		return "on-error"
	default:
		return "unknown"
	}
}

type (
	// BeforeFunc runs ahead of the action. Calling hc.Cancel skips the
	// action while letting the remaining before-hooks run. A returned error
	// aborts the dispatch without entering the error-hook path (the action
	// never started).
	BeforeFunc func(ctx context.Context, hc *HookContext) error

	// AfterFunc observes the completed action through hc.Result. It cannot
	// alter the result or the exit code.
	AfterFunc func(ctx context.Context, hc *HookContext) error

	// ErrorFunc inspects hc.Err and reports whether it handled the error.
	// A handled error is suppressed and the exit code comes from the
	// nearest exit-code mapping.
	ErrorFunc func(ctx context.Context, hc *HookContext) (handled bool, err error)

	// Hook attaches one lifecycle function to a command or action. Exactly
	// one of Before, After, OnError must be set, matching Phase. Hooks of
	// the same phase and owner run in ascending Order, ties broken by
	// declaration order; command-level hooks run before action-level ones.
	Hook struct {
		Phase   HookPhase
		Order   int
		Before  BeforeFunc
		After   AfterFunc
		OnError ErrorFunc
	}

	// HookContext is the mutable state shared by the hooks of one dispatch.
	HookContext struct {
		// Invocation is the resolved command path, action, and bound values.
		Invocation *Invocation

		// Result holds the action's completion value for after-hooks:
		// ExitStatus when the action returned one, nil otherwise.
		Result any

		// Err holds the action's error for error-hooks.
		Err error

		cancelled bool
		messages  []string
	}
)

// Cancel marks the invocation as cancelled with a reason. Subsequent
// before-hooks still run and may append their own messages; the action does
// not. Calling Cancel outside the before phase has no effect on an already
// completed action and is ignored by the orchestrator.
func (hc *HookContext) Cancel(msg string) {
	hc.cancelled = true
	if msg != "" {
		hc.messages = append(hc.messages, msg)
	}
}

// Cancelled reports whether any before-hook cancelled the invocation.
func (hc *HookContext) Cancelled() bool { return hc.cancelled }

// CancelMessage joins the accumulated cancellation messages.
func (hc *HookContext) CancelMessage() string {
	return strings.Join(hc.messages, "; ")
}
