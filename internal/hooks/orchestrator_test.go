// SPDX-License-Identifier: MPL-2.0

package hooks

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

// recorder collects the order in which hooks and the action run.
type recorder struct {
	steps []string
}

func (r *recorder) before(name string) cmdmodel.BeforeFunc {
	return func(context.Context, *cmdmodel.HookContext) error {
		r.steps = append(r.steps, name)
		return nil
	}
}

func (r *recorder) after(name string) cmdmodel.AfterFunc {
	return func(context.Context, *cmdmodel.HookContext) error {
		r.steps = append(r.steps, name)
		return nil
	}
}

func invocation(chain []*cmdmodel.Command, action *cmdmodel.Action) *cmdmodel.Invocation {
	return &cmdmodel.Invocation{
		Command: chain[len(chain)-1],
		Action:  action,
		Values:  cmdmodel.Values{},
	}
}

func TestRun_HookOrdering(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	action := &cmdmodel.Action{
		Name: "deploy",
		Run: func(context.Context, *cmdmodel.Invocation) error {
			rec.steps = append(rec.steps, "action")
			return nil
		},
		Hooks: []cmdmodel.Hook{
			{Phase: cmdmodel.PhaseBefore, Order: 2, Before: rec.before("action-before-2")},
			{Phase: cmdmodel.PhaseBefore, Order: 1, Before: rec.before("action-before-1")},
			{Phase: cmdmodel.PhaseAfter, Order: 1, After: rec.after("action-after")},
		},
	}
	root := &cmdmodel.Command{
		Name: "app",
		Hooks: []cmdmodel.Hook{
			{Phase: cmdmodel.PhaseBefore, Order: 5, Before: rec.before("cmd-before-5")},
			{Phase: cmdmodel.PhaseBefore, Order: 5, Before: rec.before("cmd-before-5b")},
			{Phase: cmdmodel.PhaseBefore, Order: 1, Before: rec.before("cmd-before-1")},
			{Phase: cmdmodel.PhaseAfter, Order: 1, After: rec.after("cmd-after")},
		},
		Actions: []*cmdmodel.Action{action},
	}
	chain := []*cmdmodel.Command{root}

	out, err := (&Orchestrator{}).Run(context.Background(), chain, invocation(chain, action))
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if out.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", out.ExitCode)
	}

	// Command-level before action-level; ascending order; declaration order
	// breaks ties; after-hooks in the same convention.
	want := []string{
		"cmd-before-1", "cmd-before-5", "cmd-before-5b",
		"action-before-1", "action-before-2",
		"action",
		"cmd-after", "action-after",
	}
	if !reflect.DeepEqual(rec.steps, want) {
		t.Errorf("steps = %v\nwant    %v", rec.steps, want)
	}

	wantStates := []State{StateIdle, StateBeforeHooks, StateAction, StateAfterHooks, StateDone}
	if !reflect.DeepEqual(out.States, wantStates) {
		t.Errorf("states = %v, want %v", out.States, wantStates)
	}
}

func TestRun_CancellationSkipsActionButRunsRemainingBeforeHooks(t *testing.T) {
	t.Parallel()

	var ran []string
	action := &cmdmodel.Action{
		Name: "push",
		Run: func(context.Context, *cmdmodel.Invocation) error {
			ran = append(ran, "action")
			return nil
		},
		Hooks: []cmdmodel.Hook{
			{Phase: cmdmodel.PhaseBefore, Order: 1, Before: func(_ context.Context, hc *cmdmodel.HookContext) error {
				ran = append(ran, "auth")
				hc.Cancel("Authentication required")
				return nil
			}},
			{Phase: cmdmodel.PhaseBefore, Order: 2, Before: func(_ context.Context, hc *cmdmodel.HookContext) error {
				ran = append(ran, "audit")
				hc.Cancel("see audit log")
				return nil
			}},
			{Phase: cmdmodel.PhaseAfter, Order: 1, After: func(context.Context, *cmdmodel.HookContext) error {
				ran = append(ran, "after")
				return nil
			}},
		},
	}
	root := &cmdmodel.Command{Name: "app", Actions: []*cmdmodel.Action{action}}
	chain := []*cmdmodel.Command{root}

	out, err := (&Orchestrator{}).Run(context.Background(), chain, invocation(chain, action))
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if !out.Cancelled {
		t.Fatal("outcome not cancelled")
	}
	if out.CancelMessage != "Authentication required; see audit log" {
		t.Errorf("CancelMessage = %q", out.CancelMessage)
	}
	if !reflect.DeepEqual(ran, []string{"auth", "audit"}) {
		t.Errorf("ran = %v; the action and after-hooks must not run", ran)
	}

	wantStates := []State{StateIdle, StateBeforeHooks, StateCancelled, StateDone}
	if !reflect.DeepEqual(out.States, wantStates) {
		t.Errorf("states = %v, want %v", out.States, wantStates)
	}
}

func TestRun_ExplicitExitStatusIsNormalCompletion(t *testing.T) {
	t.Parallel()

	var observed any
	action := &cmdmodel.Action{
		Name: "check",
		Run: func(context.Context, *cmdmodel.Invocation) error {
			return cmdmodel.ExitStatus(7)
		},
		Hooks: []cmdmodel.Hook{
			{Phase: cmdmodel.PhaseAfter, After: func(_ context.Context, hc *cmdmodel.HookContext) error {
				observed = hc.Result
				return nil
			}},
			{Phase: cmdmodel.PhaseOnError, OnError: func(context.Context, *cmdmodel.HookContext) (bool, error) {
				t.Error("error-hook ran for an explicit exit status")
				return false, nil
			}},
		},
	}
	root := &cmdmodel.Command{Name: "app", Actions: []*cmdmodel.Action{action}}
	chain := []*cmdmodel.Command{root}

	out, err := (&Orchestrator{}).Run(context.Background(), chain, invocation(chain, action))
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if out.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", out.ExitCode)
	}
	if observed != cmdmodel.ExitStatus(7) {
		t.Errorf("after-hook observed %v, want ExitStatus(7)", observed)
	}
}

var errNotFound = errors.New("file not found")

func TestRun_HandledErrorMapsExitCode(t *testing.T) {
	t.Parallel()

	action := &cmdmodel.Action{
		Name: "read",
		Run: func(context.Context, *cmdmodel.Invocation) error {
			return fmt.Errorf("reading config: %w", errNotFound)
		},
		ExitCodes: []cmdmodel.ExitCodeMapping{
			{Target: errNotFound, Code: 3},
		},
		Hooks: []cmdmodel.Hook{
			{Phase: cmdmodel.PhaseOnError, OnError: func(_ context.Context, hc *cmdmodel.HookContext) (bool, error) {
				if hc.Err == nil {
					t.Error("error-hook saw no error")
				}
				return true, nil
			}},
		},
	}
	root := &cmdmodel.Command{Name: "app", Actions: []*cmdmodel.Action{action}}
	chain := []*cmdmodel.Command{root}

	out, err := (&Orchestrator{}).Run(context.Background(), chain, invocation(chain, action))
	if err != nil {
		t.Fatalf("Run error = %v, want handled", err)
	}
	if !out.Handled {
		t.Error("outcome not marked handled")
	}
	if out.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", out.ExitCode)
	}
}

func TestRun_UnhandledErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	action := &cmdmodel.Action{
		Name: "fail",
		Run: func(context.Context, *cmdmodel.Invocation) error {
			return boom
		},
		Hooks: []cmdmodel.Hook{
			{Phase: cmdmodel.PhaseOnError, OnError: func(context.Context, *cmdmodel.HookContext) (bool, error) {
				return false, nil
			}},
		},
	}
	root := &cmdmodel.Command{Name: "app", Actions: []*cmdmodel.Action{action}}
	chain := []*cmdmodel.Command{root}

	_, err := (&Orchestrator{}).Run(context.Background(), chain, invocation(chain, action))
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want boom to propagate", err)
	}
}

func TestRun_NoErrorHooksMeansUnhandled(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	action := &cmdmodel.Action{
		Name: "fail",
		Run:  func(context.Context, *cmdmodel.Invocation) error { return boom },
	}
	root := &cmdmodel.Command{Name: "app", Actions: []*cmdmodel.Action{action}}
	chain := []*cmdmodel.Command{root}

	_, err := (&Orchestrator{}).Run(context.Background(), chain, invocation(chain, action))
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want boom", err)
	}
}

func TestMapExitCode_NearestScopeWins(t *testing.T) {
	t.Parallel()

	base := errors.New("io failure")
	specific := fmt.Errorf("open /etc/app: %w", base)

	action := &cmdmodel.Action{
		Name:      "a",
		Run:       func(context.Context, *cmdmodel.Invocation) error { return nil },
		ExitCodes: []cmdmodel.ExitCodeMapping{{Target: base, Code: 11}},
	}
	parent := &cmdmodel.Command{
		Name:      "parent",
		ExitCodes: []cmdmodel.ExitCodeMapping{{Target: base, Code: 22}},
	}
	root := &cmdmodel.Command{
		Name:      "root",
		ExitCodes: []cmdmodel.ExitCodeMapping{{Target: base, Code: 33}},
	}
	chain := []*cmdmodel.Command{root, parent}

	if got := mapExitCode(chain, action, specific); got != 11 {
		t.Errorf("action mapping: got %d, want 11", got)
	}

	action.ExitCodes = nil
	if got := mapExitCode(chain, action, specific); got != 22 {
		t.Errorf("leaf command mapping: got %d, want 22", got)
	}

	parent.ExitCodes = nil
	if got := mapExitCode(chain, action, specific); got != 33 {
		t.Errorf("root mapping: got %d, want 33", got)
	}

	root.ExitCodes = nil
	if got := mapExitCode(chain, action, specific); got != 1 {
		t.Errorf("unmatched mapping: got %d, want 1", got)
	}
}

func TestMapExitCode_DeeperWrapBeatsOuter(t *testing.T) {
	t.Parallel()

	inner := errors.New("disk full")
	outer := fmt.Errorf("save failed: %w", inner)

	action := &cmdmodel.Action{
		Name: "a",
		Run:  func(context.Context, *cmdmodel.Invocation) error { return nil },
		ExitCodes: []cmdmodel.ExitCodeMapping{
			// Declared first, but the sentinel sits deeper in the wrap chain
			// than the outer wrapper, so it must not win for the outer error.
			{Target: inner, Code: 51},
			{Target: outer, Code: 50},
		},
	}

	// The outer wrapper is nearer the thrown error than the inner sentinel,
	// so its mapping wins over the one for the wrapped cause.
	if got := mapExitCode(nil, action, outer); got != 50 {
		t.Errorf("got %d, want 50", got)
	}
	if got := mapExitCode(nil, action, inner); got != 51 {
		t.Errorf("got %d, want 51", got)
	}
}
