// SPDX-License-Identifier: MPL-2.0

package scriptrun

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

func invocationFor(params []*cmdmodel.Param, values, globals cmdmodel.Values) *cmdmodel.Invocation {
	return &cmdmodel.Invocation{
		Action:  &cmdmodel.Action{Name: "run", Params: params},
		Values:  values,
		Globals: globals,
	}
}

func TestAction_ExportsBindings(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rt := &Runtime{Stdout: &out, Stderr: &out}

	params := []*cmdmodel.Param{
		{Kind: cmdmodel.Option, Name: "env", Type: cmdmodel.String()},
		{Kind: cmdmodel.Option, Name: "dry-run", Type: cmdmodel.Bool()},
		{Kind: cmdmodel.Option, Name: "timeout", Type: cmdmodel.Duration()},
	}
	values := cmdmodel.Values{
		"env":     "staging",
		"dry-run": true,
		"timeout": 30 * time.Second,
	}
	globals := cmdmodel.Values{"verbose": true}

	run := rt.Action(`echo "$ARG_FLAG_ENV $ARG_FLAG_DRY_RUN $ARG_FLAG_TIMEOUT $ARG_GLOBAL_VERBOSE"`)
	if err := run(context.Background(), invocationFor(params, values, globals)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "staging true 30s true" {
		t.Errorf("output = %q", got)
	}
}

func TestAction_PositionalParams(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rt := &Runtime{Stdout: &out, Stderr: &out}

	params := []*cmdmodel.Param{
		{Kind: cmdmodel.Argument, Name: "target", Type: cmdmodel.String()},
		{Kind: cmdmodel.Argument, Name: "files", Type: cmdmodel.ListOf(cmdmodel.String())},
	}
	values := cmdmodel.Values{
		"target": "prod",
		"files":  []string{"a.txt", "b.txt"},
	}

	run := rt.Action(`echo "$# -> $1 $2 $3"`)
	if err := run(context.Background(), invocationFor(params, values, nil)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "3 -> prod a.txt b.txt" {
		t.Errorf("output = %q", got)
	}
}

func TestAction_OptionLookingPositionalValue(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rt := &Runtime{Stdout: &out, Stderr: &out}

	params := []*cmdmodel.Param{
		{Kind: cmdmodel.Argument, Name: "pattern", Type: cmdmodel.String()},
	}
	run := rt.Action(`echo "$1"`)
	err := run(context.Background(), invocationFor(params, cmdmodel.Values{"pattern": "--not-an-option"}, nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "--not-an-option" {
		t.Errorf("output = %q", got)
	}
}

func TestAction_ExitStatus(t *testing.T) {
	t.Parallel()

	rt := &Runtime{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	run := rt.Action(`exit 7`)
	err := run(context.Background(), invocationFor(nil, cmdmodel.Values{}, nil))

	var status cmdmodel.ExitStatus
	if !errors.As(err, &status) || int(status) != 7 {
		t.Fatalf("err = %v, want ExitStatus(7)", err)
	}
}

func TestAction_SyntaxError(t *testing.T) {
	t.Parallel()

	rt := &Runtime{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	run := rt.Action(`if then fi done`)
	err := run(context.Background(), invocationFor(nil, cmdmodel.Values{}, nil))
	if err == nil {
		t.Fatal("syntax error not surfaced")
	}
	if !strings.Contains(err.Error(), "syntax") {
		t.Errorf("err = %v", err)
	}
}

func TestEnvName(t *testing.T) {
	t.Parallel()

	if got := envName("dry-run"); got != "DRY_RUN" {
		t.Errorf("envName = %q", got)
	}
}
