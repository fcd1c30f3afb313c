// SPDX-License-Identifier: EPL-2.0

package cobrabridge

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
	"github.com/argonaut-cli/argonaut/pkg/dispatch"
)

func bridge(t *testing.T, record *[]*cmdmodel.Invocation) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	root := &cmdmodel.Command{
		Name: "git",
		Children: []*cmdmodel.Command{
			{
				Name: "commit",
				Actions: []*cmdmodel.Action{
					{
						Name:    "create",
						Primary: true,
						Params: []*cmdmodel.Param{
							{Kind: cmdmodel.Option, Name: "message", Short: "m", Required: true, Type: cmdmodel.String()},
						},
						Run: func(_ context.Context, inv *cmdmodel.Invocation) error {
							*record = append(*record, inv)
							return nil
						},
					},
				},
			},
		},
	}

	var stderr bytes.Buffer
	d, err := dispatch.New(root, dispatch.Options{Stderr: &stderr, NoPrompt: true, NoColor: true})
	if err != nil {
		t.Fatalf("dispatch.New: %v", err)
	}
	return Export(d, root), &stderr
}

func TestExport_DelegatesToDispatcher(t *testing.T) {
	t.Parallel()

	var record []*cmdmodel.Invocation
	root, _ := bridge(t, &record)

	root.SetArgs([]string{"commit", "-m", "fix"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(record) != 1 {
		t.Fatalf("action ran %d times, want 1", len(record))
	}
	if got := record[0].Values.String("message"); got != "fix" {
		t.Errorf("message = %q, want %q", got, "fix")
	}
}

func TestExport_UsageDiagnosticBecomesExitError(t *testing.T) {
	t.Parallel()

	var record []*cmdmodel.Invocation
	root, stderr := bridge(t, &record)

	root.SetArgs([]string{"commit"})
	err := root.ExecuteContext(context.Background())
	var exit *ExitError
	if !errors.As(err, &exit) {
		t.Fatalf("Execute error = %v, want *ExitError", err)
	}
	if exit.Code != dispatch.ExitUsage {
		t.Errorf("code = %d, want %d", exit.Code, dispatch.ExitUsage)
	}
	if stderr.Len() == 0 {
		t.Error("diagnostic not reported")
	}
	if len(record) != 0 {
		t.Error("action ran despite missing required option")
	}
}
