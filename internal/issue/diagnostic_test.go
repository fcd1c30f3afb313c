// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_Usage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want bool
	}{
		{UnknownCommand, true},
		{UnknownAction, true},
		{NoActionSpecified, true},
		{UnknownOption, true},
		{MissingRequiredParameter, true},
		{ConversionFailure, true},
		{ValidationFailure, true},
		{MutualExclusionConflict, true},
		{UnexpectedArgument, true},
		{ExecutionCancelled, false},
		{ExecutionFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			if got := tt.kind.Usage(); got != tt.want {
				t.Errorf("Kind(%v).Usage() = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestDiagnostic_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    *Diagnostic
		want string
	}{
		{
			name: "message only",
			d:    Newf(UnknownOption, "unknown option '--vrebose'"),
			want: "unknown option '--vrebose'",
		},
		{
			name: "message with cause",
			d: New(ConversionFailure).
				Withf("cannot convert 'abc' for --count").
				Wrap(errors.New("invalid syntax")).
				Build(),
			want: "cannot convert 'abc' for --count: invalid syntax",
		},
		{
			name: "kind fallback when no message",
			d:    &Diagnostic{Kind: NoActionSpecified},
			want: "no action specified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.d.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnostic_UnwrapsUsageSentinel(t *testing.T) {
	t.Parallel()

	usage := Newf(MissingRequiredParameter, "missing required option '--environment'")
	if !errors.Is(usage, ErrUsage) {
		t.Error("usage diagnostic does not wrap ErrUsage")
	}

	exec := Newf(ExecutionFailed, "boom")
	if errors.Is(exec, ErrUsage) {
		t.Error("execution diagnostic must not wrap ErrUsage")
	}

	// Wrapped causes stay reachable.
	cause := errors.New("root cause")
	d := New(ConversionFailure).Withf("bad value").Wrap(cause).Build()
	if !errors.Is(d, cause) {
		t.Error("diagnostic does not wrap its cause")
	}
}

func TestAs(t *testing.T) {
	t.Parallel()

	inner := Newf(UnknownCommand, "unknown command 'buld'")
	wrapped := fmt.Errorf("dispatch: %w", inner)

	got, ok := As(wrapped)
	if !ok {
		t.Fatal("As() did not find the diagnostic")
	}
	if got.Kind != UnknownCommand {
		t.Errorf("As() kind = %v, want %v", got.Kind, UnknownCommand)
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("As() matched a plain error")
	}
}

func TestExplain(t *testing.T) {
	// Not parallel: swaps the package-level renderer.
	orig := render
	render = func(in, _ string) (string, error) { return in, nil }
	defer func() { render = orig }()

	out, err := Explain(UnknownOption, "notty")
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if out == "" {
		t.Fatal("Explain() returned empty text")
	}

	if _, err := Explain(Kind(99), "notty"); err == nil {
		t.Error("Explain() accepted an uncatalogued kind")
	}
}

func TestKinds_CoversTaxonomy(t *testing.T) {
	t.Parallel()

	ks := Kinds()
	if len(ks) != len(kindNames) {
		t.Fatalf("catalog has %d entries, taxonomy has %d", len(ks), len(kindNames))
	}
	for i := 1; i < len(ks); i++ {
		if ks[i-1] >= ks[i] {
			t.Fatalf("Kinds() not ascending: %v", ks)
		}
	}
}
