// SPDX-License-Identifier: EPL-2.0

package validate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRangeRule_Apply(t *testing.T) {
	t.Parallel()

	rule := Range(1, 10)

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "int inside", value: 5, wantErr: false},
		{name: "int64 at lower bound", value: int64(1), wantErr: false},
		{name: "float at upper bound", value: 10.0, wantErr: false},
		{name: "below range", value: 0, wantErr: true},
		{name: "above range", value: 10.5, wantErr: true},
		{name: "non-numeric", value: "5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := rule.Apply(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Range(1,10).Apply(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestPatternRule_Apply(t *testing.T) {
	t.Parallel()

	rule := Pattern(`^[a-z]+-[0-9]+$`)

	if err := rule.Apply("region-1"); err != nil {
		t.Errorf("Apply(region-1) error = %v", err)
	}
	if err := rule.Apply("Region1"); err == nil {
		t.Error("Apply(Region1) expected error")
	}
	if err := rule.Apply(42); err == nil {
		t.Error("Apply(42) expected type error")
	}
	if rule.Expr() != `^[a-z]+-[0-9]+$` {
		t.Errorf("Expr() = %q", rule.Expr())
	}
}

func TestPathRule_Apply(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		mode    PathMode
		value   any
		wantErr bool
	}{
		{name: "any accepts file", mode: PathAny, value: file, wantErr: false},
		{name: "any accepts dir", mode: PathAny, value: dir, wantErr: false},
		{name: "file accepts file", mode: PathFile, value: file, wantErr: false},
		{name: "file rejects dir", mode: PathFile, value: dir, wantErr: true},
		{name: "dir accepts dir", mode: PathDir, value: dir, wantErr: false},
		{name: "dir rejects file", mode: PathDir, value: file, wantErr: true},
		{name: "missing path", mode: PathAny, value: filepath.Join(dir, "absent"), wantErr: true},
		{name: "non-string", mode: PathAny, value: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := PathExists(tt.mode).Apply(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("PathExists(%v).Apply(%v) error = %v, wantErr %v", tt.mode, tt.value, err, tt.wantErr)
			}
		})
	}
}
