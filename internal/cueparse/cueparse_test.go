// SPDX-License-Identifier: MPL-2.0

package cueparse

import (
	"strings"
	"testing"
)

const schema = `
#Widget: {
	name:   string
	count:  int & >=0
	labels?: [...string]
}
`

type widget struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Labels []string `json:"labels,omitempty"`
}

func TestDecodeWithSchema(t *testing.T) {
	t.Parallel()

	got, err := DecodeWithSchema[widget]([]byte(schema), []byte(`
name:   "gear"
count:  2
labels: ["a", "b"]
`), "#Widget", "widget.cue")
	if err != nil {
		t.Fatalf("DecodeWithSchema: %v", err)
	}
	if got.Name != "gear" || got.Count != 2 || len(got.Labels) != 2 {
		t.Errorf("decoded = %+v", got)
	}
}

func TestDecodeWithSchema_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := DecodeWithSchema[widget]([]byte(schema), []byte(`
name:  "gear"
count: -1
`), "#Widget", "widget.cue")
	if err == nil {
		t.Fatal("negative count accepted")
	}
	if !strings.Contains(err.Error(), "widget.cue") {
		t.Errorf("error %q does not name the file", err)
	}
	if !strings.Contains(err.Error(), "count") {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestDecodeWithSchema_MissingRequiredField(t *testing.T) {
	t.Parallel()

	_, err := DecodeWithSchema[widget]([]byte(schema), []byte(`name: "gear"`), "#Widget", "widget.cue")
	if err == nil {
		t.Fatal("incomplete document accepted")
	}
}

func TestJSONPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"actions"}, "actions"},
		{[]string{"actions", "0", "name"}, "actions[0].name"},
		{[]string{"command", "params", "12", "type"}, "command.params[12].type"},
	}
	for _, tt := range tests {
		if got := jsonPath(tt.path); got != tt.want {
			t.Errorf("jsonPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
