// SPDX-License-Identifier: MPL-2.0

// Package cueparse decodes CUE documents against an embedded schema. It
// implements the 3-step flow used by the model-file loader: compile the
// schema, compile the user data and unify the two, then validate and decode
// into a Go struct. Errors carry the CUE path of the offending field in
// JSON-path notation.
package cueparse

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

// MaxFileSize bounds the accepted document size. Model files are authored
// by hand; anything larger is a mistake, not a model.
const MaxFileSize = 4 << 20

// DecodeWithSchema unifies data with the definition rootDef of the given
// schema and decodes the result into T. filename is used for error messages
// only.
func DecodeWithSchema[T any](schema, data []byte, rootDef, filename string) (*T, error) {
	if int64(len(data)) > MaxFileSize {
		return nil, fmt.Errorf("%s: file size %d exceeds maximum %d bytes", filename, len(data), int64(MaxFileSize))
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: compile schema: %w", schemaValue.Err())
	}
	schemaRoot := schemaValue.LookupPath(cue.ParsePath(rootDef))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", rootDef, schemaRoot.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}
	return &out, nil
}

// FormatError rewrites a CUE error as "<file>: <json-path>: <message>",
// one line per underlying error.
func FormatError(err error, filename string) error {
	if err == nil {
		return nil
	}
	cueErrs := errors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		path := jsonPath(errors.Path(e))
		msg := e.Error()
		// CUE sometimes repeats the path inside the message.
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		if path != "" {
			lines = append(lines, path+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}
	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filename, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filename, strings.Join(lines, "\n  "))
}

// jsonPath renders a CUE error path like ["actions", "0", "name"] as
// "actions[0].name".
func jsonPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
