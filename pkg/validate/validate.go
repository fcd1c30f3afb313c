// SPDX-License-Identifier: EPL-2.0

// Package validate provides the declarative constraint rules that command
// models attach to parameters. Rules run against converted values, in
// declaration order, after binding; the first failing rule aborts binding.
package validate

import (
	"fmt"
	"os"
	"regexp"
)

// Rule is a single declarative constraint on a converted parameter value.
type Rule interface {
	// Name identifies the rule in "validation failed" diagnostics.
	Name() string
	// Apply returns a descriptive error when v violates the rule.
	Apply(v any) error
}

type (
	// RangeRule constrains numeric values to an inclusive interval.
	RangeRule struct {
		Min, Max float64
	}

	// PatternRule constrains string values to a regular expression.
	PatternRule struct {
		re *regexp.Regexp
	}

	// PathRule requires a string value to name an existing filesystem path.
	PathRule struct {
		// Mode narrows the requirement to a file or directory.
		Mode PathMode
	}
)

// PathMode selects what kind of filesystem entry a PathRule accepts.
type PathMode int

const (
	// PathAny accepts any existing path.
	PathAny PathMode = iota
	// PathFile accepts only regular files.
	PathFile
	// PathDir accepts only directories.
	PathDir
)

// Range builds an inclusive numeric range rule.
func Range(min, max float64) RangeRule {
	return RangeRule{Min: min, Max: max}
}

// Pattern builds a regular-expression rule. The expression must compile;
// invalid expressions are a programming error in the model definition.
func Pattern(expr string) PatternRule {
	return PatternRule{re: regexp.MustCompile(expr)}
}

// PathExists builds a path-existence rule.
func PathExists(mode PathMode) PathRule {
	return PathRule{Mode: mode}
}

func (RangeRule) Name() string { return "range" }

// Apply accepts any numeric Go value produced by the conversion registry.
func (r RangeRule) Apply(v any) error {
	var n float64
	switch t := v.(type) {
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case float64:
		n = t
	default:
		return fmt.Errorf("range rule applies to numeric values, got %T", v)
	}
	if n < r.Min || n > r.Max {
		return fmt.Errorf("%v is outside the range [%v, %v]", v, r.Min, r.Max)
	}
	return nil
}

func (PatternRule) Name() string { return "pattern" }

func (p PatternRule) Apply(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("pattern rule applies to string values, got %T", v)
	}
	if !p.re.MatchString(s) {
		return fmt.Errorf("%q does not match pattern %q", s, p.re.String())
	}
	return nil
}

// Expr returns the source expression, for model-file round-trips.
func (p PatternRule) Expr() string { return p.re.String() }

func (PathRule) Name() string { return "path" }

func (p PathRule) Apply(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("path rule applies to string values, got %T", v)
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("path %q does not exist", s)
	}
	switch p.Mode {
	case PathFile:
		if info.IsDir() {
			return fmt.Errorf("path %q is a directory, expected a file", s)
		}
	case PathDir:
		if !info.IsDir() {
			return fmt.Errorf("path %q is not a directory", s)
		}
	}
	return nil
}
