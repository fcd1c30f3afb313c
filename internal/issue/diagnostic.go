// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUsage is the sentinel error wrapped by every usage-phase Diagnostic.
// Callers can test errors.Is(err, issue.ErrUsage) to distinguish
// resolution/binding failures from execution-phase errors.
var ErrUsage = errors.New("usage error")

// Kind identifies the category of a diagnostic.
type Kind int

const (
	// UnknownCommand means the first token matched no top-level command.
	UnknownCommand Kind = iota + 1
	// UnknownAction means a token matched no action of the resolved command.
	UnknownAction
	// NoActionSpecified means the resolved command has actions but none is
	// marked primary and no action token was supplied.
	NoActionSpecified
	// UnknownOption means an option token matched no declared parameter.
	UnknownOption
	// MissingRequiredParameter means a required parameter received no value
	// from any binding source.
	MissingRequiredParameter
	// ConversionFailure means a raw value could not be converted to the
	// parameter's declared type.
	ConversionFailure
	// ValidationFailure means a converted value failed a declared rule.
	ValidationFailure
	// MutualExclusionConflict means two or more members of the same
	// exclusive group carried a value.
	MutualExclusionConflict
	// UnexpectedArgument means a positional token remained after all
	// declared positional parameters were filled.
	UnexpectedArgument
	// ExecutionCancelled means a before-hook cancelled the invocation.
	ExecutionCancelled
	// ExecutionFailed means the action (or a declining error-hook chain)
	// surfaced an error.
	ExecutionFailed
)

var kindNames = map[Kind]string{
	UnknownCommand:           "unknown command",
	UnknownAction:            "unknown action",
	NoActionSpecified:        "no action specified",
	UnknownOption:            "unknown option",
	MissingRequiredParameter: "missing required parameter",
	ConversionFailure:        "conversion failed",
	ValidationFailure:        "validation failed",
	MutualExclusionConflict:  "mutually exclusive options",
	UnexpectedArgument:       "unexpected argument",
	ExecutionCancelled:       "execution cancelled",
	ExecutionFailed:          "execution failed",
}

// String returns the human-readable category name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("issue.Kind(%d)", int(k))
}

// Usage reports whether the kind belongs to the resolution/binding phase.
// Usage diagnostics are terminal for a dispatch, reported with context, and
// never invoke the action or any hooks.
func (k Kind) Usage() bool {
	return k >= UnknownCommand && k <= UnexpectedArgument
}

type (
	// Diagnostic is a structured, user-facing dispatch error. It records
	// what was expected, what was found, and (for name-matching failures)
	// ranked suggestions.
	//
	// Use the Builder for incremental construction:
	//
	//	return issue.New(issue.UnknownOption).
	//		Withf("unknown option '--%s'", name).
	//		WithSuggestions(matches...).
	//		Build()
	Diagnostic struct {
		// Kind is the diagnostic category.
		Kind Kind

		// Message is the primary user-facing description.
		Message string

		// Suggestions holds "did you mean" candidates, best first.
		Suggestions []string

		// Cause is the underlying error, if any.
		Cause error
	}

	// Builder assembles a Diagnostic field by field.
	Builder struct {
		d Diagnostic
	}
)

// New starts a Builder for the given kind.
func New(kind Kind) *Builder {
	return &Builder{d: Diagnostic{Kind: kind}}
}

// Newf constructs a Diagnostic in one call.
func Newf(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Withf sets the message.
func (b *Builder) Withf(format string, args ...any) *Builder {
	b.d.Message = fmt.Sprintf(format, args...)
	return b
}

// WithSuggestions appends suggestion candidates, preserving order.
func (b *Builder) WithSuggestions(names ...string) *Builder {
	b.d.Suggestions = append(b.d.Suggestions, names...)
	return b
}

// Wrap records the underlying cause.
func (b *Builder) Wrap(err error) *Builder {
	b.d.Cause = err
	return b
}

// Build returns the assembled Diagnostic.
func (b *Builder) Build() *Diagnostic {
	d := b.d
	return &d
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var sb strings.Builder
	if d.Message != "" {
		sb.WriteString(d.Message)
	} else {
		sb.WriteString(d.Kind.String())
	}
	if d.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(d.Cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the cause, and ErrUsage for usage-phase kinds, so that
// errors.Is(d, issue.ErrUsage) holds exactly for resolution/binding failures.
func (d *Diagnostic) Unwrap() []error {
	errs := make([]error, 0, 2)
	if d.Kind.Usage() {
		errs = append(errs, ErrUsage)
	}
	if d.Cause != nil {
		errs = append(errs, d.Cause)
	}
	return errs
}

// As extracts a *Diagnostic from anywhere in err's chain.
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	ok := errors.As(err, &d)
	return d, ok
}
