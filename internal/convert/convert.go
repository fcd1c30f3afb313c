// SPDX-License-Identifier: MPL-2.0

// Package convert turns raw string tokens into the typed values a parameter
// declares: primitives, enums, well-known structured types, user-registered
// converters, and element-wise collections of any of those.
package convert

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

// ErrUnknownConverter is returned when a type descriptor names a custom
// converter that was never registered.
var ErrUnknownConverter = errors.New("unknown converter")

// Func converts one raw token into a typed value.
type Func func(raw string) (any, error)

// Error describes a failed conversion: the offending raw value and the
// expected type, for "conversion failed" diagnostics.
type Error struct {
	Raw  string
	Want string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot convert %q to %s", e.Raw, e.Want)
}

func (e *Error) Unwrap() error { return e.Err }

// Registry holds the built-in conversions plus any user-registered custom
// converters. A Registry is immutable once handed to a dispatcher.
type Registry struct {
	custom map[string]Func
}

// NewRegistry returns a registry with only the built-in conversions.
func NewRegistry() *Registry {
	return &Registry{custom: map[string]Func{}}
}

// Register adds a named custom converter. Names must be unique.
func (r *Registry) Register(name string, fn Func) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("converter name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("converter '%s' is nil", name)
	}
	if _, dup := r.custom[name]; dup {
		return fmt.Errorf("converter '%s' already registered", name)
	}
	r.custom[name] = fn
	return nil
}

// Convert converts a single raw token per the descriptor. For list
// descriptors use ConvertList.
func (r *Registry) Convert(t cmdmodel.TypeDescriptor, raw string) (any, error) {
	switch t.Kind {
	case cmdmodel.KindString:
		return raw, nil
	case cmdmodel.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &Error{Raw: raw, Want: "boolean", Err: err}
		}
		return b, nil
	case cmdmodel.KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &Error{Raw: raw, Want: "integer", Err: err}
		}
		return n, nil
	case cmdmodel.KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &Error{Raw: raw, Want: "float", Err: err}
		}
		return f, nil
	case cmdmodel.KindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &Error{Raw: raw, Want: "duration", Err: err}
		}
		return d, nil
	case cmdmodel.KindTimestamp:
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, &Error{Raw: raw, Want: "RFC 3339 timestamp", Err: err}
		}
		return ts, nil
	case cmdmodel.KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, &Error{Raw: raw, Want: "UUID", Err: err}
		}
		return id, nil
	case cmdmodel.KindURL:
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" {
			return nil, &Error{Raw: raw, Want: "URL", Err: err}
		}
		return u, nil
	case cmdmodel.KindIP:
		ip := net.ParseIP(raw)
		if ip == nil {
			return nil, &Error{Raw: raw, Want: "IP address"}
		}
		return ip, nil
	case cmdmodel.KindEnum:
		return convertEnum(t.Enum, raw)
	case cmdmodel.KindCustom:
		fn, ok := r.custom[t.Custom]
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownConverter, t.Custom)
		}
		v, err := fn(raw)
		if err != nil {
			return nil, &Error{Raw: raw, Want: t.Custom, Err: err}
		}
		return v, nil
	case cmdmodel.KindList:
		return nil, fmt.Errorf("list descriptor requires ConvertList")
	default:
		return nil, fmt.Errorf("unknown type kind %d", t.Kind)
	}
}

// ConvertList converts raw tokens element-wise per the list descriptor's
// element type, preserving order, and returns a typed slice for the common
// element kinds.
func (r *Registry) ConvertList(t cmdmodel.TypeDescriptor, raws []string) (any, error) {
	if !t.IsList() || t.Elem == nil {
		return nil, fmt.Errorf("descriptor is not a collection")
	}
	elems := make([]any, 0, len(raws))
	for _, raw := range raws {
		v, err := r.Convert(*t.Elem, raw)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}

	switch t.Elem.Kind {
	case cmdmodel.KindString:
		out := make([]string, len(elems))
		for i, v := range elems {
			out[i] = v.(string)
		}
		return out, nil
	case cmdmodel.KindInt:
		out := make([]int64, len(elems))
		for i, v := range elems {
			out[i] = v.(int64)
		}
		return out, nil
	case cmdmodel.KindFloat:
		out := make([]float64, len(elems))
		for i, v := range elems {
			out[i] = v.(float64)
		}
		return out, nil
	case cmdmodel.KindBool:
		out := make([]bool, len(elems))
		for i, v := range elems {
			out[i] = v.(bool)
		}
		return out, nil
	case cmdmodel.KindDuration:
		out := make([]time.Duration, len(elems))
		for i, v := range elems {
			out[i] = v.(time.Duration)
		}
		return out, nil
	default:
		return elems, nil
	}
}

// convertEnum matches raw against declared members case-insensitively. For
// flags enums the raw value may combine members with commas; segments are
// matched independently and the result is the member set in declared order.
func convertEnum(e *cmdmodel.EnumType, raw string) (any, error) {
	want := enumWant(e)
	if e.Flags {
		requested := map[string]bool{}
		for _, seg := range strings.Split(raw, ",") {
			seg = strings.TrimSpace(seg)
			member, ok := matchMember(e.Members, seg)
			if !ok {
				return nil, &Error{Raw: seg, Want: want}
			}
			requested[member] = true
		}
		// Declared order, OR-combined: duplicates collapse.
		set := make([]string, 0, len(requested))
		for _, m := range e.Members {
			if requested[m] {
				set = append(set, m)
			}
		}
		return set, nil
	}
	member, ok := matchMember(e.Members, raw)
	if !ok {
		return nil, &Error{Raw: raw, Want: want}
	}
	return member, nil
}

func matchMember(members []string, raw string) (string, bool) {
	for _, m := range members {
		if strings.EqualFold(m, raw) {
			return m, true
		}
	}
	return "", false
}

func enumWant(e *cmdmodel.EnumType) string {
	return "one of " + strings.Join(e.Members, "|")
}
