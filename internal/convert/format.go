// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

// Format renders a converted value back to its token form. Converting the
// result again yields an equivalent value for every primitive, enum, and
// well-known type.
func Format(t cmdmodel.TypeDescriptor, v any) (string, error) {
	if t.IsList() {
		return "", fmt.Errorf("collections have no single token form")
	}
	switch t.Kind {
	case cmdmodel.KindString:
		s, ok := v.(string)
		if !ok {
			return "", formatTypeErr(v, "string")
		}
		return s, nil
	case cmdmodel.KindBool:
		b, ok := v.(bool)
		if !ok {
			return "", formatTypeErr(v, "bool")
		}
		return strconv.FormatBool(b), nil
	case cmdmodel.KindInt:
		n, ok := v.(int64)
		if !ok {
			return "", formatTypeErr(v, "int64")
		}
		return strconv.FormatInt(n, 10), nil
	case cmdmodel.KindFloat:
		f, ok := v.(float64)
		if !ok {
			return "", formatTypeErr(v, "float64")
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case cmdmodel.KindDuration:
		d, ok := v.(time.Duration)
		if !ok {
			return "", formatTypeErr(v, "time.Duration")
		}
		return d.String(), nil
	case cmdmodel.KindTimestamp:
		ts, ok := v.(time.Time)
		if !ok {
			return "", formatTypeErr(v, "time.Time")
		}
		return ts.Format(time.RFC3339), nil
	case cmdmodel.KindUUID:
		id, ok := v.(uuid.UUID)
		if !ok {
			return "", formatTypeErr(v, "uuid.UUID")
		}
		return id.String(), nil
	case cmdmodel.KindURL:
		u, ok := v.(*url.URL)
		if !ok {
			return "", formatTypeErr(v, "*url.URL")
		}
		return u.String(), nil
	case cmdmodel.KindIP:
		ip, ok := v.(net.IP)
		if !ok {
			return "", formatTypeErr(v, "net.IP")
		}
		return ip.String(), nil
	case cmdmodel.KindEnum:
		switch m := v.(type) {
		case string:
			return m, nil
		case []string:
			return strings.Join(m, ","), nil
		default:
			return "", formatTypeErr(v, "enum member")
		}
	default:
		return "", fmt.Errorf("type kind %d has no formatter", t.Kind)
	}
}

// FormatList renders a collection back to a comma-joined token list.
func FormatList(t cmdmodel.TypeDescriptor, v any) (string, error) {
	if !t.IsList() || t.Elem == nil {
		return "", fmt.Errorf("type kind %d is not a collection", t.Kind)
	}
	var parts []string
	switch s := v.(type) {
	case []string:
		parts = s
	case []int64:
		for _, n := range s {
			parts = append(parts, strconv.FormatInt(n, 10))
		}
	case []float64:
		for _, f := range s {
			parts = append(parts, strconv.FormatFloat(f, 'g', -1, 64))
		}
	case []bool:
		for _, b := range s {
			parts = append(parts, strconv.FormatBool(b))
		}
	case []time.Duration:
		for _, d := range s {
			parts = append(parts, d.String())
		}
	case []any:
		for _, e := range s {
			token, err := Format(*t.Elem, e)
			if err != nil {
				return "", err
			}
			parts = append(parts, token)
		}
	default:
		return "", formatTypeErr(v, "collection")
	}
	return strings.Join(parts, ","), nil
}

func formatTypeErr(v any, want string) error {
	return fmt.Errorf("value %T is not %s", v, want)
}
