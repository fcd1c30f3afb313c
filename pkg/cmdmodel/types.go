// SPDX-License-Identifier: EPL-2.0

package cmdmodel

// TypeKind enumerates the value categories the conversion registry handles.
type TypeKind int

const (
	// KindString is the default parameter type.
	KindString TypeKind = iota
	// KindBool gives a parameter flag semantics: as an option it consumes
	// no value token and defaults to false.
	KindBool
	// KindInt converts to int64.
	KindInt
	// KindFloat converts to float64.
	KindFloat
	// KindDuration converts with time.ParseDuration.
	KindDuration
	// KindTimestamp converts RFC 3339 text to time.Time.
	KindTimestamp
	// KindUUID converts to uuid.UUID.
	KindUUID
	// KindURL converts to *url.URL.
	KindURL
	// KindIP converts to net.IP.
	KindIP
	// KindEnum matches declared members case-insensitively.
	KindEnum
	// KindCustom delegates to a converter registered under Custom.
	KindCustom
	// KindList converts element-wise per Elem.
	KindList
)

type (
	// TypeDescriptor describes how raw string tokens become typed values.
	TypeDescriptor struct {
		Kind TypeKind
		// Enum is set when Kind is KindEnum.
		Enum *EnumType
		// Custom names a registered converter when Kind is KindCustom.
		Custom string
		// Elem describes list elements when Kind is KindList. Lists of
		// lists are not supported.
		Elem *TypeDescriptor
	}

	// EnumType declares the member set of an enum parameter.
	EnumType struct {
		// Members are the canonical member names, in declared order.
		Members []string
		// Flags enables comma-separated combinations, each segment matched
		// independently and combined into a set.
		Flags bool
	}
)

// Convenience constructors for declaring parameter types in struct literals.

// String describes a plain string parameter.
func String() TypeDescriptor { return TypeDescriptor{Kind: KindString} }

// Bool describes a boolean flag parameter.
func Bool() TypeDescriptor { return TypeDescriptor{Kind: KindBool} }

// Int describes an integer parameter.
func Int() TypeDescriptor { return TypeDescriptor{Kind: KindInt} }

// Float describes a floating-point parameter.
func Float() TypeDescriptor { return TypeDescriptor{Kind: KindFloat} }

// Duration describes a time.Duration parameter.
func Duration() TypeDescriptor { return TypeDescriptor{Kind: KindDuration} }

// Timestamp describes an RFC 3339 time.Time parameter.
func Timestamp() TypeDescriptor { return TypeDescriptor{Kind: KindTimestamp} }

// UUID describes a uuid.UUID parameter.
func UUID() TypeDescriptor { return TypeDescriptor{Kind: KindUUID} }

// URL describes a *url.URL parameter.
func URL() TypeDescriptor { return TypeDescriptor{Kind: KindURL} }

// IP describes a net.IP parameter.
func IP() TypeDescriptor { return TypeDescriptor{Kind: KindIP} }

// Enum describes an enum parameter over the given members.
func Enum(members ...string) TypeDescriptor {
	return TypeDescriptor{Kind: KindEnum, Enum: &EnumType{Members: members}}
}

// FlagsEnum describes an enum parameter accepting OR-combined members.
func FlagsEnum(members ...string) TypeDescriptor {
	return TypeDescriptor{Kind: KindEnum, Enum: &EnumType{Members: members, Flags: true}}
}

// Custom describes a parameter converted by the named registered converter.
func Custom(name string) TypeDescriptor {
	return TypeDescriptor{Kind: KindCustom, Custom: name}
}

// ListOf describes a collection parameter with the given element type.
func ListOf(elem TypeDescriptor) TypeDescriptor {
	e := elem
	return TypeDescriptor{Kind: KindList, Elem: &e}
}

// IsBool reports whether the descriptor has flag semantics.
func (t TypeDescriptor) IsBool() bool { return t.Kind == KindBool }

// IsList reports whether the descriptor is a collection.
func (t TypeDescriptor) IsList() bool { return t.Kind == KindList }
