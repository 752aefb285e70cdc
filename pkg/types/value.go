package types

import "strconv"

// ValueKind identifies the runtime kind of a Value.
type ValueKind uint8

const (
	KindNumber ValueKind = iota
	KindString
	KindBool
)

// String returns a human-readable kind name for diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "(unknown)"
	}
}

// Value is the runtime value model of the routing language: a tagged union
// of exactly three kinds — Number (double precision), String, and Bool.
//
// There is no null or undefined kind. A lookup that finds nothing is an
// error, never a value. Values are immutable; the zero Value is the
// number 0.
type Value struct {
	str  string
	num  float64
	b    bool
	kind ValueKind
}

// NumberValue returns a Value of kind Number.
func NumberValue(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// StringValue returns a Value of kind String.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// BoolValue returns a Value of kind Bool.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the kind tag of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Num returns the numeric payload. Only meaningful when Kind is KindNumber.
func (v Value) Num() float64 {
	return v.num
}

// Str returns the string payload. Only meaningful when Kind is KindString.
func (v Value) Str() string {
	return v.str
}

// Bool returns the boolean payload. Only meaningful when Kind is KindBool.
func (v Value) Bool() bool {
	return v.b
}

// Equal reports ordinary value equality for same-kind operands.
// Operands of differing kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	default:
		return v.b == other.b
	}
}

// Format returns the canonical string form of the value, as produced by
// str::from: numbers with the minimum digits needed (no trailing
// insignificant zeros), booleans as "true"/"false", strings unchanged.
func (v Value) Format() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// String implements fmt.Stringer with the canonical form.
func (v Value) String() string {
	return v.Format()
}
