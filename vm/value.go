package vm

import (
	"math"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Value: the closed scalar variant set
// ---------------------------------------------------------------------------

// ValueKind identifies the variant stored in a Value.
type ValueKind uint8

const (
	KindVoid ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindStr
)

var valueKindNames = [...]string{
	KindVoid:  "Void",
	KindInt:   "Int",
	KindFloat: "Float",
	KindBool:  "Bool",
	KindStr:   "Str",
}

func (k ValueKind) String() string { return valueKindNames[k] }

// Value is a Knoten scalar. Exactly one payload field is meaningful,
// selected by kind. Values copy by assignment; there is no sharing.
//
// There is no cross-variant coercion anywhere: Int and Float never
// promote into each other, and equality is variant-sensitive.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
}

// VoidValue is the unit value produced by empty blocks, false
// conditionals without an else-branch, and normally-exiting loops.
var VoidValue = Value{kind: KindVoid}

// IntValue builds an Int value.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// FloatValue builds a Float value.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// BoolValue builds a Bool value.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// StrValue builds a Str value.
func StrValue(v string) Value { return Value{kind: KindStr, s: v} }

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsVoid returns true if v is the unit value.
func (v Value) IsVoid() bool { return v.kind == KindVoid }

// Int returns the integer payload. Panics if v is not an Int.
func (v Value) Int() int64 {
	if v.kind != KindInt {
		panic("Value.Int: not an Int")
	}
	return v.i
}

// Float returns the float payload. Panics if v is not a Float.
func (v Value) Float() float64 {
	if v.kind != KindFloat {
		panic("Value.Float: not a Float")
	}
	return v.f
}

// Bool returns the boolean payload. Panics if v is not a Bool.
func (v Value) Bool() bool {
	if v.kind != KindBool {
		panic("Value.Bool: not a Bool")
	}
	return v.b
}

// Str returns the string payload. Panics if v is not a Str.
func (v Value) Str() string {
	if v.kind != KindStr {
		panic("Value.Str: not a Str")
	}
	return v.s
}

// Equals reports structural, variant-sensitive equality. Values of
// different variants are never equal: IntValue(1) does not equal
// FloatValue(1.0).
func (v Value) Equals(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindStr:
		return v.s == o.s
	default: // Void
		return true
	}
}

// ---------------------------------------------------------------------------
// Canonical rendering
// ---------------------------------------------------------------------------

// String renders the type-annotated form used for the terminal value
// of an execution report: `42 (i64)`, `1.0 (f64)`, `true (bool)`,
// `"hi" (String)`, `void`.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10) + " (i64)"
	case KindFloat:
		return formatFloat(v.f) + " (f64)"
	case KindBool:
		return strconv.FormatBool(v.b) + " (bool)"
	case KindStr:
		return "\"" + v.s + "\" (String)"
	default:
		return "void"
	}
}

// Plain renders the bare form used for memory bindings in an
// execution report: integers and booleans unadorned, floats always
// with a decimal point, strings double-quoted.
func (v Value) Plain() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindStr:
		return "\"" + v.s + "\""
	default:
		return "void"
	}
}

// formatFloat renders a float so that whole values keep a decimal
// point: 1.0 renders as "1.0", never "1". Exponent forms render with
// a bare signed exponent: "1e21" and "1e-7", never "1e+21" or
// "1e-07".
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		return s[:i+1] + trimExponent(s[i+1:])
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// trimExponent drops the explicit plus sign and zero padding Go's
// formatter puts on exponents: "+21" becomes "21", "-07" becomes "-7".
func trimExponent(exp string) string {
	sign := ""
	switch exp[0] {
	case '+':
		exp = exp[1:]
	case '-':
		sign, exp = "-", exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return sign + exp
}
