package tmplgo

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	StringKind ValueKind = iota
	NumberKind
	BooleanKind
	ArrayKind
)

// Value is the tagged union the template language computes with: a
// string, an IEEE-754 double, a boolean, or an array of Value. Exactly one
// of the typed fields is meaningful, selected by Kind; the zero Value is
// the empty string.
//
// Value is deliberately a plain struct rather than an interface: the set
// of variants is closed (spec §3), so there is nothing an interface would
// buy beyond what a tag switch gives for free, and copying a Value never
// needs reflection.
type Value struct {
	Kind ValueKind

	str string
	num float64
	b   bool
	arr []Value
}

// String builds a String-kind Value.
func String(s string) Value { return Value{Kind: StringKind, str: s} }

// Number builds a Number-kind Value.
func Number(n float64) Value { return Value{Kind: NumberKind, num: n} }

// Boolean builds a Boolean-kind Value.
func Boolean(b bool) Value { return Value{Kind: BooleanKind, b: b} }

// Array builds an Array-kind Value. The slice is copied so later mutation
// of elements by the caller is not observable through the Value.
func Array(elems []Value) Value {
	cloned := make([]Value, len(elems))
	copy(cloned, elems)
	return Value{Kind: ArrayKind, arr: cloned}
}

// Str returns the underlying string; valid only when Kind == StringKind.
func (v Value) Str() string { return v.str }

// Num returns the underlying number; valid only when Kind == NumberKind.
func (v Value) Num() float64 { return v.num }

// Bool returns the underlying boolean; valid only when Kind == BooleanKind.
func (v Value) Bool() bool { return v.b }

// Elems returns the underlying array; valid only when Kind == ArrayKind.
// The returned slice is owned by the Value; callers must not mutate it.
func (v Value) Elems() []Value { return v.arr }

// Equal implements spec §3's total equality: same-kind operands compare
// structurally, cross-kind operands are never equal. NaN follows
// IEEE-754 (NaN != NaN), inherited from Go's == on float64.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case StringKind:
		return v.str == other.str
	case NumberKind:
		return v.num == other.num
	case BooleanKind:
		return v.b == other.b
	case ArrayKind:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsTruthy implements spec §4.1's truthiness table: non-empty string;
// number != 0.0 (NaN counts as non-zero, like any other non-zero float);
// the boolean itself; non-empty array.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case StringKind:
		return v.str != ""
	case NumberKind:
		return v.num != 0.0
	case BooleanKind:
		return v.b
	case ArrayKind:
		return len(v.arr) > 0
	default:
		return false
	}
}

// Render renders a Value to its default string form (spec §4.1):
//   - String renders as itself.
//   - Number renders via the shortest round-trip decimal that matches
//     what one would write for the literal — integer-valued doubles
//     render without a trailing ".0" (formatNumber below).
//   - Boolean renders as "true"/"false".
//   - Array renders as its elements' Render, joined by ", ".
func (v Value) Render() string {
	switch v.Kind {
	case StringKind:
		return v.str
	case NumberKind:
		return formatNumber(v.num)
	case BooleanKind:
		if v.b {
			return "true"
		}
		return "false"
	case ArrayKind:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.Render()
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// formatNumber renders a float64 the way a literal for it would be
// written: shortest round-trip representation, no trailing ".0" for
// integer values, and Go's default spelling for the non-finite cases
// (+Inf, -Inf, NaN), per spec §9's "follow the platform's default".
func formatNumber(n float64) string {
	if math.IsInf(n, 1) {
		return "+Inf"
	}
	if math.IsInf(n, -1) {
		return "-Inf"
	}
	if math.IsNaN(n) {
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Add implements the binary "+" from spec §4.1's table:
//
//	Number + Number  -> Number sum
//	String + (String|Number), either side -> concatenation
//	Array  + Array   -> concatenation
//
// Any other combination is an OperationError.
func Add(lhs, rhs Value) (Value, error) {
	switch {
	case lhs.Kind == NumberKind && rhs.Kind == NumberKind:
		return Number(lhs.num + rhs.num), nil
	case lhs.Kind == StringKind && (rhs.Kind == StringKind || rhs.Kind == NumberKind):
		return String(lhs.str + rhs.Render()), nil
	case rhs.Kind == StringKind && lhs.Kind == NumberKind:
		return String(lhs.Render() + rhs.str), nil
	case lhs.Kind == ArrayKind && rhs.Kind == ArrayKind:
		combined := make([]Value, 0, len(lhs.arr)+len(rhs.arr))
		combined = append(combined, lhs.arr...)
		combined = append(combined, rhs.arr...)
		return Array(combined), nil
	default:
		return Value{}, errOperation("cannot add %s and %s", lhs.kindName(), rhs.kindName())
	}
}

// Sub implements the binary "-": Number - Number only.
func Sub(lhs, rhs Value) (Value, error) {
	if lhs.Kind == NumberKind && rhs.Kind == NumberKind {
		return Number(lhs.num - rhs.num), nil
	}
	return Value{}, errOperation("cannot subtract %s from %s", rhs.kindName(), lhs.kindName())
}

// Mul implements the binary "*" from spec §4.1's table:
//
//	Number * Number        -> Number product
//	String * Number (either side) -> repeat(string, floor(number))
//
// A negative or NaN repeat count yields the empty string (spec §9).
func Mul(lhs, rhs Value) (Value, error) {
	switch {
	case lhs.Kind == NumberKind && rhs.Kind == NumberKind:
		return Number(lhs.num * rhs.num), nil
	case lhs.Kind == StringKind && rhs.Kind == NumberKind:
		return String(repeatString(lhs.str, rhs.num)), nil
	case lhs.Kind == NumberKind && rhs.Kind == StringKind:
		return String(repeatString(rhs.str, lhs.num)), nil
	default:
		return Value{}, errOperation("cannot multiply %s and %s", lhs.kindName(), rhs.kindName())
	}
}

// Div implements the binary "/": Number / Number only, following
// IEEE-754 semantics for division by zero (spec §9: no error, the
// result is ±Inf or NaN, rendered via the platform default).
func Div(lhs, rhs Value) (Value, error) {
	if lhs.Kind == NumberKind && rhs.Kind == NumberKind {
		return Number(lhs.num / rhs.num), nil
	}
	return Value{}, errOperation("cannot divide %s by %s", lhs.kindName(), rhs.kindName())
}

// Negate implements unary "-"; defined only on Number.
func Negate(v Value) (Value, error) {
	if v.Kind == NumberKind {
		return Number(-v.num), nil
	}
	return Value{}, errOperation("cannot negate %s", v.kindName())
}

// repeatString implements "repeat(string, floor(number))", treating a
// negative or NaN count as zero per spec §9's resolution of the source's
// unchecked-conversion corner case.
func repeatString(s string, n float64) string {
	if math.IsNaN(n) || n < 0 {
		return ""
	}
	count := int(math.Floor(n))
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}

func (v Value) kindName() string {
	switch v.Kind {
	case StringKind:
		return "string"
	case NumberKind:
		return "number"
	case BooleanKind:
		return "boolean"
	case ArrayKind:
		return "array"
	default:
		return "unknown"
	}
}
