// ==============================================================================================
// FILE: value/value.go
// ==============================================================================================
// PACKAGE: value
// PURPOSE: The runtime datum of NaC programs. A Value is a closed tagged union over four
//          cases (Int, Float, Str, Array) — encoded as a small interface implemented by exactly
//          those four concrete types, the way the language's evaluator/AST-kind sets are encoded
//          too (see object.Object in the teacher this package is adapted from).
// ==============================================================================================

package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Resource limits observable from outside the interpreter (spec §6).
const (
	MaxStringLen = 1024  // strings are bounded to MaxStringLen-1 bytes, NUL-free internally
	MaxArraySize = 10000 // arrays are bounded to this many elements
)

// ValueType tags the dynamic kind of a Value. The set is closed; NaC has no user-defined types.
type ValueType string

const (
	IntType   ValueType = "INT"
	FloatType ValueType = "FLOAT"
	StrType   ValueType = "STR"
	ArrayType ValueType = "ARRAY"
)

// Value is the universal runtime datum. Int, Float, Str and Array are its only
// implementations; there is no reference-counted sharing — every write, read, or return
// across an Environment boundary takes a fresh Copy.
type Value interface {
	Type() ValueType
	Inspect() string
}

// Int is a 32-bit signed integer value.
type Int struct {
	Value int32
}

func (i *Int) Type() ValueType { return IntType }
func (i *Int) Inspect() string { return strconv.FormatInt(int64(i.Value), 10) }

// Float is a 64-bit IEEE floating point value.
type Float struct {
	Value float64
}

func (f *Float) Type() ValueType { return FloatType }
func (f *Float) Inspect() string { return formatFloat(f.Value) }

// Str is a bounded text value. NewString enforces the MaxStringLen-1 cap at construction.
type Str struct {
	Value string
}

func (s *Str) Type() ValueType { return StrType }
func (s *Str) Inspect() string { return s.Value }

// NewString builds a Str, silently truncating at MaxStringLen-1 bytes (spec §6/§8).
func NewString(s string) *Str {
	if len(s) > MaxStringLen-1 {
		s = s[:MaxStringLen-1]
	}
	return &Str{Value: s}
}

// Array is an ordered, bounded sequence of Values. Elements is owned exclusively by this
// Array: nothing outside Copy ever aliases it.
type Array struct {
	Elements []Value
}

func (a *Array) Type() ValueType { return ArrayType }

// Inspect renders the array the way out(...) prints it: "[e0, e1, ...]" with string
// elements quoted. This differs deliberately from FormatForJoin, which the join(...)
// builtin uses to render elements unquoted (see SPEC_FULL.md §C).
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		if s, ok := el.(*Str); ok {
			parts[i] = strconv.Quote(s.Value)
		} else {
			parts[i] = el.Inspect()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NewInt0 constructs the dummy value every erroring operation yields: Int(0).
func NewInt0() *Int { return &Int{Value: 0} }

// Copy produces a value with no shared substructure with v: a deep copy for Array,
// a pass-through (immutable by construction) for the three scalar cases. Every write
// into an Environment slot and every value that escapes a slot (a return, an argument
// bind) goes through Copy, which is what keeps distinct environment entries from ever
// aliasing the same array storage.
func Copy(v Value) Value {
	switch v := v.(type) {
	case *Int:
		return &Int{Value: v.Value}
	case *Float:
		return &Float{Value: v.Value}
	case *Str:
		return &Str{Value: v.Value}
	case *Array:
		elems := make([]Value, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = Copy(el)
		}
		return &Array{Elements: elems}
	default:
		return NewInt0()
	}
}

// formatFloat renders f the way the C %g format does: the shortest decimal representation
// that round-trips, matching spec §6's "Float: %g-style shortest representation".
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToFloat coerces any Value to float64 (spec §4.3).
func ToFloat(v Value) float64 {
	switch v := v.(type) {
	case *Int:
		return float64(v.Value)
	case *Float:
		return v.Value
	case *Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return 0
		}
		return f
	case *Array:
		return 0
	default:
		return 0
	}
}

// ToInt coerces any Value to int32 (spec §4.3).
func ToInt(v Value) int32 {
	switch v := v.(type) {
	case *Int:
		return v.Value
	case *Float:
		return int32(v.Value)
	case *Str:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 32)
		if err != nil {
			return 0
		}
		return int32(n)
	case *Array:
		return int32(len(v.Elements))
	default:
		return 0
	}
}

// ToBool coerces any Value to a truthiness flag (spec §4.3).
func ToBool(v Value) bool {
	switch v := v.(type) {
	case *Int:
		return v.Value != 0
	case *Float:
		return v.Value != 0
	case *Str:
		return len(v.Value) > 0
	case *Array:
		return len(v.Elements) > 0
	default:
		return false
	}
}

// StringifyForConcat renders v the way the `+` operator's string-coercion branch does:
// ints in decimal, floats in %g, strings as-is. Arrays are not valid `+` operands against
// a string in the core grammar, but stringify via Inspect as a conservative fallback.
func StringifyForConcat(v Value) string {
	switch v := v.(type) {
	case *Int:
		return strconv.FormatInt(int64(v.Value), 10)
	case *Float:
		return formatFloat(v.Value)
	case *Str:
		return v.Value
	default:
		return v.Inspect()
	}
}

// FormatForJoin renders v the way the join(array, sep) builtin does: ints in decimal,
// floats in %g, strings unquoted — distinct from Array.Inspect, which quotes strings.
func FormatForJoin(v Value) string {
	switch v := v.(type) {
	case *Int:
		return strconv.FormatInt(int64(v.Value), 10)
	case *Float:
		return formatFloat(v.Value)
	case *Str:
		return v.Value
	case *Array:
		return v.Inspect()
	default:
		return fmt.Sprintf("%v", v)
	}
}
