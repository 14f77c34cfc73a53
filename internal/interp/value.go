package interp

import "fmt"

// ValueKind enumerates runtime value kinds.
type ValueKind uint8

const (
	// ValNull is the absence of a value (empty block, print result).
	ValNull ValueKind = iota
	// ValInt is a 32-bit signed integer.
	ValInt
	// ValStr is a string.
	ValStr
	// ValBool is a boolean.
	ValBool
)

// Value is one runtime value.
type Value struct {
	Kind ValueKind
	Int  int32
	Str  string
	Bool bool
}

// Null, IntVal, StrVal, BoolVal build values of each kind.
func Null() Value            { return Value{Kind: ValNull} }
func IntVal(v int32) Value   { return Value{Kind: ValInt, Int: v} }
func StrVal(s string) Value  { return Value{Kind: ValStr, Str: s} }
func BoolVal(b bool) Value   { return Value{Kind: ValBool, Bool: b} }

// Truthy converts a value for an if condition: null is false, integers
// compare against zero, strings against empty, booleans are themselves.
func (v Value) Truthy() bool {
	switch v.Kind {
	case ValInt:
		return v.Int != 0
	case ValStr:
		return v.Str != ""
	case ValBool:
		return v.Bool
	}
	return false
}

// Equal compares values of the same kind; values of different kinds are
// never equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValNull:
		return true
	case ValInt:
		return v.Int == other.Int
	case ValStr:
		return v.Str == other.Str
	case ValBool:
		return v.Bool == other.Bool
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case ValInt:
		return fmt.Sprintf("%d", v.Int)
	case ValStr:
		return v.Str
	case ValBool:
		return fmt.Sprintf("%t", v.Bool)
	}
	return "null"
}
