package ast

// Op enumerates binary operators.
type Op uint8

const (
	// OpAdd represents '+'.
	OpAdd Op = iota
	// OpSub represents '-'.
	OpSub
	// OpMul represents '*'.
	OpMul
	// OpDiv represents '/'.
	OpDiv
	// OpMod represents '%'.
	OpMod
	// OpEq represents '=='.
	OpEq
	// OpLt represents '<'.
	OpLt
	// OpLte represents '<='.
	OpLte
	// OpGt represents '>'.
	OpGt
	// OpGte represents '>='.
	OpGte
)

// Precedence returns the binding strength of the operator.
// Lower value binds weaker and sits higher in the tree.
func (op Op) Precedence() uint8 {
	switch op {
	case OpEq, OpLt, OpLte, OpGt, OpGte:
		return 0
	case OpAdd, OpSub, OpMod:
		return 1
	case OpMul, OpDiv:
		return 2
	}
	return 0
}

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	}
	return "?"
}
