package ir

import (
	"fmt"
	"io"
)

// Dump writes a human-readable listing of the artifact: one instruction per
// line prefixed with its index, labels outdented as "L0:".
func Dump(w io.Writer, artifact *IR) {
	if w == nil || artifact == nil {
		return
	}
	for i := range artifact.Instructions {
		op := &artifact.Instructions[i]
		if op.Kind == OpLabel {
			fmt.Fprintf(w, "%4d %s:\n", i, op.Label)
			continue
		}
		fmt.Fprintf(w, "%4d     %s\n", i, FormatOp(op))
	}
	if artifact.Result != nil {
		fmt.Fprintf(w, "result %s\n", *artifact.Result)
	}
}

// FormatOp renders one instruction in ILOC-like syntax.
func FormatOp(op *Operation) string {
	switch op.Kind {
	case OpLabel:
		return op.Label.String() + ":"
	case OpCall:
		return fmt.Sprintf("call %s", op.Label)
	case OpReturn:
		return "return"
	case OpPush:
		return fmt.Sprintf("push %s", op.Reg)
	case OpPushI:
		return fmt.Sprintf("pushI %d", op.Imm)
	case OpPop:
		return fmt.Sprintf("pop => %s", op.Reg)
	case OpAdd, OpSub, OpMul, OpDiv, OpMod,
		OpCmpEq, OpCmpLt, OpCmpLte, OpCmpGt, OpCmpGte:
		return fmt.Sprintf("%s %s, %s => %s", op.Kind, op.Lhs, op.Rhs, op.Out)
	case OpAddI, OpSubI, OpMulI, OpDivI:
		return fmt.Sprintf("%s %s, %d => %s", op.Kind, op.Lhs, op.Imm, op.Out)
	case OpLoadI:
		return fmt.Sprintf("loadI %d => %s", op.Imm, op.Out)
	case OpI2i:
		return fmt.Sprintf("i2i %s => %s", op.Lhs, op.Rhs)
	case OpJumpI:
		return fmt.Sprintf("jumpI -> %s", op.Label)
	case OpCondBranch:
		return fmt.Sprintf("cbr %s -> %s, %s", op.Cond, op.True, op.False)
	}
	return "unknown"
}
