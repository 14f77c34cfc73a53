package irbuild

import (
	"fmt"

	"langtwo/internal/ast"
	"langtwo/internal/ir"
)

func (b *Builder) buildExpr(e *ast.Expr) (ir.Register, []ir.Operation, error) {
	switch e.Kind {
	case ast.ExprInt:
		out, err := b.freshReg()
		if err != nil {
			return ir.Register{}, nil, err
		}
		return out, []ir.Operation{ir.LoadI(e.Int, out)}, nil

	case ast.ExprBool:
		// Booleans share the comparison encoding: 1 is true, 0 is false.
		out, err := b.freshReg()
		if err != nil {
			return ir.Register{}, nil, err
		}
		val := int32(0)
		if e.Bool {
			val = 1
		}
		return out, []ir.Operation{ir.LoadI(val, out)}, nil

	case ast.ExprStr:
		// The instruction set has no string representation.
		return ir.Register{}, nil, fmt.Errorf("string literal: %w", ErrNotInIR)

	case ast.ExprName:
		reg, err := b.varReg(e.Name)
		if err != nil {
			return ir.Register{}, nil, err
		}
		return reg, nil, nil

	case ast.ExprAssign:
		return b.buildAssign(e.Assign)

	case ast.ExprBinOp:
		return b.buildBinOp(e.Bin)

	case ast.ExprFnCall:
		return b.buildCall(e.Call)

	case ast.ExprIf:
		return b.buildIf(e.If)

	case ast.ExprParen:
		return b.buildExpr(e.Paren)
	}
	return ir.Register{}, nil, fmt.Errorf("expression kind %d: %w", e.Kind, ErrNotInIR)
}

func (b *Builder) buildAssign(assign *ast.AssignExpr) (ir.Register, []ir.Operation, error) {
	valueReg, ops, err := b.buildExpr(assign.Value)
	if err != nil {
		return ir.Register{}, nil, err
	}
	// First assignment creates the binding.
	out, err := b.varReg(assign.Name)
	if err != nil {
		return ir.Register{}, nil, err
	}
	ops = append(ops, ir.I2i(valueReg, out))
	return out, ops, nil
}

var binOpKinds = map[ast.Op]ir.OpKind{
	ast.OpAdd: ir.OpAdd,
	ast.OpSub: ir.OpSub,
	ast.OpMul: ir.OpMul,
	ast.OpDiv: ir.OpDiv,
	ast.OpMod: ir.OpMod,
	ast.OpEq:  ir.OpCmpEq,
	ast.OpLt:  ir.OpCmpLt,
	ast.OpLte: ir.OpCmpLte,
	ast.OpGt:  ir.OpCmpGt,
	ast.OpGte: ir.OpCmpGte,
}

func (b *Builder) buildBinOp(bin *ast.BinOpExpr) (ir.Register, []ir.Operation, error) {
	// Strict left-then-right evaluation. The tree is already ordered by
	// precedence, so no reordering happens here.
	lhsReg, lhsOps, err := b.buildExpr(bin.Lhs)
	if err != nil {
		return ir.Register{}, nil, err
	}
	rhsReg, rhsOps, err := b.buildExpr(bin.Rhs)
	if err != nil {
		return ir.Register{}, nil, err
	}

	kind, ok := binOpKinds[bin.Op]
	if !ok {
		return ir.Register{}, nil, fmt.Errorf("operator %s: %w", bin.Op, ErrNotInIR)
	}

	ops := append(lhsOps, rhsOps...)
	out, err := b.freshReg()
	if err != nil {
		return ir.Register{}, nil, err
	}
	ops = append(ops, ir.Bin(kind, lhsReg, rhsReg, out))
	return out, ops, nil
}

// buildCall lowers the call sequence: arguments evaluate left to right, then
// push in reverse so the callee pops them in declaration order; the callee's
// pushed return value is popped into a fresh register.
func (b *Builder) buildCall(call *ast.CallExpr) (ir.Register, []ir.Operation, error) {
	var ops []ir.Operation
	argRegs := make([]ir.Register, 0, len(call.Args))
	for _, arg := range call.Args {
		argReg, argOps, err := b.buildExpr(arg)
		if err != nil {
			return ir.Register{}, nil, err
		}
		argRegs = append(argRegs, argReg)
		ops = append(ops, argOps...)
	}

	for i := len(argRegs) - 1; i >= 0; i-- {
		ops = append(ops, ir.Push(argRegs[i]))
	}

	ops = append(ops, ir.Call(ir.Named(call.Name)))

	out, err := b.freshReg()
	if err != nil {
		return ir.Register{}, nil, err
	}
	ops = append(ops, ir.Pop(out))
	return out, ops, nil
}

// buildIf lowers a conditional expression. Both branches copy their result
// into a common out register; a missing branch result defaults to 0, which
// also covers the else-less form.
func (b *Builder) buildIf(ifx *ast.IfExpr) (ir.Register, []ir.Operation, error) {
	out, err := b.freshReg()
	if err != nil {
		return ir.Register{}, nil, err
	}

	condReg, ops, err := b.buildExpr(ifx.Cond)
	if err != nil {
		return ir.Register{}, nil, err
	}

	labelTrue := b.numberedLabel()
	labelEnd := b.numberedLabel()
	labelFalse := b.numberedLabel()

	ops = append(ops, ir.CondBranch(condReg, labelTrue, labelFalse))

	trueOut, trueOps, err := b.buildBlock(&ifx.True)
	if err != nil {
		return ir.Register{}, nil, err
	}
	ops = append(ops, ir.MkLabel(labelTrue))
	ops = append(ops, trueOps...)
	ops = append(ops, copyOrZero(trueOut, out))
	ops = append(ops, ir.JumpI(labelEnd))

	ops = append(ops, ir.MkLabel(labelFalse))
	var falseOut *ir.Register
	if ifx.False != nil {
		var falseOps []ir.Operation
		falseOut, falseOps, err = b.buildBlock(ifx.False)
		if err != nil {
			return ir.Register{}, nil, err
		}
		ops = append(ops, falseOps...)
	}
	ops = append(ops, copyOrZero(falseOut, out))
	ops = append(ops, ir.JumpI(labelEnd))

	ops = append(ops, ir.MkLabel(labelEnd))
	return out, ops, nil
}

func copyOrZero(from *ir.Register, to ir.Register) ir.Operation {
	if from != nil {
		return ir.I2i(*from, to)
	}
	return ir.LoadI(0, to)
}
