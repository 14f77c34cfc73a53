// Package interp evaluates the AST directly, without compiling to IR. It is
// the looser of the two backends: values are typed (ints, strings,
// booleans), 'print' exists, if conditions use truthiness, and call arity
// is checked.
package interp

import (
	"errors"
	"fmt"
	"io"

	"langtwo/internal/ast"
)

// Evaluation errors. Callers match with errors.Is.
var (
	ErrUnknownFunction   = errors.New("unknown function")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrArityMismatch     = errors.New("argument count mismatch")
	ErrTypeMismatch      = errors.New("incompatible operand types")
	ErrBreakOutsideLoop  = errors.New("break outside of any loop")
	ErrDivideByZero      = errors.New("division by zero")
	ErrPrintArity        = errors.New("print expects exactly 1 argument")
)

// ctrl signals non-local control flow out of a block.
type ctrl uint8

const (
	ctrlNone ctrl = iota
	ctrlBreak
)

type fnEntry struct {
	params []string
	body   ast.Block
}

// envFrame is one call's variable bindings.
type envFrame struct {
	vars map[string]Value
}

func newEnvFrame() *envFrame {
	return &envFrame{vars: make(map[string]Value)}
}

// Interpreter executes one program. Functions live in a single global
// table; redefinition replaces the earlier body.
type Interpreter struct {
	fns    map[string]fnEntry
	frames []*envFrame
	out    io.Writer
}

// New creates an interpreter writing 'print' output to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{
		fns:    make(map[string]fnEntry),
		frames: []*envFrame{newEnvFrame()},
		out:    out,
	}
}

// Run evaluates the program and returns the value of its last top-level
// expression statement, or ok=false if there was none.
func (in *Interpreter) Run(prog *ast.Program) (Value, bool, error) {
	var last Value
	have := false
	for i := range prog.Statements {
		stmt := &prog.Statements[i]
		switch stmt.Kind {
		case ast.StmtFnDef:
			// Definitions register without disturbing the running result.
			in.fns[stmt.Fn.Name] = fnEntry{params: stmt.Fn.Params, body: stmt.Fn.Body}
		case ast.StmtBlockLine:
			val, c, hasVal, err := in.evalBlockLine(&stmt.Line)
			if err != nil {
				return Value{}, false, err
			}
			if c == ctrlBreak {
				return Value{}, false, ErrBreakOutsideLoop
			}
			last, have = val, hasVal
		}
	}
	return last, have, nil
}

func (in *Interpreter) evalBlockLine(line *ast.BlockLine) (Value, ctrl, bool, error) {
	switch line.Kind {
	case ast.LineExpr:
		val, c, err := in.evalExpr(line.Expr)
		return val, c, c == ctrlNone, err

	case ast.LineLoop:
		for {
			_, c, err := in.evalBlock(&line.Loop)
			if err != nil {
				return Value{}, ctrlNone, false, err
			}
			if c == ctrlBreak {
				return Value{}, ctrlNone, false, nil
			}
		}

	case ast.LineBreak:
		return Value{}, ctrlBreak, false, nil
	}
	return Value{}, ctrlNone, false, fmt.Errorf("unknown block line kind %d", line.Kind)
}

func (in *Interpreter) evalBlock(block *ast.Block) (Value, ctrl, error) {
	last := Null()
	for i := range block.Lines {
		val, c, hasVal, err := in.evalBlockLine(&block.Lines[i])
		if err != nil {
			return Value{}, ctrlNone, err
		}
		if c == ctrlBreak {
			return Value{}, ctrlBreak, nil
		}
		if hasVal {
			last = val
		} else {
			last = Null()
		}
	}
	return last, ctrlNone, nil
}

func (in *Interpreter) evalExpr(e *ast.Expr) (Value, ctrl, error) {
	switch e.Kind {
	case ast.ExprInt:
		return IntVal(e.Int), ctrlNone, nil
	case ast.ExprStr:
		return StrVal(e.Str), ctrlNone, nil
	case ast.ExprBool:
		return BoolVal(e.Bool), ctrlNone, nil

	case ast.ExprName:
		top := in.frames[len(in.frames)-1]
		if val, ok := top.vars[e.Name]; ok {
			return val, ctrlNone, nil
		}
		return Value{}, ctrlNone, fmt.Errorf("%w: %s", ErrUndefinedVariable, e.Name)

	case ast.ExprAssign:
		val, c, err := in.evalExpr(e.Assign.Value)
		if err != nil || c != ctrlNone {
			return val, c, err
		}
		top := in.frames[len(in.frames)-1]
		top.vars[e.Assign.Name] = val
		return val, ctrlNone, nil

	case ast.ExprBinOp:
		return in.evalBinOp(e.Bin)

	case ast.ExprFnCall:
		return in.evalCall(e.Call)

	case ast.ExprIf:
		return in.evalIf(e.If)

	case ast.ExprParen:
		return in.evalExpr(e.Paren)
	}
	return Value{}, ctrlNone, fmt.Errorf("unknown expression kind %d", e.Kind)
}

func (in *Interpreter) evalIf(ifx *ast.IfExpr) (Value, ctrl, error) {
	cond, c, err := in.evalExpr(ifx.Cond)
	if err != nil || c != ctrlNone {
		return cond, c, err
	}
	if cond.Truthy() {
		return in.evalBlock(&ifx.True)
	}
	if ifx.False != nil {
		return in.evalBlock(ifx.False)
	}
	return Null(), ctrlNone, nil
}

func (in *Interpreter) evalBinOp(bin *ast.BinOpExpr) (Value, ctrl, error) {
	lhs, c, err := in.evalExpr(bin.Lhs)
	if err != nil || c != ctrlNone {
		return lhs, c, err
	}
	rhs, c, err := in.evalExpr(bin.Rhs)
	if err != nil || c != ctrlNone {
		return rhs, c, err
	}

	if bin.Op == ast.OpEq {
		return BoolVal(lhs.Equal(rhs)), ctrlNone, nil
	}

	if lhs.Kind != ValInt || rhs.Kind != ValInt {
		return Value{}, ctrlNone, fmt.Errorf("%w: %s %s %s", ErrTypeMismatch, lhs, bin.Op, rhs)
	}
	a, b := lhs.Int, rhs.Int
	switch bin.Op {
	case ast.OpAdd:
		return IntVal(a + b), ctrlNone, nil
	case ast.OpSub:
		return IntVal(a - b), ctrlNone, nil
	case ast.OpMul:
		return IntVal(a * b), ctrlNone, nil
	case ast.OpDiv:
		if b == 0 {
			return Value{}, ctrlNone, ErrDivideByZero
		}
		return IntVal(a / b), ctrlNone, nil
	case ast.OpMod:
		if b == 0 {
			return Value{}, ctrlNone, ErrDivideByZero
		}
		return IntVal(a % b), ctrlNone, nil
	case ast.OpLt:
		return BoolVal(a < b), ctrlNone, nil
	case ast.OpLte:
		return BoolVal(a <= b), ctrlNone, nil
	case ast.OpGt:
		return BoolVal(a > b), ctrlNone, nil
	case ast.OpGte:
		return BoolVal(a >= b), ctrlNone, nil
	}
	return Value{}, ctrlNone, fmt.Errorf("%w: operator %s", ErrTypeMismatch, bin.Op)
}

func (in *Interpreter) evalCall(call *ast.CallExpr) (Value, ctrl, error) {
	if call.Name == "print" {
		return in.evalPrint(call)
	}

	fn, ok := in.fns[call.Name]
	if !ok {
		return Value{}, ctrlNone, fmt.Errorf("%w: %s", ErrUnknownFunction, call.Name)
	}
	if len(call.Args) != len(fn.params) {
		return Value{}, ctrlNone, fmt.Errorf("%w: %s expects %d arguments, got %d",
			ErrArityMismatch, call.Name, len(fn.params), len(call.Args))
	}

	// Arguments evaluate in the caller's frame, left to right.
	callee := newEnvFrame()
	for i, arg := range call.Args {
		val, c, err := in.evalExpr(arg)
		if err != nil || c != ctrlNone {
			return val, c, err
		}
		callee.vars[fn.params[i]] = val
	}

	in.frames = append(in.frames, callee)
	result, c, err := in.evalBlock(&fn.body)
	in.frames = in.frames[:len(in.frames)-1]
	if err != nil {
		return Value{}, ctrlNone, err
	}
	// A break does not cross a call boundary.
	if c == ctrlBreak {
		return Value{}, ctrlNone, ErrBreakOutsideLoop
	}
	return result, ctrlNone, nil
}

func (in *Interpreter) evalPrint(call *ast.CallExpr) (Value, ctrl, error) {
	if len(call.Args) != 1 {
		return Value{}, ctrlNone, ErrPrintArity
	}
	val, c, err := in.evalExpr(call.Args[0])
	if err != nil || c != ctrlNone {
		return val, c, err
	}
	fmt.Fprint(in.out, val.String())
	return Null(), ctrlNone, nil
}
