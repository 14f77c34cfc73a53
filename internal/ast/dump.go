package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable tree of the program.
func Dump(w io.Writer, p *Program) {
	for i := range p.Statements {
		dumpStatement(w, &p.Statements[i], 0)
	}
}

func dumpStatement(w io.Writer, s *Statement, depth int) {
	switch s.Kind {
	case StmtFnDef:
		fmt.Fprintf(w, "%sfn %s(%s)\n", indent(depth), s.Fn.Name, strings.Join(s.Fn.Params, ", "))
		dumpBlock(w, &s.Fn.Body, depth+1)
	case StmtBlockLine:
		dumpBlockLine(w, &s.Line, depth)
	}
}

func dumpBlock(w io.Writer, b *Block, depth int) {
	for i := range b.Lines {
		dumpBlockLine(w, &b.Lines[i], depth)
	}
}

func dumpBlockLine(w io.Writer, line *BlockLine, depth int) {
	switch line.Kind {
	case LineExpr:
		dumpExpr(w, line.Expr, depth)
	case LineLoop:
		fmt.Fprintf(w, "%sloop\n", indent(depth))
		dumpBlock(w, &line.Loop, depth+1)
	case LineBreak:
		fmt.Fprintf(w, "%sbreak\n", indent(depth))
	}
}

func dumpExpr(w io.Writer, e *Expr, depth int) {
	pad := indent(depth)
	switch e.Kind {
	case ExprInt:
		fmt.Fprintf(w, "%sint %d\n", pad, e.Int)
	case ExprStr:
		fmt.Fprintf(w, "%sstr %q\n", pad, e.Str)
	case ExprBool:
		fmt.Fprintf(w, "%sbool %t\n", pad, e.Bool)
	case ExprName:
		fmt.Fprintf(w, "%sname %s\n", pad, e.Name)
	case ExprAssign:
		fmt.Fprintf(w, "%sassign %s\n", pad, e.Assign.Name)
		dumpExpr(w, e.Assign.Value, depth+1)
	case ExprBinOp:
		fmt.Fprintf(w, "%sbinop %s\n", pad, e.Bin.Op)
		dumpExpr(w, e.Bin.Lhs, depth+1)
		dumpExpr(w, e.Bin.Rhs, depth+1)
	case ExprFnCall:
		fmt.Fprintf(w, "%scall %s\n", pad, e.Call.Name)
		for _, arg := range e.Call.Args {
			dumpExpr(w, arg, depth+1)
		}
	case ExprIf:
		fmt.Fprintf(w, "%sif\n", pad)
		dumpExpr(w, e.If.Cond, depth+1)
		fmt.Fprintf(w, "%sthen\n", pad)
		dumpBlock(w, &e.If.True, depth+1)
		if e.If.False != nil {
			fmt.Fprintf(w, "%selse\n", pad)
			dumpBlock(w, e.If.False, depth+1)
		}
	case ExprParen:
		fmt.Fprintf(w, "%sparen\n", pad)
		dumpExpr(w, e.Paren, depth+1)
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
