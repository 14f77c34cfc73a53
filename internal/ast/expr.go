package ast

import "langtwo/internal/source"

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	// ExprInt represents an integer literal.
	ExprInt ExprKind = iota
	// ExprStr represents a string literal.
	ExprStr
	// ExprBool represents a boolean literal.
	ExprBool
	// ExprName represents a variable read.
	ExprName
	// ExprAssign represents an assignment.
	ExprAssign
	// ExprBinOp represents a binary operation.
	ExprBinOp
	// ExprFnCall represents a function call.
	ExprFnCall
	// ExprIf represents a conditional expression.
	ExprIf
	// ExprParen represents a parenthesized expression.
	ExprParen
)

// Expr is an expression node. Exactly the payload matching Kind is set.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Int    int32
	Str    string
	Bool   bool
	Name   string
	Assign *AssignExpr
	Bin    *BinOpExpr
	Call   *CallExpr
	If     *IfExpr
	Paren  *Expr
}

// AssignExpr is 'name = value'. The assignment itself evaluates to value.
type AssignExpr struct {
	Name  string
	Value *Expr
}

// BinOpExpr is 'lhs op rhs'. The parser has already re-associated the tree
// by operator precedence; consumers apply none of their own.
type BinOpExpr struct {
	Op  Op
	Lhs *Expr
	Rhs *Expr
}

// CallExpr is 'name(args...)'.
type CallExpr struct {
	Name string
	Args []*Expr
}

// IfExpr is 'if (cond) { true } else { false }'. False is nil when the
// else branch is absent.
type IfExpr struct {
	Cond  *Expr
	True  Block
	False *Block
}
