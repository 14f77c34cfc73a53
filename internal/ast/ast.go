package ast

import "langtwo/internal/source"

// Program is an ordered list of top-level statements.
type Program struct {
	Statements []Statement
}

// StatementKind enumerates statement kinds.
type StatementKind uint8

const (
	// StmtFnDef represents a function definition.
	StmtFnDef StatementKind = iota
	// StmtBlockLine represents a top-level block line.
	StmtBlockLine
)

// Statement is a top-level statement.
type Statement struct {
	Kind StatementKind

	Fn   FnDef
	Line BlockLine
}

// FnDef is a function definition: name, parameter names, body.
type FnDef struct {
	Name   string
	Params []string
	Body   Block
	Span   source.Span
}

// Block is a braced sequence of block lines.
type Block struct {
	Lines []BlockLine
}

// BlockLineKind enumerates block line kinds.
type BlockLineKind uint8

const (
	// LineExpr represents an expression line terminated by ';'.
	LineExpr BlockLineKind = iota
	// LineLoop represents a 'loop { ... }' line.
	LineLoop
	// LineBreak represents a 'break;' line.
	LineBreak
)

// BlockLine is one line of a block.
type BlockLine struct {
	Kind BlockLineKind
	Span source.Span

	Expr *Expr
	Loop Block
}
