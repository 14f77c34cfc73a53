// Package irbuild lowers an AST into a flat register-addressed instruction
// stream with an explicit stack-based calling convention.
//
// Activation-record layout, low slots first:
//
//	arg 1 .. arg n      popped into the first registers of the frame
//	locals, temporaries assigned by a strictly increasing counter
//
// Registers are never reused or freed within a scope; the allocation counter
// is bounds-checked against ir.FrameCapacity at build time.
package irbuild

import (
	"fmt"

	"langtwo/internal/ast"
	"langtwo/internal/ir"
)

// scope is one compile-time allocation context: the next free register slot
// and the name bindings of the nesting level.
type scope struct {
	nextReg uint16
	vars    map[string]ir.Register
}

func newScope() *scope {
	return &scope{vars: make(map[string]ir.Register)}
}

// Builder compiles one AST into one IR artifact. A Builder is single-use:
// construct a fresh one per Build call.
type Builder struct {
	nextLabel uint32
	scopes    []*scope
	fns       map[string]bool
	loopEnds  []ir.Label
}

// New creates a builder with the implicit top-level scope in place.
func New() *Builder {
	return &Builder{
		scopes: []*scope{newScope()},
		fns:    make(map[string]bool),
	}
}

// Build lowers the program. The artifact's result register is that of the
// last top-level statement; a trailing function definition or loop leaves
// the program without a result.
func (b *Builder) Build(prog *ast.Program) (*ir.IR, error) {
	var ops []ir.Operation
	var out *ir.Register
	for i := range prog.Statements {
		stmtOut, stmtOps, err := b.buildStatement(&prog.Statements[i])
		if err != nil {
			return nil, err
		}
		ops = append(ops, stmtOps...)
		out = stmtOut
	}
	return ir.New(ops, out), nil
}

func (b *Builder) buildStatement(stmt *ast.Statement) (*ir.Register, []ir.Operation, error) {
	switch stmt.Kind {
	case ast.StmtFnDef:
		ops, err := b.buildFnDef(&stmt.Fn)
		return nil, ops, err
	case ast.StmtBlockLine:
		return b.buildBlockLine(&stmt.Line)
	}
	return nil, nil, fmt.Errorf("statement kind %d: %w", stmt.Kind, ErrNotInIR)
}

func (b *Builder) buildFnDef(fn *ast.FnDef) ([]ir.Operation, error) {
	if b.fns[fn.Name] {
		return nil, fmt.Errorf("%w: %s", ErrFnRedefined, fn.Name)
	}
	b.fns[fn.Name] = true

	entry := ir.Named(fn.Name)
	end := b.numberedLabel()

	// Top-level fallthrough must skip the body.
	ops := []ir.Operation{ir.JumpI(end), ir.MkLabel(entry)}

	b.scopes = append(b.scopes, newScope())

	// Pop arguments in declaration order. The caller pushed them reversed;
	// nothing verifies that the counts match (see the calling convention
	// notes in DESIGN.md).
	for _, param := range fn.Params {
		reg, err := b.varReg(param)
		if err != nil {
			return nil, err
		}
		ops = append(ops, ir.Pop(reg))
	}

	bodyOut, bodyOps, err := b.buildBlock(&fn.Body)
	if err != nil {
		return nil, err
	}
	if bodyOut == nil {
		return nil, fmt.Errorf("fn %s: %w", fn.Name, ErrEmptyBody)
	}

	b.scopes = b.scopes[:len(b.scopes)-1]

	ops = append(ops, bodyOps...)
	ops = append(ops, ir.Push(*bodyOut), ir.Return(), ir.MkLabel(end))
	return ops, nil
}

func (b *Builder) buildBlock(block *ast.Block) (*ir.Register, []ir.Operation, error) {
	var ops []ir.Operation
	var out *ir.Register
	for i := range block.Lines {
		lineOut, lineOps, err := b.buildBlockLine(&block.Lines[i])
		if err != nil {
			return nil, nil, err
		}
		ops = append(ops, lineOps...)
		out = lineOut
	}
	return out, ops, nil
}

func (b *Builder) buildBlockLine(line *ast.BlockLine) (*ir.Register, []ir.Operation, error) {
	switch line.Kind {
	case ast.LineExpr:
		reg, ops, err := b.buildExpr(line.Expr)
		if err != nil {
			return nil, nil, err
		}
		return &reg, ops, nil

	case ast.LineLoop:
		ops, err := b.buildLoop(&line.Loop)
		return nil, ops, err

	case ast.LineBreak:
		if len(b.loopEnds) == 0 {
			return nil, nil, ErrBreakOutsideLoop
		}
		end := b.loopEnds[len(b.loopEnds)-1]
		return nil, []ir.Operation{ir.JumpI(end)}, nil
	}
	return nil, nil, fmt.Errorf("block line kind %d: %w", line.Kind, ErrNotInIR)
}

// buildLoop lowers 'loop { body }': body runs until a break jumps to the end
// label. A loop yields no expression result.
func (b *Builder) buildLoop(body *ast.Block) ([]ir.Operation, error) {
	start := b.numberedLabel()
	end := b.numberedLabel()

	b.loopEnds = append(b.loopEnds, end)
	_, bodyOps, err := b.buildBlock(body)
	b.loopEnds = b.loopEnds[:len(b.loopEnds)-1]
	if err != nil {
		return nil, err
	}

	ops := make([]ir.Operation, 0, len(bodyOps)+3)
	ops = append(ops, ir.MkLabel(start))
	ops = append(ops, bodyOps...)
	ops = append(ops, ir.JumpI(start), ir.MkLabel(end))
	return ops, nil
}

// freshReg allocates the next register of the active scope. Top-level
// allocations are global-class; inside a function body they are ARP-relative.
func (b *Builder) freshReg() (ir.Register, error) {
	top := b.scopes[len(b.scopes)-1]
	if top.nextReg >= ir.FrameCapacity {
		return ir.Register{}, fmt.Errorf("%w (%d slots)", ErrFrameOverflow, ir.FrameCapacity)
	}
	addr := top.nextReg
	top.nextReg++

	if len(b.scopes) == 1 {
		return ir.Global(addr), nil
	}
	return ir.Arp(addr), nil
}

// varReg resolves name in the active scope, binding a fresh register on
// first reference. A read before any assignment therefore sees slot-zero
// semantics: the register holds 0.
func (b *Builder) varReg(name string) (ir.Register, error) {
	top := b.scopes[len(b.scopes)-1]
	if reg, ok := top.vars[name]; ok {
		return reg, nil
	}
	reg, err := b.freshReg()
	if err != nil {
		return ir.Register{}, err
	}
	top.vars[name] = reg
	return reg, nil
}

func (b *Builder) numberedLabel() ir.Label {
	label := ir.Numbered(b.nextLabel)
	b.nextLabel++
	return label
}
