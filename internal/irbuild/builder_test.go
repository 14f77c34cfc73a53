package irbuild_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"langtwo/internal/diag"
	"langtwo/internal/ir"
	"langtwo/internal/irbuild"
	"langtwo/internal/lexer"
	"langtwo/internal/parser"
	"langtwo/internal/source"
)

func lower(t *testing.T, src string) *ir.IR {
	t.Helper()
	artifact, err := tryLower(t, src)
	if err != nil {
		t.Fatalf("lowering %q: %v", src, err)
	}
	return artifact
}

func tryLower(t *testing.T, src string) (*ir.IR, error) {
	t.Helper()
	file := source.FromString(src)
	bag := diag.NewBag(16)
	prog := parser.Parse(lexer.New(file, bag).Tokens(), bag)
	if bag.HasErrors() {
		t.Fatalf("parsing %q: %+v", src, bag.Items())
	}
	return irbuild.New().Build(prog)
}

func wantOps(t *testing.T, artifact *ir.IR, want []ir.Operation) {
	t.Helper()
	if !slices.Equal(artifact.Instructions, want) {
		var dump strings.Builder
		ir.Dump(&dump, artifact)
		t.Fatalf("instruction mismatch\ngot:\n%swant:\n%s", dump.String(), format(want))
	}
}

func format(ops []ir.Operation) string {
	var sb strings.Builder
	for i := range ops {
		sb.WriteString(ir.FormatOp(&ops[i]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wantResult(t *testing.T, artifact *ir.IR, want ir.Register) {
	t.Helper()
	if artifact.Result == nil {
		t.Fatalf("expected result register %s, got none", want)
	}
	if *artifact.Result != want {
		t.Fatalf("result register = %s, want %s", artifact.Result, want)
	}
}

func TestBuildEmptyProgram(t *testing.T) {
	artifact := lower(t, "")
	if len(artifact.Instructions) != 0 {
		t.Fatalf("expected no instructions, got %d", len(artifact.Instructions))
	}
	if artifact.Result != nil {
		t.Fatalf("expected no result register, got %s", artifact.Result)
	}
}

func TestBuildIntLiteral(t *testing.T) {
	artifact := lower(t, "4;")
	wantOps(t, artifact, []ir.Operation{
		ir.LoadI(4, ir.Global(0)),
	})
	wantResult(t, artifact, ir.Global(0))
}

func TestBuildAddition(t *testing.T) {
	artifact := lower(t, "4 + 1;")
	wantOps(t, artifact, []ir.Operation{
		ir.LoadI(4, ir.Global(0)),
		ir.LoadI(1, ir.Global(1)),
		ir.Bin(ir.OpAdd, ir.Global(0), ir.Global(1), ir.Global(2)),
	})
	wantResult(t, artifact, ir.Global(2))
}

func TestBuildAssignReuse(t *testing.T) {
	artifact := lower(t, "a = 4; a = a + 2;")
	wantOps(t, artifact, []ir.Operation{
		ir.LoadI(4, ir.Global(0)),
		ir.I2i(ir.Global(0), ir.Global(1)),
		ir.LoadI(2, ir.Global(2)),
		ir.Bin(ir.OpAdd, ir.Global(1), ir.Global(2), ir.Global(3)),
		ir.I2i(ir.Global(3), ir.Global(1)),
	})
	wantResult(t, artifact, ir.Global(1))
}

func TestBuildBoolLiterals(t *testing.T) {
	artifact := lower(t, "true; false;")
	wantOps(t, artifact, []ir.Operation{
		ir.LoadI(1, ir.Global(0)),
		ir.LoadI(0, ir.Global(1)),
	})
	wantResult(t, artifact, ir.Global(1))
}

func TestBuildFnDefAndCall(t *testing.T) {
	artifact := lower(t, "fn addone(x) { x + 1; } addone(4);")
	end := ir.Numbered(0)
	wantOps(t, artifact, []ir.Operation{
		ir.JumpI(end),
		ir.MkLabel(ir.Named("addone")),
		ir.Pop(ir.Arp(0)),
		ir.LoadI(1, ir.Arp(1)),
		ir.Bin(ir.OpAdd, ir.Arp(0), ir.Arp(1), ir.Arp(2)),
		ir.Push(ir.Arp(2)),
		ir.Return(),
		ir.MkLabel(end),
		ir.LoadI(4, ir.Global(0)),
		ir.Push(ir.Global(0)),
		ir.Call(ir.Named("addone")),
		ir.Pop(ir.Global(1)),
	})
	wantResult(t, artifact, ir.Global(1))
}

func TestBuildCallPushesArgsReversed(t *testing.T) {
	artifact := lower(t, "fn sub(a, b) { a - b; } sub(7, 2);")
	end := ir.Numbered(0)
	wantOps(t, artifact, []ir.Operation{
		ir.JumpI(end),
		ir.MkLabel(ir.Named("sub")),
		ir.Pop(ir.Arp(0)),
		ir.Pop(ir.Arp(1)),
		ir.Bin(ir.OpSub, ir.Arp(0), ir.Arp(1), ir.Arp(2)),
		ir.Push(ir.Arp(2)),
		ir.Return(),
		ir.MkLabel(end),
		ir.LoadI(7, ir.Global(0)),
		ir.LoadI(2, ir.Global(1)),
		// Arguments evaluate left to right but push right to left, so the
		// callee pops them in declaration order.
		ir.Push(ir.Global(1)),
		ir.Push(ir.Global(0)),
		ir.Call(ir.Named("sub")),
		ir.Pop(ir.Global(2)),
	})
	wantResult(t, artifact, ir.Global(2))
}

func TestBuildIfWithoutElse(t *testing.T) {
	artifact := lower(t, "if (1) { 2; };")
	labelTrue := ir.Numbered(0)
	labelEnd := ir.Numbered(1)
	labelFalse := ir.Numbered(2)
	wantOps(t, artifact, []ir.Operation{
		ir.LoadI(1, ir.Global(1)),
		ir.CondBranch(ir.Global(1), labelTrue, labelFalse),
		ir.MkLabel(labelTrue),
		ir.LoadI(2, ir.Global(2)),
		ir.I2i(ir.Global(2), ir.Global(0)),
		ir.JumpI(labelEnd),
		ir.MkLabel(labelFalse),
		ir.LoadI(0, ir.Global(0)),
		ir.JumpI(labelEnd),
		ir.MkLabel(labelEnd),
	})
	wantResult(t, artifact, ir.Global(0))
}

func TestBuildIfWithElse(t *testing.T) {
	artifact := lower(t, "if (1) { 2; } else { 3; };")
	labelTrue := ir.Numbered(0)
	labelEnd := ir.Numbered(1)
	labelFalse := ir.Numbered(2)
	wantOps(t, artifact, []ir.Operation{
		ir.LoadI(1, ir.Global(1)),
		ir.CondBranch(ir.Global(1), labelTrue, labelFalse),
		ir.MkLabel(labelTrue),
		ir.LoadI(2, ir.Global(2)),
		ir.I2i(ir.Global(2), ir.Global(0)),
		ir.JumpI(labelEnd),
		ir.MkLabel(labelFalse),
		ir.LoadI(3, ir.Global(3)),
		ir.I2i(ir.Global(3), ir.Global(0)),
		ir.JumpI(labelEnd),
		ir.MkLabel(labelEnd),
	})
	wantResult(t, artifact, ir.Global(0))
}

func TestBuildLoopBreak(t *testing.T) {
	artifact := lower(t, "loop { break; }")
	start := ir.Numbered(0)
	end := ir.Numbered(1)
	wantOps(t, artifact, []ir.Operation{
		ir.MkLabel(start),
		ir.JumpI(end),
		ir.JumpI(start),
		ir.MkLabel(end),
	})
	if artifact.Result != nil {
		t.Fatalf("loop statement should leave no result, got %s", artifact.Result)
	}
}

func TestBuildTrailingFnDefClearsResult(t *testing.T) {
	artifact := lower(t, "4; fn f() { 1; }")
	if artifact.Result != nil {
		t.Fatalf("trailing definition should leave no result, got %s", artifact.Result)
	}
}

func TestBuildEmptyFnBody(t *testing.T) {
	_, err := tryLower(t, "fn f() { }")
	if !errors.Is(err, irbuild.ErrEmptyBody) {
		t.Fatalf("err = %v, want ErrEmptyBody", err)
	}
}

func TestBuildFnBodyEndingInLoop(t *testing.T) {
	_, err := tryLower(t, "fn f() { loop { break; } }")
	if !errors.Is(err, irbuild.ErrEmptyBody) {
		t.Fatalf("err = %v, want ErrEmptyBody", err)
	}
}

func TestBuildBreakOutsideLoop(t *testing.T) {
	_, err := tryLower(t, "break;")
	if !errors.Is(err, irbuild.ErrBreakOutsideLoop) {
		t.Fatalf("err = %v, want ErrBreakOutsideLoop", err)
	}
}

func TestBuildStringLiteralRejected(t *testing.T) {
	_, err := tryLower(t, `"hello";`)
	if !errors.Is(err, irbuild.ErrNotInIR) {
		t.Fatalf("err = %v, want ErrNotInIR", err)
	}
}

func TestBuildFnRedefinitionRejected(t *testing.T) {
	_, err := tryLower(t, "fn f() { 1; } fn f() { 2; }")
	if !errors.Is(err, irbuild.ErrFnRedefined) {
		t.Fatalf("err = %v, want ErrFnRedefined", err)
	}
}

func TestBuildFrameOverflow(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < ir.FrameCapacity+1; i++ {
		sb.WriteString("0;")
	}
	_, err := tryLower(t, sb.String())
	if !errors.Is(err, irbuild.ErrFrameOverflow) {
		t.Fatalf("err = %v, want ErrFrameOverflow", err)
	}
}

func TestBuildNestedLoopBreakTargetsInnermost(t *testing.T) {
	artifact := lower(t, "loop { loop { break; } break; }")
	outerStart := ir.Numbered(0)
	outerEnd := ir.Numbered(1)
	innerStart := ir.Numbered(2)
	innerEnd := ir.Numbered(3)
	wantOps(t, artifact, []ir.Operation{
		ir.MkLabel(outerStart),
		ir.MkLabel(innerStart),
		ir.JumpI(innerEnd),
		ir.JumpI(innerStart),
		ir.MkLabel(innerEnd),
		ir.JumpI(outerEnd),
		ir.JumpI(outerStart),
		ir.MkLabel(outerEnd),
	})
}
