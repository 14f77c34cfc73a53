package parser_test

import (
	"testing"

	"langtwo/internal/ast"
	"langtwo/internal/diag"
	"langtwo/internal/lexer"
	"langtwo/internal/parser"
	"langtwo/internal/source"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, bag := tryParse(src)
	if bag.HasErrors() {
		t.Fatalf("parsing %q: %+v", src, bag.Items())
	}
	return prog
}

func tryParse(src string) (*ast.Program, *diag.Bag) {
	bag := diag.NewBag(16)
	toks := lexer.New(source.FromString(src), bag).Tokens()
	return parser.Parse(toks, bag), bag
}

// lineExpr unwraps the sole top-level expression statement of src.
func lineExpr(t *testing.T, src string) *ast.Expr {
	t.Helper()
	prog := parse(t, src)
	if len(prog.Statements) != 1 {
		t.Fatalf("parsing %q: %d statements, want 1", src, len(prog.Statements))
	}
	stmt := prog.Statements[0]
	if stmt.Kind != ast.StmtBlockLine || stmt.Line.Kind != ast.LineExpr {
		t.Fatalf("parsing %q: not an expression statement", src)
	}
	return stmt.Line.Expr
}

func TestParseLiterals(t *testing.T) {
	if e := lineExpr(t, "42;"); e.Kind != ast.ExprInt || e.Int != 42 {
		t.Fatalf("int literal = %+v", e)
	}
	if e := lineExpr(t, `"hi";`); e.Kind != ast.ExprStr || e.Str != "hi" {
		t.Fatalf("string literal = %+v", e)
	}
	if e := lineExpr(t, "true;"); e.Kind != ast.ExprBool || !e.Bool {
		t.Fatalf("bool literal = %+v", e)
	}
	if e := lineExpr(t, "x;"); e.Kind != ast.ExprName || e.Name != "x" {
		t.Fatalf("name = %+v", e)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 2 + 3 * 4 parses as 2 + (3 * 4).
	e := lineExpr(t, "2 + 3 * 4;")
	if e.Kind != ast.ExprBinOp || e.Bin.Op != ast.OpAdd {
		t.Fatalf("root = %+v, want add", e)
	}
	rhs := e.Bin.Rhs
	if rhs.Kind != ast.ExprBinOp || rhs.Bin.Op != ast.OpMul {
		t.Fatalf("rhs = %+v, want mul", rhs)
	}
}

func TestParseComparisonBindsLoosest(t *testing.T) {
	// a + 1 == b parses as (a + 1) == b.
	e := lineExpr(t, "a + 1 == b;")
	if e.Kind != ast.ExprBinOp || e.Bin.Op != ast.OpEq {
		t.Fatalf("root = %+v, want eq", e)
	}
	if e.Bin.Lhs.Kind != ast.ExprBinOp || e.Bin.Lhs.Bin.Op != ast.OpAdd {
		t.Fatalf("lhs = %+v, want add", e.Bin.Lhs)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// 10 - 2 - 3 parses as (10 - 2) - 3.
	e := lineExpr(t, "10 - 2 - 3;")
	if e.Kind != ast.ExprBinOp || e.Bin.Op != ast.OpSub {
		t.Fatalf("root = %+v, want sub", e)
	}
	if e.Bin.Lhs.Kind != ast.ExprBinOp || e.Bin.Lhs.Bin.Op != ast.OpSub {
		t.Fatalf("lhs = %+v, want sub", e.Bin.Lhs)
	}
	if e.Bin.Rhs.Kind != ast.ExprInt || e.Bin.Rhs.Int != 3 {
		t.Fatalf("rhs = %+v, want 3", e.Bin.Rhs)
	}
}

func TestParseParens(t *testing.T) {
	// (2 + 3) * 4 keeps the grouping.
	e := lineExpr(t, "(2 + 3) * 4;")
	if e.Kind != ast.ExprBinOp || e.Bin.Op != ast.OpMul {
		t.Fatalf("root = %+v, want mul", e)
	}
	lhs := e.Bin.Lhs
	if lhs.Kind != ast.ExprParen {
		t.Fatalf("lhs = %+v, want paren", lhs)
	}
	if lhs.Paren.Kind != ast.ExprBinOp || lhs.Paren.Bin.Op != ast.OpAdd {
		t.Fatalf("inner = %+v, want add", lhs.Paren)
	}
}

func TestParseAssignment(t *testing.T) {
	e := lineExpr(t, "a = 1 + 2;")
	if e.Kind != ast.ExprAssign || e.Assign.Name != "a" {
		t.Fatalf("assign = %+v", e)
	}
	if e.Assign.Value.Kind != ast.ExprBinOp {
		t.Fatalf("value = %+v, want binop", e.Assign.Value)
	}
}

func TestParseEqualityIsNotAssignment(t *testing.T) {
	e := lineExpr(t, "a == 1;")
	if e.Kind != ast.ExprBinOp || e.Bin.Op != ast.OpEq {
		t.Fatalf("expr = %+v, want eq comparison", e)
	}
}

func TestParseCall(t *testing.T) {
	e := lineExpr(t, "f(1, x, g());")
	if e.Kind != ast.ExprFnCall || e.Call.Name != "f" {
		t.Fatalf("call = %+v", e)
	}
	if len(e.Call.Args) != 3 {
		t.Fatalf("args = %d, want 3", len(e.Call.Args))
	}
	if e.Call.Args[2].Kind != ast.ExprFnCall || len(e.Call.Args[2].Call.Args) != 0 {
		t.Fatalf("nested call = %+v", e.Call.Args[2])
	}
}

func TestParseIf(t *testing.T) {
	e := lineExpr(t, "if (a < 2) { 1; } else { 2; };")
	if e.Kind != ast.ExprIf {
		t.Fatalf("expr = %+v, want if", e)
	}
	if e.If.Cond.Kind != ast.ExprBinOp || e.If.Cond.Bin.Op != ast.OpLt {
		t.Fatalf("cond = %+v", e.If.Cond)
	}
	if len(e.If.True.Lines) != 1 || e.If.False == nil || len(e.If.False.Lines) != 1 {
		t.Fatalf("branches = %+v", e.If)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	e := lineExpr(t, "if (a) { 1; };")
	if e.Kind != ast.ExprIf || e.If.False != nil {
		t.Fatalf("expr = %+v, want else-less if", e)
	}
}

func TestParseFnDef(t *testing.T) {
	prog := parse(t, "fn powadd(a, b) { a * a + b * b; }")
	if len(prog.Statements) != 1 || prog.Statements[0].Kind != ast.StmtFnDef {
		t.Fatalf("statements = %+v", prog.Statements)
	}
	fn := prog.Statements[0].Fn
	if fn.Name != "powadd" || len(fn.Params) != 2 || fn.Params[1] != "b" {
		t.Fatalf("fn = %+v", fn)
	}
	if len(fn.Body.Lines) != 1 {
		t.Fatalf("body = %+v", fn.Body)
	}
}

func TestParseFnDefNoParams(t *testing.T) {
	prog := parse(t, "fn f() { 1; }")
	if len(prog.Statements[0].Fn.Params) != 0 {
		t.Fatalf("params = %+v", prog.Statements[0].Fn.Params)
	}
}

func TestParseLoopAndBreak(t *testing.T) {
	prog := parse(t, "loop { break; }")
	if len(prog.Statements) != 1 {
		t.Fatalf("statements = %d, want 1", len(prog.Statements))
	}
	line := prog.Statements[0].Line
	if line.Kind != ast.LineLoop || len(line.Loop.Lines) != 1 {
		t.Fatalf("loop = %+v", line)
	}
	if line.Loop.Lines[0].Kind != ast.LineBreak {
		t.Fatalf("body line = %+v, want break", line.Loop.Lines[0])
	}
}

func TestParseIfStatementSemicolonOptional(t *testing.T) {
	// A block-ending if terminates at '}'; a trailing ';' is accepted too.
	for _, src := range []string{
		"if (3 == 2) { 3; }",
		"if (3 == 2) { 3; };",
	} {
		prog := parse(t, src)
		if len(prog.Statements) != 1 {
			t.Fatalf("parsing %q: %d statements, want 1", src, len(prog.Statements))
		}
		line := prog.Statements[0].Line
		if line.Kind != ast.LineExpr || line.Expr.Kind != ast.ExprIf {
			t.Fatalf("parsing %q: line = %+v, want if expression", src, line)
		}
	}
}

func TestParseSequentialIfBlocks(t *testing.T) {
	// Adjacent if-blocks need no separator between them.
	prog := parse(t, "fn f(a) { if (a) { 1; } if (a) { 2; } a; }")
	body := prog.Statements[0].Fn.Body
	if len(body.Lines) != 3 {
		t.Fatalf("body lines = %d, want 3", len(body.Lines))
	}
	for i := 0; i < 2; i++ {
		if body.Lines[i].Kind != ast.LineExpr || body.Lines[i].Expr.Kind != ast.ExprIf {
			t.Fatalf("line %d = %+v, want if expression", i, body.Lines[i])
		}
	}
}

func TestParseIfFollowedByExpression(t *testing.T) {
	prog := parse(t, "loop { if (a >= 10) { break; } a = a + 1; }")
	body := prog.Statements[0].Line.Loop
	if len(body.Lines) != 2 {
		t.Fatalf("loop lines = %d, want 2", len(body.Lines))
	}
	if body.Lines[1].Kind != ast.LineExpr || body.Lines[1].Expr.Kind != ast.ExprAssign {
		t.Fatalf("line 1 = %+v, want assignment", body.Lines[1])
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	_, bag := tryParse("1 + 2")
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for the missing ';'")
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	// The bad first statement must not swallow the good second one.
	prog, bag := tryParse("1 + ; 2;")
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("statements = %d, want the recovered one", len(prog.Statements))
	}
}

func TestParseDiagnosticLimit(t *testing.T) {
	bag := diag.NewBag(2)
	toks := lexer.New(source.FromString("@ @ @ @;"), bag).Tokens()
	parser.Parse(toks, bag)
	if bag.Len() != 2 {
		t.Fatalf("bag holds %d diagnostics, want the cap of 2", bag.Len())
	}
}
