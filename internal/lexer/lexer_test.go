package lexer_test

import (
	"testing"

	"langtwo/internal/diag"
	"langtwo/internal/lexer"
	"langtwo/internal/source"
	"langtwo/internal/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(16)
	toks := lexer.New(source.FromString(src), bag).Tokens()
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("scanning %q: stream not EOF-terminated", src)
	}
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func wantKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	toks, bag := scan(t, src)
	if bag.HasErrors() {
		t.Fatalf("scanning %q: %+v", src, bag.Items())
	}
	got := kinds(toks[:len(toks)-1])
	if len(got) != len(want) {
		t.Fatalf("scanning %q: kinds = %v, want %v", src, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("scanning %q: kind[%d] = %s, want %s", src, i, got[i], want[i])
		}
	}
}

func TestScanEmpty(t *testing.T) {
	toks, bag := scan(t, "")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(toks) != 1 {
		t.Fatalf("expected only EOF, got %d tokens", len(toks))
	}
}

func TestScanKeywordsAndIdents(t *testing.T) {
	wantKinds(t, "fn if else loop break true false foo _bar x1",
		token.KwFn, token.KwIf, token.KwElse, token.KwLoop, token.KwBreak,
		token.KwTrue, token.KwFalse, token.Ident, token.Ident, token.Ident)
}

func TestScanOperators(t *testing.T) {
	wantKinds(t, "+ - * / % = == < <= > >= ( ) { } , ;",
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.EqEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.Comma, token.Semicolon)
}

func TestScanCompoundOperatorsGreedy(t *testing.T) {
	// '==' must not scan as two '='.
	wantKinds(t, "a==b", token.Ident, token.EqEq, token.Ident)
	wantKinds(t, "a=b", token.Ident, token.Assign, token.Ident)
	wantKinds(t, "a<=b", token.Ident, token.LtEq, token.Ident)
}

func TestScanIntLiteral(t *testing.T) {
	toks, bag := scan(t, "42;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.IntLit || toks[0].Text != "42" {
		t.Fatalf("token = %s %q, want int 42", toks[0].Kind, toks[0].Text)
	}
}

func TestScanIntOverflow(t *testing.T) {
	toks, bag := scan(t, "2147483648;")
	if !bag.HasErrors() {
		t.Fatal("expected overflow diagnostic")
	}
	if bag.Items()[0].Code != diag.LexIntOverflow {
		t.Fatalf("code = %s, want %s", bag.Items()[0].Code.ID(), diag.LexIntOverflow.ID())
	}
	if toks[0].Kind != token.Invalid {
		t.Fatalf("token kind = %s, want invalid", toks[0].Kind)
	}
}

func TestScanIntMaxFits(t *testing.T) {
	_, bag := scan(t, "2147483647;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestScanString(t *testing.T) {
	toks, bag := scan(t, `"hello world";`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.StringLit || toks[0].Text != "hello world" {
		t.Fatalf("token = %s %q, want string %q", toks[0].Kind, toks[0].Text, "hello world")
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, bag := scan(t, `"oops`)
	if !bag.HasErrors() {
		t.Fatal("expected unterminated-string diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("code = %s, want %s", bag.Items()[0].Code.ID(), diag.LexUnterminatedString.ID())
	}
}

func TestScanLineComments(t *testing.T) {
	wantKinds(t, "1; // the rest is ignored\n2;",
		token.IntLit, token.Semicolon, token.IntLit, token.Semicolon)
}

func TestScanUnexpectedChar(t *testing.T) {
	_, bag := scan(t, "1 @ 2;")
	if !bag.HasErrors() {
		t.Fatal("expected unexpected-character diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnexpectedChar {
		t.Fatalf("code = %s, want %s", bag.Items()[0].Code.ID(), diag.LexUnexpectedChar.ID())
	}
}

func TestScanSpans(t *testing.T) {
	toks, _ := scan(t, "ab = 12;")
	file := source.FromString("ab = 12;")
	if got := string(file.Content[toks[0].Span.Start:toks[0].Span.End]); got != "ab" {
		t.Fatalf("span text = %q, want %q", got, "ab")
	}
	if got := string(file.Content[toks[2].Span.Start:toks[2].Span.End]); got != "12" {
		t.Fatalf("span text = %q, want %q", got, "12")
	}
}
