package lexer

import (
	"fmt"
	"strconv"

	"langtwo/internal/diag"
	"langtwo/internal/source"
	"langtwo/internal/token"
)

// Lexer turns a source file into a token stream.
// Diagnostics go into the provided bag; the stream always ends with EOF.
type Lexer struct {
	cur Cursor
	bag *diag.Bag
}

// New creates a lexer over f reporting into bag.
func New(f *source.File, bag *diag.Bag) *Lexer {
	return &Lexer{cur: NewCursor(f), bag: bag}
}

// Tokens scans the whole file, EOF token included.
func (lx *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next scans and returns the next token.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()

	start := lx.cur.Off
	if lx.cur.EOF() {
		return token.Token{Kind: token.EOF, Span: source.Span{Start: start, End: start}}
	}

	b := lx.cur.Peek()
	switch {
	case isIdentStart(b):
		return lx.scanIdent(start)
	case isDigit(b):
		return lx.scanNumber(start)
	case b == '"':
		return lx.scanString(start)
	default:
		return lx.scanOperator(start)
	}
}

// skipTrivia consumes whitespace and '//' line comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cur.EOF() {
		b := lx.cur.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			lx.cur.Bump()
		case b == '/' && lx.cur.PeekAt(1) == '/':
			for !lx.cur.EOF() && lx.cur.Peek() != '\n' {
				lx.cur.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdent(start uint32) token.Token {
	for !lx.cur.EOF() && isIdentCont(lx.cur.Peek()) {
		lx.cur.Bump()
	}
	text := lx.cur.Text(start)
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: source.Span{Start: start, End: lx.cur.Off},
		Text: text,
	}
}

func (lx *Lexer) scanNumber(start uint32) token.Token {
	for !lx.cur.EOF() && isDigit(lx.cur.Peek()) {
		lx.cur.Bump()
	}
	span := source.Span{Start: start, End: lx.cur.Off}
	text := lx.cur.Text(start)
	if _, err := strconv.ParseInt(text, 10, 32); err != nil {
		lx.bag.Error(diag.LexIntOverflow, span, fmt.Sprintf("integer literal %q does not fit in 32 bits", text))
		return token.Token{Kind: token.Invalid, Span: span, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: span, Text: text}
}

func (lx *Lexer) scanString(start uint32) token.Token {
	lx.cur.Bump() // opening quote
	for !lx.cur.EOF() && lx.cur.Peek() != '"' && lx.cur.Peek() != '\n' {
		lx.cur.Bump()
	}
	if lx.cur.EOF() || lx.cur.Peek() != '"' {
		span := source.Span{Start: start, End: lx.cur.Off}
		lx.bag.Error(diag.LexUnterminatedString, span, "unterminated string literal")
		return token.Token{Kind: token.Invalid, Span: span, Text: lx.cur.Text(start)}
	}
	contentEnd := lx.cur.Off
	lx.cur.Bump() // closing quote
	return token.Token{
		Kind: token.StringLit,
		Span: source.Span{Start: start, End: lx.cur.Off},
		Text: string(lx.cur.File.Content[start+1 : contentEnd]),
	}
}

func (lx *Lexer) scanOperator(start uint32) token.Token {
	b := lx.cur.Peek()
	lx.cur.Bump()

	kind := token.Invalid
	switch b {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '=':
		kind = token.Assign
		if lx.cur.Peek() == '=' {
			lx.cur.Bump()
			kind = token.EqEq
		}
	case '<':
		kind = token.Lt
		if lx.cur.Peek() == '=' {
			lx.cur.Bump()
			kind = token.LtEq
		}
	case '>':
		kind = token.Gt
		if lx.cur.Peek() == '=' {
			lx.cur.Bump()
			kind = token.GtEq
		}
	}

	span := source.Span{Start: start, End: lx.cur.Off}
	text := lx.cur.Text(start)
	if kind == token.Invalid {
		lx.bag.Error(diag.LexUnexpectedChar, span, fmt.Sprintf("unexpected character %q", text))
	}
	return token.Token{Kind: kind, Span: span, Text: text}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
