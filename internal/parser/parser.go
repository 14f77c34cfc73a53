package parser

import (
	"fmt"

	"langtwo/internal/ast"
	"langtwo/internal/diag"
	"langtwo/internal/token"
)

// Parser holds the state for parsing one token stream.
type Parser struct {
	toks []token.Token
	pos  int
	bag  *diag.Bag
}

// Parse builds a Program from a token stream. The stream must be terminated
// by an EOF token. Errors are reported into bag; the returned program holds
// whatever parsed cleanly before the first unrecoverable point.
func Parse(toks []token.Token, bag *diag.Bag) *ast.Program {
	p := &Parser{toks: toks, bag: bag}
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		stmt, ok := p.parseStatement()
		if !ok {
			p.synchronize()
			continue
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos+n]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	got := p.peek()
	p.bag.Error(diag.ParseExpectedToken, got.Span,
		fmt.Sprintf("expected %q, found %q", k.String(), got.Kind.String()))
	return got, false
}

// synchronize skips to just past the next ';' or to a closing brace,
// so one error does not cascade through the rest of the file.
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		tok := p.advance()
		if tok.Kind == token.Semicolon {
			return
		}
		if p.at(token.RBrace) {
			return
		}
	}
}

func (p *Parser) parseStatement() (ast.Statement, bool) {
	if p.at(token.KwFn) {
		fn, ok := p.parseFnDef()
		if !ok {
			return ast.Statement{}, false
		}
		return ast.Statement{Kind: ast.StmtFnDef, Fn: fn}, true
	}
	line, ok := p.parseBlockLine()
	if !ok {
		return ast.Statement{}, false
	}
	return ast.Statement{Kind: ast.StmtBlockLine, Line: line}, true
}

func (p *Parser) parseFnDef() (ast.FnDef, bool) {
	kw := p.advance() // fn
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.FnDef{}, false
	}
	if _, ok := p.expect(token.LParen); !ok {
		return ast.FnDef{}, false
	}

	var params []string
	for !p.at(token.RParen) {
		param, ok := p.expect(token.Ident)
		if !ok {
			return ast.FnDef{}, false
		}
		params = append(params, param.Text)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	rparen, ok := p.expect(token.RParen)
	if !ok {
		return ast.FnDef{}, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return ast.FnDef{}, false
	}
	return ast.FnDef{
		Name:   name.Text,
		Params: params,
		Body:   body,
		Span:   kw.Span.Cover(rparen.Span),
	}, true
}

func (p *Parser) parseBlock() (ast.Block, bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		return ast.Block{}, false
	}
	var block ast.Block
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		line, ok := p.parseBlockLine()
		if !ok {
			return ast.Block{}, false
		}
		block.Lines = append(block.Lines, line)
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return ast.Block{}, false
	}
	return block, true
}

func (p *Parser) parseBlockLine() (ast.BlockLine, bool) {
	switch p.peek().Kind {
	case token.KwBreak:
		kw := p.advance()
		semi, ok := p.expect(token.Semicolon)
		if !ok {
			return ast.BlockLine{}, false
		}
		return ast.BlockLine{Kind: ast.LineBreak, Span: kw.Span.Cover(semi.Span)}, true

	case token.KwLoop:
		kw := p.advance()
		body, ok := p.parseBlock()
		if !ok {
			return ast.BlockLine{}, false
		}
		return ast.BlockLine{Kind: ast.LineLoop, Loop: body, Span: kw.Span}, true

	default:
		expr, ok := p.parseExpr()
		if !ok {
			return ast.BlockLine{}, false
		}
		// An if-expression line already ends at its closing brace; the
		// semicolon after it is optional.
		if expr.Kind == ast.ExprIf {
			if p.at(token.Semicolon) {
				p.advance()
			}
			return ast.BlockLine{Kind: ast.LineExpr, Expr: expr, Span: expr.Span}, true
		}
		if _, ok := p.expect(token.Semicolon); !ok {
			return ast.BlockLine{}, false
		}
		return ast.BlockLine{Kind: ast.LineExpr, Expr: expr, Span: expr.Span}, true
	}
}
