package parser

import (
	"fmt"
	"strconv"

	"langtwo/internal/ast"
	"langtwo/internal/diag"
	"langtwo/internal/token"
)

func (p *Parser) parseExpr() (*ast.Expr, bool) {
	// Assignment is right-recursive: name = <expr>.
	if p.at(token.Ident) && p.peekAt(1).Kind == token.Assign {
		name := p.advance()
		p.advance() // '='
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		return &ast.Expr{
			Kind:   ast.ExprAssign,
			Span:   name.Span.Cover(value.Span),
			Assign: &ast.AssignExpr{Name: name.Text, Value: value},
		}, true
	}
	return p.parseBinary(0)
}

// parseBinary re-associates operator chains by precedence so that later
// pipeline stages can treat the tree as already ordered.
func (p *Parser) parseBinary(minPrec uint8) (*ast.Expr, bool) {
	lhs, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}

	for {
		op, isOp := binOpFor(p.peek().Kind)
		if !isOp || op.Precedence() < minPrec {
			return lhs, true
		}
		p.advance()

		rhs, ok := p.parseBinary(op.Precedence() + 1)
		if !ok {
			return nil, false
		}
		lhs = &ast.Expr{
			Kind: ast.ExprBinOp,
			Span: lhs.Span.Cover(rhs.Span),
			Bin:  &ast.BinOpExpr{Op: op, Lhs: lhs, Rhs: rhs},
		}
	}
}

func binOpFor(k token.Kind) (ast.Op, bool) {
	switch k {
	case token.Plus:
		return ast.OpAdd, true
	case token.Minus:
		return ast.OpSub, true
	case token.Star:
		return ast.OpMul, true
	case token.Slash:
		return ast.OpDiv, true
	case token.Percent:
		return ast.OpMod, true
	case token.EqEq:
		return ast.OpEq, true
	case token.Lt:
		return ast.OpLt, true
	case token.LtEq:
		return ast.OpLte, true
	case token.Gt:
		return ast.OpGt, true
	case token.GtEq:
		return ast.OpGte, true
	}
	return 0, false
}

func (p *Parser) parsePrimary() (*ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		// The lexer already validated the 32-bit range.
		v, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			p.bag.Error(diag.ParseUnexpectedToken, tok.Span,
				fmt.Sprintf("malformed integer literal %q", tok.Text))
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprInt, Span: tok.Span, Int: int32(v)}, true

	case token.StringLit:
		p.advance()
		return &ast.Expr{Kind: ast.ExprStr, Span: tok.Span, Str: tok.Text}, true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.Expr{Kind: ast.ExprBool, Span: tok.Span, Bool: tok.Kind == token.KwTrue}, true

	case token.Ident:
		p.advance()
		if p.at(token.LParen) {
			return p.parseCall(tok)
		}
		return &ast.Expr{Kind: ast.ExprName, Span: tok.Span, Name: tok.Text}, true

	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		rparen, ok := p.expect(token.RParen)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprParen, Span: tok.Span.Cover(rparen.Span), Paren: inner}, true

	case token.KwIf:
		return p.parseIf()

	default:
		p.bag.Error(diag.ParseExpectedExpr, tok.Span,
			fmt.Sprintf("expected expression, found %q", tok.Kind.String()))
		return nil, false
	}
}

func (p *Parser) parseCall(name token.Token) (*ast.Expr, bool) {
	p.advance() // '('
	var args []*ast.Expr
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	rparen, ok := p.expect(token.RParen)
	if !ok {
		return nil, false
	}
	return &ast.Expr{
		Kind: ast.ExprFnCall,
		Span: name.Span.Cover(rparen.Span),
		Call: &ast.CallExpr{Name: name.Text, Args: args},
	}, true
}

func (p *Parser) parseIf() (*ast.Expr, bool) {
	kw := p.advance() // if
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	trueBlock, ok := p.parseBlock()
	if !ok {
		return nil, false
	}

	var falseBlock *ast.Block
	if p.at(token.KwElse) {
		p.advance()
		block, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		falseBlock = &block
	}
	return &ast.Expr{
		Kind: ast.ExprIf,
		Span: kw.Span,
		If:   &ast.IfExpr{Cond: cond, True: trueBlock, False: falseBlock},
	}, true
}
