package parser

import (
	"strconv"

	"github.com/arrowhollow/lumen/internal/ast"
	"github.com/arrowhollow/lumen/internal/langerr"
	"github.com/arrowhollow/lumen/internal/token"
)

// parseExpression is the entry point of the ten-level precedence grammar,
// lowest precedence first: Assignment, Or, And, Equality, Comparison, Term,
// Factor, Unary, Call/Member, Primary.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.check(token.Assign) {
		tok, _ := p.advance()
		right, err := p.parseAssignment() // right-associative
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Target: left, Value: right, Pos: tok.Pos}, nil
	}
	return left, nil
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.Or) {
		tok, _ := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		if v, ok := foldLogical(token.Or, left, right); ok {
			left = &ast.Literal{Value: v}
		} else {
			left = &ast.Logical{Left: left, Op: token.Or, Right: right, Pos: tok.Pos}
		}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(token.And) {
		tok, _ := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		if v, ok := foldLogical(token.And, left, right); ok {
			left = &ast.Literal{Value: v}
		} else {
			left = &ast.Logical{Left: left, Op: token.And, Right: right, Pos: tok.Pos}
		}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.Equal) || p.check(token.NotEqual) {
		tok, _ := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = p.makeBinary(tok.Type, left, right, tok.Pos)
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.check(token.LessThan) || p.check(token.LessEqual) || p.check(token.GreaterThan) || p.check(token.GreaterEqual) {
		tok, _ := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = p.makeBinary(tok.Type, left, right, tok.Pos)
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.check(token.Plus) || p.check(token.Minus) {
		tok, _ := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = p.makeBinary(tok.Type, left, right, tok.Pos)
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.Asterisk) || p.check(token.Slash) || p.check(token.Percent) || p.check(token.StarStar) {
		tok, _ := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = p.makeBinary(tok.Type, left, right, tok.Pos)
	}
	return left, nil
}

func (p *Parser) makeBinary(op token.Type, left, right ast.Expression, pos token.Position) ast.Expression {
	if v, ok := foldBinary(op, left, right); ok {
		return &ast.Literal{Value: v}
	}
	return &ast.Binary{Left: left, Op: op, Right: right, Pos: pos}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.check(token.Bang) || p.check(token.Minus) {
		tok, _ := p.advance()
		operand, err := p.parseUnary() // right-recursive: `- -x` and `!!x`
		if err != nil {
			return nil, err
		}
		if v, ok := foldUnary(tok.Type, operand); ok {
			return &ast.Literal{Value: v}, nil
		}
		return &ast.Unary{Op: tok.Type, Operand: operand, Pos: tok.Pos}, nil
	}
	return p.parseCallOrMember()
}

func (p *Parser) parseCallOrMember() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(token.LeftParen):
			tok, _ := p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightParen, "expect ')' after arguments"); err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Args: args, Pos: tok.Pos}

		case p.check(token.Dot):
			tok, _ := p.advance()
			nameTok, err := p.expect(token.Identifier, "expect property name after '.'")
			if err != nil {
				return nil, err
			}
			key := &ast.Literal{Value: ast.String{Value: nameTok.Lexeme}}
			expr = &ast.Member{Target: expr, Key: key, Pos: tok.Pos}

		case p.check(token.LeftBracket):
			tok, _ := p.advance()
			keyExpr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightBracket, "expect ']' after index expression"); err != nil {
				return nil, err
			}
			expr = &ast.Member{Target: expr, Key: keyExpr, Pos: tok.Pos}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Expression, error) {
	if p.check(token.RightParen) {
		return nil, nil
	}
	var args []ast.Expression
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.check(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return args, nil
}

// parsePrimary parses literals, identifiers, parenthesized groups, the
// empty-dict literal, array literals, and anonymous function literals. A
// token that starts none of these raises a TypeError, not a SyntaxError.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case token.True:
		p.advance()
		return &ast.Literal{Value: ast.Boolean{Value: true}}, nil

	case token.False:
		p.advance()
		return &ast.Literal{Value: ast.Boolean{Value: false}}, nil

	case token.Null:
		p.advance()
		return &ast.Literal{Value: ast.Null{}}, nil

	case token.Integer:
		p.advance()
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, langerr.NewSyntaxError(tok.Pos, "invalid integer literal %q", tok.Lexeme)
		}
		return &ast.Literal{Value: ast.Integer{Value: n}}, nil

	case token.Number:
		p.advance()
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, langerr.NewSyntaxError(tok.Pos, "invalid number literal %q", tok.Lexeme)
		}
		return &ast.Literal{Value: ast.Float{Value: f}}, nil

	case token.String:
		p.advance()
		return &ast.Literal{Value: ast.String{Value: tok.Lexeme}}, nil

	case token.Identifier:
		p.advance()
		return &ast.Identifier{Name: p.pool.Intern(tok.Lexeme), Pos: tok.Pos}, nil

	case token.LeftParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "expect ')' after expression"); err != nil {
			return nil, err
		}
		if v, ok := foldGrouping(inner); ok {
			return &ast.Literal{Value: v}, nil
		}
		return &ast.Grouping{Inner: inner}, nil

	case token.LeftBrace:
		// Only the empty dict literal `{}` is a primary expression; `{` in
		// statement position is parsed as a Block before parsePrimary is
		// ever reached, so no ambiguity arises here.
		p.advance()
		if _, err := p.expect(token.RightBrace, "non-empty dict literals are not supported; build with member assignment"); err != nil {
			return nil, err
		}
		return &ast.Dictionary{Pos: tok.Pos}, nil

	case token.LeftBracket:
		p.advance()
		elements, err := p.parseArrayElements()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightBracket, "expect ']' after array elements"); err != nil {
			return nil, err
		}
		return &ast.Array{Elements: elements, Pos: tok.Pos}, nil

	case token.Fun:
		p.advance()
		if _, err := p.expect(token.LeftParen, "expect '(' after 'fun'"); err != nil {
			return nil, err
		}
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "expect ')' after parameters"); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LeftBrace, "expect '{' before function body"); err != nil {
			return nil, err
		}
		body, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		return &ast.Function{Params: params, Body: body, Pos: tok.Pos}, nil

	default:
		return nil, langerr.NewTypeError(tok.Pos, "expect expression, got %s", tok.Type)
	}
}

func (p *Parser) parseArrayElements() ([]ast.Expression, error) {
	if p.check(token.RightBracket) {
		return nil, nil
	}
	var elements []ast.Expression
	for {
		el, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if p.check(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return elements, nil
}
