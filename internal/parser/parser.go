// Package parser implements Lumen's parser: a recursive-descent statement
// grammar over a ten-level, explicitly-named expression-precedence
// grammar, with the ConstantFolder (fold.go) invoked inline at every
// binary/unary/logical/grouping production so constant subtrees collapse
// to Literal nodes as the tree is built, not in a later pass.
package parser

import (
	"github.com/arrowhollow/lumen/internal/ast"
	"github.com/arrowhollow/lumen/internal/ident"
	"github.com/arrowhollow/lumen/internal/langerr"
	"github.com/arrowhollow/lumen/internal/lexer"
	"github.com/arrowhollow/lumen/internal/token"
)

// Parser builds one statement at a time from a Lexer's token stream. Its
// state is purely the lexer's lookahead plus the shared identifier pool —
// there is no separate token buffer.
type Parser struct {
	lex  *lexer.Lexer
	pool *ident.Pool
}

// New constructs a Parser over lex, interning identifiers into pool.
func New(lex *lexer.Lexer, pool *ident.Pool) *Parser {
	return &Parser{lex: lex, pool: pool}
}

// AtEnd reports whether the underlying lexer has reached end of stream.
func (p *Parser) AtEnd() bool {
	return p.lex.AtEnd()
}

// NextStatement parses and returns one fully-parsed top-level statement.
// Callers should check AtEnd before calling NextStatement, the way the
// read-evaluate loop does: each top-level statement is parsed and executed
// before the next one is read.
func (p *Parser) NextStatement() (ast.Statement, error) {
	return p.parseStatement()
}

func (p *Parser) peek() (token.Token, error) {
	return p.lex.Peek()
}

func (p *Parser) check(t token.Type) bool {
	tok, err := p.lex.Peek()
	return err == nil && tok.Type == t
}

func (p *Parser) advance() (token.Token, error) {
	return p.lex.Next()
}

// expect consumes the next token if it has type t, else raises a
// SyntaxError with msg at the offending token's position.
func (p *Parser) expect(t token.Type, msg string) (token.Token, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Type != t {
		return token.Token{}, langerr.NewSyntaxError(tok.Pos, "%s", msg)
	}
	return p.lex.Next()
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case token.Var:
		return p.parseVarDecl()
	case token.Fun:
		return p.parseFunDecl()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Break:
		return p.parseBreak()
	case token.Return:
		return p.parseReturn()
	case token.LeftBrace:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarDecl() (ast.Statement, error) {
	tok, _ := p.advance() // 'var'

	nameTok, err := p.expect(token.Identifier, "expect identifier after 'var'")
	if err != nil {
		return nil, err
	}
	id := p.pool.Intern(nameTok.Lexeme)

	var init ast.Expression
	if p.check(token.Assign) {
		p.advance()
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon, "expect ';' after variable declaration"); err != nil {
		return nil, err
	}

	return &ast.VariableDeclaration{Name: id, Init: init, Pos: tok.Pos}, nil
}

func (p *Parser) parseFunDecl() (ast.Statement, error) {
	tok, _ := p.advance() // 'fun'

	nameTok, err := p.expect(token.Identifier, "expect function name after 'fun'")
	if err != nil {
		return nil, err
	}
	id := p.pool.Intern(nameTok.Lexeme)

	if _, err := p.expect(token.LeftParen, "expect '(' after function name"); err != nil {
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

	return &ast.FunctionDeclaration{Name: id, Params: params, Body: body, Pos: tok.Pos}, nil
}

func (p *Parser) parseParams() ([]ident.ID, error) {
	if p.check(token.RightParen) {
		return nil, nil
	}
	var params []ident.ID
	for {
		tok, err := p.expect(token.Identifier, "expect parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, p.pool.Intern(tok.Lexeme))
		if p.check(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return params, nil
}

// parseBlockBody parses statements until a matching '}', which it consumes.
// The caller is responsible for having already consumed the opening '{'.
func (p *Parser) parseBlockBody() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for {
		if p.check(token.RightBrace) {
			p.advance()
			return stmts, nil
		}
		if p.AtEnd() {
			pos, _ := p.peek()
			return nil, langerr.NewSyntaxError(pos.Pos, "unexpected end of stream inside block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseBlockStatement() (ast.Statement, error) {
	p.advance() // '{'
	stmts, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Statements: stmts}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok, _ := p.advance() // 'if'

	if _, err := p.expect(token.LeftParen, "expect '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "expect ')' after condition"); err != nil {
		return nil, err
	}

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Statement
	if p.check(token.Else) {
		p.advance()
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Cond: cond, Then: then, Else: elseStmt, Pos: tok.Pos}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok, _ := p.advance() // 'while'

	if _, err := p.expect(token.LeftParen, "expect '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "expect ')' after condition"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.While{Cond: cond, Body: body, Pos: tok.Pos}, nil
}

func (p *Parser) parseBreak() (ast.Statement, error) {
	tok, _ := p.advance() // 'break'
	if _, err := p.expect(token.Semicolon, "expect ';' after 'break'"); err != nil {
		return nil, err
	}
	return &ast.Break{Pos: tok.Pos}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok, _ := p.advance() // 'return'

	var value ast.Expression
	if !p.check(token.Semicolon) {
		var err error
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon, "expect ';' after return value"); err != nil {
		return nil, err
	}

	return &ast.Return{Value: value, Pos: tok.Pos}, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "expect ';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expr: expr}, nil
}
