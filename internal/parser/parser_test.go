package parser

import (
	"testing"

	"github.com/arrowhollow/lumen/internal/ast"
	"github.com/arrowhollow/lumen/internal/ident"
	"github.com/arrowhollow/lumen/internal/lexer"
)

func parseAllStatements(t *testing.T, source string) []ast.Statement {
	t.Helper()
	pool := ident.NewPool()
	p := New(lexer.New(source), pool)
	var stmts []ast.Statement
	for !p.AtEnd() {
		stmt, err := p.NextStatement()
		if err != nil {
			t.Fatalf("unexpected parse error: %s", err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func TestParseVarDeclaration(t *testing.T) {
	stmts := parseAllStatements(t, "var x = 1 + 2;")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", stmts[0])
	}
	lit, ok := decl.Init.(*ast.Literal)
	if !ok {
		t.Fatalf("expected constant-folded Literal init, got %T", decl.Init)
	}
	if lit.Value.(ast.Integer).Value != 3 {
		t.Fatalf("expected folded value 3, got %v", lit.Value)
	}
}

func TestParseFunctionDeclarationAndCall(t *testing.T) {
	stmts := parseAllStatements(t, `
fun add(a, b) { return a + b; }
print(add(1, 2));
`)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*ast.FunctionDeclaration); !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", stmts[0])
	}
	exprStmt, ok := stmts[1].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected *ast.ExpressionStatement, got %T", stmts[1])
	}
	call, ok := exprStmt.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", exprStmt.Expr)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 argument (the nested add(1, 2) call), got %d", len(call.Args))
	}
}

func TestParseIfWhileBreak(t *testing.T) {
	stmts := parseAllStatements(t, `
var i = 0;
while (i < 3) {
	if (i == 2) break;
	i = i + 1;
}
`)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	whileStmt, ok := stmts[1].(*ast.While)
	if !ok {
		t.Fatalf("expected *ast.While, got %T", stmts[1])
	}
	body, ok := whileStmt.Body.(*ast.Block)
	if !ok {
		t.Fatalf("expected *ast.Block body, got %T", whileStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("expected 2 statements in while body, got %d", len(body.Statements))
	}
}

func TestParseArrayAndIndexAssignment(t *testing.T) {
	stmts := parseAllStatements(t, `var xs = [1, 2, 3]; xs[1] = 99;`)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	decl := stmts[0].(*ast.VariableDeclaration)
	if _, ok := decl.Init.(*ast.Array); !ok {
		t.Fatalf("expected *ast.Array (elements are literal but array itself is never folded), got %T", decl.Init)
	}
	exprStmt := stmts[1].(*ast.ExpressionStatement)
	assign, ok := exprStmt.Expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", exprStmt.Expr)
	}
	if _, ok := assign.Target.(*ast.Member); !ok {
		t.Fatalf("expected *ast.Member assignment target, got %T", assign.Target)
	}
}

func TestParseEmptyDictLiteral(t *testing.T) {
	stmts := parseAllStatements(t, `var d = {};`)
	decl := stmts[0].(*ast.VariableDeclaration)
	if _, ok := decl.Init.(*ast.Dictionary); !ok {
		t.Fatalf("expected *ast.Dictionary, got %T", decl.Init)
	}
}

func TestParseMemberDotAndBracket(t *testing.T) {
	stmts := parseAllStatements(t, `print(d.k); print(d["k"]);`)
	for i, stmt := range stmts {
		exprStmt := stmt.(*ast.ExpressionStatement)
		call := exprStmt.Expr.(*ast.Call)
		if _, ok := call.Args[0].(*ast.Member); !ok {
			t.Fatalf("statement %d: expected *ast.Member argument, got %T", i, call.Args[0])
		}
	}
}

func TestParseAnonymousFunctionLiteral(t *testing.T) {
	stmts := parseAllStatements(t, `var f = fun(x) { return x; };`)
	decl := stmts[0].(*ast.VariableDeclaration)
	if _, ok := decl.Init.(*ast.Function); !ok {
		t.Fatalf("expected *ast.Function literal, got %T", decl.Init)
	}
}

func TestParseMissingSemicolonIsSyntaxError(t *testing.T) {
	pool := ident.NewPool()
	p := New(lexer.New("var x = 1"), pool)
	if _, err := p.NextStatement(); err == nil {
		t.Fatalf("expected a syntax error for the missing ';'")
	}
}

func TestParseUnknownPrimaryIsTypeError(t *testing.T) {
	pool := ident.NewPool()
	p := New(lexer.New("var x = ;"), pool)
	if _, err := p.NextStatement(); err == nil {
		t.Fatalf("expected a type error for the unknown primary token")
	}
}
