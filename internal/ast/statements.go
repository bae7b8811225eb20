package ast

import (
	"github.com/arrowhollow/lumen/internal/ident"
	"github.com/arrowhollow/lumen/internal/token"
)

// Statement is implemented by all eight statement node variants.
type Statement interface {
	stmtNode()
}

// VariableDeclaration is `var name = init;` or `var name;` (Init nil).
type VariableDeclaration struct {
	Name ident.ID
	Init Expression
	Pos  token.Position
}

func (*VariableDeclaration) stmtNode() {}

// FunctionDeclaration is `fun name(params) { body }`. The declaration
// node is never mutated at execution time, so re-executing the same
// declaration statement (a `fun` inside a loop body) is idempotent.
type FunctionDeclaration struct {
	Name   ident.ID
	Params []ident.ID
	Body   []Statement
	Pos    token.Position
}

func (*FunctionDeclaration) stmtNode() {}

// ExpressionStatement evaluates Expr and discards the result.
type ExpressionStatement struct {
	Expr Expression
}

func (*ExpressionStatement) stmtNode() {}

// Block is `{ statements... }`: executed in a fresh child scope.
type Block struct {
	Statements []Statement
}

func (*Block) stmtNode() {}

// If is `if (cond) then [else else_]`.
type If struct {
	Cond Expression
	Then Statement
	Else Statement
	Pos  token.Position
}

func (*If) stmtNode() {}

// While is `while (cond) body`.
type While struct {
	Cond Expression
	Body Statement
	Pos  token.Position
}

func (*While) stmtNode() {}

// Break is `break;`.
type Break struct {
	Pos token.Position
}

func (*Break) stmtNode() {}

// Return is `return [value];` (Value nil means "return null").
type Return struct {
	Value Expression
	Pos   token.Position
}

func (*Return) stmtNode() {}
