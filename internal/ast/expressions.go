package ast

import (
	"github.com/arrowhollow/lumen/internal/ident"
	"github.com/arrowhollow/lumen/internal/token"
)

// Expression is implemented by all twelve expression node variants.
type Expression interface {
	exprNode()
}

// Binary is a two-operand arithmetic/comparison/equality expression, e.g.
// `a + b`. Op is one of the Term/Factor/Equality/Comparison token kinds.
type Binary struct {
	Left  Expression
	Op    token.Type
	Right Expression
	Pos   token.Position
}

func (*Binary) exprNode() {}

// Grouping is a parenthesized expression that did not fold to a constant,
// kept as its own node (rather than collapsed away) so the tree records the
// original parenthesization. It carries no source position of its own.
type Grouping struct {
	Inner Expression
}

func (*Grouping) exprNode() {}

// Unary is a prefix `-` or `!` applied to a single operand.
type Unary struct {
	Op      token.Type
	Operand Expression
	Pos     token.Position
}

func (*Unary) exprNode() {}

// Literal holds an immutable scalar Value produced either directly by the
// parser (for `null`/`true`/`false`/Integer/Number/String tokens) or by the
// ConstantFolder collapsing a fully-constant subtree.
type Literal struct {
	Value Value
}

func (*Literal) exprNode() {}

// Dictionary is the empty-dict-literal primary expression `{}`. Non-empty
// dict literals are not supported syntactically; dicts are populated by
// member assignment after construction.
type Dictionary struct {
	Pos token.Position
}

func (*Dictionary) exprNode() {}

// Array is an array literal `[e0, e1, ...]`. Elements are evaluated
// left-to-right at runtime to build a fresh array object.
type Array struct {
	Elements []Expression
	Pos      token.Position
}

func (*Array) exprNode() {}

// Member is `target[key]` (dynamic key expression) or `target.name`
// (key is a Literal holding the field name as a String) — both forms
// collapse to one node shape since the only difference is how the key
// expression was parsed.
type Member struct {
	Target Expression
	Key    Expression
	Pos    token.Position
}

func (*Member) exprNode() {}

// Function is an anonymous function literal `fun (params) { body }`.
// Evaluating it captures the current scope, producing a closure.
type Function struct {
	Params []ident.ID
	Body   []Statement
	Pos    token.Position
}

func (*Function) exprNode() {}

// Identifier references a binding by interned id, resolved against the
// scope chain and then Globals at evaluation time.
type Identifier struct {
	Name ident.ID
	Pos  token.Position
}

func (*Identifier) exprNode() {}

// Assignment is `target = value`. Target must be an Identifier or Member;
// this shape is not enforced at parse time (any expression is accepted in
// the left-hand-side grammar slot) — the evaluator rejects any other
// target with a RuntimeError.
type Assignment struct {
	Target Expression
	Value  Expression
	Pos    token.Position
}

func (*Assignment) exprNode() {}

// Logical is `and`/`or` with short-circuit semantics, kept distinct from
// Binary since both operands and the result are required to be Boolean
// (unlike the arithmetic/comparison Binary operators).
type Logical struct {
	Left  Expression
	Op    token.Type
	Right Expression
	Pos   token.Position
}

func (*Logical) exprNode() {}

// Call applies Callee (which must evaluate to a Function value) to
// Args, evaluated left-to-right before the call.
type Call struct {
	Callee Expression
	Args   []Expression
	Pos    token.Position
}

func (*Call) exprNode() {}
