package parser

import (
	"testing"

	"github.com/arrowhollow/lumen/internal/ast"
	"github.com/arrowhollow/lumen/internal/token"
)

func lit(v ast.Value) ast.Expression { return &ast.Literal{Value: v} }

func TestFoldBinaryAdd(t *testing.T) {
	v, ok := foldBinary(token.Plus, lit(ast.Integer{Value: 1}), lit(ast.Integer{Value: 2}))
	if !ok || v.(ast.Integer).Value != 3 {
		t.Fatalf("got %v, ok=%v", v, ok)
	}

	v, ok = foldBinary(token.Plus, lit(ast.Integer{Value: 1}), lit(ast.Float{Value: 2.5}))
	if !ok || v.(ast.Float).Value != 3.5 {
		t.Fatalf("got %v, ok=%v", v, ok)
	}

	v, ok = foldBinary(token.Plus, lit(ast.String{Value: "a"}), lit(ast.String{Value: "b"}))
	if !ok || v.(ast.String).Value != "ab" {
		t.Fatalf("got %v, ok=%v", v, ok)
	}

	_, ok = foldBinary(token.Plus, lit(ast.Boolean{Value: true}), lit(ast.Integer{Value: 1}))
	if ok {
		t.Fatalf("expected no-fold for boolean + integer")
	}
}

func TestFoldDivisionByZeroDefersToRuntime(t *testing.T) {
	_, ok := foldBinary(token.Slash, lit(ast.Integer{Value: 1}), lit(ast.Integer{Value: 0}))
	if ok {
		t.Fatalf("expected no-fold for integer division by zero")
	}
	_, ok = foldBinary(token.Slash, lit(ast.Float{Value: 1}), lit(ast.Float{Value: 0}))
	if ok {
		t.Fatalf("expected no-fold for float division by zero")
	}
}

func TestFoldPowTruncatesIntegerResult(t *testing.T) {
	v, ok := foldBinary(token.StarStar, lit(ast.Integer{Value: 2}), lit(ast.Integer{Value: 10}))
	if !ok || v.(ast.Integer).Value != 1024 {
		t.Fatalf("got %v, ok=%v", v, ok)
	}
}

func TestFoldEqualityNullRules(t *testing.T) {
	v, ok := foldBinary(token.Equal, lit(ast.Null{}), lit(ast.Null{}))
	if !ok || !v.(ast.Boolean).Value {
		t.Fatalf("null == null should fold true, got %v, ok=%v", v, ok)
	}
	v, ok = foldBinary(token.Equal, lit(ast.Null{}), lit(ast.Integer{Value: 0}))
	if !ok || v.(ast.Boolean).Value {
		t.Fatalf("null == 0 should fold false, got %v, ok=%v", v, ok)
	}
}

func TestFoldFloatEqualityEpsilon(t *testing.T) {
	v, ok := foldBinary(token.Equal, lit(ast.Float{Value: 0.1 + 0.2}), lit(ast.Float{Value: 0.3}))
	if !ok || !v.(ast.Boolean).Value {
		t.Fatalf("expected epsilon-tolerant float equality to fold true, got %v, ok=%v", v, ok)
	}
}

func TestFoldFloatNotEqualDefersToRuntime(t *testing.T) {
	_, ok := foldBinary(token.NotEqual, lit(ast.Float{Value: 1.0}), lit(ast.Float{Value: 2.0}))
	if ok {
		t.Fatalf("Float != Float must not fold; it is evaluated at runtime")
	}
}

func TestFoldLogicalShortCircuit(t *testing.T) {
	// `and` short-circuits on a false left operand without requiring the
	// right operand to be foldable at all.
	nonFoldable := &ast.Identifier{}
	v, ok := foldLogical(token.And, lit(ast.Boolean{Value: false}), nonFoldable)
	if !ok || v.(ast.Boolean).Value {
		t.Fatalf("expected short-circuited false, got %v, ok=%v", v, ok)
	}

	v, ok = foldLogical(token.Or, lit(ast.Boolean{Value: true}), nonFoldable)
	if !ok || !v.(ast.Boolean).Value {
		t.Fatalf("expected short-circuited true, got %v, ok=%v", v, ok)
	}
}

func TestFoldUnary(t *testing.T) {
	v, ok := foldUnary(token.Minus, lit(ast.Integer{Value: 5}))
	if !ok || v.(ast.Integer).Value != -5 {
		t.Fatalf("got %v, ok=%v", v, ok)
	}
	v, ok = foldUnary(token.Bang, lit(ast.Boolean{Value: true}))
	if !ok || v.(ast.Boolean).Value {
		t.Fatalf("got %v, ok=%v", v, ok)
	}
}

func TestFoldGrouping(t *testing.T) {
	v, ok := foldGrouping(lit(ast.Integer{Value: 7}))
	if !ok || v.(ast.Integer).Value != 7 {
		t.Fatalf("got %v, ok=%v", v, ok)
	}
}
