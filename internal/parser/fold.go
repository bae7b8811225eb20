package parser

import (
	"math"

	"github.com/arrowhollow/lumen/internal/ast"
	"github.com/arrowhollow/lumen/internal/token"
)

// floatEqualEpsilon is the tolerance constant folding uses to compare two
// Float literals for `==`. It must stay in sync with the evaluator's
// equality tolerance so a folded comparison never disagrees with an
// evaluated one.
const floatEqualEpsilon = 1e-9

// asLiteral returns the constant Value held by e if e is already a folded
// (or originally literal) Literal node, and ok=true. Otherwise ok is
// false — the explicit "no-fold" signal, kept distinct from an actual
// Null value so that a genuine null constant and an unfoldable subtree
// can never be confused.
func asLiteral(e ast.Expression) (ast.Value, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return nil, false
	}
	return lit.Value, true
}

func asNumber(v ast.Value) (f float64, isFloat bool, ok bool) {
	switch n := v.(type) {
	case ast.Integer:
		return float64(n.Value), false, true
	case ast.Float:
		return n.Value, true, true
	default:
		return 0, false, false
	}
}

// foldGrouping folds a parenthesized group to its inner constant.
func foldGrouping(inner ast.Expression) (ast.Value, bool) {
	return asLiteral(inner)
}

// foldUnary folds prefix `-` over a numeric constant and `!` over a
// boolean constant.
func foldUnary(op token.Type, operand ast.Expression) (ast.Value, bool) {
	v, ok := asLiteral(operand)
	if !ok {
		return nil, false
	}
	switch op {
	case token.Minus:
		switch n := v.(type) {
		case ast.Integer:
			return ast.Integer{Value: -n.Value}, true
		case ast.Float:
			return ast.Float{Value: -n.Value}, true
		}
	case token.Bang:
		if b, ok := v.(ast.Boolean); ok {
			return ast.Boolean{Value: !b.Value}, true
		}
	}
	return nil, false
}

// foldLogical folds `and`/`or` over boolean constants, including the short-circuit
// behavior: `and` folds to false as soon as the left operand folds to a
// false Boolean, without requiring the right operand to be foldable at
// all (symmetric for `or`/true).
func foldLogical(op token.Type, left, right ast.Expression) (ast.Value, bool) {
	lv, ok := asLiteral(left)
	if !ok {
		return nil, false
	}
	lb, ok := lv.(ast.Boolean)
	if !ok {
		return nil, false
	}

	if op == token.And && !lb.Value {
		return ast.Boolean{Value: false}, true
	}
	if op == token.Or && lb.Value {
		return ast.Boolean{Value: true}, true
	}

	rv, ok := asLiteral(right)
	if !ok {
		return nil, false
	}
	rb, ok := rv.(ast.Boolean)
	if !ok {
		return nil, false
	}

	if op == token.And {
		return ast.Boolean{Value: lb.Value && rb.Value}, true
	}
	return ast.Boolean{Value: lb.Value || rb.Value}, true
}

// foldBinary folds a binary operator over two constants, dispatching on
// the operator. Division and modulo by a zero constant never fold, so the
// error surfaces at runtime instead of at parse time.
func foldBinary(op token.Type, left, right ast.Expression) (ast.Value, bool) {
	lv, lok := asLiteral(left)
	rv, rok := asLiteral(right)
	if !lok || !rok {
		return nil, false
	}

	switch op {
	case token.Plus:
		return foldAdd(lv, rv)
	case token.Minus:
		return foldArith(lv, rv, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case token.Asterisk:
		return foldArith(lv, rv, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case token.StarStar:
		return foldPow(lv, rv)
	case token.Slash:
		return foldDiv(lv, rv)
	case token.Percent:
		return foldMod(lv, rv)
	case token.LessThan, token.LessEqual, token.GreaterThan, token.GreaterEqual:
		return foldCompare(op, lv, rv)
	case token.Equal, token.NotEqual:
		return foldEquality(op, lv, rv)
	}
	return nil, false
}

func foldAdd(lv, rv ast.Value) (ast.Value, bool) {
	li, lIsInt := lv.(ast.Integer)
	ri, rIsInt := rv.(ast.Integer)
	if lIsInt && rIsInt {
		return ast.Integer{Value: li.Value + ri.Value}, true
	}
	if lf, _, lok := asNumber(lv); lok {
		if rf, _, rok := asNumber(rv); rok {
			return ast.Float{Value: lf + rf}, true
		}
	}
	ls, lIsStr := lv.(ast.String)
	rs, rIsStr := rv.(ast.String)
	if lIsStr && rIsStr {
		return ast.String{Value: ls.Value + rs.Value}, true
	}
	return nil, false
}

func foldArith(lv, rv ast.Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (ast.Value, bool) {
	li, lIsInt := lv.(ast.Integer)
	ri, rIsInt := rv.(ast.Integer)
	if lIsInt && rIsInt {
		return ast.Integer{Value: intOp(li.Value, ri.Value)}, true
	}
	lf, _, lok := asNumber(lv)
	rf, _, rok := asNumber(rv)
	if !lok || !rok {
		return nil, false
	}
	return ast.Float{Value: floatOp(lf, rf)}, true
}

func foldPow(lv, rv ast.Value) (ast.Value, bool) {
	li, lIsInt := lv.(ast.Integer)
	ri, rIsInt := rv.(ast.Integer)
	if lIsInt && rIsInt {
		return ast.Integer{Value: int64(math.Pow(float64(li.Value), float64(ri.Value)))}, true
	}
	lf, _, lok := asNumber(lv)
	rf, _, rok := asNumber(rv)
	if !lok || !rok {
		return nil, false
	}
	return ast.Float{Value: math.Pow(lf, rf)}, true
}

func foldDiv(lv, rv ast.Value) (ast.Value, bool) {
	li, lIsInt := lv.(ast.Integer)
	ri, rIsInt := rv.(ast.Integer)
	if lIsInt && rIsInt {
		if ri.Value == 0 {
			return nil, false
		}
		return ast.Integer{Value: li.Value / ri.Value}, true
	}
	lf, _, lok := asNumber(lv)
	rf, _, rok := asNumber(rv)
	if !lok || !rok {
		return nil, false
	}
	if rf == 0 {
		return nil, false
	}
	return ast.Float{Value: lf / rf}, true
}

func foldMod(lv, rv ast.Value) (ast.Value, bool) {
	li, lIsInt := lv.(ast.Integer)
	ri, rIsInt := rv.(ast.Integer)
	if !lIsInt || !rIsInt {
		return nil, false
	}
	if ri.Value == 0 {
		return nil, false
	}
	return ast.Integer{Value: li.Value % ri.Value}, true
}

func foldCompare(op token.Type, lv, rv ast.Value) (ast.Value, bool) {
	lf, _, lok := asNumber(lv)
	rf, _, rok := asNumber(rv)
	if !lok || !rok {
		return nil, false
	}
	switch op {
	case token.LessThan:
		return ast.Boolean{Value: lf < rf}, true
	case token.LessEqual:
		return ast.Boolean{Value: lf <= rf}, true
	case token.GreaterThan:
		return ast.Boolean{Value: lf > rf}, true
	case token.GreaterEqual:
		return ast.Boolean{Value: lf >= rf}, true
	}
	return nil, false
}

// foldEquality folds == / != over constants of matching kind. Float==Float
// uses the epsilon compare; Float!=Float deliberately does not fold and is
// left to the evaluator, which defines != as the negation of == for
// floats.
func foldEquality(op token.Type, lv, rv ast.Value) (ast.Value, bool) {
	_, lNull := lv.(ast.Null)
	_, rNull := rv.(ast.Null)
	if lNull || rNull {
		bothNull := lNull && rNull
		if op == token.Equal {
			return ast.Boolean{Value: bothNull}, true
		}
		return ast.Boolean{Value: !bothNull}, true
	}

	if lb, ok := lv.(ast.Boolean); ok {
		if rb, ok := rv.(ast.Boolean); ok {
			if op == token.Equal {
				return ast.Boolean{Value: lb.Value == rb.Value}, true
			}
			return ast.Boolean{Value: lb.Value != rb.Value}, true
		}
		return nil, false
	}

	if li, ok := lv.(ast.Integer); ok {
		if ri, ok := rv.(ast.Integer); ok {
			if op == token.Equal {
				return ast.Boolean{Value: li.Value == ri.Value}, true
			}
			return ast.Boolean{Value: li.Value != ri.Value}, true
		}
		return nil, false
	}

	if lf, ok := lv.(ast.Float); ok {
		if rf, ok := rv.(ast.Float); ok {
			if op == token.Equal {
				return ast.Boolean{Value: math.Abs(lf.Value-rf.Value) < floatEqualEpsilon}, true
			}
			// Float != Float: documented folder gap, no-fold.
			return nil, false
		}
		return nil, false
	}

	if ls, ok := lv.(ast.String); ok {
		if rs, ok := rv.(ast.String); ok {
			if op == token.Equal {
				return ast.Boolean{Value: ls.Value == rs.Value}, true
			}
			return ast.Boolean{Value: ls.Value != rs.Value}, true
		}
		return nil, false
	}

	return nil, false
}
