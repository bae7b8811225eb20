package interp

import (
	"math"

	"github.com/arrowhollow/lumen/internal/ast"
	"github.com/arrowhollow/lumen/internal/langerr"
	"github.com/arrowhollow/lumen/internal/token"
	"github.com/arrowhollow/lumen/internal/value"
)

// floatEqualEpsilon mirrors the ConstantFolder's tolerance (package
// parser's fold.go) so that folded and evaluated comparisons of the same
// literal pair never disagree.
const floatEqualEpsilon = 1e-9

func asNumber(v value.Value) (f float64, isFloat bool, ok bool) {
	switch n := v.(type) {
	case value.Integer:
		return float64(n.Value), false, true
	case value.Float:
		return n.Value, true, true
	default:
		return 0, false, false
	}
}

func (e *Evaluator) evaluateBinary(n *ast.Binary) (value.Value, error) {
	left, err := e.Evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.Plus:
		return evalAdd(left, right)
	case token.Minus:
		return evalArith(left, right, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case token.Asterisk:
		return evalArith(left, right, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case token.StarStar:
		return evalPow(left, right)
	case token.Slash:
		return evalDiv(left, right)
	case token.Percent:
		return evalMod(left, right)
	case token.LessThan, token.LessEqual, token.GreaterThan, token.GreaterEqual:
		return evalCompare(n.Op, left, right)
	case token.Equal, token.NotEqual:
		return evalEquality(n.Op, left, right)
	}
	return nil, langerr.NewRuntimeError("unhandled binary operator %s", n.Op)
}

func evalAdd(l, r value.Value) (value.Value, error) {
	li, lIsInt := l.(value.Integer)
	ri, rIsInt := r.(value.Integer)
	if lIsInt && rIsInt {
		return value.Integer{Value: li.Value + ri.Value}, nil
	}
	if lf, _, lok := asNumber(l); lok {
		if rf, _, rok := asNumber(r); rok {
			return value.Float{Value: lf + rf}, nil
		}
	}
	ls, lIsStr := l.(value.String)
	rs, rIsStr := r.(value.String)
	if lIsStr && rIsStr {
		return value.String{Value: ls.Value + rs.Value}, nil
	}
	return nil, langerr.NewRuntimeError("'+' requires two numbers or two strings")
}

func evalArith(l, r value.Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (value.Value, error) {
	li, lIsInt := l.(value.Integer)
	ri, rIsInt := r.(value.Integer)
	if lIsInt && rIsInt {
		return value.Integer{Value: intOp(li.Value, ri.Value)}, nil
	}
	lf, _, lok := asNumber(l)
	rf, _, rok := asNumber(r)
	if !lok || !rok {
		return nil, langerr.NewRuntimeError("arithmetic operator requires two numbers")
	}
	return value.Float{Value: floatOp(lf, rf)}, nil
}

func evalPow(l, r value.Value) (value.Value, error) {
	li, lIsInt := l.(value.Integer)
	ri, rIsInt := r.(value.Integer)
	if lIsInt && rIsInt {
		return value.Integer{Value: int64(math.Pow(float64(li.Value), float64(ri.Value)))}, nil
	}
	lf, _, lok := asNumber(l)
	rf, _, rok := asNumber(r)
	if !lok || !rok {
		return nil, langerr.NewRuntimeError("'**' requires two numbers")
	}
	return value.Float{Value: math.Pow(lf, rf)}, nil
}

func evalDiv(l, r value.Value) (value.Value, error) {
	li, lIsInt := l.(value.Integer)
	ri, rIsInt := r.(value.Integer)
	if lIsInt && rIsInt {
		if ri.Value == 0 {
			return nil, langerr.NewRuntimeError("division by zero")
		}
		return value.Integer{Value: li.Value / ri.Value}, nil
	}
	lf, _, lok := asNumber(l)
	rf, _, rok := asNumber(r)
	if !lok || !rok {
		return nil, langerr.NewRuntimeError("'/' requires two numbers")
	}
	if rf == 0 {
		return nil, langerr.NewRuntimeError("division by zero")
	}
	return value.Float{Value: lf / rf}, nil
}

func evalMod(l, r value.Value) (value.Value, error) {
	li, lIsInt := l.(value.Integer)
	ri, rIsInt := r.(value.Integer)
	if !lIsInt || !rIsInt {
		return nil, langerr.NewRuntimeError("'%%' requires two integers")
	}
	if ri.Value == 0 {
		return nil, langerr.NewRuntimeError("modulo by zero")
	}
	return value.Integer{Value: li.Value % ri.Value}, nil
}

func evalCompare(op token.Type, l, r value.Value) (value.Value, error) {
	lf, _, lok := asNumber(l)
	rf, _, rok := asNumber(r)
	if !lok || !rok {
		return nil, langerr.NewRuntimeError("comparison requires two numbers")
	}
	switch op {
	case token.LessThan:
		return value.Boolean{Value: lf < rf}, nil
	case token.LessEqual:
		return value.Boolean{Value: lf <= rf}, nil
	case token.GreaterThan:
		return value.Boolean{Value: lf > rf}, nil
	case token.GreaterEqual:
		return value.Boolean{Value: lf >= rf}, nil
	}
	return nil, langerr.NewRuntimeError("unhandled comparison operator %s", op)
}

// evalEquality implements `==`/`!=` for every value kind. `!=` is the
// negation of `==` throughout, including for floats (where the folder
// declines to fold `!=` and defers here).
func evalEquality(op token.Type, l, r value.Value) (value.Value, error) {
	eq := valuesEqual(l, r)
	if op == token.Equal {
		return value.Boolean{Value: eq}, nil
	}
	return value.Boolean{Value: !eq}, nil
}

func valuesEqual(l, r value.Value) bool {
	if _, ok := l.(value.Null); ok {
		_, rNull := r.(value.Null)
		return rNull
	}
	if _, ok := r.(value.Null); ok {
		return false
	}
	if lb, ok := l.(value.Boolean); ok {
		rb, ok := r.(value.Boolean)
		return ok && lb.Value == rb.Value
	}
	if li, ok := l.(value.Integer); ok {
		ri, ok := r.(value.Integer)
		return ok && li.Value == ri.Value
	}
	if lf, ok := l.(value.Float); ok {
		rf, ok := r.(value.Float)
		return ok && math.Abs(lf.Value-rf.Value) < floatEqualEpsilon
	}
	if ls, ok := l.(value.String); ok {
		rs, ok := r.(value.String)
		return ok && ls.Value == rs.Value
	}
	// Array, Dictionary, and Function are shared-by-reference: equality
	// falls back to identity, which a plain interface comparison gives for
	// free since all three are always held as pointers.
	return l == r
}
