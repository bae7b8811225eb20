package interp

import (
	"github.com/arrowhollow/lumen/internal/ast"
	"github.com/arrowhollow/lumen/internal/ident"
	"github.com/arrowhollow/lumen/internal/langerr"
	"github.com/arrowhollow/lumen/internal/token"
	"github.com/arrowhollow/lumen/internal/value"
)

// Evaluator walks the AST against a lexically-scoped runtime environment.
// Its scope field is mutated as execution enters and leaves blocks and
// function calls, and is restored on every exit path, including error
// returns.
type Evaluator struct {
	pool    *ident.Pool
	globals *Globals
	scope   *value.Scope
}

// New constructs an Evaluator with an empty root scope. One Evaluator
// persists for the lifetime of a run — file execution or an entire REPL
// session — so top-level declarations accumulate across statements.
func New(pool *ident.Pool, globals *Globals) *Evaluator {
	return &Evaluator{pool: pool, globals: globals, scope: value.NewScope(nil)}
}

// Run executes one top-level statement. A `break` that propagates all the
// way out of any loop is a RuntimeError; a stray top-level `return` is
// otherwise accepted and its value discarded.
func (e *Evaluator) Run(stmt ast.Statement) error {
	result, err := e.Execute(stmt)
	if err != nil {
		return err
	}
	if result.IsBreak() {
		return langerr.NewRuntimeError("'break' outside of a loop")
	}
	return nil
}

// Execute runs stmt and reports its StatementResult (Empty/Break/Return).
// Used both at the top level (via Run) and recursively by Block/If/While/
// function-call execution.
func (e *Evaluator) Execute(stmt ast.Statement) (StatementResult, error) {
	switch n := stmt.(type) {
	case *ast.VariableDeclaration:
		return e.executeVariableDeclaration(n)
	case *ast.FunctionDeclaration:
		return e.executeFunctionDeclaration(n)
	case *ast.ExpressionStatement:
		if _, err := e.Evaluate(n.Expr); err != nil {
			return StatementResult{}, err
		}
		return emptyResult(), nil
	case *ast.Block:
		return e.executeBlock(n)
	case *ast.If:
		return e.executeIf(n)
	case *ast.While:
		return e.executeWhile(n)
	case *ast.Break:
		return breakResult(), nil
	case *ast.Return:
		return e.executeReturn(n)
	}
	return StatementResult{}, langerr.NewRuntimeError("unhandled statement node")
}

func (e *Evaluator) executeVariableDeclaration(n *ast.VariableDeclaration) (StatementResult, error) {
	v := value.Value(value.Null{})
	if n.Init != nil {
		var err error
		v, err = e.Evaluate(n.Init)
		if err != nil {
			return StatementResult{}, err
		}
	}
	if err := e.declare(n.Name, v); err != nil {
		return StatementResult{}, err
	}
	return emptyResult(), nil
}

func (e *Evaluator) executeFunctionDeclaration(n *ast.FunctionDeclaration) (StatementResult, error) {
	fn := &value.ScriptFunction{
		Name:    e.pool.Name(n.Name),
		Params:  n.Params,
		Body:    n.Body,
		Closure: e.scope,
	}
	// The captured scope is the one the declaration is about to receive
	// its own binding in, so a recursive call resolves the function's own
	// name through that same scope.
	if err := e.declare(n.Name, fn); err != nil {
		return StatementResult{}, err
	}
	return emptyResult(), nil
}

func (e *Evaluator) executeReturn(n *ast.Return) (StatementResult, error) {
	v := value.Value(value.Null{})
	if n.Value != nil {
		var err error
		v, err = e.Evaluate(n.Value)
		if err != nil {
			return StatementResult{}, err
		}
	}
	return returnResult(v), nil
}

func (e *Evaluator) executeBlock(n *ast.Block) (StatementResult, error) {
	prevScope := e.scope
	e.scope = value.NewScope(prevScope)
	defer func() { e.scope = prevScope }()
	return e.executeStatements(n.Statements)
}

// executeStatements runs stmts in the current scope (the caller is
// responsible for having already entered any new scope), halting as soon
// as a Break or Return result appears.
func (e *Evaluator) executeStatements(stmts []ast.Statement) (StatementResult, error) {
	for _, stmt := range stmts {
		result, err := e.Execute(stmt)
		if err != nil {
			return StatementResult{}, err
		}
		if result.kind != resultEmpty {
			return result, nil
		}
	}
	return emptyResult(), nil
}

func (e *Evaluator) executeIf(n *ast.If) (StatementResult, error) {
	cond, err := e.Evaluate(n.Cond)
	if err != nil {
		return StatementResult{}, err
	}
	b, ok := cond.(value.Boolean)
	if !ok {
		return StatementResult{}, langerr.NewRuntimeError("'if' condition must be a boolean")
	}
	if b.Value {
		return e.Execute(n.Then)
	}
	if n.Else != nil {
		return e.Execute(n.Else)
	}
	return emptyResult(), nil
}

func (e *Evaluator) executeWhile(n *ast.While) (StatementResult, error) {
	for {
		cond, err := e.Evaluate(n.Cond)
		if err != nil {
			return StatementResult{}, err
		}
		b, ok := cond.(value.Boolean)
		if !ok {
			return StatementResult{}, langerr.NewRuntimeError("'while' condition must be a boolean")
		}
		if !b.Value {
			return emptyResult(), nil
		}
		result, err := e.Execute(n.Body)
		if err != nil {
			return StatementResult{}, err
		}
		if result.IsBreak() {
			return emptyResult(), nil
		}
		if _, ok := result.IsReturn(); ok {
			return result, nil
		}
	}
}

// Evaluate computes expr's value.
func (e *Evaluator) Evaluate(expr ast.Expression) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Grouping:
		return e.Evaluate(n.Inner)
	case *ast.Array:
		elements := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.Evaluate(el)
			if err != nil {
				return nil, err
			}
			elements[i] = v
		}
		return value.NewArray(elements), nil
	case *ast.Dictionary:
		return value.NewDictionary(), nil
	case *ast.Identifier:
		v, ok := e.lookupIdentifier(n.Name)
		if !ok {
			return nil, langerr.NewRuntimeError("'%s' is not defined", e.pool.Name(n.Name))
		}
		return v, nil
	case *ast.Member:
		return e.evaluateMember(n)
	case *ast.Unary:
		return e.evaluateUnary(n)
	case *ast.Binary:
		return e.evaluateBinary(n)
	case *ast.Logical:
		return e.evaluateLogical(n)
	case *ast.Function:
		return &value.ScriptFunction{Params: n.Params, Body: n.Body, Closure: e.scope}, nil
	case *ast.Call:
		return e.evaluateCall(n)
	case *ast.Assignment:
		return e.evaluateAssignment(n)
	}
	return nil, langerr.NewRuntimeError("unhandled expression node")
}

func (e *Evaluator) evaluateMember(n *ast.Member) (value.Value, error) {
	target, err := e.Evaluate(n.Target)
	if err != nil {
		return nil, err
	}
	key, err := e.Evaluate(n.Key)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *value.Dictionary:
		k, ok := key.(value.String)
		if !ok {
			return nil, langerr.NewRuntimeError("dict key must be a string")
		}
		return t.Get(k.Value), nil
	case *value.Array:
		i, ok := key.(value.Integer)
		if !ok {
			return nil, langerr.NewRuntimeError("array index must be an integer")
		}
		if i.Value < 0 || i.Value >= int64(len(t.Elements)) {
			return nil, langerr.NewOutOfRangeError("array index %d out of range [0, %d)", i.Value, len(t.Elements))
		}
		return t.Elements[i.Value], nil
	}
	return nil, langerr.NewRuntimeError("member access target must be an array or dict")
}

func (e *Evaluator) evaluateUnary(n *ast.Unary) (value.Value, error) {
	operand, err := e.Evaluate(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.Minus:
		switch v := operand.(type) {
		case value.Integer:
			return value.Integer{Value: -v.Value}, nil
		case value.Float:
			return value.Float{Value: -v.Value}, nil
		}
		return nil, langerr.NewRuntimeError("unary '-' requires a number")
	case token.Bang:
		b, ok := operand.(value.Boolean)
		if !ok {
			return nil, langerr.NewRuntimeError("unary '!' requires a boolean")
		}
		return value.Boolean{Value: !b.Value}, nil
	}
	return nil, langerr.NewRuntimeError("unhandled unary operator")
}

func (e *Evaluator) evaluateLogical(n *ast.Logical) (value.Value, error) {
	left, err := e.Evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(value.Boolean)
	if !ok {
		return nil, langerr.NewRuntimeError("'%s' requires boolean operands", n.Op)
	}
	if n.Op == token.And && !lb.Value {
		return value.Boolean{Value: false}, nil
	}
	if n.Op == token.Or && lb.Value {
		return value.Boolean{Value: true}, nil
	}

	right, err := e.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(value.Boolean)
	if !ok {
		return nil, langerr.NewRuntimeError("'%s' requires boolean operands", n.Op)
	}
	if n.Op == token.And {
		return value.Boolean{Value: lb.Value && rb.Value}, nil
	}
	return value.Boolean{Value: lb.Value || rb.Value}, nil
}

func (e *Evaluator) evaluateCall(n *ast.Call) (value.Value, error) {
	callee, err := e.Evaluate(n.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(value.Function)
	if !ok {
		return nil, langerr.NewRuntimeError("value is not callable")
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.Evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	arity, variadic := fn.Arity()
	if variadic {
		if len(args) < arity {
			return nil, langerr.NewRuntimeError("'%s' expects at least %d argument(s), got %d", fn.FuncName(), arity, len(args))
		}
	} else if len(args) != arity {
		return nil, langerr.NewRuntimeError("'%s' expects %d argument(s), got %d", fn.FuncName(), arity, len(args))
	}

	switch f := fn.(type) {
	case *value.NativeFunction:
		return f.Implement(args)
	case *value.ScriptFunction:
		return e.callScript(f, args)
	}
	return nil, langerr.NewRuntimeError("unsupported function kind")
}

func (e *Evaluator) callScript(f *value.ScriptFunction, args []value.Value) (value.Value, error) {
	callScope := value.NewScope(f.Closure)
	for i, p := range f.Params {
		callScope.Set(p, args[i])
	}

	prevScope := e.scope
	e.scope = callScope
	defer func() { e.scope = prevScope }()

	result, err := e.executeStatements(f.Body)
	if err != nil {
		return nil, err
	}
	if result.IsBreak() {
		return nil, langerr.NewRuntimeError("'break' outside of a loop")
	}
	if v, ok := result.IsReturn(); ok {
		return v, nil
	}
	return value.Null{}, nil
}

func (e *Evaluator) evaluateAssignment(n *ast.Assignment) (value.Value, error) {
	switch target := n.Target.(type) {
	case *ast.Identifier:
		v, err := e.Evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		if err := e.assignIdentifier(target.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.Member:
		// Strict left-to-right: target, then key, then the right-hand
		// side, so side effects in each sub-expression run in source
		// order.
		obj, err := e.Evaluate(target.Target)
		if err != nil {
			return nil, err
		}
		dict, isDict := obj.(*value.Dictionary)
		arr, isArr := obj.(*value.Array)
		if !isDict && !isArr {
			return nil, langerr.NewRuntimeError("assignment target must be an array or dict")
		}
		key, err := e.Evaluate(target.Key)
		if err != nil {
			return nil, err
		}
		v, err := e.Evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		if isDict {
			k, ok := key.(value.String)
			if !ok {
				return nil, langerr.NewRuntimeError("dict key must be a string")
			}
			dict.Set(k.Value, v)
			return v, nil
		}
		i, ok := key.(value.Integer)
		if !ok {
			return nil, langerr.NewRuntimeError("array index must be an integer")
		}
		if i.Value < 0 || i.Value >= int64(len(arr.Elements)) {
			return nil, langerr.NewOutOfRangeError("array index %d out of range [0, %d)", i.Value, len(arr.Elements))
		}
		arr.Elements[i.Value] = v
		return v, nil
	}

	// The grammar accepts any expression in the left-hand slot, so a bad
	// target is only caught here.
	return nil, langerr.NewRuntimeError("invalid assignment target")
}

// lookupIdentifier walks the scope chain, then falls back to globals;
// globals are consulted only after scope-chain lookup fails.
func (e *Evaluator) lookupIdentifier(id ident.ID) (value.Value, bool) {
	for s := e.scope; s != nil; s = s.Parent() {
		if v, ok := s.TryGet(id); ok {
			return v, true
		}
	}
	return e.globals.TryGet(id)
}

// declare binds id in the current scope only, failing if id is already
// locally bound: no shadowing within the same scope.
func (e *Evaluator) declare(id ident.ID, v value.Value) error {
	if e.scope.Has(id) {
		return langerr.NewRuntimeError("'%s' is already declared in this scope", e.pool.Name(id))
	}
	e.scope.Set(id, v)
	return nil
}

// assignIdentifier walks the scope chain to find the owning scope and
// overwrites the binding there. Globals are not assignable — a global can
// be shadowed by a local declaration, but the Globals map itself is
// immutable after init, so assignment never targets it.
func (e *Evaluator) assignIdentifier(id ident.ID, v value.Value) error {
	for s := e.scope; s != nil; s = s.Parent() {
		if s.Has(id) {
			s.Set(id, v)
			return nil
		}
	}
	return langerr.NewRuntimeError("'%s' is not defined", e.pool.Name(id))
}
