// Package value implements Lumen's runtime value model: the closed tagged
// union of scalar values (reused from package ast, since the constant
// folder needs the exact same scalar representation a Literal expression
// node holds) plus the two shared composite object types (array, dict)
// and the function abstraction. It also holds Scope (see scope.go), since
// ScriptFunction closures reference scopes and scopes store values —
// keeping both in one package avoids a Scope <-> Value import cycle.
package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arrowhollow/lumen/internal/ast"
	"github.com/arrowhollow/lumen/internal/ident"
)

// Kind identifies which of the eight cases a Value is. The `type` builtin
// and the evaluator dispatch on the concrete Go type with type switches
// rather than on Kind. Aliased to ast.ValueKind so the five
// scalar Kind constants (KindNull..KindString) are shared verbatim with
// package ast; KindFunction/KindDictionary/KindArray extend the set for the
// three composite/reference cases that only ever arise at runtime.
type Kind = ast.ValueKind

const (
	KindNull    = ast.KindNull
	KindBoolean = ast.KindBoolean
	KindInteger = ast.KindInteger
	KindFloat   = ast.KindFloat
	KindString  = ast.KindString
)

const (
	KindFunction Kind = iota + 100
	KindDictionary
	KindArray
)

// Value is the closed union of runtime values: aliased to ast.Value so
// that a Literal expression's payload (an ast.Value) is, without
// conversion, already a valid runtime Value. Literal scalar values are
// immutable; Array, Dictionary, and Function values are shared by
// reference — two bindings pointing at the same *Array observe each
// other's mutations.
type Value = ast.Value

// Scalar re-exports so evaluator code can construct runtime values without
// importing package ast directly.
type (
	Null    = ast.Null
	Boolean = ast.Boolean
	Integer = ast.Integer
	Float   = ast.Float
	String  = ast.String
)

// Array is an ordered, shared-by-reference sequence of values. It must
// always be held and passed as *Array so that mutation through one alias
// is observed through every other alias of the same array.
type Array struct {
	Elements []Value
}

// NewArray builds an array from elements, copying them into a fresh backing
// slice (composite elements are still shared, since they are held by
// pointer).
func NewArray(elements []Value) *Array {
	return &Array{Elements: append([]Value(nil), elements...)}
}

func (a *Array) Kind() Kind { return KindArray }
func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = el.String()
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

// Dictionary is a string-keyed map, shared by reference. Assigning Null to
// a key removes it; a dictionary never stores a Null value.
type Dictionary struct {
	entries map[string]Value
}

// NewDictionary builds an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string]Value)}
}

func (d *Dictionary) Kind() Kind { return KindDictionary }

func (d *Dictionary) String() string {
	parts := make([]string, 0, len(d.entries))
	for k, v := range d.entries {
		parts = append(parts, fmt.Sprintf("%q: %s", k, v.String()))
	}
	// Iteration order is not observable from script code; sort only so repeated
	// str()/print() calls in tests are deterministic within one process.
	sort.Strings(parts)
	return "{ " + strings.Join(parts, ", ") + " }"
}

// Get returns the value stored at key, or Null{} if absent.
func (d *Dictionary) Get(key string) Value {
	if v, ok := d.entries[key]; ok {
		return v
	}
	return Null{}
}

// Set stores v under key, or deletes key if v is Null.
func (d *Dictionary) Set(key string, v Value) {
	if _, isNull := v.(Null); isNull {
		delete(d.entries, key)
		return
	}
	d.entries[key] = v
}

// Len reports the number of keys currently stored.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Keys returns the dictionary's keys in unspecified order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	return keys
}

// Function is implemented by ScriptFunction and NativeFunction.
type Function interface {
	Value
	FuncName() string
	// Arity returns the required argument count and whether the function
	// is variadic (in which case the count is a minimum, not exact).
	Arity() (count int, variadic bool)
}

// ScriptFunction is a function defined in Lumen source: parameters, a
// body, and the scope captured at the point of definition (enabling
// closures and, for named declarations, direct recursion since the
// captured scope already contains the declared name).
type ScriptFunction struct {
	Name    string
	Params  []ident.ID
	Body    []ast.Statement
	Closure *Scope
}

func (f *ScriptFunction) Kind() Kind { return KindFunction }
func (f *ScriptFunction) String() string {
	if f.Name == "" {
		return "<fun>"
	}
	return fmt.Sprintf("<fun %s>", f.Name)
}
func (f *ScriptFunction) FuncName() string { return f.Name }
func (f *ScriptFunction) Arity() (int, bool) {
	return len(f.Params), false
}

// NativeFunction is a built-in implemented in Go.
type NativeFunction struct {
	Name      string
	MinArity  int
	Variadic  bool
	Implement func(args []Value) (Value, error)
}

func (f *NativeFunction) Kind() Kind         { return KindFunction }
func (f *NativeFunction) String() string     { return fmt.Sprintf("<fun %s>", f.Name) }
func (f *NativeFunction) FuncName() string   { return f.Name }
func (f *NativeFunction) Arity() (int, bool) { return f.MinArity, f.Variadic }
