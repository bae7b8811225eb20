package interp

import (
	"bufio"
	"io"
	"time"

	"github.com/arrowhollow/lumen/internal/ident"
	"github.com/arrowhollow/lumen/internal/value"
)

// Globals is the immutable-after-init mapping from identifier id to
// built-in function, consulted only after scope-chain lookup fails — so a
// local declaration with a builtin's name shadows the builtin for the
// rest of that scope.
type Globals struct {
	bindings map[ident.ID]value.Value
}

// processStart anchors the `now` builtin's monotonic clock. `now` promises
// milliseconds since an unspecified epoch, which a process-relative
// monotonic duration satisfies without depending on wall clock
// adjustments.
var processStart = time.Now()

// NewGlobals builds the fixed built-in table, interning each name into
// pool and wiring print/readln to out/in.
func NewGlobals(pool *ident.Pool, out io.Writer, in io.Reader) *Globals {
	g := &Globals{bindings: make(map[ident.ID]value.Value)}
	reader := bufio.NewReader(in)

	register := func(name string, fn *value.NativeFunction) {
		fn.Name = name
		g.bindings[pool.Intern(name)] = fn
	}

	register("assert", &value.NativeFunction{MinArity: 1, Variadic: true, Implement: builtinAssert})
	register("now", &value.NativeFunction{MinArity: 0, Implement: func(args []value.Value) (value.Value, error) {
		return value.Integer{Value: time.Since(processStart).Milliseconds()}, nil
	}})
	register("print", &value.NativeFunction{MinArity: 0, Variadic: true, Implement: func(args []value.Value) (value.Value, error) {
		return builtinPrint(out, args)
	}})
	register("readln", &value.NativeFunction{MinArity: 0, Implement: func(args []value.Value) (value.Value, error) {
		return builtinReadln(reader)
	}})
	register("type", &value.NativeFunction{MinArity: 1, Implement: builtinType})
	register("int", &value.NativeFunction{MinArity: 1, Implement: builtinInt})
	register("float", &value.NativeFunction{MinArity: 1, Implement: builtinFloat})
	register("str", &value.NativeFunction{MinArity: 1, Implement: func(args []value.Value) (value.Value, error) {
		return value.String{Value: str(args[0])}, nil
	}})
	register("len", &value.NativeFunction{MinArity: 1, Implement: builtinLen})
	register("push", &value.NativeFunction{MinArity: 2, Implement: builtinPush})
	register("pop", &value.NativeFunction{MinArity: 1, Implement: builtinPop})
	register("keys", &value.NativeFunction{MinArity: 1, Implement: builtinKeys})
	register("upper", &value.NativeFunction{MinArity: 1, Implement: builtinUpper})
	register("lower", &value.NativeFunction{MinArity: 1, Implement: builtinLower})
	register("substr", &value.NativeFunction{MinArity: 3, Implement: builtinSubstr})

	return g
}

// TryGet looks up id among the built-ins.
func (g *Globals) TryGet(id ident.ID) (value.Value, bool) {
	v, ok := g.bindings[id]
	return v, ok
}
