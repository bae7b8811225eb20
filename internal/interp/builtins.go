package interp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arrowhollow/lumen/internal/langerr"
	"github.com/arrowhollow/lumen/internal/value"
)

// str renders v in the canonical form the `str` builtin and the
// `print`/diagnostic paths share. Every Value already implements String()
// in exactly this form, so str is a thin, named entry point rather than a
// duplicate formatter.
func str(v value.Value) string {
	return v.String()
}

func builtinAssert(args []value.Value) (value.Value, error) {
	cond, ok := args[0].(value.Boolean)
	if !ok {
		return nil, langerr.NewRuntimeError("assert: first argument must be a boolean")
	}
	if cond.Value {
		return value.Null{}, nil
	}
	parts := make([]string, len(args)-1)
	for i, a := range args[1:] {
		parts[i] = str(a)
	}
	msg := "Assertion failed"
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}
	return nil, langerr.NewLanguageError("%s", msg)
}

func builtinPrint(out io.Writer, args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = str(a)
	}
	if _, err := fmt.Fprintln(out, strings.Join(parts, " ")); err != nil {
		return nil, langerr.NewRuntimeError("print: %s", err)
	}
	return value.Null{}, nil
}

func builtinReadln(reader *bufio.Reader) (value.Value, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, langerr.NewRuntimeError("readln: %s", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return value.String{Value: line}, nil
}

func builtinType(args []value.Value) (value.Value, error) {
	switch args[0].(type) {
	case value.Null:
		return value.String{Value: "null"}, nil
	case value.Boolean:
		return value.String{Value: "boolean"}, nil
	case value.Integer:
		return value.String{Value: "integer"}, nil
	case value.Float:
		return value.String{Value: "float"}, nil
	case value.String:
		return value.String{Value: "string"}, nil
	case value.Function:
		return value.String{Value: "function"}, nil
	case *value.Dictionary:
		return value.String{Value: "dict"}, nil
	case *value.Array:
		return value.String{Value: "array"}, nil
	}
	return nil, langerr.NewRuntimeError("type: unrecognized value")
}

func builtinInt(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.Boolean:
		if v.Value {
			return value.Integer{Value: 1}, nil
		}
		return value.Integer{Value: 0}, nil
	case value.Integer:
		return v, nil
	case value.Float:
		return value.Integer{Value: int64(v.Value)}, nil
	case value.String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return nil, langerr.NewRuntimeError("int: cannot parse %q as integer", v.Value)
		}
		return value.Integer{Value: n}, nil
	}
	return nil, langerr.NewRuntimeError("int: unsupported argument")
}

func builtinFloat(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.Boolean:
		if v.Value {
			return value.Float{Value: 1.0}, nil
		}
		return value.Float{Value: 0.0}, nil
	case value.Integer:
		return value.Float{Value: float64(v.Value)}, nil
	case value.Float:
		return v, nil
	case value.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, langerr.NewRuntimeError("float: cannot parse %q as float", v.Value)
		}
		return value.Float{Value: f}, nil
	}
	return nil, langerr.NewRuntimeError("float: unsupported argument")
}

func builtinLen(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.String:
		return value.Integer{Value: int64(len(v.Value))}, nil
	case *value.Array:
		return value.Integer{Value: int64(len(v.Elements))}, nil
	}
	return nil, langerr.NewRuntimeError("len: argument must be a string or array")
}

func builtinPush(args []value.Value) (value.Value, error) {
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, langerr.NewRuntimeError("push: first argument must be an array")
	}
	arr.Elements = append(arr.Elements, args[1])
	return value.Integer{Value: int64(len(arr.Elements))}, nil
}

func builtinPop(args []value.Value) (value.Value, error) {
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, langerr.NewRuntimeError("pop: argument must be an array")
	}
	if len(arr.Elements) == 0 {
		return value.Null{}, nil
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last, nil
}

func builtinKeys(args []value.Value) (value.Value, error) {
	dict, ok := args[0].(*value.Dictionary)
	if !ok {
		return nil, langerr.NewRuntimeError("keys: argument must be a dict")
	}
	keys := dict.Keys()
	elements := make([]value.Value, len(keys))
	for i, k := range keys {
		elements[i] = value.String{Value: k}
	}
	return value.NewArray(elements), nil
}

func builtinUpper(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, langerr.NewRuntimeError("upper: argument must be a string")
	}
	return value.String{Value: strings.ToUpper(s.Value)}, nil
}

func builtinLower(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, langerr.NewRuntimeError("lower: argument must be a string")
	}
	return value.String{Value: strings.ToLower(s.Value)}, nil
}

func builtinSubstr(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, langerr.NewRuntimeError("substr: first argument must be a string")
	}
	start, ok := args[1].(value.Integer)
	if !ok {
		return nil, langerr.NewRuntimeError("substr: second argument must be an integer")
	}
	length, ok := args[2].(value.Integer)
	if !ok {
		return nil, langerr.NewRuntimeError("substr: third argument must be an integer")
	}
	n := int64(len(s.Value))
	if start.Value < 0 || start.Value > n || length.Value < 0 || start.Value+length.Value > n {
		return nil, langerr.NewOutOfRangeError("substr: range [%d, %d) out of bounds for string of length %d", start.Value, start.Value+length.Value, n)
	}
	return value.String{Value: s.Value[start.Value : start.Value+length.Value]}, nil
}
