// Package langerr provides Lumen's flat error taxonomy plus source-context
// diagnostic formatting: a header naming the location, the offending
// source line, and a caret pointing at the column.
package langerr

import (
	"fmt"
	"strings"

	"github.com/arrowhollow/lumen/internal/token"
)

// Located is implemented by the error kinds that carry a source position:
// SyntaxError and TypeError.
type Located interface {
	error
	Position() token.Position
}

// SyntaxError reports malformed tokens or grammar.
type SyntaxError struct {
	Message string
	Pos     token.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Position implements Located.
func (e *SyntaxError) Position() token.Position { return e.Pos }

// NewSyntaxError constructs a SyntaxError at pos.
func NewSyntaxError(pos token.Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// TypeError reports grammar-shaped input that fails a kind check at parse
// time. The only producer is an unknown primary token ("expect
// expression").
type TypeError struct {
	Message string
	Pos     token.Position
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Position implements Located.
func (e *TypeError) Position() token.Position { return e.Pos }

// NewTypeError constructs a TypeError at pos.
func NewTypeError(pos token.Position, format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// RuntimeError is any evaluator-detected violation: undefined name, wrong
// type for an operator, divide-by-zero, wrong arity, duplicate declaration
// in the same scope, non-object member access, bad assignment target.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError constructs a RuntimeError.
func NewRuntimeError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// OutOfRangeError reports an array index outside [0, length).
type OutOfRangeError struct {
	Message string
}

func (e *OutOfRangeError) Error() string { return e.Message }

// NewOutOfRangeError constructs an OutOfRangeError.
func NewOutOfRangeError(format string, args ...any) *OutOfRangeError {
	return &OutOfRangeError{Message: fmt.Sprintf(format, args...)}
}

// IOError reports stream-level failures during lexing (put-back, seek).
type IOError struct {
	Message string
}

func (e *IOError) Error() string { return e.Message }

// NewIOError constructs an IOError.
func NewIOError(format string, args ...any) *IOError {
	return &IOError{Message: fmt.Sprintf(format, args...)}
}

// LanguageError is thrown by the assert builtin on assertion failure.
type LanguageError struct {
	Message string
}

func (e *LanguageError) Error() string { return e.Message }

// NewLanguageError constructs a LanguageError.
func NewLanguageError(format string, args ...any) *LanguageError {
	return &LanguageError{Message: fmt.Sprintf(format, args...)}
}

// Format renders err with source context: a header naming the location,
// the offending source line, and a caret pointing at the column. Errors
// that do not implement Located (RuntimeError and friends) are rendered as
// a plain message line.
func Format(err error, source string) string {
	loc, ok := err.(Located)
	if !ok {
		return err.Error()
	}

	var sb strings.Builder
	pos := loc.Position()
	fmt.Fprintf(&sb, "line %d:%d: %s\n", pos.Line, pos.Column, messageOf(err))

	line := sourceLine(source, pos.Line)
	if line != "" {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString("    ")
		sb.WriteString(strings.Repeat(" ", pos.Column))
		sb.WriteString("^")
	}
	return sb.String()
}

func messageOf(err error) string {
	switch e := err.(type) {
	case *SyntaxError:
		return e.Message
	case *TypeError:
		return e.Message
	default:
		return err.Error()
	}
}

func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}
