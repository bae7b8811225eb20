// Package lumen is the embeddable entry point into the interpreter: one
// Engine wraps an identifier pool, the built-in globals, and a persistent
// Evaluator, so cmd/lumen's batch and REPL drivers (and anyone embedding
// Lumen in a larger Go program) share a single "run this stream to
// completion or error" surface.
package lumen

import (
	"io"
	"os"

	"github.com/arrowhollow/lumen/internal/ident"
	"github.com/arrowhollow/lumen/internal/interp"
	"github.com/arrowhollow/lumen/internal/langerr"
	"github.com/arrowhollow/lumen/internal/lexer"
	"github.com/arrowhollow/lumen/internal/parser"
)

// Engine holds the identifier pool, globals, and evaluator state for one
// interpreter session. State persists across calls to Run, so a REPL
// preserves declarations between lines.
type Engine struct {
	pool    *ident.Pool
	out     io.Writer
	in      io.Reader
	globals *interp.Globals
	eval    *interp.Evaluator
}

// New constructs an Engine with stdout/stdin as its default streams.
func New() *Engine {
	e := &Engine{
		pool: ident.NewPool(),
		out:  os.Stdout,
		in:   os.Stdin,
	}
	e.rebuild()
	return e
}

// SetOutput redirects where `print` writes. Globals (and the native `print`
// closure) are built from the currently configured streams, so SetOutput
// rebuilds them together with the evaluator: any declarations made by
// earlier Run calls are discarded.
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
	e.rebuild()
}

// SetInput redirects where `readln` reads from.
func (e *Engine) SetInput(r io.Reader) {
	e.in = r
	e.rebuild()
}

func (e *Engine) rebuild() {
	e.globals = interp.NewGlobals(e.pool, e.out, e.in)
	e.eval = interp.New(e.pool, e.globals)
}

// Run reads source to completion, parsing and executing one top-level
// statement at a time, stopping at the first error.
func (e *Engine) Run(source io.Reader) error {
	data, err := io.ReadAll(source)
	if err != nil {
		return langerr.NewIOError("reading source: %s", err)
	}
	return e.RunString(string(data))
}

// RunString behaves like Run over an in-memory source string, and is the
// form the REPL uses per input line.
func (e *Engine) RunString(source string) error {
	lex := lexer.New(source)
	p := parser.New(lex, e.pool)

	for !p.AtEnd() {
		stmt, err := p.NextStatement()
		if err != nil {
			return err
		}
		if err := e.eval.Run(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Format renders err with source-line context for diagnostics, for
// callers that want to show the originating line rather than just the
// bare message.
func (e *Engine) Format(err error, source string) string {
	return langerr.Format(err, source)
}
