package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arrowhollow/lumen/internal/ident"
	"github.com/arrowhollow/lumen/internal/lexer"
	"github.com/arrowhollow/lumen/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

// runProgram drives a fresh lexer/parser/evaluator over source, capturing
// everything `print` writes. Each top-level statement is parsed then
// executed in turn, matching how pkg/lumen.Engine drives the same
// lexer->parser->evaluator pipeline outside of tests.
func runProgram(t *testing.T, source string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	pool := ident.NewPool()
	globals := NewGlobals(pool, &out, strings.NewReader(""))
	eval := New(pool, globals)

	p := parser.New(lexer.New(source), pool)
	for !p.AtEnd() {
		stmt, err := p.NextStatement()
		if err != nil {
			return out.String(), err
		}
		if err := eval.Run(stmt); err != nil {
			return out.String(), err
		}
	}
	return out.String(), nil
}

// fixtureScenarios pins down end-to-end behavior: precedence, recursion,
// array/dict mutation, closures, and loop control.
var fixtureScenarios = []struct {
	name   string
	source string
	want   string
}{
	{
		name:   "ArithmeticAndPrecedence",
		source: `var a = 1 + 2 * 3; print(a);`,
		want:   "7\n",
	},
	{
		name:   "RecursiveFactorial",
		source: `fun f(n) { if (n <= 1) return 1; return n * f(n - 1); } print(f(5));`,
		want:   "120\n",
	},
	{
		name:   "ArrayIndexAssignment",
		source: `var xs = [10, 20, 30]; xs[1] = 99; print(xs);`,
		want:   "[ 10, 99, 30 ]\n",
	},
	{
		name:   "DictSetGetDelete",
		source: `var d = {}; d["k"] = "v"; print(d["k"]); d["k"] = null; print(d["k"]);`,
		want:   "v\nnull\n",
	},
	{
		name:   "ClosureCounter",
		source: `fun make() { var c = 0; return fun() { c = c + 1; return c; }; } var g = make(); print(g()); print(g()); print(g());`,
		want:   "1\n2\n3\n",
	},
	{
		name:   "WhileBreak",
		source: `var i = 0; while (i < 3) { if (i == 2) break; i = i + 1; } print(i);`,
		want:   "2\n",
	},
}

// TestFixtureScenarios asserts each scenario byte-for-byte against its
// expected output.
func TestFixtureScenarios(t *testing.T) {
	for _, sc := range fixtureScenarios {
		t.Run(sc.name, func(t *testing.T) {
			got, err := runProgram(t, sc.source)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != sc.want {
				t.Fatalf("got %q, want %q", got, sc.want)
			}
		})
	}
}

// TestFixtureScenariosSnapshot runs the same scenarios through go-snaps so a
// regression in formatting (e.g. array/dict rendering) shows up as a diff
// against the committed snapshot, independent of the literal-comparison
// test above.
func TestFixtureScenariosSnapshot(t *testing.T) {
	for _, sc := range fixtureScenarios {
		t.Run(sc.name, func(t *testing.T) {
			got, err := runProgram(t, sc.source)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			snaps.MatchSnapshot(t, got)
		})
	}
}
