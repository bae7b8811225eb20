package lexer

import (
	"testing"

	"github.com/arrowhollow/lumen/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `var x = 5;
x = x + 10;`

	tests := []struct {
		expectedType   token.Type
		expectedLexeme string
	}{
		{token.Var, ""},
		{token.Identifier, "x"},
		{token.Assign, ""},
		{token.Integer, "5"},
		{token.Semicolon, ""},
		{token.Identifier, "x"},
		{token.Assign, ""},
		{token.Identifier, "x"},
		{token.Plus, ""},
		{token.Integer, "10"},
		{token.Semicolon, ""},
		{token.EndOfStream, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("tests[%d]: unexpected error: %s", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d]: type wrong. expected=%s, got=%s", i, tt.expectedType, tok.Type)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d]: lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "and or break else if false fun null return true var while"
	expected := []token.Type{
		token.And, token.Or, token.Break, token.Else, token.If, token.False,
		token.Fun, token.Null, token.Return, token.True, token.Var, token.While,
		token.EndOfStream,
	}

	l := New(input)
	for i, want := range expected {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %s", i, err)
		}
		if tok.Type != want {
			t.Fatalf("token %d: expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	input := "== != <= >= ** = ! < > *"
	expected := []token.Type{
		token.Equal, token.NotEqual, token.LessEqual, token.GreaterEqual, token.StarStar,
		token.Assign, token.Bang, token.LessThan, token.GreaterThan, token.Asterisk,
		token.EndOfStream,
	}
	l := New(input)
	for i, want := range expected {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %s", i, err)
		}
		if tok.Type != want {
			t.Fatalf("token %d: expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	l := New("123 4.5")
	tok, err := l.Next()
	if err != nil || tok.Type != token.Integer || tok.Lexeme != "123" {
		t.Fatalf("got %+v, err=%v", tok, err)
	}
	tok, err = l.Next()
	if err != nil || tok.Type != token.Number || tok.Lexeme != "4.5" {
		t.Fatalf("got %+v, err=%v", tok, err)
	}
}

func TestNumberDoubleDotIsSyntaxError(t *testing.T) {
	l := New("1.2.3")
	if _, err := l.Next(); err == nil {
		t.Fatalf("expected a syntax error for the second '.' in a number literal")
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\"d"`)
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tok.Type != token.String {
		t.Fatalf("expected String token, got %s", tok.Type)
	}
	want := "a\nb\tc\"d"
	if tok.Lexeme != want {
		t.Fatalf("expected %q, got %q", want, tok.Lexeme)
	}
}

func TestUnterminatedStringIsSyntaxError(t *testing.T) {
	l := New(`"abc`)
	if _, err := l.Next(); err == nil {
		t.Fatalf("expected an error for an unterminated string")
	}
}

func TestInvalidEscapeIsSyntaxError(t *testing.T) {
	l := New(`"a\qb"`)
	if _, err := l.Next(); err == nil {
		t.Fatalf("expected an error for an invalid escape sequence")
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	l := New("# a comment\nvar x;")
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tok.Type != token.Var {
		t.Fatalf("expected Var, got %s", tok.Type)
	}
	if tok.Pos.Line != 2 {
		t.Fatalf("expected line 2 after the comment, got %d", tok.Pos.Line)
	}
}

func TestLineColumnTracking(t *testing.T) {
	l := New("a\nbb")
	first, _ := l.Next()
	if first.Pos.Line != 1 || first.Pos.Column != 0 {
		t.Fatalf("expected 1:0, got %d:%d", first.Pos.Line, first.Pos.Column)
	}
	second, _ := l.Next()
	if second.Pos.Line != 2 || second.Pos.Column != 0 {
		t.Fatalf("expected 2:0, got %d:%d", second.Pos.Line, second.Pos.Column)
	}
}

func TestAtEnd(t *testing.T) {
	l := New("")
	if !l.AtEnd() {
		t.Fatalf("expected empty input to be at end immediately")
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	if _, err := l.Next(); err == nil {
		t.Fatalf("expected an error for an illegal character")
	}
}
