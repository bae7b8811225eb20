// Package lexer converts a Lumen source string into a stream of tokens,
// with one token of lookahead, tracking line/column as it goes.
package lexer

import (
	"github.com/arrowhollow/lumen/internal/langerr"
	"github.com/arrowhollow/lumen/internal/token"
)

// Lexer scans Lumen source text byte-by-byte. Source is 8-bit text:
// string literals pass bytes through verbatim apart from escape
// processing, so there is no need for rune-aware scanning the way a
// Unicode-identifier language would require.
type Lexer struct {
	input   string
	pos     int // index of ch
	next    int // index after ch
	ch      byte
	line    int
	column  int
	started bool

	peeked  token.Token
	peekErr error
}

// New constructs a Lexer and eagerly reads one token of lookahead.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.advance()
	l.fill()
	return l
}

// Position returns the source location of the next token to be returned by
// Next.
func (l *Lexer) Position() token.Position {
	return l.peeked.Pos
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (token.Token, error) {
	return l.peeked, l.peekErr
}

// Next consumes and returns the next token.
func (l *Lexer) Next() (token.Token, error) {
	tok, err := l.peeked, l.peekErr
	l.fill()
	return tok, err
}

// AtEnd reports whether the next token is EndOfStream (and there was no
// pending lex error).
func (l *Lexer) AtEnd() bool {
	return l.peekErr == nil && l.peeked.Type == token.EndOfStream
}

func (l *Lexer) fill() {
	l.skipWhitespaceAndComments()
	pos := token.Position{Line: l.line, Column: l.column}

	if l.ch == 0 {
		l.peeked = token.Token{Type: token.EndOfStream, Pos: pos}
		l.peekErr = nil
		return
	}

	switch {
	case isDigit(l.ch):
		l.peeked, l.peekErr = l.readNumber(pos)
	case l.ch == '"':
		l.peeked, l.peekErr = l.readString(pos)
	case isAlpha(l.ch):
		l.peeked, l.peekErr = l.readIdentifier(pos), nil
	default:
		l.peeked, l.peekErr = l.readOperator(pos)
	}
}

// advance moves l.ch to the next character of input, updating line/column
// to describe the new character's position. The very first call (from New)
// does not advance line/column, since there is no "previous character" yet
// to account for.
func (l *Lexer) advance() {
	if l.started {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		} else {
			l.column++
		}
	}
	l.started = true

	l.pos = l.next
	if l.pos < len(l.input) {
		l.ch = l.input[l.pos]
	} else {
		l.ch = 0
	}
	l.next = l.pos + 1
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		default:
			return
		}
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlnum(ch byte) bool { return isAlpha(ch) || isDigit(ch) }

func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	start := l.pos
	hasDot := false
	for isDigit(l.ch) {
		l.advance()
	}
	if l.ch == '.' {
		hasDot = true
		l.advance()
		for isDigit(l.ch) {
			l.advance()
		}
		if l.ch == '.' {
			return token.Token{}, langerr.NewSyntaxError(pos, "unexpected second '.' in number literal")
		}
	}
	lexeme := l.input[start:l.pos]
	typ := token.Integer
	if hasDot {
		typ = token.Number
	}
	return token.Token{Type: typ, Lexeme: lexeme, Pos: pos}, nil
}

func (l *Lexer) readString(pos token.Position) (token.Token, error) {
	l.advance() // consume opening quote
	var sb []byte
	for {
		if l.ch == 0 {
			return token.Token{}, langerr.NewSyntaxError(pos, "unterminated string literal")
		}
		if l.ch == '"' {
			l.advance()
			break
		}
		if l.ch == '\\' {
			l.advance()
			escaped, err := l.readEscape(pos)
			if err != nil {
				return token.Token{}, err
			}
			sb = append(sb, escaped)
			continue
		}
		sb = append(sb, l.ch)
		l.advance()
	}
	return token.Token{Type: token.String, Lexeme: string(sb), Pos: pos}, nil
}

func (l *Lexer) readEscape(pos token.Position) (byte, error) {
	if l.ch == 0 {
		return 0, langerr.NewSyntaxError(pos, "unterminated string literal")
	}
	var out byte
	switch l.ch {
	case 'f':
		out = '\f'
	case 'n':
		out = '\n'
	case 'r':
		out = '\r'
	case 't':
		out = '\t'
	case 'v':
		out = '\v'
	case '\\':
		out = '\\'
	case '"':
		out = '"'
	default:
		return 0, langerr.NewSyntaxError(pos, "invalid escape sequence '\\%c'", l.ch)
	}
	l.advance()
	return out, nil
}

func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	start := l.pos
	for isAlnum(l.ch) {
		l.advance()
	}
	lexeme := l.input[start:l.pos]
	if kw, ok := token.Keywords[lexeme]; ok {
		return token.Token{Type: kw, Pos: pos}
	}
	return token.Token{Type: token.Identifier, Lexeme: lexeme, Pos: pos}
}

func (l *Lexer) readOperator(pos token.Position) (token.Token, error) {
	ch := l.ch
	l.advance()

	two := func(next byte, twoType, oneType token.Type) token.Token {
		if l.ch == next {
			l.advance()
			return token.Token{Type: twoType, Pos: pos}
		}
		return token.Token{Type: oneType, Pos: pos}
	}

	switch ch {
	case ',':
		return token.Token{Type: token.Comma, Pos: pos}, nil
	case ';':
		return token.Token{Type: token.Semicolon, Pos: pos}, nil
	case '(':
		return token.Token{Type: token.LeftParen, Pos: pos}, nil
	case ')':
		return token.Token{Type: token.RightParen, Pos: pos}, nil
	case '[':
		return token.Token{Type: token.LeftBracket, Pos: pos}, nil
	case ']':
		return token.Token{Type: token.RightBracket, Pos: pos}, nil
	case '{':
		return token.Token{Type: token.LeftBrace, Pos: pos}, nil
	case '}':
		return token.Token{Type: token.RightBrace, Pos: pos}, nil
	case '.':
		return token.Token{Type: token.Dot, Pos: pos}, nil
	case '=':
		return two('=', token.Equal, token.Assign), nil
	case '!':
		return two('=', token.NotEqual, token.Bang), nil
	case '<':
		return two('=', token.LessEqual, token.LessThan), nil
	case '>':
		return two('=', token.GreaterEqual, token.GreaterThan), nil
	case '*':
		return two('*', token.StarStar, token.Asterisk), nil
	case '+':
		return token.Token{Type: token.Plus, Pos: pos}, nil
	case '-':
		return token.Token{Type: token.Minus, Pos: pos}, nil
	case '/':
		return token.Token{Type: token.Slash, Pos: pos}, nil
	case '%':
		return token.Token{Type: token.Percent, Pos: pos}, nil
	default:
		return token.Token{}, langerr.NewSyntaxError(pos, "unexpected character %q", ch)
	}
}
