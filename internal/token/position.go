package token

import "fmt"

// Position is a source location: a 1-indexed line and a 0-indexed column.
// It is attached to tokens and, through them, to syntax errors for
// diagnostics.
type Position struct {
	Line   int
	Column int
}

// String renders the position as "line:column", used by diagnostics.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
