// Package ident provides an append-only identifier interner.
//
// Every scope, AST identifier reference, and declaration in Lumen refers to
// identifiers by a small dense integer id rather than by string, so that
// scope lookups and equality checks are map/slice operations on ints rather
// than string comparisons. A Pool is the single source of truth mapping
// strings to ids for the lifetime of one interpreter instance.
package ident

// ID is a dense, append-only identifier handle. The zero value is itself a
// valid id (the first interned string gets ID 0); callers should treat IDs
// as opaque rather than relying on that.
type ID int

// Pool interns identifier strings to small integer ids. Looking up an id
// returns the interned string. A Pool never forgets or renumbers an
// identifier once interned.
type Pool struct {
	byName []string
	ids    map[string]ID
}

// NewPool creates an empty identifier pool.
func NewPool() *Pool {
	return &Pool{
		ids: make(map[string]ID),
	}
}

// Intern returns the id for name, interning it if this is the first time
// name has been seen.
func (p *Pool) Intern(name string) ID {
	if id, ok := p.ids[name]; ok {
		return id
	}
	id := ID(len(p.byName))
	p.byName = append(p.byName, name)
	p.ids[name] = id
	return id
}

// Name returns the string interned under id. Panics if id was never
// produced by this pool, since that indicates a programming error rather
// than a recoverable condition.
func (p *Pool) Name(id ID) string {
	return p.byName[id]
}

// Len reports how many distinct identifiers have been interned so far.
func (p *Pool) Len() int {
	return len(p.byName)
}
