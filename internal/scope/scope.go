// Package scope implements the IL's lexical scope chain: a tree of scopes
// where each scope binds names to either a variable or a function.
//
// Grounded on _examples/susji-c0/analyze/scope.go for the parent-chained
// walk, generalized from "no shadowing anywhere" to the IL's actual rule:
// a name may not be redeclared within the same scope, but a nested scope may
// freely reuse a name bound by an ancestor (spec invariant 3).
package scope

// Kind tags a scope Entry as a Variable or a Function binding. Modeled as an
// enum-plus-payload struct rather than an interface hierarchy, per the
// "variant over scope entries" design note.
type Kind int

const (
	KindVariable Kind = iota
	KindFunction
)

// Entry is one binding in a Scope's identifier table.
type Entry struct {
	Kind Kind

	// Type is populated for Kind == KindVariable.
	Type string

	// Params and Returns are populated for Kind == KindFunction, one type
	// tag per parameter / return variable, in declaration order.
	Params  []string
	Returns []string

	// Active is set once the entry's declaring statement has been visited
	// by the Analyzer. Variables start inactive; functions start active
	// (they are hoisted, §4.1).
	Active bool
}

// Scope is one node in the scope tree.
type Scope struct {
	parent         *Scope
	identifiers    map[string]*Entry
	insideFunction bool
}

// New creates a scope chained to parent. insideFunction should be true if
// this scope is a function's virtual block scope, or if parent.InsideFunction()
// is true — callers compute this once and pass it down, since it is cheaper
// than climbing the chain on every query.
func New(parent *Scope, insideFunction bool) *Scope {
	return &Scope{
		parent:         parent,
		identifiers:    make(map[string]*Entry),
		insideFunction: insideFunction,
	}
}

// Parent returns the enclosing scope, or nil at the outermost scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// InsideFunction reports whether this scope or any ancestor is a function
// body/virtual-block scope.
func (s *Scope) InsideFunction() bool {
	return s.insideFunction
}

// NumberOfVariables counts Variable entries declared directly in this scope
// (not ancestors). Used to pad/unwind stack height at block boundaries.
func (s *Scope) NumberOfVariables() int {
	n := 0
	for _, e := range s.identifiers {
		if e.Kind == KindVariable {
			n++
		}
	}
	return n
}

// Define binds name to entry in this scope. Returns false without modifying
// the scope if name is already bound here — collision within the same scope
// is always a declaration error, regardless of whether the existing or new
// binding is a variable or a function.
func (s *Scope) Define(name string, entry *Entry) bool {
	if _, exists := s.identifiers[name]; exists {
		return false
	}
	s.identifiers[name] = entry
	return true
}

// LookupLocal returns the entry bound to name directly in this scope, not
// searching ancestors.
func (s *Scope) LookupLocal(name string) (*Entry, bool) {
	e, ok := s.identifiers[name]
	return e, ok
}

// Lookup searches this scope then ancestors, returning the entry, the scope
// it was found in, and whether it was found at all.
func (s *Scope) Lookup(name string) (*Entry, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, ok := cur.identifiers[name]; ok {
			return e, cur, true
		}
	}
	return nil, nil, false
}
