// Package ast defines the tagged sum types for the IL's expression and
// statement tree. The tree is built by constructor functions rather than by
// a parser: parsing IL source text is out of scope for this repository.
package ast

// NodeID is the stable identity assigned to every node at construction time.
// AnalysisInfo keys its maps by NodeID rather than by node address, following
// the memory-safe-language option named in the design notes: the tree is
// built once, before either analysis pass runs, so identity stays stable
// across both passes.
type NodeID int

// IDGen mints unique, monotonically increasing NodeIDs. A single generator
// must be shared by every constructor call that builds a given tree, and
// reused by the Scope Filler when it synthesizes virtual blocks for that same
// tree, so that no two nodes ever collide.
type IDGen struct {
	next NodeID
}

// NewIDGen returns a fresh generator starting at NodeID 1 (0 is reserved to
// mean "no node").
func NewIDGen() *IDGen {
	return &IDGen{next: 1}
}

func (g *IDGen) alloc() NodeID {
	id := g.next
	g.next++
	return id
}

// Position tracks source location for diagnostics. Filename may be empty for
// synthetically constructed trees (e.g. in tests or for virtual blocks).
type Position struct {
	Filename string
	Line     int
	Column   int
}

// Node is implemented by every AST node.
type Node interface {
	ID() NodeID
	Pos() Position
}

// base is embedded by every concrete node type to supply identity and
// position without repeating the same two accessor methods everywhere.
type base struct {
	id  NodeID
	pos Position
}

func (b *base) ID() NodeID   { return b.id }
func (b *base) Pos() Position { return b.pos }

// TypedName pairs a name with its declared type tag, used for function
// parameters, return variables, and variable declarations.
type TypedName struct {
	Name string
	Type string
}
