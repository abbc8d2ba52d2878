// Package object provides the boundary container the analyzer's Data Names
// interface (§6) is supplied from: a compiled unit's name, its top-level
// code, and any named sub-objects or data items embedded alongside it.
//
// Grounded on _examples/original_source/libyul/Object.cpp, a feature the
// distilled spec.md dropped but which the original source and §6 both
// require a concrete supplier for.
package object

import (
	"fmt"
	"strings"

	"ilsema/internal/ast"
)

// Data is a named blob of content embedded alongside code, e.g. a
// precompiled auxiliary bytecode fragment or a constant table.
type Data struct {
	Name    string
	Content string
}

func (d *Data) String() string {
	return fmt.Sprintf("data \"%s\" hex\"%s\"", d.Name, d.Content)
}

// Object bundles a name, its top-level code, and any named children
// (sub-objects or data items) it embeds. This mirrors libyul's Object/Data
// pair: an Object is itself Data-like from its parent's point of view (it
// has a Name) but additionally owns executable code and children.
type Object struct {
	Name       string
	Code       *ast.Block
	SubObjects []*Object
	Data       []*Data
}

// DataNames returns the set of names the analyzer accepts as
// literalArguments to built-ins like datasize/dataoffset: this object's own
// name plus every direct sub-object and data-item name. Mirrors
// Object::dataNames(), including its exclusion of the empty name.
func (o *Object) DataNames() map[string]struct{} {
	names := make(map[string]struct{})
	if o.Name != "" {
		names[o.Name] = struct{}{}
	}
	for _, sub := range o.SubObjects {
		if sub.Name != "" {
			names[sub.Name] = struct{}{}
		}
	}
	for _, d := range o.Data {
		if d.Name != "" {
			names[d.Name] = struct{}{}
		}
	}
	return names
}

// String pretty-prints the object tree with nested indentation, mirroring
// Object::toString/Data::toString.
func (o *Object) String() string {
	b := &strings.Builder{}
	o.write(b, 0)
	return b.String()
}

func (o *Object) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("    ", depth)
	fmt.Fprintf(b, "%sobject \"%s\" {\n", indent, o.Name)
	fmt.Fprintf(b, "%s    code { ... %d statement(s) ... }\n", indent, len(o.Code.Statements))
	for _, d := range o.Data {
		fmt.Fprintf(b, "%s    %s\n", indent, d.String())
	}
	for _, sub := range o.SubObjects {
		sub.write(b, depth+1)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}
