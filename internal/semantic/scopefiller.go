package semantic

import (
	"fmt"

	"ilsema/internal/ast"
	"ilsema/internal/diag"
	"ilsema/internal/scope"
)

// ScopeFiller is the first analysis pass (§4.1): a single recursive
// traversal that materializes a Scope for every Block and every
// FunctionDefinition's virtual block, and reports redeclaration errors.
//
// Grounded on _examples/original_source/libyul/AsmAnalysis.cpp's
// ScopeFiller pass structure, adapted to Go's constructor-built AST: virtual
// blocks are minted from the same ast.IDGen the rest of the tree was built
// with, so their identity never collides with a real node's.
type ScopeFiller struct {
	gen      *ast.IDGen
	info     *AnalysisInfo
	reporter *diag.Reporter
}

// NewScopeFiller constructs a filler that writes into info and reports
// through reporter.
func NewScopeFiller(gen *ast.IDGen, info *AnalysisInfo, reporter *diag.Reporter) *ScopeFiller {
	return &ScopeFiller{gen: gen, info: info, reporter: reporter}
}

// Fill runs the pass over block. Returns false if any error was reported;
// the pipeline then skips the analyzer pass entirely.
func (f *ScopeFiller) Fill(block *ast.Block) bool {
	f.fillBlock(block, nil, false)
	return !f.reporter.HasErrors()
}

func (f *ScopeFiller) fillBlock(block *ast.Block, parent *scope.Scope, insideFunction bool) *scope.Scope {
	sc := scope.New(parent, insideFunction)
	f.info.Scopes[block.ID()] = sc

	// Functions are registered before anything else in the block so that
	// they may be called before their textual position (hoisting, §4.1).
	for _, stmt := range block.Statements {
		fn, ok := stmt.(*ast.FunctionDefinition)
		if !ok {
			continue
		}
		entry := &scope.Entry{
			Kind:    scope.KindFunction,
			Params:  typedNameTypes(fn.Parameters),
			Returns: typedNameTypes(fn.Returns),
			Active:  true,
		}
		if !sc.Define(fn.Name, entry) {
			f.declare(diag.CodeDuplicateDeclaration, fn.Pos(), "function %q already declared in this scope", fn.Name)
		}
	}

	for _, stmt := range block.Statements {
		f.fillStatement(stmt, sc, insideFunction)
	}

	return sc
}

func (f *ScopeFiller) fillStatement(stmt ast.Statement, sc *scope.Scope, insideFunction bool) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		// Variables are registered only when their VariableDeclaration is
		// visited, in textual order — a variable is not yet bound when the
		// filler later registers a sibling that shares its name, unless
		// that sibling collides directly (still a same-scope redeclaration
		// error).
		for _, name := range s.Names {
			entry := &scope.Entry{Kind: scope.KindVariable, Type: name.Type}
			if !sc.Define(name.Name, entry) {
				f.declare(diag.CodeDuplicateDeclaration, s.Pos(), "variable %q already declared in this scope", name.Name)
			}
		}

	case *ast.If:
		f.fillBlock(s.Body, sc, insideFunction)

	case *ast.Switch:
		for _, c := range s.Cases {
			f.fillBlock(c.Body, sc, insideFunction)
		}

	case *ast.ForLoop:
		// Pre's scope must stay reachable from condition, body, and post
		// even though Pre is itself an ordinary Block; the Analyzer
		// re-enters preScope explicitly for those three parts (§4.2).
		preScope := f.fillBlock(s.Pre, sc, insideFunction)
		f.fillBlock(s.Body, preScope, insideFunction)
		f.fillBlock(s.Post, preScope, insideFunction)

	case *ast.FunctionDefinition:
		virtual := ast.NewBlock(f.gen, s.Pos())
		f.info.VirtualBlocks[s.ID()] = virtual
		virtualScope := scope.New(sc, true)
		f.info.Scopes[virtual.ID()] = virtualScope

		for _, p := range s.Parameters {
			if !virtualScope.Define(p.Name, &scope.Entry{Kind: scope.KindVariable, Type: p.Type}) {
				f.declare(diag.CodeDuplicateDeclaration, s.Pos(), "parameter %q already declared", p.Name)
			}
		}
		for _, r := range s.Returns {
			if !virtualScope.Define(r.Name, &scope.Entry{Kind: scope.KindVariable, Type: r.Type}) {
				f.declare(diag.CodeDuplicateDeclaration, s.Pos(), "return variable %q already declared", r.Name)
			}
		}

		f.fillBlock(s.Body, virtualScope, true)

	case *ast.Block:
		f.fillBlock(s, sc, insideFunction)

	case *ast.ExpressionStatement, *ast.Assignment, *ast.Break, *ast.Continue, *ast.Leave:
		// No new scope, no declarations.

	default:
		panic(fmt.Sprintf("semantic: scope filler encountered unknown statement type %T", stmt))
	}
}

func (f *ScopeFiller) declare(code diag.Code, pos ast.Position, format string, args ...interface{}) {
	f.reporter.DeclarationError(code, pos, fmt.Sprintf(format, args...))
}

func typedNameTypes(names []ast.TypedName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.Type
	}
	return out
}
