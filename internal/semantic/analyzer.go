// Package semantic implements the two-pass semantic analyzer (§2, §4):
// the Scope Filler followed by the stateful Analyzer visitor. Nothing here
// parses IL source text — the AST is handed in already built, by a caller
// or by the constructor functions in internal/ast.
//
// Grounded on internal/semantic/analyzer.go's injected-dependency Analyzer
// shape (NewAnalyzer(), stateful fields, Analyze() entry point) and directly
// against _examples/original_source/libyul/AsmAnalysis.cpp for per-node
// semantics, both cited again at each visitor method below.
package semantic

import (
	"fmt"

	"ilsema/internal/ast"
	"ilsema/internal/diag"
	"ilsema/internal/dialect"
	"ilsema/internal/object"
	"ilsema/internal/scope"
)

// Analyzer is the stateful visitor described in §4.2. It is a parameterized
// object: the dialect, reporter, resolver, and data-name set are all
// injected at construction time, and nothing here is held in package-level
// state (§9 "Global state. None required.").
type Analyzer struct {
	gen       *ast.IDGen
	dlct      dialect.Dialect
	reporter  *diag.Reporter
	resolver  Resolver
	dataNames map[string]struct{}
	info      *AnalysisInfo

	scope            *scope.Scope
	currentForLoop   *ast.ForLoop
	stackHeight      int
	currentExprTypes []dialect.Type

	// stopped is set once the reporter signals fatal overflow
	// (ErrTooManyErrors). Every visit method checks it first and returns
	// immediately without further work — the explicit-sentinel suspension
	// point design note calls for, never a panic/recover unwind.
	stopped bool
}

// NewAnalyzer constructs an Analyzer. gen must be the same ast.IDGen that
// built the tree this Analyzer will visit, so that virtual-block node IDs it
// mints during the Scope Filler pass cannot collide with real nodes.
// resolver and dataNames may be nil/empty.
func NewAnalyzer(gen *ast.IDGen, dlct dialect.Dialect, reporter *diag.Reporter, resolver Resolver, dataNames map[string]struct{}) *Analyzer {
	return &Analyzer{
		gen:       gen,
		dlct:      dlct,
		reporter:  reporter,
		resolver:  resolver,
		dataNames: dataNames,
		info:      NewAnalysisInfo(),
	}
}

// Info returns the AnalysisInfo accumulated so far.
func (a *Analyzer) Info() *AnalysisInfo {
	return a.info
}

// Analyze runs the Scope Filler then this Analyzer over block (§6
// "analyze(Block) -> bool"). Returns true iff both passes succeeded and no
// diagnostic was emitted.
func (a *Analyzer) Analyze(block *ast.Block) bool {
	filler := NewScopeFiller(a.gen, a.info, a.reporter)
	if !filler.Fill(block) {
		return false
	}

	a.scope = nil
	a.currentForLoop = nil
	a.stackHeight = 0
	a.currentExprTypes = nil
	a.stopped = false

	ok := a.visitBlock(block)
	return ok && !a.reporter.HasErrors()
}

// AnalyzeStrictAssertCorrect is the convenience entry point from §6: it
// asserts obj.Code passes analysis under dlct and panics otherwise. Intended
// for code already known to pass analysis (e.g. a previously-validated
// object being re-inspected by a downstream tool).
func AnalyzeStrictAssertCorrect(gen *ast.IDGen, dlct dialect.Dialect, obj *object.Object) *AnalysisInfo {
	reporter := diag.NewReporter(obj.Name, "", 0)
	a := NewAnalyzer(gen, dlct, reporter, nil, obj.DataNames())
	if !a.Analyze(obj.Code) {
		panic("semantic: AnalyzeStrictAssertCorrect called on input that failed analysis")
	}
	return a.Info()
}

// report records the outcome of an emit call; once the reporter signals
// fatal overflow, every subsequent visit method short-circuits.
func (a *Analyzer) report(err error) {
	if err != nil {
		a.stopped = true
	}
}

// recordHeight stores the stack height reached after visiting n.
func (a *Analyzer) recordHeight(n ast.Node) {
	a.info.StackHeightInfo[n.ID()] = a.stackHeight
}

// expectExpression visits e and requires it to deposit exactly one value.
func (a *Analyzer) expectExpression(e ast.Expression) bool {
	before := a.stackHeight
	if !a.visitExpression(e) {
		return false
	}
	if !a.expectDeposit(1, before) {
		a.report(a.reporter.DeclarationError(diag.CodeCountMismatch, e.Pos(),
			fmt.Sprintf("expected the expression to deposit exactly one value, got %d", a.stackHeight-before)))
		return false
	}
	return true
}

// expectDeposit reports whether the stack height changed by exactly n since
// oldHeight.
func (a *Analyzer) expectDeposit(n int, oldHeight int) bool {
	return a.stackHeight-oldHeight == n
}

// expectType requires expected and given to match exactly; the IL has no
// subtyping.
func (a *Analyzer) expectType(expected, given dialect.Type, pos ast.Position) bool {
	if expected != given {
		a.report(a.reporter.TypeError(diag.CodeArgumentTypeMismatch, pos,
			fmt.Sprintf(`expected a value of type "%s" but got "%s".`, expected, given)))
		return false
	}
	return true
}

// expectValidType requires t to be one of the dialect's valid type tags.
func (a *Analyzer) expectValidType(t dialect.Type, pos ast.Position) bool {
	for _, valid := range a.dlct.Types() {
		if valid == t {
			return true
		}
	}
	a.report(a.reporter.TypeError(diag.CodeInvalidTypeTag, pos,
		fmt.Sprintf("%q is not a valid type in this dialect", t)))
	return false
}

// checkAssignment resolves name and checks an incoming value of valueType
// against it, consuming one stack slot. Used by both Assignment and, via
// name resolution on a single name, nowhere else — kept as a shared helper
// because both Assignment and the external-resolver l-value fallback need
// the identical "local variable vs. resolver" branch (§4.2 Helpers).
func (a *Analyzer) checkAssignment(name string, valueType dialect.Type, pos ast.Position) bool {
	// The incoming value is consumed unconditionally, on every path, success
	// or failure alike, so one bad assignment target does not also trip a
	// spurious "unbalanced stack" diagnostic on top of the real one.
	a.stackHeight--

	entry, _, found := a.scope.Lookup(name)
	if found {
		switch entry.Kind {
		case scope.KindVariable:
			if !entry.Active {
				a.report(a.reporter.DeclarationError(diag.CodeUseBeforeDeclaration, pos,
					fmt.Sprintf("variable %q used before it was declared", name)))
				return false
			}
			return a.expectType(dialect.Type(entry.Type), valueType, pos)
		case scope.KindFunction:
			a.report(a.reporter.DeclarationError(diag.CodeInvalidAssignTarget, pos,
				fmt.Sprintf("cannot assign to function %q", name)))
			return false
		}
	}

	if a.resolver != nil {
		before := a.reporter.ErrorCount()
		size := a.resolver(name, ContextLValue, a.scope.InsideFunction())
		if size != ResolverNotFound {
			return true
		}
		if a.reporter.ErrorCount() == before {
			a.report(a.reporter.DeclarationError(diag.CodeInvalidAssignTarget, pos,
				fmt.Sprintf("cannot assign to unknown identifier %q", name)))
		}
		return false
	}

	a.report(a.reporter.DeclarationError(diag.CodeInvalidAssignTarget, pos,
		fmt.Sprintf("cannot assign to unknown identifier %q", name)))
	return false
}
