package semantic

import (
	"fmt"
	"math/big"

	"ilsema/internal/ast"
	"ilsema/internal/diag"
	"ilsema/internal/dialect"
	"ilsema/internal/scope"
)

// maxU256 is 2^256 - 1, the largest value a Number literal may carry (§8
// boundary case: exactly this value is accepted, one more is rejected).
// Grounded on internal/semantic/analyzer_helper.go's getTypeMaxValue, which
// computes the same family of bounds with math/big for the same reason: no
// third-party bignum library appears anywhere in the example pack.
var maxU256 = func() *big.Int {
	max := new(big.Int)
	max.Exp(big.NewInt(2), big.NewInt(256), nil)
	max.Sub(max, big.NewInt(1))
	return max
}()

// visitExpression dispatches on the Expression sum type (§9 "visitor
// polymorphism").
func (a *Analyzer) visitExpression(e ast.Expression) bool {
	if a.stopped {
		return false
	}
	switch expr := e.(type) {
	case *ast.Literal:
		return a.visitLiteral(expr)
	case *ast.Identifier:
		return a.visitIdentifier(expr)
	case *ast.FunctionCall:
		return a.visitFunctionCall(expr)
	default:
		panic(fmt.Sprintf("semantic: analyzer encountered unknown expression type %T", e))
	}
}

// visitLiteral implements §4.2 Literal.
func (a *Analyzer) visitLiteral(lit *ast.Literal) bool {
	if a.stopped {
		return false
	}
	typ := dialect.Type(lit.Type)
	if !a.expectValidType(typ, lit.Pos()) {
		return false
	}
	if !a.checkLiteralRange(lit) {
		return false
	}
	if !a.dlct.ValidTypeForLiteral(toDialectKind(lit.Kind), lit.Value, typ) {
		a.report(a.reporter.TypeError(diag.CodeLiteralKindMismatch, lit.Pos(),
			fmt.Sprintf("literal %q is not a valid %s for type %q", lit.Value, lit.Kind, typ)))
		return false
	}

	a.stackHeight++
	a.currentExprTypes = []dialect.Type{typ}
	a.recordHeight(lit)
	return true
}

func (a *Analyzer) checkLiteralRange(lit *ast.Literal) bool {
	switch lit.Kind {
	case ast.LiteralNumber:
		n := new(big.Int)
		if _, ok := n.SetString(lit.Value, 0); !ok {
			a.report(a.reporter.TypeError(diag.CodeLiteralOutOfRange, lit.Pos(),
				fmt.Sprintf("invalid number literal %q", lit.Value)))
			return false
		}
		if n.Sign() < 0 || n.Cmp(maxU256) > 0 {
			a.report(a.reporter.TypeError(diag.CodeLiteralOutOfRange, lit.Pos(),
				fmt.Sprintf("number literal %q does not fit in 256 bits", lit.Value)))
			return false
		}
		return true
	case ast.LiteralString:
		if len(lit.Value) > 32 {
			a.report(a.reporter.TypeError(diag.CodeLiteralOutOfRange, lit.Pos(),
				fmt.Sprintf("string literal of %d bytes exceeds the 32-byte limit", len(lit.Value))))
			return false
		}
		return true
	case ast.LiteralBool:
		if lit.Value != "true" && lit.Value != "false" {
			a.report(a.reporter.TypeError(diag.CodeLiteralKindMismatch, lit.Pos(),
				fmt.Sprintf("boolean literal must be exactly true or false, got %q", lit.Value)))
			return false
		}
		return true
	default:
		panic(fmt.Sprintf("semantic: analyzer encountered unknown literal kind %v", lit.Kind))
	}
}

func toDialectKind(k ast.LiteralKind) dialect.LiteralKind {
	switch k {
	case ast.LiteralString:
		return dialect.LiteralString
	case ast.LiteralBool:
		return dialect.LiteralBool
	default:
		return dialect.LiteralNumber
	}
}

// visitIdentifier implements §4.2 Identifier (r-value).
func (a *Analyzer) visitIdentifier(id *ast.Identifier) bool {
	if a.stopped {
		return false
	}
	if entry, _, found := a.scope.Lookup(id.Name); found {
		switch entry.Kind {
		case scope.KindVariable:
			if !entry.Active {
				a.report(a.reporter.DeclarationError(diag.CodeUseBeforeDeclaration, id.Pos(),
					fmt.Sprintf("variable %q used before it was declared", id.Name)))
				return false
			}
			a.stackHeight++
			a.currentExprTypes = []dialect.Type{dialect.Type(entry.Type)}
			a.recordHeight(id)
			return true
		case scope.KindFunction:
			a.report(a.reporter.DeclarationError(diag.CodeFunctionUsedAsValue, id.Pos(),
				fmt.Sprintf("function %q used without being called", id.Name)))
			return false
		}
	}

	if a.resolver == nil {
		a.report(a.reporter.DeclarationError(diag.CodeUnresolvedIdentifier, id.Pos(),
			fmt.Sprintf("identifier %q not found", id.Name)))
		return false
	}

	before := a.reporter.ErrorCount()
	size := a.resolver(id.Name, ContextRValue, a.scope.InsideFunction())
	a.currentExprTypes = []dialect.Type{a.dlct.DefaultType()}

	if size == ResolverNotFound {
		// Resolved Open Question (§9, second one): add 0 on a not-found
		// resolver result rather than the original's unconditional +1.
		if a.reporter.ErrorCount() == before {
			a.report(a.reporter.DeclarationError(diag.CodeUnresolvedIdentifier, id.Pos(),
				fmt.Sprintf("identifier %q not found", id.Name)))
		}
		a.recordHeight(id)
		return false
	}

	if size < 1 {
		size = 1
	}
	a.stackHeight += size
	a.recordHeight(id)
	return true
}

// visitFunctionCall implements §4.2 FunctionCall.
func (a *Analyzer) visitFunctionCall(call *ast.FunctionCall) bool {
	if a.stopped {
		return false
	}
	startHeight := a.stackHeight

	builtin, isBuiltin := a.dlct.Builtin(call.Name)
	var fnEntry *scope.Entry
	if !isBuiltin {
		if entry, _, found := a.scope.Lookup(call.Name); found {
			if entry.Kind == scope.KindVariable {
				a.report(a.reporter.TypeError(diag.CodeCallOnVariable, call.Pos(),
					fmt.Sprintf("attempt to call variable %q", call.Name)))
				return false
			}
			fnEntry = entry
		}
	}
	isFunction := fnEntry != nil

	if !isBuiltin && !isFunction {
		if a.checkInstructionLegality(call.Name, call.Pos()) {
			return false
		}
		a.report(a.reporter.DeclarationError(diag.CodeUnresolvedIdentifier, call.Pos(),
			fmt.Sprintf("function %q not found", call.Name)))
		return false
	}

	// Arguments are visited in reverse source order, matching the
	// evaluation convention of a stack machine (§4.2 FunctionCall).
	argTypes := make([]dialect.Type, len(call.Arguments))
	ok := true
	for i := len(call.Arguments) - 1; i >= 0; i-- {
		if a.expectExpression(call.Arguments[i]) && len(a.currentExprTypes) == 1 {
			argTypes[i] = a.currentExprTypes[0]
		} else {
			argTypes[i] = a.dlct.DefaultType()
			ok = false
		}
	}

	var literalArguments bool
	var params, returns []dialect.Type
	if isBuiltin {
		literalArguments = builtin.LiteralArguments
		params = builtin.Parameters
		returns = builtin.Returns
	} else {
		params = typeTags(fnEntry.Params)
		returns = typeTags(fnEntry.Returns)
	}

	if literalArguments {
		for _, arg := range call.Arguments {
			lit, isLit := arg.(*ast.Literal)
			if !isLit {
				a.report(a.reporter.TypeError(diag.CodeLiteralArgumentShape, call.Pos(),
					fmt.Sprintf("argument to %q must be a literal naming a data object", call.Name)))
				ok = false
				continue
			}
			if _, known := a.dataNames[lit.Value]; !known {
				a.report(a.reporter.TypeError(diag.CodeLiteralArgumentShape, call.Pos(),
					fmt.Sprintf("%q does not name a known data object", lit.Value)))
				ok = false
			}
		}
	}

	if len(call.Arguments) == len(params) {
		for i, paramType := range params {
			if argTypes[i] != paramType {
				a.report(a.reporter.TypeError(diag.CodeArgumentTypeMismatch, call.Pos(),
					fmt.Sprintf(`argument %d to %q: expected a value of type "%s" but got "%s".`, i+1, call.Name, paramType, argTypes[i])))
				ok = false
			}
		}
	}

	// Each argument already contributed its own net +1 while being visited
	// above, so the call's net effect on top of that is just its return
	// count — the arguments it consumes and the pushes that put them there
	// cancel out, they do not subtract again here.
	a.stackHeight = startHeight + len(returns)

	if ok {
		a.currentExprTypes = returns
	} else {
		a.currentExprTypes = make([]dialect.Type, len(returns))
		for i := range a.currentExprTypes {
			a.currentExprTypes[i] = a.dlct.DefaultType()
		}
	}
	a.recordHeight(call)
	return ok
}

func typeTags(names []string) []dialect.Type {
	out := make([]dialect.Type, len(names))
	for i, n := range names {
		out[i] = dialect.Type(n)
	}
	return out
}
