package semantic

import (
	"fmt"
	"math/big"

	"ilsema/internal/ast"
	"ilsema/internal/diag"
	"ilsema/internal/dialect"
)

// visitStatement dispatches on the Statement sum type.
func (a *Analyzer) visitStatement(stmt ast.Statement) bool {
	if a.stopped {
		return false
	}
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return a.visitExpressionStatement(s)
	case *ast.Assignment:
		return a.visitAssignment(s)
	case *ast.VariableDeclaration:
		return a.visitVariableDeclaration(s)
	case *ast.FunctionDefinition:
		return a.visitFunctionDefinition(s)
	case *ast.If:
		return a.visitIf(s)
	case *ast.Switch:
		return a.visitSwitch(s)
	case *ast.ForLoop:
		return a.visitForLoop(s)
	case *ast.Break:
		return a.visitBreak(s)
	case *ast.Continue:
		return a.visitContinue(s)
	case *ast.Leave:
		return a.visitLeave(s)
	case *ast.Block:
		return a.visitBlock(s)
	default:
		panic(fmt.Sprintf("semantic: analyzer encountered unknown statement type %T", stmt))
	}
}

// visitExpressionStatement implements §4.2 ExpressionStatement: a top-level
// expression used for effect must deposit nothing.
func (a *Analyzer) visitExpressionStatement(s *ast.ExpressionStatement) bool {
	if a.stopped {
		return false
	}
	before := a.stackHeight
	if !a.visitExpression(s.Expr) {
		a.recordHeight(s)
		return false
	}
	if a.stackHeight != before {
		a.report(a.reporter.TypeError(diag.CodeNonzeroTopLevelExpr, s.Pos(),
			fmt.Sprintf("expression statement must not leave a value on the stack, deposited %d", a.stackHeight-before)))
		a.recordHeight(s)
		return false
	}
	a.recordHeight(s)
	return true
}

// visitAssignment implements §4.2 Assignment: Value must deposit exactly
// len(Names) values, then each is stored right-to-left onto its target.
func (a *Analyzer) visitAssignment(s *ast.Assignment) bool {
	if a.stopped {
		return false
	}
	before := a.stackHeight
	ok := a.visitExpression(s.Value)
	if !ok {
		a.recordHeight(s)
		return false
	}
	if !a.expectDeposit(len(s.Names), before) {
		a.report(a.reporter.DeclarationError(diag.CodeCountMismatch, s.Pos(),
			fmt.Sprintf("assignment expects %d value(s) but the expression deposits %d", len(s.Names), a.stackHeight-before)))
		a.recordHeight(s)
		return false
	}

	types := a.currentExprTypes
	for i := len(s.Names) - 1; i >= 0; i-- {
		valueType := a.dlct.DefaultType()
		if i < len(types) {
			valueType = types[i]
		}
		if !a.checkAssignment(s.Names[i], valueType, s.Pos()) {
			ok = false
		}
	}

	a.recordHeight(s)
	return ok
}

// visitVariableDeclaration implements §4.2 VariableDeclaration. An
// uninitialized declaration (nil Value) pads the stack with one slot per
// name instead of visiting an expression.
func (a *Analyzer) visitVariableDeclaration(s *ast.VariableDeclaration) bool {
	if a.stopped {
		return false
	}
	before := a.stackHeight
	ok := true
	var types []dialect.Type

	if s.Value != nil {
		if !a.visitExpression(s.Value) {
			ok = false
		} else if !a.expectDeposit(len(s.Names), before) {
			a.report(a.reporter.DeclarationError(diag.CodeCountMismatch, s.Pos(),
				fmt.Sprintf("declaration expects %d value(s) but the expression deposits %d", len(s.Names), a.stackHeight-before)))
			ok = false
		} else {
			types = a.currentExprTypes
		}
		if !ok {
			a.stackHeight = before + len(s.Names)
		}
	} else {
		a.stackHeight += len(s.Names)
	}

	for i, name := range s.Names {
		if a.resolver != nil {
			a.resolver(name.Name, ContextVariableDeclaration, a.scope.InsideFunction())
		}

		declType := dialect.Type(name.Type)
		if !a.expectValidType(declType, s.Pos()) {
			ok = false
		}
		if s.Value != nil && i < len(types) {
			if !a.expectType(declType, types[i], s.Pos()) {
				ok = false
			}
		}
		if entry, localScope, found := a.scope.Lookup(name.Name); found && localScope == a.scope {
			entry.Active = true
		}
	}

	a.recordHeight(s)
	return ok
}

// visitFunctionDefinition implements §4.2 FunctionDefinition: its own
// virtual block and scope were synthesized by the Scope Filler; visiting the
// body happens with a completely fresh stack height, fully restored
// afterward (a function's internal stack never leaks into its caller's).
func (a *Analyzer) visitFunctionDefinition(s *ast.FunctionDefinition) bool {
	if a.stopped {
		return false
	}
	virtual, ok := a.info.VirtualBlocks[s.ID()]
	if !ok {
		panic("semantic: no virtual block recorded for function " + s.Name)
	}
	virtualScope, ok := a.info.Scopes[virtual.ID()]
	if !ok {
		panic("semantic: no scope recorded for function " + s.Name + "'s virtual block")
	}

	for _, p := range s.Parameters {
		if entry, found := virtualScope.LookupLocal(p.Name); found {
			entry.Active = true
		}
	}
	for _, r := range s.Returns {
		if entry, found := virtualScope.LookupLocal(r.Name); found {
			entry.Active = true
		}
	}

	savedScope := a.scope
	savedHeight := a.stackHeight
	savedForLoop := a.currentForLoop
	a.scope = virtualScope
	a.stackHeight = len(s.Parameters) + len(s.Returns)
	a.currentForLoop = nil

	ok = a.visitStatement(s.Body)

	a.scope = savedScope
	a.stackHeight = savedHeight
	a.currentForLoop = savedForLoop
	a.recordHeight(s)
	return ok
}

// visitIf implements §4.2 If: the condition must be a single bool-typed
// value, and the body's stack effect never carries past it.
func (a *Analyzer) visitIf(s *ast.If) bool {
	if a.stopped {
		return false
	}
	before := a.stackHeight
	ok := a.visitExpression(s.Condition)
	if ok {
		condType := a.dlct.DefaultType()
		if len(a.currentExprTypes) == 1 {
			condType = a.currentExprTypes[0]
		}
		if !a.expectDeposit(1, before) {
			a.report(a.reporter.DeclarationError(diag.CodeCountMismatch, s.Condition.Pos(),
				"if condition must deposit exactly one value"))
			ok = false
		} else if !a.expectType(a.dlct.BoolType(), condType, s.Condition.Pos()) {
			ok = false
		}
	}
	a.stackHeight = before

	if !a.visitStatement(s.Body) {
		ok = false
	}
	a.recordHeight(s)
	return ok
}

// visitSwitch implements §4.2 Switch: the scrutinee is evaluated once, every
// case's literal must share its type, and case values must be pairwise
// distinct by semantic numeric value, not textual form.
func (a *Analyzer) visitSwitch(s *ast.Switch) bool {
	if a.stopped {
		return false
	}
	before := a.stackHeight
	ok := a.visitExpression(s.Expr)
	scrutineeType := a.dlct.DefaultType()
	if ok {
		if len(a.currentExprTypes) == 1 {
			scrutineeType = a.currentExprTypes[0]
		}
		if !a.expectDeposit(1, before) {
			a.report(a.reporter.DeclarationError(diag.CodeCountMismatch, s.Expr.Pos(),
				"switch expression must deposit exactly one value"))
			ok = false
		}
	}
	a.stackHeight = before

	seen := make(map[string]ast.Position)
	for _, c := range s.Cases {
		if c.Value != nil {
			litHeight := a.stackHeight
			if !a.visitLiteral(c.Value) {
				ok = false
			} else if dialect.Type(c.Value.Type) != scrutineeType {
				a.report(a.reporter.TypeError(diag.CodeArgumentTypeMismatch, c.Value.Pos(),
					fmt.Sprintf(`case value type "%s" does not match the switch expression's type "%s"`, c.Value.Type, scrutineeType)))
				ok = false
			}
			a.stackHeight = litHeight

			key := normalizeLiteralValue(c.Value)
			if _, dup := seen[key]; dup {
				a.report(a.reporter.DeclarationError(diag.CodeDuplicateCaseValue, c.Value.Pos(),
					fmt.Sprintf("duplicate case value %q", c.Value.Value)))
				ok = false
			} else {
				seen[key] = c.Value.Pos()
			}
		}

		caseHeight := a.stackHeight
		if !a.visitStatement(c.Body) {
			ok = false
		}
		a.stackHeight = caseHeight
	}

	a.recordHeight(s)
	return ok
}

// normalizeLiteralValue returns a case value's de-duplication key: number
// literals are keyed by a base-agnostic big.Int parse, so textually
// different spellings of one value collide; any other literal (bool or
// string) is keyed by its kind plus raw text.
func normalizeLiteralValue(lit *ast.Literal) string {
	if lit.Kind == ast.LiteralNumber {
		n := new(big.Int)
		if _, ok := n.SetString(lit.Value, 0); ok {
			return "n:" + n.String()
		}
	}
	return fmt.Sprintf("%s:%s", lit.Kind, lit.Value)
}

// visitForLoop implements §4.2 ForLoop. Pre introduces loop-scoped variables
// that must stay live across Condition, Body, and Post — unlike an ordinary
// Block, Pre's own statements are walked directly here rather than through
// visitBlock, so its locals are not popped until the whole loop is done.
// Body and Post are ordinary Blocks (the Scope Filler chained their scopes
// from Pre's, see scopefiller.go), so they go through visitBlock as usual.
func (a *Analyzer) visitForLoop(s *ast.ForLoop) bool {
	if a.stopped {
		return false
	}
	preScope, found := a.info.Scopes[s.Pre.ID()]
	if !found {
		panic("semantic: no scope recorded for for-loop pre-block")
	}

	savedScope := a.scope
	savedForLoop := a.currentForLoop
	before := a.stackHeight

	a.scope = preScope
	ok := true
	for _, stmt := range s.Pre.Statements {
		if !a.visitStatement(stmt) {
			ok = false
		}
		if a.stopped {
			break
		}
	}
	preVars := preScope.NumberOfVariables()
	if ok && a.stackHeight-before != preVars {
		a.report(a.reporter.DeclarationError(diag.CodeUnbalancedStack, s.Pre.Pos(),
			fmt.Sprintf("for-loop pre-block leaves %d value(s) on the stack after its %d local variable(s)", a.stackHeight-before-preVars, preVars)))
		ok = false
	}
	a.info.StackHeightInfo[s.Pre.ID()] = before

	condOk := true
	if a.visitExpression(s.Condition) {
		condType := a.dlct.DefaultType()
		if len(a.currentExprTypes) == 1 {
			condType = a.currentExprTypes[0]
		}
		if !a.expectType(a.dlct.BoolType(), condType, s.Condition.Pos()) {
			condOk = false
		}
	} else {
		condOk = false
	}
	ok = ok && condOk
	a.stackHeight--

	a.currentForLoop = s
	if !a.visitBlock(s.Body) {
		ok = false
	}
	a.scope = preScope
	if !a.visitBlock(s.Post) {
		ok = false
	}
	a.currentForLoop = savedForLoop

	a.scope = savedScope
	a.stackHeight = before
	a.recordHeight(s)
	return ok
}

// visitBreak, visitContinue, and visitLeave are leaves of the Statement sum
// type with no children to visit and no stack effect of their own; each
// still records the height reached at this point for downstream inspection
// (§8 universal invariant: every node has a recorded height). Validity of
// nesting is assumed to be enforced by the parser, so these always succeed;
// currentForLoop is informational only and is not consulted here.
func (a *Analyzer) visitBreak(s *ast.Break) bool {
	if a.stopped {
		return false
	}
	a.recordHeight(s)
	return true
}

func (a *Analyzer) visitContinue(s *ast.Continue) bool {
	if a.stopped {
		return false
	}
	a.recordHeight(s)
	return true
}

func (a *Analyzer) visitLeave(s *ast.Leave) bool {
	if a.stopped {
		return false
	}
	a.recordHeight(s)
	return true
}

// visitBlock implements §4.2 Block, including the universal-invariant
// exception (§8 invariant 1): the height recorded for a Block is the height
// at entry, not the height after visiting its statements, since a Block
// always restores its own net effect to zero by construction once its local
// variables are popped.
func (a *Analyzer) visitBlock(b *ast.Block) bool {
	if a.stopped {
		return false
	}
	entryHeight := a.stackHeight
	sc, found := a.info.Scopes[b.ID()]
	if !found {
		panic("semantic: no scope recorded for block")
	}

	savedScope := a.scope
	a.scope = sc

	ok := true
	for _, stmt := range b.Statements {
		if !a.visitStatement(stmt) {
			ok = false
		}
		if a.stopped {
			break
		}
	}

	localVars := sc.NumberOfVariables()
	netDelta := a.stackHeight - entryHeight
	if ok && netDelta != localVars {
		a.report(a.reporter.DeclarationError(diag.CodeUnbalancedStack, b.Pos(),
			fmt.Sprintf("block leaves %d value(s) on the stack after its %d local variable(s)", netDelta-localVars, localVars)))
		ok = false
	}
	a.stackHeight -= localVars

	a.scope = savedScope
	a.info.StackHeightInfo[b.ID()] = entryHeight
	return ok
}
