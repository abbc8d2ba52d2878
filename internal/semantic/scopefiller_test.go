package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ilsema/internal/ast"
	"ilsema/internal/diag"
)

func TestScopeFillerCreatesVirtualBlockForFunction(t *testing.T) {
	gen := ast.NewIDGen()
	fn := ast.NewFunctionDefinition(gen, pos(), "f",
		[]ast.TypedName{{Name: "a", Type: "u256"}},
		[]ast.TypedName{{Name: "r", Type: "u256"}},
		ast.NewBlock(gen, pos()))
	block := ast.NewBlock(gen, pos(), fn)

	info := NewAnalysisInfo()
	reporter := diag.NewReporter("test", "", 0)
	filler := NewScopeFiller(gen, info, reporter)

	ok := filler.Fill(block)

	assert.True(t, ok)
	virtual, found := info.VirtualBlocks[fn.ID()]
	assert.True(t, found)
	assert.Empty(t, virtual.Statements)

	virtualScope, found := info.Scopes[virtual.ID()]
	assert.True(t, found)
	entry, found := virtualScope.LookupLocal("a")
	assert.True(t, found)
	assert.Equal(t, "u256", entry.Type)
	_, found = virtualScope.LookupLocal("r")
	assert.True(t, found)
}

func TestScopeFillerHoistsFunctionsBeforeUse(t *testing.T) {
	gen := ast.NewIDGen()
	callBeforeDef := ast.NewExpressionStatement(gen, pos(), ast.NewFunctionCall(gen, pos(), "f"))
	fn := ast.NewFunctionDefinition(gen, pos(), "f", nil, nil, ast.NewBlock(gen, pos()))
	block := ast.NewBlock(gen, pos(), callBeforeDef, fn)

	info := NewAnalysisInfo()
	reporter := diag.NewReporter("test", "", 0)
	filler := NewScopeFiller(gen, info, reporter)

	ok := filler.Fill(block)

	assert.True(t, ok)
	sc := info.Scopes[block.ID()]
	entry, found := sc.LookupLocal("f")
	assert.True(t, found)
	assert.True(t, entry.Active)
}

func TestScopeFillerRejectsDuplicateFunctionNames(t *testing.T) {
	gen := ast.NewIDGen()
	fnA := ast.NewFunctionDefinition(gen, pos(), "f", nil, nil, ast.NewBlock(gen, pos()))
	fnB := ast.NewFunctionDefinition(gen, pos(), "f", nil, nil, ast.NewBlock(gen, pos()))
	block := ast.NewBlock(gen, pos(), fnA, fnB)

	info := NewAnalysisInfo()
	reporter := diag.NewReporter("test", "", 0)
	filler := NewScopeFiller(gen, info, reporter)

	ok := filler.Fill(block)

	assert.False(t, ok)
	assert.Equal(t, diag.CodeDuplicateDeclaration, reporter.Diagnostics()[0].Code)
}
