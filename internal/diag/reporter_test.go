package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ilsema/internal/ast"
)

func TestReporterAccumulatesDiagnostics(t *testing.T) {
	r := NewReporter("test.yul", "", 0)

	err := r.TypeError(CodeArgumentTypeMismatch, ast.Position{Line: 1, Column: 1}, "bad type")
	assert.NoError(t, err)
	assert.Equal(t, 1, r.ErrorCount())
	assert.True(t, r.HasErrors())
}

func TestReporterSignalsFatalOverflow(t *testing.T) {
	r := NewReporter("test.yul", "", 2)

	assert.NoError(t, r.TypeError(CodeArgumentTypeMismatch, ast.Position{}, "first"))
	err := r.TypeError(CodeArgumentTypeMismatch, ast.Position{}, "second")

	assert.ErrorIs(t, err, ErrTooManyErrors)
	assert.Equal(t, 2, r.ErrorCount())
}

func TestReporterUnlimitedByDefault(t *testing.T) {
	r := NewReporter("test.yul", "", 0)

	for i := 0; i < 50; i++ {
		assert.NoError(t, r.TypeError(CodeArgumentTypeMismatch, ast.Position{}, "err"))
	}
	assert.Equal(t, 50, r.ErrorCount())
}

func TestFormatErrorIncludesCodeAndPosition(t *testing.T) {
	source := "let x := 1\nlet y := true\n"
	r := NewReporter("test.yul", source, 0)
	r.DeclarationError(CodeUseBeforeDeclaration, ast.Position{Filename: "test.yul", Line: 2, Column: 5}, "variable used before declaration")

	formatted := r.FormatError(r.Diagnostics()[0])

	assert.Contains(t, formatted, string(CodeUseBeforeDeclaration))
	assert.Contains(t, formatted, "test.yul:2:5")
	assert.Contains(t, formatted, "let y := true")
}

func TestCategoryStringNamesEveryCategory(t *testing.T) {
	assert.Equal(t, "declaration error", CategoryDeclaration.String())
	assert.Equal(t, "type error", CategoryType.String())
	assert.Equal(t, "syntax error", CategorySyntax.String())
	assert.Equal(t, "internal error", CategoryInternal.String())
}
