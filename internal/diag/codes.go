// Package diag implements the Diagnostic Reporter (§6, §7): a severity- and
// category-tagged diagnostic sink with a fatal-overflow sentinel, and a
// Rust-style terminal renderer for the diagnostics it collects.
//
// Grounded on internal/errors/reporter.go (formatted rendering with
// github.com/fatih/color, source-context lines, underline marker) and
// internal/errors/codes.go (code-range-per-category scheme), remapped from
// Kanso's error list onto this spec's four-category taxonomy (§7).
package diag

// Category is one of the four error kinds §7 names.
type Category int

const (
	CategoryDeclaration Category = iota
	CategoryType
	CategorySyntax
	CategoryInternal
)

func (c Category) String() string {
	switch c {
	case CategoryDeclaration:
		return "declaration error"
	case CategoryType:
		return "type error"
	case CategorySyntax:
		return "syntax error"
	case CategoryInternal:
		return "internal error"
	default:
		return "error"
	}
}

// Code identifies a specific diagnostic kind. Ranges follow the teacher's
// codes.go convention of grouping by category, remapped onto §7's taxonomy:
// E1xxx declaration errors, E2xxx type errors, E3xxx syntax errors, E9xxx
// internal-invariant failures.
type Code string

const (
	CodeUseBeforeDeclaration  Code = "E1001"
	CodeUnresolvedIdentifier  Code = "E1002"
	CodeDuplicateDeclaration  Code = "E1003"
	CodeDuplicateCaseValue    Code = "E1004"
	CodeCountMismatch         Code = "E1005"
	CodeUnbalancedStack       Code = "E1006"
	CodeInvalidAssignTarget   Code = "E1007"
	CodeFunctionUsedAsValue   Code = "E1008"

	CodeInvalidTypeTag         Code = "E2001"
	CodeArgumentTypeMismatch   Code = "E2002"
	CodeConditionTypeMismatch  Code = "E2003"
	CodeLiteralOutOfRange      Code = "E2004"
	CodeLiteralKindMismatch    Code = "E2005"
	CodeNonzeroTopLevelExpr    Code = "E2006"
	CodeInstructionUnavailable Code = "E2007"
	CodeCallOnVariable         Code = "E2008"
	CodeLiteralArgumentShape   Code = "E2009"

	CodeDisallowedJump Code = "E3001"

	CodeInternalInvariant Code = "E9001"
)
