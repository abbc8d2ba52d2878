package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"ilsema/internal/ast"
)

// ErrTooManyErrors is the fatal-overflow sentinel (§6, §9 "Error overflow
// signal"): returned from an emit method once the reporter's error budget is
// exhausted, never thrown via panic/recover in the steady-state path.
var ErrTooManyErrors = errors.New("diag: too many errors reported")

// Diagnostic is one reported problem.
type Diagnostic struct {
	Category Category
	Code     Code
	Message  string
	Position ast.Position
	Notes    []string
}

// Reporter accumulates diagnostics and renders them. A maxErrors of 0 means
// unlimited.
type Reporter struct {
	filename    string
	source      string
	maxErrors   int
	diagnostics []Diagnostic
}

// NewReporter creates a reporter for source text from filename (both may be
// empty for synthetically built trees, e.g. in tests). maxErrors of 0 means
// no fatal-overflow cutoff.
func NewReporter(filename, source string, maxErrors int) *Reporter {
	return &Reporter{filename: filename, source: source, maxErrors: maxErrors}
}

// ErrorCount returns the number of diagnostics recorded so far. The Analyzer
// uses this before/after an external resolver call to detect whether the
// resolver itself reported something (§6 External Resolver).
func (r *Reporter) ErrorCount() int {
	return len(r.diagnostics)
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.diagnostics) > 0
}

// Diagnostics returns every diagnostic recorded, in emission order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

func (r *Reporter) emit(category Category, code Code, pos ast.Position, message string, notes ...string) error {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Category: category,
		Code:     code,
		Message:  message,
		Position: pos,
		Notes:    notes,
	})
	if r.maxErrors > 0 && len(r.diagnostics) >= r.maxErrors {
		return ErrTooManyErrors
	}
	return nil
}

// DeclarationError reports a declaration-category diagnostic (§7).
func (r *Reporter) DeclarationError(code Code, pos ast.Position, message string, notes ...string) error {
	return r.emit(CategoryDeclaration, code, pos, message, notes...)
}

// TypeError reports a type-category diagnostic (§7).
func (r *Reporter) TypeError(code Code, pos ast.Position, message string, notes ...string) error {
	return r.emit(CategoryType, code, pos, message, notes...)
}

// SyntaxError reports a syntax-category diagnostic (§7).
func (r *Reporter) SyntaxError(code Code, pos ast.Position, message string, notes ...string) error {
	return r.emit(CategorySyntax, code, pos, message, notes...)
}

// Error reports a diagnostic of an arbitrary category, for call sites that
// already know their category as data rather than as a literal call site
// (e.g. dispatch tables).
func (r *Reporter) Error(category Category, code Code, pos ast.Position, message string, notes ...string) error {
	return r.emit(category, code, pos, message, notes...)
}

// FormatError renders one diagnostic in the teacher's Rust-style format:
// a colored severity tag, the message, a source-context line, and an
// underline marker at the reported column.
func (r *Reporter) FormatError(d Diagnostic) string {
	lines := strings.Split(r.source, "\n")
	var lineContent string
	if d.Position.Line-1 >= 0 && d.Position.Line-1 < len(lines) {
		lineContent = lines[d.Position.Line-1]
	}

	bold := color.New(color.Bold).SprintFunc()
	severityColor := severityColorFunc(d.Category)

	marker := strings.Repeat(" ", max0(d.Position.Column-1)) + "^"

	lineNumberWidth := len(fmt.Sprintf("%d", d.Position.Line))
	if lineNumberWidth < 3 {
		lineNumberWidth = 3
	}
	indent := strings.Repeat(" ", lineNumberWidth)

	b := &strings.Builder{}
	fmt.Fprintf(b, "%s[%s]: %s\n", severityColor(d.Category.String()), d.Code, d.Message)
	fmt.Fprintf(b, "%s┌─ %s:%d:%d\n", indent, r.filename, d.Position.Line, d.Position.Column)
	fmt.Fprintf(b, "%s│\n", indent)
	fmt.Fprintf(b, "%*d│%s\n", lineNumberWidth, d.Position.Line, lineContent)
	fmt.Fprintf(b, "%s│%s\n", indent, bold(marker))
	for _, note := range d.Notes {
		fmt.Fprintf(b, "%s= note: %s\n", indent, note)
	}
	b.WriteString("\n")
	return b.String()
}

func severityColorFunc(c Category) func(a ...interface{}) string {
	switch c {
	case CategoryInternal:
		return color.New(color.FgMagenta, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
