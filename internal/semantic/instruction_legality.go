package semantic

import (
	"fmt"

	"ilsema/internal/ast"
	"ilsema/internal/diag"
	"ilsema/internal/dialect"
)

// checkInstructionLegality implements §4.3: it runs once visitFunctionCall
// has ruled out name being a builtin of the current dialect or a declared
// function. It reports exactly one diagnostic and returns true when it
// recognizes name as an instruction this IL forbids or gates; it returns
// false (and reports nothing) when name is not an instruction at all, so the
// caller falls through to its own "unresolved identifier" diagnostic.
//
// Grounded directly on _examples/original_source/libyul/AsmAnalysis.cpp's
// operator()(FunctionCall const&) handling of m_dialect.instruction(): JUMP
// family is unconditionally disallowed in strict assembly; every other gated
// instruction is reported as unavailable at the dialect's current VM
// version, naming the version that would make it available.
func (a *Analyzer) checkInstructionLegality(name string, pos ast.Position) bool {
	ins, known := dialect.LookupInstructionByName(name)
	if !known {
		return false
	}

	switch ins {
	case dialect.InsJump, dialect.InsJumpi, dialect.InsJumpdest:
		a.report(a.reporter.SyntaxError(diag.CodeDisallowedJump, pos,
			fmt.Sprintf("direct use of %q is disallowed in strict assembly; use if/switch/for instead", name)))
		return true
	}

	required := requiredVMVersionName(ins)
	a.report(a.reporter.TypeError(diag.CodeInstructionUnavailable, pos,
		fmt.Sprintf("instruction %q is not available in the %q VM version; it requires %s or later",
			name, a.dlct.VMVersion().Name(), required)))
	return true
}

// requiredVMVersionName names the first named VM version preset (§4.3) that
// makes ins available, for use in the diagnostic message.
func requiredVMVersionName(ins dialect.Instruction) string {
	switch ins {
	case dialect.InsReturndatacopy, dialect.InsReturndatasize, dialect.InsStaticcall:
		return `"byzantium"`
	case dialect.InsShl, dialect.InsShr, dialect.InsSar, dialect.InsCreate2, dialect.InsExtcodehash:
		return `"constantinople"`
	case dialect.InsChainid, dialect.InsSelfbalance:
		return `"istanbul"`
	default:
		return "a later VM version"
	}
}
