package semantic

import (
	"ilsema/internal/ast"
	"ilsema/internal/scope"
)

// AnalysisInfo is the output of the two-pass analysis: the scope owning
// each Block, the virtual Block synthesized for each FunctionDefinition, and
// the simulated stack height recorded after visiting each node.
//
// All three maps are keyed by ast.NodeID rather than by node address — see
// internal/ast/node.go's doc comment and DESIGN.md's note on the "back
// pointers in the AST" design decision.
type AnalysisInfo struct {
	Scopes          map[ast.NodeID]*scope.Scope
	VirtualBlocks   map[ast.NodeID]*ast.Block
	StackHeightInfo map[ast.NodeID]int
}

// NewAnalysisInfo returns an empty AnalysisInfo ready for a ScopeFiller run.
func NewAnalysisInfo() *AnalysisInfo {
	return &AnalysisInfo{
		Scopes:          make(map[ast.NodeID]*scope.Scope),
		VirtualBlocks:   make(map[ast.NodeID]*ast.Block),
		StackHeightInfo: make(map[ast.NodeID]int),
	}
}
