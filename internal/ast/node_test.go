package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDGenAllocatesDistinctIncreasingIDs(t *testing.T) {
	gen := NewIDGen()

	first := gen.alloc()
	second := gen.alloc()

	assert.NotEqual(t, first, second)
	assert.Equal(t, first+1, second)
}

func TestConstructorsUseTheSharedIDGen(t *testing.T) {
	gen := NewIDGen()
	pos := Position{Filename: "f", Line: 1, Column: 1}

	lit := NewLiteral(gen, pos, LiteralNumber, "1", "u256")
	ident := NewIdentifier(gen, pos, "x")

	assert.NotEqual(t, lit.ID(), ident.ID())
	assert.Equal(t, pos, lit.Pos())
}

func TestLiteralKindString(t *testing.T) {
	assert.Equal(t, "number", LiteralNumber.String())
	assert.Equal(t, "string", LiteralString.String())
	assert.Equal(t, "bool", LiteralBool.String())
}
