package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefineRejectsCollisionInSameScope(t *testing.T) {
	s := New(nil, false)

	assert.True(t, s.Define("x", &Entry{Kind: KindVariable, Type: "u256"}))
	assert.False(t, s.Define("x", &Entry{Kind: KindVariable, Type: "u256"}))
}

func TestDefineAllowsShadowingInChildScope(t *testing.T) {
	parent := New(nil, false)
	assert.True(t, parent.Define("x", &Entry{Kind: KindVariable, Type: "u256"}))

	child := New(parent, false)
	assert.True(t, child.Define("x", &Entry{Kind: KindVariable, Type: "bool"}))

	entry, found := child.LookupLocal("x")
	assert.True(t, found)
	assert.Equal(t, "bool", entry.Type)
}

func TestLookupWalksParentChain(t *testing.T) {
	parent := New(nil, false)
	parent.Define("x", &Entry{Kind: KindVariable, Type: "u256"})
	child := New(parent, false)

	entry, foundIn, found := child.Lookup("x")
	assert.True(t, found)
	assert.Same(t, parent, foundIn)
	assert.Equal(t, "u256", entry.Type)
}

func TestLookupMissesUnknownName(t *testing.T) {
	s := New(nil, false)
	_, _, found := s.Lookup("nope")
	assert.False(t, found)
}

func TestNumberOfVariablesCountsOnlyVariables(t *testing.T) {
	s := New(nil, false)
	s.Define("x", &Entry{Kind: KindVariable})
	s.Define("y", &Entry{Kind: KindVariable})
	s.Define("f", &Entry{Kind: KindFunction})

	assert.Equal(t, 2, s.NumberOfVariables())
}

func TestInsideFunctionIsWhateverTheCallerPassed(t *testing.T) {
	outer := New(nil, false)
	inner := New(outer, true)

	assert.False(t, outer.InsideFunction())
	assert.True(t, inner.InsideFunction())
}
