package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinAvailabilityIsGatedByVMVersion(t *testing.T) {
	homestead := NewEVMDialect(Homestead())
	istanbul := NewEVMDialect(Istanbul())

	_, availableAtHomestead := homestead.Builtin("chainid")
	_, availableAtIstanbul := istanbul.Builtin("chainid")

	assert.False(t, availableAtHomestead)
	assert.True(t, availableAtIstanbul)
}

func TestJumpFamilyNeverAppearsAsABuiltin(t *testing.T) {
	d := NewEVMDialect(Istanbul())

	for _, name := range []string{"jump", "jumpi", "jumpdest"} {
		_, ok := d.Builtin(name)
		assert.False(t, ok, "%q must not be an ordinary builtin", name)
	}
}

func TestLookupInstructionByNameFindsGatedAndJumpInstructions(t *testing.T) {
	ins, ok := LookupInstructionByName("staticcall")
	assert.True(t, ok)
	assert.Equal(t, InsStaticcall, ins)

	ins, ok = LookupInstructionByName("jump")
	assert.True(t, ok)
	assert.Equal(t, InsJump, ins)

	_, ok = LookupInstructionByName("not_an_instruction")
	assert.False(t, ok)
}

func TestValidTypeForLiteralRejectsMismatchedKind(t *testing.T) {
	d := NewEVMDialect(Istanbul())

	assert.True(t, d.ValidTypeForLiteral(LiteralBool, "true", TypeBool))
	assert.False(t, d.ValidTypeForLiteral(LiteralBool, "true", TypeU256))
	assert.True(t, d.ValidTypeForLiteral(LiteralNumber, "1", TypeU256))
}

func TestCheckInternalConsistencyPanicsOnBrokenPairing(t *testing.T) {
	assert.NotPanics(t, func() { checkInternalConsistency(Istanbul()) })

	assert.Panics(t, func() {
		v := Istanbul()
		v.returndata = false // staticcall stays true: breaks the returndata/staticcall pairing
		checkInternalConsistency(v)
	})

	assert.Panics(t, func() {
		v := Istanbul()
		v.create2 = false // bitwiseShifting stays true: breaks the bitwise-shift/create2 pairing
		checkInternalConsistency(v)
	})
}
