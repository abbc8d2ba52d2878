package dialect

// VMVersion exposes the feature predicates §4.3 gates individual
// instructions on, plus a human-readable Name for diagnostic messages.
type VMVersion struct {
	name string

	returndata       bool
	staticCall       bool
	bitwiseShifting  bool
	create2          bool
	extCodeHash      bool
	chainID          bool
	selfBalance      bool
}

func (v VMVersion) Name() string                 { return v.name }
func (v VMVersion) SupportsReturndata() bool      { return v.returndata }
func (v VMVersion) HasStaticCall() bool           { return v.staticCall }
func (v VMVersion) HasBitwiseShifting() bool      { return v.bitwiseShifting }
func (v VMVersion) HasCreate2() bool              { return v.create2 }
func (v VMVersion) HasExtCodeHash() bool          { return v.extCodeHash }
func (v VMVersion) HasChainID() bool              { return v.chainID }
func (v VMVersion) HasSelfBalance() bool          { return v.selfBalance }

// Homestead is the earliest preset: none of the §4.3-gated features are
// available.
func Homestead() VMVersion {
	return VMVersion{name: "homestead"}
}

// Byzantium adds RETURNDATACOPY/RETURNDATASIZE and STATICCALL.
func Byzantium() VMVersion {
	return VMVersion{name: "byzantium", returndata: true, staticCall: true}
}

// Constantinople adds bitwise shifting (SHL/SHR/SAR), CREATE2, and
// EXTCODEHASH, on top of everything Byzantium has.
func Constantinople() VMVersion {
	v := Byzantium()
	v.name = "constantinople"
	v.bitwiseShifting = true
	v.create2 = true
	v.extCodeHash = true
	return v
}

// Istanbul adds CHAINID and SELFBALANCE, on top of everything
// Constantinople has.
func Istanbul() VMVersion {
	v := Constantinople()
	v.name = "istanbul"
	v.chainID = true
	v.selfBalance = true
	return v
}

// checkInternalConsistency panics if the two pairings §4.3 claims always
// hold for any VM-version object (returndata support iff static-call
// support; bitwise-shift support iff CREATE2 support) are violated. Named
// presets above always satisfy this; a hand-built VMVersion that does not is
// an internal-invariant failure, not a user-facing diagnostic.
func checkInternalConsistency(v VMVersion) {
	if v.returndata != v.staticCall {
		panic("dialect: VM version has inconsistent returndata/staticcall support")
	}
	if v.bitwiseShifting != v.create2 {
		panic("dialect: VM version has inconsistent bitwise-shift/create2 support")
	}
}
