package dialect

// evmDialect is the strict-assembly EVM dialect: the two-type (bool, u256)
// dialect the original Yul analyzer ships by default. Its builtin table is
// filtered by its VMVersion at construction time — an instruction gated to a
// later VM version than vm targets is simply absent from Builtin, causing
// the analyzer to fall through to the §4.3 instruction-legality check.
type evmDialect struct {
	vm       VMVersion
	builtins map[string]*BuiltinFunction
}

// NewEVMDialect builds the strict-assembly EVM dialect targeting vm.
func NewEVMDialect(vm VMVersion) Dialect {
	checkInternalConsistency(vm)
	d := &evmDialect{vm: vm, builtins: make(map[string]*BuiltinFunction)}
	for _, b := range evmBuiltinTable(vm) {
		d.builtins[b.Name] = b
	}
	return d
}

func (d *evmDialect) Types() []Type       { return []Type{TypeBool, TypeU256} }
func (d *evmDialect) DefaultType() Type   { return TypeU256 }
func (d *evmDialect) BoolType() Type      { return TypeBool }
func (d *evmDialect) VMVersion() VMVersion { return d.vm }

func (d *evmDialect) Builtin(name string) (*BuiltinFunction, bool) {
	b, ok := d.builtins[name]
	return b, ok
}

func (d *evmDialect) ValidTypeForLiteral(kind LiteralKind, value string, typ Type) bool {
	switch kind {
	case LiteralBool:
		return typ == TypeBool && (value == "true" || value == "false")
	case LiteralString, LiteralNumber:
		return typ == TypeU256
	default:
		return false
	}
}

func u256(n int) []Type {
	ts := make([]Type, n)
	for i := range ts {
		ts[i] = TypeU256
	}
	return ts
}

// evmBuiltinTable returns every built-in this dialect exposes at vm,
// excluding any whose Instruction is gated off by §4.3's table and whose
// feature predicate vm does not satisfy. JUMP/JUMPI/JUMPDEST are never
// included: they are always disallowed in strict assembly regardless of VM
// version (§4.3), so they must never resolve as ordinary built-ins — the
// Analyzer instead routes them through the instruction-legality check on
// every VM version.
func evmBuiltinTable(vm VMVersion) []*BuiltinFunction {
	all := []*BuiltinFunction{
		// Arithmetic.
		{Name: "add", Parameters: u256(2), Returns: u256(1)},
		{Name: "sub", Parameters: u256(2), Returns: u256(1)},
		{Name: "mul", Parameters: u256(2), Returns: u256(1)},
		{Name: "div", Parameters: u256(2), Returns: u256(1)},
		{Name: "sdiv", Parameters: u256(2), Returns: u256(1)},
		{Name: "mod", Parameters: u256(2), Returns: u256(1)},
		{Name: "smod", Parameters: u256(2), Returns: u256(1)},
		{Name: "exp", Parameters: u256(2), Returns: u256(1)},
		{Name: "not", Parameters: u256(1), Returns: u256(1)},
		{Name: "lt", Parameters: u256(2), Returns: []Type{TypeBool}},
		{Name: "gt", Parameters: u256(2), Returns: []Type{TypeBool}},
		{Name: "slt", Parameters: u256(2), Returns: []Type{TypeBool}},
		{Name: "sgt", Parameters: u256(2), Returns: []Type{TypeBool}},
		{Name: "eq", Parameters: u256(2), Returns: []Type{TypeBool}},
		{Name: "iszero", Parameters: u256(1), Returns: u256(1)},
		{Name: "and", Parameters: u256(2), Returns: u256(1)},
		{Name: "or", Parameters: u256(2), Returns: u256(1)},
		{Name: "xor", Parameters: u256(2), Returns: u256(1)},
		{Name: "byte", Parameters: u256(2), Returns: u256(1)},
		{Name: "addmod", Parameters: u256(3), Returns: u256(1)},
		{Name: "mulmod", Parameters: u256(3), Returns: u256(1)},
		{Name: "signextend", Parameters: u256(2), Returns: u256(1)},
		{Name: "keccak256", Parameters: u256(2), Returns: u256(1)},

		// Stack/memory/storage.
		{Name: "pop", Parameters: u256(1), Returns: nil},
		{Name: "mload", Parameters: u256(1), Returns: u256(1)},
		{Name: "mstore", Parameters: u256(2), Returns: nil},
		{Name: "mstore8", Parameters: u256(2), Returns: nil},
		{Name: "sload", Parameters: u256(1), Returns: u256(1)},
		{Name: "sstore", Parameters: u256(2), Returns: nil},
		{Name: "msize", Parameters: nil, Returns: u256(1)},

		// Execution context.
		{Name: "gas", Parameters: nil, Returns: u256(1)},
		{Name: "address", Parameters: nil, Returns: u256(1)},
		{Name: "balance", Parameters: u256(1), Returns: u256(1)},
		{Name: "caller", Parameters: nil, Returns: u256(1)},
		{Name: "callvalue", Parameters: nil, Returns: u256(1)},
		{Name: "calldataload", Parameters: u256(1), Returns: u256(1)},
		{Name: "calldatasize", Parameters: nil, Returns: u256(1)},
		{Name: "calldatacopy", Parameters: u256(3), Returns: nil},
		{Name: "codesize", Parameters: nil, Returns: u256(1)},
		{Name: "codecopy", Parameters: u256(3), Returns: nil},
		{Name: "extcodesize", Parameters: u256(1), Returns: u256(1)},
		{Name: "extcodecopy", Parameters: u256(4), Returns: nil},
		{Name: "origin", Parameters: nil, Returns: u256(1)},
		{Name: "gasprice", Parameters: nil, Returns: u256(1)},
		{Name: "blockhash", Parameters: u256(1), Returns: u256(1)},
		{Name: "coinbase", Parameters: nil, Returns: u256(1)},
		{Name: "timestamp", Parameters: nil, Returns: u256(1)},
		{Name: "number", Parameters: nil, Returns: u256(1)},
		{Name: "difficulty", Parameters: nil, Returns: u256(1)},
		{Name: "gaslimit", Parameters: nil, Returns: u256(1)},

		// Calls, creation, termination.
		{Name: "create", Parameters: u256(3), Returns: u256(1)},
		{Name: "call", Parameters: u256(7), Returns: u256(1)},
		{Name: "callcode", Parameters: u256(7), Returns: u256(1)},
		{Name: "delegatecall", Parameters: u256(6), Returns: u256(1)},
		{Name: "return", Parameters: u256(2), Returns: nil},
		{Name: "revert", Parameters: u256(2), Returns: nil},
		{Name: "selfdestruct", Parameters: u256(1), Returns: nil},
		{Name: "invalid", Parameters: nil, Returns: nil},
		{Name: "log0", Parameters: u256(2), Returns: nil},
		{Name: "log1", Parameters: u256(3), Returns: nil},
		{Name: "log2", Parameters: u256(4), Returns: nil},
		{Name: "log3", Parameters: u256(5), Returns: nil},
		{Name: "log4", Parameters: u256(6), Returns: nil},

		// Object/data builtins: literalArguments builtins name a data
		// object by literal string, which the analyzer checks against the
		// Data Names set (§6) rather than against any dialect table.
		{Name: "datasize", Parameters: u256(1), Returns: u256(1), LiteralArguments: true},
		{Name: "dataoffset", Parameters: u256(1), Returns: u256(1), LiteralArguments: true},
		{Name: "datacopy", Parameters: u256(3), Returns: nil},

		// VM-version-gated instructions (§4.3).
		{Name: "returndatacopy", Parameters: u256(3), Returns: nil, Instruction: InsReturndatacopy},
		{Name: "returndatasize", Parameters: nil, Returns: u256(1), Instruction: InsReturndatasize},
		{Name: "staticcall", Parameters: u256(6), Returns: u256(1), Instruction: InsStaticcall},
		{Name: "shl", Parameters: u256(2), Returns: u256(1), Instruction: InsShl},
		{Name: "shr", Parameters: u256(2), Returns: u256(1), Instruction: InsShr},
		{Name: "sar", Parameters: u256(2), Returns: u256(1), Instruction: InsSar},
		{Name: "create2", Parameters: u256(4), Returns: u256(1), Instruction: InsCreate2},
		{Name: "extcodehash", Parameters: u256(1), Returns: u256(1), Instruction: InsExtcodehash},
		{Name: "chainid", Parameters: nil, Returns: u256(1), Instruction: InsChainid},
		{Name: "selfbalance", Parameters: nil, Returns: u256(1), Instruction: InsSelfbalance},
	}

	out := make([]*BuiltinFunction, 0, len(all))
	for _, b := range all {
		if instructionAvailable(b.Instruction, vm) {
			out = append(out, b)
		}
	}
	return out
}

// instructionByName maps every opcode §4.3 cares about to its Instruction
// tag, independent of any one dialect instance's VM version — built once
// from the Istanbul table (the superset) plus the JUMP family, which never
// appears in evmBuiltinTable at all. LookupInstructionByName uses this so
// the analyzer can recognize e.g. "staticcall" as a real, gated instruction
// even when the current dialect's filtered Builtin table has dropped it for
// targeting an earlier VM version.
var instructionByName = func() map[string]Instruction {
	m := map[string]Instruction{
		"jump":     InsJump,
		"jumpi":    InsJumpi,
		"jumpdest": InsJumpdest,
	}
	for _, b := range evmBuiltinTable(Istanbul()) {
		if b.Instruction != "" {
			m[b.Name] = b.Instruction
		}
	}
	return m
}()

// LookupInstructionByName reports the Instruction tag name would carry were
// it a gated instruction, regardless of the current dialect's VM version
// (§4.3). Used by the instruction-legality check to distinguish "unknown
// identifier" from "known instruction unavailable at this VM version".
func LookupInstructionByName(name string) (Instruction, bool) {
	ins, ok := instructionByName[name]
	return ins, ok
}

// instructionAvailable reports whether vm makes b's underlying instruction
// available as an ordinary dialect builtin. Instructions with no tag are
// always available; JUMP-family tags never appear in the table to begin
// with (see evmBuiltinTable's doc comment), so this never needs to special
// case them.
func instructionAvailable(ins Instruction, vm VMVersion) bool {
	switch ins {
	case "":
		return true
	case InsReturndatacopy, InsReturndatasize:
		return vm.SupportsReturndata()
	case InsStaticcall:
		return vm.HasStaticCall()
	case InsShl, InsShr, InsSar:
		return vm.HasBitwiseShifting()
	case InsCreate2:
		return vm.HasCreate2()
	case InsExtcodehash:
		return vm.HasExtCodeHash()
	case InsChainid:
		return vm.HasChainID()
	case InsSelfbalance:
		return vm.HasSelfBalance()
	default:
		return false
	}
}
