package invariant

// RV32I decode helpers for the instruction classes the built-in checks
// care about. Only the store and SYSTEM major opcodes are inspected;
// everything else is opaque to the checker.

const (
	opcodeMask   = 0x7f
	opcodeStore  = 0x23 // SB/SH/SW
	opcodeSystem = 0x73 // ECALL/EBREAK/xRET/CSR*

	funct3Mask = 0x7

	// funct12 values for SYSTEM instructions with funct3=PRIV.
	funct12ECall  = 0x000
	funct12EBreak = 0x001
	funct12SRet   = 0x102
	funct12MRet   = 0x302
)

// PrivilegeLevel is a RISC-V privilege mode. Numeric values follow the
// privileged spec encoding so counterexamples read the same as hardware
// trace dumps.
type PrivilegeLevel uint8

const (
	PrivUser       PrivilegeLevel = 0
	PrivSupervisor PrivilegeLevel = 1
	PrivMachine    PrivilegeLevel = 3
)

// String returns the conventional mode letter name.
func (p PrivilegeLevel) String() string {
	switch p {
	case PrivUser:
		return "user"
	case PrivSupervisor:
		return "supervisor"
	case PrivMachine:
		return "machine"
	default:
		return "reserved"
	}
}

// IsStore reports whether instr is a memory store (an actual write).
func IsStore(instr uint32) bool {
	return instr&opcodeMask == opcodeStore
}

func funct12(instr uint32) uint32 {
	return instr >> 20
}

func isPrivInstr(instr uint32) bool {
	return instr&opcodeMask == opcodeSystem && (instr>>12)&funct3Mask == 0
}

// IsTrapEntry reports whether instr enters a trap (ECALL or EBREAK).
func IsTrapEntry(instr uint32) bool {
	if !isPrivInstr(instr) {
		return false
	}
	f12 := funct12(instr)
	return f12 == funct12ECall || f12 == funct12EBreak
}

// TrapReturn reports whether instr is a trap-return instruction and, if
// so, the minimum privilege level it may legally execute at.
func TrapReturn(instr uint32) (required PrivilegeLevel, ok bool) {
	if !isPrivInstr(instr) {
		return 0, false
	}
	switch funct12(instr) {
	case funct12MRet:
		return PrivMachine, true
	case funct12SRet:
		return PrivSupervisor, true
	default:
		return 0, false
	}
}

// tracker models the privilege level across a vector sequence.
//
// The level starts at the least-privileged mode and changes ONLY via the
// defined transition instructions - the same rules the transition check
// enforces. An illegal trap return leaves the level unchanged, so a
// single violation cannot corrupt the checker state and mask later ones.
type tracker struct {
	level PrivilegeLevel
}

func newTracker() *tracker {
	return &tracker{level: PrivUser}
}

// step applies one instruction's privilege effect. It returns the level
// before and after the instruction, and ok=false when the instruction
// attempted an illegal transition (trap return below its required
// level).
func (t *tracker) step(instr uint32) (before, after PrivilegeLevel, ok bool) {
	before = t.level

	if IsTrapEntry(instr) {
		t.level = PrivMachine
		return before, t.level, true
	}

	if required, isRet := TrapReturn(instr); isRet {
		if before < required {
			// Illegal: level unchanged.
			return before, before, false
		}
		t.level = PrivUser
		return before, t.level, true
	}

	return before, before, true
}
