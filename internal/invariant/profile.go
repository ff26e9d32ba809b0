package invariant

// Profile describes the architectural parameters the built-in checks
// evaluate against. Values come from a CUE profile file or from
// DefaultProfile when none is given.
type Profile struct {
	// ResetVector is the architecturally defined PC of the first
	// instruction after reset.
	ResetVector uint32 `json:"reset_vector"`

	// SupervisorBase is the lowest address of the supervisor-only
	// memory region. Used by the trace generator's supplementary
	// property output.
	SupervisorBase uint32 `json:"supervisor_base"`

	// XLEN is the register width in bits. Only 32 is supported.
	XLEN int `json:"xlen"`
}

// DefaultProfile matches the upstream RV32I core: reset at 0x0,
// supervisor region at 0x8000_0000 and above.
func DefaultProfile() Profile {
	return Profile{
		ResetVector:    0x0,
		SupervisorBase: 0x8000_0000,
		XLEN:           32,
	}
}
