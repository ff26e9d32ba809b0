package vector

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire field names for raw records.
const (
	FieldInstr     = "instr"
	FieldPC        = "pc"
	FieldMemDataIn = "mem_data_in"
)

// RawVector is one untyped wire record as decoded from the external
// request. All fields are fixed-width encoded strings; unknown wire
// fields are dropped during deserialization and never reach this type.
type RawVector struct {
	Instr     string `json:"instr"`
	PC        string `json:"pc"`
	MemDataIn string `json:"mem_data_in"`
}

// TestVector is one validated processor execution sample: the
// instruction encoding, the program counter, and the data value of any
// memory write issued in that cycle (zero when the cycle writes
// nothing).
type TestVector struct {
	Instr     uint32 `json:"instr"`
	PC        uint32 `json:"pc"`
	MemDataIn uint32 `json:"mem_data_in"`
}

// Ingest parses raw wire records into validated TestVectors.
//
// Every record is checked; malformed fields are accumulated into a
// ValidationErrors rather than stopping at the first failure. On any
// error the returned slice is nil - a run never proceeds with a
// partially validated sequence, because a silently dropped vector could
// hide the very state an invariant exists to catch.
//
// Input order is preserved exactly. Ingest is a pure transformation
// with no side effects.
func Ingest(raws []RawVector) ([]TestVector, error) {
	var errs ValidationErrors
	vectors := make([]TestVector, 0, len(raws))

	for i, raw := range raws {
		v := TestVector{}
		fields := []struct {
			name string
			src  string
			dst  *uint32
		}{
			{FieldInstr, raw.Instr, &v.Instr},
			{FieldPC, raw.PC, &v.PC},
			{FieldMemDataIn, raw.MemDataIn, &v.MemDataIn},
		}
		ok := true
		for _, f := range fields {
			val, err := ParseWord(f.src)
			if err != nil {
				ok = false
				ve := err.(*ValidationError)
				ve.Index = i
				ve.Field = f.name
				errs = append(errs, ve)
				continue
			}
			*f.dst = val
		}
		if ok {
			vectors = append(vectors, v)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return vectors, nil
}

// ParseWord parses a fixed-width 32-bit value from its wire encoding.
//
// Accepted forms:
//   - "0x1A2B" / "0X1A2B"  - hex with prefix
//   - "1A2B"               - bare hex digits
//   - "0b1010"             - binary with prefix
//   - "32'h0000002f"       - Verilog sized hex literal
//   - "32'b1010"           - Verilog sized binary literal
//
// The Verilog forms are what the upstream trace generator emits. Sized
// literals must declare exactly 32 bits; any value that does not fit 32
// bits is rejected. The returned error is always a *ValidationError
// with Index and Field left for the caller to fill in.
func ParseWord(s string) (uint32, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &ValidationError{Code: ErrCodeMissingField, Reason: "field is missing or empty"}
	}

	digits := trimmed
	base := 16

	// Verilog sized literal: <width>'<base><digits>
	if tick := strings.IndexByte(trimmed, '\''); tick >= 0 {
		width, err := strconv.Atoi(trimmed[:tick])
		if err != nil || tick+1 >= len(trimmed) {
			return 0, &ValidationError{
				Code:   ErrCodeBadEncoding,
				Reason: fmt.Sprintf("malformed sized literal %q", trimmed),
			}
		}
		if width != 32 {
			return 0, &ValidationError{
				Code:   ErrCodeBadWidth,
				Reason: fmt.Sprintf("sized literal declares %d bits, want 32", width),
			}
		}
		switch trimmed[tick+1] {
		case 'h', 'H':
			base = 16
		case 'b', 'B':
			base = 2
		default:
			return 0, &ValidationError{
				Code:   ErrCodeBadEncoding,
				Reason: fmt.Sprintf("unsupported literal base %q", string(trimmed[tick+1])),
			}
		}
		digits = trimmed[tick+2:]
	} else if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		digits = trimmed[2:]
	} else if strings.HasPrefix(trimmed, "0b") || strings.HasPrefix(trimmed, "0B") {
		base = 2
		digits = trimmed[2:]
	}

	val, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, &ValidationError{
			Code:   ErrCodeBadEncoding,
			Reason: fmt.Sprintf("%q is not a valid base-%d encoding", trimmed, base),
		}
	}
	if val > 0xFFFFFFFF {
		return 0, &ValidationError{
			Code:   ErrCodeWidthExceeded,
			Reason: fmt.Sprintf("value %q exceeds 32 bits", trimmed),
		}
	}
	return uint32(val), nil
}
