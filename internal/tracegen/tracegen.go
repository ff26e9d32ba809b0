// Package tracegen converts raw RISC-V instruction traces (e.g. a Linux
// boot capture) into boundary-shaped test vectors, and emits the
// supplementary SVA property text consumed by the offline toolchain.
package tracegen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asuai-cs/secverify/internal/invariant"
	"github.com/asuai-cs/secverify/internal/vector"
)

// Entry is one trace sample: instruction encoding and fetch address.
// The wire value for each field may be a JSON number or an encoded
// string ("0x...", "32'h..."), since trace capture tools disagree on
// the format.
type Entry struct {
	Instr uint32
	PC    uint32
}

type rawEntry struct {
	Instr json.RawMessage `json:"instr"`
	PC    json.RawMessage `json:"pc"`
}

// UnmarshalJSON accepts numeric and encoded-string field values.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if e.Instr, err = parseTraceField(raw.Instr); err != nil {
		return fmt.Errorf("instr: %w", err)
	}
	if e.PC, err = parseTraceField(raw.PC); err != nil {
		return fmt.Errorf("pc: %w", err)
	}
	return nil
}

func parseTraceField(data json.RawMessage) (uint32, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("field is missing")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		return vector.ParseWord(s)
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, err
	}
	if n > 0xFFFFFFFF {
		return 0, fmt.Errorf("value %d exceeds 32 bits", n)
	}
	return uint32(n), nil
}

// ParseTrace decodes a JSON trace array.
func ParseTrace(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}
	return entries, nil
}

// Vectors renders trace entries as raw wire vectors in the Verilog
// sized-literal form the downstream harness expects. Memory write data
// is zeroed: the capture format carries no data bus values.
func Vectors(trace []Entry) []vector.RawVector {
	raws := make([]vector.RawVector, len(trace))
	for i, e := range trace {
		raws[i] = vector.RawVector{
			Instr:     fmt.Sprintf("32'h%08x", e.Instr),
			PC:        fmt.Sprintf("32'h%08x", e.PC),
			MemDataIn: "32'h00000000",
		}
	}
	return raws
}

// VectorsJSON renders the wire vectors as indented JSON, the on-disk
// format of test_vectors.json.
func VectorsJSON(trace []Entry) ([]byte, error) {
	return json.MarshalIndent(Vectors(trace), "", "    ")
}

// bootWindow is the PC range treated as boot code by the supplementary
// property.
const bootWindow = 0x1000

// SupplementaryProperties emits the additional SVA property text: no
// write into the supervisor region while executing boot code.
func SupplementaryProperties(p invariant.Profile) string {
	var b strings.Builder
	b.WriteString("// Additional property: no write to the supervisor region during boot\n")
	b.WriteString("property no_boot_kernel_write;\n")
	b.WriteString("    @(posedge clk) disable iff (reset)\n")
	fmt.Fprintf(&b, "    (pc < 32'h%08x && mem_write) |-> (mem_addr < 32'h%08x);\n", uint32(bootWindow), p.SupervisorBase)
	b.WriteString("endproperty\n")
	b.WriteString("assert property (no_boot_kernel_write) else\n")
	b.WriteString("    $display(\"Security violation: boot wrote to supervisor memory\");\n")
	return b.String()
}
