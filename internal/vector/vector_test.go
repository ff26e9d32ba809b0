package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWord_Encodings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint32
	}{
		{"hex prefix", "0x13", 0x13},
		{"hex prefix upper", "0X00530333", 0x00530333},
		{"bare hex", "0000002f", 0x2f},
		{"binary prefix", "0b1010", 10},
		{"verilog hex", "32'h0062a223", 0x0062a223},
		{"verilog binary", "32'b100011", 0x23},
		{"zero", "0x0", 0},
		{"max width", "0xFFFFFFFF", 0xFFFFFFFF},
		{"surrounding whitespace", " 0x4 ", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWord(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWord_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{"empty", "", ErrCodeMissingField},
		{"whitespace only", "   ", ErrCodeMissingField},
		{"not hex", "notHex", ErrCodeBadEncoding},
		{"bad binary digit", "0b102", ErrCodeBadEncoding},
		{"overflow", "0x1FFFFFFFF", ErrCodeWidthExceeded},
		{"wrong literal width", "64'h0", ErrCodeBadWidth},
		{"bad literal base", "32'q1234", ErrCodeBadEncoding},
		{"truncated literal", "32'", ErrCodeBadEncoding},
		{"negative", "-0x4", ErrCodeBadEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWord(tt.input)
			require.Error(t, err)
			ve, ok := err.(*ValidationError)
			require.True(t, ok, "error should be *ValidationError")
			assert.Equal(t, tt.wantCode, ve.Code)
		})
	}
}

func TestIngest_ValidSequence(t *testing.T) {
	raws := []RawVector{
		{Instr: "32'h00530333", PC: "32'h00000000", MemDataIn: "32'h00000000"},
		{Instr: "0x0002a403", PC: "0x4", MemDataIn: "0x0"},
		{Instr: "0x0062a223", PC: "0x8", MemDataIn: "0xFF"},
	}

	vectors, err := Ingest(raws)
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	// Input order is preserved
	assert.Equal(t, uint32(0x00530333), vectors[0].Instr)
	assert.Equal(t, uint32(0x0), vectors[0].PC)
	assert.Equal(t, uint32(0x4), vectors[1].PC)
	assert.Equal(t, uint32(0x8), vectors[2].PC)
	assert.Equal(t, uint32(0xFF), vectors[2].MemDataIn)
}

func TestIngest_Empty(t *testing.T) {
	vectors, err := Ingest(nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

func TestIngest_AccumulatesAllErrors(t *testing.T) {
	raws := []RawVector{
		{Instr: "0x13", PC: "notHex", MemDataIn: "0x0"},
		{Instr: "0x23", PC: "0x4", MemDataIn: "0x0"},
		{Instr: "", PC: "0x8", MemDataIn: "bogus"},
	}

	vectors, err := Ingest(raws)
	require.Error(t, err)
	assert.Nil(t, vectors, "no partial sequence on validation failure")

	errs, ok := AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, errs, 3)

	assert.Equal(t, 0, errs[0].Index)
	assert.Equal(t, FieldPC, errs[0].Field)
	assert.Equal(t, ErrCodeBadEncoding, errs[0].Code)

	assert.Equal(t, 2, errs[1].Index)
	assert.Equal(t, FieldInstr, errs[1].Field)
	assert.Equal(t, ErrCodeMissingField, errs[1].Code)

	assert.Equal(t, 2, errs[2].Index)
	assert.Equal(t, FieldMemDataIn, errs[2].Field)
}

func TestIngest_NeverSilentlyDrops(t *testing.T) {
	// One bad record among good ones fails the whole batch.
	raws := []RawVector{
		{Instr: "0x13", PC: "0x0", MemDataIn: "0x0"},
		{Instr: "0x23", PC: "oops", MemDataIn: "0x0"},
	}

	vectors, err := Ingest(raws)
	require.Error(t, err)
	assert.Nil(t, vectors)
}
