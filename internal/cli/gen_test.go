package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGen_WritesVectorsAndProperties(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(tracePath, []byte(`[
		{"instr": 5440307, "pc": 0},
		{"instr": "0x0002a403", "pc": "0x4"}
	]`), 0o644))

	outDir := t.TempDir()
	_, err := executeCommand(t, "gen", tracePath, "-o", outDir)
	require.NoError(t, err)

	vectors, err := os.ReadFile(filepath.Join(outDir, "test_vectors.json"))
	require.NoError(t, err)
	assert.Contains(t, string(vectors), `"32'h00530333"`)
	assert.Contains(t, string(vectors), `"32'h00000004"`)
	assert.Contains(t, string(vectors), `"32'h00000000"`)

	props, err := os.ReadFile(filepath.Join(outDir, "additional_properties.sva"))
	require.NoError(t, err)
	assert.Contains(t, string(props), "no_boot_kernel_write")
	assert.Contains(t, string(props), "32'h80000000")
}

func TestGen_GeneratedVectorsVerify(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(tracePath, []byte(`[{"instr": "0x13", "pc": "0x0"}]`), 0o644))

	outDir := t.TempDir()
	_, err := executeCommand(t, "gen", tracePath, "-o", outDir)
	require.NoError(t, err)

	// Generated vectors feed straight back into verify.
	_, err = executeCommand(t, "verify", filepath.Join(outDir, "test_vectors.json"))
	assert.NoError(t, err)
}

func TestGen_MalformedTrace(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(tracePath, []byte(`[{"instr": "bad"}]`), 0o644))

	_, err := executeCommand(t, "gen", tracePath, "-o", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
