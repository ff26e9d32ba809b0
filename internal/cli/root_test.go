package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	_, err := executeCommand(t, "invariants", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestInvariantsCommand_ListsRegistryOrder(t *testing.T) {
	out, err := executeCommand(t, "invariants")
	require.NoError(t, err)

	assert.Contains(t, out, "no_user_write_supervisor")
	assert.Contains(t, out, "secure_boot_pc")
	assert.Contains(t, out, "no_invalid_privilege")

	// Registry order is listing order.
	assert.Less(t,
		bytes.Index([]byte(out), []byte("no_user_write_supervisor")),
		bytes.Index([]byte(out), []byte("secure_boot_pc")))
}

func TestInvariantsCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "invariants", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `"name":"secure_boot_pc"`)
}
