package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name))
	require.NoError(t, err)
	return s
}

func TestScenarios_AllPass(t *testing.T) {
	for _, name := range []string{
		"reset-boot.yaml",
		"unprivileged-write.yaml",
		"malformed-pc.yaml",
		"empty-trace.yaml",
	} {
		t.Run(name, func(t *testing.T) {
			scenario := loadTestScenario(t, name)
			result, err := Run(context.Background(), scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "mismatches: %v", result.Errors)
		})
	}
}

func TestScenario_GoldenResetBoot(t *testing.T) {
	scenario := loadTestScenario(t, "reset-boot.yaml")
	require.NoError(t, RunWithGolden(t, scenario))
}

func TestScenario_GoldenUnprivilegedWrite(t *testing.T) {
	scenario := loadTestScenario(t, "unprivileged-write.yaml")
	require.NoError(t, RunWithGolden(t, scenario))
}

func TestRun_DetectsWrongExpectation(t *testing.T) {
	scenario := loadTestScenario(t, "reset-boot.yaml")
	scenario.Expect[1].Status = "FAIL"

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "secure_boot_pc")
}

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := writeScenarioFile(t, `
name: typo
description: has a typo
vectors: []
expectation:
  - name: secure_boot_pc
    status: PASS
`)
	_, err := LoadScenario(path)
	assert.Error(t, err, "unknown field must be rejected")
}

func TestLoadScenario_RejectsBadStatus(t *testing.T) {
	path := writeScenarioFile(t, `
name: bad-status
description: status must be PASS or FAIL
vectors: []
expect:
  - name: secure_boot_pc
    status: MAYBE
`)
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_RejectsExpectAndExpectError(t *testing.T) {
	path := writeScenarioFile(t, `
name: both
description: expect and expect_error together
vectors: []
expect_error: validation
expect:
  - name: secure_boot_pc
    status: PASS
`)
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
