package invariant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asuai-cs/secverify/internal/vector"
)

func linuxBootTrace() []vector.TestVector {
	// The upstream sample trace: ADD, LW, SW, ECALL.
	return []vector.TestVector{
		{Instr: instrAdd, PC: 0x0},
		{Instr: instrLoad, PC: 0x4},
		{Instr: instrStore, PC: 0x8},
		{Instr: instrECall, PC: 0xc},
	}
}

func TestEvaluate_RegistryOrderAndLength(t *testing.T) {
	results, err := Evaluate(context.Background(), DefaultProfile(), linuxBootTrace(), Default())
	require.NoError(t, err)
	require.Len(t, results, Default().Len())

	assert.Equal(t, NameNoUserWriteSupervisor, results[0].Name)
	assert.Equal(t, NameSecureBootPC, results[1].Name)
	assert.Equal(t, NameNoInvalidPrivilege, results[2].Name)
}

func TestEvaluate_PassNeverCarriesCounterexample(t *testing.T) {
	results, err := Evaluate(context.Background(), DefaultProfile(), linuxBootTrace(), Default())
	require.NoError(t, err)

	for _, r := range results {
		switch r.Status {
		case StatusPass:
			assert.Nil(t, r.Counterexample, "%s: PASS must not carry a counterexample", r.Name)
		case StatusFail:
			require.NotNil(t, r.Counterexample, "%s: FAIL must carry a counterexample", r.Name)
			assert.NotEmpty(t, r.Counterexample.Message)
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	vectors := linuxBootTrace()

	first, err := Evaluate(context.Background(), DefaultProfile(), vectors, Default())
	require.NoError(t, err)
	second, err := Evaluate(context.Background(), DefaultProfile(), vectors, Default())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluate_EmptySequence(t *testing.T) {
	results, err := Evaluate(context.Background(), DefaultProfile(), nil, Default())
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Every built-in passes vacuously on an empty run.
	for _, r := range results {
		assert.Equal(t, StatusPass, r.Status, r.Name)
	}
}

func TestEvaluate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Evaluate(ctx, DefaultProfile(), linuxBootTrace(), Default())
	require.Error(t, err)
	assert.Nil(t, results, "cancellation yields no partial results")
}

func TestEvaluateParallel_MatchesSequential(t *testing.T) {
	vectors := []vector.TestVector{
		{Instr: instrStore, PC: 0x4, MemDataIn: 0xFF}, // fails the write check
	}

	seq, err := Evaluate(context.Background(), DefaultProfile(), vectors, Default())
	require.NoError(t, err)

	for _, limit := range []int{1, 2, 8} {
		par, err := EvaluateParallel(context.Background(), DefaultProfile(), vectors, Default(), limit)
		require.NoError(t, err)
		assert.Equal(t, seq, par, "limit=%d", limit)
	}
}

func TestNewRegistry_RejectsBadDefinitions(t *testing.T) {
	noop := func(Profile, []vector.TestVector) *Counterexample { return nil }

	_, err := NewRegistry(Definition{Name: "", Eval: noop})
	assert.Error(t, err, "empty name")

	_, err = NewRegistry(Definition{Name: "a", Eval: nil})
	assert.Error(t, err, "nil eval")

	_, err = NewRegistry(
		Definition{Name: "a", Eval: noop},
		Definition{Name: "a", Eval: noop},
	)
	assert.Error(t, err, "duplicate name")
}

func TestRegistry_DefinitionsIsACopy(t *testing.T) {
	reg := Default()
	defs := reg.Definitions()
	defs[0].Name = "mutated"

	assert.Equal(t, NameNoUserWriteSupervisor, reg.Definitions()[0].Name)
}
