package boundary

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asuai-cs/secverify/internal/invariant"
)

func TestSubmit_ResolvesOnce(t *testing.T) {
	a := newTestAdapter()

	pending := a.Submit(context.Background(),
		[]byte(`[{"instr":"0x13","pc":"0x0","mem_data_in":"0x0"}]`))
	assert.Equal(t, "run-1", pending.RunID(), "token assigned before completion")

	resp, err := pending.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", resp.RunID)
	assert.Len(t, resp.Results, 3)

	// Waiting again returns the same resolved value.
	again, err := pending.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, resp, again)
}

func TestSubmit_ErrorIsAValue(t *testing.T) {
	a := newTestAdapter()

	pending := a.Submit(context.Background(), []byte(`not json`))
	resp, err := pending.Wait(context.Background())
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsBoundaryError(err))
}

func TestSubmit_CancelledRunIsNeverObservable(t *testing.T) {
	a := newTestAdapter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pending := a.Submit(ctx, []byte(`[{"instr":"0x13","pc":"0x0","mem_data_in":"0x0"}]`))
	resp, err := pending.Wait(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp, "all-or-nothing: no partial results after cancellation")
}

func TestSubmit_WaitHonoursCallerContext(t *testing.T) {
	a := newTestAdapter()

	runCtx := context.Background()
	pending := a.Submit(runCtx, []byte(`[{"instr":"0x13","pc":"0x0","mem_data_in":"0x0"}]`))

	waitCtx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pending.Wait(waitCtx)
	assert.ErrorIs(t, err, context.Canceled)

	// The run itself still resolves for a patient waiter.
	resp, err := pending.Wait(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestSubmit_ConcurrentRunsAreIndependent(t *testing.T) {
	a := New(invariant.DefaultProfile(), invariant.Default())

	pass := []byte(`[{"instr":"0x13","pc":"0x0","mem_data_in":"0x0"}]`)
	fail := []byte(`[{"instr":"0x23","pc":"0x4","mem_data_in":"0xFF"}]`)

	const rounds = 20
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			resp, err := a.Submit(context.Background(), pass).Wait(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, invariant.StatusPass, resp.Results[0].Status)
		}()
		go func() {
			defer wg.Done()
			resp, err := a.Submit(context.Background(), fail).Wait(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, invariant.StatusFail, resp.Results[0].Status)
		}()
	}
	wg.Wait()
}
