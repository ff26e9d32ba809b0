package boundary

import "context"

// PendingRun is a one-shot task that resolves to a verification
// response. It models the boundary crossing as a single suspension
// point: the caller submits, yields to its event loop, and observes the
// result only on completion.
//
// Visibility is all-or-nothing. If the context is cancelled before the
// run completes, Wait returns the context error and the result sequence
// is never observable, not even partially.
type PendingRun struct {
	runID string
	done  chan struct{}
	resp  *Response
	err   error
}

// RunID returns the token assigned when the run was accepted. Available
// immediately, before completion.
func (p *PendingRun) RunID() string {
	return p.runID
}

// Wait blocks until the run resolves or ctx is cancelled.
func (p *PendingRun) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.resp, p.err
	}
}

// Submit starts a verification run and returns immediately. The run
// proceeds on its own goroutine; computation itself is single-threaded
// and non-blocking unless the adapter was configured with parallelism,
// and verdicts are deterministic regardless of scheduling.
func (a *Adapter) Submit(ctx context.Context, request []byte) *PendingRun {
	p := &PendingRun{
		runID: a.tokens.Generate(),
		done:  make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		resp, err := a.run(ctx, p.runID, request)
		if ctx.Err() != nil {
			// Discarded by the host: suppress the result entirely.
			p.err = ctx.Err()
			return
		}
		p.resp, p.err = resp, err
	}()

	return p
}
