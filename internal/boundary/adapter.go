package boundary

import (
	"context"
	"log/slog"

	"github.com/asuai-cs/secverify/internal/invariant"
	"github.com/asuai-cs/secverify/internal/vector"
)

// Adapter drives the verification pipeline for external callers.
//
// An Adapter is cheap and immutable after construction: the profile and
// registry are read-only configuration loaded once at startup. Each
// call owns all of its per-run state, so concurrent runs are fully
// independent - no shared counters, no caches, identical input always
// reproduces identical output.
type Adapter struct {
	profile  invariant.Profile
	registry *invariant.Registry
	tokens   TokenGenerator
	parallel int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTokenGenerator overrides the run-token generator (for tests).
func WithTokenGenerator(g TokenGenerator) Option {
	return func(a *Adapter) {
		a.tokens = g
	}
}

// WithParallelism fans invariant checks out across at most limit
// goroutines per run. Verdicts and their order are unaffected.
func WithParallelism(limit int) Option {
	return func(a *Adapter) {
		a.parallel = limit
	}
}

// New creates an Adapter over the given profile and registry.
func New(profile invariant.Profile, registry *invariant.Registry, opts ...Option) *Adapter {
	a := &Adapter{
		profile:  profile,
		registry: registry,
		tokens:   UUIDv7Generator{},
		parallel: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunVerification is the single externally callable operation: decode
// the request, validate the vectors, evaluate every registered
// invariant, and return the verdict tuples in registry order.
//
// Failure modes (all returned as inspectable values, never a crash):
//   - *BoundaryError: request body is not the expected shape
//   - vector.ValidationErrors: one or more records are malformed
//
// On any failure the run fails closed: no partial verdicts.
func (a *Adapter) RunVerification(ctx context.Context, request []byte) (*Response, error) {
	runID := a.tokens.Generate()
	return a.run(ctx, runID, request)
}

func (a *Adapter) run(ctx context.Context, runID string, request []byte) (*Response, error) {
	raws, err := decodeRequest(request)
	if err != nil {
		slog.Debug("request rejected", "run_id", runID, "error", err)
		return nil, err
	}

	vectors, err := vector.Ingest(raws)
	if err != nil {
		slog.Debug("vectors rejected", "run_id", runID, "error", err)
		return nil, err
	}

	results, err := invariant.EvaluateParallel(ctx, a.profile, vectors, a.registry, a.parallel)
	if err != nil {
		return nil, err
	}

	slog.Debug("run complete", "run_id", runID, "vectors", len(vectors), "results", len(results))
	return &Response{RunID: runID, Results: toTuples(results)}, nil
}
