package invariant

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/asuai-cs/secverify/internal/vector"
)

// Evaluate checks every registry definition against the vector sequence
// and returns one Result per definition, in registry order.
//
// Evaluations are independent: no state is shared between checks, so
// registry order is an output-formatting concern only and scheduling can
// never change a verdict. The returned error is non-nil only when ctx is
// cancelled before all checks complete; in that case no results are
// returned at all (all-or-nothing visibility).
func Evaluate(ctx context.Context, p Profile, vectors []vector.TestVector, reg *Registry) ([]Result, error) {
	results := make([]Result, reg.Len())
	for i, def := range reg.defs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = runOne(def, p, vectors)
	}
	return results, nil
}

// EvaluateParallel is Evaluate with checks fanned out across at most
// limit goroutines. Output order and content are identical to the
// sequential form - each goroutine writes only its own registry slot.
// Parallelism is a throughput knob, never a correctness one.
func EvaluateParallel(ctx context.Context, p Profile, vectors []vector.TestVector, reg *Registry, limit int) ([]Result, error) {
	if limit <= 1 {
		return Evaluate(ctx, p, vectors, reg)
	}

	results := make([]Result, reg.Len())
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, def := range reg.defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runOne(def, p, vectors)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(def Definition, p Profile, vectors []vector.TestVector) Result {
	cex := def.Eval(p, vectors)
	status := StatusPass
	if cex != nil {
		status = StatusFail
		slog.Debug("invariant violated", "name", def.Name, "pc", cex.PC, "index", cex.Index)
	}
	return Result{Name: def.Name, Status: status, Counterexample: cex}
}
