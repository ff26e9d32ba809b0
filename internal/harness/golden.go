package harness

import (
	"context"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/asuai-cs/secverify/internal/invariant"
	"github.com/asuai-cs/secverify/internal/report"
)

// RunWithGolden executes a scenario and compares its wire output
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files pin the exact tuple output, so any change to verdicts,
// ordering, or counterexample rendering shows up as a diff.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return err
	}
	if result.Response == nil {
		return fmt.Errorf("scenario %q produced no response", scenario.Name)
	}

	snapshot, err := snapshotJSON(scenario.Name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)
	return nil
}

// snapshotJSON renders the scenario output as canonical JSON so golden
// comparisons are byte-stable.
func snapshotJSON(name string, result *Result) ([]byte, error) {
	tuples := make([]any, len(result.Response.Results))
	for i, tuple := range result.Response.Results {
		elems := []any{tuple.Name, string(tuple.Status)}
		if tuple.Status == invariant.StatusFail {
			elems = append(elems, tuple.Counterexample)
		}
		tuples[i] = elems
	}

	return report.MarshalCanonical(map[string]any{
		"scenario": name,
		"results":  tuples,
	})
}
