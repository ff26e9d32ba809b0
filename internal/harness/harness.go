package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asuai-cs/secverify/internal/boundary"
	"github.com/asuai-cs/secverify/internal/invariant"
	"github.com/asuai-cs/secverify/internal/vector"
)

// Result is the outcome of executing one scenario.
type Result struct {
	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	// Errors lists expectation mismatches. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Response is the adapter output, nil when the run failed with an
	// expected (or unexpected) error.
	Response *boundary.Response `json:"response,omitempty"`
}

// AddError records a mismatch and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario against a fresh adapter with a deterministic
// run token, then checks every expectation.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	adapter := boundary.New(
		invariant.DefaultProfile(),
		invariant.Default(),
		boundary.WithTokenGenerator(boundary.NewFixedGenerator("scenario-"+scenario.Name)),
	)

	request, err := json.Marshal(scenarioRequest(scenario))
	if err != nil {
		return nil, fmt.Errorf("marshal scenario request: %w", err)
	}

	result := &Result{Pass: true}
	resp, runErr := adapter.RunVerification(ctx, request)

	if scenario.ExpectError != "" {
		checkExpectedError(scenario, runErr, result)
		return result, nil
	}

	if runErr != nil {
		return nil, fmt.Errorf("run scenario %q: %w", scenario.Name, runErr)
	}
	result.Response = resp
	checkExpectations(scenario, resp, result)
	return result, nil
}

func scenarioRequest(scenario *Scenario) []vector.RawVector {
	raws := make([]vector.RawVector, len(scenario.Vectors))
	for i, v := range scenario.Vectors {
		raws[i] = vector.RawVector{Instr: v.Instr, PC: v.PC, MemDataIn: v.MemDataIn}
	}
	return raws
}

func checkExpectedError(scenario *Scenario, runErr error, result *Result) {
	if runErr == nil {
		result.AddError("expected %s error, run succeeded", scenario.ExpectError)
		return
	}
	switch scenario.ExpectError {
	case ExpectValidationError:
		if _, ok := vector.AsValidationErrors(runErr); !ok {
			result.AddError("expected validation error, got %v", runErr)
		}
	case ExpectBoundaryError:
		if !boundary.IsBoundaryError(runErr) {
			result.AddError("expected boundary error, got %v", runErr)
		}
	}
}

func checkExpectations(scenario *Scenario, resp *boundary.Response, result *Result) {
	if len(resp.Results) != len(scenario.Expect) {
		result.AddError("got %d results, expected %d", len(resp.Results), len(scenario.Expect))
		return
	}

	for i, want := range scenario.Expect {
		got := resp.Results[i]
		if got.Name != want.Name {
			result.AddError("result[%d]: name %q, expected %q", i, got.Name, want.Name)
			continue
		}
		if string(got.Status) != want.Status {
			result.AddError("%s: status %s, expected %s", got.Name, got.Status, want.Status)
			continue
		}
		if got.Status == invariant.StatusPass && got.Counterexample != "" {
			result.AddError("%s: PASS carries counterexample %q", got.Name, got.Counterexample)
		}
		if got.Status == invariant.StatusFail && got.Counterexample == "" {
			result.AddError("%s: FAIL without counterexample", got.Name)
		}
		if want.Counterexample != "" && !strings.Contains(got.Counterexample, want.Counterexample) {
			result.AddError("%s: counterexample %q does not contain %q",
				got.Name, got.Counterexample, want.Counterexample)
		}
	}
}
