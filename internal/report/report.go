package report

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/asuai-cs/secverify/internal/invariant"
)

// Run is the archivable record of one verification run: the token it
// ran under, the profile it evaluated against, and one verdict per
// registered invariant in registry order.
type Run struct {
	RunID       string             `json:"run_id"`
	Profile     invariant.Profile  `json:"profile"`
	VectorCount int                `json:"vector_count"`
	Results     []invariant.Result `json:"results"`
}

// New builds a Run record.
func New(runID string, profile invariant.Profile, vectorCount int, results []invariant.Result) *Run {
	return &Run{
		RunID:       runID,
		Profile:     profile,
		VectorCount: vectorCount,
		Results:     results,
	}
}

// Passed reports whether every verdict in the run is PASS.
func (r *Run) Passed() bool {
	for _, res := range r.Results {
		if res.Status != invariant.StatusPass {
			return false
		}
	}
	return true
}

// CanonicalJSON renders the run as canonical JSON. The run token is
// excluded so two runs over identical input render byte-identically.
func (r *Run) CanonicalJSON() ([]byte, error) {
	results := make([]any, len(r.Results))
	for i, res := range r.Results {
		m := map[string]any{
			"name":   res.Name,
			"status": string(res.Status),
		}
		if res.Counterexample != nil {
			m["counterexample"] = map[string]any{
				"index":   res.Counterexample.Index,
				"pc":      res.Counterexample.PC,
				"message": res.Counterexample.Message,
			}
		}
		results[i] = m
	}

	return MarshalCanonical(map[string]any{
		"profile": map[string]any{
			"reset_vector":    r.Profile.ResetVector,
			"supervisor_base": r.Profile.SupervisorBase,
			"xlen":            r.Profile.XLEN,
		},
		"vector_count": r.VectorCount,
		"results":      results,
	})
}

// Hash returns the hex SHA-256 of the canonical rendering. Identical
// input vectors always produce an identical hash.
func (r *Run) Hash() (string, error) {
	data, err := r.CanonicalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
