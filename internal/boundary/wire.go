package boundary

import (
	"encoding/json"
	"fmt"

	"github.com/asuai-cs/secverify/internal/invariant"
	"github.com/asuai-cs/secverify/internal/vector"
)

// ResultTuple is one verdict in the host's wire representation: a JSON
// array of ["name", "PASS"] or ["name", "FAIL", "counterexample"]. The
// counterexample element is absent on PASS, never an empty placeholder.
type ResultTuple struct {
	Name           string
	Status         invariant.Status
	Counterexample string
}

// MarshalJSON encodes the tuple as a 2- or 3-element JSON array.
func (t ResultTuple) MarshalJSON() ([]byte, error) {
	if t.Status == invariant.StatusFail {
		return json.Marshal([]string{t.Name, string(t.Status), t.Counterexample})
	}
	return json.Marshal([]string{t.Name, string(t.Status)})
}

// UnmarshalJSON decodes a 2- or 3-element tuple array.
func (t *ResultTuple) UnmarshalJSON(data []byte) error {
	var elems []string
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	if len(elems) < 2 || len(elems) > 3 {
		return fmt.Errorf("result tuple has %d elements, want 2 or 3", len(elems))
	}
	t.Name = elems[0]
	t.Status = invariant.Status(elems[1])
	if len(elems) == 3 {
		t.Counterexample = elems[2]
	} else {
		t.Counterexample = ""
	}
	return nil
}

// Response is the serialized outcome of one verification run. Results
// are in registry order; RunID is the UUIDv7 token assigned when the
// run was accepted.
type Response struct {
	RunID   string        `json:"run_id"`
	Results []ResultTuple `json:"results"`
}

// MarshalResults encodes just the tuple list, which is the shape the
// host event loop consumes.
func (r *Response) MarshalResults() ([]byte, error) {
	return json.Marshal(r.Results)
}

// decodeRequest parses the external request body into raw vector
// records. Unknown fields in each record are ignored; a body that is
// not a JSON array of objects at all is a *BoundaryError.
func decodeRequest(request []byte) ([]vector.RawVector, error) {
	var raws []vector.RawVector
	if err := json.Unmarshal(request, &raws); err != nil {
		return nil, &BoundaryError{Reason: "request is not a JSON array of vector records", Err: err}
	}
	return raws, nil
}

func toTuples(results []invariant.Result) []ResultTuple {
	tuples := make([]ResultTuple, len(results))
	for i, r := range results {
		t := ResultTuple{Name: r.Name, Status: r.Status}
		if r.Counterexample != nil {
			t.Counterexample = r.Counterexample.String()
		}
		tuples[i] = t
	}
	return tuples
}
