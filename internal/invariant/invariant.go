package invariant

import (
	"fmt"

	"github.com/asuai-cs/secverify/internal/vector"
)

// Status is the verdict for one invariant over one run.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Counterexample is the concrete violating state for a FAIL verdict.
// Index is the position of the offending vector in the run sequence;
// Message is the rendered description in the hardware-dump style the
// upstream tooling emits ("PC=0x4, privilege=1").
type Counterexample struct {
	Index   int    `json:"index"`
	PC      uint32 `json:"pc"`
	Message string `json:"message"`
}

// String returns the rendered violation description.
func (c *Counterexample) String() string {
	return c.Message
}

// Result is the outcome of evaluating one Definition against one run.
// Counterexample is non-nil iff Status is FAIL - a PASS never carries
// one, not even a placeholder.
type Result struct {
	Name           string          `json:"name"`
	Status         Status          `json:"status"`
	Counterexample *Counterexample `json:"counterexample,omitempty"`
}

// EvalFunc checks one property over the full ordered vector sequence.
// It returns nil when the property holds and a counterexample when it
// does not. A violation is a normal result value; EvalFunc has no error
// path.
type EvalFunc func(p Profile, vectors []vector.TestVector) *Counterexample

// Definition identifies one security property: a unique name, a short
// human description, and its evaluation function. Definitions are
// stateless across runs; any running state an EvalFunc tracks lives in
// locals scoped to a single call.
type Definition struct {
	Name        string
	Description string
	Eval        EvalFunc
}

func privCounterexample(index int, pc uint32, level PrivilegeLevel) *Counterexample {
	return &Counterexample{
		Index:   index,
		PC:      pc,
		Message: fmt.Sprintf("PC=0x%x, privilege=%d", pc, level),
	}
}
