// Package invariant defines the security-property registry and the
// evaluator that checks each property against a validated test-vector
// sequence.
//
// Each property is a tagged evaluator variant (a Definition) dispatched
// by name - there is no inheritance hierarchy. Definitions are pure over
// the vector sequence: any running architectural state they need
// (privilege level, trap status) is initialized deterministically per
// evaluation and discarded afterwards, so invoking the evaluator twice
// with identical input yields identical output.
//
// A FAIL verdict is a normal result value, never an error. Only
// malformed input (rejected upstream by the vector store) or a defect in
// the evaluator itself is an error condition.
package invariant
