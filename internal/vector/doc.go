// Package vector holds the test-vector store: the ordered, validated
// sequence of processor execution samples submitted for one verification
// run.
//
// Ingest is the only entry point. It parses loosely-typed wire records
// into TestVectors, rejecting every malformed field before any invariant
// sees the sequence. Input order is preserved because invariants reason
// over transitions between consecutive vectors.
package vector
