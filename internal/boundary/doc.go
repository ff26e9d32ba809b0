// Package boundary is the crossing point between the host environment
// and the verification pipeline. It deserializes a loosely-typed
// external request into raw vector records, drives the vector store and
// the invariant evaluator, and serializes the verdicts back into the
// host's tuple representation.
//
// Every failure mode is a value the caller can inspect: a malformed
// request yields a *BoundaryError, malformed vectors yield the vector
// store's ValidationErrors. Nothing here aborts the host process.
package boundary
