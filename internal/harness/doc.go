// Package harness runs conformance scenarios against the boundary
// adapter. A scenario is a YAML file pairing an input vector list with
// the expected verdict per invariant; golden files pin the full wire
// output for regression diffing.
package harness
