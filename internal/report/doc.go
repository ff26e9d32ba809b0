// Package report renders verification runs as canonical JSON (RFC 8785
// key ordering, NFC-normalized strings) and content-addresses them.
// Canonical rendering keeps archived reports byte-identical across runs
// with the same verdicts, so reports can be diffed and deduplicated by
// hash.
package report
