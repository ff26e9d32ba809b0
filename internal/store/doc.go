// Package store is the SQLite archive for verification run reports.
//
// The archive is an outer surface: the verification pipeline itself is
// stateless per run and never reads the archive. The CLI writes a run
// here when asked to, so verdicts can be listed and diffed later.
package store
