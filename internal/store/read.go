package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned when a run token has no archived report.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is one archive listing row.
type RunSummary struct {
	RunID       string `json:"run_id"`
	VectorCount int    `json:"vector_count"`
	Passed      bool   `json:"passed"`
	ReportHash  string `json:"report_hash"`
	CreatedAt   string `json:"created_at"`
}

// ListRuns returns archived runs, newest first, up to limit rows.
// A limit <= 0 returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
		SELECT run_id, vector_count, passed, report_hash, created_at
		FROM runs
		ORDER BY created_at DESC, run_id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.VectorCount, &r.Passed, &r.ReportHash, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

// GetReport returns the canonical JSON report archived for a run token.
func (s *Store) GetReport(ctx context.Context, runID string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE run_id = ?`, runID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get report %q: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %q: %w", runID, err)
	}
	return []byte(data), nil
}
