package store

import (
	"context"
	"fmt"

	"github.com/asuai-cs/secverify/internal/report"
)

// WriteRun archives a run report and its verdicts in one transaction.
// Uses ON CONFLICT(run_id) DO NOTHING for idempotency - re-archiving
// the same run token is a no-op, partial writes never survive.
func (s *Store) WriteRun(ctx context.Context, run *report.Run) error {
	reportJSON, err := run.CanonicalJSON()
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	hash, err := run.Hash()
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, vector_count, passed, report_hash, report)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO NOTHING
	`, run.RunID, run.VectorCount, run.Passed(), hash, string(reportJSON))
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Already archived under this token.
		return nil
	}

	for i, r := range run.Results {
		var cex *string
		if r.Counterexample != nil {
			msg := r.Counterexample.Message
			cex = &msg
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO results (run_id, position, name, status, counterexample)
			VALUES (?, ?, ?, ?, ?)
		`, run.RunID, i, r.Name, string(r.Status), cex)
		if err != nil {
			return fmt.Errorf("write run result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}
