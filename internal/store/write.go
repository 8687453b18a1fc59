package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/litcol/internal/dsl"
)

var (
	// ErrEmptyName is returned when a column is written without a name.
	ErrEmptyName = errors.New("column name is required")

	// ErrColumnConflict is returned when (runID, name) is already recorded
	// with a different literal. The stored column is left unchanged.
	ErrColumnConflict = errors.New("column already recorded with a different value")
)

// WriteColumn materializes v and records the resulting cell under
// (runID, name). The next seq in the run is assigned inside the same
// transaction. Rewriting an existing (runID, name) with a literal of the same
// fingerprint is a no-op; any other literal fails with ErrColumnConflict.
//
// Literals that cannot be materialized are rejected with an error wrapping
// dsl.ErrUnsupportedMaterialization and nothing is written.
func (s *Store) WriteColumn(ctx context.Context, runID, name string, v dsl.LiteralValue) error {
	if name == "" {
		return fmt.Errorf("write column: %w", ErrEmptyName)
	}
	if v == nil {
		return fmt.Errorf("write column %q: %w: nil literal", name, dsl.ErrInvalidLiteral)
	}

	col, err := v.ToSeries()
	if err != nil {
		return fmt.Errorf("write column %q: %w", name, err)
	}
	cell := dsl.ValueAt(col, 0)

	valueJSON, err := dsl.MarshalLiteral(cell)
	if err != nil {
		return fmt.Errorf("write column %q: %w", name, err)
	}
	fingerprint, err := dsl.Fingerprint(cell)
	if err != nil {
		return fmt.Errorf("write column %q: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write column %q: begin: %w", name, err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM literal_columns WHERE run_id = ?`,
		runID,
	).Scan(&seq); err != nil {
		return fmt.Errorf("write column %q: next seq: %w", name, err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO literal_columns
		(run_id, seq, name, column_name, dtype, rendered, fingerprint, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, name) DO NOTHING
	`,
		runID,
		seq,
		name,
		col.Name(),
		col.DataType().String(),
		cell.String(),
		fingerprint,
		string(valueJSON),
	)
	if err != nil {
		return fmt.Errorf("write column %q: %w", name, err)
	}
	inserted, err := affected(res)
	if err != nil {
		return fmt.Errorf("write column %q: %w", name, err)
	}

	if inserted == 0 {
		var existing string
		if err := tx.QueryRowContext(ctx,
			`SELECT fingerprint FROM literal_columns WHERE run_id = ? AND name = ?`,
			runID, name,
		).Scan(&existing); err != nil {
			return fmt.Errorf("write column %q: existing fingerprint: %w", name, err)
		}
		if existing != fingerprint {
			return fmt.Errorf("write column %q in run %q: %w (recorded %.12s, got %.12s)",
				name, runID, ErrColumnConflict, existing, fingerprint)
		}
		slog.Debug("column already recorded", "run_id", runID, "name", name)
		return nil
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write column %q: commit: %w", name, err)
	}
	slog.Debug("column recorded", "run_id", runID, "name", name, "seq", seq, "dtype", col.DataType().String())
	return nil
}

// WriteColumns records each named literal in order under one run. It
// stops at the first failure; columns written before it stay recorded.
func (s *Store) WriteColumns(ctx context.Context, runID string, cols []NamedLiteral) error {
	for _, c := range cols {
		if err := s.WriteColumn(ctx, runID, c.Name, c.Value); err != nil {
			return err
		}
	}
	return nil
}

// NamedLiteral pairs a literal with the name it is recorded under.
type NamedLiteral struct {
	Name  string
	Value dsl.LiteralValue
}

// DeleteRun removes every column recorded for runID and reports how many
// rows were removed.
func (s *Store) DeleteRun(ctx context.Context, runID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM literal_columns WHERE run_id = ?`, runID)
	if err != nil {
		return 0, fmt.Errorf("delete run: %w", err)
	}
	return affected(res)
}

func affected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
