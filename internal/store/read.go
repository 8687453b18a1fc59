package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/litcol/internal/datatype"
	"github.com/roach88/litcol/internal/dsl"
	"github.com/roach88/litcol/internal/series"
)

// Record is one stored column.
type Record struct {
	RunID       string
	Seq         int64
	Name        string
	Column      string
	DataType    datatype.DataType
	Rendered    string
	Fingerprint string
	Value       dsl.LiteralValue
}

// Series rebuilds the one-row column the record was written from.
func (r Record) Series() (series.Series, error) {
	s, err := r.Value.ToSeries()
	if err != nil {
		return nil, err
	}
	return s.Rename(r.Column), nil
}

// RunSummary counts the columns recorded for one run.
type RunSummary struct {
	RunID   string
	Columns int
}

const recordColumns = `run_id, seq, name, column_name, dtype, rendered, fingerprint, value`

// ReadRun returns the columns of runID ordered by seq, then name.
// An unknown run yields an empty slice.
func (s *Store) ReadRun(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM literal_columns
		WHERE run_id = ?
		ORDER BY seq ASC, name COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	return scanRecords(rows)
}

// ReadColumn returns a single stored column.
// found is false when the run has no column with that name.
func (s *Store) ReadColumn(ctx context.Context, runID, name string) (rec Record, found bool, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM literal_columns
		WHERE run_id = ? AND name = ?
	`, runID, name)

	rec, err = scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// FindByFingerprint returns every stored column whose value has the given
// fingerprint, across all runs.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM literal_columns
		WHERE fingerprint = ?
		ORDER BY run_id COLLATE BINARY ASC, seq ASC
	`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("query fingerprint: %w", err)
	}
	return scanRecords(rows)
}

// ListRuns summarizes every run, ordered by run ID. UUIDv7 run IDs sort by
// creation time.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, COUNT(*)
		FROM literal_columns
		GROUP BY run_id
		ORDER BY run_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.Columns); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	return records, nil
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec       Record
		dtype     string
		valueJSON string
	)
	err := row.Scan(
		&rec.RunID,
		&rec.Seq,
		&rec.Name,
		&rec.Column,
		&dtype,
		&rec.Rendered,
		&rec.Fingerprint,
		&valueJSON,
	)
	if err == sql.ErrNoRows {
		return Record{}, err
	}
	if err != nil {
		return Record{}, fmt.Errorf("scan column: %w", err)
	}

	rec.DataType, err = datatype.Parse(dtype)
	if err != nil {
		return Record{}, fmt.Errorf("column %q: %w", rec.Name, err)
	}
	rec.Value, err = dsl.UnmarshalLiteral([]byte(valueJSON))
	if err != nil {
		return Record{}, fmt.Errorf("column %q: decode value: %w", rec.Name, err)
	}
	if rec.Value.DataType() != rec.DataType {
		return Record{}, fmt.Errorf("column %q: stored type %s does not match value type %s",
			rec.Name, rec.DataType, rec.Value.DataType())
	}
	return rec, nil
}
