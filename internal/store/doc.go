// Package store records materialized literal columns in SQLite.
//
// Each call to WriteColumn turns a literal into its one-row "lit" column,
// reads the cell back and stores one row keyed by (run_id, name):
//
//   - seq orders rows within a run and is assigned at write time
//   - dtype and rendered hold the column type and the text rendering
//   - value holds the tagged JSON form of the cell
//   - fingerprint is the content hash from dsl.Fingerprint
//
// Writes are idempotent: a second write of the same name in the same run is
// ignored. Reads are ordered by seq, then name, so output is stable.
//
// Run IDs come from a RunIDGenerator. UUIDv7Generator is time-sortable;
// FixedGenerator hands out predetermined IDs for tests.
package store
