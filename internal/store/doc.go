// Package store persists the catalog in SQLite and exposes the write
// operations the reconciliation pipeline needs.
//
// The Store manages the database connection, schema initialization, entry
// upserts, reference-tag resolution, achievement records, and the quarantine
// ledger. Each write commits in its own short transaction; the pipeline is
// the only expected writer (concurrent runs are guarded by a process lock at
// the CLI boundary, not here).
//
// Natural keys (appid, tag id, achievement name per app) carry UNIQUE
// constraints; surrogate pk columns exist for join efficiency. Timestamps are
// stored as RFC3339Nano text, release dates as YYYY-MM-DD text.
package store
