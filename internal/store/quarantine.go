package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordQuarantine marks an appid as permanently failing. The write is
// idempotent: an appid already present keeps its original reason. Commits
// immediately. An empty name is stored as NULL.
func (s *Store) RecordQuarantine(ctx context.Context, appID int64, name, reason string) error {
	var storedName any
	if name != "" {
		storedName = name
	}
	_, _, err := getOrCreate(ctx, s.db, "quarantine",
		map[string]any{"appid": appID},
		map[string]any{
			"name":    storedName,
			"reason":  reason,
			"created": time.Now().UTC().Format(time.RFC3339Nano),
		},
	)
	if err != nil {
		return fmt.Errorf("record quarantine %d: %w", appID, err)
	}
	return nil
}

// IsQuarantined reports whether an appid is excluded from future work.
func (s *Store) IsQuarantined(ctx context.Context, appID int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM quarantine WHERE appid = ?", appID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check quarantine %d: %w", appID, err)
	}
	return count > 0, nil
}

// QuarantinedAppIDs returns the full excluded id set.
func (s *Store) QuarantinedAppIDs(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT appid FROM quarantine")
	if err != nil {
		return nil, fmt.Errorf("query quarantine: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var appID int64
		if err := rows.Scan(&appID); err != nil {
			return nil, fmt.Errorf("scan quarantine: %w", err)
		}
		ids[appID] = struct{}{}
	}
	return ids, rows.Err()
}

// Quarantined returns the full ledger ordered by appid, for reporting.
func (s *Store) Quarantined(ctx context.Context) ([]QuarantineRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT pk, appid, name, reason, created FROM quarantine ORDER BY appid")
	if err != nil {
		return nil, fmt.Errorf("query quarantine: %w", err)
	}
	defer rows.Close()

	var records []QuarantineRecord
	for rows.Next() {
		var (
			record     QuarantineRecord
			name       sql.NullString
			reason     sql.NullString
			createdRaw string
		)
		if err := rows.Scan(&record.PK, &record.AppID, &name, &reason, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan quarantine: %w", err)
		}
		record.Name = stringPtr(name)
		record.Reason = stringPtr(reason)
		record.Created, err = parseTimestamp(createdRaw)
		if err != nil {
			return nil, fmt.Errorf("quarantine %d: %w", record.AppID, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
