package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Stats summarizes catalog contents for reporting.
type Stats struct {
	Apps         int64
	Categories   int64
	Genres       int64
	Achievements int64
	Quarantined  int64
	LastUpdated  time.Time
}

// Stats counts the stored rows per relation and reports the most recent
// entry update.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	counts := map[string]*int64{
		"apps":         &stats.Apps,
		"categories":   &stats.Categories,
		"genres":       &stats.Genres,
		"achievements": &stats.Achievements,
		"quarantine":   &stats.Quarantined,
	}
	for table, target := range counts {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+table).Scan(target); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
	}

	var updatedRaw sql.NullString
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(updated) FROM apps").Scan(&updatedRaw); err != nil {
		return nil, fmt.Errorf("latest update: %w", err)
	}
	if updatedRaw.Valid {
		updated, err := parseTimestamp(updatedRaw.String)
		if err != nil {
			return nil, fmt.Errorf("latest update: %w", err)
		}
		stats.LastUpdated = updated
	}

	return stats, nil
}
