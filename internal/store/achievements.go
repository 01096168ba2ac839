package store

import (
	"context"
	"fmt"
)

// UpsertAchievements records global-unlock percentages for one app in a
// single transaction. Rows are keyed (app, name); an existing row gets its
// percent refreshed.
func (s *Store) UpsertAchievements(ctx context.Context, appPK int64, achievements []Achievement) error {
	if len(achievements) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin achievements tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, achievement := range achievements {
		pk, created, err := getOrCreate(ctx, tx, "achievements",
			map[string]any{"app_pk": appPK, "name": achievement.Name},
			map[string]any{"percent": achievement.Percent},
		)
		if err != nil {
			return fmt.Errorf("resolve achievement %q: %w", achievement.Name, err)
		}
		if created {
			continue
		}
		if _, err := tx.ExecContext(ctx, "UPDATE achievements SET percent = ? WHERE pk = ?", achievement.Percent, pk); err != nil {
			return fmt.Errorf("update achievement %q: %w", achievement.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit achievements: %w", err)
	}
	return nil
}

// AppAchievements returns the stored achievements for an app ordered by name.
func (s *Store) AppAchievements(ctx context.Context, appPK int64) ([]Achievement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT pk, app_pk, name, percent FROM achievements WHERE app_pk = ? ORDER BY name", appPK)
	if err != nil {
		return nil, fmt.Errorf("query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []Achievement
	for rows.Next() {
		var achievement Achievement
		if err := rows.Scan(&achievement.PK, &achievement.AppPK, &achievement.Name, &achievement.Percent); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		achievements = append(achievements, achievement)
	}
	return achievements, rows.Err()
}
