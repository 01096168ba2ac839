package store

import (
	"context"
	"fmt"
)

// resolveTags maps each tag to its surrogate primary key, creating missing
// rows. A tag id is created at most once; later descriptions do not overwrite
// the stored row.
func resolveTags(ctx context.Context, q dbtx, kind TagKind, tags []Tag) ([]int64, error) {
	pks := make([]int64, 0, len(tags))
	for _, tag := range tags {
		pk, _, err := getOrCreate(ctx, q, kind.table,
			map[string]any{"id": tag.ID},
			map[string]any{"description": tag.Description},
		)
		if err != nil {
			return nil, fmt.Errorf("resolve %s %d: %w", kind.table, tag.ID, err)
		}
		pks = append(pks, pk)
	}
	return pks, nil
}

// AppTags returns the tags of the given kind linked to an app, ordered by
// natural id.
func (s *Store) AppTags(ctx context.Context, kind TagKind, appID int64) ([]Tag, error) {
	query := "SELECT t.pk, t.id, t.description FROM " + kind.table + " t " +
		"JOIN " + kind.linkTable + " l ON l." + kind.linkCol + " = t.pk " +
		"JOIN apps a ON a.pk = l.app_pk WHERE a.appid = ? ORDER BY t.id"
	rows, err := s.db.QueryContext(ctx, query, appID)
	if err != nil {
		return nil, fmt.Errorf("query %s for app %d: %w", kind.table, appID, err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.PK, &tag.ID, &tag.Description); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind.table, err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
