package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Timestamps are stored as RFC3339Nano text; release dates as YYYY-MM-DD.
const dateLayout = "2006-01-02"

func buildClause(pairs map[string]any, sep string) (string, []any) {
	cols, args := sortedPairs(pairs)
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " = ?"
	}
	return strings.Join(parts, sep), args
}

func sortedPairs(pairs map[string]any) ([]string, []any) {
	cols := make([]string, 0, len(pairs))
	for col := range pairs {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = pairs[col]
	}
	return cols, args
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableDate(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.Format(dateLayout)
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	value := ns.String
	return &value
}

func intPtr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	value := ni.Int64
	return &value
}

func datePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, ns.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return parsed, nil
}
