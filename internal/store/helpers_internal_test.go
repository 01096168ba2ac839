package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseTimestampRejectsMalformed(t *testing.T) {
	if _, err := parseTimestamp("not-a-time"); err == nil {
		t.Fatal("expected error for malformed timestamp")
	}

	stamp := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	parsed, err := parseTimestamp(stamp.Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("parseTimestamp: %v", err)
	}
	if !parsed.Equal(stamp) {
		t.Fatalf("expected %v, got %v", stamp, parsed)
	}
}

func TestAppStampsSurfacesCorruptTimestamp(t *testing.T) {
	st, err := OpenPath(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	ctx := context.Background()

	_, err = st.db.ExecContext(ctx,
		"INSERT INTO apps (appid, type, name, created, updated) VALUES (?, ?, ?, ?, ?)",
		620, "game", "Portal 2", time.Now().UTC().Format(time.RFC3339Nano), "garbage")
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	if _, err := st.AppStamps(ctx); err == nil || !strings.Contains(err.Error(), "garbage") {
		t.Fatalf("expected corrupt timestamp error, got %v", err)
	}
}
