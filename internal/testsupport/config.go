package testsupport

import (
	"path/filepath"
	"testing"

	"steamsync/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Pipeline.BatchSize = 4
	cfg.Pipeline.Concurrency = 2
	cfg.Pipeline.MinBatchDelaySeconds = 0
	cfg.Pipeline.PerResultDelayMillis = 0
	cfg.Steam.RateLimit = 1000
	cfg.Steam.RateBurst = 1000
	return &cfg
}
