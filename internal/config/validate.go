package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSteam(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateSteam() error {
	for name, value := range map[string]string{
		"steam.applist_url":      c.Steam.AppListURL,
		"steam.appdetails_url":   c.Steam.AppDetailsURL,
		"steam.achievements_url": c.Steam.AchievementsURL,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", name)
		}
	}
	if c.Steam.RequestTimeout <= 0 {
		return errors.New("steam.request_timeout must be positive")
	}
	if c.Steam.RateLimit <= 0 {
		return errors.New("steam.rate_limit must be positive")
	}
	if c.Steam.RateBurst <= 0 {
		return errors.New("steam.rate_burst must be positive")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.BatchSize <= 0 {
		return errors.New("pipeline.batch_size must be positive")
	}
	if c.Pipeline.Concurrency <= 0 {
		return errors.New("pipeline.concurrency must be positive")
	}
	if c.Pipeline.Concurrency > c.Pipeline.BatchSize {
		return errors.New("pipeline.concurrency must not exceed pipeline.batch_size")
	}
	if c.Pipeline.StaleDays <= 0 {
		return errors.New("pipeline.stale_days must be positive")
	}
	if c.Pipeline.MinBatchDelaySeconds < 0 {
		return errors.New("pipeline.min_batch_delay_seconds must not be negative")
	}
	if c.Pipeline.PerResultDelayMillis < 0 {
		return errors.New("pipeline.per_result_delay_millis must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
