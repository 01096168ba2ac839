// Package config loads and validates steamsync's TOML configuration.
//
// Load resolves the config file (flag path or ~/.config/steamsync/config.toml),
// decodes it over the defaults, expands paths, and applies environment
// overrides. A missing file is fine; the defaults describe a working setup
// that only needs network access.
package config
