// Package logging constructs slog loggers with console or JSON output.
package logging
