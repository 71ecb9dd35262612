// Package logging wraps log/slog with tugboat's handler setup: a compact
// console handler for interactive use (colorized when stdout is a
// terminal) and a JSON handler for machine consumption, plus the shared
// attribute helpers and component-logger convention used across the
// codebase.
package logging
