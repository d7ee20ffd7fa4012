// Package logging assembles structured slog loggers and formatting helpers used
// across catalogage components.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so workspace actions can tag log
// lines with the action identifier, the targeted EAN and the edited field. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
