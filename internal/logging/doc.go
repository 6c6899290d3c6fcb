// Package logging assembles the structured slog loggers used across nounmap.
//
// It owns the console (key=value) and JSON handlers, level parsing, output
// fan-out to stdout plus the run log file, and a handful of attribute helpers
// so every component tags its lines the same way. Countdown reports
// "remaining <unit>" progress during long phases without flooding the log.
//
// Prefer these constructors over hand-rolled slog setup.
package logging
