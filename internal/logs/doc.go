// Package logs reads the run log back for the CLI.
//
// Tail returns the last lines of the log, optionally only those mentioning a
// given substring such as a run id, and reports the byte offset reached so
// Follow can stream what is appended afterwards. Memory stays bounded by the
// requested line count regardless of log size.
package logs
