// Package pipeline wires one nounmap run end to end: preflight, run lock,
// book ingestion, proper-noun aggregation for both books, pinyin grouping,
// matching, filtering and export.
//
// Each run gets a run_id that tags every log line. The output directory is
// locked for the duration of the run so two runs never interleave writes to
// the same artifacts.
package pipeline
