// Package main hosts the nounmap CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the run logger and
// hands off to the internal packages: "run" drives the pipeline, "inspect"
// shows what ingestion sees in a book, "replace" applies a pair file to
// plain text, "preflight" reports readiness and "config" scaffolds and
// validates the TOML file.
//
// Keep this package lean: behaviour belongs in internal packages, this layer
// only parses flags and renders results.
package main
