// Package tagger defines the part-of-speech tagging contract used to find
// proper nouns, plus two adapters.
//
// HTTP talks to a tagging service (POST /tag, GET /health) with retries on
// transient failures. Rule is an offline capitalization heuristic for cased
// scripts, useful for dry runs and tests.
package tagger
