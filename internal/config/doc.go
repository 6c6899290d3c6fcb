// Package config loads, normalizes, and validates nounmap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NOUNMAP_TAGGER_URL. The Config type centralizes every knob the pipeline
// needs: the two books, the tagger service, the noise floor and match
// thresholds, and where artifacts are written.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
