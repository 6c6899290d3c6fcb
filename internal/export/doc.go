// Package export writes resolved pairs to disk and reads the pair file back.
//
// The JSON artifact keeps every (source, [target, score]) entry in rank
// order. The pair file holds one "source<delim>target" line per pair for the
// replacement step. Delimiters are not escaped, so pairs whose forms contain
// the delimiter are left out of the pair file and reported to the caller.
package export
