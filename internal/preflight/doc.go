// Package preflight checks the files, directories and services a run needs
// before any book is opened.
//
// "nounmap run" aborts when any check fails so I/O faults surface in seconds
// rather than after tagging a whole book. "nounmap preflight" prints the
// same results. Checks are gated by config: the tag cache check only runs
// when the cache is enabled, the tagger check only for the HTTP tagger.
package preflight
