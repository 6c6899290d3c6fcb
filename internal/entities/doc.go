// Package entities counts proper-noun mentions in a book.
//
// Extractor turns one paragraph's tagged tokens into surface forms. Aggregate
// runs the extractor over every chapter on a bounded worker pool; each worker
// counts into a private Frequency and the partial counts are summed in chapter
// order once all workers finish, so the result never depends on scheduling.
package entities
