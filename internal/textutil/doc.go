// Package textutil provides the small text normalizations shared by the
// matcher, the post-filters and the ingestion layer.
//
// Fold produces the comparison form of a target-language proper noun
// (lower-cased, whitespace removed). UpperCount and RuneLen back the
// post-match filters. Every helper counts Unicode code points, never bytes.
package textutil
