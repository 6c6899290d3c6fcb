// Package tagcache persists tagger output in SQLite so repeated runs over the
// same books skip the tagging service.
//
// Entries are keyed by (model, sha256(text)) and hold the JSON-encoded token
// list. The database runs in WAL mode with a busy timeout and retries busy
// writes, so every dispatcher worker can share one Store. Tagger wraps any
// tagger.Tagger with read-through caching.
package tagcache
