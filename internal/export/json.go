package export

import (
	"encoding/json"
	"fmt"
	"io"

	"nounmap/internal/fileutil"
	"nounmap/internal/matching"
)

// WriteJSON writes pairs as a JSON array of [source, [target, score]]
// entries with four-space indentation, atomically.
func WriteJSON(path string, pairs []matching.Pair) error {
	entries := make([]any, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, []any{p.Source, []any{p.Target, p.Score}})
	}
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		return enc.Encode(entries)
	})
	if err != nil {
		return fmt.Errorf("write json export: %w", err)
	}
	return nil
}

// ReadJSON loads a file written by WriteJSON.
func ReadJSON(r io.Reader) ([]matching.Pair, error) {
	var raw [][2]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json export: %w", err)
	}
	pairs := make([]matching.Pair, 0, len(raw))
	for i, entry := range raw {
		var p matching.Pair
		if err := json.Unmarshal(entry[0], &p.Source); err != nil {
			return nil, fmt.Errorf("entry %d source: %w", i, err)
		}
		var target [2]json.RawMessage
		if err := json.Unmarshal(entry[1], &target); err != nil {
			return nil, fmt.Errorf("entry %d target: %w", i, err)
		}
		if err := json.Unmarshal(target[0], &p.Target); err != nil {
			return nil, fmt.Errorf("entry %d target form: %w", i, err)
		}
		if err := json.Unmarshal(target[1], &p.Score); err != nil {
			return nil, fmt.Errorf("entry %d score: %w", i, err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
