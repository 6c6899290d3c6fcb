package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nounmap/internal/fileutil"
	"nounmap/internal/matching"
)

// DefaultDelimiter separates source and target in the pair file.
const DefaultDelimiter = ":"

var (
	// ErrDelimiterInForm marks a pair whose source or target contains the delimiter.
	ErrDelimiterInForm = errors.New("form contains the pair delimiter")
	// ErrMalformedLine marks a pair-file line without exactly one delimiter.
	ErrMalformedLine = errors.New("malformed pair line")
)

// PairResult reports what WritePairs wrote.
type PairResult struct {
	Written int
	// Flagged pairs were left out because a form contains the delimiter.
	Flagged []matching.Pair
}

// CheckPair reports whether p can be written with delim.
func CheckPair(p matching.Pair, delim string) error {
	if strings.Contains(p.Source, delim) || strings.Contains(p.Target, delim) {
		return fmt.Errorf("%w: %q -> %q", ErrDelimiterInForm, p.Source, p.Target)
	}
	if strings.ContainsAny(p.Source, "\r\n") || strings.ContainsAny(p.Target, "\r\n") {
		return fmt.Errorf("%w: %q -> %q contains a line break", ErrMalformedLine, p.Source, p.Target)
	}
	return nil
}

// WritePairs writes one "source<delim>target" line per pair, atomically.
// Pairs failing CheckPair are skipped and returned in PairResult.Flagged.
func WritePairs(path string, pairs []matching.Pair, delim string) (PairResult, error) {
	if delim == "" {
		delim = DefaultDelimiter
	}
	var result PairResult
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		for _, p := range pairs {
			if CheckPair(p, delim) != nil {
				result.Flagged = append(result.Flagged, p)
				continue
			}
			if _, err := io.WriteString(w, p.Source+delim+p.Target+"\n"); err != nil {
				return err
			}
			result.Written++
		}
		return nil
	})
	if err != nil {
		return PairResult{}, fmt.Errorf("write pair file: %w", err)
	}
	return result, nil
}

// PairMapping maps keys to values in file order. A repeated key keeps its
// first position and takes the later value.
type PairMapping struct {
	keys   []string
	values map[string]string
}

// NewPairMapping returns an empty mapping.
func NewPairMapping() *PairMapping {
	return &PairMapping{values: make(map[string]string)}
}

// Set records key -> value.
func (m *PairMapping) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key.
func (m *PairMapping) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of keys.
func (m *PairMapping) Len() int {
	return len(m.keys)
}

// Keys returns keys in insertion order.
func (m *PairMapping) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Invert swaps keys and values. When several keys share a value the last one
// in order wins.
func (m *PairMapping) Invert() *PairMapping {
	inv := NewPairMapping()
	for _, k := range m.keys {
		inv.Set(m.values[k], k)
	}
	return inv
}

// LoadPairs reads a pair file. Blank lines are ignored; a line with zero or
// several delimiters fails with ErrMalformedLine.
func LoadPairs(path, delim string) (*PairMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pair file: %w", err)
	}
	defer f.Close()
	return ReadPairs(f, delim)
}

// ReadPairs parses pair lines from r.
func ReadPairs(r io.Reader, delim string) (*PairMapping, error) {
	if delim == "" {
		delim = DefaultDelimiter
	}
	m := NewPairMapping()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if strings.Count(text, delim) != 1 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedLine, line, text)
		}
		source, target, _ := strings.Cut(text, delim)
		if source == "" || target == "" {
			return nil, fmt.Errorf("%w: line %d: empty form", ErrMalformedLine, line)
		}
		m.Set(source, target)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pair file: %w", err)
	}
	return m, nil
}
