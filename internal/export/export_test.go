package export

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"nounmap/internal/matching"
)

func TestWriteJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.json")
	pairs := []matching.Pair{{Source: "甲", Target: "JIA", Score: 100}}

	if err := WriteJSON(path, pairs); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `[
    [
        "甲",
        [
            "JIA",
            100
        ]
    ]
]
`
	if string(data) != want {
		t.Fatalf("unexpected json:\n%s", data)
	}

	f, _ := os.Open(path)
	defer f.Close()
	back, err := ReadJSON(f)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(back, pairs) {
		t.Fatalf("ReadJSON = %+v", back)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.json")
	if err := WriteJSON(path, nil); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("unexpected empty export %q", data)
	}
}

func TestPairsRoundTripInverts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")
	pairs := []matching.Pair{
		{Source: "韩立", Target: "Han Li", Score: 100},
		{Source: "南宫婉", Target: "Nangong Wan", Score: 96},
		{Source: "甲", Target: "JIA", Score: 92},
	}

	result, err := WritePairs(path, pairs, ":")
	if err != nil {
		t.Fatalf("WritePairs: %v", err)
	}
	if result.Written != 3 || len(result.Flagged) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "韩立:Han Li\n南宫婉:Nangong Wan\n甲:JIA\n" {
		t.Fatalf("unexpected pair file %q", data)
	}

	mapping, err := LoadPairs(path, ":")
	if err != nil {
		t.Fatalf("LoadPairs: %v", err)
	}
	inverted := mapping.Invert()
	for _, p := range pairs {
		got, ok := inverted.Get(p.Target)
		if !ok || got != p.Source {
			t.Fatalf("inverted[%q] = %q, want %q", p.Target, got, p.Source)
		}
	}
	if !reflect.DeepEqual(inverted.Keys(), []string{"Han Li", "Nangong Wan", "JIA"}) {
		t.Fatalf("inverted order = %v", inverted.Keys())
	}
}

func TestWritePairsFlagsDelimiterHazard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")
	pairs := []matching.Pair{
		{Source: "韩立", Target: "Han Li", Score: 100},
		{Source: "甲:乙", Target: "Jia Yi", Score: 95},
		{Source: "丙丁", Target: "Bing:Ding", Score: 93},
	}
	result, err := WritePairs(path, pairs, ":")
	if err != nil {
		t.Fatal(err)
	}
	if result.Written != 1 || len(result.Flagged) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if err := CheckPair(result.Flagged[0], ":"); !errors.Is(err, ErrDelimiterInForm) {
		t.Fatalf("expected ErrDelimiterInForm, got %v", err)
	}

	// The same pairs survive with a delimiter that does not collide.
	result, err = WritePairs(path, pairs, "\t")
	if err != nil || result.Written != 3 {
		t.Fatalf("tab delimiter: %+v %v", result, err)
	}
	mapping, err := LoadPairs(path, "\t")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := mapping.Get("甲:乙"); v != "Jia Yi" {
		t.Fatalf("got %q", v)
	}
}

func TestReadPairsRejectsMalformedLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"two delimiters", "a:b\nc:d:e\n", "line 2"},
		{"no delimiter", "\nabc\n", "line 2"},
		{"empty target", "a:\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPairs(strings.NewReader(tt.input), ":")
			if !errors.Is(err, ErrMalformedLine) {
				t.Fatalf("expected ErrMalformedLine, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Fatalf("error %q does not name %s", err, tt.line)
			}
		})
	}
}

func TestReadPairsToleratesCRLFAndBOM(t *testing.T) {
	m, err := ReadPairs(strings.NewReader("\ufeff甲:JIA\r\n\r\n乙:YI\r\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 2 {
		t.Fatalf("len = %d", m.Len())
	}
	if v, _ := m.Get("甲"); v != "JIA" {
		t.Fatalf("got %q", v)
	}
}
