package matching

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"jia", "jia", 100},
		{"", "", 0},
		{"abc", "", 0},
		{"zhangsan", "zhangshan", 94},
		{"libai", "lebai", 80},
		{"hanli", "hanlin", 91},
		{"ab", "ba", 50},
		{"甲乙", "甲", 67},
		{"韩立", "韩丽立", 80},
		{"Schüßler", "Schussler", 71},
	}
	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); got != tt.want {
			t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRatioRoundsHalfToEven(t *testing.T) {
	// One shared rune over sixteen total: exactly 12.5.
	if got := Ratio("a", "abcdefghijklmno"); got != 12 {
		t.Fatalf("Ratio = %d, want 12", got)
	}
}

func TestLevenshteinAndJaroWinkler(t *testing.T) {
	if got := Levenshtein("jia", "jia"); got != 100 {
		t.Fatalf("Levenshtein identical = %d", got)
	}
	if got := Levenshtein("hanli", "hanlin"); got != 83 {
		t.Fatalf("Levenshtein = %d, want 83", got)
	}
	if got := Levenshtein("", ""); got != 0 {
		t.Fatalf("Levenshtein empty = %d", got)
	}
	if got := JaroWinkler("jia", "jia"); got != 100 {
		t.Fatalf("JaroWinkler identical = %d", got)
	}
	if got := JaroWinkler("jia", "xyz"); got != 0 {
		t.Fatalf("JaroWinkler disjoint = %d", got)
	}
}

func TestScorerByName(t *testing.T) {
	for _, name := range []string{"", ScorerRatio, ScorerLevenshtein, ScorerJaroWinkler} {
		if _, err := ScorerByName(name); err != nil {
			t.Fatalf("ScorerByName(%q): %v", name, err)
		}
	}
	if _, err := ScorerByName("cosine"); err == nil {
		t.Fatal("expected error for unknown scorer")
	}
}
