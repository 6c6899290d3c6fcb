package matching

import (
	"reflect"
	"testing"

	"nounmap/internal/entities"
	"nounmap/internal/romanize"
)

func TestMatchKeepsBestPerSource(t *testing.T) {
	groups := romanize.Groups{
		"hanli": {Key: "hanli", Count: 40, Forms: []string{"韩立", "韩丽"}},
		"jia":   {Key: "jia", Count: 12, Forms: []string{"甲"}},
		"qqq":   {Key: "qqq", Count: 99, Forms: []string{"无"}},
	}
	target := entities.Frequency{
		"Han Li":  50,
		"Hanlin":  20,
		"JIA":     11,
		"Jiang":   30,
		"Nothing": 15,
	}

	pairs := NewMatcher(nil, DefaultThreshold, nil).Match(groups, target)

	want := []Pair{
		{Source: "甲", Target: "JIA", Score: 100},
		{Source: "韩丽", Target: "Han Li", Score: 100},
		{Source: "韩立", Target: "Han Li", Score: 100},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("Match() = %+v, want %+v", pairs, want)
	}
}

func TestMatchThresholdIsStrict(t *testing.T) {
	// Ratio("hanli", "hanlin") = 91; a threshold of 91 must reject it.
	groups := romanize.Groups{"hanli": {Key: "hanli", Count: 10, Forms: []string{"韩立"}}}
	target := entities.Frequency{"Hanlin": 10}

	if got := NewMatcher(Ratio, 91, nil).Match(groups, target); len(got) != 0 {
		t.Fatalf("expected no pairs at threshold 91, got %+v", got)
	}
	if got := NewMatcher(Ratio, 90, nil).Match(groups, target); len(got) != 1 || got[0].Score != 91 {
		t.Fatalf("expected one pair at threshold 90, got %+v", got)
	}
}

func TestMatchScoreIsMaximumAmongCandidates(t *testing.T) {
	groups := romanize.Groups{"zhangsan": {Key: "zhangsan", Count: 10, Forms: []string{"张三"}}}
	target := entities.Frequency{"Zhang Shan": 100, "Zhang San": 10, "Zhangsa": 50}

	pairs := NewMatcher(Ratio, 80, nil).Match(groups, target)
	if len(pairs) != 1 {
		t.Fatalf("expected one pair per source, got %+v", pairs)
	}
	maxScore := 0
	for form := range target {
		if s := Ratio("zhangsan", foldForTest(form)); s > maxScore {
			maxScore = s
		}
	}
	if pairs[0].Score != maxScore || pairs[0].Target != "Zhang San" {
		t.Fatalf("pair %+v is not the maximum (%d)", pairs[0], maxScore)
	}
}

func TestMatchTieKeepsHigherRankedTarget(t *testing.T) {
	groups := romanize.Groups{"li": {Key: "li", Count: 10, Forms: []string{"李"}}}
	target := entities.Frequency{"LI": 5, "Li": 50}

	pairs := NewMatcher(Ratio, 90, nil).Match(groups, target)
	if len(pairs) != 1 || pairs[0].Target != "Li" {
		t.Fatalf("expected tie to keep the more frequent target, got %+v", pairs)
	}
}

func TestPostFilter(t *testing.T) {
	pairs := []Pair{
		{Source: "甲", Target: "JIA", Score: 100},
		{Source: "乙丙", Target: "Yibing", Score: 95},
		{Source: "韩立", Target: "Han Li", Score: 92},
	}
	got := PostFilter(pairs, Filter{MinSourceLength: 2, MinTargetUppercase: 2})
	want := []Pair{{Source: "韩立", Target: "Han Li", Score: 92}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PostFilter() = %+v, want %+v", got, want)
	}
}

func foldForTest(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
