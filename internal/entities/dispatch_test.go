package entities

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"nounmap/internal/book"
	"nounmap/internal/testsupport"
)

func sampleContent(chapters int) *book.ContentMap {
	content := book.NewContentMap()
	for i := 0; i < chapters; i++ {
		paras := []string{
			"甲 见 乙",
			"乙 丙 走了",
			"",
			fmt.Sprintf("甲 说 第%d回", i),
		}
		content.Set(fmt.Sprintf("第%d章", i), paras)
	}
	return content
}

func TestAggregateIsDeterministicAcrossConcurrency(t *testing.T) {
	content := sampleContent(40)
	tg := testsupport.NewWordTagger("甲", "乙", "丙")
	extractor, _ := NewExtractor("", JoinPair)

	sequential, seqStats, err := Aggregate(context.Background(), content, tg, Options{MaxConcurrency: 1, Extractor: extractor})
	if err != nil {
		t.Fatalf("Aggregate(1): %v", err)
	}
	parallel, parStats, err := Aggregate(context.Background(), content, tg, Options{MaxConcurrency: 20, Extractor: extractor})
	if err != nil {
		t.Fatalf("Aggregate(20): %v", err)
	}

	if !reflect.DeepEqual(sequential, parallel) {
		t.Fatalf("results differ:\n%v\n%v", sequential, parallel)
	}
	if seqStats != parStats {
		t.Fatalf("stats differ: %+v vs %+v", seqStats, parStats)
	}

	want := Frequency{"甲": 80, "乙": 80, "乙 丙": 40}
	if !reflect.DeepEqual(sequential, want) {
		t.Fatalf("unexpected counts %v", sequential)
	}
	if seqStats.BlankParagraphs != 40 || seqStats.Paragraphs != 160 {
		t.Fatalf("unexpected stats %+v", seqStats)
	}
}

func TestAggregateSkipsFailedParagraphs(t *testing.T) {
	content := book.NewContentMap()
	content.Set("one", []string{"甲 来了", "broken", "甲 走了"})

	tg := testsupport.NewWordTagger("甲")
	tg.FailOn = map[string]bool{"broken": true}

	freq, stats, err := Aggregate(context.Background(), content, tg, Options{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if freq["甲"] != 2 {
		t.Fatalf("count = %d, want 2", freq["甲"])
	}
	if stats.SkippedParagraphs != 1 {
		t.Fatalf("skipped = %d", stats.SkippedParagraphs)
	}
}

func TestAggregateDoesNotTagBlankParagraphs(t *testing.T) {
	content := book.NewContentMap()
	content.Set("one", []string{"", "   ", "甲"})
	tg := testsupport.NewWordTagger("甲")

	if _, _, err := Aggregate(context.Background(), content, tg, Options{}); err != nil {
		t.Fatal(err)
	}
	if tg.Calls() != 1 {
		t.Fatalf("tagger calls = %d, want 1", tg.Calls())
	}
}

func TestAggregateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Aggregate(ctx, sampleContent(5), testsupport.NewWordTagger("甲"), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAggregateEmptyContent(t *testing.T) {
	freq, stats, err := Aggregate(context.Background(), book.NewContentMap(), testsupport.NewWordTagger(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(freq) != 0 || stats.Chapters != 0 {
		t.Fatalf("expected empty result, got %v %+v", freq, stats)
	}
}
