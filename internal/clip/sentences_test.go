package clip

import (
	"testing"

	"github.com/clipreel/clipreel/internal/transcript"
)

func intPtr(n int) *int { return &n }

func TestBuildKeySentencesStructured(t *testing.T) {
	videos := []transcript.Video{
		{Title: "Solar Basics"},
		{Title: "Wind At Sea"},
	}
	combined := transcript.Combined{
		Sentence: "Ignored when structured sentences exist.",
		KeySentences: []transcript.CombinedKeySentence{
			{ID: intPtr(10), Sentence: "first", SourceIndex: intPtr(1)},
			{ID: intPtr(11), Sentence: "second", SourceIndex: intPtr(0), SourceTitle: "Custom"},
			{Sentence: "   "},
		},
	}
	strategy := &stubStrategy{}

	items := BuildKeySentences(combined, videos, strategy)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != 10 || items[0].SourceIndex != 1 || items[0].SourceTitle != "Wind At Sea" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].SourceTitle != "Custom" {
		t.Errorf("items[1].SourceTitle = %q, want given title kept", items[1].SourceTitle)
	}
	if len(strategy.videoCalls) != 0 {
		t.Errorf("no matching should happen when source_index is present, got %v", strategy.videoCalls)
	}
}

func TestBuildKeySentencesResolvesMissingSource(t *testing.T) {
	videos := []transcript.Video{{Title: "Solar Basics"}}
	combined := transcript.Combined{
		KeySentences: []transcript.CombinedKeySentence{
			{Sentence: "resolvable"},
			{Sentence: "mystery"},
		},
	}
	strategy := &stubStrategy{videoIdx: map[string]int{"resolvable": 0}}

	items := BuildKeySentences(combined, videos, strategy)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].SourceIndex != 0 || items[0].SourceTitle != "Solar Basics" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].SourceIndex != -1 || items[1].SourceTitle != UnknownSourceTitle {
		t.Errorf("items[1] = %+v", items[1])
	}
	// Positional ids when the pipeline sent none.
	if items[0].ID != 0 || items[1].ID != 1 {
		t.Errorf("ids = %d, %d", items[0].ID, items[1].ID)
	}
}

func TestBuildKeySentencesFallbackSplit(t *testing.T) {
	videos := []transcript.Video{{Title: "Solar Basics"}}
	combined := transcript.Combined{
		Sentence: "First point. Second point. Third. Fourth. Fifth. Sixth.",
	}
	strategy := &stubStrategy{videoIdx: map[string]int{"First point.": 0}}

	items := BuildKeySentences(combined, videos, strategy)
	if len(items) != MaxKeySentences {
		t.Fatalf("got %d items, want %d", len(items), MaxKeySentences)
	}
	if items[0].Sentence != "First point." || items[0].SourceIndex != 0 {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].SourceIndex != -1 {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestBuildKeySentencesCapsStructured(t *testing.T) {
	sentences := make([]transcript.CombinedKeySentence, 8)
	for i := range sentences {
		sentences[i] = transcript.CombinedKeySentence{
			Sentence:    "s",
			SourceIndex: intPtr(0),
		}
	}
	combined := transcript.Combined{KeySentences: sentences}
	items := BuildKeySentences(combined, []transcript.Video{{Title: "A"}}, &stubStrategy{})
	if len(items) != MaxKeySentences {
		t.Errorf("got %d items, want %d", len(items), MaxKeySentences)
	}
}

func TestBuildKeySentencesEmpty(t *testing.T) {
	items := BuildKeySentences(transcript.Combined{}, nil, &stubStrategy{})
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}

func TestResolveTitleFallbacks(t *testing.T) {
	videos := []transcript.Video{{Title: ""}, {Title: "Named"}}

	if got := resolveTitle("", 1, videos); got != "Named" {
		t.Errorf("resolveTitle = %q, want video title", got)
	}
	if got := resolveTitle("", 0, videos); got != "V1" {
		t.Errorf("resolveTitle = %q, want positional fallback V1", got)
	}
	if got := resolveTitle("", 5, videos); got != "V6" {
		t.Errorf("resolveTitle = %q, want positional fallback V6", got)
	}
	if got := resolveTitle("", -1, videos); got != UnknownSourceTitle {
		t.Errorf("resolveTitle = %q, want %q", got, UnknownSourceTitle)
	}
	if got := resolveTitle("Given", -1, videos); got != "Given" {
		t.Errorf("resolveTitle = %q, want given title", got)
	}
}
