package clip

import (
	"reflect"
	"testing"

	"github.com/clipreel/clipreel/internal/transcript"
)

// stubStrategy returns canned results keyed by sentence.
type stubStrategy struct {
	videoIdx   map[string]int
	segments   map[string]transcript.Segment
	videoCalls []string
}

func (s *stubStrategy) MatchVideo(sentence string, videos []transcript.Video) int {
	s.videoCalls = append(s.videoCalls, sentence)
	if idx, ok := s.videoIdx[sentence]; ok {
		return idx
	}
	return -1
}

func (s *stubStrategy) MatchSegment(sentence string, segments []transcript.Segment) (transcript.Segment, bool) {
	seg, ok := s.segments[sentence]
	return seg, ok
}

func TestPlanPaddedWindow(t *testing.T) {
	videos := []transcript.Video{
		{Title: "Solar", VideoPath: "downloads/videos/solar.mp4"},
	}
	strategy := &stubStrategy{
		segments: map[string]transcript.Segment{
			"the key point": {Start: 10, End: 12},
		},
	}
	items := []KeySentence{
		{ID: 0, Sentence: "the key point", SourceIndex: 0, SourceTitle: "Solar"},
	}

	clips := Plan(items, videos, strategy)
	if len(clips) != 1 {
		t.Fatalf("got %d clips, want 1", len(clips))
	}
	c := clips[0]
	if c.Start != 8.5 {
		t.Errorf("Start = %v, want 8.5", c.Start)
	}
	if c.End != 16.5 {
		t.Errorf("End = %v, want 16.5", c.End)
	}
	if c.VideoPath != "downloads/videos/solar.mp4" || c.Title != "Solar" {
		t.Errorf("clip source = %+v", c)
	}
}

func TestPlanSkipsUnresolvedAndPathless(t *testing.T) {
	videos := []transcript.Video{
		{Title: "NoPath"},
		{Title: "HasPath", VideoPath: "v.mp4"},
	}
	strategy := &stubStrategy{}
	items := []KeySentence{
		{ID: 0, Sentence: "unresolved", SourceIndex: -1},
		{ID: 1, Sentence: "pathless", SourceIndex: 0},
		{ID: 2, Sentence: "out of range", SourceIndex: 9},
		{ID: 3, Sentence: "kept", SourceIndex: 1},
	}

	clips := Plan(items, videos, strategy)
	if len(clips) != 1 {
		t.Fatalf("got %d clips, want 1: %+v", len(clips), clips)
	}
	if clips[0].KeySentenceID != 3 {
		t.Errorf("kept clip id = %d, want 3", clips[0].KeySentenceID)
	}
}

func TestPlanDefaultWindowWithoutSegmentMatch(t *testing.T) {
	videos := []transcript.Video{{Title: "A", VideoPath: "a.mp4"}}
	strategy := &stubStrategy{}
	items := []KeySentence{{ID: 0, Sentence: "no segment", SourceIndex: 0}}

	clips := Plan(items, videos, strategy)
	if len(clips) != 1 {
		t.Fatalf("got %d clips, want 1", len(clips))
	}
	if clips[0].Start != 0 || clips[0].End != 12 {
		t.Errorf("default window = [%v, %v], want [0, 12]", clips[0].Start, clips[0].End)
	}
}

func TestPlanDurationBounds(t *testing.T) {
	videos := []transcript.Video{{Title: "A", VideoPath: "a.mp4"}}
	tests := []struct {
		name      string
		segment   transcript.Segment
		wantStart float64
		wantEnd   float64
	}{
		{
			// Segment near zero: start clamps at 0, minimum duration applies.
			name:      "clamped at zero",
			segment:   transcript.Segment{Start: 0.5, End: 1},
			wantStart: 0,
			wantEnd:   8,
		},
		{
			// Long segment: maximum duration caps the clip.
			name:      "capped long segment",
			segment:   transcript.Segment{Start: 20, End: 50},
			wantStart: 18.5,
			wantEnd:   32.5,
		},
		{
			// Reversed segment: the end is pushed past the start first.
			name:      "reversed segment",
			segment:   transcript.Segment{Start: 30, End: 10},
			wantStart: 28.5,
			wantEnd:   36.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := &stubStrategy{
				segments: map[string]transcript.Segment{"s": tt.segment},
			}
			clips := Plan([]KeySentence{{ID: 0, Sentence: "s", SourceIndex: 0}}, videos, strategy)
			if len(clips) != 1 {
				t.Fatalf("got %d clips, want 1", len(clips))
			}
			if clips[0].Start != tt.wantStart || clips[0].End != tt.wantEnd {
				t.Errorf("window = [%v, %v], want [%v, %v]",
					clips[0].Start, clips[0].End, tt.wantStart, tt.wantEnd)
			}
			if d := clips[0].End - clips[0].Start; d < 8 || d > 14 {
				t.Errorf("duration %v outside [8, 14]", d)
			}
		})
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	videos := []transcript.Video{{Title: "A", VideoPath: "a.mp4"}}
	strategy := &stubStrategy{
		segments: map[string]transcript.Segment{
			"one": {Start: 5, End: 6},
			"two": {Start: 40, End: 42},
		},
	}
	items := []KeySentence{
		{ID: 0, Sentence: "one", SourceIndex: 0},
		{ID: 1, Sentence: "two", SourceIndex: 0},
	}

	first := Plan(items, videos, strategy)
	second := Plan(items, videos, strategy)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Plan not deterministic:\n%+v\n%+v", first, second)
	}
	if len(first) != 2 || first[0].KeySentenceID != 0 || first[1].KeySentenceID != 1 {
		t.Errorf("order not preserved: %+v", first)
	}
}

func TestIndexBySentenceID(t *testing.T) {
	clips := []Clip{
		{KeySentenceID: 4},
		{KeySentenceID: 7},
	}
	index := IndexBySentenceID(clips)
	if index[4] != 0 || index[7] != 1 {
		t.Errorf("index = %v", index)
	}
	if _, ok := index[5]; ok {
		t.Error("unplanned sentence id should be absent")
	}
}
