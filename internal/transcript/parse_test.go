package transcript

import "testing"

func TestParseResponseFull(t *testing.T) {
	data := []byte(`{
		"query": "solar panels",
		"videos": [
			{
				"videoId": "v1",
				"title": "Solar Basics",
				"transcription": "Solar panels convert sunlight.",
				"videoPath": "downloads/videos/solar.mp4",
				"keywords": [{"term": "solar", "score": 0.9, "count": 4}],
				"segments": [
					{"start": 0, "end": 4.5, "text": "Solar panels convert sunlight."}
				]
			}
		],
		"combined": {
			"keywords": [{"term": "energy", "score": 0.7, "count": 2}],
			"sentence": "Solar panels convert sunlight. Storage matters.",
			"key_sentences": [
				{"id": 3, "sentence": "Solar panels convert sunlight.", "keyword": "solar", "source_index": 0, "source_title": "Solar Basics"}
			],
			"combined_video_url": "http://cres/videos/combined.mp4",
			"recombined_sentence": true,
			"sentence_version": "v2"
		},
		"meta": {"llm": "gpt", "replaceCount": 1, "coverage": [true, false]}
	}`)

	resp, err := ParseResponse(data)
	if err != nil {
		t.Fatalf("ParseResponse returned error: %v", err)
	}
	if resp.Query != "solar panels" {
		t.Errorf("Query = %q", resp.Query)
	}
	if len(resp.Videos) != 1 {
		t.Fatalf("got %d videos, want 1", len(resp.Videos))
	}
	v := resp.Videos[0]
	if v.VideoID != "v1" || v.Title != "Solar Basics" {
		t.Errorf("video identity = %q / %q", v.VideoID, v.Title)
	}
	if len(v.Segments) != 1 || v.Segments[0].End != 4.5 {
		t.Errorf("segments = %+v", v.Segments)
	}
	if len(v.Keywords) != 1 || v.Keywords[0].Term != "solar" || v.Keywords[0].Count != 4 {
		t.Errorf("keywords = %+v", v.Keywords)
	}

	c := resp.Combined
	if !c.RecombinedSentence || c.SentenceVersion != "v2" {
		t.Errorf("combined flags = %+v", c)
	}
	if c.CombinedVideoURL != "http://cres/videos/combined.mp4" {
		t.Errorf("CombinedVideoURL = %q", c.CombinedVideoURL)
	}
	if len(c.KeySentences) != 1 {
		t.Fatalf("got %d key sentences, want 1", len(c.KeySentences))
	}
	ks := c.KeySentences[0]
	if ks.ID == nil || *ks.ID != 3 {
		t.Errorf("key sentence ID = %v", ks.ID)
	}
	if ks.SourceIndex == nil || *ks.SourceIndex != 0 {
		t.Errorf("key sentence SourceIndex = %v", ks.SourceIndex)
	}
	if ks.SourceTitle != "Solar Basics" {
		t.Errorf("SourceTitle = %q", ks.SourceTitle)
	}

	if resp.Meta.LLM != "gpt" || resp.Meta.ReplaceCount != 1 || len(resp.Meta.Coverage) != 2 {
		t.Errorf("meta = %+v", resp.Meta)
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	if _, err := ParseResponse([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseResponseDropsMalformedEntries(t *testing.T) {
	data := []byte(`{
		"videos": [
			{
				"title": "A",
				"segments": [
					{"start": 5, "end": 2, "text": "reversed"},
					{"start": 1, "end": 3, "text": "kept"}
				]
			}
		],
		"combined": {
			"keywords": [{"term": "", "score": 0.5}, {"term": "kept"}],
			"key_sentences": [
				{"keyword": "no sentence"},
				{"sentence": "  has one  "}
			]
		}
	}`)

	resp, err := ParseResponse(data)
	if err != nil {
		t.Fatalf("ParseResponse returned error: %v", err)
	}
	if len(resp.Videos[0].Segments) != 1 || resp.Videos[0].Segments[0].Text != "kept" {
		t.Errorf("segments = %+v", resp.Videos[0].Segments)
	}
	if len(resp.Combined.Keywords) != 1 || resp.Combined.Keywords[0].Term != "kept" {
		t.Errorf("keywords = %+v", resp.Combined.Keywords)
	}
	if len(resp.Combined.KeySentences) != 1 {
		t.Fatalf("got %d key sentences, want 1", len(resp.Combined.KeySentences))
	}
	ks := resp.Combined.KeySentences[0]
	if ks.Sentence != "has one" {
		t.Errorf("sentence = %q, want trimmed", ks.Sentence)
	}
	if ks.ID != nil || ks.SourceIndex != nil {
		t.Errorf("absent numeric fields should stay nil, got ID=%v SourceIndex=%v", ks.ID, ks.SourceIndex)
	}
}

func TestParseResponseMissingSections(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"query": "q"}`))
	if err != nil {
		t.Fatalf("ParseResponse returned error: %v", err)
	}
	if len(resp.Videos) != 0 {
		t.Errorf("videos = %+v", resp.Videos)
	}
	if resp.HasCombinedVideo() {
		t.Error("HasCombinedVideo should be false without a URL")
	}
}

func TestHasCombinedVideo(t *testing.T) {
	data := []byte(`{
		"combined": {
			"sentence": "Prebuilt summary.",
			"key_sentences": [{"sentence": "Prebuilt summary.", "source_index": 0}],
			"combined_video_url": "http://cres/videos/combined.mp4"
		}
	}`)
	resp, err := ParseResponse(data)
	if err != nil {
		t.Fatalf("ParseResponse returned error: %v", err)
	}

	// With a prebuilt asset present the host plays it directly and never
	// plans clips or touches the dual-buffer player.
	if !resp.HasCombinedVideo() {
		t.Fatal("HasCombinedVideo should be true for a non-empty URL")
	}
	if resp.Combined.CombinedVideoURL != "http://cres/videos/combined.mp4" {
		t.Errorf("CombinedVideoURL = %q", resp.Combined.CombinedVideoURL)
	}

	resp.Combined.CombinedVideoURL = ""
	if resp.HasCombinedVideo() {
		t.Error("HasCombinedVideo should be false once the URL is cleared")
	}
}

func TestCarouselVideosCap(t *testing.T) {
	resp := &Response{Videos: make([]Video, 7)}
	if got := len(resp.CarouselVideos()); got != MaxCarouselVideos {
		t.Errorf("CarouselVideos returned %d, want %d", got, MaxCarouselVideos)
	}
	resp.Videos = resp.Videos[:3]
	if got := len(resp.CarouselVideos()); got != 3 {
		t.Errorf("CarouselVideos returned %d, want 3", got)
	}
}
