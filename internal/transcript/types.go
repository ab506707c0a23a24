package transcript

// MaxCarouselVideos bounds how many source videos a single query view shows.
const MaxCarouselVideos = 5

type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Video struct {
	VideoID       string    `json:"videoId"`
	Title         string    `json:"title"`
	Transcription string    `json:"transcription"`
	Keywords      []Keyword `json:"keywords"`
	VideoPath     string    `json:"videoPath,omitempty"`
	Segments      []Segment `json:"segments,omitempty"`
}

// CombinedKeySentence is the structured key-sentence shape produced by the
// upstream pipeline. ID and SourceIndex are nil when the pipeline omitted
// them; the sentence must then be resolved against the transcripts.
type CombinedKeySentence struct {
	ID          *int   `json:"id,omitempty"`
	Sentence    string `json:"sentence"`
	Keyword     string `json:"keyword,omitempty"`
	SourceIndex *int   `json:"source_index,omitempty"`
	SourceTitle string `json:"source_title,omitempty"`
}

type Combined struct {
	Keywords           []Keyword             `json:"keywords"`
	Sentence           string                `json:"sentence"`
	KeySentences       []CombinedKeySentence `json:"key_sentences,omitempty"`
	CombinedVideoURL   string                `json:"combined_video_url,omitempty"`
	RecombinedSentence bool                  `json:"recombined_sentence,omitempty"`
	SentenceVersion    string                `json:"sentence_version,omitempty"`
}

type Meta struct {
	LLM          string `json:"llm"`
	ReplaceCount int    `json:"replaceCount"`
	Coverage     []bool `json:"coverage"`
}

// Response is the /api/transcriptions payload a query view consumes.
type Response struct {
	Query    string   `json:"query"`
	Videos   []Video  `json:"videos"`
	Combined Combined `json:"combined"`
	Meta     Meta     `json:"meta"`
}

// CarouselVideos returns the bounded list of videos the view actually renders.
func (r *Response) CarouselVideos() []Video {
	if len(r.Videos) > MaxCarouselVideos {
		return r.Videos[:MaxCarouselVideos]
	}
	return r.Videos
}

// HasCombinedVideo reports whether a prebuilt combined asset exists. When it
// does, clip planning and dual-buffer playback are bypassed entirely.
func (r *Response) HasCombinedVideo() bool {
	return r.Combined.CombinedVideoURL != ""
}
