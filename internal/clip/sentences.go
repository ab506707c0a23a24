package clip

import (
	"fmt"
	"strings"

	"github.com/clipreel/clipreel/internal/match"
	"github.com/clipreel/clipreel/internal/transcript"
)

// MaxKeySentences bounds how many key sentences a query view retains.
const MaxKeySentences = 5

// UnknownSourceTitle labels sentences that could not be resolved to any
// source video. They render as non-interactive entries.
const UnknownSourceTitle = "Unknown transcription"

// KeySentence is a key sentence resolved against the source video list.
// SourceIndex is -1 when no source could be identified.
type KeySentence struct {
	ID          int    `json:"id"`
	Sentence    string `json:"sentence"`
	SourceIndex int    `json:"sourceIndex"`
	SourceTitle string `json:"sourceTitle"`
}

// BuildKeySentences produces the retained key-sentence list for a query.
// Structured key_sentences from the pipeline are preferred; when absent, the
// combined free-text summary is split on sentence terminators as a
// lower-fidelity fallback. Either way at most MaxKeySentences survive and
// each sentence is resolved to a source video where possible.
func BuildKeySentences(combined transcript.Combined, videos []transcript.Video, strategy match.Strategy) []KeySentence {
	structured := make([]transcript.CombinedKeySentence, 0, len(combined.KeySentences))
	for _, item := range combined.KeySentences {
		if strings.TrimSpace(item.Sentence) != "" {
			structured = append(structured, item)
		}
	}

	if len(structured) > 0 {
		if len(structured) > MaxKeySentences {
			structured = structured[:MaxKeySentences]
		}
		items := make([]KeySentence, 0, len(structured))
		for idx, item := range structured {
			sentence := strings.TrimSpace(item.Sentence)
			sourceIndex := -1
			if item.SourceIndex != nil {
				sourceIndex = *item.SourceIndex
			} else {
				sourceIndex = strategy.MatchVideo(sentence, videos)
			}
			id := idx
			if item.ID != nil {
				id = *item.ID
			}
			items = append(items, KeySentence{
				ID:          id,
				Sentence:    sentence,
				SourceIndex: sourceIndex,
				SourceTitle: resolveTitle(item.SourceTitle, sourceIndex, videos),
			})
		}
		return items
	}

	sentences := transcript.SplitCombinedSentences(combined.Sentence)
	if len(sentences) > MaxKeySentences {
		sentences = sentences[:MaxKeySentences]
	}
	items := make([]KeySentence, 0, len(sentences))
	for idx, sentence := range sentences {
		sourceIndex := strategy.MatchVideo(sentence, videos)
		items = append(items, KeySentence{
			ID:          idx,
			Sentence:    sentence,
			SourceIndex: sourceIndex,
			SourceTitle: resolveTitle("", sourceIndex, videos),
		})
	}
	return items
}

func resolveTitle(given string, sourceIndex int, videos []transcript.Video) string {
	if title := strings.TrimSpace(given); title != "" {
		return title
	}
	if sourceIndex < 0 {
		return UnknownSourceTitle
	}
	if sourceIndex < len(videos) && videos[sourceIndex].Title != "" {
		return videos[sourceIndex].Title
	}
	return fmt.Sprintf("V%d", sourceIndex+1)
}
