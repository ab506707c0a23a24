// Package clip turns resolved key sentences into a playable sequence of
// time-bounded clips drawn from the source videos.
package clip

import (
	"math"

	"github.com/clipreel/clipreel/internal/match"
	"github.com/clipreel/clipreel/internal/transcript"
)

// Clip is one bounded time range within a single source video, derived from
// a matched transcript segment. Recomputed whenever the inputs change, never
// mutated in place.
type Clip struct {
	KeySentenceID int     `json:"keySentenceId"`
	SourceIndex   int     `json:"sourceIndex"`
	Sentence      string  `json:"sentence"`
	Title         string  `json:"title"`
	VideoPath     string  `json:"videoPath"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
}

const (
	// startPadding backs the clip up before the matched segment so the
	// sentence does not start mid-word.
	startPadding = 1.5
	// endPadding lets the thought finish after the segment ends.
	endPadding = 3.5
	// minDuration and maxDuration clamp clips into a band that avoids
	// both flash cuts and runaway clips.
	minDuration = 8
	maxDuration = 14
	// defaultClipEnd is the fallback window when no segment matched.
	defaultClipEnd = 12
)

// Plan derives one clip per resolvable key sentence, preserving sentence
// order. Unresolved sentences and sources without a media path are skipped.
// Plan is pure: identical inputs always yield identical output.
func Plan(items []KeySentence, videos []transcript.Video, strategy match.Strategy) []Clip {
	var clips []Clip
	for _, item := range items {
		if item.SourceIndex < 0 || item.SourceIndex >= len(videos) {
			continue
		}
		source := videos[item.SourceIndex]
		if source.VideoPath == "" {
			continue
		}

		start, end := 0.0, float64(defaultClipEnd)
		if matched, ok := strategy.MatchSegment(item.Sentence, source.Segments); ok {
			rawStart := math.Max(0, matched.Start)
			rawEnd := math.Max(rawStart+0.5, matched.End)
			start = math.Max(0, rawStart-startPadding)
			end = math.Max(start+minDuration, rawEnd+endPadding)
			end = math.Min(end, start+maxDuration)
		}

		clips = append(clips, Clip{
			KeySentenceID: item.ID,
			SourceIndex:   item.SourceIndex,
			Sentence:      item.Sentence,
			Title:         source.Title,
			VideoPath:     source.VideoPath,
			Start:         start,
			End:           end,
		})
	}
	return clips
}

// IndexBySentenceID maps each retained key-sentence id to its clip position.
// Unresolved sentences produce no clip, so absence from the map means the
// sentence has no jump target.
func IndexBySentenceID(clips []Clip) map[int]int {
	index := make(map[int]int, len(clips))
	for i, c := range clips {
		index[c.KeySentenceID] = i
	}
	return index
}
