// Package match resolves free-text key sentences back onto source videos and
// transcript segments. Matching is approximate by design: the sentences come
// from an LLM and the transcripts from ASR, so punctuation and paraphrasing
// differ. Unresolved matches are a normal outcome, not an error.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/clipreel/clipreel/internal/transcript"
)

// Strategy is the pluggable sentence-to-source matcher. Implementations must
// return -1 / false when nothing matches.
type Strategy interface {
	// MatchVideo returns the index of the video whose transcript contains
	// the sentence, or -1.
	MatchVideo(sentence string, videos []transcript.Video) int
	// MatchSegment returns the transcript segment best matching the
	// sentence within a single video.
	MatchSegment(sentence string, segments []transcript.Segment) (transcript.Segment, bool)
}

// PrefixProbe is the default strategy: direct substring containment first,
// then a bounded prefix of the compacted sentence probed against compacted
// transcript text.
type PrefixProbe struct {
	// VideoProbeLen is how many compacted characters of the sentence are
	// probed against whole transcripts.
	VideoProbeLen int
	// SegmentProbeLen is the prefix length used for per-segment scoring.
	SegmentProbeLen int
	// MinProbeLen is the shortest prefix worth probing; anything shorter
	// produces too many false positives.
	MinProbeLen int
}

// NewPrefixProbe returns a PrefixProbe with the tuned defaults.
func NewPrefixProbe() *PrefixProbe {
	return &PrefixProbe{VideoProbeLen: 22, SegmentProbeLen: 18, MinProbeLen: 6}
}

// Normalize lowercases and trims a string for containment checks.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Compact normalizes and strips everything except word characters and CJK
// ideographs, so punctuation and spacing differences cannot break matching.
func Compact(s string) string {
	s = Normalize(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	case r >= 0x4e00 && r <= 0x9fff:
		return true
	}
	return false
}

func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func (p *PrefixProbe) MatchVideo(sentence string, videos []transcript.Video) int {
	norm := Normalize(sentence)
	if norm == "" {
		return -1
	}

	for i, v := range videos {
		if strings.Contains(Normalize(v.Transcription), norm) {
			return i
		}
	}

	probe := prefixRunes(Compact(norm), p.VideoProbeLen)
	if utf8.RuneCountInString(probe) >= p.MinProbeLen {
		for i, v := range videos {
			if strings.Contains(Compact(v.Transcription), probe) {
				return i
			}
		}
	}

	return -1
}

func (p *PrefixProbe) MatchSegment(sentence string, segments []transcript.Segment) (transcript.Segment, bool) {
	if len(segments) == 0 {
		return transcript.Segment{}, false
	}
	target := Compact(sentence)
	if target == "" {
		return transcript.Segment{}, false
	}

	prefix := prefixRunes(target, p.SegmentProbeLen)
	prefixLen := utf8.RuneCountInString(prefix)

	var best transcript.Segment
	bestScore := 0.0
	found := false

	for _, seg := range segments {
		segText := Compact(seg.Text)
		if segText == "" {
			continue
		}
		// Exact containment either way is an immediate accept.
		if strings.Contains(segText, target) || strings.Contains(target, segText) {
			return seg, true
		}
		if prefix != "" && strings.Contains(segText, prefix) {
			segLen := utf8.RuneCountInString(segText)
			if segLen < 1 {
				segLen = 1
			}
			score := float64(prefixLen) / float64(segLen)
			if score > bestScore {
				bestScore = score
				best = seg
				found = true
			}
		}
	}

	return best, found
}

// FindBestSentenceIndex locates the transcript sentence best matching a
// target sentence, for jump-to-sentence highlighting. Returns -1 when the
// sentence list is empty or nothing matches.
func (p *PrefixProbe) FindBestSentenceIndex(target string, sentences []string) int {
	if target == "" || len(sentences) == 0 {
		return -1
	}
	normTarget := Compact(target)
	if normTarget == "" {
		return -1
	}

	prefix := prefixRunes(normTarget, p.SegmentProbeLen)
	prefixLen := utf8.RuneCountInString(prefix)

	bestIdx := -1
	bestScore := 0.0
	for i, sentence := range sentences {
		normSentence := Compact(sentence)
		if normSentence == "" {
			continue
		}
		if strings.Contains(normSentence, normTarget) || strings.Contains(normTarget, normSentence) {
			return i
		}
		if prefix != "" && strings.Contains(normSentence, prefix) {
			segLen := utf8.RuneCountInString(normSentence)
			if segLen < 1 {
				segLen = 1
			}
			score := float64(prefixLen) / float64(segLen)
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
	}
	return bestIdx
}

// KeywordSources maps each combined keyword to the first video whose
// transcript contains it. Keywords with no source are omitted so the UI can
// disable their jump chips.
func KeywordSources(keywords []transcript.Keyword, videos []transcript.Video) map[string]int {
	sources := make(map[string]int)
	for _, kw := range keywords {
		norm := Normalize(kw.Term)
		if norm == "" {
			continue
		}
		if _, seen := sources[norm]; seen {
			continue
		}
		for i, v := range videos {
			if strings.Contains(Normalize(v.Transcription), norm) {
				sources[norm] = i
				break
			}
		}
	}
	return sources
}
