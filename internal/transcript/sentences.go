package transcript

import (
	"strings"
	"unicode"
)

// Sentence terminators. Latin terminators stay attached to their sentence
// (the break happens on the following whitespace); runs of CJK terminators
// are consumed as delimiters.
func isLatinTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCJKTerminator(r rune) bool {
	return r == '。' || r == '！' || r == '？'
}

// SplitCombinedSentences splits an LLM-combined summary into sentences. This
// is the fallback path used when the upstream omits structured key_sentences.
func SplitCombinedSentences(text string) []string {
	return splitSentences(text, false)
}

// SplitTranscriptSentences splits raw transcript text for the karaoke view.
// Newlines always break, and text with no terminators at all comes back as a
// single chunk so the transcript still renders.
func SplitTranscriptSentences(text string) []string {
	chunks := splitSentences(text, true)
	if len(chunks) == 0 && text != "" {
		return []string{text}
	}
	return chunks
}

func splitSentences(text string, newlineBreaks bool) []string {
	var out []string
	var cur strings.Builder

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}

	var prev rune
	for _, r := range text {
		switch {
		case isCJKTerminator(r):
			flush()
		case unicode.IsSpace(r) && isLatinTerminator(prev):
			flush()
		case newlineBreaks && r == '\n':
			flush()
		default:
			cur.WriteRune(r)
		}
		prev = r
	}
	flush()
	return out
}
