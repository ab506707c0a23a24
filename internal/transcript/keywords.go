package transcript

import (
	"regexp"
	"sort"
	"strings"
)

// ScoreTier maps a keyword score in [0,1] to one of five visual tiers.
func ScoreTier(score float64) int {
	switch {
	case score >= 0.8:
		return 5
	case score >= 0.6:
		return 4
	case score >= 0.4:
		return 3
	case score >= 0.2:
		return 2
	default:
		return 1
	}
}

var tokenPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9'-]{2,}`)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "that", "this", "with", "you", "your", "are", "was", "have", "has", "had",
		"from", "they", "their", "about", "there", "what", "when", "where", "which", "will", "would",
		"could", "should", "into", "just", "like", "more", "than", "then", "over", "very", "some", "such",
		"been", "being", "also", "but", "not", "its", "our", "out", "all", "can", "get", "got", "one",
		"two", "three", "how", "why", "who", "whom", "whose", "video", "today", "people", "thing", "things",
		"make", "made", "using",
	} {
		stopWords[w] = struct{}{}
	}
}

// DeriveKeywords extracts the topN most frequent content words from a
// transcript, skipping stop words and terms already present in the combined
// keyword set. Used when a video carries no per-video keywords of its own.
// Ties break lexicographically so output is stable across runs.
func DeriveKeywords(text string, combinedKeywords []string, topN int) []string {
	combined := make(map[string]struct{}, len(combinedKeywords))
	for _, k := range combinedKeywords {
		combined[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}

	counts := map[string]int{}
	for _, token := range tokenPattern.FindAllString(text, -1) {
		t := strings.ToLower(token)
		if _, stop := stopWords[t]; stop {
			continue
		}
		if _, dup := combined[t]; dup {
			continue
		}
		counts[t]++
	}

	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > topN {
		terms = terms[:topN]
	}
	return terms
}
