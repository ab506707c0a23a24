package transcript

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseResponse decodes an /api/transcriptions payload, tolerating the loose
// shapes the upstream emits: segments and key_sentences are optional, numeric
// fields may be missing, and malformed list entries are dropped rather than
// failing the whole response. Validation happens here so the matching and
// planning code never sees a half-filled shape.
func ParseResponse(data []byte) (*Response, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("transcriptions response: invalid JSON")
	}
	root := gjson.ParseBytes(data)

	resp := &Response{Query: root.Get("query").String()}

	for _, v := range root.Get("videos").Array() {
		video := Video{
			VideoID:       v.Get("videoId").String(),
			Title:         v.Get("title").String(),
			Transcription: v.Get("transcription").String(),
			VideoPath:     strings.TrimSpace(v.Get("videoPath").String()),
			Keywords:      parseKeywords(v.Get("keywords")),
		}
		for _, s := range v.Get("segments").Array() {
			seg := Segment{
				Start: s.Get("start").Float(),
				End:   s.Get("end").Float(),
				Text:  s.Get("text").String(),
			}
			if !validSegment(seg) {
				continue
			}
			video.Segments = append(video.Segments, seg)
		}
		resp.Videos = append(resp.Videos, video)
	}

	c := root.Get("combined")
	resp.Combined = Combined{
		Keywords:           parseKeywords(c.Get("keywords")),
		Sentence:           c.Get("sentence").String(),
		CombinedVideoURL:   strings.TrimSpace(c.Get("combined_video_url").String()),
		RecombinedSentence: c.Get("recombined_sentence").Bool(),
		SentenceVersion:    strings.TrimSpace(c.Get("sentence_version").String()),
	}
	for _, ks := range c.Get("key_sentences").Array() {
		sentence := strings.TrimSpace(ks.Get("sentence").String())
		if sentence == "" {
			continue
		}
		item := CombinedKeySentence{
			Sentence:    sentence,
			Keyword:     strings.TrimSpace(ks.Get("keyword").String()),
			SourceTitle: strings.TrimSpace(ks.Get("source_title").String()),
		}
		if id := ks.Get("id"); id.Type == gjson.Number {
			n := int(id.Int())
			item.ID = &n
		}
		if si := ks.Get("source_index"); si.Type == gjson.Number {
			n := int(si.Int())
			item.SourceIndex = &n
		}
		resp.Combined.KeySentences = append(resp.Combined.KeySentences, item)
	}

	m := root.Get("meta")
	resp.Meta = Meta{
		LLM:          m.Get("llm").String(),
		ReplaceCount: int(m.Get("replaceCount").Int()),
	}
	for _, b := range m.Get("coverage").Array() {
		resp.Meta.Coverage = append(resp.Meta.Coverage, b.Bool())
	}

	return resp, nil
}

func parseKeywords(list gjson.Result) []Keyword {
	var out []Keyword
	for _, k := range list.Array() {
		term := strings.TrimSpace(k.Get("term").String())
		if term == "" {
			continue
		}
		out = append(out, Keyword{
			Term:  term,
			Score: k.Get("score").Float(),
			Count: int(k.Get("count").Int()),
		})
	}
	return out
}

func validSegment(s Segment) bool {
	if math.IsNaN(s.Start) || math.IsNaN(s.End) || math.IsInf(s.Start, 0) || math.IsInf(s.End, 0) {
		return false
	}
	return s.End >= s.Start
}
