package media

import (
	"regexp"
	"strings"
)

var videoExtPattern = regexp.MustCompile(`(?i)(\.(mp4|webm|mkv|mov|avi))([?#].*)?$`)

var audioExts = []string{".m4a", ".mp3", ".wav", ".ogg", ".opus"}

// AudioCandidates derives the ordered list of URLs worth probing for an
// audio-only rendition of a video: the /audios/ sibling route first with
// common audio extensions substituted, then the video itself as a last
// resort. Duplicates are removed preserving order.
func (r Resolver) AudioCandidates(videoPath string) []string {
	video := r.Resolve(videoPath)
	if video == "" {
		return nil
	}

	var candidates []string
	audioRoute := strings.Replace(video, "/videos/", "/audios/", 1)
	if audioRoute != video {
		candidates = append(candidates, audioRoute)
		if videoExtPattern.MatchString(audioRoute) {
			for _, ext := range audioExts {
				candidates = append(candidates, videoExtPattern.ReplaceAllString(audioRoute, ext+"${3}"))
			}
		}
	}
	candidates = append(candidates, video)

	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
