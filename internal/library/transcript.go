package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/clipreel/clipreel/internal/transcript"
)

// Transcript is the per-video transcription document the pipeline writes:
// full text plus timestamped segments for the karaoke view.
type Transcript struct {
	Text     string               `json:"text"`
	Segments []transcript.Segment `json:"segments"`
}

// Transcript fetches a video's transcription JSON. The stored path is either
// an HTTP URL into the library bucket or a legacy filesystem-relative path.
// An empty path returns nil without error; the karaoke view degrades to
// plain text.
func (l *Library) Transcript(ctx context.Context, jsonPath string) (*Transcript, error) {
	jsonPath = strings.TrimSpace(jsonPath)
	if jsonPath == "" {
		return nil, nil
	}

	var data []byte
	if strings.HasPrefix(jsonPath, "http://") || strings.HasPrefix(jsonPath, "https://") {
		url := l.resolver.Resolve(jsonPath)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("transcript request: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch transcript %s: %w", url, err)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch transcript %s: status %d", url, resp.StatusCode)
		}
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read transcript %s: %w", url, err)
		}
	} else {
		rel := strings.Replace(jsonPath, "test_downloads/", "downloads/", 1)
		full := filepath.Join(l.mediaDir, rel)
		var err error
		data, err = os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("read transcript %s: %w", full, err)
		}
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	// Whisper occasionally emits zero-length or reversed segments; drop
	// them so downstream code can rely on end >= start.
	valid := t.Segments[:0]
	for _, s := range t.Segments {
		if s.End >= s.Start {
			valid = append(valid, s)
		}
	}
	t.Segments = valid

	return &t, nil
}
