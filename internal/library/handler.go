package library

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clipreel/clipreel/internal/httputil"
	"github.com/clipreel/clipreel/internal/media"
)

type Handler struct {
	lib      *Library
	resolver media.Resolver
}

func NewHandler(lib *Library, resolver media.Resolver) *Handler {
	return &Handler{lib: lib, resolver: resolver}
}

type tagItem struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
	Count int    `json:"count"`
	Tier  int    `json:"tier"`
}

type listItem struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Keywords     []tagItem `json:"keywords"`
}

// List serves the home grid: every indexed video with its thumbnail and
// keyword tags.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lib.Entries(r.Context())
	if err != nil {
		slog.Error("library list failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load video library")
		return
	}

	items := make([]listItem, 0, len(entries))
	for i, e := range entries {
		item := listItem{
			ID:           i,
			Title:        e.Title,
			ThumbnailURL: h.resolver.Resolve(e.ThumbPath),
			Keywords:     make([]tagItem, 0, len(e.Keywords)),
		}
		for _, t := range e.Keywords {
			item.Keywords = append(item.Keywords, tagItem{
				Word:  t.Word,
				Score: t.Score,
				Count: t.Count,
				Tier:  tagTier(t.Score),
			})
		}
		items = append(items, item)
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

type detailResponse struct {
	ID          int         `json:"id"`
	VideoID     string      `json:"videoId"`
	Title       string      `json:"title"`
	VideoURL    string      `json:"videoUrl"`
	PosterURL   string      `json:"posterUrl,omitempty"`
	InitialTime float64     `json:"initialTime,omitempty"`
	Transcript  *Transcript `json:"transcript"`
}

// Detail serves one video's playback data for the karaoke view. A missing
// transcript is not an error; the view falls back to plain playback.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	entry, err := h.lib.Entry(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	if err != nil {
		slog.Error("library detail failed", "id", id, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load video library")
		return
	}

	t, err := h.lib.Transcript(r.Context(), entry.JSONPath)
	if err != nil {
		slog.Warn("transcript unavailable", "id", id, "path", entry.JSONPath, "error", err)
		t = nil
	}

	resp := detailResponse{
		ID:         id,
		VideoID:    entry.VideoID(),
		Title:      entry.Title,
		VideoURL:   h.resolver.Resolve(entry.VideoPath),
		PosterURL:  h.resolver.Resolve(entry.ThumbPath),
		Transcript: t,
	}
	if raw := r.URL.Query().Get("t"); raw != "" {
		if seconds, err := strconv.ParseFloat(raw, 64); err == nil && seconds > 0 {
			resp.InitialTime = seconds
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Download redirects to the entry's playable media URL, presigned when the
// library is bucket-backed so the browser streams straight from the bucket.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	entry, err := h.lib.Entry(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load video library")
		return
	}

	target, err := h.lib.DownloadURL(r.Context(), entry)
	if err != nil {
		slog.Error("media download url failed", "id", id, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to resolve media")
		return
	}
	if target == "" {
		httputil.WriteError(w, http.StatusNotFound, "media not available")
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// TranscriptText serves one video's transcript as a plain-text download.
func (h *Handler) TranscriptText(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	entry, err := h.lib.Entry(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load video library")
		return
	}

	t, err := h.lib.Transcript(r.Context(), entry.JSONPath)
	if err != nil || t == nil {
		httputil.WriteError(w, http.StatusNotFound, "transcript not available")
		return
	}

	writeTextAttachment(w, fmt.Sprintf("transcript-%s.txt", entry.VideoID()), t.Text)
}

// AllTranscriptsText serves every available transcript concatenated, the
// same format the download-all button produces.
func (h *Handler) AllTranscriptsText(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lib.Entries(r.Context())
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load video library")
		return
	}

	var sections []string
	for _, e := range entries {
		t, err := h.lib.Transcript(r.Context(), e.JSONPath)
		if err != nil || t == nil || t.Text == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("=== %s ===\n\n%s", e.Title, t.Text))
	}

	writeTextAttachment(w, "transcriptions.txt", strings.Join(sections, "\n\n---\n\n"))
}

type audioRecord struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	VideoURL     string   `json:"videoUrl"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	AudioSources []string `json:"audioSources"`
	Summary      string   `json:"summary,omitempty"`
	Query        string   `json:"query,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

// AudioRecords serves the audio review list, newest first. Each record
// carries the ordered candidate URLs to probe for an audio-only rendition.
func (h *Handler) AudioRecords(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lib.Entries(r.Context())
	if err != nil {
		slog.Error("audio records failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load video library")
		return
	}

	records := make([]audioRecord, 0, len(entries))
	for i, e := range entries {
		sourcePath := e.AudioPath
		if sourcePath == "" {
			sourcePath = e.VideoPath
		}
		records = append(records, audioRecord{
			ID:           i,
			Title:        e.Title,
			VideoURL:     h.resolver.Resolve(e.VideoPath),
			ThumbnailURL: h.resolver.Resolve(e.ThumbPath),
			AudioSources: h.resolver.AudioCandidates(sourcePath),
			Summary:      e.Summary,
			Query:        e.Query,
			UpdatedAt:    e.UpdatedAt,
		})
	}

	sort.SliceStable(records, func(a, b int) bool {
		return parseUpdatedAt(records[a].UpdatedAt).After(parseUpdatedAt(records[b].UpdatedAt))
	})

	httputil.WriteJSON(w, http.StatusOK, records)
}

// tagTier clamps the index's discrete 1-5 keyword scores into a tier.
func tagTier(score int) int {
	switch {
	case score >= 5:
		return 5
	case score <= 1:
		return 1
	default:
		return score
	}
}

func parseUpdatedAt(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func writeTextAttachment(w http.ResponseWriter, filename, content string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}
