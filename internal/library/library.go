// Package library serves the downloaded-video index the pipeline maintains:
// a data.json listing every processed video with its media paths, transcript
// location, and keyword tags. The index lives either next to the web root on
// disk (legacy layout) or in the MinIO library bucket.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipreel/clipreel/internal/media"
)

var ErrNotFound = errors.New("library: entry not found")

// Tag is a per-video keyword from the index. Scores here are the pipeline's
// discrete 1-5 tiers, not the combined-extraction floats.
type Tag struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
	Count int    `json:"count"`
}

// Entry is one downloaded video in the index.
type Entry struct {
	Title     string `json:"title"`
	VideoPath string `json:"video_path"`
	JSONPath  string `json:"json_path"`
	ThumbPath string `json:"thumb_path"`
	AudioPath string `json:"audio_path,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Query     string `json:"query,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
	Keywords  []Tag  `json:"keywords"`
}

// VideoID derives a stable identifier from the media filename.
func (e Entry) VideoID() string {
	base := filepath.Base(e.VideoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ObjectStore is the slice of the storage client the library needs.
type ObjectStore interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// URLSigner presigns bucket GETs so browsers can stream media straight from
// the bucket without proxying the bytes through this process.
type URLSigner interface {
	GenerateDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type Config struct {
	// DataPaths are candidate local index locations, tried in order.
	DataPaths []string
	// Store and IndexKey locate the index in the library bucket when no
	// local copy exists.
	Store    ObjectStore
	IndexKey string
	// Signer presigns media downloads for bucket-backed deployments.
	Signer URLSigner
	// MediaDir is the root for legacy local media and transcript files.
	MediaDir string
	// HTTPClient fetches transcripts stored behind HTTP URLs.
	HTTPClient *http.Client
	Resolver   media.Resolver
}

type Library struct {
	dataPaths []string
	store     ObjectStore
	indexKey  string
	signer    URLSigner
	mediaDir  string
	client    *http.Client
	resolver  media.Resolver
}

func New(cfg Config) *Library {
	l := &Library{
		dataPaths: cfg.DataPaths,
		store:     cfg.Store,
		indexKey:  cfg.IndexKey,
		signer:    cfg.Signer,
		mediaDir:  cfg.MediaDir,
		client:    cfg.HTTPClient,
		resolver:  cfg.Resolver,
	}
	if l.indexKey == "" {
		l.indexKey = "data.json"
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: 30 * time.Second}
	}
	return l
}

// Entries loads the index, preferring local candidates over the bucket. The
// index is read per request so the pipeline can update it underneath us.
func (l *Library) Entries(ctx context.Context) ([]Entry, error) {
	var lastErr error
	for _, p := range l.dataPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			lastErr = err
			continue
		}
		return decodeIndex(data)
	}

	if l.store != nil {
		data, err := l.store.GetObject(ctx, l.indexKey)
		if err != nil {
			return nil, fmt.Errorf("library index: %w", err)
		}
		return decodeIndex(data)
	}

	if lastErr != nil {
		return nil, fmt.Errorf("library index: %w", lastErr)
	}
	return nil, fmt.Errorf("library index: no data paths configured")
}

// Entry returns the index entry at position idx.
func (l *Library) Entry(ctx context.Context, idx int) (Entry, error) {
	entries, err := l.Entries(ctx)
	if err != nil {
		return Entry{}, err
	}
	if idx < 0 || idx >= len(entries) {
		return Entry{}, ErrNotFound
	}
	return entries[idx], nil
}

const downloadURLExpiry = 15 * time.Minute

// DownloadURL resolves the playable URL for an entry's media. Bucket-backed
// deployments get a presigned GET against the public endpoint; otherwise the
// stored path is resolved the same way the list and detail views do.
func (l *Library) DownloadURL(ctx context.Context, e Entry) (string, error) {
	if l.signer != nil {
		if key := bucketKey(e.VideoPath); key != "" {
			return l.signer.GenerateDownloadURL(ctx, key, downloadURLExpiry)
		}
	}
	return l.resolver.Resolve(e.VideoPath), nil
}

// bucketKey derives the object key from a stored media path. Absolute URLs
// carry the bucket name as their first path segment; relative paths are keys
// already, modulo the legacy prefix.
func bucketKey(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		u, err := url.Parse(path)
		if err != nil {
			return ""
		}
		p := strings.TrimPrefix(u.Path, "/")
		if i := strings.IndexByte(p, '/'); i >= 0 {
			return p[i+1:]
		}
		return ""
	}
	path = strings.Replace(path, "test_downloads/", "downloads/", 1)
	return strings.TrimPrefix(path, "/")
}

// Ping reports whether the index is reachable, for the health endpoint.
func (l *Library) Ping(ctx context.Context) error {
	_, err := l.Entries(ctx)
	return err
}

func decodeIndex(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode library index: %w", err)
	}
	return entries, nil
}
