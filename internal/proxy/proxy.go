// Package proxy forwards the review UI's API calls to the processing
// backend. Combined-keyword extraction upstream can take tens of seconds,
// so transcriptions responses are cached briefly in memory and requests get
// a single attempt per upstream with a bounded timeout. No retry loops.
package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tidwall/gjson"

	"github.com/clipreel/clipreel/internal/httputil"
)

const (
	defaultTimeout  = 20 * time.Second
	defaultCacheTTL = 60 * time.Second
)

type cachedResponse struct {
	body        []byte
	contentType string
}

type Handler struct {
	upstreams []string
	client    *http.Client
	cache     *gocache.Cache
	timeout   time.Duration
}

type Config struct {
	// Upstreams are backend base URLs tried in order until one answers.
	Upstreams []string
	// Timeout bounds a whole transcriptions request across upstreams.
	Timeout time.Duration
	// CacheTTL is how long a successful transcriptions response is
	// served from memory for the same query and limit.
	CacheTTL time.Duration
	// Client overrides the HTTP client, for tests.
	Client *http.Client
}

func New(cfg Config) *Handler {
	h := &Handler{
		upstreams: make([]string, 0, len(cfg.Upstreams)),
		client:    cfg.Client,
		timeout:   cfg.Timeout,
	}
	for _, u := range cfg.Upstreams {
		if base := strings.TrimRight(strings.TrimSpace(u), "/"); base != "" {
			h.upstreams = append(h.upstreams, base)
		}
	}
	if h.timeout <= 0 {
		h.timeout = defaultTimeout
	}
	if h.client == nil {
		h.client = &http.Client{}
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	h.cache = gocache.New(ttl, 2*ttl)
	return h
}

// Transcriptions proxies GET /api/transcriptions to the first upstream that
// answers, forwarding status, body, and content type as-is.
func (h *Handler) Transcriptions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		httputil.WriteDetail(w, http.StatusBadRequest, "query is required")
		return
	}
	limit := r.URL.Query().Get("limit")
	if limit == "" {
		limit = "5"
	}

	cacheKey := query + "|" + limit
	if v, ok := h.cache.Get(cacheKey); ok {
		cached := v.(cachedResponse)
		w.Header().Set("Content-Type", cached.contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached.body)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var lastErr error
	for _, base := range h.upstreams {
		target := fmt.Sprintf("%s/api/transcriptions?query=%s&limit=%s",
			base, url.QueryEscape(query), url.QueryEscape(limit))
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			lastErr = err
			continue
		}
		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/json"
		}
		if resp.StatusCode == http.StatusOK {
			h.cache.Set(cacheKey, cachedResponse{body: body, contentType: contentType}, gocache.DefaultExpiration)
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(body)
		return
	}

	message := "upstream request failed"
	if lastErr != nil {
		message = lastErr.Error()
	}
	httputil.WriteDetail(w, http.StatusBadGateway, message)
}

// Batch forwards a batch-processing submission to the backend's /batch
// endpoint. The body passes through untouched beyond a JSON validity check.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteDetail(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if !gjson.ValidBytes(body) {
		httputil.WriteDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(h.upstreams) == 0 {
		httputil.WriteDetail(w, http.StatusBadGateway, "no backend configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.upstreams[0]+"/batch", bytes.NewReader(body))
	if err != nil {
		httputil.WriteDetail(w, http.StatusBadGateway, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		httputil.WriteDetail(w, http.StatusBadGateway, err.Error())
		return
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		httputil.WriteDetail(w, http.StatusBadGateway, err.Error())
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(respBody)
}
