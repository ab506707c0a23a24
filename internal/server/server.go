package server

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clipreel/clipreel/internal/library"
	"github.com/clipreel/clipreel/internal/proxy"
	"github.com/clipreel/clipreel/internal/ratelimit"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Proxy   *proxy.Handler
	Library *library.Handler
	Pinger  Pinger
	WebFS   fs.FS
	// MediaDir serves legacy local downloads when set; bucket-hosted
	// deployments leave it empty.
	MediaDir string
}

type Server struct {
	router         chi.Router
	proxyHandler   *proxy.Handler
	libraryHandler *library.Handler
	pinger         Pinger
	webFS          fs.FS
	mediaDir       string
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(slogMiddleware)
	r.Use(securityHeaders)

	s := &Server{
		router:         r,
		proxyHandler:   cfg.Proxy,
		libraryHandler: cfg.Library,
		pinger:         cfg.Pinger,
		webFS:          cfg.WebFS,
		mediaDir:       cfg.MediaDir,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)

	if s.proxyHandler != nil {
		s.router.Get("/api/transcriptions", s.proxyHandler.Transcriptions)

		batchLimiter := ratelimit.NewLimiter(0.2, 3)
		s.router.With(batchLimiter.Middleware).Post("/api/batch", s.proxyHandler.Batch)
		s.router.With(batchLimiter.Middleware).Post("/batch", s.proxyHandler.Batch)
	}

	if s.libraryHandler != nil {
		s.router.Route("/api/library", func(r chi.Router) {
			r.Get("/", s.libraryHandler.List)
			r.Get("/transcripts.txt", s.libraryHandler.AllTranscriptsText)
			r.Get("/{id}", s.libraryHandler.Detail)
			r.Get("/{id}/download", s.libraryHandler.Download)
			r.Get("/{id}/transcript.txt", s.libraryHandler.TranscriptText)
		})
		s.router.Get("/api/audio", s.libraryHandler.AudioRecords)
	}

	if s.mediaDir != "" {
		files := http.StripPrefix("/downloads/", http.FileServer(http.Dir(s.mediaDir)))
		s.router.Get("/downloads/*", files.ServeHTTP)
	}

	if s.webFS != nil {
		shell := newShellFileServer(s.webFS)
		s.router.NotFound(shell.ServeHTTP)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
