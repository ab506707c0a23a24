package server

import (
	"io/fs"
	"net/http"
	"strings"
)

// shellFileServer serves the embedded front-end shell, falling back to
// index.html for client-routed paths.
type shellFileServer struct {
	fileServer http.Handler
	fileSystem fs.FS
}

func newShellFileServer(fsys fs.FS) *shellFileServer {
	return &shellFileServer{
		fileServer: http.FileServer(http.FS(fsys)),
		fileSystem: fsys,
	}
}

func (s *shellFileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" {
		path = "index.html"
	}

	_, err := fs.Stat(s.fileSystem, path)
	if err != nil {
		r.URL.Path = "/"
	}

	s.fileServer.ServeHTTP(w, r)
}
