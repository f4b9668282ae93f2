package server

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// WithUI serves the single-page UI from fsys at /. Without it, / is a 404.
func WithUI(fsys fs.FS) Option {
	return func(s *Server) { s.ui = fsys }
}

// handleUI serves files from the UI filesystem. Unknown extensionless paths
// get index.html; a missing asset stays a 404.
func (s *Server) handleUI(w http.ResponseWriter, r *http.Request) {
	if s.ui == nil {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}

	if st, err := fs.Stat(s.ui, name); err != nil || st.IsDir() {
		if path.Ext(name) != "" {
			http.NotFound(w, r)
			return
		}
		name = "index.html"
	}

	if name == "index.html" {
		w.Header().Set("Cache-Control", "no-cache")
	}
	http.ServeFileFS(w, r, s.ui, name)
}
