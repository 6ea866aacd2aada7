package handler

import (
	"io/fs"
	"net/http"
	"strings"
)

// SPAHandler serves the embedded single-page app shell. Real files are
// served as-is; every other path gets index.html so the client router
// can take over (home, project list, certificate list, blog, blog post,
// admin login, admin dashboard, and its own not-found route).
func SPAHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" {
			if f, err := staticFS.Open(path); err == nil {
				f.Close()
				fileServer.ServeHTTP(w, r)
				return
			}
		}
		http.ServeFileFS(w, r, staticFS, "index.html")
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
