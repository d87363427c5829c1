package httpapi

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// staticSite serves files under dir. Paths that do not name a file fall back to the
// site's index.html; /api paths never do.
func staticSite(dir string) http.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			jsonNotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			jsonMethodNotAllowed(w, r)
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if fi, err := os.Stat(name); err == nil {
			if !fi.IsDir() {
				http.ServeFile(w, r, name)
				return
			}
			if dirIndex := filepath.Join(name, "index.html"); fileExists(dirIndex) {
				http.ServeFile(w, r, dirIndex)
				return
			}
		}
		if !fileExists(index) {
			jsonNotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}

func fileExists(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && !fi.IsDir()
}
