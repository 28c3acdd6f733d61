// ABOUTME: File server for the embedded JS and CSS with explicit content types
// ABOUTME: Assets are not content-hashed, so clients revalidate on every load

package webui

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

// mimeFromExt returns the MIME type for a file extension.
// Falls back to the standard library's database, then application/octet-stream.
func mimeFromExt(ext string) string {
	switch ext {
	case ".js", ".mjs":
		return "application/javascript"
	case ".css":
		return "text/css; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}

// staticHandler serves the embedded static directory. Paths are relative to
// it, so strip /static/ before calling.
func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("webui: failed to create static sub filesystem: " + err.Error())
	}
	fileServer := http.FileServerFS(sub)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ext := strings.ToLower(path.Ext(r.URL.Path)); ext != "" {
			w.Header().Set("Content-Type", mimeFromExt(ext))
		}
		w.Header().Set("Cache-Control", "no-cache")

		fileServer.ServeHTTP(w, r)
	})
}
