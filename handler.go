// Package scssgo is the module's root package: an http.Handler (and, in
// middleware.go, an http middleware) that compiles .scss files to CSS
// on-the-fly, the same "serve a stylesheet straight from its source"
// convenience the teacher's own root package offered for .less.
package scssgo

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/titpetric/scssgo/compiler"
)

// Error types for SCSS compilation and serving.
var (
	ErrNotFound          = errors.New("not found")
	ErrCompilationFailed = errors.New("compilation failed")
)

// Handler compiles and serves .scss files found under fileSystem.
type Handler struct {
	pathPrefix string
	fileSystem fs.FS
	style      compiler.Options
}

// NewHandler creates a new SCSS compilation handler.
// fileSystem is where to read .scss files from.
// pathPrefix is the URL path prefix to match and strip (e.g., "/assets/css").
func NewHandler(fileSystem fs.FS, pathPrefix string) http.Handler {
	return &Handler{
		pathPrefix: pathPrefix,
		fileSystem: fileSystem,
		style:      compiler.Options{},
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.pathPrefix != "" && !strings.HasPrefix(r.URL.Path, h.pathPrefix) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if !strings.HasSuffix(r.URL.Path, ".scss") {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	scssPath := strings.TrimPrefix(r.URL.Path, h.pathPrefix)
	if h.pathPrefix != "/" {
		scssPath = strings.TrimPrefix(scssPath, "/")
	}

	info, err := fs.Stat(h.fileSystem, scssPath)
	if err != nil || info.IsDir() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	c := compiler.New(h.style)
	c.SetEntryFile(h.fileSystem, scssPath, compiler.SyntaxSCSS)
	if err := c.Render(); err != nil {
		http.Error(w, "Compilation Error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if r.Method != http.MethodHead {
		w.Write([]byte(c.CSS()))
	}
}
