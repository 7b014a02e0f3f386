package scssgo

import (
	"io/fs"
	"net/http"
	"strings"
)

// NewMiddleware creates an HTTP middleware that compiles .scss files to CSS
// on-the-fly. It intercepts requests to files with a .scss extension,
// compiles them, and returns the resulting CSS with the appropriate
// Content-Type header.
//
// Parameters:
//   - basePath: the URL path prefix to match (e.g., "/assets/css")
//   - fileSystem: the filesystem to read .scss files from (e.g., os.DirFS("./assets/css"))
//
// Example usage with chi:
//
//	chi.Use(scssgo.NewMiddleware("/assets/css", os.DirFS("./assets/css")))
//
// When a request to /assets/css/style.scss is made, it will:
//  1. Check if the request path matches basePath and ends with .scss
//  2. Read the file from the provided filesystem
//  3. Compile it from SCSS to CSS
//  4. Return the compiled CSS with Content-Type: text/css
//  5. Pass requests that are not GET/HEAD, lie outside basePath or are not
//     .scss to the next handler; a missing .scss file gets 404 Not Found
func NewMiddleware(basePath string, fileSystem fs.FS) func(http.Handler) http.Handler {
	handler := NewHandler(fileSystem, basePath)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasPrefix(r.URL.Path, basePath) {
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasSuffix(r.URL.Path, ".scss") {
				next.ServeHTTP(w, r)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}
