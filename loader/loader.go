// Package loader resolves `@use`, `@forward` and `@import`
// URLs against a filesystem, implementing Sass's partial-
// file and extension-resolution conventions and caching each distinct
// module URL so `@use` only ever evaluates a stylesheet once no matter how
// many other stylesheets use it.
package loader

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Loader resolves stylesheet URLs against one or more load paths.
type Loader struct {
	fsys      fs.FS
	loadPaths []string

	// stack tracks URLs currently being loaded, to detect `@use`/`@import`
	// cycles (a module transitively using itself).
	stack []string
}

// New creates a Loader rooted at fsys, searching loadPaths (relative to
// fsys) in order in addition to the URL's own directory.
func New(fsys fs.FS, loadPaths ...string) *Loader {
	return &Loader{fsys: fsys, loadPaths: loadPaths}
}

// Resolved is one successfully located stylesheet: its canonical path
// (used as the cache/module-identity key) plus its text.
type Resolved struct {
	CanonicalPath string
	Text          string
	IsCSS         bool // true for a plain .css file, loaded without Sass syntax
}

// Resolve finds the file that `url` (written relative to `fromDir`) refers
// to, trying the partial (`_name`) form before the plain form, and each of
// .scss, .sass, .css in turn, then falling back to an index file
// (`_index.scss`/`index.scss`) if url names a directory.
func (l *Loader) Resolve(url, fromDir string) (Resolved, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "//") {
		return Resolved{}, fmt.Errorf("%q is not a loadable Sass URL (plain-CSS passthrough should not reach the loader)", url)
	}

	dirs := append([]string{fromDir}, l.loadPaths...)
	for _, dir := range dirs {
		if r, ok := l.tryDir(dir, url); ok {
			return r, nil
		}
	}
	return Resolved{}, fmt.Errorf("can't find stylesheet to import: %q", url)
}

func (l *Loader) tryDir(dir, url string) (Resolved, bool) {
	base := path.Join(dir, url)
	dirName, file := path.Split(base)

	candidates := []string{"_" + file, file}
	exts := []string{".scss", ".sass", ".css"}

	for _, cand := range candidates {
		for _, ext := range exts {
			p := path.Join(dirName, cand+extIfMissing(cand, ext))
			if text, ok := l.read(p); ok {
				return Resolved{CanonicalPath: path.Clean(p), Text: text, IsCSS: strings.HasSuffix(p, ".css")}, true
			}
		}
	}

	// Directory import: `@use "foo"` resolving to foo/_index.scss.
	for _, idx := range []string{"_index.scss", "_index.sass", "index.scss", "index.sass"} {
		p := path.Join(base, idx)
		if text, ok := l.read(p); ok {
			return Resolved{CanonicalPath: path.Clean(p), Text: text}, true
		}
	}

	return Resolved{}, false
}

func extIfMissing(name, ext string) string {
	if strings.HasSuffix(name, ".scss") || strings.HasSuffix(name, ".sass") || strings.HasSuffix(name, ".css") {
		return ""
	}
	return ext
}

func (l *Loader) read(p string) (string, bool) {
	clean := path.Clean(p)
	if strings.HasPrefix(clean, "../") || clean == ".." {
		return "", false
	}
	b, err := fs.ReadFile(l.fsys, clean)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Enter pushes canonicalPath onto the recursion guard stack, returning an
// error if it's already present (an import cycle).
func (l *Loader) Enter(canonicalPath string) error {
	for _, p := range l.stack {
		if p == canonicalPath {
			return fmt.Errorf("module loop: %s", formatCycle(append(l.stack, canonicalPath)))
		}
	}
	l.stack = append(l.stack, canonicalPath)
	return nil
}

// Leave pops the most recently entered path.
func (l *Loader) Leave() {
	if len(l.stack) > 0 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

func formatCycle(stack []string) string {
	return strings.Join(stack, " -> ")
}

// NamespaceFromURL derives the default `@use` namespace from a URL per the
// spec: the final path segment, minus extension and a leading underscore,
// stopping at the first dot.
func NamespaceFromURL(url string) string {
	_, file := path.Split(url)
	file = strings.TrimPrefix(file, "_")
	if i := strings.IndexByte(file, '.'); i >= 0 {
		file = file[:i]
	}
	return file
}
