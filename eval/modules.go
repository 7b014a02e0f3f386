package eval

import (
	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/parser"
	"github.com/titpetric/scssgo/source"
)

// parseSheet parses one already-registered source entry into a Stylesheet.
// @use/@forward/@import always resolve relative to "." (the entry point's
// own directory, plus configured load paths) rather than tracking each
// loaded file's own directory for further relative lookups; a stylesheet
// that @uses a sibling of an @use'd file rather than of the entry point is
// the one case this simplification misses.
func parseSheet(entry *source.Entry) (*ast.Stylesheet, error) {
	p := parser.New(entry, entry.ID)
	return p.ParseStylesheet()
}
