// Package parser turns a scanner token stream into the ast node families:
// statements, expressions, and (once interpolation is resolved) selectors.
// One Parser handles one source file; nested sources (partials pulled in by
// the loader) each get their own Parser feeding into the same ast.Stylesheet
// construction the loader performs.
package parser

import (
	"fmt"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/scanner"
	"github.com/titpetric/scssgo/source"
)

// Parser is a cursor over one source's token stream.
type Parser struct {
	entry  *source.Entry
	srcID  ast.SourceID
	toks   []scanner.Token
	pos    int
	errs   []error
	depth  int
}

// maxParseDepth bounds how deeply parens/brackets, interpolation holes,
// nested blocks, and nested selector-pseudo arguments may recurse into one
// another. Pathological input (megabytes of "((((...))))") would otherwise
// overflow the Go stack instead of failing as an ordinary parse error.
const maxParseDepth = 250

// enterDepth and exitDepth bracket every genuinely recursive descent point
// (parsePrimary, parseBlock, parsePseudoSelector's functional argument).
// They share one counter: the invariant is a bound on total nesting, not a
// separate budget per construct kind.
func (p *Parser) enterDepth() error {
	p.depth++
	if p.depth > maxParseDepth {
		return p.errorf(p.peek(), "nesting too deep (recursion limit exceeded)")
	}
	return nil
}

func (p *Parser) exitDepth() { p.depth-- }

// New tokenizes entry's text (via the scanner) and returns a Parser
// positioned at the first significant token.
func New(entry *source.Entry, srcID ast.SourceID) *Parser {
	all := scanner.New(entry.Text).All()
	return &Parser{entry: entry, srcID: srcID, toks: all}
}

func (p *Parser) span(start, end scanner.Token) ast.Span {
	return ast.Span{
		Source: p.srcID,
		Start:  p.entry.Offset(start.Start),
		Length: end.End - start.Start,
	}
}

func (p *Parser) spanOf(t scanner.Token) ast.Span { return p.span(t, t) }

func (p *Parser) peek() scanner.Token {
	i := p.pos
	for i < len(p.toks) && isSkippable(p.toks[i].Type) {
		i++
	}
	if i >= len(p.toks) {
		return scanner.Token{Type: scanner.EOF}
	}
	return p.toks[i]
}

// peekRaw returns the token at the cursor including comments, used by the
// statement loop to turn comments into LoudComment/SilentComment nodes.
func (p *Parser) peekRaw() scanner.Token {
	if p.pos >= len(p.toks) {
		return scanner.Token{Type: scanner.EOF}
	}
	return p.toks[p.pos]
}

func isSkippable(t scanner.Type) bool {
	return t == scanner.CommentLine || t == scanner.CommentBlock
}

// collectComments gathers and consumes any comment tokens sitting at the
// cursor and returns them. advance calls it and discards the result, so
// comments inside a statement are skipped; comments at statement level are
// consumed by the statement loop through peekRaw/advanceRaw instead.
func (p *Parser) collectComments() []scanner.Token {
	var out []scanner.Token
	for p.pos < len(p.toks) && isSkippable(p.toks[p.pos].Type) {
		out = append(out, p.toks[p.pos])
		p.pos++
	}
	return out
}

func (p *Parser) advance() scanner.Token {
	p.collectComments()
	if p.pos >= len(p.toks) {
		return scanner.Token{Type: scanner.EOF}
	}
	t := p.toks[p.pos]
	p.pos++
	return t
}

// advanceRaw consumes exactly the token sitting at the cursor, comment or
// not, used by the statement loop to turn a comment token into its own
// LoudComment/SilentComment node instead of having it silently skipped the
// way peek/advance do everywhere else.
func (p *Parser) advanceRaw() scanner.Token {
	if p.pos >= len(p.toks) {
		return scanner.Token{Type: scanner.EOF}
	}
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *Parser) check(t scanner.Type) bool { return p.peek().Type == t }

func (p *Parser) match(t scanner.Type) (scanner.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	return scanner.Token{}, false
}

func (p *Parser) expect(t scanner.Type) (scanner.Token, error) {
	if tok, ok := p.match(t); ok {
		return tok, nil
	}
	got := p.peek()
	return scanner.Token{}, p.errorf(got, "expected %s, found %q", t, got.Raw)
}

func (p *Parser) errorf(at scanner.Token, format string, args ...any) error {
	pos := p.entry.Offset(at.Start)
	return fmt.Errorf("%s:%s: %s", p.entry.Path, pos, fmt.Sprintf(format, args...))
}

func (p *Parser) atEnd() bool { return p.peek().Type == scanner.EOF }

// save/restore implement small-scale backtracking for constructs whose
// disambiguation needs lookahead past what a single peek can resolve (a
// `$name:` keyword argument vs. a positional argument that starts with a
// variable, for instance).
func (p *Parser) save() int      { return p.pos }
func (p *Parser) restore(m int)  { p.pos = m }
