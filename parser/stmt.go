package parser

import (
	"strings"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/scanner"
)

// ParseStylesheet parses the whole token stream as a top-level stylesheet
// body (no enclosing braces).
func (p *Parser) ParseStylesheet() (*ast.Stylesheet, error) {
	start := p.peek()
	body, err := p.parseStatements(false)
	if err != nil {
		return nil, err
	}
	end := p.lastConsumed()
	sheet := &ast.Stylesheet{Body: body}
	sheet.Span = p.span(start, end)
	return sheet, nil
}

// parseStatements reads statements until EOF (top level) or a closing brace
// (inBlock == true, which is consumed by the caller after this returns).
func (p *Parser) parseStatements(inBlock bool) (*ast.Block, error) {
	start := p.peek()
	var children []ast.Statement
	for {
		if tok := p.peekRaw(); tok.Type == scanner.CommentLine || tok.Type == scanner.CommentBlock {
			children = append(children, p.commentStatement(p.advanceRaw()))
			continue
		}
		if p.atEnd() {
			break
		}
		if inBlock && p.check(scanner.RBrace) {
			break
		}
		if _, ok := p.match(scanner.Semicolon); ok {
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			children = append(children, stmt)
		}
	}
	end := p.lastConsumed()
	return &ast.Block{Span: p.span(start, end), Children: children}, nil
}

// commentStatement turns one raw comment token into a LoudComment (kept in
// CSS output, possibly with interpolation) or SilentComment (`//`, dropped
// from output, kept in the tree only so tooling built on this parser can see
// it).
func (p *Parser) commentStatement(tok scanner.Token) ast.Statement {
	if tok.Type == scanner.CommentLine {
		n := &ast.SilentComment{Text: tok.Raw}
		n.Span = p.spanOf(tok)
		return n
	}
	n := &ast.LoudComment{Text: &ast.Interpolation{Span: p.spanOf(tok), Parts: []string{tok.Raw}, PlainOK: true}}
	n.Span = p.spanOf(tok)
	return n
}

// parseBlock parses a full `{ ... }` block.
func (p *Parser) parseBlock() (*ast.Block, error) {
	if err := p.enterDepth(); err != nil {
		return nil, err
	}
	defer p.exitDepth()

	if _, err := p.expect(scanner.LBrace); err != nil {
		return nil, err
	}
	body, err := p.parseStatements(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(scanner.RBrace); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()

	switch tok.Type {
	case scanner.AtKeyword:
		return p.parseAtRule()
	case scanner.Variable:
		if p.isAssignmentAhead() {
			return p.parseAssignStatement()
		}
	}

	return p.parseStyleRuleOrDeclaration()
}

// isAssignmentAhead looks past the variable token for a `:`, which is the
// only construct a bare variable can legally start at statement level.
func (p *Parser) isAssignmentAhead() bool {
	save := p.save()
	defer p.restore(save)
	p.advance() // $var
	_, ok := p.match(scanner.Colon)
	return ok
}

func (p *Parser) parseAssignStatement() (ast.Statement, error) {
	start := p.advance() // $var
	name := start.Value
	if _, err := p.expect(scanner.Colon); err != nil {
		return nil, err
	}
	val, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	isDefault, isGlobal := p.consumeFlags()
	n := &ast.AssignStatement{Name: name, Value: val, Default: isDefault, Global: isGlobal}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

// consumeFlags eats trailing `!default`/`!global` markers, which lex as a
// lone Not token (the scanner emits Not for a bare `!` not followed by
// `=`) directly adjacent to an identifier.
func (p *Parser) consumeFlags() (isDefault, isGlobal bool) {
	for p.check(scanner.Not) {
		save := p.save()
		bang := p.advance()
		if !p.check(scanner.Ident) || !adjacent(bang, p.peek()) {
			p.restore(save)
			break
		}
		word := p.advance()
		switch word.Value {
		case "default":
			isDefault = true
		case "global":
			isGlobal = true
		default:
			p.restore(save)
			return
		}
	}
	return
}

// preludeTok pairs a raw token with whether a gap (originally whitespace)
// preceded it, since the scanner discards whitespace itself; reconstructed
// text needs that one bit back to tell `a.b` (compound) from `a .b`
// (descendant combinator) when it's re-tokenized later as selector text.
type preludeTok struct {
	tok    scanner.Token
	hadGap bool
}

// parseStyleRuleOrDeclaration scans the prelude up to the statement's
// terminator (`;`, `{`, or the enclosing `}`) and decides, from where that
// terminator fell, whether the prelude was a selector or a property name.
// Ordinary nested rules (`a:hover { ... }`) and declarations (`color: red;`)
// are both just "some text, then a terminator"; the two constructs are
// disambiguated by the shape of what's immediately before the terminator,
// not by the presence of a colon (selectors contain colons too, via
// pseudo-classes).
func (p *Parser) parseStyleRuleOrDeclaration() (ast.Statement, error) {
	start := p.peek()
	prelude, colonAt, stop := p.scanPrelude()

	if stop.Type == scanner.Semicolon || stop.Type == scanner.RBrace || stop.Type == scanner.EOF {
		return p.finishDeclaration(start, prelude, colonAt, nil)
	}

	// stop.Type == LBrace. `prop: {` (colon is the prelude's last token) is
	// the nested-property shorthand; anything else is a selector.
	if colonAt == len(prelude)-1 {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return p.finishDeclaration(start, prelude[:colonAt], -1, body)
	}

	selText := p.preludeToInterpolation(prelude)
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.StyleRule{SelectorText: selText, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) finishDeclaration(start scanner.Token, prelude []preludeTok, colonAt int, body *ast.Block) (ast.Statement, error) {
	if body == nil {
		p.match(scanner.Semicolon)
	}
	if colonAt < 0 {
		prop := p.preludeToInterpolation(prelude)
		n := &ast.Declaration{Property: prop, Body: body}
		n.Span = p.span(start, p.lastConsumed())
		return n, nil
	}
	prop := p.preludeToInterpolation(prelude[:colonAt])
	var value ast.Expr
	if body == nil && colonAt+1 <= len(prelude)-1 {
		sub := p.subParserFromTokens(prelude[colonAt+1:])
		v, err := sub.ParseExpression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	n := &ast.Declaration{Property: prop, Value: value, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

// scanPrelude consumes tokens up to (but not including) the next `;`, `{`,
// or `}` that occurs outside any parenthesis/bracket/interpolation nesting
// (so a function call's or attribute selector's internal punctuation, or a
// literal `{` inside a `#{...}` hole, is never mistaken for the statement
// terminator), returning the index of the first such top-level colon, or
// -1 if none appeared.
func (p *Parser) scanPrelude() ([]preludeTok, int, scanner.Token) {
	var out []preludeTok
	depth := 0
	interpDepth := 0
	colonAt := -1
	prevEnd := -1
	for {
		tok := p.peek()
		if tok.Type == scanner.EOF {
			return out, colonAt, tok
		}
		if depth == 0 && interpDepth == 0 &&
			(tok.Type == scanner.Semicolon || tok.Type == scanner.LBrace || tok.Type == scanner.RBrace) {
			return out, colonAt, tok
		}
		gap := prevEnd >= 0 && tok.Start != prevEnd
		p.advance()
		out = append(out, preludeTok{tok: tok, hadGap: gap})
		prevEnd = tok.End
		switch tok.Type {
		case scanner.LParen, scanner.LBracket:
			depth++
		case scanner.RParen, scanner.RBracket:
			if depth > 0 {
				depth--
			}
		case scanner.InterpStart:
			interpDepth++
		case scanner.InterpEnd:
			if interpDepth > 0 {
				interpDepth--
			}
		case scanner.Colon:
			if depth == 0 && interpDepth == 0 && colonAt < 0 {
				colonAt = len(out) - 1
			}
		}
	}
}

// preludeToInterpolation turns a captured prelude token slice into an
// Interpolation, reconstructing a single space wherever a gap had been (the
// scanner keeps no whitespace token, only byte adjacency) and handing each
// `#{...}` hole's inner tokens to the ordinary expression grammar.
func (p *Parser) preludeToInterpolation(toks []preludeTok) *ast.Interpolation {
	var parts []string
	var exprs []ast.Expr
	var buf strings.Builder
	flush := func() { parts = append(parts, buf.String()); buf.Reset() }

	i := 0
	for i < len(toks) {
		pt := toks[i]
		if pt.tok.Type == scanner.InterpStart {
			depth := 1
			j := i + 1
			for j < len(toks) && depth > 0 {
				switch toks[j].tok.Type {
				case scanner.InterpStart:
					depth++
				case scanner.InterpEnd:
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			flush()
			inner := p.subParserFromTokens(toks[i+1 : j])
			if expr, err := inner.ParseExpression(); err == nil {
				exprs = append(exprs, expr)
			} else {
				exprs = append(exprs, nullLit(ast.Span{}))
			}
			i = j + 1
			continue
		}
		if pt.hadGap && buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(pt.tok.Raw)
		i++
	}
	flush()
	return &ast.Interpolation{Parts: parts, Exprs: exprs, PlainOK: len(exprs) == 0}
}

// subParserFromTokens builds a throwaway Parser over a slice of
// already-scanned tokens (plus a trailing EOF), so a prelude segment (a
// declaration's value, or the inside of a `#{...}` hole) can be re-parsed
// with the ordinary expression grammar without re-tokenizing source text.
func (p *Parser) subParserFromTokens(toks []preludeTok) *Parser {
	raw := make([]scanner.Token, 0, len(toks)+1)
	for _, pt := range toks {
		raw = append(raw, pt.tok)
	}
	raw = append(raw, scanner.Token{Type: scanner.EOF})
	return &Parser{entry: p.entry, srcID: p.srcID, toks: raw}
}
