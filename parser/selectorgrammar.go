package parser

import (
	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/scanner"
)

// ParseSelectorList parses already-interpolation-resolved selector text
// (the literal a style rule's header reduces to once every `#{...}` hole
// has been substituted) into a structured selector tree. baseOffset is
// where text begins within the Parser's own source, so spans built here
// line up with the rest of the file for diagnostics.
//
// Selector parsing happens as a second pass over re-tokenized text rather
// than directly off the main token stream, because a style rule's
// selector can't be structurally understood until its interpolation
// holes are filled in (a selector like `.#{$name}-item` is meaningless
// as raw tokens until $name's value is known).
func (p *Parser) ParseSelectorList(text string, baseOffset int) (*ast.SelectorList, error) {
	toks := scanner.New(text).All()
	for i := range toks {
		toks[i].Start += baseOffset
		toks[i].End += baseOffset
	}
	sub := &Parser{entry: p.entry, srcID: p.srcID, toks: toks}
	return sub.parseSelectorList()
}

func (p *Parser) parseSelectorList() (*ast.SelectorList, error) {
	start := p.peek()
	var members []*ast.ComplexSelector
	for {
		m, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		if _, ok := p.match(scanner.Comma); !ok {
			break
		}
	}
	end := p.lastConsumed()
	return &ast.SelectorList{Span: p.span(start, end), Members: members}, nil
}

func (p *Parser) parseComplexSelector() (*ast.ComplexSelector, error) {
	start := p.peek()
	var components []ast.ComplexComponent
	leading := ""
	if c, ok := combinatorAt(p.peek()); ok {
		leading = c
		p.advance()
	}

	prevEnd := -1
	for {
		compound, err := p.parseCompoundSelector()
		if err != nil {
			return nil, err
		}
		components = append(components, ast.ComplexComponent{Combinator: "", Compound: compound})
		prevEnd = p.lastConsumed().End

		if c, ok := combinatorAt(p.peek()); ok {
			p.advance()
			next, err := p.parseCompoundSelector()
			if err != nil {
				return nil, err
			}
			components = append(components, ast.ComplexComponent{Combinator: c, Compound: next})
			prevEnd = p.lastConsumed().End
			continue
		}

		if !startsSimpleSelector(p.peek()) {
			break
		}
		// A gap between the previous compound and the next simple-selector
		// token means a descendant combinator; no gap would mean the
		// compound parser above should already have consumed it.
		if p.peek().Start <= prevEnd {
			break
		}
	}
	end := p.lastConsumed()
	return &ast.ComplexSelector{Span: p.span(start, end), Components: components, LeadingCombinator: leading}, nil
}

func combinatorAt(t scanner.Token) (string, bool) {
	switch t.Type {
	case scanner.Greater:
		return ">", true
	case scanner.Tilde:
		return "~", true
	case scanner.Plus:
		return "+", true
	}
	return "", false
}

func startsSimpleSelector(t scanner.Token) bool {
	switch t.Type {
	case scanner.Ident, scanner.Star, scanner.Dot, scanner.Hash, scanner.Placeholder,
		scanner.Ampersand, scanner.Colon, scanner.LBracket, scanner.InterpStart:
		return true
	}
	return false
}

func (p *Parser) parseCompoundSelector() (*ast.CompoundSelector, error) {
	start := p.peek()
	var simples []ast.SimpleSelector
	prevEnd := -1
	for startsSimpleSelector(p.peek()) {
		if prevEnd >= 0 && p.peek().Start != prevEnd {
			break
		}
		s, err := p.parseSimpleSelector()
		if err != nil {
			return nil, err
		}
		simples = append(simples, s)
		prevEnd = p.lastConsumed().End
	}
	if len(simples) == 0 {
		return nil, p.errorf(p.peek(), "expected a selector, found %q", p.peek().Raw)
	}
	end := p.lastConsumed()
	return &ast.CompoundSelector{Span: p.span(start, end), Simples: simples}, nil
}

func (p *Parser) parseSimpleSelector() (ast.SimpleSelector, error) {
	tok := p.peek()
	switch tok.Type {
	case scanner.Star:
		p.advance()
		return typeUniversal(p.spanOf(tok)), nil
	case scanner.Dot:
		p.advance()
		name, err := p.parseSimpleName()
		if err != nil {
			return nil, err
		}
		return classSelector(p.span(tok, p.lastConsumed()), name), nil
	case scanner.Hash:
		p.advance()
		name, err := p.parseSimpleName()
		if err != nil {
			return nil, err
		}
		return idSelector(p.span(tok, p.lastConsumed()), name), nil
	case scanner.Placeholder:
		p.advance()
		in := &ast.Interpolation{Span: p.spanOf(tok), Parts: []string{tok.Value}, PlainOK: true}
		return placeholderSelector(p.spanOf(tok), in), nil
	case scanner.Ampersand:
		p.advance()
		var suffix *ast.Interpolation
		if startsSimpleNameContinuation(p.peek()) && adjacent(tok, p.peek()) {
			s, err := p.parseSimpleName()
			if err != nil {
				return nil, err
			}
			suffix = s
		}
		return parentSelector(p.span(tok, p.lastConsumed()), suffix), nil
	case scanner.Colon:
		return p.parsePseudoSelector()
	case scanner.LBracket:
		return p.parseAttributeSelector()
	case scanner.Ident, scanner.InterpStart:
		name, err := p.parseSimpleName()
		if err != nil {
			return nil, err
		}
		return typeSelector(name.Span, name), nil
	}
	return nil, p.errorf(tok, "expected a selector, found %q", tok.Raw)
}

func startsSimpleNameContinuation(t scanner.Token) bool {
	return t.Type == scanner.Ident || t.Type == scanner.InterpStart || t.Type == scanner.Minus
}

// parseSimpleName consumes a run of adjacent name-ish tokens (identifier
// text and interpolation holes) into one Interpolation, the shape used for
// class/id/type names, attribute names and pseudo-class names.
func (p *Parser) parseSimpleName() (*ast.Interpolation, error) {
	start := p.peek()
	var parts []string
	var exprs []ast.Expr
	var buf string
	prevEnd := -1

	flush := func() { parts = append(parts, buf); buf = "" }

	for {
		tok := p.peek()
		if prevEnd >= 0 && tok.Start != prevEnd {
			break
		}
		if tok.Type == scanner.InterpStart {
			flush()
			in, err := p.parseInterpolation()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, in.Exprs[0])
			prevEnd = p.lastConsumed().End
			continue
		}
		if tok.Type != scanner.Ident && tok.Type != scanner.Minus {
			break
		}
		p.advance()
		buf += tok.Raw
		prevEnd = tok.End
	}
	flush()
	end := p.lastConsumed()
	return &ast.Interpolation{
		Span:    p.span(start, end),
		Parts:   parts,
		Exprs:   exprs,
		PlainOK: len(exprs) == 0,
	}, nil
}

func (p *Parser) parsePseudoSelector() (ast.SimpleSelector, error) {
	if err := p.enterDepth(); err != nil {
		return nil, err
	}
	defer p.exitDepth()

	start := p.advance() // first ':'
	element := false
	if _, ok := p.match(scanner.Colon); ok {
		element = true
	}
	name, err := p.parseSimpleName()
	if err != nil {
		return nil, err
	}
	nameEnd := p.lastConsumed()

	if p.check(scanner.LParen) && adjacent(nameEnd, p.peek()) {
		p.advance() // (
		if isSelectorPseudo(name) {
			list, err := p.parseSelectorList()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(scanner.RParen)
			if err != nil {
				return nil, err
			}
			return pseudoSelectorWithList(p.span(start, end), element, name, list), nil
		}
		arg, err := p.parseInterpolatedText(map[scanner.Type]bool{scanner.RParen: true})
		if err != nil {
			return nil, err
		}
		end, err := p.expect(scanner.RParen)
		if err != nil {
			return nil, err
		}
		return pseudoSelectorWithArg(p.span(start, end), element, name, arg), nil
	}

	return pseudoSelectorBare(p.span(start, nameEnd), element, name), nil
}

func isSelectorPseudo(name *ast.Interpolation) bool {
	plain, ok := name.Plain()
	if !ok {
		return false
	}
	switch plain {
	case "not", "is", "where", "has", "matches", "current", "host", "host-context", "slotted":
		return true
	}
	return false
}

// attributeOperator reconstructs a two-character attribute-selector operator
// ending in '=' from adjacent single-char tokens: the scanner has no
// combined operator tokens for these (only bare '=' stands alone), so
// `~=`, `^=`, `$=`, `*=`, `|=` are recognized here as a lead token directly
// followed, with no gap, by an Eq token.
func (p *Parser) attributeOperator() (string, bool) {
	lead := p.peek()
	var prefix string
	switch lead.Type {
	case scanner.Eq:
		p.advance()
		return "=", true
	case scanner.Tilde:
		prefix = "~"
	case scanner.Caret:
		prefix = "^"
	case scanner.Dollar:
		prefix = "$"
	case scanner.Star:
		prefix = "*"
	case scanner.Pipe:
		prefix = "|"
	default:
		return "", false
	}
	save := p.save()
	p.advance()
	if eq, ok := p.match(scanner.Eq); ok && adjacent(lead, eq) {
		return prefix + "=", true
	}
	p.restore(save)
	return "", false
}

func (p *Parser) parseAttributeSelector() (ast.SimpleSelector, error) {
	start := p.advance() // [
	name, err := p.parseSimpleName()
	if err != nil {
		return nil, err
	}
	if end, ok := p.match(scanner.RBracket); ok {
		return attributeSelector(p.span(start, end), name, "", nil, false, ""), nil
	}

	op, ok := p.attributeOperator()
	if !ok {
		return nil, p.errorf(p.peek(), "unsupported attribute operator near %q", p.peek().Raw)
	}

	quoted := p.check(scanner.String)
	val, err := p.parseInterpolatedText(map[scanner.Type]bool{scanner.RBracket: true})
	if err != nil {
		return nil, err
	}

	flags := ""
	if p.check(scanner.Ident) && (p.peek().Value == "i" || p.peek().Value == "s") {
		flags = p.advance().Value
	}

	end, err := p.expect(scanner.RBracket)
	if err != nil {
		return nil, err
	}
	return attributeSelector(p.span(start, end), name, op, val, quoted, flags), nil
}
