package parser

import (
	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/scanner"
)

// parseInterpolation consumes one `#{...}` at the cursor and returns its
// contained expression wrapped as a one-hole Interpolation with no
// surrounding literal text.
func (p *Parser) parseInterpolation() (*ast.Interpolation, error) {
	start, err := p.expect(scanner.InterpStart)
	if err != nil {
		return nil, err
	}
	inner, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(scanner.InterpEnd)
	if err != nil {
		return nil, err
	}
	return &ast.Interpolation{
		Span:  p.span(start, end),
		Parts: []string{"", ""},
		Exprs: []ast.Expr{inner},
	}, nil
}

// parseInterpolatedText parses a run of raw text interleaved with `#{...}`
// holes, stopping at any token whose type appears in stop. It's used for a
// pseudo-class's functional argument and an attribute selector's value,
// where interpolation is legal inside what would otherwise be a single
// opaque lexeme run built
// from several adjacent tokens (an identifier followed by a combinator,
// for instance, with no intervening whitespace that would otherwise split
// them at the token level).
func (p *Parser) parseInterpolatedText(stop map[scanner.Type]bool) (*ast.Interpolation, error) {
	start := p.peek()
	var parts []string
	var exprs []ast.Expr
	var buf []byte

	flush := func() {
		parts = append(parts, string(buf))
		buf = nil
	}

	for {
		tok := p.peek()
		if tok.Type == scanner.EOF || stop[tok.Type] {
			break
		}
		if tok.Type == scanner.InterpStart {
			flush()
			in, err := p.parseInterpolation()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, in.Exprs[0])
			continue
		}
		p.advance()
		buf = append(buf, tok.Raw...)
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
