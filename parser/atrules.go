package parser

import (
	"strings"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/scanner"
)

func (p *Parser) parseAtRule() (ast.Statement, error) {
	tok := p.advance() // @keyword
	name := strings.ToLower(tok.Value)
	switch name {
	case "if":
		return p.parseIfStatement(tok)
	case "for":
		return p.parseForStatement(tok)
	case "each":
		return p.parseEachStatement(tok)
	case "while":
		return p.parseWhileStatement(tok)
	case "mixin":
		return p.parseMixinDecl(tok)
	case "function":
		return p.parseFunctionDecl(tok)
	case "return":
		return p.parseReturnStatement(tok)
	case "include":
		return p.parseIncludeStatement(tok)
	case "content":
		return p.parseContentStatement(tok)
	case "extend":
		return p.parseExtendStatement(tok)
	case "debug":
		return p.parseValueAtRule(tok, func(v ast.Expr) ast.Statement { n := &ast.DebugStatement{Value: v}; return n })
	case "warn":
		return p.parseValueAtRule(tok, func(v ast.Expr) ast.Statement { n := &ast.WarnStatement{Value: v}; return n })
	case "error":
		return p.parseValueAtRule(tok, func(v ast.Expr) ast.Statement { n := &ast.ErrorStatement{Value: v}; return n })
	case "use":
		return p.parseUseRule(tok)
	case "forward":
		return p.parseForwardRule(tok)
	case "import":
		return p.parseImportRule(tok)
	case "media":
		return p.parseMediaRule(tok)
	case "supports":
		return p.parseSupportsRule(tok)
	case "at-root":
		return p.parseAtRootRule(tok)
	case "else":
		return nil, p.errorf(tok, "@else with no preceding @if")
	default:
		return p.parseGenericAtRule(tok, name)
	}
}

// preludeExpr scans tokens up to `;`/`{`/`}` and parses them as one
// expression, the shape shared by @debug/@warn/@error/@return and the
// condition clauses of @if/@while.
func (p *Parser) preludeExpr() (ast.Expr, scanner.Token, error) {
	toks, _, stop := p.scanPrelude()
	sub := p.subParserFromTokens(toks)
	expr, err := sub.ParseExpression()
	if err != nil {
		return nil, stop, err
	}
	return expr, stop, nil
}

func (p *Parser) parseValueAtRule(start scanner.Token, build func(ast.Expr) ast.Statement) (ast.Statement, error) {
	val, _, err := p.preludeExpr()
	if err != nil {
		return nil, err
	}
	p.match(scanner.Semicolon)
	stmt := build(val)
	setStmtSpan(stmt, p.span(start, p.lastConsumed()))
	return stmt, nil
}

func (p *Parser) parseIfStatement(start scanner.Token) (ast.Statement, error) {
	var clauses []ast.IfClause
	cond, _, err := p.preludeExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	clauses = append(clauses, ast.IfClause{Condition: cond, Body: body})

	for p.check(scanner.AtKeyword) && strings.ToLower(p.peek().Value) == "else" {
		p.advance()
		if p.check(scanner.Ident) && p.peek().Value == "if" {
			p.advance()
			c, _, err := p.preludeExpr()
			if err != nil {
				return nil, err
			}
			b, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, ast.IfClause{Condition: c, Body: b})
			continue
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.IfClause{Condition: nil, Body: b})
		break
	}

	n := &ast.IfStatement{Clauses: clauses}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseForStatement(start scanner.Token) (ast.Statement, error) {
	v, err := p.expect(scanner.Variable)
	if err != nil {
		return nil, err
	}
	if !p.matchIdent("from") {
		return nil, p.errorf(p.peek(), "expected \"from\" in @for")
	}
	from, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	inclusive := false
	if p.matchIdent("through") {
		inclusive = true
	} else if !p.matchIdent("to") {
		return nil, p.errorf(p.peek(), "expected \"to\" or \"through\" in @for")
	}
	to, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.ForStatement{Variable: v.Value, From: from, To: to, Inclusive: inclusive, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) matchIdent(word string) bool {
	if p.check(scanner.Ident) && p.peek().Value == word {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseEachStatement(start scanner.Token) (ast.Statement, error) {
	var vars []string
	v, err := p.expect(scanner.Variable)
	if err != nil {
		return nil, err
	}
	vars = append(vars, v.Value)
	for {
		if _, ok := p.match(scanner.Comma); !ok {
			break
		}
		v, err := p.expect(scanner.Variable)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v.Value)
	}
	if !p.matchIdent("in") {
		return nil, p.errorf(p.peek(), "expected \"in\" in @each")
	}
	list, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.EachStatement{Variables: vars, List: list, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseWhileStatement(start scanner.Token) (ast.Statement, error) {
	cond, _, err := p.preludeExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.WhileStatement{Condition: cond, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseArgDefs() ([]ast.Argument, error) {
	if _, err := p.expect(scanner.LParen); err != nil {
		return nil, err
	}
	var args []ast.Argument
	for !p.check(scanner.RParen) {
		v, err := p.expect(scanner.Variable)
		if err != nil {
			return nil, err
		}
		a := ast.Argument{Name: v.Value}
		if p.check(scanner.DotDotDot) {
			p.advance()
			a.Rest = true
		} else if _, ok := p.match(scanner.Colon); ok {
			def, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			a.Default = def
		}
		args = append(args, a)
		if _, ok := p.match(scanner.Comma); !ok {
			break
		}
	}
	if _, err := p.expect(scanner.RParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseMixinDecl(start scanner.Token) (ast.Statement, error) {
	name, err := p.expect(scanner.Ident)
	if err != nil {
		return nil, err
	}
	var args []ast.Argument
	if p.check(scanner.LParen) {
		args, err = p.parseArgDefs()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.MixinDecl{Name: name.Value, Args: args, AcceptsContent: blockHasContent(body), Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func blockHasContent(b *ast.Block) bool {
	for _, c := range b.Children {
		if _, ok := c.(*ast.ContentStatement); ok {
			return true
		}
	}
	return false
}

func (p *Parser) parseFunctionDecl(start scanner.Token) (ast.Statement, error) {
	name, err := p.expect(scanner.Ident)
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgDefs()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.FunctionDecl{Name: name.Value, Args: args, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseReturnStatement(start scanner.Token) (ast.Statement, error) {
	val, _, err := p.preludeExpr()
	if err != nil {
		return nil, err
	}
	p.match(scanner.Semicolon)
	n := &ast.ReturnStatement{Value: val}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseIncludeStatement(start scanner.Token) (ast.Statement, error) {
	namespace := ""
	name, err := p.expect(scanner.Ident)
	if err != nil {
		return nil, err
	}
	if _, ok := p.match(scanner.Dot); ok {
		namespace = name.Value
		name, err = p.expect(scanner.Ident)
		if err != nil {
			return nil, err
		}
	}
	var args []ast.ArgumentPair
	if p.check(scanner.LParen) && adjacent(name, p.peek()) {
		p.advance()
		args, err = p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(scanner.RParen); err != nil {
			return nil, err
		}
	}

	var contentArgs []ast.Argument
	var content *ast.Block
	if p.matchIdent("using") {
		contentArgs, err = p.parseArgDefs()
		if err != nil {
			return nil, err
		}
	}
	if p.check(scanner.LBrace) {
		content, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	} else {
		p.match(scanner.Semicolon)
	}

	n := &ast.IncludeStatement{Namespace: namespace, Name: name.Value, Args: args, ContentArgs: contentArgs, Content: content}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseContentStatement(start scanner.Token) (ast.Statement, error) {
	var args []ast.ArgumentPair
	if p.check(scanner.LParen) {
		p.advance()
		var err error
		args, err = p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(scanner.RParen); err != nil {
			return nil, err
		}
	}
	p.match(scanner.Semicolon)
	n := &ast.ContentStatement{Args: args}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseExtendStatement(start scanner.Token) (ast.Statement, error) {
	toks, _, _ := p.scanPrelude()
	optional := false
	if n := len(toks); n >= 2 && toks[n-1].tok.Type == scanner.Ident && toks[n-1].tok.Value == "optional" && toks[n-2].tok.Type == scanner.Not {
		optional = true
		toks = toks[:n-2]
	}
	sel := p.preludeToInterpolation(toks)
	p.match(scanner.Semicolon)
	n := &ast.ExtendStatement{Selector: sel, Optional: optional}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseUseRule(start scanner.Token) (ast.Statement, error) {
	urlTok, err := p.expect(scanner.String)
	if err != nil {
		return nil, err
	}
	namespace := ""
	if p.matchIdent("as") {
		if p.check(scanner.Star) {
			p.advance()
			namespace = "*"
		} else {
			id, err := p.expect(scanner.Ident)
			if err != nil {
				return nil, err
			}
			namespace = id.Value
		}
	}
	var cfg []ast.ConfigVar
	if p.matchIdent("with") {
		cfg, err = p.parseConfigClause()
		if err != nil {
			return nil, err
		}
	}
	p.match(scanner.Semicolon)
	n := &ast.UseRule{URL: urlTok.Value, Namespace: namespace, Config: cfg}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseForwardRule(start scanner.Token) (ast.Statement, error) {
	urlTok, err := p.expect(scanner.String)
	if err != nil {
		return nil, err
	}
	prefix := ""
	if p.matchIdent("as") {
		id, err := p.expect(scanner.Ident)
		if err != nil {
			return nil, err
		}
		prefix = id.Value
		if _, err := p.expect(scanner.Star); err != nil {
			return nil, err
		}
	}
	var show, hide []string
	if p.matchIdent("show") {
		show, err = p.parseIdentList()
		if err != nil {
			return nil, err
		}
	} else if p.matchIdent("hide") {
		hide, err = p.parseIdentList()
		if err != nil {
			return nil, err
		}
	}
	var cfg []ast.ConfigVar
	if p.matchIdent("with") {
		cfg, err = p.parseConfigClause()
		if err != nil {
			return nil, err
		}
	}
	p.match(scanner.Semicolon)
	n := &ast.ForwardRule{URL: urlTok.Value, Prefix: prefix, Show: show, Hide: hide, Config: cfg}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseIdentList() ([]string, error) {
	var names []string
	for {
		if p.check(scanner.Variable) {
			names = append(names, "$"+p.advance().Value)
		} else {
			id, err := p.expect(scanner.Ident)
			if err != nil {
				return nil, err
			}
			names = append(names, id.Value)
		}
		if _, ok := p.match(scanner.Comma); !ok {
			break
		}
	}
	return names, nil
}

func (p *Parser) parseConfigClause() ([]ast.ConfigVar, error) {
	if _, err := p.expect(scanner.LParen); err != nil {
		return nil, err
	}
	var out []ast.ConfigVar
	for !p.check(scanner.RParen) {
		v, err := p.expect(scanner.Variable)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(scanner.Colon); err != nil {
			return nil, err
		}
		val, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		isDefault, _ := p.consumeFlags()
		out = append(out, ast.ConfigVar{Name: v.Value, Value: val, Default: isDefault})
		if _, ok := p.match(scanner.Comma); !ok {
			break
		}
	}
	if _, err := p.expect(scanner.RParen); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) parseImportRule(start scanner.Token) (ast.Statement, error) {
	var imports []ast.ImportArgument
	for {
		argStart := p.peek()
		toks, _, _ := p.scanImportArg()
		urlTok := firstStringOrIdentRun(toks)
		plain := isPlainCSSImport(urlTok, toks)
		var media *ast.Interpolation
		if rest := toks[urlTok.consumed:]; len(rest) > 0 {
			media = p.preludeToInterpolation(rest)
			plain = true
		}
		imports = append(imports, ast.ImportArgument{
			Span:       p.span(argStart, p.lastConsumed()),
			URL:        urlTok.text,
			IsPlainCSS: plain,
			MediaQuery: media,
		})
		if _, ok := p.match(scanner.Comma); !ok {
			break
		}
	}
	p.match(scanner.Semicolon)
	n := &ast.ImportRule{Imports: imports}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

// scanImportArg scans one comma-separated @import argument (a URL plus an
// optional trailing media query), stopping at the next top-level comma or
// the statement terminator.
func (p *Parser) scanImportArg() ([]preludeTok, int, scanner.Token) {
	var out []preludeTok
	depth := 0
	prevEnd := -1
	for {
		tok := p.peek()
		if tok.Type == scanner.EOF {
			return out, -1, tok
		}
		if depth == 0 && (tok.Type == scanner.Comma || tok.Type == scanner.Semicolon || tok.Type == scanner.RBrace) {
			return out, -1, tok
		}
		gap := prevEnd >= 0 && tok.Start != prevEnd
		p.advance()
		out = append(out, preludeTok{tok: tok, hadGap: gap})
		prevEnd = tok.End
		if tok.Type == scanner.LParen {
			depth++
		} else if tok.Type == scanner.RParen && depth > 0 {
			depth--
		}
	}
}

type urlRun struct {
	text     string
	consumed int
	isURLFn  bool
}

func firstStringOrIdentRun(toks []preludeTok) urlRun {
	if len(toks) == 0 {
		return urlRun{}
	}
	t := toks[0].tok
	switch t.Type {
	case scanner.String:
		return urlRun{text: t.Value, consumed: 1}
	case scanner.Ident:
		if t.Value == "url" && len(toks) > 1 && toks[1].tok.Type == scanner.LParen {
			depth := 0
			var inner strings.Builder
			for i := 1; i < len(toks); i++ {
				tt := toks[i].tok
				if tt.Type == scanner.LParen {
					depth++
					if depth == 1 {
						continue
					}
				} else if tt.Type == scanner.RParen {
					depth--
					if depth == 0 {
						return urlRun{text: inner.String(), consumed: i + 1, isURLFn: true}
					}
				}
				inner.WriteString(tt.Raw)
			}
		}
	}
	return urlRun{consumed: 0}
}

func isPlainCSSImport(u urlRun, toks []preludeTok) bool {
	if u.isURLFn {
		return true
	}
	if strings.HasSuffix(u.text, ".css") {
		return true
	}
	if strings.HasPrefix(u.text, "http://") || strings.HasPrefix(u.text, "https://") || strings.HasPrefix(u.text, "//") {
		return true
	}
	return false
}

func (p *Parser) parseMediaRule(start scanner.Token) (ast.Statement, error) {
	toks, _, _ := p.scanPrelude()
	query := p.preludeToInterpolation(toks)
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.MediaRule{Query: query, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

func (p *Parser) parseSupportsRule(start scanner.Token) (ast.Statement, error) {
	cond, err := p.parseSupportsExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.SupportsRule{Condition: cond, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

// parseSupportsExpr parses a `@supports` condition: `(prop: value)`,
// `not <cond>`, and `<cond> and/or <cond>` chains (not mixed without
// parens, matching the CSS grammar).
func (p *Parser) parseSupportsExpr() (*ast.SupportsExpr, error) {
	start := p.peek()
	left, err := p.parseSupportsUnary()
	if err != nil {
		return nil, err
	}
	if p.check(scanner.Ident) && (p.peek().Value == "and" || p.peek().Value == "or") {
		op := p.advance().Value
		operands := []*ast.SupportsExpr{left}
		for {
			next, err := p.parseSupportsUnary()
			if err != nil {
				return nil, err
			}
			operands = append(operands, next)
			if p.check(scanner.Ident) && p.peek().Value == op {
				p.advance()
				continue
			}
			break
		}
		n := &ast.SupportsExpr{Kind: op, Operands: operands}
		n.Span = p.span(start, p.lastConsumed())
		return n, nil
	}
	return left, nil
}

func (p *Parser) parseSupportsUnary() (*ast.SupportsExpr, error) {
	start := p.peek()
	if p.matchIdent("not") {
		inner, err := p.parseSupportsUnary()
		if err != nil {
			return nil, err
		}
		n := &ast.SupportsExpr{Kind: "not", Operands: []*ast.SupportsExpr{inner}}
		n.Span = p.span(start, p.lastConsumed())
		return n, nil
	}
	if p.check(scanner.InterpStart) {
		in, err := p.parseInterpolation()
		if err != nil {
			return nil, err
		}
		n := &ast.SupportsExpr{Kind: "interpolation", Interp: in}
		n.Span = in.Span
		return n, nil
	}
	if _, err := p.expect(scanner.LParen); err != nil {
		return nil, err
	}
	if p.check(scanner.Ident) && (p.peek().Value == "not" || p.peek().Value == "and" || p.peek().Value == "or") {
		// Parenthesized nested condition, e.g. `((a: 1) and (b: 2))`.
		inner, err := p.parseSupportsExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(scanner.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	prop, err := p.parseSimpleName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(scanner.Colon); err != nil {
		return nil, err
	}
	toks, _, _ := p.scanUntilRParen()
	val := p.preludeToInterpolation(toks)
	if _, err := p.expect(scanner.RParen); err != nil {
		return nil, err
	}
	decl := &ast.Declaration{Property: prop, Value: stringLit(val.Span, val, false)}
	decl.Span = p.span(start, p.lastConsumed())
	n := &ast.SupportsExpr{Kind: "declaration", Decl: decl}
	n.Span = decl.Span
	return n, nil
}

func (p *Parser) scanUntilRParen() ([]preludeTok, int, scanner.Token) {
	var out []preludeTok
	depth := 0
	prevEnd := -1
	for {
		tok := p.peek()
		if tok.Type == scanner.EOF || (depth == 0 && tok.Type == scanner.RParen) {
			return out, -1, tok
		}
		gap := prevEnd >= 0 && tok.Start != prevEnd
		p.advance()
		out = append(out, preludeTok{tok: tok, hadGap: gap})
		prevEnd = tok.End
		if tok.Type == scanner.LParen {
			depth++
		} else if tok.Type == scanner.RParen {
			depth--
		}
	}
}

func (p *Parser) parseAtRootRule(start scanner.Token) (ast.Statement, error) {
	var query *ast.Interpolation
	if p.check(scanner.LParen) {
		p.advance()
		toks, _, _ := p.scanUntilRParen()
		query = p.preludeToInterpolation(toks)
		if _, err := p.expect(scanner.RParen); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.AtRootRule{Query: query, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

// parseGenericAtRule handles any at-rule the core grammar doesn't otherwise
// recognize (`@font-face`, `@keyframes`, `@page`, vendor rules, ...),
// passing its prelude through with interpolation resolved but otherwise
// unexamined.
func (p *Parser) parseGenericAtRule(start scanner.Token, name string) (ast.Statement, error) {
	toks, _, stop := p.scanPrelude()
	var prelude *ast.Interpolation
	if len(toks) > 0 {
		prelude = p.preludeToInterpolation(toks)
	}
	var body *ast.Block
	if stop.Type == scanner.LBrace {
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		body = b
	} else {
		p.match(scanner.Semicolon)
	}
	n := &ast.AtRule{Name: name, Prelude: prelude, Body: body}
	n.Span = p.span(start, p.lastConsumed())
	return n, nil
}

// setStmtSpan assigns the promoted Span field on any of the three
// value-carrying diagnostic statements, which all embed the unexported
// stmtBase the same way the expression nodes do.
func setStmtSpan(s ast.Statement, sp ast.Span) {
	switch n := s.(type) {
	case *ast.DebugStatement:
		n.Span = sp
	case *ast.WarnStatement:
		n.Span = sp
	case *ast.ErrorStatement:
		n.Span = sp
	}
}
