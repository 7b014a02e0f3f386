package parser

import (
	"strconv"
	"strings"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/scanner"
)

// The ast node types embed an unexported base carrying their Span, so a
// package outside ast can't name that field in a composite literal. These
// helpers build each node with its direct fields, then set the promoted
// Span field by assignment, which is a plain field access and needs no
// access to the unexported embed.

func numberLit(sp ast.Span, val float64, unit string) *ast.NumberLit {
	n := &ast.NumberLit{Value: val, Unit: unit}
	n.Span = sp
	return n
}

func colorLit(sp ast.Span, hex string) *ast.ColorLit {
	n := &ast.ColorLit{Hex: hex}
	n.Span = sp
	return n
}

func boolLit(sp ast.Span, v bool) *ast.BoolLit {
	n := &ast.BoolLit{Value: v}
	n.Span = sp
	return n
}

func nullLit(sp ast.Span) *ast.NullLit {
	n := &ast.NullLit{}
	n.Span = sp
	return n
}

func stringLit(sp ast.Span, text *ast.Interpolation, quoted bool) *ast.StringLit {
	n := &ast.StringLit{Text: text, HasQuotes: quoted}
	n.Span = sp
	return n
}

func listExpr(sp ast.Span, items []ast.Expr, sep string, brackets bool) *ast.ListExpr {
	n := &ast.ListExpr{Items: items, Separator: sep, Brackets: brackets}
	n.Span = sp
	return n
}

func mapExpr(sp ast.Span, keys, values []ast.Expr) *ast.MapExpr {
	n := &ast.MapExpr{Keys: keys, Values: values}
	n.Span = sp
	return n
}

func variableRef(sp ast.Span, namespace, name string) *ast.VariableRef {
	n := &ast.VariableRef{Namespace: namespace, Name: name}
	n.Span = sp
	return n
}

func functionCall(sp ast.Span, namespace, name string, args []ast.ArgumentPair) *ast.FunctionCall {
	n := &ast.FunctionCall{Namespace: namespace, Name: name, Args: args}
	n.Span = sp
	return n
}

func ifCall(sp ast.Span, args []ast.ArgumentPair) *ast.IfCall {
	n := &ast.IfCall{Args: args}
	n.Span = sp
	return n
}

func binaryOp(sp ast.Span, left, right ast.Expr, op string) *ast.BinaryOp {
	n := &ast.BinaryOp{Left: left, Right: right, Operator: op}
	n.Span = sp
	return n
}

func unaryOp(sp ast.Span, op string, operand ast.Expr) *ast.UnaryOp {
	n := &ast.UnaryOp{Operator: op, Operand: operand}
	n.Span = sp
	return n
}

func parenExpr(sp ast.Span, inner ast.Expr) *ast.Paren {
	n := &ast.Paren{Inner: inner}
	n.Span = sp
	return n
}

func parentSelectorRef(sp ast.Span) *ast.ParentSelectorRef {
	n := &ast.ParentSelectorRef{}
	n.Span = sp
	return n
}

// ParseExpression parses a full SassScript expression: a comma-separated
// list of space-separated lists of or-expressions, which is the grammar
// used everywhere a value is expected (declaration values, arguments,
// @return, and anywhere else the grammar tolerates a comma list).
func (p *Parser) ParseExpression() (ast.Expr, error) {
	return p.parseCommaList()
}

func (p *Parser) parseCommaList() (ast.Expr, error) {
	start := p.peek()
	first, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	if !p.check(scanner.Comma) {
		return first, nil
	}
	items := []ast.Expr{first}
	for {
		if _, ok := p.match(scanner.Comma); !ok {
			break
		}
		if !p.canStartExpr() {
			break // trailing comma before a closing delimiter
		}
		next, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	end := p.lastConsumed()
	return listExpr(p.span(start, end), items, "comma", false), nil
}

func (p *Parser) parseSpaceList() (ast.Expr, error) {
	start := p.peek()
	first, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.canStartExpr() {
		return first, nil
	}
	items := []ast.Expr{first}
	for p.canStartExpr() {
		next, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	end := p.lastConsumed()
	return listExpr(p.span(start, end), items, "space", false), nil
}

// canStartExpr reports whether the current token can begin another
// space-separated list item, used to decide when a space-list ends.
func (p *Parser) canStartExpr() bool {
	switch p.peek().Type {
	case scanner.Number, scanner.Color, scanner.String, scanner.Variable, scanner.Ident,
		scanner.LParen, scanner.LBracket, scanner.Minus, scanner.Ampersand,
		scanner.Placeholder, scanner.InterpStart, scanner.Hash:
		return true
	default:
		return false
	}
}

func (p *Parser) lastConsumed() scanner.Token {
	if p.pos == 0 {
		return scanner.Token{}
	}
	i := p.pos - 1
	for i > 0 && isSkippable(p.toks[i].Type) {
		i--
	}
	return p.toks[i]
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(scanner.Ident) && p.peek().Value == "or" {
		start := p.peek()
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binaryOp(p.span(start, p.lastConsumed()), left, right, "or")
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(scanner.Ident) && p.peek().Value == "and" {
		start := p.peek()
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = binaryOp(p.span(start, p.lastConsumed()), left, right, "and")
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Type {
		case scanner.Eq:
			if p.peek().Raw != "==" {
				return left, nil
			}
			op = "=="
		case scanner.Ne:
			op = "!="
		default:
			return left, nil
		}
		start := p.peek()
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = binaryOp(p.span(start, p.lastConsumed()), left, right, op)
	}
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Type {
		case scanner.Lt:
			op = "<"
		case scanner.Le:
			op = "<="
		case scanner.Greater:
			op = ">"
		case scanner.Ge:
			op = ">="
		default:
			return left, nil
		}
		start := p.peek()
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = binaryOp(p.span(start, p.lastConsumed()), left, right, op)
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Type {
		case scanner.Plus:
			op = "+"
		case scanner.Minus:
			op = "-"
		default:
			return left, nil
		}
		start := p.peek()
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryOp(p.span(start, p.lastConsumed()), left, right, op)
	}
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Type {
		case scanner.Star:
			op = "*"
		case scanner.Slash:
			op = "/"
		case scanner.Percent:
			op = "%"
		default:
			return left, nil
		}
		start := p.peek()
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryOp(p.span(start, p.lastConsumed()), left, right, op)
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.peek().Type {
	case scanner.Minus:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryOp(p.span(tok, p.lastConsumed()), "-", operand), nil
	case scanner.Plus:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryOp(p.span(tok, p.lastConsumed()), "+", operand), nil
	case scanner.Ident:
		if p.peek().Value == "not" {
			tok := p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return unaryOp(p.span(tok, p.lastConsumed()), "not", operand), nil
		}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	if err := p.enterDepth(); err != nil {
		return nil, err
	}
	defer p.exitDepth()

	tok := p.peek()
	switch tok.Type {
	case scanner.Number:
		return p.parseNumberLit()
	case scanner.Color:
		p.advance()
		return colorLit(p.spanOf(tok), tok.Raw), nil
	case scanner.String:
		p.advance()
		return stringLit(p.spanOf(tok), &ast.Interpolation{Span: p.spanOf(tok), Parts: []string{tok.Value}}, true), nil
	case scanner.Variable:
		return p.parseVariableOrNamespaced()
	case scanner.Ampersand:
		p.advance()
		return parentSelectorRef(p.spanOf(tok)), nil
	case scanner.LParen:
		return p.parseParenOrMapOrList()
	case scanner.LBracket:
		return p.parseBracketedList()
	case scanner.InterpStart:
		return p.parseInterpolatedPrimary()
	case scanner.Ident:
		return p.parseIdentPrimary()
	}
	return nil, p.errorf(tok, "expected an expression, found %q", tok.Raw)
}

func (p *Parser) parseNumberLit() (ast.Expr, error) {
	tok := p.advance()
	numStr, unit := splitNumberUnit(tok.Raw)
	f, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return nil, p.errorf(tok, "invalid number %q", tok.Raw)
	}
	return numberLit(p.spanOf(tok), f, unit), nil
}

func splitNumberUnit(raw string) (numPart, unit string) {
	i := 0
	if i < len(raw) && (raw[i] == '-' || raw[i] == '+') {
		i++
	}
	for i < len(raw) && (isDigitByte(raw[i]) || raw[i] == '.') {
		i++
	}
	if i < len(raw) && (raw[i] == 'e' || raw[i] == 'E') {
		j := i + 1
		if j < len(raw) && (raw[j] == '+' || raw[j] == '-') {
			j++
		}
		k := j
		for k < len(raw) && isDigitByte(raw[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return raw[:i], raw[i:]
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func (p *Parser) parseVariableOrNamespaced() (ast.Expr, error) {
	tok := p.advance()
	return variableRef(p.spanOf(tok), "", tok.Value), nil
}

// parseIdentPrimary handles bare identifiers, which might be a keyword
// value (`red`, `solid`), a function call (`rgba(...)`), the `if()`
// pseudo-function, or a namespaced reference (`math.$pi`, `list.nth(...)`).
func (p *Parser) parseIdentPrimary() (ast.Expr, error) {
	tok := p.advance()
	name := tok.Value

	// Namespaced member: `ns.$var` or `ns.fn(...)`.
	if p.check(scanner.Dot) {
		save := p.save()
		p.advance() // .
		if p.check(scanner.Variable) {
			v := p.advance()
			return variableRef(p.span(tok, v), name, v.Value), nil
		}
		if p.check(scanner.Ident) {
			fnTok := p.advance()
			if p.check(scanner.LParen) && adjacent(fnTok, p.peek()) {
				return p.parseCallTail(tok, name, fnTok.Value)
			}
		}
		p.restore(save)
	}

	if p.check(scanner.LParen) && adjacent(tok, p.peek()) {
		if name == "if" {
			return p.parseIfCall(tok)
		}
		return p.parseCallTail(tok, "", name)
	}

	switch strings.ToLower(name) {
	case "true":
		return boolLit(p.spanOf(tok), true), nil
	case "false":
		return boolLit(p.spanOf(tok), false), nil
	case "null":
		return nullLit(p.spanOf(tok)), nil
	}
	return stringLit(p.spanOf(tok), &ast.Interpolation{Span: p.spanOf(tok), Parts: []string{name}}, false), nil
}

func adjacent(a, b scanner.Token) bool { return a.End == b.Start }

func (p *Parser) parseIfCall(start scanner.Token) (ast.Expr, error) {
	p.advance() // (
	args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(scanner.RParen)
	if err != nil {
		return nil, err
	}
	return ifCall(p.span(start, end), args), nil
}

func (p *Parser) parseCallTail(start scanner.Token, namespace, name string) (ast.Expr, error) {
	p.advance() // (
	args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(scanner.RParen)
	if err != nil {
		return nil, err
	}
	return functionCall(p.span(start, end), namespace, name, args), nil
}

func (p *Parser) parseArgumentList() ([]ast.ArgumentPair, error) {
	var args []ast.ArgumentPair
	for !p.check(scanner.RParen) {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, ok := p.match(scanner.Comma); !ok {
			break
		}
	}
	return args, nil
}

func (p *Parser) parseArgument() (ast.ArgumentPair, error) {
	if p.check(scanner.Variable) {
		save := p.save()
		v := p.advance()
		if _, ok := p.match(scanner.Colon); ok {
			val, err := p.parseSpaceList()
			if err != nil {
				return ast.ArgumentPair{}, err
			}
			return ast.ArgumentPair{Name: v.Value, Value: val}, nil
		}
		p.restore(save)
	}
	val, err := p.parseSpaceList()
	if err != nil {
		return ast.ArgumentPair{}, err
	}
	if p.check(scanner.DotDotDot) {
		p.advance()
		return ast.ArgumentPair{Value: val, Rest: true}, nil
	}
	return ast.ArgumentPair{Value: val}, nil
}

func (p *Parser) parseParenOrMapOrList() (ast.Expr, error) {
	start := p.advance() // (
	if end, ok := p.match(scanner.RParen); ok {
		return listExpr(p.span(start, end), nil, "space", false), nil
	}

	first, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}

	if _, ok := p.match(scanner.Colon); ok {
		return p.parseMapTail(start, first)
	}

	if _, ok := p.match(scanner.Comma); ok {
		items := []ast.Expr{first}
		for {
			if p.check(scanner.RParen) {
				break
			}
			next, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			items = append(items, next)
			if _, ok := p.match(scanner.Comma); !ok {
				break
			}
		}
		end, err := p.expect(scanner.RParen)
		if err != nil {
			return nil, err
		}
		return listExpr(p.span(start, end), items, "comma", false), nil
	}

	end, err := p.expect(scanner.RParen)
	if err != nil {
		return nil, err
	}
	var mark func(ast.Expr)
	mark = func(x ast.Expr) {
		if b, ok := x.(*ast.BinaryOp); ok {
			b.Parenthesized = true
			mark(b.Left)
			mark(b.Right)
		}
	}
	mark(first)
	return parenExpr(p.span(start, end), first), nil
}

func (p *Parser) parseMapTail(start scanner.Token, firstKey ast.Expr) (ast.Expr, error) {
	firstVal, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	keys := []ast.Expr{firstKey}
	values := []ast.Expr{firstVal}
	for {
		if _, ok := p.match(scanner.Comma); !ok {
			break
		}
		if p.check(scanner.RParen) {
			break
		}
		k, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(scanner.Colon); err != nil {
			return nil, err
		}
		v, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		values = append(values, v)
	}
	end, err := p.expect(scanner.RParen)
	if err != nil {
		return nil, err
	}
	return mapExpr(p.span(start, end), keys, values), nil
}

func (p *Parser) parseBracketedList() (ast.Expr, error) {
	start := p.advance() // [
	if end, ok := p.match(scanner.RBracket); ok {
		return listExpr(p.span(start, end), nil, "space", true), nil
	}
	first, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	items := []ast.Expr{first}
	sep := "space"
	for {
		if _, ok := p.match(scanner.Comma); ok {
			sep = "comma"
			next, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			items = append(items, next)
			continue
		}
		break
	}
	end, err := p.expect(scanner.RBracket)
	if err != nil {
		return nil, err
	}
	return listExpr(p.span(start, end), items, sep, true), nil
}

// parseInterpolatedPrimary parses a bare `#{...}` appearing where a value
// is expected, producing a one-hole, no-literal-text StringLit.
func (p *Parser) parseInterpolatedPrimary() (ast.Expr, error) {
	in, err := p.parseInterpolation()
	if err != nil {
		return nil, err
	}
	return stringLit(in.Span, in, false), nil
}
