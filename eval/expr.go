package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/env"
	"github.com/titpetric/scssgo/extend"
	"github.com/titpetric/scssgo/value"
)

func (e *Evaluator) evalExpr(expr ast.Expr, frame *env.Frame) (value.Value, error) {
	if expr == nil {
		return nil, nil
	}
	var v value.Value
	var err error
	switch x := expr.(type) {
	case *ast.NumberLit:
		v = value.WithUnit(x.Value, x.Unit)
	case *ast.ColorLit:
		v, err = parseHexColor(x.Hex)
	case *ast.BoolLit:
		v = value.Boolean(x.Value)
	case *ast.NullLit:
		v = value.Null{}
	case *ast.StringLit:
		var text string
		text, err = e.evalInterpolationText(x.Text, frame)
		if err == nil {
			v = value.NewString(text, x.HasQuotes)
		}
	case *ast.ListExpr:
		v, err = e.evalList(x, frame)
	case *ast.MapExpr:
		v, err = e.evalMap(x, frame)
	case *ast.VariableRef:
		v, err = e.evalVariableRef(x, frame)
	case *ast.FunctionCall:
		v, err = e.evalCall(x, frame)
	case *ast.IfCall:
		v, err = e.evalIfCall(x, frame)
	case *ast.BinaryOp:
		v, err = e.evalBinary(x, frame)
	case *ast.UnaryOp:
		v, err = e.evalUnary(x, frame)
	case *ast.Paren:
		v, err = e.evalExpr(x.Inner, frame)
	case *ast.ParentSelectorRef:
		err = fmt.Errorf("top-level selectors may not contain the parent selector \"&\"")
	case *ast.ValueWrapper:
		if vv, ok := x.Value.(value.Value); ok {
			v = vv
		} else {
			err = fmt.Errorf("eval: ValueWrapper holds a non-value.Value %T", x.Value)
		}
	case *ast.SelectorExpr:
		v = value.NewString(renderSelectorExprText(x), false)
	default:
		err = fmt.Errorf("eval: unhandled expression %T", expr)
	}
	if err != nil {
		return nil, err
	}
	e.trace(fmt.Sprintf("%T", expr), v)
	return v, nil
}

func renderSelectorExprText(x *ast.SelectorExpr) string {
	if x.List == nil {
		return ""
	}
	return extend.RenderSelectorList(x.List)
}

func (e *Evaluator) evalList(x *ast.ListExpr, frame *env.Frame) (value.Value, error) {
	items := make([]value.Value, len(x.Items))
	for i, it := range x.Items {
		v, err := e.evalExpr(it, frame)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	sep := value.Separator(x.Separator)
	if sep == "" {
		sep = value.SepSpace
	}
	return value.NewList(items, sep, x.Brackets), nil
}

func (e *Evaluator) evalMap(x *ast.MapExpr, frame *env.Frame) (value.Value, error) {
	keys := make([]value.Value, len(x.Keys))
	vals := make([]value.Value, len(x.Values))
	for i := range x.Keys {
		k, err := e.evalExpr(x.Keys[i], frame)
		if err != nil {
			return nil, err
		}
		v, err := e.evalExpr(x.Values[i], frame)
		if err != nil {
			return nil, err
		}
		keys[i], vals[i] = k, v
	}
	return value.NewMap(keys, vals), nil
}

func (e *Evaluator) evalVariableRef(x *ast.VariableRef, frame *env.Frame) (value.Value, error) {
	if x.Namespace != "" {
		mod, ok := e.modules[x.Namespace]
		if !ok {
			return nil, fmt.Errorf("there is no module with the namespace %q", x.Namespace)
		}
		v, ok := mod.Root.GetLocal(x.Name)
		if !ok {
			return nil, fmt.Errorf("undefined variable %s.$%s", x.Namespace, x.Name)
		}
		return v.(value.Value), nil
	}
	v, ok := frame.Get(x.Name)
	if !ok {
		return nil, fmt.Errorf("undefined variable $%s", x.Name)
	}
	return v.(value.Value), nil
}

func (e *Evaluator) evalIfCall(x *ast.IfCall, frame *env.Frame) (value.Value, error) {
	get := func(i int, name string) ast.Expr {
		if i < len(x.Args) && x.Args[i].Name == "" {
			return x.Args[i].Value
		}
		for _, a := range x.Args {
			if a.Name == name {
				return a.Value
			}
		}
		return nil
	}
	condExpr := get(0, "condition")
	cond, err := e.evalExpr(condExpr, frame)
	if err != nil {
		return nil, err
	}
	if cond != nil && cond.Truthy() {
		return e.evalExpr(get(1, "if-true"), frame)
	}
	return e.evalExpr(get(2, "if-false"), frame)
}

// splitArgs evaluates every actual argument (expanding `...` spreads) into
// parallel positional/named slices, the shape both builtin.Bind and the
// user-function binder consume.
func (e *Evaluator) splitArgs(args []ast.ArgumentPair, frame *env.Frame) ([]value.Value, map[string]value.Value, error) {
	var positional []value.Value
	named := map[string]value.Value{}
	for _, a := range args {
		v, err := e.evalExpr(a.Value, frame)
		if err != nil {
			return nil, nil, err
		}
		if a.Rest {
			switch r := v.(type) {
			case *value.ArgumentList:
				positional = append(positional, r.Items...)
				if r.Keywords != nil {
					for i, k := range r.Keywords.Keys() {
						name := k.(value.String).Text
						named[name] = r.Keywords.Values()[i]
					}
				}
			case *value.List:
				positional = append(positional, r.Items...)
			case *value.Map:
				for i, k := range r.Keys() {
					named[k.(value.String).Text] = r.Values()[i]
				}
			default:
				positional = append(positional, v)
			}
			continue
		}
		if a.Name != "" {
			named[a.Name] = v
			continue
		}
		positional = append(positional, v)
	}
	return positional, named, nil
}

func (e *Evaluator) evalUnary(x *ast.UnaryOp, frame *env.Frame) (value.Value, error) {
	v, err := e.evalExpr(x.Operand, frame)
	if err != nil {
		return nil, err
	}
	switch x.Operator {
	case "not":
		return value.Boolean(!v.Truthy()), nil
	case "-":
		n, ok := v.(value.Number)
		if !ok {
			return value.NewString("-"+v.String(), false), nil
		}
		return n.Neg(), nil
	case "+":
		return v, nil
	default:
		return nil, fmt.Errorf("eval: unknown unary operator %q", x.Operator)
	}
}

func (e *Evaluator) evalBinary(x *ast.BinaryOp, frame *env.Frame) (value.Value, error) {
	if x.Operator == "and" || x.Operator == "or" {
		l, err := e.evalExpr(x.Left, frame)
		if err != nil {
			return nil, err
		}
		if x.Operator == "and" {
			if !l.Truthy() {
				return l, nil
			}
			return e.evalExpr(x.Right, frame)
		}
		if l.Truthy() {
			return l, nil
		}
		return e.evalExpr(x.Right, frame)
	}

	l, err := e.evalExpr(x.Left, frame)
	if err != nil {
		return nil, err
	}
	r, err := e.evalExpr(x.Right, frame)
	if err != nil {
		return nil, err
	}

	switch x.Operator {
	case "==":
		return value.Boolean(value.Equal(l, r)), nil
	case "!=":
		return value.Boolean(!value.Equal(l, r)), nil
	case "<", "<=", ">", ">=":
		return e.compareNumbers(x.Operator, l, r)
	case "+":
		return e.addLike(l, r)
	case "-":
		return e.subLike(l, r)
	case "*":
		ln, lok := l.(value.Number)
		rn, rok := r.(value.Number)
		if !lok || !rok {
			return nil, fmt.Errorf("%s and %s: \"*\" requires two numbers", l.String(), r.String())
		}
		return ln.Mul(rn), nil
	case "/":
		return e.evalDivision(x, l, r)
	case "%":
		ln, lok := l.(value.Number)
		rn, rok := r.(value.Number)
		if !lok || !rok {
			return nil, fmt.Errorf("%s and %s: \"%%\" requires two numbers", l.String(), r.String())
		}
		return ln.Mod(rn)
	default:
		return nil, fmt.Errorf("eval: unknown binary operator %q", x.Operator)
	}
}

func (e *Evaluator) compareNumbers(op string, l, r value.Value) (value.Value, error) {
	ln, lok := l.(value.Number)
	rn, rok := r.(value.Number)
	if !lok || !rok {
		return nil, fmt.Errorf("%s and %s: comparison requires two numbers", l.String(), r.String())
	}
	conv, ok := rn.ConvertTo(ln.Unit())
	if !ok {
		return nil, fmt.Errorf("%s and %s have incompatible units", ln.String(), rn.String())
	}
	var result bool
	switch op {
	case "<":
		result = ln.Value < conv.Value
	case "<=":
		result = ln.Value <= conv.Value
	case ">":
		result = ln.Value > conv.Value
	case ">=":
		result = ln.Value >= conv.Value
	}
	return value.Boolean(result), nil
}

// addLike implements `+`: numeric addition between two numbers, otherwise
// falls back to string concatenation (Sass's behavior for `"a" + "b"`,
// `"a" + 1`, colors are left to the color module rather than `+`).
func (e *Evaluator) addLike(l, r value.Value) (value.Value, error) {
	if ln, ok := l.(value.Number); ok {
		if rn, ok := r.(value.Number); ok {
			return ln.Add(rn)
		}
	}
	quoted := false
	if ls, ok := l.(value.String); ok {
		quoted = ls.HasQuotes
	}
	return value.NewString(unquotedString(l)+unquotedString(r), quoted), nil
}

func (e *Evaluator) subLike(l, r value.Value) (value.Value, error) {
	if ln, ok := l.(value.Number); ok {
		if rn, ok := r.(value.Number); ok {
			return ln.Sub(rn)
		}
	}
	return value.NewString(unquotedString(l)+"-"+unquotedString(r), false), nil
}

// evalDivision implements spec.md §9's math.div migration: a bare `/`
// between two number literals that isn't inside parens, a calc(), or
// interpolation still renders as a literal slash (value.Number.AsSlash)
// instead of eagerly dividing, with a deprecation warning steering authors
// toward math.div/calc. Division still happens eagerly whenever either
// side is itself the product of computation (not a literal), matching
// dart-sass's "only literals get the slash" rule closely enough for this
// evaluator's purposes.
func (e *Evaluator) evalDivision(x *ast.BinaryOp, l, r value.Value) (value.Value, error) {
	ln, lok := l.(value.Number)
	rn, rok := r.(value.Number)
	if !lok || !rok {
		return nil, fmt.Errorf("%s and %s: \"/\" requires two numbers", l.String(), r.String())
	}
	_, lLit := x.Left.(*ast.NumberLit)
	_, rLit := x.Right.(*ast.NumberLit)
	if lLit && rLit && !x.Parenthesized {
		e.emitWarn(x.Span, "/ operator is deprecated for division outside of calc(); use math.div instead")
		result, err := ln.Div(rn)
		if err != nil {
			return nil, err
		}
		result.AsSlash = &value.SlashPair{Left: ln, Right: rn}
		return result, nil
	}
	if !x.Parenthesized {
		e.emitWarn(x.Span, "/ operator is deprecated for division outside of calc(); use math.div instead")
	}
	return ln.Div(rn)
}

func parseHexColor(hex string) (value.Value, error) {
	h := strings.TrimPrefix(hex, "#")
	parse := func(s string) (uint8, error) {
		n, err := strconv.ParseUint(s, 16, 8)
		return uint8(n), err
	}
	expand := func(c byte) string { return string([]byte{c, c}) }
	var rs, gs, bs, as string
	switch len(h) {
	case 3:
		rs, gs, bs, as = expand(h[0]), expand(h[1]), expand(h[2]), "ff"
	case 4:
		rs, gs, bs, as = expand(h[0]), expand(h[1]), expand(h[2]), expand(h[3])
	case 6:
		rs, gs, bs, as = h[0:2], h[2:4], h[4:6], "ff"
	case 8:
		rs, gs, bs, as = h[0:2], h[2:4], h[4:6], h[6:8]
	default:
		return nil, fmt.Errorf("invalid color literal %q", hex)
	}
	r, err := parse(rs)
	if err != nil {
		return nil, err
	}
	g, err := parse(gs)
	if err != nil {
		return nil, err
	}
	b, err := parse(bs)
	if err != nil {
		return nil, err
	}
	av, err := parse(as)
	if err != nil {
		return nil, err
	}
	return value.RGBA(r, g, b, float64(av)/255), nil
}
