package eval

import (
	"fmt"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/csstree"
	"github.com/titpetric/scssgo/env"
	"github.com/titpetric/scssgo/value"
)

func (e *Evaluator) evalIf(s *ast.IfStatement, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) (controlResult, error) {
	for _, clause := range s.Clauses {
		if clause.Condition != nil {
			v, err := e.evalExpr(clause.Condition, frame)
			if err != nil {
				return noControl, err
			}
			if !v.Truthy() {
				continue
			}
		}
		child := frame.Push(env.Block)
		return e.evalBlock(clause.Body, child, out, selCtx)
	}
	return noControl, nil
}

func (e *Evaluator) evalFor(s *ast.ForStatement, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) (controlResult, error) {
	fromV, err := e.evalExpr(s.From, frame)
	if err != nil {
		return noControl, err
	}
	toV, err := e.evalExpr(s.To, frame)
	if err != nil {
		return noControl, err
	}
	from, ok := fromV.(value.Number)
	if !ok {
		return noControl, fmt.Errorf("@for: from value %s is not a number", fromV.String())
	}
	to, ok := toV.(value.Number)
	if !ok {
		return noControl, fmt.Errorf("@for: to value %s is not a number", toV.String())
	}

	start, end := int(from.Value), int(to.Value)
	step := 1
	if start > end {
		step = -1
	}
	if !s.Inclusive {
		end -= step
	}

	for i := start; (step > 0 && i <= end) || (step < 0 && i >= end); i += step {
		child := frame.Push(env.Block)
		child.SetLocal(s.Variable, value.Int(i))
		res, err := e.evalBlock(s.Body, child, out, selCtx)
		if err != nil {
			return noControl, err
		}
		if res.returned {
			return res, nil
		}
	}
	return noControl, nil
}

func (e *Evaluator) evalEach(s *ast.EachStatement, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) (controlResult, error) {
	listV, err := e.evalExpr(s.List, frame)
	if err != nil {
		return noControl, err
	}

	var rows [][]value.Value
	switch v := listV.(type) {
	case *value.Map:
		for i, k := range v.Keys() {
			rows = append(rows, []value.Value{k, v.Values()[i]})
		}
	case *value.List:
		for _, item := range v.Items {
			rows = append(rows, eachRow(item, len(s.Variables)))
		}
	default:
		rows = append(rows, eachRow(v, len(s.Variables)))
	}

	for _, row := range rows {
		child := frame.Push(env.Block)
		for i, varName := range s.Variables {
			if i < len(row) {
				child.SetLocal(varName, row[i])
			} else {
				child.SetLocal(varName, value.Null{})
			}
		}
		res, err := e.evalBlock(s.Body, child, out, selCtx)
		if err != nil {
			return noControl, err
		}
		if res.returned {
			return res, nil
		}
	}
	return noControl, nil
}

// eachRow destructures one @each iteration's item against the number of
// loop variables: a nested list with exactly n items destructures
// component-wise, otherwise the whole item is bound to the first variable.
func eachRow(item value.Value, n int) []value.Value {
	if n <= 1 {
		return []value.Value{item}
	}
	if l, ok := item.(*value.List); ok && l.Len() == n {
		return append([]value.Value{}, l.Items...)
	}
	return []value.Value{item}
}

// evalWhile implements @while with the documented first-iteration quirk: the
// whole loop runs inside one Loop-kind frame pushed once, rather than a
// fresh frame per iteration, so a variable assigned in the body is visible
// both to the next condition re-check and the next iteration's body.
func (e *Evaluator) evalWhile(s *ast.WhileStatement, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) (controlResult, error) {
	loop := frame.Push(env.Loop)
	const maxIterations = 100000
	for i := 0; i < maxIterations; i++ {
		cond, err := e.evalExpr(s.Condition, loop)
		if err != nil {
			return noControl, err
		}
		if !cond.Truthy() {
			return noControl, nil
		}
		res, err := e.evalBlock(s.Body, loop, out, selCtx)
		if err != nil {
			return noControl, err
		}
		if res.returned {
			return res, nil
		}
	}
	return noControl, fmt.Errorf("@while: too many iterations, possible infinite loop")
}

func (e *Evaluator) evalInclude(s *ast.IncludeStatement, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) (controlResult, error) {
	mx, err := e.lookupMixin(s.Namespace, s.Name, frame)
	if err != nil {
		return noControl, err
	}
	positional, named, err := e.splitArgs(s.Args, frame)
	if err != nil {
		return noControl, err
	}
	var content *contentClosure
	if s.Content != nil {
		content = &contentClosure{block: s.Content, closure: frame, args: s.ContentArgs}
	}
	if err := e.callUserMixin(mx, positional, named, content, out, selCtx); err != nil {
		return noControl, err
	}
	return noControl, nil
}

func (e *Evaluator) lookupMixin(namespace, name string, frame *env.Frame) (*UserMixin, error) {
	if namespace != "" {
		mod, ok := e.modules[namespace]
		if !ok {
			return nil, fmt.Errorf("there is no module with the namespace %q", namespace)
		}
		mx, ok := mod.Root.LookupMixin(name)
		if !ok {
			return nil, fmt.Errorf("undefined mixin %s.%s", namespace, name)
		}
		return mx.(*UserMixin), nil
	}
	mx, ok := frame.LookupMixin(name)
	if !ok {
		return nil, fmt.Errorf("undefined mixin %s", name)
	}
	return mx.(*UserMixin), nil
}

func (e *Evaluator) evalContent(s *ast.ContentStatement, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) (controlResult, error) {
	if len(e.contentStack) == 0 {
		return noControl, nil
	}
	content := e.contentStack[len(e.contentStack)-1]
	if content == nil {
		return noControl, nil
	}
	positional, named, err := e.splitArgs(s.Args, frame)
	if err != nil {
		return noControl, err
	}
	child := content.closure.Push(env.Block)
	if _, err := e.bindArgs(content.args, positional, named, child); err != nil {
		return noControl, fmt.Errorf("@content: %w", err)
	}
	return e.evalBlock(content.block, child, out, selCtx)
}
