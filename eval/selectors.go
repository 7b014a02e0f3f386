package eval

import (
	"strings"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/csstree"
	"github.com/titpetric/scssgo/env"
	"github.com/titpetric/scssgo/extend"
	"github.com/titpetric/scssgo/parser"
)

// evalStyleRule resolves s's selector text (interpolation first, then `&`
// nesting against selCtx), re-parses the combined text into a structured
// selector so later @extend application can match against it, emits a
// csstree.StyleRule as a placeholder (its final Selector text is filled in
// by finishExtends once every @extend in the stylesheet has been seen), and
// recurses into the body with the new selector as the nesting context.
func (e *Evaluator) evalStyleRule(s *ast.StyleRule, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) error {
	text, err := e.evalInterpolationText(s.SelectorText, frame)
	if err != nil {
		return err
	}
	resolved, err := e.resolveSelectorText(text, selCtx)
	if err != nil {
		return err
	}

	node := csstree.NewStyleRule(hostForStyleRule(out), extend.RenderSelectorList(resolved))
	e.pending = append(e.pending, pendingRule{node: node, selector: resolved, media: e.currentMedia()})

	child := frame.Push(env.Block)
	_, err = e.evalBlock(s.Body, child, node, resolved)
	return err
}

// resolveSelectorText combines a (already interpolation-resolved) selector
// source string with the enclosing selCtx ("&" nesting) and reparses it,
// since package extend and csstree only ever deal in already-nested
// selector text.
func (e *Evaluator) resolveSelectorText(text string, selCtx *ast.SelectorList) (*ast.SelectorList, error) {
	entry := e.Sources.RegisterImported("<selector>", text)
	p := parser.New(entry, entry.ID)
	child, err := p.ParseSelectorList(text, 0)
	if err != nil {
		return nil, err
	}
	if selCtx == nil {
		return child, nil
	}
	combined := nestSelectorLists(selCtx, child)
	nestedEntry := e.Sources.RegisterImported("<nested-selector>", combined)
	np := parser.New(nestedEntry, nestedEntry.ID)
	return np.ParseSelectorList(combined, 0)
}

// nestSelectorLists implements Sass nesting as a textual macro expansion:
// every `&` in a rendered child complex selector is replaced by the parent
// complex selector's own rendered text (verbatim, including any literal
// suffix already glued to the `&` by the selector grammar, e.g. "&-active"
// renders as the text "&-active" so the substitution naturally produces
// ".btn-active"); a child member with no `&` at all is joined to its parent
// with a descendant combinator instead.
func nestSelectorLists(parent, child *ast.SelectorList) string {
	parentTexts := make([]string, len(parent.Members))
	for i, m := range parent.Members {
		parentTexts[i] = extend.RenderComplex(m)
	}
	var out []string
	for _, cm := range child.Members {
		childText := extend.RenderComplex(cm)
		for _, pText := range parentTexts {
			if strings.Contains(childText, "&") {
				out = append(out, strings.ReplaceAll(childText, "&", pText))
			} else {
				out = append(out, pText+" "+childText)
			}
		}
	}
	return strings.Join(out, ", ")
}

// parseSelectorText is used by @extend's target/extender operands, which
// are plain interpolation-resolved text rather than a parsed selector.
func (e *Evaluator) parseSelectorText(text string) (*ast.SelectorList, error) {
	entry := e.Sources.RegisterImported("<extend-selector>", text)
	p := parser.New(entry, entry.ID)
	return p.ParseSelectorList(text, 0)
}
