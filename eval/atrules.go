package eval

import (
	"fmt"
	"strings"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/builtin"
	"github.com/titpetric/scssgo/csstree"
	"github.com/titpetric/scssgo/env"
	"github.com/titpetric/scssgo/loader"
	"github.com/titpetric/scssgo/value"
)

// evalInterpolationText resolves every #{...} hole in in, evaluating each
// expression in frame and stringifying its result the way a value appears
// when spliced into plain text (unquoted, even for a quoted String).
func (e *Evaluator) evalInterpolationText(in *ast.Interpolation, frame *env.Frame) (string, error) {
	if in == nil {
		return "", nil
	}
	if s, ok := in.Plain(); ok {
		return s, nil
	}
	var b strings.Builder
	for i, part := range in.Parts {
		b.WriteString(part)
		if i < len(in.Exprs) {
			v, err := e.evalExpr(in.Exprs[i], frame)
			if err != nil {
				return "", err
			}
			b.WriteString(unquotedString(v))
		}
	}
	return b.String(), nil
}

func unquotedString(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return s.Text
	}
	return v.String()
}

func (e *Evaluator) evalAtRule(s *ast.AtRule, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) error {
	prelude, err := e.evalInterpolationText(s.Prelude, frame)
	if err != nil {
		return err
	}
	// Every at-rule bubbles to the stylesheet root: CSS has no way to write
	// one at-rule lexically inside another the way SCSS nesting lets you.
	node := csstree.NewAtRule(e.root, s.Name, prelude, s.Body != nil)
	if s.Body == nil {
		return nil
	}
	child := frame.Push(env.Block)
	if strings.EqualFold(s.Name, "keyframes") {
		return e.evalKeyframes(s.Body, child, node)
	}
	duplicate := !strings.EqualFold(s.Name, "font-face") && !strings.EqualFold(s.Name, "page")
	body := wrapperBody(node, out, s.Body, duplicate)
	_, err = e.evalBlock(s.Body, child, body, selCtx)
	return err
}

// evalKeyframes handles `@keyframes name { from {} 50% {} to {} }`: each
// child is itself a selector-headed block (a percentage or from/to
// keyword), but none of it participates in `&` nesting or @extend.
func (e *Evaluator) evalKeyframes(body *ast.Block, frame *env.Frame, out *csstree.AtRule) error {
	for _, stmt := range body.Children {
		rule, ok := stmt.(*ast.StyleRule)
		if !ok {
			if _, err := e.evalStatement(stmt, frame, out, nil); err != nil {
				return err
			}
			continue
		}
		sel, err := e.evalInterpolationText(rule.SelectorText, frame)
		if err != nil {
			return err
		}
		kf := csstree.NewKeyframeBlock(out, sel)
		child := frame.Push(env.Block)
		if _, err := e.evalBlock(rule.Body, child, kf, nil); err != nil {
			return err
		}
	}
	return nil
}

// evalMediaRule merges a nested @media's query with any enclosing ones by
// straightforward "and"-joining the rendered condition text, since a media
// feature/type intersection is exactly what Sass nesting of @media means.
func (e *Evaluator) evalMediaRule(s *ast.MediaRule, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) error {
	query, err := e.evalInterpolationText(s.Query, frame)
	if err != nil {
		return err
	}
	merged := query
	if len(e.mediaStack) > 0 {
		merged = e.mediaStack[len(e.mediaStack)-1] + " and " + query
	}
	node := csstree.NewMediaRule(e.root, merged)
	e.mediaStack = append(e.mediaStack, merged)
	defer func() { e.mediaStack = e.mediaStack[:len(e.mediaStack)-1] }()

	body := wrapperBody(node, out, s.Body, true)
	child := frame.Push(env.Block)
	_, err = e.evalBlock(s.Body, child, body, selCtx)
	return err
}

// evalSupportsRule wires builtin.QueryFolder into a real call site: if the
// condition's every leaf declaration resolves to a statically known
// boolean, the @supports wrapper itself is optimized away (matching
// dart-sass's constant folding of conditions assembled from
// meta.feature-exists()-style interpolation); otherwise it's rendered
// through verbatim for the browser to evaluate.
func (e *Evaluator) evalSupportsRule(s *ast.SupportsRule, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) error {
	resolved, err := e.resolveSupportsExpr(s.Condition, frame)
	if err != nil {
		return err
	}
	folder := builtin.QueryFolder{Check: e.checkSupportsDeclaration}
	if truth, ok := folder.Fold(resolved); ok {
		if !truth {
			return nil
		}
		child := frame.Push(env.Block)
		_, err := e.evalBlock(s.Body, child, out, selCtx)
		return err
	}

	node := csstree.NewSupportsRule(e.root, renderSupportsExpr(resolved))
	body := wrapperBody(node, out, s.Body, true)
	child := frame.Push(env.Block)
	_, err = e.evalBlock(s.Body, child, body, selCtx)
	return err
}

// checkSupportsDeclaration implements builtin.QueryFolder's Check callback:
// a declaration folds to a constant only when its value expression, once
// evaluated, is itself a SassScript boolean (the idiom
// `@supports (display: #{if(meta.feature-exists("at-error"), "grid", "bogus")})`
// relies on). Any other declaration is browser-dependent and left alone.
func (e *Evaluator) checkSupportsDeclaration(d *ast.Declaration) (bool, bool) {
	if d == nil || d.Value == nil {
		return false, false
	}
	frame := env.NewFrame(env.Internal)
	v, err := e.evalExpr(d.Value, frame)
	if err != nil {
		return false, false
	}
	b, ok := v.(value.Boolean)
	return bool(b), ok
}

func (e *Evaluator) resolveSupportsExpr(cond *ast.SupportsExpr, frame *env.Frame) (*ast.SupportsExpr, error) {
	if cond == nil {
		return nil, nil
	}
	out := &ast.SupportsExpr{Kind: cond.Kind}
	switch cond.Kind {
	case "declaration":
		prop, err := e.evalInterpolationText(cond.Decl.Property, frame)
		if err != nil {
			return nil, err
		}
		v, err := e.evalExpr(cond.Decl.Value, frame)
		if err != nil {
			return nil, err
		}
		out.Decl = &ast.Declaration{
			Property: &ast.Interpolation{Parts: []string{prop}, PlainOK: true},
			Value:    &ast.ValueWrapper{Value: v},
		}
	case "not":
		inner, err := e.resolveSupportsExpr(cond.Operands[0], frame)
		if err != nil {
			return nil, err
		}
		out.Operands = []*ast.SupportsExpr{inner}
	case "and", "or":
		for _, o := range cond.Operands {
			r, err := e.resolveSupportsExpr(o, frame)
			if err != nil {
				return nil, err
			}
			out.Operands = append(out.Operands, r)
		}
	case "interpolation":
		text, err := e.evalInterpolationText(cond.Interp, frame)
		if err != nil {
			return nil, err
		}
		out.Interp = &ast.Interpolation{Parts: []string{text}, PlainOK: true}
	}
	return out, nil
}

func renderSupportsExpr(cond *ast.SupportsExpr) string {
	if cond == nil {
		return ""
	}
	switch cond.Kind {
	case "declaration":
		prop, _ := cond.Decl.Property.Plain()
		val := ""
		if lit, ok := cond.Decl.Value.(*ast.ValueWrapper); ok {
			if v, ok := lit.Value.(value.Value); ok {
				val = v.String()
			}
		}
		return "(" + prop + ": " + val + ")"
	case "not":
		return "not " + renderSupportsExpr(cond.Operands[0])
	case "and", "or":
		parts := make([]string, len(cond.Operands))
		for i, o := range cond.Operands {
			parts[i] = renderSupportsExpr(o)
		}
		return strings.Join(parts, " "+cond.Kind+" ")
	case "interpolation":
		text, _ := cond.Interp.Plain()
		return text
	default:
		return ""
	}
}

// evalAtRoot implements `@at-root`: body is evaluated with the nesting
// context reset to the stylesheet root, so its style rules attach directly
// to e.root instead of descending from selCtx. Query-based inclusion/
// exclusion ("with"/"without") is not modeled; every @at-root strips all
// ancestor selector nesting, the common case.
func (e *Evaluator) evalAtRoot(s *ast.AtRootRule, frame *env.Frame, out csstree.Container, _ *ast.SelectorList) error {
	child := frame.Push(env.Block)
	_, err := e.evalBlock(s.Body, child, e.root, nil)
	_ = out
	return err
}

// currentMedia returns the merged @media query text enclosing the point of
// evaluation right now, or "" when evaluation is not nested inside any
// @media at all.
func (e *Evaluator) currentMedia() string {
	if len(e.mediaStack) == 0 {
		return ""
	}
	return e.mediaStack[len(e.mediaStack)-1]
}

func (e *Evaluator) evalExtend(s *ast.ExtendStatement, frame *env.Frame, selCtx *ast.SelectorList) error {
	if selCtx == nil {
		return fmt.Errorf("@extend may only be used within a style rule")
	}
	text, err := e.evalInterpolationText(s.Selector, frame)
	if err != nil {
		return err
	}
	targetList, err := e.parseSelectorText(text)
	if err != nil {
		return err
	}
	media := e.currentMedia()
	for _, extender := range selCtx.Members {
		for _, m := range targetList.Members {
			if len(m.Components) != 1 {
				return fmt.Errorf("@extend %s: only a single compound selector may be extended", text)
			}
			e.Extender.Register(m.Components[0].Compound, extender, s.Optional, s.Span, media)
		}
	}
	return nil
}

func (e *Evaluator) evalImport(s *ast.ImportRule, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) error {
	for _, imp := range s.Imports {
		if imp.IsPlainCSS {
			media, err := e.evalInterpolationText(imp.MediaQuery, frame)
			if err != nil {
				return err
			}
			csstree.NewImport(out, imp.URL, media)
			continue
		}
		if err := e.importPartial(imp.URL, frame, out, selCtx); err != nil {
			return err
		}
	}
	return nil
}

// importPartial loads a Sass partial via the shared Loader/parser and
// splices its statements directly into the importing scope: unlike @use,
// @import shares variables/mixins/functions with its importer, implemented
// here simply by evaluating the imported body in an Import-kind child of
// the current frame instead of a fresh Module frame.
func (e *Evaluator) importPartial(url string, frame *env.Frame, out csstree.Container, selCtx *ast.SelectorList) error {
	if e.Loader == nil {
		return fmt.Errorf("cannot resolve @import %q: no loader configured", url)
	}
	resolved, err := e.Loader.Resolve(url, ".")
	if err != nil {
		return err
	}
	if err := e.Loader.Enter(resolved.CanonicalPath); err != nil {
		return err
	}
	defer e.Loader.Leave()

	entry := e.Sources.RegisterImported(resolved.CanonicalPath, resolved.Text)
	sheet, err := parseSheet(entry)
	if err != nil {
		return err
	}
	child := frame.Push(env.Import)
	_, err = e.evalBlock(sheet.Body, child, out, selCtx)
	return err
}

func (e *Evaluator) evalUse(s *ast.UseRule, frame *env.Frame) error {
	mod, err := e.loadModule(s.URL, s.Config, frame)
	if err != nil {
		return err
	}
	ns := s.Namespace
	if ns == "" {
		ns = loader.NamespaceFromURL(s.URL)
	}
	// A `*` namespace ("load unprefixed") registers the module under the
	// empty namespace, so `.$var`/`.fn()` references with no namespace
	// prefix still resolve through the usual namespaced lookup path.
	if ns == "*" {
		ns = ""
	}
	e.modules[ns] = mod
	return nil
}

func (e *Evaluator) evalForward(s *ast.ForwardRule, frame *env.Frame) error {
	_, err := e.loadModule(s.URL, s.Config, frame)
	return err
}

func (e *Evaluator) loadModule(url string, config []ast.ConfigVar, frame *env.Frame) (*env.Module, error) {
	if e.Loader == nil {
		return nil, fmt.Errorf("cannot resolve @use %q: no loader configured", url)
	}
	resolved, err := e.Loader.Resolve(url, ".")
	if err != nil {
		return nil, err
	}
	if m, ok := e.Cache.Get(resolved.CanonicalPath); ok {
		return m, nil
	}
	if e.Cache.IsLoading(resolved.CanonicalPath) {
		return nil, fmt.Errorf("module loop: %s is already loading", resolved.CanonicalPath)
	}
	e.Cache.MarkLoading(resolved.CanonicalPath)

	mod := env.NewModule(resolved.CanonicalPath)
	for _, cv := range config {
		v, err := e.evalExpr(cv.Value, frame)
		if err != nil {
			return nil, err
		}
		if cv.Default {
			mod.Root.SetDefault(cv.Name, v)
		} else {
			mod.Root.SetLocal(cv.Name, v)
		}
	}

	entry := e.Sources.RegisterImported(resolved.CanonicalPath, resolved.Text)
	sheet, err := parseSheet(entry)
	if err != nil {
		return nil, err
	}
	if err := e.Loader.Enter(resolved.CanonicalPath); err != nil {
		return nil, err
	}
	defer e.Loader.Leave()

	sink := csstree.NewRoot()
	if _, err := e.evalBlock(sheet.Body, mod.Root, sink, nil); err != nil {
		return nil, err
	}
	for _, n := range sink.Children() {
		e.root.Append(n)
	}

	e.Cache.Store(resolved.CanonicalPath, mod)
	return mod, nil
}
