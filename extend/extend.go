// Package extend implements `@extend`'s selector weave/unify algorithm: a
// style rule that `@extend`s a selector (commonly a `%placeholder`) has its
// target selector's rules grow an extra comma-separated member wherever the
// extending selector's simple selectors fully cover the target's compound,
// transitively, to a fixed point.
//
// Grounded on spec.md §4.I's description of the algorithm: no teacher file
// implements anything like it (LESS has no `@extend`), so this package's
// shape is this repo's own generalization of the Sass weave/unify
// description, built the way the rest of this codebase builds things with
// no direct teacher analogue (see parser/stmt.go's prelude-disambiguation
// comment for the same situation) — index-keyed maps of canonical selector
// text rather than the pointer/cycle-heavy arena dart-sass's C++ ancestor
// used, continuing this repo's REDESIGN FLAGS choice of arena-free,
// GC-backed data structures throughout.
package extend

import (
	"fmt"

	"github.com/titpetric/scssgo/ast"
)

// maxIterations bounds the transitive-extension fixed-point search; a
// genuine extend cycle (`.a { @extend .b } .b { @extend .a }` by way of two
// distinct style rules) would otherwise loop forever instead of erroring.
const maxIterations = 64

// DeprecationFunc receives a human-readable deprecation notice, e.g. for
// extending a compound selector, routed to the caller's warning channel
// (eval.New wires this to the evaluator's deprecation warnings).
type DeprecationFunc func(msg string)

// Extension is one registered `@extend`.
type Extension struct {
	Target   *ast.CompoundSelector
	Extender *ast.ComplexSelector
	Optional bool
	Span     ast.Span
	// Media is the merged @media query text enclosing the `@extend` itself
	// ("" when it appears outside any @media), recorded so ApplyToList can
	// reject weaving this extension into a style rule declared in an
	// incompatible media context (spec §4.I's mediaContexts map).
	Media   string
	matched bool
}

// Extender accumulates every `@extend` seen during evaluation; they are
// applied to every emitted style rule's selector list once the whole
// stylesheet has been evaluated.
type Extender struct {
	extensions []*Extension
	OnDeprecation DeprecationFunc
}

// New returns an empty Extender.
func New() *Extender { return &Extender{} }

// Register records one `@extend target` appearing on behalf of extender,
// media being the merged @media query text enclosing the `@extend` ("" if
// none). A target naming more than one simple selector (`@extend .a.b`) is
// flagged with a deprecation notice, matching dart-sass's compound-extend
// deprecation (spec.md §9).
func (e *Extender) Register(target *ast.CompoundSelector, extender *ast.ComplexSelector, optional bool, span ast.Span, media string) {
	if len(target.Simples) > 1 && e.OnDeprecation != nil {
		e.OnDeprecation(fmt.Sprintf("@extend %s is extending a compound selector; this is deprecated", RenderCompound(target)))
	}
	e.extensions = append(e.extensions, &Extension{Target: target, Extender: extender, Optional: optional, Span: span, Media: media})
}

// CheckUnsatisfied returns an error naming the first non-optional
// `@extend` that never matched any selector in the stylesheet.
func (e *Extender) CheckUnsatisfied() error {
	for _, ext := range e.extensions {
		if !ext.Optional && !ext.matched {
			return fmt.Errorf("%q failed to @extend %s: no selector in this stylesheet matches %s",
				RenderComplex(ext.Extender), RenderCompound(ext.Target), RenderCompound(ext.Target))
		}
	}
	return nil
}

// ApplyToList returns list with every transitively-applicable extension
// woven in, deduplicated and order-preserving (original members first).
// media is the merged @media query text enclosing list's own style rule
// ("" if none); an extension registered in an incompatible media context
// is rejected with an extend-across-media error instead of being woven in.
func (e *Extender) ApplyToList(list *ast.SelectorList, media string) (*ast.SelectorList, error) {
	seen := map[string]*ast.ComplexSelector{}
	var order []string
	add := func(c *ast.ComplexSelector) {
		key := RenderComplex(c)
		if _, ok := seen[key]; !ok {
			seen[key] = c
			order = append(order, key)
		}
	}
	for _, m := range list.Members {
		add(m)
	}

	for iter := 0; iter < maxIterations; iter++ {
		grew := false
		for _, key := range append([]string{}, order...) {
			c := seen[key]
			extended, err := e.extendComplex(c, media)
			if err != nil {
				return nil, err
			}
			for _, ext := range extended {
				k := RenderComplex(ext)
				if _, ok := seen[k]; !ok {
					seen[k] = ext
					order = append(order, k)
					grew = true
				}
			}
		}
		if !grew {
			members := make([]*ast.ComplexSelector, len(order))
			for i, k := range order {
				members[i] = seen[k]
			}
			return &ast.SelectorList{Span: list.Span, Members: members}, nil
		}
	}
	return nil, fmt.Errorf("endless extend detected while extending %q", RenderSelectorList(list))
}

// mediaCompatible reports whether a selector declared in selMedia may be
// extended by an `@extend` that appeared in extMedia. Sass only forbids the
// weave when both sides are nested inside a (different) @media: an extend
// or a target outside any @media is compatible with anything.
func mediaCompatible(extMedia, selMedia string) bool {
	return extMedia == "" || selMedia == "" || extMedia == selMedia
}

// candidate is one way a single chain position can be realized: either the
// original compound, unchanged, or an extender's component chain spliced in
// its place.
type candidate struct {
	components []ast.ComplexComponent
}

func (e *Extender) extendComplex(c *ast.ComplexSelector, media string) ([]*ast.ComplexSelector, error) {
	candLists := make([][]candidate, len(c.Components))
	any := false
	for i, comp := range c.Components {
		cands, err := e.extendCompound(comp, media)
		if err != nil {
			return nil, err
		}
		if len(cands) > 1 {
			any = true
		}
		candLists[i] = cands
	}
	if !any {
		return nil, nil
	}

	chains := cartesian(candLists)
	out := make([]*ast.ComplexSelector, 0, len(chains))
	for _, chain := range chains {
		out = append(out, &ast.ComplexSelector{
			Span:              c.Span,
			Components:        chain,
			LeadingCombinator: c.LeadingCombinator,
		})
	}
	return out, nil
}

// extendCompound returns every way comp's position in the chain can be
// realized: always the unchanged original, plus one candidate per
// registered extension whose target's simple selectors are fully covered
// by comp's own simples. An extension whose target matches but whose media
// context is incompatible with media is rejected outright unless it is
// `@extend ... !optional`, in which case it is simply skipped.
func (e *Extender) extendCompound(comp ast.ComplexComponent, media string) ([]candidate, error) {
	cands := []candidate{{components: []ast.ComplexComponent{comp}}}
	for _, ext := range e.extensions {
		remainder, ok := subtractSimples(comp.Compound.Simples, ext.Target.Simples)
		if !ok {
			continue
		}
		if !mediaCompatible(ext.Media, media) {
			ext.matched = true
			if ext.Optional {
				continue
			}
			return nil, fmt.Errorf("you may not @extend selectors across media queries: %q failed to @extend %s",
				RenderComplex(ext.Extender), RenderCompound(ext.Target))
		}
		ext.matched = true
		chain := spliceExtender(ext.Extender, remainder, comp.Combinator)
		cands = append(cands, candidate{components: chain})
	}
	return cands, nil
}

// subtractSimples reports whether every simple in target textually appears
// in have, and if so returns have's remaining simples in their original
// order.
func subtractSimples(have []ast.SimpleSelector, target []ast.SimpleSelector) ([]ast.SimpleSelector, bool) {
	used := make([]bool, len(have))
	for _, t := range target {
		tKey := RenderSimple(t)
		found := false
		for i, h := range have {
			if used[i] {
				continue
			}
			if RenderSimple(h) == tKey {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	var rest []ast.SimpleSelector
	for i, h := range have {
		if !used[i] {
			rest = append(rest, h)
		}
	}
	return rest, true
}

// spliceExtender builds the component chain replacing a matched compound:
// extender's own chain, with remainder appended to its final compound's
// simples, and the replaced position's original combinator reattached to
// the chain's first component (the extender's own leading combinator, if
// any, only matters when it is itself later spliced into a further chain).
func spliceExtender(extender *ast.ComplexSelector, remainder []ast.SimpleSelector, leadCombinator string) []ast.ComplexComponent {
	chain := make([]ast.ComplexComponent, len(extender.Components))
	copy(chain, extender.Components)
	last := chain[len(chain)-1]
	if len(remainder) > 0 {
		simples := make([]ast.SimpleSelector, 0, len(last.Compound.Simples)+len(remainder))
		simples = append(simples, last.Compound.Simples...)
		simples = append(simples, remainder...)
		last = ast.ComplexComponent{
			Combinator: last.Combinator,
			Compound:   &ast.CompoundSelector{Span: last.Compound.Span, Simples: simples},
		}
		chain[len(chain)-1] = last
	}
	chain[0] = ast.ComplexComponent{Combinator: leadCombinator, Compound: chain[0].Compound}
	return chain
}

func cartesian(lists [][]candidate) [][]ast.ComplexComponent {
	result := [][]ast.ComplexComponent{{}}
	for _, list := range lists {
		var next [][]ast.ComplexComponent
		for _, prefix := range result {
			for _, cand := range list {
				chain := make([]ast.ComplexComponent, 0, len(prefix)+len(cand.components))
				chain = append(chain, prefix...)
				chain = append(chain, cand.components...)
				next = append(next, chain)
				if len(next) > 4096 {
					return next
				}
			}
		}
		result = next
	}
	return result
}
