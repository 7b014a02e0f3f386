package eval

import (
	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/csstree"
)

// hostForStyleRule finds where a newly written style rule actually belongs
// in the output tree. CSS has no syntax for one rule nested inside another
// the way `&`-nesting lets Sass write it, so a style rule whose lexical
// parent is itself a style rule bubbles out to that rule's own host
// (the nearest ancestor that can legally contain a style rule: the
// stylesheet root, a media/supports rule, or a plain at-rule's block).
func hostForStyleRule(out csstree.Container) csstree.Container {
	for {
		sr, ok := out.(*csstree.StyleRule)
		if !ok {
			return out
		}
		parent, ok := sr.ParentNode().(csstree.Container)
		if !ok {
			return out
		}
		out = parent
	}
}

// wrapperBody returns the container a media/supports/at-rule's own body
// should be evaluated into, once the wrapper node itself has already been
// attached at the stylesheet root. When the construct was written directly
// inside a style rule (`.a { @media ... { color: blue; } }`), that style
// rule is cloned as the wrapper's first child so bare declarations in the
// body still have a selector to land on; duplicate is false for at-rules
// (@font-face, @page) where Sass does not perform this duplication.
func wrapperBody(wrapper csstree.Container, out csstree.Container, body *ast.Block, duplicate bool) csstree.Container {
	if duplicate && hasDirectDeclaration(body) {
		if sr, ok := out.(*csstree.StyleRule); ok {
			return csstree.NewStyleRule(wrapper, sr.Selector)
		}
	}
	return wrapper
}

// hasDirectDeclaration reports whether b has at least one plain property
// declaration as an immediate child (as opposed to one nested inside a
// further selector or at-rule, which attaches to its own host and needs no
// duplicated selector here).
func hasDirectDeclaration(b *ast.Block) bool {
	if b == nil {
		return false
	}
	for _, c := range b.Children {
		if _, ok := c.(*ast.Declaration); ok {
			return true
		}
	}
	return false
}
