// Package csstree is the plain-CSS node tree the evaluator builds and the
// render package walks: the output side of the compiler, as distinct from
// package ast which is the SCSS input side. It is grounded on the teacher's
// `dst` package (`dst/node.go`, `dst/types.go`) — a node-with-parent-pointer
// tree keyed by a NodeType tag — but repurposed from dst's original job
// (a pretty-printer's own input, re-serializing LESS back to LESS) into a
// CSS *output* tree: once something is a csstree.Node, it can only ever
// become CSS text, never be re-serialized as SCSS. See SPEC_FULL.md's
// Non-goals note on why `render` does not carry over `dst`'s formatter role.
package csstree

// Node is implemented by every node that can appear in the output tree.
type Node interface {
	cssNode()
	ParentNode() Node
	setParent(Node)
}

type base struct {
	parent Node
}

func (b *base) cssNode()          {}
func (b *base) ParentNode() Node  { return b.parent }
func (b *base) setParent(p Node)  { b.parent = p }

// Container is implemented by every node kind that can own children
// (Root, StyleRule, MediaRule, SupportsRule, AtRule-with-a-block,
// KeyframeBlock's owning @keyframes AtRule).
type Container interface {
	Node
	Children() []Node
	Append(Node)
}

type children struct {
	kids []Node
}

func (c *children) Children() []Node { return c.kids }

// Root is the top of one compilation's output tree.
type Root struct {
	base
	children
}

func NewRoot() *Root { return &Root{} }

func (r *Root) Append(n Node) {
	n.setParent(r)
	r.kids = append(r.kids, n)
}

// StyleRule is a selector block; Selector is the fully-resolved,
// already-extended selector list text (comma-joined complex selectors).
type StyleRule struct {
	base
	children
	Selector string
}

func NewStyleRule(parent Node, selector string) *StyleRule {
	n := &StyleRule{Selector: selector}
	attach(parent, n)
	return n
}

func (n *StyleRule) Append(c Node) { c.setParent(n); n.kids = append(n.kids, c) }

// Declaration is one resolved `property: value;` pair.
type Declaration struct {
	base
	Property string
	Value    string
	Custom   bool // true for a `--custom-property`, whose value is never reformatted
}

func NewDeclaration(parent Node, property, value string, custom bool) *Declaration {
	n := &Declaration{Property: property, Value: value, Custom: custom}
	attach(parent, n)
	return n
}

// AtRule is any at-rule the renderer doesn't model structurally
// (`@font-face`, `@page`, vendor at-rules, and `@keyframes`'s own header —
// its percentage/from/to blocks are KeyframeBlock children).
type AtRule struct {
	base
	children
	Name    string
	Prelude string
	HasBlock bool
}

func NewAtRule(parent Node, name, prelude string, hasBlock bool) *AtRule {
	n := &AtRule{Name: name, Prelude: prelude, HasBlock: hasBlock}
	attach(parent, n)
	return n
}

func (n *AtRule) Append(c Node) { c.setParent(n); n.kids = append(n.kids, c) }

// KeyframeBlock is one `from`/`to`/`37%` block inside an `@keyframes` AtRule.
type KeyframeBlock struct {
	base
	children
	Selector string
}

func NewKeyframeBlock(parent Node, selector string) *KeyframeBlock {
	n := &KeyframeBlock{Selector: selector}
	attach(parent, n)
	return n
}

func (n *KeyframeBlock) Append(c Node) { c.setParent(n); n.kids = append(n.kids, c) }

// MediaRule is `@media <query> { ... }`; kept distinct from AtRule so the
// evaluator's media-merge/intersection logic (nested @media combines queries
// with "and") has somewhere to attach the merged query text. The evaluator
// always attaches a MediaRule at the tree root (see eval.hostForStyleRule/
// wrapperBody) rather than nesting it under whatever it was lexically
// written inside, since plain CSS has no way to write one at-rule inside
// another the way SCSS nesting does.
type MediaRule struct {
	base
	children
	Query string
}

func NewMediaRule(parent Node, query string) *MediaRule {
	n := &MediaRule{Query: query}
	attach(parent, n)
	return n
}

func (n *MediaRule) Append(c Node) { c.setParent(n); n.kids = append(n.kids, c) }

// SupportsRule is `@supports <condition> { ... }`.
type SupportsRule struct {
	base
	children
	Condition string
}

func NewSupportsRule(parent Node, condition string) *SupportsRule {
	n := &SupportsRule{Condition: condition}
	attach(parent, n)
	return n
}

func (n *SupportsRule) Append(c Node) { c.setParent(n); n.kids = append(n.kids, c) }

// Comment is a loud (`/* ... */`) comment surviving into CSS output.
type Comment struct {
	base
	Text string
}

func NewComment(parent Node, text string) *Comment {
	n := &Comment{Text: text}
	attach(parent, n)
	return n
}

// Import is a plain-CSS `@import` passthrough (a URL, an http(s) import, or
// one carrying a media query) that the loader never tried to resolve as a
// Sass module.
type Import struct {
	base
	URL   string
	Media string
}

func NewImport(parent Node, url, media string) *Import {
	n := &Import{URL: url, Media: media}
	attach(parent, n)
	return n
}

// attach appends n to parent (if parent is a Container; a nil parent is
// only valid for the Root itself, which callers build with NewRoot and
// never attach anywhere).
func attach(parent Node, n Node) {
	if c, ok := parent.(Container); ok {
		c.Append(n)
	}
}
