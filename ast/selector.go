package ast

// SelectorList is a comma-separated list of complex selectors, the top-level
// grammar produced for a style rule's selector and for selector.* function
// arguments.
type SelectorList struct {
	Span     Span
	Members  []*ComplexSelector
}

// ComplexSelector is a sequence of compound selectors joined by combinators
// (descendant, `>`, `+`, `~`), e.g. `.a > .b ~ .c`.
type ComplexSelector struct {
	Span        Span
	Components  []ComplexComponent
	// LeadingCombinator supports bare-combinator selectors used internally by
	// the extender when weaving partial selectors together.
	LeadingCombinator string
}

// ComplexComponent pairs a compound selector with the combinator that
// precedes it ("" for the first component, meaning plain descendant-space).
type ComplexComponent struct {
	Combinator string // "" | ">" | "+" | "~"
	Compound   *CompoundSelector
}

// CompoundSelector is a run of simple selectors with no combinator between
// them, e.g. `a.btn.btn--primary:hover`.
type CompoundSelector struct {
	Span    Span
	Simples []SimpleSelector
}

// SimpleSelector is implemented by each atomic selector kind.
type SimpleSelector interface {
	simpleSelectorNode()
	Position() Span
}

type simpleBase struct{ Span Span }

func (s simpleBase) simpleSelectorNode() {}
func (s simpleBase) Position() Span       { return s.Span }

// TypeSelector matches an element name, e.g. `div`, `svg|rect`.
type TypeSelector struct {
	simpleBase
	Namespace *string // nil means unspecified, "" means explicit empty namespace
	Name      *Interpolation
}

// UniversalSelector is `*` (optionally namespaced).
type UniversalSelector struct {
	simpleBase
	Namespace *string
}

// IDSelector is `#foo`.
type IDSelector struct {
	simpleBase
	Name *Interpolation
}

// ClassSelector is `.foo`.
type ClassSelector struct {
	simpleBase
	Name *Interpolation
}

// PlaceholderSelector is `%foo`, only legal in the source stylesheet, never
// emitted unless extended and kept alive by a non-optional `@extend`.
type PlaceholderSelector struct {
	simpleBase
	Name *Interpolation
}

// ParentSelector is `&`, optionally with a trailing suffix glued directly
// onto the parent (e.g. `&-suffix`).
type ParentSelector struct {
	simpleBase
	Suffix *Interpolation // nil if no suffix
}

// AttributeSelector is `[name op value flags]`.
type AttributeSelector struct {
	simpleBase
	Namespace *string
	Name      *Interpolation
	Operator  string // "" | "=" | "~=" | "|=" | "^=" | "$=" | "*="
	Value     *Interpolation // nil if Operator == ""
	Quoted    bool
	Flags     string // "" | "i" | "s"
}

// PseudoSelector covers both pseudo-classes (`:hover`) and pseudo-elements
// (`::before`), with optional functional argument syntax and, for selector
// pseudo-classes like `:not()`/`:is()`/`:has()`, a nested selector list.
type PseudoSelector struct {
	simpleBase
	Element  bool // true for `::`
	Name     *Interpolation
	// Argument is the raw textual argument for non-selector functional
	// pseudos (e.g. `:nth-child(2n+1)`); nil if no parens or if Selector is set.
	Argument *Interpolation
	Selector *SelectorList // non-nil for :not/:is/:where/:has/:matches/:current/:host/:host-context/:slotted
	Unquote  bool
}
