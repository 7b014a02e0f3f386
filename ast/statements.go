package ast

// Statement is implemented by every node that can appear in a stylesheet or
// block body.
type Statement interface {
	stmtNode()
	Position() Span
}

type stmtBase struct{ Span Span }

func (s stmtBase) stmtNode()       {}
func (s stmtBase) Position() Span { return s.Span }

// Block is a parenthesized, braced or indented sequence of statements owned
// by whichever construct introduces it (style rule, at-rule, mixin body,
// control-flow arm, ...). The evaluator attaches a scope frame per Block at
// evaluation time, not at parse time.
type Block struct {
	Span       Span
	Children   []Statement
}

// Stylesheet is the root of one parsed source file.
type Stylesheet struct {
	stmtBase
	Body *Block
}

// StyleRule is `selector { ... }`. SelectorText is unparsed (kept as an
// interpolation-aware token run) because selector parsing must happen after
// interpolation is resolved and after the parent selector is known.
type StyleRule struct {
	stmtBase
	SelectorText *Interpolation
	Body         *Block
}

// Declaration is a CSS property declaration, e.g. `color: red;` or, with a
// nested Body, `font: { family: sans-serif; size: 12px; }`.
type Declaration struct {
	stmtBase
	Property *Interpolation
	Value    Expr // nil when only Body is present
	Body     *Block // non-nil for nested-property shorthand
}

// AtRule is a generic, unrecognized-by-the-core-grammar at-rule
// (`@font-face`, `@keyframes`, `@page`, vendor at-rules, ...), passed through
// to the CSS output largely unexamined aside from interpolation resolution.
type AtRule struct {
	stmtBase
	Name    string
	Prelude *Interpolation // nil if no prelude
	Body    *Block         // nil for a statement-form at-rule (ends in `;`)
}

// MediaRule is `@media <query-list> { ... }`.
type MediaRule struct {
	stmtBase
	Query *Interpolation
	Body  *Block
}

// SupportsRule is `@supports <condition> { ... }`.
type SupportsRule struct {
	stmtBase
	Condition *SupportsExpr
	Body      *Block
}

// AtRootRule is `@at-root [(query)] { ... }` or the shorthand
// `@at-root <selector> { ... }` (query omitted, body directly a style rule).
type AtRootRule struct {
	stmtBase
	Query *Interpolation // nil for the default "all but import rules" query
	Body  *Block
}

// IfClause is one `@if`/`@else if`/`@else` arm.
type IfClause struct {
	Condition Expr // nil for the trailing bare `@else`
	Body      *Block
}

// IfStatement is the full `@if ... @else if ... @else ...` chain.
type IfStatement struct {
	stmtBase
	Clauses []IfClause
}

// ForStatement is `@for $i from <start> [through|to] <end> { ... }`.
type ForStatement struct {
	stmtBase
	Variable  string
	From, To  Expr
	Inclusive bool // true for "through", false for "to"
	Body      *Block
}

// EachStatement is `@each $a[, $b...] in <list-expr> { ... }`.
type EachStatement struct {
	stmtBase
	Variables []string
	List      Expr
	Body      *Block
}

// WhileStatement is `@while <cond> { ... }`.
type WhileStatement struct {
	stmtBase
	Condition Expr
	Body      *Block
}

// Argument is one formal parameter in a mixin/function signature.
type Argument struct {
	Name    string
	Default Expr // nil if required
	Rest    bool  // true for a trailing `...` parameter
}

// MixinDecl is `@mixin name($args...) { ... }`.
type MixinDecl struct {
	stmtBase
	Name       string
	Args       []Argument
	AcceptsContent bool // true if body contains @content, informational only
	Body       *Block
}

// FunctionDecl is `@function name($args...) { ... }`.
type FunctionDecl struct {
	stmtBase
	Name string
	Args []Argument
	Body *Block
}

// ReturnStatement is `@return <expr>;`, legal only inside a FunctionDecl body.
type ReturnStatement struct {
	stmtBase
	Value Expr
}

// IncludeStatement is `@include name[.namespace](args...) [{ content }]`.
type IncludeStatement struct {
	stmtBase
	Namespace string
	Name      string
	Args      []ArgumentPair
	// ContentArgs names the `using ($a, $b)` parameters bound when the
	// included mixin invokes @content.
	ContentArgs []Argument
	Content     *Block // nil if no block passed
}

// ContentStatement is the bare `@content [(args...)];` inside a mixin body.
type ContentStatement struct {
	stmtBase
	Args []ArgumentPair
}

// ExtendStatement is `@extend <selector> [!optional];`.
type ExtendStatement struct {
	stmtBase
	Selector *Interpolation
	Optional bool
}

// AssignStatement is `$name: <expr> [!default] [!global];`.
type AssignStatement struct {
	stmtBase
	Namespace string
	Name      string
	Value     Expr
	Default   bool
	Global    bool
}

// DebugStatement, WarnStatement, ErrorStatement are `@debug`/`@warn`/`@error`.
type DebugStatement struct {
	stmtBase
	Value Expr
}

type WarnStatement struct {
	stmtBase
	Value Expr
}

type ErrorStatement struct {
	stmtBase
	Value Expr
}

// ImportArgument is one comma-separated argument to `@import`: either a
// plain-CSS passthrough (url(), media query present, or an http(s) URL) or a
// Sass partial/module reference to resolve through the loader.
type ImportArgument struct {
	Span      Span
	URL       string
	IsPlainCSS bool
	MediaQuery *Interpolation // nil unless a trailing media query is present
}

// ImportRule is legacy `@import "a", "b" screen;`.
type ImportRule struct {
	stmtBase
	Imports []ImportArgument
}

// ConfigVar is one `$name: expr` entry inside a `@use ... with (...)` or
// `@forward ... with (...)` configuration clause.
type ConfigVar struct {
	Name    string
	Value   Expr
	Default bool
}

// UseRule is `@use "url" [as namespace|*] [with (...)];`.
type UseRule struct {
	stmtBase
	URL       string
	Namespace string // "" means derive from URL, "*" means load unprefixed
	Config    []ConfigVar
}

// ForwardRule is `@forward "url" [as prefix-*] [show|hide ...] [with (...)];`.
type ForwardRule struct {
	stmtBase
	URL       string
	Prefix    string
	Show      []string // empty if ShowAll/HideList is what's used; mutually exclusive with Hide
	Hide      []string
	Config    []ConfigVar
}

// LoudComment is `/* ... */`, preserved in output (possibly with
// interpolation resolved) unless the output style strips comments.
type LoudComment struct {
	stmtBase
	Text *Interpolation
}

// SilentComment is `// ...`, never emitted.
type SilentComment struct {
	stmtBase
	Text string
}
