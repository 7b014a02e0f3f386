package ast

// Expr is the interface implemented by every expression node.
type Expr interface {
	exprNode()
	Position() Span
}

type exprBase struct{ Span Span }

func (e exprBase) exprNode()      {}
func (e exprBase) Position() Span { return e.Span }

// NumberLit is a literal number, optionally with a unit written directly in
// source (e.g. `10px`, `1.5em`, `50%`).
type NumberLit struct {
	exprBase
	Value float64
	Unit  string
}

// ColorLit is a literal color written as a hex code or recognized keyword.
type ColorLit struct {
	exprBase
	Hex string // normalized #rrggbbaa the scanner/parser produced
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	exprBase
	Value bool
}

// NullLit is the literal `null`.
type NullLit struct{ exprBase }

// StringLit is a string with interpolation holes. Quoted strings carry
// HasQuotes=true; unquoted identifiers/keywords parse to StringLit with
// HasQuotes=false.
type StringLit struct {
	exprBase
	Text       *Interpolation
	HasQuotes  bool
}

// ListExpr is a literal list, e.g. `1px solid red` or `(1, 2, 3)`.
type ListExpr struct {
	exprBase
	Items      []Expr
	Separator  string // "space" | "comma" | "slash" | "undecided"
	Brackets   bool
}

// MapExpr is a literal map `(k1: v1, k2: v2)`.
type MapExpr struct {
	exprBase
	Keys   []Expr
	Values []Expr
}

// VariableRef is a `$name` reference, optionally namespaced (`module.$name`).
type VariableRef struct {
	exprBase
	Namespace string
	Name      string
}

// ArgumentPair is one positional-or-named actual argument to a call.
type ArgumentPair struct {
	Name  string // empty for positional
	Value Expr
	Rest  bool // true for `...` spread
}

// FunctionCall is a call to a built-in or user-defined function, or an
// unrecognized plain-CSS function (e.g. `calc(...)`, `url(...)`) that the
// evaluator emits verbatim when no function of that name is defined.
type FunctionCall struct {
	exprBase
	Namespace string
	Name      string
	Args      []ArgumentPair
}

// IfCall models the lazily-evaluated global `if($cond, $if-true, $if-false)`
// function: only the taken branch is evaluated.
type IfCall struct {
	exprBase
	Args []ArgumentPair
}

// BinaryOp covers arithmetic, comparison, and boolean binary operators.
// Operator is one of: "or" "and" "==" "!=" "<" "<=" ">" ">=" "+" "-" "*" "/" "%".
type BinaryOp struct {
	exprBase
	Left, Right Expr
	Operator    string
	// Parenthesized records whether this node (or an ancestor up to the
	// nearest parenthesization) is wrapped in parens, which disables the
	// slash-pair memory for a `/` operator per spec.md §4.C.
	Parenthesized bool
}

// UnaryOp covers unary `+ - / not`.
type UnaryOp struct {
	exprBase
	Operator string
	Operand  Expr
}

// Paren is an explicitly-parenthesized sub-expression; kept distinct from
// its operand so the slash-pair / calc-safe rules can see it.
type Paren struct {
	exprBase
	Inner Expr
}

// ParentSelectorRef is the `&` expression form (used in SassScript contexts
// like `selector.nest(&, ...)`; the plain `&` within a selector is parsed as
// part of the selector grammar, not here).
type ParentSelectorRef struct{ exprBase }

// ValueWrapper is an escape hatch carrying an already-evaluated value.Value
// (a parser never produces one; the evaluator synthesizes these when
// re-entering expression evaluation with a precomputed result, e.g. default
// argument values captured once).
type ValueWrapper struct {
	exprBase
	Value interface{}
}

// SelectorExpr wraps a parsed selector list used as a SassScript value,
// e.g. `&` inside `@at-root` or arguments to `selector.*` functions.
type SelectorExpr struct {
	exprBase
	List *SelectorList
}

// SupportsExpr models `@supports` condition expressions: `(feature: value)`,
// negation, and `and`/`or` combination, kept structured so the evaluator can
// interpolate inside feature values before handing the whole thing to the
// boolean query evaluator.
type SupportsExpr struct {
	exprBase
	Kind      string // "declaration" | "not" | "and" | "or" | "interpolation" | "function"
	Decl      *Declaration
	Operands  []*SupportsExpr
	Interp    *Interpolation
}
