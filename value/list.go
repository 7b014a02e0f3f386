package value

import (
	"fmt"
	"strings"
)

// Separator names the three ways a Sass list can be written.
type Separator string

const (
	SepSpace     Separator = "space"
	SepComma     Separator = "comma"
	SepSlash     Separator = "slash"
	SepUndecided Separator = "undecided" // a 0- or 1-item list with no explicit separator
)

// List is a Sass list: an ordered sequence of values with a separator and an
// optional pair of surrounding brackets. Every Sass value that isn't
// already a list acts as a single-element list when passed to list
// functions, which callers implement by wrapping with Singleton.
type List struct {
	Items     []Value
	Separator Separator
	Brackets  bool
}

// NewList builds a List, defaulting an ambiguous 0/1-length separator to
// SepUndecided so later concatenation can pick it up from the other operand.
func NewList(items []Value, sep Separator, brackets bool) *List {
	if len(items) < 2 && sep == "" {
		sep = SepUndecided
	}
	return &List{Items: items, Separator: sep, Brackets: brackets}
}

// Singleton wraps a non-list value as a 1-element list, the standard
// coercion used by sass:list functions when given a bare value.
func Singleton(v Value) *List {
	if l, ok := v.(*List); ok {
		return l
	}
	return &List{Items: []Value{v}, Separator: SepUndecided}
}

func (l *List) Truthy() bool     { return true }
func (l *List) TypeName() string { return "list" }

func (l *List) Len() int { return len(l.Items) }

// EffectiveSeparator returns the rendering separator, resolving
// SepUndecided to SepSpace (Sass's default display choice).
func (l *List) EffectiveSeparator() Separator {
	if l.Separator == SepUndecided {
		return SepSpace
	}
	return l.Separator
}

func (l *List) sepText() string {
	switch l.EffectiveSeparator() {
	case SepComma:
		return ", "
	case SepSlash:
		return "/"
	default:
		return " "
	}
}

// Nth returns the item at a 1-based (or negative, counting from the end)
// Sass list index.
func (l *List) Nth(index int) (Value, error) {
	n := len(l.Items)
	i := index
	if i < 0 {
		i = n + i + 1
	}
	if i < 1 || i > n {
		return nil, fmt.Errorf("list index %d out of bounds for a list of length %d", index, n)
	}
	return l.Items[i-1], nil
}

func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		s := it.String()
		if needsListParens(it, l.EffectiveSeparator()) {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	inner := strings.Join(parts, l.sepText())
	if l.Brackets {
		return "[" + inner + "]"
	}
	if len(l.Items) == 0 {
		return ""
	}
	return inner
}

// needsListParens reports whether a nested list item must be parenthesized
// to round-trip through re-parsing (an inner comma-list nested in an outer
// comma-list, for instance).
func needsListParens(v Value, outer Separator) bool {
	inner, ok := v.(*List)
	if !ok || inner.Brackets {
		return false
	}
	sep := inner.EffectiveSeparator()
	if len(inner.Items) == 0 {
		return true
	}
	if len(inner.Items) == 1 && sep != SepUndecided {
		return true
	}
	return sep == outer && len(inner.Items) > 1
}

// ArgumentList is the value bound to a `...` rest parameter: a list that
// also remembers the named arguments collected alongside the positional
// ones, for `meta.keywords()`.
type ArgumentList struct {
	*List
	Keywords *Map
}

func NewArgumentList(items []Value, sep Separator, keywords *Map) *ArgumentList {
	return &ArgumentList{List: NewList(items, sep, false), Keywords: keywords}
}
