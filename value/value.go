// Package value implements the SassScript value model: the tagged set of
// runtime values (numbers, colors, strings, lists, maps, booleans, null,
// function/mixin references, and calculations) that every expression
// evaluates to, plus the equality, truthiness, and rendering rules shared by
// every later stage.
package value

import "fmt"

// Value is implemented by every SassScript runtime value.
type Value interface {
	// Truthy reports whether the value counts as true in an `@if`/boolean
	// context. Only `false` and `null` are falsey; everything else,
	// including the number 0 and the empty string, is truthy.
	Truthy() bool
	// TypeName is the name returned by the `type-of()` built-in.
	TypeName() string
	fmt.Stringer
}

// Equal reports whether a and b are the same SassScript value under Sass's
// equality rules (numbers compare by numeric value after unit conversion;
// colors by RGBA regardless of how they were written; lists/maps
// structurally; everything else by kind-specific identity).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && numbersEqual(av, bv)
	case Color:
		bv, ok := b.(Color)
		return ok && av.r == bv.r && av.g == bv.g && av.b == bv.b && floatEqual(av.a, bv.a)
	case String:
		bv, ok := b.(String)
		return ok && av.Text == bv.Text
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && bool(av) == bool(bv)
	case Null:
		_, ok := b.(Null)
		return ok
	case *List:
		bv, ok := b.(*List)
		return ok && listsEqual(av, bv)
	case *Map:
		bv, ok := b.(*Map)
		return ok && mapsEqual(av, bv)
	default:
		return a == b
	}
}

func floatEqual(a, b float64) bool {
	const eps = 1e-11
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func listsEqual(a, b *List) bool {
	if len(a.Items) != len(b.Items) {
		return false
	}
	if a.Separator != b.Separator && len(a.Items) > 1 {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}

func mapsEqual(a, b *Map) bool {
	if len(a.entries) != len(b.entries) {
		return false
	}
	for _, e := range a.entries {
		bv, ok := b.Get(e.Key)
		if !ok || !Equal(e.Value, bv) {
			return false
		}
	}
	return true
}

// Boolean is a SassScript boolean.
type Boolean bool

func (b Boolean) Truthy() bool    { return bool(b) }
func (b Boolean) TypeName() string { return "bool" }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Null is the single Sass null value.
type Null struct{}

func (Null) Truthy() bool     { return false }
func (Null) TypeName() string { return "null" }
func (Null) String() string   { return "null" }

// String is a SassScript string, quoted or unquoted.
type String struct {
	Text      string
	HasQuotes bool
}

func NewString(text string, quoted bool) String { return String{Text: text, HasQuotes: quoted} }

func (s String) Truthy() bool     { return true }
func (s String) TypeName() string { return "string" }
func (s String) String() string {
	if !s.HasQuotes {
		return s.Text
	}
	return quoteString(s.Text)
}

func quoteString(s string) string {
	// Prefer double quotes; fall back to single quotes when the text
	// contains an unescaped double quote and no single quote.
	hasDouble, hasSingle := false, false
	for _, r := range s {
		switch r {
		case '"':
			hasDouble = true
		case '\'':
			hasSingle = true
		}
	}
	quote := byte('"')
	if hasDouble && !hasSingle {
		quote = '\''
	}
	out := make([]byte, 0, len(s)+2)
	out = append(out, quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == quote || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	out = append(out, quote)
	return string(out)
}

// FunctionRef is the value produced by `get-function()`, used by
// `call()`/`meta.call`.
type FunctionRef struct {
	Name      string
	Namespace string
}

func (FunctionRef) Truthy() bool     { return true }
func (FunctionRef) TypeName() string { return "function" }
func (f FunctionRef) String() string {
	return fmt.Sprintf("get-function(%s)", quoteString(f.Name))
}
