package ast

// Interpolation is the universal bridge between text-level and value-level
// syntax: `#{expr}` anywhere in a selector, property name, string, or
// identifier produces an interpolant element that the evaluator resolves
// before the surrounding construct is re-parsed or emitted.
type Interpolation struct {
	Span     Span
	Parts    []string   // literal text runs, len(Parts) == len(Exprs)+1
	Exprs    []Expr     // expressions between the literal runs
	PlainOK  bool       // true if Parts has no holes (Exprs is empty): fast path
}

// Plain returns the literal text when the interpolation has no expression
// holes, and ok=false otherwise.
func (in *Interpolation) Plain() (string, bool) {
	if len(in.Exprs) != 0 {
		return "", false
	}
	if len(in.Parts) == 1 {
		return in.Parts[0], true
	}
	return "", false
}
