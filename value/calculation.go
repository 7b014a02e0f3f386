package value

import "strings"

// Calculation is the value produced by `calc()`, `clamp()`, `min()`/`max()`
// when they can't be simplified to a plain Number because they contain an
// incompatible-unit operand or an unresolved interpolation. Once built, a
// Calculation is immutable; the evaluator only ever simplifies it further,
// never mutates it in place.
type Calculation struct {
	Name string // "calc" | "clamp" | "min" | "max"
	Args []CalcValue
}

func (c *Calculation) Truthy() bool     { return true }
func (c *Calculation) TypeName() string { return "calculation" }

func (c *Calculation) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// CalcValue is one operand inside a Calculation: a plain Value (number,
// string, or nested Calculation) or a CalcOperation combining two others.
type CalcValue interface {
	calcValueNode()
	String() string
}

// CalcLiteral wraps a Number or unquoted String operand.
type CalcLiteral struct {
	Value Value
}

func (CalcLiteral) calcValueNode() {}
func (c CalcLiteral) String() string { return c.Value.String() }

// CalcOperation is `left OP right` inside a calc() tree, kept unevaluated
// because its operands don't share compatible units.
type CalcOperation struct {
	Operator    string // "+" "-" "*" "/"
	Left, Right CalcValue
}

func (CalcOperation) calcValueNode() {}

func (c CalcOperation) String() string {
	op := " " + c.Operator + " "
	left := parenIfOperation(c.Left)
	right := parenIfOperation(c.Right)
	return left + op + right
}

func parenIfOperation(v CalcValue) string {
	if op, ok := v.(CalcOperation); ok {
		return "(" + op.String() + ")"
	}
	return v.String()
}
