package builtin

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/titpetric/scssgo/ast"
)

// QueryFolder constant-folds a `@supports` condition tree (and/or/not over
// declarations) into a single boolean once every leaf declaration has been
// resolved to a known true/false by the caller's Check function. This
// mirrors the teacher's guard-condition evaluator — compile a small boolean
// expression string and hand it to expr-lang — applied here to
// `@supports`/`@at-root` query folding instead of LESS `when` guards, so a
// condition built entirely out of already-known booleans (for instance one
// assembled through interpolated `meta.feature-exists()` results) can be
// simplified at compile time instead of always round-tripping to the CSS
// output verbatim.
type QueryFolder struct {
	// Check reports a leaf declaration's truth value and whether it was
	// resolvable at all; ok=false means some part of the condition is not
	// foldable (it depends on the target browser, not on anything the
	// compiler can decide), and Fold gives up and returns ok=false too.
	Check func(d *ast.Declaration) (truth bool, ok bool)
}

// Fold attempts to reduce cond to a constant boolean. ok is false if any
// leaf declaration's truth value isn't statically known.
func (q QueryFolder) Fold(cond *ast.SupportsExpr) (result bool, ok bool) {
	env := make(map[string]any)
	exprStr, ok := q.build(cond, env)
	if !ok {
		return false, false
	}
	program, err := expr.Compile(exprStr, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, false
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, false
	}
	b, _ := out.(bool)
	return b, true
}

func (q QueryFolder) build(cond *ast.SupportsExpr, env map[string]any) (string, bool) {
	switch cond.Kind {
	case "declaration":
		truth, ok := q.Check(cond.Decl)
		if !ok {
			return "", false
		}
		name := fmt.Sprintf("v%d", len(env))
		env[name] = truth
		return name, true
	case "not":
		inner, ok := q.build(cond.Operands[0], env)
		if !ok {
			return "", false
		}
		return "!(" + inner + ")", true
	case "and", "or":
		op := " && "
		if cond.Kind == "or" {
			op = " || "
		}
		parts := make([]string, 0, len(cond.Operands))
		for _, o := range cond.Operands {
			p, ok := q.build(o, env)
			if !ok {
				return "", false
			}
			parts = append(parts, "("+p+")")
		}
		out := parts[0]
		for _, p := range parts[1:] {
			out += op + p
		}
		return out, true
	default:
		return "", false
	}
}
