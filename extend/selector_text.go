package extend

import (
	"strings"

	"github.com/titpetric/scssgo/ast"
)

// RenderSelectorList renders a fully-resolved (interpolation already gone)
// selector list back to CSS text, the canonical form used both as the
// extender's own bookkeeping key and as csstree.StyleRule.Selector.
func RenderSelectorList(list *ast.SelectorList) string {
	parts := make([]string, len(list.Members))
	for i, m := range list.Members {
		parts[i] = RenderComplex(m)
	}
	return strings.Join(parts, ", ")
}

// RenderComplex renders one combinator-joined chain of compound selectors.
func RenderComplex(c *ast.ComplexSelector) string {
	var b strings.Builder
	if c.LeadingCombinator != "" {
		b.WriteString(c.LeadingCombinator)
		b.WriteString(" ")
	}
	for i, comp := range c.Components {
		if i > 0 {
			if comp.Combinator != "" {
				b.WriteString(" " + comp.Combinator + " ")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(RenderCompound(comp.Compound))
	}
	return b.String()
}

// RenderCompound renders a run of simple selectors with no separator.
func RenderCompound(c *ast.CompoundSelector) string {
	var b strings.Builder
	for _, s := range c.Simples {
		b.WriteString(RenderSimple(s))
	}
	return b.String()
}

// RenderSimple renders one atomic selector. Interpolation holes must
// already be resolved to plain text by the time a selector reaches here
// (the evaluator resolves interpolation before invoking the selector
// grammar, per ast.StyleRule's doc comment), so Plain() always succeeds.
func RenderSimple(s ast.SimpleSelector) string {
	switch v := s.(type) {
	case *ast.TypeSelector:
		return nsPrefix(v.Namespace) + plain(v.Name)
	case *ast.UniversalSelector:
		return nsPrefix(v.Namespace) + "*"
	case *ast.IDSelector:
		return "#" + plain(v.Name)
	case *ast.ClassSelector:
		return "." + plain(v.Name)
	case *ast.PlaceholderSelector:
		return "%" + plain(v.Name)
	case *ast.ParentSelector:
		if v.Suffix != nil {
			return "&" + plain(v.Suffix)
		}
		return "&"
	case *ast.AttributeSelector:
		if v.Operator == "" {
			return "[" + nsPrefix(v.Namespace) + plain(v.Name) + "]"
		}
		q := ""
		if v.Quoted {
			q = "\""
		}
		out := "[" + nsPrefix(v.Namespace) + plain(v.Name) + v.Operator + q + plain(v.Value) + q
		if v.Flags != "" {
			out += " " + v.Flags
		}
		return out + "]"
	case *ast.PseudoSelector:
		lead := ":"
		if v.Element {
			lead = "::"
		}
		out := lead + plain(v.Name)
		if v.Selector != nil {
			out += "(" + RenderSelectorList(v.Selector) + ")"
		} else if v.Argument != nil {
			out += "(" + plain(v.Argument) + ")"
		}
		return out
	default:
		return ""
	}
}

func nsPrefix(ns *string) string {
	if ns == nil {
		return ""
	}
	return *ns + "|"
}

func plain(in *ast.Interpolation) string {
	if in == nil {
		return ""
	}
	if s, ok := in.Plain(); ok {
		return s
	}
	return strings.Join(in.Parts, "")
}
