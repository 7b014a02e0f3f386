package parser

import "github.com/titpetric/scssgo/ast"

// Constructors for ast.SimpleSelector nodes. Same reasoning as the helpers
// in expr.go: the base carrying Span is unexported inside package ast, so
// these build the node and assign Span as a promoted field afterward.

func typeUniversal(sp ast.Span) *ast.UniversalSelector {
	n := &ast.UniversalSelector{}
	n.Span = sp
	return n
}

func typeSelector(sp ast.Span, name *ast.Interpolation) *ast.TypeSelector {
	n := &ast.TypeSelector{Name: name}
	n.Span = sp
	return n
}

func classSelector(sp ast.Span, name *ast.Interpolation) *ast.ClassSelector {
	n := &ast.ClassSelector{Name: name}
	n.Span = sp
	return n
}

func idSelector(sp ast.Span, name *ast.Interpolation) *ast.IDSelector {
	n := &ast.IDSelector{Name: name}
	n.Span = sp
	return n
}

func placeholderSelector(sp ast.Span, name *ast.Interpolation) *ast.PlaceholderSelector {
	n := &ast.PlaceholderSelector{Name: name}
	n.Span = sp
	return n
}

func parentSelector(sp ast.Span, suffix *ast.Interpolation) *ast.ParentSelector {
	n := &ast.ParentSelector{Suffix: suffix}
	n.Span = sp
	return n
}

func pseudoSelectorBare(sp ast.Span, element bool, name *ast.Interpolation) *ast.PseudoSelector {
	n := &ast.PseudoSelector{Element: element, Name: name}
	n.Span = sp
	return n
}

func pseudoSelectorWithArg(sp ast.Span, element bool, name, arg *ast.Interpolation) *ast.PseudoSelector {
	n := &ast.PseudoSelector{Element: element, Name: name, Argument: arg}
	n.Span = sp
	return n
}

func pseudoSelectorWithList(sp ast.Span, element bool, name *ast.Interpolation, list *ast.SelectorList) *ast.PseudoSelector {
	n := &ast.PseudoSelector{Element: element, Name: name, Selector: list}
	n.Span = sp
	return n
}

func attributeSelector(sp ast.Span, name *ast.Interpolation, op string, val *ast.Interpolation, quoted bool, flags string) *ast.AttributeSelector {
	n := &ast.AttributeSelector{Name: name, Operator: op, Value: val, Quoted: quoted, Flags: flags}
	n.Span = sp
	return n
}
