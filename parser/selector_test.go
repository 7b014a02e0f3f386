package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/parser"
	"github.com/titpetric/scssgo/source"
)

func parseSelectors(t *testing.T, text string) *ast.SelectorList {
	t.Helper()
	reg := source.New()
	entry := reg.RegisterString("selector_test.scss", text)
	p := parser.New(entry, entry.ID)
	list, err := p.ParseSelectorList(text, 0)
	require.NoError(t, err)
	return list
}

func TestParseCompoundSelector(t *testing.T) {
	list := parseSelectors(t, "a.btn")
	require.Len(t, list.Members, 1)
	comps := list.Members[0].Components
	require.Len(t, comps, 1)
	simples := comps[0].Compound.Simples
	require.Len(t, simples, 2)
	_, ok := simples[0].(*ast.TypeSelector)
	require.True(t, ok, "expected TypeSelector, got %T", simples[0])
	_, ok = simples[1].(*ast.ClassSelector)
	require.True(t, ok, "expected ClassSelector, got %T", simples[1])
}

func TestParseDescendantCombinator(t *testing.T) {
	list := parseSelectors(t, "a .btn")
	comps := list.Members[0].Components
	require.Len(t, comps, 2)
	require.Equal(t, "", comps[1].Combinator)
}

func TestParseExplicitCombinators(t *testing.T) {
	list := parseSelectors(t, "a > b ~ c + d")
	comps := list.Members[0].Components
	require.Len(t, comps, 4)
	require.Equal(t, "", comps[0].Combinator)
	require.Equal(t, ">", comps[1].Combinator)
	require.Equal(t, "~", comps[2].Combinator)
	require.Equal(t, "+", comps[3].Combinator)
}

func TestParseCommaSeparatedSelectorList(t *testing.T) {
	list := parseSelectors(t, "a, b.c")
	require.Len(t, list.Members, 2)
}

func TestParseParentSelectorSuffix(t *testing.T) {
	list := parseSelectors(t, "&-item")
	simples := list.Members[0].Components[0].Compound.Simples
	require.Len(t, simples, 1)
	ps, ok := simples[0].(*ast.ParentSelector)
	require.True(t, ok, "expected ParentSelector, got %T", simples[0])
	plain, ok := ps.Suffix.Plain()
	require.True(t, ok)
	require.Equal(t, "-item", plain)
}

func TestParseAttributeSelectorOperators(t *testing.T) {
	cases := []struct {
		text string
		op   string
	}{
		{`[href="x"]`, "="},
		{`[class~="x"]`, "~="},
		{`[href^="x"]`, "^="},
		{`[href$="x"]`, "$="},
		{`[href*="x"]`, "*="},
		{`[lang|="x"]`, "|="},
	}
	for _, c := range cases {
		t.Run(c.op, func(t *testing.T) {
			list := parseSelectors(t, c.text)
			simples := list.Members[0].Components[0].Compound.Simples
			require.Len(t, simples, 1)
			attr, ok := simples[0].(*ast.AttributeSelector)
			require.True(t, ok, "expected AttributeSelector, got %T", simples[0])
			require.Equal(t, c.op, attr.Operator)
		})
	}
}

func TestParseAttributeSelectorPresenceOnly(t *testing.T) {
	list := parseSelectors(t, "[disabled]")
	attr := list.Members[0].Components[0].Compound.Simples[0].(*ast.AttributeSelector)
	require.Equal(t, "", attr.Operator)
	require.Nil(t, attr.Value)
}

func TestParsePseudoClassWithSelectorArgument(t *testing.T) {
	list := parseSelectors(t, "a:not(.disabled)")
	simples := list.Members[0].Components[0].Compound.Simples
	require.Len(t, simples, 2)
	pseudo, ok := simples[1].(*ast.PseudoSelector)
	require.True(t, ok, "expected PseudoSelector, got %T", simples[1])
	require.NotNil(t, pseudo.Selector)
	require.Nil(t, pseudo.Argument)
}

func TestParsePseudoElementDoubleColon(t *testing.T) {
	list := parseSelectors(t, "p::before")
	simples := list.Members[0].Components[0].Compound.Simples
	pseudo, ok := simples[1].(*ast.PseudoSelector)
	require.True(t, ok, "expected PseudoSelector, got %T", simples[1])
	require.True(t, pseudo.Element)
}

func TestParsePseudoFunctionalArgument(t *testing.T) {
	list := parseSelectors(t, "li:nth-child(2n+1)")
	simples := list.Members[0].Components[0].Compound.Simples
	pseudo, ok := simples[1].(*ast.PseudoSelector)
	require.True(t, ok, "expected PseudoSelector, got %T", simples[1])
	require.NotNil(t, pseudo.Argument)
	plain, ok := pseudo.Argument.Plain()
	require.True(t, ok)
	require.Equal(t, "2n+1", plain)
}

func TestParseUniversalAndIDSelectors(t *testing.T) {
	list := parseSelectors(t, "*#main")
	simples := list.Members[0].Components[0].Compound.Simples
	require.Len(t, simples, 2)
	_, ok := simples[0].(*ast.UniversalSelector)
	require.True(t, ok, "expected UniversalSelector, got %T", simples[0])
	id, ok := simples[1].(*ast.IDSelector)
	require.True(t, ok, "expected IDSelector, got %T", simples[1])
	plain, ok := id.Name.Plain()
	require.True(t, ok)
	require.Equal(t, "main", plain)
}
