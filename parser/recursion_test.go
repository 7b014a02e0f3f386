package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/parser"
	"github.com/titpetric/scssgo/source"
)

func TestParseExpressionRecursionLimit(t *testing.T) {
	text := strings.Repeat("(", 10000) + "1" + strings.Repeat(")", 10000)
	reg := source.New()
	entry := reg.RegisterString("recursion_expr.scss", text)
	p := parser.New(entry, entry.ID)
	_, err := p.ParseExpression()
	require.Error(t, err)
	require.Contains(t, err.Error(), "recursion limit")
}

func TestParseStylesheetBlockRecursionLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10000; i++ {
		b.WriteString("a{")
	}
	b.WriteString("color:red;")
	for i := 0; i < 10000; i++ {
		b.WriteString("}")
	}
	reg := source.New()
	entry := reg.RegisterString("recursion_block.scss", b.String())
	p := parser.New(entry, entry.ID)
	_, err := p.ParseStylesheet()
	require.Error(t, err)
	require.Contains(t, err.Error(), "recursion limit")
}

func TestParsePseudoSelectorRecursionLimit(t *testing.T) {
	text := strings.Repeat(":not(", 10000) + "a" + strings.Repeat(")", 10000)
	reg := source.New()
	entry := reg.RegisterString("recursion_selector.scss", text)
	p := parser.New(entry, entry.ID)
	_, err := p.ParseSelectorList(text, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "recursion limit")
}

func TestParseExpressionWithinNormalLimitsSucceeds(t *testing.T) {
	text := strings.Repeat("(", 10) + "1" + strings.Repeat(")", 10)
	reg := source.New()
	entry := reg.RegisterString("ok_expr.scss", text)
	p := parser.New(entry, entry.ID)
	_, err := p.ParseExpression()
	require.NoError(t, err)
}
