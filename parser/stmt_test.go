package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/parser"
	"github.com/titpetric/scssgo/source"
)

func parseStylesheet(t *testing.T, text string) *ast.Stylesheet {
	t.Helper()
	reg := source.New()
	entry := reg.RegisterString("stmt_test.scss", text)
	p := parser.New(entry, entry.ID)
	sheet, err := p.ParseStylesheet()
	require.NoError(t, err)
	return sheet
}

func TestParseDeclaration(t *testing.T) {
	sheet := parseStylesheet(t, "a { color: red; }")
	require.Len(t, sheet.Body.Children, 1)
	rule, ok := sheet.Body.Children[0].(*ast.StyleRule)
	require.True(t, ok, "expected StyleRule, got %T", sheet.Body.Children[0])
	require.Len(t, rule.Body.Children, 1)
	decl, ok := rule.Body.Children[0].(*ast.Declaration)
	require.True(t, ok, "expected Declaration, got %T", rule.Body.Children[0])
	prop, ok := decl.Property.Plain()
	require.True(t, ok)
	require.Equal(t, "color", prop)
	require.NotNil(t, decl.Value)
}

func TestParsePseudoClassSelectorNotMistakenForDeclaration(t *testing.T) {
	sheet := parseStylesheet(t, "a:hover { color: blue; }")
	require.Len(t, sheet.Body.Children, 1)
	_, ok := sheet.Body.Children[0].(*ast.StyleRule)
	require.True(t, ok, "expected StyleRule, got %T", sheet.Body.Children[0])
}

func TestParseNestedPropertyShorthand(t *testing.T) {
	sheet := parseStylesheet(t, "a { font: { family: sans-serif; size: 12px; } }")
	rule := sheet.Body.Children[0].(*ast.StyleRule)
	decl := rule.Body.Children[0].(*ast.Declaration)
	prop, _ := decl.Property.Plain()
	require.Equal(t, "font", prop)
	require.Nil(t, decl.Value)
	require.NotNil(t, decl.Body)
	require.Len(t, decl.Body.Children, 2)
}

func TestParseVariableAssignmentWithFlags(t *testing.T) {
	sheet := parseStylesheet(t, "$color: red !default;")
	assign, ok := sheet.Body.Children[0].(*ast.AssignStatement)
	require.True(t, ok, "expected AssignStatement, got %T", sheet.Body.Children[0])
	require.Equal(t, "color", assign.Name)
	require.True(t, assign.Default)
	require.False(t, assign.Global)
}

func TestParseIfElseChain(t *testing.T) {
	sheet := parseStylesheet(t, `
@if $a == 1 {
	color: red;
} @else if $a == 2 {
	color: blue;
} @else {
	color: green;
}`)
	ifStmt, ok := sheet.Body.Children[0].(*ast.IfStatement)
	require.True(t, ok, "expected IfStatement, got %T", sheet.Body.Children[0])
	require.Len(t, ifStmt.Clauses, 3)
	require.NotNil(t, ifStmt.Clauses[0].Condition)
	require.NotNil(t, ifStmt.Clauses[1].Condition)
	require.Nil(t, ifStmt.Clauses[2].Condition)
}

func TestParseForStatement(t *testing.T) {
	sheet := parseStylesheet(t, `@for $i from 1 through 3 { width: $i; }`)
	f, ok := sheet.Body.Children[0].(*ast.ForStatement)
	require.True(t, ok, "expected ForStatement, got %T", sheet.Body.Children[0])
	require.Equal(t, "i", f.Variable)
	require.True(t, f.Inclusive)
}

func TestParseEachStatementMultipleVariables(t *testing.T) {
	sheet := parseStylesheet(t, `@each $key, $value in $map { width: $value; }`)
	e, ok := sheet.Body.Children[0].(*ast.EachStatement)
	require.True(t, ok, "expected EachStatement, got %T", sheet.Body.Children[0])
	require.Equal(t, []string{"key", "value"}, e.Variables)
}

func TestParseMixinDeclAndIncludeWithContent(t *testing.T) {
	sheet := parseStylesheet(t, `
@mixin responsive($breakpoint) {
	@content;
}
.a {
	@include responsive(mobile) {
		color: red;
	}
}`)
	require.Len(t, sheet.Body.Children, 2)
	mixin, ok := sheet.Body.Children[0].(*ast.MixinDecl)
	require.True(t, ok, "expected MixinDecl, got %T", sheet.Body.Children[0])
	require.Equal(t, "responsive", mixin.Name)
	require.True(t, mixin.AcceptsContent)

	rule := sheet.Body.Children[1].(*ast.StyleRule)
	inc, ok := rule.Body.Children[0].(*ast.IncludeStatement)
	require.True(t, ok, "expected IncludeStatement, got %T", rule.Body.Children[0])
	require.Equal(t, "responsive", inc.Name)
	require.NotNil(t, inc.Content)
}

func TestParseFunctionDeclAndReturn(t *testing.T) {
	sheet := parseStylesheet(t, `
@function double($n) {
	@return $n * 2;
}`)
	fn, ok := sheet.Body.Children[0].(*ast.FunctionDecl)
	require.True(t, ok, "expected FunctionDecl, got %T", sheet.Body.Children[0])
	require.Equal(t, "double", fn.Name)
	require.Len(t, fn.Args, 1)
	ret, ok := fn.Body.Children[0].(*ast.ReturnStatement)
	require.True(t, ok, "expected ReturnStatement, got %T", fn.Body.Children[0])
	require.NotNil(t, ret.Value)
}

func TestParseExtendStatementOptional(t *testing.T) {
	sheet := parseStylesheet(t, `a { @extend .btn !optional; }`)
	rule := sheet.Body.Children[0].(*ast.StyleRule)
	ext, ok := rule.Body.Children[0].(*ast.ExtendStatement)
	require.True(t, ok, "expected ExtendStatement, got %T", rule.Body.Children[0])
	require.True(t, ext.Optional)
}

func TestParseUseRuleWithNamespaceAndConfig(t *testing.T) {
	sheet := parseStylesheet(t, `@use "sass:math" as m with ($base: 10);`)
	use, ok := sheet.Body.Children[0].(*ast.UseRule)
	require.True(t, ok, "expected UseRule, got %T", sheet.Body.Children[0])
	require.Equal(t, "sass:math", use.URL)
	require.Equal(t, "m", use.Namespace)
	require.Len(t, use.Config, 1)
	require.Equal(t, "base", use.Config[0].Name)
}

func TestParseForwardRuleWithShow(t *testing.T) {
	sheet := parseStylesheet(t, `@forward "src/list" show list-reset, list-item;`)
	fwd, ok := sheet.Body.Children[0].(*ast.ForwardRule)
	require.True(t, ok, "expected ForwardRule, got %T", sheet.Body.Children[0])
	require.Equal(t, "src/list", fwd.URL)
	require.Equal(t, []string{"list-reset", "list-item"}, fwd.Show)
}

func TestParseImportRulePlainCSSDetection(t *testing.T) {
	sheet := parseStylesheet(t, `@import "theme", "print.css", url(reset.css);`)
	imp, ok := sheet.Body.Children[0].(*ast.ImportRule)
	require.True(t, ok, "expected ImportRule, got %T", sheet.Body.Children[0])
	require.Len(t, imp.Imports, 3)
	require.False(t, imp.Imports[0].IsPlainCSS)
	require.True(t, imp.Imports[1].IsPlainCSS)
	require.True(t, imp.Imports[2].IsPlainCSS)
	require.Equal(t, "reset.css", imp.Imports[2].URL)
}

func TestParseMediaRule(t *testing.T) {
	sheet := parseStylesheet(t, `@media screen and (min-width: 768px) { a { color: red; } }`)
	media, ok := sheet.Body.Children[0].(*ast.MediaRule)
	require.True(t, ok, "expected MediaRule, got %T", sheet.Body.Children[0])
	plain, ok := media.Query.Plain()
	require.True(t, ok)
	require.Equal(t, "screen and (min-width: 768px)", plain)
}

func TestParseSupportsRuleAndOrNot(t *testing.T) {
	sheet := parseStylesheet(t, `@supports (display: grid) and (not (display: inline-grid)) { a { color: red; } }`)
	sup, ok := sheet.Body.Children[0].(*ast.SupportsRule)
	require.True(t, ok, "expected SupportsRule, got %T", sheet.Body.Children[0])
	require.Equal(t, "and", sup.Condition.Kind)
	require.Len(t, sup.Condition.Operands, 2)
	require.Equal(t, "declaration", sup.Condition.Operands[0].Kind)
	require.Equal(t, "not", sup.Condition.Operands[1].Kind)
}

func TestParseAtRootRule(t *testing.T) {
	sheet := parseStylesheet(t, `a { @at-root { .b { color: red; } } }`)
	rule := sheet.Body.Children[0].(*ast.StyleRule)
	root, ok := rule.Body.Children[0].(*ast.AtRootRule)
	require.True(t, ok, "expected AtRootRule, got %T", rule.Body.Children[0])
	require.Nil(t, root.Query)
	require.Len(t, root.Body.Children, 1)
}

func TestParseGenericAtRuleKeyframes(t *testing.T) {
	sheet := parseStylesheet(t, `@keyframes spin { from { transform: rotate(0deg); } to { transform: rotate(360deg); } }`)
	kf, ok := sheet.Body.Children[0].(*ast.AtRule)
	require.True(t, ok, "expected AtRule, got %T", sheet.Body.Children[0])
	require.Equal(t, "keyframes", kf.Name)
	require.Len(t, kf.Body.Children, 2)
}

func TestParseLoudAndSilentComments(t *testing.T) {
	sheet := parseStylesheet(t, "/* keep me */\n// drop me\na { color: red; }")
	require.Len(t, sheet.Body.Children, 3)
	_, ok := sheet.Body.Children[0].(*ast.LoudComment)
	require.True(t, ok, "expected LoudComment, got %T", sheet.Body.Children[0])
	_, ok = sheet.Body.Children[1].(*ast.SilentComment)
	require.True(t, ok, "expected SilentComment, got %T", sheet.Body.Children[1])
	_, ok = sheet.Body.Children[2].(*ast.StyleRule)
	require.True(t, ok, "expected StyleRule, got %T", sheet.Body.Children[2])
}

func TestParseDebugAndWarn(t *testing.T) {
	sheet := parseStylesheet(t, `@debug "hi"; @warn "careful"; `)
	_, ok := sheet.Body.Children[0].(*ast.DebugStatement)
	require.True(t, ok, "expected DebugStatement, got %T", sheet.Body.Children[0])
	_, ok = sheet.Body.Children[1].(*ast.WarnStatement)
	require.True(t, ok, "expected WarnStatement, got %T", sheet.Body.Children[1])
}
