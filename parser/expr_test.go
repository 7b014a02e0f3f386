package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/parser"
	"github.com/titpetric/scssgo/source"
)

func newExprParser(t *testing.T, text string) *parser.Parser {
	t.Helper()
	reg := source.New()
	entry := reg.RegisterString("expr_test.scss", text)
	return parser.New(entry, entry.ID)
}

func TestParseExpressionLiterals(t *testing.T) {
	p := newExprParser(t, "10px")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	n, ok := expr.(*ast.NumberLit)
	require.True(t, ok, "expected NumberLit, got %T", expr)
	require.Equal(t, 10.0, n.Value)
	require.Equal(t, "px", n.Unit)
}

func TestParseExpressionArithmetic(t *testing.T) {
	p := newExprParser(t, "1 + 2 * 3")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	bin, ok := expr.(*ast.BinaryOp)
	require.True(t, ok, "expected BinaryOp, got %T", expr)
	require.Equal(t, "+", bin.Operator)
	rhs, ok := bin.Right.(*ast.BinaryOp)
	require.True(t, ok, "expected right side to be BinaryOp, got %T", bin.Right)
	require.Equal(t, "*", rhs.Operator)
}

func TestParseExpressionSpaceList(t *testing.T) {
	p := newExprParser(t, "1px solid red")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	list, ok := expr.(*ast.ListExpr)
	require.True(t, ok, "expected ListExpr, got %T", expr)
	require.Equal(t, "space", list.Separator)
	require.Len(t, list.Items, 3)
}

func TestParseExpressionCommaList(t *testing.T) {
	p := newExprParser(t, "1, 2, 3")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	list, ok := expr.(*ast.ListExpr)
	require.True(t, ok, "expected ListExpr, got %T", expr)
	require.Equal(t, "comma", list.Separator)
	require.Len(t, list.Items, 3)
}

func TestParseExpressionFunctionCall(t *testing.T) {
	p := newExprParser(t, "rgba($color, 0.5)")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	call, ok := expr.(*ast.FunctionCall)
	require.True(t, ok, "expected FunctionCall, got %T", expr)
	require.Equal(t, "rgba", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParseExpressionNamespacedCall(t *testing.T) {
	p := newExprParser(t, "math.div(1, 2)")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	call, ok := expr.(*ast.FunctionCall)
	require.True(t, ok, "expected FunctionCall, got %T", expr)
	require.Equal(t, "math", call.Namespace)
	require.Equal(t, "div", call.Name)
}

func TestParseExpressionBareIdentVsCall(t *testing.T) {
	p := newExprParser(t, "solid")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	str, ok := expr.(*ast.StringLit)
	require.True(t, ok, "expected StringLit, got %T", expr)
	plain, ok := str.Text.Plain()
	require.True(t, ok)
	require.Equal(t, "solid", plain)
}

func TestParseExpressionMap(t *testing.T) {
	p := newExprParser(t, "(small: 1, large: 2)")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	m, ok := expr.(*ast.MapExpr)
	require.True(t, ok, "expected MapExpr, got %T", expr)
	require.Len(t, m.Keys, 2)
	require.Len(t, m.Values, 2)
}

func TestParseExpressionNot(t *testing.T) {
	p := newExprParser(t, "not $enabled")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	u, ok := expr.(*ast.UnaryOp)
	require.True(t, ok, "expected UnaryOp, got %T", expr)
	require.Equal(t, "not", u.Operator)
}

func TestParseExpressionNamedArgument(t *testing.T) {
	p := newExprParser(t, "mix($a, $b, $weight: 50%)")
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	call, ok := expr.(*ast.FunctionCall)
	require.True(t, ok, "expected FunctionCall, got %T", expr)
	require.Len(t, call.Args, 3)
	require.Equal(t, "weight", call.Args[2].Name)
}
