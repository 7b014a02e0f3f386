package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/builtin"
	"github.com/titpetric/scssgo/value"
)

func call(t *testing.T, r *builtin.Registry, name string, positional []value.Value, named map[string]value.Value) value.Value {
	t.Helper()
	entry, ok := r.Lookup(name)
	require.True(t, ok, "function %s not registered", name)
	bound, err := builtin.Bind(entry.Signature, positional, named)
	require.NoError(t, err)
	v, err := entry.Fn(bound)
	require.NoError(t, err)
	return v
}

func TestMathRound(t *testing.T) {
	r := builtin.Math()
	v := call(t, r, "round", []value.Value{value.Unitless(4.6)}, nil)
	require.Equal(t, "5", v.String())
}

func TestMathClampWithinRange(t *testing.T) {
	r := builtin.Math()
	v := call(t, r, "clamp", []value.Value{value.Unitless(0), value.Unitless(5), value.Unitless(10)}, nil)
	require.Equal(t, "5", v.String())
}

func TestMathMinMaxUnitAware(t *testing.T) {
	r := builtin.Math()
	v := call(t, r, "max", []value.Value{value.WithUnit(1, "in"), value.WithUnit(50, "px")}, nil)
	require.Equal(t, "1in", v.String())
}

func TestColorMixHalfway(t *testing.T) {
	r := builtin.Color()
	v := call(t, r, "mix", []value.Value{value.RGBA(255, 0, 0, 1), value.RGBA(0, 0, 255, 1)}, nil)
	require.Equal(t, "#800080", v.String())
}

func TestColorRGBPercentChannel(t *testing.T) {
	r := builtin.Color()
	v := call(t, r, "rgb", []value.Value{value.WithUnit(100, "%"), value.Int(0), value.Int(0)}, nil)
	require.Equal(t, "#ff0000", v.String())
}

func TestListAppend(t *testing.T) {
	r := builtin.List()
	l := value.NewList([]value.Value{value.Int(1), value.Int(2)}, value.SepComma, false)
	v := call(t, r, "append", []value.Value{l, value.Int(3)}, nil)
	require.Equal(t, "1, 2, 3", v.String())
}

func TestListNth(t *testing.T) {
	r := builtin.List()
	l := value.NewList([]value.Value{value.Int(10), value.Int(20), value.Int(30)}, value.SepComma, false)
	v := call(t, r, "nth", []value.Value{l, value.Int(-1)}, nil)
	require.True(t, value.Equal(v, value.Int(30)))
}

func TestMapGetNested(t *testing.T) {
	r := builtin.MapModule()
	inner := value.NewMap([]value.Value{value.NewString("b", true)}, []value.Value{value.Int(2)})
	outer := value.NewMap([]value.Value{value.NewString("a", true)}, []value.Value{inner})
	v := call(t, r, "get", []value.Value{outer, value.NewString("a", true), value.NewString("b", true)}, nil)
	require.True(t, value.Equal(v, value.Int(2)))
}

func TestStringSlice(t *testing.T) {
	r := builtin.String()
	v := call(t, r, "slice", []value.Value{value.NewString("Hello, World!", true), value.Int(1), value.Int(5)}, nil)
	require.Equal(t, `"Hello"`, v.String())
}

func TestQueryFolderConstantFold(t *testing.T) {
	folder := builtin.QueryFolder{Check: func(d *ast.Declaration) (bool, bool) { return true, true }}
	cond := &ast.SupportsExpr{Kind: "and", Operands: []*ast.SupportsExpr{
		{Kind: "declaration", Decl: &ast.Declaration{}},
		{Kind: "not", Operands: []*ast.SupportsExpr{{Kind: "declaration", Decl: &ast.Declaration{}}}},
	}}
	result, ok := folder.Fold(cond)
	require.True(t, ok)
	require.False(t, result)
}
