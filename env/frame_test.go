package env_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/env"
)

func TestNormalizationFoldsHyphenUnderscore(t *testing.T) {
	f := env.NewFrame(env.Module)
	f.SetLocal("font_size", 12)
	v, ok := f.Get("font-size")
	require.True(t, ok)
	require.Equal(t, 12, v)
}

func TestNestedScopeShadowing(t *testing.T) {
	root := env.NewFrame(env.Module)
	root.SetLocal("x", "outer")
	child := root.Push(env.Block)
	child.SetLocal("x", "inner")

	v, _ := child.Get("x")
	require.Equal(t, "inner", v)
	v, _ = root.Get("x")
	require.Equal(t, "outer", v)
}

func TestSetExistingUpdatesOuterBinding(t *testing.T) {
	root := env.NewFrame(env.Module)
	root.SetLocal("x", 1)
	child := root.Push(env.Block)

	child.Set("x", 2)
	v, _ := root.Get("x")
	require.Equal(t, 2, v)
	_, localOK := child.GetLocal("x")
	require.False(t, localOK)
}

func TestSetWithoutExistingDeclaresLocal(t *testing.T) {
	root := env.NewFrame(env.Module)
	child := root.Push(env.Block)

	child.Set("y", 5)
	_, rootOK := root.Get("y")
	require.False(t, rootOK)
	v, _ := child.Get("y")
	require.Equal(t, 5, v)
}

func TestSetGlobalWritesToRoot(t *testing.T) {
	root := env.NewFrame(env.Module)
	child := root.Push(env.Block)
	grandchild := child.Push(env.Block)

	grandchild.SetGlobal("z", "top")
	v, ok := root.GetLocal("z")
	require.True(t, ok)
	require.Equal(t, "top", v)
}

func TestSetDefaultSkipsExisting(t *testing.T) {
	f := env.NewFrame(env.Module)
	f.SetLocal("a", 1)
	f.SetDefault("a", 2)
	v, _ := f.Get("a")
	require.Equal(t, 1, v)

	f.SetDefault("b", 3)
	v, _ = f.Get("b")
	require.Equal(t, 3, v)
}

func TestMixinAndFunctionLookupWalkParents(t *testing.T) {
	root := env.NewFrame(env.Module)
	root.SetMixin("button", "button-mixin-body")
	child := root.Push(env.Block)

	m, ok := child.LookupMixin("button")
	require.True(t, ok)
	require.Equal(t, "button-mixin-body", m)
}
