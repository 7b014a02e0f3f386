package loader_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/loader"
)

func TestResolvePartialPreferredOverPlain(t *testing.T) {
	fsys := fstest.MapFS{
		"_colors.scss": {Data: []byte("$red: red;")},
		"colors.scss":  {Data: []byte("// plain, should not win")},
	}
	l := loader.New(fsys)
	r, err := l.Resolve("colors", ".")
	require.NoError(t, err)
	require.Equal(t, "_colors.scss", r.CanonicalPath)
	require.Contains(t, r.Text, "$red")
}

func TestResolveIndexFile(t *testing.T) {
	fsys := fstest.MapFS{
		"theme/_index.scss": {Data: []byte("@use 'colors';")},
	}
	l := loader.New(fsys)
	r, err := l.Resolve("theme", ".")
	require.NoError(t, err)
	require.Equal(t, "theme/_index.scss", r.CanonicalPath)
}

func TestResolveMissingReturnsError(t *testing.T) {
	l := loader.New(fstest.MapFS{})
	_, err := l.Resolve("nope", ".")
	require.Error(t, err)
}

func TestNamespaceFromURL(t *testing.T) {
	require.Equal(t, "colors", loader.NamespaceFromURL("src/_colors.scss"))
	require.Equal(t, "grid", loader.NamespaceFromURL("grid.import"))
}

func TestEnterDetectsCycle(t *testing.T) {
	l := loader.New(fstest.MapFS{})
	require.NoError(t, l.Enter("a.scss"))
	require.NoError(t, l.Enter("b.scss"))
	err := l.Enter("a.scss")
	require.Error(t, err)
}

func TestModuleCacheLifecycle(t *testing.T) {
	c := loader.NewModuleCache()
	_, ok := c.Get("a.scss")
	require.False(t, ok)

	c.MarkLoading("a.scss")
	require.True(t, c.IsLoading("a.scss"))

	c.Store("a.scss", nil)
	require.False(t, c.IsLoading("a.scss"))
}
