package extend_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/compiler"
)

// TestUnsatisfiedExtendFails checks that a non-optional `@extend`
// that never matches any selector in the stylesheet is a compile error.
func TestUnsatisfiedExtendFails(t *testing.T) {
	fsys := fstest.MapFS{
		"entry.scss": &fstest.MapFile{Data: []byte(".fatal { @extend .missing; }\n")},
	}
	c := compiler.New(compiler.Options{})
	c.SetEntryFile(fsys, "entry.scss", compiler.SyntaxSCSS)

	err := c.Render()
	require.Error(t, err)
	require.Equal(t, compiler.StatusError, c.Status())
}

// TestOptionalUnsatisfiedExtendSucceeds is the same shape, but `!optional`
// must suppress the unsatisfied-extend error entirely.
func TestOptionalUnsatisfiedExtendSucceeds(t *testing.T) {
	fsys := fstest.MapFS{
		"entry.scss": &fstest.MapFile{Data: []byte(".fatal { @extend .missing !optional; color: red; }\n")},
	}
	c := compiler.New(compiler.Options{})
	c.SetEntryFile(fsys, "entry.scss", compiler.SyntaxSCSS)

	require.NoError(t, c.Render())
	require.Equal(t, compiler.StatusOK, c.Status())
	require.Equal(t, ".fatal {\n  color: red;\n}\n", c.CSS())
}

// TestExtendAcrossMediaFails covers invariant 10: a target selector declared
// inside one @media cannot be extended from a different, incompatible
// @media context.
func TestExtendAcrossMediaFails(t *testing.T) {
	fsys := fstest.MapFS{
		"entry.scss": &fstest.MapFile{Data: []byte(
			"@media screen { .err { color: red; } }\n" +
				"@media print { .fatal { @extend .err; } }\n",
		)},
	}
	c := compiler.New(compiler.Options{})
	c.SetEntryFile(fsys, "entry.scss", compiler.SyntaxSCSS)

	err := c.Render()
	require.Error(t, err)
	require.Equal(t, compiler.StatusError, c.Status())
}

// TestExtendWithinSameMediaSucceeds makes sure the media check isn't
// blanket-rejecting every nested extend, only ones crossing into an
// incompatible context: target and extender sharing the same @media weave
// normally.
func TestExtendWithinSameMediaSucceeds(t *testing.T) {
	fsys := fstest.MapFS{
		"entry.scss": &fstest.MapFile{Data: []byte(
			"@media screen {\n" +
				"  .err { color: red; }\n" +
				"  .fatal { @extend .err; font-weight: bold; }\n" +
				"}\n",
		)},
	}
	c := compiler.New(compiler.Options{})
	c.SetEntryFile(fsys, "entry.scss", compiler.SyntaxSCSS)

	require.NoError(t, c.Render())
	require.Equal(t, compiler.StatusOK, c.Status())
	require.Equal(t,
		"@media screen {\n  .err, .fatal {\n    color: red;\n  }\n\n  .fatal {\n    font-weight: bold;\n  }\n}\n",
		c.CSS())
}

// TestExtendFromTopLevelIntoMediaSucceeds: an `@extend` with no enclosing
// @media of its own is compatible with a target declared inside one.
func TestExtendFromTopLevelIntoMediaSucceeds(t *testing.T) {
	fsys := fstest.MapFS{
		"entry.scss": &fstest.MapFile{Data: []byte(
			"@media screen { .err { color: red; } }\n" +
				".fatal { @extend .err; font-weight: bold; }\n",
		)},
	}
	c := compiler.New(compiler.Options{})
	c.SetEntryFile(fsys, "entry.scss", compiler.SyntaxSCSS)

	require.NoError(t, c.Render())
	require.Equal(t, compiler.StatusOK, c.Status())
}
