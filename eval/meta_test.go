package eval_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/compiler"
)

// TestMetaExistenceChecksSeeLiveScope exercises meta.function-exists,
// meta.variable-exists and meta.mixin-exists against real in-scope
// declarations, which builtin.Meta()'s own registry entries can never see
// (they have no access to the call-site frame).
func TestMetaExistenceChecksSeeLiveScope(t *testing.T) {
	scss := `
$known: 1;
@function double($n) { @return $n * 2; }
@mixin pad { padding: 0; }

.a {
  fn: meta.function-exists(double);
  fn-missing: meta.function-exists(nope);
  var: meta.variable-exists(known);
  var-missing: meta.variable-exists(nope);
  mix: meta.mixin-exists(pad);
  mix-missing: meta.mixin-exists(nope);
  builtin-fn: meta.function-exists(unquote);
}
`
	fsys := fstest.MapFS{"entry.scss": &fstest.MapFile{Data: []byte(scss)}}
	c := compiler.New(compiler.Options{})
	c.SetEntryFile(fsys, "entry.scss", compiler.SyntaxSCSS)

	require.NoError(t, c.Render())
	require.Equal(t, compiler.StatusOK, c.Status())

	css := c.CSS()
	require.Contains(t, css, "fn: true;")
	require.Contains(t, css, "fn-missing: false;")
	require.Contains(t, css, "var: true;")
	require.Contains(t, css, "var-missing: false;")
	require.Contains(t, css, "mix: true;")
	require.Contains(t, css, "mix-missing: false;")
	require.Contains(t, css, "builtin-fn: true;")
}
