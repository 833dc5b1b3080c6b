package tmplgo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goldenVars is the fixed context every testdata/*.tmpl golden file is
// rendered against.
func goldenVars() MapVariables {
	return MapVariables{
		"name":   String("flosch"),
		"number": Number(42),
		"items":  Array([]Value{Number(1), Number(2), Number(3)}),
		"flag":   Boolean(true),
	}
}

// TestGolden renders every testdata/*.tmpl file and compares it against
// the matching testdata/*.tmpl.out file, byte for byte.
func TestGolden(t *testing.T) {
	matches, err := filepath.Glob("testdata/*.tmpl")
	require.NoError(t, err)
	require.NotEmpty(t, matches, "expected at least one golden template")

	for _, match := range matches {
		match := match
		t.Run(filepath.Base(match), func(t *testing.T) {
			t.Parallel()

			src, err := os.ReadFile(match)
			require.NoError(t, err)
			want, err := os.ReadFile(match + ".out")
			require.NoError(t, err)

			out, err := Render(string(src), goldenVars(), StdFunctions)
			require.NoError(t, err)
			assert.Equal(t, string(want), out)
		})
	}
}
