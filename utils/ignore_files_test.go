package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIgnorePatterns(t *testing.T) {
	root := t.TempDir()

	// Missing file yields an empty pattern list.
	patterns, err := GetIgnorePatterns(root)
	require.NoError(t, err)
	assert.Empty(t, patterns)

	content := "# comment\nGenerated/*\n\nvendor/\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".litedoc-ignore"), []byte(content), 0644))

	patterns, err = GetIgnorePatterns(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"Generated/*", "vendor/"}, patterns)
}

func TestIsIgnored(t *testing.T) {
	patterns := []string{"Generated/*", "vendor/"}
	assert.True(t, IsIgnored("Generated/Model.cs", patterns))
	assert.True(t, IsIgnored("vendor/dep.cs", patterns))
	assert.False(t, IsIgnored("src/Model.cs", patterns))
}

func TestIsDefaultIgnored(t *testing.T) {
	assert.True(t, IsDefaultIgnored(".git/config"))
	assert.True(t, IsDefaultIgnored("obj/Debug/net8.0"))
	assert.True(t, IsDefaultIgnored("node_modules/pkg/index.js"))
	assert.False(t, IsDefaultIgnored("src/Program.cs"))
}

func TestHasSourceExtension(t *testing.T) {
	exts := []string{".cs", ".fs"}
	assert.True(t, HasSourceExtension("a/b/Program.cs", exts))
	assert.True(t, HasSourceExtension("Script.FS", exts))
	assert.False(t, HasSourceExtension("readme.md", exts))
	assert.False(t, HasSourceExtension("Makefile", exts))
}
