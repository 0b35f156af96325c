package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/xmldoc/config"
	"github.com/teranos/xmldoc/errors"
)

// writeTree creates files under dir; contents default to an empty class.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("class C { }\n"), 0o644))
	}
}

func defaultSelector(t *testing.T) *Selector {
	t.Helper()
	s, err := NewSelector(config.Default().Files)
	require.NoError(t, err)
	return s
}

func TestSelector_Match(t *testing.T) {
	s := defaultSelector(t)

	tests := []struct {
		rel  string
		want bool
	}{
		{"Program.cs", true},
		{"src/Shop/Order.cs", true},
		{"src/Shop/Order.txt", false},
		{"src/Shop/bin/Debug/Gen.cs", false},
		{"obj/Out.cs", false},
		{"Forms/Main.Designer.cs", false},
		{"Generated/Api.g.cs", false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Match(filepath.FromSlash(tt.rel)))
		})
	}
}

func TestNewSelector_RejectsBadPattern(t *testing.T) {
	_, err := NewSelector(config.FilesConfig{Include: []string{"src/[.cs"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "src/[.cs")
}

func TestSelector_Walk(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"B.cs",
		"A.cs",
		"notes.md",
		"src/Order.cs",
		"src/bin/Order.cs",
		".git/hooks/Hook.cs",
		"src/.cache/Cached.cs",
	)

	files, err := defaultSelector(t).Walk([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "A.cs"),
		filepath.Join(dir, "B.cs"),
		filepath.Join(dir, "src", "Order.cs"),
	}, files)
}

func TestSelector_WalkExplicitFilesAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "A.cs", "Script.csx", "Form.Designer.cs")

	files, err := defaultSelector(t).Walk([]string{
		dir,
		filepath.Join(dir, "A.cs"),
		filepath.Join(dir, "Script.csx"),
		filepath.Join(dir, "Form.Designer.cs"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "A.cs"),
		filepath.Join(dir, "Script.csx"),
	}, files, "named files skip include patterns but not exclude patterns")
}

func TestSelector_WalkMissingRoot(t *testing.T) {
	_, err := defaultSelector(t).Walk([]string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
