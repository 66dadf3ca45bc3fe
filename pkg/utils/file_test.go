package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")
	require.NoError(t, WriteFile(path, "{}"))
	assert.True(t, FileExists(path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(dir), "directories are not files")
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "brief", Stem("/tmp/briefs/brief.txt"))
	assert.Equal(t, "notes.v2", Stem("notes.v2.md"))
	assert.Equal(t, "README", Stem("README"))
}
