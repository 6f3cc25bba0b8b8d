package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644))
}

func TestCheckDataFileMissing(t *testing.T) {
	root := t.TempDir()

	status, err := CheckDataFile(root, "data.csv")
	require.NoError(t, err)
	assert.False(t, status.Exists)
	assert.Equal(t, filepath.Join(root, "data.csv"), status.Path)
	assert.Zero(t, status.Size)
}

func TestCheckDataFilePresent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "data.csv", 2048)

	status, err := CheckDataFile(root, "data.csv")
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.EqualValues(t, 2048, status.Size)
}

func TestCheckDataFileDirectoryIsNotData(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "data.csv"), 0o755))

	status, err := CheckDataFile(root, "data.csv")
	require.NoError(t, err)
	assert.False(t, status.Exists)
}

func TestEntryDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", 10)
	writeFile(t, root, "index-mejorado.html", 10)
	writeFile(t, root, "LEGACY.HTML", 1)
	writeFile(t, root, "app.js", 10)
	writeFile(t, root, "data.csv", 10)
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs.html"), 0o755))

	names, err := EntryDocuments(root, ".html")
	require.NoError(t, err)
	assert.Equal(t, []string{"LEGACY.HTML", "index-mejorado.html", "index.html"}, names)
}

func TestEntryDocumentsEmpty(t *testing.T) {
	names, err := EntryDocuments(t.TempDir(), ".html")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEntryDocumentsMissingRoot(t *testing.T) {
	_, err := EntryDocuments(filepath.Join(t.TempDir(), "nope"), ".html")
	assert.Error(t, err)
}
