package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProjectFiles(t *testing.T) {
	dir := t.TempDir()
	fixtures := []string{
		"main.py",
		"src/app.py",
		"node_modules/pkg/index.js",
		".git/config",
		"assets/logo.min.js",
	}
	for _, path := range fixtures {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}

	paths, err := ListProjectFiles(dir, []string{".git", "node_modules", "*.min.js"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"main.py", filepath.Join("src", "app.py")}, paths)
}

func TestListProjectFilesMissingRoot(t *testing.T) {
	_, err := ListProjectFiles(filepath.Join(t.TempDir(), "absent"), nil)
	assert.Error(t, err)
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.NoError(t, ValidatePath(file))
	assert.Error(t, ValidatePath(dir))
	assert.Error(t, ValidatePath(filepath.Join(dir, "absent")))
}

func TestCreateFolderIfNotExists(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "nested", "folder")
	require.NoError(t, CreateFolderIfNotExists(folder))

	info, err := os.Stat(folder)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// creating an existing folder is fine
	assert.NoError(t, CreateFolderIfNotExists(folder))
}
