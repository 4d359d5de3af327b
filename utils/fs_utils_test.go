package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFileNameWithoutExtension(t *testing.T) {
	assert.Equal(t, "build-info", GetFileNameWithoutExtension("/srv/project/artifacts/build-info.json"))
	assert.Equal(t, "plain", GetFileNameWithoutExtension("plain"))
}

func TestMakeDirectoryForFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dirs", "file.db")
	assert.NoError(t, MakeDirectoryForFile(path))
	assert.True(t, DirectoryExists(filepath.Dir(path)))
	assert.False(t, FileExists(path))
}

func TestCreateFile(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "logs")
	file, err := CreateFile(directory, "out.log")
	assert.NoError(t, err)
	assert.NoError(t, file.Close())
	assert.True(t, FileExists(filepath.Join(directory, "out.log")))
}

func TestFileAndDirectoryExists(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "f.txt")
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(directory))
	assert.True(t, DirectoryExists(directory))
	assert.False(t, DirectoryExists(path))
}
