package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/keystore-import/io/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DDDXXX", "/tmp")
	tests := map[string]string{
		"/home/someuser/tmp": "/home/someuser/tmp",
		"~/tmp":              filepath.Join(home, "tmp"),
		"$DDDXXX/a/b":        "/tmp/a/b",
		"/a/b/":              "/a/b",
	}
	for test, expected := range tests {
		expanded, err := file.ExpandPath(test)
		require.NoError(t, err)
		assert.Equal(t, expected, expanded)
	}
}

func TestMkdirAll_AlreadyExists_WrongPermissions(t *testing.T) {
	dirName := filepath.Join(t.TempDir(), "somedir")
	require.NoError(t, os.MkdirAll(dirName, 0755))
	require.NoError(t, os.Chmod(dirName, 0755))
	err := file.MkdirAll(dirName)
	assert.ErrorContains(t, err, "already exists without proper 0700 permissions")
}

func TestMkdirAll_AlreadyExists_OK(t *testing.T) {
	dirName := filepath.Join(t.TempDir(), "somedir")
	require.NoError(t, os.MkdirAll(dirName, file.ReadWriteExecutePermissions))
	assert.NoError(t, file.MkdirAll(dirName))
}

func TestMkdirAll_OK(t *testing.T) {
	dirName := filepath.Join(t.TempDir(), "somedir", "nested")
	require.NoError(t, file.MkdirAll(dirName))
	exists, err := file.HasDir(dirName)
	require.NoError(t, err)
	assert.Equal(t, true, exists)
}

func TestHasDir_File(t *testing.T) {
	fName := filepath.Join(t.TempDir(), "somefile")
	require.NoError(t, os.WriteFile(fName, []byte("hi"), file.ReadWritePermissions))
	exists, err := file.HasDir(fName)
	require.NoError(t, err)
	assert.Equal(t, false, exists)
	assert.Equal(t, true, file.FileExists(fName))
	assert.Equal(t, true, file.Exists(fName))
	assert.Equal(t, false, file.Exists(fName+"-missing"))
}

func TestWriteFileAtomic_ReplacesContents(t *testing.T) {
	dir := t.TempDir()
	fName := filepath.Join(dir, "definitions.yml")
	require.NoError(t, os.WriteFile(fName, []byte("old"), file.ReadWritePermissions))

	require.NoError(t, file.WriteFileAtomic(fName, []byte("new")))

	got, err := os.ReadFile(fName)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	info, err := os.Stat(fName)
	require.NoError(t, err)
	assert.Equal(t, file.ReadWritePermissions, info.Mode().Perm())

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, len(entries))
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	fName := filepath.Join(t.TempDir(), "missing", "definitions.yml")
	err := file.WriteFileAtomic(fName, []byte("new"))
	assert.ErrorContains(t, err, "could not write")
	assert.Equal(t, false, file.Exists(fName))
}

func TestCopyFileAtomic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "keystore-0.json")
	require.NoError(t, os.WriteFile(src, []byte{1, 2, 3}, file.ReadWritePermissions))
	dstDir := filepath.Join(dir, "dest")
	require.NoError(t, os.Mkdir(dstDir, file.ReadWriteExecutePermissions))
	dst := filepath.Join(dstDir, "keystore-0.json")

	require.NoError(t, file.CopyFileAtomic(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	entries, err := os.ReadDir(dstDir)
	require.NoError(t, err)
	assert.Equal(t, 1, len(entries))

	// Refuses to clobber an existing destination.
	assert.ErrorContains(t, file.CopyFileAtomic(src, dst), "already exists")
}

func TestCopyFileAtomic_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := file.CopyFileAtomic(filepath.Join(dir, "nope.json"), filepath.Join(dir, "dst.json"))
	require.Error(t, err)
	assert.Equal(t, true, os.IsNotExist(err))
	assert.Equal(t, false, file.Exists(filepath.Join(dir, "dst.json")))
}
