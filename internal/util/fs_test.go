package util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	require.NoError(t, WriteFileAtomic(path, []byte("\n1-2(3)"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\n1-2(3)", string(data))

	require.NoError(t, WriteFileAtomic(path, []byte("replaced"), 0o644))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(data))
}

func TestWriteFileAtomicRenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	orig := rename
	rename = func(string, string) error { return errors.New("boom") }
	t.Cleanup(func() { rename = orig })

	err := WriteFileAtomic(filepath.Join(dir, "out.txt"), []byte("x"), 0o644)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to rename")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileAtomicDirectoryFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := WriteFileAtomic(filepath.Join(blocker, "out.txt"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	got, err := ReadInput("-", strings.NewReader("20号 1-2 3"))
	require.NoError(t, err)
	assert.Equal(t, "20号 1-2 3", got)

	got, err = ReadInput("", strings.NewReader("stdin"))
	require.NoError(t, err)
	assert.Equal(t, "stdin", got)

	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("file"), 0o600))
	got, err = ReadInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "file", got)

	_, err = ReadInput(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}
