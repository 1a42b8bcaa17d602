package fsutil

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove_File(t *testing.T) {
	tempDir := t.TempDir()

	srcFile := filepath.Join(tempDir, "state.txt.tmp")
	dstFile := filepath.Join(tempDir, "nested", "state.txt")

	content := "sequenceNumber=4242"
	require.NoError(t, os.WriteFile(srcFile, []byte(content), FileModeDefault))

	require.NoError(t, Move(srcFile, dstFile))

	moved, err := os.ReadFile(dstFile)
	require.NoError(t, err)
	assert.Equal(t, content, string(moved))

	_, err = os.Stat(srcFile)
	assert.True(t, os.IsNotExist(err))
}

func TestMove_Errors(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name string
		src  string
		dst  string
	}{
		{name: "empty source", src: "", dst: filepath.Join(tempDir, "x")},
		{name: "empty destination", src: filepath.Join(tempDir, "x"), dst: ""},
		{name: "missing source", src: filepath.Join(tempDir, "missing"), dst: filepath.Join(tempDir, "y")},
		{name: "directory source", src: tempDir, dst: filepath.Join(tempDir, "z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Move(tt.src, tt.dst))
		})
	}
}

func TestIsCrossFilesystemError(t *testing.T) {
	exdev := &os.LinkError{Op: "rename", Old: "a", New: "b", Err: syscall.EXDEV}
	assert.True(t, isCrossFilesystemError(exdev))

	other := &os.LinkError{Op: "rename", Old: "a", New: "b", Err: syscall.ENOENT}
	assert.False(t, isCrossFilesystemError(other))
}

func TestCopy(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src")
	dst := filepath.Join(tempDir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("payload"), FileModeDefault))

	require.NoError(t, Copy(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
	assert.FileExists(t, src)
}

func TestEnsureFileDir(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "catalogs", "geofabrik.json")
	require.NoError(t, EnsureFileDir(filePath))
	assert.DirExists(t, filepath.Dir(filePath))
}
