package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobDir(t *testing.T) {
	om := NewOutputManager(t.TempDir())

	dir, err := om.JobDir("abc-123")

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, "abc-123", filepath.Base(dir))
}

func TestDownloadURL(t *testing.T) {
	om := NewOutputManager("outputs")
	assert.Equal(t, "/api/v1/etl/abc-123/download", om.DownloadURL("abc-123"))
}

func TestFileSize(t *testing.T) {
	om := NewOutputManager(t.TempDir())
	path := filepath.Join(om.BaseOutputDir, "f.csv")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	size, err := om.FileSize(path)

	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = om.FileSize(filepath.Join(om.BaseOutputDir, "missing"))
	assert.Error(t, err)
}
