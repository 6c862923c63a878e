package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRotator_RotatesWhenFull(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorOptions{Dir: dir, Name: "preview.log", MaxSizeMB: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	chunk := bytes.Repeat([]byte("x"), 700*1024)
	_, err = r.Write(chunk)
	require.NoError(t, err)
	assert.Empty(t, r.Backups())

	_, err = r.Write(chunk)
	require.NoError(t, err)

	backups := r.Backups()
	require.Len(t, backups, 1)
	assert.True(t, strings.HasPrefix(backups[0], "preview.log."))

	info, err := os.Stat(filepath.Join(dir, "preview.log"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), info.Size())
}

func TestLogRotator_CompressesAndPrunesBackups(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorOptions{Dir: dir, Name: "preview.log", MaxSizeMB: 1, MaxBackups: 1, Compress: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	chunk := bytes.Repeat([]byte("y"), 700*1024)
	for i := 0; i < 3; i++ {
		_, err = r.Write(chunk)
		require.NoError(t, err)
	}

	backups := r.Backups()
	require.Len(t, backups, 1)
	assert.True(t, strings.HasSuffix(backups[0], ".gz"))
}

func TestLogRotator_AppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "floatdock.log"), []byte("old\n"), 0o600))

	r, err := NewLogRotator(RotatorOptions{Dir: dir})
	require.NoError(t, err)
	_, err = r.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	assert.Equal(t, "old\nnew\n", string(data))
}
