package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-voucher/voucher-svc/internal/service"
)

func TestFileStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "http://localhost:8080/storage/")

	path, err := store.SavePNG([]byte("png-bytes"))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^qrcodes/qr_[0-9a-f-]{36}\.png$`), path)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	assert.Equal(t, "http://localhost:8080/storage/"+path, store.URL(path))

	deleted, err := store.Delete(path)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(path)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFileStore_UniqueNames(t *testing.T) {
	store := NewFileStore(t.TempDir(), "/storage")

	first, err := store.SavePNG([]byte("a"))
	require.NoError(t, err)
	second, err := store.SavePNG([]byte("a"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestFileStore_DeleteRejectsOutsidePaths(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "/storage")
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("x"), 0o644))

	tests := []string{
		"secret.txt",
		"../secret.txt",
		"qrcodes/../secret.txt",
		"/etc/passwd",
		"qrcodes",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := store.Delete(path)
			assert.ErrorIs(t, err, service.ErrInvalidPath)
		})
	}

	_, err := os.Stat(filepath.Join(root, "secret.txt"))
	assert.NoError(t, err)
}
