package attachment_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filebot/src/core/attachment"
	"filebot/src/fsutil"
)

func TestLocalPrepare(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0o644))

	got, err := attachment.NewLocal(fsutil.NewLocalFileStore()).Prepare(context.Background(), "notes.txt", path)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", got.Name)
	assert.Equal(t, path, got.Path)
	assert.Equal(t, int64(12), got.Size)
	assert.Contains(t, got.MIME, "text/plain")
	assert.Empty(t, got.URL)
}

func TestLocalPrepareRejectsDirectory(t *testing.T) {
	_, err := attachment.NewLocal(fsutil.NewLocalFileStore()).Prepare(context.Background(), "x", t.TempDir())
	assert.Error(t, err)
}
