package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filebot/src/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExistsAndIsDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	fs := fsutil.NewLocalFileStore()

	tests := []struct {
		name       string
		path       string
		wantExists bool
		wantDir    bool
	}{
		{name: "file", path: "a.txt", wantExists: true, wantDir: false},
		{name: "directory", path: ".", wantExists: true, wantDir: true},
		{name: "missing", path: "nope", wantExists: false, wantDir: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(root, tt.path)
			assert.Equal(t, tt.wantExists, fs.Exists(p))
			assert.Equal(t, tt.wantDir, fs.IsDir(p))
		})
	}
}

func TestCopyFilePreservesMetadata(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	writeFile(t, src, "payload")
	require.NoError(t, os.Chmod(src, 0o600))
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	fs := fsutil.NewLocalFileStore()
	dst := filepath.Join(root, "dst.txt")
	require.NoError(t, fs.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mtime = %v, want %v", info.ModTime(), mtime)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCopyFileIntoDirectory(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	writeFile(t, src, "payload")
	require.NoError(t, os.Mkdir(filepath.Join(root, "box"), 0o755))

	fs := fsutil.NewLocalFileStore()
	require.NoError(t, fs.CopyFile(src, filepath.Join(root, "box")))

	assert.FileExists(t, filepath.Join(root, "box", "src.txt"))
	assert.FileExists(t, src)
}

func TestCopyTree(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "a.txt"), "a")
	writeFile(t, filepath.Join(src, "nested", "b.txt"), "b")
	writeFile(t, filepath.Join(src, "nested", "deeper", "c.txt"), "c")
	require.NoError(t, os.Mkdir(filepath.Join(src, "empty"), 0o755))

	mtime := time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(src, "nested", "b.txt"), mtime, mtime))

	fs := fsutil.NewLocalFileStore()
	dst := filepath.Join(root, "dst")
	require.NoError(t, fs.CopyTree(src, dst))

	for path, want := range map[string]string{
		"a.txt":               "a",
		"nested/b.txt":        "b",
		"nested/deeper/c.txt": "c",
	} {
		data, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(path)))
		require.NoError(t, err, path)
		assert.Equal(t, want, string(data), path)
	}
	assert.DirExists(t, filepath.Join(dst, "empty"))

	info, err := os.Stat(filepath.Join(dst, "nested", "b.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))

	// source untouched
	assert.FileExists(t, filepath.Join(src, "nested", "deeper", "c.txt"))
}

func TestCopyTreeRefusesExistingDestination(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.txt"), "a")
	require.NoError(t, os.Mkdir(filepath.Join(root, "dst"), 0o755))

	fs := fsutil.NewLocalFileStore()
	err := fs.CopyTree(filepath.Join(root, "src"), filepath.Join(root, "dst"))
	assert.ErrorIs(t, err, fsutil.ErrDestinationExists)
	assert.NoFileExists(t, filepath.Join(root, "dst", "a.txt"))
}

func TestCopyFileOntoItself(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a.txt")
	writeFile(t, src, "precious data")
	fs := fsutil.NewLocalFileStore()

	tests := []struct {
		name string
		dst  string
	}{
		{name: "same path", dst: src},
		{name: "containing directory", dst: root},
		{name: "unclean path", dst: filepath.Join(root, ".", "a.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.CopyFile(src, tt.dst)
			assert.ErrorIs(t, err, fsutil.ErrSameFile)

			data, err := os.ReadFile(src)
			require.NoError(t, err)
			assert.Equal(t, "precious data", string(data))
		})
	}
}

func TestCopyTreeRefusesOwnSubtree(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "d")
	writeFile(t, filepath.Join(src, "x.txt"), "x")
	fs := fsutil.NewLocalFileStore()

	for _, dst := range []string{
		filepath.Join(src, "sub"),
		filepath.Join(src, "sub", "deeper"),
	} {
		err := fs.CopyTree(src, dst)
		assert.ErrorIs(t, err, fsutil.ErrDestinationInsideSource, dst)
	}

	entries, err := os.ReadDir(src)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// a sibling sharing the name prefix is not inside
	require.NoError(t, fs.CopyTree(src, filepath.Join(root, "d2")))
	assert.FileExists(t, filepath.Join(root, "d2", "x.txt"))
}

func TestMove(t *testing.T) {
	t.Run("rename file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "old.txt"), "x")

		fs := fsutil.NewLocalFileStore()
		require.NoError(t, fs.Move(filepath.Join(root, "old.txt"), filepath.Join(root, "new.txt")))

		assert.NoFileExists(t, filepath.Join(root, "old.txt"))
		assert.FileExists(t, filepath.Join(root, "new.txt"))
	})

	t.Run("into existing directory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "old.txt"), "x")
		require.NoError(t, os.Mkdir(filepath.Join(root, "box"), 0o755))

		fs := fsutil.NewLocalFileStore()
		require.NoError(t, fs.Move(filepath.Join(root, "old.txt"), filepath.Join(root, "box")))

		assert.FileExists(t, filepath.Join(root, "box", "old.txt"))
	})

	t.Run("into directory holding same name", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "old.txt"), "x")
		writeFile(t, filepath.Join(root, "box", "old.txt"), "y")

		fs := fsutil.NewLocalFileStore()
		err := fs.Move(filepath.Join(root, "old.txt"), filepath.Join(root, "box"))
		assert.ErrorIs(t, err, fsutil.ErrDestinationExists)
		assert.FileExists(t, filepath.Join(root, "old.txt"))
	})

	t.Run("directory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "dir", "a.txt"), "a")

		fs := fsutil.NewLocalFileStore()
		require.NoError(t, fs.Move(filepath.Join(root, "dir"), filepath.Join(root, "moved")))

		assert.NoDirExists(t, filepath.Join(root, "dir"))
		assert.FileExists(t, filepath.Join(root, "moved", "a.txt"))
	})
}

func TestReadDirSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	require.NoError(t, os.Mkdir(filepath.Join(root, "c"), 0o755))

	entries, err := fsutil.NewLocalFileStore().ReadDir(root)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "c"}, names)
}
