package fsutil

import (
	"errors"
	"io"
	"os"
)

// ErrDestinationExists is returned when a move or tree copy would clobber an
// existing path.
var ErrDestinationExists = errors.New("destination path already exists")

// ErrSameFile is returned when a file would be copied onto itself.
var ErrSameFile = errors.New("source and destination are the same file")

// ErrDestinationInsideSource is returned when a tree copy targets a path
// below its own source.
var ErrDestinationInsideSource = errors.New("destination is inside the source directory")

// FileStore provides an interface for file system operations
type FileStore interface {
	// Stat returns file info for path, following symlinks
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether path can be stat'ed
	Exists(path string) bool

	// IsDir reports whether path exists and is a directory
	IsDir(path string) bool

	// ReadDir returns the immediate children of a directory, sorted by name
	ReadDir(path string) ([]os.DirEntry, error)

	// ReadFileAsStream opens a file and returns a reader
	ReadFileAsStream(path string) (io.ReadCloser, error)

	// Remove removes a single file or empty directory
	Remove(path string) error

	// RemoveAll removes a path and any children it contains
	RemoveAll(path string) error

	// Move renames src to dst. If dst is an existing directory, src is moved
	// inside it. Falls back to copy and remove across devices.
	Move(src, dst string) error

	// CopyFile copies content, permission bits and modification time. If dst
	// is an existing directory, the file is copied inside it.
	CopyFile(src, dst string) error

	// CopyTree recursively copies the directory src to dst, which must not
	// exist yet.
	CopyTree(src, dst string) error
}
