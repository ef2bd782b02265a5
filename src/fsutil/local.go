package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// LocalFileStore implements FileStore using the local filesystem
type LocalFileStore struct{}

// NewLocalFileStore creates a new LocalFileStore
func NewLocalFileStore() FileStore {
	return &LocalFileStore{}
}

func (fs *LocalFileStore) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (fs *LocalFileStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (fs *LocalFileStore) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (fs *LocalFileStore) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

func (fs *LocalFileStore) ReadFileAsStream(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (fs *LocalFileStore) Remove(path string) error {
	return os.Remove(path)
}

func (fs *LocalFileStore) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (fs *LocalFileStore) Move(src, dst string) error {
	if fs.IsDir(dst) {
		dst = filepath.Join(dst, filepath.Base(src))
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		}
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}

	// Different filesystems: copy then drop the source.
	if fs.IsDir(src) {
		err = fs.CopyTree(src, dst)
	} else {
		err = fs.CopyFile(src, dst)
	}
	if err != nil {
		return fmt.Errorf("failed to copy across devices: %w", err)
	}
	return os.RemoveAll(src)
}

func (fs *LocalFileStore) CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	if fs.IsDir(dst) {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return fmt.Errorf("%w: %s and %s", ErrSameFile, src, dst)
	}
	return copyFile(src, dst, info)
}
