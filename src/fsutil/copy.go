package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

type dirStamp struct {
	path string
	info os.FileInfo
}

func (fs *LocalFileStore) CopyTree(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}

	rootInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}
	inside, err := within(src, dst)
	if err != nil {
		return err
	}
	if inside {
		return fmt.Errorf("%w: %s is below %s", ErrDestinationInsideSource, dst, src)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	// The walk callback runs concurrently; dirs is the only shared state.
	var mu sync.Mutex
	dirs := []dirStamp{{path: dst, info: rootInfo}}

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			mu.Lock()
			dirs = append(dirs, dirStamp{path: target, info: info})
			mu.Unlock()
			return nil
		case d.Type()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			return copyFile(path, target, info)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to copy tree: %w", err)
	}

	// Directory metadata goes last, deepest first, so writing children does
	// not bump parent mtimes and read-only dirs are filled before locking.
	sort.Slice(dirs, func(i, j int) bool {
		return len(dirs[i].path) > len(dirs[j].path)
	})
	for _, d := range dirs {
		if err := stamp(d.path, d.info); err != nil {
			return err
		}
	}
	return nil
}

// within reports whether path is root or lies below it. Symlinks in root are
// resolved, as is the longest existing prefix of path.
func within(root, path string) (bool, error) {
	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		return false, err
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return false, err
	}

	// Resolve the part of path that exists; the rest is created by the copy.
	existing, rest := path, ""
	for {
		if resolved, err := filepath.EvalSymlinks(existing); err == nil {
			path = filepath.Join(resolved, rest)
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		rest = filepath.Join(filepath.Base(existing), rest)
		existing = parent
	}

	root, err = filepath.Abs(root)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return stamp(dst, info)
}

func stamp(path string, info os.FileInfo) error {
	if err := os.Chmod(path, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(path, info.ModTime(), info.ModTime())
}
