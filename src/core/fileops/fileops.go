// Package fileops performs filesystem operations on behalf of chat users.
// Every path a user supplies is resolved against one base directory, and
// every outcome, including failures, is reported as a stream of replies.
package fileops

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/go-logr/logr"

	"filebot/src/core/chat"
	"filebot/src/fsutil"
	"filebot/src/log"
)

// ErrOutsideBase is returned by Resolve for paths that leave the base directory.
var ErrOutsideBase = errors.New("path is outside the base directory")

// AttachmentPreparer turns a file on disk into an attachment the transport
// can deliver.
type AttachmentPreparer interface {
	Prepare(ctx context.Context, name, path string) (chat.Attachment, error)
}

// Service is the file operations facade. It is safe for concurrent use; the
// only state it holds is immutable configuration.
type Service struct {
	basePath    string
	fs          fsutil.FileStore
	attachments AttachmentPreparer
	logger      logr.Logger
}

func NewService(basePath string, fs fsutil.FileStore, attachments AttachmentPreparer) *Service {
	return &Service{
		basePath:    filepath.Clean(basePath),
		fs:          fs,
		attachments: attachments,
		logger:      log.WithName("fileops"),
	}
}

// BasePath returns the directory all paths are resolved against.
func (s *Service) BasePath() string {
	return s.basePath
}

// Resolve joins rel onto the base directory. A leading separator in rel does
// not make it absolute.
func (s *Service) Resolve(rel string) (string, error) {
	full := filepath.Join(s.basePath, rel)
	r, err := filepath.Rel(s.basePath, full)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, rel)
	}
	return full, nil
}

// stream wraps fn so that the returned sequence runs it at most once.
func stream(fn func(yield func(chat.Reply) bool)) iter.Seq[chat.Reply] {
	var used atomic.Bool
	return func(yield func(chat.Reply) bool) {
		if used.Swap(true) {
			return
		}
		fn(yield)
	}
}

func plainf(format string, args ...any) chat.Reply {
	return chat.Plain(fmt.Sprintf(format, args...))
}

// Send yields a start notice, the file attachment, then a confirmation.
func (s *Service) Send(ctx context.Context, path string) iter.Seq[chat.Reply] {
	return stream(func(yield func(chat.Reply) bool) {
		full, err := s.Resolve(path)
		if err != nil {
			yield(plainf(msgOutsideBase, path))
			return
		}
		if !s.fs.Exists(full) {
			yield(plainf(msgFileNotFound, path))
			return
		}
		if s.fs.IsDir(full) {
			yield(plainf(msgIsDirectory, path))
			return
		}

		name := filepath.Base(path)
		if !yield(plainf(msgSendStarted, name)) {
			return
		}

		att, err := s.attachments.Prepare(ctx, name, full)
		if err != nil {
			s.logger.Error(err, "Failed to prepare attachment", "path", full)
			yield(plainf(msgSendFailed, err))
			return
		}
		if !yield(chat.File(att)) {
			return
		}

		s.logger.Info("File sent", "path", full, "size", att.Size, "mime", att.MIME)
		yield(plainf(msgSendDone, name))
	})
}

// DeleteFile removes a single file.
func (s *Service) DeleteFile(ctx context.Context, path string) iter.Seq[chat.Reply] {
	return stream(func(yield func(chat.Reply) bool) {
		full, err := s.Resolve(path)
		if err != nil {
			yield(plainf(msgOutsideBase, path))
			return
		}
		if !s.fs.Exists(full) {
			yield(plainf(msgFileNotFound, path))
			return
		}
		if s.fs.IsDir(full) {
			yield(plainf(msgIsDirectory, path))
			return
		}

		if err := s.fs.Remove(full); err != nil {
			s.logger.Error(err, "Failed to delete file", "path", full)
			yield(plainf(msgFileDeleteFailed, err))
			return
		}
		s.logger.Info("File deleted", "path", full)
		yield(plainf(msgFileDeleted, path))
	})
}

// DeleteDirectory removes a directory and everything below it.
func (s *Service) DeleteDirectory(ctx context.Context, path string) iter.Seq[chat.Reply] {
	return stream(func(yield func(chat.Reply) bool) {
		full, ok := s.resolveDir(path, yield)
		if !ok {
			return
		}
		if full == s.basePath {
			yield(plainf(msgBaseProtected, path))
			return
		}

		if err := s.fs.RemoveAll(full); err != nil {
			s.logger.Error(err, "Failed to delete directory", "path", full)
			yield(plainf(msgDirDeleteFailed, err))
			return
		}
		s.logger.Info("Directory deleted", "path", full)
		yield(plainf(msgDirDeleted, path))
	})
}

// List yields one reply naming the immediate children of a directory,
// one per line, sub-directories prefixed with a slash.
func (s *Service) List(ctx context.Context, path string) iter.Seq[chat.Reply] {
	return stream(func(yield func(chat.Reply) bool) {
		full, ok := s.resolveDir(path, yield)
		if !ok {
			return
		}

		entries, err := s.fs.ReadDir(full)
		if err != nil {
			s.logger.Error(err, "Failed to read directory", "path", full)
			yield(plainf(msgListFailed, err))
			return
		}
		if len(entries) == 0 {
			yield(plainf(msgDirEmpty, path))
			return
		}

		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			name := e.Name()
			if s.fs.IsDir(filepath.Join(full, name)) {
				name = dirEntryMarker + name
			}
			lines = append(lines, name)
		}
		s.logger.V(1).Info("Directory listed", "path", full, "entries", len(entries))
		yield(plainf(msgDirListing, path, strings.Join(lines, "\n")))
	})
}

func (s *Service) resolveDir(path string, yield func(chat.Reply) bool) (string, bool) {
	full, err := s.Resolve(path)
	if err != nil {
		yield(plainf(msgOutsideBase, path))
		return "", false
	}
	if !s.fs.Exists(full) {
		yield(plainf(msgDirNotFound, path))
		return "", false
	}
	if !s.fs.IsDir(full) {
		yield(plainf(msgNotDirectory, path))
		return "", false
	}
	return full, true
}

// Move relocates src to dst. Only the source is checked up front.
func (s *Service) Move(ctx context.Context, src, dst string) iter.Seq[chat.Reply] {
	return stream(func(yield func(chat.Reply) bool) {
		fullSrc, fullDst, ok := s.resolvePair(src, dst, yield)
		if !ok {
			return
		}
		if fullSrc == s.basePath {
			yield(plainf(msgBaseProtected, src))
			return
		}

		if err := s.fs.Move(fullSrc, fullDst); err != nil {
			s.logger.Error(err, "Failed to move", "src", fullSrc, "dst", fullDst)
			yield(plainf(msgMoveFailed, err))
			return
		}
		s.logger.Info("Moved", "src", fullSrc, "dst", fullDst)
		yield(plainf(msgMoved, src, dst))
	})
}

// Copy duplicates a file, or a whole directory tree, from src to dst.
func (s *Service) Copy(ctx context.Context, src, dst string) iter.Seq[chat.Reply] {
	return stream(func(yield func(chat.Reply) bool) {
		fullSrc, fullDst, ok := s.resolvePair(src, dst, yield)
		if !ok {
			return
		}

		var err error
		if s.fs.IsDir(fullSrc) {
			err = s.fs.CopyTree(fullSrc, fullDst)
		} else {
			err = s.fs.CopyFile(fullSrc, fullDst)
		}
		if err != nil {
			s.logger.Error(err, "Failed to copy", "src", fullSrc, "dst", fullDst)
			yield(plainf(msgCopyFailed, err))
			return
		}
		s.logger.Info("Copied", "src", fullSrc, "dst", fullDst)
		yield(plainf(msgCopied, src, dst))
	})
}

func (s *Service) resolvePair(src, dst string, yield func(chat.Reply) bool) (string, string, bool) {
	fullSrc, err := s.Resolve(src)
	if err != nil {
		yield(plainf(msgOutsideBase, src))
		return "", "", false
	}
	fullDst, err := s.Resolve(dst)
	if err != nil {
		yield(plainf(msgOutsideBase, dst))
		return "", "", false
	}
	if !s.fs.Exists(fullSrc) {
		yield(plainf(msgSourceNotFound, src))
		return "", "", false
	}
	return fullSrc, fullDst, true
}
