package attachment

import (
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"filebot/src/core/chat"
	"filebot/src/fsutil"
)

// Local describes a file in place; the transport reads it from Path.
type Local struct {
	fs fsutil.FileStore
}

func NewLocal(fs fsutil.FileStore) *Local {
	return &Local{fs: fs}
}

// Prepare stats the file and sniffs its MIME type from content.
func (l *Local) Prepare(ctx context.Context, name, path string) (chat.Attachment, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return chat.Attachment{}, err
	}
	if info.IsDir() {
		return chat.Attachment{}, fmt.Errorf("%s is a directory", path)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return chat.Attachment{}, fmt.Errorf("failed to detect mime type: %w", err)
	}

	return chat.Attachment{
		Name: name,
		Path: path,
		MIME: mime.String(),
		Size: info.Size(),
	}, nil
}
