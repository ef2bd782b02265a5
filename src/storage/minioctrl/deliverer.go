package minioctrl

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"filebot/src/core/chat"
	"filebot/src/fsutil"
	"filebot/src/log"
)

// ObjectStore is the subset of MinioService the deliverer needs
type ObjectStore interface {
	PutStream(ctx context.Context, bucketName, objectName string, r io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
}

// Preparer describes a local file before upload
type Preparer interface {
	Prepare(ctx context.Context, name, path string) (chat.Attachment, error)
}

// Deliverer uploads attachments to a bucket and hands out presigned links,
// for transports that cannot read the bot host's disk.
type Deliverer struct {
	store  ObjectStore
	local  Preparer
	fs     fsutil.FileStore
	bucket string
	expiry time.Duration
}

func NewDeliverer(store ObjectStore, local Preparer, fs fsutil.FileStore, bucket string, expiry time.Duration) *Deliverer {
	return &Deliverer{
		store:  store,
		local:  local,
		fs:     fs,
		bucket: bucket,
		expiry: expiry,
	}
}

// ObjectName keys uploads by a random prefix so equal file names never collide.
func ObjectName(name string) string {
	return path.Join(uuid.NewString(), name)
}

func (d *Deliverer) Prepare(ctx context.Context, name, filePath string) (chat.Attachment, error) {
	att, err := d.local.Prepare(ctx, name, filePath)
	if err != nil {
		return chat.Attachment{}, err
	}

	r, err := d.fs.ReadFileAsStream(filePath)
	if err != nil {
		return chat.Attachment{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	object := ObjectName(name)
	if err := d.store.PutStream(ctx, d.bucket, object, r, att.Size, att.MIME); err != nil {
		return chat.Attachment{}, err
	}

	link, err := d.store.PresignedURL(ctx, d.bucket, object, d.expiry)
	if err != nil {
		return chat.Attachment{}, err
	}
	att.URL = link

	log.Info("Attachment uploaded", "bucket", d.bucket, "object", object, "size", att.Size)
	return att, nil
}
