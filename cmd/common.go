package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"filebot/src/core/attachment"
	"filebot/src/core/dispatcher"
	"filebot/src/core/fileops"
	"filebot/src/core/permission"
	"filebot/src/fsutil"
	"filebot/src/log"
	"filebot/src/storage/minioctrl"
)

// buildDispatcher wires the file operations, attachment delivery and
// permission check from the current viper configuration.
func buildDispatcher(ctx context.Context) (*dispatcher.Dispatcher, error) {
	fs := fsutil.NewLocalFileStore()

	preparer, err := buildPreparer(ctx, fs)
	if err != nil {
		return nil, err
	}

	basePath := viper.GetString("files.base_path")
	ops := fileops.NewService(basePath, fs, preparer)
	perms := permission.NewAdminList(adminIDs())

	log.Info("file operations ready", "basePath", ops.BasePath(), "delivery", viper.GetString("delivery.mode"))

	return dispatcher.New(ops, perms, viper.GetString("bot.wake_prefix")), nil
}

func buildPreparer(ctx context.Context, fs fsutil.FileStore) (fileops.AttachmentPreparer, error) {
	local := attachment.NewLocal(fs)

	switch mode := viper.GetString("delivery.mode"); mode {
	case "", "local":
		return local, nil
	case "minio":
		minioService, err := minioctrl.NewMinioService(
			viper.GetString("minio.endpoint"),
			viper.GetString("minio.access_key"),
			viper.GetString("minio.secret_key"),
			viper.GetBool("minio.use_ssl"),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize minio service: %w", err)
		}

		bucket := viper.GetString("minio.bucket")
		if err := minioService.EnsureBucketExists(ctx, bucket); err != nil {
			return nil, err
		}

		expiry, err := time.ParseDuration(viper.GetString("minio.url_expiry"))
		if err != nil {
			return nil, fmt.Errorf("invalid minio.url_expiry: %w", err)
		}

		return minioctrl.NewDeliverer(minioService, local, fs, bucket, expiry), nil
	default:
		return nil, fmt.Errorf("unknown delivery mode %q", mode)
	}
}

// adminIDs accepts both a YAML list and a comma or space separated env value.
func adminIDs() []string {
	var ids []string
	for _, v := range viper.GetStringSlice("bot.admins") {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
