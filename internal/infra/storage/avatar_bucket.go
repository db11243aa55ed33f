// Package storage keeps uploaded avatars in a gocloud.dev blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"skatehubba/config"
	"skatehubba/internal/domain/lifecycle"
	"skatehubba/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const avatarCacheControl = "public, max-age=31536000, immutable"

// AvatarBucket implements service.AvatarStorage on any gocloud.dev bucket.
type AvatarBucket struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewAvatarBucket wraps an open bucket. publicBaseURL is prefixed to keys.
func NewAvatarBucket(bucket *blob.Bucket, publicBaseURL string) *AvatarBucket {
	return &AvatarBucket{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Params holds dependencies for the avatar storage, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New opens storage.bucketUrl (gs://, file:// or mem://) and closes it on shutdown.
func New(params Params) (service.AvatarStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage.bucketUrl must be configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	base, err := publicBaseURL(cfg)
	if err != nil {
		_ = bucket.Close()

		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Avatar storage ready",
		slog.String("bucket", cfg.BucketURL),
		slog.String("public_base_url", base),
	)

	return NewAvatarBucket(bucket, base), nil
}

// publicBaseURL defaults GCS buckets to their storage.googleapis.com URL.
// Other buckets default to "" so URLs are root-relative and served by the
// API's /avatars route.
func publicBaseURL(cfg *config.StorageConfig) (string, error) {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL, nil
	}

	u, err := url.Parse(cfg.BucketURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid storage.bucketUrl")
	}
	if u.Scheme == "gs" {
		return "https://storage.googleapis.com/" + u.Host, nil
	}

	return "", nil
}

func (b *AvatarBucket) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	w, err := b.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: avatarCacheControl,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open object writer")
	}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()

		return "", errors.Wrap(err, "failed to write object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to commit object")
	}

	return b.publicBaseURL + "/" + key, nil
}

func (b *AvatarBucket) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	r, err := b.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", service.ErrObjectNotFound
		}

		return nil, "", errors.Wrap(err, "failed to open object")
	}

	return r, r.ContentType(), nil
}

// Module provides the avatar storage FX module
var Module = fx.Options(
	fx.Provide(New),
)
