package service

import (
	"context"
	"errors"
	"io"
)

// AvatarStorage stores uploaded profile images.
type AvatarStorage interface {
	// Upload writes the object at key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Open streams a stored object and reports its content type.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// ErrObjectNotFound is returned by Open for unknown keys.
var ErrObjectNotFound = errors.New("object not found")
