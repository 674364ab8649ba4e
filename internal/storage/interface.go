package storage

import (
	"context"
	"io"
)

// Storage archives uploaded import files so a run can be audited against the
// exact bytes that produced it.
type Storage interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, data io.Reader) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
