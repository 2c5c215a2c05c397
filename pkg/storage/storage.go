// Package storage keeps uploaded product image files.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Get when no object is stored under the key.
var ErrNotExist = errors.New("object does not exist")

// Store puts and fetches opaque objects by key.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
