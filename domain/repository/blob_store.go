package repository

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by Get when the slot has never been written
var ErrBlobNotFound = errors.New("blob not found")

// IBlobStore is a named-slot key/value store holding serialized blobs
type IBlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
