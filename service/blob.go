package service

import (
	"context"
	"errors"

	"github.com/light-87/Lead-V/model"
)

var ErrNotFound = errors.New("document not found")

// BlobStore keeps JSON documents under slash-separated keys. Get and Delete
// accept either a key or a URL previously returned by PutJSON or List.
type BlobStore interface {
	PutJSON(ctx context.Context, key string, v any) (string, error)
	List(ctx context.Context, prefix string) ([]model.BlobInfo, error)
	GetJSON(ctx context.Context, keyOrURL string, v any) error
	Delete(ctx context.Context, keyOrURL string) error
}
