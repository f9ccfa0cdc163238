package domain

import (
	"context"
	"io"
)

// BlobStore stores opaque file bytes and issues a public URL for each object.
// The core never inspects the bytes; photo submissions store the returned URL
// verbatim.
type BlobStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader, size int64) (string, error)
}
