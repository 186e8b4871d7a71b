package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BlobStore persists raw file bytes under an opaque key. Exactly one file
// record owns each key; keys are never reused after deletion.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewBlobKey derives a collision-resistant storage key for an uploaded file.
// The original extension is kept so keys stay inspectable in the store.
func NewBlobKey(filename string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), filepath.Ext(filename))
}
