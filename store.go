package pacbucket

import (
	"context"
	"io"
)

// ObjectStore defines read and maintenance access to a key-value blob store.
// Implementations must be safe for concurrent use.
//
// All methods accept a context for cancellation and timeout control.
type ObjectStore interface {
	// Stat returns the metadata of an object.
	//
	// Returns:
	//   - ObjectInfo: key, total size in bytes, and content type (may be
	//     empty when the backend does not record one)
	//   - error: ErrNotFound if the key is absent, or other storage errors
	Stat(ctx context.Context, key string) (ObjectInfo, error)

	// ReadRange returns a reader over the inclusive byte range [start, end]
	// of an object. Callers pass 0 and size-1 for the full body.
	//
	// The caller is responsible for closing the returned reader.
	//
	// Returns:
	//   - io.ReadCloser: reader yielding exactly end-start+1 bytes
	//   - error: ErrNotFound if the key is absent, ErrInvalidInput if the
	//     range lies outside the object, or other storage errors
	ReadRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error)

	// List returns every object whose key begins with prefix. An empty
	// prefix lists the whole store. Implementations return an empty slice,
	// not nil, when nothing matches.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Delete removes an object. Deleting an absent key is not an error for
	// backends with S3 semantics; filesystem-like backends return
	// ErrNotFound.
	Delete(ctx context.Context, key string) error
}
