package object

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested key does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidKey indicates a key that cannot be addressed by the store.
	ErrInvalidKey = errors.New("invalid object key")
)

// Object is the body and stored content type of a single key.
type Object struct {
	Body        []byte
	ContentType string
	Metadata    map[string]string
}

// Info describes one listed key. LastModified is nil when the backend did not report it.
type Info struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// ListResult is a single page of keys. Truncated reports that more keys exist past MaxKeys.
type ListResult struct {
	Objects   []Info
	Truncated bool
}

// DeleteError reports one key a batch delete could not remove.
type DeleteError struct {
	Key     string `json:"key"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// BatchDeleteResult reports partial outcomes of DeleteAll.
type BatchDeleteResult struct {
	DeletedCount int
	Errors       []DeleteError
}

// ObjectStore is the contract shared by every blob backend.
//
// Put overwrites existing keys. Delete succeeds for absent keys. List returns at most
// maxKeys entries and never paginates. DeleteAll returns an error only when the whole
// request failed; per-key failures are reported in the result.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error
	Get(ctx context.Context, key string) (Object, error)
	List(ctx context.Context, prefix string, maxKeys int) (ListResult, error)
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, keys []string) (BatchDeleteResult, error)
	URL(key string) string
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// MaxListKeys is the largest page a single List call returns.
const MaxListKeys = 1000

// ClampMaxKeys bounds maxKeys to (0, MaxListKeys], substituting def for non-positive values.
func ClampMaxKeys(maxKeys, def int) int {
	if maxKeys <= 0 {
		maxKeys = def
	}
	if maxKeys > MaxListKeys {
		maxKeys = MaxListKeys
	}
	return maxKeys
}
