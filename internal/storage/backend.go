package storage

import (
	"context"
	"time"
)

// Backend is the object store behind uploaded files.
type Backend interface {
	Put(ctx context.Context, key string, contentType string, body []byte) error
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL. fileName sets the
	// attachment name offered to the browser.
	PresignGet(ctx context.Context, key string, fileName string, ttl time.Duration) (string, error)
}
