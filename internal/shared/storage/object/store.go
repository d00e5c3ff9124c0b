package object

import (
	"context"
	"time"
)

// ObjectStore is the capability set the application needs from blob storage.
// The concrete backend is chosen once at startup and injected; business logic
// never inspects which implementation it holds.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error)
	Delete(ctx context.Context, bucket, path string) error
}
