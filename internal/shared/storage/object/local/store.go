package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-tailor-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using the local filesystem. Signed URLs point
// at the application's own file-serving route; expiry is not enforced.
type Store struct {
	baseDir string
	baseURL string
}

// New creates a local object store rooted at baseDir. baseURL is the
// externally reachable application URL used to build download links.
func New(baseDir, baseURL string) *Store {
	return &Store{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes data under bucket/path and returns the stored path.
func (s *Store) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanPath(bucket, path)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	_ = contentType
	return path, nil
}

// SignedURL returns a direct URL served by the files route.
func (s *Store) SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanPath(bucket, path)
	if err != nil {
		return "", err
	}
	_ = expiresIn
	return s.baseURL + "/api/files/" + filepath.ToSlash(clean), nil
}

// Delete removes a stored object. Missing objects are not an error.
func (s *Store) Delete(ctx context.Context, bucket, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := cleanPath(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// Open reads a stored object; used by the file-serving route.
func (s *Store) Open(bucket, path string) ([]byte, error) {
	clean, err := cleanPath(bucket, path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(s.baseDir, clean))
}

func cleanPath(bucket, path string) (string, error) {
	joined := filepath.Clean(filepath.Join(bucket, path))
	if strings.HasPrefix(joined, "..") || filepath.IsAbs(joined) {
		return "", fmt.Errorf("invalid storage path")
	}
	return joined, nil
}

var _ object.ObjectStore = (*Store)(nil)
