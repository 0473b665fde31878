package pinning

import (
	"context"
	"io"
)

// Pinner uploads content to the content-addressed pinning service. Pin
// returns the content hash the service assigned; Unpin is best effort and
// callers must not assume the content is gone when it errors.
type Pinner interface {
	Pin(ctx context.Context, content io.Reader, filename string) (string, error)
	Unpin(ctx context.Context, hash string) error
	PublicURL(hash string) string
}
