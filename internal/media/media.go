// Package media relays image payloads to an external hosted image service.
// It owns no project state; the record-mutation flow calls into it and
// nothing calls back.
package media

import (
	"context"
	"io"
)

// UploadResult is the durable outcome of a stored image.
type UploadResult struct {
	URL      string
	PublicID string
	Format   string
	Bytes    int
}

// Service uploads image payloads and destroys stored images by their opaque
// identifier.
type Service interface {
	// Upload stores the payload under the folder hint and returns the
	// durable URL and assigned public id.
	Upload(ctx context.Context, r io.Reader, folder string) (*UploadResult, error)

	// Destroy removes the image with the given public id and returns the
	// upstream result string.
	Destroy(ctx context.Context, publicID string) (string, error)
}
