package storage

import "context"

// MediaStore persists customer-supplied photos and returns a durable URL
// that can be attached to a service ticket.
type MediaStore interface {
	UploadImage(ctx context.Context, data []byte, folder string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}
