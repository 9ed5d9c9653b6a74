package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryMediaStore implements MediaStore using Cloudinary.
type CloudinaryMediaStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryMediaStore creates a Cloudinary-backed media store.
func NewCloudinaryMediaStore(cld *cloudinary.Cloudinary) *CloudinaryMediaStore {
	return &CloudinaryMediaStore{cld: cld}
}

// UploadImage uploads raw image bytes into the given folder and returns the
// delivery URL.
func (s *CloudinaryMediaStore) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	uploadParams := uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	}
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploadParams)
	if err != nil {
		return "", fmt.Errorf("CloudinaryMediaStore: failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryMediaStore: no URL returned")
	}
	return result.SecureURL, nil
}

// DeleteImage removes an uploaded image given its public ID.
func (s *CloudinaryMediaStore) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryMediaStore: failed to delete image: %w", err)
	}
	return nil
}
