package utils

import (
	"fmt"

	"repairdesk/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary initializes and returns a Cloudinary client from the configured URL.
// Returns nil when no credentials are configured; callers treat media storage
// as a best-effort concern.
func Cloudinary() (*cloudinary.Cloudinary, error) {
	url := config.AppConfig.CloudinaryURL
	if url == "" {
		return nil, nil
	}

	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}
	return cld, nil
}
