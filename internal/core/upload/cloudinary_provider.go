package upload

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryProvider implements upload storage on Cloudinary
type CloudinaryProvider struct {
	cld    *cloudinary.Cloudinary
	folder string
	naming Naming
}

// NewCloudinaryProvider creates a new Cloudinary provider
func NewCloudinaryProvider(cloudName, apiKey, apiSecret string, naming Naming) (*CloudinaryProvider, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryProvider{
		cld:    cld,
		folder: "uploads",
		naming: naming,
	}, nil
}

// Store uploads data as an image asset
func (p *CloudinaryProvider) Store(ctx context.Context, data []byte, filename string) (*StoredFile, error) {
	key, err := StorageKey(filename, p.naming)
	if err != nil {
		return nil, err
	}

	// Cloudinary appends the format itself
	publicID := strings.TrimSuffix(key, path.Ext(key))
	overwrite := p.naming == NamingOriginal

	result, err := p.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:  publicID,
		Folder:    p.folder,
		Overwrite: &overwrite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", result.Error.Message)
	}

	return &StoredFile{
		Key:      result.PublicID,
		Filename: filename,
		URL:      result.SecureURL,
		Size:     int64(len(data)),
	}, nil
}

// GetProviderName returns the provider name
func (p *CloudinaryProvider) GetProviderName() string {
	return "Cloudinary"
}
