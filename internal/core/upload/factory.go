package upload

import (
	"context"
	"fmt"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/shared/config"
)

// NewProvider creates the storage backend selected by UPLOAD_PROVIDER
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	naming, err := ParseNaming(cfg.UploadNaming)
	if err != nil {
		return nil, err
	}

	switch cfg.UploadProvider {
	case "local", "":
		return NewLocalProvider(cfg.UploadDir, naming)

	case "s3":
		if cfg.AWSS3Bucket == "" {
			return nil, fmt.Errorf("AWS_S3_BUCKET is required for the s3 upload provider")
		}
		return NewS3Provider(ctx, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.AWSRegion, cfg.AWSS3Bucket, naming)

	case "cloudinary":
		if cfg.CloudinaryCloudName == "" {
			return nil, fmt.Errorf("CLOUDINARY_CLOUD_NAME is required for the cloudinary upload provider")
		}
		return NewCloudinaryProvider(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, naming)

	default:
		return nil, fmt.Errorf("unknown upload provider %q", cfg.UploadProvider)
	}
}
