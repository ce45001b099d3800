package upload

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3PutAPI is the subset of the S3 client used for uploads
type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Provider implements upload storage on AWS S3
type S3Provider struct {
	client     s3PutAPI
	bucketName string
	folder     string
	baseURL    string
	naming     Naming
}

// NewS3Provider creates a new AWS S3 provider
func NewS3Provider(ctx context.Context, accessKeyID, secretAccessKey, region, bucketName string, naming Naming) (*S3Provider, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Provider{
		client:     s3.NewFromConfig(cfg),
		bucketName: bucketName,
		folder:     "uploads",
		baseURL:    fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucketName, region),
		naming:     naming,
	}, nil
}

// Store uploads data to the bucket under the uploads/ prefix
func (p *S3Provider) Store(ctx context.Context, data []byte, filename string) (*StoredFile, error) {
	key, err := StorageKey(filename, p.naming)
	if err != nil {
		return nil, err
	}
	objectKey := path.Join(p.folder, key)

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(detectContentType(key)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &StoredFile{
		Key:      objectKey,
		Filename: filename,
		URL:      fmt.Sprintf("%s/%s", p.baseURL, objectKey),
		Size:     int64(len(data)),
	}, nil
}

// GetProviderName returns the provider name
func (p *S3Provider) GetProviderName() string {
	return "AWS S3"
}
