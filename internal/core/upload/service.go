package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
)

// Service provides file storage with a pluggable provider
type Service struct {
	provider Provider
}

// NewService creates a new upload service
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Store writes data using the configured provider
func (s *Service) Store(ctx context.Context, data []byte, filename string) (*StoredFile, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("upload provider not configured")
	}

	return s.provider.Store(ctx, data, filename)
}

// ReadMultipart reads the full content of a multipart file part
func ReadMultipart(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return data, nil
}

// MultipartFilename returns the client filename exactly as sent.
// multipart.FileHeader.Filename is reduced to its last path element, so the
// raw value is taken from Content-Disposition.
func MultipartFilename(fileHeader *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(fileHeader.Header.Get("Content-Disposition"))
	if err == nil && params["filename"] != "" {
		return params["filename"]
	}
	return fileHeader.Filename
}

// GetProviderName returns the current provider name
func (s *Service) GetProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.GetProviderName()
}
