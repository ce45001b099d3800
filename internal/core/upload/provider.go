package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredFile describes where an upload was written
type StoredFile struct {
	Key      string `json:"key"`      // Storage key, relative to the provider root
	Filename string `json:"filename"` // Client-supplied name, display only
	Path     string `json:"path"`     // Local path; empty for remote providers
	URL      string `json:"url"`      // Public URL when the provider exposes one
	Size     int64  `json:"size"`
}

// Provider defines the interface for upload storage backends
type Provider interface {
	// Store writes the content and returns where it went
	Store(ctx context.Context, data []byte, filename string) (*StoredFile, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// Naming selects how storage keys are derived from client filenames
type Naming string

const (
	// NamingUUID stores under a random key and keeps the client name as a label
	NamingUUID Naming = "uuid"
	// NamingOriginal stores under the client filename. Later uploads with the
	// same name overwrite earlier ones.
	NamingOriginal Naming = "original"
)

// ParseNaming validates a naming mode
func ParseNaming(s string) (Naming, error) {
	switch Naming(s) {
	case NamingUUID, NamingOriginal:
		return Naming(s), nil
	case "":
		return NamingUUID, nil
	default:
		return "", fmt.Errorf("unknown upload naming %q", s)
	}
}

// StorageKey derives a relative storage key for filename
func StorageKey(filename string, naming Naming) (string, error) {
	if naming == NamingOriginal {
		if filename == "" {
			return "", fmt.Errorf("empty filename")
		}
		key := filepath.Clean(filepath.FromSlash(filename))
		if !filepath.IsLocal(key) {
			return "", fmt.Errorf("filename escapes upload directory: %q", filename)
		}
		return filepath.ToSlash(key), nil
	}

	return uuid.New().String() + safeExt(filename), nil
}

// safeExt keeps a short alphanumeric extension from an untrusted name
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// detectContentType detects the content type based on file extension
func detectContentType(key string) string {
	contentTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".bmp":  "image/bmp",
		".tif":  "image/tiff",
		".tiff": "image/tiff",
	}

	if contentType, ok := contentTypes[strings.ToLower(filepath.Ext(key))]; ok {
		return contentType
	}

	return "application/octet-stream"
}
