package upload

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalProvider implements upload storage on the local filesystem.
// Files are kept until something deletes them; see Sweeper.
type LocalProvider struct {
	basePath string
	naming   Naming
}

// NewLocalProvider creates a new local file storage provider
func NewLocalProvider(basePath string, naming Naming) (*LocalProvider, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalProvider{
		basePath: basePath,
		naming:   naming,
	}, nil
}

// Store writes data under basePath, creating missing parent directories
func (p *LocalProvider) Store(ctx context.Context, data []byte, filename string) (*StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := StorageKey(filename, p.naming)
	if err != nil {
		return nil, err
	}

	filePath := filepath.Join(p.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	out, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := out.Write(data); err != nil {
		out.Close()
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		Key:      key,
		Filename: filename,
		Path:     filePath,
		Size:     int64(len(data)),
	}, nil
}

// PurgeOlderThan deletes stored files last modified before cutoff
func (p *LocalProvider) PurgeOlderThan(cutoff time.Time) (int, error) {
	removed := 0

	err := filepath.WalkDir(p.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.ModTime().Before(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		removed++
		return nil
	})

	return removed, err
}

// GetProviderName returns the provider name
func (p *LocalProvider) GetProviderName() string {
	return "Local Storage"
}
