package upload

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/shared/config"
)

func TestNewProvider(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{"local default", config.Config{UploadDir: dir}, "Local Storage", false},
		{"local original naming", config.Config{UploadProvider: "local", UploadDir: dir, UploadNaming: "original"}, "Local Storage", false},
		{"bad naming", config.Config{UploadDir: dir, UploadNaming: "md5"}, "", true},
		{"s3 without bucket", config.Config{UploadProvider: "s3"}, "", true},
		{"cloudinary without cloud", config.Config{UploadProvider: "cloudinary"}, "", true},
		{"cloudinary", config.Config{UploadProvider: "cloudinary", CloudinaryCloudName: "demo", CloudinaryAPIKey: "k", CloudinaryAPISecret: "s"}, "Cloudinary", false},
		{"unknown", config.Config{UploadProvider: "ftp"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			p, err := NewProvider(context.Background(), &cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if got := p.GetProviderName(); got != tt.wantName {
				t.Errorf("provider = %q, want %q", got, tt.wantName)
			}
		})
	}
}
