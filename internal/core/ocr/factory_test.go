package ocr

import (
	"testing"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/shared/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{"default tesseract", config.Config{}, "Tesseract OCR", false},
		{"tesseract", config.Config{OCRProvider: "tesseract"}, "Tesseract OCR", false},
		{"ocrspace", config.Config{OCRProvider: "ocrspace", OCRSpaceAPIKey: "k"}, "OCR.space", false},
		{"ocrspace without key", config.Config{OCRProvider: "ocrspace"}, "", true},
		{"google vision", config.Config{OCRProvider: "google-vision", GoogleVisionAPIKey: "k"}, "Google Cloud Vision", false},
		{"google vision without key", config.Config{OCRProvider: "google-vision"}, "", true},
		{"unknown", config.Config{OCRProvider: "easyocr"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			p, err := NewProvider(&cfg)
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
