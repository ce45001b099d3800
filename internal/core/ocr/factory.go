package ocr

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/shared/config"
)

// NewProvider creates the recognition engine selected by OCR_PROVIDER
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.OCRProvider {
	case "tesseract", "":
		return NewTesseractProvider(cfg.TesseractPath, cfg.OCRLanguages), nil

	case "tesseract-native":
		return NewNativeTesseractProvider(cfg.OCRLanguages)

	case "ocrspace":
		if cfg.OCRSpaceAPIKey == "" {
			return nil, fmt.Errorf("OCR_SPACE_API_KEY is required for the ocrspace provider")
		}
		return NewOCRSpaceProvider(cfg.OCRSpaceAPIKey, cfg.OCRLanguages), nil

	case "google-vision":
		if cfg.GoogleVisionAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_VISION_API_KEY is required for the google-vision provider")
		}
		return NewGoogleVisionProvider(cfg.GoogleVisionAPIKey, cfg.OCRLanguages), nil

	default:
		return nil, fmt.Errorf("unknown OCR provider %q", cfg.OCRProvider)
	}
}
