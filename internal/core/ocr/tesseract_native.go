//go:build gosseract

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// NativeTesseractProvider implements OCR through libtesseract bindings.
// The client is stateful and not safe for concurrent use, so it reports
// itself as serial and Service never runs it concurrently.
type NativeTesseractProvider struct {
	client *gosseract.Client
}

// NewNativeTesseractProvider creates the process-wide client with a fixed language set
func NewNativeTesseractProvider(language string) (Provider, error) {
	client := gosseract.NewClient()

	langs := strings.Split(language, "+")
	if err := client.SetLanguage(langs...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	return &NativeTesseractProvider{client: client}, nil
}

// Recognize returns one detection per text line
func (p *NativeTesseractProvider) Recognize(ctx context.Context, img Image) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var err error
	if img.Path != "" {
		err = p.client.SetImage(img.Path)
	} else {
		err = p.client.SetImageFromBytes(img.Data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := p.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	detections := make([]Detection, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		detections = append(detections, Detection{
			Text:       text,
			Confidence: float64(box.Confidence) / 100.0,
		})
	}

	return detections, nil
}

// GetProviderName returns the name of the provider
func (p *NativeTesseractProvider) GetProviderName() string {
	return "Tesseract (libtesseract)"
}

// Serial reports that the client must not be shared between concurrent calls
func (p *NativeTesseractProvider) Serial() bool {
	return true
}

// Close releases the underlying client
func (p *NativeTesseractProvider) Close() error {
	return p.client.Close()
}
