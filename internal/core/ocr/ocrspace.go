package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

const ocrSpaceEndpoint = "https://api.ocr.space/parse/image"

// OCR.space reports no per-line score, so every line gets this value
const ocrSpaceDefaultConfidence = 0.85

// OCRSpaceProvider implements OCR using OCR.space API
type OCRSpaceProvider struct {
	apiKey   string
	language string
	endpoint string
	client   *http.Client
}

// NewOCRSpaceProvider creates a new OCR.space provider
func NewOCRSpaceProvider(apiKey, language string) *OCRSpaceProvider {
	return &OCRSpaceProvider{
		apiKey:   apiKey,
		language: ocrSpaceLanguage(language),
		endpoint: ocrSpaceEndpoint,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GetProviderName returns the provider name
func (p *OCRSpaceProvider) GetProviderName() string {
	return "OCR.space"
}

// OCR.space API response structure
type ocrSpaceResponse struct {
	ParsedResults []struct {
		TextOverlay struct {
			Lines []struct {
				LineText string `json:"LineText"`
			} `json:"Lines"`
		} `json:"TextOverlay"`
		ParsedText        string `json:"ParsedText"`
		FileParseExitCode int    `json:"FileParseExitCode"`
		ErrorMessage      string `json:"ErrorMessage"`
	} `json:"ParsedResults"`
	OCRExitCode           int             `json:"OCRExitCode"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage,omitempty"`
}

// Recognize sends the image to OCR.space and returns its overlay lines
func (p *OCRSpaceProvider) Recognize(ctx context.Context, img Image) ([]Detection, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filename := "image.jpg"
	if img.Path != "" {
		filename = filepath.Base(img.Path)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}

	fields := map[string]string{
		"apikey":            p.apiKey,
		"language":          p.language,
		"isOverlayRequired": "true",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", k, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocrspace request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocrspace error (status: %d): %s", resp.StatusCode, string(body))
	}

	var ocrResp ocrSpaceResponse
	if err := json.Unmarshal(body, &ocrResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if ocrResp.IsErroredOnProcessing {
		return nil, fmt.Errorf("ocrspace processing error: %s", ocrSpaceErrorMessage(ocrResp.ErrorMessage))
	}

	detections := []Detection{}
	for _, result := range ocrResp.ParsedResults {
		if result.FileParseExitCode != 1 {
			return nil, fmt.Errorf("ocrspace parse error (code %d): %s", result.FileParseExitCode, result.ErrorMessage)
		}
		for _, line := range result.TextOverlay.Lines {
			text := strings.TrimSpace(line.LineText)
			if text == "" {
				continue
			}
			detections = append(detections, Detection{
				Text:       text,
				Confidence: ocrSpaceDefaultConfidence,
			})
		}
	}

	return detections, nil
}

// ErrorMessage is a string or a list of strings depending on the failure
func ocrSpaceErrorMessage(raw json.RawMessage) string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; ")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single
	}
	return "unknown error"
}

// ocrSpaceLanguage picks the first language of a tesseract-style set and
// maps it to the OCR.space code.
func ocrSpaceLanguage(language string) string {
	first := strings.Split(language, "+")[0]
	switch first {
	case "", "en":
		return "eng"
	case "vie", "vi":
		return "vnm"
	default:
		return first
	}
}
