package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const googleVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// GoogleVisionProvider implements OCR using Google Cloud Vision API
type GoogleVisionProvider struct {
	apiKey        string
	languageHints []string
	endpoint      string
	client        *http.Client
}

// NewGoogleVisionProvider creates a new Google Vision OCR provider
func NewGoogleVisionProvider(apiKey, language string) *GoogleVisionProvider {
	return &GoogleVisionProvider{
		apiKey:        apiKey,
		languageHints: visionLanguageHints(language),
		endpoint:      googleVisionEndpoint,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GetProviderName returns the provider name
func (p *GoogleVisionProvider) GetProviderName() string {
	return "Google Cloud Vision"
}

// Google Vision API request/response structures
type visionRequest struct {
	Requests []visionRequestItem `json:"requests"`
}

type visionRequestItem struct {
	Image        visionImage         `json:"image"`
	Features     []visionFeature     `json:"features"`
	ImageContext *visionImageContext `json:"imageContext,omitempty"`
}

type visionImage struct {
	Content string `json:"content"` // base64 encoded image
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionImageContext struct {
	LanguageHints []string `json:"languageHints,omitempty"`
}

type visionSymbol struct {
	Text     string `json:"text"`
	Property *struct {
		DetectedBreak *struct {
			Type string `json:"type"`
		} `json:"detectedBreak,omitempty"`
	} `json:"property,omitempty"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Pages []struct {
				Blocks []struct {
					Paragraphs []struct {
						Confidence float64 `json:"confidence"`
						Words      []struct {
							Symbols []visionSymbol `json:"symbols"`
						} `json:"words"`
					} `json:"paragraphs"`
				} `json:"blocks"`
			} `json:"pages"`
		} `json:"fullTextAnnotation,omitempty"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	} `json:"responses"`
}

// Recognize returns one detection per paragraph of the document annotation
func (p *GoogleVisionProvider) Recognize(ctx context.Context, img Image) ([]Detection, error) {
	item := visionRequestItem{
		Image:    visionImage{Content: base64.StdEncoding.EncodeToString(img.Data)},
		Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
	}
	if len(p.languageHints) > 0 {
		item.ImageContext = &visionImageContext{LanguageHints: p.languageHints}
	}

	jsonData, err := json.Marshal(visionRequest{Requests: []visionRequestItem{item}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", p.endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google vision request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google vision error (status: %d): %s", resp.StatusCode, string(body))
	}

	var visionResp visionResponse
	if err := json.Unmarshal(body, &visionResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(visionResp.Responses) == 0 {
		return nil, fmt.Errorf("no response from Google Vision")
	}

	first := visionResp.Responses[0]
	if first.Error != nil {
		return nil, fmt.Errorf("google vision API error: %s", first.Error.Message)
	}

	detections := []Detection{}
	if first.FullTextAnnotation == nil {
		return detections, nil
	}

	for _, page := range first.FullTextAnnotation.Pages {
		for _, block := range page.Blocks {
			for _, para := range block.Paragraphs {
				var sb strings.Builder
				for _, word := range para.Words {
					for _, sym := range word.Symbols {
						sb.WriteString(sym.Text)
						if sym.Property != nil && sym.Property.DetectedBreak != nil {
							sb.WriteByte(' ')
						}
					}
				}
				text := strings.Join(strings.Fields(sb.String()), " ")
				if text == "" {
					continue
				}
				detections = append(detections, Detection{
					Text:       text,
					Confidence: para.Confidence,
				})
			}
		}
	}

	return detections, nil
}

// visionLanguageHints converts "vie+eng" into BCP-47 hints
func visionLanguageHints(language string) []string {
	codes := map[string]string{"vie": "vi", "eng": "en", "ind": "id"}

	var hints []string
	for _, lang := range strings.Split(language, "+") {
		if lang == "" {
			continue
		}
		if hint, ok := codes[lang]; ok {
			lang = hint
		}
		hints = append(hints, lang)
	}
	return hints
}
