package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/modules/ocr/models"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Aggregate folds detections into the success response. Order is kept as
// returned by the engine. An empty slice is a valid "no text found" result.
func Aggregate(filename string, detections []ocr.Detection) (*models.OCRResponse, error) {
	lines := make([]models.Line, 0, len(detections))
	texts := make([]string, 0, len(detections))
	var sum float64

	for i, d := range detections {
		if math.IsNaN(d.Confidence) || math.IsInf(d.Confidence, 0) {
			return nil, &AggregationError{Err: fmt.Errorf("detection %d has invalid confidence %v", i, d.Confidence)}
		}

		// one detection must stay one line of the joined text
		text := lineBreaks.Replace(d.Text)

		texts = append(texts, text)
		lines = append(lines, models.Line{Text: text, Confidence: d.Confidence})
		sum += d.Confidence
	}

	confidence := 0.0
	if n := len(detections); n > 0 {
		confidence = round2(sum / float64(n) * 100)
	}

	return &models.OCRResponse{
		Success:    true,
		Filename:   filename,
		Text:       strings.Join(texts, "\n"),
		Confidence: confidence,
		LineCount:  len(lines),
		Lines:      lines,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
