package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/core/upload"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/modules/ocr/models"
	"github.com/rs/zerolog/log"
)

// Storage persists uploads before recognition
type Storage interface {
	Store(ctx context.Context, data []byte, filename string) (*upload.StoredFile, error)
	GetProviderName() string
}

// Recognizer is the shared recognition engine
type Recognizer interface {
	Recognize(ctx context.Context, img ocr.Image) ([]ocr.Detection, error)
	GetProviderName() string
}

// OCRService runs intake, recognition and aggregation for one upload
type OCRService struct {
	storage    Storage
	recognizer Recognizer
}

// NewOCRService creates the pipeline around a storage backend and the
// process-wide recognizer
func NewOCRService(storage Storage, recognizer Recognizer) *OCRService {
	return &OCRService{
		storage:    storage,
		recognizer: recognizer,
	}
}

// Process stores the upload, recognizes it and aggregates the detections.
// Stages run strictly in order and the first failure short-circuits.
// Returned errors are always one of IntakeError, RecognitionError or
// AggregationError. A panic is reported as the stage it happened in.
func (s *OCRService) Process(ctx context.Context, filename string, data []byte) (resp *models.OCRResponse, err error) {
	start := time.Now()
	stage := "intake"

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = stageError(stage, fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	stored, err := s.storage.Store(ctx, data, filename)
	if err != nil {
		return nil, &IntakeError{Err: err}
	}

	logger := log.With().Str("key", stored.Key).Str("filename", filename).Logger()
	logger.Debug().Int64("size", stored.Size).Str("storage", s.storage.GetProviderName()).Msg("upload stored")

	stage = "recognition"
	detections, err := s.recognizer.Recognize(ctx, ocr.Image{Path: stored.Path, Data: data})
	if err != nil {
		return nil, &RecognitionError{Err: err}
	}

	stage = "aggregation"
	resp, err = Aggregate(filename, detections)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("line_count", resp.LineCount).
		Float64("confidence", resp.Confidence).
		Dur("elapsed", time.Since(start)).
		Msg("ocr completed")

	return resp, nil
}

// ProviderNames reports the storage and recognition backends in use
func (s *OCRService) ProviderNames() (storage, recognizer string) {
	return s.storage.GetProviderName(), s.recognizer.GetProviderName()
}
