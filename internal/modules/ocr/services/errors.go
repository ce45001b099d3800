package services

import (
	"errors"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/modules/ocr/models"
)

// IntakeError means the upload could not be read or stored
type IntakeError struct{ Err error }

func (e *IntakeError) Error() string { return e.Err.Error() }
func (e *IntakeError) Unwrap() error { return e.Err }

// RecognitionError means the engine failed or timed out on the image
type RecognitionError struct{ Err error }

func (e *RecognitionError) Error() string { return e.Err.Error() }
func (e *RecognitionError) Unwrap() error { return e.Err }

// AggregationError means the detections could not be shaped into a response
type AggregationError struct{ Err error }

func (e *AggregationError) Error() string { return e.Err.Error() }
func (e *AggregationError) Unwrap() error { return e.Err }

// Stage names the pipeline stage an error came from, for logging
func Stage(err error) string {
	var intake *IntakeError
	var recognition *RecognitionError
	var aggregation *AggregationError

	switch {
	case errors.As(err, &intake):
		return "intake"
	case errors.As(err, &recognition):
		return "recognition"
	case errors.As(err, &aggregation):
		return "aggregation"
	default:
		return "unknown"
	}
}

// stageError wraps err in the typed error for the named stage
func stageError(stage string, err error) error {
	switch stage {
	case "intake":
		return &IntakeError{Err: err}
	case "recognition":
		return &RecognitionError{Err: err}
	default:
		return &AggregationError{Err: err}
	}
}

// NewFailureResponse converts any pipeline error into the failure body.
// The message is whatever the cause stringifies to.
func NewFailureResponse(err error) models.FailureResponse {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	return models.FailureResponse{
		Success: false,
		Error:   msg,
	}
}
