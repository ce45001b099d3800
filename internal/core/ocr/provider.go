package ocr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Detection is one recognized text region
type Detection struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0-1
}

// Image is the input handed to a provider. Path is set when the upload
// lives on local disk; Data always carries the raw bytes.
type Image struct {
	Path string
	Data []byte
}

// Provider interface for recognition engines
type Provider interface {
	// Recognize returns detections in the engine's scan order
	Recognize(ctx context.Context, img Image) ([]Detection, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// SerialProvider is implemented by engines that must never run two calls at once
type SerialProvider interface {
	Provider
	Serial() bool
}

// ErrTimeout is returned when a recognition does not finish within the configured bound
var ErrTimeout = errors.New("recognition timed out")

// Options controls how the Service shares its provider across requests
type Options struct {
	// MaxConcurrency caps simultaneous Recognize calls. 1 serializes them.
	MaxConcurrency int64
	// Timeout bounds waiting for a slot plus the call itself. Zero disables it.
	Timeout time.Duration
}

// DefaultOptions serializes engine calls with a two minute bound
func DefaultOptions() Options {
	return Options{
		MaxConcurrency: 1,
		Timeout:        2 * time.Minute,
	}
}

// Service wraps the process-wide provider. It is built once at startup and
// handed to every request.
type Service struct {
	provider Provider
	sem      *semaphore.Weighted
	opts     Options
}

// NewService creates a new OCR service guarding the given provider
func NewService(provider Provider, opts Options) *Service {
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	if sp, ok := provider.(SerialProvider); ok && sp.Serial() && opts.MaxConcurrency > 1 {
		log.Warn().
			Str("provider", provider.GetProviderName()).
			Int64("requested", opts.MaxConcurrency).
			Msg("provider is not safe for concurrent use, limiting to 1")
		opts.MaxConcurrency = 1
	}

	return &Service{
		provider: provider,
		sem:      semaphore.NewWeighted(opts.MaxConcurrency),
		opts:     opts,
	}
}

// Recognize runs the provider under the concurrency limit and timeout
func (s *Service) Recognize(ctx context.Context, img Image) ([]Detection, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, wrapDeadline(fmt.Errorf("waiting for %s: %w", s.provider.GetProviderName(), err))
	}

	type outcome struct {
		detections []Detection
		err        error
	}

	// Engines that ignore ctx still release the caller on timeout; the slot
	// stays held until the engine actually returns.
	done := make(chan outcome, 1)
	go func() {
		defer s.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%s panicked: %v", s.provider.GetProviderName(), r)}
			}
		}()
		detections, err := s.provider.Recognize(ctx, img)
		done <- outcome{detections, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, wrapDeadline(out.err)
		}
		return out.detections, nil
	case <-ctx.Done():
		return nil, wrapDeadline(ctx.Err())
	}
}

// MaxConcurrency reports the configured limit
func (s *Service) MaxConcurrency() int64 {
	return s.opts.MaxConcurrency
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}

func wrapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
