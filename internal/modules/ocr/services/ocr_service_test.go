package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/core/upload"
)

type fakeRecognizer struct {
	detections []ocr.Detection
	err        error
	panicWith  interface{}
	gotImage   ocr.Image
}

func (f *fakeRecognizer) Recognize(ctx context.Context, img ocr.Image) ([]ocr.Detection, error) {
	f.gotImage = img
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.detections, f.err
}

func (f *fakeRecognizer) GetProviderName() string { return "fake" }

type failingStorage struct{ err error }

func (s failingStorage) Store(ctx context.Context, data []byte, filename string) (*upload.StoredFile, error) {
	return nil, s.err
}
func (s failingStorage) GetProviderName() string { return "failing" }

type panickingStorage struct{}

func (panickingStorage) Store(ctx context.Context, data []byte, filename string) (*upload.StoredFile, error) {
	panic("nil map write")
}

func (panickingStorage) GetProviderName() string { return "panicking" }

func newLocalStorage(t *testing.T) *upload.Service {
	t.Helper()
	p, err := upload.NewLocalProvider(t.TempDir(), upload.NamingUUID)
	if err != nil {
		t.Fatalf("NewLocalProvider() error = %v", err)
	}
	return upload.NewService(p)
}

func TestProcessSuccess(t *testing.T) {
	rec := &fakeRecognizer{detections: []ocr.Detection{{Text: "Hello", Confidence: 0.9}, {Text: "World", Confidence: 0.8}}}
	svc := NewOCRService(newLocalStorage(t), rec)

	data := []byte("png-bytes")
	resp, err := svc.Process(context.Background(), "hello.png", data)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if !resp.Success || resp.Filename != "hello.png" || resp.Text != "Hello\nWorld" || resp.Confidence != 85 || resp.LineCount != 2 {
		t.Errorf("unexpected response %+v", resp)
	}

	// the engine sees the stored copy
	if rec.gotImage.Path == "" {
		t.Fatal("engine got no stored path")
	}
	stored, err := os.ReadFile(rec.gotImage.Path)
	if err != nil || string(stored) != string(data) {
		t.Errorf("stored content = %q, %v", stored, err)
	}
}

func TestProcessNoText(t *testing.T) {
	svc := NewOCRService(newLocalStorage(t), &fakeRecognizer{detections: []ocr.Detection{}})

	resp, err := svc.Process(context.Background(), "blank.png", []byte("x"))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !resp.Success || resp.Text != "" || resp.LineCount != 0 || resp.Confidence != 0 || len(resp.Lines) != 0 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestProcessFailures(t *testing.T) {
	diskFull := errors.New("no space left on device")
	corrupt := errors.New("image file is truncated")

	tests := []struct {
		name      string
		storage   Storage
		rec       *fakeRecognizer
		wantStage string
		wantCause error
	}{
		{
			name:      "intake",
			storage:   failingStorage{err: diskFull},
			rec:       &fakeRecognizer{},
			wantStage: "intake",
			wantCause: diskFull,
		},
		{
			name:      "recognition",
			rec:       &fakeRecognizer{err: corrupt},
			wantStage: "recognition",
			wantCause: corrupt,
		},
		{
			name:      "recognition timeout",
			rec:       &fakeRecognizer{err: ocr.ErrTimeout},
			wantStage: "recognition",
			wantCause: ocr.ErrTimeout,
		},
		{
			name:      "engine panic",
			rec:       &fakeRecognizer{panicWith: "index out of range"},
			wantStage: "recognition",
		},
		{
			name:      "storage panic",
			storage:   panickingStorage{},
			rec:       &fakeRecognizer{},
			wantStage: "intake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := tt.storage
			if storage == nil {
				storage = newLocalStorage(t)
			}
			svc := NewOCRService(storage, tt.rec)

			resp, err := svc.Process(context.Background(), "x.png", []byte("x"))
			if err == nil {
				t.Fatal("expected error")
			}
			if resp != nil {
				t.Errorf("partial response returned: %+v", resp)
			}
			if got := Stage(err); got != tt.wantStage {
				t.Errorf("Stage() = %q, want %q", got, tt.wantStage)
			}
			if tt.wantCause != nil && !errors.Is(err, tt.wantCause) {
				t.Errorf("error %v does not wrap %v", err, tt.wantCause)
			}

			failure := NewFailureResponse(err)
			if failure.Success || failure.Error == "" {
				t.Errorf("failure response = %+v", failure)
			}
		})
	}
}

func TestProcessIntakeSkipsRecognition(t *testing.T) {
	rec := &fakeRecognizer{}
	svc := NewOCRService(failingStorage{err: errors.New("permission denied")}, rec)

	svc.Process(context.Background(), "x.png", []byte("x"))
	if rec.gotImage.Data != nil {
		t.Error("engine called after intake failure")
	}
}

func TestProcessIdempotent(t *testing.T) {
	rec := &fakeRecognizer{detections: []ocr.Detection{{Text: "Tổng cộng", Confidence: 0.731}, {Text: "120.000", Confidence: 0.66}}}
	svc := NewOCRService(newLocalStorage(t), rec)

	var bodies [2][]byte
	for i := range bodies {
		resp, err := svc.Process(context.Background(), "bill.jpg", []byte("same-bytes"))
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		bodies[i], _ = json.Marshal(resp)
	}

	if string(bodies[0]) != string(bodies[1]) {
		t.Errorf("responses differ:\n%s\n%s", bodies[0], bodies[1])
	}
}

func TestNewFailureResponse(t *testing.T) {
	got := NewFailureResponse(&RecognitionError{Err: errors.New("boom")})
	if got.Success || got.Error != "boom" {
		t.Errorf("NewFailureResponse() = %+v", got)
	}

	if got := NewFailureResponse(nil); got.Error != "unknown error" {
		t.Errorf("NewFailureResponse(nil) = %+v", got)
	}

	body, _ := json.Marshal(NewFailureResponse(&IntakeError{Err: errors.New("disk")}))
	if string(body) != `{"success":false,"error":"disk"}` {
		t.Errorf("failure body = %s", body)
	}
}

func TestStage(t *testing.T) {
	if got := Stage(errors.New("plain")); got != "unknown" {
		t.Errorf("Stage(plain) = %q", got)
	}
	if got := Stage(&AggregationError{Err: errors.New("x")}); got != "aggregation" {
		t.Errorf("Stage(aggregation) = %q", got)
	}
}
