package ocr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestGoogleVisionRecognize(t *testing.T) {
	body := `{"responses": [{"fullTextAnnotation": {"pages": [{"blocks": [
		{"paragraphs": [
			{"confidence": 0.98, "words": [
				{"symbols": [{"text": "X"}, {"text": "i"}, {"text": "n", "property": {"detectedBreak": {"type": "SPACE"}}}]},
				{"symbols": [{"text": "c"}, {"text": "h"}, {"text": "à"}, {"text": "o", "property": {"detectedBreak": {"type": "LINE_BREAK"}}}]}
			]},
			{"confidence": 0.5, "words": []}
		]},
		{"paragraphs": [
			{"confidence": 0.9, "words": [{"symbols": [{"text": "O"}, {"text": "K"}]}]}
		]}
	]}]}}]}`

	var gotReq visionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "vision-key" {
			t.Errorf("key = %q", got)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		io.WriteString(w, body)
	}))
	defer srv.Close()

	p := NewGoogleVisionProvider("vision-key", "vie+eng")
	p.endpoint = srv.URL

	detections, err := p.Recognize(context.Background(), Image{Data: []byte("img")})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	want := []Detection{
		{Text: "Xin chào", Confidence: 0.98},
		{Text: "OK", Confidence: 0.9},
	}
	if !reflect.DeepEqual(detections, want) {
		t.Errorf("got %+v, want %+v", detections, want)
	}

	if len(gotReq.Requests) != 1 || gotReq.Requests[0].Features[0].Type != "DOCUMENT_TEXT_DETECTION" {
		t.Errorf("unexpected request %+v", gotReq)
	}
	if hints := gotReq.Requests[0].ImageContext.LanguageHints; !reflect.DeepEqual(hints, []string{"vi", "en"}) {
		t.Errorf("language hints = %v", hints)
	}
}

func TestGoogleVisionNoText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"responses": [{}]}`)
	}))
	defer srv.Close()

	p := NewGoogleVisionProvider("k", "eng")
	p.endpoint = srv.URL

	detections, err := p.Recognize(context.Background(), Image{Data: []byte("img")})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if detections == nil || len(detections) != 0 {
		t.Errorf("got %+v, want empty slice", detections)
	}
}

func TestGoogleVisionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"responses": [{"error": {"code": 3, "message": "Bad image data."}}]}`)
	}))
	defer srv.Close()

	p := NewGoogleVisionProvider("k", "eng")
	p.endpoint = srv.URL

	_, err := p.Recognize(context.Background(), Image{Data: []byte("img")})
	if err == nil || !strings.Contains(err.Error(), "Bad image data.") {
		t.Fatalf("error = %v", err)
	}
}
