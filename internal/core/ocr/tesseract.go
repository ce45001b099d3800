package ocr

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// TesseractProvider implements OCR using the Tesseract CLI in TSV mode
type TesseractProvider struct {
	tesseractPath string
	language      string
}

// NewTesseractProvider creates a new Tesseract OCR provider
// language uses tesseract codes joined by "+", e.g. "vie+eng"
func NewTesseractProvider(tesseractPath, language string) *TesseractProvider {
	if tesseractPath == "" {
		tesseractPath = "tesseract" // Assumes tesseract is in PATH
	}
	if language == "" {
		language = "eng"
	}

	return &TesseractProvider{
		tesseractPath: tesseractPath,
		language:      language,
	}
}

// Recognize runs tesseract on the image and returns one detection per text line
func (p *TesseractProvider) Recognize(ctx context.Context, img Image) ([]Detection, error) {
	imagePath := img.Path
	if imagePath == "" {
		tmp, err := os.CreateTemp("", "ocr-image-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp image: %w", err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(img.Data); err != nil {
			tmp.Close()
			return nil, fmt.Errorf("failed to write temp image: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return nil, fmt.Errorf("failed to write temp image: %w", err)
		}
		imagePath = tmp.Name()
	}

	// tesseract input.jpg stdout -l vie+eng tsv
	cmd := exec.CommandContext(ctx, p.tesseractPath, imagePath, "stdout", "-l", p.language, "tsv")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("tesseract command failed: %w, output: %s", err, strings.TrimSpace(stderr.String()))
	}

	return ParseTSV(stdout.Bytes())
}

// GetProviderName returns the name of the provider
func (p *TesseractProvider) GetProviderName() string {
	return "Tesseract OCR"
}

type lineKey struct {
	page, block, par, line int
}

// ParseTSV folds tesseract word rows (level 5) into text lines, keeping the
// order in which lines first appear. Line confidence is the mean word
// confidence scaled to 0-1.
func ParseTSV(data []byte) ([]Detection, error) {
	type lineAcc struct {
		words []string
		sum   float64
	}

	var order []lineKey
	lines := make(map[lineKey]*lineAcc)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	header := true
	for scanner.Scan() {
		row := scanner.Text()
		if header {
			header = false
			if strings.HasPrefix(row, "level") {
				continue
			}
		}
		if row == "" {
			continue
		}

		cols := strings.SplitN(row, "\t", 12)
		if len(cols) < 12 {
			return nil, fmt.Errorf("malformed tsv row: %q", row)
		}

		level, err := strconv.Atoi(cols[0])
		if err != nil {
			return nil, fmt.Errorf("malformed tsv level %q: %w", cols[0], err)
		}
		if level != 5 {
			continue
		}

		text := strings.TrimSpace(cols[11])
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed tsv confidence %q: %w", cols[10], err)
		}
		if text == "" || conf < 0 {
			continue
		}

		var key lineKey
		for i, dst := range []*int{&key.page, &key.block, &key.par, &key.line} {
			n, err := strconv.Atoi(cols[i+1])
			if err != nil {
				return nil, fmt.Errorf("malformed tsv row: %q", row)
			}
			*dst = n
		}

		acc, ok := lines[key]
		if !ok {
			acc = &lineAcc{}
			lines[key] = acc
			order = append(order, key)
		}
		acc.words = append(acc.words, text)
		acc.sum += conf
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tesseract output: %w", err)
	}

	detections := make([]Detection, 0, len(order))
	for _, key := range order {
		acc := lines[key]
		detections = append(detections, Detection{
			Text:       strings.Join(acc.words, " "),
			Confidence: acc.sum / float64(len(acc.words)) / 100.0,
		})
	}

	return detections, nil
}
