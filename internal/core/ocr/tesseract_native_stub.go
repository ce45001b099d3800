//go:build !gosseract

package ocr

import "errors"

// ErrNativeUnavailable is returned when the binary was built without libtesseract
var ErrNativeUnavailable = errors.New("tesseract-native provider requires building with -tags gosseract")

// NewNativeTesseractProvider is unavailable in this build
func NewNativeTesseractProvider(language string) (Provider, error) {
	return nil, ErrNativeUnavailable
}
