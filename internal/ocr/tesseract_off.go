//go:build !tesseract

package ocr

// NewTesseract reports the engine as unavailable when the binary was built
// without the tesseract tag.
func NewTesseract(string) (Reader, error) {
	return nil, ErrEngineUnavailable
}
