package ocr

import (
	"fmt"
	"strings"
	"time"
)

// New picks the OCR engine named by OCR_ENGINE.
func New(engine, lang, openAIKey, openAIModel, openAIBaseURL string, timeout time.Duration) (Reader, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("%w: openai vision needs OPENAI_API_KEY", ErrEngineUnavailable)
		}
		return NewOpenAIVision(openAIKey, openAIModel, openAIBaseURL, timeout), nil
	case "tesseract":
		return NewTesseract(lang)
	case "none":
		return nil, ErrEngineUnavailable
	}
	return nil, fmt.Errorf("%w: unknown engine %q", ErrEngineUnavailable, engine)
}
