//go:build tesseract

package ocr

import (
	"context"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs OCR locally. Built only with -tags tesseract since it needs
// libtesseract through cgo.
type Tesseract struct {
	Lang string
}

func NewTesseract(lang string) (Reader, error) {
	return &Tesseract{Lang: lang}, nil
}

func (t *Tesseract) Read(ctx context.Context, img []byte, _ string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(t.Lang); err != nil {
		return Result{}, err
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return Result{}, err
	}
	txt, err := client.Text()
	if err != nil {
		return Result{}, err
	}
	return Result{Text: txt, Raw: txt}, nil
}
