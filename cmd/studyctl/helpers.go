package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emandor/studyhelp_service/internal/config"
	"github.com/emandor/studyhelp_service/internal/pdftext"
	"github.com/emandor/studyhelp_service/internal/providers"
	"github.com/emandor/studyhelp_service/internal/study"
	"github.com/emandor/studyhelp_service/internal/studyguide"
	"github.com/emandor/studyhelp_service/internal/telemetry"
)

// newService wires the same provider registry the API uses. Logs go to the
// console only.
func newService(ctx context.Context) (*studyguide.Service, *config.Config) {
	cfg := config.Load()
	lc := telemetry.FromEnv(config.GetEnv)
	lc.File = ""
	lc.JSON = false
	if config.GetEnv("LOG_LEVEL", "") == "" {
		lc.Level = "warn"
	}
	telemetry.Init(lc)

	return studyguide.NewService(providers.Build(ctx, cfg), studyguide.Options{}), cfg
}

// loadMaterial reads a PDF through the extractor and anything else as text.
func loadMaterial(ctx context.Context, svc *studyguide.Service, path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", studyguide.ErrExtraction, err)
	}
	if pdftext.IsPDF(b) {
		return svc.ExtractPDF(ctx, b)
	}
	return string(b), nil
}

func pickProvider(flag, def string, svc *studyguide.Service) string {
	if flag != "" {
		return flag
	}
	if def != "" {
		return def
	}
	if names := svc.Providers(); len(names) > 0 {
		return string(names[0])
	}
	return ""
}

// guideName maps notes/ch1.pdf to ch1_study_guide.txt.
func guideName(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return base + "_" + study.ExportFilename
}
