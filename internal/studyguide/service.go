package studyguide

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emandor/studyhelp_service/internal/img"
	"github.com/emandor/studyhelp_service/internal/ocr"
	"github.com/emandor/studyhelp_service/internal/pdftext"
	"github.com/emandor/studyhelp_service/internal/providers"
	"github.com/emandor/studyhelp_service/internal/study"
	"github.com/emandor/studyhelp_service/internal/telemetry"
)

var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrEmptyContent        = errors.New("study content is empty")
	ErrExtraction          = errors.New("could not extract text")
)

// UnavailableError is returned when the requested provider is unknown or has
// no credential. It matches ErrProviderUnavailable.
type UnavailableError struct {
	Provider string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("provider %q is not available", e.Provider)
}

func (e *UnavailableError) Is(target error) bool { return target == ErrProviderUnavailable }

// textCache stores extracted upload text; *cache.TextCache satisfies it.
type textCache interface {
	Get(ctx context.Context, content []byte) (string, bool)
	Set(ctx context.Context, content []byte, text string) error
}

type Options struct {
	OCR        ocr.Reader
	PDFCache   textCache
	ImageCache textCache
	OCRMaxW    int
	OCRQuality int
	OCRGray    bool
}

// Service is the generation entry point. It keeps no per-call state; the
// registry and collaborators are fixed at construction.
type Service struct {
	providers *providers.Registry
	opts      Options
}

func NewService(reg *providers.Registry, opts Options) *Service {
	return &Service{providers: reg, opts: opts}
}

// Providers lists the selectable providers.
func (s *Service) Providers() []providers.SourceName {
	return s.providers.Names()
}

// Generate runs prompt → provider → normalizer for one request. On any
// failure it returns an empty artifact together with the error; UserMessage
// turns that error into what the caller shows.
func (s *Service) Generate(ctx context.Context, content, provider string) (study.Artifact, error) {
	log := telemetry.L().With().Str("provider", provider).Logger()

	name, known := providers.ParseSourceName(provider)
	cl, ok := s.providers.Get(name)
	if !known || !ok {
		log.Warn().Msg("provider_unavailable")
		return study.Empty(), &UnavailableError{Provider: provider}
	}
	if strings.TrimSpace(content) == "" {
		return study.Empty(), ErrEmptyContent
	}

	prompt := providers.BuildPrompt(content, name)
	log.Debug().Int("content_len", len(content)).Int("prompt_len", len(prompt.User)).Msg("prompt_built")

	reply, err := cl.Complete(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("provider_complete_error")
		return study.Empty(), err
	}

	a := providers.Normalize(reply.Text)
	log.Info().
		Int("latency_ms", reply.LatencyMs).
		Int("summary_len", len(a.Summary)).
		Int("questions", len(a.Questions)).
		Msg("study_generated")
	return a, nil
}

// ExtractPDF returns the text of an uploaded PDF.
func (s *Service) ExtractPDF(ctx context.Context, b []byte) (string, error) {
	log := telemetry.L().With().Str("source", "pdf").Logger()
	if txt, ok := s.cached(ctx, s.opts.PDFCache, b); ok {
		log.Info().Int("len", len(txt)).Msg("extract_cache_hit")
		return txt, nil
	}

	txt, err := pdftext.Extract(b)
	if err != nil {
		log.Warn().Err(err).Msg("pdf_extract_fail")
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	s.remember(ctx, s.opts.PDFCache, b, txt)
	log.Info().Int("len", len(txt)).Msg("pdf_extracted")
	return txt, nil
}

// ExtractImage OCRs a photo or screenshot of notes.
func (s *Service) ExtractImage(ctx context.Context, b []byte) (string, error) {
	log := telemetry.L().With().Str("source", "image").Logger()
	if s.opts.OCR == nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, ocr.ErrEngineUnavailable)
	}
	if txt, ok := s.cached(ctx, s.opts.ImageCache, b); ok {
		log.Info().Int("len", len(txt)).Msg("extract_cache_hit")
		return txt, nil
	}

	prep, err := img.PrepareForOCR(b, s.opts.OCRMaxW, s.opts.OCRQuality, s.opts.OCRGray)
	if err != nil {
		log.Warn().Err(err).Msg("ocr_prep_fail")
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	res, err := s.opts.OCR.Read(ctx, prep.Bytes, prep.MIME)
	if err != nil {
		log.Warn().Err(err).Msg("ocr_fail")
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	txt := strings.TrimSpace(res.Text)
	if txt == "" {
		return "", fmt.Errorf("%w: image contains no readable text", ErrExtraction)
	}
	s.remember(ctx, s.opts.ImageCache, b, txt)
	log.Info().Int("len", len(txt)).Msg("ocr_done")
	return txt, nil
}

func (s *Service) cached(ctx context.Context, c textCache, b []byte) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.Get(ctx, b)
}

func (s *Service) remember(ctx context.Context, c textCache, b []byte, txt string) {
	if c == nil {
		return
	}
	if err := c.Set(ctx, b, txt); err != nil {
		log := telemetry.L()
		log.Warn().Err(err).Msg("extract_cache_set_err")
	}
}

// UserMessage is the single message shown for a failed request.
func UserMessage(err error) string {
	var unavailable *UnavailableError
	var perr *providers.ProviderError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unavailable):
		return fmt.Sprintf("Selected AI provider (%s) is not available. Please check your API keys.", unavailable.Provider)
	case errors.As(err, &perr):
		return fmt.Sprintf("Error generating content with %s: %v", perr.Provider.DisplayName(), perr.Err)
	case errors.Is(err, ErrEmptyContent):
		return "Please provide some study material."
	case errors.Is(err, ErrExtraction):
		return "Could not extract text from the uploaded file. Please try a different file."
	}
	return "Something went wrong: " + err.Error()
}
