package studyguide

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/emandor/studyhelp_service/internal/config"
	"github.com/emandor/studyhelp_service/internal/middleware"
	"github.com/emandor/studyhelp_service/internal/providers"
	"github.com/emandor/studyhelp_service/internal/study"
	"github.com/emandor/studyhelp_service/internal/telemetry"
)

var validate = validator.New()

type Handler struct {
	cfg *config.Config
	svc *Service
}

func NewHandler(cfg *config.Config, svc *Service) *Handler {
	return &Handler{cfg: cfg, svc: svc}
}

// Register mounts the study routes under r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/providers", h.ListProviders)
	r.Post("/study", h.GenerateFromText)
	r.Post("/study/pdf", middleware.FileUploadValidator(h.cfg), h.GenerateFromPDF)
	r.Post("/study/image", middleware.FileUploadValidator(h.cfg), h.GenerateFromImage)
	r.Post("/study/export", h.Export)
}

type GenerateRequest struct {
	Content  string `json:"content" validate:"required"`
	Provider string `json:"provider"`
}

type StudyResponse struct {
	study.Artifact
	Provider       string `json:"provider,omitempty"`
	ExtractedChars int    `json:"extracted_chars,omitempty"`
	Message        string `json:"message,omitempty"`
}

type providerInfo struct {
	ID   providers.SourceName `json:"id"`
	Name string               `json:"name"`
}

func (h *Handler) ListProviders(c *fiber.Ctx) error {
	list := []providerInfo{}
	for _, n := range h.svc.Providers() {
		list = append(list, providerInfo{ID: n, Name: n.DisplayName()})
	}
	return c.JSON(fiber.Map{"providers": list, "default": h.defaultProvider()})
}

func (h *Handler) GenerateFromText(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}
	return h.generate(c, req.Content, req.Provider, 0)
}

func (h *Handler) GenerateFromPDF(c *fiber.Ctx) error {
	b, err := formFileBytes(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "pdf file required"})
	}
	txt, err := h.svc.ExtractPDF(c.UserContext(), b)
	if err != nil {
		return h.fail(c, fiber.StatusUnprocessableEntity, err)
	}
	return h.generate(c, txt, c.FormValue("provider"), len(txt))
}

func (h *Handler) GenerateFromImage(c *fiber.Ctx) error {
	b, err := formFileBytes(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image required"})
	}
	txt, err := h.svc.ExtractImage(c.UserContext(), b)
	if err != nil {
		return h.fail(c, fiber.StatusUnprocessableEntity, err)
	}
	return h.generate(c, txt, c.FormValue("provider"), len(txt))
}

// Export renders a previously generated artifact as the text study guide.
func (h *Handler) Export(c *fiber.Ctx) error {
	a := study.Empty()
	if err := c.BodyParser(&a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	c.Attachment(study.ExportFilename)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(study.Export(a))
}

func (h *Handler) generate(c *fiber.Ctx, content, provider string, extracted int) error {
	log := telemetry.L().With().Str("req_id", middleware.ReqID(c)).Logger()

	if provider == "" {
		provider = h.defaultProvider()
	}
	if n := len(strings.TrimSpace(content)); n > 0 && n < h.cfg.MinContentLength {
		log.Info().Int("content_len", n).Msg("content_too_short")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(StudyResponse{
			Artifact:       study.Empty(),
			ExtractedChars: extracted,
			Message:        "Please provide more content (at least " + strconv.Itoa(h.cfg.MinContentLength) + " characters) for better results.",
		})
	}

	a, err := h.svc.Generate(c.UserContext(), content, provider)
	resp := StudyResponse{Artifact: a, Provider: provider, ExtractedChars: extracted}
	if err != nil {
		resp.Message = UserMessage(err)
		return c.Status(statusFor(err)).JSON(resp)
	}
	log.Info().Str("provider", provider).Int("questions", len(a.Questions)).Msg("study_served")
	return c.JSON(resp)
}

func (h *Handler) fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(StudyResponse{Artifact: study.Empty(), Message: UserMessage(err)})
}

func (h *Handler) defaultProvider() string {
	if h.cfg.DefaultProvider != "" {
		return h.cfg.DefaultProvider
	}
	if names := h.svc.Providers(); len(names) > 0 {
		return string(names[0])
	}
	return ""
}

func statusFor(err error) int {
	var perr *providers.ProviderError
	switch {
	case errors.Is(err, ErrProviderUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &perr):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrEmptyContent):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func formFileBytes(c *fiber.Ctx, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	return readFile(fh)
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
